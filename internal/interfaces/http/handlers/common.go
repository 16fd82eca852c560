// internal/interfaces/http/handlers/common.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/account"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/session"
	"github.com/your-org/storefront/internal/store"
)

// SessionHandler runs requests against the caller's session store
type SessionHandler struct {
	sessions *session.Manager
	accounts *account.Service
	orders   order.Source
	logger   logrus.FieldLogger
}

// NewSessionHandler creates the session plumbing shared by every handler
func NewSessionHandler(sessions *session.Manager, accounts *account.Service, orders order.Source, logger logrus.FieldLogger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		accounts: accounts,
		orders:   orders,
		logger:   logger,
	}
}

// update runs fn against the session store. When the request carries a valid
// access token the session is signed in as that account first.
func (h *SessionHandler) update(c *gin.Context, fn func(ctx context.Context, st *store.Store) error) (store.State, bool) {
	ctx := c.Request.Context()

	var state store.State
	id, err := h.sessions.Update(ctx, middleware.GetSessionID(c), func(st *store.Store) error {
		if userID, ok := middleware.GetUserIDFromContext(c); ok {
			if err := h.bindAccount(ctx, st, userID, middleware.GetTokenFromContext(c)); err != nil {
				return err
			}
		}
		if err := fn(ctx, st); err != nil {
			return err
		}
		state = st.Snapshot()
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return state, false
	}

	middleware.SetSessionID(c, id)
	return state, true
}

// dispatch applies intents in order; a failing intent discards the whole batch
func (h *SessionHandler) dispatch(c *gin.Context, intents ...store.Intent) (store.State, bool) {
	return h.update(c, func(_ context.Context, st *store.Store) error {
		for _, intent := range intents {
			if _, err := st.Dispatch(intent); err != nil {
				return err
			}
		}
		return nil
	})
}

// view returns the session state without changing it
func (h *SessionHandler) view(c *gin.Context) (store.State, bool) {
	return h.dispatch(c)
}

// bindAccount signs the session in as userID, loading the profile and order
// history. A session signed in as another account is logged out first.
func (h *SessionHandler) bindAccount(ctx context.Context, st *store.Store, userID, token string) error {
	current := st.Snapshot().User
	if current.Profile != nil && current.Profile.ID == userID {
		if current.Token != token && token != "" {
			_, err := st.Dispatch(store.SetToken{Token: token})
			return err
		}
		return nil
	}
	if h.accounts == nil {
		return nil
	}

	profile, err := h.accounts.Profile(ctx, userID)
	if err != nil {
		return err
	}
	history, err := h.orders.ListOrders(ctx, userID)
	if err != nil {
		return err
	}

	// A guest session's own orders move to the account; another account's are dropped
	orders := history
	if current.Profile == nil {
		merged, claimed := st.Snapshot().Orders.ClaimGuestOrders(userID, history)
		for _, o := range claimed {
			if err := h.orders.SaveOrder(ctx, o); err != nil {
				return err
			}
		}
		orders = merged.Orders
	}

	intents := []store.Intent{
		store.LoginSuccess{Profile: profile, Token: token},
		store.SetOrders{Orders: orders},
	}
	if current.Profile != nil {
		intents = append([]store.Intent{store.Logout{}}, intents...)
	}
	for _, intent := range intents {
		if _, err := st.Dispatch(intent); err != nil {
			return err
		}
	}
	h.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"orders":  len(orders),
	}).Debug("Session bound to account")
	return nil
}

// respondError maps engine errors onto HTTP statuses
func (h *SessionHandler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"path":       c.FullPath(),
		}).WithError(err).Error("❌ Request failed")

		message := "Internal server error"
		if status == http.StatusGatewayTimeout {
			message = "Request timed out"
		}
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, account.ErrInvalidCredentials),
		errors.Is(err, account.ErrAccountNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// bindError reports a malformed request body
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

// queryInt parses an optional integer query parameter
func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.InvalidInput("query", key+" must be an integer")
	}
	return n, nil
}
