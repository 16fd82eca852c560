// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/account"
	"github.com/your-org/storefront/internal/store"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	*SessionHandler
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(base *SessionHandler) *AuthHandler {
	return &AuthHandler{SessionHandler: base}
}

// RefreshTokenRequest carries the refresh token to exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req account.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.accounts.Register(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.signIn(c, response) {
		return
	}

	h.logger.WithField("user_id", response.User.ID).Info("✅ Account registered")
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"data":    response,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req account.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.accounts.Login(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"email": account.NormalizeEmail(req.Email),
			"ip":    c.ClientIP(),
		}).Warn("⚠️ Failed login attempt")
		h.respondError(c, err)
		return
	}
	if !h.signIn(c, response) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    response,
	})
}

// RefreshToken handles POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.accounts.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.signIn(c, response) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"data":    response,
	})
}

// Logout handles POST /auth/logout. The cart and preferences stay with the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	state, ok := h.dispatch(c, store.Logout{})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
		"data": gin.H{
			"is_authenticated": state.User.IsAuthenticated,
			"cart_items":       store.CartItemCount(state),
		},
	})
}

// signIn binds the session to the account that was just authenticated
func (h *AuthHandler) signIn(c *gin.Context, response *account.AuthResponse) bool {
	_, ok := h.update(c, func(ctx context.Context, st *store.Store) error {
		return h.bindAccount(ctx, st, response.User.ID, response.AccessToken)
	})
	return ok
}
