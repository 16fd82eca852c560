package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/account"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/infrastructure/seed"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/pdf"
	"github.com/your-org/storefront/internal/session"
)

const testPassword = "Fresh#Mart92"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWith(t, session.NewMemoryRepository(), order.NewMemorySource())
}

func newTestServerWith(t *testing.T, repo session.Repository, orders order.Source) *Server {
	t.Helper()
	cfg := config.FromEnv()
	cfg.App.Environment = "test"
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Security.BcryptCost = bcrypt.MinCost

	log := logger.Discard()
	manager := session.NewManager(repo, seed.NewSource(), cfg.Store, cfg.Session, session.WithLogger(log))
	require.NoError(t, manager.Warm(context.Background()))

	return NewServer(cfg, log, Dependencies{
		Sessions: manager,
		Accounts: account.NewService(account.NewMemoryStore(), cfg),
		Orders:   orders,
		PDF:      pdf.NewService(cfg),
	})
}

// flakyRepository fails every save while down is set
type flakyRepository struct {
	*session.MemoryRepository
	down atomic.Bool
}

func (r *flakyRepository) Save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	if r.down.Load() {
		return errors.New("session store unavailable")
	}
	return r.MemoryRepository.Save(ctx, id, data, ttl)
}

// client keeps the session id and access token between requests
type client struct {
	t       *testing.T
	handler http.Handler
	session string
	token   string
}

type envelope struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (c *client) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.session != "" {
		req.Header.Set(middleware.SessionIDHeader, c.session)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	if id := w.Header().Get(middleware.SessionIDHeader); id != "" {
		c.session = id
	}

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type cartView struct {
	Items []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
		Product  struct {
			ID string `json:"id"`
		} `json:"product"`
	} `json:"items"`
	Totals struct {
		TotalItems int     `json:"total_items"`
		Subtotal   float64 `json:"subtotal"`
		Total      float64 `json:"total"`
	} `json:"totals"`
}

type productList struct {
	Products []struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	} `json:"products"`
	Pagination struct {
		Total int `json:"total"`
	} `json:"pagination"`
}

func TestHealthAndReady(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t).Handler()}

	w, _ := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = c.do(http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestGuestCart(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t).Handler()}

	w, env := c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "1", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	require.NotEmpty(t, c.session)
	cart := decode[cartView](t, env.Data)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Totals.TotalItems)
	assert.InDelta(t, 5.98, cart.Totals.Subtotal, 0.001)
	line := cart.Items[0].ID

	// same product and variant merges
	_, env = c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "1"})
	cart = decode[cartView](t, env.Data)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	_, env = c.do(http.MethodPost, "/api/v1/cart/items/"+line+"/increment", nil)
	assert.Equal(t, 4, decode[cartView](t, env.Data).Totals.TotalItems)

	w, env = c.do(http.MethodPut, "/api/v1/cart/items/"+line, gin.H{"quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[cartView](t, env.Data).Totals.TotalItems)

	_, env = c.do(http.MethodPost, "/api/v1/cart/items/"+line+"/decrement", nil)
	assert.Empty(t, decode[cartView](t, env.Data).Items)

	w, _ = c.do(http.MethodPut, "/api/v1/cart/items/"+line, gin.H{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "1", "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "999"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = c.do(http.MethodPut, "/api/v1/cart/discount", gin.H{"percent": 150})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// removing an absent line is not an error
	w, _ = c.do(http.MethodDelete, "/api/v1/cart/items/missing", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, env = c.do(http.MethodGet, "/api/v1/ui/notifications", nil)
	notifications := decode[[]struct {
		Message string `json:"message"`
	}](t, env.Data)
	require.NotEmpty(t, notifications)
	assert.Equal(t, "Organic Bananas added to cart", notifications[0].Message)
}

func TestSessionsAreIsolated(t *testing.T) {
	handler := newTestServer(t).Handler()
	alice := &client{t: t, handler: handler}
	bob := &client{t: t, handler: handler}

	alice.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "2"})
	_, env := bob.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Empty(t, decode[cartView](t, env.Data).Items)
	assert.NotEqual(t, alice.session, bob.session)

	forged := &client{t: t, handler: handler, session: "made-up"}
	forged.do(http.MethodGet, "/api/v1/cart", nil)
	assert.NotEqual(t, "made-up", forged.session)
}

func TestCatalogFiltersPersistInSession(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t).Handler()}

	w, env := c.do(http.MethodGet, "/api/v1/products?category=1&sort_by=price&sort_order=asc", nil)
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	list := decode[productList](t, env.Data)
	require.Len(t, list.Products, 3)
	assert.Equal(t, []string{"2", "7", "1"}, []string{list.Products[0].ID, list.Products[1].ID, list.Products[2].ID})

	_, env = c.do(http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, 3, decode[productList](t, env.Data).Pagination.Total)

	w, _ = c.do(http.MethodGet, "/api/v1/products?min_price=10&max_price=5", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = c.do(http.MethodGet, "/api/v1/products?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, query := range []string{"min_price=NaN", "max_price=Inf", "min_price=-Inf", "rating=NaN"} {
		w, env = c.do(http.MethodGet, "/api/v1/products?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.NotEqual(t, "Internal server error", env.Error, query)
	}
	_, env = c.do(http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, 3, decode[productList](t, env.Data).Pagination.Total, "rejected filters are not stored")

	_, env = c.do(http.MethodDelete, "/api/v1/products/filters", nil)
	_, env = c.do(http.MethodGet, "/api/v1/products?limit=5", nil)
	list = decode[productList](t, env.Data)
	assert.Equal(t, 12, list.Pagination.Total)
	assert.Len(t, list.Products, 5)
}

func TestSearchAndRecentlyViewed(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t).Handler()}

	_, env := c.do(http.MethodGet, "/api/v1/products/search?q=organic", nil)
	results := decode[productList](t, env.Data)
	require.NotEmpty(t, results.Products)
	for _, p := range results.Products {
		assert.Contains(t, strings.ToLower(p.Name), "organic")
	}

	_, env = c.do(http.MethodGet, "/api/v1/products/search?q=", nil)
	assert.Empty(t, decode[productList](t, env.Data).Products)

	_, env = c.do(http.MethodGet, "/api/v1/ui/search-history", nil)
	assert.Equal(t, []string{"organic"}, decode[[]string](t, env.Data))

	c.do(http.MethodGet, "/api/v1/products/3", nil)
	c.do(http.MethodGet, "/api/v1/products/5", nil)
	c.do(http.MethodGet, "/api/v1/products/3", nil)
	_, env = c.do(http.MethodGet, "/api/v1/products/recently-viewed", nil)
	viewed := decode[[]struct {
		ID string `json:"id"`
	}](t, env.Data)
	require.Len(t, viewed, 2)
	assert.Equal(t, "3", viewed[0].ID)

	w, _ := c.do(http.MethodGet, "/api/v1/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategories(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t).Handler()}

	_, env := c.do(http.MethodGet, "/api/v1/categories", nil)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 8)

	w, env := c.do(http.MethodGet, "/api/v1/categories/fresh-produce/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[productList](t, env.Data).Products, 3)

	w, _ = c.do(http.MethodGet, "/api/v1/categories/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompareList(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t).Handler()}

	for _, id := range []string{"1", "2", "3", "4"} {
		w, _ := c.do(http.MethodPost, "/api/v1/compare/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, env := c.do(http.MethodPost, "/api/v1/compare/5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Compare list is full", env.Message)

	view := decode[struct {
		Count int `json:"count"`
	}](t, env.Data)
	assert.Equal(t, 4, view.Count)

	w, _ = c.do(http.MethodPost, "/api/v1/compare/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, env = c.do(http.MethodDelete, "/api/v1/compare", nil)
	assert.Equal(t, 0, decode[struct {
		Count int `json:"count"`
	}](t, env.Data).Count)
}

func TestFavoritesToggle(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t).Handler()}

	_, env := c.do(http.MethodPost, "/api/v1/favorites/4/toggle", nil)
	assert.Equal(t, "Product added to favorites", env.Message)
	_, env = c.do(http.MethodPost, "/api/v1/favorites/4/toggle", nil)
	assert.Equal(t, "Product removed from favorites", env.Message)

	w, _ := c.do(http.MethodPost, "/api/v1/favorites/999/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func register(t *testing.T, c *client, email string) {
	t.Helper()
	w, env := c.do(http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":            email,
		"password":         testPassword,
		"confirm_password": testPassword,
		"name":             "Ada Lovelace",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	resp := decode[account.AuthResponse](t, env.Data)
	c.token = resp.AccessToken
}

func TestCheckoutFlow(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t).Handler()}

	w, _ := c.do(http.MethodGet, "/api/v1/user/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "6", "quantity": 2})
	register(t, c, "ada@example.com")

	_, env := c.do(http.MethodGet, "/api/v1/user/profile", nil)
	assert.Contains(t, string(env.Data), `"email":"ada@example.com"`)

	// no address yet
	w, _ = c.do(http.MethodPost, "/api/v1/orders", gin.H{"payment_method": "card"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = c.do(http.MethodPost, "/api/v1/user/addresses", gin.H{
		"type": "home", "name": "Ada Lovelace", "street": "12 Market St",
		"city": "Springfield", "state": "IL", "zip_code": "62701", "country": "US",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	assert.Contains(t, string(env.Data), `"is_default":true`)

	w, env = c.do(http.MethodPost, "/api/v1/orders", gin.H{"payment_method": "card"})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	placed := decode[order.Order](t, env.Data)
	assert.True(t, strings.HasPrefix(placed.Number, "ORD-"))
	assert.Equal(t, order.StatusPending, placed.Status)
	assert.Equal(t, 2, placed.ItemCount())

	_, env = c.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Empty(t, decode[cartView](t, env.Data).Items)

	// empty cart
	w, _ = c.do(http.MethodPost, "/api/v1/orders", gin.H{"payment_method": "card"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = c.do(http.MethodGet, "/api/v1/orders/"+placed.ID+"/receipt?format=html", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), placed.Number)

	w, _ = c.do(http.MethodPost, "/api/v1/orders/"+placed.ID+"/cancel", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = c.do(http.MethodPut, "/api/v1/orders/"+placed.ID+"/status", gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// a fresh session signed in with the same token sees the stored history
	other := &client{t: t, handler: c.handler, token: c.token}
	_, env = other.do(http.MethodGet, "/api/v1/orders", nil)
	assert.Contains(t, string(env.Data), placed.Number)
	assert.Contains(t, string(env.Data), `"status":"cancelled"`)
}

func TestPlaceOrder_SessionSaveFailureStoresNothing(t *testing.T) {
	repo := &flakyRepository{MemoryRepository: session.NewMemoryRepository()}
	orders := order.NewMemorySource()
	c := &client{t: t, handler: newTestServerWith(t, repo, orders).Handler()}

	register(t, c, "mary@example.com")
	c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "6", "quantity": 1})
	w, env := c.do(http.MethodPost, "/api/v1/user/addresses", gin.H{
		"type": "home", "name": "Mary Somerville", "street": "3 Quay Rd",
		"city": "Burntisland", "state": "FI", "zip_code": "KY3", "country": "UK",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)

	_, env = c.do(http.MethodGet, "/api/v1/user/profile", nil)
	profile := decode[struct {
		Profile struct {
			ID string `json:"id"`
		} `json:"profile"`
	}](t, env.Data).Profile

	repo.down.Store(true)
	w, _ = c.do(http.MethodPost, "/api/v1/orders", gin.H{"payment_method": "card"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	stored, err := orders.ListOrders(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)

	// the retry places exactly one order
	repo.down.Store(false)
	_, env = c.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Len(t, decode[cartView](t, env.Data).Items, 1)

	w, env = c.do(http.MethodPost, "/api/v1/orders", gin.H{"payment_method": "card"})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	stored, err = orders.ListOrders(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAuthErrors(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t).Handler()}
	register(t, c, "grace@example.com")

	other := &client{t: t, handler: c.handler}
	w, _ := other.do(http.MethodPost, "/api/v1/auth/register", gin.H{
		"email": "grace@example.com", "password": testPassword,
		"confirm_password": testPassword, "name": "Grace",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = other.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "grace@example.com", "password": "Wrong#Pass77"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := other.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "GRACE@example.com", "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code, env.Error)

	other.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "2"})
	_, env = other.do(http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Contains(t, string(env.Data), `"is_authenticated":false`)
	assert.Contains(t, string(env.Data), `"cart_items":1`)
}
