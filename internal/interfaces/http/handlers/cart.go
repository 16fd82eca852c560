// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/ui"
	"github.com/your-org/storefront/internal/store"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	*SessionHandler
}

// NewCartHandler creates a new cart handler
func NewCartHandler(base *SessionHandler) *CartHandler {
	return &CartHandler{SessionHandler: base}
}

// AddToCartRequest represents a product added to the cart
type AddToCartRequest struct {
	ProductID     string `json:"product_id" binding:"required"`
	Quantity      *int   `json:"quantity"`
	SelectedSize  string `json:"selected_size"`
	SelectedColor string `json:"selected_color"`
}

// UpdateCartItemRequest represents a new line quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// DiscountRequest represents a discount percentage
type DiscountRequest struct {
	Percent float64 `json:"percent"`
}

// ShippingRequest represents a shipping cost
type ShippingRequest struct {
	Amount float64 `json:"amount"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}
	respondCart(c, http.StatusOK, "Cart retrieved successfully", state)
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	state, ok := h.update(c, func(_ context.Context, st *store.Store) error {
		next, err := st.Dispatch(store.AddCatalogItem{
			ProductID: req.ProductID,
			Quantity:  quantity,
			Variant:   cart.Variant{Size: req.SelectedSize, Color: req.SelectedColor},
		})
		if err != nil {
			return err
		}
		line, _ := next.Cart.ItemByProductID(req.ProductID)
		_, err = st.Dispatch(store.Notify{
			Type:    ui.NotificationSuccess,
			Message: fmt.Sprintf("%s added to cart", line.Product.Name),
		})
		return err
	})
	if !ok {
		return
	}
	respondCart(c, http.StatusOK, "Item added to cart successfully", state)
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state, ok := h.dispatch(c, store.SetQuantity{LineID: c.Param("id"), Quantity: req.Quantity})
	if !ok {
		return
	}
	respondCart(c, http.StatusOK, "Cart item updated successfully", state)
}

// IncrementCartItem handles POST /cart/items/:id/increment
func (h *CartHandler) IncrementCartItem(c *gin.Context) {
	state, ok := h.dispatch(c, store.IncrementQuantity{LineID: c.Param("id")})
	if !ok {
		return
	}
	respondCart(c, http.StatusOK, "Cart item updated successfully", state)
}

// DecrementCartItem handles POST /cart/items/:id/decrement. A line at one unit is removed.
func (h *CartHandler) DecrementCartItem(c *gin.Context) {
	state, ok := h.dispatch(c, store.DecrementQuantity{LineID: c.Param("id")})
	if !ok {
		return
	}
	respondCart(c, http.StatusOK, "Cart item updated successfully", state)
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	state, ok := h.dispatch(c, store.RemoveItem{LineID: c.Param("id")})
	if !ok {
		return
	}
	respondCart(c, http.StatusOK, "Item removed from cart successfully", state)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	state, ok := h.dispatch(c, store.ClearCart{})
	if !ok {
		return
	}
	respondCart(c, http.StatusOK, "Cart cleared successfully", state)
}

// ApplyDiscount handles PUT /cart/discount
func (h *CartHandler) ApplyDiscount(c *gin.Context) {
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state, ok := h.dispatch(c, store.ApplyDiscount{Percent: req.Percent})
	if !ok {
		return
	}
	respondCart(c, http.StatusOK, "Discount applied successfully", state)
}

// SetShipping handles PUT /cart/shipping
func (h *CartHandler) SetShipping(c *gin.Context) {
	var req ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state, ok := h.dispatch(c, store.SetShippingCost{Amount: req.Amount})
	if !ok {
		return
	}
	respondCart(c, http.StatusOK, "Shipping cost updated successfully", state)
}

func respondCart(c *gin.Context, status int, message string, state store.State) {
	items := state.Cart.Items
	if items == nil {
		items = []cart.Item{}
	}
	c.JSON(status, gin.H{
		"message": message,
		"data": gin.H{
			"items":            items,
			"totals":           store.CartTotals(state),
			"discount_percent": state.Cart.DiscountPercent,
			"tax_rate":         state.Cart.TaxRate,
		},
	})
}
