// internal/interfaces/http/handlers/compare.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/store"
)

// CompareHandler handles the product comparison list
type CompareHandler struct {
	*SessionHandler
}

// NewCompareHandler creates a new compare handler
func NewCompareHandler(base *SessionHandler) *CompareHandler {
	return &CompareHandler{SessionHandler: base}
}

// GetCompare handles GET /compare
func (h *CompareHandler) GetCompare(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}
	respondCompare(c, "Compare list retrieved successfully", state)
}

// AddToCompare handles POST /compare/:productId. A full list is left unchanged.
func (h *CompareHandler) AddToCompare(c *gin.Context) {
	state, ok := h.dispatch(c, store.AddToCompare{ProductID: c.Param("productId")})
	if !ok {
		return
	}

	message := "Product added to compare list"
	if !store.IsInCompare(state, c.Param("productId")) {
		message = "Compare list is full"
	}
	respondCompare(c, message, state)
}

// RemoveFromCompare handles DELETE /compare/:productId
func (h *CompareHandler) RemoveFromCompare(c *gin.Context) {
	state, ok := h.dispatch(c, store.RemoveFromCompare{ProductID: c.Param("productId")})
	if !ok {
		return
	}
	respondCompare(c, "Product removed from compare list", state)
}

// ClearCompare handles DELETE /compare
func (h *CompareHandler) ClearCompare(c *gin.Context) {
	state, ok := h.dispatch(c, store.ClearCompare{})
	if !ok {
		return
	}
	respondCompare(c, "Compare list cleared successfully", state)
}

func respondCompare(c *gin.Context, message string, state store.State) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"products": state.Catalog.CompareList,
			"count":    state.Catalog.CompareCount(),
			"limit":    catalog.CompareLimit,
		},
	})
}
