// internal/interfaces/http/handlers/favorites.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/ui"
	"github.com/your-org/storefront/internal/store"
)

// FavoritesHandler handles the shopper's favorites
type FavoritesHandler struct {
	*SessionHandler
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(base *SessionHandler) *FavoritesHandler {
	return &FavoritesHandler{SessionHandler: base}
}

// GetFavorites handles GET /favorites
func (h *FavoritesHandler) GetFavorites(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorites retrieved successfully",
		"data": gin.H{
			"products": state.User.Favorites,
			"count":    len(state.User.Favorites),
		},
	})
}

// ToggleFavorite handles POST /favorites/:productId/toggle
func (h *FavoritesHandler) ToggleFavorite(c *gin.Context) {
	id := c.Param("productId")
	state, ok := h.update(c, func(_ context.Context, st *store.Store) error {
		next, err := st.Dispatch(store.ToggleFavorite{ProductID: id})
		if err != nil {
			return err
		}
		message := "Removed from favorites"
		if store.IsFavorite(next, id) {
			message = "Added to favorites"
		}
		_, err = st.Dispatch(store.Notify{Type: ui.NotificationInfo, Message: message})
		return err
	})
	if !ok {
		return
	}

	favorite := store.IsFavorite(state, id)
	message := "Product removed from favorites"
	if favorite {
		message = "Product added to favorites"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"product_id":  id,
			"is_favorite": favorite,
			"count":       len(state.User.Favorites),
		},
	})
}

// RemoveFavorite handles DELETE /favorites/:productId
func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	state, ok := h.dispatch(c, store.RemoveFromFavorites{ProductID: c.Param("productId")})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product removed from favorites",
		"data": gin.H{
			"products": state.User.Favorites,
			"count":    len(state.User.Favorites),
		},
	})
}
