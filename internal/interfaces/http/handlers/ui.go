// internal/interfaces/http/handlers/ui.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/ui"
	"github.com/your-org/storefront/internal/store"
)

// UIHandler exposes the session's presentation state
type UIHandler struct {
	*SessionHandler
}

// NewUIHandler creates a new UI handler
func NewUIHandler(base *SessionHandler) *UIHandler {
	return &UIHandler{SessionHandler: base}
}

// ViewModeRequest selects grid or list
type ViewModeRequest struct {
	Mode ui.ViewMode `json:"view_mode" binding:"required"`
}

// GetState handles GET /ui
func (h *UIHandler) GetState(c *gin.Context) {
	state, ok := h.dispatch(c, store.ExpireNotifications{})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "UI state retrieved successfully",
		"data":    state.UI,
	})
}

// GetNotifications handles GET /ui/notifications. Expired toasts are dropped first.
func (h *UIHandler) GetNotifications(c *gin.Context) {
	state, ok := h.dispatch(c, store.ExpireNotifications{})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notifications retrieved successfully",
		"data":    state.UI.Notifications,
	})
}

// RemoveNotification handles DELETE /ui/notifications/:id
func (h *UIHandler) RemoveNotification(c *gin.Context) {
	state, ok := h.dispatch(c, store.RemoveNotification{ID: c.Param("id")})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification dismissed",
		"data":    state.UI.Notifications,
	})
}

// GetSearchHistory handles GET /ui/search-history
func (h *UIHandler) GetSearchHistory(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search history retrieved successfully",
		"data":    state.UI.SearchHistory,
	})
}

// ClearSearchHistory handles DELETE /ui/search-history
func (h *UIHandler) ClearSearchHistory(c *gin.Context) {
	state, ok := h.dispatch(c, store.ClearSearchHistory{})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search history cleared successfully",
		"data":    state.UI.SearchHistory,
	})
}

// SetViewMode handles PUT /ui/view-mode
func (h *UIHandler) SetViewMode(c *gin.Context) {
	var req ViewModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state, ok := h.dispatch(c, store.SetViewMode{Mode: req.Mode})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "View mode updated successfully",
		"data":    gin.H{"view_mode": state.UI.ViewMode},
	})
}
