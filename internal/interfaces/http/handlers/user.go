// internal/interfaces/http/handlers/user.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/store"
)

// UserHandler handles profile, preference and address book endpoints
type UserHandler struct {
	*SessionHandler
}

// NewUserHandler creates a new user handler
func NewUserHandler(base *SessionHandler) *UserHandler {
	return &UserHandler{SessionHandler: base}
}

// GetProfile handles GET /user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data": gin.H{
			"profile":          state.User.Profile,
			"is_authenticated": store.IsAuthenticated(state),
		},
	})
}

// UpdateProfile handles PUT /user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var patch user.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	state, ok := h.dispatch(c, store.UpdateProfile{Patch: patch})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    state.User.Profile,
	})
}

// GetPreferences handles GET /user/preferences
func (h *UserHandler) GetPreferences(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Preferences retrieved successfully",
		"data":    state.User.Preferences,
	})
}

// UpdatePreferences handles PUT /user/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var patch user.PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	h.respondPreferences(c, store.UpdatePreferences{Patch: patch})
}

// UpdateNotificationSettings handles PUT /user/preferences/notifications
func (h *UserHandler) UpdateNotificationSettings(c *gin.Context) {
	var patch user.NotificationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	h.respondPreferences(c, store.UpdateNotificationSettings{Patch: patch})
}

// UpdatePrivacySettings handles PUT /user/preferences/privacy
func (h *UserHandler) UpdatePrivacySettings(c *gin.Context) {
	var patch user.PrivacyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	h.respondPreferences(c, store.UpdatePrivacySettings{Patch: patch})
}

func (h *UserHandler) respondPreferences(c *gin.Context, intent store.Intent) {
	state, ok := h.dispatch(c, intent)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Preferences updated successfully",
		"data":    state.User.Preferences,
	})
}

// GetAddresses handles GET /user/addresses
func (h *UserHandler) GetAddresses(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}
	respondAddresses(c, http.StatusOK, "Addresses retrieved successfully", state)
}

// CreateAddress handles POST /user/addresses
func (h *UserHandler) CreateAddress(c *gin.Context) {
	var req user.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state, ok := h.dispatch(c, store.AddAddress{Address: req})
	if !ok {
		return
	}

	addresses := state.User.Addresses
	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"data":    addresses[len(addresses)-1],
	})
}

// UpdateAddress handles PUT /user/addresses/:id
func (h *UserHandler) UpdateAddress(c *gin.Context) {
	var patch user.AddressPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	id := c.Param("id")
	state, ok := h.dispatch(c, store.UpdateAddress{ID: id, Patch: patch})
	if !ok {
		return
	}

	addr, _ := state.User.AddressByID(id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"data":    addr,
	})
}

// DeleteAddress handles DELETE /user/addresses/:id
func (h *UserHandler) DeleteAddress(c *gin.Context) {
	state, ok := h.dispatch(c, store.RemoveAddress{ID: c.Param("id")})
	if !ok {
		return
	}
	respondAddresses(c, http.StatusOK, "Address deleted successfully", state)
}

// SetDefaultAddress handles PUT /user/addresses/:id/default
func (h *UserHandler) SetDefaultAddress(c *gin.Context) {
	state, ok := h.dispatch(c, store.SetDefaultAddress{ID: c.Param("id")})
	if !ok {
		return
	}
	respondAddresses(c, http.StatusOK, "Default address updated successfully", state)
}

func respondAddresses(c *gin.Context, status int, message string, state store.State) {
	var defaultID string
	if addr, ok := store.DefaultAddress(state); ok {
		defaultID = addr.ID
	}
	c.JSON(status, gin.H{
		"message": message,
		"data": gin.H{
			"addresses":  state.User.Addresses,
			"default_id": defaultID,
		},
	})
}
