// internal/store/state.go
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/ui"
	"github.com/your-org/storefront/internal/domain/user"
)

// State is the whole state tree of one shopper session
type State struct {
	Catalog catalog.State `json:"catalog"`
	Cart    cart.State    `json:"cart"`
	User    user.State    `json:"user"`
	Orders  order.State   `json:"orders"`
	UI      ui.State      `json:"ui"`
}

// NewState returns the initial state tree for a session starting at now
func NewState(now time.Time) State {
	return State{
		Catalog: catalog.NewState(),
		Cart:    cart.NewState(),
		User:    user.NewState(),
		Orders:  order.NewState(),
		UI:      ui.NewState(now),
	}
}

// Env supplies the impure inputs of a transition
type Env struct {
	NewID func() string
	Now   func() time.Time
}

// DefaultEnv generates UUIDs and reads the UTC wall clock
func DefaultEnv() Env {
	return Env{
		NewID: uuid.NewString,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

func (e Env) withDefaults() Env {
	d := DefaultEnv()
	if e.NewID == nil {
		e.NewID = d.NewID
	}
	if e.Now == nil {
		e.Now = d.Now
	}
	return e
}
