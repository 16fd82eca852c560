// internal/store/user_intents.go
package store

import (
	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/user"
)

// LoginSuccess records an authenticated shopper
type LoginSuccess struct {
	Profile user.Profile
	Token   string
}

func (i LoginSuccess) Reduce(s State, _ Env) (State, error) {
	return withUser(s)(s.User.LoginSuccess(i.Profile, i.Token))
}

// Logout forgets the shopper, their favorites, addresses and orders
type Logout struct{}

func (Logout) Reduce(s State, _ Env) (State, error) {
	s.User = s.User.Logout()
	s.Orders = s.Orders.Clear()
	return s, nil
}

// SetToken replaces the session token of the signed-in shopper
type SetToken struct{ Token string }

func (i SetToken) Reduce(s State, _ Env) (State, error) {
	s.User = s.User.SetToken(i.Token)
	return s, nil
}

// LoadUserData replaces profile, favorites, addresses and orders in one step
type LoadUserData struct {
	Profile   user.Profile
	Favorites []catalog.Product
	Addresses []user.Address
	Orders    []order.Order
}

func (i LoadUserData) Reduce(s State, _ Env) (State, error) {
	if i.Profile.ID == "" {
		return s, domain.InvalidInput("store.LoadUserData", "profile id is required")
	}
	s.User = s.User.LoadUserData(i.Profile, i.Favorites, i.Addresses)
	s.Orders = s.Orders.SetOrders(i.Orders)
	return s, nil
}

// UpdateProfile merges profile fields
type UpdateProfile struct{ Patch user.ProfilePatch }

func (i UpdateProfile) Reduce(s State, _ Env) (State, error) {
	return withUser(s)(s.User.UpdateProfile(i.Patch))
}

// UpdatePreferences merges preference fields
type UpdatePreferences struct{ Patch user.PreferencesPatch }

func (i UpdatePreferences) Reduce(s State, _ Env) (State, error) {
	return withUser(s)(s.User.UpdatePreferences(i.Patch))
}

// SetTheme changes the colour scheme
type SetTheme struct{ Theme user.Theme }

func (i SetTheme) Reduce(s State, _ Env) (State, error) {
	return withUser(s)(s.User.SetTheme(i.Theme))
}

// UpdateNotificationSettings merges notification flags
type UpdateNotificationSettings struct{ Patch user.NotificationPatch }

func (i UpdateNotificationSettings) Reduce(s State, _ Env) (State, error) {
	s.User = s.User.UpdateNotificationSettings(i.Patch)
	return s, nil
}

// UpdatePrivacySettings merges privacy flags
type UpdatePrivacySettings struct{ Patch user.PrivacyPatch }

func (i UpdatePrivacySettings) Reduce(s State, _ Env) (State, error) {
	s.User = s.User.UpdatePrivacySettings(i.Patch)
	return s, nil
}

// ToggleFavorite flips favorite membership of a product.
// Removing works even when the product has left the catalog.
type ToggleFavorite struct{ ProductID string }

func (i ToggleFavorite) Reduce(s State, _ Env) (State, error) {
	if s.User.IsFavorite(i.ProductID) {
		s.User = s.User.RemoveFromFavorites(i.ProductID)
		return s, nil
	}
	p, ok := s.Catalog.ProductByID(i.ProductID)
	if !ok {
		return s, domain.NotFound("store.ToggleFavorite", i.ProductID)
	}
	s.User = s.User.ToggleFavorite(p)
	return s, nil
}

// AddToFavorites marks a catalog product as favorite
type AddToFavorites struct{ ProductID string }

func (i AddToFavorites) Reduce(s State, _ Env) (State, error) {
	p, ok := s.Catalog.ProductByID(i.ProductID)
	if !ok {
		return s, domain.NotFound("store.AddToFavorites", i.ProductID)
	}
	s.User = s.User.AddToFavorites(p)
	return s, nil
}

// RemoveFromFavorites unmarks a favorite
type RemoveFromFavorites struct{ ProductID string }

func (i RemoveFromFavorites) Reduce(s State, _ Env) (State, error) {
	s.User = s.User.RemoveFromFavorites(i.ProductID)
	return s, nil
}

// SetFavorites replaces the favorites
type SetFavorites struct{ Products []catalog.Product }

func (i SetFavorites) Reduce(s State, _ Env) (State, error) {
	s.User = s.User.SetFavorites(i.Products)
	return s, nil
}

// AddAddress adds an address under a generated id
type AddAddress struct{ Address user.Address }

func (i AddAddress) Reduce(s State, env Env) (State, error) {
	return withUser(s)(s.User.AddAddress(env.NewID(), i.Address))
}

// UpdateAddress merges address fields
type UpdateAddress struct {
	ID    string
	Patch user.AddressPatch
}

func (i UpdateAddress) Reduce(s State, _ Env) (State, error) {
	return withUser(s)(s.User.UpdateAddress(i.ID, i.Patch))
}

// RemoveAddress deletes an address
type RemoveAddress struct{ ID string }

func (i RemoveAddress) Reduce(s State, _ Env) (State, error) {
	return withUser(s)(s.User.RemoveAddress(i.ID))
}

// SetDefaultAddress makes an address the only default
type SetDefaultAddress struct{ ID string }

func (i SetDefaultAddress) Reduce(s State, _ Env) (State, error) {
	return withUser(s)(s.User.SetDefaultAddress(i.ID))
}

// SetAddresses replaces the address book
type SetAddresses struct{ Addresses []user.Address }

func (i SetAddresses) Reduce(s State, _ Env) (State, error) {
	s.User = s.User.SetAddresses(i.Addresses)
	return s, nil
}

func withUser(s State) func(user.State, error) (State, error) {
	return func(u user.State, err error) (State, error) {
		if err != nil {
			return s, err
		}
		s.User = u
		return s, nil
	}
}
