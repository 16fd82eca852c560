// internal/store/selectors.go
package store

import (
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/user"
)

// Selectors are pure reads over a snapshot.

func CartTotals(s State) cart.Totals {
	return s.Cart.Totals
}

func CartItemCount(s State) int {
	return s.Cart.Totals.TotalItems
}

func DefaultAddress(s State) (user.Address, bool) {
	return s.User.DefaultAddress()
}

func IsFavorite(s State, productID string) bool {
	return s.User.IsFavorite(productID)
}

func IsInCompare(s State, productID string) bool {
	return s.Catalog.IsInCompare(productID)
}

func IsAuthenticated(s State) bool {
	return s.User.IsAuthenticated
}

// FilteredProducts returns the current view, ignoring pagination
func FilteredProducts(s State) []catalog.Product {
	return s.Catalog.CurrentProducts
}

func TopRated(s State) []catalog.Product {
	return s.Catalog.TopRated()
}

func RecentOrders(s State) []order.Order {
	return s.Orders.RecentOrders()
}

func OrderByID(s State, id string) (order.Order, bool) {
	return s.Orders.OrderByID(id)
}
