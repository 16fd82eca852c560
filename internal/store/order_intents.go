// internal/store/order_intents.go
package store

import (
	"time"

	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/user"
)

// PlaceOrder checks out the cart. Without an address id the default address is used.
type PlaceOrder struct {
	AddressID     string
	PaymentMethod string
}

func (i PlaceOrder) Reduce(s State, env Env) (State, error) {
	const op = "store.PlaceOrder"

	var addr user.Address
	if i.AddressID != "" {
		a, ok := s.User.AddressByID(i.AddressID)
		if !ok {
			return s, domain.NotFound(op, i.AddressID)
		}
		addr = a
	} else {
		a, ok := s.User.DefaultAddress()
		if !ok {
			return s, domain.InvalidState(op, "", "no shipping address")
		}
		addr = a
	}

	userID := ""
	if s.User.Profile != nil {
		userID = s.User.Profile.ID
	}

	o, err := order.NewOrder(order.PlaceRequest{
		ID:            env.NewID(),
		UserID:        userID,
		Cart:          s.Cart,
		Address:       addr,
		PaymentMethod: i.PaymentMethod,
		Now:           env.Now(),
	})
	if err != nil {
		return s, err
	}

	orders, err := s.Orders.AddOrder(o)
	if err != nil {
		return s, err
	}
	s.Orders = orders
	s.Cart = s.Cart.Clear()
	return s, nil
}

// AddOrder prepends an existing order to the history
type AddOrder struct{ Order order.Order }

func (i AddOrder) Reduce(s State, _ Env) (State, error) {
	return withOrders(s)(s.Orders.AddOrder(i.Order))
}

// UpdateOrderStatus moves an order to a new status
type UpdateOrderStatus struct {
	ID     string
	Status order.Status
}

func (i UpdateOrderStatus) Reduce(s State, env Env) (State, error) {
	return withOrders(s)(s.Orders.UpdateOrderStatus(i.ID, i.Status, env.Now()))
}

// SetTracking records carrier tracking for an order
type SetTracking struct {
	ID                string
	TrackingNumber    string
	EstimatedDelivery *time.Time
}

func (i SetTracking) Reduce(s State, env Env) (State, error) {
	return withOrders(s)(s.Orders.SetTracking(i.ID, i.TrackingNumber, i.EstimatedDelivery, env.Now()))
}

// SetOrders replaces the order history
type SetOrders struct{ Orders []order.Order }

func (i SetOrders) Reduce(s State, _ Env) (State, error) {
	s.Orders = s.Orders.SetOrders(i.Orders)
	return s, nil
}

func withOrders(s State) func(order.State, error) (State, error) {
	return func(o order.State, err error) (State, error) {
		if err != nil {
			return s, err
		}
		s.Orders = o
		return s, nil
	}
}
