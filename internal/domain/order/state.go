// internal/domain/order/state.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/user"
)

// RecentOrdersLimit caps the recent orders selection
const RecentOrdersLimit = 5

// State holds the shopper's orders, newest first
type State struct {
	Orders []Order `json:"orders"`
}

// NewState returns an empty order history
func NewState() State {
	return State{Orders: []Order{}}
}

// PlaceRequest describes a checkout of the current cart
type PlaceRequest struct {
	ID            string
	UserID        string
	Cart          cart.State
	Address       user.Address
	PaymentMethod string
	Now           time.Time
}

// NewOrder snapshots the cart lines and totals into a pending order
func NewOrder(req PlaceRequest) (Order, error) {
	const op = "order.NewOrder"
	if req.ID == "" {
		return Order{}, domain.InvalidInput(op, "order id is required")
	}
	if req.Cart.IsEmpty() {
		return Order{}, domain.InvalidState(op, req.ID, "cart is empty")
	}
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		return Order{}, domain.InvalidInput(op, "payment method is required")
	}
	if err := user.ValidateAddress(req.Address); err != nil {
		return Order{}, &domain.Error{Op: op, ID: req.ID, Err: err}
	}

	items := make([]cart.Item, len(req.Cart.Items))
	copy(items, req.Cart.Items)
	eta := req.Now.Add(DeliveryWindow)
	totals := req.Cart.Totals

	return Order{
		ID:                req.ID,
		Number:            GenerateNumber(req.ID, req.Now),
		UserID:            req.UserID,
		Items:             items,
		Subtotal:          totals.Subtotal,
		DiscountAmount:    totals.DiscountAmount,
		TaxAmount:         totals.TaxAmount,
		ShippingCost:      totals.ShippingCost,
		TotalAmount:       totals.Total,
		Status:            StatusPending,
		ShippingAddress:   req.Address,
		PaymentMethod:     method,
		EstimatedDelivery: &eta,
		CreatedAt:         req.Now,
		UpdatedAt:         req.Now,
	}, nil
}

// AddOrder prepends an order to the history
func (s State) AddOrder(o Order) (State, error) {
	if o.ID == "" {
		return s, domain.InvalidInput("order.AddOrder", "order id is required")
	}
	if _, ok := s.OrderByID(o.ID); ok {
		return s, domain.InvalidInput("order.AddOrder", fmt.Sprintf("order %s already exists", o.ID))
	}
	orders := make([]Order, 0, len(s.Orders)+1)
	orders = append(orders, o)
	s.Orders = append(orders, s.Orders...)
	return s, nil
}

// UpdateOrderStatus moves an order to status. Delivered and cancelled orders are final.
func (s State) UpdateOrderStatus(id string, status Status, now time.Time) (State, error) {
	const op = "order.UpdateOrderStatus"
	if !status.Valid() {
		return s, domain.InvalidInput(op, fmt.Sprintf("unknown status %q", status))
	}
	return s.update(op, id, func(o *Order) error {
		if o.Status.IsTerminal() && o.Status != status {
			return domain.InvalidState(op, id, fmt.Sprintf("order is %s", o.Status))
		}
		o.Status = status
		o.UpdatedAt = now
		return nil
	})
}

// SetTracking records the carrier tracking number and delivery estimate
func (s State) SetTracking(id, trackingNumber string, eta *time.Time, now time.Time) (State, error) {
	const op = "order.SetTracking"
	return s.update(op, id, func(o *Order) error {
		if o.Status.IsTerminal() {
			return domain.InvalidState(op, id, fmt.Sprintf("order is %s", o.Status))
		}
		o.TrackingNumber = trackingNumber
		if eta != nil {
			t := *eta
			o.EstimatedDelivery = &t
		}
		o.UpdatedAt = now
		return nil
	})
}

// SetOrders replaces the history wholesale
func (s State) SetOrders(orders []Order) State {
	s.Orders = append([]Order{}, orders...)
	return s
}

// ClaimGuestOrders hands the orders placed before sign-in to userID and puts
// them ahead of the stored history. The claimed orders are returned so they
// can be stored under the account.
func (s State) ClaimGuestOrders(userID string, history []Order) (State, []Order) {
	claimed := []Order{}
	seen := make(map[string]bool)
	for _, o := range s.Orders {
		if o.UserID != "" {
			continue
		}
		o.UserID = userID
		claimed = append(claimed, o)
		seen[o.ID] = true
	}

	orders := append([]Order{}, claimed...)
	for _, o := range history {
		if !seen[o.ID] {
			orders = append(orders, o)
		}
	}
	s.Orders = orders
	return s, claimed
}

// Clear forgets every order
func (s State) Clear() State {
	s.Orders = []Order{}
	return s
}

// OrderByID finds an order by id
func (s State) OrderByID(id string) (Order, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Orders[i], true
	}
	return Order{}, false
}

// RecentOrders returns the newest orders
func (s State) RecentOrders() []Order {
	n := len(s.Orders)
	if n > RecentOrdersLimit {
		n = RecentOrdersLimit
	}
	return append([]Order{}, s.Orders[:n]...)
}

func (s State) update(op, id string, fn func(*Order) error) (State, error) {
	i := s.indexOf(id)
	if i < 0 {
		return s, domain.NotFound(op, id)
	}
	o := s.Orders[i]
	if err := fn(&o); err != nil {
		return s, err
	}
	orders := make([]Order, len(s.Orders))
	copy(orders, s.Orders)
	orders[i] = o
	s.Orders = orders
	return s, nil
}

func (s State) indexOf(id string) int {
	for i, o := range s.Orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
