// internal/domain/order/entity.go
package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/user"
)

// Status represents the order status
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether an order in this status can no longer change
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// DeliveryWindow is added to the placement time to estimate delivery
const DeliveryWindow = 48 * time.Hour

// Order represents a placed order. Items are snapshots of the cart lines.
type Order struct {
	ID              string       `json:"id"`
	Number          string       `json:"order_number"`
	UserID          string       `json:"user_id"`
	Items           []cart.Item  `json:"items"`
	Subtotal        float64      `json:"subtotal"`
	DiscountAmount  float64      `json:"discount_amount"`
	TaxAmount       float64      `json:"tax_amount"`
	ShippingCost    float64      `json:"shipping_cost"`
	TotalAmount     float64      `json:"total_amount"`
	Status          Status       `json:"status"`
	ShippingAddress user.Address `json:"shipping_address"`
	PaymentMethod   string       `json:"payment_method"`
	TrackingNumber  string       `json:"tracking_number,omitempty"`

	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ItemCount returns the number of units in the order
func (o Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// CanBeCancelled checks if order can be cancelled
func (o Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusProcessing
}

// GenerateNumber builds a human readable order number.
// Format: ORD-YYYYMMDD-XXXXXXXX
func GenerateNumber(id string, createdAt time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("ORD-%s-%s", createdAt.Format("20060102"), suffix)
}

// Source loads and stores a shopper's order history
type Source interface {
	ListOrders(ctx context.Context, userID string) ([]Order, error)
	SaveOrder(ctx context.Context, o Order) error
}
