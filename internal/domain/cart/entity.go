// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront/internal/domain/catalog"
)

// DefaultTaxRate is applied to the discounted subtotal
const DefaultTaxRate = 0.08

// Variant identifies the chosen size and colour of a product.
// Lines merge only when product and variant both match.
type Variant struct {
	Size  string `json:"selected_size,omitempty"`
	Color string `json:"selected_color,omitempty"`
}

// Item is one cart line. Product is a snapshot taken when the line was created.
type Item struct {
	ID       string          `json:"id"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Variant
	AddedAt time.Time `json:"added_at"`
}

// LineTotal returns price times quantity
func (i Item) LineTotal() float64 {
	return lineTotal(i).InexactFloat64()
}

// Totals represents calculated cart totals
type Totals struct {
	TotalItems     int     `json:"total_items"` // Sum of all quantities
	LineCount      int     `json:"line_count"`
	Subtotal       float64 `json:"subtotal"` // Total before discount/tax/shipping
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	ShippingCost   float64 `json:"shipping_cost"`
	Total          float64 `json:"total"` // Final total
}
