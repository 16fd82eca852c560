// internal/domain/cart/state.go
package cart

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/catalog"
)

var hundred = decimal.NewFromInt(100)

// State is the shopper's cart. Totals are recomputed in full after every transition.
type State struct {
	Items           []Item  `json:"items"`
	DiscountPercent float64 `json:"discount_percent"`
	ShippingCost    float64 `json:"shipping_cost"`
	TaxRate         float64 `json:"tax_rate"`
	IsOpen          bool    `json:"is_open"`
	Totals          Totals  `json:"totals"`
}

// NewState returns an empty cart with the default tax rate
func NewState() State {
	return State{
		Items:   []Item{},
		TaxRate: DefaultTaxRate,
	}.recalculate()
}

// AddItem adds quantity of product to the cart. A line with the same product and
// variant absorbs the quantity; otherwise a new line is appended under lineID.
func (s State) AddItem(lineID string, product catalog.Product, quantity int, variant Variant, now time.Time) (State, error) {
	if quantity < 1 {
		return s, domain.InvalidQuantity("cart.AddItem", quantity)
	}
	if product.ID == "" {
		return s, domain.InvalidInput("cart.AddItem", "product id is required")
	}

	items := s.cloneItems()
	for i := range items {
		if items[i].Product.ID == product.ID && items[i].Variant == variant {
			items[i].Quantity += quantity
			s.Items = items
			return s.recalculate(), nil
		}
	}

	if lineID == "" {
		return s, domain.InvalidInput("cart.AddItem", "line id is required")
	}
	s.Items = append(items, Item{
		ID:       lineID,
		Product:  product,
		Quantity: quantity,
		Variant:  variant,
		AddedAt:  now,
	})
	return s.recalculate(), nil
}

// RemoveItem drops a line. Removing an absent line is a no-op.
func (s State) RemoveItem(lineID string) State {
	items := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ID != lineID {
			items = append(items, item)
		}
	}
	s.Items = items
	return s.recalculate()
}

// SetQuantity sets the quantity of a line; zero or less removes it
func (s State) SetQuantity(lineID string, quantity int) (State, error) {
	i := s.indexOf(lineID)
	if i < 0 {
		return s, domain.NotFound("cart.SetQuantity", lineID)
	}
	if quantity <= 0 {
		return s.RemoveItem(lineID), nil
	}
	items := s.cloneItems()
	items[i].Quantity = quantity
	s.Items = items
	return s.recalculate(), nil
}

// IncrementQuantity adds one to a line
func (s State) IncrementQuantity(lineID string) (State, error) {
	i := s.indexOf(lineID)
	if i < 0 {
		return s, domain.NotFound("cart.IncrementQuantity", lineID)
	}
	items := s.cloneItems()
	items[i].Quantity++
	s.Items = items
	return s.recalculate(), nil
}

// DecrementQuantity subtracts one from a line, removing it when it reaches zero
func (s State) DecrementQuantity(lineID string) (State, error) {
	i := s.indexOf(lineID)
	if i < 0 {
		return s, domain.NotFound("cart.DecrementQuantity", lineID)
	}
	if s.Items[i].Quantity <= 1 {
		return s.RemoveItem(lineID), nil
	}
	items := s.cloneItems()
	items[i].Quantity--
	s.Items = items
	return s.recalculate(), nil
}

// ApplyDiscount sets the cart-wide discount percentage. The last call wins.
func (s State) ApplyDiscount(percent float64) (State, error) {
	if !finite(percent) || percent < 0 || percent > 100 {
		return s, domain.InvalidRange("cart.ApplyDiscount", fmt.Sprintf("discount %.2f outside [0,100]", percent))
	}
	s.DiscountPercent = percent
	return s.recalculate(), nil
}

// SetShippingCost sets the flat shipping charge
func (s State) SetShippingCost(amount float64) (State, error) {
	if !finite(amount) || amount < 0 {
		return s, domain.InvalidRange("cart.SetShippingCost", fmt.Sprintf("shipping cost %.2f must be finite and non-negative", amount))
	}
	s.ShippingCost = amount
	return s.recalculate(), nil
}

// SetTaxRate sets the tax rate applied to the discounted subtotal
func (s State) SetTaxRate(rate float64) (State, error) {
	if !finite(rate) || rate < 0 || rate > 1 {
		return s, domain.InvalidRange("cart.SetTaxRate", fmt.Sprintf("tax rate %.4f outside [0,1]", rate))
	}
	s.TaxRate = rate
	return s.recalculate(), nil
}

// Clear removes every line and the discount. Shipping and tax rate are kept.
func (s State) Clear() State {
	s.Items = []Item{}
	s.DiscountPercent = 0
	return s.recalculate()
}

// Load replaces the lines wholesale, e.g. when restoring a saved cart
func (s State) Load(items []Item) (State, error) {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ID == "" || seen[item.ID] {
			return s, domain.InvalidInput("cart.Load", fmt.Sprintf("duplicate or empty line id %q", item.ID))
		}
		if item.Quantity < 1 {
			return s, domain.InvalidQuantity("cart.Load", item.Quantity)
		}
		seen[item.ID] = true
	}
	s.Items = append([]Item{}, items...)
	return s.recalculate(), nil
}

// SetOpen shows or hides the cart drawer
func (s State) SetOpen(open bool) State {
	s.IsOpen = open
	return s
}

// Toggle flips the cart drawer
func (s State) Toggle() State {
	s.IsOpen = !s.IsOpen
	return s
}

// ItemByID finds a line by id
func (s State) ItemByID(lineID string) (Item, bool) {
	if i := s.indexOf(lineID); i >= 0 {
		return s.Items[i], true
	}
	return Item{}, false
}

// ItemByProductID finds the first line holding a product
func (s State) ItemByProductID(productID string) (Item, bool) {
	for _, item := range s.Items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return Item{}, false
}

// IsEmpty reports whether the cart has no lines
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// CalculateTotals applies the totals formula to a set of lines
func CalculateTotals(items []Item, discountPercent, taxRate, shippingCost float64) Totals {
	subtotal := decimal.Zero
	totalItems := 0
	for _, item := range items {
		subtotal = subtotal.Add(lineTotal(item))
		totalItems += item.Quantity
	}

	discount := subtotal.Mul(decimal.NewFromFloat(discountPercent).Div(hundred))
	tax := subtotal.Sub(discount).Mul(decimal.NewFromFloat(taxRate))
	shipping := decimal.NewFromFloat(shippingCost)
	total := subtotal.Sub(discount).Add(tax).Add(shipping)

	return Totals{
		TotalItems:     totalItems,
		LineCount:      len(items),
		Subtotal:       subtotal.InexactFloat64(),
		DiscountAmount: discount.InexactFloat64(),
		TaxAmount:      tax.InexactFloat64(),
		ShippingCost:   shipping.InexactFloat64(),
		Total:          total.InexactFloat64(),
	}
}

func lineTotal(item Item) decimal.Decimal {
	return decimal.NewFromFloat(item.Product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func (s State) recalculate() State {
	s.Totals = CalculateTotals(s.Items, s.DiscountPercent, s.TaxRate, s.ShippingCost)
	return s
}

func (s State) indexOf(lineID string) int {
	for i, item := range s.Items {
		if item.ID == lineID {
			return i
		}
	}
	return -1
}

func (s State) cloneItems() []Item {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return items
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
