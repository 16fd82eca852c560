// internal/store/cart_intents.go
package store

import (
	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// AddItem puts a product snapshot into the cart
type AddItem struct {
	Product  catalog.Product
	Quantity int
	Variant  cart.Variant
}

func (i AddItem) Reduce(s State, env Env) (State, error) {
	c, err := s.Cart.AddItem(env.NewID(), i.Product, i.Quantity, i.Variant, env.Now())
	if err != nil {
		return s, err
	}
	s.Cart = c
	return s, nil
}

// AddCatalogItem adds a catalog product to the cart by id
type AddCatalogItem struct {
	ProductID string
	Quantity  int
	Variant   cart.Variant
}

func (i AddCatalogItem) Reduce(s State, env Env) (State, error) {
	p, ok := s.Catalog.ProductByID(i.ProductID)
	if !ok {
		return s, domain.NotFound("store.AddCatalogItem", i.ProductID)
	}
	return AddItem{Product: p, Quantity: i.Quantity, Variant: i.Variant}.Reduce(s, env)
}

// RemoveItem drops a cart line
type RemoveItem struct{ LineID string }

func (i RemoveItem) Reduce(s State, _ Env) (State, error) {
	s.Cart = s.Cart.RemoveItem(i.LineID)
	return s, nil
}

// SetQuantity sets a cart line quantity; zero or less removes the line
type SetQuantity struct {
	LineID   string
	Quantity int
}

func (i SetQuantity) Reduce(s State, _ Env) (State, error) {
	c, err := s.Cart.SetQuantity(i.LineID, i.Quantity)
	if err != nil {
		return s, err
	}
	s.Cart = c
	return s, nil
}

// IncrementQuantity adds one to a cart line
type IncrementQuantity struct{ LineID string }

func (i IncrementQuantity) Reduce(s State, _ Env) (State, error) {
	c, err := s.Cart.IncrementQuantity(i.LineID)
	if err != nil {
		return s, err
	}
	s.Cart = c
	return s, nil
}

// DecrementQuantity subtracts one from a cart line
type DecrementQuantity struct{ LineID string }

func (i DecrementQuantity) Reduce(s State, _ Env) (State, error) {
	c, err := s.Cart.DecrementQuantity(i.LineID)
	if err != nil {
		return s, err
	}
	s.Cart = c
	return s, nil
}

// ApplyDiscount sets the cart-wide discount percentage
type ApplyDiscount struct{ Percent float64 }

func (i ApplyDiscount) Reduce(s State, _ Env) (State, error) {
	c, err := s.Cart.ApplyDiscount(i.Percent)
	if err != nil {
		return s, err
	}
	s.Cart = c
	return s, nil
}

// SetShippingCost sets the flat shipping charge
type SetShippingCost struct{ Amount float64 }

func (i SetShippingCost) Reduce(s State, _ Env) (State, error) {
	c, err := s.Cart.SetShippingCost(i.Amount)
	if err != nil {
		return s, err
	}
	s.Cart = c
	return s, nil
}

// SetTaxRate sets the cart tax rate
type SetTaxRate struct{ Rate float64 }

func (i SetTaxRate) Reduce(s State, _ Env) (State, error) {
	c, err := s.Cart.SetTaxRate(i.Rate)
	if err != nil {
		return s, err
	}
	s.Cart = c
	return s, nil
}

// ClearCart empties the cart and resets the discount
type ClearCart struct{}

func (ClearCart) Reduce(s State, _ Env) (State, error) {
	s.Cart = s.Cart.Clear()
	return s, nil
}

// LoadCart replaces the cart lines
type LoadCart struct{ Items []cart.Item }

func (i LoadCart) Reduce(s State, _ Env) (State, error) {
	c, err := s.Cart.Load(i.Items)
	if err != nil {
		return s, err
	}
	s.Cart = c
	return s, nil
}

// SetCartOpen shows or hides the cart drawer
type SetCartOpen struct{ Open bool }

func (i SetCartOpen) Reduce(s State, _ Env) (State, error) {
	s.Cart = s.Cart.SetOpen(i.Open)
	return s, nil
}

// ToggleCart flips the cart drawer
type ToggleCart struct{}

func (ToggleCart) Reduce(s State, _ Env) (State, error) {
	s.Cart = s.Cart.Toggle()
	return s, nil
}
