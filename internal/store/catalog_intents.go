// internal/store/catalog_intents.go
package store

import (
	"strings"

	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// LoadCatalog replaces the catalog lists wholesale
type LoadCatalog struct{ Seed catalog.Seed }

func (i LoadCatalog) Reduce(s State, env Env) (State, error) {
	s.Catalog = s.Catalog.LoadInitialData(i.Seed, env.Now())
	return s, nil
}

// SetProducts replaces the master product list
type SetProducts struct{ Products []catalog.Product }

func (i SetProducts) Reduce(s State, env Env) (State, error) {
	s.Catalog = s.Catalog.SetProducts(i.Products, env.Now())
	return s, nil
}

// AddProduct appends a product to the catalog
type AddProduct struct{ Product catalog.Product }

func (i AddProduct) Reduce(s State, env Env) (State, error) {
	p := i.Product
	if p.AddedAt.IsZero() {
		p.AddedAt = env.Now()
	}
	return withCatalog(s)(s.Catalog.AddProduct(p))
}

// UpdateProduct replaces a catalog product
type UpdateProduct struct{ Product catalog.Product }

func (i UpdateProduct) Reduce(s State, _ Env) (State, error) {
	return withCatalog(s)(s.Catalog.UpdateProduct(i.Product))
}

// RemoveProduct drops a product from the catalog and its derived lists
type RemoveProduct struct{ ID string }

func (i RemoveProduct) Reduce(s State, _ Env) (State, error) {
	return withCatalog(s)(s.Catalog.RemoveProduct(i.ID))
}

// UpdateProductStock sets product availability
type UpdateProductStock struct {
	ID      string
	InStock bool
}

func (i UpdateProductStock) Reduce(s State, _ Env) (State, error) {
	return withCatalog(s)(s.Catalog.UpdateProductStock(i.ID, i.InStock))
}

// UpdateProductPrice sets product price and optionally the original price
type UpdateProductPrice struct {
	ID            string
	Price         float64
	OriginalPrice *float64
}

func (i UpdateProductPrice) Reduce(s State, _ Env) (State, error) {
	return withCatalog(s)(s.Catalog.UpdateProductPrice(i.ID, i.Price, i.OriginalPrice))
}

// UpdateProductRating sets product rating and review count
type UpdateProductRating struct {
	ID      string
	Rating  float64
	Reviews int
}

func (i UpdateProductRating) Reduce(s State, _ Env) (State, error) {
	return withCatalog(s)(s.Catalog.UpdateProductRating(i.ID, i.Rating, i.Reviews))
}

// SetFilters replaces the active filters
type SetFilters struct{ Filters catalog.Filters }

func (i SetFilters) Reduce(s State, _ Env) (State, error) {
	return withCatalog(s)(s.Catalog.SetFilters(i.Filters))
}

// ClearFilters restores the default filters
type ClearFilters struct{}

func (ClearFilters) Reduce(s State, _ Env) (State, error) {
	s.Catalog = s.Catalog.ClearFilters()
	return s, nil
}

// SelectCategory narrows the current view to a category slug
type SelectCategory struct{ Slug string }

func (i SelectCategory) Reduce(s State, _ Env) (State, error) {
	return withCatalog(s)(s.Catalog.SelectCategory(i.Slug))
}

// SortProducts re-sorts the current view
type SortProducts struct {
	SortBy catalog.SortField
	Order  catalog.SortOrder
}

func (i SortProducts) Reduce(s State, _ Env) (State, error) {
	return withCatalog(s)(s.Catalog.SortProducts(i.SortBy, i.Order))
}

// SetPage moves the current view to a page
type SetPage struct{ Page int }

func (i SetPage) Reduce(s State, _ Env) (State, error) {
	return withCatalog(s)(s.Catalog.SetPage(i.Page))
}

// SetItemsPerPage changes the page size
type SetItemsPerPage struct{ Limit int }

func (i SetItemsPerPage) Reduce(s State, _ Env) (State, error) {
	return withCatalog(s)(s.Catalog.SetItemsPerPage(i.Limit))
}

// Search runs a catalog search and remembers the query
type Search struct{ Query string }

func (i Search) Reduce(s State, _ Env) (State, error) {
	s.Catalog = s.Catalog.Search(i.Query)
	s.UI = s.UI.SetSearchQuery(i.Query)
	if strings.TrimSpace(i.Query) != "" {
		s.UI = s.UI.AddToSearchHistory(i.Query)
	}
	return s, nil
}

// ClearSearch forgets the last search results
type ClearSearch struct{}

func (ClearSearch) Reduce(s State, _ Env) (State, error) {
	s.Catalog = s.Catalog.ClearSearch()
	s.UI = s.UI.SetSearchQuery("")
	return s, nil
}

// SelectProduct opens a product and records the view
type SelectProduct struct{ ID string }

func (i SelectProduct) Reduce(s State, env Env) (State, error) {
	c, err := s.Catalog.SelectProduct(i.ID)
	if err != nil {
		return s, err
	}
	s.Catalog = c
	s.UI = s.UI.IncrementPageViews(env.Now())
	return s, nil
}

// AddToRecentlyViewed records a product view
type AddToRecentlyViewed struct{ ProductID string }

func (i AddToRecentlyViewed) Reduce(s State, _ Env) (State, error) {
	p, ok := s.Catalog.ProductByID(i.ProductID)
	if !ok {
		return s, domain.NotFound("store.AddToRecentlyViewed", i.ProductID)
	}
	s.Catalog = s.Catalog.AddToRecentlyViewed(p)
	return s, nil
}

// ClearRecentlyViewed empties the recently viewed list
type ClearRecentlyViewed struct{}

func (ClearRecentlyViewed) Reduce(s State, _ Env) (State, error) {
	s.Catalog = s.Catalog.ClearRecentlyViewed()
	return s, nil
}

// AddToCompare puts a catalog product on the comparison list.
// A full list or a product already present leaves the state unchanged.
type AddToCompare struct{ ProductID string }

func (i AddToCompare) Reduce(s State, _ Env) (State, error) {
	p, ok := s.Catalog.ProductByID(i.ProductID)
	if !ok {
		return s, domain.NotFound("store.AddToCompare", i.ProductID)
	}
	s.Catalog = s.Catalog.AddToCompare(p)
	return s, nil
}

// RemoveFromCompare drops a product from the comparison list
type RemoveFromCompare struct{ ProductID string }

func (i RemoveFromCompare) Reduce(s State, _ Env) (State, error) {
	s.Catalog = s.Catalog.RemoveFromCompare(i.ProductID)
	return s, nil
}

// ClearCompare empties the comparison list
type ClearCompare struct{}

func (ClearCompare) Reduce(s State, _ Env) (State, error) {
	s.Catalog = s.Catalog.ClearCompare()
	return s, nil
}

// InvalidateCache marks the loaded catalog as stale
type InvalidateCache struct{}

func (InvalidateCache) Reduce(s State, _ Env) (State, error) {
	s.Catalog = s.Catalog.InvalidateCache()
	return s, nil
}

// ResetCatalog clears the catalog but keeps the categories
type ResetCatalog struct{}

func (ResetCatalog) Reduce(s State, _ Env) (State, error) {
	s.Catalog = s.Catalog.Reset()
	return s, nil
}

func withCatalog(s State) func(catalog.State, error) (State, error) {
	return func(c catalog.State, err error) (State, error) {
		if err != nil {
			return s, err
		}
		s.Catalog = c
		return s, nil
	}
}
