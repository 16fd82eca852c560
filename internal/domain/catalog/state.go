// internal/domain/catalog/state.go
package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/your-org/storefront/internal/domain"
)

const (
	// DefaultItemsPerPage is the page size of a fresh catalog view
	DefaultItemsPerPage = 12
	// DefaultCacheExpiry is how long loaded catalog data counts as fresh
	DefaultCacheExpiry = 5 * time.Minute
	// TopRatedLimit caps the top-rated selection
	TopRatedLimit = 10
)

// State holds the master catalog and the views derived from it.
// Transitions never modify a State in place; they return the next one.
type State struct {
	Products   []Product  `json:"products"`
	Featured   []Product  `json:"featured"`
	Popular    []Product  `json:"popular"`
	New        []Product  `json:"new"`
	Categories []Category `json:"categories"`

	CurrentProducts []Product `json:"current_products"`
	CurrentCategory *Category `json:"current_category,omitempty"`
	CurrentPage     int       `json:"current_page"`
	ItemsPerPage    int       `json:"items_per_page"`
	Filters         Filters   `json:"filters"`

	SearchQuery   string    `json:"search_query"`
	SearchResults []Product `json:"search_results"`

	SelectedProduct *Product  `json:"selected_product,omitempty"`
	RecentlyViewed  []Product `json:"recently_viewed"`
	CompareList     []Product `json:"compare_list"`

	LastUpdated time.Time     `json:"last_updated"`
	CacheExpiry time.Duration `json:"cache_expiry"`
}

// NewState returns an empty catalog with default filters
func NewState() State {
	return State{
		Products:        []Product{},
		Featured:        []Product{},
		Popular:         []Product{},
		New:             []Product{},
		Categories:      []Category{},
		CurrentProducts: []Product{},
		CurrentPage:     1,
		ItemsPerPage:    DefaultItemsPerPage,
		Filters:         DefaultFilters(),
		SearchResults:   []Product{},
		RecentlyViewed:  []Product{},
		CompareList:     []Product{},
		CacheExpiry:     DefaultCacheExpiry,
	}
}

// LoadInitialData replaces every master list wholesale
func (s State) LoadInitialData(seed Seed, now time.Time) State {
	s.Products = cloneProducts(seed.Products)
	s.Categories = append([]Category{}, seed.Categories...)
	s.Featured = cloneProducts(seed.Featured)
	s.Popular = cloneProducts(seed.Popular)
	s.New = cloneProducts(seed.New)
	s.LastUpdated = now
	return s.RefreshView()
}

// SetProducts replaces the master product list
func (s State) SetProducts(products []Product, now time.Time) State {
	s.Products = cloneProducts(products)
	s.LastUpdated = now
	return s.RefreshView()
}

// AddProduct appends a product to the master list
func (s State) AddProduct(p Product) (State, error) {
	if p.ID == "" {
		return s, domain.InvalidInput("catalog.AddProduct", "product id is required")
	}
	if ContainsID(s.Products, p.ID) {
		return s, domain.InvalidInput("catalog.AddProduct", fmt.Sprintf("product %s already exists", p.ID))
	}
	s.Products = append(cloneProducts(s.Products), p)
	return s.RefreshView(), nil
}

// UpdateProduct replaces the product with the same id
func (s State) UpdateProduct(p Product) (State, error) {
	return s.mutateProduct("catalog.UpdateProduct", p.ID, func(*Product) error {
		return nil
	}, &p)
}

// RemoveProduct drops a product from the master list and every derived list
func (s State) RemoveProduct(id string) (State, error) {
	if !ContainsID(s.Products, id) {
		return s, domain.NotFound("catalog.RemoveProduct", id)
	}
	s.Products = RemoveByID(s.Products, id)
	s.Featured = RemoveByID(s.Featured, id)
	s.Popular = RemoveByID(s.Popular, id)
	s.New = RemoveByID(s.New, id)
	s.RecentlyViewed = RemoveByID(s.RecentlyViewed, id)
	s.CompareList = RemoveByID(s.CompareList, id)
	s.SearchResults = RemoveByID(s.SearchResults, id)
	if s.SelectedProduct != nil && s.SelectedProduct.ID == id {
		s.SelectedProduct = nil
	}
	return s.RefreshView(), nil
}

// UpdateProductStock sets the availability flag of a product
func (s State) UpdateProductStock(id string, inStock bool) (State, error) {
	return s.mutateProduct("catalog.UpdateProductStock", id, func(p *Product) error {
		p.InStock = inStock
		return nil
	}, nil)
}

// UpdateProductPrice sets the price and, when given, the original price of a product
func (s State) UpdateProductPrice(id string, price float64, originalPrice *float64) (State, error) {
	return s.mutateProduct("catalog.UpdateProductPrice", id, func(p *Product) error {
		if !finite(price) || price < 0 {
			return domain.InvalidRange("catalog.UpdateProductPrice", "price must be a finite, non-negative number")
		}
		if originalPrice != nil && (!finite(*originalPrice) || *originalPrice < 0) {
			return domain.InvalidRange("catalog.UpdateProductPrice", "original price must be a finite, non-negative number")
		}
		p.Price = price
		if originalPrice != nil {
			op := *originalPrice
			p.OriginalPrice = &op
		}
		return nil
	}, nil)
}

// UpdateProductRating sets rating and review count of a product
func (s State) UpdateProductRating(id string, rating float64, reviews int) (State, error) {
	return s.mutateProduct("catalog.UpdateProductRating", id, func(p *Product) error {
		if !finite(rating) || rating < 0 || rating > 5 {
			return domain.InvalidRange("catalog.UpdateProductRating", fmt.Sprintf("rating %.1f outside [0,5]", rating))
		}
		if reviews < 0 {
			return domain.InvalidRange("catalog.UpdateProductRating", "reviews must not be negative")
		}
		p.Rating = rating
		p.Reviews = reviews
		return nil
	}, nil)
}

// SetFilters replaces the active filter set wholesale and recomputes the current view
func (s State) SetFilters(f Filters) (State, error) {
	if err := f.Validate(); err != nil {
		return s, err
	}
	s.Filters = f
	s.CurrentPage = 1
	return s.RefreshView(), nil
}

// ClearFilters restores default filters
func (s State) ClearFilters() State {
	s.Filters = DefaultFilters()
	s.CurrentCategory = nil
	s.CurrentPage = 1
	return s.RefreshView()
}

// SelectCategory narrows the current view to one category. An empty slug clears the selection.
func (s State) SelectCategory(slug string) (State, error) {
	if slug == "" {
		s.CurrentCategory = nil
		s.Filters.Categories = []string{}
		s.CurrentPage = 1
		return s.RefreshView(), nil
	}

	category, ok := s.CategoryBySlug(slug)
	if !ok {
		return s, domain.NotFound("catalog.SelectCategory", slug)
	}
	s.CurrentCategory = &category
	s.Filters.Categories = []string{category.ID}
	s.CurrentPage = 1
	return s.RefreshView(), nil
}

// RefreshView recomputes the current products from the master list and filters
func (s State) RefreshView() State {
	s.CurrentProducts = ApplyFilters(s.Products, s.Filters)
	return s
}

// SortProducts re-sorts the current view and records the choice in the filters
func (s State) SortProducts(sortBy SortField, order SortOrder) (State, error) {
	f := s.Filters
	f.SortBy = sortBy
	f.SortOrder = order
	if err := f.Validate(); err != nil {
		return s, err
	}
	s.Filters = f
	current := cloneProducts(s.CurrentProducts)
	SortProducts(current, sortBy, order)
	s.CurrentProducts = current
	return s, nil
}

// SetPage moves the current view to page
func (s State) SetPage(page int) (State, error) {
	if page < 1 {
		return s, domain.InvalidRange("catalog.SetPage", fmt.Sprintf("page %d must be at least 1", page))
	}
	s.CurrentPage = page
	return s, nil
}

// SetItemsPerPage changes the page size and returns to the first page
func (s State) SetItemsPerPage(n int) (State, error) {
	if n < 1 {
		return s, domain.InvalidRange("catalog.SetItemsPerPage", fmt.Sprintf("page size %d must be at least 1", n))
	}
	s.ItemsPerPage = n
	s.CurrentPage = 1
	return s, nil
}

// Search records query and its matches over the master list
func (s State) Search(query string) State {
	s.SearchQuery = query
	s.SearchResults = Search(s.Products, query)
	return s
}

// ClearSearch forgets the last search
func (s State) ClearSearch() State {
	s.SearchQuery = ""
	s.SearchResults = []Product{}
	return s
}

// SelectProduct opens a product and records it as recently viewed
func (s State) SelectProduct(id string) (State, error) {
	p, ok := s.ProductByID(id)
	if !ok {
		return s, domain.NotFound("catalog.SelectProduct", id)
	}
	s.SelectedProduct = &p
	return s.AddToRecentlyViewed(p), nil
}

// AddToRecentlyViewed moves product to the front of the recently viewed list
func (s State) AddToRecentlyViewed(p Product) State {
	s.RecentlyViewed = PushRecentlyViewed(s.RecentlyViewed, p)
	return s
}

// ClearRecentlyViewed empties the recently viewed list
func (s State) ClearRecentlyViewed() State {
	s.RecentlyViewed = []Product{}
	return s
}

// AddToCompare appends product to the comparison list; a full list or a duplicate is ignored
func (s State) AddToCompare(p Product) State {
	s.CompareList, _ = AppendCompare(s.CompareList, p)
	return s
}

// RemoveFromCompare drops a product from the comparison list
func (s State) RemoveFromCompare(id string) State {
	s.CompareList = RemoveByID(s.CompareList, id)
	return s
}

// ClearCompare empties the comparison list
func (s State) ClearCompare() State {
	s.CompareList = []Product{}
	return s
}

// InvalidateCache marks the loaded catalog as stale
func (s State) InvalidateCache() State {
	s.LastUpdated = time.Time{}
	return s
}

// Reset returns a fresh catalog that keeps the categories
func (s State) Reset() State {
	next := NewState()
	next.Categories = s.Categories
	return next
}

// Selectors

// ProductByID finds a product in the master list
func (s State) ProductByID(id string) (Product, bool) {
	if i := indexOf(s.Products, id); i >= 0 {
		return s.Products[i], true
	}
	return Product{}, false
}

// CategoryByID finds a category by id
func (s State) CategoryByID(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryBySlug finds a category by slug
func (s State) CategoryBySlug(slug string) (Category, bool) {
	for _, c := range s.Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}

// ProductsByCategory lists products of one category
func (s State) ProductsByCategory(categoryID string) []Product {
	result := make([]Product, 0)
	for _, p := range s.Products {
		if p.Category.ID == categoryID {
			result = append(result, p)
		}
	}
	return result
}

// AvailableProducts lists in-stock products
func (s State) AvailableProducts() []Product {
	result := make([]Product, 0)
	for _, p := range s.Products {
		if p.InStock {
			result = append(result, p)
		}
	}
	return result
}

// ProductsInPriceRange lists products priced within [minPrice, maxPrice]
func (s State) ProductsInPriceRange(minPrice, maxPrice float64) []Product {
	r := PriceRange{Min: minPrice, Max: maxPrice}
	result := make([]Product, 0)
	for _, p := range s.Products {
		if r.Contains(p.Price) {
			result = append(result, p)
		}
	}
	return result
}

// TopRated returns the best rated products, highest first
func (s State) TopRated() []Product {
	sorted := cloneProducts(s.Products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	if len(sorted) > TopRatedLimit {
		sorted = sorted[:TopRatedLimit]
	}
	return sorted
}

// IsInCompare reports whether a product is on the comparison list
func (s State) IsInCompare(id string) bool {
	return ContainsID(s.CompareList, id)
}

// CompareCount returns the size of the comparison list
func (s State) CompareCount() int {
	return len(s.CompareList)
}

// IsCacheValid reports whether the loaded catalog is still fresh at now
func (s State) IsCacheValid(now time.Time) bool {
	return !s.LastUpdated.IsZero() && now.Sub(s.LastUpdated) < s.CacheExpiry
}

// CurrentPageItems returns the current page of the current view
func (s State) CurrentPageItems() ([]Product, Pagination) {
	return Paginate(s.CurrentProducts, s.CurrentPage, s.ItemsPerPage)
}

// mutateProduct applies fn to a copy of the product with id, or installs replacement when given,
// and propagates the new value to every catalog list holding it.
func (s State) mutateProduct(op, id string, fn func(*Product) error, replacement *Product) (State, error) {
	i := indexOf(s.Products, id)
	if i < 0 {
		return s, domain.NotFound(op, id)
	}

	updated := s.Products[i]
	if replacement != nil {
		updated = *replacement
	}
	if err := fn(&updated); err != nil {
		return s, err
	}

	s.Products = replaceProduct(s.Products, updated)
	s.Featured = replaceProduct(s.Featured, updated)
	s.Popular = replaceProduct(s.Popular, updated)
	s.New = replaceProduct(s.New, updated)
	if s.SelectedProduct != nil && s.SelectedProduct.ID == id {
		s.SelectedProduct = &updated
	}
	return s.RefreshView(), nil
}

func replaceProduct(list []Product, p Product) []Product {
	i := indexOf(list, p.ID)
	if i < 0 {
		return list
	}
	next := cloneProducts(list)
	next[i] = p
	return next
}

func cloneProducts(list []Product) []Product {
	next := make([]Product, len(list))
	copy(next, list)
	return next
}
