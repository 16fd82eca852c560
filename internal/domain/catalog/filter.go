// internal/domain/catalog/filter.go
package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/your-org/storefront/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField names the attribute products are ordered by
type SortField string

const (
	SortByName       SortField = "name"
	SortByPrice      SortField = "price"
	SortByRating     SortField = "rating"
	SortByPopularity SortField = "popularity" // reviews count
	SortByNewest     SortField = "newest"
)

// SortOrder is the sort direction
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// PriceRange is an inclusive [Min, Max] price interval
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies within the range
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// Filters is the active facet selection over the catalog
type Filters struct {
	Categories []string    `json:"category"`              // category ids, empty = any
	PriceRange *PriceRange `json:"price_range,omitempty"` // nil = any
	Rating     float64     `json:"rating"`                // minimum rating, 0 = any
	InStock    *bool       `json:"in_stock,omitempty"`    // nil = any
	Tags       []string    `json:"tags"`                  // match if product has ANY tag
	SortBy     SortField   `json:"sort_by"`
	SortOrder  SortOrder   `json:"sort_order"`
}

// DefaultFilters returns the filter set a fresh catalog starts with
func DefaultFilters() Filters {
	return Filters{
		Categories: []string{},
		PriceRange: &PriceRange{Min: 0, Max: 1000},
		Rating:     0,
		Tags:       []string{},
		SortBy:     SortByName,
		SortOrder:  SortAsc,
	}
}

// Validate checks filter values. A min price above the max price is rejected rather than swapped.
func (f Filters) Validate() error {
	const op = "catalog.Filters"

	if f.PriceRange != nil {
		if !finite(f.PriceRange.Min) || !finite(f.PriceRange.Max) {
			return domain.InvalidRange(op, "price range must be a finite number")
		}
		if f.PriceRange.Min < 0 || f.PriceRange.Max < 0 {
			return domain.InvalidRange(op, "price range must not be negative")
		}
		if f.PriceRange.Min > f.PriceRange.Max {
			return domain.InvalidRange(op, fmt.Sprintf("price min %.2f exceeds max %.2f", f.PriceRange.Min, f.PriceRange.Max))
		}
	}

	if !finite(f.Rating) || f.Rating < 0 || f.Rating > 5 {
		return domain.InvalidRange(op, fmt.Sprintf("rating %.1f outside [0,5]", f.Rating))
	}

	switch f.SortBy {
	case "", SortByName, SortByPrice, SortByRating, SortByPopularity, SortByNewest:
	default:
		return domain.InvalidInput(op, fmt.Sprintf("unknown sort field %q", f.SortBy))
	}

	switch f.SortOrder {
	case "", SortAsc, SortDesc:
	default:
		return domain.InvalidInput(op, fmt.Sprintf("unknown sort order %q", f.SortOrder))
	}

	return nil
}

// Matches reports whether a product satisfies every active predicate
func (f Filters) Matches(p Product) bool {
	if len(f.Categories) > 0 && !containsString(f.Categories, p.Category.ID) {
		return false
	}
	if f.PriceRange != nil && !f.PriceRange.Contains(p.Price) {
		return false
	}
	if f.Rating > 0 && p.Rating < f.Rating {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if len(f.Tags) > 0 && !p.HasTag(f.Tags...) {
		return false
	}
	return true
}

// ApplyFilters returns the products passing filters, sorted as the filters ask.
// The input slice is never modified.
func ApplyFilters(products []Product, filters Filters) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if filters.Matches(p) {
			filtered = append(filtered, p)
		}
	}

	if filters.SortBy != "" {
		SortProducts(filtered, filters.SortBy, filters.SortOrder)
	}

	return filtered
}

// SortProducts sorts products in place with a stable comparator; ties keep their relative order
func SortProducts(products []Product, sortBy SortField, order SortOrder) {
	compare := comparator(sortBy)
	if compare == nil {
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		c := compare(products[i], products[j])
		if order == SortDesc {
			c = -c
		}
		return c < 0
	})
}

func comparator(sortBy SortField) func(a, b Product) int {
	switch sortBy {
	case SortByName:
		col := collate.New(language.English)
		return func(a, b Product) int {
			return col.CompareString(a.Name, b.Name)
		}
	case SortByPrice:
		return func(a, b Product) int { return compareFloat(a.Price, b.Price) }
	case SortByRating:
		return func(a, b Product) int { return compareFloat(a.Rating, b.Rating) }
	case SortByPopularity:
		return func(a, b Product) int { return a.Reviews - b.Reviews }
	case SortByNewest:
		return func(a, b Product) int { return a.AddedAt.Compare(b.AddedAt) }
	}
	return nil
}

// Search returns products whose name or description contains query, ignoring case.
// A blank query matches nothing.
func Search(products []Product, query string) []Product {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))
	if needle == "" {
		return []Product{}
	}

	results := make([]Product, 0)
	for _, p := range products {
		if strings.Contains(fold.String(p.Name), needle) ||
			strings.Contains(fold.String(p.Description), needle) {
			results = append(results, p)
		}
	}
	return results
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
