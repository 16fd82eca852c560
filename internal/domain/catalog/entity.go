// internal/domain/catalog/entity.go
package catalog

import (
	"context"
	"time"
)

// Product represents a catalog product as the storefront sees it
type Product struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Description   string    `json:"description" yaml:"description"`
	Price         float64   `json:"price" yaml:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty" yaml:"original_price,omitempty"`
	Category      Category  `json:"category" yaml:"-"`
	Image         string    `json:"image" yaml:"image"`
	Images        []string  `json:"images,omitempty" yaml:"images,omitempty"`
	Rating        float64   `json:"rating" yaml:"rating"`
	Reviews       int       `json:"reviews" yaml:"reviews"`
	InStock       bool      `json:"in_stock" yaml:"in_stock"`
	Discount      *float64  `json:"discount,omitempty" yaml:"discount,omitempty"` // Percentage 0-100
	Tags          []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Features      []string  `json:"features,omitempty" yaml:"features,omitempty"`
	AddedAt       time.Time `json:"added_at" yaml:"added_at"`

	Nutrition *NutritionInfo `json:"nutrition_info,omitempty" yaml:"nutrition_info,omitempty"`
}

// NutritionInfo is the per-serving nutrition panel of a grocery product
type NutritionInfo struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fat      float64 `json:"fat" yaml:"fat"`
	Fiber    float64 `json:"fiber" yaml:"fiber"`
	Sodium   float64 `json:"sodium" yaml:"sodium"`
	Sugar    float64 `json:"sugar" yaml:"sugar"`
}

// Category represents a product category
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Slug        string `json:"slug" yaml:"slug"` // URL-safe unique key
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
}

// HasTag reports whether the product carries any of the given tags
func (p Product) HasTag(tags ...string) bool {
	for _, want := range tags {
		for _, have := range p.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsDiscounted returns true if the product carries a discount
func (p Product) IsDiscounted() bool {
	return p.Discount != nil && *p.Discount > 0
}

// Seed is the initial catalog handed to LoadInitialData
type Seed struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
	Featured   []Product  `json:"featured"`
	Popular    []Product  `json:"popular"`
	New        []Product  `json:"new"`
}

const (
	// FeaturedRatingThreshold admits undiscounted products to the featured list
	FeaturedRatingThreshold = 4.7
	// PopularReviewThreshold is the review count a popular product needs
	PopularReviewThreshold = 100
	// NewArrivalsLimit caps the new arrivals list
	NewArrivalsLimit = 6
)

// NewSeed derives the featured, popular and new lists from products.
// Products are expected newest first.
func NewSeed(products []Product, categories []Category) *Seed {
	seed := &Seed{
		Products:   cloneProducts(products),
		Categories: append([]Category{}, categories...),
		Featured:   []Product{},
		Popular:    []Product{},
	}
	for _, p := range products {
		if p.IsDiscounted() || p.Rating >= FeaturedRatingThreshold {
			seed.Featured = append(seed.Featured, p)
		}
		if p.Reviews >= PopularReviewThreshold {
			seed.Popular = append(seed.Popular, p)
		}
	}
	n := len(products)
	if n > NewArrivalsLimit {
		n = NewArrivalsLimit
	}
	seed.New = cloneProducts(products[:n])
	return seed
}

// Source supplies the initial catalog once at startup
type Source interface {
	LoadCatalog(ctx context.Context) (*Seed, error)
}
