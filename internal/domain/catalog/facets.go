// internal/domain/catalog/facets.go
package catalog

import (
	"math"
	"sort"
)

// CategoryFacet counts products per category
type CategoryFacet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PriceFacet counts products within a price bucket
type PriceFacet struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// RatingFacet counts products rated at or above Rating
type RatingFacet struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// TagFacet counts products carrying a tag
type TagFacet struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Facets summarises a product set along each filterable dimension
type Facets struct {
	Categories  []CategoryFacet `json:"categories"`
	PriceRanges []PriceFacet    `json:"price_ranges"`
	Ratings     []RatingFacet   `json:"ratings"`
	Tags        []TagFacet      `json:"tags"`
}

// priceBuckets are [min, max) except for the last, open-ended one
var priceBuckets = []PriceRange{
	{Min: 0, Max: 5},
	{Min: 5, Max: 10},
	{Min: 10, Max: 25},
	{Min: 25, Max: 50},
	{Min: 50, Max: math.MaxFloat64},
}

// ComputeFacets builds facet counts for products
func ComputeFacets(products []Product) Facets {
	facets := Facets{
		Categories:  []CategoryFacet{},
		PriceRanges: make([]PriceFacet, len(priceBuckets)),
		Ratings:     make([]RatingFacet, 0, 4),
		Tags:        []TagFacet{},
	}

	categoryIndex := make(map[string]int)
	tagCounts := make(map[string]int)

	for i, b := range priceBuckets {
		facets.PriceRanges[i] = PriceFacet{Min: b.Min, Max: b.Max}
	}

	for _, p := range products {
		if idx, ok := categoryIndex[p.Category.ID]; ok {
			facets.Categories[idx].Count++
		} else {
			categoryIndex[p.Category.ID] = len(facets.Categories)
			facets.Categories = append(facets.Categories, CategoryFacet{ID: p.Category.ID, Name: p.Category.Name, Count: 1})
		}

		for i, b := range priceBuckets {
			if p.Price >= b.Min && p.Price < b.Max {
				facets.PriceRanges[i].Count++
				break
			}
		}

		for _, tag := range p.Tags {
			tagCounts[tag]++
		}
	}

	for rating := 4; rating >= 1; rating-- {
		count := 0
		for _, p := range products {
			if p.Rating >= float64(rating) {
				count++
			}
		}
		facets.Ratings = append(facets.Ratings, RatingFacet{Rating: rating, Count: count})
	}

	for tag, count := range tagCounts {
		facets.Tags = append(facets.Tags, TagFacet{Tag: tag, Count: count})
	}
	sort.Slice(facets.Tags, func(i, j int) bool {
		if facets.Tags[i].Count != facets.Tags[j].Count {
			return facets.Tags[i].Count > facets.Tags[j].Count
		}
		return facets.Tags[i].Tag < facets.Tags[j].Tag
	})

	return facets
}

// Pagination represents pagination information
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate returns one page of products. Pages are 1-based; out-of-range pages are empty.
func Paginate(products []Product, page, limit int) ([]Product, Pagination) {
	if limit <= 0 {
		limit = DefaultItemsPerPage
	}
	if page < 1 {
		page = 1
	}

	total := len(products)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	pagination := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}

	offset := (page - 1) * limit
	if offset >= total {
		return []Product{}, pagination
	}
	end := offset + limit
	if end > total {
		end = total
	}

	items := make([]Product, end-offset)
	copy(items, products[offset:end])
	return items, pagination
}
