// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/store"
)

// CatalogHandler handles product, category and search endpoints
type CatalogHandler struct {
	*SessionHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(base *SessionHandler) *CatalogHandler {
	return &CatalogHandler{SessionHandler: base}
}

// filterParams are the query parameters that change the active filters
var filterParams = []string{"category", "min_price", "max_price", "rating", "in_stock", "tags", "sort_by", "sort_order"}

// GetProducts handles GET /products. Filter and paging parameters update the
// session's catalog view before the current page is returned.
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	state, ok := h.update(c, func(_ context.Context, st *store.Store) error {
		var intents []store.Intent
		if hasAny(c, filterParams...) {
			filters, err := parseFilters(c, st.Snapshot().Catalog.Filters)
			if err != nil {
				return err
			}
			intents = append(intents, store.SetFilters{Filters: filters})
		}

		if hasAny(c, "limit") {
			limit, err := queryInt(c, "limit", 0)
			if err != nil {
				return err
			}
			intents = append(intents, store.SetItemsPerPage{Limit: limit})
		}
		if hasAny(c, "page") {
			page, err := queryInt(c, "page", 0)
			if err != nil {
				return err
			}
			intents = append(intents, store.SetPage{Page: page})
		}

		for _, intent := range intents {
			if _, err := st.Dispatch(intent); err != nil {
				return err
			}
		}
		return nil
	})
	if !ok {
		return
	}

	items, pagination := state.Catalog.CurrentPageItems()
	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data": gin.H{
			"products":   items,
			"pagination": pagination,
			"filters":    state.Catalog.Filters,
			"category":   state.Catalog.CurrentCategory,
		},
	})
}

// ClearFilters handles DELETE /products/filters
func (h *CatalogHandler) ClearFilters(c *gin.Context) {
	state, ok := h.dispatch(c, store.ClearFilters{})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Filters cleared successfully",
		"data":    state.Catalog.Filters,
	})
}

// SearchProducts handles GET /products/search
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	state, ok := h.dispatch(c, store.Search{Query: query})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search completed successfully",
		"data": gin.H{
			"query":    state.Catalog.SearchQuery,
			"products": state.Catalog.SearchResults,
			"total":    len(state.Catalog.SearchResults),
		},
	})
}

// GetProduct handles GET /products/:id and records the view
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	state, ok := h.dispatch(c, store.SelectProduct{ID: id})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data": gin.H{
			"product":     state.Catalog.SelectedProduct,
			"is_favorite": store.IsFavorite(state, id),
			"in_compare":  store.IsInCompare(state, id),
		},
	})
}

// GetFeaturedProducts handles GET /products/featured
func (h *CatalogHandler) GetFeaturedProducts(c *gin.Context) {
	h.productList(c, "Featured products retrieved successfully", func(s store.State) []catalog.Product {
		return s.Catalog.Featured
	})
}

// GetPopularProducts handles GET /products/popular
func (h *CatalogHandler) GetPopularProducts(c *gin.Context) {
	h.productList(c, "Popular products retrieved successfully", func(s store.State) []catalog.Product {
		return s.Catalog.Popular
	})
}

// GetNewProducts handles GET /products/new
func (h *CatalogHandler) GetNewProducts(c *gin.Context) {
	h.productList(c, "New products retrieved successfully", func(s store.State) []catalog.Product {
		return s.Catalog.New
	})
}

// GetTopRatedProducts handles GET /products/top-rated
func (h *CatalogHandler) GetTopRatedProducts(c *gin.Context) {
	h.productList(c, "Top rated products retrieved successfully", store.TopRated)
}

// GetRecentlyViewed handles GET /products/recently-viewed
func (h *CatalogHandler) GetRecentlyViewed(c *gin.Context) {
	h.productList(c, "Recently viewed products retrieved successfully", func(s store.State) []catalog.Product {
		return s.Catalog.RecentlyViewed
	})
}

// ClearRecentlyViewed handles DELETE /products/recently-viewed
func (h *CatalogHandler) ClearRecentlyViewed(c *gin.Context) {
	if _, ok := h.dispatch(c, store.ClearRecentlyViewed{}); !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recently viewed products cleared successfully",
	})
}

// GetFacets handles GET /products/facets over the current view
func (h *CatalogHandler) GetFacets(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Facets retrieved successfully",
		"data":    catalog.ComputeFacets(store.FilteredProducts(state)),
	})
}

// GetCategories handles GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    state.Catalog.Categories,
	})
}

// GetCategory handles GET /categories/:id; the id may also be a slug
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}

	category, found := findCategory(state.Catalog, c.Param("id"))
	if !found {
		h.respondError(c, domain.NotFound("catalog.GetCategory", c.Param("id")))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category retrieved successfully",
		"data":    category,
	})
}

// GetCategoryProducts handles GET /categories/:id/products
func (h *CatalogHandler) GetCategoryProducts(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}

	category, found := findCategory(state.Catalog, c.Param("id"))
	if !found {
		h.respondError(c, domain.NotFound("catalog.GetCategoryProducts", c.Param("id")))
		return
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		h.respondError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", catalog.DefaultItemsPerPage)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items, pagination := catalog.Paginate(state.Catalog.ProductsByCategory(category.ID), page, limit)
	c.JSON(http.StatusOK, gin.H{
		"message": "Category products retrieved successfully",
		"data": gin.H{
			"category":   category,
			"products":   items,
			"pagination": pagination,
		},
	})
}

func (h *CatalogHandler) productList(c *gin.Context, message string, pick func(store.State) []catalog.Product) {
	state, ok := h.view(c)
	if !ok {
		return
	}

	products := pick(state)
	if products == nil {
		products = []catalog.Product{}
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    products,
	})
}

func findCategory(s catalog.State, key string) (catalog.Category, bool) {
	if category, ok := s.CategoryByID(key); ok {
		return category, true
	}
	return s.CategoryBySlug(key)
}

func hasAny(c *gin.Context, keys ...string) bool {
	for _, key := range keys {
		if _, ok := c.GetQuery(key); ok {
			return true
		}
	}
	return false
}

// parseFilters overlays the query parameters onto current
func parseFilters(c *gin.Context, current catalog.Filters) (catalog.Filters, error) {
	const op = "catalog.parseFilters"
	filters := current

	if raw, ok := c.GetQuery("category"); ok {
		filters.Categories = splitList(raw)
	}

	minRaw, hasMin := c.GetQuery("min_price")
	maxRaw, hasMax := c.GetQuery("max_price")
	if hasMin || hasMax {
		r := catalog.PriceRange{Min: 0, Max: catalog.DefaultFilters().PriceRange.Max}
		if current.PriceRange != nil {
			r = *current.PriceRange
		}
		if hasMin {
			v, err := strconv.ParseFloat(minRaw, 64)
			if err != nil {
				return current, domain.InvalidInput(op, "min_price must be a number")
			}
			r.Min = v
		}
		if hasMax {
			v, err := strconv.ParseFloat(maxRaw, 64)
			if err != nil {
				return current, domain.InvalidInput(op, "max_price must be a number")
			}
			r.Max = v
		}
		filters.PriceRange = &r
	}

	if raw, ok := c.GetQuery("rating"); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return current, domain.InvalidInput(op, "rating must be a number")
		}
		filters.Rating = v
	}

	if raw, ok := c.GetQuery("in_stock"); ok {
		if raw == "" {
			filters.InStock = nil
		} else {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return current, domain.InvalidInput(op, "in_stock must be a boolean")
			}
			filters.InStock = &v
		}
	}

	if raw, ok := c.GetQuery("tags"); ok {
		filters.Tags = splitList(raw)
	}
	if raw, ok := c.GetQuery("sort_by"); ok {
		filters.SortBy = catalog.SortField(raw)
	}
	if raw, ok := c.GetQuery("sort_order"); ok {
		filters.SortOrder = catalog.SortOrder(raw)
	}
	return filters, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
