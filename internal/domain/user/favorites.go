// internal/domain/user/favorites.go
package user

import (
	"github.com/your-org/storefront/internal/domain/catalog"
)

// ToggleFavorite adds product to favorites, or removes it when already there
func (s State) ToggleFavorite(product catalog.Product) State {
	if s.IsFavorite(product.ID) {
		return s.RemoveFromFavorites(product.ID)
	}
	return s.AddToFavorites(product)
}

// AddToFavorites appends product unless it is already a favorite
func (s State) AddToFavorites(product catalog.Product) State {
	if s.IsFavorite(product.ID) {
		return s
	}
	favorites := make([]catalog.Product, len(s.Favorites), len(s.Favorites)+1)
	copy(favorites, s.Favorites)
	s.Favorites = append(favorites, product)
	return s
}

// RemoveFromFavorites drops a product from favorites
func (s State) RemoveFromFavorites(productID string) State {
	s.Favorites = catalog.RemoveByID(s.Favorites, productID)
	return s
}

// SetFavorites replaces favorites, keeping the first occurrence of each product
func (s State) SetFavorites(products []catalog.Product) State {
	favorites := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if !catalog.ContainsID(favorites, p.ID) {
			favorites = append(favorites, p)
		}
	}
	s.Favorites = favorites
	return s
}

// IsFavorite reports whether a product is a favorite
func (s State) IsFavorite(productID string) bool {
	return catalog.ContainsID(s.Favorites, productID)
}

// FavoriteIDs lists favorite product ids in insertion order
func (s State) FavoriteIDs() []string {
	ids := make([]string, len(s.Favorites))
	for i, p := range s.Favorites {
		ids[i] = p.ID
	}
	return ids
}
