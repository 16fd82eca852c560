// internal/domain/catalog/lists.go
package catalog

const (
	// RecentlyViewedLimit caps the recently viewed list
	RecentlyViewedLimit = 10
	// CompareLimit caps the comparison list
	CompareLimit = 4
)

// PushRecentlyViewed moves product to the front of list, dropping any older entry
// for the same id, and truncates to RecentlyViewedLimit. list is not modified.
func PushRecentlyViewed(list []Product, product Product) []Product {
	next := make([]Product, 0, RecentlyViewedLimit)
	next = append(next, product)
	for _, p := range list {
		if p.ID == product.ID {
			continue
		}
		if len(next) == RecentlyViewedLimit {
			break
		}
		next = append(next, p)
	}
	return next
}

// AppendCompare adds product to the comparison list unless it is already there
// or the list is full. The second result reports whether the product was added.
func AppendCompare(list []Product, product Product) ([]Product, bool) {
	if len(list) >= CompareLimit || indexOf(list, product.ID) >= 0 {
		return list, false
	}
	next := make([]Product, len(list), len(list)+1)
	copy(next, list)
	return append(next, product), true
}

// RemoveByID returns list without the product with the given id
func RemoveByID(list []Product, id string) []Product {
	next := make([]Product, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			next = append(next, p)
		}
	}
	return next
}

// ContainsID reports whether list holds a product with the given id
func ContainsID(list []Product, id string) bool {
	return indexOf(list, id) >= 0
}

func indexOf(list []Product, id string) int {
	for i, p := range list {
		if p.ID == id {
			return i
		}
	}
	return -1
}
