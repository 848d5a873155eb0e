package domain

import "github.com/shopspring/decimal"

// Catalog category constants.
const (
	CategoryVeg    = "veg"
	CategoryNonVeg = "nonveg"
	CategoryFruits = "fruits"
	CategoryJuices = "juices"
)

// Product is a catalog entry. The catalog is read-only at runtime; prices
// are copied onto cart lines at add time and never re-read afterwards.
type Product struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Categories returns all catalog categories in display order.
func Categories() []string {
	return []string{CategoryVeg, CategoryNonVeg, CategoryFruits, CategoryJuices}
}

// IsValidCategory checks if a category string is known.
func IsValidCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}
