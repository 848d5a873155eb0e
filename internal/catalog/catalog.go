// Package catalog holds the static product catalog. The seed is embedded at
// build time and validated once on startup; after that the catalog is
// read-only and safe for concurrent use.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/slug"
)

//go:embed seed.json
var seedFS embed.FS

type seedFile struct {
	Products []seedProduct `json:"products"`
}

type seedProduct struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Description string          `json:"description"`
}

// Catalog is the validated, in-memory product catalog.
type Catalog struct {
	products   []domain.Product
	byID       map[string]int
	byCategory map[string][]int
}

// Load parses and validates the embedded seed. Every entry must carry a
// known category, a non-empty name, and a positive price; IDs default to
// the slug of the product name and must be unique.
func Load() (*Catalog, error) {
	raw, err := seedFS.ReadFile("seed.json")
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Catalog, error) {
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	if len(seed.Products) == 0 {
		return nil, fmt.Errorf("catalog seed: no products")
	}

	c := &Catalog{
		products:   make([]domain.Product, 0, len(seed.Products)),
		byID:       make(map[string]int, len(seed.Products)),
		byCategory: make(map[string][]int),
	}

	for i, sp := range seed.Products {
		if sp.Name == "" {
			return nil, fmt.Errorf("catalog seed: product %d: missing name", i)
		}
		if !domain.IsValidCategory(sp.Category) {
			return nil, fmt.Errorf("catalog seed: product %q: unknown category %q", sp.Name, sp.Category)
		}
		if !sp.Price.IsPositive() {
			return nil, fmt.Errorf("catalog seed: product %q: price must be positive, got %s", sp.Name, sp.Price)
		}

		id := sp.ID
		if id == "" {
			id = slug.Generate(sp.Name)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("catalog seed: duplicate product id %q", id)
		}

		idx := len(c.products)
		c.products = append(c.products, domain.Product{
			ID:          id,
			Category:    sp.Category,
			Name:        sp.Name,
			Price:       sp.Price,
			ImageURL:    sp.ImageURL,
			Description: sp.Description,
		})
		c.byID[id] = idx
		c.byCategory[sp.Category] = append(c.byCategory[sp.Category], idx)
	}

	return c, nil
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID looks up a product by its ID.
func (c *Catalog) ByID(id string) (domain.Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[idx], true
}

// ByCategory returns the products of a category in seed order. min and max
// bound the unit price when non-nil.
func (c *Catalog) ByCategory(category string, min, max *decimal.Decimal) []domain.Product {
	indexes := c.byCategory[category]
	out := make([]domain.Product, 0, len(indexes))
	for _, idx := range indexes {
		p := c.products[idx]
		if min != nil && p.Price.LessThan(*min) {
			continue
		}
		if max != nil && p.Price.GreaterThan(*max) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CategorySummary describes one category for the catalog index endpoint.
type CategorySummary struct {
	Name         string `json:"name"`
	ProductCount int    `json:"product_count"`
}

// Categories lists all categories with their product counts in display order.
func (c *Catalog) Categories() []CategorySummary {
	out := make([]CategorySummary, 0, len(domain.Categories()))
	for _, name := range domain.Categories() {
		out = append(out, CategorySummary{
			Name:         name,
			ProductCount: len(c.byCategory[name]),
		})
	}
	return out
}
