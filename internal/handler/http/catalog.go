package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/catalog"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/pagination"
)

// defaultProductsPerPage is the page size for category listings when the
// client does not ask for one.
const defaultProductsPerPage = 12

// CatalogHandler handles HTTP requests for catalog endpoints.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(cat *catalog.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: cat, logger: logger}
}

// ListCategories handles GET /api/v1/catalog
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: h.catalog.Categories()})
}

// ListProducts handles GET /api/v1/catalog/{category}. min_price and
// max_price bound the unit price; page and per_page select the page.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !domain.IsValidCategory(category) {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "unknown category: " + category},
		})
		return
	}

	minPrice, ok := priceBound(w, r, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := priceBound(w, r, "max_price")
	if !ok {
		return
	}

	products := h.catalog.ByCategory(category, minPrice, maxPrice)
	page := pagination.Paginate(products, pagination.FromRequest(r, defaultProductsPerPage))

	writeJSON(w, http.StatusOK, response{Data: page})
}

// priceBound parses an optional decimal query parameter. A malformed value
// is answered with 400.
func priceBound(w http.ResponseWriter, r *http.Request, name string) (*decimal.Decimal, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}

	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: name + " must be a non-negative number"},
		})
		return nil, false
	}
	return &value, true
}
