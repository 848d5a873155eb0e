package pagination

import (
	"net/http"
	"strconv"
)

const maxPerPage = 100

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// FromRequest extracts page and per_page from the request query, falling
// back to page 1 and the given default page size. per_page is capped at 100.
func FromRequest(r *http.Request, defaultPerPage int) Params {
	p := Params{Page: 1, PerPage: defaultPerPage}

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}
	if perPage := r.URL.Query().Get("per_page"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= maxPerPage {
			p.PerPage = v
		}
	}

	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// Result wraps one page of a listing.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate slices an in-memory listing into the requested page. Pages past
// the end yield an empty (never nil) data slice.
func Paginate[T any](items []T, params Params) Result[T] {
	totalCount := len(items)
	totalPages := totalCount / params.PerPage
	if totalCount%params.PerPage > 0 {
		totalPages++
	}

	start := params.Offset
	if start > totalCount {
		start = totalCount
	}
	end := start + params.PerPage
	if end > totalCount {
		end = totalCount
	}

	data := make([]T, end-start)
	copy(data, items[start:end])

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
