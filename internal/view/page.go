package view

// DefaultPageSize is used when a request does not specify a page size.
const DefaultPageSize = 10

// PageRequest is a 1-indexed page selection over an otherwise unbounded
// result stream.
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize clamps the request to sane values: page >= 1, page size
// defaulted to DefaultPageSize and capped at maxPageSize.
func (r PageRequest) Normalize(maxPageSize int) PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
	if maxPageSize > 0 && r.PageSize > maxPageSize {
		r.PageSize = maxPageSize
	}
	return r
}

// Offset returns the number of rows to skip for this page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Page is one bounded slice of a filtered result set plus count metadata.
// TotalItems and TotalPages are computed against the filtered set, not the
// whole collection. A page past the end has empty Items and is not an error.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// NewPage assembles a Page from an already-fetched slice and the total
// filtered count. Items is never nil.
func NewPage[T any](items []T, req PageRequest, totalItems int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + req.PageSize - 1) / req.PageSize
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
