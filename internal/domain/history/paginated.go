package history

import "math"

// MaxPage batas atas nomor halaman dari query string
const MaxPage = 1_000_000

// PaginatedResult represents a paginated response with data and metadata
type PaginatedResult struct {
	Data       []*Record `json:"history"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	Total      int64     `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
}

// Offset returns the row offset of a 1-based page. It never goes negative,
// whatever page and pageSize the caller passes.
func Offset(page, pageSize int) int {
	if page <= 1 || pageSize <= 0 {
		return 0
	}
	if page > MaxPage {
		page = MaxPage
	}
	n := page - 1
	if n > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return n * pageSize
}
