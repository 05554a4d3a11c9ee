package ports

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MaxPage          = 100000
)

// Page is one page of a listing query.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NormalizePage applies the default limit, the limit cap and the 1-based
// page bounds.
func NormalizePage(page, limit int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	return page, limit
}

// NewPage builds a Page and computes the page count.
func NewPage[T any](items []T, total int64, page, limit int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Page[T]{Items: items, Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}
