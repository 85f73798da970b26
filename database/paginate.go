package database

// Pagination carries the resolved page window alongside the total row count.
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
	Pages    int   `json:"pages"`
}

// NewPagination computes the derived page count from a resolved window and total.
func NewPagination(page, pageSize int, total int64) Pagination {
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, Pages: pages}
}

// ClampPage normalizes a requested page to at least 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampPageSize normalizes a requested page size into [1, max],
// falling back to def when the request carries no usable value.
func ClampPageSize(size, def, max int) int {
	if size < 1 {
		return def
	}
	if size > max {
		return max
	}
	return size
}

// Offset converts a resolved page window into a row offset.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
