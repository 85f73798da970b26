package handling

import (
	"net/http"
	"strconv"
	"strings"
	"vivero_server/structs"
)

// Page size limits differ between the storefront and the back office.
const (
	DefaultPageSize   = 12
	MaxPublicPageSize = 48
	MaxAdminPageSize  = 100
)

var sortKeys = map[string]string{
	"price-asc":  "price-asc",
	"price-desc": "price-desc",
	"name-asc":   "name-asc",
	"name-desc":  "name-desc",
	"recent":     "recent",
}

// ParseProductListOptions parses HTTP query parameters into ProductListOptions.
// Unknown sort keys fall back to the default (most recent first); page and
// page size are clamped rather than rejected.
func ParseProductListOptions(r *http.Request, admin bool) *structs.ProductListOptions {
	query := r.URL.Query()

	opts := &structs.ProductListOptions{
		Page:     1,
		PageSize: DefaultPageSize,
		SortKey:  "recent",
	}

	maxPageSize := MaxPublicPageSize
	if admin {
		maxPageSize = MaxAdminPageSize
	}

	if page := query.Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v >= 1 {
			opts.Page = v
		}
	}

	if pageSize := query.Get("pageSize"); pageSize != "" {
		if v, err := strconv.Atoi(pageSize); err == nil && v >= 1 {
			opts.PageSize = v
		}
	}
	if opts.PageSize > maxPageSize {
		opts.PageSize = maxPageSize
	}

	if q := query.Get("q"); q != "" {
		opts.SearchTerm = strings.TrimSpace(q)
	}

	if category := query.Get("category"); category != "" {
		opts.CategorySlug = category
	}

	if minPrice := query.Get("minPrice"); minPrice != "" {
		if v, err := strconv.ParseInt(minPrice, 10, 64); err == nil && v >= 0 {
			opts.MinPrice = &v
		}
	}

	if maxPrice := query.Get("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseInt(maxPrice, 10, 64); err == nil && v >= 0 {
			opts.MaxPrice = &v
		}
	}

	if sort := query.Get("sort"); sort != "" {
		if key, ok := sortKeys[sort]; ok {
			opts.SortKey = key
		}
	}

	return opts
}

// ParseOrderListOptions parses the back-office order listing filters.
// Month and year outside their valid range are ignored.
func ParseOrderListOptions(r *http.Request) *structs.OrderListOptions {
	query := r.URL.Query()

	opts := &structs.OrderListOptions{}

	if month := query.Get("month"); month != "" {
		if v, err := strconv.Atoi(month); err == nil && v >= 1 && v <= 12 {
			opts.Month = v
		}
	}

	if year := query.Get("year"); year != "" {
		if v, err := strconv.Atoi(year); err == nil && v >= 1970 && v <= 9999 {
			opts.Year = v
		}
	}

	if q := query.Get("q"); q != "" {
		opts.Query = strings.TrimSpace(q)
	}

	return opts
}
