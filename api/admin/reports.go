package admin

import (
	"net/http"
	"strconv"
	"vivero_server/handling"

	"github.com/MonkyMars/gecho"
)

func parseMonthYear(r *http.Request) (int, int) {
	query := r.URL.Query()

	month := 0
	if m := query.Get("month"); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			month = v
		}
	}

	year := 0
	if y := query.Get("year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil {
			year = v
		}
	}

	return month, year
}

// HandleSalesReport handles GET /admin/reports/sales?month=&year=
func (arm *AdminRoutesManager) HandleSalesReport(w http.ResponseWriter, r *http.Request) {
	month, year := parseMonthYear(r)

	series, err := arm.reportService.SalesByDay(r.Context(), month, year)
	if err != nil {
		handling.HandleServiceError(err, "Failed to build sales report", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(series),
		gecho.Send(),
	)
}

// HandleTopProductsReport handles GET /admin/reports/top-products?month=&year=
func (arm *AdminRoutesManager) HandleTopProductsReport(w http.ResponseWriter, r *http.Request) {
	month, year := parseMonthYear(r)

	series, err := arm.reportService.TopProducts(r.Context(), month, year)
	if err != nil {
		handling.HandleServiceError(err, "Failed to build top products report", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(series),
		gecho.Send(),
	)
}

// HandleSummary handles GET /admin/summary
func (arm *AdminRoutesManager) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := arm.reportService.Summary(r.Context())
	if err != nil {
		handling.HandleServiceError(err, "Failed to build summary", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(summary),
		gecho.Send(),
	)
}
