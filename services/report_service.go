package services

import (
	"context"
	"fmt"
	"time"
	"vivero_server/database"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
)

type ReportService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewReportService(logger *gecho.Logger, db *database.DB) *ReportService {
	return &ReportService{
		logger: logger,
		db:     db,
	}
}

type salesRow struct {
	Day   int   `bun:"day"`
	Total int64 `bun:"total"`
}

type topProductRow struct {
	Name string `bun:"name"`
	Qty  int64  `bun:"qty"`
}

// SalesByDay aggregates order totals per calendar day of one month. Days
// with no orders are skipped; labels are zero-padded day numbers.
func (rs *ReportService) SalesByDay(ctx context.Context, month, year int) (*structs.ChartSeries, error) {
	now := time.Now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	rows, err := database.RawQuery[salesRow](rs.db, ctx,
		`SELECT extract(day FROM o.date)::int AS day, sum(o.total_cents) AS total
		 FROM orders o
		 WHERE o.date >= ? AND o.date < ?
		 GROUP BY day
		 ORDER BY day ASC`,
		from, to,
	)
	if err != nil {
		rs.logger.Error("Failed to aggregate sales", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	series := &structs.ChartSeries{
		Labels: make([]string, 0, len(rows)),
		Values: make([]int64, 0, len(rows)),
	}
	for _, row := range rows {
		series.Labels = append(series.Labels, fmt.Sprintf("%02d", row.Day))
		series.Values = append(series.Values, row.Total)
	}

	return series, nil
}

// TopProducts returns the ten best-selling items by quantity, grouped by
// the item name snapshot so renamed or deleted products keep their
// historical identity. The window narrows with the arguments: a valid
// month limits to that month, a year alone to that year, neither to all
// recorded orders.
func (rs *ReportService) TopProducts(ctx context.Context, month, year int) (*structs.ChartSeries, error) {
	query := `SELECT oi.name, sum(oi.qty) AS qty
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id`
	var args []any

	switch {
	case month >= 1 && month <= 12:
		if year == 0 {
			year = time.Now().Year()
		}
		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		query += ` WHERE o.date >= ? AND o.date < ?`
		args = append(args, from, from.AddDate(0, 1, 0))
	case year != 0:
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		query += ` WHERE o.date >= ? AND o.date < ?`
		args = append(args, from, from.AddDate(1, 0, 0))
	}

	query += `
		 GROUP BY oi.name
		 ORDER BY qty DESC, oi.name ASC
		 LIMIT 10`

	rows, err := database.RawQuery[topProductRow](rs.db, ctx, query, args...)
	if err != nil {
		rs.logger.Error("Failed to aggregate top products", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to aggregate top products: %w", err)
	}

	series := &structs.ChartSeries{
		Labels: make([]string, 0, len(rows)),
		Values: make([]int64, 0, len(rows)),
	}
	for _, row := range rows {
		series.Labels = append(series.Labels, row.Name)
		series.Values = append(series.Values, row.Qty)
	}

	return series, nil
}

// Summary reports the entity counts shown on the admin dashboard.
func (rs *ReportService) Summary(ctx context.Context) (*structs.AdminSummary, error) {
	users, err := database.RawScalar[int64](rs.db, ctx, `SELECT count(*) FROM users`)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	products, err := database.RawScalar[int64](rs.db, ctx, `SELECT count(*) FROM products`)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	categories, err := database.RawScalar[int64](rs.db, ctx, `SELECT count(*) FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	return &structs.AdminSummary{
		Users:      users,
		Products:   products,
		Categories: categories,
	}, nil
}
