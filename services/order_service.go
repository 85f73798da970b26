package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"vivero_server/database"
	"vivero_server/lib"
	"vivero_server/structs"
	"vivero_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type OrderService struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	db             *database.DB
	catalogService *CatalogService
}

func NewOrderService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, catalogService *CatalogService) *OrderService {
	return &OrderService{
		logger:         logger,
		cfg:            cfg,
		db:             db,
		catalogService: catalogService,
	}
}

// OrderDetail is a created or fetched order together with its line items.
type OrderDetail struct {
	Order *tables.Order      `json:"order"`
	Items []tables.OrderItem `json:"items"`
}

// NormalizeOrderItem clamps a line item into its valid range: quantity at
// least 1 (defaulting to 1), unit price never negative.
func NormalizeOrderItem(item *structs.OrderItemInput) structs.OrderItemInput {
	out := *item
	if out.Qty < 1 {
		out.Qty = 1
	}
	if out.UnitPriceCents != nil && *out.UnitPriceCents < 0 {
		zero := int64(0)
		out.UnitPriceCents = &zero
	}
	out.Name = strings.TrimSpace(out.Name)
	return out
}

// ParseOrderDate accepts RFC3339 or a plain date; anything unparseable
// falls back to the current time.
func ParseOrderDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now()
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	return time.Now()
}

// CreateOrder records an order in a single transaction. Catalog-linked items
// lock their product row, verify stock covers the quantity and decrement it;
// the item keeps a snapshot of the name and unit price at creation time.
// Any failing item rolls the whole order back.
func (os *OrderService) CreateOrder(ctx context.Context, req *structs.OrderRequest) (*OrderDetail, error) {
	startTime := time.Now()

	items := make([]structs.OrderItemInput, 0, len(req.Items))
	for i := range req.Items {
		item := NormalizeOrderItem(&req.Items[i])
		if item.ProductID == nil && item.Name == "" {
			return nil, &lib.ValidationError{Errors: []lib.FieldError{{
				Field:   "items",
				Message: "manual items require a name",
			}}}
		}
		items = append(items, item)
	}

	date := ParseOrderDate(req.Date)

	var customerName, customerPhone *string
	if req.Customer != nil {
		if name := strings.TrimSpace(req.Customer.FullName); name != "" {
			customerName = &name
		}
		if phone := strings.TrimSpace(req.Customer.Phone); phone != "" {
			customerPhone = &phone
		}
	}

	detail := &OrderDetail{}
	touchedProducts := make([]int64, 0, len(items))

	err := os.db.WithinTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		order, err := database.RawQueryOne[tables.Order](tx, ctx,
			`INSERT INTO orders (date, customer_name, customer_phone)
			 VALUES (?, ?, ?)
			 RETURNING *`,
			date, customerName, customerPhone,
		)
		if err != nil {
			return err
		}

		var total int64
		for _, item := range items {
			name := item.Name
			var unitPrice int64
			if item.UnitPriceCents != nil {
				unitPrice = *item.UnitPriceCents
			}

			if item.ProductID != nil {
				// Lock the product row for the rest of the transaction so
				// concurrent orders serialize on the stock check.
				product, err := database.RawQueryOne[tables.Product](tx, ctx,
					`SELECT * FROM products WHERE id = ? FOR UPDATE`, *item.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return fmt.Errorf("%w: product %d", lib.ErrNotFound, *item.ProductID)
				}
				if product.Stock < item.Qty {
					return fmt.Errorf("%w: %s has %d left, %d requested",
						lib.ErrInsufficientStock, product.Name, product.Stock, item.Qty)
				}

				if name == "" {
					name = product.Name
				}
				if item.UnitPriceCents == nil {
					unitPrice = product.PriceCents
				}

				if _, err := database.RawExec(tx, ctx,
					`UPDATE products SET stock = stock - ? WHERE id = ?`,
					item.Qty, product.ID); err != nil {
					return err
				}
				touchedProducts = append(touchedProducts, product.ID)
			}

			line, err := database.RawQueryOne[tables.OrderItem](tx, ctx,
				`INSERT INTO order_items (order_id, product_id, name, qty, unit_price_cents)
				 VALUES (?, ?, ?, ?, ?)
				 RETURNING *`,
				order.ID, item.ProductID, name, item.Qty, unitPrice,
			)
			if err != nil {
				return err
			}

			detail.Items = append(detail.Items, *line)
			total += int64(item.Qty) * unitPrice
		}

		order, err = database.RawQueryOne[tables.Order](tx, ctx,
			`UPDATE orders SET total_cents = ? WHERE id = ? RETURNING *`,
			total, order.ID,
		)
		if err != nil {
			return err
		}

		detail.Order = order
		return nil
	})
	if err != nil {
		if lib.IsNotFound(err) || lib.IsInsufficientStock(err) {
			os.logger.Debug("Order rejected", gecho.Field("reason", err))
		} else {
			os.logger.Error("Failed to create order", gecho.Field("error", err))
		}
		return nil, err
	}

	for _, productID := range touchedProducts {
		if cacheErr := os.catalogService.cacheService.InvalidateProduct(productID); cacheErr != nil {
			os.logger.Warn("Failed to invalidate product cache after order", gecho.Field("error", cacheErr), gecho.Field("id", productID))
		}
	}

	os.logger.Info("Order created",
		gecho.Field("order_id", detail.Order.ID),
		gecho.Field("items", len(detail.Items)),
		gecho.Field("total_cents", detail.Order.TotalCents),
		gecho.Field("duration", time.Since(startTime)),
	)

	return detail, nil
}

// orderSummaryRow is the raw listing row before date formatting.
type orderSummaryRow struct {
	ID           int64     `bun:"id"`
	Date         time.Time `bun:"date"`
	CustomerName string    `bun:"customer_name"`
	ItemsCount   int       `bun:"items_count"`
	TotalCents   int64     `bun:"total_cents"`
}

// ListOrders returns the orders of one month, newest first, optionally
// filtered by customer name. Month and year default to the current ones.
func (os *OrderService) ListOrders(ctx context.Context, opts *structs.OrderListOptions) ([]structs.OrderSummary, error) {
	now := time.Now()
	month := opts.Month
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	year := opts.Year
	if year == 0 {
		year = now.Year()
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := `SELECT o.id, o.date, COALESCE(o.customer_name, '') AS customer_name,
	                 COALESCE(sum(oi.qty), 0) AS items_count, o.total_cents
	          FROM orders o
	          LEFT JOIN order_items oi ON oi.order_id = o.id
	          WHERE o.date >= ? AND o.date < ?`
	args := []any{from, to}

	if opts.Query != "" {
		// "#42" or "42" looks up a single order by id, anything else matches the customer.
		if id, err := strconv.ParseInt(strings.TrimPrefix(opts.Query, "#"), 10, 64); err == nil {
			query += " AND o.id = ?"
			args = append(args, id)
		} else {
			query += " AND o.customer_name ILIKE ?"
			args = append(args, "%"+opts.Query+"%")
		}
	}

	query += ` GROUP BY o.id ORDER BY o.date ASC, o.id ASC`

	rows, err := database.RawQuery[orderSummaryRow](os.db, ctx, query, args...)
	if err != nil {
		os.logger.Error("Failed to list orders", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	summaries := make([]structs.OrderSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, structs.OrderSummary{
			ID:           row.ID,
			Date:         row.Date.Format("2006-01-02"),
			CustomerName: row.CustomerName,
			ItemsCount:   row.ItemsCount,
			TotalCents:   row.TotalCents,
		})
	}

	return summaries, nil
}

// GetOrderByID fetches one order with its items.
func (os *OrderService) GetOrderByID(ctx context.Context, id int64) (*OrderDetail, error) {
	order, err := database.RawQueryOne[tables.Order](os.db, ctx,
		`SELECT * FROM orders WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}

	items, err := database.RawQuery[tables.OrderItem](os.db, ctx,
		`SELECT * FROM order_items WHERE order_id = ? ORDER BY id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}

	return &OrderDetail{Order: order, Items: items}, nil
}
