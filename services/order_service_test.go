package services

import (
	"context"
	"testing"
	"time"
	"vivero_server/database/dbtest"
	"vivero_server/lib"
	"vivero_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestNormalizeOrderItem(t *testing.T) {
	// Quantity defaults to 1
	out := NormalizeOrderItem(&structs.OrderItemInput{ProductID: int64Ptr(5)})
	assert.Equal(t, 1, out.Qty)

	// Negative and zero quantities clamp up
	out = NormalizeOrderItem(&structs.OrderItemInput{ProductID: int64Ptr(5), Qty: -3})
	assert.Equal(t, 1, out.Qty)

	out = NormalizeOrderItem(&structs.OrderItemInput{ProductID: int64Ptr(5), Qty: 4})
	assert.Equal(t, 4, out.Qty)

	// Negative unit prices clamp to zero
	out = NormalizeOrderItem(&structs.OrderItemInput{Name: "ribbon", UnitPriceCents: int64Ptr(-500)})
	require.NotNil(t, out.UnitPriceCents)
	assert.Equal(t, int64(0), *out.UnitPriceCents)

	// An absent unit price stays absent so the product price can apply
	out = NormalizeOrderItem(&structs.OrderItemInput{ProductID: int64Ptr(5)})
	assert.Nil(t, out.UnitPriceCents)

	// Names are trimmed
	out = NormalizeOrderItem(&structs.OrderItemInput{Name: "  gift wrap  "})
	assert.Equal(t, "gift wrap", out.Name)
}

func TestParseOrderDate(t *testing.T) {
	parsed := ParseOrderDate("2026-03-15")
	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	parsed = ParseOrderDate("2026-03-15T10:30:00Z")
	assert.Equal(t, 10, parsed.Hour())

	// Unparseable dates fall back to now instead of erroring
	before := time.Now()
	parsed = ParseOrderDate("next tuesday")
	after := time.Now()
	assert.False(t, parsed.Before(before))
	assert.False(t, parsed.After(after))

	before = time.Now()
	parsed = ParseOrderDate("")
	after = time.Now()
	assert.False(t, parsed.Before(before))
	assert.False(t, parsed.After(after))
}

var orderColumns = []string{"id", "date", "customer_name", "customer_phone", "total_cents"}
var productColumns = []string{"id", "name", "price_cents", "stock"}
var orderItemColumns = []string{"id", "order_id", "product_id", "name", "qty", "unit_price_cents"}

func TestCreateOrderReservesStockAndTotals(t *testing.T) {
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	script := dbtest.NewScript().
		ExpectQuery(`INSERT INTO orders`, orderColumns,
			dbtest.Row{int64(7), date, nil, nil, int64(0)}).
		ExpectQuery(`SELECT \* FROM products WHERE id = 3 FOR UPDATE`, productColumns,
			dbtest.Row{int64(3), "Monstera", int64(1500), int64(5)}).
		ExpectExec(`UPDATE products SET stock = stock - 2 WHERE id = 3`, 1).
		ExpectQuery(`INSERT INTO order_items`, orderItemColumns,
			dbtest.Row{int64(11), int64(7), int64(3), "Monstera", int64(2), int64(1500)}).
		ExpectQuery(`INSERT INTO order_items`, orderItemColumns,
			dbtest.Row{int64(12), int64(7), nil, "Delivery", int64(1), int64(500)}).
		ExpectQuery(`UPDATE orders SET total_cents = 3500 WHERE id = 7 RETURNING \*`, orderColumns,
			dbtest.Row{int64(7), date, nil, nil, int64(3500)})

	os := scriptedOrderService(t, script)

	detail, err := os.CreateOrder(context.Background(), &structs.OrderRequest{
		Date: "2026-03-14",
		Items: []structs.OrderItemInput{
			{ProductID: int64Ptr(3), Qty: 2},
			{Name: "Delivery", Qty: 1, UnitPriceCents: int64Ptr(500)},
		},
	})
	require.NoError(t, err)
	require.Empty(t, script.Failures())

	// The catalog line snapshots the product name and price, the manual
	// line keeps its own, and the total is the sum of qty * unit price
	assert.Equal(t, int64(3500), detail.Order.TotalCents)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, "Monstera", detail.Items[0].Name)
	assert.Equal(t, int64(1500), detail.Items[0].UnitPriceCents)
	assert.Equal(t, "Delivery", detail.Items[1].Name)

	assert.Equal(t, 1, script.Commits())
	assert.Zero(t, script.Rollbacks())
	assert.Zero(t, script.Remaining())
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	script := dbtest.NewScript().
		ExpectQuery(`INSERT INTO orders`, orderColumns,
			dbtest.Row{int64(7), date, nil, nil, int64(0)}).
		ExpectQuery(`SELECT \* FROM products WHERE id = 3 FOR UPDATE`, productColumns,
			dbtest.Row{int64(3), "Monstera", int64(1500), int64(1)})

	os := scriptedOrderService(t, script)

	detail, err := os.CreateOrder(context.Background(), &structs.OrderRequest{
		Items: []structs.OrderItemInput{{ProductID: int64Ptr(3), Qty: 2}},
	})
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, lib.ErrInsufficientStock)

	// The whole order rolls back and stock is never touched
	assert.Equal(t, 1, script.Rollbacks())
	assert.Zero(t, script.Commits())
	assert.False(t, script.Ran(`stock = stock -`))
	assert.False(t, script.Ran(`INSERT INTO order_items`))
}

func TestCreateOrderUnknownProductRollsBack(t *testing.T) {
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	script := dbtest.NewScript().
		ExpectQuery(`INSERT INTO orders`, orderColumns,
			dbtest.Row{int64(7), date, nil, nil, int64(0)}).
		ExpectQuery(`SELECT \* FROM products WHERE id = 99 FOR UPDATE`, productColumns)

	os := scriptedOrderService(t, script)

	_, err := os.CreateOrder(context.Background(), &structs.OrderRequest{
		Items: []structs.OrderItemInput{{ProductID: int64Ptr(99), Qty: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, lib.ErrNotFound)
	assert.Equal(t, 1, script.Rollbacks())
	assert.Zero(t, script.Commits())
}

func TestListOrdersAggregatesQuantities(t *testing.T) {
	date := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	script := dbtest.NewScript().
		ExpectQuery(`FROM orders o`, []string{"id", "date", "customer_name", "items_count", "total_cents"},
			dbtest.Row{int64(4), date, "Ana", int64(5), int64(7500)})

	os := scriptedOrderService(t, script)

	summaries, err := os.ListOrders(context.Background(), &structs.OrderListOptions{Month: 3, Year: 2026})
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	// One line of qty 5 counts as 5 items, not 1
	assert.Equal(t, 5, summaries[0].ItemsCount)
	assert.Equal(t, "2026-03-02", summaries[0].Date)

	executed := script.Executed()
	require.Len(t, executed, 1)
	assert.Contains(t, executed[0], "sum(oi.qty)")
	assert.Contains(t, executed[0], "ORDER BY o.date ASC, o.id ASC")
}

func TestListOrdersNumericQueryMatchesID(t *testing.T) {
	script := dbtest.NewScript().
		ExpectQuery(`FROM orders o`, []string{"id", "date", "customer_name", "items_count", "total_cents"})

	os := scriptedOrderService(t, script)

	_, err := os.ListOrders(context.Background(), &structs.OrderListOptions{Month: 3, Year: 2026, Query: "#42"})
	require.NoError(t, err)

	executed := script.Executed()
	require.Len(t, executed, 1)
	assert.Contains(t, executed[0], "o.id = 42")
	assert.NotContains(t, executed[0], "ILIKE")
}
