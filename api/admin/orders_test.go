package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"vivero_server/config"
	"vivero_server/database/dbtest"
	"vivero_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderColumns = []string{"id", "date", "customer_name", "customer_phone", "total_cents"}
var productColumns = []string{"id", "name", "price_cents", "stock"}
var orderItemColumns = []string{"id", "order_id", "product_id", "name", "qty", "unit_price_cents"}

func testOrderRoutes(t *testing.T, script *dbtest.Script) *AdminRoutesManager {
	t.Helper()

	db := dbtest.Open(script)
	t.Cleanup(func() { db.Close() })

	logger := gecho.NewDefaultLogger()
	cfg := config.GetConfig()
	catalogService := services.NewCatalogService(logger, db, services.NewCacheService(logger, cfg))

	return &AdminRoutesManager{
		logger:         logger,
		catalogService: catalogService,
		orderService:   services.NewOrderService(logger, cfg, db, catalogService),
		cfg:            cfg,
	}
}

func postOrder(t *testing.T, arm *AdminRoutesManager, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/admin/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	arm.HandleCreateOrder(w, req)
	return w
}

func TestHandleCreateOrderCreated(t *testing.T) {
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	script := dbtest.NewScript().
		ExpectQuery(`INSERT INTO orders`, orderColumns,
			dbtest.Row{int64(7), date, nil, nil, int64(0)}).
		ExpectQuery(`SELECT \* FROM products WHERE id = 3 FOR UPDATE`, productColumns,
			dbtest.Row{int64(3), "Monstera", int64(1500), int64(5)}).
		ExpectExec(`UPDATE products SET stock = stock - 1 WHERE id = 3`, 1).
		ExpectQuery(`INSERT INTO order_items`, orderItemColumns,
			dbtest.Row{int64(11), int64(7), int64(3), "Monstera", int64(1), int64(1500)}).
		ExpectQuery(`UPDATE orders SET total_cents = 1500 WHERE id = 7 RETURNING \*`, orderColumns,
			dbtest.Row{int64(7), date, nil, nil, int64(1500)})

	arm := testOrderRoutes(t, script)

	w := postOrder(t, arm, `{"date":"2026-03-14","items":[{"product_id":3,"qty":1}]}`)
	require.Empty(t, script.Failures())
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandleCreateOrderUnknownProductConflicts(t *testing.T) {
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	// A reservation that hits a vanished product is a conflict, not a 404
	script := dbtest.NewScript().
		ExpectQuery(`INSERT INTO orders`, orderColumns,
			dbtest.Row{int64(7), date, nil, nil, int64(0)}).
		ExpectQuery(`SELECT \* FROM products WHERE id = 42 FOR UPDATE`, productColumns)

	arm := testOrderRoutes(t, script)

	w := postOrder(t, arm, `{"items":[{"product_id":42,"qty":1}]}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "product 42")
}

func TestHandleCreateOrderInsufficientStockConflicts(t *testing.T) {
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	script := dbtest.NewScript().
		ExpectQuery(`INSERT INTO orders`, orderColumns,
			dbtest.Row{int64(7), date, nil, nil, int64(0)}).
		ExpectQuery(`SELECT \* FROM products WHERE id = 3 FOR UPDATE`, productColumns,
			dbtest.Row{int64(3), "Monstera", int64(1500), int64(1)})

	arm := testOrderRoutes(t, script)

	w := postOrder(t, arm, `{"items":[{"product_id":3,"qty":4}]}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}
