package admin

import (
	"net/http"
	"vivero_server/api/health"
	"vivero_server/handling"
	"vivero_server/lib"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleListOrders handles GET /admin/orders with month/year/q filters.
func (arm *AdminRoutesManager) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	opts := handling.ParseOrderListOptions(r)

	orders, err := arm.orderService.ListOrders(r.Context(), opts)
	if err != nil {
		handling.HandleServiceError(err, "Failed to fetch orders", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(orders),
		gecho.Send(),
	)
}

// HandleCreateOrder handles POST /admin/orders. Stock is reserved and
// decremented inside one transaction; a failing line item rejects the
// whole order.
func (arm *AdminRoutesManager) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.OrderRequest](r)
	if err != nil {
		arm.logger.Warn("Invalid order body", gecho.Field("error", err))
		handling.HandleBodyError(err, w)
		return
	}

	detail, err := arm.orderService.CreateOrder(r.Context(), body)
	if err != nil {
		switch {
		case lib.IsInsufficientStock(err):
			health.OrdersRejected.WithLabelValues("insufficient_stock").Inc()
		case lib.IsNotFound(err):
			health.OrdersRejected.WithLabelValues("unknown_product").Inc()
			// An aborted reservation is a conflict, not a missing route
			// resource; the order itself never existed
			gecho.Conflict(w, gecho.WithMessage(err.Error()), gecho.Send())
			return
		default:
			health.OrdersRejected.WithLabelValues("other").Inc()
		}
		handling.HandleServiceError(err, "Failed to create order", arm.logger, w)
		return
	}

	health.OrdersCreated.Inc()

	gecho.Created(w,
		gecho.WithMessage("Order created"),
		gecho.WithData(detail),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}

	detail, err := arm.orderService.GetOrderByID(r.Context(), id)
	if err != nil {
		handling.HandleServiceError(err, "Order not found", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(detail),
		gecho.Send(),
	)
}
