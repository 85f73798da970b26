package structs

// OrderRequest is a cart-like request: optional date and customer descriptor
// plus a non-empty ordered list of line items.
type OrderRequest struct {
	Date     string           `json:"date" validate:"omitempty,max=64"`
	Customer *CustomerRequest `json:"customer"`
	Items    []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type CustomerRequest struct {
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=40"`
}

// OrderItemInput is either catalog-linked (ProductID set, name/price optional
// overrides) or manual (no ProductID, name required). Quantity defaults to 1.
type OrderItemInput struct {
	ProductID      *int64 `json:"product_id" validate:"omitempty,gt=0"`
	Name           string `json:"name" validate:"omitempty,max=200"`
	Qty            int    `json:"qty" validate:"omitempty"`
	UnitPriceCents *int64 `json:"unit_price_cents" validate:"omitempty"`
}

// OrderListOptions filters the admin monthly order listing.
type OrderListOptions struct {
	Month int
	Year  int
	Query string
}

// OrderSummary is one row of the admin order listing.
type OrderSummary struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	CustomerName string `json:"customer_name,omitempty"`
	ItemsCount   int    `json:"items_count"`
	TotalCents   int64  `json:"total"`
}
