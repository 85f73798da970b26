package tables

import "time"

type Order struct {
	tableName     struct{}  `bun:"table:orders,alias:o"`
	ID            int64     `json:"id" bun:"id,pk,autoincrement"`
	Date          time.Time `json:"date" bun:"date,notnull,default:now()"`
	CustomerName  *string   `json:"customer_name,omitempty" bun:"customer_name"`
	CustomerPhone *string   `json:"customer_phone,omitempty" bun:"customer_phone"`
	TotalCents    int64     `json:"total_cents" bun:"total_cents,notnull,default:0"`
}

// OrderItem keeps a snapshot of the item name and unit price at creation
// time, decoupled from the live product row.
type OrderItem struct {
	tableName      struct{} `bun:"table:order_items,alias:oi"`
	ID             int64    `json:"id" bun:"id,pk,autoincrement"`
	OrderID        int64    `json:"order_id" bun:"order_id,notnull"`
	ProductID      *int64   `json:"product_id,omitempty" bun:"product_id"`
	Name           string   `json:"name" bun:"name,notnull"`
	Qty            int      `json:"qty" bun:"qty,notnull"`
	UnitPriceCents int64    `json:"unit_price_cents" bun:"unit_price_cents,notnull"`
}
