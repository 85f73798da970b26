package tables

import "time"

type Category struct {
	tableName struct{} `bun:"table:categories,alias:c"`
	ID        int64    `json:"id" bun:"id,pk,autoincrement"`
	Name      string   `json:"name" bun:"name,notnull"`
	Slug      string   `json:"slug" bun:"slug,unique,notnull"`
}

type Product struct {
	tableName   struct{}  `bun:"table:products,alias:p"`
	ID          int64     `json:"id" bun:"id,pk,autoincrement"`
	Name        string    `json:"name" bun:"name,notnull"`
	Slug        string    `json:"slug" bun:"slug"`
	Description string    `json:"description" bun:"description"`
	PriceCents  int64     `json:"price_cents" bun:"price_cents,notnull"` // opaque integer, never scaled
	Stock       int       `json:"stock" bun:"stock,notnull,default:0"`
	CategoryID  *int64    `json:"category_id,omitempty" bun:"category_id"`
	CreatedAt   time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
}

type ProductImage struct {
	tableName struct{} `bun:"table:product_images,alias:pi"`
	ID        int64    `json:"id" bun:"id,pk,autoincrement"`
	ProductID int64    `json:"product_id" bun:"product_id,notnull"`
	URL       string   `json:"url" bun:"url,notnull"`
}

// ProductRow is the joined catalog listing shape: product plus its category
// info, the primary image (first by id) and every image URL aggregated.
type ProductRow struct {
	ID           int64    `json:"id" bun:"id"`
	Name         string   `json:"name" bun:"name"`
	Slug         string   `json:"slug" bun:"slug"`
	Description  string   `json:"description" bun:"description"`
	PriceCents   int64    `json:"price_cents" bun:"price_cents"`
	Stock        int      `json:"stock" bun:"stock"`
	CategoryID   *int64   `json:"category_id" bun:"category_id"`
	CategoryName string   `json:"category_name,omitempty" bun:"category_name"`
	CategorySlug string   `json:"category_slug,omitempty" bun:"category_slug"`
	ImageURL     string   `json:"image_url" bun:"image_url"`
	Images       []string `json:"images" bun:"images,array"`
}
