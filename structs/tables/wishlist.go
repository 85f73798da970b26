package tables

type WishlistEntry struct {
	tableName struct{} `bun:"table:wishlist,alias:w"`
	UserID    int64    `json:"user_id" bun:"user_id,pk"`
	ProductID int64    `json:"product_id" bun:"product_id,pk"`
}
