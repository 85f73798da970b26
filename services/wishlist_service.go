package services

import (
	"context"
	"fmt"
	"vivero_server/database"
	"vivero_server/lib"
	"vivero_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

type WishlistService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewWishlistService(logger *gecho.Logger, db *database.DB) *WishlistService {
	return &WishlistService{
		logger: logger,
		db:     db,
	}
}

// WishlistMutation reports the outcome of an add or remove. Both operations
// are idempotent: repeating them is not an error.
type WishlistMutation struct {
	Added   bool `json:"added,omitempty"`
	Removed bool `json:"removed,omitempty"`
	Exists  bool `json:"exists,omitempty"`
}

// List returns the user's wishlisted products as full catalog rows.
func (ws *WishlistService) List(ctx context.Context, userID int64) ([]tables.ProductRow, error) {
	products, err := database.RawQuery[tables.ProductRow](ws.db, ctx,
		productRowSelect+`
		 JOIN wishlist w ON w.product_id = p.id
		 WHERE w.user_id = ?
		 ORDER BY p.name ASC`,
		userID,
	)
	if err != nil {
		ws.logger.Error("Failed to fetch wishlist", gecho.Field("error", err), gecho.Field("user_id", userID))
		return nil, fmt.Errorf("failed to fetch wishlist: %w", err)
	}

	return products, nil
}

// Add puts a product on the user's wishlist. Adding an already-present
// product reports exists instead of failing.
func (ws *WishlistService) Add(ctx context.Context, userID, productID int64) (*WishlistMutation, error) {
	exists, err := database.RawScalar[int64](ws.db, ctx,
		`SELECT count(*) FROM products WHERE id = ?`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if exists == 0 {
		return nil, lib.ErrNotFound
	}

	affected, err := database.RawExec(ws.db, ctx,
		`INSERT INTO wishlist (user_id, product_id)
		 VALUES (?, ?)
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID,
	)
	if err != nil {
		ws.logger.Error("Failed to add wishlist entry",
			gecho.Field("error", err),
			gecho.Field("user_id", userID),
			gecho.Field("product_id", productID),
		)
		return nil, lib.MapPgError(err)
	}

	if affected == 0 {
		return &WishlistMutation{Added: false, Exists: true}, nil
	}
	return &WishlistMutation{Added: true}, nil
}

// Remove takes a product off the user's wishlist.
func (ws *WishlistService) Remove(ctx context.Context, userID, productID int64) (*WishlistMutation, error) {
	affected, err := database.RawExec(ws.db, ctx,
		`DELETE FROM wishlist WHERE user_id = ? AND product_id = ?`,
		userID, productID,
	)
	if err != nil {
		ws.logger.Error("Failed to remove wishlist entry",
			gecho.Field("error", err),
			gecho.Field("user_id", userID),
			gecho.Field("product_id", productID),
		)
		return nil, fmt.Errorf("failed to remove wishlist entry: %w", err)
	}

	return &WishlistMutation{Removed: affected > 0}, nil
}
