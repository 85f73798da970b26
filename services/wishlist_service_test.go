package services

import (
	"context"
	"testing"
	"vivero_server/database/dbtest"
	"vivero_server/lib"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistAdd(t *testing.T) {
	script := dbtest.NewScript().
		ExpectQuery(`SELECT count\(\*\) FROM products WHERE id = 5`, []string{"count"},
			dbtest.Row{int64(1)}).
		ExpectExec(`INSERT INTO wishlist`, 1)

	ws := scriptedWishlistService(t, script)

	mutation, err := ws.Add(context.Background(), 9, 5)
	require.NoError(t, err)
	assert.True(t, mutation.Added)
	assert.False(t, mutation.Exists)
	assert.Zero(t, script.Remaining())
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	// ON CONFLICT DO NOTHING affects zero rows on a duplicate
	script := dbtest.NewScript().
		ExpectQuery(`SELECT count\(\*\) FROM products WHERE id = 5`, []string{"count"},
			dbtest.Row{int64(1)}).
		ExpectExec(`INSERT INTO wishlist`, 0)

	ws := scriptedWishlistService(t, script)

	mutation, err := ws.Add(context.Background(), 9, 5)
	require.NoError(t, err)
	assert.False(t, mutation.Added)
	assert.True(t, mutation.Exists)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	script := dbtest.NewScript().
		ExpectQuery(`SELECT count\(\*\) FROM products WHERE id = 99`, []string{"count"},
			dbtest.Row{int64(0)})

	ws := scriptedWishlistService(t, script)

	_, err := ws.Add(context.Background(), 9, 99)
	assert.ErrorIs(t, err, lib.ErrNotFound)
	assert.False(t, script.Ran(`INSERT INTO wishlist`))
}

func TestWishlistRemove(t *testing.T) {
	script := dbtest.NewScript().
		ExpectExec(`DELETE FROM wishlist WHERE user_id = 9 AND product_id = 5`, 1)

	ws := scriptedWishlistService(t, script)

	mutation, err := ws.Remove(context.Background(), 9, 5)
	require.NoError(t, err)
	assert.True(t, mutation.Removed)

	// Removing again reports removed=false instead of erroring
	script = dbtest.NewScript().
		ExpectExec(`DELETE FROM wishlist WHERE user_id = 9 AND product_id = 5`, 0)

	ws = scriptedWishlistService(t, script)

	mutation, err = ws.Remove(context.Background(), 9, 5)
	require.NoError(t, err)
	assert.False(t, mutation.Removed)
}
