package services

import (
	"context"
	"strings"
	"testing"
	"vivero_server/database/dbtest"
	"vivero_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProductFiltersEmpty(t *testing.T) {
	where, args := buildProductFilters(&structs.ProductListOptions{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildProductFiltersBindsEverything(t *testing.T) {
	minPrice := int64(100)
	maxPrice := int64(5000)

	where, args := buildProductFilters(&structs.ProductListOptions{
		SearchTerm:   "fern'; DROP TABLE products;--",
		CategorySlug: "plantas-de-interior",
		MinPrice:     &minPrice,
		MaxPrice:     &maxPrice,
	})

	// Every user value is a bound argument, never SQL text
	assert.NotContains(t, where, "DROP TABLE")
	assert.NotContains(t, where, "plantas-de-interior")
	assert.Equal(t, strings.Count(where, "?"), len(args))
	assert.Len(t, args, 5) // search pattern twice, slug, both price bounds

	assert.Contains(t, where, "p.name ILIKE ?")
	assert.Contains(t, where, "c.slug = ?")
	assert.Contains(t, where, "p.price_cents >= ?")
	assert.Contains(t, where, "p.price_cents <= ?")
	assert.Contains(t, args, "%fern'; DROP TABLE products;--%")
}

func TestProductSortClauses(t *testing.T) {
	for _, key := range []string{"price-asc", "price-desc", "name-asc", "name-desc", "recent"} {
		clause, ok := productSortClauses[key]
		assert.True(t, ok, "missing sort key %q", key)
		assert.NotEmpty(t, clause)
	}

	_, ok := productSortClauses["id; DROP TABLE products"]
	assert.False(t, ok)
}

func TestReplaceProductImageSwapsRows(t *testing.T) {
	imageColumns := []string{"id", "product_id", "url"}

	script := dbtest.NewScript().
		ExpectQuery(`SELECT count\(\*\) FROM products WHERE id = 9`, []string{"count"},
			dbtest.Row{int64(1)}).
		ExpectQuery(`SELECT \* FROM product_images WHERE product_id = 9`, imageColumns,
			dbtest.Row{int64(1), int64(9), "/uploads/old.png"}).
		ExpectExec(`DELETE FROM product_images WHERE product_id = 9`, 1).
		ExpectQuery(`INSERT INTO product_images`, imageColumns,
			dbtest.Row{int64(2), int64(9), "/uploads/new.png"})

	cs := scriptedCatalogService(t, script)

	image, priorURLs, err := cs.ReplaceProductImage(context.Background(), 9, "/uploads/new.png")
	require.NoError(t, err)
	require.Empty(t, script.Failures())

	// The old rows are gone and reported for file cleanup, so the new
	// image is the only one left and becomes the display image
	assert.Equal(t, "/uploads/new.png", image.URL)
	assert.Equal(t, []string{"/uploads/old.png"}, priorURLs)
	assert.Equal(t, 1, script.Commits())
	assert.Zero(t, script.Remaining())
}

func TestDeleteProductUnknownIDIsNoOp(t *testing.T) {
	script := dbtest.NewScript().
		ExpectQuery(`SELECT \* FROM product_images WHERE product_id = 99`, []string{"id", "product_id", "url"}).
		ExpectExec(`DELETE FROM wishlist WHERE product_id = 99`, 0).
		ExpectExec(`DELETE FROM product_images WHERE product_id = 99`, 0).
		ExpectExec(`DELETE FROM products WHERE id = 99`, 0)

	cs := scriptedCatalogService(t, script)

	urls, err := cs.DeleteProduct(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.Equal(t, 1, script.Commits())
}

func TestUpdateCategoryUnknownIDIsNoOp(t *testing.T) {
	script := dbtest.NewScript().
		ExpectQuery(`UPDATE categories SET name = 'Bonsai', slug = 'bonsai' WHERE id = 99 RETURNING \*`,
			[]string{"id", "name", "slug"})

	cs := scriptedCatalogService(t, script)

	name := "Bonsai"
	category, err := cs.UpdateCategory(context.Background(), 99, &structs.CategoryUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, category)
}
