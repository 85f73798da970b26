package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"vivero_server/database"
	"vivero_server/lib"
	"vivero_server/structs"
	"vivero_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type CatalogService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewCatalogService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *CatalogService {
	return &CatalogService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// ProductListResult wraps the product list response with metadata
type ProductListResult struct {
	Products   []tables.ProductRow        `json:"products"`
	Pagination database.Pagination        `json:"pagination"`
	Filters    structs.ProductListOptions `json:"filters"`
}

// Sort keys map to fixed ORDER BY fragments. ORDER BY cannot be bound as a
// placeholder, so only values from this table ever reach the SQL text.
var productSortClauses = map[string]string{
	"price-asc":  "p.price_cents ASC, p.id ASC",
	"price-desc": "p.price_cents DESC, p.id ASC",
	"name-asc":   "p.name ASC, p.id ASC",
	"name-desc":  "p.name DESC, p.id ASC",
	"recent":     "p.created_at DESC, p.id DESC",
}

const productRowSelect = `
	SELECT p.id, p.name, p.slug, p.description, p.price_cents, p.stock, p.category_id,
	       COALESCE(c.name, '') AS category_name,
	       COALESCE(c.slug, '') AS category_slug,
	       COALESCE((SELECT pi.url FROM product_images pi WHERE pi.product_id = p.id ORDER BY pi.id LIMIT 1), '') AS image_url,
	       COALESCE((SELECT array_agg(pi.url ORDER BY pi.id) FROM product_images pi WHERE pi.product_id = p.id), '{}') AS images
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// buildProductFilters translates list options into WHERE clauses with bound
// arguments. User input only ever lands in args, never in the SQL text.
func buildProductFilters(opts *structs.ProductListOptions) (string, []any) {
	var clauses []string
	var args []any

	if opts.SearchTerm != "" {
		clauses = append(clauses, "(p.name ILIKE ? OR p.description ILIKE ?)")
		pattern := "%" + opts.SearchTerm + "%"
		args = append(args, pattern, pattern)
	}
	if opts.CategorySlug != "" {
		clauses = append(clauses, "c.slug = ?")
		args = append(args, opts.CategorySlug)
	}
	if opts.MinPrice != nil {
		clauses = append(clauses, "p.price_cents >= ?")
		args = append(args, *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		clauses = append(clauses, "p.price_cents <= ?")
		args = append(args, *opts.MaxPrice)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// ListProducts retrieves the joined product listing with filtering, sorting
// and pagination.
func (cs *CatalogService) ListProducts(ctx context.Context, opts *structs.ProductListOptions) (*ProductListResult, error) {
	startTime := time.Now()

	where, args := buildProductFilters(opts)

	orderBy, ok := productSortClauses[opts.SortKey]
	if !ok {
		orderBy = productSortClauses["recent"]
	}

	total, err := database.RawScalar[int64](cs.db, ctx,
		"SELECT count(*) FROM products p LEFT JOIN categories c ON c.id = p.category_id"+where,
		args...,
	)
	if err != nil {
		cs.logger.Error("Failed to count products", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	query := productRowSelect + where +
		" ORDER BY " + orderBy +
		" LIMIT ? OFFSET ?"
	listArgs := append(args, opts.PageSize, database.Offset(opts.Page, opts.PageSize))

	products, err := database.RawQuery[tables.ProductRow](cs.db, ctx, query, listArgs...)
	if err != nil {
		cs.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("page", opts.Page),
			gecho.Field("pageSize", opts.PageSize),
		)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	cs.logger.Debug("Products fetched successfully",
		gecho.Field("count", len(products)),
		gecho.Field("total", total),
		gecho.Field("page", opts.Page),
		gecho.Field("duration", time.Since(startTime)),
	)

	return &ProductListResult{
		Products:   products,
		Pagination: database.NewPagination(opts.Page, opts.PageSize, total),
		Filters:    *opts,
	}, nil
}

// GetProductByID retrieves a single joined product row, consulting the cache first.
func (cs *CatalogService) GetProductByID(ctx context.Context, id int64) (*tables.ProductRow, error) {
	startTime := time.Now()

	cached, err := cs.cacheService.GetProductFromCache(id)
	if err != nil {
		cs.logger.Warn("Failed to get product from cache", gecho.Field("error", err), gecho.Field("id", id))
	} else if cached != nil {
		cs.logger.Debug("Product retrieved from cache", gecho.Field("id", id), gecho.Field("duration", time.Since(startTime)))
		return cached, nil
	}

	product, err := database.RawQueryOne[tables.ProductRow](cs.db, ctx,
		productRowSelect+" WHERE p.id = ?", id)
	if err != nil {
		cs.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("id", id))
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}

	if cacheErr := cs.cacheService.SetProductInCache(product); cacheErr != nil {
		cs.logger.Warn("Failed to cache product", gecho.Field("error", cacheErr), gecho.Field("id", id))
	}

	return product, nil
}

// CreateProduct inserts a new product from admin input. The slug is derived
// from the name unless supplied explicitly.
func (cs *CatalogService) CreateProduct(ctx context.Context, input *structs.ProductInput) (*tables.Product, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, &lib.ValidationError{Errors: []lib.FieldError{{Field: "name", Message: "is required"}}}
	}

	name := strings.TrimSpace(*input.Name)

	slug := ""
	if input.Slug != nil {
		slug = strings.TrimSpace(*input.Slug)
	}
	if slug == "" {
		slug = lib.Slugify(name)
	}

	description := ""
	if input.Description != nil {
		description = *input.Description
	}

	var priceCents int64
	if input.PriceCents != nil && *input.PriceCents > 0 {
		priceCents = *input.PriceCents
	}

	stock := 0
	if input.Stock != nil && *input.Stock > 0 {
		stock = *input.Stock
	}

	if input.CategoryID != nil {
		if err := cs.categoryExists(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	product, err := database.RawQueryOne[tables.Product](cs.db, ctx,
		`INSERT INTO products (name, slug, description, price_cents, stock, category_id)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING *`,
		name, slug, description, priceCents, stock, input.CategoryID,
	)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		cs.logger.Error("Failed to create product", gecho.Field("error", mappedErr), gecho.Field("name", name))
		return nil, mappedErr
	}

	cs.logger.Info("Product created", gecho.Field("id", product.ID), gecho.Field("slug", product.Slug))
	return product, nil
}

// UpdateProduct applies a partial update. Absent fields keep their value.
func (cs *CatalogService) UpdateProduct(ctx context.Context, id int64, input *structs.ProductInput) (*tables.Product, error) {
	var sets []string
	var args []any

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, &lib.ValidationError{Errors: []lib.FieldError{{Field: "name", Message: "is required"}}}
		}
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if slug == "" && input.Name != nil {
			slug = lib.Slugify(strings.TrimSpace(*input.Name))
		}
		sets = append(sets, "slug = ?")
		args = append(args, slug)
	}
	if input.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *input.Description)
	}
	if input.PriceCents != nil {
		price := *input.PriceCents
		if price < 0 {
			price = 0
		}
		sets = append(sets, "price_cents = ?")
		args = append(args, price)
	}
	if input.Stock != nil {
		stock := *input.Stock
		if stock < 0 {
			stock = 0
		}
		sets = append(sets, "stock = ?")
		args = append(args, stock)
	}
	if input.CategoryID != nil {
		if *input.CategoryID > 0 {
			if err := cs.categoryExists(ctx, *input.CategoryID); err != nil {
				return nil, err
			}
			sets = append(sets, "category_id = ?")
			args = append(args, *input.CategoryID)
		} else {
			sets = append(sets, "category_id = NULL")
		}
	}

	if len(sets) == 0 {
		// Nothing to change, return the current row
		product, err := database.RawQueryOne[tables.Product](cs.db, ctx,
			`SELECT * FROM products WHERE id = ?`, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch product: %w", err)
		}
		return product, nil
	}

	args = append(args, id)
	product, err := database.RawQueryOne[tables.Product](cs.db, ctx,
		"UPDATE products SET "+strings.Join(sets, ", ")+" WHERE id = ? RETURNING *",
		args...,
	)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		cs.logger.Error("Failed to update product", gecho.Field("error", mappedErr), gecho.Field("id", id))
		return nil, mappedErr
	}
	if product == nil {
		// Unknown id updates are a no-op
		return nil, nil
	}

	if cacheErr := cs.cacheService.InvalidateProduct(id); cacheErr != nil {
		cs.logger.Warn("Failed to invalidate product cache", gecho.Field("error", cacheErr), gecho.Field("id", id))
	}

	return product, nil
}

// DeleteProduct removes a product and its dependents in one transaction and
// returns the image URLs so the caller can clean up stored files.
func (cs *CatalogService) DeleteProduct(ctx context.Context, id int64) ([]string, error) {
	var imageURLs []string

	err := cs.db.WithinTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		images, err := database.RawQuery[tables.ProductImage](tx, ctx,
			`SELECT * FROM product_images WHERE product_id = ?`, id)
		if err != nil {
			return err
		}
		for _, img := range images {
			imageURLs = append(imageURLs, img.URL)
		}

		// Dependents first: wishlist entries, then images, then the product
		if _, err := database.RawExec(tx, ctx,
			`DELETE FROM wishlist WHERE product_id = ?`, id); err != nil {
			return err
		}
		if _, err := database.RawExec(tx, ctx,
			`DELETE FROM product_images WHERE product_id = ?`, id); err != nil {
			return err
		}

		// Unknown ids delete zero rows, which is fine
		_, err = database.RawExec(tx, ctx,
			`DELETE FROM products WHERE id = ?`, id)
		return err
	})
	if err != nil {
		cs.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("id", id))
		return nil, err
	}

	if cacheErr := cs.cacheService.InvalidateProduct(id); cacheErr != nil {
		cs.logger.Warn("Failed to invalidate product cache", gecho.Field("error", cacheErr), gecho.Field("id", id))
	}

	cs.logger.Info("Product deleted", gecho.Field("id", id), gecho.Field("images", len(imageURLs)))
	return imageURLs, nil
}

// ReplaceProductImage swaps a product's image set for the uploaded one: the
// prior rows are removed in the same transaction as the insert, and their
// URLs are returned so the caller can delete the stored files.
func (cs *CatalogService) ReplaceProductImage(ctx context.Context, productID int64, url string) (*tables.ProductImage, []string, error) {
	if err := cs.productExists(ctx, productID); err != nil {
		return nil, nil, err
	}

	var image *tables.ProductImage
	var priorURLs []string

	err := cs.db.WithinTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		prior, err := database.RawQuery[tables.ProductImage](tx, ctx,
			`SELECT * FROM product_images WHERE product_id = ?`, productID)
		if err != nil {
			return err
		}
		for _, img := range prior {
			priorURLs = append(priorURLs, img.URL)
		}

		if _, err := database.RawExec(tx, ctx,
			`DELETE FROM product_images WHERE product_id = ?`, productID); err != nil {
			return err
		}

		image, err = database.RawQueryOne[tables.ProductImage](tx, ctx,
			`INSERT INTO product_images (product_id, url) VALUES (?, ?) RETURNING *`,
			productID, url,
		)
		return err
	})
	if err != nil {
		mappedErr := lib.MapPgError(err)
		cs.logger.Error("Failed to replace product image", gecho.Field("error", mappedErr), gecho.Field("product_id", productID))
		return nil, nil, mappedErr
	}

	if cacheErr := cs.cacheService.InvalidateProduct(productID); cacheErr != nil {
		cs.logger.Warn("Failed to invalidate product cache", gecho.Field("error", cacheErr), gecho.Field("id", productID))
	}

	return image, priorURLs, nil
}

// ListCategories returns every category, cached for the catalog TTL.
func (cs *CatalogService) ListCategories(ctx context.Context) ([]tables.Category, error) {
	cached, err := cs.cacheService.GetCategoriesFromCache()
	if err != nil {
		cs.logger.Warn("Failed to get categories from cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached, nil
	}

	categories, err := database.RawQuery[tables.Category](cs.db, ctx,
		`SELECT * FROM categories ORDER BY name ASC`)
	if err != nil {
		cs.logger.Error("Failed to fetch categories", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	if cacheErr := cs.cacheService.SetCategoriesInCache(categories); cacheErr != nil {
		cs.logger.Warn("Failed to cache categories", gecho.Field("error", cacheErr))
	}

	return categories, nil
}

// CreateCategory inserts a category, deriving the slug from the name when absent.
func (cs *CatalogService) CreateCategory(ctx context.Context, req *structs.CategoryRequest) (*tables.Category, error) {
	name := strings.TrimSpace(req.Name)

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = lib.Slugify(name)
	}
	if slug == "" {
		return nil, &lib.ValidationError{Errors: []lib.FieldError{{Field: "name", Message: "is invalid"}}}
	}

	category, err := database.RawQueryOne[tables.Category](cs.db, ctx,
		`INSERT INTO categories (name, slug) VALUES (?, ?) RETURNING *`,
		name, slug,
	)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if lib.IsUniqueViolation(mappedErr) {
			cs.logger.Warn("Category slug already exists", gecho.Field("slug", slug))
		} else {
			cs.logger.Error("Failed to create category", gecho.Field("error", mappedErr), gecho.Field("name", name))
		}
		return nil, mappedErr
	}

	cs.invalidateCategories()
	return category, nil
}

// UpdateCategory applies a partial category update.
func (cs *CatalogService) UpdateCategory(ctx context.Context, id int64, req *structs.CategoryUpdateRequest) (*tables.Category, error) {
	var sets []string
	var args []any

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, &lib.ValidationError{Errors: []lib.FieldError{{Field: "name", Message: "is required"}}}
		}
		sets = append(sets, "name = ?")
		args = append(args, name)

		// Re-derive the slug unless one is supplied alongside
		if req.Slug == nil {
			sets = append(sets, "slug = ?")
			args = append(args, lib.Slugify(name))
		}
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if slug == "" {
			return nil, &lib.ValidationError{Errors: []lib.FieldError{{Field: "slug", Message: "is required"}}}
		}
		sets = append(sets, "slug = ?")
		args = append(args, slug)
	}

	if len(sets) == 0 {
		category, err := database.RawQueryOne[tables.Category](cs.db, ctx,
			`SELECT * FROM categories WHERE id = ?`, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch category: %w", err)
		}
		return category, nil
	}

	args = append(args, id)
	category, err := database.RawQueryOne[tables.Category](cs.db, ctx,
		"UPDATE categories SET "+strings.Join(sets, ", ")+" WHERE id = ? RETURNING *",
		args...,
	)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		cs.logger.Error("Failed to update category", gecho.Field("error", mappedErr), gecho.Field("id", id))
		return nil, mappedErr
	}
	if category == nil {
		// Unknown id updates are a no-op
		return nil, nil
	}

	cs.invalidateCategories()
	return category, nil
}

// DeleteCategory removes a category. Products keep existing with their
// category detached.
func (cs *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	err := cs.db.WithinTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := database.RawExec(tx, ctx,
			`UPDATE products SET category_id = NULL WHERE category_id = ?`, id); err != nil {
			return err
		}

		// Unknown ids delete zero rows, which is fine
		_, err := database.RawExec(tx, ctx,
			`DELETE FROM categories WHERE id = ?`, id)
		return err
	})
	if err != nil {
		cs.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("id", id))
		return err
	}

	cs.invalidateCategories()
	cs.logger.Info("Category deleted", gecho.Field("id", id))
	return nil
}

func (cs *CatalogService) invalidateCategories() {
	if err := cs.cacheService.InvalidateCategories(); err != nil {
		cs.logger.Warn("Failed to invalidate category cache", gecho.Field("error", err))
	}
}

func (cs *CatalogService) categoryExists(ctx context.Context, id int64) error {
	count, err := database.RawScalar[int64](cs.db, ctx,
		`SELECT count(*) FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}
	return nil
}

func (cs *CatalogService) productExists(ctx context.Context, id int64) error {
	count, err := database.RawScalar[int64](cs.db, ctx,
		`SELECT count(*) FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}
	return nil
}
