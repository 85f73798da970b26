package structs

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Slug string `json:"slug" validate:"omitempty,max=120"`
}

type CategoryUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Slug *string `json:"slug" validate:"omitempty,max=120"`
}

// ProductListOptions contains filtering, sorting and pagination options for
// catalog queries. SortKey holds one of the whitelisted sort values; anything
// else falls back to the default (most recent first).
type ProductListOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	SearchTerm   string `json:"q,omitempty"`
	CategorySlug string `json:"category,omitempty"`
	MinPrice     *int64 `json:"min_price,omitempty"`
	MaxPrice     *int64 `json:"max_price,omitempty"`

	SortKey string `json:"sort"`
}

// ProductInput carries the writable product fields from an admin multipart
// form. Pointer fields distinguish "absent" from "zero" on update.
type ProductInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Slug        *string `json:"slug" validate:"omitempty,max=220"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	PriceCents  *int64  `json:"price_cents" validate:"omitempty,gte=0"`
	Stock       *int    `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *int64  `json:"category_id" validate:"omitempty"`
}
