package structs

import (
	"time"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// AuthClaims is the decoded session token payload. Identity is decided once at
// the boundary and threaded through the request context as this value.
type AuthClaims struct {
	Sub      int64     `json:"sub"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	IsAdmin  bool      `json:"is_admin"`
	Iat      time.Time `json:"iat"`
	Exp      time.Time `json:"exp"`
	Jti      uuid.UUID `json:"jti"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Username string `json:"username" validate:"omitempty,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// LoginRequest accepts the identifier under several aliases; the first
// non-empty of identifier/email/username wins.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"omitempty,max=254"`
	Email      string `json:"email" validate:"omitempty,max=254"`
	Username   string `json:"username" validate:"omitempty,max=100"`
	Password   string `json:"password" validate:"required,max=100"`
}

type ProfileUpdateRequest struct {
	FullName     *string `json:"full_name"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	PostalCode   *string `json:"postal_code"`
	Country      *string `json:"country"`
}

// ProfileReadiness reports whether the profile has everything checkout needs.
type ProfileReadiness struct {
	Ok      bool     `json:"ok"`
	Missing []string `json:"missing"`
}
