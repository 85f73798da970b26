package tables

import (
	"time"
)

type User struct {
	tableName    struct{}  `bun:"table:users,alias:u"`
	ID           int64     `json:"id" bun:"id,pk,autoincrement"`
	Email        string    `json:"email" bun:"email,unique,notnull"`
	Username     string    `json:"username" bun:"username,unique,notnull"`
	PasswordHash string    `json:"-" bun:"password_hash,notnull"`
	Role         string    `json:"role" bun:"role,notnull,default:'USER'"`
	IsAdmin      bool      `json:"is_admin" bun:"is_admin,notnull,default:false"`
	FullName     string    `json:"full_name,omitempty" bun:"full_name"`
	Phone        string    `json:"phone,omitempty" bun:"phone"`
	AddressLine1 string    `json:"address_line1,omitempty" bun:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty" bun:"address_line2"`
	City         string    `json:"city,omitempty" bun:"city"`
	State        string    `json:"state,omitempty" bun:"state"`
	PostalCode   string    `json:"postal_code,omitempty" bun:"postal_code"`
	Country      string    `json:"country,omitempty" bun:"country"`
	CreatedAt    time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
	UpdatedAt    time.Time `json:"updated_at" bun:"updated_at,notnull,default:now()"`
}

// SafeUser is the client-visible shape of a user, embedded in auth responses
// and token claims. It never carries the credential hash.
type SafeUser struct {
	ID       int64  `json:"id" bun:"id"`
	Email    string `json:"email" bun:"email"`
	Username string `json:"username" bun:"username"`
	Role     string `json:"role" bun:"role"`
	IsAdmin  bool   `json:"is_admin" bun:"is_admin"`
}

func (u *User) Safe() *SafeUser {
	return &SafeUser{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role,
		IsAdmin:  u.IsAdmin,
	}
}
