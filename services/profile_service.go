package services

import (
	"context"
	"fmt"
	"strings"
	"vivero_server/database"
	"vivero_server/lib"
	"vivero_server/structs"
	"vivero_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

type ProfileService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewProfileService(logger *gecho.Logger, db *database.DB) *ProfileService {
	return &ProfileService{
		logger: logger,
		db:     db,
	}
}

// Get returns the user's own record, without the credential hash.
func (ps *ProfileService) Get(ctx context.Context, userID int64) (*tables.User, error) {
	user, err := database.RawQueryOne[tables.User](ps.db, ctx,
		`SELECT * FROM users WHERE id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, lib.ErrNotFound
	}

	user.PasswordHash = ""
	return user, nil
}

const maxProfileFieldLen = 120

// Update applies a partial profile update. Absent fields keep their value;
// supplied fields are trimmed, capped at 120 characters and may be cleared
// with an empty string.
func (ps *ProfileService) Update(ctx context.Context, userID int64, req *structs.ProfileUpdateRequest) (*tables.User, error) {
	fields := []struct {
		column string
		value  *string
	}{
		{"full_name", req.FullName},
		{"phone", req.Phone},
		{"address_line1", req.AddressLine1},
		{"address_line2", req.AddressLine2},
		{"city", req.City},
		{"state", req.State},
		{"postal_code", req.PostalCode},
		{"country", req.Country},
	}

	var sets []string
	var args []any
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		value := strings.TrimSpace(*f.value)
		if len(value) > maxProfileFieldLen {
			value = value[:maxProfileFieldLen]
		}
		sets = append(sets, f.column+" = ?")
		args = append(args, value)
	}

	if len(sets) == 0 {
		return ps.Get(ctx, userID)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, userID)

	user, err := database.RawQueryOne[tables.User](ps.db, ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ? RETURNING *",
		args...,
	)
	if err != nil {
		ps.logger.Error("Failed to update profile", gecho.Field("error", err), gecho.Field("user_id", userID))
		return nil, lib.MapPgError(err)
	}
	if user == nil {
		return nil, lib.ErrNotFound
	}

	user.PasswordHash = ""
	return user, nil
}

// checkoutFields are the profile fields an order shipment needs.
var checkoutFields = []struct {
	name  string
	value func(u *tables.User) string
}{
	{"full_name", func(u *tables.User) string { return u.FullName }},
	{"phone", func(u *tables.User) string { return u.Phone }},
	{"address_line1", func(u *tables.User) string { return u.AddressLine1 }},
	{"city", func(u *tables.User) string { return u.City }},
	{"postal_code", func(u *tables.User) string { return u.PostalCode }},
	{"country", func(u *tables.User) string { return u.Country }},
}

// Readiness reports whether the profile carries everything checkout needs
// and which fields are still missing.
func (ps *ProfileService) Readiness(ctx context.Context, userID int64) (*structs.ProfileReadiness, error) {
	user, err := ps.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	readiness := &structs.ProfileReadiness{Ok: true, Missing: []string{}}
	for _, f := range checkoutFields {
		if strings.TrimSpace(f.value(user)) == "" {
			readiness.Ok = false
			readiness.Missing = append(readiness.Missing, f.name)
		}
	}

	return readiness, nil
}
