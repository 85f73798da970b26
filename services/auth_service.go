package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"vivero_server/database"
	"vivero_server/lib"
	"vivero_server/structs"
	"vivero_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

var DefaultParams = &structs.ArgonParams{
	Memory:  64 * 1024, // 64 MB
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
		db:     db,
	}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UsernameFromEmail derives a default username from the email local part.
func UsernameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	return local
}

// ResolveIdentifier picks the login identifier from its accepted aliases,
// first non-empty wins.
func ResolveIdentifier(req *structs.LoginRequest) string {
	for _, candidate := range []string{req.Identifier, req.Email, req.Username} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func (as *AuthService) Register(ctx context.Context, req *structs.RegisterRequest) (*tables.User, error) {
	startTime := time.Now()

	if len(req.Password) < as.cfg.Auth.MinPasswordLength {
		return nil, &lib.ValidationError{Errors: []lib.FieldError{{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", as.cfg.Auth.MinPasswordLength),
		}}}
	}

	email := NormalizeEmail(req.Email)
	if !strings.Contains(email, "@") {
		return nil, &lib.ValidationError{Errors: []lib.FieldError{{
			Field:   "email",
			Message: "must be a valid email address",
		}}}
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = UsernameFromEmail(email)
	}

	// Usernames are unique regardless of case, so the column constraint
	// alone is not enough
	taken, err := database.RawScalar[int64](as.db, ctx,
		`SELECT count(*) FROM users WHERE email = ? OR LOWER(username) = LOWER(?)`,
		email, username,
	)
	if err != nil {
		as.logger.Error("Failed to check existing users", gecho.Field("error", err))
		return nil, err
	}
	if taken > 0 {
		as.logger.Warn("Registration failed - duplicate user",
			gecho.Field("username", username),
			gecho.Field("email", email),
		)
		return nil, lib.ErrConflict
	}

	passwordHash, err := as.HashPassword(req.Password, DefaultParams)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}

	user, err := database.RawQueryOne[tables.User](as.db, ctx,
		`INSERT INTO users (email, username, password_hash)
		 VALUES (?, ?, ?)
		 RETURNING *`,
		email, username, passwordHash,
	)
	if err != nil {
		mappedErr := lib.MapPgError(err)

		if lib.IsUniqueViolation(mappedErr) {
			// Log unique violations as warnings (user error)
			as.logger.Warn("Registration failed - duplicate user",
				gecho.Field("username", username),
				gecho.Field("email", email),
			)
		} else {
			as.logger.Error("Database error during registration",
				gecho.Field("error", mappedErr),
				gecho.Field("username", username),
			)
		}

		return nil, mappedErr
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User registered successfully", gecho.Field("user_id", user.ID), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	// Remove password hash before returning user
	user.PasswordHash = ""

	return user, nil
}

func (as *AuthService) Login(ctx context.Context, req *structs.LoginRequest) (*tables.User, error) {
	startTime := time.Now()

	identifier := ResolveIdentifier(req)
	if identifier == "" || req.Password == "" {
		return nil, lib.ErrInvalidCredentials
	}

	var user *tables.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = database.RawQueryOne[tables.User](as.db, ctx,
			`SELECT * FROM users WHERE email = ?`, NormalizeEmail(identifier))
	} else {
		user, err = database.RawQueryOne[tables.User](as.db, ctx,
			`SELECT * FROM users WHERE LOWER(username) = LOWER(?)`, identifier)
	}
	if err != nil {
		as.logger.Error("Unexpected database error during login",
			gecho.Field("error", err),
			gecho.Field("identifier", identifier),
		)
		// Never leak whether the account exists
		return nil, lib.ErrInvalidCredentials
	}
	if user == nil {
		as.logger.Debug("User not found during login attempt", gecho.Field("identifier", identifier))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := as.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", user.ID),
		)
		return nil, lib.ErrInvalidCredentials
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("identifier", identifier),
			gecho.Field("user_id", user.ID),
		)
		return nil, lib.ErrInvalidCredentials
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User logged in successfully", gecho.Field("user_id", user.ID), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	// Remove password hash before returning user
	user.PasswordHash = ""

	return user, nil
}

// HashPassword hashes a plain-text password and returns a string and possible error
func (as *AuthService) HashPassword(password string, p *structs.ArgonParams) (string, error) {
	salt, err := generateSalt(p.SaltLen)
	if err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)
	// format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	params := fmt.Sprintf("m=%d,t=%d,p=%d", p.Memory, p.Time, p.Threads)
	encoded := fmt.Sprintf("$argon2id$v=19$%s$%s$%s", params, b64Salt, b64Hash)
	return encoded, nil
}

func generateSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// VerifyPassword verifies a plain-text password against a hashed password
func (as *AuthService) VerifyPassword(password, hashedPassword string) (bool, error) {
	parts, err := lib.DecodeArgon2Hash(hashedPassword)
	if err != nil {
		return false, err
	}

	// Hash the input password with the same parameters
	hash := argon2.IDKey([]byte(password), parts.Salt, parts.Time, parts.Memory, parts.Threads, parts.KeyLen)

	// Compare the hashes
	return lib.SecureCompare(hash, parts.Hash), nil
}

// GenerateToken signs a session token for the given user.
func (as *AuthService) GenerateToken(user *tables.User) (string, error) {
	now := time.Now()

	claims := &structs.AuthClaims{
		Sub:      user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		IsAdmin:  user.IsAdmin,
		Iat:      now,
		Exp:      now.Add(as.cfg.Auth.TokenExpiry),
		Jti:      uuid.New(),
	}

	return lib.SignToken(claims, as.cfg.Auth.TokenSecret)
}
