package lib

import (
	"net/http/httptest"
	"testing"
	"time"
	"vivero_server/structs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func testClaims() *structs.AuthClaims {
	now := time.Now()
	return &structs.AuthClaims{
		Sub:      42,
		Email:    "ana@example.com",
		Username: "ana",
		Role:     "USER",
		IsAdmin:  false,
		Iat:      now,
		Exp:      now.Add(time.Hour),
		Jti:      uuid.New(),
	}
}

func TestSignAndParseToken(t *testing.T) {
	claims := testClaims()

	token, err := SignToken(claims, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, claims.Sub, parsed.Sub)
	assert.Equal(t, claims.Email, parsed.Email)
	assert.Equal(t, claims.Username, parsed.Username)
	assert.Equal(t, claims.Role, parsed.Role)
	assert.Equal(t, claims.IsAdmin, parsed.IsAdmin)
	assert.Equal(t, claims.Jti, parsed.Jti)
	assert.WithinDuration(t, claims.Exp, parsed.Exp, time.Second)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := SignToken(testClaims(), testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, "other_secret")
	assert.Error(t, err)
}

func TestParseTokenTampered(t *testing.T) {
	token, err := SignToken(testClaims(), testSecret)
	require.NoError(t, err)

	tampered := token[:len(token)-3] + "abc"
	_, err = ParseToken(tampered, testSecret)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestExtractClaimsExpired(t *testing.T) {
	claims := testClaims()
	claims.Iat = time.Now().Add(-2 * time.Hour)
	claims.Exp = time.Now().Add(-time.Hour)

	token, err := SignToken(claims, testSecret)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	_, err = ExtractClaims(r, testSecret)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	_, err := ExtractBearerToken(r)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	r.Header.Set("Authorization", "Basic abc")
	_, err = ExtractBearerToken(r)
	assert.ErrorIs(t, err, ErrInvalidToken)

	r.Header.Set("Authorization", "Bearer ")
	_, err = ExtractBearerToken(r)
	assert.Error(t, err)

	r.Header.Set("Authorization", "Bearer sometoken")
	token, err := ExtractBearerToken(r)
	assert.NoError(t, err)
	assert.Equal(t, "sometoken", token)

	// Scheme is case-insensitive
	r.Header.Set("Authorization", "bearer sometoken")
	token, err = ExtractBearerToken(r)
	assert.NoError(t, err)
	assert.Equal(t, "sometoken", token)
}
