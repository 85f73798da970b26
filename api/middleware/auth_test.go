package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vivero_server/lib"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "mw_test_secret"

func testMiddleware() *Middleware {
	return &Middleware{
		cfg: &structs.Config{
			Auth: &structs.AuthConfig{TokenSecret: testSecret},
		},
		logger: gecho.NewDefaultLogger(),
	}
}

func signedToken(t *testing.T, isAdmin bool) string {
	t.Helper()

	role := "USER"
	if isAdmin {
		role = "ADMIN"
	}

	now := time.Now()
	token, err := lib.SignToken(&structs.AuthClaims{
		Sub:      7,
		Email:    "ana@example.com",
		Username: "ana",
		Role:     role,
		IsAdmin:  isAdmin,
		Iat:      now,
		Exp:      now.Add(time.Hour),
		Jti:      uuid.New(),
	}, testSecret)
	require.NoError(t, err)
	return token
}

func TestUserAuthMiddlewareRejectsMissingToken(t *testing.T) {
	mw := testMiddleware()

	called := false
	handler := mw.UserAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestUserAuthMiddlewareRejectsBadToken(t *testing.T) {
	mw := testMiddleware()

	handler := mw.UserAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	r := httptest.NewRequest("GET", "/me", nil)
	r.Header.Set("Authorization", "Bearer garbage")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserAuthMiddlewarePutsClaimsInContext(t *testing.T) {
	mw := testMiddleware()

	var got *structs.AuthClaims
	handler := mw.UserAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaimsFromContext(r.Context())
		require.True(t, ok)
		got = claims
	}))

	r := httptest.NewRequest("GET", "/me", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, false))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.Sub)
	assert.Equal(t, "ana", got.Username)
	assert.False(t, got.IsAdmin)
}

func TestAdminAuthMiddlewareRejectsNonAdmin(t *testing.T) {
	mw := testMiddleware()

	handler := mw.AdminAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	r := httptest.NewRequest("GET", "/admin/products", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, false))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminAuthMiddlewareAllowsAdmin(t *testing.T) {
	mw := testMiddleware()

	called := false
	handler := mw.AdminAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.True(t, claims.IsAdmin)
		called = true
	}))

	r := httptest.NewRequest("GET", "/admin/products", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, true))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestAdminAuthMiddlewareRejectsMissingToken(t *testing.T) {
	mw := testMiddleware()

	handler := mw.AdminAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/admin/products", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
