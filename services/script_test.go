package services

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
	"vivero_server/database/dbtest"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

// Shared plumbing for tests that drive services against a scripted database.

func testServiceConfig() *structs.Config {
	return &structs.Config{
		Auth: &structs.AuthConfig{
			TokenSecret:       "test-secret",
			TokenExpiry:       time.Hour,
			MinPasswordLength: 6,
		},
		Cache: &structs.CacheConfig{
			CatalogTTL: time.Minute,
			ProductTTL: time.Minute,
		},
	}
}

// offlineCache returns a cache service whose client fails immediately, so
// cache reads miss and invalidation is a logged no-op.
func offlineCache(t *testing.T) *CacheService {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:       "127.0.0.1:0",
		MaxRetries: -1,
		Dialer: func(context.Context, string, string) (net.Conn, error) {
			return nil, errors.New("cache offline")
		},
	})
	t.Cleanup(func() { client.Close() })

	return &CacheService{
		logger: gecho.NewDefaultLogger(),
		config: testServiceConfig(),
		client: client,
	}
}

func scriptedCatalogService(t *testing.T, script *dbtest.Script) *CatalogService {
	t.Helper()

	db := dbtest.Open(script)
	t.Cleanup(func() { db.Close() })

	return &CatalogService{
		logger:       gecho.NewDefaultLogger(),
		db:           db,
		cacheService: offlineCache(t),
	}
}

func scriptedOrderService(t *testing.T, script *dbtest.Script) *OrderService {
	t.Helper()

	db := dbtest.Open(script)
	t.Cleanup(func() { db.Close() })

	return &OrderService{
		logger: gecho.NewDefaultLogger(),
		cfg:    testServiceConfig(),
		db:     db,
		catalogService: &CatalogService{
			logger:       gecho.NewDefaultLogger(),
			db:           db,
			cacheService: offlineCache(t),
		},
	}
}

func scriptedAuthService(t *testing.T, script *dbtest.Script) *AuthService {
	t.Helper()

	db := dbtest.Open(script)
	t.Cleanup(func() { db.Close() })

	return &AuthService{
		logger: gecho.NewDefaultLogger(),
		cfg:    testServiceConfig(),
		db:     db,
	}
}

func scriptedWishlistService(t *testing.T, script *dbtest.Script) *WishlistService {
	t.Helper()

	db := dbtest.Open(script)
	t.Cleanup(func() { db.Close() })

	return &WishlistService{
		logger: gecho.NewDefaultLogger(),
		db:     db,
	}
}

func scriptedReportService(t *testing.T, script *dbtest.Script) *ReportService {
	t.Helper()

	db := dbtest.Open(script)
	t.Cleanup(func() { db.Close() })

	return &ReportService{
		logger: gecho.NewDefaultLogger(),
		db:     db,
	}
}
