package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"context canceled", context.Canceled, false},
		{"no rows", sql.ErrNoRows, false},
		{"unique violation", pgError("23505"), false},
		{"foreign key violation", pgError("23503"), false},
		{"not null violation", pgError("23502"), false},
		{"check violation", pgError("23514"), false},
		{"serialization failure", pgError("40001"), true},
		{"deadlock", pgError("40P01"), true},
		{"connection failure", pgError("08006"), true},
		{"too many connections", pgError("53300"), true},
		{"cannot connect now", pgError("57P03"), true},
		{"unknown sqlstate", pgError("42703"), false},
		{"connection refused text", errors.New("dial tcp: connection refused"), true},
		{"broken pipe text", errors.New("write: broken pipe"), true},
		{"plain error", errors.New("something else"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryableError(tc.err))
		})
	}
}

func TestRetryWithBackoffStopsOnPermanentError(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1,
		EnableRetry:  true,
	}

	calls := 0
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return pgError("23505")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoffRetriesTransientError(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1,
		EnableRetry:  true,
	}

	calls := 0
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return pgError("40001")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoffExhaustsAttempts(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1,
		EnableRetry:  true,
	}

	calls := 0
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return pgError("40P01")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoffDisabled(t *testing.T) {
	cfg := DefaultRetryConfig()
	cfg.EnableRetry = false

	calls := 0
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return pgError("40001")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
