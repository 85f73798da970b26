package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// The gateway executes raw parameterized queries only: every placeholder is
// a bun `?` bound to an argument, user input is never interpolated into SQL
// text. The helpers accept bun.IDB so the same code runs on the pool or
// inside a transaction.

// RawQuery executes a raw SQL query and scans all rows into T with automatic
// retry on transient failures.
func RawQuery[T any](idb bun.IDB, ctx context.Context, query string, args ...any) ([]T, error) {
	start := time.Now()
	var data []T

	err := WithRetry(ctx, func() error {
		data = nil // Reset on retry
		return idb.NewRaw(query, args...).Scan(ctx, &data)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to execute raw query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// RawQueryOne executes a raw SQL query and scans the first row into T.
// Returns (nil, nil) when no row matches.
func RawQueryOne[T any](idb bun.IDB, ctx context.Context, query string, args ...any) (*T, error) {
	start := time.Now()
	var data T

	err := WithRetry(ctx, func() error {
		return idb.NewRaw(query, args...).Scan(ctx, &data)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute raw query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// RawExec executes a raw SQL command (INSERT, UPDATE, DELETE) and returns the
// number of affected rows.
func RawExec(idb bun.IDB, ctx context.Context, query string, args ...any) (int, error) {
	start := time.Now()
	var rowsAffected int64

	err := WithRetry(ctx, func() error {
		res, err := idb.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute raw command: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// RawScalar executes a raw SQL query expected to yield a single value.
func RawScalar[T any](idb bun.IDB, ctx context.Context, query string, args ...any) (T, error) {
	start := time.Now()
	var value T

	err := WithRetry(ctx, func() error {
		return idb.NewRaw(query, args...).Scan(ctx, &value)
	})

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return value, fmt.Errorf("failed to execute scalar query: %w (took %v)", err, time.Since(start))
	}

	return value, nil
}
