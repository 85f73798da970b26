package database

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// WithinTx executes fn inside a single all-or-nothing transaction. Any error
// (or a cancelled context) rolls every statement back; bun commits only when
// fn returns nil. Transient failures are not retried here: a transaction
// abort is surfaced to the caller, who must resubmit.
//
// The name deliberately differs from bun's RunInTx so the embedded *bun.DB
// keeps its own method set and *DB still satisfies bun.IDB.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return db.DB.RunInTx(ctx, &sql.TxOptions{}, fn)
}
