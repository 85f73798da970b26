// Package dbtest provides a scripted database/sql driver for service-level
// tests. Expected statements are matched in order by regular expression
// against the SQL text bun renders, so transaction flows can be exercised
// without a running Postgres.
package dbtest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"vivero_server/database"
)

// Row is one result row, values in column order.
type Row []driver.Value

type step struct {
	pattern  *regexp.Regexp
	columns  []string
	rows     []Row
	affected int64
	err      error
}

// Script replays a fixed sequence of expected statements and records what
// actually ran, including transaction outcomes.
type Script struct {
	mu        sync.Mutex
	steps     []step
	next      int
	executed  []string
	failures  []string
	commits   int
	rollbacks int
}

func NewScript() *Script {
	return &Script{}
}

// ExpectQuery schedules a statement answered with rows.
func (s *Script) ExpectQuery(pattern string, columns []string, rows ...Row) *Script {
	s.steps = append(s.steps, step{pattern: regexp.MustCompile(pattern), columns: columns, rows: rows})
	return s
}

// ExpectExec schedules a statement answered with an affected-rows count.
func (s *Script) ExpectExec(pattern string, affected int64) *Script {
	s.steps = append(s.steps, step{pattern: regexp.MustCompile(pattern), affected: affected})
	return s
}

// ExpectErr schedules a statement that fails with err.
func (s *Script) ExpectErr(pattern string, err error) *Script {
	s.steps = append(s.steps, step{pattern: regexp.MustCompile(pattern), err: err})
	return s
}

// Remaining reports how many scheduled statements never ran.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps) - s.next
}

// Failures lists statements that arrived out of script order.
func (s *Script) Failures() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.failures...)
}

// Executed returns every statement the code under test issued, in order.
func (s *Script) Executed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.executed...)
}

// Ran reports whether any executed statement matches the pattern.
func (s *Script) Ran(pattern string) bool {
	re := regexp.MustCompile(pattern)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.executed {
		if re.MatchString(q) {
			return true
		}
	}
	return false
}

// Commits reports how many transactions committed.
func (s *Script) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// Rollbacks reports how many transactions rolled back.
func (s *Script) Rollbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbacks
}

// The mismatch messages deliberately avoid words the retry layer's
// transient-error heuristics look for, so a script failure surfaces once
// instead of being retried.
func (s *Script) take(query string) (*step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.executed = append(s.executed, query)

	if s.next >= len(s.steps) {
		msg := fmt.Sprintf("statement beyond script end: %s", query)
		s.failures = append(s.failures, msg)
		return nil, errors.New(msg)
	}

	st := &s.steps[s.next]
	if !st.pattern.MatchString(query) {
		msg := fmt.Sprintf("statement %d mismatch: want %q, got %q", s.next, st.pattern, query)
		s.failures = append(s.failures, msg)
		return nil, errors.New(msg)
	}

	s.next++
	if st.err != nil {
		return nil, st.err
	}
	return st, nil
}

// Open wraps the script in a bun-backed database handle.
func Open(s *Script) *database.DB {
	sqldb := sql.OpenDB(connector{script: s})
	sqldb.SetMaxOpenConns(1)
	return &database.DB{DB: bun.NewDB(sqldb, pgdialect.New())}
}

type connector struct {
	script *Script
}

func (c connector) Connect(context.Context) (driver.Conn, error) {
	return &conn{script: c.script}, nil
}

func (c connector) Driver() driver.Driver {
	return scriptDriver{}
}

type scriptDriver struct{}

func (scriptDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("dbtest: open through the connector")
}

type conn struct {
	script *Script
}

func (c *conn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("dbtest: prepared statements are not scripted")
}

func (c *conn) Close() error {
	return nil
}

func (c *conn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *conn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return &tx{script: c.script}, nil
}

func (c *conn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	st, err := c.script.take(query)
	if err != nil {
		return nil, err
	}
	return &rows{step: st}, nil
}

func (c *conn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	st, err := c.script.take(query)
	if err != nil {
		return nil, err
	}
	return driver.RowsAffected(st.affected), nil
}

type tx struct {
	script *Script
}

func (t *tx) Commit() error {
	t.script.mu.Lock()
	defer t.script.mu.Unlock()
	t.script.commits++
	return nil
}

func (t *tx) Rollback() error {
	t.script.mu.Lock()
	defer t.script.mu.Unlock()
	t.script.rollbacks++
	return nil
}

type rows struct {
	step *step
	idx  int
}

func (r *rows) Columns() []string {
	return r.step.columns
}

func (r *rows) Close() error {
	return nil
}

func (r *rows) Next(dest []driver.Value) error {
	if r.idx >= len(r.step.rows) {
		return io.EOF
	}
	copy(dest, r.step.rows[r.idx])
	r.idx++
	return nil
}
