package repository

import (
	"context"
	"database/sql"
	"reflect"
	"strings"
	"sync"

	"talentbridge/internal/database"
)

// fakeDB answers queries by the first registered fragment found in the SQL.
type fakeDB struct {
	mu      sync.Mutex
	results map[string][][]any
	errs    map[string]error
	execs   []fakeExec
	queries []string

	committed  bool
	rolledBack bool
}

type fakeExec struct {
	query string
	args  []any
}

func newFakeDB() *fakeDB {
	return &fakeDB{results: map[string][][]any{}, errs: map[string]error{}}
}

func (d *fakeDB) on(fragment string, rows ...[]any) *fakeDB {
	d.results[fragment] = rows
	return d
}

func (d *fakeDB) fail(fragment string, err error) *fakeDB {
	d.errs[fragment] = err
	return d
}

func (d *fakeDB) match(query string) ([][]any, error) {
	d.mu.Lock()
	d.queries = append(d.queries, query)
	d.mu.Unlock()
	for frag, err := range d.errs {
		if strings.Contains(query, frag) {
			return nil, err
		}
	}
	for frag, rows := range d.results {
		if strings.Contains(query, frag) {
			return rows, nil
		}
	}
	return nil, nil
}

func (d *fakeDB) execsMatching(fragment string) []fakeExec {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []fakeExec
	for _, e := range d.execs {
		if strings.Contains(e.query, fragment) {
			out = append(out, e)
		}
	}
	return out
}

func (d *fakeDB) queriesMatching(fragment string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for _, q := range d.queries {
		if strings.Contains(q, fragment) {
			out = append(out, q)
		}
	}
	return out
}

func (d *fakeDB) Ping(context.Context) error { return nil }
func (d *fakeDB) Close() error               { return nil }
func (d *fakeDB) SQLDB() *sql.DB             { return nil }

func (d *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	d.mu.Lock()
	d.execs = append(d.execs, fakeExec{query: query, args: args})
	d.mu.Unlock()
	if _, err := d.match(query); err != nil {
		return 0, err
	}
	return 1, nil
}

func (d *fakeDB) Query(_ context.Context, query string, _ ...any) (database.Rows, error) {
	rows, err := d.match(query)
	if err != nil {
		return nil, err
	}
	return &fakeRows{rows: rows, idx: -1}, nil
}

func (d *fakeDB) QueryRow(_ context.Context, query string, _ ...any) database.Row {
	rows, err := d.match(query)
	if err != nil {
		return fakeRow{err: err}
	}
	if len(rows) == 0 {
		return fakeRow{err: sql.ErrNoRows}
	}
	return fakeRow{vals: rows[0]}
}

func (d *fakeDB) Begin(context.Context) (database.Tx, error) {
	return fakeTx{db: d}, nil
}

type fakeTx struct {
	db *fakeDB
}

func (t fakeTx) Exec(ctx context.Context, q string, args ...any) (int64, error) {
	return t.db.Exec(ctx, q, args...)
}
func (t fakeTx) Query(ctx context.Context, q string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, q, args...)
}
func (t fakeTx) QueryRow(ctx context.Context, q string, args ...any) database.Row {
	return t.db.QueryRow(ctx, q, args...)
}
func (t fakeTx) Commit(context.Context) error   { t.db.committed = true; return nil }
func (t fakeTx) Rollback(context.Context) error { t.db.rolledBack = true; return nil }

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()      {}
func (r *fakeRows) Err() error  { return nil }
func (r *fakeRows) Next() bool  { r.idx++; return r.idx < len(r.rows) }
func (r *fakeRows) Scan(dest ...any) error {
	return assign(r.rows[r.idx], dest)
}

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.vals, dest)
}

func assign(vals []any, dest []any) error {
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if i >= len(vals) || vals[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(vals[i]))
	}
	return nil
}
