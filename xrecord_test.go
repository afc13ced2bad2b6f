package xrecord

import (
	"context"
	"database/sql"
	"errors"
)

// stubResult mimics the driver's sql.Result.
type stubResult struct {
	rows   int64
	lastID int64
	idErr  error
}

func (r stubResult) LastInsertId() (int64, error) { return r.lastID, r.idErr }
func (r stubResult) RowsAffected() (int64, error) { return r.rows, nil }

// stubConn captures the last statement each operation executed. Queries that
// need real rows are exercised against sqlite in sqlite_test.go instead.
type stubConn struct {
	lastQuery string
	lastArgs  []any
	execs     int
	res       sql.Result
	execErr   error
}

func (c *stubConn) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	c.execs++
	c.lastQuery, c.lastArgs = query, args
	if c.execErr != nil {
		return nil, c.execErr
	}
	if c.res == nil {
		return stubResult{rows: 1, lastID: 1}, nil
	}
	return c.res, nil
}

func (c *stubConn) QueryContext(_ context.Context, query string, args ...any) (*sql.Rows, error) {
	c.lastQuery, c.lastArgs = query, args
	return nil, errors.New("rows not implemented in stub conn")
}

// testRecord is a hand-rolled Record with a DidInsert trace.
type testRecord struct {
	table    string
	values   Values
	inserted []InsertedID
}

func (r *testRecord) TableName() string      { return r.table }
func (r *testRecord) DatabaseValues() Values { return r.values }
func (r *testRecord) DidInsert(id int64, column string) {
	r.inserted = append(r.inserted, InsertedID{Column: column, ID: id})
}

// plainRecord does not implement RowIDListener.
type plainRecord struct {
	table  string
	values Values
}

func (r *plainRecord) TableName() string      { return r.table }
func (r *plainRecord) DatabaseValues() Values { return r.values }

func testSchema() *Schema {
	return NewSchema().
		Define("person", ManagedPrimaryKey("id")).
		Define("citizenship", ExplicitPrimaryKey("person_id", "country")).
		Define("log", NoPrimaryKey()).
		Define("treaty", ExplicitPrimaryKey("b", "c", "a"))
}

func testDB(conn Conn, opts ...Option) *DB {
	return New(conn, testSchema(), opts...)
}
