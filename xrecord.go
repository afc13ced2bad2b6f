package xrecord

import (
	"context"
	"database/sql"
)

// Querier is implemented by *sql.DB, *sql.Tx, *sql.Conn, and any wrapper
// that can execute a query returning rows.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Execer is implemented by *sql.DB, *sql.Tx, *sql.Conn, and any wrapper
// that can execute a statement that does not return rows.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Beginner is implemented by *sql.DB and *sql.Conn. It starts a transaction.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Conn is the combined execution handle a [DB] wraps. *sql.DB, *sql.Tx, and
// *sql.Conn all satisfy it; pass a *sql.Tx to scope operations to one
// transaction.
type Conn interface {
	Querier
	Execer
}

// Record is implemented by any value that can persist itself as a table row.
//
// TableName returns the table the record maps to; returning "" is a
// configuration error and aborts the operation. DatabaseValues returns the
// record's current column values; the slice order is the order columns appear
// in an INSERT. Returning an empty mapping is likewise a configuration error.
//
// Plain structs with `db` tags can be adapted with [Bind] instead of
// implementing Record by hand.
type Record interface {
	TableName() string
	DatabaseValues() Values
}

// RowIDListener is optionally implemented by records whose table uses a
// managed (auto-assigned integer) primary key. DidInsert receives the
// engine-assigned identifier and the managed column's name after a successful
// [DB.Insert]; records without a managed key never see the call.
type RowIDListener interface {
	DidInsert(id int64, column string)
}

// Statement pairs SQL text with its ordered bind arguments. Statements are
// built fresh per operation and owned by the caller; they are never cached.
type Statement struct {
	SQL  string
	Args []any
}

// InsertedID reports the identifier the engine assigned to a freshly inserted
// row, together with the managed primary-key column it belongs to.
type InsertedID struct {
	Column string
	ID     int64
}
