package xrecord

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is the target for errors.Is checks against the not-found
// condition reported by [DB.Update]. Use [NotFoundError] with errors.As to
// recover the record that failed to match.
var ErrNotFound = errors.New("xrecord: record not found")

// NotFoundError reports an update whose WHERE clause matched no row. It
// carries the record so callers can branch into insert-vs-update (upsert)
// logic or surface a precise message.
type NotFoundError struct {
	Table  string
	Record Record
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("xrecord: no row in table %q matches the record's primary key", e.Table)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DB couples an execution handle with schema metadata. It performs no
// connection management of its own: pooling, transactions, and retries belong
// to the wrapped database/sql handle and its caller.
//
// A DB holds no mutable state and is safe for concurrent use; each operation
// builds a throwaway statement from one record snapshot and delegates
// execution to the handle.
type DB struct {
	conn    Conn
	schema  *Schema
	dialect Dialect
}

// Option configures a [DB] at construction.
type Option func(*DB)

// WithDialect selects the placeholder and quoting style of the target engine.
// The default is [DialectANSI].
func WithDialect(d Dialect) Option {
	return func(db *DB) { db.dialect = d }
}

// New returns a DB over conn using schema for primary-key metadata.
//
//	sqlDB, _ := sql.Open("sqlite3", "app.db")
//	schema, _ := xrecord.IntrospectSQLite(ctx, sqlDB)
//	db := xrecord.New(sqlDB, schema)
func New(conn Conn, schema *Schema, opts ...Option) *DB {
	if schema == nil {
		panic("xrecord: nil schema")
	}
	db := &DB{conn: conn, schema: schema, dialect: DialectANSI}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// WithConn returns a DB bound to conn, sharing the schema and dialect. Use it
// to scope operations to a transaction:
//
//	tx, _ := sqlDB.BeginTx(ctx, nil)
//	if err := db.WithConn(tx).Insert(ctx, rec); err != nil { … }
func (db *DB) WithConn(conn Conn) *DB {
	return &DB{conn: conn, schema: db.schema, dialect: db.dialect}
}

// Insert persists the record as a new row, covering all mapped columns in
// mapping order.
//
// When the table's primary key is a managed (auto-assigned integer) column,
// the engine-assigned identifier is returned as an [InsertedID]; if the
// record additionally implements [RowIDListener], its DidInsert hook is
// invoked with the same pair, strictly after the statement is confirmed
// executed. For every other key variant the returned id is nil and no hook
// fires.
//
// Execution-layer errors (constraint violations, I/O failures) propagate
// unchanged.
func (db *DB) Insert(ctx context.Context, rec Record) (*InsertedID, error) {
	m := newMapper(db, rec)
	st := m.insertStatement()
	res, err := db.conn.ExecContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, err
	}
	col, managed := m.pk.Managed()
	if !managed {
		return nil, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("xrecord: inserted row id: %w", err)
	}
	ins := &InsertedID{Column: col, ID: id}
	if l, ok := rec.(RowIDListener); ok {
		l.DidInsert(ins.ID, ins.Column)
	}
	return ins, nil
}

// Update rewrites the row identified by the record's primary key. Every
// mapped non-key column is set; when the mapping holds nothing but key
// columns, all of them are set instead, so the statement always performs a
// real write.
//
// A zero affected-row count is reported as a *[NotFoundError] carrying the
// record (errors.Is(err, ErrNotFound) matches it); it is never a silent
// success.
func (db *DB) Update(ctx context.Context, rec Record) error {
	m := newMapper(db, rec)
	st := m.updateStatement()
	res, err := db.conn.ExecContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &NotFoundError{Table: m.table, Record: rec}
	}
	return nil
}

// Delete removes the row identified by the record's primary key and reports
// whether a row was removed. Deleting nothing is a legitimate outcome, not an
// error.
func (db *DB) Delete(ctx context.Context, rec Record) (bool, error) {
	m := newMapper(db, rec)
	st := m.deleteStatement()
	res, err := db.conn.ExecContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Exists reports whether a row matches the record's primary key. Like Delete,
// a missing row is an answer, never an error.
func (db *DB) Exists(ctx context.Context, rec Record) (ok bool, err error) {
	m := newMapper(db, rec)
	st := m.existsStatement()
	rows, err := db.conn.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return false, err
	}
	// Propagate the Close error if nothing else failed.
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if !rows.Next() {
		return false, rows.Err()
	}
	return true, nil
}

// Reload fetches the full column set of the row identified by the record's
// primary key. It returns [sql.ErrNoRows] when no row matches; use errors.Is
// as with any database/sql read. []byte cells are copied out of the driver's
// buffer so the returned Values outlive the row.
func (db *DB) Reload(ctx context.Context, rec Record) (out Values, err error) {
	m := newMapper(db, rec)
	st := m.reloadStatement()
	rows, err := db.conn.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if !rows.Next() {
		if ne := rows.Err(); ne != nil {
			return nil, ne
		}
		return nil, sql.ErrNoRows
	}
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	cells := make([]any, len(cols))
	dests := make([]any, len(cols))
	for i := range cells {
		dests[i] = &cells[i]
	}
	if err := rows.Scan(dests...); err != nil {
		return nil, err
	}
	out = make(Values, len(cols))
	for i, c := range cols {
		v := cells[i]
		if b, ok := v.([]byte); ok {
			v = append([]byte(nil), b...)
		}
		out[i] = ColumnValue{Column: c, Value: v}
	}
	return out, nil
}
