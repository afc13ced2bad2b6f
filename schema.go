package xrecord

import (
	"fmt"
	"sync"
)

type pkKind uint8

const (
	pkNone pkKind = iota
	pkManaged
	pkExplicit
)

// PrimaryKey describes how rows of one table are identified. It comes in
// three variants: no primary key at all, a single managed (auto-assigned
// integer) column, or one or more explicit columns whose values the record
// supplies itself. A descriptor is immutable once obtained.
type PrimaryKey struct {
	kind    pkKind
	columns []string
}

// NoPrimaryKey describes a table without primary-key columns. Records mapped
// to such a table can be inserted but never updated, deleted, or reloaded.
func NoPrimaryKey() PrimaryKey { return PrimaryKey{} }

// ManagedPrimaryKey describes a single auto-assigned integer key column
// (SQLite's rowid alias, AUTO_INCREMENT, serial). Inserts into such a table
// report the assigned identifier back through [InsertedID].
func ManagedPrimaryKey(column string) PrimaryKey {
	if column == "" {
		panic("xrecord: managed primary key needs a column name")
	}
	return PrimaryKey{kind: pkManaged, columns: []string{column}}
}

// ExplicitPrimaryKey describes one or more key columns whose values come from
// the record. Column order is significant: WHERE clauses list key columns in
// exactly this order, never re-sorted.
func ExplicitPrimaryKey(columns ...string) PrimaryKey {
	if len(columns) == 0 {
		panic("xrecord: explicit primary key needs at least one column")
	}
	return PrimaryKey{kind: pkExplicit, columns: columns}
}

// Columns returns the key columns in declared order; empty for NoPrimaryKey.
// The returned slice must not be mutated.
func (pk PrimaryKey) Columns() []string { return pk.columns }

// Managed returns the managed key column name when the descriptor is the
// single auto-assigned variant.
func (pk PrimaryKey) Managed() (string, bool) {
	if pk.kind != pkManaged {
		return "", false
	}
	return pk.columns[0], true
}

// Schema maps table names to their primary-key descriptors. It is the
// introspection surface the record mapper consults; build one by hand with
// Define, or from a live database with [IntrospectSQLite]. Safe for
// concurrent use.
type Schema struct {
	mu     sync.RWMutex
	tables map[string]PrimaryKey
}

func NewSchema() *Schema {
	return &Schema{tables: make(map[string]PrimaryKey)}
}

// Define registers the primary key of table, replacing any earlier
// definition. It returns the schema for chaining:
//
//	schema := xrecord.NewSchema().
//	    Define("person", xrecord.ManagedPrimaryKey("id")).
//	    Define("citizenship", xrecord.ExplicitPrimaryKey("person_id", "country"))
func (s *Schema) Define(table string, pk PrimaryKey) *Schema {
	if table == "" {
		panic("xrecord: cannot define a table with an empty name")
	}
	s.mu.Lock()
	s.tables[table] = pk
	s.mu.Unlock()
	return s
}

// Lookup returns the primary-key descriptor of table. ok is false when the
// table is not defined, which operations treat as a record/schema mismatch.
func (s *Schema) Lookup(table string) (PrimaryKey, bool) {
	s.mu.RLock()
	pk, ok := s.tables[table]
	s.mu.RUnlock()
	return pk, ok
}

// Tables returns the defined table names, in no particular order.
func (s *Schema) Tables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.tables))
	for t := range s.tables {
		out = append(out, t)
	}
	return out
}

func (pk PrimaryKey) String() string {
	switch pk.kind {
	case pkManaged:
		return fmt.Sprintf("managed(%s)", pk.columns[0])
	case pkExplicit:
		return fmt.Sprintf("explicit(%v)", pk.columns)
	default:
		return "none"
	}
}
