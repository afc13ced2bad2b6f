package xrecord

import (
	"fmt"
	"strings"
)

// mapper is the one-shot statement builder behind every CRUD operation. It
// captures a single record snapshot (table name, primary-key descriptor,
// column mapping) at construction and is discarded after the statement runs;
// it is a query builder over that snapshot, not a live view of the record.
type mapper struct {
	table   string
	pk      PrimaryKey
	values  Values
	dialect Dialect
}

// newMapper resolves the record's table, looks up its primary key, and
// captures its column mapping. The three failure modes here are record/schema
// mismatches that no caller-level retry can fix, so they abort instead of
// returning an error.
func newMapper(db *DB, rec Record) *mapper {
	table := rec.TableName()
	if table == "" {
		panic(fmt.Sprintf("xrecord: record %T declares no table name", rec))
	}
	pk, ok := db.schema.Lookup(table)
	if !ok {
		panic(fmt.Sprintf("xrecord: table %q is not defined in the schema", table))
	}
	values := rec.DatabaseValues()
	if len(values) == 0 {
		panic(fmt.Sprintf("xrecord: record %T for table %q maps no columns", rec, table))
	}
	return &mapper{table: table, pk: pk, values: values, dialect: db.dialect}
}

// primaryKey projects the column mapping onto the primary-key columns, in
// declared key order. Key columns the record does not map project to NULL.
// ok is false when the table has no primary key.
func (m *mapper) primaryKey() (Values, bool) {
	cols := m.pk.Columns()
	if len(cols) == 0 {
		return nil, false
	}
	return m.values.project(cols), true
}

// resolvingKey applies the identity-resolution policy: the key subset
// identifies a row iff at least one of its values is non-NULL. A single
// NULL-valued key column therefore never resolves (standard SQL behavior),
// while a composite key with only one populated column still does — the
// subset then keeps every key column, NULL values included. This asymmetry
// is a behavioral contract; engines that tolerate NULL in primary-key
// columns rely on it.
func (m *mapper) resolvingKey() (Values, bool) {
	key, ok := m.primaryKey()
	if !ok || !key.anyNonNull() {
		return nil, false
	}
	return key, true
}

// mustResolveKey is the shared precondition of update, delete, exists, and
// reload: locating a row without a usable identity is a programming error,
// surfaced immediately rather than silently matching zero rows.
func (m *mapper) mustResolveKey(op string) Values {
	key, ok := m.resolvingKey()
	if !ok {
		panic(fmt.Sprintf("xrecord: cannot %s %q row: primary key is missing or entirely NULL", op, m.table))
	}
	return key
}

// insertStatement covers all mapped columns, in mapping order, one
// placeholder per column.
func (m *mapper) insertStatement() Statement {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(m.dialect.quoteIdent(m.table))
	b.WriteString(" (")
	for i, cv := range m.values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.dialect.quoteIdent(cv.Column))
	}
	b.WriteString(") VALUES (")
	for i := range m.values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.dialect.placeholder(i + 1))
	}
	b.WriteString(")")
	return Statement{SQL: b.String(), Args: m.values.Args()}
}

// updateStatement sets every mapped column except the key columns, keyed on
// the resolving subset. When the mapping consists of nothing but key columns,
// it falls back to setting all of them, so the statement always performs a
// real write and the affected-row count stays meaningful. Arguments are
// ordered set values first, then key values.
func (m *mapper) updateStatement() Statement {
	key := m.mustResolveKey("update")
	set := m.values.without(m.pk.Columns())
	if len(set) == 0 {
		set = m.values
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(m.dialect.quoteIdent(m.table))
	b.WriteString(" SET ")
	n := 0
	for i, cv := range set {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.dialect.quoteIdent(cv.Column))
		b.WriteString("=")
		n++
		b.WriteString(m.dialect.placeholder(n))
	}
	m.writeKeyClause(&b, key, n)

	return Statement{SQL: b.String(), Args: append(set.Args(), key.Args()...)}
}

func (m *mapper) deleteStatement() Statement {
	key := m.mustResolveKey("delete")
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(m.dialect.quoteIdent(m.table))
	m.writeKeyClause(&b, key, 0)
	return Statement{SQL: b.String(), Args: key.Args()}
}

func (m *mapper) existsStatement() Statement {
	key := m.mustResolveKey("check existence of")
	var b strings.Builder
	b.WriteString("SELECT 1 FROM ")
	b.WriteString(m.dialect.quoteIdent(m.table))
	m.writeKeyClause(&b, key, 0)
	return Statement{SQL: b.String(), Args: key.Args()}
}

func (m *mapper) reloadStatement() Statement {
	key := m.mustResolveKey("reload")
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(m.dialect.quoteIdent(m.table))
	m.writeKeyClause(&b, key, 0)
	return Statement{SQL: b.String(), Args: key.Args()}
}

// writeKeyClause appends "WHERE k1=? AND k2=? …" over the key columns, in
// declared key order. n is the count of placeholders already emitted, so
// numbered dialects keep counting across the SET clause.
func (m *mapper) writeKeyClause(b *strings.Builder, key Values, n int) {
	b.WriteString(" WHERE ")
	for i, cv := range key {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(m.dialect.quoteIdent(cv.Column))
		b.WriteString("=")
		n++
		b.WriteString(m.dialect.placeholder(n))
	}
}
