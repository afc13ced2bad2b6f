package xrecord

import (
	"strconv"
	"strings"
)

// Dialect selects the placeholder style and identifier quoting for a target
// database.
//
// Common choices:
//   - DialectANSI      → "?" placeholders, "ident" quoting (SQLite, DuckDB, ClickHouse)
//   - DialectPostgres  → "$1, $2, …" placeholders, "ident" quoting
//   - DialectMySQL     → "?" placeholders, `ident` quoting
//   - DialectSQLServer → "@p1, @p2, …" placeholders, "ident" quoting
type Dialect int

const (
	DialectANSI Dialect = iota
	DialectPostgres
	DialectMySQL
	DialectSQLServer
)

// DialectFor picks a Dialect based on a driver name string. This is a
// convenience for wiring from sql.Open's driver name; you can also choose the
// enum directly.
//
// Examples:
//
//	d := xrecord.DialectFor("sqlite3") // => DialectANSI
//	d := xrecord.DialectFor("pgx")     // => DialectPostgres
//	d := xrecord.DialectFor("mysql")   // => DialectMySQL
func DialectFor(driverName string) Dialect {
	switch strings.ToLower(driverName) {
	case "pgx", "postgres", "postgresql", "lib/pq", "pg":
		return DialectPostgres
	case "mysql":
		return DialectMySQL
	case "sqlserver", "mssql":
		return DialectSQLServer
	default:
		return DialectANSI
	}
}

// placeholder renders the n-th (1-based) bind parameter.
func (d Dialect) placeholder(n int) string {
	switch d {
	case DialectPostgres:
		return "$" + strconv.Itoa(n)
	case DialectSQLServer:
		return "@p" + strconv.Itoa(n)
	default:
		return "?"
	}
}

// quoteIdent quotes a table or column name for interpolation into SQL text.
// Embedded quote characters are doubled, so identifiers can never break out
// of the quoted region. Values are never interpolated; only identifiers pass
// through here.
func (d Dialect) quoteIdent(s string) string {
	if d == DialectMySQL {
		return "`" + strings.ReplaceAll(s, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
