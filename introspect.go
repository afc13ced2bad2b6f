package xrecord

import (
	"context"
	"fmt"
	"strings"
)

// IntrospectSQLite builds a [Schema] from a live SQLite database. With no
// table names given it covers every user table (sqlite's own bookkeeping
// tables are skipped); naming a table that does not exist is an error.
//
// Key classification follows sqlite's own rules: a single primary-key column
// declared INTEGER is the rowid alias and becomes a managed key; any other
// primary key becomes explicit, its columns ordered by their pk ordinal; a
// table without primary-key columns gets [NoPrimaryKey].
func IntrospectSQLite(ctx context.Context, q Querier, tables ...string) (*Schema, error) {
	if len(tables) == 0 {
		var err error
		tables, err = sqliteUserTables(ctx, q)
		if err != nil {
			return nil, err
		}
	}
	schema := NewSchema()
	for _, table := range tables {
		pk, err := sqlitePrimaryKey(ctx, q, table)
		if err != nil {
			return nil, err
		}
		schema.Define(table, pk)
	}
	return schema, nil
}

func sqliteUserTables(ctx context.Context, q Querier) (out []string, err error) {
	rows, err := q.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if ne := rows.Err(); ne != nil {
		return nil, ne
	}
	return out, nil
}

func sqlitePrimaryKey(ctx context.Context, q Querier, table string) (PrimaryKey, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT name, type FROM pragma_table_info(?) WHERE pk > 0 ORDER BY pk`, table)
	if err != nil {
		return PrimaryKey{}, err
	}
	var cols, types []string
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			rows.Close()
			return PrimaryKey{}, err
		}
		cols = append(cols, name)
		types = append(types, typ)
	}
	if err := rows.Close(); err != nil {
		return PrimaryKey{}, err
	}
	if err := rows.Err(); err != nil {
		return PrimaryKey{}, err
	}

	if len(cols) == 0 {
		// No key columns: distinguish a keyless table from a missing one.
		ok, err := sqliteTableExists(ctx, q, table)
		if err != nil {
			return PrimaryKey{}, err
		}
		if !ok {
			return PrimaryKey{}, fmt.Errorf("xrecord: table %q does not exist", table)
		}
		return NoPrimaryKey(), nil
	}
	if len(cols) == 1 && strings.EqualFold(types[0], "INTEGER") {
		return ManagedPrimaryKey(cols[0]), nil
	}
	return ExplicitPrimaryKey(cols...), nil
}

func sqliteTableExists(ctx context.Context, q Querier, table string) (ok bool, err error) {
	rows, err := q.QueryContext(ctx, `SELECT 1 FROM pragma_table_info(?) LIMIT 1`, table)
	if err != nil {
		return false, err
	}
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
