/*
Package xrecord maps in-memory records to table rows over database/sql. Given
a record's column values and the table's primary-key metadata, it derives
injection-safe INSERT, UPDATE, DELETE, EXISTS, and RELOAD statements, binds
every value as a parameter, and interprets the execution result. It builds
statements; it does not manage connections, transactions, pooling, or
migrations — those stay with *sql.DB and its caller.

# Overview

A record is anything implementing [Record]: a table name plus an ordered
column-name-to-value mapping. Plain structs with `db` tags are adapted with
[Bind]. A [DB] couples an execution handle (*sql.DB, *sql.Tx, *sql.Conn) with
a [Schema] holding each table's primary-key descriptor; the schema is built by
hand with Define or read from a live SQLite database with [IntrospectSQLite].
Each operation constructs a throwaway statement from one record snapshot,
executes it through the handle, and is done — nothing is cached or reused.

# Identity resolution

A table's key is one of three variants: no primary key, a single managed
(auto-assigned integer) column, or explicit columns supplied by the record.
The key subset of a record resolves to a row iff at least one key value is
non-NULL. For single-column keys this is standard SQL behavior (a NULL key
identifies nothing); for composite keys it tolerates partial NULLs, so one
populated column is enough to form the WHERE clause — which then still lists
every key column, in declared order. Update, Delete, Exists, and Reload all
require a resolved key and treat its absence as a programming error.

# Error handling

  - Misconfiguration panics: a record without a table name, a table missing
    from the schema, an empty column mapping, or an identity-requiring
    operation on an unresolvable key. These are record/schema mismatches that
    retrying cannot fix.
  - Execution errors (constraint violations, I/O failures) propagate
    unchanged from the driver.
  - Update matching zero rows returns *[NotFoundError] carrying the record;
    errors.Is(err, [ErrNotFound]) matches it.
  - Delete and Exists return booleans; a missing row is an answer, not an
    error. Reload returns [sql.ErrNoRows] like any database/sql read.

# Compatibility

Emitted SQL uses ?-style placeholders and double-quoted identifiers by
default, matching embedded engines such as SQLite. [Dialect] switches the
placeholder and quoting style for PostgreSQL, MySQL, and SQL Server;
[DialectFor] picks one from a driver name. Identifiers always pass through
the dialect's quoting routine and values are always bound, never
interpolated.

# Usage notes

Wrap multi-statement work in a transaction and run it through
[DB.WithConn]. Do not share one record value across concurrent operations;
its mapping is read unsynchronized. Records that want engine-assigned rowids
written back implement [RowIDListener] or use the [Bind] adapter, which does
it for the tagged key field.
*/
package xrecord
