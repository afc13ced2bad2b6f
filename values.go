package xrecord

// ColumnValue is one entry of a record's column mapping. A nil Value is bound
// as SQL NULL.
type ColumnValue struct {
	Column string
	Value  any
}

// Values is a record's column-name-to-value mapping. Slice order is the
// mapping's iteration order: INSERT lists columns and binds arguments in
// exactly this order. Duplicate column names are not detected here; records
// are expected not to produce them.
type Values []ColumnValue

// Lookup returns the value mapped to column and whether the column is mapped
// at all. A mapped NULL returns (nil, true).
func (vs Values) Lookup(column string) (any, bool) {
	for _, cv := range vs {
		if cv.Column == column {
			return cv.Value, true
		}
	}
	return nil, false
}

// Columns returns the mapped column names in order.
func (vs Values) Columns() []string {
	out := make([]string, len(vs))
	for i, cv := range vs {
		out[i] = cv.Column
	}
	return out
}

// Args returns the mapped values in order, ready for parameter binding.
func (vs Values) Args() []any {
	out := make([]any, len(vs))
	for i, cv := range vs {
		out[i] = cv.Value
	}
	return out
}

// project returns the subset of vs restricted to columns, in the order given
// by columns. A column missing from vs projects to NULL.
func (vs Values) project(columns []string) Values {
	out := make(Values, len(columns))
	for i, c := range columns {
		v, _ := vs.Lookup(c)
		out[i] = ColumnValue{Column: c, Value: v}
	}
	return out
}

// without returns vs minus the named columns, preserving order.
func (vs Values) without(columns []string) Values {
	out := make(Values, 0, len(vs))
next:
	for _, cv := range vs {
		for _, c := range columns {
			if cv.Column == c {
				continue next
			}
		}
		out = append(out, cv)
	}
	return out
}

// anyNonNull reports whether at least one value is non-NULL.
func (vs Values) anyNonNull() bool {
	for _, cv := range vs {
		if cv.Value != nil {
			return true
		}
	}
	return false
}
