package xrecord

import (
	"fmt"
	"reflect"
)

// StructValues derives a column mapping from a struct's exported fields.
//
// Fields bind by `db:"name"` first; otherwise the lower-cased field name.
// Tag options:
//   - `db:"-"`              field is not mapped
//   - `db:",inline"`        nested struct's fields are flattened in place
//   - `db:"id,omitempty"`   field is skipped while it holds its zero value,
//     the usual shape for auto-assigned key columns
//
// Anonymous struct fields without a tag are flattened like ,inline. Nil
// pointer fields map to SQL NULL; non-nil pointers map to their element.
// v must be a struct or a non-nil pointer to one; anything else is a
// configuration error and panics.
func StructValues(v any) Values {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			panic("xrecord: cannot derive column values from a nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("xrecord: cannot derive column values from %T", v))
	}
	var out Values
	appendFieldValues(&out, rv)
	return out
}

func appendFieldValues(dst *Values, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous { // unexported, non-anonymous
			continue
		}
		tag := sf.Tag.Get("db")
		name, inline, omitEmpty, omit := parseColumnTag(tag)
		if omit {
			continue
		}
		fv := v.Field(i)

		if inline || (sf.Anonymous && tag == "") {
			nested := fv
			for nested.Kind() == reflect.Pointer && !nested.IsNil() {
				nested = nested.Elem()
			}
			if nested.Kind() == reflect.Struct {
				appendFieldValues(dst, nested)
				continue
			}
			if nested.Kind() == reflect.Pointer { // nil embedded pointer
				continue
			}
		}

		if name == "" {
			name = toLowerAscii(sf.Name)
		}
		if omitEmpty && fv.IsZero() {
			continue
		}
		*dst = append(*dst, ColumnValue{Column: name, Value: fieldValue(fv)})
	}
}

// fieldValue unwraps pointer fields; a nil pointer becomes SQL NULL.
func fieldValue(v reflect.Value) any {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

// parseColumnTag supports: "-", "col", ",inline", ",omitempty",
// "col,omitempty", and any option ordering.
func parseColumnTag(tag string) (name string, inline, omitEmpty, omit bool) {
	if tag == "-" {
		return "", false, false, true
	}
	if tag == "" {
		return "", false, false, false
	}
	start := 0
	for i := 0; i <= len(tag); i++ {
		if i == len(tag) || tag[i] == ',' {
			part := tag[start:i]
			switch {
			case part == "inline":
				inline = true
			case part == "omitempty":
				omitEmpty = true
			case part != "" && name == "":
				name = part
			}
			start = i + 1
		}
	}
	return name, inline, omitEmpty, false
}

// Bind wraps a tagged struct pointer into a [Record] for table. The column
// mapping is re-derived from the struct on every operation, so it always
// reflects the struct's current field values. The adapter also implements
// [RowIDListener]: after an insert into a managed-key table it writes the
// engine-assigned identifier back into the integer field mapped to the
// managed column, so plain structs round-trip auto-assigned identities.
//
//	type Person struct {
//	    ID   int64  `db:"id,omitempty"`
//	    Name string `db:"name"`
//	}
//
//	p := Person{Name: "Alice"}
//	if _, err := db.Insert(ctx, xrecord.Bind("person", &p)); err != nil { … }
//	// p.ID now holds the assigned rowid.
func Bind(table string, v any) Record {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("xrecord: Bind needs a non-nil struct pointer, got %T", v))
	}
	return &boundStruct{table: table, v: rv.Elem()}
}

type boundStruct struct {
	table string
	v     reflect.Value
}

func (b *boundStruct) TableName() string      { return b.table }
func (b *boundStruct) DatabaseValues() Values { return StructValues(b.v.Interface()) }

func (b *boundStruct) DidInsert(id int64, column string) {
	f, ok := fieldByColumn(b.v, column)
	if !ok {
		return
	}
	for f.Kind() == reflect.Pointer {
		if f.IsNil() {
			f.Set(reflect.New(f.Type().Elem()))
		}
		f = f.Elem()
	}
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f.SetInt(id)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f.SetUint(uint64(id))
	}
}

// fieldByColumn finds the field mapped to column, descending into inlined
// structs. Matching is ASCII case-insensitive, like the mapping itself.
func fieldByColumn(v reflect.Value, column string) (reflect.Value, bool) {
	column = toLowerAscii(column)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue
		}
		tag := sf.Tag.Get("db")
		name, inline, _, omit := parseColumnTag(tag)
		if omit {
			continue
		}
		fv := v.Field(i)

		if inline || (sf.Anonymous && tag == "") {
			nested := fv
			for nested.Kind() == reflect.Pointer && !nested.IsNil() {
				nested = nested.Elem()
			}
			if nested.Kind() == reflect.Struct {
				if f, ok := fieldByColumn(nested, column); ok {
					return f, true
				}
				continue
			}
		}

		if name == "" {
			name = toLowerAscii(sf.Name)
		}
		if toLowerAscii(name) == column {
			return fv, true
		}
	}
	return reflect.Value{}, false
}

func toLowerAscii(s string) string {
	var need bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			need = true
			break
		}
	}
	if !need {
		return s
	}
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c = c + ('a' - 'A')
		}
		b[i] = c
	}
	return string(b)
}
