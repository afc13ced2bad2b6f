package xrecord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stamped struct {
	CreatedAt int64 `db:"created_at"`
}

type article struct {
	ID      int64  `db:"id,omitempty"`
	Title   string `db:"title"`
	Body    *string
	Views   int    `db:"-"`
	Meta    stamped `db:",inline"`
	private string
}

func TestStructValues_TagsAndFallbackNames(t *testing.T) {
	body := "hello"
	a := article{ID: 5, Title: "t", Body: &body, Views: 9, Meta: stamped{CreatedAt: 100}, private: "x"}

	got := StructValues(a)
	assert.Equal(t, Values{
		{Column: "id", Value: int64(5)},
		{Column: "title", Value: "t"},
		{Column: "body", Value: "hello"},
		{Column: "created_at", Value: int64(100)},
	}, got)
	_ = a.private
}

func TestStructValues_OmitEmptySkipsZeroValues(t *testing.T) {
	a := article{Title: "t"}
	got := StructValues(&a)
	_, ok := got.Lookup("id")
	assert.False(t, ok, "unset auto-id stays out of the mapping")

	a.ID = 7
	got = StructValues(&a)
	v, ok := got.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestStructValues_NilPointerMapsToNull(t *testing.T) {
	a := article{Title: "t"}
	got := StructValues(a)
	v, ok := got.Lookup("body")
	require.True(t, ok)
	assert.Nil(t, v, "nil pointer fields map to SQL NULL")
}

type embedded struct {
	Region string `db:"region"`
}

type shop struct {
	embedded
	Name string `db:"name"`
}

func TestStructValues_AnonymousFieldsFlatten(t *testing.T) {
	got := StructValues(shop{embedded: embedded{Region: "eu"}, Name: "n"})
	assert.Equal(t, Values{
		{Column: "region", Value: "eu"},
		{Column: "name", Value: "n"},
	}, got)
}

func TestStructValues_RejectsNonStructs(t *testing.T) {
	assert.Panics(t, func() { StructValues(42) })
	var a *article
	assert.Panics(t, func() { StructValues(a) })
}

func TestParseColumnTag(t *testing.T) {
	name, inline, omitEmpty, omit := parseColumnTag("id,omitempty")
	assert.Equal(t, "id", name)
	assert.False(t, inline)
	assert.True(t, omitEmpty)
	assert.False(t, omit)

	_, inline, _, _ = parseColumnTag(",inline")
	assert.True(t, inline)

	name, inline, omitEmpty, _ = parseColumnTag("omitempty,col")
	assert.Equal(t, "col", name, "option order does not matter")
	assert.True(t, omitEmpty)
	assert.False(t, inline)

	_, _, _, omit = parseColumnTag("-")
	assert.True(t, omit)
}

func TestBind_ActsAsRecord(t *testing.T) {
	a := article{Title: "t"}
	rec := Bind("article", &a)
	assert.Equal(t, "article", rec.TableName())

	vs := rec.DatabaseValues()
	v, ok := vs.Lookup("title")
	require.True(t, ok)
	assert.Equal(t, "t", v)
}

func TestBind_ReflectsLaterFieldChanges(t *testing.T) {
	a := article{Title: "before"}
	rec := Bind("article", &a)
	a.Title = "after"
	v, _ := rec.DatabaseValues().Lookup("title")
	assert.Equal(t, "after", v, "the mapping is re-derived per operation")
}

func TestBind_DidInsertWritesBackManagedID(t *testing.T) {
	a := article{Title: "t"}
	rec := Bind("article", &a)

	l, ok := rec.(RowIDListener)
	require.True(t, ok)
	l.DidInsert(42, "id")
	assert.Equal(t, int64(42), a.ID)

	// Unknown columns are ignored, the default no-op.
	l.DidInsert(7, "nonexistent")
	assert.Equal(t, int64(42), a.ID)
}

type ptrID struct {
	ID   *int64 `db:"id,omitempty"`
	Name string `db:"name"`
}

func TestBind_DidInsertAllocatesPointerField(t *testing.T) {
	p := ptrID{Name: "n"}
	rec := Bind("t", &p)
	rec.(RowIDListener).DidInsert(9, "id")
	require.NotNil(t, p.ID)
	assert.Equal(t, int64(9), *p.ID)
}

func TestBind_RejectsNonPointers(t *testing.T) {
	assert.Panics(t, func() { Bind("t", article{}) })
	assert.Panics(t, func() { Bind("t", (*article)(nil)) })
}
