package idl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/20cmdingding/thriftidl/schema"
)

func castValue(t *testing.T, tag schema.TypeTag, v any) (any, error) {
	t.Helper()
	c := &caster{file: "test.thrift", line: 1}
	return c.cast(tag, v)
}

func TestCastPrimitives(t *testing.T) {
	cases := []struct {
		tag schema.TypeTag
		in  any
	}{
		{schema.Primitive(schema.TypeBool), true},
		{schema.Primitive(schema.TypeByte), "b"},
		{schema.Primitive(schema.TypeI16), int64(1)},
		{schema.Primitive(schema.TypeI32), int64(2)},
		{schema.Primitive(schema.TypeI64), int64(3)},
		{schema.Primitive(schema.TypeDouble), 1.5},
		{schema.Primitive(schema.TypeString), "s"},
		{schema.Primitive(schema.TypeBinary), "raw"},
	}
	for _, tc := range cases {
		out, err := castValue(t, tc.tag, tc.in)
		require.NoError(t, err, tc.tag.String())
		require.Equal(t, tc.in, out, tc.tag.String())
	}
}

func TestCastMismatches(t *testing.T) {
	cases := []struct {
		tag schema.TypeTag
		in  any
	}{
		{schema.Primitive(schema.TypeBool), int64(1)},
		{schema.Primitive(schema.TypeI32), "nope"},
		{schema.Primitive(schema.TypeString), int64(1)},
		{schema.Primitive(schema.TypeDouble), int64(3)},
		{schema.ListOf(schema.Primitive(schema.TypeI32)), "nope"},
		{schema.Primitive(schema.TypeVoid), int64(0)},
	}
	for _, tc := range cases {
		_, err := castValue(t, tc.tag, tc.in)
		require.Error(t, err, tc.tag.String())

		var perr *Error
		require.ErrorAs(t, err, &perr)
		require.Equal(t, ErrTypeMismatch, perr.Kind, tc.tag.String())
	}
}

func TestCastList(t *testing.T) {
	tag := schema.ListOf(schema.Primitive(schema.TypeI32))
	out, err := castValue(t, tag, []any{int64(1), int64(2)})
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), int64(2)}, out)

	// Elements are checked, not just the container.
	_, err = castValue(t, tag, []any{int64(1), "two"})
	require.Error(t, err)
}

func TestCastNestedList(t *testing.T) {
	tag := schema.ListOf(schema.ListOf(schema.Primitive(schema.TypeString)))
	out, err := castValue(t, tag, []any{[]any{"a"}, []any{"b", "c"}})
	require.NoError(t, err)
	require.Equal(t, []any{[]any{"a"}, []any{"b", "c"}}, out)
}

func TestCastSet(t *testing.T) {
	tag := schema.SetOf(schema.Primitive(schema.TypeString))
	out, err := castValue(t, tag, []any{"a", "b", "a"})
	require.NoError(t, err)

	s, ok := out.(*schema.Set)
	require.True(t, ok)
	require.Equal(t, 2, s.Len())
	require.Equal(t, []any{"a", "b"}, s.Values())

	// Casting an already built set is a pass-through.
	again, err := castValue(t, tag, s)
	require.NoError(t, err)
	require.Same(t, s, again)
}

func TestCastMap(t *testing.T) {
	tag := schema.MapOf(schema.Primitive(schema.TypeString), schema.Primitive(schema.TypeI64))
	out, err := castValue(t, tag, []schema.MapEntry{
		{Key: "a", Value: int64(1)},
		{Key: "b", Value: int64(2)},
	})
	require.NoError(t, err)
	require.Equal(t, map[any]any{"a": int64(1), "b": int64(2)}, out)

	_, err = castValue(t, tag, []schema.MapEntry{{Key: int64(1), Value: int64(1)}})
	require.Error(t, err)
}

func TestCastMapRejectsUnhashableKey(t *testing.T) {
	listKey := schema.MapOf(
		schema.ListOf(schema.Primitive(schema.TypeI32)),
		schema.Primitive(schema.TypeI32),
	)
	_, err := castValue(t, listKey, []schema.MapEntry{
		{Key: []any{int64(1)}, Value: int64(2)},
	})
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ErrTypeMismatch, perr.Kind)
}

func TestCastEnum(t *testing.T) {
	e := schema.NewEnum("Status", []schema.EnumItem{{Name: "ACTIVE"}, {Name: "BANNED"}})
	tag := schema.OfEnum(e)

	out, err := castValue(t, tag, int64(1))
	require.NoError(t, err)
	require.Equal(t, int64(1), out)

	_, err = castValue(t, tag, int64(9))
	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ErrInvalidEnumValue, perr.Kind)

	_, err = castValue(t, tag, "ACTIVE")
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ErrTypeMismatch, perr.Kind)
}

func TestCastStruct(t *testing.T) {
	desc := schema.NewStruct("User", schema.KindStruct, []*schema.Field{
		{ID: 1, Required: true, Type: schema.Primitive(schema.TypeI32), Name: "id"},
		{ID: 2, Type: schema.Primitive(schema.TypeString), Name: "name", Default: "anon"},
	})
	tag := schema.OfStruct(desc)

	out, err := castValue(t, tag, []schema.MapEntry{{Key: "id", Value: int64(7)}})
	require.NoError(t, err)

	r, ok := out.(*schema.Record)
	require.True(t, ok)
	id, _ := r.Get("id")
	require.Equal(t, int64(7), id)
	name, _ := r.Get("name")
	require.Equal(t, "anon", name)

	// A record built for the same descriptor passes through untouched.
	again, err := castValue(t, tag, r)
	require.NoError(t, err)
	require.Same(t, r, again)

	_, err = castValue(t, tag, []schema.MapEntry{{Key: "name", Value: "x"}})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ErrMissingRequiredField, perr.Kind)

	_, err = castValue(t, tag, []schema.MapEntry{{Key: "id", Value: int64(1)}, {Key: "nope", Value: int64(2)}})
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ErrUnknownField, perr.Kind)

	_, err = castValue(t, tag, []schema.MapEntry{{Key: int64(1), Value: int64(2)}})
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ErrTypeMismatch, perr.Kind)
}
