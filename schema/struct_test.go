package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func userDesc() *Struct {
	return NewStruct("User", KindStruct, []*Field{
		{ID: 1, Required: true, Type: Primitive(TypeI32), Name: "id"},
		{ID: 2, Required: true, Type: Primitive(TypeString), Name: "name"},
		{ID: 3, Type: Primitive(TypeI32), Name: "score", Default: int64(10)},
	})
}

func TestStructIndexes(t *testing.T) {
	s := userDesc()

	f, ok := s.FieldByID(2)
	require.True(t, ok)
	require.Equal(t, "name", f.Name)

	f, ok = s.FieldByName("score")
	require.True(t, ok)
	require.Equal(t, 3, f.ID)

	_, ok = s.FieldByID(9)
	require.False(t, ok)
	_, ok = s.FieldByName("ghost")
	require.False(t, ok)
}

func TestStructDefaultSpec(t *testing.T) {
	spec := userDesc().DefaultSpec()
	require.Equal(t, []FieldDefault{
		{Name: "id"},
		{Name: "name"},
		{Name: "score", Value: int64(10)},
	}, spec)
}

func TestRecordConstruction(t *testing.T) {
	s := userDesc()
	r := s.New(map[string]any{"id": int64(1), "name": "x"})
	require.Same(t, s, r.Desc)

	id, ok := r.Get("id")
	require.True(t, ok)
	require.Equal(t, int64(1), id)

	// Declared default survives when no value is supplied.
	score, _ := r.Get("score")
	require.Equal(t, int64(10), score)

	// Supplied values override defaults.
	r = s.New(map[string]any{"id": int64(1), "name": "x", "score": int64(99)})
	score, _ = r.Get("score")
	require.Equal(t, int64(99), score)

	_, ok = r.Get("ghost")
	require.False(t, ok)
}
