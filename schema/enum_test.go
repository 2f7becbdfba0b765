package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestNewEnumNumbering(t *testing.T) {
	e := NewEnum("E", []EnumItem{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	require.Equal(t, []EnumMember{{Name: "A", Value: 0}, {Name: "B", Value: 1}, {Name: "C", Value: 2}}, e.Members)

	e = NewEnum("E", []EnumItem{{Name: "A", Value: ptr(5)}, {Name: "B"}, {Name: "C", Value: ptr(2)}, {Name: "D"}})
	require.Equal(t, []EnumMember{
		{Name: "A", Value: 5},
		{Name: "B", Value: 6},
		{Name: "C", Value: 2},
		{Name: "D", Value: 3},
	}, e.Members)
}

func TestEnumLookups(t *testing.T) {
	e := NewEnum("E", []EnumItem{{Name: "A"}, {Name: "B", Value: ptr(7)}})

	require.True(t, e.HasValue(0))
	require.True(t, e.HasValue(7))
	require.False(t, e.HasValue(1))

	v, ok := e.Value("B")
	require.True(t, ok)
	require.Equal(t, int64(7), v)

	_, ok = e.Value("missing")
	require.False(t, ok)
}
