package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := NewSet()
	s.Add("a")
	s.Add("b")
	s.Add("a")

	require.Equal(t, 2, s.Len())
	require.True(t, s.Has("a"))
	require.True(t, s.Has("b"))
	require.False(t, s.Has("c"))
	require.Equal(t, []any{"a", "b"}, s.Values())
}
