package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModuleDefineAndLookup(t *testing.T) {
	m := NewModule("test")
	m.DefineConst("MAX", int64(5))
	m.DefineTypedef("UserID", Primitive(TypeI64))
	m.DefineEnum(NewEnum("E", []EnumItem{{Name: "A"}}))
	m.DefineStruct(NewStruct("S", KindStruct, nil))
	m.DefineService(NewService("Svc", nil))
	m.DefineModule(NewModule("child"))

	require.Equal(t, []string{"MAX", "UserID", "E", "S", "Svc", "child"}, m.Names())

	v, ok := m.Constant("MAX")
	require.True(t, ok)
	require.Equal(t, int64(5), v)

	tag, ok := m.Typedef("UserID")
	require.True(t, ok)
	require.Equal(t, TypeI64, tag.Code)

	_, ok = m.Enum("E")
	require.True(t, ok)
	_, ok = m.Struct("S")
	require.True(t, ok)
	_, ok = m.Service("Svc")
	require.True(t, ok)
	_, ok = m.Include("child")
	require.True(t, ok)

	// Kind-filtered accessors do not cross kinds.
	_, ok = m.Struct("E")
	require.False(t, ok)
	_, ok = m.Constant("missing")
	require.False(t, ok)
}

func TestModuleRedefineKeepsOrder(t *testing.T) {
	m := NewModule("test")
	m.DefineConst("A", int64(1))
	m.DefineConst("B", int64(2))
	m.DefineConst("A", int64(3))

	require.Equal(t, []string{"A", "B"}, m.Names())
	v, _ := m.Constant("A")
	require.Equal(t, int64(3), v)
}

func TestModuleRedefineAcrossKinds(t *testing.T) {
	m := NewModule("test")
	m.DefineConst("X", int64(1))
	m.DefineStruct(NewStruct("X", KindStruct, nil))

	_, ok := m.Constant("X")
	require.False(t, ok)
	_, ok = m.Struct("X")
	require.True(t, ok)
}

func TestSymbolTypeTag(t *testing.T) {
	e := NewEnum("E", []EnumItem{{Name: "A"}})
	s := NewStruct("S", KindStruct, nil)

	sym := &Symbol{Kind: SymbolEnum, Name: "E", Enum: e}
	tag, ok := sym.TypeTag()
	require.True(t, ok)
	require.True(t, tag.IsEnum())

	sym = &Symbol{Kind: SymbolStruct, Name: "S", Struct: s}
	tag, ok = sym.TypeTag()
	require.True(t, ok)
	require.True(t, tag.IsStruct())

	sym = &Symbol{Kind: SymbolTypedef, Name: "T", Type: Primitive(TypeI32)}
	tag, ok = sym.TypeTag()
	require.True(t, ok)
	require.Equal(t, TypeI32, tag.Code)

	sym = &Symbol{Kind: SymbolConst, Name: "C", Const: int64(1)}
	_, ok = sym.TypeTag()
	require.False(t, ok)

	sym = &Symbol{Kind: SymbolService, Name: "Svc", Service: NewService("Svc", nil)}
	_, ok = sym.TypeTag()
	require.False(t, ok)
}
