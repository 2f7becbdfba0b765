package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func demoModule() *Module {
	m := NewModule("demo")
	m.DefineModule(NewModule("shared"))
	m.DefineConst("MAX", int64(5))

	tags := NewSet()
	tags.Add("a")
	tags.Add("b")
	m.DefineConst("TAGS", tags)

	m.DefineTypedef("Counters", MapOf(Primitive(TypeString), Primitive(TypeI32)))

	status := NewEnum("Status", []EnumItem{{Name: "ACTIVE"}, {Name: "BANNED", Value: ptr(9)}})
	m.DefineEnum(status)

	user := NewStruct("User", KindStruct, []*Field{
		{ID: 1, Required: true, Type: Primitive(TypeI32), Name: "id"},
		{ID: 2, Type: OfEnum(status), Name: "status", Default: int64(0)},
	})
	m.DefineStruct(user)
	m.DefineConst("ADMIN", user.New(map[string]any{"id": int64(1)}))

	svc := NewService("UserService", nil)
	args, result := MethodEnvelopes("get",
		[]*Field{{ID: 1, Type: Primitive(TypeI32), Name: "id"}},
		OfStruct(user), nil, false)
	svc.AddMethod("get", args, result)
	m.DefineService(svc)
	return m
}

func TestSnapshot(t *testing.T) {
	snap := Snapshot(demoModule())

	require.Equal(t, "demo", snap.Name)
	require.Equal(t, []string{"shared"}, snap.Includes)

	require.Len(t, snap.Constants, 3)
	require.Equal(t, "MAX", snap.Constants[0].Name)
	require.Equal(t, int64(5), snap.Constants[0].Value)
	require.Equal(t, []any{"a", "b"}, snap.Constants[1].Value) // set flattened
	require.Equal(t, map[string]any{"id": int64(1), "status": int64(0)}, snap.Constants[2].Value)

	require.Len(t, snap.Typedefs, 1)
	require.Equal(t, "map<string,i32>", snap.Typedefs[0].Type)

	require.Len(t, snap.Enums, 1)
	require.Equal(t, []EnumMember{{Name: "ACTIVE", Value: 0}, {Name: "BANNED", Value: 9}}, snap.Enums[0].Members)

	require.Len(t, snap.Structs, 1)
	require.Equal(t, "struct", snap.Structs[0].Kind)
	require.Equal(t, "Status", snap.Structs[0].Fields[1].Type)

	require.Len(t, snap.Services, 1)
	method := snap.Services[0].Methods[0]
	require.Equal(t, "get", method.Name)
	require.Len(t, method.Args, 1)
	require.Equal(t, "success", method.Result[0].Name)
	require.Equal(t, "User", method.Result[0].Type)
}

func TestSnapshotMarshalsToYAML(t *testing.T) {
	out, err := yaml.Marshal(Snapshot(demoModule()))
	require.NoError(t, err)

	text := string(out)
	require.Contains(t, text, "name: demo")
	require.Contains(t, text, "includes:")
	require.Contains(t, text, "- shared")
	require.Contains(t, text, "name: Status")
}

func TestSprint(t *testing.T) {
	text := Sprint(demoModule())

	require.True(t, strings.HasPrefix(text, "Module: demo\n"))
	require.Contains(t, text, "- Include: shared")
	require.Contains(t, text, "- Const: MAX = 5")
	require.Contains(t, text, `- Const: TAGS = {"a", "b"}`)
	require.Contains(t, text, "- Typedef: Counters = map<string,i32>")
	require.Contains(t, text, "- Enum: Status")
	require.Contains(t, text, "- BANNED = 9")
	require.Contains(t, text, "- Struct: User")
	require.Contains(t, text, "- 1: required i32 id")
	require.Contains(t, text, "- Service: UserService")
	require.Contains(t, text, "- Method: get")
	require.Contains(t, text, "- 0: optional User success")
}
