package schema

// ModuleSnapshot is a plain, serialization-friendly view of a parsed
// module, grouped by member kind with each group in declaration order.
type ModuleSnapshot struct {
	Name      string             `yaml:"name" json:"name"`
	Includes  []string           `yaml:"includes,omitempty" json:"includes,omitempty"`
	Constants []ConstSnapshot    `yaml:"constants,omitempty" json:"constants,omitempty"`
	Typedefs  []TypedefSnapshot  `yaml:"typedefs,omitempty" json:"typedefs,omitempty"`
	Enums     []EnumSnapshot     `yaml:"enums,omitempty" json:"enums,omitempty"`
	Structs   []StructSnapshot   `yaml:"structs,omitempty" json:"structs,omitempty"`
	Services  []ServiceSnapshot  `yaml:"services,omitempty" json:"services,omitempty"`
}

type ConstSnapshot struct {
	Name  string `yaml:"name" json:"name"`
	Value any    `yaml:"value" json:"value"`
}

type TypedefSnapshot struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

type EnumSnapshot struct {
	Name    string         `yaml:"name" json:"name"`
	Members []EnumMember   `yaml:"members" json:"members"`
}

type FieldSnapshot struct {
	ID       int    `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Required bool   `yaml:"required" json:"required"`
	Default  any    `yaml:"default,omitempty" json:"default,omitempty"`
}

type StructSnapshot struct {
	Name   string          `yaml:"name" json:"name"`
	Kind   string          `yaml:"kind" json:"kind"`
	Fields []FieldSnapshot `yaml:"fields" json:"fields"`
}

type MethodSnapshot struct {
	Name   string          `yaml:"name" json:"name"`
	Oneway bool            `yaml:"oneway,omitempty" json:"oneway,omitempty"`
	Args   []FieldSnapshot `yaml:"args,omitempty" json:"args,omitempty"`
	Result []FieldSnapshot `yaml:"result,omitempty" json:"result,omitempty"`
}

type ServiceSnapshot struct {
	Name    string           `yaml:"name" json:"name"`
	Extends string           `yaml:"extends,omitempty" json:"extends,omitempty"`
	Methods []MethodSnapshot `yaml:"methods" json:"methods"`
}

// Snapshot flattens a module into its serializable view.
func Snapshot(m *Module) *ModuleSnapshot {
	snap := &ModuleSnapshot{Name: m.Name}
	for _, name := range m.Names() {
		sym, _ := m.Lookup(name)
		switch sym.Kind {
		case SymbolModule:
			snap.Includes = append(snap.Includes, sym.Module.Name)
		case SymbolConst:
			snap.Constants = append(snap.Constants, ConstSnapshot{Name: name, Value: plainValue(sym.Const)})
		case SymbolTypedef:
			snap.Typedefs = append(snap.Typedefs, TypedefSnapshot{Name: name, Type: sym.Type.String()})
		case SymbolEnum:
			snap.Enums = append(snap.Enums, EnumSnapshot{Name: name, Members: sym.Enum.Members})
		case SymbolStruct:
			snap.Structs = append(snap.Structs, snapshotStruct(sym.Struct))
		case SymbolService:
			snap.Services = append(snap.Services, snapshotService(sym.Service))
		}
	}
	return snap
}

func snapshotStruct(s *Struct) StructSnapshot {
	return StructSnapshot{
		Name:   s.Name,
		Kind:   s.Kind.String(),
		Fields: snapshotFields(s.Fields),
	}
}

func snapshotFields(fields []*Field) []FieldSnapshot {
	out := make([]FieldSnapshot, len(fields))
	for i, f := range fields {
		out[i] = FieldSnapshot{
			ID:       f.ID,
			Name:     f.Name,
			Type:     f.Type.String(),
			Required: f.Required,
			Default:  plainValue(f.Default),
		}
	}
	return out
}

func snapshotService(s *Service) ServiceSnapshot {
	snap := ServiceSnapshot{Name: s.Name}
	if s.Extends != nil {
		snap.Extends = s.Extends.Name
	}
	for _, name := range s.Methods {
		m := MethodSnapshot{Name: name}
		if args, ok := s.Args(name); ok {
			m.Args = snapshotFields(args.Fields)
		}
		if result, ok := s.Result(name); ok {
			m.Oneway = result.Oneway
			m.Result = snapshotFields(result.Fields)
		}
		snap.Methods = append(snap.Methods, m)
	}
	return snap
}

// plainValue rewrites schema value types into shapes yaml and json
// encoders handle natively.
func plainValue(v any) any {
	switch vv := v.(type) {
	case *Set:
		out := make([]any, 0, vv.Len())
		for _, e := range vv.Values() {
			out = append(out, plainValue(e))
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = plainValue(e)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(vv))
		for k, e := range vv {
			out[plainValue(k)] = plainValue(e)
		}
		return out
	case *Record:
		out := make(map[string]any, len(vv.Desc.Fields))
		for _, f := range vv.Desc.Fields {
			if fv, ok := vv.Get(f.Name); ok && fv != nil {
				out[f.Name] = plainValue(fv)
			}
		}
		return out
	default:
		return v
	}
}
