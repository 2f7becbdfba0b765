package schema

// SymbolKind discriminates what a module name is bound to.
type SymbolKind int

const (
	SymbolConst SymbolKind = iota
	SymbolTypedef
	SymbolEnum
	SymbolStruct
	SymbolService
	SymbolModule
)

var symbolKindAsString = map[SymbolKind]string{
	SymbolConst:   "Const",
	SymbolTypedef: "Typedef",
	SymbolEnum:    "Enum",
	SymbolStruct:  "Struct",
	SymbolService: "Service",
	SymbolModule:  "Module",
}

func (k SymbolKind) String() string { return symbolKindAsString[k] }

// Symbol is a tagged module member. Exactly one of the payload fields is
// populated, selected by Kind.
type Symbol struct {
	Kind    SymbolKind
	Name    string
	Const   any
	Type    TypeTag
	Enum    *Enum
	Struct  *Struct
	Service *Service
	Module  *Module
}

// TypeTag returns the type a symbol stands for, when it stands for one.
// Constants, services, and nested modules carry no type discriminant.
func (s *Symbol) TypeTag() (TypeTag, bool) {
	switch s.Kind {
	case SymbolTypedef:
		return s.Type, true
	case SymbolEnum:
		return OfEnum(s.Enum), true
	case SymbolStruct:
		return OfStruct(s.Struct), true
	}
	return TypeTag{}, false
}

// Module is the namespace produced by parsing one schema file. It is
// populated incrementally in declaration order and must be treated as
// immutable once the parse that built it returns.
type Module struct {
	Name string

	names   []string
	symbols map[string]*Symbol
}

func NewModule(name string) *Module {
	return &Module{
		Name:    name,
		symbols: map[string]*Symbol{},
	}
}

// Define binds a symbol under its name. Redefining a name replaces the
// earlier binding (last write wins) but keeps its original position in
// declaration order.
func (m *Module) Define(sym *Symbol) {
	if _, ok := m.symbols[sym.Name]; !ok {
		m.names = append(m.names, sym.Name)
	}
	m.symbols[sym.Name] = sym
}

func (m *Module) Lookup(name string) (*Symbol, bool) {
	s, ok := m.symbols[name]
	return s, ok
}

// Names returns the defined names in declaration order.
func (m *Module) Names() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

func (m *Module) DefineConst(name string, v any) {
	m.Define(&Symbol{Kind: SymbolConst, Name: name, Const: v})
}

func (m *Module) DefineTypedef(name string, t TypeTag) {
	m.Define(&Symbol{Kind: SymbolTypedef, Name: name, Type: t})
}

func (m *Module) DefineEnum(e *Enum) {
	m.Define(&Symbol{Kind: SymbolEnum, Name: e.Name, Enum: e})
}

func (m *Module) DefineStruct(s *Struct) {
	m.Define(&Symbol{Kind: SymbolStruct, Name: s.Name, Struct: s})
}

func (m *Module) DefineService(s *Service) {
	m.Define(&Symbol{Kind: SymbolService, Name: s.Name, Service: s})
}

func (m *Module) DefineModule(child *Module) {
	m.Define(&Symbol{Kind: SymbolModule, Name: child.Name, Module: child})
}

func (m *Module) Constant(name string) (any, bool) {
	if s, ok := m.symbols[name]; ok && s.Kind == SymbolConst {
		return s.Const, true
	}
	return nil, false
}

func (m *Module) Typedef(name string) (TypeTag, bool) {
	if s, ok := m.symbols[name]; ok && s.Kind == SymbolTypedef {
		return s.Type, true
	}
	return TypeTag{}, false
}

func (m *Module) Enum(name string) (*Enum, bool) {
	if s, ok := m.symbols[name]; ok && s.Kind == SymbolEnum {
		return s.Enum, true
	}
	return nil, false
}

func (m *Module) Struct(name string) (*Struct, bool) {
	if s, ok := m.symbols[name]; ok && s.Kind == SymbolStruct {
		return s.Struct, true
	}
	return nil, false
}

func (m *Module) Service(name string) (*Service, bool) {
	if s, ok := m.symbols[name]; ok && s.Kind == SymbolService {
		return s.Service, true
	}
	return nil, false
}

// Include returns a child module attached by an include statement.
func (m *Module) Include(name string) (*Module, bool) {
	if s, ok := m.symbols[name]; ok && s.Kind == SymbolModule {
		return s.Module, true
	}
	return nil, false
}
