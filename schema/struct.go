package schema

// StructKind separates the three struct-like declarations. They share one
// descriptor shape; the kind is what downstream consumers dispatch on.
type StructKind int

const (
	KindStruct StructKind = iota
	KindUnion
	KindException
)

var structKindAsString = map[StructKind]string{
	KindStruct:    "struct",
	KindUnion:     "union",
	KindException: "exception",
}

func (k StructKind) String() string { return structKindAsString[k] }

// Field is one declared field of a struct-like descriptor. IDs are
// author-supplied and not checked for uniqueness; a duplicate id shadows the
// earlier one in the id index. Default is nil when no default was declared.
type Field struct {
	ID       int
	Required bool
	Type     TypeTag
	Name     string
	Default  any
}

// Struct is the descriptor for a struct, union, or exception declaration,
// and for the synthesized method argument/result envelopes.
type Struct struct {
	Name   string
	Kind   StructKind
	Fields []*Field

	// Oneway is only meaningful on a method result envelope.
	Oneway bool

	byID   map[int]*Field
	byName map[string]*Field
}

// NewStruct builds a descriptor from fields in declaration order,
// precomputing the id and name indexes.
func NewStruct(name string, kind StructKind, fields []*Field) *Struct {
	s := &Struct{
		Name:   name,
		Kind:   kind,
		Fields: fields,
		byID:   make(map[int]*Field, len(fields)),
		byName: make(map[string]*Field, len(fields)),
	}
	for _, f := range fields {
		s.byID[f.ID] = f
		s.byName[f.Name] = f
	}
	return s
}

func (s *Struct) FieldByID(id int) (*Field, bool) {
	f, ok := s.byID[id]
	return f, ok
}

func (s *Struct) FieldByName(name string) (*Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// FieldDefault is one entry of the declaration-ordered default list.
type FieldDefault struct {
	Name  string
	Value any
}

// DefaultSpec returns the default values aligned to declaration order,
// including nil entries for fields without a default.
func (s *Struct) DefaultSpec() []FieldDefault {
	spec := make([]FieldDefault, len(s.Fields))
	for i, f := range s.Fields {
		spec[i] = FieldDefault{Name: f.Name, Value: f.Default}
	}
	return spec
}

// Record is an instance of a struct-like descriptor, as produced for
// struct-typed constants and defaults. Construction is keyword-style:
// declared defaults first, then the provided values on top.
type Record struct {
	Desc *Struct

	values map[string]any
}

// New instantiates the descriptor. Keys that do not name a declared field
// are ignored; the caster rejects them before construction.
func (s *Struct) New(kw map[string]any) *Record {
	r := &Record{
		Desc:   s,
		values: make(map[string]any, len(s.Fields)),
	}
	for _, f := range s.Fields {
		r.values[f.Name] = f.Default
	}
	for k, v := range kw {
		if _, ok := s.byName[k]; ok {
			r.values[k] = v
		}
	}
	return r
}

// Get returns the value held for a declared field name.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}
