package schema

// EnumItem is a parsed enum member fragment: a name with an optional
// explicit value. Members without a value are auto-numbered by NewEnum.
type EnumItem struct {
	Name  string
	Value *int64
}

type EnumMember struct {
	Name  string
	Value int64
}

// Enum is an i32-backed enumeration descriptor.
type Enum struct {
	Name    string
	Members []EnumMember

	values map[int64]struct{}
}

// NewEnum builds an enum descriptor from members in declaration order. The
// first unlabeled member takes 0 unless preceded by an explicit value; every
// other unlabeled member takes its predecessor's value plus one.
func NewEnum(name string, items []EnumItem) *Enum {
	e := &Enum{
		Name:   name,
		values: map[int64]struct{}{},
	}

	prev := int64(-1)
	for _, item := range items {
		v := prev + 1
		if item.Value != nil {
			v = *item.Value
		}
		e.Members = append(e.Members, EnumMember{Name: item.Name, Value: v})
		e.values[v] = struct{}{}
		prev = v
	}
	return e
}

// HasValue reports whether v is one of the enum's member values.
func (e *Enum) HasValue(v int64) bool {
	_, ok := e.values[v]
	return ok
}

// Value returns the value bound to a member name.
func (e *Enum) Value(name string) (int64, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}
