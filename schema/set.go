package schema

// MapEntry is one key/value pair of a map or struct literal. Literals stay
// as ordered entry slices until the caster validates them against a declared
// type, so malformed keys never reach a Go map.
type MapEntry struct {
	Key   any
	Value any
}

// Set holds the distinct elements of a set-valued constant, preserving
// first-insertion order for deterministic dumps.
type Set struct {
	order []any
	v     map[any]struct{}
}

func NewSet() *Set {
	return &Set{
		v: make(map[any]struct{}),
	}
}

func (s *Set) Add(v any) {
	if _, ok := s.v[v]; ok {
		return
	}
	s.v[v] = struct{}{}
	s.order = append(s.order, v)
}

func (s *Set) Has(v any) bool {
	_, ok := s.v[v]
	return ok
}

func (s *Set) Len() int {
	return len(s.v)
}

// Values returns the elements in first-insertion order.
func (s *Set) Values() []any {
	vs := make([]any, len(s.order))
	copy(vs, s.order)
	return vs
}
