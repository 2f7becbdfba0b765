package schema

// Service is an RPC service descriptor. Methods holds only the names
// declared on this service; inherited methods stay reachable through
// Extends rather than being copied down.
type Service struct {
	Name    string
	Extends *Service
	Methods []string

	envelopes map[string]*Struct
}

func NewService(name string, extends *Service) *Service {
	return &Service{
		Name:      name,
		Extends:   extends,
		envelopes: map[string]*Struct{},
	}
}

// AddMethod registers a declared method with its synthesized argument and
// result envelopes.
func (s *Service) AddMethod(name string, args, result *Struct) {
	s.Methods = append(s.Methods, name)
	s.envelopes[name+"_args"] = args
	s.envelopes[name+"_result"] = result
}

// Args returns the <method>_args envelope, searching the parent chain for
// inherited methods.
func (s *Service) Args(method string) (*Struct, bool) {
	return s.Envelope(method + "_args")
}

// Result returns the <method>_result envelope, searching the parent chain
// for inherited methods.
func (s *Service) Result(method string) (*Struct, bool) {
	return s.Envelope(method + "_result")
}

// Envelope resolves a "<method>_args" or "<method>_result" name on this
// service or any ancestor.
func (s *Service) Envelope(name string) (*Struct, bool) {
	for svc := s; svc != nil; svc = svc.Extends {
		if e, ok := svc.envelopes[name]; ok {
			return e, true
		}
	}
	return nil, false
}

// AllMethods returns the full method set, parent methods first.
func (s *Service) AllMethods() []string {
	var names []string
	if s.Extends != nil {
		names = s.Extends.AllMethods()
	}
	return append(names, s.Methods...)
}

// MethodEnvelopes builds the two envelope descriptors for one declared
// method: <name>_args from the parameters as written, and <name>_result
// with field id 0 "success" carrying the return type when it is not void,
// followed by the throws entries forced optional.
func MethodEnvelopes(name string, params []*Field, ret TypeTag, throws []*Field, oneway bool) (args, result *Struct) {
	args = NewStruct(name+"_args", KindStruct, params)

	var resultFields []*Field
	if ret.Code != TypeVoid {
		resultFields = append(resultFields, &Field{
			ID:   0,
			Name: "success",
			Type: ret,
		})
	}
	for _, t := range throws {
		t.Required = false
		resultFields = append(resultFields, t)
	}
	result = NewStruct(name+"_result", KindStruct, resultFields)
	result.Oneway = oneway
	return args, result
}
