package schema

import (
	"bytes"
	"fmt"
	"strings"
)

// Print writes a human-readable rendering of the module to stdout.
func Print(m *Module) {
	fmt.Println(Sprint(m))
}

// Sprint renders the module as indented text, members in declaration order.
func Sprint(m *Module) string {
	p := printer{}
	p.printModule(m)
	return p.b.String()
}

type printer struct {
	b   bytes.Buffer
	lvl int
}

func (p *printer) inc() func() {
	p.lvl++
	return p.dec
}

func (p *printer) dec() { p.lvl-- }

func (p *printer) printf(format string, args ...interface{}) {
	p.b.WriteString(fmt.Sprintf("%s%s\n", strings.Repeat("  ", p.lvl), fmt.Sprintf(format, args...)))
}

func (p *printer) printModule(m *Module) {
	p.printf("Module: %s", m.Name)
	defer p.inc()()
	for _, name := range m.Names() {
		sym, _ := m.Lookup(name)
		switch sym.Kind {
		case SymbolModule:
			p.printf("- Include: %s", sym.Module.Name)
		case SymbolConst:
			p.printf("- Const: %s = %s", name, formatValue(sym.Const))
		case SymbolTypedef:
			p.printf("- Typedef: %s = %s", name, sym.Type)
		case SymbolEnum:
			p.printEnum(sym.Enum)
		case SymbolStruct:
			p.printStruct(sym.Struct)
		case SymbolService:
			p.printService(sym.Service)
		}
	}
}

func (p *printer) printEnum(e *Enum) {
	p.printf("- Enum: %s", e.Name)
	defer p.inc()()
	for _, m := range e.Members {
		p.printf("- %s = %d", m.Name, m.Value)
	}
}

func (p *printer) printStruct(s *Struct) {
	p.printf("- %s: %s", titleKind(s.Kind), s.Name)
	defer p.inc()()
	for _, f := range s.Fields {
		p.printField(f)
	}
}

func (p *printer) printField(f *Field) {
	req := "optional"
	if f.Required {
		req = "required"
	}
	if f.Default != nil {
		p.printf("- %d: %s %s %s = %s", f.ID, req, f.Type, f.Name, formatValue(f.Default))
	} else {
		p.printf("- %d: %s %s %s", f.ID, req, f.Type, f.Name)
	}
}

func (p *printer) printService(s *Service) {
	p.printf("- Service: %s", s.Name)
	defer p.inc()()
	if s.Extends != nil {
		p.printf("Extends: %s", s.Extends.Name)
	}
	for _, name := range s.Methods {
		p.printMethod(s, name)
	}
}

func (p *printer) printMethod(s *Service, name string) {
	p.printf("- Method: %s", name)
	defer p.inc()()
	if args, ok := s.Args(name); ok && len(args.Fields) > 0 {
		p.printf("Arguments:")
		p.inc()
		for _, f := range args.Fields {
			p.printField(f)
		}
		p.dec()
	}
	if result, ok := s.Result(name); ok {
		if result.Oneway {
			p.printf("Oneway: true")
		}
		if len(result.Fields) > 0 {
			p.printf("Results:")
			p.inc()
			for _, f := range result.Fields {
				p.printField(f)
			}
			p.dec()
		}
	}
}

func titleKind(k StructKind) string {
	switch k {
	case KindUnion:
		return "Union"
	case KindException:
		return "Exception"
	default:
		return "Struct"
	}
}

func formatValue(v any) string {
	switch vv := v.(type) {
	case string:
		return fmt.Sprintf("%q", vv)
	case *Set:
		parts := make([]string, 0, vv.Len())
		for _, e := range vv.Values() {
			parts = append(parts, formatValue(e))
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	case []any:
		parts := make([]string, 0, len(vv))
		for _, e := range vv {
			parts = append(parts, formatValue(e))
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case map[any]any:
		parts := make([]string, 0, len(vv))
		for k, e := range vv {
			parts = append(parts, fmt.Sprintf("%s: %s", formatValue(k), formatValue(e)))
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	case *Record:
		parts := make([]string, 0, len(vv.Desc.Fields))
		for _, f := range vv.Desc.Fields {
			if fv, ok := vv.Get(f.Name); ok && fv != nil {
				parts = append(parts, fmt.Sprintf("%s: %s", f.Name, formatValue(fv)))
			}
		}
		return fmt.Sprintf("%s{%s}", vv.Desc.Name, strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("%v", vv)
	}
}
