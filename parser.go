package idl

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/20cmdingding/thriftidl/schema"
)

var baseTypes = map[string]schema.TypeCode{
	"bool":   schema.TypeBool,
	"byte":   schema.TypeByte,
	"i16":    schema.TypeI16,
	"i32":    schema.TypeI32,
	"i64":    schema.TypeI64,
	"double": schema.TypeDouble,
	"string": schema.TypeString,
	"binary": schema.TypeBinary,
}

// parser drives the IDL grammar over a token stream in a single pass. Every
// production's action runs as soon as it is recognized, mutating the module
// under construction; names become visible to later statements in
// declaration order, and references are resolved on the spot.
type parser struct {
	fe     *frontend
	path   string
	tokens []token
	pos    int
	module *schema.Module
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) eof() bool {
	return p.pos >= len(p.tokens) || p.peek().Type == tokenTypeEOF
}

func (p *parser) grammarf(tk token, format string, args ...interface{}) *Error {
	return newError(ErrGrammar, p.path, tk.Line, format, args...)
}

func (p *parser) expect(expected tokenType) (token, error) {
	pk := p.peek()
	if pk.Type != expected {
		return pk, p.grammarf(pk, "expected %s but got %s (%q)", expected, pk.Type, pk.Value)
	}
	p.pos++
	return pk, nil
}

func (p *parser) accept(t tokenType) bool {
	if p.peek().Type == t {
		p.pos++
		return true
	}
	return false
}

func (p *parser) acceptKeyword(kw string) bool {
	if pk := p.peek(); pk.Type == tokenTypeIdentifier && pk.Value == kw {
		p.pos++
		return true
	}
	return false
}

// sep consumes one optional item separator. List items and definitions may
// be separated by a comma or semicolon, and no separator is required before
// a closing delimiter.
func (p *parser) sep() {
	if pk := p.peek(); pk.Type == tokenTypeComma || pk.Type == tokenTypeSemi {
		p.pos++
	}
}

func (p *parser) intValue(tk token) (int64, error) {
	v, err := strconv.ParseInt(tk.Value, 0, 64)
	if err != nil {
		return 0, p.grammarf(tk, "invalid integer literal %q", tk.Value)
	}
	return v, nil
}

func (p *parser) parse() error {
	if err := p.parseHeader(); err != nil {
		return err
	}
	return p.parseDefinitions()
}

func (p *parser) parseHeader() error {
	for {
		switch {
		case p.acceptKeyword("include"):
			if err := p.parseInclude(); err != nil {
				return err
			}
		case p.acceptKeyword("namespace"):
			if err := p.parseNamespace(); err != nil {
				return err
			}
		default:
			return nil
		}
		p.accept(tokenTypeSemi)
	}
}

// parseInclude parses the referenced file to completion and attaches the
// resulting module as a member of the current one, which is what makes
// child.TypeName references resolvable from here on.
func (p *parser) parseInclude() error {
	lit, err := p.expect(tokenTypeString)
	if err != nil {
		return err
	}
	child, err := p.fe.parse(filepath.Join(p.fe.includeDir, lit.Value), "")
	if err != nil {
		return err
	}
	p.module.DefineModule(child)
	return nil
}

// parseNamespace accepts the statement and discards it; namespaces have no
// effect on the model.
func (p *parser) parseNamespace() error {
	pk := p.peek()
	if pk.Type != tokenTypeStar && pk.Type != tokenTypeIdentifier {
		return p.grammarf(pk, "expected namespace scope but got %s (%q)", pk.Type, pk.Value)
	}
	p.advance()
	_, err := p.expect(tokenTypeIdentifier)
	return err
}

func (p *parser) parseDefinitions() error {
	for !p.eof() {
		pk := p.peek()
		if pk.Type != tokenTypeIdentifier {
			return p.grammarf(pk, "unexpected %s (%q); expected const, typedef, enum, struct, union, exception, or service", pk.Type, pk.Value)
		}

		var err error
		switch pk.Value {
		case "const":
			err = p.parseConst()
		case "typedef":
			err = p.parseTypedef()
		case "enum":
			err = p.parseEnum()
		case "struct":
			err = p.parseStructLike(schema.KindStruct)
		case "union":
			err = p.parseStructLike(schema.KindUnion)
		case "exception":
			err = p.parseStructLike(schema.KindException)
		case "service":
			err = p.parseService()
		default:
			return p.grammarf(pk, "unexpected %q; expected const, typedef, enum, struct, union, exception, or service", pk.Value)
		}
		if err != nil {
			return err
		}
		p.accept(tokenTypeSemi)
	}
	return nil
}

func (p *parser) parseConst() error {
	p.advance() // consume "const"
	t, err := p.parseFieldType()
	if err != nil {
		return err
	}
	name, err := p.expect(tokenTypeIdentifier)
	if err != nil {
		return err
	}
	if _, err = p.expect(tokenTypeEqual); err != nil {
		return err
	}
	v, err := p.parseConstValue()
	if err != nil {
		return err
	}

	c := &caster{file: p.path, line: name.Line}
	val, err := c.cast(t, v)
	if err != nil {
		return err
	}
	p.module.DefineConst(name.Value, val)
	return nil
}

func (p *parser) parseTypedef() error {
	p.advance() // consume "typedef"
	t, err := p.parseFieldType()
	if err != nil {
		return err
	}
	name, err := p.expect(tokenTypeIdentifier)
	if err != nil {
		return err
	}
	p.module.DefineTypedef(name.Value, t)
	return nil
}

func (p *parser) parseEnum() error {
	p.advance() // consume "enum"
	name, err := p.expect(tokenTypeIdentifier)
	if err != nil {
		return err
	}
	if _, err = p.expect(tokenTypeLeftCurly); err != nil {
		return err
	}

	var items []schema.EnumItem
	for p.peek().Type != tokenTypeRightCurly {
		member, err := p.expect(tokenTypeIdentifier)
		if err != nil {
			return err
		}
		item := schema.EnumItem{Name: member.Value}
		if p.accept(tokenTypeEqual) {
			vt, err := p.expect(tokenTypeInt)
			if err != nil {
				return err
			}
			v, err := p.intValue(vt)
			if err != nil {
				return err
			}
			item.Value = &v
		}
		items = append(items, item)
		p.sep()
	}
	p.advance() // consume }

	p.module.DefineEnum(schema.NewEnum(name.Value, items))
	return nil
}

func (p *parser) parseStructLike(kind schema.StructKind) error {
	p.advance() // consume "struct"/"union"/"exception"
	name, err := p.expect(tokenTypeIdentifier)
	if err != nil {
		return err
	}
	if _, err = p.expect(tokenTypeLeftCurly); err != nil {
		return err
	}
	fields, err := p.parseFieldSeq(tokenTypeRightCurly)
	if err != nil {
		return err
	}
	p.advance() // consume }

	p.module.DefineStruct(schema.NewStruct(name.Value, kind, fields))
	return nil
}

func (p *parser) parseFieldSeq(closing tokenType) ([]*schema.Field, error) {
	var fields []*schema.Field
	for p.peek().Type != closing {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
		p.sep()
	}
	return fields, nil
}

func (p *parser) parseField() (*schema.Field, error) {
	idTok, err := p.expect(tokenTypeInt)
	if err != nil {
		return nil, err
	}
	id, err := p.intValue(idTok)
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(tokenTypeColon); err != nil {
		return nil, err
	}

	required := false
	switch {
	case p.acceptKeyword("required"):
		required = true
	case p.acceptKeyword("optional"):
	}

	t, err := p.parseFieldType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(tokenTypeIdentifier)
	if err != nil {
		return nil, err
	}

	f := &schema.Field{
		ID:       int(id),
		Required: required,
		Type:     t,
		Name:     name.Value,
	}

	if p.accept(tokenTypeEqual) {
		v, err := p.parseConstValue()
		if err != nil {
			return nil, err
		}
		c := &caster{file: p.path, line: name.Line}
		val, err := c.cast(t, v)
		if err != nil {
			return nil, err
		}
		f.Default = val
	}
	return f, nil
}

func (p *parser) parseFieldType() (schema.TypeTag, error) {
	tk, err := p.expect(tokenTypeIdentifier)
	if err != nil {
		return schema.TypeTag{}, err
	}

	switch tk.Value {
	case "map":
		if _, err := p.expect(tokenTypeLeftAngled); err != nil {
			return schema.TypeTag{}, err
		}
		k, err := p.parseFieldType()
		if err != nil {
			return schema.TypeTag{}, err
		}
		if _, err := p.expect(tokenTypeComma); err != nil {
			return schema.TypeTag{}, err
		}
		v, err := p.parseFieldType()
		if err != nil {
			return schema.TypeTag{}, err
		}
		if _, err := p.expect(tokenTypeRightAngled); err != nil {
			return schema.TypeTag{}, err
		}
		return schema.MapOf(k, v), nil
	case "list", "set":
		if _, err := p.expect(tokenTypeLeftAngled); err != nil {
			return schema.TypeTag{}, err
		}
		elem, err := p.parseFieldType()
		if err != nil {
			return schema.TypeTag{}, err
		}
		if _, err := p.expect(tokenTypeRightAngled); err != nil {
			return schema.TypeTag{}, err
		}
		if tk.Value == "set" {
			return schema.SetOf(elem), nil
		}
		return schema.ListOf(elem), nil
	default:
		if code, ok := baseTypes[tk.Value]; ok {
			return schema.Primitive(code), nil
		}
		return p.parseRefType(tk)
	}
}

func (p *parser) parseRefType(tk token) (schema.TypeTag, error) {
	sym, err := p.resolvePath(tk)
	if err != nil {
		return schema.TypeTag{}, err
	}
	tag, ok := sym.TypeTag()
	if !ok {
		return schema.TypeTag{}, newError(ErrUnresolvedReference, p.path, tk.Line, "%q is not a type", tk.Value)
	}
	return tag, nil
}

// resolvePath walks a dotted identifier one segment at a time through the
// currently visible namespaces. Intermediate segments must name nested
// modules; the final segment may additionally name an enum member, which
// resolves to a synthetic constant symbol.
func (p *parser) resolvePath(tk token) (*schema.Symbol, error) {
	parts := strings.Split(tk.Value, ".")
	var sym *schema.Symbol
	for i, name := range parts {
		var next *schema.Symbol
		var ok bool
		switch {
		case i == 0:
			next, ok = p.module.Lookup(name)
		case sym.Kind == schema.SymbolModule:
			next, ok = sym.Module.Lookup(name)
		case sym.Kind == schema.SymbolEnum && i == len(parts)-1:
			if v, found := sym.Enum.Value(name); found {
				return &schema.Symbol{Kind: schema.SymbolConst, Name: tk.Value, Const: v}, nil
			}
		}
		if !ok {
			return nil, newError(ErrUnresolvedReference, p.path, tk.Line, "cannot resolve %q", tk.Value)
		}
		sym = next
	}
	return sym, nil
}

func (p *parser) parseConstValue() (any, error) {
	pk := p.peek()
	switch pk.Type {
	case tokenTypeInt:
		p.advance()
		return p.intValue(pk)
	case tokenTypeDouble:
		p.advance()
		v, err := strconv.ParseFloat(pk.Value, 64)
		if err != nil {
			return nil, p.grammarf(pk, "invalid double literal %q", pk.Value)
		}
		return v, nil
	case tokenTypeString:
		p.advance()
		return pk.Value, nil
	case tokenTypeLeftSquare:
		return p.parseConstList()
	case tokenTypeLeftCurly:
		return p.parseConstMap()
	case tokenTypeIdentifier:
		p.advance()
		switch pk.Value {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return p.parseConstRef(pk)
	default:
		return nil, p.grammarf(pk, "unexpected %s (%q); expected a constant value", pk.Type, pk.Value)
	}
}

func (p *parser) parseConstList() (any, error) {
	p.advance() // consume [
	vals := []any{}
	for p.peek().Type != tokenTypeRightSquare {
		v, err := p.parseConstValue()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		p.sep()
	}
	p.advance() // consume ]
	return vals, nil
}

// parseConstMap keeps map and struct literals as ordered entry lists; the
// caster turns them into real maps or records once the declared type is
// known.
func (p *parser) parseConstMap() (any, error) {
	p.advance() // consume {
	var entries []schema.MapEntry
	for p.peek().Type != tokenTypeRightCurly {
		k, err := p.parseConstValue()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(tokenTypeColon); err != nil {
			return nil, err
		}
		v, err := p.parseConstValue()
		if err != nil {
			return nil, err
		}
		entries = append(entries, schema.MapEntry{Key: k, Value: v})
		p.sep()
	}
	p.advance() // consume }
	return entries, nil
}

func (p *parser) parseConstRef(tk token) (any, error) {
	sym, err := p.resolvePath(tk)
	if err != nil {
		return nil, err
	}
	if sym.Kind != schema.SymbolConst {
		return nil, newError(ErrUnresolvedReference, p.path, tk.Line, "no constant or enum value named %q", tk.Value)
	}
	return sym.Const, nil
}

func (p *parser) parseService() error {
	p.advance() // consume "service"
	name, err := p.expect(tokenTypeIdentifier)
	if err != nil {
		return err
	}

	var extends *schema.Service
	if p.acceptKeyword("extends") {
		target, err := p.expect(tokenTypeIdentifier)
		if err != nil {
			return err
		}
		if extends, err = p.resolveExtends(name.Value, target); err != nil {
			return err
		}
	}

	if _, err = p.expect(tokenTypeLeftCurly); err != nil {
		return err
	}
	svc := schema.NewService(name.Value, extends)
	for p.peek().Type != tokenTypeRightCurly {
		if err := p.parseFunction(svc); err != nil {
			return err
		}
		p.sep()
	}
	p.advance() // consume }

	p.module.DefineService(svc)
	return nil
}

func (p *parser) resolveExtends(svcName string, target token) (*schema.Service, error) {
	sym, err := p.resolvePath(target)
	if err != nil {
		return nil, newError(ErrExtendsTarget, p.path, target.Line, "cannot find service %q for service %q to extend", target.Value, svcName)
	}
	if sym.Kind != schema.SymbolService {
		return nil, newError(ErrExtendsTarget, p.path, target.Line, "cannot extend %q: not a service", target.Value)
	}
	return sym.Service, nil
}

func (p *parser) parseFunction(svc *schema.Service) error {
	oneway := p.acceptKeyword("oneway")

	var ret schema.TypeTag
	if p.acceptKeyword("void") {
		ret = schema.Primitive(schema.TypeVoid)
	} else {
		var err error
		if ret, err = p.parseFieldType(); err != nil {
			return err
		}
	}

	name, err := p.expect(tokenTypeIdentifier)
	if err != nil {
		return err
	}
	if _, err = p.expect(tokenTypeLeftParen); err != nil {
		return err
	}
	params, err := p.parseFieldSeq(tokenTypeRightParen)
	if err != nil {
		return err
	}
	p.advance() // consume )

	var throws []*schema.Field
	if p.acceptKeyword("throws") {
		if _, err = p.expect(tokenTypeLeftParen); err != nil {
			return err
		}
		if throws, err = p.parseFieldSeq(tokenTypeRightParen); err != nil {
			return err
		}
		p.advance() // consume )
	}

	args, result := schema.MethodEnvelopes(name.Value, params, ret, throws, oneway)
	svc.AddMethod(name.Value, args, result)
	return nil
}
