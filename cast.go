package idl

import (
	"reflect"

	"github.com/20cmdingding/thriftidl/schema"
)

// caster checks a literal value against a declared type tag, transforming
// containers and struct literals into their validated shapes. It never
// mutates its input; set literals are the one case where the output has a
// different container type than the input.
type caster struct {
	file string
	line int
}

func (c *caster) cast(t schema.TypeTag, v any) (any, error) {
	if t.IsEnum() {
		return c.castEnum(t, v)
	}

	switch t.Code {
	case schema.TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case schema.TypeByte, schema.TypeString, schema.TypeBinary:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case schema.TypeI16, schema.TypeI32, schema.TypeI64:
		if i, ok := v.(int64); ok {
			return i, nil
		}
	case schema.TypeDouble:
		// No coercion: an int literal is not a valid double constant.
		if f, ok := v.(float64); ok {
			return f, nil
		}
	case schema.TypeList:
		return c.castList(t, v)
	case schema.TypeSet:
		return c.castSet(t, v)
	case schema.TypeMap:
		return c.castMap(t, v)
	case schema.TypeStruct:
		return c.castStruct(t, v)
	default:
		return nil, newError(ErrTypeMismatch, c.file, c.line, "type %s cannot carry a constant value", t)
	}

	return nil, c.mismatch(t, v)
}

func (c *caster) mismatch(t schema.TypeTag, v any) *Error {
	return newError(ErrTypeMismatch, c.file, c.line, "cannot use %v (%T) as %s", v, v, t)
}

func (c *caster) castList(t schema.TypeTag, v any) (any, error) {
	elems, ok := v.([]any)
	if !ok {
		return nil, c.mismatch(t, v)
	}
	out := make([]any, len(elems))
	for i, e := range elems {
		cast, err := c.cast(*t.Elem, e)
		if err != nil {
			return nil, err
		}
		out[i] = cast
	}
	return out, nil
}

func (c *caster) castSet(t schema.TypeTag, v any) (any, error) {
	if s, ok := v.(*schema.Set); ok {
		return s, nil
	}
	elems, ok := v.([]any)
	if !ok {
		return nil, c.mismatch(t, v)
	}
	out := schema.NewSet()
	for _, e := range elems {
		cast, err := c.cast(*t.Elem, e)
		if err != nil {
			return nil, err
		}
		if !hashable(cast) {
			return nil, newError(ErrTypeMismatch, c.file, c.line, "%s is not usable as a set element", t.Elem)
		}
		out.Add(cast)
	}
	return out, nil
}

func (c *caster) castMap(t schema.TypeTag, v any) (any, error) {
	entries, ok := v.([]schema.MapEntry)
	if !ok {
		return nil, c.mismatch(t, v)
	}
	out := make(map[any]any, len(entries))
	for _, e := range entries {
		key, err := c.cast(*t.Key, e.Key)
		if err != nil {
			return nil, err
		}
		if !hashable(key) {
			return nil, newError(ErrTypeMismatch, c.file, c.line, "%s is not usable as a map key", t.Key)
		}
		value, err := c.cast(*t.Elem, e.Value)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

func (c *caster) castEnum(t schema.TypeTag, v any) (any, error) {
	i, ok := v.(int64)
	if !ok {
		return nil, c.mismatch(t, v)
	}
	if !t.EnumDef.HasValue(i) {
		return nil, newError(ErrInvalidEnumValue, c.file, c.line, "no value %d in enum %s", i, t.EnumDef.Name)
	}
	return i, nil
}

func (c *caster) castStruct(t schema.TypeTag, v any) (any, error) {
	if r, ok := v.(*schema.Record); ok && r.Desc == t.StructDef {
		return r, nil // already cast
	}

	entries, ok := v.([]schema.MapEntry)
	if !ok {
		return nil, c.mismatch(t, v)
	}

	kw := make(map[string]any, len(entries))
	for _, e := range entries {
		name, ok := e.Key.(string)
		if !ok {
			return nil, newError(ErrTypeMismatch, c.file, c.line, "field names of a %s literal must be strings", t.StructDef.Name)
		}
		kw[name] = e.Value
	}

	for _, f := range t.StructDef.Fields {
		if !f.Required {
			continue
		}
		if _, ok := kw[f.Name]; !ok {
			return nil, newError(ErrMissingRequiredField, c.file, c.line, "field %q is required to create a constant of type %s", f.Name, t.StructDef.Name)
		}
	}

	for name, raw := range kw {
		f, ok := t.StructDef.FieldByName(name)
		if !ok {
			return nil, newError(ErrUnknownField, c.file, c.line, "no field named %q in type %s", name, t.StructDef.Name)
		}
		cast, err := c.cast(f.Type, raw)
		if err != nil {
			return nil, err
		}
		kw[name] = cast
	}

	return t.StructDef.New(kw), nil
}

func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}
