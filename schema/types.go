package schema

import "fmt"

// TypeCode identifies the kind of a TypeTag. The values follow the Thrift
// TType numbering so downstream encoders can use them directly on the wire;
// Binary gets its own code since the model keeps it distinct from String.
type TypeCode int

const (
	TypeStop   TypeCode = 0
	TypeVoid   TypeCode = 1
	TypeBool   TypeCode = 2
	TypeByte   TypeCode = 3
	TypeDouble TypeCode = 4
	TypeI16    TypeCode = 6
	TypeI32    TypeCode = 8
	TypeI64    TypeCode = 10
	TypeString TypeCode = 11
	TypeStruct TypeCode = 12
	TypeMap    TypeCode = 13
	TypeSet    TypeCode = 14
	TypeList   TypeCode = 15
	TypeBinary TypeCode = 18
)

var typeCodeAsString = map[TypeCode]string{
	TypeStop:   "stop",
	TypeVoid:   "void",
	TypeBool:   "bool",
	TypeByte:   "byte",
	TypeDouble: "double",
	TypeI16:    "i16",
	TypeI32:    "i32",
	TypeI64:    "i64",
	TypeString: "string",
	TypeStruct: "struct",
	TypeMap:    "map",
	TypeSet:    "set",
	TypeList:   "list",
	TypeBinary: "binary",
}

func (c TypeCode) String() string { return typeCodeAsString[c] }

// TypeTag is the closed type descriptor: a primitive code, a container
// parameterized by nested tags, or a reference to a named enum or
// struct-like descriptor.
type TypeTag struct {
	Code TypeCode

	// Key is the key type of a map.
	Key *TypeTag
	// Elem is the element type of a list or set, or the value type of a map.
	Elem *TypeTag

	// StructDef is set when the tag references a struct, union, or
	// exception descriptor (Code == TypeStruct).
	StructDef *Struct
	// EnumDef is set when the tag references an enum descriptor; the code
	// stays TypeI32 since enums are i32-backed.
	EnumDef *Enum
}

func Primitive(code TypeCode) TypeTag { return TypeTag{Code: code} }

func ListOf(elem TypeTag) TypeTag { return TypeTag{Code: TypeList, Elem: &elem} }

func SetOf(elem TypeTag) TypeTag { return TypeTag{Code: TypeSet, Elem: &elem} }

func MapOf(key, value TypeTag) TypeTag {
	return TypeTag{Code: TypeMap, Key: &key, Elem: &value}
}

func OfEnum(e *Enum) TypeTag { return TypeTag{Code: TypeI32, EnumDef: e} }

func OfStruct(s *Struct) TypeTag { return TypeTag{Code: TypeStruct, StructDef: s} }

// IsEnum reports whether the tag references a named enum rather than a
// plain i32.
func (t TypeTag) IsEnum() bool { return t.Code == TypeI32 && t.EnumDef != nil }

func (t TypeTag) IsStruct() bool { return t.Code == TypeStruct && t.StructDef != nil }

func (t TypeTag) String() string {
	switch {
	case t.IsEnum():
		return t.EnumDef.Name
	case t.IsStruct():
		return t.StructDef.Name
	case t.Code == TypeList, t.Code == TypeSet:
		return fmt.Sprintf("%s<%s>", t.Code, t.Elem)
	case t.Code == TypeMap:
		return fmt.Sprintf("map<%s,%s>", t.Key, t.Elem)
	default:
		return t.Code.String()
	}
}
