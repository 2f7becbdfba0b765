package idl

import "fmt"

// ErrorKind discriminates parse failures so callers can react to a specific
// condition instead of matching message text. Any error surfaced by Parse
// that originates in this package is an *Error carrying one of these kinds;
// I/O failures from reading schema files pass through unmodified.
type ErrorKind int

const (
	ErrLexical ErrorKind = iota
	ErrGrammar
	ErrUnresolvedReference
	ErrTypeMismatch
	ErrMissingRequiredField
	ErrUnknownField
	ErrInvalidEnumValue
	ErrExtendsTarget
	ErrModulePath
	ErrCircularInclude
)

var errorKindAsString = map[ErrorKind]string{
	ErrLexical:              "lexical error",
	ErrGrammar:              "grammar error",
	ErrUnresolvedReference:  "unresolved reference",
	ErrTypeMismatch:         "type mismatch",
	ErrMissingRequiredField: "missing required field",
	ErrUnknownField:         "unknown field",
	ErrInvalidEnumValue:     "invalid enum value",
	ErrExtendsTarget:        "invalid extends target",
	ErrModulePath:           "invalid module path",
	ErrCircularInclude:      "circular include",
}

func (k ErrorKind) String() string { return errorKindAsString[k] }

// Error aborts a parse at the point of detection; no partial module is ever
// returned alongside one.
type Error struct {
	Kind ErrorKind
	File string
	Line int

	msg string
}

func (e *Error) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Kind, e.msg)
	case e.File != "":
		return fmt.Sprintf("%s: %s: %s", e.File, e.Kind, e.msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.msg)
	}
}

func (e *Error) Message() string { return e.msg }

func newError(kind ErrorKind, file string, line int, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		File: file,
		Line: line,
		msg:  fmt.Sprintf(format, args...),
	}
}
