// Package idl parses Thrift interface definition files into an in-memory
// schema model. Parsing is a single grammar pass: type and constant
// references are resolved as declarations reduce, constants are validated
// against their declared types on the spot, and included files are parsed
// depth-first and attached to the including module as named members.
package idl

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/20cmdingding/thriftidl/schema"
)

const (
	fileSuffix   = ".thrift"
	moduleSuffix = "_thrift"
)

// Option configures a single Parse invocation.
type Option func(*frontend)

// WithIncludeDir sets the base directory used to resolve relative include
// paths, for this parse and every nested one. Defaults to the current
// directory.
func WithIncludeDir(dir string) Option {
	return func(f *frontend) {
		f.includeDir = dir
	}
}

// WithModuleName overrides the name of the returned module. The name must
// carry the "_thrift" suffix; by default the module is named after the
// file's base name.
func WithModuleName(name string) Option {
	return func(f *frontend) {
		f.moduleName = name
	}
}

// frontend is the context threaded through a parse and its nested include
// parses: the include base directory, a cache of completed modules, and the
// set of files currently being parsed, used to detect include cycles.
type frontend struct {
	includeDir string
	moduleName string
	modules    map[string]*schema.Module
	inProgress map[string]struct{}
}

// Parse reads and parses the schema file at path, returning its completed
// module. The path must end with ".thrift". Failures abort the whole parse,
// including any in-flight include parses, and are returned as *Error; I/O
// errors from reading schema files pass through unmodified.
func Parse(path string, opts ...Option) (*schema.Module, error) {
	f := &frontend{
		includeDir: ".",
		modules:    map[string]*schema.Module{},
		inProgress: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.moduleName != "" && !strings.HasSuffix(f.moduleName, moduleSuffix) {
		return nil, newError(ErrModulePath, path, 0, "module name %q must end with %q", f.moduleName, moduleSuffix)
	}
	return f.parse(path, f.moduleName)
}

func (f *frontend) parse(path, moduleName string) (*schema.Module, error) {
	if !strings.HasSuffix(path, fileSuffix) {
		return nil, newError(ErrModulePath, path, 0, "path must end with %q", fileSuffix)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if m, ok := f.modules[abs]; ok {
		return m, nil
	}
	if _, ok := f.inProgress[abs]; ok {
		return nil, newError(ErrCircularInclude, path, 0, "file includes itself, directly or through other includes")
	}
	f.inProgress[abs] = struct{}{}
	defer delete(f.inProgress, abs)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tokens, err := lexFile(path, data)
	if err != nil {
		return nil, err
	}

	if moduleName == "" {
		moduleName = strings.TrimSuffix(filepath.Base(path), fileSuffix)
	}

	p := &parser{
		fe:     f,
		path:   path,
		tokens: tokens,
		module: schema.NewModule(moduleName),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}

	f.modules[abs] = p.module
	return p.module, nil
}
