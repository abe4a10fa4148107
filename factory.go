package options

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrInvalidJSON = errors.New("invalid JSON value")
)

// Factory builds a value of a registered type from a command-line token.
// The parser always calls it with a nil extra slice; extra exists so that
// multi-part constructors such as NewPath can be registered directly.
type Factory func(token string, extra []string) (any, error)

// Path is a filesystem path option value. The parser only produces the
// value; it never touches the filesystem.
type Path string

// NewPath joins first and more into a Path. With no extra elements the
// token is kept verbatim.
func NewPath(first string, more ...string) (Path, error) {
	if strings.ContainsRune(first, 0) {
		return "", fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidPath, first)
	}
	if len(more) == 0 {
		return Path(first), nil
	}
	return Path(filepath.Join(append([]string{first}, more...)...)), nil
}

// String returns the path as written.
func (p Path) String() string {
	return string(p)
}

var _factories = struct {
	sync.RWMutex
	m map[reflect.Type]Factory
}{
	m: map[reflect.Type]Factory{
		PathType: func(token string, extra []string) (any, error) {
			return NewPath(token, extra...)
		},
		RegexpType: func(token string, _ []string) (any, error) {
			return regexp.Compile(token)
		},
		JSONType: func(token string, _ []string) (any, error) {
			if !gjson.Valid(token) {
				return nil, fmt.Errorf("%w: %q", ErrInvalidJSON, token)
			}
			return gjson.Parse(token), nil
		},
	},
}

// RegisterFactory makes typ usable as an option type. Registering a type
// that already has a factory replaces it. Register factories before building
// the registries whose fields use them.
func RegisterFactory(typ reflect.Type, factory Factory) {
	_factories.Lock()
	defer _factories.Unlock()
	_factories.m[typ] = factory
}

func lookupFactory(typ reflect.Type) (Factory, bool) {
	_factories.RLock()
	defer _factories.RUnlock()
	factory, ok := _factories.m[typ]
	return factory, ok
}

// invokeFactory runs the factory for typ and checks the produced value.
func invokeFactory(typ reflect.Type, token string) (reflect.Value, error) {
	factory, ok := lookupFactory(typ)
	if !ok {
		return reflect.Value{}, fmt.Errorf("no factory registered for %s", typ)
	}

	produced, err := factory(token, nil)
	if err != nil {
		return reflect.Value{}, err
	}
	if produced == nil {
		return reflect.Value{}, fmt.Errorf("factory for %s returned nil", typ)
	}

	value := reflect.ValueOf(produced)
	if !value.Type().AssignableTo(typ) {
		return reflect.Value{}, fmt.Errorf("factory for %s returned %s", typ, value.Type())
	}
	return value, nil
}
