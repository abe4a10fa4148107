package options

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
)

// RegistryOpts configures registry construction.
type RegistryOpts struct {
	Synopsis string       // How to invoke the program, printed after "Usage: "
	Logger   *slog.Logger // Debug tracing of the fields considered; nil discards
}

// Group is a named, ordered subset of the options, used to organize usage
// output. Every option of a registry with groups belongs to exactly one.
type Group struct {
	Name         string
	Unpublicized bool
	options      []*Descriptor
}

// Options returns the members of the group in declaration order.
func (g *Group) Options() []*Descriptor {
	return append([]*Descriptor(nil), g.options...)
}

// AnyPublicized reports whether at least one member option is publicized.
func (g *Group) AnyPublicized() bool {
	for _, d := range g.options {
		if !d.unpublicized {
			return true
		}
	}
	return false
}

// Registry is the option schema built from one or more declaration sources.
// It is read-only after construction and safe to share between goroutines;
// parsing mutates only the bound variables.
type Registry struct {
	synopsis string
	options  []*Descriptor

	// names holds literal keys: "-x" short names and aliases
	names map[string]*Descriptor
	// longNames holds canonical long names, without a prefix
	longNames map[string]*Descriptor

	groups       []*Group
	groupsByName map[string]*Group
	hasGroups    bool
}

// NewRegistry builds the schema for the options declared by sources. A
// source is a non-nil pointer to a struct whose tagged fields are options,
// or a Bindings list. Sources are processed in order, and the fields of each
// in declaration order.
//
// Any inconsistency in the declarations is returned as an error wrapping one
// of the construction sentinels; no Registry is returned in that case.
func NewRegistry(opts RegistryOpts, sources ...any) (*Registry, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	reg := &Registry{
		synopsis:     opts.Synopsis,
		names:        make(map[string]*Descriptor),
		longNames:    make(map[string]*Descriptor),
		groupsByName: make(map[string]*Group),
	}

	var (
		seenFirst   bool
		firstSource string
	)

	for i, source := range sources {
		sourceName, decls, err := declarationsOf(source, i)
		if err != nil {
			return nil, err
		}

		// The first option of every source must start a group when groups
		// are in use.
		var current *Group

		for _, decl := range decls {
			if logger.Enabled(context.Background(), slog.LevelDebug) {
				logger.Debug("considering option field",
					"source", sourceName,
					"field", decl.Field,
					"option", decl.Tags.Option,
				)
			}

			d, err := newDescriptor(decl)
			if err != nil {
				return nil, err
			}
			reg.options = append(reg.options, d)

			spec := decl.Tags.Group
			if !seenFirst {
				seenFirst = true
				firstSource = sourceName
				reg.hasGroups = spec != nil
			}

			if !reg.hasGroups {
				if spec != nil {
					return nil, fmt.Errorf("%w of %s", ErrMissingFirstGroup, firstSource)
				}
				continue
			}

			if spec != nil {
				if _, exists := reg.groupsByName[spec.Name]; exists {
					return nil, fmt.Errorf("%w: %s", ErrDuplicateGroup, spec.Name)
				}
				current = &Group{Name: spec.Name, Unpublicized: spec.Unpublicized}
				reg.groups = append(reg.groups, current)
				reg.groupsByName[spec.Name] = current
			}
			if current == nil {
				return nil, fmt.Errorf("%w in field %s of %s", ErrMissingGroup, decl.Field, sourceName)
			}

			d.group = current.Name
			current.options = append(current.options, d)
		}
	}

	if err := reg.indexNames(); err != nil {
		return nil, err
	}

	logger.Debug("option registry built",
		"options", len(reg.options),
		"groups", len(reg.groups),
	)

	return reg, nil
}

// MustNewRegistry is like NewRegistry but panics on error. It suits
// registries built from static declarations in package initialization.
func MustNewRegistry(opts RegistryOpts, sources ...any) *Registry {
	reg, err := NewRegistry(opts, sources...)
	if err != nil {
		panic(err)
	}
	return reg
}

// declarationsOf extracts the option declarations of one source.
func declarationsOf(source any, index int) (string, []declaration, error) {
	switch src := source.(type) {
	case Bindings:
		name := fmt.Sprintf("bindings#%d", index)
		decls, err := src.declarations(name)
		return name, decls, err
	case *Bindings:
		if src == nil {
			return "", nil, fmt.Errorf("%w: got nil *Bindings", ErrInvalidSource)
		}
		name := fmt.Sprintf("bindings#%d", index)
		decls, err := src.declarations(name)
		return name, decls, err
	}

	value := reflect.ValueOf(source)
	if !value.IsValid() {
		return "", nil, fmt.Errorf("%w: got nil", ErrInvalidSource)
	}
	if value.Kind() != reflect.Ptr || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("%w: got %T", ErrInvalidSource, source)
	}

	decls, err := structDeclarations(value)
	return value.Type().String(), decls, err
}

// indexNames fills the name tables. Short names and long names are entered
// first, then aliases, so that an alias can never shadow a real name.
func (reg *Registry) indexNames() error {
	for _, d := range reg.options {
		if d.shortName != "" {
			key := ShortPrefix + d.shortName
			if prev, ok := reg.names[key]; ok {
				return fmt.Errorf("%w: short name %s (%s and %s)", ErrDuplicateName, key, prev, d)
			}
			reg.names[key] = d
		}

		if prev, ok := reg.longNames[d.longName]; ok {
			return fmt.Errorf("%w: long name %s (%s and %s)", ErrDuplicateName, d.DisplayName(false), prev, d)
		}
		reg.longNames[d.longName] = d
	}

	// A one-letter long name and another option's short name would be the
	// same token when single-dash long names are in use.
	for key, d := range reg.names {
		if prev, ok := reg.longNames[strings.TrimPrefix(key, ShortPrefix)]; ok && prev != d {
			return fmt.Errorf("%w: %s is both a short name (%s) and a long name (%s)", ErrDuplicateName, key, d, prev)
		}
	}

	for _, d := range reg.options {
		for _, alias := range d.aliases {
			if prev, ok := reg.names[alias]; ok {
				return fmt.Errorf("%w: alias %s (%s and %s)", ErrDuplicateName, alias, prev, d)
			}
			if body, ok := strings.CutPrefix(alias, LongPrefix); ok {
				if prev, ok := reg.longNames[canonicalLongName(body)]; ok {
					return fmt.Errorf("%w: alias %s (%s and %s)", ErrDuplicateName, alias, prev, d)
				}
			} else if body := strings.TrimPrefix(alias, ShortPrefix); len([]rune(body)) > 1 {
				if prev, ok := reg.longNames[canonicalLongName(body)]; ok && prev != d {
					return fmt.Errorf("%w: alias %s (%s and %s)", ErrDuplicateName, alias, prev, d)
				}
			}
			reg.names[alias] = d
		}
	}

	return nil
}

// lookup resolves an option name as written on the command line. Literal
// names (short names and aliases) take precedence over long names.
func (reg *Registry) lookup(name string, singleDash bool) (*Descriptor, bool) {
	if d, ok := reg.names[name]; ok {
		return d, true
	}

	prefix := LongPrefix
	if singleDash {
		prefix = ShortPrefix
	}
	body, ok := strings.CutPrefix(name, prefix)
	if !ok || body == "" {
		return nil, false
	}
	if singleDash && strings.HasPrefix(body, ShortPrefix) {
		return nil, false
	}

	d, ok := reg.longNames[canonicalLongName(body)]
	return d, ok
}

///////////////////////////////////////////////////////////////////////////////
// Accessors
///////////////////////////////////////////////////////////////////////////////

// Options returns every option in declaration order.
func (reg *Registry) Options() []*Descriptor {
	return append([]*Descriptor(nil), reg.options...)
}

// Groups returns the option groups in declaration order. It is empty when
// the registry does not use groups.
func (reg *Registry) Groups() []*Group {
	return append([]*Group(nil), reg.groups...)
}

// Group returns the group with the given name.
func (reg *Registry) Group(name string) (*Group, bool) {
	g, ok := reg.groupsByName[name]
	return g, ok
}

func (reg *Registry) HasGroups() bool  { return reg.hasGroups }
func (reg *Registry) Synopsis() string { return reg.synopsis }

// String describes every option, one per line.
func (reg *Registry) String() string {
	lines := make([]string, 0, len(reg.options))
	for _, d := range reg.options {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}
