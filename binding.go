package options

import (
	"fmt"
	"reflect"
	"strings"
)

// Binding declares one option without struct tags. It is the explicit
// counterpart of a tagged struct field, for variables that do not live in a
// struct (package-level vars, locals captured by main).
//
//	var verbose bool
//	reg, err := options.NewRegistry(options.RegistryOpts{}, options.Bindings{
//	    {Name: "verbose", Target: &verbose, Option: "-v Print more output"},
//	})
type Binding struct {
	Name              string   // Declared variable name; converted like a field name
	Target            any      // Pointer to the bound variable
	Option            string   // Same grammar as the `option` tag
	Aliases           []string // Literal aliases, dashes included
	Group             string   // Starts a new option group when non-empty
	GroupUnpublicized bool     // Hides the group started by Group
	Unpublicized      bool
	NoDocDefault      bool
}

// Bindings is a declaration source made of explicit bindings, processed in
// order.
type Bindings []Binding

func (bs Bindings) declarations(source string) ([]declaration, error) {
	decls := make([]declaration, 0, len(bs))

	for i, b := range bs {
		field := fmt.Sprintf("%s[%d] (%s)", source, i, b.Name)
		if b.Name == "" {
			return nil, fmt.Errorf("%w: binding %s has no name", ErrInvalidSource, field)
		}

		target := reflect.ValueOf(b.Target)
		if !target.IsValid() || target.Kind() != reflect.Ptr || target.IsNil() {
			return nil, fmt.Errorf("%w: binding %s target must be a non-nil pointer, got %T", ErrInvalidSource, field, b.Target)
		}

		tags := FieldTags{
			Option:       b.Option,
			Unpublicized: b.Unpublicized,
			NoDocDefault: b.NoDocDefault,
		}

		if len(b.Aliases) > 0 {
			aliases, err := decodeAliases(strings.Join(b.Aliases, AliasDelimiter))
			if err != nil {
				return nil, fmt.Errorf("binding %s: %w", field, err)
			}
			tags.Aliases = aliases
		}

		if b.Group != "" {
			tags.Group = &GroupSpec{Name: b.Group, Unpublicized: b.GroupUnpublicized}
		}

		decls = append(decls, declaration{
			Name:   b.Name,
			Field:  field,
			Target: target.Elem(),
			Tags:   tags,
		})
	}

	return decls, nil
}
