package options

import (
	"fmt"
	"reflect"
)

// Descriptor is the metadata of one option: its names, its type, its
// default, and the variable it is bound to. Descriptors are built once by
// NewRegistry and never change; parsing only writes through to the bound
// variable.
type Descriptor struct {
	field  string        // Source-qualified declared name, for messages
	target reflect.Value // The bound variable
	typ    reflect.Type  // Option type; the element type for lists
	kind   Kind
	list   bool

	longName    string // Canonical, words separated by '_'
	shortName   string
	aliases     []string
	typeName    string
	description string

	defaultStr string
	hasDefault bool

	noDocDefault bool
	unpublicized bool
	group        string
}

// declaration is a single bindable variable discovered in a source.
type declaration struct {
	Name   string        // Declared variable name
	Field  string        // Source-qualified name for messages
	Target reflect.Value // Settable storage
	Tags   FieldTags
}

// newDescriptor builds the Descriptor for a declaration. It fails if the
// option description is malformed or the variable's type has no coercion
// rule.
func newDescriptor(decl declaration) (*Descriptor, error) {
	target := decl.Target
	typ := target.Type()

	d := &Descriptor{
		field:        decl.Field,
		target:       target,
		typ:          typ,
		longName:     canonicalLongName(FieldNameToOptionName(decl.Name)),
		aliases:      decl.Tags.Aliases,
		noDocDefault: decl.Tags.NoDocDefault,
		unpublicized: decl.Tags.Unpublicized,
	}

	if typ.Kind() == reflect.Array {
		return nil, fmt.Errorf("%w: option may not bind a variable of array type: %s", ErrUnsupportedType, decl.Field)
	}

	d.kind = classify(typ)
	if d.kind == KindUnsupported && typ.Kind() == reflect.Slice {
		d.list = true
		d.typ = typ.Elem()
		d.kind = classify(d.typ)
	}
	if d.kind == KindUnsupported {
		return nil, fmt.Errorf("%w %s for field %s", ErrUnsupportedType, typ, decl.Field)
	}

	spec, err := decodeOptionTag(decl.Tags.Option)
	if err != nil {
		return nil, fmt.Errorf("error while processing option %q on %s: %w", decl.Tags.Option, decl.Field, err)
	}
	d.shortName = spec.ShortName
	d.description = spec.Description
	d.typeName = spec.TypeName
	if d.typeName == "" {
		d.typeName = typeShortName(d.typ)
	}

	if d.list {
		// A nil list gets an empty backing slice; an empty list has no default.
		if target.IsNil() {
			target.Set(reflect.MakeSlice(typ, 0, 0))
		}
		if target.Len() > 0 {
			d.defaultStr, d.hasDefault = formatList(target), true
		}
	} else {
		d.defaultStr, d.hasDefault = formatValue(target)
	}

	return d, nil
}

///////////////////////////////////////////////////////////////////////////////
// Accessors
///////////////////////////////////////////////////////////////////////////////

// LongName returns the canonical long name, words separated by '_'.
func (d *Descriptor) LongName() string { return d.longName }

// DisplayName returns the long name with the separator used for output.
func (d *Descriptor) DisplayName(underscores bool) string {
	return displayName(d.longName, underscores)
}

// ShortName returns the one-character short name, or "" if there is none.
func (d *Descriptor) ShortName() string { return d.shortName }

// Aliases returns the literal alias strings, dashes included.
func (d *Descriptor) Aliases() []string { return append([]string(nil), d.aliases...) }

func (d *Descriptor) Kind() Kind             { return d.kind }
func (d *Descriptor) IsList() bool           { return d.list }
func (d *Descriptor) Type() reflect.Type     { return d.typ }
func (d *Descriptor) TypeName() string       { return d.typeName }
func (d *Descriptor) Description() string    { return d.description }
func (d *Descriptor) Field() string          { return d.field }
func (d *Descriptor) Group() string          { return d.group }
func (d *Descriptor) Unpublicized() bool     { return d.unpublicized }
func (d *Descriptor) NoDocDefault() bool     { return d.noDocDefault }
func (d *Descriptor) DefaultString() string  { return d.defaultStr }
func (d *Descriptor) HasDefault() bool       { return d.hasDefault }
func (d *Descriptor) ArgumentRequired() bool { return d.list || d.kind != KindBoolean }

// Value returns the current value of the bound variable, rendered the way
// it would be written on the command line.
func (d *Descriptor) Value() string {
	if d.list {
		return formatList(d.target)
	}
	s, ok := formatValue(d.target)
	if !ok {
		return "<nil>"
	}
	return s
}

// String describes the option on one line.
func (d *Descriptor) String() string {
	short := ""
	if d.shortName != "" {
		short = ShortPrefix + d.shortName + " "
	}
	return fmt.Sprintf("%s%s%s field %s", short, LongPrefix, d.DisplayName(false), d.field)
}

///////////////////////////////////////////////////////////////////////////////
// Storage
///////////////////////////////////////////////////////////////////////////////

// set overwrites a scalar option's variable.
func (d *Descriptor) set(value reflect.Value) {
	d.target.Set(value)
}

// add appends one element to a list option's variable.
func (d *Descriptor) add(value reflect.Value) {
	d.target.Set(reflect.Append(d.target, value))
}
