package options

import (
	"fmt"
	"reflect"
	"strings"
)

// This file contains the tag decoder for option fields. An option field is
// any exported struct field carrying an `option` tag:
//
//	Temperature float64 `option:"-t <celsius> Set the temperature" alias:"-temp"`
//
// Tag grammar:
//
//	option:"[<short_name>] [<type_label>] <description>"
//	short_name:  '-' <char> ' '       // exactly one character, then a space
//	type_label:  '<' <text> '>' ' '   // overrides the type name shown in usage
//	alias:"<literal>[,<literal>]*"   // each literal includes its dashes
//	group:"<group_name>[,unpublicized]"
//	unpublicized:""                  // presence marker
//	nodocdefault:""                  // presence marker

// OptionSpec is the decoded `option` tag.
// Example: "-a <filename> argument 1" -> {ShortName: "a", TypeName: "filename", Description: "argument 1"}
type OptionSpec struct {
	ShortName   string
	TypeName    string
	Description string
}

// GroupSpec is the decoded `group` tag.
// Example: "Internal options,unpublicized"
type GroupSpec struct {
	Name         string
	Unpublicized bool
}

// FieldTags is the complete set of option metadata declared on one field.
type FieldTags struct {
	Option       string
	Aliases      []string
	Group        *GroupSpec
	Unpublicized bool
	NoDocDefault bool
}

// GetFieldTags reads the option metadata of a struct field. The boolean
// result is false when the field carries no `option` tag.
func GetFieldTags(field reflect.StructField) (FieldTags, bool, error) {
	option, ok := field.Tag.Lookup(OptionTag)
	if !ok {
		return FieldTags{}, false, nil
	}

	tags := FieldTags{Option: option}

	if aliases, ok := field.Tag.Lookup(AliasTag); ok {
		decoded, err := decodeAliases(aliases)
		if err != nil {
			return FieldTags{}, true, fmt.Errorf("field %s: %w", field.Name, err)
		}
		tags.Aliases = decoded
	}

	if group, ok := field.Tag.Lookup(GroupTag); ok {
		decoded, err := decodeGroupTag(group)
		if err != nil {
			return FieldTags{}, true, fmt.Errorf("field %s: %w", field.Name, err)
		}
		tags.Group = &decoded
	}

	_, tags.Unpublicized = field.Tag.Lookup(UnpublicizedTag)
	_, tags.NoDocDefault = field.Tag.Lookup(NoDocDefaultTag)

	return tags, true, nil
}

// decodeOptionTag splits an option description into its short name, type
// label and description.
func decodeOptionTag(val string) (OptionSpec, error) {
	var spec OptionSpec

	description := val
	if strings.HasPrefix(val, ShortPrefix) {
		runes := []rune(val)
		if len(runes) < 4 || runes[2] != ' ' || runes[1] == ShortNamePrefix {
			return OptionSpec{}, fmt.Errorf(
				"%w %q: an argument that starts with '-' should contain a short name, a space, and a description",
				ErrMalformedOption, val,
			)
		}
		spec.ShortName = string(runes[1])
		description = string(runes[3:])
	}

	if len(description) > 0 && description[0] == TypeLabelOpen {
		label := description[1:]
		if end := strings.IndexByte(label, TypeLabelClose); end >= 0 {
			label = label[:end]
		}
		spec.TypeName = label
		if end := strings.Index(description, string(TypeLabelClose)+" "); end >= 0 {
			description = description[end+2:]
		}
	}

	spec.Description = description
	return spec, nil
}

func decodeAliases(val string) ([]string, error) {
	var aliases []string
	for _, alias := range strings.Split(val, AliasDelimiter) {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		if !strings.HasPrefix(alias, ShortPrefix) || alias == OptionsTerminator {
			return nil, fmt.Errorf("%w: alias %q must start with a dash", ErrMalformedOption, alias)
		}
		aliases = append(aliases, alias)
	}
	return aliases, nil
}

func decodeGroupTag(val string) (GroupSpec, error) {
	parts := strings.Split(val, GroupModifierDelim)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return GroupSpec{}, fmt.Errorf("%w: empty group name", ErrMalformedOption)
	}

	spec := GroupSpec{Name: name}
	for _, modifier := range parts[1:] {
		switch strings.TrimSpace(modifier) {
		case UnpublicizedModifier:
			spec.Unpublicized = true
		case "":
			continue
		default:
			return GroupSpec{}, fmt.Errorf("%w: unknown group modifier %q", ErrMalformedOption, modifier)
		}
	}
	return spec, nil
}
