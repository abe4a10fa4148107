package options

import (
	"strings"
	"unicode"
)

// FieldNameToOptionName converts a Go field name to a canonical long option
// name. Canonical names separate words with '_'.
//
// Exported Go fields always start with a capital letter, which is lowered.
// A name that already contains '_' keeps the rest of its characters as
// declared. Otherwise a separator is inserted at every word boundary and the
// name is lowered, treating a run of capitals as a single word:
//
//	PrintVersion -> print_version
//	HTTPPort     -> http_port
//	Input_file   -> input_file
//
// PrintVersion and Print_version therefore name the same option.
func FieldNameToOptionName(name string) string {
	if name == "" {
		return name
	}

	runes := []rune(name)
	if strings.ContainsRune(name, WordSeparator) {
		runes[0] = unicode.ToLower(runes[0])
		return string(runes)
	}

	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 && isWordStart(runes, i) {
			b.WriteRune(WordSeparator)
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// isWordStart reports whether the upper-case rune at i begins a new word.
func isWordStart(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// Last capital of an acronym run followed by a lower-case letter: HTTPPort.
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// displayName renders a canonical long name for output.
func displayName(canonical string, underscores bool) string {
	if underscores {
		return canonical
	}
	return strings.ReplaceAll(canonical, string(WordSeparator), string(DisplaySeparator))
}

// canonicalLongName maps a long name as typed on the command line to its
// canonical form. Hyphens and underscores are interchangeable on input.
func canonicalLongName(input string) string {
	return strings.ReplaceAll(input, string(DisplaySeparator), string(WordSeparator))
}
