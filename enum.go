package options

import (
	"fmt"
	"reflect"
	"strings"
)

// Enum is implemented by types whose values form a closed set of named
// constants. String must return the constant's declared name, for example
// "SMART_RLE", and Constants must return every value of the type.
//
//	type Compressor int
//
//	const (
//	    RLE Compressor = iota
//	    SmartRLE
//	    Huffman
//	)
//
//	func (c Compressor) String() string { return [...]string{"RLE", "SMART_RLE", "HUFFMAN"}[c] }
//	func (Compressor) Constants() []options.Enum { return []options.Enum{RLE, SmartRLE, Huffman} }
//
// On the command line constant names are matched case-insensitively, and a
// '-' matches a '_' in the constant name, so smart-rle selects SMART_RLE.
// Separators cannot be dropped: smartrle does not.
type Enum interface {
	fmt.Stringer
	Constants() []Enum
}

func isEnumType(typ reflect.Type) bool {
	return typ.Implements(EnumInterfaceType)
}

// lookupEnum finds the constant of typ named by token.
func lookupEnum(typ reflect.Type, token string) (reflect.Value, error) {
	zero, ok := reflect.Zero(typ).Interface().(Enum)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%s is not an enum type", typ)
	}

	want := strings.ReplaceAll(token, string(DisplaySeparator), string(WordSeparator))
	for _, constant := range zero.Constants() {
		if !strings.EqualFold(constant.String(), want) {
			continue
		}
		value := reflect.ValueOf(constant)
		if value.Type() != typ {
			return reflect.Value{}, fmt.Errorf("constant %s of %s has type %s", constant, typ, value.Type())
		}
		return value, nil
	}

	return reflect.Value{}, fmt.Errorf("no enum constant %s.%s", typ, token)
}
