package options

import (
	"encoding"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// Kinds
///////////////////////////////////////////////////////////////////////////////

// Kind classifies the element type of an option. It decides which coercion
// rule converts command-line tokens into values.
type Kind int

const (
	KindUnsupported Kind = iota
	KindBoolean
	KindNumeric
	KindStringLike
	KindFactory
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindNumeric:
		return "numeric"
	case KindStringLike:
		return "string-like"
	case KindFactory:
		return "factory"
	case KindEnum:
		return "enum"
	default:
		return "unsupported"
	}
}

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	stringerType        = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// Constructor builds a string-constructible value that has no
// UnmarshalText method of its own.
type constructor func(token string) (any, error)

var _constructors = map[reflect.Type]constructor{
	DurationType: func(token string) (any, error) {
		return time.ParseDuration(token)
	},
	URLType: func(token string) (any, error) {
		u, err := url.Parse(token)
		if err != nil {
			return nil, err
		}
		return *u, nil
	},
	URLPtrType: func(token string) (any, error) {
		return url.Parse(token)
	},
}

// classify returns the kind of a scalar option type. Slices are not
// handled here; a list option is classified by its element type.
func classify(typ reflect.Type) Kind {
	if _, ok := lookupFactory(typ); ok {
		return KindFactory
	}
	if _, ok := _constructors[typ]; ok {
		return KindStringLike
	}
	// An interface field has no concrete type to produce values of
	if typ.Kind() == reflect.Interface {
		return KindUnsupported
	}

	if typ.Kind() == reflect.Ptr {
		elem := typ.Elem()
		if elem.Kind() == reflect.Ptr || elem.Kind() == reflect.Interface {
			return KindUnsupported
		}
		if isEnumType(elem) {
			return KindEnum
		}
		if typ.Implements(textUnmarshalerType) {
			return KindStringLike
		}
		return classifyBase(elem)
	}

	if isEnumType(typ) {
		return KindEnum
	}
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		return KindStringLike
	}
	return classifyBase(typ)
}

// classifyBase handles the builtin kinds and the wrapper types built on them.
func classifyBase(typ reflect.Type) Kind {
	if _, ok := lookupFactory(typ); ok {
		return KindFactory
	}
	if _, ok := _constructors[typ]; ok {
		return KindStringLike
	}

	switch typ.Kind() {
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindNumeric
	case reflect.String:
		return KindStringLike
	default:
		return KindUnsupported
	}
}

///////////////////////////////////////////////////////////////////////////////
// Coercion
///////////////////////////////////////////////////////////////////////////////

// coerce converts a single token into a value assignable to typ.
//
// Currently supports:
//   - bool and *bool: "true"/"t" and "false"/"f", any case
//   - signed, unsigned and floating point numbers (and pointers to them);
//     integers accept 0x/0o/0b prefixes and a leading sign
//   - strings and anything implementing encoding.TextUnmarshaler
//     (uuid.UUID, time.Time, net.IP, ...), time.Duration and url.URL
//   - types with a registered Factory (Path, *regexp.Regexp, gjson.Result)
//   - types implementing Enum
func coerce(kind Kind, typ reflect.Type, token string) (reflect.Value, error) {
	var (
		value reflect.Value
		err   error
	)

	switch kind {
	case KindBoolean:
		value, err = withPointer(typ, token, coerceBool)
	case KindNumeric:
		value, err = withPointer(typ, token, coerceNumber)
	case KindStringLike:
		value, err = coerceStringLike(typ, token)
	case KindFactory:
		// *regexp.Regexp is registered as a pointer; *Path is not
		if _, ok := lookupFactory(typ); ok {
			value, err = invokeFactory(typ, token)
		} else {
			value, err = withPointer(typ, token, invokeFactory)
		}
	case KindEnum:
		value, err = withPointer(typ, token, lookupEnum)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
	}

	if err != nil {
		return reflect.Value{}, &CoercionError{TypeName: typeShortName(typ), Token: token, Err: err}
	}
	return value, nil
}

// withPointer applies fn to the element type when typ is a pointer and
// returns a pointer to the result.
func withPointer(
	typ reflect.Type, token string,
	fn func(reflect.Type, string) (reflect.Value, error),
) (reflect.Value, error) {

	if typ.Kind() != reflect.Ptr {
		return fn(typ, token)
	}

	elem, err := fn(typ.Elem(), token)
	if err != nil {
		return reflect.Value{}, err
	}
	ptr := reflect.New(typ.Elem())
	ptr.Elem().Set(elem)
	return ptr, nil
}

func coerceBool(typ reflect.Type, token string) (reflect.Value, error) {
	var b bool
	switch strings.ToLower(token) {
	case "true", "t":
		b = true
	case "false", "f":
		b = false
	default:
		return reflect.Value{}, errors.New("not a boolean")
	}

	value := reflect.New(typ).Elem()
	value.SetBool(b)
	return value, nil
}

// coerceNumber decodes numeric literals with range checking against the
// target's bit size.
func coerceNumber(typ reflect.Type, token string) (reflect.Value, error) {
	// strconv accepts Go digit separators; command-line numbers do not
	if strings.Contains(token, "_") {
		return reflect.Value{}, fmt.Errorf("%w: %q", strconv.ErrSyntax, token)
	}

	value := reflect.New(typ).Elem()

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(token, 0, typ.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(strings.TrimPrefix(token, "+"), 0, typ.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(token, typ.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetFloat(f)
	default:
		return reflect.Value{}, fmt.Errorf("%s is not numeric", typ)
	}

	return value, nil
}

// coerceStringLike invokes the string constructor equivalent of typ.
func coerceStringLike(typ reflect.Type, token string) (reflect.Value, error) {
	if construct, ok := _constructors[typ]; ok {
		return constructed(typ, construct, token)
	}

	// Check for TextUnmarshaler on the pointer first, then on the value
	if typ.Kind() == reflect.Ptr && typ.Implements(textUnmarshalerType) {
		ptr := reflect.New(typ.Elem())
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(token)); err != nil {
			return reflect.Value{}, err
		}
		return ptr, nil
	}
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		ptr := reflect.New(typ)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(token)); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}

	return withPointer(typ, token, func(base reflect.Type, token string) (reflect.Value, error) {
		if construct, ok := _constructors[base]; ok {
			return constructed(base, construct, token)
		}
		if base.Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("%s is not constructible from a string", base)
		}
		value := reflect.New(base).Elem()
		value.SetString(token)
		return value, nil
	})
}

func constructed(typ reflect.Type, construct constructor, token string) (reflect.Value, error) {
	produced, err := construct(token)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(produced).Convert(typ), nil
}

///////////////////////////////////////////////////////////////////////////////
// Type Names and Rendering
///////////////////////////////////////////////////////////////////////////////

// typeShortName returns the name of typ as shown in messages and usage:
// usually the lower-cased type name, with special cases for paths, regular
// expressions, JSON values and enums.
func typeShortName(typ reflect.Type) string {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	switch {
	case typ == PathType:
		return "filename"
	case typ == RegexpType.Elem():
		return "regex"
	case typ == JSONType:
		return "json"
	case isEnumType(typ):
		return "enum"
	default:
		return strings.ToLower(typ.Name())
	}
}

// formatValue renders a bound value the way it would be written on the
// command line. The boolean is false for nil pointers.
func formatValue(value reflect.Value) (string, bool) {
	if !value.IsValid() {
		return "", false
	}
	if (value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface) && value.IsNil() {
		return "", false
	}
	if value.Type() == JSONType {
		return value.Interface().(gjson.Result).Raw, true
	}

	if s, ok := marshalText(value); ok {
		return s, true
	}
	if value.Kind() == reflect.Ptr {
		return formatValue(value.Elem())
	}

	// Methods declared on the pointer receiver (url.URL.String)
	ptr := reflect.New(value.Type())
	ptr.Elem().Set(value)
	if s, ok := marshalText(ptr); ok {
		return s, true
	}

	return fmt.Sprint(value.Interface()), true
}

func marshalText(value reflect.Value) (string, bool) {
	if value.Type().Implements(textMarshalerType) {
		if text, err := value.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			return string(text), true
		}
	}
	if value.Type().Implements(stringerType) {
		return value.Interface().(fmt.Stringer).String(), true
	}
	return "", false
}

// formatList renders a list value as "[a, b, c]".
func formatList(value reflect.Value) string {
	parts := make([]string, 0, value.Len())
	for i := 0; i < value.Len(); i++ {
		s, ok := formatValue(value.Index(i))
		if !ok {
			s = "<nil>"
		}
		parts = append(parts, s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
