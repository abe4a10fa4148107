package options

import (
	"errors"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// Construction Errors
///////////////////////////////////////////////////////////////////////////////

// Construction errors are returned by NewRegistry. They describe a broken
// option schema, not bad user input, and no Registry is returned with them.
var (
	ErrNoSources         = errors.New("at least one declaration source is required")
	ErrInvalidSource     = errors.New("declaration source must be a non-nil pointer to a struct or a Bindings list")
	ErrMalformedOption   = errors.New("malformed option description")
	ErrDuplicateName     = errors.New("option name appears twice")
	ErrMissingFirstGroup = errors.New("missing group annotation on the first option field")
	ErrMissingGroup      = errors.New("missing group annotation")
	ErrDuplicateGroup    = errors.New("option group declared twice")
	ErrUnsupportedType   = errors.New("unsupported option type")
	ErrUnexportedField   = errors.New("option field is not exported")
)

///////////////////////////////////////////////////////////////////////////////
// Parse Errors
///////////////////////////////////////////////////////////////////////////////

// Parse errors classify an ArgError. Use errors.Is to test for them.
var (
	ErrUnknownOption   = errors.New("unknown option name")
	ErrMissingArgument = errors.New("option requires an argument")
	ErrInvalidValue    = errors.New("invalid value for option")
)

// ArgError is returned by the Parser when the command line contains an
// unknown option or a misused one.
type ArgError struct {
	Err    error  // ErrUnknownOption, ErrMissingArgument or ErrInvalidValue
	Option string // The option name as written (e.g. "--temperature")
	Arg    string // The full token the name came from (e.g. "--temperature=hot")
	Value  string // The offending value, if any
	Cause  error  // Underlying coercion failure, if any
}

// Error implements the error interface
func (e *ArgError) Error() string {
	switch e.Err {
	case ErrUnknownOption:
		return fmt.Sprintf("unknown option name '%s' in arg '%s'", e.Option, e.Arg)
	case ErrMissingArgument:
		return fmt.Sprintf("option %s requires an argument", e.Arg)
	case ErrInvalidValue:
		var ce *CoercionError
		if errors.As(e.Cause, &ce) {
			return fmt.Sprintf("Value \"%s\" for argument %s is not a valid %s", e.Value, e.Option, ce.TypeName)
		}
		return fmt.Sprintf("Invalid argument (%s) for argument %s", e.Value, e.Option)
	default:
		return fmt.Sprintf("%v: %s", e.Err, e.Arg)
	}
}

// Unwrap exposes both the classifying sentinel and the cause.
func (e *ArgError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// CoercionError is returned by the coercion engine when a token cannot be
// converted into the target type.
type CoercionError struct {
	TypeName string
	Token    string
	Err      error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %q to %s: %v", e.Token, e.TypeName, e.Err)
	}
	return fmt.Sprintf("cannot convert %q to %s", e.Token, e.TypeName)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

///////////////////////////////////////////////////////////////////////////////
// Usage Errors
///////////////////////////////////////////////////////////////////////////////

// Usage errors are returned when usage output is requested for groups that
// cannot be shown.
var (
	ErrNoGroups           = errors.New("registry does not have any option groups defined")
	ErrUnknownGroup       = errors.New("invalid option group")
	ErrGroupNotPublicized = errors.New("group does not contain any publicized options")
)
