package options

import (
	"net/url"
	"reflect"
	"regexp"
	"time"

	"github.com/tidwall/gjson"
)

// constants for the struct tags read from option fields
const (
	OptionTag       = "option"
	AliasTag        = "alias"
	GroupTag        = "group"
	UnpublicizedTag = "unpublicized"
	NoDocDefaultTag = "nodocdefault"
)

// constants for the option tag sub-grammar
const (
	ShortNamePrefix      = '-'
	TypeLabelOpen        = '<'
	TypeLabelClose       = '>'
	AliasDelimiter       = ","
	GroupModifierDelim   = ","
	UnpublicizedModifier = "unpublicized"
)

// constants for command-line syntax
const (
	LongPrefix        = "--"
	ShortPrefix       = "-"
	OptionsTerminator = "--"
	ValueDelimiter    = "="
	CommaDashSplit    = ",-"
	ImpliedBoolValue  = "true"
	WordSeparator     = '_'
	DisplaySeparator  = '-'
)

// ListHelp is appended to usage output when any listed option accepts
// repeated occurrences.
const ListHelp = "[+] means option can be specified multiple times"

// reflect.TypeOf constants for type checks
var (
	DurationType      = reflect.TypeOf(time.Duration(0))
	URLType           = reflect.TypeOf(url.URL{})
	URLPtrType        = reflect.TypeOf((*url.URL)(nil))
	PathType          = reflect.TypeOf(Path(""))
	RegexpType        = reflect.TypeOf((*regexp.Regexp)(nil))
	JSONType          = reflect.TypeOf(gjson.Result{})
	EnumInterfaceType = reflect.TypeOf((*Enum)(nil)).Elem()
)
