package options

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ParseConfig controls how a Parser reads the command line. The zero value
// gives the conventional behavior: "--long" names, options anywhere on the
// line, one value per list occurrence, and '-' as the displayed word
// separator.
type ParseConfig struct {
	// UseSingleDash makes long names take a single dash: -long instead
	// of --long.
	UseSingleDash bool
	// StopAtFirstNonOption treats every argument after the first
	// non-option as a non-option too.
	StopAtFirstNonOption bool
	// SpaceSeparatedLists splits list option values on whitespace, so
	// --lib="a b" adds two elements.
	SpaceSeparatedLists bool
	// UseUnderscores displays long names with '_' between words. Input
	// accepts both separators regardless.
	UseUnderscores bool

	Logger *slog.Logger   // Debug tracing of assignments; nil discards
	Output io.Writer      // Where ParseOrExit reports; defaults to os.Stderr
	Exit   func(code int) // Called by ParseOrExit; defaults to os.Exit
}

// Parser applies command lines to the variables of a Registry.
//
// A Parser keeps per-session state (the record of options seen so far) and
// writes to the bound variables, so it must not be used by more than one
// goroutine at a time. Several parsers may share a Registry, but parsers
// sharing bound variables must be serialized by the caller.
type Parser struct {
	reg    *Registry
	cfg    ParseConfig
	logger *slog.Logger

	optionsString string
	hasListOption bool
}

// NewParser creates a parser for the options of reg.
func NewParser(reg *Registry, cfg ParseConfig) *Parser {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Parser{
		reg:    reg,
		cfg:    cfg,
		logger: logger,
	}
}

// Registry returns the registry the parser reads options from.
func (p *Parser) Registry() *Registry {
	return p.reg
}

// Parse sets option variables from args and returns the non-option
// arguments in their original order.
//
// An argument starting with '-' is an option, written as "name=value" or as
// "name" followed by the value in the next argument. Boolean options may
// omit the value, which then means true. "--" ends option processing; it is
// dropped and every later argument is a non-option. Within one argument,
// ",-" separates several options: "-a=1,-b" is "-a=1" followed by "-b".
//
// Parsing stops at the first bad argument and returns an *ArgError.
// Assignments made before that point are kept.
func (p *Parser) Parse(args []string) ([]string, error) {
	nonOptions := make([]string, 0, len(args))

	// Set once "--" (or, with StopAtFirstNonOption, a non-option) is seen.
	ignoreOptions := false

	var tail string
	for i := 0; i < len(args); {
		arg := args[i]
		if tail != "" {
			arg, tail = tail, ""
		}

		switch {
		case arg == OptionsTerminator:
			ignoreOptions = true

		case strings.HasPrefix(arg, ShortPrefix) && !ignoreOptions:
			if pos := strings.Index(arg, CommaDashSplit); pos > 0 {
				arg, tail = arg[:pos], arg[pos+1:]
			}

			name, value, hasValue := strings.Cut(arg, ValueDelimiter)
			d, ok := p.reg.lookup(name, p.cfg.UseSingleDash)
			if !ok {
				return nil, &ArgError{Err: ErrUnknownOption, Option: name, Arg: arg}
			}

			if d.ArgumentRequired() && !hasValue {
				i++
				if i >= len(args) {
					return nil, &ArgError{Err: ErrMissingArgument, Option: name, Arg: arg}
				}
				value, hasValue = args[i], true
			}

			if err := p.setArg(d, name, arg, value, hasValue); err != nil {
				return nil, err
			}

		default:
			if p.cfg.StopAtFirstNonOption {
				ignoreOptions = true
			}
			nonOptions = append(nonOptions, arg)
		}

		if tail == "" {
			i++
		}
	}

	return nonOptions, nil
}

// ParseLine tokenizes line and parses the result.
func (p *Parser) ParseLine(line string) ([]string, error) {
	return p.Parse(Tokenize(line))
}

// ParseOrExit parses args and returns the non-option arguments. On failure
// it reports the error followed by message, or by the usage text when
// message is empty, and exits with status 1.
func (p *Parser) ParseOrExit(args []string, message string) []string {
	nonOptions, err := p.Parse(args)
	if err == nil {
		return nonOptions
	}

	out := p.cfg.Output
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintln(out, color.RedString(err.Error()))
	if message != "" {
		fmt.Fprintln(out, message)
	} else {
		p.PrintUsage(out)
	}

	exit := p.cfg.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(1)
	return nil
}

// OptionsString returns the options set so far by this parser, as a
// command line: name=value pairs separated by spaces, values quoted when
// they contain spaces.
func (p *Parser) OptionsString() string {
	return p.optionsString
}

// setArg converts value and stores it in the option's variable. name is
// the option as written and arg the argument it came from.
func (p *Parser) setArg(d *Descriptor, name, arg, value string, hasValue bool) error {
	p.record(name, value, hasValue)

	if !hasValue {
		value = ImpliedBoolValue
	}

	p.logger.Debug("setting option",
		"option", name,
		"field", d.field,
		"value", value,
	)

	if !d.list {
		v, err := coerce(d.kind, d.typ, value)
		if err != nil {
			return &ArgError{Err: ErrInvalidValue, Option: name, Arg: arg, Value: value, Cause: err}
		}
		d.set(v)
		return nil
	}

	elements := []string{value}
	if p.cfg.SpaceSeparatedLists {
		elements = strings.Fields(value)
	}
	for _, element := range elements {
		v, err := coerce(d.kind, d.typ, element)
		if err != nil {
			return &ArgError{Err: ErrInvalidValue, Option: name, Arg: arg, Value: element, Cause: err}
		}
		d.add(v)
	}
	return nil
}

// record appends one assignment to the options string.
func (p *Parser) record(name, value string, hasValue bool) {
	var b strings.Builder
	b.WriteString(p.optionsString)
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(name)

	if hasValue {
		b.WriteString(ValueDelimiter)
		switch {
		case !strings.Contains(value, " "):
			b.WriteString(value)
		case !strings.Contains(value, "'"):
			b.WriteString("'" + value + "'")
		case !strings.Contains(value, `"`):
			b.WriteString(`"` + value + `"`)
		default:
			b.WriteString(strconv.Quote(value))
		}
	}

	p.optionsString = b.String()
}
