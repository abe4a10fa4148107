// Package options binds program variables to command-line arguments.
//
// Options are declared with struct tags on exported fields. The field name
// gives the long option name, the field type decides how argument values
// are converted, and the tag gives an optional one-letter short name and
// the description shown in usage messages:
//
//	type Config struct {
//	    Verbose     bool          `option:"-v Print progress information"`
//	    Temperature float64       `option:"-t <celsius> Target temperature" alias:"-temp"`
//	    Timeout     time.Duration `option:"How long to wait for a reply"`
//	    Libs        []string      `option:"-l <dir> Library directory"`
//	}
//
//	cfg := Config{Timeout: 5 * time.Second}
//	reg, err := options.NewRegistry(options.RegistryOpts{Synopsis: "prog [options] files..."}, &cfg)
//	if err != nil {
//	    // the declarations are inconsistent
//	}
//	files := options.NewParser(reg, options.ParseConfig{}).ParseOrExit(os.Args[1:], "")
//
// The field names above give the options --verbose, --temperature, --timeout
// and --libs. Multi-word names such as PrintVersion become --print-version;
// on input '-' and '_' between words are interchangeable.
//
// Supported field types are:
//   - bool, whose value may be omitted on the command line (meaning true)
//   - all integer and floating point types
//   - string, and any type implementing encoding.TextUnmarshaler, such as
//     uuid.UUID, time.Time and net.IP
//   - time.Duration and url.URL
//   - Path, *regexp.Regexp and gjson.Result, through registered factories
//     (see RegisterFactory)
//   - types implementing Enum
//   - pointers to any of the above, which stay nil until set
//   - slices of any of the above, which collect one element per occurrence
//
// The current value of a field when the registry is built is its default,
// shown in usage messages.
//
// Besides `option`, a field may carry:
//   - `alias:"-x,--other-name"`: further names, written with their dashes
//   - `group:"Name[,unpublicized]"`: starts a new group of options; once
//     the first option starts a group, every option belongs to one
//   - `unpublicized:""`: leaves the option out of usage messages
//   - `nodocdefault:""`: leaves the default out of usage messages
//
// Variables that do not live in a struct are declared with Bindings.
package options
