package options

import (
	"strings"
	"unicode"
)

// Tokenize splits a command line into arguments, the way a shell would for
// simple input. Whitespace separates arguments except inside a span quoted
// with ' or ". The quote characters are kept in the argument:
//
//	Tokenize(`--name='Jane Doe' -v`) == []string{"--name='Jane Doe'", "-v"}
//
// An unterminated quote extends to the end of the line and is closed there.
func Tokenize(line string) []string {
	line = strings.TrimSpace(line)
	runes := []rune(line)

	var (
		args []string
		arg  strings.Builder
	)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'' || r == '"':
			arg.WriteRune(r)
			for i++; i < len(runes) && runes[i] != r; i++ {
				arg.WriteRune(runes[i])
			}
			arg.WriteRune(r)
		case unicode.IsSpace(r):
			args = append(args, arg.String())
			arg.Reset()
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
		default:
			arg.WriteRune(r)
		}
	}

	if arg.Len() > 0 {
		args = append(args, arg.String())
	}
	return args
}
