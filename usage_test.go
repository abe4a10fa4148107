package options

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynopsis(t *testing.T) {
	aliases, err := NewRegistry(RegistryOpts{}, newAliasOptions())
	require.NoError(t, err)
	basic, err := NewRegistry(RegistryOpts{}, newBasicOptions())
	require.NoError(t, err)

	find := func(reg *Registry, name string) *Descriptor {
		for _, d := range reg.Options() {
			if d.LongName() == name {
				return d
			}
		}
		t.Fatalf("no option %s", name)
		return nil
	}

	tests := []struct {
		name     string
		reg      *Registry
		cfg      ParseConfig
		option   string
		expected string
	}{
		{"ShortAndLong", aliases, ParseConfig{}, "day", "-d --day=<string>"},
		{"LongOnly", aliases, ParseConfig{}, "print_version", "--print-version=<bool>"},
		{"Underscores", aliases, ParseConfig{UseUnderscores: true}, "print_version", "--print_version=<bool>"},
		{"SingleDash", aliases, ParseConfig{UseSingleDash: true}, "print_version", "-print-version=<bool>"},
		{"TypeLabel", basic, ParseConfig{}, "arg1", "-a --arg1=<filename>"},
		{"List", basic, ParseConfig{}, "libs", "-l --libs=<dir> [+]"},
		{"Pointer", basic, ParseConfig{}, "integer_reference", "-i --integer-reference=<int>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(tt.reg, tt.cfg)
			assert.Equal(t, tt.expected, p.Synopsis(find(tt.reg, tt.option)))
		})
	}
}

func TestUsage(t *testing.T) {
	t.Run("WithoutGroups", func(t *testing.T) {
		p := newParser(t, ParseConfig{}, newAliasOptions())

		usage, err := p.Usage(false)
		require.NoError(t, err)
		assert.Equal(t, ""+
			"  -d --day=<string>          - Set the day [default Friday]\n"+
			"  -t --temperature=<float64> - Set the temperature [default 42]\n"+
			"  --print-version=<bool>     - Print the program version [default false]",
			usage)

		_, err = p.Usage(false, "General options")
		assert.ErrorIs(t, err, ErrNoGroups)
	})

	t.Run("Groups", func(t *testing.T) {
		p := newParser(t, ParseConfig{}, &groupedOptions{Mu: 4902.7, Pi: 3.14})

		usage, err := p.Usage(false)
		require.NoError(t, err)
		assert.Equal(t, "\n"+
			"General options:\n"+
			"  -h --help=<bool> - Display help message [default false]\n"+
			"\n"+
			"Display options:\n"+
			"  --color=<bool>   - Use colors [default false]",
			usage)
		assert.NotContains(t, usage, "Internal options")

		internal, err := p.Usage(false, "Internal options")
		require.NoError(t, err)
		assert.Contains(t, internal, "Set mu [default 4902.7]")
		assert.NotContains(t, internal, "Set pi")

		all, err := p.Usage(true)
		require.NoError(t, err)
		assert.Contains(t, all, "Internal options:")
		assert.Contains(t, all, "Set pi [default 3.14]")
	})

	t.Run("GroupWithOnlyUnpublicizedOptions", func(t *testing.T) {
		p := newParser(t, ParseConfig{}, &hiddenMembersOptions{})

		usage, err := p.Usage(false)
		require.NoError(t, err)
		assert.NotContains(t, usage, "Internal options")

		usage, err = p.Usage(true)
		require.NoError(t, err)
		assert.Contains(t, usage, "Internal options")

		_, err = p.Usage(false, "Internal options")
		assert.ErrorIs(t, err, ErrGroupNotPublicized)

		_, err = p.Usage(true, "Internal options")
		assert.NoError(t, err)
	})

	t.Run("UnknownGroup", func(t *testing.T) {
		p := newParser(t, ParseConfig{}, &groupedOptions{})
		_, err := p.Usage(false, "Bogus options")
		assert.ErrorIs(t, err, ErrUnknownGroup)
	})

	t.Run("NoDocDefault", func(t *testing.T) {
		type options struct {
			Token string `option:"API token" nodocdefault:""`
			Port  int    `option:"Listen port"`
		}
		p := newParser(t, ParseConfig{}, &options{Token: "s3cr3t", Port: 8080})

		usage, err := p.Usage(false)
		require.NoError(t, err)
		assert.NotContains(t, usage, "s3cr3t")
		assert.Contains(t, usage, "Listen port [default 8080]")
	})

	t.Run("UnpublicizedOption", func(t *testing.T) {
		type options struct {
			Verbose bool `option:"-v Be verbose"`
			Trace   bool `option:"Trace internals" unpublicized:""`
		}
		p := newParser(t, ParseConfig{}, &options{})

		usage, err := p.Usage(false)
		require.NoError(t, err)
		assert.NotContains(t, usage, "--trace")

		usage, err = p.Usage(true)
		require.NoError(t, err)
		assert.Contains(t, usage, "--trace")
	})
}

func TestPrintUsage(t *testing.T) {
	t.Run("NoLists", func(t *testing.T) {
		var buf bytes.Buffer
		p := newParser(t, ParseConfig{}, newAliasOptions())
		p.PrintUsage(&buf)

		assert.Equal(t, "Usage: test\n"+
			"  -d --day=<string>          - Set the day [default Friday]\n"+
			"  -t --temperature=<float64> - Set the temperature [default 42]\n"+
			"  --print-version=<bool>     - Print the program version [default false]\n",
			buf.String())
	})

	t.Run("ListFooter", func(t *testing.T) {
		var buf bytes.Buffer
		p := newParser(t, ParseConfig{}, newBasicOptions())
		p.PrintUsage(&buf)

		assert.Contains(t, buf.String(), "-l --libs=<dir> [+]")
		assert.Contains(t, buf.String(), "[default [/usr/lib]]")
		assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n\n"+ListHelp+"\n")))
	})

	t.Run("NoSynopsis", func(t *testing.T) {
		var buf bytes.Buffer
		reg, err := NewRegistry(RegistryOpts{}, newAliasOptions())
		require.NoError(t, err)
		NewParser(reg, ParseConfig{}).PrintUsage(&buf)

		assert.NotContains(t, buf.String(), "Usage:")
	})
}

func TestSettings(t *testing.T) {
	opts := newAliasOptions()
	p := newParser(t, ParseConfig{}, opts)

	assert.Equal(t, ""+
		"day                        = Friday\n"+
		"temperature                = 42\n"+
		"print-version              = false",
		p.Settings(false))

	_, err := p.Parse([]string{"-d", "Monday", "-v"})
	require.NoError(t, err)
	assert.Contains(t, p.Settings(false), "day                        = Monday")
	assert.Contains(t, p.Settings(false), "print-version              = true")

	t.Run("UnsetPointer", func(t *testing.T) {
		p := newParser(t, ParseConfig{}, newBasicOptions())
		assert.Contains(t, p.Settings(false), "integer-reference")
		assert.Contains(t, p.Settings(false), "= <nil>")
		assert.Contains(t, p.Settings(false), "= [/usr/lib]")
	})
}
