package options

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOptionTag(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		expected OptionSpec
	}{
		{"DescriptionOnly", "argument 2", OptionSpec{Description: "argument 2"}},
		{"ShortName", "-d double value", OptionSpec{ShortName: "d", Description: "double value"}},
		{"ShortNameAndLabel", "-a <filename> argument 1", OptionSpec{ShortName: "a", TypeName: "filename", Description: "argument 1"}},
		{"LabelOnly", "<celsius> Target temperature", OptionSpec{TypeName: "celsius", Description: "Target temperature"}},
		{"Empty", "", OptionSpec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := decodeOptionTag(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec)
		})
	}

	t.Run("Malformed", func(t *testing.T) {
		for _, tag := range []string{"-x", "-xy", "-xy description", "-- description"} {
			_, err := decodeOptionTag(tag)
			assert.ErrorIs(t, err, ErrMalformedOption, "tag %q", tag)
		}
	})
}

func TestDecodeAliases(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		aliases, err := decodeAliases("-v, -version,--version")
		require.NoError(t, err)
		assert.Equal(t, []string{"-v", "-version", "--version"}, aliases)
	})

	t.Run("MissingDash", func(t *testing.T) {
		_, err := decodeAliases("-v,version")
		assert.ErrorIs(t, err, ErrMalformedOption)
	})

	t.Run("Terminator", func(t *testing.T) {
		_, err := decodeAliases("--")
		assert.ErrorIs(t, err, ErrMalformedOption)
	})
}

func TestDecodeGroupTag(t *testing.T) {
	t.Run("Publicized", func(t *testing.T) {
		spec, err := decodeGroupTag("General options")
		require.NoError(t, err)
		assert.Equal(t, GroupSpec{Name: "General options"}, spec)
	})

	t.Run("Unpublicized", func(t *testing.T) {
		spec, err := decodeGroupTag("Internal options,unpublicized")
		require.NoError(t, err)
		assert.Equal(t, GroupSpec{Name: "Internal options", Unpublicized: true}, spec)
	})

	t.Run("UnknownModifier", func(t *testing.T) {
		_, err := decodeGroupTag("Internal options,hidden")
		assert.ErrorIs(t, err, ErrMalformedOption)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := decodeGroupTag(",unpublicized")
		assert.ErrorIs(t, err, ErrMalformedOption)
	})
}

func TestGetFieldTags(t *testing.T) {
	type tagged struct {
		Help  bool    `option:"-h Display help message" alias:"-help" group:"General options"`
		Mu    float64 `option:"Set mu" unpublicized:"" nodocdefault:""`
		Plain string
	}
	typ := reflect.TypeOf(tagged{})

	t.Run("AllTags", func(t *testing.T) {
		tags, ok, err := GetFieldTags(typ.Field(0))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "-h Display help message", tags.Option)
		assert.Equal(t, []string{"-help"}, tags.Aliases)
		require.NotNil(t, tags.Group)
		assert.Equal(t, "General options", tags.Group.Name)
		assert.False(t, tags.Unpublicized)
	})

	t.Run("Markers", func(t *testing.T) {
		tags, ok, err := GetFieldTags(typ.Field(1))
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, tags.Unpublicized)
		assert.True(t, tags.NoDocDefault)
		assert.Nil(t, tags.Group)
	})

	t.Run("Untagged", func(t *testing.T) {
		_, ok, err := GetFieldTags(typ.Field(2))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
