package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trafficlens/refsearch/core"
)

func TestBuildFlattensAllURLs(t *testing.T) {
	data := []byte(`
Example:
  - urls: ["example.com", "example.{}"]
    params: ["q"]
  - urls: ["images.example.com"]
    params: ["q"]
Other:
  - urls: ["other.org"]
    params: ["query"]
`)

	cat, err := Build(data)
	require.NoError(t, err)

	// Key set equals the set of all URLs listed across all blocks.
	require.Equal(t, 4, cat.Len())
	for _, pattern := range []string{"example.com", "example.{}", "images.example.com", "other.org"} {
		_, ok := cat.Get(pattern)
		assert.True(t, ok, pattern)
	}

	def, _ := cat.Get("other.org")
	assert.Equal(t, "Other", def.Name)
	assert.Equal(t, "query", def.Params[0].Name)
}

func TestBuildLastWriteWins(t *testing.T) {
	data := []byte(`
Example:
  - urls: ["shared.example.com"]
    params: ["q"]
Later:
  - urls: ["shared.example.com"]
    params: ["p"]
`)

	cat, err := Build(data)
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())

	def, ok := cat.Get("shared.example.com")
	require.True(t, ok)
	assert.Equal(t, "Later", def.Name)
	assert.Equal(t, "p", def.Params[0].Name)
}

func TestBuildCompilesParamRules(t *testing.T) {
	data := []byte(`
Example:
  - urls: ["example.com"]
    params: ["q", '/terms=([^&#]+)/']
`)

	cat, err := Build(data)
	require.NoError(t, err)

	def, _ := cat.Get("example.com")
	require.Len(t, def.Params, 2)
	assert.False(t, def.Params[0].IsPattern())
	assert.True(t, def.Params[1].IsPattern())
}

func TestBuildBadParamRule(t *testing.T) {
	data := []byte(`
Example:
  - urls: ["example.com"]
    params: ['/([unclosed/']
`)

	_, err := Build(data)
	assert.ErrorIs(t, err, core.ErrInvalidParamRule)
}

func TestBuildContributors(t *testing.T) {
	data := []byte(`
Example:
  - urls: ["example.com"]
    params: ["q"]
`)

	t.Run("contributor appends and overrides", func(t *testing.T) {
		cat, err := Build(data, func(b *Builder) error {
			if err := b.Put("extra.example.net", core.Definition{Name: "Extra", Params: []core.ParamRule{core.LiteralParam("s")}}); err != nil {
				return err
			}
			return b.Put("example.com", core.Definition{Name: "Example Override", Params: []core.ParamRule{core.LiteralParam("q")}})
		})
		require.NoError(t, err)
		require.Equal(t, 2, cat.Len())

		def, _ := cat.Get("example.com")
		assert.Equal(t, "Example Override", def.Name)
	})

	t.Run("contributor error aborts the build", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Build(data, func(b *Builder) error { return boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("contributors run in order", func(t *testing.T) {
		cat, err := Build(data,
			func(b *Builder) error {
				return b.Put("example.com", core.Definition{Name: "First"})
			},
			func(b *Builder) error {
				return b.Put("example.com", core.Definition{Name: "Second"})
			},
		)
		require.NoError(t, err)
		def, _ := cat.Get("example.com")
		assert.Equal(t, "Second", def.Name)
	})
}

func TestBuilderFrozenCatalogIsIsolated(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Put("example.com", core.Definition{Name: "Example"}))
	cat := b.Build()

	// Later builder mutations must not show up in the frozen catalog.
	require.NoError(t, b.Put("example.com", core.Definition{Name: "Changed"}))
	require.NoError(t, b.Put("late.example.org", core.Definition{Name: "Late"}))

	def, ok := cat.Get("example.com")
	require.True(t, ok)
	assert.Equal(t, "Example", def.Name)
	assert.Equal(t, 1, cat.Len())
}

func TestBuilderPutValidates(t *testing.T) {
	b := NewBuilder()
	err := b.Put("", core.Definition{Name: "Example"})
	assert.ErrorIs(t, err, core.ErrEmptyPattern)

	err = b.Put("example.com", core.Definition{})
	assert.ErrorIs(t, err, core.ErrEmptyEngineName)
	assert.Equal(t, 0, b.Len())
}

func TestBuildFingerprint(t *testing.T) {
	data := []byte("Example:\n  - urls: [example.com]\n")
	cat, err := Build(data)
	require.NoError(t, err)
	assert.Equal(t, core.FingerprintOf(data), cat.Fingerprint())
}
