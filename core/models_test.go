package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParamRule(t *testing.T) {
	t.Run("literal parameter name", func(t *testing.T) {
		rule, err := ParseParamRule("q")
		require.NoError(t, err)
		assert.False(t, rule.IsPattern())
		assert.Equal(t, "q", rule.Name)
		assert.Equal(t, "q", rule.Source())
	})

	t.Run("slash-delimited pattern", func(t *testing.T) {
		rule, err := ParseParamRule(`/\?q=([^&#]+)/`)
		require.NoError(t, err)
		require.True(t, rule.IsPattern())

		m := rule.Pattern.FindStringSubmatch("http://search.example.com/web?q=cats&page=2")
		require.Len(t, m, 2)
		assert.Equal(t, "cats", m[1])
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := ParseParamRule(`/q=([unclosed/`)
		assert.ErrorIs(t, err, ErrInvalidParamRule)
	})

	t.Run("single slash is a literal", func(t *testing.T) {
		rule, err := ParseParamRule("/")
		require.NoError(t, err)
		assert.False(t, rule.IsPattern())
	})
}

func TestCatalogLastWriteWins(t *testing.T) {
	cat := NewCatalog([]CatalogEntry{
		{Pattern: "search.example.com", Definition: Definition{Name: "Example"}},
		{Pattern: "other.example.org", Definition: Definition{Name: "Other"}},
		{Pattern: "search.example.com", Definition: Definition{Name: "Example Video"}},
	}, 0)

	require.Equal(t, 2, cat.Len())

	def, ok := cat.Get("search.example.com")
	require.True(t, ok)
	assert.Equal(t, "Example Video", def.Name)

	// Overwriting keeps the pattern's original position.
	entries := cat.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "search.example.com", entries[0].Pattern)
	assert.Equal(t, "other.example.org", entries[1].Pattern)
}

func TestNameIndexFirstPatternWins(t *testing.T) {
	cat := NewCatalog([]CatalogEntry{
		{Pattern: "google.com", Definition: Definition{Name: "Google"}},
		{Pattern: "google.{}", Definition: Definition{Name: "Google"}},
		{Pattern: "duckduckgo.com", Definition: Definition{Name: "DuckDuckGo"}},
	}, 0)

	idx := cat.NameIndex()
	assert.Equal(t, "google.com", idx["Google"])
	assert.Equal(t, "duckduckgo.com", idx["DuckDuckGo"])

	_, ok := idx["Bing"]
	assert.False(t, ok)
}

func TestCatalogIsolation(t *testing.T) {
	def := Definition{Name: "Example", Params: []ParamRule{LiteralParam("q")}}
	cat := NewCatalog([]CatalogEntry{{Pattern: "example.com", Definition: def}}, 0)

	// Mutating the source definition must not leak into the catalog.
	def.Params[0] = LiteralParam("changed")
	got, ok := cat.Get("example.com")
	require.True(t, ok)
	assert.Equal(t, "q", got.Params[0].Name)
}

func TestMatchLabel(t *testing.T) {
	m := &Match{Engine: "Google", Keyword: "web analytics"}
	assert.Equal(t, "web analytics", m.Label())

	hidden := &Match{Engine: "Google Images", NoKeyword: true}
	assert.Equal(t, KeywordNotDefined, hidden.Label())
}

func TestFingerprintOf(t *testing.T) {
	a := FingerprintOf([]byte("Google:\n  - urls: [google.com]\n"))
	b := FingerprintOf([]byte("Google:\n  - urls: [google.com]\n"))
	c := FingerprintOf([]byte("Google:\n  - urls: [google.fr]\n"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
