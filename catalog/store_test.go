package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cat, err := Build([]byte(`
Example:
  - urls: ["example.com", "example.{}"]
    params: ["q"]
    backlink: "search?q={k}"
Other:
  - urls: ["other.org"]
    params: ["query"]
    charsets: ["windows-1251", "utf-8"]
`))
	require.NoError(t, err)

	store, err := NewStore(cat)
	require.NoError(t, err)
	return store
}

func TestNewStoreRequiresCatalog(t *testing.T) {
	_, err := NewStore(nil)
	assert.ErrorIs(t, err, ErrCatalogRequired)
}

func TestStoreLookups(t *testing.T) {
	store := newTestStore(t)

	t.Run("definition for known pattern", func(t *testing.T) {
		def, ok := store.DefinitionFor("example.com")
		require.True(t, ok)
		assert.Equal(t, "Example", def.Name)
	})

	t.Run("definition for unknown pattern", func(t *testing.T) {
		_, ok := store.DefinitionFor("unknown.example.net")
		assert.False(t, ok)
	})

	t.Run("parameters", func(t *testing.T) {
		rules := store.ParametersFor("other.org")
		require.Len(t, rules, 1)
		assert.Equal(t, "query", rules[0].Name)

		assert.Empty(t, store.ParametersFor("unknown.example.net"))
	})

	t.Run("backlink pattern", func(t *testing.T) {
		pattern, ok := store.BacklinkPatternFor("example.com")
		require.True(t, ok)
		assert.Equal(t, "search?q={k}", pattern)

		_, ok = store.BacklinkPatternFor("other.org")
		assert.False(t, ok)
	})

	t.Run("charsets", func(t *testing.T) {
		assert.Equal(t, []string{"windows-1251", "utf-8"}, store.CharsetsFor("other.org"))
		assert.Empty(t, store.CharsetsFor("example.com"))
	})
}

func TestStoreURLForName(t *testing.T) {
	store := newTestStore(t)

	// First pattern listed for the engine wins.
	pattern, ok := store.URLForName("Example")
	require.True(t, ok)
	assert.Equal(t, "example.com", pattern)

	// Repeated lookups hit the cached index and stay consistent.
	again, ok := store.URLForName("Example")
	require.True(t, ok)
	assert.Equal(t, pattern, again)

	_, ok = store.URLForName("No Such Engine")
	assert.False(t, ok)
}
