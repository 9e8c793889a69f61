package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	data := []byte(`
Example:
  - urls: ["example.com", "example.{}"]
    params: ["q"]
    backlink: "search?q={k}"
  - urls: ["images.example.com"]
    params: ["q"]
Other:
  - urls: ["other.org"]
    params: ["query"]
    charsets: ["windows-1251", "utf-8"]
`)

	doc, err := ParseDocument(data)
	require.NoError(t, err)
	require.Len(t, doc, 2)

	// Document order is preserved.
	assert.Equal(t, "Example", doc[0].Name)
	assert.Equal(t, "Other", doc[1].Name)

	require.Len(t, doc[0].Blocks, 2)
	assert.Equal(t, []string{"example.com", "example.{}"}, doc[0].Blocks[0].URLs)
	assert.Equal(t, "search?q={k}", doc[0].Blocks[0].Backlink)
	assert.Equal(t, []string{"windows-1251", "utf-8"}, doc[1].Blocks[0].Charsets)
}

func TestParseDocumentMissingURLs(t *testing.T) {
	data := []byte(`
Example:
  - params: ["q"]
`)
	_, err := ParseDocument(data)
	assert.ErrorIs(t, err, ErrMissingURLs)
}

func TestParseDocumentMalformed(t *testing.T) {
	t.Run("top level not a mapping", func(t *testing.T) {
		_, err := ParseDocument([]byte("- one\n- two\n"))
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})

	t.Run("engine not a sequence", func(t *testing.T) {
		_, err := ParseDocument([]byte("Example:\n  urls: [example.com]\n"))
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseDocument([]byte("Example: [\n"))
		assert.Error(t, err)
	})
}

func TestParseDocumentEmpty(t *testing.T) {
	doc, err := ParseDocument(nil)
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestDefaultDefinitionsParse(t *testing.T) {
	doc, err := ParseDocument(DefaultDefinitions)
	require.NoError(t, err)
	require.NotEmpty(t, doc)

	names := make(map[string]bool, len(doc))
	for _, engine := range doc {
		names[engine.Name] = true
	}

	// Engines the matcher's fixed special cases depend on.
	assert.True(t, names["Google Custom Search"])
	assert.True(t, names["InfoSpace"])
	assert.True(t, names["Yahoo!"])
	assert.True(t, names["Yahoo! Images"])
}
