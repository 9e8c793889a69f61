package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trafficlens/refsearch/catalog"
	"github.com/trafficlens/refsearch/core"
)

func testClassifier(t *testing.T, document []byte, opts ...Option) *Classifier {
	t.Helper()
	cat, err := catalog.Build(document)
	require.NoError(t, err)
	store, err := catalog.NewStore(cat)
	require.NoError(t, err)
	c, err := NewClassifier(store, opts...)
	require.NoError(t, err)
	return c
}

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	return testClassifier(t, catalog.DefaultDefinitions)
}

func TestNewClassifierRequiresStore(t *testing.T) {
	_, err := NewClassifier(nil)
	assert.ErrorIs(t, err, ErrStoreRequired)
}

func TestClassifySimpleQuery(t *testing.T) {
	c := testClassifier(t, []byte(`
Google:
  - urls: ["www.google.com"]
    params: ["q"]
`))

	m, ok := c.Classify("http://www.google.com/search?q=web+analytics")
	require.True(t, ok)
	assert.Equal(t, "Google", m.Engine)
	assert.Equal(t, "web analytics", m.Keyword)
	assert.False(t, m.NoKeyword)
}

func TestClassifyIdempotent(t *testing.T) {
	c := defaultClassifier(t)
	const ref = "http://www.google.com/search?q=Web+Analytics"

	first, ok1 := c.Classify(ref)
	second, ok2 := c.Classify(ref)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestClassifyNoMatch(t *testing.T) {
	c := defaultClassifier(t)

	t.Run("unknown host", func(t *testing.T) {
		_, ok := c.Classify("http://example.org/")
		assert.False(t, ok)
	})

	t.Run("no host", func(t *testing.T) {
		_, ok := c.Classify("not a url at all")
		assert.False(t, ok)

		_, ok = c.Classify("/relative/path?q=x")
		assert.False(t, ok)
	})

	t.Run("known engine without keyword parameter", func(t *testing.T) {
		_, ok := c.Classify("http://www.google.com/maps/place/berlin")
		assert.False(t, ok)
	})
}

func TestClassifyCaseFolding(t *testing.T) {
	c := defaultClassifier(t)

	m, ok := c.Classify("http://www.google.com/search?q=QUErY+test%21")
	require.True(t, ok)
	assert.Equal(t, "query test!", m.Keyword)
}

func TestClassifyLossyHostFallback(t *testing.T) {
	c := defaultClassifier(t)

	for _, ref := range []string{
		"http://www.google.fr/search?q=cachemire",
		"http://www2.google.co.uk/search?q=cachemire",
		"http://www.google.com.au/search?q=cachemire",
	} {
		m, ok := c.Classify(ref)
		require.True(t, ok, ref)
		assert.Equal(t, "Google", m.Engine, ref)
		assert.Equal(t, "cachemire", m.Keyword, ref)
	}
}

func TestClassifyFragmentQuery(t *testing.T) {
	c := defaultClassifier(t)

	// Some engines put the keyword after the fragment.
	m, ok := c.Classify("http://www.google.com/#q=fragment+keyword")
	require.True(t, ok)
	assert.Equal(t, "Google", m.Engine)
	assert.Equal(t, "fragment keyword", m.Keyword)
}

func TestClassifyGoogleHomePage(t *testing.T) {
	c := defaultClassifier(t)

	for _, ref := range []string{
		"http://www.google.com",
		"http://www.google.com/",
	} {
		m, ok := c.Classify(ref)
		require.True(t, ok, ref)
		assert.Equal(t, "Google", m.Engine)
		assert.True(t, m.NoKeyword, ref)
		assert.Equal(t, core.KeywordNotDefined, m.Label())
	}
}

func TestClassifyNoKeywordEngines(t *testing.T) {
	c := defaultClassifier(t)

	// Sentinel "no keyword" is distinct from "no match".
	m, ok := c.Classify("https://duckduckgo.com/?va=z&t=hc")
	require.True(t, ok)
	assert.Equal(t, "DuckDuckGo", m.Engine)
	assert.True(t, m.NoKeyword)
}

func TestClassifyEmptyParameterValue(t *testing.T) {
	c := testClassifier(t, []byte(`
Example:
  - urls: ["search.example.com"]
    params: ["q"]
`))

	m, ok := c.Classify("http://search.example.com/web?lang=en&q=")
	require.True(t, ok)
	assert.Equal(t, "Example", m.Engine)
	assert.True(t, m.NoKeyword)
}

func TestClassifyParameterOrder(t *testing.T) {
	c := testClassifier(t, []byte(`
Example:
  - urls: ["search.example.com"]
    params: ["p", "q"]
`))

	// First declared parameter wins even when both are present.
	m, ok := c.Classify("http://search.example.com/web?q=second&p=first")
	require.True(t, ok)
	assert.Equal(t, "first", m.Keyword)

	// Empty first parameter does not stop the scan when no override applies.
	m, ok = c.Classify("http://search.example.com/web?q=second")
	require.True(t, ok)
	assert.Equal(t, "second", m.Keyword)
}

func TestClassifyRegexRule(t *testing.T) {
	c := testClassifier(t, []byte(`
Example:
  - urls: ["search.example.com"]
    params: ["missing", '/search/web;terms=([^&;#]+)/']
`))

	m, ok := c.Classify("http://search.example.com/search/web;terms=golang+testing")
	require.True(t, ok)
	assert.Equal(t, "golang testing", m.Keyword)
}

func TestClassifyConcurrent(t *testing.T) {
	c := defaultClassifier(t)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				m, ok := c.Classify("http://www.google.com/search?q=concurrent")
				if !ok || m.Keyword != "concurrent" {
					t.Error("unexpected classification under concurrency")
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
