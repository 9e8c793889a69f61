package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDecodesLegacyCharsets(t *testing.T) {
	c := defaultClassifier(t)

	t.Run("gb2312 keyword", func(t *testing.T) {
		// %D6%D0%B9%FA is GB2312 for 中国.
		m, ok := c.Classify("http://www.baidu.com/s?wd=%D6%D0%B9%FA")
		require.True(t, ok)
		assert.Equal(t, "Baidu", m.Engine)
		assert.Equal(t, "中国", m.Keyword)
	})

	t.Run("windows-1251 keyword", func(t *testing.T) {
		// %EF%F0%E8%E2%E5%F2 is windows-1251 for привет.
		m, ok := c.Classify("http://yandex.ru/yandsearch?text=%EF%F0%E8%E2%E5%F2")
		require.True(t, ok)
		assert.Equal(t, "Yandex", m.Engine)
		assert.Equal(t, "привет", m.Keyword)
	})

	t.Run("utf-8 keyword on a multi-charset engine", func(t *testing.T) {
		m, ok := c.Classify("http://www.baidu.com/s?wd=%E4%B8%AD%E5%9B%BD")
		require.True(t, ok)
		assert.Equal(t, "中国", m.Keyword)
	})
}

func TestDecodeKeywordUnknownCharset(t *testing.T) {
	c := testClassifier(t, []byte(`
Example:
  - urls: ["search.example.com"]
    params: ["q"]
    charsets: ["x-no-such-charset"]
`))

	// An unresolvable charset keeps the keyword bytes untouched.
	m, ok := c.Classify("http://search.example.com/?q=plain")
	require.True(t, ok)
	assert.Equal(t, "plain", m.Keyword)
}

func TestHeuristicDetector(t *testing.T) {
	d := heuristicDetector{}

	cs, ok := d.Detect([]byte("plain ascii"), []string{"gb2312", "utf-8"})
	assert.True(t, ok)
	assert.Equal(t, "utf-8", cs)

	cs, ok = d.Detect([]byte{0xd6, 0xd0}, []string{"gb2312", "utf-8"})
	assert.True(t, ok)
	assert.Equal(t, "gb2312", cs)

	_, ok = d.Detect([]byte("ascii"), []string{"gb2312"})
	assert.False(t, ok)
}

func TestLowerUTF8(t *testing.T) {
	assert.Equal(t, "österreich", lowerUTF8("ÖSTERREICH"))
	assert.Equal(t, "query test!", lowerUTF8("QUErY test!"))
	assert.Equal(t, "привет", lowerUTF8("ПРИВЕТ"))
}
