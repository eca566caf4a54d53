package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements docmirror.Extractor at compile time.
var _ docmirror.Extractor = (*trafilatura.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Getting Started - My Docs</title>
<meta property="og:title" content="Getting Started Guide">
</head>
<body>
<nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
<article>
<h1>Getting Started</h1>
<p>This is important documentation content that should be extracted.</p>
<p>Install the tool, point it at a site and wait for the mirror to finish.</p>
</article>
<footer>Copyright 2024</footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.NotEqual(t, docmirror.DefaultTitle, result.Title)
		assert.Contains(t, result.ContentHTML, "important documentation content")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024")
	})

	t.Run("preserves code blocks", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Code</title></head>
<body>
<article>
<h1>Example</h1>
<p>Here is how you print a greeting from a Go program.</p>
<pre><code>fmt.Println("Hello, World!")</code></pre>
<p>Running it prints the greeting to standard output.</p>
</article>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "fmt.Println")
		// HTML rendering encodes quotes as &#34;
		assert.Contains(t, result.ContentHTML, "Hello, World!")
	})

	t.Run("empty input is an untitled empty page", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(" ")

		require.NoError(t, err)
		assert.Equal(t, docmirror.DefaultTitle, result.Title)
		assert.Empty(t, result.ContentHTML)
	})

	t.Run("falls back to placeholder title", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content</p></body></html>`

		result, err := trafilatura.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple content")
		assert.Equal(t, docmirror.DefaultTitle, result.Title)
	})
}
