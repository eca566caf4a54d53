package readability_test

import (
	"testing"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("empty input is an untitled empty page", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"", "  \n\t"} {
			result, err := readability.NewExtractor().Extract(in)
			require.NoError(t, err)
			assert.Equal(t, docmirror.DefaultTitle, result.Title)
			assert.Empty(t, result.ContentHTML)
		}
	})

	t.Run("normalizes the title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Install
	Guide</title></head>
<body><article><p>Run the installer and follow the prompts on screen.</p></article></body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Install Guide", result.Title)
	})

	t.Run("drops page chrome", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article>
<p>This is the main article content that should be preserved in the output.</p>
<p>A second paragraph keeps the article long enough to be scored as content.</p>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "main article content")
		assert.NotContains(t, result.ContentHTML, "Home Nav Link")
		assert.NotContains(t, result.ContentHTML, "Footer copyright text")
	})

	t.Run("keeps tables links and code", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Reference</title></head>
<body>
<article>
<h2>Options</h2>
<p>The following options are supported by the command line tool in every mode.</p>
<table><tr><th>Flag</th><th>Meaning</th></tr><tr><td>--delay</td><td>politeness delay</td></tr></table>
<p>See the <a href="https://example.com/guide/">guide</a> for a walkthrough of each option.</p>
<pre><code class="language-go">fmt.Println("hi")</code></pre>
</article>
</body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "<table")
		assert.Contains(t, result.ContentHTML, `href="https://example.com/guide/"`)
		assert.Contains(t, result.ContentHTML, "<pre>")
		assert.Contains(t, result.ContentHTML, "fmt.Println")
	})
}
