package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/docmirror/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "atx headings",
			html: `<h1>Guide</h1><h2>Install</h2><h4>Notes</h4>`,
			want: []string{"# Guide", "## Install", "#### Notes"},
		},
		{
			name: "relative links kept as written",
			html: `<p>See <a href="../api/">the API</a> and <a href="https://go.dev/">Go</a>.</p>`,
			want: []string{"[the API](../api/)", "[Go](https://go.dev/)"},
		},
		{
			name: "images kept",
			html: `<p><img src="img/arch.svg" alt="Architecture"></p>`,
			want: []string{"![Architecture](img/arch.svg)"},
		},
		{
			name: "bullet and numbered lists",
			html: `<ul><li>alpha</li><li>beta</li></ul><ol><li>one</li><li>two</li></ol>`,
			want: []string{"- alpha", "- beta", "1. one", "2. two"},
		},
		{
			name: "fenced code keeps language",
			html: "<pre><code class=\"language-yaml\">key: value\n</code></pre>",
			want: []string{"```yaml", "key: value"},
		},
		{
			name: "fenced code without language",
			html: `<pre><code>make test</code></pre>`,
			want: []string{"```", "make test"},
		},
		{
			name: "inline code and emphasis",
			html: `<p>Set <code>--dry-run</code> for a <strong>safe</strong> <em>preview</em>.</p>`,
			want: []string{"`--dry-run`", "**safe**", "*preview*"},
		},
		{
			name: "tables",
			html: `<table><thead><tr><th>Flag</th><th>Default</th></tr></thead>` +
				`<tbody><tr><td>delay</td><td>100ms</td></tr></tbody></table>`,
			want: []string{"Flag", "Default", "delay", "100ms", "|", "---"},
		},
		{
			name: "blockquote",
			html: `<blockquote><p>Deprecated since v2.</p></blockquote>`,
			want: []string{"> Deprecated since v2."},
		},
		{
			name: "unicode unescaped",
			html: `<p>Größe · 設定 · ñ</p>`,
			want: []string{"Größe · 設定 · ñ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md, err := htmltomarkdown.NewConverter().Convert(tt.html)

			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, md, want)
			}
		})
	}
}

func TestConverter_Convert_LongParagraphNotWrapped(t *testing.T) {
	t.Parallel()

	text := strings.TrimSpace(strings.Repeat("crawl mirror ", 50))

	md, err := htmltomarkdown.NewConverter().Convert("<p>" + text + "</p>")

	require.NoError(t, err)
	assert.Contains(t, md, text)
}

func TestConverter_Convert_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, html := range []string{"", "  \n\t"} {
		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Empty(t, md)
	}
}

func TestConverter_Convert_ExtractedPage(t *testing.T) {
	t.Parallel()

	html := `<main>
<h1>Configuration</h1>
<p>docmirror reads <code>DOCMIRROR_*</code> variables.</p>
<h2>Example</h2>
<pre><code class="language-bash">DOCMIRROR_DELAY=250ms docmirror crawl https://docs.example.com/guide/</code></pre>
<table>
<thead><tr><th>Variable</th><th>Meaning</th></tr></thead>
<tbody><tr><td>DOCMIRROR_DB</td><td>History database</td></tr></tbody>
</table>
</main>`

	md, err := htmltomarkdown.NewConverter().Convert(html)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(md), "# Configuration"))
	assert.Contains(t, md, "## Example")
	assert.Contains(t, md, "```bash")
	assert.Contains(t, md, "DOCMIRROR_DELAY=250ms docmirror crawl")
	assert.Contains(t, md, "DOCMIRROR_DB")
	assert.Contains(t, md, "History database")
}
