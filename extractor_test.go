package docmirror_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/docmirror"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Getting Started", docmirror.NormalizeTitle("  Getting\n\t  Started "))
	})

	t.Run("empty becomes placeholder", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, docmirror.DefaultTitle, docmirror.NormalizeTitle(" \n "))
	})

	t.Run("caps length", func(t *testing.T) {
		t.Parallel()

		got := docmirror.NormalizeTitle(strings.Repeat("a", 300))

		assert.Len(t, got, 255)
	})
}

func TestFormatMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("prepends title when no heading", func(t *testing.T) {
		t.Parallel()

		got := docmirror.FormatMarkdown("Install", "Run the installer.\n\n")

		assert.Equal(t, "# Install\n\nRun the installer.\n", got)
	})

	t.Run("keeps existing level-1 heading", func(t *testing.T) {
		t.Parallel()

		got := docmirror.FormatMarkdown("Install", "# Installation\n\nRun it.")

		assert.Equal(t, "# Installation\n\nRun it.\n", got)
	})

	t.Run("level-2 heading is not enough", func(t *testing.T) {
		t.Parallel()

		got := docmirror.FormatMarkdown("Install", "## Steps")

		assert.Equal(t, "# Install\n\n## Steps\n", got)
	})

	t.Run("empty body gets title only", func(t *testing.T) {
		t.Parallel()

		got := docmirror.FormatMarkdown("Empty", "  ")

		assert.Equal(t, "# Empty\n\n\n", got)
	})
}
