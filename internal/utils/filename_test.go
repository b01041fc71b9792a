package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes invalid characters",
			input:    `file<>:"/\|?*name`,
			expected: "filename",
		},
		{
			name:     "replaces newlines and tabs with spaces",
			input:    "file\nname\twith\rspaces",
			expected: "file name with spaces",
		},
		{
			name:     "collapses multiple spaces",
			input:    "file   name  with    spaces",
			expected: "file name with spaces",
		},
		{
			name:     "removes hashtags",
			input:    "#hashtag #title",
			expected: "hashtag title",
		},
		{
			name:     "replaces square brackets",
			input:    "title [subtitle]",
			expected: "title (subtitle)",
		},
		{
			name:     "returns Untitled for only special chars",
			input:    "<>:?*",
			expected: "Untitled",
		},
		{
			name:     "truncates long names",
			input:    strings.Repeat("a", 250),
			expected: strings.Repeat("a", 200),
		},
		{
			name:     "truncates on rune boundaries",
			input:    strings.Repeat("é", 250),
			expected: strings.Repeat("é", 200),
		},
		{
			name:     "composes decomposed accents",
			input:    "Cafe\u0301",
			expected: "Caf\u00e9",
		},
		{
			name:     "keeps a title with subtitle",
			input:    "Dune: Messiah",
			expected: "Dune Messiah",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "cien-anos-de-soledad", Slugify("Cien años de soledad"))
	assert.Equal(t, "the-hobbit-1937", Slugify("  The Hobbit (1937) "))
	assert.Equal(t, "untitled", Slugify("???"))
}

func TestBookFormat(t *testing.T) {
	assert.Equal(t, "epub", BookFormat("/books/Dune.EPUB"))
	assert.Equal(t, "fb2.zip", BookFormat("war-and-peace.fb2.zip"))
	assert.Equal(t, "", BookFormat("notes.md"))
}
