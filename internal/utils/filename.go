package utils

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
	// Anything that is not a lowercase ASCII letter or digit
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

const maxFilenameRunes = 200

// SanitizeFilename makes a publication title safe to use as a markdown note name.
// It removes characters that are invalid in filenames or break wiki links
// (slashes, colons, quotes, hashtags, brackets) and normalizes to NFC.
func SanitizeFilename(filename string) string {
	filename = norm.NFC.String(filename)
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceChars.ReplaceAllString(filename, " ")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	filename = strings.ReplaceAll(filename, "#", "")
	filename = strings.ReplaceAll(filename, "[", "(")
	filename = strings.ReplaceAll(filename, "]", ")")

	// Leave room for the extension within the usual 255 byte limit
	if r := []rune(filename); len(r) > maxFilenameRunes {
		filename = strings.TrimSpace(string(r[:maxFilenameRunes]))
	}

	if filename == "" {
		filename = "Untitled"
	}
	return filename
}

// Slugify returns an ASCII, dash separated form of s with diacritics stripped,
// e.g. "Cien años de soledad" -> "cien-anos-de-soledad".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(folded), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}

// KnownBookExtensions contains file extensions commonly used for e-books
var KnownBookExtensions = []string{
	".fb2.zip",
	".fb2",
	".epub",
	".pdf",
	".txt",
	".tar.gz",
	".docx",
	".doc",
	".mobi",
	".azw3",
	".azw",
	".djvu",
	".cbz",
}

// BookFormat returns the known e-book extension of path without the leading
// dot, or "" when the extension is not recognised.
func BookFormat(path string) string {
	lower := strings.ToLower(filepath.Base(path))
	for _, ext := range KnownBookExtensions {
		if strings.HasSuffix(lower, ext) {
			return strings.TrimPrefix(ext, ".")
		}
	}
	return ""
}
