package fileinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBuildlogFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"session.buildlog", true},
		{"SESSION.BUILDLOG", true},
		{"legacy.vibe", true},
		{"dir/nested.buildlog", true},
		{"session.json", false},
		{"buildlog", false},
		{"session.buildlog.bak", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsBuildlogFile(tt.path), tt.path)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"My Cool Session!", "my-cool-session"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"Fix: bug #42 (again)", "fix-bug-42-again"},
		{"---", ""},
		{"", ""},
		{"CamelCase", "camelcase"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), tt.title)
	}
}

// Truncation is the final step: the cut may land mid-word or on a
// hyphen, and the result is kept as-is.
func TestSlugifyTruncates(t *testing.T) {
	slug := Slugify(strings.Repeat("word ", 20))
	assert.Len(t, slug, 50)
	assert.Equal(t, strings.Repeat("word-", 10), slug)

	slug = Slugify(strings.Repeat("ab", 40))
	assert.Equal(t, strings.Repeat("ab", 25), slug)
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"app.ts", "typescript"},
		{"component.tsx", "typescript"},
		{"index.js", "javascript"},
		{"main.go", "go"},
		{"script.py", "python"},
		{"style.CSS", "css"},
		{"README.md", "markdown"},
		{"mystery.xyz", "plaintext"},
		{"Makefile", "plaintext"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.path), tt.path)
	}
}
