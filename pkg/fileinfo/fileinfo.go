// Package fileinfo classifies buildlog files and provides the naming
// and display helpers shared by the store and the CLI.
package fileinfo

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// Extension is the canonical buildlog file extension.
	Extension = ".buildlog"
	// AltExtension is the legacy extension still accepted on read.
	AltExtension = ".vibe"
	// MIMEType identifies buildlog content in transfer contexts.
	MIMEType = "application/vnd.buildlog+json"
)

// IsBuildlogFile reports whether path carries a recognised buildlog
// extension. The match is case-insensitive.
func IsBuildlogFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == Extension || ext == AltExtension
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a session title into a filename-safe slug: lowercase,
// runs of non-alphanumerics collapsed to single hyphens, trimmed, then
// truncated to 50 characters. Truncation is the last step, so a long
// title may be cut mid-word.
func Slugify(title string) string {
	slug := slugUnsafe.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 50 {
		slug = slug[:50]
	}
	return slug
}

var languageByExt = map[string]string{
	".ts":     "typescript",
	".tsx":    "typescript",
	".js":     "javascript",
	".jsx":    "javascript",
	".mjs":    "javascript",
	".go":     "go",
	".py":     "python",
	".rb":     "ruby",
	".rs":     "rust",
	".java":   "java",
	".kt":     "kotlin",
	".swift":  "swift",
	".c":      "c",
	".h":      "c",
	".cpp":    "cpp",
	".hpp":    "cpp",
	".cs":     "csharp",
	".php":    "php",
	".html":   "html",
	".css":    "css",
	".scss":   "scss",
	".json":   "json",
	".yaml":   "yaml",
	".yml":    "yaml",
	".toml":   "toml",
	".md":     "markdown",
	".sql":    "sql",
	".sh":     "shell",
	".bash":   "shell",
	".zsh":    "shell",
	".xml":    "xml",
	".vue":    "vue",
	".svelte": "svelte",
}

// DetectLanguage maps a file path to a display language by extension,
// falling back to "plaintext" for anything unrecognised.
func DetectLanguage(path string) string {
	if lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "plaintext"
}
