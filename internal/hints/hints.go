// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// userConfigMarker identifies a searched path inside the user config directory.
var userConfigMarker = string(filepath.Separator) + "go-md2html" + string(filepath.Separator)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, userConfigMarker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForInputNotFound returns a hint for a missing Markdown input.
func ForInputNotFound() string {
	return format("pass a .md file or a directory of Markdown files")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass --style /path/to/style.css")
}

// ForHighlightStyle returns a hint for an unknown chroma style.
func ForHighlightStyle() string {
	return formatHints([]string{
		"try monokai, github, dracula or nord",
		"omit --highlight-style to use monokai",
	})
}

// ForAssetPath returns a hint for an invalid custom asset directory.
func ForAssetPath() string {
	return format("--asset-path must be a directory containing styles/ and/or templates/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
