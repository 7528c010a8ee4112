package pipeline

import "strings"

// Heading level bounds used when nesting TOC lists.
const (
	minHeadingLevel = 1
	maxHeadingLevel = 6
)

// BuildTOC renders headings as nested <ul> lists mirroring heading levels.
// Returns an empty string when there are no headings.
//
// The outermost list represents level 1. A deeper heading opens one list per
// level skipped; a shallower heading closes lists back to its level.
func BuildTOC(headings []Heading) string {
	if len(headings) == 0 {
		return ""
	}

	var parts []string
	parts = append(parts, "<ul>")
	current := minHeadingLevel

	for _, h := range headings {
		level := clampLevel(h.Level)
		for current < level {
			parts = append(parts, "<ul>")
			current++
		}
		for current > level {
			parts = append(parts, "</ul>")
			current--
		}
		parts = append(parts, `<li><a href="#`+EscapeAttr(h.Anchor)+`">`+EscapeText(h.Text)+"</a></li>")
	}

	for current > minHeadingLevel {
		parts = append(parts, "</ul>")
		current--
	}
	parts = append(parts, "</ul>")

	return strings.Join(parts, "\n")
}

// clampLevel bounds a heading level to 1-6.
func clampLevel(level int) int {
	return max(minHeadingLevel, min(maxHeadingLevel, level))
}
