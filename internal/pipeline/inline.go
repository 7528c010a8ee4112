package pipeline

import (
	"regexp"
	"strings"
)

// Inline span patterns. Spans never nest; each pattern excludes its own
// closing delimiter so matches stay as short as possible.
var (
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#x27;")
)

// EscapeText escapes &, < and > for use in element content. Quotes are kept.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes s for use inside a double- or single-quoted attribute.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// RenderInlines converts inline markup in s to HTML.
//
// The source is escaped first and markup is applied afterwards in a fixed
// order: inline code, links, bold. Captured code spans and link parts are
// escaped a second time, so `a<b` renders as <code>a&amp;lt;b</code>.
func RenderInlines(s string) string {
	out := EscapeText(s)

	out = replaceAllSubmatchFunc(inlineCodePattern, out, func(groups []string) string {
		return "<code>" + EscapeText(groups[1]) + "</code>"
	})

	out = replaceAllSubmatchFunc(linkPattern, out, func(groups []string) string {
		return `<a href="` + EscapeAttr(groups[2]) + `">` + EscapeText(groups[1]) + "</a>"
	})

	return boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
}

// replaceAllSubmatchFunc is regexp.ReplaceAllStringFunc with access to
// capture groups. groups[0] is the whole match.
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, fn func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))
	last := 0
	for _, loc := range matches {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		buf.WriteString(s[last:loc[0]])
		buf.WriteString(fn(groups))
		last = loc[1]
	}
	buf.WriteString(s[last:])
	return buf.String()
}
