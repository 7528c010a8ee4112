package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// fallbackSlug is used when a heading has no sluggable characters.
const fallbackSlug = "section"

var (
	slugDisallowed = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s\p{Z}-]`)
	slugSpaces     = regexp.MustCompile(`[\s\p{Z}]+`)
	slugHyphens    = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe anchor from heading text.
//
// The text is NFC-normalized, lowercased and trimmed. Characters other than
// letters, digits, marks, underscores, whitespace and hyphens are dropped,
// whitespace runs become a single hyphen and hyphen runs are collapsed.
// An empty result yields "section".
func Slugify(text string) string {
	s := norm.NFC.String(text)
	s = cases.Lower(language.Und).String(strings.TrimSpace(s))
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	if s == "" {
		return fallbackSlug
	}
	return s
}

// anchorSet tracks the anchors assigned during one render.
type anchorSet map[string]struct{}

// claim returns slug if unused, otherwise the first free slug-N for N >= 2.
// The returned anchor is recorded as used.
func (a anchorSet) claim(slug string) string {
	anchor := slug
	for n := 2; ; n++ {
		if _, taken := a[anchor]; !taken {
			break
		}
		anchor = slug + "-" + strconv.Itoa(n)
	}
	a[anchor] = struct{}{}
	return anchor
}
