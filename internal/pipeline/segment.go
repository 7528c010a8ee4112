package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Block markers recognised at the start of a line.
const (
	fenceMarker      = "```"
	blockquoteMarker = ">"
	listItemMarker   = "- "
)

// headingLinePattern matches ATX headings: 1-6 '#', whitespace, text.
var headingLinePattern = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// Heading is a heading discovered while segmenting a document.
type Heading struct {
	Level  int    // 1-6
	Text   string // plain text before escaping
	Anchor string // unique id within the document
}

// Segmented is the output of one segmentation pass.
type Segmented struct {
	Body     []string  // rendered block fragments in input order
	Headings []Heading // headings in document order
}

// HTML joins the body fragments into the document body.
func (s Segmented) HTML() string {
	return strings.Join(s.Body, "\n")
}

// SegmentOption configures a segmentation pass.
type SegmentOption func(*segmenter)

// WithHighlighter renders tagged code fences through h.
func WithHighlighter(h Highlighter) SegmentOption {
	return func(s *segmenter) {
		s.highlighter = h
	}
}

// blockMode is the kind of multi-line block currently being accumulated.
type blockMode int

const (
	modeNone blockMode = iota
	modeParagraph
	modeList
	modeCode
)

// segmenter holds the accumulator state for a single Segment call.
// At most one of the paragraph, list and code buffers is non-empty.
type segmenter struct {
	mode     blockMode
	buffer   []string
	codeLang string

	body     []string
	headings []Heading
	anchors  anchorSet

	highlighter Highlighter
}

// Segment classifies lines into blocks and renders each block to HTML.
//
// Segmentation is total: every input produces some output and unterminated
// blocks are flushed at end of input. Segment holds no shared state and is
// safe to call concurrently.
func Segment(lines []string, opts ...SegmentOption) Segmented {
	s := &segmenter{anchors: make(anchorSet)}
	for _, opt := range opts {
		opt(s)
	}

	for _, line := range lines {
		s.feed(strings.TrimSuffix(line, "\n"))
	}

	s.flushParagraph()
	s.flushList()
	s.flushCode()

	return Segmented{Body: s.body, Headings: s.headings}
}

// feed processes one line. Rules are evaluated in priority order.
func (s *segmenter) feed(line string) {
	if strings.HasPrefix(line, fenceMarker) {
		s.flushParagraph()
		s.flushList()
		if s.mode == modeCode {
			s.flushCode()
			return
		}
		s.mode = modeCode
		s.codeLang = strings.TrimSpace(line[len(fenceMarker):])
		s.buffer = nil
		return
	}

	if s.mode == modeCode {
		s.buffer = append(s.buffer, line)
		return
	}

	if m := headingLinePattern.FindStringSubmatch(line); m != nil {
		s.flushParagraph()
		s.flushList()
		s.emitHeading(len(m[1]), strings.TrimSpace(m[2]))
		return
	}

	trimmed := strings.TrimSpace(line)

	if isHorizontalRule(trimmed) {
		s.flushParagraph()
		s.flushList()
		s.body = append(s.body, "<hr />")
		return
	}

	if strings.HasPrefix(line, blockquoteMarker) {
		s.flushParagraph()
		s.flushList()
		quote := strings.TrimSpace(strings.TrimLeft(line, blockquoteMarker))
		s.body = append(s.body, "<blockquote>"+RenderInlines(quote)+"</blockquote>")
		return
	}

	if strings.HasPrefix(line, listItemMarker) {
		s.flushParagraph()
		s.mode = modeList
		s.buffer = append(s.buffer, line[len(listItemMarker):])
		return
	}

	if trimmed == "" {
		s.flushParagraph()
		s.flushList()
		return
	}

	// A paragraph line ends an open list so blocks keep their input order.
	s.flushList()
	s.mode = modeParagraph
	s.buffer = append(s.buffer, line)
}

// isHorizontalRule reports whether a trimmed line is a thematic break.
func isHorizontalRule(trimmed string) bool {
	switch trimmed {
	case "---", "***", "___":
		return true
	}
	return false
}

// emitHeading records a heading with a unique anchor and renders it.
func (s *segmenter) emitHeading(level int, text string) {
	anchor := s.anchors.claim(Slugify(text))
	s.headings = append(s.headings, Heading{Level: level, Text: text, Anchor: anchor})

	tag := "h" + strconv.Itoa(level)
	s.body = append(s.body, "<"+tag+` id="`+EscapeAttr(anchor)+`">`+RenderInlines(text)+"</"+tag+">")
}

// reset clears the accumulator after a flush.
func (s *segmenter) reset() {
	s.mode = modeNone
	s.buffer = nil
	s.codeLang = ""
}

// flushParagraph joins buffered lines into one <p>. Empty text emits nothing.
func (s *segmenter) flushParagraph() {
	if s.mode != modeParagraph {
		return
	}
	defer s.reset()

	parts := make([]string, len(s.buffer))
	for i, line := range s.buffer {
		parts[i] = strings.TrimSpace(line)
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return
	}
	s.body = append(s.body, "<p>"+RenderInlines(text)+"</p>")
}

// flushList renders buffered items as one <ul>.
func (s *segmenter) flushList() {
	if s.mode != modeList {
		return
	}
	defer s.reset()

	if len(s.buffer) == 0 {
		return
	}

	var buf strings.Builder
	buf.WriteString("<ul>")
	for _, item := range s.buffer {
		buf.WriteString("<li>")
		buf.WriteString(RenderInlines(strings.TrimSpace(item)))
		buf.WriteString("</li>")
	}
	buf.WriteString("</ul>")
	s.body = append(s.body, buf.String())
}

// flushCode renders buffered raw lines as <pre><code>. Content is escaped
// but never passed through inline markup.
func (s *segmenter) flushCode() {
	if s.mode != modeCode {
		return
	}
	defer s.reset()

	code := strings.Join(s.buffer, "\n")

	var buf strings.Builder
	buf.WriteString("<pre><code")
	if s.codeLang != "" {
		buf.WriteString(` class="`)
		buf.WriteString(EscapeAttr("language-" + s.codeLang))
		buf.WriteString(`"`)
	}
	buf.WriteString(">")
	buf.WriteString(s.renderCode(code))
	buf.WriteString("</code></pre>")
	s.body = append(s.body, buf.String())
}

// renderCode returns highlighted markup when available, escaped text otherwise.
func (s *segmenter) renderCode(code string) string {
	if s.highlighter != nil && s.codeLang != "" {
		if highlighted, ok := s.highlighter.Highlight(s.codeLang, code); ok {
			return highlighted
		}
	}
	return EscapeText(code)
}
