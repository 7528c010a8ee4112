package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
// It matches the dark document theme.
const DefaultHighlightStyle = "monokai"

// ErrUnknownHighlightStyle indicates the requested chroma style does not exist.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// Highlighter renders fenced code as HTML markup.
type Highlighter interface {
	// Highlight returns the inner HTML for a <code> element.
	// ok is false when the language is not supported; callers fall back
	// to plain escaping.
	Highlight(lang, code string) (html string, ok bool)

	// CSS returns the stylesheet rules the highlighted markup relies on.
	CSS() (string, error)
}

// ChromaHighlighter highlights code with chroma using CSS classes.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter for the named chroma style.
// An empty name selects DefaultHighlightStyle.
func NewChromaHighlighter(styleName string) (*ChromaHighlighter, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}

	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, styleName)
	}

	return &ChromaHighlighter{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),         // stylesheet lives in the document <style>
			chromahtml.PreventSurroundingPre(true), // segmenter owns <pre><code>
		),
	}, nil
}

// Highlight tokenises code with the lexer registered for lang.
func (h *ChromaHighlighter) Highlight(lang, code string) (string, bool) {
	if lang == "" {
		return "", false
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}

// CSS returns the class-based rules for the configured style.
func (h *ChromaHighlighter) CSS() (string, error) {
	var buf strings.Builder
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}

// Compile-time interface check.
var _ Highlighter = (*ChromaHighlighter)(nil)
