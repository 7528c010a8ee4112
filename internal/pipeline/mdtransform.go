package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) []string
}

// LinePreprocessor prepares raw Markdown text for the block segmenter.
type LinePreprocessor struct{}

// PreprocessMarkdown normalizes line endings and splits content into lines.
// A single trailing newline does not produce an extra line.
func (p *LinePreprocessor) PreprocessMarkdown(ctx context.Context, content string) []string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return nil
	}

	return splitLines(normalizeLineEndings(content))
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// splitLines splits on \n, dropping the empty element after a final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}
