package md2html

import (
	"strings"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Heading is a heading found in the rendered document, in document order.
// Anchor is the id attribute of the heading element and is unique within
// one document.
type Heading = pipeline.Heading

// Input holds the per-conversion parameters.
type Input struct {
	Markdown string // source text; empty renders an empty document
	Title    string // document <title>, escaped on output
	CSS      string // appended after the converter style
	NoTOC    bool   // omit the table of contents panel
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML     []byte
	Headings []Heading
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the options applied by NewConverter.
type converterConfig struct {
	styleInput     string // style name or path to a CSS file
	assetPath      string
	templateName   string
	tocTitle       string
	highlight      bool
	highlightStyle string
	rewriteLinks   bool
}

// WithStyle selects the document stylesheet.
// A value containing a path separator is read from disk; any other value is
// a style name resolved through the asset loader.
func WithStyle(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = strings.TrimSpace(nameOrPath)
	}
}

// WithAssetPath serves styles and templates from dir, falling back to the
// built-in assets for names the directory does not provide.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithAssetLoader uses loader for styles and templates.
// It takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithTemplate selects the document shell template by name.
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithTOCTitle sets the heading shown in the table of contents panel.
// An empty title renders the panel without a heading.
func WithTOCTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.tocTitle = title
	}
}

// WithHighlighting enables syntax highlighting of tagged code fences using
// the named chroma style. An empty style selects the default.
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}

// WithMarkdownLinkRewrite rewrites relative links to .md files so they point
// at the rendered .html siblings.
func WithMarkdownLinkRewrite() Option {
	return func(c *Converter) {
		c.cfg.rewriteLinks = true
	}
}
