package md2html

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.LinePreprocessor)(nil)
	_ pipeline.DocumentAssembler    = (*pipeline.TemplateAssembler)(nil)
	_ pipeline.Highlighter          = (*pipeline.ChromaHighlighter)(nil)
	_ AssetLoader                   = (*assetLoaderAdapter)(nil)
)

// Converter renders Markdown documents to standalone HTML.
// Create with NewConverter(). A Converter holds no per-render state and is
// safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	publicAssetLoader AssetLoader // from WithAssetLoader
	assetLoader       AssetLoader
	preprocessor      pipeline.MarkdownPreprocessor
	assembler         pipeline.DocumentAssembler
	segmentOpts       []pipeline.SegmentOption
	style             string // resolved stylesheet, highlight rules included
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithStyle, WithAssetPath, WithHighlighting).
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			templateName: DefaultTemplate,
			tocTitle:     pipeline.DefaultTOCTitle,
		},
		preprocessor: &pipeline.LinePreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.resolveAssetLoader(); err != nil {
		return nil, err
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.cfg.highlight {
		if err := c.setupHighlighter(); err != nil {
			return nil, err
		}
	}

	tmpl, err := c.assetLoader.LoadTemplate(c.cfg.templateName)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", c.cfg.templateName, err)
	}
	assembler, err := pipeline.NewTemplateAssembler(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	c.assembler = assembler

	return c, nil
}

// Convert renders input to a complete HTML document.
// The context is checked between stages. Malformed Markdown is never an
// error: every input renders to some document.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	// Normalize line endings and split
	lines := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Segment blocks and collect headings
	segmented := pipeline.Segment(lines, c.segmentOpts...)
	body := segmented.HTML()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if c.cfg.rewriteLinks && body != "" {
		body, err = pipeline.RewriteMarkdownLinks(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLinkRewrite, err)
		}
	}

	// Converter style first, caller CSS last so it can override
	css := c.style
	if input.CSS != "" {
		css += "\n" + input.CSS
	}

	var toc string
	if !input.NoTOC {
		toc = pipeline.BuildTOC(segmented.Headings)
	}

	doc, err := c.assembler.Assemble(ctx, &pipeline.DocumentData{
		Title:    input.Title,
		CSS:      css,
		TOCTitle: c.cfg.tocTitle,
		TOC:      toc,
		Body:     body,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	return &ConvertResult{
		HTML:     []byte(doc),
		Headings: segmented.Headings,
	}, nil
}

// ConvertFile reads the Markdown file at path and renders it.
// An empty title defaults to the file name without its extension.
// Read failures wrap ErrReadMarkdown and keep the underlying error, so
// errors.Is(err, fs.ErrNotExist) still matches.
func (c *Converter) ConvertFile(ctx context.Context, path, title string) (*ConvertResult, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	if title == "" {
		title = TitleFromPath(path)
	}

	return c.Convert(ctx, Input{Markdown: string(content), Title: title})
}

// TitleFromPath returns the base name of path without its extension.
// A name that is only an extension, like ".md", is returned whole.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}

// resolveAssetLoader picks the loader for styles and templates.
// WithAssetLoader wins over WithAssetPath; the default is the embedded set.
func (c *Converter) resolveAssetLoader() error {
	if c.publicAssetLoader != nil {
		c.assetLoader = c.publicAssetLoader
		return nil
	}

	loader, err := NewAssetLoader(c.cfg.assetPath)
	if err != nil {
		return err
	}
	c.assetLoader = loader
	return nil
}

// resolveStyle resolves the style input (name or path) to CSS content.
// Called during NewConverter() after options are applied and the asset
// loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrStyleFileRead, input, err)
		}
		c.style = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.style = css
	return nil
}

// setupHighlighter creates the chroma highlighter and appends its rules to
// the stylesheet.
func (c *Converter) setupHighlighter() error {
	h, err := pipeline.NewChromaHighlighter(c.cfg.highlightStyle)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownHighlightStyle) {
			return fmt.Errorf("%w: %q", ErrHighlightStyle, c.cfg.highlightStyle)
		}
		return err
	}

	css, err := h.CSS()
	if err != nil {
		return fmt.Errorf("generating highlight CSS: %w", err)
	}

	c.style += "\n" + css
	c.segmentOpts = append(c.segmentOpts, pipeline.WithHighlighter(h))
	return nil
}
