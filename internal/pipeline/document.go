package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for document assembly.
var (
	ErrTemplateParse  = errors.New("document template parsing failed")
	ErrDocumentRender = errors.New("document template rendering failed")
	ErrNilDocument    = errors.New("document data cannot be nil")
)

// DefaultTOCTitle is the heading shown above the table of contents.
const DefaultTOCTitle = "Contents"

// DocumentData holds the parts placed into the HTML shell.
type DocumentData struct {
	Title    string
	CSS      string
	TOCTitle string // empty = no heading inside the TOC panel
	TOC      string // rendered TOC list; empty = no TOC panel
	Body     string // rendered body fragments
}

// DocumentAssembler defines the contract for wrapping a rendered body in a
// complete HTML document.
type DocumentAssembler interface {
	Assemble(ctx context.Context, data *DocumentData) (string, error)
}

// documentView is what the shell template sees. Pre-rendered fragments are
// marked safe; the title stays a plain string so the template escapes it.
type documentView struct {
	Title    string
	CSS      template.CSS
	TOCTitle string
	TOC      template.HTML
	Body     template.HTML
}

// TemplateAssembler renders documents from an html/template shell.
type TemplateAssembler struct {
	tmpl *template.Template
}

// NewTemplateAssembler parses the shell template.
// Returns ErrTemplateParse if the template is invalid.
func NewTemplateAssembler(tmplContent string) (*TemplateAssembler, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &TemplateAssembler{tmpl: tmpl}, nil
}

// Assemble renders the shell with the given parts.
func (a *TemplateAssembler) Assemble(ctx context.Context, data *DocumentData) (string, error) {
	if data == nil {
		return "", ErrNilDocument
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	view := documentView{
		Title:    data.Title,
		CSS:      template.CSS(sanitizeCSS(data.CSS)), // #nosec G203 -- closing tags escaped by sanitizeCSS
		TOCTitle: data.TOCTitle,
		TOC:      template.HTML(data.TOC),  // #nosec G203 -- built from escaped heading text
		Body:     template.HTML(data.Body), // #nosec G203 -- fragments escaped by the segmenter
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Compile-time interface check.
var _ DocumentAssembler = (*TemplateAssembler)(nil)
