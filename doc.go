// Package md2html converts a constrained Markdown subset into a single,
// self-contained HTML document.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown: "# Hello\n\nWorld",
//	    Title:    "Hello",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello.html", result.HTML, 0644)
//
// The output embeds its stylesheet and references no external assets, so it
// can be opened offline or attached to a ticket as is.
//
// # Supported Markdown
//
// The converter is line oriented and supports:
//
//   - ATX headings (# to ######), each given a unique id anchor
//   - paragraphs, with consecutive lines joined by a space
//   - flat bullet lists ("- item")
//   - fenced code blocks with an optional language tag
//   - single-line blockquotes ("> text")
//   - horizontal rules (---, ***, ___)
//   - inline `code`, [links](url) and **bold**
//
// Everything else renders as escaped paragraph text. Malformed Markdown is
// never an error.
//
// # Conversion Pipeline
//
//  1. Line normalization (\r\n and \r become \n) and splitting
//  2. Block segmentation into HTML fragments, collecting headings
//  3. Optional rewriting of links to .md files
//  4. Table of contents generation from the headings
//  5. Assembly into the document shell with the embedded stylesheet
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithStyle("light"),
//	    md2html.WithHighlighting("github"),
//	    md2html.WithMarkdownLinkRewrite(),
//	    md2html.WithTOCTitle("On this page"),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown: content,
//	    Title:    "Runbook",
//	    CSS:      "body { font-size: 14px; }",
//	    NoTOC:    true,
//	})
//
// # Concurrency
//
// A Converter holds no per-render state. One instance may serve many
// goroutines, which is how the CLI renders directories.
//
// # Custom Assets
//
// Override built-in styles and the document shell using AssetLoader:
//
//	loader, err := md2html.NewAssetLoader("/path/to/assets")
//	conv, err := md2html.NewConverter(md2html.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── document.html
package md2html
