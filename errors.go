package md2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrReadMarkdown    = errors.New("reading markdown failed")
	ErrDocumentRender  = errors.New("document rendering failed")
	ErrLinkRewrite     = errors.New("link rewriting failed")
	ErrHighlightStyle  = errors.New("unknown highlight style")
	ErrStyleFileRead   = errors.New("reading style file failed")
	ErrInvalidTemplate = errors.New("invalid document template")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
