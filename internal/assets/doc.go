// Package assets provides the stylesheets and document shell templates used
// to build self-contained HTML pages.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles and templates (go:embed)
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// AssetResolver is what the converter uses. A custom directory only needs to
// contain the assets it overrides; anything missing falls back to the
// embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # e.g. dark.css
//	└── templates/
//	    └── {name}.html      # e.g. document.html
//
// Templates are html/template sources executed with Title, CSS, TOCTitle,
// TOC and Body fields.
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
