// Package pipeline implements the Markdown-to-HTML conversion pipeline.
//
// This package handles every stage between raw text and the final document:
//   - Markdown preprocessing (line ending normalization, line splitting)
//   - Block segmentation of the supported Markdown subset into HTML fragments
//   - Inline markup (code spans, links, bold) and heading anchors
//   - Optional code highlighting via chroma
//   - Optional rewriting of links between Markdown files
//   - Table of contents generation and document shell assembly
//
// Stages hold no package-level mutable state. Every render allocates its own
// accumulators, so functions may be called concurrently on independent input.
package pipeline
