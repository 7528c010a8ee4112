package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/logging"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
)

// MaxWorkers caps --workers.
const MaxWorkers = 64

// htmlExtension is the extension given to rendered files.
const htmlExtension = "html"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// outputTarget is where rendered files are written. An empty path means
// next to each source file.
type outputTarget struct {
	path  string
	isDir bool
}

// newOutputTarget classifies an explicit output argument. It names a
// directory when it already exists as one or ends with a path separator.
func newOutputTarget(path string) outputTarget {
	if path == "" {
		return outputTarget{}
	}
	isDir := fileutil.DirExists(path) || strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator))
	return outputTarget{path: path, isDir: isDir}
}

// discoverFiles finds all markdown files to convert.
// A file input is rendered whatever its extension; a directory input is
// walked recursively and files without a Markdown extension are skipped.
func discoverFiles(inputPath string, out outputTarget, logger *logging.Logger) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		outPath, err := resolveOutputPath(inputPath, out, "")
		if err != nil {
			return nil, err
		}
		if filepath.Clean(outPath) == filepath.Clean(inputPath) {
			return nil, fmt.Errorf("%w: output would overwrite input %s", ErrUsage, inputPath)
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	// A directory is always mirrored into a directory.
	if out.path != "" {
		out.isDir = true
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !fileutil.IsMarkdown(path) {
			logger.FileSkipped(path, "not markdown")
			return nil
		}
		outPath, err := resolveOutputPath(path, out, inputPath)
		if err != nil {
			return err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}
	return files, nil
}

// resolveOutputPath determines the HTML output path for a markdown file.
// With a directory target, the file's position relative to baseInputDir is
// kept so a tree of sources renders to the same tree of documents.
func resolveOutputPath(inputPath string, out outputTarget, baseInputDir string) (string, error) {
	if out.path == "" {
		return fileutil.ReplaceExt(inputPath, htmlExtension)
	}

	if !out.isDir {
		return out.path, nil
	}

	rel := filepath.Base(inputPath)
	if baseInputDir != "" {
		if r, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			rel = r
		}
	}
	return fileutil.ReplaceExt(filepath.Join(out.path, rel), htmlExtension)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
