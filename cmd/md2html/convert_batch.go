package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/logging"
)

// Sentinel errors for batch operations.
var (
	ErrConversionFailed = errors.New("conversion failed")
)

// FileConverter is the conversion service used by the batch runner.
type FileConverter interface {
	Convert(ctx context.Context, input md2html.Input) (*md2html.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ FileConverter = (*md2html.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Headings   int
	Err        error
	Duration   time.Duration
}

// batchParams groups parameters shared by every file in a run.
type batchParams struct {
	title   string // fixed title; empty = per-file name
	css     string // extra CSS appended after the style
	noTOC   bool
	workers int
	now     func() time.Time
}

// resolveWorkers returns the worker count for n files.
// Zero requested means one worker per available CPU.
func resolveWorkers(requested, n int) int {
	workers := requested
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// convertBatch processes files concurrently with a shared converter.
// Results are returned in the order of files. Once ctx is canceled the
// remaining files are reported with the context error.
func convertBatch(ctx context.Context, conv FileConverter, files []FileToConvert, params *batchParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := resolveWorkers(params.workers, len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath:  files[idx].InputPath,
						OutputPath: files[idx].OutputPath,
						Err:        ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile renders a single file and writes the document.
func convertFile(ctx context.Context, conv FileConverter, f FileToConvert, params *batchParams) ConversionResult {
	start := params.now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := readMarkdown(f.InputPath)
	if err != nil {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}

	title := params.title
	if title == "" {
		title = md2html.TitleFromPath(f.InputPath)
	}

	convResult, err := conv.Convert(ctx, md2html.Input{
		Markdown: content,
		Title:    title,
		CSS:      params.css,
		NoTOC:    params.noTOC,
	})
	if err != nil {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, convResult.HTML); err != nil {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}

	result.Headings = len(convResult.Headings)
	result.Duration = params.now().Sub(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	FirstErr  error
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			if summary.FirstErr == nil {
				summary.FirstErr = r.Err
			}
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// reportResults prints one line per rendered file to stdout and logs
// failures. Returns an error wrapping ErrConversionFailed and the first
// failure when any file failed.
func reportResults(results []ConversionResult, quiet bool, total time.Duration, env *Environment, logger *logging.Logger) error {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			// A lone failure is returned to the caller instead.
			if len(results) > 1 {
				logger.FileFailed(r.InputPath, r.Err)
			}
			continue
		}

		logger.FileRendered(r.InputPath, r.OutputPath, r.Headings, r.Duration)
		if !quiet {
			fmt.Fprintf(env.Stdout, "Rendered %s -> %s\n", r.InputPath, r.OutputPath)
		}
	}

	if len(results) > 1 {
		logger.BatchCompleted(summary.Succeeded, summary.Failed, total)
	}

	if summary.Failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return summary.FirstErr
	}
	return fmt.Errorf("%w: %d of %d files: %w", ErrConversionFailed, summary.Failed, len(results), summary.FirstErr)
}
