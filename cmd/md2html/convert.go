package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// maxPositionalArgs is <input> [output].
const maxPositionalArgs = 2

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positionalArgs, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout)
			return nil
		}
		return err
	}

	logger := logging.New(env.Stderr, verbosityFor(&flags.common))
	if env.AdjustMaxProcs != nil {
		defer env.AdjustMaxProcs(logger)()
	}
	warnUnknownEnvVars(logger)

	if len(positionalArgs) > maxPositionalArgs {
		return fmt.Errorf("%w: expected <input> [output], got %d arguments", ErrUsage, len(positionalArgs))
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(logger)
	workers := flags.workers
	if workers == 0 {
		if err := validateWorkers(envCfg.Workers); err != nil {
			return fmt.Errorf("MD2HTML_WORKERS: %w", err)
		}
		workers = envCfg.Workers
	}

	cfg, err := loadConfig(flags.common.config, envCfg, logger)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	out, err := resolveOutput(flags.output, positionalArgs, cfg)
	if err != nil {
		return err
	}

	conv, err := md2html.NewConverter(converterOptions(cfg)...)
	if err != nil {
		return err
	}

	extraCSS, err := readCSS(flags.style.css)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, out, logger)
	if err != nil {
		return err
	}

	start := env.Now()
	results := convertBatch(ctx, conv, files, &batchParams{
		title:   cfg.Document.Title,
		css:     extraCSS,
		noTOC:   !cfg.TOC.Enabled,
		workers: workers,
		now:     env.Now,
	})

	return reportResults(results, flags.common.quiet, env.Now().Sub(start), env, logger)
}

// verbosityFor maps the output control flags to a log verbosity.
// --quiet wins over --verbose.
func verbosityFor(f *commonFlags) logging.Verbosity {
	switch {
	case f.quiet:
		return logging.Quiet
	case f.verbose:
		return logging.Verbose
	default:
		return logging.Normal
	}
}

// loadConfig loads the config named by the flag, or by MD2HTML_CONFIG when
// the flag is empty, then applies environment overrides. Without a name the
// defaults are used.
func loadConfig(name string, envCfg *envConfig, logger *logging.Logger) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		logger.ConfigLoaded(name)
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Document flags
	if flags.title != "" {
		cfg.Document.Title = flags.title
	}

	// Style flags
	if flags.style.style != "" {
		cfg.CSS.Style = flags.style.style
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}

	// TOC flags
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
	}
	if flags.toc.disabled {
		cfg.TOC.Enabled = false
	}

	// Highlight flags; naming a style implies highlighting
	if flags.highlight.enabled {
		cfg.Highlight.Enabled = true
	}
	if flags.highlight.style != "" {
		cfg.Highlight.Enabled = true
		cfg.Highlight.Style = flags.highlight.style
	}

	if flags.rewriteLinks {
		cfg.Links.RewriteMarkdown = true
	}
}

// converterOptions translates the effective config into converter options.
func converterOptions(cfg *config.Config) []md2html.Option {
	opts := []md2html.Option{
		md2html.WithStyle(cfg.CSS.Style),
		md2html.WithTOCTitle(cfg.TOC.Title),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2html.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, md2html.WithHighlighting(cfg.Highlight.Style))
	}
	if cfg.Links.RewriteMarkdown {
		opts = append(opts, md2html.WithMarkdownLinkRewrite())
	}
	return opts
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutput determines the output target from the --output flag, the
// second positional argument, or the config default directory.
func resolveOutput(flagOutput string, args []string, cfg *config.Config) (outputTarget, error) {
	var argOutput string
	if len(args) > 1 {
		argOutput = args[1]
	}

	if flagOutput != "" && argOutput != "" && flagOutput != argOutput {
		return outputTarget{}, fmt.Errorf("%w: output given twice (%q and %q)", ErrUsage, flagOutput, argOutput)
	}

	switch {
	case flagOutput != "":
		return newOutputTarget(flagOutput), nil
	case argOutput != "":
		return newOutputTarget(argOutput), nil
	case cfg.Output.DefaultDir != "":
		return outputTarget{path: cfg.Output.DefaultDir, isDir: true}, nil
	}
	return outputTarget{}, nil
}

// readCSS reads the extra stylesheet named by --css.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(content), nil
}

// readMarkdown reads a source file.
func readMarkdown(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return "", fmt.Errorf("%w: %w", md2html.ErrReadMarkdown, err)
	}
	return string(content), nil
}
