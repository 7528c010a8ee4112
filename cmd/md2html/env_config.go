package main

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/logging"
)

// envPrefix is shared by every recognized environment variable.
const envPrefix = "MD2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // MD2HTML_CONFIG: config file name or path
	Style          string // MD2HTML_STYLE: CSS style name or path
	InputDir       string // MD2HTML_INPUT_DIR: default input directory
	OutputDir      string // MD2HTML_OUTPUT_DIR: default output directory
	AssetPath      string // MD2HTML_ASSET_PATH: custom asset directory
	HighlightStyle string // MD2HTML_HIGHLIGHT_STYLE: chroma style, enables highlighting
	Workers        int    // MD2HTML_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":          true,
	"MD2HTML_STYLE":           true,
	"MD2HTML_INPUT_DIR":       true,
	"MD2HTML_OUTPUT_DIR":      true,
	"MD2HTML_ASSET_PATH":      true,
	"MD2HTML_HIGHLIGHT_STYLE": true,
	"MD2HTML_WORKERS":         true,
}

// knownEnvVarNames returns the recognized variable names, sorted.
func knownEnvVarNames() []string {
	names := make([]string, 0, len(knownEnvVars))
	for name := range knownEnvVars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable MD2HTML_WORKERS is ignored with a warning; bounds are
// checked by the caller, the same way as --workers.
func loadEnvConfig(logger *logging.Logger) *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("MD2HTML_CONFIG"),
		Style:          os.Getenv("MD2HTML_STYLE"),
		InputDir:       os.Getenv("MD2HTML_INPUT_DIR"),
		OutputDir:      os.Getenv("MD2HTML_OUTPUT_DIR"),
		AssetPath:      os.Getenv("MD2HTML_ASSET_PATH"),
		HighlightStyle: os.Getenv("MD2HTML_HIGHLIGHT_STYLE"),
	}

	if workers := os.Getenv("MD2HTML_WORKERS"); workers != "" {
		w, err := strconv.Atoi(strings.TrimSpace(workers))
		if err != nil {
			logger.Warn("ignoring invalid environment variable", "name", "MD2HTML_WORKERS", "value", workers)
		} else {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2HTML_* variables.
// Helps catch typos like MD2HTML_STLYE.
func warnUnknownEnvVars(logger *logging.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Environment values win over the config file; CLI flags are applied later
// via mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.CSS.Style = env.Style
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.HighlightStyle != "" {
		cfg.Highlight.Enabled = true
		cfg.Highlight.Style = env.HighlightStyle
	}
}
