package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-md2html"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html [flags] <input> [output]")
	fmt.Fprintln(w, "       md2html <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render Markdown files to self-contained HTML documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate a shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2html help convert' for conversion flags.")
}

// printConvertUsage prints usage for a conversion run.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html [flags] <input> [output]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a Markdown file, or every Markdown file under a directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file (any extension) or directory of .md/.markdown files")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w, "  output   output file (file input) or directory (default: next to the input)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory (same as the output argument)")
	fmt.Fprintln(w, "  -T, --title <s>             Document title (default: input file name)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers for directories (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintf(w, "      --style <name|path>     Built-in style (%s) or CSS file\n", strings.Join(md2html.StyleNames(), ", "))
	fmt.Fprintln(w, "      --css <path>            Extra CSS file appended after the style")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc-title <s>         TOC heading text")
	fmt.Fprintln(w, "      --no-toc                Disable table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Code and Links:")
	fmt.Fprintln(w, "      --highlight             Highlight tagged code blocks")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style (default: monokai)")
	fmt.Fprintln(w, "      --rewrite-links         Point links to .md files at the .html output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show per-file details and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %s\n", strings.Join(knownEnvVarNames(), ", "))
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html config [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration a conversion would use, as YAML.")
	fmt.Fprintln(w, "Environment overrides are applied; flags are not.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
