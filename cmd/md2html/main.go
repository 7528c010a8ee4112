package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2html/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommands recognized as the first argument.
var commands = map[string]bool{
	"completion": true,
	"config":     true,
	"help":       true,
	"version":    true,
}

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain runs the CLI and returns the process exit code.
// Errors are printed to stderr with an actionable hint when one applies.
func runMain(ctx context.Context, args []string, env *Environment) int {
	err := run(ctx, args, env)
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// run dispatches to a command, or to a conversion when the first argument
// is not a command name.
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) > 0 && isCommand(args[0]) {
		switch args[0] {
		case "version":
			fmt.Fprintf(env.Stdout, "md2html %s\n", Version)
			return nil
		case "help":
			return runHelp(args[1:], env)
		case "config":
			return runConfig(args[1:], env)
		case "completion":
			return runCompletion(args[1:], env)
		}
	}
	return runConvert(ctx, args, env)
}

// isCommand reports whether arg names a command. An existing file or
// directory with the same name is treated as input.
func isCommand(arg string) bool {
	if !commands[arg] {
		return false
	}
	_, err := os.Stat(arg)
	return err != nil
}

// runConfig prints the effective configuration as YAML.
func runConfig(args []string, env *Environment) error {
	flags, err := parseConfigFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConfigUsage(env.Stdout)
			return nil
		}
		return err
	}

	logger := logging.New(env.Stderr, verbosityFor(flags))
	warnUnknownEnvVars(logger)

	cfg, err := loadConfig(flags.config, loadEnvConfig(logger), logger)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
