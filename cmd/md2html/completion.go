package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2html"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellFish Shell = "fish"
	ShellZsh  Shell = "zsh"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// shellNames lists the shells accepted by the completion command.
var shellNames = []string{string(ShellBash), string(ShellFish), string(ShellZsh)}

// helpTopics lists the arguments accepted by the help command.
var helpTopics = []string{"completion", "config", "convert", "help", "version"}

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long       string   // --output
	Short      string   // -o (empty if none)
	Desc       string   // help text
	TakesValue bool     // false for bool flags
	Values     []string // fixed candidates
	FileGlobs  []string // file patterns, e.g. "*.css"
	Dir        bool     // directory value
	AnyFile    bool     // any path
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed positional candidates
}

// completionMeta holds completion hints for flags whose values can be
// suggested. Names, descriptions and value-ness come from the FlagSet.
type completionMeta struct {
	Values    []string
	FileGlobs []string
	Dir       bool
	AnyFile   bool
}

// flagCompletionMeta maps flag names to their completion hints.
var flagCompletionMeta = map[string]completionMeta{
	"style":      {Values: md2html.StyleNames(), FileGlobs: []string{"*.css"}},
	"css":        {FileGlobs: []string{"*.css"}},
	"config":     {FileGlobs: []string{"*.yaml", "*.yml"}},
	"asset-path": {Dir: true},
	"output":     {AnyFile: true},
}

// extractFlags reads flag definitions from fs, enriched with
// flagCompletionMeta. Flags are returned in lexicographic order.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:       f.Name,
			Short:      f.Shorthand,
			Desc:       f.Usage,
			TakesValue: f.Value.Type() != "bool",
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			fd.Values = meta.Values
			fd.FileGlobs = meta.FileGlobs
			fd.Dir = meta.Dir
			fd.AnyFile = meta.AnyFile
		}
		flags = append(flags, fd)
	})

	return flags
}

// convertFlagDefs returns the conversion flags, read from the same FlagSet
// the parser uses.
func convertFlagDefs() []flagDef {
	return extractFlags(newConvertFlagSet(&convertFlags{}))
}

// completionCommands returns the command registry for completion.
func completionCommands() []commandDef {
	return []commandDef{
		{Name: "config", Desc: "Print the effective configuration", Flags: extractFlags(newConfigFlagSet(&commonFlags{}))},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", Args: helpTopics},
		{Name: "completion", Desc: "Generate a shell completion script", Args: shellNames},
	}
}

// commandNames returns the names of the completion commands.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// GenerateCompletion writes a completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var b strings.Builder
	switch shell {
	case ShellBash:
		writeBash(&b)
	case ShellFish:
		writeFish(&b)
	case ShellZsh:
		writeZsh(&b)
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(shellNames, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: completion takes one shell, got %q", ErrUsage, args)
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shell completion script.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash   Bash completion script")
	fmt.Fprintln(w, "  fish   Fish completion script")
	fmt.Fprintln(w, "  zsh    Zsh completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2html completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(md2html completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2html completion fish > ~/.config/fish/completions/md2html.fish")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func writeBash(b *strings.Builder) {
	cmds := completionCommands()
	convert := convertFlagDefs()

	b.WriteString("# bash completion for md2html\n")
	b.WriteString("_md2html() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")

	fmt.Fprintf(b, "    if [[ ${COMP_CWORD} -eq 1 && \"${cur}\" != -* ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") $(compgen -f -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n    fi\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        %s)\n", c.Name)
		if len(c.Flags) > 0 {
			writeBashValueCases(b, c.Flags, "            ")
			fmt.Fprintf(b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", bashFlagWords(c.Flags))
		} else if len(c.Args) > 0 {
			fmt.Fprintf(b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(c.Args, " "))
		}
		b.WriteString("            return\n            ;;\n")
	}
	b.WriteString("    esac\n\n")

	writeBashValueCases(b, convert, "    ")
	b.WriteString("    if [[ \"${cur}\" == -* ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", bashFlagWords(convert))
	b.WriteString("        return\n    fi\n")
	b.WriteString("    COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _md2html md2html\n")
}

// writeBashValueCases completes the value of the previous flag.
func writeBashValueCases(b *strings.Builder, flags []flagDef, indent string) {
	b.WriteString(indent + "case \"${prev}\" in\n")
	for _, f := range flags {
		if !f.TakesValue {
			continue
		}
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern = "-" + f.Short + "|" + pattern
		}
		fmt.Fprintf(b, "%s    %s)\n", indent, pattern)
		if reply := bashValueReply(f); reply != "" {
			fmt.Fprintf(b, "%s        COMPREPLY=( %s )\n", indent, reply)
		}
		fmt.Fprintf(b, "%s        return\n%s        ;;\n", indent, indent)
	}
	b.WriteString(indent + "esac\n")
}

// bashValueReply returns the compgen calls for a flag value, or "" when
// the value cannot be suggested.
func bashValueReply(f flagDef) string {
	var parts []string
	if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("$(compgen -W \"%s\" -- \"${cur}\")", strings.Join(f.Values, " ")))
	}
	for _, glob := range f.FileGlobs {
		parts = append(parts, fmt.Sprintf("$(compgen -f -X '!%s' -- \"${cur}\")", glob))
	}
	if len(f.FileGlobs) > 0 || f.Dir {
		parts = append(parts, "$(compgen -d -- \"${cur}\")")
	}
	if f.AnyFile {
		parts = append(parts, "$(compgen -f -- \"${cur}\")")
	}
	return strings.Join(parts, " ")
}

func bashFlagWords(flags []flagDef) string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
		words = append(words, "--"+f.Long)
	}
	return strings.Join(words, " ")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func writeZsh(b *strings.Builder) {
	cmds := completionCommands()

	b.WriteString("#compdef md2html\n\n")
	b.WriteString("_md2html() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        %s)\n", c.Name)
		switch {
		case len(c.Flags) > 0:
			b.WriteString("            shift words\n            (( CURRENT-- ))\n")
			b.WriteString("            _arguments -s")
			for _, f := range c.Flags {
				b.WriteString(" \\\n                " + zshFlagSpec(f))
			}
			b.WriteString("\n")
		case len(c.Args) > 0:
			fmt.Fprintf(b, "            _values '%s' %s\n", c.Name, strings.Join(c.Args, " "))
		}
		b.WriteString("            return\n            ;;\n")
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    _arguments -s")
	for _, f := range convertFlagDefs() {
		b.WriteString(" \\\n        " + zshFlagSpec(f))
	}
	b.WriteString(" \\\n        '1: :_md2html_first' \\\n        '*:input:_files'\n")
	b.WriteString("}\n\n")

	b.WriteString("_md2html_first() {\n")
	b.WriteString("    _describe -t commands 'command' commands\n")
	b.WriteString("    _files\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _md2html md2html\n")
}

// zshFlagSpec returns an _arguments spec for f.
func zshFlagSpec(f flagDef) string {
	desc := "[" + zshQuote(f.Desc) + "]"
	value := ""
	if f.TakesValue {
		value = ":" + f.Long + ":" + zshValueAction(f)
	}
	if f.Short == "" {
		return "'--" + f.Long + desc + value + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, value)
}

// zshValueAction returns the _arguments action completing a flag value.
func zshValueAction(f flagDef) string {
	files := ""
	if len(f.FileGlobs) > 0 {
		files = `_files -g "` + zshGlob(f.FileGlobs) + `"`
	}
	switch {
	case len(f.Values) > 0 && files != "":
		return `{_alternative "values:value:(` + strings.Join(f.Values, " ") + `)" "files:file:` + strings.ReplaceAll(files, `"`, `\"`) + `"}`
	case len(f.Values) > 0:
		return "(" + strings.Join(f.Values, " ") + ")"
	case files != "":
		return files
	case f.Dir:
		return "_files -/"
	case f.AnyFile:
		return "_files"
	}
	return " "
}

// zshGlob joins "*.ext" patterns into one zsh glob.
func zshGlob(globs []string) string {
	if len(globs) == 1 {
		return globs[0]
	}
	exts := make([]string, len(globs))
	for i, g := range globs {
		exts[i] = strings.TrimPrefix(g, "*.")
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// zshQuote escapes text for a single-quoted _arguments description.
func zshQuote(s string) string {
	r := strings.NewReplacer(`'`, `'\''`, "[", `\[`, "]", `\]`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func writeFish(b *strings.Builder) {
	cmds := completionCommands()
	names := strings.Join(commandNames(cmds), " ")
	noCommand := fmt.Sprintf("not __fish_seen_subcommand_from %s", names)

	b.WriteString("# fish completion for md2html\n")
	b.WriteString("complete -c md2html -f\n")
	fmt.Fprintf(b, "complete -c md2html -n '%s' -F\n", noCommand)

	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c md2html -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishQuote(c.Desc))
	}
	for _, c := range cmds {
		cond := "__fish_seen_subcommand_from " + c.Name
		if len(c.Args) > 0 {
			fmt.Fprintf(b, "complete -c md2html -n '%s' -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
		for _, f := range c.Flags {
			b.WriteString(fishFlagLine(cond, f))
		}
	}
	for _, f := range convertFlagDefs() {
		b.WriteString(fishFlagLine(noCommand, f))
	}
}

// fishFlagLine returns one complete command for f under condition cond.
func fishFlagLine(cond string, f flagDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "complete -c md2html -n '%s'", cond)
	if f.Short != "" {
		b.WriteString(" -s " + f.Short)
	}
	b.WriteString(" -l " + f.Long)
	if f.TakesValue {
		b.WriteString(" -r")
		switch {
		case len(f.FileGlobs) > 0 || f.AnyFile:
			b.WriteString(" -F")
		case f.Dir:
			b.WriteString(" -a '(__fish_complete_directories)'")
		}
		if len(f.Values) > 0 {
			b.WriteString(" -a '" + strings.Join(f.Values, " ") + "'")
		}
	}
	b.WriteString(" -d '" + fishQuote(f.Desc) + "'\n")
	return b.String()
}

// fishQuote escapes text for a single-quoted fish string.
func fishQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
