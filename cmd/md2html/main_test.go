package main

// Notes:
// - runMain is exercised end to end against t.TempDir() trees: exit codes,
//   the stdout result line and the files written are the observable contract
// - Tests that set MD2HTML_* variables use t.Setenv and therefore do not run
//   in parallel
// - AdjustMaxProcs is left nil so tests never touch GOMAXPROCS

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2html/internal/logging"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv() *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:    time.Now,
			Stdout: stdout,
			Stderr: stderr,
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// discardLogger returns a logger that drops all output.
func discardLogger() *logging.Logger {
	return logging.New(io.Discard, logging.Quiet)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestRunMain_SingleFile - One input file
// ---------------------------------------------------------------------------

func TestRunMain_SingleFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit output path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "guide.md")
		out := filepath.Join(dir, "nested", "deeper", "out.html")
		writeFile(t, in, "# Hello\n\nWorld **bold**.\n")

		env := newTestEnv()
		code := runMain(context.Background(), []string{in, out}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr)
		}

		if got, want := env.stdout.String(), "Rendered "+in+" -> "+out+"\n"; got != want {
			t.Errorf("stdout = %q, want %q", got, want)
		}

		doc := readFile(t, out)
		for _, want := range []string{
			"<title>guide</title>",
			`<h1 id="hello">Hello</h1>`,
			"<p>World <strong>bold</strong>.</p>",
			`<li><a href="#hello">Hello</a></li>`,
		} {
			if !strings.Contains(doc, want) {
				t.Errorf("output missing %q", want)
			}
		}

		info, err := os.Stat(out)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0o644 {
			t.Errorf("output permissions = %o, want 644", perm)
		}
	})

	t.Run("default output next to input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "notes.markdown")
		writeFile(t, in, "text")

		env := newTestEnv()
		if code := runMain(context.Background(), []string{in}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit code = %d; stderr: %s", code, env.stderr)
		}

		if _, err := os.Stat(filepath.Join(dir, "notes.html")); err != nil {
			t.Errorf("expected notes.html next to input: %v", err)
		}
	})

	t.Run("explicit file of any extension", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "notes.txt")
		out := filepath.Join(dir, "out", "notes.html")
		writeFile(t, in, "# Hello\n")

		env := newTestEnv()
		if code := runMain(context.Background(), []string{in, out}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit code = %d; stderr: %s", code, env.stderr)
		}

		if got := readFile(t, out); !strings.Contains(got, `<h1 id="hello">Hello</h1>`) {
			t.Errorf("output missing heading:\n%s", got)
		}
	})

	t.Run("output flag into existing directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "a.md")
		outDir := filepath.Join(dir, "site")
		writeFile(t, in, "x")
		if err := os.Mkdir(outDir, 0o750); err != nil {
			t.Fatal(err)
		}

		env := newTestEnv()
		if code := runMain(context.Background(), []string{"-o", outDir, in}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit code = %d; stderr: %s", code, env.stderr)
		}
		if _, err := os.Stat(filepath.Join(outDir, "a.html")); err != nil {
			t.Errorf("expected a.html in output dir: %v", err)
		}
	})

	t.Run("title and flags", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "a.md")
		out := filepath.Join(dir, "a.html")
		writeFile(t, in, "# A\n\n[next](b.md)\n\n```go\nx := 1\n```\n")

		env := newTestEnv()
		args := []string{"--title", "Runbook & Co", "--no-toc", "--rewrite-links", "--highlight", "--style", "light", in, out}
		if code := runMain(context.Background(), args, env.Environment); code != ExitSuccess {
			t.Fatalf("exit code = %d; stderr: %s", code, env.stderr)
		}

		doc := readFile(t, out)
		checks := []struct {
			want string
			ok   bool
		}{
			{"<title>Runbook &amp; Co</title>", true},
			{`class="card toc"`, false},
			{`href="b.html"`, true},
			{".chroma", true},
		}
		for _, c := range checks {
			if strings.Contains(doc, c.want) != c.ok {
				t.Errorf("contains %q = %v, want %v", c.want, !c.ok, c.ok)
			}
		}
	})

	t.Run("quiet prints nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "a.md")
		writeFile(t, in, "x")

		env := newTestEnv()
		if code := runMain(context.Background(), []string{"-q", in}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit code = %d; stderr: %s", code, env.stderr)
		}
		if env.stdout.Len() != 0 || env.stderr.Len() != 0 {
			t.Errorf("quiet run wrote output: stdout %q, stderr %q", env.stdout, env.stderr)
		}
	})

	t.Run("extra CSS file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "a.md")
		css := filepath.Join(dir, "extra.css")
		writeFile(t, in, "x")
		writeFile(t, css, ".extra-rule { color: red; }")

		env := newTestEnv()
		if code := runMain(context.Background(), []string{"--css", css, in}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit code = %d; stderr: %s", code, env.stderr)
		}
		if !strings.Contains(readFile(t, filepath.Join(dir, "a.html")), ".extra-rule") {
			t.Error("extra CSS missing from output")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Directory - Batch conversion
// ---------------------------------------------------------------------------

func TestRunMain_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "docs")
	out := filepath.Join(dir, "site")
	writeFile(t, filepath.Join(src, "index.md"), "# Index")
	writeFile(t, filepath.Join(src, "guide", "setup.markdown"), "# Setup")
	writeFile(t, filepath.Join(src, "image.png"), "not markdown")

	env := newTestEnv()
	code := runMain(context.Background(), []string{"-w", "2", "-v", src, out}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, env.stderr)
	}

	for _, rel := range []string{"index.html", filepath.Join("guide", "setup.html")} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("expected %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "image.html")); err == nil {
		t.Error("non-markdown file should be skipped")
	}

	if n := strings.Count(env.stdout.String(), "Rendered "); n != 2 {
		t.Errorf("stdout has %d result lines, want 2:\n%s", n, env.stdout)
	}
	if !strings.Contains(env.stderr.String(), "batch completed") {
		t.Errorf("verbose run should log the batch summary:\n%s", env.stderr)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Errors - Exit codes and hints
// ---------------------------------------------------------------------------

func TestRunMain_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := filepath.Join(dir, "ok.md")
	page := filepath.Join(dir, "page.html")
	empty := filepath.Join(dir, "empty")
	writeFile(t, md, "x")
	writeFile(t, page, "x")
	if err := os.Mkdir(empty, 0o750); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"missing input", []string{filepath.Join(dir, "missing.md")}, ExitIO, "hint:"},
		{"output overwrites input", []string{page}, ExitUsage, "overwrite input"},
		{"empty directory", []string{empty}, ExitIO, "no markdown files"},
		{"unknown style", []string{"--style", "neon", md}, ExitUsage, "available: dark, light"},
		{"missing style file", []string{"--style", "./missing.css", md}, ExitIO, "reading style file"},
		{"unknown highlight style", []string{"--highlight-style", "nope", md}, ExitUsage, "monokai"},
		{"invalid asset path", []string{"--asset-path", filepath.Join(dir, "nope"), md}, ExitUsage, "--asset-path"},
		{"missing CSS file", []string{"--css", filepath.Join(dir, "nope.css"), md}, ExitIO, "CSS"},
		{"negative workers", []string{"-w", "-1", md}, ExitUsage, "worker"},
		{"too many workers", []string{"-w", "1000", md}, ExitUsage, "maximum"},
		{"too many arguments", []string{md, "a.html", "b.html"}, ExitUsage, "expected <input> [output]"},
		{"conflicting outputs", []string{"-o", "x.html", md, "y.html"}, ExitUsage, "output given twice"},
		{"unknown flag", []string{"--nope", md}, ExitUsage, "unknown flag"},
		{"missing config", []string{"-c", filepath.Join(dir, "nope.yaml"), md}, ExitUsage, "config file not found"},
		{"unknown help topic", []string{"help", "bogus"}, ExitUsage, "unknown command"},
		{"unsupported shell", []string{"completion", "powershell"}, ExitUsage, "unsupported shell"},
		{"too many shells", []string{"completion", "bash", "zsh"}, ExitUsage, "one shell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv()
			code := runMain(context.Background(), tt.args, env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d; stderr: %s", code, tt.wantCode, env.stderr)
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMain_NoInput(t *testing.T) {
	t.Setenv("MD2HTML_INPUT_DIR", "")
	t.Setenv("MD2HTML_CONFIG", "")

	env := newTestEnv()
	if code := runMain(context.Background(), nil, env.Environment); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(env.stderr.String(), "no input specified") {
		t.Errorf("stderr = %q", env.stderr)
	}
}

func TestRunMain_WorkersFromEnv(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.md")
	writeFile(t, in, "x")
	t.Setenv("MD2HTML_CONFIG", "")

	tests := []struct {
		name     string
		value    string
		wantCode int
		wantErr  string
	}{
		{"above maximum", "1000", ExitUsage, "maximum"},
		{"negative", "-3", ExitUsage, "must be >= 0"},
		{"unparsable is ignored", "many", ExitSuccess, "ignoring invalid environment variable"},
		{"within bounds", "2", ExitSuccess, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MD2HTML_WORKERS", tt.value)

			env := newTestEnv()
			code := runMain(context.Background(), []string{in}, env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d; stderr: %s", code, tt.wantCode, env.stderr)
			}
			if !strings.Contains(env.stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr, tt.wantErr)
			}
		})
	}
}

func TestRunMain_InputDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# A")
	t.Setenv("MD2HTML_INPUT_DIR", dir)
	t.Setenv("MD2HTML_CONFIG", "")

	env := newTestEnv()
	if code := runMain(context.Background(), nil, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, env.stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.html")); err != nil {
		t.Errorf("expected a.html: %v", err)
	}
}

func TestRunMain_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "a.md")
	out := filepath.Join(dir, "out")
	cfgPath := filepath.Join(dir, "md2html.yaml")
	writeFile(t, in, "# A")
	writeFile(t, cfgPath, "output:\n  defaultDir: "+out+"\ntoc:\n  title: On this page\n")

	env := newTestEnv()
	if code := runMain(context.Background(), []string{"-c", cfgPath, in}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, env.stderr)
	}

	doc := readFile(t, filepath.Join(out, "a.html"))
	if !strings.Contains(doc, "<h2>On this page</h2>") {
		t.Error("config TOC title not applied")
	}
}

func TestRunMain_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "a.md")
	writeFile(t, in, "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env := newTestEnv()
	if code := runMain(ctx, []string{in}, env.Environment); code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.html")); err == nil {
		t.Error("no output should be written after cancellation")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Commands - version, help, config
// ---------------------------------------------------------------------------

func TestRunMain_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
	}{
		{"version", []string{"version"}, "md2html " + Version},
		{"help", []string{"help"}, "Commands:"},
		{"help convert", []string{"help", "convert"}, "--highlight-style"},
		{"help config", []string{"help", "config"}, "md2html config"},
		{"help flag", []string{"-h"}, "--rewrite-links"},
		{"config help flag", []string{"config", "--help"}, "Print the configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv()
			if code := runMain(context.Background(), tt.args, env.Environment); code != ExitSuccess {
				t.Fatalf("exit code = %d; stderr: %s", code, env.stderr)
			}
			if !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", env.stdout, tt.wantStdout)
			}
		})
	}
}

func TestRunMain_ConfigCommand(t *testing.T) {
	t.Setenv("MD2HTML_CONFIG", "")
	t.Setenv("MD2HTML_STYLE", "light")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "c.yaml")
	writeFile(t, cfgPath, "highlight:\n  enabled: true\n")

	env := newTestEnv()
	if code := runMain(context.Background(), []string{"config", "-c", cfgPath}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, env.stderr)
	}

	out := env.stdout.String()
	for _, want := range []string{"style: light", "enabled: true", "title: Contents"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestRunMain_ConfigCommand_RejectsArgs(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	if code := runMain(context.Background(), []string{"config", "extra"}, env.Environment); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name detection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"version", true},
		{"help", true},
		{"config", true},
		{"completion", true},
		{"convert", false},
		{"doc.md", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isCommand(tt.arg); got != tt.want {
			t.Errorf("isCommand(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}
