package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterh/liner"

	"pysub/interpreter-go/pkg/config"
	"pysub/interpreter-go/pkg/interpreter"
	"pysub/interpreter-go/pkg/parser"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

// runCLI runs the CLI with an explicit config so the result does not depend
// on pysub.yml files above the working directory.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), config.FileName)
	writeFile(t, cfgPath, "log:\n  level: disabled\n")

	var stdout, stderr bytes.Buffer
	c := &cli{stdin: strings.NewReader(stdin), stdout: &stdout, stderr: &stderr}
	code := c.run(append([]string{"--config", cfgPath}, args...))
	return code, stdout.String(), stderr.String()
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.py")
	writeFile(t, path, "x = 2\nwhile x < 100:\n    x *= x\nprint(f\"x={x}\")\n")

	code, out, errOut := runCLI(t, "", "run", path)
	if code != exitOK {
		t.Fatalf("exit %d, stderr: %s", code, errOut)
	}
	if out != "x=256\n" {
		t.Fatalf("unexpected output %q", out)
	}

	code, out, _ = runCLI(t, "", path)
	if code != exitOK || out != "x=256\n" {
		t.Fatalf("bare file invocation: exit %d, output %q", code, out)
	}
}

func TestRunStdin(t *testing.T) {
	code, out, errOut := runCLI(t, "print(1 + 1)\n", "run", "-")
	if code != exitOK {
		t.Fatalf("exit %d, stderr: %s", code, errOut)
	}
	if out != "2\n" {
		t.Fatalf("unexpected output %q", out)
	}

	code, out, _ = runCLI(t, "print(\"implicit\")\n")
	if code != exitOK || out != "implicit\n" {
		t.Fatalf("implicit stdin: exit %d, output %q", code, out)
	}
}

func TestRunParseError(t *testing.T) {
	code, _, errOut := runCLI(t, "import os\n", "run")
	if code != exitFail {
		t.Fatalf("expected exit %d, got %d", exitFail, code)
	}
	if !strings.Contains(errOut, "<stdin>") || !strings.Contains(errOut, "line 1") {
		t.Fatalf("expected located error, got %q", errOut)
	}
}

func TestRunMissingFile(t *testing.T) {
	code, _, errOut := runCLI(t, "", "run", filepath.Join(t.TempDir(), "missing.py"))
	if code != exitFail || !strings.Contains(errOut, "failed to read") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}

func TestVersionAndHelp(t *testing.T) {
	code, out, _ := runCLI(t, "", "--version")
	if code != exitOK || strings.TrimSpace(out) != cliToolVersion {
		t.Fatalf("version: exit %d, output %q", code, out)
	}
	code, _, errOut := runCLI(t, "", "--help")
	if code != exitOK || !strings.Contains(errOut, "Usage:") {
		t.Fatalf("help: exit %d, stderr %q", code, errOut)
	}
	code, _, _ = runCLI(t, "", "--bogus")
	if code != exitSetup {
		t.Fatalf("unknown flag: expected exit %d, got %d", exitSetup, code)
	}
}

func TestSetupErrors(t *testing.T) {
	var stderr bytes.Buffer
	c := &cli{stdin: strings.NewReader(""), stdout: io.Discard, stderr: &stderr}
	if code := c.run([]string{"--config", filepath.Join(t.TempDir(), "missing.yml")}); code != exitSetup {
		t.Fatalf("missing config: expected exit %d, got %d", exitSetup, code)
	}

	code, _, _ := runCLI(t, "", "--log-level", "loud", "run")
	if code != exitSetup {
		t.Fatalf("bad log level: expected exit %d, got %d", exitSetup, code)
	}
}

func TestNewLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.Log{Level: "debug", Format: config.FormatJSON}, &buf)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug().Str("k", "v").Msg("hello")
	if !strings.Contains(buf.String(), `"message":"hello"`) || !strings.Contains(buf.String(), `"k":"v"`) {
		t.Fatalf("expected JSON log line, got %q", buf.String())
	}

	buf.Reset()
	logger, err = newLogger(config.Log{Level: "warn", Format: config.FormatConsole}, &buf)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected console output %q", buf.String())
	}
}

func TestCheckCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "test0.in"), "print(3 * 4)\n")
	writeFile(t, filepath.Join(root, "test0.out"), "12\n")
	writeFile(t, filepath.Join(root, "test1.in"), "# comparison chain\nprint(1 < 2 < 3)\n")
	writeFile(t, filepath.Join(root, "test1.out"), "False\n")

	code, out, _ := runCLI(t, "", "check", root)
	if code != exitFail {
		t.Fatalf("expected exit %d, got %d", exitFail, code)
	}
	for _, want := range []string{"FAIL test1: comparison chain", "- False", "+ True", "1 passed, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	writeFile(t, filepath.Join(root, "test1.out"), "True\n")
	code, out, _ = runCLI(t, "", "check", root)
	if code != exitOK || !strings.Contains(out, "2 passed, 0 failed") {
		t.Fatalf("exit %d, output:\n%s", code, out)
	}
}

func TestCheckUsesConfiguredDir(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, config.FileName)
	writeFile(t, cfgPath, "log:\n  level: disabled\nsuite:\n  dir: cases\n")
	writeFile(t, filepath.Join(root, "cases", "test0.in"), "print(None)\n")
	writeFile(t, filepath.Join(root, "cases", "test0.out"), "None\n")

	var stdout, stderr bytes.Buffer
	c := &cli{stdin: strings.NewReader(""), stdout: &stdout, stderr: &stderr}
	if code := c.run([]string{"--config", cfgPath, "check"}); code != exitOK {
		t.Fatalf("exit %d, stdout %q, stderr %q", code, stdout.String(), stderr.String())
	}
}

func TestCheckEmptyDir(t *testing.T) {
	code, _, errOut := runCLI(t, "", "check", t.TempDir())
	if code != exitFail || !strings.Contains(errOut, "no test cases") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}

func TestInitWritesDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")
	code, out, errOut := runCLI(t, "", "init", dir)
	if code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	path := filepath.Join(dir, config.FileName)
	if !strings.Contains(out, path) {
		t.Fatalf("expected written path in output, got %q", out)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Suite.Dir != "testcases" || cfg.Log.Format != config.FormatConsole {
		t.Fatalf("expected default settings, got %+v", cfg)
	}

	code, _, errOut = runCLI(t, "", "init", dir)
	if code != exitFail || !strings.Contains(errOut, "already exists") {
		t.Fatalf("second init: exit %d, stderr %q", code, errOut)
	}
	code, _, errOut = runCLI(t, "", "init", "--force", dir)
	if code != exitOK {
		t.Fatalf("forced init: exit %d, stderr %q", code, errOut)
	}
}

func scriptedPrompt(lines ...string) func(string) (string, error) {
	return func(string) (string, error) {
		if len(lines) == 0 {
			return "", io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}
}

func TestReadInput(t *testing.T) {
	prompt := scriptedPrompt("x = 1", "while x < 3:", "    x += 1", "", "print(x)")
	for _, want := range []string{"x = 1", "while x < 3:\n    x += 1", "print(x)"} {
		got, err := readInput(prompt)
		if err != nil {
			t.Fatalf("readInput: %v", err)
		}
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
	if _, err := readInput(prompt); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}

	// EOF inside a block still yields the block.
	got, err := readInput(scriptedPrompt("if True: # open", "    print(1)"))
	if err != nil || got != "if True: # open\n    print(1)" {
		t.Fatalf("unexpected block %q, err %v", got, err)
	}

	aborted := func(string) (string, error) { return "", liner.ErrPromptAborted }
	if _, err := readInput(aborted); !errors.Is(err, liner.ErrPromptAborted) {
		t.Fatalf("expected abort, got %v", err)
	}
}

func TestOpensBlock(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"if x:", true},
		{"while x < 3:   ", true},
		{"else: # trailing", true},
		{"x = 1", false},
		{`print(":")`, false},
		{`print("#") # not a block`, false},
	}
	for _, tc := range cases {
		if got := opensBlock(tc.line); got != tc.want {
			t.Fatalf("opensBlock(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestSessionKeepsBindings(t *testing.T) {
	p, err := parser.NewModuleParser()
	if err != nil {
		t.Fatalf("NewModuleParser: %v", err)
	}
	defer p.Close()

	var stdout, stderr bytes.Buffer
	s := &session{
		parser: p,
		interp: interpreter.New(interpreter.Options{Stdout: &stdout}),
		stdout: &stdout,
		stderr: &stderr,
	}
	s.eval(":env")
	for _, input := range []string{"x = 40", "import os", "x += 2", "print(x)"} {
		if !s.eval(input) {
			t.Fatalf("session ended early at %q", input)
		}
	}
	s.eval("name = \"py\"")
	s.eval(":env")
	if want := "(no bindings)\n42\nname = py\nx = 42\n"; stdout.String() != want {
		t.Fatalf("unexpected output %q, want %q", stdout.String(), want)
	}
	if !strings.Contains(stderr.String(), "unsupported") {
		t.Fatalf("expected parse error on stderr, got %q", stderr.String())
	}
	if s.eval("exit()") {
		t.Fatalf("expected exit() to end the session")
	}
}
