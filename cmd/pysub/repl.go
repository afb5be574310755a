package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"pysub/interpreter-go/pkg/interpreter"
	"pysub/interpreter-go/pkg/parser"
	"pysub/interpreter-go/pkg/runtime"
)

const (
	promptMain  = ">>> "
	promptCont  = "... "
	historyFile = ".pysub_history"
)

func (c *cli) runRepl(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(args, " "))
		return exitFail
	}

	p, err := parser.NewModuleParser()
	if err != nil {
		fmt.Fprintf(c.stderr, "pysub: %v\n", err)
		return exitSetup
	}
	defer p.Close()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(c.stdout, cliToolVersion+" (exit() or Ctrl-D to quit, :env lists bindings)")
	s := &session{
		parser: p,
		interp: interpreter.New(interpreter.Options{Stdout: c.stdout, Logger: &c.logger}),
		stdout: c.stdout,
		stderr: c.stderr,
	}
	for {
		code, err := readInput(ln.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(c.stdout)
			return exitOK
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if !s.eval(code) {
			return exitOK
		}
	}
}

// session evaluates REPL inputs against one interpreter so bindings carry
// over between inputs.
type session struct {
	parser *parser.ModuleParser
	interp *interpreter.Interpreter
	stdout io.Writer
	stderr io.Writer
}

// eval runs one input and reports whether the session should continue.
// Errors are printed and do not end the session.
func (s *session) eval(code string) bool {
	switch strings.TrimSpace(code) {
	case "exit()", "quit()":
		return false
	case ":env":
		s.printBindings()
		return true
	}
	module, err := s.parser.ParseModule([]byte(code + "\n"))
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return true
	}
	if err := s.interp.Run(module); err != nil {
		fmt.Fprintln(s.stderr, err)
	}
	return true
}

func (s *session) printBindings() {
	env := s.interp.Environment()
	if env.Len() == 0 {
		fmt.Fprintln(s.stdout, "(no bindings)")
		return
	}
	for _, name := range env.Keys() {
		fmt.Fprintf(s.stdout, "%s = %s\n", name, runtime.Stringify(env.Get(name)))
	}
}

// readInput reads one REPL entry. A line opening a block (ending in ':')
// starts a multi-line entry that ends at the first blank line.
func readInput(prompt func(string) (string, error)) (string, error) {
	line, err := prompt(promptMain)
	if err != nil {
		return "", err
	}
	if !opensBlock(line) {
		return line, nil
	}

	lines := []string{line}
	for {
		next, err := prompt(promptCont)
		if errors.Is(err, io.EOF) || (err == nil && strings.TrimSpace(next) == "") {
			break
		}
		if err != nil {
			return "", err
		}
		lines = append(lines, next)
	}
	return strings.Join(lines, "\n"), nil
}

func opensBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	if idx := strings.Index(trimmed, "#"); idx >= 0 && !strings.ContainsAny(trimmed[:idx], `"'`) {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}
	return strings.HasSuffix(trimmed, ":")
}
