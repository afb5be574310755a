package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"pysub/interpreter-go/pkg/config"
	"pysub/interpreter-go/pkg/interpreter"
	"pysub/interpreter-go/pkg/parser"
	"pysub/interpreter-go/pkg/suite"
)

const cliToolVersion = "pysub 0.0.0-dev"

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1
	exitSetup = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	return c.run(args)
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	logger zerolog.Logger
}

func (c *cli) run(args []string) int {
	global := flag.NewFlagSet("pysub", flag.ContinueOnError)
	global.SetOutput(c.stderr)
	global.Usage = c.printUsage
	configPath := global.String("config", "", "path to pysub.yml")
	logLevel := global.String("log-level", "", "trace|debug|info|warn|error|disabled")
	showVersion := global.Bool("version", false, "print the version and exit")
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitSetup
	}
	if *showVersion {
		fmt.Fprintln(c.stdout, cliToolVersion)
		return exitOK
	}

	if err := c.setup(*configPath, *logLevel); err != nil {
		fmt.Fprintf(c.stderr, "pysub: %v\n", err)
		return exitSetup
	}

	rest := global.Args()
	if len(rest) == 0 {
		return c.runProgram(nil)
	}
	switch rest[0] {
	case "help":
		c.printUsage()
		return exitOK
	case "version":
		fmt.Fprintln(c.stdout, cliToolVersion)
		return exitOK
	case "run":
		return c.runProgram(rest[1:])
	case "check":
		return c.runCheck(rest[1:])
	case "repl":
		return c.runRepl(rest[1:])
	case "init":
		return c.runInit(rest[1:])
	default:
		return c.runProgram(rest)
	}
}

func (c *cli) printUsage() {
	fmt.Fprintln(c.stderr, "Usage:")
	fmt.Fprintln(c.stderr, "  pysub [--config PATH] [--log-level LEVEL] [run] [FILE|-]")
	fmt.Fprintln(c.stderr, "  pysub check [DIR] [--repo URL] [--ref REF] [--path SUB] [--fail-fast]")
	fmt.Fprintln(c.stderr, "  pysub repl")
	fmt.Fprintln(c.stderr, "  pysub init [--force] [DIR]")
	fmt.Fprintln(c.stderr, "  pysub --version")
}

// setup loads the configuration and builds the logger. An explicit path
// must exist; otherwise pysub.yml is looked up from the working directory
// and defaults apply when none is found.
func (c *cli) setup(configPath, levelOverride string) error {
	var err error
	if configPath != "" {
		c.cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	} else {
		found, findErr := config.Find(".")
		switch {
		case findErr == nil:
			c.cfg, err = config.Load(found)
			if err != nil {
				return err
			}
		case errors.Is(findErr, config.ErrNotFound):
			c.cfg = config.Default()
		default:
			return findErr
		}
	}
	if levelOverride != "" {
		c.cfg.Log.Level = strings.ToLower(strings.TrimSpace(levelOverride))
	}
	c.logger, err = newLogger(c.cfg.Log, c.stderr)
	return err
}

func newLogger(settings config.Log, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(settings.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	if settings.Format == config.FormatJSON {
		return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
	}
	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger(), nil
}

func (c *cli) runProgram(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return exitFail
	}
	name := "-"
	if len(args) == 1 {
		name = args[0]
	}

	var (
		source []byte
		err    error
	)
	if name == "-" {
		source, err = io.ReadAll(c.stdin)
		name = "<stdin>"
	} else {
		source, err = os.ReadFile(name)
	}
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to read %s: %v\n", name, err)
		return exitFail
	}

	module, err := parser.ParseSource(source)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", name, err)
		return exitFail
	}

	out := bufio.NewWriter(c.stdout)
	interp := interpreter.New(interpreter.Options{Stdout: out, Logger: &c.logger})
	runErr := interp.Run(module)
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", name, runErr)
		return exitFail
	}
	return exitOK
}

func (c *cli) runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	repo := fs.String("repo", c.cfg.Suite.Repo, "git repository holding the suite")
	ref := fs.String("ref", c.cfg.Suite.Ref, "branch, tag or commit to check out")
	subpath := fs.String("path", c.cfg.Suite.Path, "suite directory inside the repository")
	failFast := fs.Bool("fail-fast", false, "stop after the first failure")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitSetup
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(fs.Args()[1:], " "))
		return exitFail
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := c.cfg.SuiteDir()
	if fs.NArg() == 1 {
		root = fs.Arg(0)
	}
	if *repo != "" {
		checkout, err := suite.Fetch(ctx, *repo, *ref, *subpath)
		if err != nil {
			fmt.Fprintf(c.stderr, "failed to fetch suite: %v\n", err)
			return exitSetup
		}
		defer checkout.Close()
		c.logger.Info().Str("repo", *repo).Str("commit", checkout.Commit).Msg("suite fetched")
		root = checkout.Root
	}

	cases, err := suite.Discover(root)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return exitSetup
	}
	if len(cases) == 0 {
		fmt.Fprintf(c.stderr, "no test cases found under %s\n", root)
		return exitFail
	}

	report, err := suite.Run(ctx, cases, suite.Options{FailFast: *failFast, Logger: &c.logger})
	if err != nil {
		fmt.Fprintf(c.stderr, "suite aborted: %v\n", err)
		return exitFail
	}
	for _, res := range report.Failures() {
		label := res.Case.Name
		if res.Case.Title != "" {
			label += ": " + res.Case.Title
		}
		fmt.Fprintf(c.stdout, "FAIL %s\n", label)
		if res.Err != nil {
			fmt.Fprintf(c.stdout, "  %v\n", res.Err)
			continue
		}
		fmt.Fprint(c.stdout, res.Diff)
	}
	fmt.Fprintf(c.stdout, "%d passed, %d failed\n", report.Passed, report.Failed)
	if !report.OK() {
		return exitFail
	}
	return exitOK
}

// runInit writes a pysub.yml holding the default settings.
func (c *cli) runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	force := fs.Bool("force", false, "overwrite an existing pysub.yml")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitSetup
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(fs.Args()[1:], " "))
		return exitFail
	}
	dir := "."
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !*force {
		fmt.Fprintf(c.stderr, "%s already exists (use --force to overwrite)\n", path)
		return exitFail
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(c.stderr, "failed to create %s: %v\n", dir, err)
		return exitFail
	}
	if err := config.Write(config.Default(), path); err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return exitFail
	}
	fmt.Fprintf(c.stdout, "wrote %s\n", path)
	return exitOK
}
