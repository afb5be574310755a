package suite

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"pysub/interpreter-go/pkg/interpreter"
	"pysub/interpreter-go/pkg/parser"
)

// Options configures a suite run.
type Options struct {
	// FailFast stops after the first failing case.
	FailFast bool
	// Logger receives per-case events; nil disables logging. Interpreter
	// events are not forwarded.
	Logger *zerolog.Logger
}

// Result is the outcome of a single case.
type Result struct {
	Case     Case
	Passed   bool
	Output   string
	Diff     string
	Err      error
	Duration time.Duration
}

// Report aggregates results in run order.
type Report struct {
	Results []Result
	Passed  int
	Failed  int
}

// OK reports whether every case that ran passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Failures returns the failing results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Run executes every case with a fresh interpreter and compares its output
// byte-for-byte against the expected file. Parse errors fail the case
// rather than the run. The returned error is non-nil only when ctx is
// cancelled or a file cannot be read.
func Run(ctx context.Context, cases []Case, opts Options) (*Report, error) {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "suite").Logger()
	}

	p, err := parser.NewModuleParser()
	if err != nil {
		return nil, fmt.Errorf("suite: %w", err)
	}
	defer p.Close()

	report := &Report{}
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := runCase(p, c)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, res)
		if res.Passed {
			report.Passed++
			logger.Debug().Str("case", c.Name).Dur("duration", res.Duration).Msg("pass")
			continue
		}
		report.Failed++
		event := logger.Info().Str("case", c.Name).Str("title", c.Title)
		if res.Err != nil {
			event = event.Err(res.Err)
		}
		event.Msg("fail")
		if opts.FailFast {
			break
		}
	}
	return report, nil
}

func runCase(p *parser.ModuleParser, c Case) (Result, error) {
	res := Result{Case: c}
	source, err := os.ReadFile(c.Input)
	if err != nil {
		return res, fmt.Errorf("suite: read %s: %w", c.Input, err)
	}
	expected, err := os.ReadFile(c.Expected)
	if err != nil {
		return res, fmt.Errorf("suite: read %s: %w", c.Expected, err)
	}

	start := time.Now()
	module, err := p.ParseModule(source)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res, nil
	}
	var out bytes.Buffer
	if err := interpreter.New(interpreter.Options{Stdout: &out}).Run(module); err != nil {
		res.Err = err
	}
	res.Duration = time.Since(start)
	res.Output = out.String()
	res.Passed = res.Err == nil && bytes.Equal(out.Bytes(), expected)
	if !res.Passed && res.Err == nil {
		res.Diff = LineDiff(string(expected), res.Output)
	}
	return res, nil
}
