package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"pysub/interpreter-go/pkg/ast"
	"pysub/interpreter-go/pkg/runtime"
)

// Options configures a new Interpreter. The zero value writes to os.Stdout,
// logs nothing and starts from an empty environment.
type Options struct {
	Stdout      io.Writer
	Logger      *zerolog.Logger
	Environment *runtime.Environment
}

// Interpreter executes modules against a single flat environment. An
// Interpreter is not safe for concurrent use.
type Interpreter struct {
	env       *runtime.Environment
	out       io.Writer
	log       zerolog.Logger
	loopDepth int
}

// New returns an interpreter configured by opts.
func New(opts Options) *Interpreter {
	interp := &Interpreter{
		env: opts.Environment,
		out: opts.Stdout,
		log: zerolog.Nop(),
	}
	if interp.env == nil {
		interp.env = runtime.NewEnvironment()
	}
	if interp.out == nil {
		interp.out = os.Stdout
	}
	if opts.Logger != nil {
		interp.log = opts.Logger.With().Str("component", "interpreter").Logger()
	}
	return interp
}

// Environment returns the bindings the interpreter reads and writes.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// Run executes every top-level statement of module in order. Bindings persist
// across calls, so a REPL can feed one module per input.
func (i *Interpreter) Run(module *ast.Module) error {
	if module == nil {
		return nil
	}
	i.loopDepth = 0
	for _, stmt := range module.Body {
		if err := i.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue" }

// outputError reports a failed write of print output.
type outputError struct {
	err error
}

func (e outputError) Error() string {
	return fmt.Sprintf("interpreter: write output: %v", e.err)
}

func (e outputError) Unwrap() error { return e.err }
