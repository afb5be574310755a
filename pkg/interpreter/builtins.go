package interpreter

import (
	"io"
	"strings"

	"pysub/interpreter-go/pkg/ast"
	"pysub/interpreter-go/pkg/runtime"
)

type builtin int

const (
	builtinNone builtin = iota
	builtinPrint
	builtinInt
	builtinFloat
	builtinStr
	builtinBool
)

func lookupBuiltin(name string) builtin {
	switch name {
	case "print":
		return builtinPrint
	case "int":
		return builtinInt
	case "float":
		return builtinFloat
	case "str":
		return builtinStr
	case "bool":
		return builtinBool
	default:
		return builtinNone
	}
}

// evaluateCall dispatches the fixed set of built-ins. Calling anything else
// yields the callee's own value and leaves the arguments unevaluated.
func (i *Interpreter) evaluateCall(call *ast.FunctionCall) (runtime.Value, error) {
	id, ok := call.Callee.(*ast.Identifier)
	if !ok {
		return i.evaluate(call.Callee)
	}
	fn := lookupBuiltin(id.Name)
	switch fn {
	case builtinPrint:
		return i.callPrint(call)
	case builtinNone:
		i.log.Debug().Str("callee", id.Name).Int("line", ast.Line(call)).Msg("call to unknown function")
		return i.env.Get(id.Name), nil
	}

	arg := runtime.None
	if len(call.Arguments) > 0 {
		val, err := i.evaluate(call.Arguments[0])
		if err != nil {
			return nil, err
		}
		arg = val
	}
	switch fn {
	case builtinInt:
		return runtime.ToInteger(arg), nil
	case builtinFloat:
		return runtime.ToFloat(arg), nil
	case builtinStr:
		return runtime.ToStr(arg), nil
	default:
		return runtime.ToBool(arg), nil
	}
}

// callPrint writes the rendered arguments joined by sep and followed by end
// (" " and "\n" unless overridden by a non-None keyword).
func (i *Interpreter) callPrint(call *ast.FunctionCall) (runtime.Value, error) {
	parts := make([]string, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		val, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		parts = append(parts, runtime.Stringify(val))
	}
	sep, end := " ", "\n"
	for _, kw := range call.Keywords {
		val, err := i.evaluate(kw.Value)
		if err != nil {
			return nil, err
		}
		if val.Kind() == runtime.KindNone {
			continue
		}
		switch kw.Name.Name {
		case "sep":
			sep = runtime.Stringify(val)
		case "end":
			end = runtime.Stringify(val)
		default:
			i.log.Debug().Str("keyword", kw.Name.Name).Msg("print keyword ignored")
		}
	}
	if _, err := io.WriteString(i.out, strings.Join(parts, sep)+end); err != nil {
		return nil, outputError{err: err}
	}
	return runtime.None, nil
}
