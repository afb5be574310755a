package interpreter

import (
	"strings"

	"pysub/interpreter-go/pkg/ast"
	"pysub/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluate(expr ast.Expression) (runtime.Value, error) {
	switch n := expr.(type) {
	case nil:
		return runtime.None, nil
	case *ast.Identifier:
		return i.env.Get(n.Name), nil
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NoneLiteral:
		return runtime.None, nil
	case *ast.StringInterpolation:
		return i.evaluateInterpolation(n)
	case *ast.LogicalExpression:
		return i.evaluateLogical(n)
	case *ast.UnaryExpression:
		return i.evaluateUnary(n)
	case *ast.BinaryExpression:
		left, err := i.evaluate(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluate(n.Right)
		if err != nil {
			return nil, err
		}
		return i.applyBinary(n.Operator, left, right, n), nil
	case *ast.ComparisonExpression:
		return i.evaluateComparison(n)
	case *ast.FunctionCall:
		return i.evaluateCall(n)
	case *ast.ExpressionList:
		// Only the first element of a bare list is evaluated.
		if len(n.Elements) == 0 {
			return runtime.None, nil
		}
		return i.evaluate(n.Elements[0])
	default:
		i.log.Debug().Str("node", string(expr.NodeType())).Msg("expression evaluated to None")
		return runtime.None, nil
	}
}

func (i *Interpreter) evaluateInterpolation(expr *ast.StringInterpolation) (runtime.Value, error) {
	var b strings.Builder
	for _, part := range expr.Parts {
		if lit, ok := part.(*ast.StringLiteral); ok {
			b.WriteString(lit.Value)
			continue
		}
		val, err := i.evaluate(part)
		if err != nil {
			return nil, err
		}
		b.WriteString(runtime.Stringify(val))
	}
	return runtime.StringValue{Val: b.String()}, nil
}

// evaluateLogical short-circuits and always yields a Bool.
func (i *Interpreter) evaluateLogical(expr *ast.LogicalExpression) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	truthy := runtime.Truthy(left)
	switch expr.Operator {
	case "or":
		if truthy {
			return runtime.Bool(true), nil
		}
	case "and":
		if !truthy {
			return runtime.Bool(false), nil
		}
	default:
		i.log.Debug().Str("operator", expr.Operator).Msg("unknown logical operator")
		return runtime.None, nil
	}
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}
	return runtime.Bool(runtime.Truthy(right)), nil
}

func (i *Interpreter) evaluateUnary(expr *ast.UnaryExpression) (runtime.Value, error) {
	operand, err := i.evaluate(expr.Operand)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.UnaryOperatorNot:
		return runtime.Bool(!runtime.Truthy(operand)), nil
	case ast.UnaryOperatorNegate:
		return runtime.Negate(operand), nil
	default:
		return operand, nil
	}
}

// evaluateComparison evaluates every operand once, left to right, then
// applies the operators pairwise and stops at the first pair that fails.
func (i *Interpreter) evaluateComparison(expr *ast.ComparisonExpression) (runtime.Value, error) {
	values := make([]runtime.Value, len(expr.Operands))
	for idx, operand := range expr.Operands {
		val, err := i.evaluate(operand)
		if err != nil {
			return nil, err
		}
		values[idx] = val
	}
	if len(expr.Operators) == 0 {
		if len(values) == 0 {
			return runtime.None, nil
		}
		return values[0], nil
	}
	for idx, token := range expr.Operators {
		if idx+1 >= len(values) {
			break
		}
		op, ok := runtime.ParseCompareOperator(token)
		if !ok {
			i.log.Debug().Str("operator", token).Msg("unknown comparison operator")
			return runtime.Bool(false), nil
		}
		if !runtime.Compare(op, values[idx], values[idx+1]) {
			return runtime.Bool(false), nil
		}
	}
	return runtime.Bool(true), nil
}

func (i *Interpreter) applyBinary(token string, left, right runtime.Value, node ast.Node) runtime.Value {
	op, ok := runtime.ParseBinaryOperator(token)
	if !ok {
		i.log.Debug().Str("operator", token).Int("line", ast.Line(node)).Msg("unknown operator evaluated to None")
		return runtime.None
	}
	result, supported := runtime.ApplyBinary(op, left, right)
	if !supported {
		i.log.Debug().
			Str("operator", op.String()).
			Str("left", left.Kind().String()).
			Str("right", right.Kind().String()).
			Int("line", ast.Line(node)).
			Msg("unsupported operands evaluated to None")
	}
	return result
}
