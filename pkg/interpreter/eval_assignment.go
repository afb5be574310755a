package interpreter

import (
	"pysub/interpreter-go/pkg/ast"
	"pysub/interpreter-go/pkg/runtime"
)

// execAssignment binds the value to the first target only; in `a = b = 1`
// the name b is left untouched.
func (i *Interpreter) execAssignment(stmt *ast.AssignmentStatement) error {
	value, err := i.evaluate(stmt.Value)
	if err != nil {
		return err
	}
	if len(stmt.Targets) == 0 {
		return nil
	}
	name, ok := targetName(stmt.Targets[0])
	if !ok {
		i.log.Debug().Int("line", ast.Line(stmt)).Msg("assignment without identifier target skipped")
		return nil
	}
	i.env.Set(name, value)
	return nil
}

func (i *Interpreter) execAugmentedAssignment(stmt *ast.AugmentedAssignment) error {
	name, ok := targetName(stmt.Target)
	if !ok {
		i.log.Debug().Int("line", ast.Line(stmt)).Msg("augmented assignment without identifier target skipped")
		return nil
	}
	current, bound := i.env.Lookup(name)
	if !bound {
		current = runtime.Int(0)
	}
	rhs, err := i.evaluate(stmt.Value)
	if err != nil {
		return err
	}
	i.env.Set(name, i.applyBinary(stmt.Operator, current, rhs, stmt))
	return nil
}

// targetName returns the first identifier on the leftmost path through
// target.
func targetName(target ast.Expression) (string, bool) {
	switch t := target.(type) {
	case *ast.Identifier:
		return t.Name, true
	case *ast.ExpressionList:
		if len(t.Elements) == 0 {
			return "", false
		}
		return targetName(t.Elements[0])
	case *ast.BinaryExpression:
		return targetName(t.Left)
	case *ast.LogicalExpression:
		return targetName(t.Left)
	case *ast.ComparisonExpression:
		if len(t.Operands) == 0 {
			return "", false
		}
		return targetName(t.Operands[0])
	case *ast.UnaryExpression:
		return targetName(t.Operand)
	case *ast.FunctionCall:
		return targetName(t.Callee)
	case *ast.StringInterpolation:
		for _, part := range t.Parts {
			if name, ok := targetName(part); ok {
				return name, true
			}
		}
		return "", false
	default:
		return "", false
	}
}
