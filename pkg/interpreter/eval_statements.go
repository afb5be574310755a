package interpreter

import (
	"pysub/interpreter-go/pkg/ast"
	"pysub/interpreter-go/pkg/runtime"
)

// MaxLoopIterations bounds the number of body executions of a single while
// loop. Reaching it ends the loop without an error.
const MaxLoopIterations = 1_000_000

func (i *Interpreter) execStatement(stmt ast.Statement) error {
	i.log.Trace().Str("node", string(stmt.NodeType())).Int("line", ast.Line(stmt)).Msg("exec")
	switch n := stmt.(type) {
	case *ast.AssignmentStatement:
		return i.execAssignment(n)
	case *ast.AugmentedAssignment:
		return i.execAugmentedAssignment(n)
	case *ast.IfStatement:
		return i.execIf(n)
	case *ast.WhileLoop:
		return i.execWhile(n)
	case *ast.Block:
		return i.execBlock(n)
	case *ast.BreakStatement:
		if i.loopDepth > 0 {
			return breakSignal{}
		}
		return nil
	case *ast.ContinueStatement:
		if i.loopDepth > 0 {
			return continueSignal{}
		}
		return nil
	case *ast.PassStatement, *ast.FunctionDefinition, *ast.ReturnStatement, *ast.GlobalStatement:
		return nil
	case ast.Expression:
		_, err := i.evaluate(n)
		return err
	default:
		i.log.Debug().Str("node", string(stmt.NodeType())).Msg("statement ignored")
		return nil
	}
}

func (i *Interpreter) execBlock(block *ast.Block) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Body {
		if err := i.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execIf(stmt *ast.IfStatement) error {
	for _, clause := range stmt.Clauses {
		cond, err := i.evaluate(clause.Condition)
		if err != nil {
			return err
		}
		if runtime.Truthy(cond) {
			return i.execBlock(clause.Body)
		}
	}
	return i.execBlock(stmt.Else)
}

func (i *Interpreter) execWhile(loop *ast.WhileLoop) error {
	completed, err := i.runLoop(loop)
	if err != nil || !completed {
		return err
	}
	return i.execBlock(loop.Else)
}

// runLoop reports completed=true when the loop ended because its condition
// became falsy, which is the only case that runs an else clause.
func (i *Interpreter) runLoop(loop *ast.WhileLoop) (bool, error) {
	i.loopDepth++
	defer func() { i.loopDepth-- }()

	for iterations := 0; ; iterations++ {
		cond, err := i.evaluate(loop.Condition)
		if err != nil {
			return false, err
		}
		if !runtime.Truthy(cond) {
			return true, nil
		}
		if iterations == MaxLoopIterations {
			i.log.Warn().Int("line", ast.Line(loop)).Int("iterations", iterations).Msg("while loop stopped at iteration cap")
			return false, nil
		}
		if err := i.execBlock(loop.Body); err != nil {
			switch err.(type) {
			case breakSignal:
				return false, nil
			case continueSignal:
				continue
			default:
				return false, err
			}
		}
	}
}
