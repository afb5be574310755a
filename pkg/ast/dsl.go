package ast

import "pysub/interpreter-go/pkg/bigint"

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(bigint.FromInt64(value))
}

// IntText builds an integer literal from decimal text of any length.
func IntText(text string) *IntegerLiteral {
	return NewIntegerLiteral(bigint.FromDecimalString(text))
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func None() *NoneLiteral {
	return NewNoneLiteral()
}

func Interp(parts ...Expression) *StringInterpolation {
	return NewStringInterpolation(parts)
}

func List(elements ...Expression) *ExpressionList {
	return NewExpressionList(elements)
}

// Expression helpers.

func Un(operator UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryOperatorNot, operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func And(left, right Expression) *LogicalExpression {
	return NewLogicalExpression("and", left, right)
}

func Or(left, right Expression) *LogicalExpression {
	return NewLogicalExpression("or", left, right)
}

// Cmp builds a comparison chain from alternating operands and operator
// tokens: Cmp(a, "<", b, "<", c).
func Cmp(first Expression, rest ...interface{}) *ComparisonExpression {
	operands := []Expression{first}
	operators := make([]string, 0, len(rest)/2)
	for i := 0; i+1 < len(rest); i += 2 {
		operators = append(operators, rest[i].(string))
		operands = append(operands, rest[i+1].(Expression))
	}
	return NewComparisonExpression(operands, operators)
}

func CallExpr(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args, nil)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args, nil)
}

func CallKw(name string, args []Expression, keywords ...*KeywordArgument) *FunctionCall {
	return NewFunctionCall(ID(name), args, keywords)
}

func Kw(name string, value Expression) *KeywordArgument {
	return NewKeywordArgument(ID(name), value)
}

// Statement helpers.

func Mod(statements ...Statement) *Module {
	return NewModule(statements)
}

func Blk(statements ...Statement) *Block {
	return NewBlock(statements)
}

func Assign(target Expression, value Expression) *AssignmentStatement {
	return NewAssignmentStatement([]Expression{target}, value)
}

func AssignChain(value Expression, targets ...Expression) *AssignmentStatement {
	return NewAssignmentStatement(targets, value)
}

func AugAssign(operator string, target Expression, value Expression) *AugmentedAssignment {
	return NewAugmentedAssignment(operator, target, value)
}

func Iff(condition Expression, statements ...Statement) *IfStatement {
	return NewIfStatement([]*IfClause{NewIfClause(condition, NewBlock(statements))}, nil)
}

func Elif(condition Expression, statements ...Statement) *IfClause {
	return NewIfClause(condition, NewBlock(statements))
}

// IfElse builds `if ... elif ... else`; elseBody may be nil.
func IfElse(clauses []*IfClause, elseBody *Block) *IfStatement {
	return NewIfStatement(clauses, elseBody)
}

func Wloop(condition Expression, statements ...Statement) *WhileLoop {
	return NewWhileLoop(condition, NewBlock(statements), nil)
}

func Pass() *PassStatement {
	return NewPassStatement()
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func Def(name string, params []string, statements ...Statement) *FunctionDefinition {
	ids := make([]*Identifier, 0, len(params))
	for _, p := range params {
		ids = append(ids, ID(p))
	}
	return NewFunctionDefinition(ID(name), ids, NewBlock(statements))
}
