package ast

import "pysub/interpreter-go/pkg/bigint"

type NodeType string

const (
	NodeModule               NodeType = "Module"
	NodeBlock                NodeType = "Block"
	NodeAssignmentStatement  NodeType = "AssignmentStatement"
	NodeAugmentedAssignment  NodeType = "AugmentedAssignment"
	NodeIfStatement          NodeType = "IfStatement"
	NodeIfClause             NodeType = "IfClause"
	NodeWhileLoop            NodeType = "WhileLoop"
	NodePassStatement        NodeType = "PassStatement"
	NodeBreakStatement       NodeType = "BreakStatement"
	NodeContinueStatement    NodeType = "ContinueStatement"
	NodeReturnStatement      NodeType = "ReturnStatement"
	NodeGlobalStatement      NodeType = "GlobalStatement"
	NodeFunctionDefinition   NodeType = "FunctionDefinition"
	NodeIdentifier           NodeType = "Identifier"
	NodeIntegerLiteral       NodeType = "IntegerLiteral"
	NodeFloatLiteral         NodeType = "FloatLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeStringInterpolation  NodeType = "StringInterpolation"
	NodeBooleanLiteral       NodeType = "BooleanLiteral"
	NodeNoneLiteral          NodeType = "NoneLiteral"
	NodeLogicalExpression    NodeType = "LogicalExpression"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeComparisonExpression NodeType = "ComparisonExpression"
	NodeFunctionCall         NodeType = "FunctionCall"
	NodeKeywordArgument      NodeType = "KeywordArgument"
	NodeExpressionList       NodeType = "ExpressionList"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Marker interfaces.

// Expression nodes may also appear where a statement is expected; the
// evaluator discards their value.
type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Module

type Module struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewModule(body []Statement) *Module {
	if body == nil {
		body = make([]Statement, 0)
	}
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}

type Block struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement) *Block {
	if body == nil {
		body = make([]Statement, 0)
	}
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

// Assignment

// AssignmentStatement is `t1 = t2 = ... = value`. Targets are kept in source
// order.
type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Targets []Expression `json:"targets"`
	Value   Expression   `json:"value"`
}

func NewAssignmentStatement(targets []Expression, value Expression) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignmentStatement), Targets: targets, Value: value}
}

// AugmentedAssignment is `target op= value`. Operator holds the bare
// arithmetic token ("+", "//", ...), without the trailing "=".
type AugmentedAssignment struct {
	nodeImpl
	statementMarker

	Operator string     `json:"operator"`
	Target   Expression `json:"target"`
	Value    Expression `json:"value"`
}

func NewAugmentedAssignment(operator string, target, value Expression) *AugmentedAssignment {
	return &AugmentedAssignment{nodeImpl: newNodeImpl(NodeAugmentedAssignment), Operator: operator, Target: target, Value: value}
}

// Control flow

type IfClause struct {
	nodeImpl

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
}

func NewIfClause(condition Expression, body *Block) *IfClause {
	return &IfClause{nodeImpl: newNodeImpl(NodeIfClause), Condition: condition, Body: body}
}

// IfStatement holds the `if` clause followed by any `elif` clauses.
type IfStatement struct {
	nodeImpl
	statementMarker

	Clauses []*IfClause `json:"clauses"`
	Else    *Block      `json:"else,omitempty"`
}

func NewIfStatement(clauses []*IfClause, elseBody *Block) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Clauses: clauses, Else: elseBody}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
	Else      *Block     `json:"else,omitempty"`
}

func NewWhileLoop(condition Expression, body, elseBody *Block) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body, Else: elseBody}
}

type PassStatement struct {
	nodeImpl
	statementMarker
}

func NewPassStatement() *PassStatement {
	return &PassStatement{nodeImpl: newNodeImpl(NodePassStatement)}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

// GlobalStatement covers both `global` and `nonlocal`.
type GlobalStatement struct {
	nodeImpl
	statementMarker

	Keyword string        `json:"keyword"`
	Names   []*Identifier `json:"names"`
}

func NewGlobalStatement(keyword string, names []*Identifier) *GlobalStatement {
	return &GlobalStatement{nodeImpl: newNodeImpl(NodeGlobalStatement), Keyword: keyword, Names: names}
}

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	ID     *Identifier   `json:"id"`
	Params []*Identifier `json:"params"`
	Body   *Block        `json:"body"`
}

func NewFunctionDefinition(id *Identifier, params []*Identifier, body *Block) *FunctionDefinition {
	if params == nil {
		params = make([]*Identifier, 0)
	}
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), ID: id, Params: params, Body: body}
}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value bigint.Int `json:"-"`
}

func NewIntegerLiteral(value bigint.Int) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// StringInterpolation is a format string: literal parts are StringLiterals,
// every other part is evaluated and rendered in place.
type StringInterpolation struct {
	nodeImpl
	expressionMarker
	statementMarker

	Parts []Expression `json:"parts"`
}

func NewStringInterpolation(parts []Expression) *StringInterpolation {
	if parts == nil {
		parts = make([]Expression, 0)
	}
	return &StringInterpolation{nodeImpl: newNodeImpl(NodeStringInterpolation), Parts: parts}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NoneLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
}

func NewNoneLiteral() *NoneLiteral {
	return &NoneLiteral{nodeImpl: newNodeImpl(NodeNoneLiteral)}
}

// Operators

// LogicalExpression is a short-circuit `and` / `or`.
type LogicalExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewLogicalExpression(operator string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: operator, Left: left, Right: right}
}

type UnaryOperator string

const (
	UnaryOperatorNegate UnaryOperator = "-"
	UnaryOperatorPlus   UnaryOperator = "+"
	UnaryOperatorNot    UnaryOperator = "not"
)

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// ComparisonExpression is a comparison chain; len(Operators) == len(Operands)-1.
type ComparisonExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operands  []Expression `json:"operands"`
	Operators []string     `json:"operators"`
}

func NewComparisonExpression(operands []Expression, operators []string) *ComparisonExpression {
	return &ComparisonExpression{nodeImpl: newNodeImpl(NodeComparisonExpression), Operands: operands, Operators: operators}
}

// Calls

type KeywordArgument struct {
	nodeImpl

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewKeywordArgument(name *Identifier, value Expression) *KeywordArgument {
	return &KeywordArgument{nodeImpl: newNodeImpl(NodeKeywordArgument), Name: name, Value: value}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    Expression         `json:"callee"`
	Arguments []Expression       `json:"arguments"`
	Keywords  []*KeywordArgument `json:"keywords,omitempty"`
}

func NewFunctionCall(callee Expression, args []Expression, keywords []*KeywordArgument) *FunctionCall {
	if args == nil {
		args = make([]Expression, 0)
	}
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args, Keywords: keywords}
}

// ExpressionList is a bare comma-separated list (`a, b`), on either side of
// an assignment or as an expression statement.
type ExpressionList struct {
	nodeImpl
	expressionMarker
	statementMarker

	Elements []Expression `json:"elements"`
}

func NewExpressionList(elements []Expression) *ExpressionList {
	if elements == nil {
		elements = make([]Expression, 0)
	}
	return &ExpressionList{nodeImpl: newNodeImpl(NodeExpressionList), Elements: elements}
}
