package parser

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pysub/interpreter-go/pkg/ast"
)

// arithmeticOperators is the operator set shared by binary expressions and
// augmented assignment.
var arithmeticOperators = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "//": {}, "%": {},
}

func describeKind(kind string) string {
	return strings.ReplaceAll(kind, "_", " ")
}

func (ctx *parseContext) parseStatements(container *sitter.Node) ([]ast.Statement, error) {
	children := namedChildren(container)
	body := make([]ast.Statement, 0, len(children))
	for _, node := range children {
		stmt, err := ctx.parseStatement(node)
		if err != nil {
			return nil, wrapParseError(node, err)
		}
		body = append(body, stmt)
	}
	return body, nil
}

func (ctx *parseContext) parseStatement(node *sitter.Node) (ast.Statement, error) {
	switch node.Kind() {
	case "expression_statement":
		return ctx.parseExpressionStatement(node)
	case "if_statement":
		return ctx.parseIfStatement(node)
	case "while_statement":
		return ctx.parseWhileStatement(node)
	case "function_definition":
		return ctx.parseFunctionDefinition(node)
	case "pass_statement":
		return annotateStatement(ast.NewPassStatement(), node), nil
	case "break_statement":
		return annotateStatement(ast.NewBreakStatement(), node), nil
	case "continue_statement":
		return annotateStatement(ast.NewContinueStatement(), node), nil
	case "return_statement":
		var argument ast.Expression
		if child := firstNamedChild(node); child != nil {
			expr, err := ctx.parseExpression(child)
			if err != nil {
				return nil, err
			}
			argument = expr
		}
		return annotateStatement(ast.NewReturnStatement(argument), node), nil
	case "global_statement", "nonlocal_statement":
		keyword := strings.TrimSuffix(node.Kind(), "_statement")
		names := make([]*ast.Identifier, 0)
		for _, child := range namedChildren(node) {
			id, err := parseIdentifier(child, ctx.source)
			if err != nil {
				return nil, wrapParseError(child, err)
			}
			names = append(names, id)
		}
		return annotateStatement(ast.NewGlobalStatement(keyword, names), node), nil
	default:
		return nil, unsupported(node, "statement: "+describeKind(node.Kind()))
	}
}

func (ctx *parseContext) parseExpressionStatement(node *sitter.Node) (ast.Statement, error) {
	children := namedChildren(node)
	if len(children) == 0 {
		return nil, fmt.Errorf("parser: empty expression statement")
	}
	if len(children) == 1 {
		child := children[0]
		switch child.Kind() {
		case "assignment":
			return ctx.parseAssignment(child)
		case "augmented_assignment":
			return ctx.parseAugmentedAssignment(child)
		}
		expr, err := ctx.parseExpression(child)
		if err != nil {
			return nil, err
		}
		return expr, nil
	}
	elements := make([]ast.Expression, 0, len(children))
	for _, child := range children {
		expr, err := ctx.parseExpression(child)
		if err != nil {
			return nil, err
		}
		elements = append(elements, expr)
	}
	return annotateExpression(ast.NewExpressionList(elements), node), nil
}

// parseAssignment flattens `a = b = value` into one statement with targets
// in source order.
func (ctx *parseContext) parseAssignment(node *sitter.Node) (ast.Statement, error) {
	targets := make([]ast.Expression, 0, 1)
	current := node
	for {
		target, err := ctx.parseTarget(current.ChildByFieldName("left"))
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)

		right := current.ChildByFieldName("right")
		if right == nil {
			return nil, unsupported(current, "annotation without a value")
		}
		if right.Kind() == "assignment" {
			current = right
			continue
		}
		value, err := ctx.parseExpression(right)
		if err != nil {
			return nil, err
		}
		return annotateStatement(ast.NewAssignmentStatement(targets, value), node), nil
	}
}

func (ctx *parseContext) parseTarget(node *sitter.Node) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: assignment missing target")
	}
	switch node.Kind() {
	case "pattern_list", "tuple_pattern", "list_pattern":
		elements := make([]ast.Expression, 0, node.NamedChildCount())
		for _, child := range namedChildren(node) {
			expr, err := ctx.parseTarget(child)
			if err != nil {
				return nil, err
			}
			elements = append(elements, expr)
		}
		return annotateExpression(ast.NewExpressionList(elements), node), nil
	default:
		return ctx.parseExpression(node)
	}
}

func (ctx *parseContext) parseAugmentedAssignment(node *sitter.Node) (ast.Statement, error) {
	opNode := node.ChildByFieldName("operator")
	operator := strings.TrimSuffix(ctx.text(opNode), "=")
	if _, ok := arithmeticOperators[operator]; !ok {
		return nil, unsupported(opNode, fmt.Sprintf("operator %q", ctx.text(opNode)))
	}
	target, err := ctx.parseTarget(node.ChildByFieldName("left"))
	if err != nil {
		return nil, err
	}
	value, err := ctx.parseExpression(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewAugmentedAssignment(operator, target, value), node), nil
}

// parseBlock converts the body of owner. The grammar accepts a header line
// followed by an unindented statement and yields an empty block; that is
// reported as a syntax error at owner.
func (ctx *parseContext) parseBlock(owner, node *sitter.Node) (*ast.Block, error) {
	var body []ast.Statement
	if node != nil {
		var err error
		body, err = ctx.parseStatements(node)
		if err != nil {
			return nil, err
		}
	}
	if len(body) == 0 {
		return nil, &ParseError{
			Message:  "parser: syntax error: expected an indented block",
			Location: locationForNode(owner),
		}
	}
	block := ast.NewBlock(body)
	annotateSpan(block, node)
	return block, nil
}

func (ctx *parseContext) parseIfClause(node *sitter.Node) (*ast.IfClause, error) {
	condition, err := ctx.parseExpression(node.ChildByFieldName("condition"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseBlock(node, node.ChildByFieldName("consequence"))
	if err != nil {
		return nil, err
	}
	clause := ast.NewIfClause(condition, body)
	annotateSpan(clause, node)
	return clause, nil
}

func (ctx *parseContext) parseIfStatement(node *sitter.Node) (ast.Statement, error) {
	first, err := ctx.parseIfClause(node)
	if err != nil {
		return nil, err
	}
	clauses := []*ast.IfClause{first}
	var elseBody *ast.Block
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "elif_clause":
			clause, err := ctx.parseIfClause(child)
			if err != nil {
				return nil, wrapParseError(child, err)
			}
			clauses = append(clauses, clause)
		case "else_clause":
			elseBody, err = ctx.parseBlock(child, child.ChildByFieldName("body"))
			if err != nil {
				return nil, wrapParseError(child, err)
			}
		}
	}
	return annotateStatement(ast.NewIfStatement(clauses, elseBody), node), nil
}

func (ctx *parseContext) parseWhileStatement(node *sitter.Node) (ast.Statement, error) {
	condition, err := ctx.parseExpression(node.ChildByFieldName("condition"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseBlock(node, node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	var elseBody *ast.Block
	if alt := node.ChildByFieldName("alternative"); alt != nil {
		elseBody, err = ctx.parseBlock(alt, alt.ChildByFieldName("body"))
		if err != nil {
			return nil, wrapParseError(alt, err)
		}
	}
	return annotateStatement(ast.NewWhileLoop(condition, body, elseBody), node), nil
}

func (ctx *parseContext) parseFunctionDefinition(node *sitter.Node) (ast.Statement, error) {
	id, err := parseIdentifier(node.ChildByFieldName("name"), ctx.source)
	if err != nil {
		return nil, err
	}
	params := make([]*ast.Identifier, 0)
	for _, param := range namedChildren(node.ChildByFieldName("parameters")) {
		nameNode := param
		switch param.Kind() {
		case "identifier":
		case "default_parameter", "typed_default_parameter":
			nameNode = param.ChildByFieldName("name")
		case "typed_parameter":
			nameNode = firstNamedChild(param)
		default:
			return nil, unsupported(param, "parameter: "+describeKind(param.Kind()))
		}
		pid, err := parseIdentifier(nameNode, ctx.source)
		if err != nil {
			return nil, wrapParseError(param, err)
		}
		params = append(params, pid)
	}
	body, err := ctx.parseBlock(node, node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewFunctionDefinition(id, params, body), node), nil
}
