package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pysub/interpreter-go/pkg/ast"
)

var comparisonOperators = map[string]struct{}{
	"==": {}, "!=": {}, "<>": {}, "<": {}, ">": {}, "<=": {}, ">=": {},
}

func (ctx *parseContext) parseExpression(node *sitter.Node) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing expression")
	}
	switch node.Kind() {
	case "identifier":
		return parseIdentifier(node, ctx.source)
	case "integer":
		return ctx.parseInteger(node)
	case "float":
		return ctx.parseFloat(node)
	case "true":
		return annotateExpression(ast.NewBooleanLiteral(true), node), nil
	case "false":
		return annotateExpression(ast.NewBooleanLiteral(false), node), nil
	case "none":
		return annotateExpression(ast.NewNoneLiteral(), node), nil
	case "string":
		return ctx.parseStrings(node, []*sitter.Node{node})
	case "concatenated_string":
		return ctx.parseStrings(node, namedChildren(node))
	case "parenthesized_expression":
		inner := firstNamedChild(node)
		if inner == nil {
			return nil, fmt.Errorf("parser: empty parentheses")
		}
		return ctx.parseExpression(inner)
	case "tuple", "expression_list":
		return ctx.parseExpressionList(node)
	case "boolean_operator":
		return ctx.parseBooleanOperator(node)
	case "not_operator":
		operand, err := ctx.parseExpression(node.ChildByFieldName("argument"))
		if err != nil {
			return nil, err
		}
		return annotateExpression(ast.NewUnaryExpression(ast.UnaryOperatorNot, operand), node), nil
	case "unary_operator":
		return ctx.parseUnaryOperator(node)
	case "binary_operator":
		return ctx.parseBinaryOperator(node)
	case "comparison_operator":
		return ctx.parseComparison(node)
	case "call":
		return ctx.parseCall(node)
	default:
		return nil, unsupported(node, "expression: "+describeKind(node.Kind()))
	}
}

func (ctx *parseContext) parseExpressionList(node *sitter.Node) (ast.Expression, error) {
	children := namedChildren(node)
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

func (ctx *parseContext) parseBooleanOperator(node *sitter.Node) (ast.Expression, error) {
	operator := ctx.text(node.ChildByFieldName("operator"))
	if operator != "and" && operator != "or" {
		return nil, fmt.Errorf("parser: unknown boolean operator %q", operator)
	}
	left, err := ctx.parseExpression(node.ChildByFieldName("left"))
	if err != nil {
		return nil, err
	}
	right, err := ctx.parseExpression(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	return annotateExpression(ast.NewLogicalExpression(operator, left, right), node), nil
}

func (ctx *parseContext) parseUnaryOperator(node *sitter.Node) (ast.Expression, error) {
	opNode := node.ChildByFieldName("operator")
	var operator ast.UnaryOperator
	switch ctx.text(opNode) {
	case "-":
		operator = ast.UnaryOperatorNegate
	case "+":
		operator = ast.UnaryOperatorPlus
	default:
		return nil, unsupported(opNode, fmt.Sprintf("operator %q", ctx.text(opNode)))
	}
	operand, err := ctx.parseExpression(node.ChildByFieldName("argument"))
	if err != nil {
		return nil, err
	}
	return annotateExpression(ast.NewUnaryExpression(operator, operand), node), nil
}

func (ctx *parseContext) parseBinaryOperator(node *sitter.Node) (ast.Expression, error) {
	opNode := node.ChildByFieldName("operator")
	operator := ctx.text(opNode)
	if _, ok := arithmeticOperators[operator]; !ok {
		return nil, unsupported(opNode, fmt.Sprintf("operator %q", operator))
	}
	left, err := ctx.parseExpression(node.ChildByFieldName("left"))
	if err != nil {
		return nil, err
	}
	right, err := ctx.parseExpression(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	return annotateExpression(ast.NewBinaryExpression(operator, left, right), node), nil
}

// parseComparison collects the operands and operator tokens of a chain such
// as `a < b <= c`.
func (ctx *parseContext) parseComparison(node *sitter.Node) (ast.Expression, error) {
	operands := make([]ast.Expression, 0, 2)
	operators := make([]string, 0, 1)
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		if node.FieldNameForChild(uint32(i)) == "operators" {
			token := ctx.text(child)
			if _, ok := comparisonOperators[token]; !ok {
				return nil, unsupported(child, fmt.Sprintf("comparison %q", token))
			}
			operators = append(operators, token)
			continue
		}
		if !child.IsNamed() {
			continue
		}
		expr, err := ctx.parseExpression(child)
		if err != nil {
			return nil, err
		}
		operands = append(operands, expr)
	}
	if len(operands) != len(operators)+1 {
		return nil, fmt.Errorf("parser: malformed comparison chain")
	}
	return annotateExpression(ast.NewComparisonExpression(operands, operators), node), nil
}

func (ctx *parseContext) parseCall(node *sitter.Node) (ast.Expression, error) {
	callee, err := ctx.parseExpression(node.ChildByFieldName("function"))
	if err != nil {
		return nil, err
	}
	argsNode := node.ChildByFieldName("arguments")
	if argsNode == nil || argsNode.Kind() != "argument_list" {
		return nil, unsupported(node, "call form")
	}
	args := make([]ast.Expression, 0)
	var keywords []*ast.KeywordArgument
	for _, child := range namedChildren(argsNode) {
		switch child.Kind() {
		case "keyword_argument":
			name, err := parseIdentifier(child.ChildByFieldName("name"), ctx.source)
			if err != nil {
				return nil, wrapParseError(child, err)
			}
			value, err := ctx.parseExpression(child.ChildByFieldName("value"))
			if err != nil {
				return nil, err
			}
			kw := ast.NewKeywordArgument(name, value)
			annotateSpan(kw, child)
			keywords = append(keywords, kw)
		case "list_splat", "dictionary_splat":
			return nil, unsupported(child, "argument unpacking")
		default:
			expr, err := ctx.parseExpression(child)
			if err != nil {
				return nil, err
			}
			args = append(args, expr)
		}
	}
	return annotateExpression(ast.NewFunctionCall(callee, args, keywords), node), nil
}
