package parser

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pysub/interpreter-go/pkg/ast"
	"pysub/interpreter-go/pkg/bigint"
)

func (ctx *parseContext) parseInteger(node *sitter.Node) (ast.Expression, error) {
	text := strings.ReplaceAll(ctx.text(node), "_", "")
	if strings.HasSuffix(text, "j") || strings.HasSuffix(text, "J") {
		return nil, unsupported(node, "imaginary literal")
	}
	text = strings.TrimRight(text, "lL")
	if len(text) > 1 && text[0] == '0' && strings.ContainsRune("xXoObB", rune(text[1])) {
		// bigint only reads decimal; other radixes go through math/big.
		n, ok := new(big.Int).SetString(text, 0)
		if !ok {
			return nil, fmt.Errorf("parser: invalid integer literal %q", text)
		}
		text = n.String()
	}
	return annotateExpression(ast.NewIntegerLiteral(bigint.FromDecimalString(text)), node), nil
}

func (ctx *parseContext) parseFloat(node *sitter.Node) (ast.Expression, error) {
	text := strings.ReplaceAll(ctx.text(node), "_", "")
	if strings.HasSuffix(text, "j") || strings.HasSuffix(text, "J") {
		return nil, unsupported(node, "imaginary literal")
	}
	if !strings.Contains(text, ".") {
		if digits, ok := integerFromExponent(text); ok {
			return annotateExpression(ast.NewIntegerLiteral(bigint.FromDecimalString(digits)), node), nil
		}
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("parser: invalid float literal %q", text)
	}
	return annotateExpression(ast.NewFloatLiteral(value), node), nil
}

// maxIntegerExponent bounds the digits an exponent literal may expand to.
const maxIntegerExponent = 10000

// integerFromExponent expands a literal such as 1e5 or 15e-1 to its decimal
// digits, dropping any fractional part. Literals with an exponent past
// maxIntegerExponent stay floats.
func integerFromExponent(text string) (string, bool) {
	idx := strings.IndexAny(text, "eE")
	if idx <= 0 {
		return "", false
	}
	mantissa := strings.TrimLeft(text[:idx], "0")
	exp, err := strconv.Atoi(text[idx+1:])
	if err != nil || exp > maxIntegerExponent || exp < -maxIntegerExponent {
		return "", false
	}
	for _, r := range mantissa {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	switch {
	case mantissa == "":
		return "0", true
	case exp >= 0:
		return mantissa + strings.Repeat("0", exp), true
	case -exp >= len(mantissa):
		return "0", true
	default:
		return mantissa[:len(mantissa)+exp], true
	}
}

// parseStrings converts one string or a run of adjacent strings. Plain
// strings keep the raw text between their quotes; f-strings contribute
// literal segments and embedded expressions. The result is a StringLiteral
// unless some part was an f-string.
func (ctx *parseContext) parseStrings(whole *sitter.Node, parts []*sitter.Node) (ast.Expression, error) {
	var (
		pieces    []ast.Expression
		literal   strings.Builder
		formatted bool
	)
	flush := func() {
		if literal.Len() == 0 {
			return
		}
		pieces = append(pieces, ast.NewStringLiteral(literal.String()))
		literal.Reset()
	}

	for _, part := range parts {
		if part.Kind() != "string" {
			return nil, unsupported(part, "string part: "+describeKind(part.Kind()))
		}
		count := part.ChildCount()
		if count < 2 {
			return nil, fmt.Errorf("parser: malformed string literal")
		}
		startNode := part.Child(0)
		endNode := part.Child(count - 1)
		prefix := strings.ToLower(strings.TrimRight(ctx.text(startNode), `"'`))
		if strings.ContainsRune(prefix, 'b') {
			return nil, unsupported(part, "bytes literal")
		}
		if !strings.ContainsRune(prefix, 'f') {
			literal.WriteString(string(ctx.source[startNode.EndByte():endNode.StartByte()]))
			continue
		}

		cursor := startNode.EndByte()
		for i := uint(1); i < count-1; i++ {
			child := part.Child(i)
			if child == nil || child.Kind() != "interpolation" {
				continue
			}
			literal.WriteString(unescapeBraces(string(ctx.source[cursor:child.StartByte()])))
			cursor = child.EndByte()

			expr, err := ctx.parseInterpolation(child)
			if err != nil {
				return nil, err
			}
			flush()
			pieces = append(pieces, expr)
			formatted = true
		}
		literal.WriteString(unescapeBraces(string(ctx.source[cursor:endNode.StartByte()])))
	}

	if !formatted {
		return annotateExpression(ast.NewStringLiteral(literal.String()), whole), nil
	}
	flush()
	return annotateExpression(ast.NewStringInterpolation(pieces), whole), nil
}

func (ctx *parseContext) parseInterpolation(node *sitter.Node) (ast.Expression, error) {
	if spec := node.ChildByFieldName("format_specifier"); spec != nil {
		return nil, unsupported(spec, "format specifier")
	}
	if conv := node.ChildByFieldName("type_conversion"); conv != nil {
		return nil, unsupported(conv, "conversion")
	}
	return ctx.parseExpression(node.ChildByFieldName("expression"))
}

func unescapeBraces(s string) string {
	if !strings.ContainsAny(s, "{}") {
		return s
	}
	s = strings.ReplaceAll(s, "{{", "{")
	return strings.ReplaceAll(s, "}}", "}")
}
