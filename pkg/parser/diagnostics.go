package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SourceLocation captures a source span for parser diagnostics.
type SourceLocation struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// ParseError includes a message plus a best-effort source location.
type ParseError struct {
	Message  string
	Location SourceLocation
}

func (e *ParseError) Error() string {
	if e.Location.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Location.Line, e.Location.Column)
}

func wrapParseError(node *sitter.Node, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr
	}
	if node == nil {
		return err
	}
	return &ParseError{
		Message:  err.Error(),
		Location: locationForNode(node),
	}
}

// unsupported reports a construct the grammar accepts but the language subset
// does not.
func unsupported(node *sitter.Node, what string) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf("parser: unsupported %s", what),
		Location: locationForNode(node),
	}
}

// syntaxError locates the first parse failure in root. A MISSING node marks
// the exact point where a token was expected. Otherwise the earliest ERROR
// node is inspected: an unclosed bracket inside it is reported at the
// bracket, an ERROR that begins a line is a statement that could not be
// completed and is reported where its first line ends, and any other ERROR
// is a stray token reported where it starts.
func syntaxError(root *sitter.Node, source []byte) *ParseError {
	if missing := findFirstMissingNode(root); missing != nil {
		return &ParseError{
			Message:  fmt.Sprintf("parser: syntax error: expected %s", formatExpectedKind(missing.Kind())),
			Location: missingLocation(root, missing, source),
		}
	}
	errorNode := findFirstErrorNode(root)
	if errorNode == nil {
		return &ParseError{Message: "parser: syntax error", Location: locationForNode(root)}
	}

	leaves := tokenLeaves(errorNode, source)
	if open := unclosedBracket(leaves); open != nil {
		return &ParseError{
			Message:  fmt.Sprintf("parser: syntax error: '%s' was never closed", open.Kind()),
			Location: locationForNode(open),
		}
	}
	if len(leaves) > 0 && startsLine(errorNode, source) {
		last := leaves[0]
		row := last.StartPosition().Row
		for _, leaf := range leaves[1:] {
			if leaf.StartPosition().Row != row {
				break
			}
			last = leaf
		}
		end := last.EndPosition()
		return &ParseError{
			Message:  "parser: syntax error: unexpected end of line",
			Location: pointLocation(end),
		}
	}
	return &ParseError{Message: "parser: syntax error", Location: locationForNode(errorNode)}
}

// missingLocation places a MISSING node at the end of the token before it
// when the grammar inserted it past a line break.
func missingLocation(root, missing *sitter.Node, source []byte) SourceLocation {
	var prev *sitter.Node
	for _, leaf := range tokenLeaves(root, source) {
		if leaf.EndByte() > missing.StartByte() {
			break
		}
		prev = leaf
	}
	if prev == nil || prev.EndPosition().Row == missing.StartPosition().Row {
		return locationForNode(missing)
	}
	return pointLocation(prev.EndPosition())
}

// tokenLeaves returns the non-empty tokens under node in source order,
// skipping comments and layout tokens.
func tokenLeaves(node *sitter.Node, source []byte) []*sitter.Node {
	var leaves []*sitter.Node
	walkNodes(node, func(n *sitter.Node) {
		if n.ChildCount() > 0 || n.IsMissing() || n.StartByte() >= n.EndByte() || isIgnorableNode(n) {
			return
		}
		if len(strings.TrimSpace(sliceContent(n, source))) == 0 {
			return
		}
		leaves = append(leaves, n)
	})
	return leaves
}

var closingBracket = map[string]string{"(": ")", "[": "]", "{": "}"}

// unclosedBracket returns the innermost opening bracket among leaves that
// has no matching closer.
func unclosedBracket(leaves []*sitter.Node) *sitter.Node {
	var stack []*sitter.Node
	for _, leaf := range leaves {
		kind := leaf.Kind()
		if _, ok := closingBracket[kind]; ok {
			stack = append(stack, leaf)
			continue
		}
		if len(stack) > 0 && closingBracket[stack[len(stack)-1].Kind()] == kind {
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// startsLine reports whether only indentation precedes node on its line.
func startsLine(node *sitter.Node, source []byte) bool {
	i := int(node.StartByte())
	if i > len(source) {
		return false
	}
	for i > 0 && source[i-1] != '\n' {
		if source[i-1] != ' ' && source[i-1] != '\t' {
			return false
		}
		i--
	}
	return true
}

func pointLocation(p sitter.Point) SourceLocation {
	line, column := int(p.Row)+1, int(p.Column)+1
	return SourceLocation{Line: line, Column: column, EndLine: line, EndColumn: column}
}

func locationForNode(node *sitter.Node) SourceLocation {
	if node == nil {
		return SourceLocation{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return SourceLocation{
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
	}
}

func findFirstMissingNode(root *sitter.Node) *sitter.Node {
	var best *sitter.Node
	walkNodes(root, func(node *sitter.Node) {
		if node == nil || !node.IsMissing() {
			return
		}
		if best == nil || node.StartByte() < best.StartByte() {
			best = node
		}
	})
	return best
}

func findFirstErrorNode(root *sitter.Node) *sitter.Node {
	var best *sitter.Node
	walkNodes(root, func(node *sitter.Node) {
		if node == nil || !node.IsError() {
			return
		}
		if best == nil || node.StartByte() < best.StartByte() {
			best = node
		}
	})
	return best
}

func walkNodes(root *sitter.Node, visit func(node *sitter.Node)) {
	if root == nil {
		return
	}
	visit(root)
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		walkNodes(child, visit)
	}
}

// layoutTokens names the grammar's external scanner tokens.
var layoutTokens = map[string]string{
	"_indent":    "an indented block",
	"indent":     "an indented block",
	"_dedent":    "end of block",
	"dedent":     "end of block",
	"_newline":   "end of line",
	"newline":    "end of line",
	"string_end": "end of string",
}

func formatExpectedKind(kind string) string {
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return "token"
	}
	if text, ok := layoutTokens[trimmed]; ok {
		return text
	}
	isSymbol := true
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			isSymbol = false
			break
		}
	}
	if len(trimmed) == 1 || isSymbol {
		return fmt.Sprintf("'%s'", trimmed)
	}
	return strings.ReplaceAll(trimmed, "_", " ")
}
