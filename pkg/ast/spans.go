package ast

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// ZeroSpan returns an empty span value.
func ZeroSpan() Span {
	return Span{}
}

// Line returns the 1-based starting line of node, or 0 when it carries no span.
func Line(node Node) int {
	if node == nil {
		return 0
	}
	return node.Span().Start.Line
}
