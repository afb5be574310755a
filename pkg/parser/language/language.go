package language

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Python returns the tree-sitter language for Python 3 source.
func Python() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_python.Language())
}
