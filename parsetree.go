package main

// Nonterminal tags the internal nodes of a ParseTree.
type Nonterminal string

const (
	NTEntryPoint          Nonterminal = "EntryPoint"
	NTStatement           Nonterminal = "Statement"
	NTVariableDeclaration Nonterminal = "VariableDeclaration"
	NTVariableAssignment  Nonterminal = "VariableAssignment"
	NTFor                 Nonterminal = "For"
	NTIf                  Nonterminal = "If"
	NTElse                Nonterminal = "Else"
	NTBlock               Nonterminal = "Block"
	NTType                Nonterminal = "Type"
	NTExpression          Nonterminal = "Expression"
)

// ParseTree is the concrete syntax tree: an ordered rooted tree whose
// internal nodes carry a Nonterminal tag and whose leaves are terminal
// copies of tokens. Children are ordered in source order. It is built in
// one pass by the Parser and consumed exactly once by AST lowering.
type ParseTree struct {
	Symbol   Nonterminal // set on internal nodes
	Terminal *Token      // set on leaves, nil on internal nodes
	Children []*ParseTree
}

func leaf(tok Token) *ParseTree {
	t := tok
	return &ParseTree{Terminal: &t}
}

func node(symbol Nonterminal, children ...*ParseTree) *ParseTree {
	return &ParseTree{Symbol: symbol, Children: children}
}

func (pt *ParseTree) IsLeaf() bool {
	return pt.Terminal != nil
}
