package main

// StmtKind tags the variants of the AST's statement nodes.
type StmtKind string

const (
	StmtEntry               StmtKind = "Entry"
	StmtVariableDeclaration StmtKind = "VariableDeclaration"
	StmtVariableAssignment  StmtKind = "VariableAssignment"
	StmtFor                 StmtKind = "For"
	StmtIf                  StmtKind = "If"
	StmtExit                StmtKind = "Exit"
)

// Stmt is a lowered, semantically meaningful statement node. Only the
// fields relevant to Kind are populated; the AST is strictly a tree, no
// node is shared or cyclic.
type Stmt struct {
	Kind StmtKind

	// StmtEntry
	Body []*Stmt

	// StmtVariableDeclaration
	// Name is the scope-unique storage slot minted for this declaration,
	// not necessarily the raw source spelling.
	Name         string
	DeclaredType Type
	Initializer  *Expr

	// StmtVariableAssignment
	Value *Expr

	// StmtFor
	// IteratorName is likewise a scope-unique storage slot.
	IteratorName string
	Begin        *Expr
	End          *Expr
	// Body reused for the loop body

	// StmtIf
	Condition  *Expr
	ThenBody   []*Stmt
	ElseBranch *ElseClause

	// StmtExit reuses Value
}

// ElseKind tags whether an Else clause chains into another If
// ("else if") or terminates in a plain block.
type ElseKind string

const (
	ElseIf    ElseKind = "ElseIf"
	ElseBlock ElseKind = "ElseBlock"
)

// ElseClause represents the ElseOpt production: either a chained If (ElseIf)
// or a terminal statement sequence (ElseBlock).
type ElseClause struct {
	Kind  ElseKind
	If    *Stmt   // set when Kind == ElseIf
	Block []*Stmt // set when Kind == ElseBlock
}

// ExprKind tags the variants of the AST's recursive expression nodes.
type ExprKind string

const (
	ExprInt    ExprKind = "Int"
	ExprFloat  ExprKind = "Float"
	ExprBool   ExprKind = "Bool"
	ExprChar   ExprKind = "Char"
	ExprIdent  ExprKind = "Ident"
	ExprBinary ExprKind = "Binary"
)

// BinOp is the closed set of binary operators the grammar produces.
type BinOp string

const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "/"
	OpEq  BinOp = "=="
	OpNe  BinOp = "!="
	OpLt  BinOp = "<"
	OpLe  BinOp = "<="
	OpGt  BinOp = ">"
	OpGe  BinOp = ">="
)

// Expr is finite and acyclic: every child is fully constructed before
// its parent node exists.
type Expr struct {
	Kind ExprKind

	Int   int32   // ExprInt
	Float float32 // ExprFloat
	Bool  bool    // ExprBool
	Char  byte    // ExprChar
	Ident string  // ExprIdent; the referenced binding's storage slot

	// ExprBinary
	Op       BinOp
	Lhs, Rhs *Expr
}
