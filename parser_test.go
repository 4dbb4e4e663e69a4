package main

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func parseSource(src string) (*Stmt, Diagnostics) {
	lex := NewLexer([]byte(src))
	return ParseProgram(lex)
}

func TestParseEmptyProgram(t *testing.T) {
	ast, diags := parseSource("")
	be.True(t, !diags.HasErrors())
	be.Equal(t, 0, len(ast.Body))
}

func TestParseVariableDeclaration(t *testing.T) {
	ast, diags := parseSource("i32s x = 1;")
	be.True(t, !diags.HasErrors())
	be.Equal(t, `(entry (var-decl "x_1" I32S (int 1)))`, ToSExpr(ast))
}

func TestParseVariablePropagation(t *testing.T) {
	ast, diags := parseSource("i32s x = 1;\ni32s y = x;\nexit y;")
	be.True(t, !diags.HasErrors())
	expected := `(entry (var-decl "x_1" I32S (int 1)) (var-decl "y_2" I32S (ident "x_1")) (exit (ident "y_2")))`
	be.Equal(t, expected, ToSExpr(ast))
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// 2 + 3 * 4 must fold as +(2, *(3,4))
	ast, diags := parseSource("i32s r = 2 + 3 * 4; exit r;")
	be.True(t, !diags.HasErrors())
	decl := ast.Body[0]
	be.Equal(t, ExprBinary, decl.Initializer.Kind)
	be.Equal(t, OpAdd, decl.Initializer.Op)
	be.Equal(t, ExprInt, decl.Initializer.Lhs.Kind)
	be.Equal(t, ExprBinary, decl.Initializer.Rhs.Kind)
	be.Equal(t, OpMul, decl.Initializer.Rhs.Op)
}

func TestParseLeftAssociativity(t *testing.T) {
	// Repeated same-precedence operators fold left: (1 - 2) - 3.
	ast, diags := parseSource("i32s r = 1 - 2 - 3; exit r;")
	be.True(t, !diags.HasErrors())
	init := ast.Body[0].Initializer
	be.Equal(t, OpSub, init.Op)
	be.Equal(t, ExprBinary, init.Lhs.Kind)
	be.Equal(t, ExprInt, init.Rhs.Kind)
	be.Equal(t, int32(3), init.Rhs.Int)
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	ast, diags := parseSource("i32s r = (2 + 3) * 4; exit r;")
	be.True(t, !diags.HasErrors())
	init := ast.Body[0].Initializer
	be.Equal(t, OpMul, init.Op)
	be.Equal(t, ExprBinary, init.Lhs.Kind)
	be.Equal(t, OpAdd, init.Lhs.Op)
}

func TestParseComparison(t *testing.T) {
	ast, diags := parseSource("i32s r = 5 < 10; exit r;")
	be.True(t, !diags.HasErrors())
	be.Equal(t, OpLt, ast.Body[0].Initializer.Op)
}

func TestParseForLoop(t *testing.T) {
	src := "i32s x = 0;\nfor i in 0 to 10 {\n    x = i;\n}\ni32s y = x;\nexit y;"
	ast, diags := parseSource(src)
	be.True(t, !diags.HasErrors())

	forStmt := ast.Body[1]
	be.Equal(t, StmtFor, forStmt.Kind)
	be.Equal(t, "i_2", forStmt.IteratorName)
	be.Equal(t, int32(0), forStmt.Begin.Int)
	be.Equal(t, int32(10), forStmt.End.Int)
	be.Equal(t, 1, len(forStmt.Body))
	be.Equal(t, StmtVariableAssignment, forStmt.Body[0].Kind)
}

func TestParseIfElseUseBeforeDeclarationFails(t *testing.T) {
	ast, diags := parseSource("if x < 1 { exit 1; } else { exit 0; }\ni32s x = 0;")
	// x is used in the if condition before its declaration further down,
	// so the if/else parses but lowering reports an undefined identifier.
	_ = ast
	be.True(t, diags.HasErrors())
}

func TestParseIfElseIfChain(t *testing.T) {
	src := "i32s x = 1;\nif x == 0 { exit 0; } else if x == 1 { exit 1; } else { exit 2; }"
	ast, diags := parseSource(src)
	be.True(t, !diags.HasErrors())

	ifStmt := ast.Body[1]
	be.Equal(t, StmtIf, ifStmt.Kind)
	be.True(t, ifStmt.ElseBranch != nil)
	be.Equal(t, ElseIf, ifStmt.ElseBranch.Kind)
	be.Equal(t, ElseBlock, ifStmt.ElseBranch.If.ElseBranch.Kind)
}

func TestUndefinedIdentifierFails(t *testing.T) {
	_, diags := parseSource("exit z;")
	be.True(t, diags.HasErrors())
	be.True(t, strings.Contains(diags.String(), "undefined identifier"))
}

func TestInitializerCannotReferenceItsOwnDeclaration(t *testing.T) {
	_, diags := parseSource("i32s x = x;")
	be.True(t, diags.HasErrors())
}

func TestInitializerCanReferenceOuterShadowedName(t *testing.T) {
	ast, diags := parseSource("i32s x = 1;\nfor i in 0 to 1 {\n    i32s x = x;\n}")
	be.True(t, !diags.HasErrors())

	outerSlot := ast.Body[0].Name
	innerDecl := ast.Body[1].Body[0]
	be.True(t, innerDecl.Name != outerSlot)
	be.Equal(t, outerSlot, innerDecl.Initializer.Ident)
}

func TestRedeclarationInSameScopeFails(t *testing.T) {
	_, diags := parseSource("i32s x = 1; i32s x = 2;")
	be.True(t, diags.HasErrors())
	be.True(t, strings.Contains(diags.String(), "already declared"))
}

func TestForLoopIteratorShadowsOuterVariable(t *testing.T) {
	ast, diags := parseSource("i32s x = 1;\nfor x in 0 to 3 { }\nexit x;")
	be.True(t, !diags.HasErrors())

	outerSlot := ast.Body[0].Name
	iteratorSlot := ast.Body[1].IteratorName
	be.True(t, iteratorSlot != outerSlot)
	// After the loop's scope closes, exit x resolves back to the outer
	// binding, not the iterator's.
	be.Equal(t, outerSlot, ast.Body[2].Value.Ident)
}

func TestVariableAssignmentToUndeclaredNameFails(t *testing.T) {
	_, diags := parseSource("x = 1;")
	be.True(t, diags.HasErrors())
}

func TestNegativeIntegerLiteralRoundTrips(t *testing.T) {
	ast, diags := parseSource("i32s x = -5; exit x;")
	be.True(t, !diags.HasErrors())
	be.Equal(t, ExprInt, ast.Body[0].Initializer.Kind)
	be.Equal(t, int32(-5), ast.Body[0].Initializer.Int)
}

func TestMostNegativeInt32LiteralRoundTrips(t *testing.T) {
	// The bare digit string "2147483648" overflows int32 on its own, even
	// though the negated value is the smallest representable int32.
	ast, diags := parseSource("i32s x = -2147483648; exit x;")
	be.True(t, !diags.HasErrors())
	be.Equal(t, ExprInt, ast.Body[0].Initializer.Kind)
	be.Equal(t, int32(-2147483648), ast.Body[0].Initializer.Int)
}

func TestIntegerLiteralOverflowFails(t *testing.T) {
	_, diags := parseSource("i32s x = 2147483648; exit x;")
	be.True(t, diags.HasErrors())
	be.True(t, strings.Contains(diags.String(), "overflow"))
}
