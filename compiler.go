package main

import "fmt"

// CompileResult carries everything a caller might want after a
// successful compilation: the emitted assembly, the AST it came from, and
// how many tokens the source scanned to (verbose CLI output prints both
// the count and ToSExpr(result.AST)).
type CompileResult struct {
	Assembly   string
	AST        *Stmt
	TokenCount int
}

// Compile runs the full lex -> parse -> codegen pipeline over a complete
// source string: the parser pulls tokens from the lexer as it goes, parsing
// completes before code generation starts, and the first failing stage
// short-circuits the pipeline with no partial output.
func Compile(source string) (*CompileResult, error) {
	tokenCount := CountTokens(source)

	lex := NewLexer([]byte(source))
	ast, diags := ParseProgram(lex)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s", diags.String())
	}

	gen := NewCodeGenerator()
	asm := gen.Generate(ast)
	if gen.Errors.HasErrors() {
		return nil, fmt.Errorf("%s", gen.Errors.String())
	}

	return &CompileResult{Assembly: asm, AST: ast, TokenCount: tokenCount}, nil
}

// CountTokens scans source independently of parsing and reports how many
// tokens it produced, including the synthetic leading entry token.
func CountTokens(source string) int {
	return len(NewLexer([]byte(source)).Tokens())
}

// ToSExpr renders an AST node as a parenthesized s-expression, used by
// the CLI's verbose output and by the nblgolden fixture format's "ast"
// fence.
func ToSExpr(node any) string {
	switch n := node.(type) {
	case *Stmt:
		return sexprStmt(n)
	case *Expr:
		return sexprExpr(n)
	default:
		return ""
	}
}

func sexprStmt(s *Stmt) string {
	if s == nil {
		return "()"
	}
	switch s.Kind {
	case StmtEntry:
		out := "(entry"
		for _, c := range s.Body {
			out += " " + sexprStmt(c)
		}
		return out + ")"

	case StmtVariableDeclaration:
		return fmt.Sprintf("(var-decl %q %s %s)", s.Name, s.DeclaredType, sexprExpr(s.Initializer))

	case StmtVariableAssignment:
		return fmt.Sprintf("(var-asm %q %s)", s.Name, sexprExpr(s.Value))

	case StmtFor:
		out := fmt.Sprintf("(for %q %s %s", s.IteratorName, sexprExpr(s.Begin), sexprExpr(s.End))
		for _, c := range s.Body {
			out += " " + sexprStmt(c)
		}
		return out + ")"

	case StmtIf:
		out := "(if " + sexprExpr(s.Condition)
		out += " (then"
		for _, c := range s.ThenBody {
			out += " " + sexprStmt(c)
		}
		out += ")"
		if s.ElseBranch != nil {
			switch s.ElseBranch.Kind {
			case ElseIf:
				out += " (else-if " + sexprStmt(s.ElseBranch.If) + ")"
			case ElseBlock:
				out += " (else"
				for _, c := range s.ElseBranch.Block {
					out += " " + sexprStmt(c)
				}
				out += ")"
			}
		}
		return out + ")"

	case StmtExit:
		return "(exit " + sexprExpr(s.Value) + ")"

	default:
		return "()"
	}
}

func sexprExpr(e *Expr) string {
	if e == nil {
		return "()"
	}
	switch e.Kind {
	case ExprInt:
		return fmt.Sprintf("(int %d)", e.Int)
	case ExprFloat:
		return fmt.Sprintf("(float %g)", e.Float)
	case ExprBool:
		return fmt.Sprintf("(bool %t)", e.Bool)
	case ExprChar:
		return fmt.Sprintf("(char %q)", e.Char)
	case ExprIdent:
		return fmt.Sprintf("(ident %q)", e.Ident)
	case ExprBinary:
		return fmt.Sprintf("(binary %q %s %s)", e.Op, sexprExpr(e.Lhs), sexprExpr(e.Rhs))
	default:
		return "()"
	}
}
