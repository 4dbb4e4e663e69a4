package main

import (
	"math"
	"strconv"
)

// Parser is a recursive-descent, precedence-climbing parser. Phase one
// (the *Tree methods) builds a concrete ParseTree including terminals;
// phase two (the Lowerer) walks that tree in source order to build the typed
// AST while threading a SymbolTable, so a name is only resolvable once
// its declaration has actually been reached.
type Parser struct {
	lex  *Lexer
	curr Token

	Errors Diagnostics
}

func NewParser(lex *Lexer) *Parser {
	p := &Parser{lex: lex}
	lex.NextToken()
	p.curr = Token{Kind: lex.CurrTokenKind, Lexeme: lex.CurrLexeme}
	p.Errors = lex.Errors
	return p
}

func (p *Parser) advance() {
	p.lex.NextToken()
	p.curr = Token{Kind: p.lex.CurrTokenKind, Lexeme: p.lex.CurrLexeme}
	if p.lex.Errors.HasErrors() && !p.Errors.HasErrors() {
		p.Errors = p.lex.Errors
	}
}

// expect consumes the current token if it matches kind, returning a leaf
// for the concrete tree. On mismatch it records a ParseError and returns
// a leaf for whatever was actually found, without advancing; the
// statement loops in ParseTreeRoot and parseBlockTree stop once any error
// has been recorded.
func (p *Parser) expect(kind TokenKind) *ParseTree {
	tok := p.curr
	if tok.Kind != kind {
		p.Errors.items = append(p.Errors.items, parseError(kind, tok))
		return leaf(tok)
	}
	p.advance()
	return leaf(tok)
}

// ParseTreeRoot runs phase one: builds the concrete parse tree for the
// whole token stream.
func (p *Parser) ParseTreeRoot() *ParseTree {
	var stmts []*ParseTree
	for p.curr.Kind != EOF && !p.Errors.HasErrors() {
		stmts = append(stmts, p.parseStatementTree())
	}
	return node(NTEntryPoint, stmts...)
}

func (p *Parser) parseStatementTree() *ParseTree {
	switch p.curr.Kind {
	case Exit:
		exitLeaf := p.expect(Exit)
		expr := p.parseExprTree(0)
		semi := p.expect(Semicolon)
		return node(NTStatement, exitLeaf, expr, semi)

	case For:
		return node(NTStatement, p.parseForTree())

	case If:
		return node(NTStatement, p.parseIfTree())

	case TypeI32s, TypeF32s, TypeBool, TypeChar:
		return node(NTStatement, p.parseVarDeclTree())

	case Identifier:
		return node(NTStatement, p.parseVarAsmTree())

	default:
		bad := p.curr
		p.Errors.items = append(p.Errors.items, parseError(Identifier, bad))
		p.advance()
		return node(NTStatement, leaf(bad))
	}
}

func (p *Parser) parseVarDeclTree() *ParseTree {
	typeLeaf := leaf(p.curr)
	p.advance()
	typeNode := node(NTType, typeLeaf)
	name := p.expect(Identifier)
	eq := p.expect(Equals)
	expr := p.parseExprTree(0)
	semi := p.expect(Semicolon)
	return node(NTVariableDeclaration, typeNode, name, eq, expr, semi)
}

func (p *Parser) parseVarAsmTree() *ParseTree {
	name := p.expect(Identifier)
	eq := p.expect(Equals)
	expr := p.parseExprTree(0)
	semi := p.expect(Semicolon)
	return node(NTVariableAssignment, name, eq, expr, semi)
}

func (p *Parser) parseForTree() *ParseTree {
	forLeaf := p.expect(For)
	name := p.expect(Identifier)
	inLeaf := p.expect(ForIn)
	begin := p.expect(IntegerLiteral)
	toLeaf := p.expect(ForTo)
	end := p.expect(IntegerLiteral)
	block := p.parseBlockTree()
	return node(NTFor, forLeaf, name, inLeaf, begin, toLeaf, end, block)
}

func (p *Parser) parseIfTree() *ParseTree {
	ifLeaf := p.expect(If)
	cond := p.parseExprTree(0)
	block := p.parseBlockTree()
	children := []*ParseTree{ifLeaf, cond, block}
	if elseNode := p.parseElseOptTree(); elseNode != nil {
		children = append(children, elseNode)
	}
	return node(NTIf, children...)
}

func (p *Parser) parseElseOptTree() *ParseTree {
	if p.curr.Kind != Else {
		return nil
	}
	p.advance()
	if p.curr.Kind == If {
		return node(NTElse, p.parseIfTree())
	}
	return node(NTElse, p.parseBlockTree())
}

func (p *Parser) parseBlockTree() *ParseTree {
	lbrace := p.expect(LeftBrace)
	children := []*ParseTree{lbrace}
	for p.curr.Kind != RightBrace && p.curr.Kind != EOF && !p.Errors.HasErrors() {
		children = append(children, p.parseStatementTree())
	}
	children = append(children, p.expect(RightBrace))
	return node(NTBlock, children...)
}

// precedence levels, lowest to highest: equality(1) < comparison(2) <
// additive(3) < multiplicative(4). Parentheses and primaries sit outside
// this table entirely.
func binPrecedence(kind TokenKind) int {
	switch kind {
	case EqEq, NotEq:
		return 1
	case Lt, LtEq, Gt, GtEq:
		return 2
	case Plus, Minus:
		return 3
	case Star, Slash:
		return 4
	default:
		return 0
	}
}

func tokenToOp(kind TokenKind) BinOp {
	switch kind {
	case Plus:
		return OpAdd
	case Minus:
		return OpSub
	case Star:
		return OpMul
	case Slash:
		return OpDiv
	case EqEq:
		return OpEq
	case NotEq:
		return OpNe
	case Lt:
		return OpLt
	case LtEq:
		return OpLe
	case Gt:
		return OpGt
	case GtEq:
		return OpGe
	default:
		return ""
	}
}

// parseExprTree implements precedence climbing over the concrete tree:
// repeated operators at the same precedence fold left (left-associative).
func (p *Parser) parseExprTree(minPrec int) *ParseTree {
	left := p.parsePrimaryTree()
	for {
		prec := binPrecedence(p.curr.Kind)
		if prec == 0 || prec < minPrec {
			return left
		}
		opLeaf := leaf(p.curr)
		p.advance()
		right := p.parseExprTree(prec + 1)
		left = node(NTExpression, left, opLeaf, right)
	}
}

func (p *Parser) parsePrimaryTree() *ParseTree {
	switch p.curr.Kind {
	case IntegerLiteral, FloatLiteral, BooleanLiteral, CharLiteral, Identifier:
		t := leaf(p.curr)
		p.advance()
		return t
	case Minus:
		// There is no general unary-minus expression: a numeric literal
		// immediately following a bare '-' is the only way to spell a
		// negative constant, so it is folded into the literal here
		// instead of being left unparseable.
		minusLeaf := p.expect(Minus)
		if p.curr.Kind != IntegerLiteral && p.curr.Kind != FloatLiteral {
			bad := p.curr
			p.Errors.items = append(p.Errors.items, parseError(IntegerLiteral, bad))
			return minusLeaf
		}
		litLeaf := leaf(p.curr)
		p.advance()
		return node(NTExpression, minusLeaf, litLeaf)
	case LeftParen:
		lparen := p.expect(LeftParen)
		inner := p.parseExprTree(0)
		rparen := p.expect(RightParen)
		return node(NTExpression, lparen, inner, rparen)
	default:
		bad := p.curr
		p.Errors.items = append(p.Errors.items, parseError(Identifier, bad))
		p.advance()
		return leaf(bad)
	}
}

// ---- Phase two: lowering the concrete tree into the typed AST ----

// Lowerer walks a ParseTree in source order, threading a SymbolTable and
// accumulating TypeError diagnostics as each name is declared or
// referenced.
type Lowerer struct {
	Symbols *SymbolTable
	Errors  Diagnostics
}

func NewLowerer() *Lowerer {
	return &Lowerer{Symbols: NewSymbolTable()}
}

// LowerProgram lowers an EntryPoint ParseTree into the Entry AST node. It
// pushes the outer scope on entry and pops it on completion, leaving the
// SymbolTable empty afterward.
func (lw *Lowerer) LowerProgram(pt *ParseTree) *Stmt {
	lw.Symbols.PushScope()
	body := make([]*Stmt, 0, len(pt.Children))
	for _, child := range pt.Children {
		body = append(body, lw.lowerStatement(child))
	}
	lw.Symbols.PopScope()
	return &Stmt{Kind: StmtEntry, Body: body}
}

func (lw *Lowerer) lowerStatement(pt *ParseTree) *Stmt {
	first := pt.Children[0]

	if first.IsLeaf() && first.Terminal.Kind == Exit {
		value := lw.lowerExpr(pt.Children[1])
		return &Stmt{Kind: StmtExit, Value: value}
	}

	single := first
	switch single.Symbol {
	case NTVariableDeclaration:
		return lw.lowerVarDecl(single)
	case NTVariableAssignment:
		return lw.lowerVarAsm(single)
	case NTFor:
		return lw.lowerFor(single)
	case NTIf:
		return lw.lowerIf(single)
	default:
		return &Stmt{Kind: StmtExit, Value: &Expr{Kind: ExprInt}}
	}
}

func (lw *Lowerer) lowerVarDecl(pt *ParseTree) *Stmt {
	typeNode := pt.Children[0]
	nameLeaf := pt.Children[1]
	exprNode := pt.Children[3]

	declaredType, _ := typeFromToken(typeNode.Children[0].Terminal.Kind)
	name := nameLeaf.Terminal.Lexeme

	// The initializer is lowered (and any Idents inside it resolved)
	// before the declaration becomes visible, so `i32s x = x;` only
	// succeeds if an outer x already exists.
	initializer := lw.lowerExpr(exprNode)

	slot, err := lw.Symbols.Declare(name, declaredType)
	if err != nil {
		lw.Errors.items = append(lw.Errors.items, *err.(*Diagnostic))
		slot = name
	}

	return &Stmt{Kind: StmtVariableDeclaration, Name: slot, DeclaredType: declaredType, Initializer: initializer}
}

func (lw *Lowerer) lowerVarAsm(pt *ParseTree) *Stmt {
	nameLeaf := pt.Children[0]
	exprNode := pt.Children[2]

	name := nameLeaf.Terminal.Lexeme
	value := lw.lowerExpr(exprNode)

	slot := name
	if _, s, ok := lw.Symbols.Lookup(name); ok {
		slot = s
	} else {
		lw.Errors.items = append(lw.Errors.items, typeErrorUndefined(name))
	}

	return &Stmt{Kind: StmtVariableAssignment, Name: slot, Value: value}
}

func (lw *Lowerer) lowerFor(pt *ParseTree) *Stmt {
	name := pt.Children[1].Terminal.Lexeme
	begin := lw.lowerIntLiteral(pt.Children[3])
	end := lw.lowerIntLiteral(pt.Children[5])
	blockNode := pt.Children[6]

	lw.Symbols.PushScope()
	slot, err := lw.Symbols.Declare(name, I32S)
	if err != nil {
		lw.Errors.items = append(lw.Errors.items, *err.(*Diagnostic))
		slot = name
	}
	body := lw.lowerBlock(blockNode)
	lw.Symbols.PopScope()

	return &Stmt{Kind: StmtFor, IteratorName: slot, Begin: begin, End: end, Body: body}
}

func (lw *Lowerer) lowerIntLiteral(pt *ParseTree) *Expr {
	return lw.lowerExpr(pt)
}

func (lw *Lowerer) lowerIf(pt *ParseTree) *Stmt {
	cond := lw.lowerExpr(pt.Children[1])
	body := lw.lowerBlock(pt.Children[2])

	var elseBranch *ElseClause
	if len(pt.Children) > 3 {
		elseBranch = lw.lowerElse(pt.Children[3])
	}

	return &Stmt{Kind: StmtIf, Condition: cond, ThenBody: body, ElseBranch: elseBranch}
}

func (lw *Lowerer) lowerElse(pt *ParseTree) *ElseClause {
	inner := pt.Children[0]
	if inner.Symbol == NTIf {
		return &ElseClause{Kind: ElseIf, If: lw.lowerIf(inner)}
	}
	return &ElseClause{Kind: ElseBlock, Block: lw.lowerBlock(inner)}
}

func (lw *Lowerer) lowerBlock(pt *ParseTree) []*Stmt {
	lw.Symbols.PushScope()
	var stmts []*Stmt
	for _, child := range pt.Children {
		if child.IsLeaf() {
			continue // LeftBrace / RightBrace
		}
		stmts = append(stmts, lw.lowerStatement(child))
	}
	lw.Symbols.PopScope()
	return stmts
}

func (lw *Lowerer) lowerExpr(pt *ParseTree) *Expr {
	if pt.IsLeaf() {
		return lw.lowerPrimary(*pt.Terminal)
	}

	// NTExpression with 3 children is either a binary reduction
	// (left, operator, right) or a parenthesized sub-expression
	// (LeftParen, inner, RightParen).
	if pt.Children[0].IsLeaf() && pt.Children[0].Terminal.Kind == LeftParen {
		return lw.lowerExpr(pt.Children[1])
	}

	// A 2-child NTExpression is a negated literal (Minus, literal). An
	// integer literal is parsed and range-checked with its sign already
	// applied, so the most negative representable value (whose bare
	// digit string overflows int32 on its own) still parses cleanly.
	if len(pt.Children) == 2 {
		litTok := *pt.Children[1].Terminal
		if litTok.Kind == IntegerLiteral {
			return lw.parseSignedIntLiteral(litTok, true)
		}
		lit := lw.lowerPrimary(litTok)
		lit.Float = -lit.Float
		return lit
	}

	lhs := lw.lowerExpr(pt.Children[0])
	op := tokenToOp(pt.Children[1].Terminal.Kind)
	rhs := lw.lowerExpr(pt.Children[2])
	return &Expr{Kind: ExprBinary, Op: op, Lhs: lhs, Rhs: rhs}
}

func (lw *Lowerer) lowerPrimary(tok Token) *Expr {
	switch tok.Kind {
	case IntegerLiteral:
		return lw.parseSignedIntLiteral(tok, false)

	case FloatLiteral:
		f, _ := strconv.ParseFloat(tok.Lexeme, 32)
		return &Expr{Kind: ExprFloat, Float: float32(f)}

	case BooleanLiteral:
		return &Expr{Kind: ExprBool, Bool: tok.Lexeme == "true"}

	case CharLiteral:
		var c byte
		if len(tok.Lexeme) > 0 {
			c = tok.Lexeme[0]
		}
		return &Expr{Kind: ExprChar, Char: c}

	case Identifier:
		slot := tok.Lexeme
		if _, s, ok := lw.Symbols.Lookup(tok.Lexeme); ok {
			slot = s
		} else {
			lw.Errors.items = append(lw.Errors.items, typeErrorUndefined(tok.Lexeme))
		}
		return &Expr{Kind: ExprIdent, Ident: slot}

	default:
		return &Expr{Kind: ExprInt}
	}
}

// parseSignedIntLiteral parses tok's digit string, applies the sign, and
// range-checks the result against int32 as a single step. The digit
// string alone can overflow int32 for the most negative representable
// value (its magnitude is one past int32's max), so the sign must be
// folded in before the range check rather than after.
func (lw *Lowerer) parseSignedIntLiteral(tok Token, negative bool) *Expr {
	n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err == nil && negative {
		n = -n
	}
	if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
		lw.Errors.items = append(lw.Errors.items, Diagnostic{Kind: DiagParseError, Message: "integer literal overflow: " + tok.Lexeme})
		return &Expr{Kind: ExprInt}
	}
	return &Expr{Kind: ExprInt, Int: int32(n)}
}

// ParseProgram runs both phases and returns the Entry AST node together
// with the accumulated diagnostics (syntax errors from phase one and
// type errors from phase two, whichever occurred first in the pipeline).
func ParseProgram(lex *Lexer) (*Stmt, Diagnostics) {
	parser := NewParser(lex)
	tree := parser.ParseTreeRoot()
	if parser.Errors.HasErrors() {
		return nil, parser.Errors
	}

	lowerer := NewLowerer()
	entry := lowerer.LowerProgram(tree)
	return entry, lowerer.Errors
}
