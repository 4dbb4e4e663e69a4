package main

// TokenKind is the closed set of lexical token categories the lexer
// produces. Kinds that carry a value (identifiers, literals) also set
// Token.Lexeme.
type TokenKind string

const (
	EntryPoint TokenKind = "EntryPoint" // synthetic sentinel prepended to every token stream

	Exit      TokenKind = "Exit"
	TypeI32s  TokenKind = "TypeI32s"
	TypeF32s  TokenKind = "TypeF32s"
	TypeBool  TokenKind = "TypeBool"
	TypeChar  TokenKind = "TypeChar"
	For       TokenKind = "For"
	ForIn     TokenKind = "ForIn"
	ForTo     TokenKind = "ForTo"
	If        TokenKind = "If"
	Else      TokenKind = "Else"

	Identifier     TokenKind = "Identifier"
	IntegerLiteral TokenKind = "IntegerLiteral"
	FloatLiteral   TokenKind = "FloatLiteral"
	BooleanLiteral TokenKind = "BooleanLiteral"
	CharLiteral    TokenKind = "CharLiteral"

	Equals    TokenKind = "Equals"
	Semicolon TokenKind = "Semicolon"
	LeftParen  TokenKind = "LeftParen"
	RightParen TokenKind = "RightParen"
	LeftBrace  TokenKind = "LeftBrace"
	RightBrace TokenKind = "RightBrace"

	Plus  TokenKind = "Plus"
	Minus TokenKind = "Minus"
	Star  TokenKind = "Star"
	Slash TokenKind = "Slash"

	EqEq  TokenKind = "EqEq"
	NotEq TokenKind = "NotEq"
	Lt    TokenKind = "Lt"
	LtEq  TokenKind = "LtEq"
	Gt    TokenKind = "Gt"
	GtEq  TokenKind = "GtEq"

	EOF TokenKind = "EOF"
)

// Token is an immutable tagged value produced by the lexer. Lexeme is
// only meaningful for kinds that carry a value.
type Token struct {
	Kind   TokenKind
	Lexeme string
}

// keywords maps reserved words to their dedicated token kinds. "in" and
// "to" are context words that only mean something inside a For header;
// the lexer still emits dedicated kinds for them (ForIn, ForTo), and the
// parser consumes them positionally.
var keywords = map[string]TokenKind{
	"exit":  Exit,
	"i32s":  TypeI32s,
	"f32s":  TypeF32s,
	"bool":  TypeBool,
	"char":  TypeChar,
	"for":   For,
	"in":    ForIn,
	"to":    ForTo,
	"if":    If,
	"else":  Else,
	"true":  BooleanLiteral,
	"false": BooleanLiteral,
}
