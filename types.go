package main

// Type is Noble's closed set of declared types. Only I32S is lowered by
// the code generator; the others are reserved for future arithmetic
// support and are otherwise rejected by the backend.
type Type string

const (
	I32S Type = "I32S"
	F32S Type = "F32S"
	Bool Type = "Bool"
	Char Type = "Char"
)

func typeFromToken(kind TokenKind) (Type, bool) {
	switch kind {
	case TypeI32s:
		return I32S, true
	case TypeF32s:
		return F32S, true
	case TypeBool:
		return Bool, true
	case TypeChar:
		return Char, true
	default:
		return "", false
	}
}
