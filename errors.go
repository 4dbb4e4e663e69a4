package main

import (
	"fmt"
	"strings"
)

// DiagnosticKind classifies which pipeline stage raised a diagnostic.
type DiagnosticKind string

const (
	DiagLexError     DiagnosticKind = "LexError"
	DiagParseError   DiagnosticKind = "ParseError"
	DiagTypeError    DiagnosticKind = "TypeError"
	DiagCodegenError DiagnosticKind = "CodegenError"
)

// Diagnostic is a single compiler failure. The pipeline halts after the
// first stage that raises one; AST lowering and code generation finish
// their walk and may record several, all of which are reported.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Diagnostics accumulates the diagnostics raised by a stage. Every
// pipeline stage (Lexer, Parser, CodeGenerator) owns one; cli.go inspects
// HasErrors()/String() to decide whether to keep going.
type Diagnostics struct {
	items []Diagnostic
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.items) > 0
}

// First returns the earliest diagnostic raised, or nil if none.
func (d *Diagnostics) First() *Diagnostic {
	if len(d.items) == 0 {
		return nil
	}
	first := d.items[0]
	return &first
}

func (d *Diagnostics) String() string {
	lines := make([]string, len(d.items))
	for i, item := range d.items {
		lines[i] = item.Error()
	}
	return strings.Join(lines, "\n")
}

func lexError(pos int, format string, args ...any) Diagnostic {
	msg := fmt.Sprintf(format, args...)
	return Diagnostic{Kind: DiagLexError, Message: fmt.Sprintf("at position %d: %s", pos, msg)}
}

func parseError(expected TokenKind, found Token) Diagnostic {
	return Diagnostic{
		Kind:    DiagParseError,
		Message: fmt.Sprintf("expected %s but found %s %q", expected, found.Kind, found.Lexeme),
	}
}

func typeErrorRedeclared(name string) Diagnostic {
	return Diagnostic{Kind: DiagTypeError, Message: fmt.Sprintf("variable %q already declared in this scope", name)}
}

func typeErrorUndefined(name string) Diagnostic {
	return Diagnostic{Kind: DiagTypeError, Message: fmt.Sprintf("undefined identifier %q", name)}
}

func codegenErrorUnsupportedType(t Type) Diagnostic {
	return Diagnostic{Kind: DiagCodegenError, Message: fmt.Sprintf("unsupported type %s in generated position", t)}
}
