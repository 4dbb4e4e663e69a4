package main

import (
	"bytes"
	"fmt"
)

// CodeGenerator walks the AST once and emits a complete NASM x86-64
// program. It owns the .text output buffer, the ordered set of variables
// to reserve in .bss, and the label counter — all scoped to a single
// compilation, released when it ends.
//
// Expressions are evaluated with a two-register (eax/ebx) accumulator
// discipline: a binary operator's left operand is pushed to preserve it
// across evaluation of the right, rather than kept in a named scratch
// slot. Declared variables are tracked in an ordered slice plus a
// membership set, rather than a bare set, so .bss output lists them in
// first-declaration order and is deterministic across runs.
type CodeGenerator struct {
	text bytes.Buffer

	declaredVars     []string
	declaredVarsSeen map[string]bool

	labelCounter int

	Errors Diagnostics
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{declaredVarsSeen: map[string]bool{}}
}

func (cg *CodeGenerator) emit(format string, args ...any) {
	fmt.Fprintf(&cg.text, "    "+format+"\n", args...)
}

func (cg *CodeGenerator) emitLabel(label string) {
	fmt.Fprintf(&cg.text, "%s:\n", label)
}

func (cg *CodeGenerator) declareVar(name string) {
	if !cg.declaredVarsSeen[name] {
		cg.declaredVarsSeen[name] = true
		cg.declaredVars = append(cg.declaredVars, name)
	}
}

func (cg *CodeGenerator) nextLabelID() int {
	cg.labelCounter++
	return cg.labelCounter
}

// Generate produces the complete assembly text for an Entry AST node. If
// the AST asks the backend to lower an unsupported type, it records a
// CodegenError in cg.Errors and still returns the text generated so far;
// callers check cg.Errors before using it.
func (cg *CodeGenerator) Generate(entry *Stmt) string {
	var out bytes.Buffer
	out.WriteString("bits 64\ndefault rel\n\nsegment .text\nglobal mainCRTStartup\n\nmainCRTStartup:\n")

	for _, stmt := range entry.Body {
		cg.genStmt(stmt)
	}
	cg.text.WriteString("    ret\n")

	out.Write(cg.text.Bytes())

	out.WriteString("\nsegment .bss\n")
	for _, v := range cg.declaredVars {
		fmt.Fprintf(&out, "%s resd 1\n", v)
	}

	return out.String()
}

func (cg *CodeGenerator) genStmt(stmt *Stmt) {
	switch stmt.Kind {
	case StmtVariableDeclaration:
		cg.genVariableDeclaration(stmt)
	case StmtVariableAssignment:
		cg.genVariableAssignment(stmt)
	case StmtExit:
		cg.genExpr(stmt.Value, "eax")
	case StmtFor:
		cg.genFor(stmt)
	case StmtIf:
		cg.genIf(stmt)
	}
}

func (cg *CodeGenerator) genVariableDeclaration(stmt *Stmt) {
	if !cg.requireI32S(stmt.DeclaredType) {
		return
	}
	cg.declareVar(stmt.Name)
	cg.storeInto(stmt.Name, stmt.Initializer)
}

func (cg *CodeGenerator) genVariableAssignment(stmt *Stmt) {
	cg.storeInto(stmt.Name, stmt.Value)
}

// storeInto writes expr's value into the memory slot for name. An integer
// literal is stored directly as an immediate; anything else is evaluated
// into eax first and then written out.
func (cg *CodeGenerator) storeInto(name string, expr *Expr) {
	if expr.Kind == ExprInt {
		cg.emit("mov dword [%s], %d", name, expr.Int)
		return
	}
	cg.genExpr(expr, "eax")
	cg.emit("mov dword [%s], eax", name)
}

func (cg *CodeGenerator) genFor(stmt *Stmt) {
	cg.declareVar(stmt.IteratorName)
	id := cg.nextLabelID()
	beginLabel := fmt.Sprintf("loop_begin_%s_%d", stmt.IteratorName, id)
	endLabel := fmt.Sprintf("loop_end_%s_%d", stmt.IteratorName, id)

	cg.genExpr(stmt.Begin, "eax")
	cg.emit("mov dword [%s], eax", stmt.IteratorName)

	cg.emitLabel(beginLabel)

	cg.emit("mov eax, dword [%s]", stmt.IteratorName)
	cg.genExpr(stmt.End, "ebx")
	cg.emit("cmp eax, ebx")
	cg.emit("jg %s", endLabel)

	for _, s := range stmt.Body {
		cg.genStmt(s)
	}

	cg.emit("mov eax, dword [%s]", stmt.IteratorName)
	cg.emit("inc eax")
	cg.emit("mov dword [%s], eax", stmt.IteratorName)

	cg.emit("jmp %s", beginLabel)
	cg.emitLabel(endLabel)
}

func (cg *CodeGenerator) genIf(stmt *Stmt) {
	id := cg.nextLabelID()
	elseLabel := fmt.Sprintf("if_else_%d", id)
	endLabel := fmt.Sprintf("if_end_%d", id)

	cg.genExpr(stmt.Condition, "eax")
	cg.emit("cmp eax, 0")
	cg.emit("je %s", elseLabel)

	for _, s := range stmt.ThenBody {
		cg.genStmt(s)
	}
	cg.emit("jmp %s", endLabel)

	cg.emitLabel(elseLabel)
	if stmt.ElseBranch != nil {
		switch stmt.ElseBranch.Kind {
		case ElseIf:
			cg.genIf(stmt.ElseBranch.If)
		case ElseBlock:
			for _, s := range stmt.ElseBranch.Block {
				cg.genStmt(s)
			}
		}
	}
	cg.emitLabel(endLabel)
}

// genExpr evaluates expr into reg ("eax" or "ebx"), preserving the left
// operand of a binary expression across evaluation of the right by
// pushing/popping the full 64-bit register rather than a named scratch
// slot.
func (cg *CodeGenerator) genExpr(expr *Expr, reg string) {
	switch expr.Kind {
	case ExprInt:
		cg.emit("mov %s, %d", reg, expr.Int)

	case ExprIdent:
		cg.emit("mov %s, dword [%s]", reg, expr.Ident)

	case ExprBinary:
		cg.genExpr(expr.Lhs, "eax")
		cg.emit("push rax")
		cg.genExpr(expr.Rhs, "ebx")
		cg.emit("pop rax")
		cg.genBinOp(expr.Op)
		if reg != "eax" {
			cg.emit("mov %s, eax", reg)
		}

	case ExprFloat, ExprBool, ExprChar:
		cg.Errors.items = append(cg.Errors.items, codegenErrorUnsupportedType(exprType(expr)))
		cg.emit("mov %s, 0", reg)
	}
}

func exprType(expr *Expr) Type {
	switch expr.Kind {
	case ExprFloat:
		return F32S
	case ExprBool:
		return Bool
	case ExprChar:
		return Char
	default:
		return I32S
	}
}

func (cg *CodeGenerator) requireI32S(t Type) bool {
	if t == I32S {
		return true
	}
	cg.Errors.items = append(cg.Errors.items, codegenErrorUnsupportedType(t))
	return false
}

func (cg *CodeGenerator) genBinOp(op BinOp) {
	switch op {
	case OpAdd:
		cg.emit("add eax, ebx")
	case OpSub:
		cg.emit("sub eax, ebx")
	case OpMul:
		cg.emit("imul eax, ebx")
	case OpDiv:
		cg.emit("cdq")
		cg.emit("idiv ebx")
	case OpEq:
		cg.emitCompare("sete")
	case OpNe:
		cg.emitCompare("setne")
	case OpLt:
		cg.emitCompare("setl")
	case OpLe:
		cg.emitCompare("setle")
	case OpGt:
		cg.emitCompare("setg")
	case OpGe:
		cg.emitCompare("setge")
	}
}

func (cg *CodeGenerator) emitCompare(setInstr string) {
	cg.emit("cmp eax, ebx")
	cg.emit("%s al", setInstr)
	cg.emit("movzx eax, al")
}
