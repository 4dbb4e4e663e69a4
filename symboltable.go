package main

import "fmt"

// symbolRecord is what a SymbolTable remembers about a declared name: its
// type, and the storage slot generated for it at declaration time.
type symbolRecord struct {
	DeclaredType Type
	Slot         string
}

// scope is a single mapping from name to symbolRecord, unique within
// itself. SymbolTable is an ordered stack of these, searched innermost
// outward on lookup.
type scope map[string]symbolRecord

// SymbolTable is the parser's scope stack. Every successful Declare mints
// a fresh, program-wide-unique storage slot for the name, so two bindings
// that share a spelling (an outer variable and a loop iterator or nested
// scope shadowing it) never end up sharing one memory location.
type SymbolTable struct {
	scopes []scope
	nextID int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

func (st *SymbolTable) PushScope() {
	st.scopes = append(st.scopes, scope{})
}

func (st *SymbolTable) PopScope() {
	st.scopes = st.scopes[:len(st.scopes)-1]
}

// Empty reports whether every scope has been popped, which should hold
// once parsing completes.
func (st *SymbolTable) Empty() bool {
	return len(st.scopes) == 0
}

// Declare adds name to the innermost scope under a newly minted storage
// slot, and returns that slot. It fails if name is already declared in
// that same innermost scope; shadowing an outer scope is permitted, and
// yields a distinct slot from the one it shadows.
func (st *SymbolTable) Declare(name string, declaredType Type) (string, error) {
	innermost := st.scopes[len(st.scopes)-1]
	if _, exists := innermost[name]; exists {
		err := typeErrorRedeclared(name)
		return "", &err
	}
	st.nextID++
	slot := fmt.Sprintf("%s_%d", name, st.nextID)
	innermost[name] = symbolRecord{DeclaredType: declaredType, Slot: slot}
	return slot, nil
}

// Lookup searches scopes innermost outward, returning the declared type
// and storage slot bound to name, and true if name is bound anywhere on
// the stack.
func (st *SymbolTable) Lookup(name string) (Type, string, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if rec, ok := st.scopes[i][name]; ok {
			return rec.DeclaredType, rec.Slot, true
		}
	}
	return "", "", false
}
