package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestNewSymbolTableStartsWithNoScopes(t *testing.T) {
	st := NewSymbolTable()
	be.True(t, st != nil)
	be.True(t, st.Empty())
}

func TestDeclareAndLookup(t *testing.T) {
	st := NewSymbolTable()
	st.PushScope()

	slot, err := st.Declare("x", I32S)
	be.Err(t, err, nil)
	be.True(t, slot != "")

	declaredType, gotSlot, ok := st.Lookup("x")
	be.True(t, ok)
	be.Equal(t, I32S, declaredType)
	be.Equal(t, slot, gotSlot)

	st.PopScope()
	be.True(t, st.Empty())
}

func TestDeclareDuplicateInSameScopeFails(t *testing.T) {
	st := NewSymbolTable()
	st.PushScope()

	_, err := st.Declare("x", I32S)
	be.Err(t, err, nil)

	_, err = st.Declare("x", I32S)
	be.True(t, err != nil)
}

func TestLookupUndeclaredFails(t *testing.T) {
	st := NewSymbolTable()
	st.PushScope()

	_, _, ok := st.Lookup("missing")
	be.True(t, !ok)
}

func TestInnerScopeShadowsOuter(t *testing.T) {
	st := NewSymbolTable()
	st.PushScope()
	_, err := st.Declare("x", I32S)
	be.Err(t, err, nil)

	st.PushScope()
	_, err = st.Declare("x", F32S) // shadow is allowed
	be.Err(t, err, nil)

	declaredType, _, ok := st.Lookup("x")
	be.True(t, ok)
	be.Equal(t, F32S, declaredType)

	st.PopScope()

	declaredType, _, ok = st.Lookup("x")
	be.True(t, ok)
	be.Equal(t, I32S, declaredType) // outer binding is unaffected

	st.PopScope()
}

func TestLookupSearchesInnermostOutward(t *testing.T) {
	st := NewSymbolTable()
	st.PushScope()
	_, err := st.Declare("outer", I32S)
	be.Err(t, err, nil)

	st.PushScope()
	declaredType, _, ok := st.Lookup("outer")
	be.True(t, ok)
	be.Equal(t, I32S, declaredType)
	st.PopScope()

	st.PopScope()
}

func TestShadowingDeclarationsGetDistinctSlots(t *testing.T) {
	st := NewSymbolTable()
	st.PushScope()
	outerSlot, err := st.Declare("x", I32S)
	be.Err(t, err, nil)

	st.PushScope()
	innerSlot, err := st.Declare("x", I32S)
	be.Err(t, err, nil)
	be.True(t, innerSlot != outerSlot)
	st.PopScope()

	_, gotSlot, ok := st.Lookup("x")
	be.True(t, ok)
	be.Equal(t, outerSlot, gotSlot)

	st.PopScope()
}
