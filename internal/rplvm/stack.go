package rplvm

import (
	"db48x/internal/diagnostic"
	"db48x/internal/objmem"
)

// Stack is the value stack: a LIFO of strong handles into an Arena.
// Grounded on the spec's "LIFO of strong handles" contract and on
// vovakirdan-surge/internal/vm/frame.go's operand-stack shape, adapted
// from surge's single flat []Value slice to a handle-indirected one so
// the arena's compactor can relocate the underlying bytes freely.
type Stack struct {
	arena *objmem.Arena
	h     []objmem.Handle
}

// NewStack creates an empty Stack backed by arena.
func NewStack(arena *objmem.Arena) *Stack {
	return &Stack{arena: arena}
}

// Depth returns the number of values currently on the stack.
func (s *Stack) Depth() int { return len(s.h) }

// Push encodes v, allocates it in the arena, and pushes the resulting
// handle.
func (s *Stack) Push(v Value) error {
	h, err := s.allocValue(v)
	if err != nil {
		return err
	}
	s.h = append(s.h, h)
	return nil
}

// PushHandle pushes an already-allocated handle directly, used when
// moving a value the evaluator already holds a handle to (e.g. a
// directory lookup result) without re-encoding it.
func (s *Stack) PushHandle(h objmem.Handle) { s.h = append(s.h, h) }

func (s *Stack) allocValue(v Value) (objmem.Handle, error) {
	buf, err := Encode(v)
	if err != nil {
		return 0, err
	}
	h, err := s.arena.Alloc(buf)
	if err != nil {
		return 0, diagnostic.ErrOutOfMemory()
	}
	return h, nil
}

// Pop removes and decodes the top value. Errors with not_enough_arguments
// on an empty stack.
func (s *Stack) Pop() (Value, error) {
	h, err := s.popHandle()
	if err != nil {
		return Value{}, err
	}
	defer s.arena.Release(h)
	return Decode(s.arena.Bytes(h))
}

func (s *Stack) popHandle() (objmem.Handle, error) {
	if len(s.h) == 0 {
		return 0, diagnostic.ErrNotEnoughArguments("", 1)
	}
	h := s.h[len(s.h)-1]
	s.h = s.h[:len(s.h)-1]
	return h, nil
}

// Top decodes the value at 1-based depth n from the top without
// removing it (n=1 is the top of stack), the shape "pick" and "dup" are
// both built from.
func (s *Stack) Top(n int) (Value, error) {
	if n < 1 || n > len(s.h) {
		return Value{}, diagnostic.ErrNotEnoughArguments("", n)
	}
	h := s.h[len(s.h)-n]
	return Decode(s.arena.Bytes(h))
}

// Drop removes the top n values, discarding their handles.
func (s *Stack) Drop(n int) error {
	if n < 0 || n > len(s.h) {
		return diagnostic.ErrNotEnoughArguments("drop", n)
	}
	for i := 0; i < n; i++ {
		s.arena.Release(s.h[len(s.h)-1-i])
	}
	s.h = s.h[:len(s.h)-n]
	return nil
}

// Pick duplicates the value at 1-based depth n onto the top (n=1 is
// DUP).
func (s *Stack) Pick(n int) error {
	if n < 1 || n > len(s.h) {
		return diagnostic.ErrNotEnoughArguments("pick", n)
	}
	h := s.arena.Retain(s.h[len(s.h)-n])
	s.h = append(s.h, h)
	return nil
}

// Swap exchanges the top two values.
func (s *Stack) Swap() error {
	if len(s.h) < 2 {
		return diagnostic.ErrNotEnoughArguments("swap", 2)
	}
	n := len(s.h)
	s.h[n-1], s.h[n-2] = s.h[n-2], s.h[n-1]
	return nil
}

// Over duplicates the second-from-top value onto the top.
func (s *Stack) Over() error { return s.Pick(2) }

// Roll moves the value at 1-based depth n to the top, shifting the
// values above it down by one.
func (s *Stack) Roll(n int) error {
	if n < 1 || n > len(s.h) {
		return diagnostic.ErrNotEnoughArguments("roll", n)
	}
	idx := len(s.h) - n
	h := s.h[idx]
	s.h = append(append([]objmem.Handle{}, s.h[:idx]...), s.h[idx+1:]...)
	s.h = append(s.h, h)
	return nil
}

// snapshot captures the stack's handle slice for undo; the arena's own
// Save() captures everything else a restore needs.
func (s *Stack) snapshot() []objmem.Handle {
	return append([]objmem.Handle{}, s.h...)
}

func (s *Stack) restore(h []objmem.Handle) { s.h = h }
