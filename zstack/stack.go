// Package zstack implements the interpreter's evaluation/local-variable
// stack as a single fixed-capacity array of 16-bit cells, with call
// frames and locals interleaved on the same array rather than held in
// per-call Go structs.
package zstack

import "zmachine-go/zerr"

// outermost is the sentinel locals_base value Reset installs before any
// routine has been called. PopFrame below this depth means the bytecode
// tried to return past the top of the call stack.
const outermost = 0xFFFF

// Stack is the combined evaluation stack and local-variable storage for
// every active routine. sp descends from 0xFFFF; localsBase points at the
// sp value in effect when the current routine's frame was pushed, so
// local N lives at stack[localsBase-N].
type Stack struct {
	cells      [0x10000]uint16
	sp         uint32
	localsBase uint32
	depth      int
}

// Reset installs the initial, frameless state: sp and localsBase both at
// the top of the array, no routine frames pushed.
func (s *Stack) Reset() {
	s.sp = outermost
	s.localsBase = outermost
	s.depth = 0
}

// Push pushes a single evaluation-stack value.
func (s *Stack) Push(v uint16) error {
	if s.sp == 0 {
		return zerr.Bounds("stack overflow")
	}
	s.sp--
	s.cells[s.sp] = v
	return nil
}

// Pop pops a single evaluation-stack value.
func (s *Stack) Pop() (uint16, error) {
	if s.sp >= outermost {
		return 0, zerr.Bounds("stack underflow")
	}
	v := s.cells[s.sp]
	s.sp++
	return v, nil
}

// Peek reads the top evaluation-stack value without removing it, used by
// the `load` opcode's special-cased variable 0 (read without popping).
func (s *Stack) Peek() (uint16, error) {
	if s.sp >= outermost {
		return 0, zerr.Bounds("stack underflow")
	}
	return s.cells[s.sp], nil
}

// Local reads local variable n (1-based, as z-machine variable numbers 1-15).
func (s *Stack) Local(n uint8) (uint16, error) {
	idx := s.localsBase - uint32(n)
	if idx >= 0x10000 || idx < s.sp {
		return 0, zerr.Bounds("read of local variable %d outside current frame", n)
	}
	return s.cells[idx], nil
}

// SetLocal writes local variable n.
func (s *Stack) SetLocal(n uint8, v uint16) error {
	idx := s.localsBase - uint32(n)
	if idx >= 0x10000 || idx < s.sp {
		return zerr.Bounds("write of local variable %d outside current frame", n)
	}
	s.cells[idx] = v
	return nil
}

// PushFrame pushes a new call frame: the return PC (as a hi/lo word pair,
// so this generalises past the 16-bit PC of v3) and the current
// localsBase, then advances localsBase to the new frame's base. It then
// pushes numLocals values (typically routine-default words, overridden by
// the caller with supplied arguments) as that routine's locals.
func (s *Stack) PushFrame(returnPC uint32, locals []uint16) error {
	if err := s.Push(uint16(returnPC >> 16)); err != nil {
		return err
	}
	if err := s.Push(uint16(returnPC)); err != nil {
		return err
	}
	if err := s.Push(uint16(s.localsBase)); err != nil {
		return err
	}
	s.localsBase = s.sp
	// Pushed in declaration order so local 1 lands at localsBase-1, local 2
	// at localsBase-2, and so on.
	for _, v := range locals {
		if err := s.Push(v); err != nil {
			return err
		}
	}
	s.depth++
	return nil
}

// PopFrame discards the current routine's locals and evaluation-stack
// values, restoring the caller's localsBase, and returns the caller's PC.
func (s *Stack) PopFrame() (uint32, error) {
	if s.depth == 0 {
		return 0, zerr.Semantic("return from the outermost frame")
	}
	s.sp = s.localsBase
	restoredBase, err := s.Pop()
	if err != nil {
		return 0, err
	}
	s.localsBase = uint32(restoredBase)
	lo, err := s.Pop()
	if err != nil {
		return 0, err
	}
	hi, err := s.Pop()
	if err != nil {
		return 0, err
	}
	s.depth--
	return uint32(hi)<<16 | uint32(lo), nil
}

// Depth reports how many routine frames are currently active.
func (s *Stack) Depth() int { return s.depth }
