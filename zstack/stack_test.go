package zstack

import (
	"testing"

	"zmachine-go/zerr"
)

func TestPushPopIsLIFO(t *testing.T) {
	var s Stack
	s.Reset()

	for _, v := range []uint16{1, 2, 3} {
		if err := s.Push(v); err != nil {
			t.Fatalf("Push(%d): %v", v, err)
		}
	}
	for _, want := range []uint16{3, 2, 1} {
		got, err := s.Pop()
		if err != nil {
			t.Fatalf("Pop: %v", err)
		}
		if got != want {
			t.Fatalf("Pop = %d, want %d", got, want)
		}
	}
}

func TestPopEmptyStackUnderflows(t *testing.T) {
	var s Stack
	s.Reset()
	if _, err := s.Pop(); !zerr.Is(err, zerr.BoundsError) {
		t.Fatalf("Pop on empty stack = %v, want a bounds error", err)
	}
	if _, err := s.Peek(); !zerr.Is(err, zerr.BoundsError) {
		t.Fatalf("Peek on empty stack = %v, want a bounds error", err)
	}
}

func TestPeekLeavesValueInPlace(t *testing.T) {
	var s Stack
	s.Reset()
	if err := s.Push(42); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if v, err := s.Peek(); err != nil || v != 42 {
		t.Fatalf("Peek = (%d, %v), want (42, nil)", v, err)
	}
	if v, err := s.Pop(); err != nil || v != 42 {
		t.Fatalf("Pop after Peek = (%d, %v), want (42, nil)", v, err)
	}
}

func TestFrameLocalsAreAddressableByNumber(t *testing.T) {
	var s Stack
	s.Reset()

	if err := s.PushFrame(0x1234, []uint16{0xAA, 0xBB, 0xCC}); err != nil {
		t.Fatalf("PushFrame: %v", err)
	}
	for n, want := range map[uint8]uint16{1: 0xAA, 2: 0xBB, 3: 0xCC} {
		got, err := s.Local(n)
		if err != nil {
			t.Fatalf("Local(%d): %v", n, err)
		}
		if got != want {
			t.Fatalf("Local(%d) = 0x%x, want 0x%x", n, got, want)
		}
	}

	if err := s.SetLocal(2, 0xDD); err != nil {
		t.Fatalf("SetLocal: %v", err)
	}
	if got, _ := s.Local(2); got != 0xDD {
		t.Fatalf("Local(2) after SetLocal = 0x%x, want 0xDD", got)
	}
}

func TestPopFrameRestoresCallerPCAndDiscardsEvaluationValues(t *testing.T) {
	var s Stack
	s.Reset()

	if err := s.PushFrame(0x4F05, []uint16{7}); err != nil {
		t.Fatalf("PushFrame: %v", err)
	}
	// evaluation-stack noise the return must discard along with the local.
	if err := s.Push(0xFFFF); err != nil {
		t.Fatalf("Push: %v", err)
	}

	pc, err := s.PopFrame()
	if err != nil {
		t.Fatalf("PopFrame: %v", err)
	}
	if pc != 0x4F05 {
		t.Fatalf("PopFrame pc = 0x%x, want 0x4F05", pc)
	}
	if s.Depth() != 0 {
		t.Fatalf("Depth = %d, want 0", s.Depth())
	}
	if _, err := s.Pop(); err == nil {
		t.Fatalf("expected the outer stack to be empty after PopFrame")
	}
}

func TestNestedFramesRestoreInOrder(t *testing.T) {
	var s Stack
	s.Reset()

	if err := s.PushFrame(0x1000, []uint16{1}); err != nil {
		t.Fatalf("PushFrame(outer): %v", err)
	}
	if err := s.PushFrame(0x2000, []uint16{2, 3}); err != nil {
		t.Fatalf("PushFrame(inner): %v", err)
	}

	if got, _ := s.Local(1); got != 2 {
		t.Fatalf("inner Local(1) = %d, want 2", got)
	}
	if pc, err := s.PopFrame(); err != nil || pc != 0x2000 {
		t.Fatalf("inner PopFrame = (0x%x, %v), want (0x2000, nil)", pc, err)
	}
	if got, _ := s.Local(1); got != 1 {
		t.Fatalf("outer Local(1) after inner return = %d, want 1", got)
	}
	if pc, err := s.PopFrame(); err != nil || pc != 0x1000 {
		t.Fatalf("outer PopFrame = (0x%x, %v), want (0x1000, nil)", pc, err)
	}
}

func TestReturnFromOutermostFrameIsFatal(t *testing.T) {
	var s Stack
	s.Reset()
	if _, err := s.PopFrame(); !zerr.Is(err, zerr.SemanticError) {
		t.Fatalf("PopFrame on the outermost frame = %v, want a semantic error", err)
	}
}
