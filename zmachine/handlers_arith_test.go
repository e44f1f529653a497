package zmachine

import (
	"math/rand"
	"testing"

	"zmachine-go/zcore"
)

// randomTestMachine builds a bare machine with enough memory to store a
// VAR:random result in global variable 16 (raw variable number 0x10), and
// a program counter parked on a byte holding that store-variable number.
func randomTestMachine(t *testing.T) *Machine {
	t.Helper()
	image := make([]byte, 0x80)
	image[0x00] = 3
	image[0x0c], image[0x0d] = 0x00, 0x40 // global variable base
	image[0x0e], image[0x0f] = 0x00, 0x60 // static memory base
	mem, err := zcore.New(image)
	if err != nil {
		t.Fatalf("zcore.New: %v", err)
	}
	m := &Machine{mem: mem, rng: rand.New(rand.NewSource(1))}
	m.stack.Reset()
	// store-variable byte for global 0 (raw variable number 16) at 0x50.
	if err := mem.WriteByte(0x50, 16); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	m.pc = 0x50
	return m
}

func TestOpRandomPositiveRangeStaysWithinBounds(t *testing.T) {
	m := randomTestMachine(t)
	for i := 0; i < 50; i++ {
		m.pc = 0x50
		if err := opRandom(m, &Instruction{Count: VAR, Number: 7, Operand: []Operand{{Type: LargeConstant, Raw: 6}}}); err != nil {
			t.Fatalf("opRandom: %v", err)
		}
		got, err := m.readVariable(16)
		if err != nil {
			t.Fatalf("readVariable: %v", err)
		}
		if got < 1 || got > 6 {
			t.Fatalf("random(6) = %d, want a value in [1, 6]", got)
		}
	}
}

func TestOpRandomReseedsFromNegatedRange(t *testing.T) {
	// A range of -7 must reseed the generator from 7, not -7: a machine
	// reseeded via random(-7) and one reseeded directly via reseedRNG(7)
	// must then draw the same subsequent sequence.
	mNeg := randomTestMachine(t)
	negSeven := int16(-7)
	if err := opRandom(mNeg, &Instruction{Count: VAR, Number: 7, Operand: []Operand{{Type: LargeConstant, Raw: uint16(negSeven)}}}); err != nil {
		t.Fatalf("opRandom(-7): %v", err)
	}

	mPos := randomTestMachine(t)
	mPos.reseedRNG(7)

	for i := 0; i < 10; i++ {
		want := mPos.rng.Int31n(100)
		got := mNeg.rng.Int31n(100)
		if want != got {
			t.Fatalf("draw %d: reseed(-7) sequence diverged from reseed(7): got %d want %d", i, got, want)
		}
	}
}

func TestOpRandomZeroRangeReseedsWithoutCrashing(t *testing.T) {
	m := randomTestMachine(t)
	if err := opRandom(m, &Instruction{Count: VAR, Number: 7, Operand: []Operand{{Type: LargeConstant, Raw: 0}}}); err != nil {
		t.Fatalf("opRandom(0): %v", err)
	}
	got, err := m.readVariable(16)
	if err != nil {
		t.Fatalf("readVariable: %v", err)
	}
	if got != 0 {
		t.Fatalf("random(0) stored %d, want 0", got)
	}
}

func TestOpRandomSeededGoldenSequence(t *testing.T) {
	// Seeding via random(-1) pins the generator to seed 1, the same state
	// Reset installs, and the next ten draws of random(100) are a fixed
	// sequence. math/rand's stream for a given seed is stable, so these
	// literals are a golden: a change here means the draw logic changed,
	// not the library.
	m := randomTestMachine(t)
	m.pc = 0x50
	negOne := int16(-1)
	if err := opRandom(m, &Instruction{Count: VAR, Number: 7, Operand: []Operand{{Type: LargeConstant, Raw: uint16(negOne)}}}); err != nil {
		t.Fatalf("opRandom(-1): %v", err)
	}

	golden := []uint16{82, 88, 48, 60, 82, 19, 26, 41, 57, 1}
	for i, want := range golden {
		m.pc = 0x50
		if err := opRandom(m, &Instruction{Count: VAR, Number: 7, Operand: []Operand{{Type: LargeConstant, Raw: 100}}}); err != nil {
			t.Fatalf("opRandom(100) draw %d: %v", i, err)
		}
		got, err := m.readVariable(16)
		if err != nil {
			t.Fatalf("readVariable: %v", err)
		}
		if got != want {
			t.Fatalf("draw %d of seeded random(100) = %d, want %d", i, got, want)
		}
	}
}

func TestOpRandomZeroRangeSeedsWithLiteralZero(t *testing.T) {
	// random(0) negates to seed 0, not some substitute; a machine reseeded
	// via the opcode and one reseeded directly must draw identically.
	mOp := randomTestMachine(t)
	if err := opRandom(mOp, &Instruction{Count: VAR, Number: 7, Operand: []Operand{{Type: LargeConstant, Raw: 0}}}); err != nil {
		t.Fatalf("opRandom(0): %v", err)
	}
	mDirect := randomTestMachine(t)
	mDirect.reseedRNG(0)
	for i := 0; i < 10; i++ {
		want := mDirect.rng.Int31n(100)
		got := mOp.rng.Int31n(100)
		if want != got {
			t.Fatalf("draw %d: random(0) sequence diverged from seed 0: got %d want %d", i, got, want)
		}
	}
}
