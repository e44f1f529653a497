package zmachine

import (
	"math/rand"

	"zmachine-go/zerr"
)

// reseedRNG restarts the generator from the given seed, 0 included —
// random(0) seeds with literal 0, which the source accepts like any
// other value.
func (m *Machine) reseedRNG(seed int64) {
	m.rng = rand.New(rand.NewSource(seed))
}

func opAdd(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.storeResult(uint16(int16(vals[0]) + int16(vals[1])))
}

func opSub(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.storeResult(uint16(int16(vals[0]) - int16(vals[1])))
}

func opMul(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.storeResult(uint16(int16(vals[0]) * int16(vals[1])))
}

func opDiv(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	if int16(vals[1]) == 0 {
		return zerr.Semantic("division by zero")
	}
	return m.storeResult(uint16(int16(vals[0]) / int16(vals[1])))
}

func opMod(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	if int16(vals[1]) == 0 {
		return zerr.Semantic("modulo by zero")
	}
	return m.storeResult(uint16(int16(vals[0]) % int16(vals[1])))
}

func opAnd(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.storeResult(vals[0] & vals[1])
}

func opOr(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.storeResult(vals[0] | vals[1])
}

func opNot(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.storeResult(^vals[0])
}

func opInc(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	varNum := uint8(vals[0])
	current, err := m.readVariable(varNum)
	if err != nil {
		return err
	}
	return m.writeVariable(varNum, current+1)
}

func opDec(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	varNum := uint8(vals[0])
	current, err := m.readVariable(varNum)
	if err != nil {
		return err
	}
	return m.writeVariable(varNum, current-1)
}

// random implements the dual-purpose VAR:random opcode: a positive range
// draws a uniform value in [1, range]; a zero or negative range reseeds
// the generator from the negated range and stores 0.
func opRandom(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	r := int16(vals[0])
	if r > 0 {
		return m.storeResult(uint16(m.rng.Int31n(int32(r)) + 1))
	}
	m.reseedRNG(int64(-r))
	return m.storeResult(0)
}
