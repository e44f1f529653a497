package zmachine

import "zmachine-go/zerr"

func opCall(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.doCall(vals[0], vals[1:])
}

func opRtrue(m *Machine, ins *Instruction) error  { return m.doReturn(1) }
func opRfalse(m *Machine, ins *Instruction) error { return m.doReturn(0) }

func opRet(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.doReturn(vals[0])
}

func opRetPopped(m *Machine, ins *Instruction) error {
	v, err := m.stack.Pop()
	if err != nil {
		return err
	}
	return m.doReturn(v)
}

// jump's offset is a signed 16-bit value applied relative to the address
// right after the instruction, exactly like a branch offset but
// unconditional and without the branch descriptor's encoding - the
// operand is a plain signed word, not a packed branch byte.
func opJump(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	m.pc = uint32(int64(m.pc) + int64(int16(vals[0])) - 2)
	return nil
}

func opNop(m *Machine, ins *Instruction) error { return nil }

func opQuit(m *Machine, ins *Instruction) error {
	m.transcript = append(m.transcript, "[The story has ended.]")
	m.state = Crashed
	return nil
}

func opRestart(m *Machine, ins *Instruction) error {
	m.Reset()
	return nil
}

func opSave(m *Machine, ins *Instruction) error {
	return zerr.UnsupportedOp("save is not implemented")
}

func opRestore(m *Machine, ins *Instruction) error {
	return zerr.UnsupportedOp("restore is not implemented")
}

// verify always branches true: the image was already validated at load,
// and archived story files routinely carry zeroed or stale checksums, so
// an honest recomputation would reject games that play fine.
func opVerify(m *Machine, ins *Instruction) error {
	return m.handleBranch(true)
}

func opShowStatus(m *Machine, ins *Instruction) error { return nil }

// piracy always branches true: this interpreter never claims a story is a
// pirated copy.
func opPiracy(m *Machine, ins *Instruction) error {
	return m.handleBranch(true)
}

// Windowing, stream redirection and sound have no effect here; the
// opcodes are accepted as harmless no-ops (their operands still resolved,
// since a variable operand pops the stack) so real story files that call
// them unconditionally at startup keep running.
func opSplitWindow(m *Machine, ins *Instruction) error { _, err := m.operands(ins); return err }

func opSetWindow(m *Machine, ins *Instruction) error { _, err := m.operands(ins); return err }

func opOutputStream(m *Machine, ins *Instruction) error { _, err := m.operands(ins); return err }

func opInputStream(m *Machine, ins *Instruction) error { _, err := m.operands(ins); return err }

func opSoundEffect(m *Machine, ins *Instruction) error { _, err := m.operands(ins); return err }
