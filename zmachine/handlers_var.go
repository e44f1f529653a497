package zmachine

func opStore(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.writeVariable(uint8(vals[0]), vals[1])
}

// load reads variable 0 (the stack top) WITHOUT popping it, unlike every
// other variable access - a deliberate quirk of this one opcode.
func opLoad(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	varNum := uint8(vals[0])
	if varNum == 0 {
		v, err := m.stack.Peek()
		if err != nil {
			return err
		}
		return m.storeResult(v)
	}
	v, err := m.readVariable(varNum)
	if err != nil {
		return err
	}
	return m.storeResult(v)
}

func opLoadw(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	v, err := m.mem.ReadWord(uint32(vals[0]) + 2*uint32(vals[1]))
	if err != nil {
		return err
	}
	return m.storeResult(v)
}

func opLoadb(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	v, err := m.mem.ReadByte(uint32(vals[0]) + uint32(vals[1]))
	if err != nil {
		return err
	}
	return m.storeResult(uint16(v))
}

func opStorew(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.mem.WriteWord(uint32(vals[0])+2*uint32(vals[1]), vals[2])
}

func opStoreb(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.mem.WriteByte(uint32(vals[0])+uint32(vals[1]), uint8(vals[2]))
}

func opPush(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.stack.Push(vals[0])
}

func opPull(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	v, err := m.stack.Pop()
	if err != nil {
		return err
	}
	return m.writeVariable(uint8(vals[0]), v)
}

func opPop(m *Machine, ins *Instruction) error {
	_, err := m.stack.Pop()
	return err
}
