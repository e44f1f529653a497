package zmachine

// je (2OP:1, but instruction-decoded via VAR form too) branches if the
// first operand equals ANY of the remaining operands - not just the
// second, which a naive strict-2OP reading would suggest.
func opJe(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	match := false
	for _, v := range vals[1:] {
		if vals[0] == v {
			match = true
			break
		}
	}
	return m.handleBranch(match)
}

func opJl(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.handleBranch(int16(vals[0]) < int16(vals[1]))
}

func opJg(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.handleBranch(int16(vals[0]) > int16(vals[1]))
}

func opJz(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.handleBranch(vals[0] == 0)
}

func opDecChk(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	varNum := uint8(vals[0])
	current, err := m.readVariable(varNum)
	if err != nil {
		return err
	}
	next := current - 1
	if err := m.writeVariable(varNum, next); err != nil {
		return err
	}
	return m.handleBranch(int16(next) < int16(vals[1]))
}

func opIncChk(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	varNum := uint8(vals[0])
	current, err := m.readVariable(varNum)
	if err != nil {
		return err
	}
	next := current + 1
	if err := m.writeVariable(varNum, next); err != nil {
		return err
	}
	return m.handleBranch(int16(next) > int16(vals[1]))
}

func opTest(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	return m.handleBranch(vals[0]&vals[1] == vals[1])
}
