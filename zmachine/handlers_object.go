package zmachine

import "zmachine-go/zobject"

func (m *Machine) getObject(id uint16) (*zobject.Object, error) {
	return zobject.Get(id, m.mem, m.traits.Object, m.alphabets)
}

func opJin(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	if vals[0] == 0 {
		return m.handleBranch(vals[1] == 0)
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	return m.handleBranch(obj.Parent == vals[1])
}

func opGetParent(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	return m.storeResult(obj.Parent)
}

func opGetSibling(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	if err := m.storeResult(obj.Sibling); err != nil {
		return err
	}
	return m.handleBranch(obj.Sibling != 0)
}

func opGetChild(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	if err := m.storeResult(obj.Child); err != nil {
		return err
	}
	return m.handleBranch(obj.Child != 0)
}

func opTestAttr(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	set, err := obj.TestAttribute(m.mem, uint8(vals[1]))
	if err != nil {
		return err
	}
	return m.handleBranch(set)
}

func opSetAttr(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	return obj.SetAttribute(m.mem, uint8(vals[1]))
}

func opClearAttr(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	return obj.ClearAttribute(m.mem, uint8(vals[1]))
}

func opInsertObj(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	return zobject.Move(m.mem, obj, vals[1], m.traits.Object, m.alphabets)
}

func opRemoveObj(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	return zobject.Move(m.mem, obj, 0, m.traits.Object, m.alphabets)
}

func opGetProp(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	v, err := zobject.GetPropertyWord(m.mem, obj, uint8(vals[1]), m.traits.Object)
	if err != nil {
		return err
	}
	return m.storeResult(v)
}

func opGetPropAddr(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	addr, err := zobject.GetPropertyAddr(m.mem, obj, uint8(vals[1]))
	if err != nil {
		return err
	}
	return m.storeResult(uint16(addr))
}

func opGetPropLen(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	length, err := zobject.PropertyLength(m.mem, uint32(vals[0]))
	if err != nil {
		return err
	}
	return m.storeResult(uint16(length))
}

func opGetNextProp(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	next, err := zobject.GetNextProperty(m.mem, obj, uint8(vals[1]))
	if err != nil {
		return err
	}
	return m.storeResult(uint16(next))
}

func opPutProp(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	return zobject.PutPropertyWord(m.mem, obj, uint8(vals[1]), vals[2])
}

func opPrintObj(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	obj, err := m.getObject(vals[0])
	if err != nil {
		return err
	}
	m.print(obj.Name)
	return nil
}
