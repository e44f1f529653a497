package zmachine

import "zmachine-go/zerr"

// OperandType classifies how an operand's value was encoded.
type OperandType uint8

const (
	LargeConstant OperandType = iota
	SmallConstant
	VariableOperand
	Omitted
)

// OpCount is the instruction's operand-count class, which also selects
// which of the four disjoint opcode-number spaces Number belongs to.
type OpCount uint8

const (
	OP0 OpCount = iota
	OP1
	OP2
	VAR
)

// Operand is one decoded instruction argument. For VariableOperand, Raw
// holds the variable number to read from, not the value itself.
type Operand struct {
	Type OperandType
	Raw  uint16
}

// Instruction is a fully decoded opcode plus its operands, ready for
// dispatch. Store-variable and branch bytes, when present, are NOT
// consumed here: per the handler-owns-its-tail design, each handler reads
// them itself after resolving its operands, exactly as the instruction
// stream lays them out.
type Instruction struct {
	Addr    uint32
	Count   OpCount
	Number  uint8
	Operand []Operand
}

type byteReader interface {
	ReadByte(addr uint32) (uint8, error)
	ReadWord(addr uint32) (uint16, error)
}

// Decode reads one instruction starting at pc and returns it along with
// the address of the next byte after its operands (before any
// store/branch/text tail the handler still needs to consume).
func Decode(mem byteReader, pc uint32) (*Instruction, uint32, error) {
	start := pc
	opByte, err := mem.ReadByte(pc)
	if err != nil {
		return nil, 0, err
	}
	pc++

	ins := &Instruction{Addr: start}

	switch {
	case opByte == 0xBE:
		return nil, 0, zerr.UnsupportedOp("extended instruction form at 0x%x", start)

	case opByte&0xC0 == 0xC0: // variable form
		if opByte&0x20 != 0 {
			ins.Count = VAR
		} else {
			ins.Count = OP2
		}
		ins.Number = opByte & 0x1F
		pc, err = decodeVariableOperands(mem, pc, ins)
		if err != nil {
			return nil, 0, err
		}

	case opByte&0xC0 == 0x80: // short form
		ins.Number = opByte & 0x0F
		typeBits := (opByte >> 4) & 0x03
		if typeBits == 3 {
			ins.Count = OP0
		} else {
			ins.Count = OP1
			var op Operand
			op, pc, err = decodeOperand(mem, pc, OperandType(typeBits))
			if err != nil {
				return nil, 0, err
			}
			ins.Operand = append(ins.Operand, op)
		}

	default: // long form, always 2OP
		ins.Count = OP2
		ins.Number = opByte & 0x1F
		type1 := SmallConstant
		if opByte&0x40 != 0 {
			type1 = VariableOperand
		}
		type2 := SmallConstant
		if opByte&0x20 != 0 {
			type2 = VariableOperand
		}
		var op1, op2 Operand
		op1, pc, err = decodeOperand(mem, pc, type1)
		if err != nil {
			return nil, 0, err
		}
		op2, pc, err = decodeOperand(mem, pc, type2)
		if err != nil {
			return nil, 0, err
		}
		ins.Operand = append(ins.Operand, op1, op2)
	}

	return ins, pc, nil
}

func decodeVariableOperands(mem byteReader, pc uint32, ins *Instruction) (uint32, error) {
	// call_vs2 and call_vn2 (VAR:12, VAR:26) carry two type bytes,
	// permitting up to 8 operands; every other variable-form opcode has
	// one. Both bytes are always present in the instruction stream even
	// when the first ends the operand list early.
	typeByteCount := uint32(1)
	if ins.Count == VAR && (ins.Number == 12 || ins.Number == 26) {
		typeByteCount = 2
	}
	var types []OperandType
	for i := uint32(0); i < typeByteCount; i++ {
		typeByte, err := mem.ReadByte(pc + i)
		if err != nil {
			return 0, err
		}
		for shift := 6; shift >= 0; shift -= 2 {
			types = append(types, OperandType((typeByte>>shift)&0x03))
		}
	}
	pc += typeByteCount
	for _, t := range types {
		if t == Omitted {
			break
		}
		op, next, err := decodeOperand(mem, pc, t)
		if err != nil {
			return 0, err
		}
		pc = next
		ins.Operand = append(ins.Operand, op)
	}
	return pc, nil
}

func decodeOperand(mem byteReader, pc uint32, t OperandType) (Operand, uint32, error) {
	switch t {
	case LargeConstant:
		v, err := mem.ReadWord(pc)
		return Operand{Type: t, Raw: v}, pc + 2, err
	case SmallConstant, VariableOperand:
		v, err := mem.ReadByte(pc)
		return Operand{Type: t, Raw: uint16(v)}, pc + 1, err
	default:
		return Operand{Type: Omitted}, pc, nil
	}
}
