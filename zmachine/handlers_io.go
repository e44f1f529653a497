package zmachine

import (
	"strconv"

	"zmachine-go/zcore"
	"zmachine-go/zstring"
)

// print's text is a packed string embedded directly in the instruction
// stream, immediately after the opcode byte - not an operand.
func opPrint(m *Machine, ins *Instruction) error {
	s, n, err := zstring.Decode(m.mem, m.pc, m.alphabets)
	if err != nil {
		return err
	}
	m.pc += n
	m.print(s)
	return nil
}

func opPrintRet(m *Machine, ins *Instruction) error {
	s, n, err := zstring.Decode(m.mem, m.pc, m.alphabets)
	if err != nil {
		return err
	}
	m.pc += n
	m.print(s)
	m.newline()
	return m.doReturn(1)
}

func opNewLine(m *Machine, ins *Instruction) error {
	m.newline()
	return nil
}

func opPrintChar(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	r, ok := zstring.ZsciiToRune(vals[0])
	if !ok {
		return nil
	}
	m.print(string(r))
	return nil
}

func opPrintNum(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	m.print(strconv.Itoa(int(int16(vals[0]))))
	return nil
}

func opPrintAddr(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	s, _, err := zstring.Decode(m.mem, uint32(vals[0]), m.alphabets)
	if err != nil {
		return err
	}
	m.print(s)
	return nil
}

func opPrintPaddr(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	addr := m.mem.UnpackAddr(vals[0], zcore.StringAddr)
	s, _, err := zstring.Decode(m.mem, addr, m.alphabets)
	if err != nil {
		return err
	}
	m.print(s)
	return nil
}

// sread reads the input buffer's declared capacity and the parse buffer's
// declared token capacity from their own first bytes, then suspends the
// machine until the host supplies a line via Input.
func opSread(m *Machine, ins *Instruction) error {
	vals, err := m.operands(ins)
	if err != nil {
		return err
	}
	textBuffer := uint32(vals[0])
	maxLen, err := m.mem.ReadByte(textBuffer)
	if err != nil {
		return err
	}
	var parseBuffer uint32
	var maxTokens uint8
	if len(vals) > 1 && vals[1] != 0 {
		parseBuffer = uint32(vals[1])
		maxTokens, err = m.mem.ReadByte(parseBuffer)
		if err != nil {
			return err
		}
	}
	m.pending = &pendingRead{
		textBuffer:  textBuffer,
		parseBuffer: parseBuffer,
		maxLen:      maxLen,
		maxTokens:   maxTokens,
	}
	m.state = InputRequested
	return nil
}
