package zmachine

import (
	"testing"

	"zmachine-go/zcore"
)

func decodeImage(t *testing.T, code []byte) *zcore.Memory {
	t.Helper()
	image := make([]byte, 64+len(code))
	image[0] = 3
	copy(image[64:], code)
	m, err := zcore.New(image)
	if err != nil {
		t.Fatalf("zcore.New: %v", err)
	}
	return m
}

func TestDecodeVariableFormSingleTypeByte(t *testing.T) {
	// sread with two large operands; the 11 pair ends the operand list.
	m := decodeImage(t, []byte{0xE4, 0x0F, 0x00, 0x70, 0x00, 0x80})
	ins, next, err := Decode(m, 64)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ins.Count != VAR || ins.Number != 4 {
		t.Fatalf("decoded (count=%d, number=%d), want VAR:4", ins.Count, ins.Number)
	}
	if len(ins.Operand) != 2 || ins.Operand[0].Raw != 0x70 || ins.Operand[1].Raw != 0x80 {
		t.Fatalf("operands = %+v, want two large constants 0x70, 0x80", ins.Operand)
	}
	if next != 64+6 {
		t.Fatalf("next pc = %d, want %d", next, 64+6)
	}
}

func TestDecodeDoubleTypeByteOpcodesTakeUpToEightOperands(t *testing.T) {
	// 0xEC (call_vs2) and 0xFA (call_vn2) carry a second type byte. Four
	// large constants from the first byte, two small constants from the
	// second, then the 11 pair stops the list at six operands.
	for _, opByte := range []byte{0xEC, 0xFA} {
		code := []byte{
			opByte,
			0x00, // four large constants
			0x5F, // two small constants, then terminated
			0x00, 0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04,
			0x05, 0x06,
		}
		m := decodeImage(t, code)
		ins, next, err := Decode(m, 64)
		if err != nil {
			t.Fatalf("Decode(0x%x): %v", opByte, err)
		}
		if len(ins.Operand) != 6 {
			t.Fatalf("0x%x decoded %d operands, want 6", opByte, len(ins.Operand))
		}
		for i, want := range []uint16{1, 2, 3, 4, 5, 6} {
			if ins.Operand[i].Raw != want {
				t.Fatalf("0x%x operand %d = %d, want %d", opByte, i, ins.Operand[i].Raw, want)
			}
		}
		if next != 64+uint32(len(code)) {
			t.Fatalf("0x%x next pc = %d, want %d", opByte, next, 64+len(code))
		}
	}
}

func TestDecodeRejectsExtendedForm(t *testing.T) {
	m := decodeImage(t, []byte{0xBE, 0x00})
	if _, _, err := Decode(m, 64); err == nil {
		t.Fatalf("expected the extended instruction form to be rejected")
	}
}
