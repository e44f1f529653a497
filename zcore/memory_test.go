package zcore

import (
	"encoding/binary"
	"testing"

	"zmachine-go/zerr"
)

func headerImage(t *testing.T) []byte {
	t.Helper()
	image := make([]byte, 0x6000)
	image[0x00] = 3
	binary.BigEndian.PutUint16(image[0x06:], 0x4F05) // initial pc
	binary.BigEndian.PutUint16(image[0x0a:], 0x0236) // object table
	binary.BigEndian.PutUint16(image[0x0c:], 0x02B4) // globals table
	binary.BigEndian.PutUint16(image[0x0e:], 0x2000) // static memory base
	copy(image[0x12:], "880429")
	return image
}

func TestNewParsesHeaderFields(t *testing.T) {
	m, err := New(headerImage(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h := m.Header
	if h.Version != 3 {
		t.Fatalf("Version = %d, want 3", h.Version)
	}
	if h.InitialPC != 0x4F05 {
		t.Fatalf("InitialPC = 0x%x, want 0x4F05", h.InitialPC)
	}
	if h.ObjectTableBase != 0x0236 || h.GlobalVariableBase != 0x02B4 {
		t.Fatalf("table bases = (0x%x, 0x%x), want (0x0236, 0x02B4)", h.ObjectTableBase, h.GlobalVariableBase)
	}
	if string(h.Serial[:]) != "880429" {
		t.Fatalf("Serial = %q, want \"880429\"", h.Serial)
	}
	if b, err := m.ReadByte(0); err != nil || b != 3 {
		t.Fatalf("ReadByte(0) = (%d, %v), want (3, nil)", b, err)
	}
}

func TestNewRejectsTruncatedImage(t *testing.T) {
	if _, err := New(make([]byte, 32)); !zerr.Is(err, zerr.LoadError) {
		t.Fatalf("New on a 32-byte image = %v, want a load error", err)
	}
}

func TestReadOutOfBoundsFails(t *testing.T) {
	m, err := New(headerImage(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.ReadByte(uint32(m.Len())); !zerr.Is(err, zerr.BoundsError) {
		t.Fatalf("ReadByte past the end = %v, want a bounds error", err)
	}
	// a word read whose second byte is out of bounds must fail too.
	if _, err := m.ReadWord(uint32(m.Len() - 1)); !zerr.Is(err, zerr.BoundsError) {
		t.Fatalf("ReadWord straddling the end = %v, want a bounds error", err)
	}
}

func TestWriteToStaticMemoryIsRejected(t *testing.T) {
	m, err := New(headerImage(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.WriteByte(0x1FFF, 1); err != nil {
		t.Fatalf("write below the static base: %v", err)
	}
	if err := m.WriteByte(0x2000, 1); !zerr.Is(err, zerr.BoundsError) {
		t.Fatalf("write at the static base = %v, want a bounds error", err)
	}
	// a word write straddling the boundary is a static write as well.
	if err := m.WriteWord(0x1FFF, 1); !zerr.Is(err, zerr.BoundsError) {
		t.Fatalf("word write straddling the static base = %v, want a bounds error", err)
	}
}

func TestUnpackAddrDoublesForV3(t *testing.T) {
	m, err := New(headerImage(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.UnpackAddr(0x12A8, RoutineAddr); got != 0x2550 {
		t.Fatalf("UnpackAddr(routine) = 0x%x, want 0x2550", got)
	}
	if got := m.UnpackAddr(0x12A8, StringAddr); got != 0x2550 {
		t.Fatalf("UnpackAddr(string) = 0x%x, want 0x2550", got)
	}
}
