// Package zcore holds the story image and the handful of header-derived
// facts every other package needs: where the object table starts, how big
// a packed address really is, and so on.
package zcore

import (
	"encoding/binary"

	"zmachine-go/zerr"
)

// AddrKind distinguishes the two things a packed address can name; v3
// scales both the same way but later versions do not.
type AddrKind int

const (
	RoutineAddr AddrKind = iota
	StringAddr
)

// Header mirrors the fixed byte layout at the front of every story file.
// The offset fields past Checksum are meaningful only for later versions
// (v4+ string/routine offsets, v5+ alphabet and extension tables) but are
// decoded unconditionally so a version bump never changes this struct.
type Header struct {
	Version               uint8
	Flags1                uint8
	Release               uint16
	HighMemoryBase        uint16
	InitialPC             uint16
	DictionaryBase        uint16
	ObjectTableBase       uint16
	GlobalVariableBase    uint16
	StaticMemoryBase      uint16
	Flags2                uint16
	Serial                [6]byte
	AbbreviationTableBase uint16
	FileLength            uint16
	Checksum              uint16
	RoutinesOffset        uint16
	StaticStringsOffset   uint16
	AlphabetTableBase     uint16
	ExtensionTableBase    uint16
}

// Memory is the bounds-checked, big-endian view over a loaded story image.
// Writes below StaticMemoryBase succeed; writes at or above it are
// rejected, mirroring the read-only "static memory" region of the format.
type Memory struct {
	bytes  []byte
	Header Header
}

// New parses a story image's header and wraps it for bounds-checked access.
// It does not validate the version; callers decide which versions they
// support.
func New(image []byte) (*Memory, error) {
	if len(image) < 64 {
		return nil, zerr.Load("story image shorter than the 64 byte header (%d bytes)", len(image))
	}
	m := &Memory{bytes: image}
	h := &m.Header
	h.Version = image[0x00]
	h.Flags1 = image[0x01]
	h.Release = binary.BigEndian.Uint16(image[0x02:])
	h.HighMemoryBase = binary.BigEndian.Uint16(image[0x04:])
	h.InitialPC = binary.BigEndian.Uint16(image[0x06:])
	h.DictionaryBase = binary.BigEndian.Uint16(image[0x08:])
	h.ObjectTableBase = binary.BigEndian.Uint16(image[0x0a:])
	h.GlobalVariableBase = binary.BigEndian.Uint16(image[0x0c:])
	h.StaticMemoryBase = binary.BigEndian.Uint16(image[0x0e:])
	h.Flags2 = binary.BigEndian.Uint16(image[0x10:])
	copy(h.Serial[:], image[0x12:0x18])
	h.AbbreviationTableBase = binary.BigEndian.Uint16(image[0x18:])
	h.FileLength = binary.BigEndian.Uint16(image[0x1a:])
	h.Checksum = binary.BigEndian.Uint16(image[0x1c:])
	h.RoutinesOffset = binary.BigEndian.Uint16(image[0x28:])
	h.StaticStringsOffset = binary.BigEndian.Uint16(image[0x2a:])
	h.AlphabetTableBase = binary.BigEndian.Uint16(image[0x34:])
	h.ExtensionTableBase = binary.BigEndian.Uint16(image[0x36:])
	if int(h.StaticMemoryBase) > len(image) {
		return nil, zerr.Load("static memory base 0x%x beyond end of image (%d bytes)", h.StaticMemoryBase, len(image))
	}
	return m, nil
}

func (m *Memory) Len() int { return len(m.bytes) }

func (m *Memory) checkAddr(addr uint32) error {
	if addr >= uint32(len(m.bytes)) {
		return zerr.Bounds("address 0x%x outside memory (%d bytes)", addr, len(m.bytes))
	}
	return nil
}

// ReadByte reads a single byte at addr.
func (m *Memory) ReadByte(addr uint32) (uint8, error) {
	if err := m.checkAddr(addr); err != nil {
		return 0, err
	}
	return m.bytes[addr], nil
}

// ReadWord reads a big-endian 16-bit word at addr.
func (m *Memory) ReadWord(addr uint32) (uint16, error) {
	if err := m.checkAddr(addr + 1); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(m.bytes[addr:]), nil
}

// WriteByte writes a single byte at addr, refusing writes into static or
// high memory.
func (m *Memory) WriteByte(addr uint32, v uint8) error {
	if err := m.checkAddr(addr); err != nil {
		return err
	}
	if addr >= uint32(m.Header.StaticMemoryBase) {
		return zerr.Bounds("write to read-only memory at 0x%x (static base 0x%x)", addr, m.Header.StaticMemoryBase)
	}
	m.bytes[addr] = v
	return nil
}

// WriteWord writes a big-endian 16-bit word at addr, subject to the same
// static-memory restriction as WriteByte.
func (m *Memory) WriteWord(addr uint32, v uint16) error {
	if err := m.checkAddr(addr + 1); err != nil {
		return err
	}
	// Both bytes of the word must land below the static boundary.
	if addr+1 >= uint32(m.Header.StaticMemoryBase) {
		return zerr.Bounds("write to read-only memory at 0x%x (static base 0x%x)", addr, m.Header.StaticMemoryBase)
	}
	binary.BigEndian.PutUint16(m.bytes[addr:], v)
	return nil
}

// ReadTableWord reads the n'th word (0-based) of a word table starting at
// base, e.g. the globals table or an object's property defaults block.
func (m *Memory) ReadTableWord(base uint16, n uint16) (uint16, error) {
	return m.ReadWord(uint32(base) + 2*uint32(n))
}

// WriteTableWord writes the n'th word of a word table starting at base.
func (m *Memory) WriteTableWord(base uint16, n uint16, v uint16) error {
	return m.WriteWord(uint32(base)+2*uint32(n), v)
}

// UnpackAddr converts a packed address to a byte address. v3 uses the same
// doubling scale for both routine and string packed addresses; later
// versions diverge, so kind is threaded through even though v3 ignores it.
func (m *Memory) UnpackAddr(packed uint16, kind AddrKind) uint32 {
	switch m.Header.Version {
	case 1, 2, 3:
		return 2 * uint32(packed)
	default:
		// v4/v5 scale by 4; v6/v7 would additionally add a per-kind base
		// from Header.RoutinesOffset / Header.StaticStringsOffset. Not
		// reached while Load rejects non-v3 images.
		return 4 * uint32(packed)
	}
}

// Raw exposes the underlying bytes for components (dictionary parsing,
// debug table dumps) that need a read-only slice view rather than
// word-at-a-time access.
func (m *Memory) Raw() []byte { return m.bytes }
