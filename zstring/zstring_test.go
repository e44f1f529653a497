package zstring

import (
	"testing"

	"zmachine-go/zcore"
)

func rawMemory(t *testing.T, bytes []byte) *zcore.Memory {
	t.Helper()
	image := make([]byte, 64)
	image[0] = 3 // version
	m, err := zcore.New(append(image, bytes...))
	if err != nil {
		t.Fatalf("zcore.New: %v", err)
	}
	return m
}

func TestDecodeSimpleWord(t *testing.T) {
	alphabets := LoadAlphabets(3)
	// "it" built by hand from alphabet 0, then one pad z-char (5):
	// zchar for 'i' in a0 (index 6 + ('i'-'a')) = 6+8=14, 't' = 6+19=25.
	i := uint8(6 + ('i' - 'a'))
	tt := uint8(6 + ('t' - 'a'))
	word := uint16(i)<<10 | uint16(tt)<<5 | uint16(5) | 0x8000
	bytes := []byte{byte(word >> 8), byte(word)}
	m := rawMemory(t, bytes)

	got, n, err := Decode(m, 64, alphabets)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "it" {
		t.Fatalf("got %q want %q", got, "it")
	}
	if n != 2 {
		t.Fatalf("got %d bytes read, want 2", n)
	}
}

func TestDecodeShiftToUppercase(t *testing.T) {
	alphabets := LoadAlphabets(3)
	// z-char 4 (shift to A1) then 'A' (index 6 in A1), then one pad (5).
	word := uint16(4)<<10 | uint16(6)<<5 | uint16(5) | 0x8000
	m := rawMemory(t, []byte{byte(word >> 8), byte(word)})

	got, _, err := Decode(m, 64, alphabets)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "A" {
		t.Fatalf("got %q want %q", got, "A")
	}
}

func TestDecodeRawZsciiEscape(t *testing.T) {
	alphabets := LoadAlphabets(3)
	code, _ := RuneToZscii('!')
	hi, lo := code>>5, code&0x1F
	w1 := uint16(5)<<10 | uint16(6)<<5 | uint16(hi)
	w2 := uint16(lo)<<10 | uint16(5)<<5 | uint16(5) | 0x8000
	bytes := []byte{
		byte(w1 >> 8), byte(w1),
		byte(w2 >> 8), byte(w2),
	}
	m := rawMemory(t, bytes)

	got, n, err := Decode(m, 64, alphabets)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "!" {
		t.Fatalf("got %q want %q", got, "!")
	}
	if n != 4 {
		t.Fatalf("got %d bytes, want 4", n)
	}
}

func TestEncodeRoundTripsThroughDecode(t *testing.T) {
	alphabets := LoadAlphabets(3)
	encoded, err := Encode([]rune("open"), alphabets, 6)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 4 {
		t.Fatalf("expected 4 bytes for 6 z-chars, got %d", len(encoded))
	}
	m := rawMemory(t, encoded)

	got, _, err := Decode(m, 64, alphabets)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "open" {
		t.Fatalf("got %q want %q", got, "open")
	}
}

func TestEncodeTruncatesAndPads(t *testing.T) {
	alphabets := LoadAlphabets(3)
	long, err := Encode([]rune("morethansixchars"), alphabets, 6)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	short, err := Encode([]rune("a"), alphabets, 6)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(long) != 4 || len(short) != 4 {
		t.Fatalf("expected fixed 4-byte (6 z-char) output regardless of input length")
	}
}

func TestNestedAbbreviationRejected(t *testing.T) {
	// Abbreviation table entry 0 points at a string which itself uses
	// z-char 1 (abbreviation prefix) - decoding it from a top-level
	// Decode call should fail once the nested reference is hit.
	image := make([]byte, 64)
	image[0] = 3
	image[0x18] = 0 // abbreviation table base high byte
	image[0x19] = 64
	// abbreviation table: one entry pointing at word-address 34 (byte 68)
	abbrevTable := []byte{0, 34}
	// string at byte 68: z-char 1 (abbrev prefix), 0 (index), pad, pad
	innerWord := uint16(1)<<10 | uint16(0)<<5 | uint16(5) | 0x8000
	innerStr := []byte{byte(innerWord >> 8), byte(innerWord)}
	// outer string at byte 64+? place after abbrevTable
	outerWord := uint16(1)<<10 | uint16(0)<<5 | uint16(5) | 0x8000
	outerStr := []byte{byte(outerWord >> 8), byte(outerWord)}

	full := append(image, abbrevTable...)
	full = append(full, outerStr...)
	full = append(full, innerStr...)

	m, err := zcore.New(full)
	if err != nil {
		t.Fatalf("zcore.New: %v", err)
	}

	alphabets := LoadAlphabets(3)
	_, _, err = Decode(m, uint32(64+len(abbrevTable)), alphabets)
	if err == nil {
		t.Fatalf("expected nested abbreviation to fail")
	}
	if !IsNestedAbbreviation(err) {
		t.Fatalf("expected nested-abbreviation error, got %v", err)
	}
}
