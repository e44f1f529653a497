package zdict

import (
	"testing"

	"zmachine-go/zcore"
	"zmachine-go/zstring"
)

// buildDictImage lays out a minimal v3 dictionary with three sorted
// entries: "mailbox", "open", "west" (already in lexical order of their
// encoded bytes, as a real story file's dictionary would be).
func buildDictImage(t *testing.T) (*zcore.Memory, *Dictionary) {
	t.Helper()
	alphabets := zstring.LoadAlphabets(3)
	words := []string{"mailbox", "open", "west"}

	const dictBase = 0x40
	// 0 separators, entry length 4, entry count as a big-endian word.
	header := []byte{0, 4, 0, byte(len(words))}
	image := make([]byte, dictBase)
	image[0] = 3
	image[0x08] = dictBase >> 8
	image[0x09] = dictBase & 0xFF

	image = append(image, header...)
	for _, w := range words {
		enc, err := zstring.Encode([]rune(w), alphabets, numZChrs)
		if err != nil {
			t.Fatalf("Encode(%q): %v", w, err)
		}
		image = append(image, enc...)
	}

	// Scratch region for the parse buffer; the whole image is left dynamic
	// (static base at the very end) so Tokenise can write anywhere.
	image = append(image, make([]byte, 256)...)
	image[0x0e] = byte(len(image) >> 8)
	image[0x0f] = byte(len(image) & 0xFF)

	m, err := zcore.New(image)
	if err != nil {
		t.Fatalf("zcore.New: %v", err)
	}
	d, err := Parse(m)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m, d
}

func TestFindExistingWord(t *testing.T) {
	_, d := buildDictImage(t)
	alphabets := zstring.LoadAlphabets(3)

	enc, err := zstring.Encode([]rune("open"), alphabets, numZChrs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	addr, err := d.Find(enc)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if addr == 0 {
		t.Fatalf("expected to find \"open\" in the dictionary")
	}
}

func TestFindMissingWord(t *testing.T) {
	_, d := buildDictImage(t)
	alphabets := zstring.LoadAlphabets(3)

	enc, err := zstring.Encode([]rune("xyzzy"), alphabets, numZChrs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	addr, err := d.Find(enc)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if addr != 0 {
		t.Fatalf("expected \"xyzzy\" to be absent, got addr 0x%x", addr)
	}
}

func TestSplitAndTokenise(t *testing.T) {
	mem, d := buildDictImage(t)
	alphabets := zstring.LoadAlphabets(3)

	tokens := d.Split("open mailbox")
	if len(tokens) != 2 || tokens[0].Word != "open" || tokens[1].Word != "mailbox" {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}

	// Place the parse buffer in the writable scratch region appended
	// after the dictionary in buildDictImage.
	parseBuffer := uint32(len(mem.Raw())) - 64
	if err := d.Tokenise(mem, alphabets, "open mailbox", parseBuffer, 4); err != nil {
		t.Fatalf("Tokenise: %v", err)
	}

	count, err := mem.ReadByte(parseBuffer + 1)
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if count != 2 {
		t.Fatalf("parsed token count = %d, want 2", count)
	}

	firstAddr, err := mem.ReadWord(parseBuffer + 2)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if firstAddr == 0 {
		t.Fatalf("expected \"open\" to resolve to a dictionary entry")
	}
}
