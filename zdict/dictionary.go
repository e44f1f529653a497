// Package zdict implements the dictionary lookup table and the word
// tokenizer that splits raw input into dictionary-searchable tokens.
package zdict

import (
	"bytes"
	"sort"

	"zmachine-go/zcore"
	"zmachine-go/zerr"
	"zmachine-go/zstring"
)

// Dictionary is a parsed view over the story's word list: entries are
// sorted lexically by their encoded z-character bytes, which is what
// makes Find's binary search valid.
type Dictionary struct {
	Separators  []byte
	EntryLength uint8
	entriesBase uint32
	count       int
	mem         *zcore.Memory
}

// numZChrs is fixed at 6 (two words) for every version this interpreter
// loads; v4+ dictionaries use 9 (three words) but are out of scope.
const numZChrs = 6

// Parse reads the dictionary header and indexes its entries for lookup.
func Parse(mem *zcore.Memory) (*Dictionary, error) {
	base := uint32(mem.Header.DictionaryBase)
	sepCount, err := mem.ReadByte(base)
	if err != nil {
		return nil, err
	}
	seps := make([]byte, sepCount)
	for i := uint8(0); i < sepCount; i++ {
		b, err := mem.ReadByte(base + 1 + uint32(i))
		if err != nil {
			return nil, err
		}
		seps[i] = b
	}
	entryLenAddr := base + 1 + uint32(sepCount)
	entryLength, err := mem.ReadByte(entryLenAddr)
	if err != nil {
		return nil, err
	}
	countWord, err := mem.ReadWord(entryLenAddr + 1)
	if err != nil {
		return nil, err
	}
	count := int(int16(countWord))
	entriesBase := entryLenAddr + 3
	if count < 0 {
		// A negative count means "entries are not sorted"; this
		// implementation only ever loads standard, sorted dictionaries.
		return nil, zerr.UnsupportedOp("unsorted dictionary (count %d)", count)
	}
	return &Dictionary{
		Separators:  seps,
		EntryLength: entryLength,
		entriesBase: entriesBase,
		count:       count,
		mem:         mem,
	}, nil
}

func (d *Dictionary) entryBytes(i int) ([]byte, error) {
	addr := d.entriesBase + uint32(i)*uint32(d.EntryLength)
	out := make([]byte, numZChrs/3*2)
	for j := range out {
		b, err := d.mem.ReadByte(addr + uint32(j))
		if err != nil {
			return nil, err
		}
		out[j] = b
	}
	return out, nil
}

// Find returns the entry address for a word's encoded form, or 0 if the
// word is not in the dictionary. Entries are sorted, so this is a binary
// search rather than the linear scan a naive port would use.
func (d *Dictionary) Find(encoded []byte) (uint32, error) {
	var searchErr error
	i := sort.Search(d.count, func(i int) bool {
		if searchErr != nil {
			return true
		}
		entry, err := d.entryBytes(i)
		if err != nil {
			searchErr = err
			return true
		}
		return bytes.Compare(entry, encoded) >= 0
	})
	if searchErr != nil {
		return 0, searchErr
	}
	if i >= d.count {
		return 0, nil
	}
	entry, err := d.entryBytes(i)
	if err != nil {
		return 0, err
	}
	if !bytes.Equal(entry, encoded) {
		return 0, nil
	}
	return d.entriesBase + uint32(i)*uint32(d.EntryLength), nil
}

func (d *Dictionary) isSeparator(b byte) bool {
	for _, s := range d.Separators {
		if s == b {
			return true
		}
	}
	return false
}

// Token is one parsed word from an input line, with its position in the
// original byte buffer for the parse-buffer's start-offset field.
type Token struct {
	Word   string
	Start  int
	Length int
}

// Split breaks raw into words on whitespace and the dictionary's
// separator set, keeping standalone separators as their own tokens (a
// separator adjacent to a word is not swallowed by it).
func (d *Dictionary) Split(raw string) []Token {
	var tokens []Token
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, Token{Word: raw[start:end], Start: start, Length: end - start})
			start = -1
		}
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == ' ':
			flush(i)
		case d.isSeparator(c):
			flush(i)
			tokens = append(tokens, Token{Word: string(c), Start: i, Length: 1})
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(raw))
	return tokens
}

// Tokenise implements sread's dictionary-lookup phase: it writes the
// parse buffer entries for each token, using 0 for words not found in the
// dictionary (rather than failing the whole line, matching v3 behaviour).
func (d *Dictionary) Tokenise(mem *zcore.Memory, alphabets *zstring.Alphabets, raw string, parseBuffer uint32, maxTokens uint8) error {
	tokens := d.Split(raw)
	if len(tokens) > int(maxTokens) {
		tokens = tokens[:maxTokens]
	}
	if err := mem.WriteByte(parseBuffer+1, uint8(len(tokens))); err != nil {
		return err
	}
	for i, tok := range tokens {
		encoded, err := zstring.Encode([]rune(tok.Word), alphabets, numZChrs)
		if err != nil {
			return err
		}
		addr, err := d.Find(encoded)
		if err != nil {
			return err
		}
		entryOff := parseBuffer + 2 + uint32(i)*4
		if err := mem.WriteWord(entryOff, uint16(addr)); err != nil {
			return err
		}
		if err := mem.WriteByte(entryOff+2, uint8(tok.Length)); err != nil {
			return err
		}
		// +1 because text starts right after the buffer's capacity byte.
		if err := mem.WriteByte(entryOff+3, uint8(tok.Start+1)); err != nil {
			return err
		}
	}
	return nil
}
