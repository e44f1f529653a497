package zstring

import "zmachine-go/zcore"

// maxAbbreviationDepth is 1: an abbreviation string may not itself invoke
// another abbreviation. The decoder enforces this instead of silently
// recursing, per the "nested abbreviations are forbidden" invariant.
const maxAbbreviationDepth = 1

func findAbbreviation(mem *zcore.Memory, alphabets *Alphabets, z, x uint8, depth int) (string, error) {
	if depth >= maxAbbreviationDepth {
		return "", errNestedAbbreviation
	}
	abbrIx := uint16(32*(int(z)-1) + int(x))
	word, err := mem.ReadTableWord(mem.Header.AbbreviationTableBase, abbrIx)
	if err != nil {
		return "", err
	}
	strAddr := mem.UnpackAddr(word, zcore.StringAddr)
	str, _, err := decode(mem, strAddr, alphabets, depth+1)
	return str, err
}
