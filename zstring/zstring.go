// Package zstring implements the z-character text codec: packed string
// decode/encode, alphabet shifts, abbreviations, and the raw-ZSCII escape.
package zstring

import (
	"errors"

	"zmachine-go/zcore"
	"zmachine-go/zerr"
)

var errNestedAbbreviation = zerr.Semantic("nested abbreviation reference")

// Decode reads a packed string starting at addr and returns the decoded
// text along with the number of bytes consumed (always a multiple of 2).
func Decode(mem *zcore.Memory, addr uint32, alphabets *Alphabets) (string, uint32, error) {
	return decode(mem, addr, alphabets, 0)
}

func decode(mem *zcore.Memory, addr uint32, alphabets *Alphabets, depth int) (string, uint32, error) {
	var zchars []uint8
	cursor := addr
	for {
		word, err := mem.ReadWord(cursor)
		if err != nil {
			return "", 0, err
		}
		cursor += 2
		zchars = append(zchars,
			uint8((word>>10)&0x1F),
			uint8((word>>5)&0x1F),
			uint8(word&0x1F),
		)
		if word&0x8000 != 0 {
			break
		}
	}

	var out []rune
	shift := 0
	pendingAbbrev := uint8(0)
	rawStage := 0
	var rawHi uint8

	for _, c := range zchars {
		switch {
		case rawStage == 1:
			rawHi = c
			rawStage = 2
		case rawStage == 2:
			code := uint16(rawHi)<<5 | uint16(c)
			if r, ok := ZsciiToRune(code); ok {
				out = append(out, r)
			}
			rawStage = 0
		case pendingAbbrev != 0:
			str, err := findAbbreviation(mem, alphabets, pendingAbbrev, c, depth)
			if err != nil {
				return "", 0, err
			}
			out = append(out, []rune(str)...)
			pendingAbbrev = 0
			shift = 0
		case c == 0:
			out = append(out, ' ')
			shift = 0
		case c >= 1 && c <= 3:
			pendingAbbrev = c
		case c == 4:
			shift = 1
		case c == 5:
			shift = 2
		case c == 6 && shift == 2:
			rawStage = 1
			shift = 0
		default:
			out = append(out, alphabets.table(shift)[c])
			shift = 0
		}
	}

	return string(out), cursor - addr, nil
}

// Encode packs a lowercase word (as used for dictionary lookups) into
// exactly numZChrs z-characters, padded with 5s and terminated with the
// end-of-string bit on the final word. Characters with no alphabet slot
// and no ASCII ZSCII code are dropped.
func Encode(word []rune, alphabets *Alphabets, numZChrs int) ([]byte, error) {
	var zchars []uint8
	for _, r := range word {
		if r == ' ' {
			zchars = append(zchars, 0)
		} else if idx, ok := alphabets.indexOf(0, r); ok {
			zchars = append(zchars, idx)
		} else if idx, ok := alphabets.indexOf(1, r); ok {
			zchars = append(zchars, 4, idx)
		} else if idx, ok := alphabets.indexOf(2, r); ok {
			zchars = append(zchars, 5, idx)
		} else if code, ok := RuneToZscii(r); ok {
			zchars = append(zchars, 5, 6, code>>5, code&0x1F)
		}
	}

	if len(zchars) > numZChrs {
		zchars = zchars[:numZChrs]
	}
	for len(zchars) < numZChrs {
		zchars = append(zchars, 5)
	}

	out := make([]byte, 0, numZChrs/3*2)
	for i := 0; i < numZChrs; i += 3 {
		word := uint16(zchars[i])<<10 | uint16(zchars[i+1])<<5 | uint16(zchars[i+2])
		if i+3 >= numZChrs {
			word |= 0x8000
		}
		out = append(out, byte(word>>8), byte(word))
	}
	return out, nil
}

// IsNestedAbbreviation reports whether err is the specific "abbreviation
// referenced from within an abbreviation" failure.
func IsNestedAbbreviation(err error) bool {
	return errors.Is(err, errNestedAbbreviation)
}
