package zstring

// Alphabets holds the three 32-entry z-character tables. Entries below
// index 6 are placeholders: 0-5 are handled as special cases (space,
// abbreviation prefixes, shifts) before a table lookup ever happens, and
// in alphabet 2 index 6 is the raw-ZSCII escape trigger rather than a
// printable character, so A2 carries seven blank slots where A0/A1 have
// six.
type Alphabets struct {
	a0 []rune
	a1 []rune
	a2 []rune
}

// defaultAlphabets is the standard v1-v3 table; no custom alphabet table
// mechanism exists before v5, so this is the only one Load ever installs.
var defaultAlphabets = Alphabets{
	a0: []rune("      abcdefghijklmnopqrstuvwxyz"),
	a1: []rune("      ABCDEFGHIJKLMNOPQRSTUVWXYZ"),
	a2: []rune("       \n0123456789.,!?_#'\"/\\-:()"),
}

// LoadAlphabets returns the table to use for a given version. v3 is the
// only version Load() accepts, so this always returns the default; the
// version parameter is kept so the signature does not need to change when
// a later version adds a custom alphabet table in the header.
func LoadAlphabets(version uint8) *Alphabets {
	a := defaultAlphabets
	return &a
}

func (a *Alphabets) table(shift int) []rune {
	switch shift {
	case 1:
		return a.a1
	case 2:
		return a.a2
	default:
		return a.a0
	}
}

// indexOf finds a rune's z-character index in the given shift's table,
// searching from index 6 (the first real slot) onward. Alphabet 2's index
// 6 is never matched since it is the raw-ZSCII escape, not a character.
func (a *Alphabets) indexOf(shift int, r rune) (uint8, bool) {
	t := a.table(shift)
	start := 6
	if shift == 2 {
		start = 7
	}
	for i := start; i < len(t); i++ {
		if t[i] == r {
			return uint8(i), true
		}
	}
	return 0, false
}
