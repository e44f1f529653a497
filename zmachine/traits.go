package zmachine

import (
	"zmachine-go/zerr"
	"zmachine-go/zobject"
)

// opKey identifies a handler slot. OP2 and VAR opcode numbers occupy
// separate spaces from each other and from OP1/OP0, so the pair (count,
// number) is needed to find the right handler, not number alone.
type opKey struct {
	count  OpCount
	number uint8
}

type handlerFunc func(m *Machine, ins *Instruction) error

// Traits bundles everything that differs between Z-machine versions: the
// object table shape and the opcode dispatch table. v4/v5 would add
// entries here (wider packed addresses, windowing opcodes) rather than
// branching throughout the handlers.
type Traits struct {
	Version  uint8
	Object   zobject.Traits
	Handlers map[opKey]handlerFunc

	// Screen is nil for v3: the two-window/colour model only exists for a
	// future version whose Traits actually constructs one.
	Screen *ScreenModel
}

// TraitsForVersion returns the trait record for a supported version. Only
// v3 is wired up; the lookup is still version-keyed so adding v4/v5 is a
// matter of adding another case, not restructuring the dispatcher.
func TraitsForVersion(version uint8) (Traits, error) {
	switch version {
	case 3:
		obj, err := zobject.TraitsForVersion(3)
		if err != nil {
			return Traits{}, err
		}
		return Traits{Version: 3, Object: obj, Handlers: v3Handlers}, nil
	default:
		return Traits{}, zerr.UnsupportedOp("story file version %d (only version 3 is supported)", version)
	}
}
