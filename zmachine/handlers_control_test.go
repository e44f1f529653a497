package zmachine_test

import (
	"strings"
	"testing"

	"zmachine-go/zmachine"
)

func TestVerifyAlwaysBranchesTrue(t *testing.T) {
	// buildImage leaves the header checksum zeroed while the code region is
	// not, so any recomputed checksum would mismatch; verify must branch
	// true regardless and reach the print on the taken path.
	code := []byte{
		0xBD, // verify (0OP:13)
		0xC6, // branch: polarity true, 1-byte form, offset 6
		0xBA, // not-taken path: quit immediately
		0x00, 0x00, 0x00,
		0xB2,       // taken path: print (0OP:2)
		0xB5, 0xC5, // z-string "hi"
		0xBA, // quit
	}
	m := &zmachine.Machine{}
	if err := m.Load(buildImage(t, code)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if state := m.Update(); state != zmachine.Crashed {
		t.Fatalf("state = %v, want Crashed (quit)", state)
	}
	lines := m.Transcript()
	if len(lines) == 0 || lines[0] != "hi" {
		t.Fatalf("transcript = %v, want the branch-taken path's \"hi\" first", lines)
	}
}

func TestSaveAndRestoreFailPredictably(t *testing.T) {
	for name, opByte := range map[string]byte{"save": 0xB5, "restore": 0xB6} {
		t.Run(name, func(t *testing.T) {
			m := &zmachine.Machine{}
			if err := m.Load(buildImage(t, []byte{opByte})); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if state := m.Update(); state != zmachine.Crashed {
				t.Fatalf("state = %v, want Crashed", state)
			}
			lines := m.Transcript()
			if len(lines) == 0 || !strings.Contains(lines[len(lines)-1], "***** CRASH *****") {
				t.Fatalf("transcript = %v, want a crash diagnostic line", lines)
			}
		})
	}
}
