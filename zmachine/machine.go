// Package zmachine implements the synchronous Z-machine interpreter core:
// instruction decode, opcode dispatch, and the full v3 handler set, driven
// through a Load/Reset/Update/Input/Transcript/State API with no internal
// goroutines or channels.
package zmachine

import (
	"math/rand"
	"strings"

	"zmachine-go/zcore"
	"zmachine-go/zdict"
	"zmachine-go/zerr"
	"zmachine-go/zobject"
	"zmachine-go/zstack"
	"zmachine-go/zstring"
)

// State is the machine's run state, reported by Update and State.
type State int

const (
	Crashed State = iota
	Running
	InputRequested
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case InputRequested:
		return "input-requested"
	default:
		return "crashed"
	}
}

// StatusBar is the v3 one-line location/score display, read on demand
// from globals 16-18 rather than pushed by sread, to keep the core
// synchronous.
type StatusBar struct {
	PlaceName string
	Score     int16
	Moves     int16
}

type pendingRead struct {
	textBuffer  uint32
	parseBuffer uint32
	maxLen      uint8
	maxTokens   uint8
}

// Machine is one running story. It is not safe for concurrent use; the
// host is expected to call Update/Input from a single goroutine, exactly
// as the single-threaded cooperative model in the design requires.
type Machine struct {
	mem        *zcore.Memory
	traits     Traits
	alphabets  *zstring.Alphabets
	dict       *zdict.Dictionary
	stack      zstack.Stack
	pc         uint32
	state      State
	transcript []string
	rng        *rand.Rand
	pending    *pendingRead
	undo       []undoState
}

// Load parses a story image and prepares the machine to run it. A failed
// Load leaves the machine Crashed until a subsequent Load succeeds;
// Reset alone cannot clear a load failure since there is no valid image
// or trait set to reset to.
func (m *Machine) Load(image []byte) error {
	mem, err := zcore.New(image)
	if err != nil {
		m.mem = nil
		m.state = Crashed
		return err
	}
	traits, err := TraitsForVersion(mem.Header.Version)
	if err != nil {
		m.mem = nil
		m.state = Crashed
		return zerr.Load("%v", err)
	}
	dict, err := zdict.Parse(mem)
	if err != nil {
		m.mem = nil
		m.state = Crashed
		return zerr.Load("parsing dictionary: %v", err)
	}
	m.mem = mem
	m.traits = traits
	m.dict = dict
	m.alphabets = zstring.LoadAlphabets(mem.Header.Version)
	m.Reset()
	return nil
}

// Reset reinitialises the stack and program counter from the already
// loaded image's header, without re-parsing it. It clears a Crashed
// runtime error (but not a failed Load, since there is nothing to reset
// to in that case).
func (m *Machine) Reset() {
	m.stack.Reset()
	if m.mem != nil {
		m.pc = uint32(m.mem.Header.InitialPC)
	}
	m.transcript = nil
	m.pending = nil
	m.rng = rand.New(rand.NewSource(1))
	m.undo = nil
	if m.mem != nil {
		m.state = Running
	}
}

// Update runs instructions until the machine either needs input or
// crashes, and returns the resulting state. Calling Update on a machine
// that is already Crashed or waiting for Input is a no-op that just
// reports the current state.
func (m *Machine) Update() State {
	if m.state != Running {
		return m.state
	}
	for m.state == Running {
		if err := m.step(); err != nil {
			m.crash(err)
			break
		}
	}
	return m.state
}

func (m *Machine) crash(err error) {
	m.transcript = append(m.transcript, "***** CRASH *****: "+err.Error())
	m.state = Crashed
}

func (m *Machine) step() error {
	ins, nextPC, err := Decode(m.mem, m.pc)
	if err != nil {
		return err
	}
	m.pc = nextPC
	handler, ok := m.traits.Handlers[opKey{ins.Count, ins.Number}]
	if !ok {
		return zerr.Decode("unimplemented opcode %d (count=%d) at 0x%x", ins.Number, ins.Count, ins.Addr)
	}
	return handler(m, ins)
}

// Input delivers one line of player text, completing a pending sread and
// returning the machine to Running. It is an error to call Input when the
// machine is not waiting for it.
func (m *Machine) Input(line string) error {
	if m.state != InputRequested || m.pending == nil {
		return zerr.Semantic("Input called with no pending read")
	}
	p := m.pending
	lower := strings.ToLower(line)
	if len(lower) > int(p.maxLen) {
		lower = lower[:p.maxLen]
	}
	// v3's text buffer keeps its capacity byte at offset 0; characters go
	// in starting at offset 1, terminated by a null byte, unlike v5's
	// length-prefixed form.
	for i := 0; i < len(lower); i++ {
		if err := m.mem.WriteByte(p.textBuffer+1+uint32(i), lower[i]); err != nil {
			m.crash(err)
			return err
		}
	}
	if err := m.mem.WriteByte(p.textBuffer+1+uint32(len(lower)), 0); err != nil {
		m.crash(err)
		return err
	}
	if p.parseBuffer != 0 {
		if err := m.dict.Tokenise(m.mem, m.alphabets, lower, p.parseBuffer, p.maxTokens); err != nil {
			m.crash(err)
			return err
		}
	}
	m.transcript = append(m.transcript, lower)
	m.pending = nil
	m.state = Running
	return nil
}

// Transcript returns every line of output produced so far, in order.
func (m *Machine) Transcript() []string { return m.transcript }

// MemoryForDebug exposes the loaded image for read-only inspection tools
// such as the abbreviation-table dump, without opening up general write
// access to callers outside the package.
func (m *Machine) MemoryForDebug() *zcore.Memory { return m.mem }

// AbbreviationTableAddr reports where the loaded image's abbreviation
// pointer table begins.
func (m *Machine) AbbreviationTableAddr() uint32 {
	return uint32(m.mem.Header.AbbreviationTableBase)
}

// State reports the machine's current run state without advancing it.
func (m *Machine) State() State { return m.state }

// StatusBar reads the v3 status-line fields directly from the globals
// table, as a pull rather than something sread pushes, so it can be
// called at any time without disturbing execution.
func (m *Machine) StatusBar() (StatusBar, error) {
	locId, err := m.readVariable(16)
	if err != nil {
		return StatusBar{}, err
	}
	score, err := m.readVariable(17)
	if err != nil {
		return StatusBar{}, err
	}
	moves, err := m.readVariable(18)
	if err != nil {
		return StatusBar{}, err
	}
	name := ""
	if locId != 0 {
		obj, err := zobject.Get(locId, m.mem, m.traits.Object, m.alphabets)
		if err == nil {
			name = obj.Name
		}
	}
	return StatusBar{PlaceName: name, Score: int16(score), Moves: int16(moves)}, nil
}

func (m *Machine) print(s string) {
	if len(m.transcript) > 0 {
		last := len(m.transcript) - 1
		m.transcript[last] += s
		return
	}
	m.transcript = append(m.transcript, s)
}

func (m *Machine) newline() {
	m.transcript = append(m.transcript, "")
}

func (m *Machine) readVariable(v uint8) (uint16, error) {
	switch {
	case v == 0:
		return m.stack.Pop()
	case v < 16:
		return m.stack.Local(v)
	default:
		return m.mem.ReadTableWord(m.mem.Header.GlobalVariableBase, uint16(v-16))
	}
}

func (m *Machine) writeVariable(v uint8, value uint16) error {
	switch {
	case v == 0:
		return m.stack.Push(value)
	case v < 16:
		return m.stack.SetLocal(v, value)
	default:
		return m.mem.WriteTableWord(m.mem.Header.GlobalVariableBase, uint16(v-16), value)
	}
}

func (m *Machine) operandValue(op Operand) (uint16, error) {
	if op.Type == VariableOperand {
		return m.readVariable(uint8(op.Raw))
	}
	return op.Raw, nil
}

func (m *Machine) operands(ins *Instruction) ([]uint16, error) {
	out := make([]uint16, len(ins.Operand))
	for i, op := range ins.Operand {
		v, err := m.operandValue(op)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *Machine) nextByte() (uint8, error) {
	b, err := m.mem.ReadByte(m.pc)
	if err == nil {
		m.pc++
	}
	return b, err
}

func (m *Machine) nextWord() (uint16, error) {
	w, err := m.mem.ReadWord(m.pc)
	if err == nil {
		m.pc += 2
	}
	return w, err
}

func (m *Machine) storeResult(value uint16) error {
	v, err := m.nextByte()
	if err != nil {
		return err
	}
	return m.writeVariable(v, value)
}

// handleBranch decodes a branch descriptor and, if test matches its
// encoded polarity, either returns from the current routine (offsets 0
// and 1) or jumps by the encoded signed offset.
func (m *Machine) handleBranch(test bool) error {
	b0, err := m.nextByte()
	if err != nil {
		return err
	}
	polarity := b0&0x80 != 0
	var offset int32
	if b0&0x40 != 0 {
		offset = int32(b0 & 0x3F)
	} else {
		b1, err := m.nextByte()
		if err != nil {
			return err
		}
		raw := uint16(b0&0x3F)<<8 | uint16(b1)
		if raw&0x2000 != 0 {
			offset = int32(raw) - 0x4000
		} else {
			offset = int32(raw)
		}
	}
	if test != polarity {
		return nil
	}
	switch offset {
	case 0:
		return m.doReturn(0)
	case 1:
		return m.doReturn(1)
	default:
		m.pc = uint32(int64(m.pc) + int64(offset) - 2)
		return nil
	}
}

// doCall pushes a new frame and transfers control into routine. A packed
// address of 0 is the documented no-op: store 0 and continue without
// creating a frame, since there is no callee to return from later.
func (m *Machine) doCall(packed uint16, args []uint16) error {
	if packed == 0 {
		return m.storeResult(0)
	}
	returnPC := m.pc
	addr := m.mem.UnpackAddr(packed, zcore.RoutineAddr)
	numLocals, err := m.mem.ReadByte(addr)
	if err != nil {
		return err
	}
	addr++
	locals := make([]uint16, numLocals)
	for i := 0; i < int(numLocals); i++ {
		def, err := m.mem.ReadWord(addr)
		if err != nil {
			return err
		}
		addr += 2
		if i < len(args) {
			locals[i] = args[i]
		} else {
			locals[i] = def
		}
	}
	if err := m.stack.PushFrame(returnPC, locals); err != nil {
		return err
	}
	m.pc = addr
	return nil
}

// doReturn pops the current frame and performs the caller's store tail,
// which the caller's call instruction deliberately left unconsumed.
func (m *Machine) doReturn(value uint16) error {
	pc, err := m.stack.PopFrame()
	if err != nil {
		return err
	}
	m.pc = pc
	return m.storeResult(value)
}
