package chip8

import (
	"math/rand"
	"time"
)

const (
	memorySize    = 4096
	memoryPadding = 512
	registerCount = 16
	stackSize     = 16

	// DisplayWidth and DisplayHeight are the classic CHIP-8 screen size.
	DisplayWidth  = 64
	DisplayHeight = 32
)

// controlFlow mirrors the Rust ControlFlow<()> used by execute: most
// opcodes let the per-tick loop continue fetching, but Draw and Fx0A
// break out of it so the host gets a chance to render or observe a
// key release before the next opcode runs (spec.md §4.D, §9).
type controlFlow int

const (
	flowContinue controlFlow = iota
	flowBreak
)

// Core is the classic CHIP-8 interpreter: register file, RAM, stack,
// timers and the base opcode set. SuperChip composes a Core and
// intercepts a subset of opcodes before delegating the rest here.
type Core struct {
	memory [memorySize]byte
	v      [registerCount]byte
	i      int
	pc     int
	stack  []uint16
	loaded bool

	DelayTimer byte
	SoundTimer byte

	Options Options
	Keypad  *Keypad

	display *DisplayBuffer
	rng     *rand.Rand
}

// NewCore builds a classic CHIP-8 core. display may be nil for a
// headless core (CLS/DRW then fail with DisplayNotConnected).
func NewCore(options Options, display *DisplayBuffer) *Core {
	return &Core{
		pc:      memoryPadding,
		stack:   make([]uint16, 0, stackSize),
		Options: options,
		Keypad:  NewKeypad(),
		display: display,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Display returns the attached display buffer, or nil if none.
func (c *Core) Display() *DisplayBuffer { return c.display }

// IsLoaded reports whether a program has been loaded.
func (c *Core) IsLoaded() bool { return c.loaded }

// Load copies font (or DefaultFont if nil) into the bottom of RAM and
// program to offset 512. program longer than 3584 bytes is rejected.
func (c *Core) Load(font []byte, program []byte) error {
	if len(program) > memorySize-memoryPadding {
		return newError(ProgramInvalid)
	}

	if font == nil {
		font = DefaultFont[:]
	}
	if len(font) < FontSize {
		return newError(ProgramInvalid)
	}
	copy(c.memory[:FontSize], font[:FontSize])

	copy(c.memory[memoryPadding:memoryPadding+len(program)], program)
	c.loaded = true
	return nil
}

// Reset zeroes PC, registers, I, the stack, the timers and the
// display, without unloading the program (spec.md §3 Lifecycle).
func (c *Core) Reset() {
	c.pc = memoryPadding
	c.i = 0
	c.v = [registerCount]byte{}
	c.stack = c.stack[:0]
	c.DelayTimer = 0
	c.SoundTimer = 0
	if c.display != nil {
		c.display.Clear()
	}
}

// Tick decrements both timers once, then executes up to n
// instructions, stopping early if an opcode requests a frame break
// (Draw, Fx0A) or an error occurs.
func (c *Core) Tick(n int) error {
	if !c.loaded {
		return newError(ProgramNotLoaded)
	}

	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.SoundTimer--
	}

	for step := 0; step < n; step++ {
		if c.pc+1 >= memorySize {
			return newFetchError(MemoryOverflow, c.pc)
		}

		instr := NewInstruction(c.memory[c.pc], c.memory[c.pc+1])
		lastPC := c.pc
		c.pc += 2

		flow, err := c.execute(lastPC, instr)
		if err != nil {
			return err
		}
		if flow == flowBreak {
			break
		}
	}

	return nil
}

// execute dispatches a single decoded instruction. index is the
// address the instruction was fetched from (PC has already advanced
// past it), used for error reporting and FX0A rewinding.
func (c *Core) execute(index int, instr Instruction) (controlFlow, *BackendError) {
	switch instr.Op() {
	case 0x0:
		switch instr.NNN() {
		case 0x0E0:
			if c.display == nil {
				return flowContinue, newInstructionError(DisplayNotConnected, index, instr)
			}
			c.display.Clear()

		case 0x0EE:
			if len(c.stack) == 0 {
				return flowContinue, newInstructionError(StackUnderflow, index, instr)
			}
			top := c.stack[len(c.stack)-1]
			c.stack = c.stack[:len(c.stack)-1]
			c.pc = int(top)

		default:
			// 0NNN (COSMAC VIP syscall) is not implemented; ignored.
		}

	case 0x1:
		c.pc = int(instr.NNN())

	case 0x2:
		if len(c.stack) == stackSize {
			return flowContinue, newInstructionError(StackOverflow, index, instr)
		}
		c.stack = append(c.stack, uint16(c.pc))
		c.pc = int(instr.NNN())

	case 0x3:
		if c.v[instr.X()] == instr.NN() {
			c.pc += 2
		}

	case 0x4:
		if c.v[instr.X()] != instr.NN() {
			c.pc += 2
		}

	case 0x5:
		if c.v[instr.X()] == c.v[instr.Y()] {
			c.pc += 2
		}

	case 0x9:
		if c.v[instr.X()] != c.v[instr.Y()] {
			c.pc += 2
		}

	case 0x6:
		c.v[instr.X()] = instr.NN()

	case 0x7:
		c.v[instr.X()] += instr.NN()

	case 0x8:
		if err := c.execute8(index, instr); err != nil {
			return flowContinue, err
		}

	case 0xA:
		c.i = int(instr.NNN())

	case 0xB:
		base := 0
		if c.Options.QuirkyJump {
			base = int(c.v[instr.X()])
		} else {
			base = int(c.v[0])
		}
		c.pc = base + int(instr.NNN())

	case 0xC:
		c.v[instr.X()] = byte(c.rng.Intn(256)) & instr.NN()

	case 0xD:
		return c.executeDraw(index, instr)

	case 0xE:
		return flowContinue, c.executeKey(index, instr)

	case 0xF:
		return c.executeF(index, instr)

	default:
		return flowContinue, newInstructionError(UnrecognizedInstruction, index, instr)
	}

	return flowContinue, nil
}

func (c *Core) execute8(index int, instr Instruction) *BackendError {
	x, y := instr.X(), instr.Y()

	switch instr.N() {
	case 0x0:
		c.v[x] = c.v[y]

	case 0x1:
		c.v[x] |= c.v[y]
		if c.Options.ResetFlag {
			c.v[0xF] = 0
		}

	case 0x2:
		c.v[x] &= c.v[y]
		if c.Options.ResetFlag {
			c.v[0xF] = 0
		}

	case 0x3:
		c.v[x] ^= c.v[y]
		if c.Options.ResetFlag {
			c.v[0xF] = 0
		}

	case 0x4:
		vx, vy := c.v[x], c.v[y]
		result := vx + vy
		c.v[x] = result
		c.v[0xF] = boolByte(result < vx)

	case 0x5:
		vx, vy := c.v[x], c.v[y]
		c.v[x] = vx - vy
		c.v[0xF] = boolByte(vx >= vy)

	case 0x7:
		vx, vy := c.v[x], c.v[y]
		c.v[x] = vy - vx
		c.v[0xF] = boolByte(vy >= vx)

	case 0x6:
		if c.Options.CopyAndShift {
			c.v[x] = c.v[y]
		}
		vx := c.v[x]
		c.v[x] = vx >> 1
		c.v[0xF] = vx & 1

	case 0xE:
		if c.Options.CopyAndShift {
			c.v[x] = c.v[y]
		}
		vx := c.v[x]
		c.v[x] = vx << 1
		c.v[0xF] = vx >> 7

	default:
		return newInstructionError(UnrecognizedInstruction, index, instr)
	}

	return nil
}

func (c *Core) executeDraw(index int, instr Instruction) (controlFlow, *BackendError) {
	n := int(instr.N())
	if c.i+n >= memorySize {
		return flowContinue, newInstructionError(MemoryOverflow, index, instr)
	}
	if c.display == nil {
		return flowContinue, newInstructionError(DisplayNotConnected, index, instr)
	}

	x := int(c.v[instr.X()])
	y := int(c.v[instr.Y()])
	collidingRows := c.display.Draw(x, y, c.memory[c.i:c.i+n])
	c.v[0xF] = boolByte(collidingRows > 0)

	return flowBreak, nil
}

func (c *Core) executeKey(index int, instr Instruction) *BackendError {
	key := int(c.v[instr.X()])
	if key >= KeyCount {
		return newInstructionError(UnrecognizedKey, index, instr)
	}

	switch instr.NN() {
	case 0x9E:
		if c.Keypad.Pressed(key) {
			c.pc += 2
		}
	case 0xA1:
		if !c.Keypad.Pressed(key) {
			c.pc += 2
		}
	default:
		return newInstructionError(UnrecognizedInstruction, index, instr)
	}

	return nil
}

func (c *Core) executeF(index int, instr Instruction) (controlFlow, *BackendError) {
	x := instr.X()

	switch instr.NN() {
	case 0x07:
		c.v[x] = c.DelayTimer

	case 0x0A:
		if key := c.Keypad.PressedKey(); key >= 0 {
			c.v[x] = byte(key)
		} else {
			c.pc = index
		}
		return flowBreak, nil

	case 0x15:
		c.DelayTimer = c.v[x]

	case 0x18:
		c.SoundTimer = c.v[x]

	case 0x1E:
		c.i = (c.i + int(c.v[x])) & 0xFFF

	case 0x29:
		code := int(c.v[x])
		if code >= KeyCount {
			return flowContinue, newInstructionError(UnrecognizedSprite, index, instr)
		}
		c.i = code * CharacterSize

	case 0x33:
		if c.i+2 >= memorySize {
			return flowContinue, newInstructionError(MemoryOverflow, index, instr)
		}
		n := c.v[x]
		c.memory[c.i] = n / 100
		c.memory[c.i+1] = (n / 10) % 10
		c.memory[c.i+2] = n % 10

	case 0x55:
		xi := int(x)
		if c.i+xi >= memorySize {
			return flowContinue, newInstructionError(MemoryOverflow, index, instr)
		}
		for k := 0; k <= xi; k++ {
			c.memory[c.i+k] = c.v[k]
		}
		if c.Options.IncrementAddress {
			c.i += xi + 1
		}

	case 0x65:
		xi := int(x)
		if c.i+xi >= memorySize {
			return flowContinue, newInstructionError(MemoryOverflow, index, instr)
		}
		for k := 0; k <= xi; k++ {
			c.v[k] = c.memory[c.i+k]
		}
		if c.Options.IncrementAddress {
			c.i += xi + 1
		}

	default:
		return flowContinue, newInstructionError(UnrecognizedInstruction, index, instr)
	}

	return flowContinue, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
