package chip8

const (
	// SuperChipDisplayWidth and SuperChipDisplayHeight are the hires
	// SUPER-CHIP screen size; 00FE/00FF toggle lores emulation inside it.
	SuperChipDisplayWidth  = 128
	SuperChipDisplayHeight = 64

	// PersistentStorageSize is the RPL user-flag buffer length FX75/FX85
	// read and write.
	PersistentStorageSize = 8
)

// SuperChip composes a classic Core and intercepts the opcodes the
// SUPER-CHIP extension overrides or adds (hires toggle, large sprite,
// scrolling, RPL store/load, HALT), delegating everything else to the
// embedded core. The core itself owns no display; SuperChip owns the
// 128×64 buffer directly since hires and lores-emulated drawing share
// one backing grid.
type SuperChip struct {
	core    *Core
	display *DisplayBuffer

	// ProgramExited is latched by opcode 00FD (HALT) and read by the
	// host to stop calling Tick.
	ProgramExited bool
}

// NewSuperChip builds a SUPER-CHIP backend. It starts in lores
// emulation mode (half_resolution = true), matching how SUPER-CHIP
// programs assume a 64×32 screen until they opt into 00FF (HIRES).
func NewSuperChip(options Options, displayOptions DisplayOptions) *SuperChip {
	display := NewDisplayBuffer(SuperChipDisplayWidth, SuperChipDisplayHeight, displayOptions)
	display.HalfResolution = true

	return &SuperChip{
		core:    NewCore(options, nil),
		display: display,
	}
}

// Display returns the 128×64 display buffer shared by hires and
// lores-emulated drawing.
func (sc *SuperChip) Display() *DisplayBuffer { return sc.display }

// Keypad returns the keypad state shared with the embedded classic core.
func (sc *SuperChip) Keypad() *Keypad { return sc.core.Keypad }

// Options returns the embedded core's quirk options for reconfiguration.
func (sc *SuperChip) Options() *Options { return &sc.core.Options }

// IsLoaded reports whether a program has been loaded.
func (sc *SuperChip) IsLoaded() bool { return sc.core.IsLoaded() }

// Timers returns the current delay and sound timer values.
func (sc *SuperChip) Timers() (delay, sound byte) {
	return sc.core.DelayTimer, sc.core.SoundTimer
}

// Load copies font (or DefaultSuperChipFont if nil) into RAM — the
// classic 80-byte block via the embedded core, then the 100-byte hires
// digit block immediately after — and the program to offset 512.
func (sc *SuperChip) Load(font []byte, program []byte) error {
	if font == nil {
		font = DefaultSuperChipFont[:]
	}
	if len(font) < SuperChipFontSize {
		return newError(ProgramInvalid)
	}

	if err := sc.core.Load(font[:FontSize], program); err != nil {
		return err
	}
	copy(sc.core.memory[FontSize:FontSize+HiresFontSize], font[FontSize:FontSize+HiresFontSize])

	return nil
}

// Reset zeroes the embedded core's PC/registers/I/stack/timers, clears
// the display, and un-latches ProgramExited, without unloading the program.
func (sc *SuperChip) Reset() {
	sc.ProgramExited = false
	sc.core.Reset()
	sc.display.Clear()
}

// Tick decrements both timers once, then executes up to n
// instructions. storage is the caller-supplied 8-byte RPL persistent
// storage buffer; FX75/FX85 read and write it directly.
func (sc *SuperChip) Tick(n int, storage []byte) error {
	if !sc.core.loaded {
		return newError(ProgramNotLoaded)
	}

	if sc.core.DelayTimer > 0 {
		sc.core.DelayTimer--
	}
	if sc.core.SoundTimer > 0 {
		sc.core.SoundTimer--
	}

	for step := 0; step < n; step++ {
		if sc.core.pc+1 >= memorySize {
			return newFetchError(MemoryOverflow, sc.core.pc)
		}

		instr := NewInstruction(sc.core.memory[sc.core.pc], sc.core.memory[sc.core.pc+1])
		lastPC := sc.core.pc
		sc.core.pc += 2

		flow, err := sc.execute(lastPC, instr, storage)
		if err != nil {
			return err
		}
		if flow == flowBreak {
			break
		}
	}

	return nil
}

func (sc *SuperChip) execute(index int, instr Instruction, storage []byte) (controlFlow, *BackendError) {
	core := sc.core

	switch {
	case instr.Op() == 0x0 && instr.NN() == 0xE0:
		sc.display.Clear()
		return flowContinue, nil

	case instr.Op() == 0x0 && instr.NNN() == 0x0FD:
		sc.ProgramExited = true
		return flowBreak, nil

	case instr.Op() == 0x0 && instr.NN() == 0xFE:
		sc.display.HalfResolution = true
		return flowContinue, nil

	case instr.Op() == 0x0 && instr.NN() == 0xFF:
		sc.display.HalfResolution = false
		return flowContinue, nil

	case instr.Op() == 0x0 && instr.NN() == 0xFB:
		sc.display.Scroll(ScrollRight, 4)
		return flowContinue, nil

	case instr.Op() == 0x0 && instr.NN() == 0xFC:
		sc.display.Scroll(ScrollLeft, 4)
		return flowContinue, nil

	case instr.Op() == 0x0 && instr.Y() == 0xC:
		sc.display.Scroll(ScrollDown, int(instr.N()))
		return flowContinue, nil

	case instr.Op() == 0xD:
		return sc.executeDraw(index, instr)

	case instr.Op() == 0xF && instr.NN() == 0x29:
		return flowContinue, sc.executeFont(index, instr)

	case instr.Op() == 0xF && instr.NN() == 0x30:
		return flowContinue, sc.executeHiresFont(index, instr)

	case instr.Op() == 0xF && instr.NN() == 0x75:
		return flowContinue, sc.executeStore(index, instr, storage)

	case instr.Op() == 0xF && instr.NN() == 0x85:
		return flowContinue, sc.executeRestore(index, instr, storage)

	default:
		return core.execute(index, instr)
	}
}

func (sc *SuperChip) executeDraw(index int, instr Instruction) (controlFlow, *BackendError) {
	core := sc.core

	n := int(instr.N())
	if n == 0 && !sc.display.HalfResolution {
		n = 32
	}
	if core.i+n >= memorySize {
		return flowContinue, newInstructionError(MemoryOverflow, index, instr)
	}

	x := int(core.v[instr.X()])
	y := int(core.v[instr.Y()])
	collidingRows := sc.display.Draw(x, y, core.memory[core.i:core.i+n])

	if sc.display.HalfResolution {
		core.v[0xF] = boolByte(collidingRows > 0)
	} else {
		core.v[0xF] = byte(collidingRows)
	}

	return flowBreak, nil
}

func (sc *SuperChip) executeFont(index int, instr Instruction) *BackendError {
	core := sc.core
	code := int(core.v[instr.X()])

	if code < KeyCount {
		core.i = code * CharacterSize
		return nil
	}

	if code&0x10 == 0 || code&0xF >= HiresCharacterCount {
		return newInstructionError(UnrecognizedSprite, index, instr)
	}

	core.i = FontSize + (code&0xF)*HiresCharacterSize
	return nil
}

func (sc *SuperChip) executeHiresFont(index int, instr Instruction) *BackendError {
	core := sc.core
	code := int(core.v[instr.X()])

	if code >= HiresCharacterCount {
		return newInstructionError(UnrecognizedSprite, index, instr)
	}

	core.i = FontSize + code*HiresCharacterSize
	return nil
}

func (sc *SuperChip) executeStore(index int, instr Instruction, storage []byte) *BackendError {
	xi := clampStorageIndex(int(instr.X()))
	copy(storage[:xi+1], sc.core.v[:xi+1])
	return nil
}

func (sc *SuperChip) executeRestore(index int, instr Instruction, storage []byte) *BackendError {
	xi := clampStorageIndex(int(instr.X()))
	copy(sc.core.v[:xi+1], storage[:xi+1])
	return nil
}

func clampStorageIndex(x int) int {
	if x > PersistentStorageSize-1 {
		return PersistentStorageSize - 1
	}
	return x
}
