package chip8

import "fmt"

// BackendErrorKind classifies a runtime error raised during Tick.
// Grounded on the Rust BackendErrorKind enum in
// original_source/src/backend/error.rs.
type BackendErrorKind int

const (
	MemoryOverflow BackendErrorKind = iota
	ProgramInvalid
	ProgramNotLoaded
	StackOverflow
	StackUnderflow
	UnrecognizedInstruction
	UnrecognizedKey
	UnrecognizedSprite
	DisplayNotConnected
)

func (k BackendErrorKind) String() string {
	switch k {
	case MemoryOverflow:
		return "attempt to access invalid memory address"
	case ProgramInvalid:
		return "attempt to load invalid program"
	case ProgramNotLoaded:
		return "attempt to run without loading any program"
	case StackOverflow:
		return "attempt to call a subroutine when the stack is full"
	case StackUnderflow:
		return "attempt to return when the stack is empty"
	case UnrecognizedInstruction:
		return "unrecognized instruction"
	case UnrecognizedKey:
		return "attempt to access the state of an unrecognized key"
	case UnrecognizedSprite:
		return "attempt to load unrecognized sprite"
	case DisplayNotConnected:
		return "attempt to draw without an attached display"
	default:
		return "unknown backend error"
	}
}

// Fatal reports whether the host should stop emulation entirely
// (spec.md §7: the {MemoryOverflow, ProgramInvalid, ProgramNotLoaded}
// subset), as opposed to merely logging and continuing.
func (k BackendErrorKind) Fatal() bool {
	switch k {
	case MemoryOverflow, ProgramInvalid, ProgramNotLoaded:
		return true
	default:
		return false
	}
}

// BackendError is returned by Tick and carries the offending PC and
// opcode when available, per spec.md §7.
type BackendError struct {
	Kind BackendErrorKind

	// PC is the address of the offending instruction, or of the fetch
	// that overflowed memory. Unset (-1) for load-time errors.
	PC int

	// Instruction is the decoded opcode that failed, when one was
	// successfully fetched.
	Instruction *Instruction
}

func (e *BackendError) Error() string {
	switch {
	case e.Instruction != nil:
		return fmt.Sprintf("instruction %s at 0x%03X, %s", *e.Instruction, e.PC, e.Kind)
	case e.PC >= 0:
		return fmt.Sprintf("at 0x%03X, %s", e.PC, e.Kind)
	default:
		return e.Kind.String()
	}
}

func newError(kind BackendErrorKind) *BackendError {
	return &BackendError{Kind: kind, PC: -1}
}

func newInstructionError(kind BackendErrorKind, pc int, instr Instruction) *BackendError {
	return &BackendError{Kind: kind, PC: pc, Instruction: &instr}
}

func newFetchError(kind BackendErrorKind, pc int) *BackendError {
	return &BackendError{Kind: kind, PC: pc}
}
