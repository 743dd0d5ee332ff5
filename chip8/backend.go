package chip8

import (
	"errors"
	"iter"
)

// Variant selects which interpreter a Backend wraps.
type Variant int

const (
	VariantClassic Variant = iota
	VariantSuperChip
)

func (v Variant) String() string {
	if v == VariantSuperChip {
		return "superchip"
	}
	return "chip8"
}

// ErrPersistentStorageRequired is returned by Tick when a SUPER-CHIP
// backend is ticked without the 8-byte RPL storage slice FX75/FX85
// need. It is a façade-level contract, not one of the VM's own
// BackendErrorKind values, since the original backend has no concept
// of a missing host resource.
var ErrPersistentStorageRequired = errors.New("chip8: super-chip backend requires a persistent storage slice")

// Backend is a uniform façade over the classic Core and the SUPER-CHIP
// overlay, so cmd/chip8vm and the platform package can drive either
// without a type switch. Exactly one of core/superChip is non-nil.
type Backend struct {
	variant   Variant
	core      *Core
	superChip *SuperChip
}

// NewBackend constructs a Backend for the given variant. options and
// displayOptions seed the new interpreter's quirks; use DefaultOptions
// / DefaultSuperChipOptions (and their Display counterparts) for the
// conventional defaults.
func NewBackend(variant Variant, options Options, displayOptions DisplayOptions) *Backend {
	switch variant {
	case VariantSuperChip:
		return &Backend{variant: variant, superChip: NewSuperChip(options, displayOptions)}
	default:
		display := NewDisplayBuffer(DisplayWidth, DisplayHeight, displayOptions)
		return &Backend{variant: VariantClassic, core: NewCore(options, display)}
	}
}

// Variant reports which interpreter this Backend wraps.
func (b *Backend) Variant() Variant { return b.variant }

// Load loads font (nil for the variant's built-in default) and program.
func (b *Backend) Load(font, program []byte) error {
	if b.superChip != nil {
		return b.superChip.Load(font, program)
	}
	return b.core.Load(font, program)
}

// Reset re-initializes PC/registers/I/stack/timers/display without
// unloading the program, and releases every held key.
func (b *Backend) Reset() {
	if b.superChip != nil {
		b.superChip.Reset()
		b.superChip.Keypad().Release()
		return
	}
	b.core.Reset()
	b.core.Keypad.Release()
}

// IsLoaded reports whether a program has been loaded.
func (b *Backend) IsLoaded() bool {
	if b.superChip != nil {
		return b.superChip.IsLoaded()
	}
	return b.core.IsLoaded()
}

// HasProgramExited reports whether the SUPER-CHIP HALT opcode (00FD)
// has run. Always false for the classic variant, which has no HALT.
func (b *Backend) HasProgramExited() bool {
	if b.superChip != nil {
		return b.superChip.ProgramExited
	}
	return false
}

// Keypad returns the keypad the host should Update once per frame
// before calling Tick.
func (b *Backend) Keypad() *Keypad {
	if b.superChip != nil {
		return b.superChip.Keypad()
	}
	return b.core.Keypad
}

// Tick runs up to n instructions. storage is the 8-byte RPL persistent
// storage slice; it is ignored for the classic variant and required
// (length >= PersistentStorageSize) for SUPER-CHIP.
func (b *Backend) Tick(n int, storage []byte) error {
	if b.superChip != nil {
		if len(storage) < PersistentStorageSize {
			return ErrPersistentStorageRequired
		}
		return b.superChip.Tick(n, storage)
	}
	return b.core.Tick(n)
}

// GetTimers returns the current delay and sound timer values.
func (b *Backend) GetTimers() (delay, sound byte) {
	if b.superChip != nil {
		return b.superChip.Timers()
	}
	return b.core.DelayTimer, b.core.SoundTimer
}

// GetOptionsMut returns a pointer to the interpreter's quirk options
// for in-place reconfiguration.
func (b *Backend) GetOptionsMut() *Options {
	if b.superChip != nil {
		return b.superChip.Options()
	}
	return &b.core.Options
}

func (b *Backend) displayBuffer() *DisplayBuffer {
	if b.superChip != nil {
		return b.superChip.Display()
	}
	return b.core.Display()
}

// GetDisplayOptionsMut returns a pointer to the display-level quirk
// options (sprite clipping, half-pixel scrolling) for in-place
// reconfiguration.
func (b *Backend) GetDisplayOptionsMut() *DisplayOptions {
	return &b.displayBuffer().Options
}

// IsDisplayBufferDirty reports whether the display has changed since
// GetDisplayBuffer was last called.
func (b *Backend) IsDisplayBufferDirty() bool {
	return b.displayBuffer().IsDirty()
}

// GetDisplayBuffer returns a lazy row-major sequence over every pixel
// and clears the dirty flag, matching the one-read-per-frame contract
// a video backend is expected to follow.
func (b *Backend) GetDisplayBuffer() iter.Seq[bool] {
	return b.displayBuffer().Flattened()
}

// DisplayBufferSize reports the current pixel width and height.
func (b *Backend) DisplayBufferSize() (width, height int) {
	d := b.displayBuffer()
	return d.Width(), d.Height()
}

// DisplayBufferAspectRatio reports width/height, for a host sizing its window.
func (b *Backend) DisplayBufferAspectRatio() float32 {
	return b.displayBuffer().AspectRatio()
}
