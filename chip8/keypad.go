package chip8

// KeyCount is the number of keys on the CHIP-8 hex keypad.
const KeyCount = 16

type keyState uint8

const (
	released keyState = iota
	held
)

// Keypad tracks which of the 16 hex keys are currently held, plus the
// previous snapshot needed to detect a falling (release) edge for the
// Fx0A "wait for key" opcode.
type Keypad struct {
	current  [KeyCount]keyState
	previous [KeyCount]keyState
}

// NewKeypad returns a keypad with every key released.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Update snapshots the current state into previous, then asks down for
// the held/released state of each logical key 0-F. down is typically a
// thin wrapper over the host's physical keyboard state.
func (k *Keypad) Update(down func(key int) bool) {
	k.previous = k.current
	for key := 0; key < KeyCount; key++ {
		if down(key) {
			k.current[key] = held
		} else {
			k.current[key] = released
		}
	}
}

// Pressed reports whether key is currently held.
func (k *Keypad) Pressed(key int) bool {
	return k.current[key] == held
}

// PressedKey returns the lowest-indexed key that was held on the
// previous snapshot and has since been released (a falling edge), or
// -1 if no such key exists. This is the detector Fx0A polls.
func (k *Keypad) PressedKey() int {
	for key := 0; key < KeyCount; key++ {
		if k.previous[key] == held && k.current[key] == released {
			return key
		}
	}
	return -1
}

// Release forces every key to the released state, used on Backend reset.
func (k *Keypad) Release() {
	k.current = [KeyCount]keyState{}
	k.previous = [KeyCount]keyState{}
}
