package platform

import "github.com/veandco/go-sdl2/sdl"

// DefaultKeymap is the standard COSMAC VIP 4x4 keypad laid out over
// the QWERTY block the way most CHIP-8 emulators do it:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   ==>  Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
//
// Grounded on the teacher's emulator.processInput key switch.
var DefaultKeymap = map[sdl.Keycode]int{
	sdl.K_1: 0x1, sdl.K_2: 0x2, sdl.K_3: 0x3, sdl.K_4: 0xC,
	sdl.K_q: 0x4, sdl.K_w: 0x5, sdl.K_e: 0x6, sdl.K_r: 0xD,
	sdl.K_a: 0x7, sdl.K_s: 0x8, sdl.K_d: 0x9, sdl.K_f: 0xE,
	sdl.K_z: 0xA, sdl.K_x: 0x0, sdl.K_c: 0xB, sdl.K_v: 0xF,
}

// Keyboard polls SDL events once per frame, tracking which of the 16
// logical keys are held and whether the window requested a close.
type Keyboard struct {
	keymap map[sdl.Keycode]int
	held   [16]bool
	quit   bool
}

// NewKeyboard builds a Keyboard using keymap, or DefaultKeymap if nil.
func NewKeyboard(keymap map[sdl.Keycode]int) *Keyboard {
	if keymap == nil {
		keymap = DefaultKeymap
	}
	return &Keyboard{keymap: keymap}
}

// Poll drains the SDL event queue, updating held keys and the quit
// flag. Call once per host frame before Down/Quit.
func (k *Keyboard) Poll() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			k.quit = true
		case *sdl.KeyboardEvent:
			if e.Keysym.Sym == sdl.K_ESCAPE && e.Type == sdl.KEYDOWN {
				k.quit = true
				continue
			}
			key, ok := k.keymap[e.Keysym.Sym]
			if !ok {
				continue
			}
			k.held[key] = e.Type == sdl.KEYDOWN
		}
	}
}

// Down reports whether logical key (0-F) is currently held. This is
// the callback chip8.Keypad.Update expects.
func (k *Keyboard) Down(key int) bool { return k.held[key] }

// Quit reports whether the window was closed or Escape was pressed.
func (k *Keyboard) Quit() bool { return k.quit }
