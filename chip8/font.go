package chip8

// CharacterSize is the byte length of one classic 4×5 font glyph.
const CharacterSize = 5

// FontSize is the byte length of the 16-glyph classic font.
const FontSize = CharacterSize * KeyCount

// HiresCharacterSize is the byte length of one SUPER-CHIP 8×10 hires glyph.
const HiresCharacterSize = 10

// HiresCharacterCount is the number of hires glyphs (digits 0-9 only).
const HiresCharacterCount = 10

// HiresFontSize is the byte length of the hires font block.
const HiresFontSize = HiresCharacterSize * HiresCharacterCount

// SuperChipFontSize is the combined classic+hires font size SUPER-CHIP
// programs expect at the bottom of RAM.
const SuperChipFontSize = FontSize + HiresFontSize

// DefaultFont is the built-in classic 0-F hex digit font, 5 bytes per
// glyph, placed at memory offset 0 by Load.
var DefaultFont = [FontSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// DefaultHiresFont is the built-in SUPER-CHIP 8×10 digit font (0-9
// only), placed immediately after DefaultFont by Load.
var DefaultHiresFont = [HiresFontSize]byte{
	0x3C, 0x7E, 0xE7, 0xC3, 0xC3, 0xC3, 0xC3, 0xE7, 0x7E, 0x3C, // 0
	0x18, 0x38, 0x58, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x3C, // 1
	0x3E, 0x7F, 0xC3, 0x06, 0x0C, 0x18, 0x30, 0x60, 0xFF, 0xFF, // 2
	0x3C, 0x7E, 0xC3, 0x03, 0x0E, 0x0E, 0x03, 0xC3, 0x7E, 0x3C, // 3
	0x06, 0x0E, 0x1E, 0x36, 0x66, 0xC6, 0xFF, 0xFF, 0x06, 0x06, // 4
	0xFF, 0xFF, 0xC0, 0xC0, 0xFC, 0xFE, 0x03, 0xC3, 0x7E, 0x3C, // 5
	0x3E, 0x7C, 0xC0, 0xC0, 0xFC, 0xFE, 0xC3, 0xC3, 0x7E, 0x3C, // 6
	0xFF, 0xFF, 0x03, 0x06, 0x0C, 0x18, 0x30, 0x60, 0x60, 0x60, // 7
	0x3C, 0x7E, 0xC3, 0xC3, 0x7E, 0x7E, 0xC3, 0xC3, 0x7E, 0x3C, // 8
	0x3C, 0x7E, 0xC3, 0xC3, 0x7F, 0x3F, 0x03, 0x03, 0x7E, 0x3C, // 9
}

// DefaultSuperChipFont concatenates DefaultFont and DefaultHiresFont,
// the 180-byte block a SUPER-CHIP Load call copies into low RAM when
// no caller-supplied font is given.
var DefaultSuperChipFont = func() [SuperChipFontSize]byte {
	var font [SuperChipFontSize]byte
	copy(font[:FontSize], DefaultFont[:])
	copy(font[FontSize:], DefaultHiresFont[:])
	return font
}()
