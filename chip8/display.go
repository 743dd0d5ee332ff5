package chip8

import "iter"

// ScrollDirection selects one of the four directions DisplayBuffer.Scroll
// shifts pixels in.
type ScrollDirection int

const (
	ScrollDown ScrollDirection = iota
	ScrollUp
	ScrollLeft
	ScrollRight
)

// DisplayOptions holds the display-level quirks: clipping at the edge
// of the screen instead of wrapping, and (SUPER-CHIP only) whether
// scroll distances are given in whole lores pixels or half (hires)
// pixels while half_resolution is active.
type DisplayOptions struct {
	ClipSprites        bool
	HalfPixelScrolling bool
}

// DisplayBuffer is a monochrome W×H pixel grid with XOR sprite drawing,
// four-way scrolling, and a dirty flag. The same type backs both the
// 64×32 CHIP-8 screen and the 128×64 SUPER-CHIP screen; HalfResolution
// additionally lets the SUPER-CHIP overlay emulate a lores (64×32)
// program inside the hires buffer by scaling every sprite pixel to a
// 2×2 block.
type DisplayBuffer struct {
	width, height int
	rows          [][]bool
	dirty         bool

	// HalfResolution is toggled by the SUPER-CHIP 00FE/00FF opcodes.
	// Never set by the classic CHIP-8 core.
	HalfResolution bool

	Options DisplayOptions
}

// NewDisplayBuffer allocates a cleared width×height buffer.
func NewDisplayBuffer(width, height int, options DisplayOptions) *DisplayBuffer {
	rows := make([][]bool, height)
	for i := range rows {
		rows[i] = make([]bool, width)
	}
	return &DisplayBuffer{width: width, height: height, rows: rows, Options: options}
}

// Width reports the buffer's pixel width.
func (d *DisplayBuffer) Width() int { return d.width }

// Height reports the buffer's pixel height.
func (d *DisplayBuffer) Height() int { return d.height }

// AspectRatio reports width/height, used by the backend façade.
func (d *DisplayBuffer) AspectRatio() float32 {
	return float32(d.width) / float32(d.height)
}

// IsDirty reports whether the buffer has changed since the last Flattened call.
func (d *DisplayBuffer) IsDirty() bool { return d.dirty }

// Clear sets every pixel off and marks the buffer dirty.
func (d *DisplayBuffer) Clear() {
	for _, row := range d.rows {
		for i := range row {
			row[i] = false
		}
	}
	d.dirty = true
}

// Flattened returns a lazy row-major sequence of every pixel and clears
// the dirty flag as a side effect of being requested, matching the Rust
// get_flattened's "read once per frame" contract.
func (d *DisplayBuffer) Flattened() iter.Seq[bool] {
	d.dirty = false
	return func(yield func(bool) bool) {
		for _, row := range d.rows {
			for _, v := range row {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// bitAt returns bit j (0 = most significant) of b, matching the Rust
// Msb0 bit order used when iterating sprite bytes.
func bitAt(b byte, j int) bool {
	return (b>>(7-j))&1 != 0
}

// bitAt16 returns bit j (0 = most significant) of a 16-bit big-endian
// sprite row, used for 16×16 large sprites.
func bitAt16(row uint16, j int) bool {
	return (row>>(15-j))&1 != 0
}

// Draw XORs sprite onto the buffer at (x, y) (taken modulo the buffer
// size before drawing begins) and returns the number of sprite rows in
// which at least one previously-set pixel was cleared. When
// ClipSprites is set, sprite rows cut off at the bottom edge are added
// to that count. A 32-byte sprite in non-half-resolution mode is
// interpreted as a 16×16 large sprite (SUPER-CHIP DXY0); everything
// else is a classic 8-bit-wide sprite with one row per byte, doubled
// to 2×2 blocks when HalfResolution is set.
func (d *DisplayBuffer) Draw(x, y int, sprite []byte) int {
	if len(sprite) == 32 && !d.HalfResolution {
		rows := make([]uint16, 16)
		for i := 0; i < 16; i++ {
			rows[i] = uint16(sprite[2*i])<<8 | uint16(sprite[2*i+1])
		}
		return d.draw16x16(x, y, rows)
	}

	scale := 1
	if d.HalfResolution {
		scale = 2
	}

	cx0 := (x * scale) % d.width
	cy0 := (y * scale) % d.height

	collidingRows := 0

	for row, b := range sprite {
		cy := cy0 + row*scale
		if d.Options.ClipSprites && cy == d.height {
			collidingRows += len(sprite) - row
			break
		}
		cy %= d.height

		collided := false
		for bit := 0; bit < 8; bit++ {
			cx := cx0 + bit*scale
			if d.Options.ClipSprites && cx == d.width {
				break
			}
			cx %= d.width

			if !bitAt(b, bit) {
				continue
			}

			if !d.HalfResolution {
				d.rows[cy][cx] = !d.rows[cy][cx]
				collided = collided || !d.rows[cy][cx]
				continue
			}

			for i := cy; i <= cy+1; i++ {
				for j := cx; j <= cx+1; j++ {
					d.rows[i][j] = !d.rows[i][j]
					collided = collided || !d.rows[i][j]
				}
			}
		}

		if collided {
			collidingRows++
		}
	}

	d.dirty = true
	return collidingRows
}

// draw16x16 draws a SUPER-CHIP large sprite of sixteen 16-bit rows.
func (d *DisplayBuffer) draw16x16(x, y int, sprite []uint16) int {
	cx0 := x % d.width
	cy0 := y % d.height

	collidingRows := 0

	for row, word := range sprite {
		cy := cy0 + row
		if d.Options.ClipSprites && cy == d.height {
			collidingRows += len(sprite) - row
			break
		}
		cy %= d.height

		collided := false
		for bit := 0; bit < 16; bit++ {
			cx := cx0 + bit
			if d.Options.ClipSprites && cx == d.width {
				break
			}
			cx %= d.width

			if !bitAt16(word, bit) {
				continue
			}

			d.rows[cy][cx] = !d.rows[cy][cx]
			collided = collided || !d.rows[cy][cx]
		}

		if collided {
			collidingRows++
		}
	}

	d.dirty = true
	return collidingRows
}

// scrollDistance doubles n when emulating lores scrolling at full
// hires resolution, so lores programs see whole-lores-pixel scrolls.
func (d *DisplayBuffer) scrollDistance(n int) int {
	if d.HalfResolution && !d.Options.HalfPixelScrolling {
		return 2 * n
	}
	return n
}

// Scroll shifts every pixel n rows/columns in the given direction;
// vacated cells become unset.
func (d *DisplayBuffer) Scroll(direction ScrollDirection, n int) {
	n = d.scrollDistance(n)
	if n <= 0 {
		return
	}

	switch direction {
	case ScrollDown:
		d.scrollDown(n)
	case ScrollUp:
		d.scrollUp(n)
	case ScrollLeft:
		d.scrollLeft(n)
	case ScrollRight:
		d.scrollRight(n)
	}

	d.dirty = true
}

func (d *DisplayBuffer) scrollDown(n int) {
	if n >= d.height {
		d.Clear()
		return
	}
	for i := d.height - 1; i >= n; i-- {
		copy(d.rows[i], d.rows[i-n])
	}
	for i := 0; i < n; i++ {
		for j := range d.rows[i] {
			d.rows[i][j] = false
		}
	}
}

func (d *DisplayBuffer) scrollUp(n int) {
	if n >= d.height {
		d.Clear()
		return
	}
	for i := 0; i < d.height-n; i++ {
		copy(d.rows[i], d.rows[i+n])
	}
	for i := d.height - n; i < d.height; i++ {
		for j := range d.rows[i] {
			d.rows[i][j] = false
		}
	}
}

func (d *DisplayBuffer) scrollLeft(n int) {
	if n >= d.width {
		d.Clear()
		return
	}
	for i := 0; i < d.height; i++ {
		row := d.rows[i]
		for j := 0; j < d.width-n; j++ {
			row[j] = row[j+n]
		}
		for j := d.width - n; j < d.width; j++ {
			row[j] = false
		}
	}
}

func (d *DisplayBuffer) scrollRight(n int) {
	if n >= d.width {
		d.Clear()
		return
	}
	for i := 0; i < d.height; i++ {
		row := d.rows[i]
		for j := d.width - 1; j >= n; j-- {
			row[j] = row[j-n]
		}
		for j := 0; j < n; j++ {
			row[j] = false
		}
	}
}
