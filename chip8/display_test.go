package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flattenRows(d *DisplayBuffer) []bool {
	var out []bool
	for v := range d.Flattened() {
		out = append(out, v)
	}
	return out
}

func TestDisplayBufferDrawAndCollide(t *testing.T) {
	d := NewDisplayBuffer(64, 32, DisplayOptions{ClipSprites: true})

	collided := d.Draw(0, 0, []byte{0xFF})
	assert.Zero(t, collided, "first draw never collides")
	assert.True(t, d.IsDirty())

	pixels := flattenRows(d)
	for i := 0; i < 8; i++ {
		require.True(t, pixels[i], "pixel %d should be set", i)
	}
	assert.False(t, d.IsDirty(), "Flattened clears the dirty flag")

	collided = d.Draw(0, 0, []byte{0xFF})
	assert.Equal(t, 1, collided, "re-drawing the same sprite erases every pixel and collides")
}

func TestDisplayBufferWrapsWithoutClipping(t *testing.T) {
	d := NewDisplayBuffer(8, 8, DisplayOptions{ClipSprites: false})
	d.Draw(6, 0, []byte{0xFF})

	pixels := flattenRows(d)
	assert.True(t, pixels[6])
	assert.True(t, pixels[7])
	assert.True(t, pixels[0], "wraps onto column 0")
	assert.True(t, pixels[1], "wraps onto column 1")
}

func TestDisplayBufferClipStopsAtEdge(t *testing.T) {
	d := NewDisplayBuffer(8, 8, DisplayOptions{ClipSprites: true})
	d.Draw(6, 0, []byte{0xFF})

	pixels := flattenRows(d)
	assert.True(t, pixels[6])
	assert.True(t, pixels[7])
	assert.False(t, pixels[0], "clipped sprite never wraps")
}

func TestDisplayBufferHalfResolutionScalesToBlocks(t *testing.T) {
	d := NewDisplayBuffer(16, 16, DisplayOptions{ClipSprites: true})
	d.HalfResolution = true

	d.Draw(0, 0, []byte{0x80})

	pixels := flattenRows(d)
	idx := func(x, y int) int { return y*16 + x }
	assert.True(t, pixels[idx(0, 0)])
	assert.True(t, pixels[idx(1, 0)])
	assert.True(t, pixels[idx(0, 1)])
	assert.True(t, pixels[idx(1, 1)])
	assert.False(t, pixels[idx(2, 0)])
}

// A 32-byte sprite only takes the 16x16 large-sprite path when
// HalfResolution is false; in lores emulation it's treated as an
// ordinary 8-bit-wide, 32-row classic sprite and scaled to 2x2 blocks
// like any other draw. The SUPER-CHIP opcode dispatcher never produces
// a 32-byte draw while HalfResolution is true (the n=0->32 DXY0
// promotion is gated on hires mode), so this path is only reachable by
// calling DisplayBuffer.Draw directly.
func TestDisplayBufferDraw32ByteSpriteInHalfResolutionScalesToBlocksNotLarge(t *testing.T) {
	d := NewDisplayBuffer(32, 96, DisplayOptions{ClipSprites: true})
	d.HalfResolution = true
	sprite := make([]byte, 32)
	sprite[0] = 0x80 // top-left bit of row 0 only

	collided := d.Draw(0, 0, sprite)
	assert.Zero(t, collided)

	pixels := flattenRows(d)
	idx := func(x, y int) int { return y*32 + x }
	assert.True(t, pixels[idx(0, 0)])
	assert.True(t, pixels[idx(1, 0)])
	assert.True(t, pixels[idx(0, 1)])
	assert.True(t, pixels[idx(1, 1)], "scaled to a 2x2 block, not the unscaled 16x16 large-sprite path")
	assert.False(t, pixels[idx(2, 0)])
}

func TestDisplayBufferDraw16x16(t *testing.T) {
	d := NewDisplayBuffer(32, 32, DisplayOptions{ClipSprites: true})
	sprite := make([]byte, 32)
	sprite[0] = 0xFF
	sprite[1] = 0xFF

	collided := d.Draw(0, 0, sprite)
	assert.Zero(t, collided)

	pixels := flattenRows(d)
	for i := 0; i < 16; i++ {
		assert.True(t, pixels[i], "bit %d of first 16x16 row should be set", i)
	}
}

func TestDisplayBufferScrollDownClearsVacatedRows(t *testing.T) {
	d := NewDisplayBuffer(8, 8, DisplayOptions{})
	d.Draw(0, 0, []byte{0xFF})
	d.Scroll(ScrollDown, 2)

	pixels := flattenRows(d)
	idx := func(x, y int) int { return y*8 + x }
	assert.False(t, pixels[idx(0, 0)], "row 0 vacated by the scroll")
	assert.True(t, pixels[idx(0, 2)], "original row 0 content now at row 2")
}

func TestDisplayBufferScrollLeftAndRight(t *testing.T) {
	d := NewDisplayBuffer(8, 8, DisplayOptions{})
	d.Draw(0, 0, []byte{0x80}) // sets column 0

	d.Scroll(ScrollRight, 3)
	pixels := flattenRows(d)
	assert.True(t, pixels[3])
	assert.False(t, pixels[0])

	d.Scroll(ScrollLeft, 3)
	pixels = flattenRows(d)
	assert.True(t, pixels[0])
}

func TestDisplayBufferScrollDoublesDistanceInHalfResolution(t *testing.T) {
	d := NewDisplayBuffer(16, 16, DisplayOptions{})
	d.HalfResolution = true
	d.Draw(0, 0, []byte{0x80})
	d.Scroll(ScrollRight, 1)

	pixels := flattenRows(d)
	idx := func(x, y int) int { return y*16 + x }
	assert.True(t, pixels[idx(2, 0)], "half-resolution scroll of 1 moves two hires columns")
	assert.False(t, pixels[idx(0, 0)])
}

func TestDisplayBufferScrollHalfPixelOption(t *testing.T) {
	d := NewDisplayBuffer(16, 16, DisplayOptions{HalfPixelScrolling: true})
	d.HalfResolution = true
	d.Draw(0, 0, []byte{0x80})
	d.Scroll(ScrollRight, 1)

	pixels := flattenRows(d)
	idx := func(x, y int) int { return y*16 + x }
	assert.True(t, pixels[idx(1, 0)], "half-pixel scrolling moves by exactly n hires columns")
}

func TestDisplayBufferAspectRatio(t *testing.T) {
	d := NewDisplayBuffer(64, 32, DisplayOptions{})
	assert.InDelta(t, 2.0, d.AspectRatio(), 0.0001)
}

func TestDisplayBufferClear(t *testing.T) {
	d := NewDisplayBuffer(8, 8, DisplayOptions{})
	d.Draw(0, 0, []byte{0xFF})
	d.Clear()

	for v := range d.Flattened() {
		assert.False(t, v)
	}
}
