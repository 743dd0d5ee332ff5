// Package platform adapts a chip8.Backend to real host hardware: an
// SDL2 window for video, SDL2 keyboard polling for the keypad, an SDL2
// queued-audio device for the sound timer, and an on-disk RPL
// persistent-storage file.
package platform

import (
	"encoding/binary"
	"fmt"
	"iter"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// Palette is the on/off pixel color pair a Video paints the display
// buffer with.
type Palette struct {
	On  [3]uint8
	Off [3]uint8
}

// DefaultPalette is the classic green-on-black CHIP-8 look.
var DefaultPalette = Palette{
	On:  [3]uint8{0x33, 0xFF, 0x66},
	Off: [3]uint8{0x00, 0x00, 0x00},
}

// Video owns the SDL window, renderer and streaming texture a host
// blits the backend's display buffer into every frame it's dirty.
// Grounded on the teacher's newChip8/update SDL wiring, corrected to
// not destroy its own resources before returning from the constructor.
type Video struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
	width    int32
	height   int32
}

// NewVideo opens a window titled title, sized width*scale by
// height*scale, with a streaming RGBA8888 texture of width x height
// pixels that gets stretched to the window on present.
func NewVideo(title string, width, height, scale int) (*Video, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("platform: sdl init: %w", err)
	}

	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width*scale), int32(height*scale),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("platform: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("platform: create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("platform: create texture: %w", err)
	}

	return &Video{
		window:   window,
		renderer: renderer,
		texture:  texture,
		pixels:   make([]byte, width*height*4),
		width:    int32(width),
		height:   int32(height),
	}, nil
}

// Blit packs the flattened row-major pixel sequence into the streaming
// texture using palette, then presents it. count must equal width*height.
func (v *Video) Blit(pixels iter.Seq[bool], palette Palette) error {
	i := 0
	for on := range pixels {
		color := palette.Off
		if on {
			color = palette.On
		}
		// RGBA8888 is a packed 32-bit format (0xRRGGBBAA), so the
		// bytes go in native-endian order.
		packed := uint32(color[0])<<24 | uint32(color[1])<<16 | uint32(color[2])<<8 | 0xFF
		binary.NativeEndian.PutUint32(v.pixels[i*4:], packed)
		i++
	}

	pitch := int(v.width) * 4
	if err := v.texture.Update(nil, unsafe.Pointer(&v.pixels[0]), pitch); err != nil {
		return fmt.Errorf("platform: texture update: %w", err)
	}

	v.renderer.Clear()
	v.renderer.Copy(v.texture, nil, nil)
	v.renderer.Present()
	return nil
}

// Resize reallocates the backing pixel buffer and texture for a new
// display size, used when switching between the classic and
// SUPER-CHIP backends.
func (v *Video) Resize(width, height int) error {
	texture, err := v.renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return fmt.Errorf("platform: resize texture: %w", err)
	}
	v.texture.Destroy()
	v.texture = texture
	v.pixels = make([]byte, width*height*4)
	v.width, v.height = int32(width), int32(height)
	return nil
}

// Close releases the texture, renderer and window and shuts down the
// SDL video subsystem.
func (v *Video) Close() {
	v.texture.Destroy()
	v.renderer.Destroy()
	v.window.Destroy()
	sdl.QuitSubSystem(sdl.INIT_VIDEO)
}
