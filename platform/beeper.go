package platform

import (
	"fmt"
	"math"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	defaultToneHz     = 440
	defaultSampleRate = 44100
)

// Beeper drives one SDL queued-audio device with a precomputed
// square-wave buffer, gated on the backend's sound timer. The SDL
// wiring follows the same Init/device-handle idiom the teacher uses
// for video; no pack example wires up audio, so the tone generation
// itself is plain math/sdl2, not ported from anywhere.
type Beeper struct {
	device  sdl.AudioDeviceID
	tone    []byte
	playing bool
}

// NewBeeper opens a queued mono 8-bit audio device and precomputes one
// period-aligned buffer of a toneHz square wave.
func NewBeeper(toneHz int) (*Beeper, error) {
	if toneHz <= 0 {
		toneHz = defaultToneHz
	}

	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("platform: sdl audio init: %w", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     defaultSampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  2048,
	}
	device, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, fmt.Errorf("platform: open audio device: %w", err)
	}

	samplesPerCycle := defaultSampleRate / toneHz
	tone := make([]byte, samplesPerCycle*8) // a handful of periods per queue refill
	for i := range tone {
		phase := math.Mod(float64(i)/float64(samplesPerCycle), 1.0)
		if phase < 0.5 {
			tone[i] = 0xE0
		} else {
			tone[i] = 0x20
		}
	}

	return &Beeper{device: device, tone: tone}, nil
}

// SetActive starts or stops the square-wave tone. A host calls it every
// frame: while active, each call queues one more tone buffer so the
// sound continues; repeated inactive calls do nothing.
func (b *Beeper) SetActive(active bool) {
	if active == b.playing {
		if active {
			sdl.QueueAudio(b.device, b.tone)
		}
		return
	}

	b.playing = active
	if active {
		sdl.PauseAudioDevice(b.device, false)
		sdl.QueueAudio(b.device, b.tone)
		return
	}

	sdl.PauseAudioDevice(b.device, true)
	sdl.ClearQueuedAudio(b.device)
}

// Close pauses and closes the audio device.
func (b *Beeper) Close() {
	sdl.PauseAudioDevice(b.device, true)
	sdl.CloseAudioDevice(b.device)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
}
