// Package config loads and saves the YAML quirk/display profile a
// chip8.Backend is configured from.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aferris/chip8vm/chip8"
)

// Profile is the on-disk shape of a backend's configuration: the four
// interpreter quirks, the two display quirks, which variant to build,
// how many instructions to run per 60Hz tick, and a color palette.
type Profile struct {
	Variant       string  `yaml:"variant"`
	CyclesPerTick int     `yaml:"cycles_per_tick"`
	Palette       Palette `yaml:"palette"`

	CopyAndShift     bool `yaml:"copy_and_shift"`
	IncrementAddress bool `yaml:"increment_address"`
	QuirkyJump       bool `yaml:"quirky_jump"`
	ResetFlag        bool `yaml:"reset_flag"`

	ClipSprites        bool `yaml:"clip_sprites"`
	HalfPixelScrolling bool `yaml:"half_pixel_scrolling"`
}

// Palette is the on/off RGB color pair, mirroring platform.Palette so
// config doesn't need to import the SDL-backed platform package.
type Palette struct {
	On  [3]uint8 `yaml:"on"`
	Off [3]uint8 `yaml:"off"`
}

// DefaultPalette is the classic green-on-black CHIP-8 look.
var DefaultPalette = Palette{On: [3]uint8{0x33, 0xFF, 0x66}, Off: [3]uint8{0x00, 0x00, 0x00}}

// DefaultProfile mirrors chip8.DefaultOptions/DefaultDisplayOptions,
// the quirk set the original Rust chip8::Backend hard-coded.
func DefaultProfile() Profile {
	return Profile{
		Variant:       "chip8",
		CyclesPerTick: 11,
		Palette:       DefaultPalette,
		CopyAndShift:  true, IncrementAddress: true, QuirkyJump: false, ResetFlag: true,
		ClipSprites: true, HalfPixelScrolling: false,
	}
}

// DefaultSuperChipProfile mirrors chip8.DefaultSuperChipOptions, the
// quirk set the original Rust super_chip::Backend hard-coded.
func DefaultSuperChipProfile() Profile {
	return Profile{
		Variant:       "superchip",
		CyclesPerTick: 30,
		Palette:       DefaultPalette,
		CopyAndShift:  false, IncrementAddress: false, QuirkyJump: true, ResetFlag: false,
		ClipSprites: true, HalfPixelScrolling: false,
	}
}

// PresetVIP is a classic COSMAC VIP-accurate profile: identical to
// DefaultProfile, named for the --quirks=vip convenience flag.
var PresetVIP = DefaultProfile()

// PresetSuperChipModern is the quirk set most modern SUPER-CHIP
// interpreters converge on, identical to DefaultSuperChipProfile,
// named for the --quirks=superchip-modern convenience flag.
var PresetSuperChipModern = DefaultSuperChipProfile()

// Presets maps a --quirks name to its built-in profile.
var Presets = map[string]Profile{
	"vip":              PresetVIP,
	"superchip-modern": PresetSuperChipModern,
}

// LoadProfile reads a YAML profile from path. A missing file is not an
// error: it returns the variant-appropriate default instead.
func LoadProfile(path, variant string) (Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if variant == "superchip" {
			return DefaultSuperChipProfile(), nil
		}
		return DefaultProfile(), nil
	}
	if err != nil {
		return Profile{}, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Save writes p to path as YAML.
func (p Profile) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Options converts the quirk fields to a chip8.Options value.
func (p Profile) Options() chip8.Options {
	return chip8.Options{
		CopyAndShift:     p.CopyAndShift,
		IncrementAddress: p.IncrementAddress,
		QuirkyJump:       p.QuirkyJump,
		ResetFlag:        p.ResetFlag,
	}
}

// DisplayOptions converts the display-quirk fields to a chip8.DisplayOptions value.
func (p Profile) DisplayOptions() chip8.DisplayOptions {
	return chip8.DisplayOptions{
		ClipSprites:        p.ClipSprites,
		HalfPixelScrolling: p.HalfPixelScrolling,
	}
}

// BackendVariant converts the Variant string to a chip8.Variant.
func (p Profile) BackendVariant() chip8.Variant {
	if p.Variant == "superchip" {
		return chip8.VariantSuperChip
	}
	return chip8.VariantClassic
}
