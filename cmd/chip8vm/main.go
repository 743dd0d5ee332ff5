// Command chip8vm runs a CHIP-8 or SUPER-CHIP ROM in an SDL2 window.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sqweek/dialog"
	"github.com/urfave/cli/v2"

	"github.com/aferris/chip8vm/chip8"
	"github.com/aferris/chip8vm/config"
	"github.com/aferris/chip8vm/platform"
)

func main() {
	app := &cli.App{
		Name:  "chip8vm",
		Usage: "run a CHIP-8 / SUPER-CHIP ROM",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rom", Aliases: []string{"r"}, Usage: "path to the ROM to load"},
			&cli.BoolFlag{Name: "superchip", Aliases: []string{"s"}, Usage: "use the SUPER-CHIP backend"},
			&cli.StringFlag{Name: "quirks", Usage: "quirk profile: a YAML file path, or a built-in preset name (vip, superchip-modern)"},
			&cli.IntFlag{Name: "scale", Value: 10, Usage: "integer pixel scale for the window"},
			&cli.IntFlag{Name: "cycles-per-tick", Value: 0, Usage: "instructions executed per 60Hz frame (0: use the profile's default)"},
			&cli.StringFlag{Name: "rpl-file", Usage: "override the RPL persistent-storage file path (SUPER-CHIP only)"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn, or error"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if level, err := log.ParseLevel(c.String("log-level")); err == nil {
		logger.SetLevel(level)
	}

	romPath := c.String("rom")
	if romPath == "" {
		picked, err := dialog.File().Filter("CHIP-8 ROM", "ch8", "sc8", "rom").Load()
		if err != nil {
			return fmt.Errorf("chip8vm: no ROM given and the file picker was cancelled: %w", err)
		}
		romPath = picked
	}

	program, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("chip8vm: reading ROM: %w", err)
	}

	variant := "chip8"
	if c.Bool("superchip") {
		variant = "superchip"
	}

	profile, err := resolveProfile(c.String("quirks"), variant)
	if err != nil {
		return fmt.Errorf("chip8vm: loading quirk profile: %w", err)
	}
	if n := c.Int("cycles-per-tick"); n > 0 {
		profile.CyclesPerTick = n
	}

	backend := chip8.NewBackend(profile.BackendVariant(), profile.Options(), profile.DisplayOptions())
	if err := backend.Load(nil, program); err != nil {
		return fmt.Errorf("chip8vm: loading ROM: %w", err)
	}

	var storage []byte
	var store *platform.RPLStore
	if profile.BackendVariant() == chip8.VariantSuperChip {
		rplPath := c.String("rpl-file")
		if rplPath == "" {
			rplPath, err = platform.DefaultRPLPath(romPath)
			if err != nil {
				return fmt.Errorf("chip8vm: resolving RPL path: %w", err)
			}
		}
		store = platform.NewRPLStore(rplPath)
		storage, err = store.Load()
		if err != nil {
			return fmt.Errorf("chip8vm: loading RPL storage: %w", err)
		}
	}

	width, height := backend.DisplayBufferSize()
	video, err := platform.NewVideo("chip8vm", width, height, c.Int("scale"))
	if err != nil {
		return fmt.Errorf("chip8vm: opening window: %w", err)
	}
	defer video.Close()

	beeper, err := platform.NewBeeper(0)
	if err != nil {
		return fmt.Errorf("chip8vm: opening audio device: %w", err)
	}
	defer beeper.Close()

	keyboard := platform.NewKeyboard(nil)
	palette := platform.Palette{On: profile.Palette.On, Off: profile.Palette.Off}

	logger.Info("running", "rom", romPath, "variant", variant, "cycles_per_tick", profile.CyclesPerTick)

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for range ticker.C {
		keyboard.Poll()
		if keyboard.Quit() {
			break
		}

		backend.Keypad().Update(keyboard.Down)

		if err := backend.Tick(profile.CyclesPerTick, storage); err != nil {
			if be, ok := err.(*chip8.BackendError); ok && be.Kind.Fatal() {
				logger.Error("fatal backend error", "err", be)
				return be
			}
			logger.Warn("backend error", "err", err)
		}

		if backend.HasProgramExited() {
			logger.Info("program halted")
			break
		}

		if backend.IsDisplayBufferDirty() {
			if err := video.Blit(backend.GetDisplayBuffer(), palette); err != nil {
				logger.Warn("blit failed", "err", err)
			}
		}

		_, sound := backend.GetTimers()
		beeper.SetActive(sound > 0)
	}

	if store != nil {
		if err := store.Save(storage); err != nil {
			logger.Warn("saving RPL storage failed", "err", err)
		}
	}

	return nil
}

func resolveProfile(quirks, variant string) (config.Profile, error) {
	if quirks == "" {
		if variant == "superchip" {
			return config.DefaultSuperChipProfile(), nil
		}
		return config.DefaultProfile(), nil
	}

	if preset, ok := config.Presets[quirks]; ok {
		return preset, nil
	}

	return config.LoadProfile(quirks, variant)
}
