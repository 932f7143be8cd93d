package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/mvella/go-dmg/dmg"
	"github.com/mvella/go-dmg/dmg/backend"
	"github.com/mvella/go-dmg/dmg/backend/headless"
	"github.com/mvella/go-dmg/dmg/backend/terminal"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmg"
	app.Description = "A Game Boy emulator for the terminal"
	app.Usage = "dmg [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a graphical interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.StringFlag{
			Name:  "save",
			Usage: "Path to the battery save file (default: ROM path with .sav extension)",
		},
	}
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %v", err)
	}

	machine, err := dmg.NewWithROM(rom)
	if err != nil {
		return err
	}

	savePath := c.String("save")
	if savePath == "" {
		savePath = strings.TrimSuffix(romPath, filepath.Ext(romPath)) + ".sav"
	}
	if machine.HasBattery() {
		loadSave(machine, savePath)
		defer writeSave(machine, savePath)
	}

	var b backend.Backend
	if c.Bool("headless") {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		slog.SetDefault(slog.New(handler))

		b, err = headless.New(headless.Config{
			Frames:           c.Int("frames"),
			SnapshotInterval: c.Int("snapshot-interval"),
			SnapshotDir:      c.String("snapshot-dir"),
			ROMName:          romName(romPath),
		})
	} else {
		b, err = terminal.New()
	}
	if err != nil {
		return err
	}

	return b.Run(machine)
}

func romName(romPath string) string {
	name := filepath.Base(romPath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func loadSave(machine *dmg.DMG, path string) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		slog.Warn("failed to read save file", "path", path, "error", err)
		return
	}
	if err := machine.LoadCartridgeRAM(data); err != nil {
		slog.Warn("ignoring save file", "path", path, "error", err)
		return
	}
	slog.Info("loaded battery save", "path", path)
}

func writeSave(machine *dmg.DMG, path string) {
	data := machine.CartridgeRAM()
	if len(data) == 0 {
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		slog.Error("failed to write save file", "path", path, "error", err)
		return
	}
	slog.Info("wrote battery save", "path", path)
}
