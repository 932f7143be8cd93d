// Package headless runs a machine without a display, for soak runs and
// automated frame capture.
package headless

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mvella/go-dmg/dmg"
	"github.com/mvella/go-dmg/dmg/video"
)

// Config controls a headless run.
type Config struct {
	Frames           int
	SnapshotInterval int    // save a frame snapshot every N frames, 0 disables
	SnapshotDir      string // empty means a fresh temp directory
	ROMName          string // base name used in snapshot filenames
}

// Backend drives a machine for a fixed number of frames, optionally
// writing text snapshots of the framebuffer along the way.
type Backend struct {
	config Config
}

func New(config Config) (*Backend, error) {
	if config.Frames <= 0 {
		return nil, errors.New("headless mode needs a positive frame count")
	}

	if config.SnapshotInterval > 0 {
		if config.SnapshotDir == "" {
			dir, err := os.MkdirTemp("", "dmg-snapshots-*")
			if err != nil {
				return nil, fmt.Errorf("failed to create snapshot directory: %v", err)
			}
			config.SnapshotDir = dir
		} else if err := os.MkdirAll(config.SnapshotDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %v", err)
		}
	}

	return &Backend{config: config}, nil
}

// Run executes the configured number of frames and returns the first
// machine fault, if any.
func (h *Backend) Run(machine *dmg.DMG) error {
	slog.Info("running headless",
		"frames", h.config.Frames,
		"snapshot_interval", h.config.SnapshotInterval,
		"snapshot_dir", h.config.SnapshotDir)

	for i := 1; i <= h.config.Frames; i++ {
		if err := machine.RunUntilFrame(); err != nil {
			return err
		}

		if h.config.SnapshotInterval > 0 && i%h.config.SnapshotInterval == 0 {
			path := filepath.Join(h.config.SnapshotDir, fmt.Sprintf("%s_frame_%d.txt", h.config.ROMName, i))
			if err := SaveFrameText(machine, path); err != nil {
				slog.Error("failed to save snapshot", "frame", i, "path", path, "error", err)
			} else {
				slog.Info("saved frame snapshot", "frame", i, "path", path)
			}
		}

		if i%60 == 0 {
			slog.Info("frame progress", "completed", i, "total", h.config.Frames)
		}
	}

	if h.config.SnapshotInterval > 0 {
		slog.Info("headless run completed", "frames", h.config.Frames, "snapshots_saved_to", h.config.SnapshotDir)
	} else {
		slog.Info("headless run completed", "frames", h.config.Frames)
	}
	return nil
}

// shadeRunes maps each display color to a block character of matching
// darkness.
var shadeRunes = map[uint32]rune{
	uint32(video.BlackColor):     '█',
	uint32(video.DarkGreyColor):  '▓',
	uint32(video.LightGreyColor): '▒',
	uint32(video.WhiteColor):     '░',
}

// SaveFrameText writes the most recent frame as a text grid, one shade
// rune per pixel.
func SaveFrameText(machine *dmg.DMG, filename string) error {
	frame := machine.Framebuffer().ToSlice()

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "# Frame: %d, Instructions: %d\n", machine.FrameCount(), machine.InstructionCount())
	fmt.Fprintf(file, "# Resolution: %dx%d pixels\n", video.FramebufferWidth, video.FramebufferHeight)
	fmt.Fprintf(file, "# Legend: █=black ▓=dark ▒=light ░=white\n")
	fmt.Fprintf(file, "#\n")

	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			ch, ok := shadeRunes[frame[y*video.FramebufferWidth+x]]
			if !ok {
				ch = '░'
			}
			fmt.Fprintf(file, "%c", ch)
		}
		fmt.Fprintln(file)
	}

	return nil
}
