// Package backend defines the seam between the emulator core and the
// front ends that drive it.
package backend

import "github.com/mvella/go-dmg/dmg"

// Backend drives a machine: it paces frames, presents the framebuffer and
// feeds input back in. Run blocks until the backend decides to stop or
// the machine faults.
type Backend interface {
	Run(machine *dmg.DMG) error
}
