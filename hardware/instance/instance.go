// Package instance carries per-instance configuration: the knobs that
// vary between runs of the same machine without being part of the
// machine's own emulated state.
package instance

// TVSystem selects the field rate and line count a machine runs at.
type TVSystem int

const (
	NTSC TVSystem = iota
	PAL
)

// LinesPerField returns the number of scanlines in one field for this
// TV system.
func (t TVSystem) LinesPerField() int {
	if t == PAL {
		return 264
	}
	return 262
}

// WatchdogThreshold is the number of consecutive unserviced VBLANKs that
// force a CPU reset. Hard-coded and not exposed to configuration; see
// the design notes on preserved source behaviour.
const WatchdogThreshold = 8

// Instance carries the knobs a test harness or front end sets once at
// construction time and never mutates as part of normal execution.
type Instance struct {
	TV TVSystem

	// RandomisePowerOn, when true, fills RAM and VRAM with pseudo-random
	// content on construction rather than zeroing it. Real hardware
	// power-on state is undefined; most software doesn't care, but a few
	// titles rely on zeroed RAM.
	RandomisePowerOn bool
}

// NewInstance creates an Instance with NTSC timing and zeroed power-on
// memory, the common case for regression tests.
func NewInstance() *Instance {
	return &Instance{TV: NTSC}
}
