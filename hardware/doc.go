// Package hardware is the umbrella for every Neo Geo MVS subsystem this
// module emulates: the M68K core and its IPC cache, the cartridge memory
// bus, the LSPC video pipeline, the PD4990A real-time clock, the field
// scheduler, and system control. Each subsystem lives in its own
// sub-package; machine.Machine owns one instance of each and wires them
// together.
package hardware
