// Package clocks names the cycle budgets the scheduler divides a field
// into.
package clocks

import "github.com/sekai-retro/neocore/hardware/instance"

// PerFieldCycles is the M68K cycle budget for one field, regardless of
// TV system.
const PerFieldCycles = 200_000

// Z80PerField is the Z80 cycle budget for one field, divided into
// NBInterlace sub-slices interleaved with M68K execution.
const Z80PerField = 73_333

// NBInterlace is the number of Z80/YM2610 sub-slices run per field.
const NBInterlace = 256

// Z80SliceCycles is the Z80 cycle budget of a single sub-slice.
const Z80SliceCycles = Z80PerField / NBInterlace

// PerLineCycles returns the M68K cycle budget for a single scanline
// under the given TV system, truncated to avoid drift across a field.
func PerLineCycles(tv instance.TVSystem) int {
	return PerFieldCycles / tv.LinesPerField()
}

// MailboxYieldCycles is the number of Z80 cycles yielded after a command
// is posted to the Z80 mailbox port.
const MailboxYieldCycles = 300
