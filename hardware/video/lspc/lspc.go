// Package lspc models the Neo Geo's sprite/tile video pipeline: VRAM
// and its address/auto-increment protocol, the sprite control block it
// holds, the fix-layer character plane, raster-IRQ (IRQ2) scheduling,
// and per-field/per-scanline composition into a host pixel buffer.
package lspc

// VRAMSize is the full VRAM address space backing the sprite control
// block, animation table, auto-map, and fix-layer name table.
const VRAMSize = 0x20000

// FixLayerBase is the VRAM offset of the 8x8 fix-layer name table.
const FixLayerBase = 0xE000

// ProgramSource lets the video register window reproduce the PC-refetch
// quirk: certain reads at 3C0000 return bytes from the next instruction
// fetch rather than a clean register latch.
type ProgramSource interface {
	CurrentPC() uint32
	FetchWord(addr uint32) uint16
}

// PaletteSource supplies the host-format color for a palette entry, so
// composition can sample it without the video package depending on the
// memory package's concrete Palette type.
type PaletteSource interface {
	Host(bank, entry int) uint32
}

// LSPC is the aggregate video state: VRAM, the register file, and the
// collaborators composition needs.
type LSPC struct {
	VRAM [VRAMSize]byte

	Registers

	pal     PaletteSource
	program ProgramSource

	CurrentLine int
	RasterMode  bool
	CurrentFix  FixSource

	// LinesPerField is the TV system's field height, used only to locate
	// the top/bottom 16-line PAL blanking band for the 3C000E timer-stop
	// gate. Zero (the default) disables the gate.
	LinesPerField int
}

// FixSource selects which ROM image backs the fix layer.
type FixSource int

const (
	BoardFix FixSource = iota
	GameFix
)

// New creates an LSPC with VRAM zeroed and registers at power-on state.
func New(pal PaletteSource, program ProgramSource) *LSPC {
	return &LSPC{pal: pal, program: program}
}

// SetLine is called once per scanline by the field scheduler in raster
// mode, before UpdateScanline is consulted.
func (l *LSPC) SetLine(line int) { l.CurrentLine = line }

// SetPALMode records whether this instance runs PAL timing, both for
// the 3C0006 scanline-status pal_mode bit and for gating the 3C000E
// timer-stop band.
func (l *LSPC) SetPALMode(pal bool) {
	if pal {
		l.palMode = 1
	} else {
		l.palMode = 0
	}
}

func (v *LSPC) vramReadWord(addr uint32) uint16 {
	addr &= VRAMSize - 1
	return uint16(v.VRAM[addr])<<8 | uint16(v.VRAM[addr+1])
}

func (v *LSPC) vramWriteWord(addr uint32, val uint16) {
	addr &= VRAMSize - 1
	v.VRAM[addr] = uint8(val >> 8)
	v.VRAM[addr+1] = uint8(val)
}
