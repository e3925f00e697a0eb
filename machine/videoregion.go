package machine

import "github.com/sekai-retro/neocore/hardware/video/lspc"

// videoRegisters is the 3C0000-3C000F window's bus Region. It is a
// dedicated implementation rather than a memory.FuncRegion, because
// several of these registers have word-atomic side effects (3C0002's
// VRAM write auto-increments vptr exactly once per word store); a byte-
// composed FuncRegion would fire that side effect twice for a single
// word write. It lives here rather than in hardware/video/lspc to keep
// that package free of a hardware/memory import.
type videoRegisters struct {
	video *lspc.LSPC
	cpu   cycleSource
}

// cycleSource supplies the running cycle count for the non-raster
// scanline-status approximation (3C0006 read).
type cycleSource interface {
	TotalCycles() int64
}

// quirkActive gates the 3C0000-read PC-refetch quirk. The mechanism is
// documented only as firing "on certain accesses" with no concrete
// trigger condition; wiring it to a constant false preserves the mechanism
// (ReadVRAMAddr still accepts and honors the flag) without inventing an
// ungrounded rule. See DESIGN.md.
const quirkActive = false

func (v *videoRegisters) FetchByte(addr uint32) uint8 {
	w := v.FetchWord(addr &^ 1)
	if addr&1 == 0 {
		return uint8(w >> 8)
	}
	return uint8(w)
}

func (v *videoRegisters) FetchWord(addr uint32) uint16 {
	switch addr & 0xE {
	case 0x0:
		return v.video.ReadVRAMAddr(quirkActive)
	case 0x2:
		return v.video.ReadVRAMData()
	case 0x4:
		return v.video.ReadModulo()
	case 0x6:
		return v.video.ReadScanlineStatus(v.cycle())
	default:
		return 0
	}
}

func (v *videoRegisters) FetchLong(addr uint32) uint32 {
	return uint32(v.FetchWord(addr))<<16 | uint32(v.FetchWord(addr+2))
}

func (v *videoRegisters) cycle() int {
	if v.cpu == nil {
		return 0
	}
	return int(v.cpu.TotalCycles())
}

func (v *videoRegisters) StoreByte(addr uint32, val uint8) {
	// Every defined register here is written word-wide by real
	// software; a lone byte store only ever targets the low byte of
	// 3C000C (IRQ ack) or 3C000E (PAL timer-stop), so both are handled
	// as whole-byte registers.
	switch addr & 0xE {
	case 0xC:
		v.video.WriteIRQAck(val)
	case 0xE:
		v.video.WriteTimerStop(val)
	}
}

func (v *videoRegisters) StoreWord(addr uint32, val uint16) {
	switch addr & 0xE {
	case 0x0:
		v.video.WriteVRAMAddr(val)
	case 0x2:
		v.video.WriteVRAMData(val)
	case 0x4:
		v.video.WriteModulo(val)
	case 0x6:
		v.video.WriteMode(val)
	case 0x8:
		v.video.WriteIRQ2PosHigh(val)
	case 0xA:
		v.video.WriteIRQ2PosLow(val)
	case 0xC:
		v.video.WriteIRQAck(uint8(val))
	case 0xE:
		v.video.WriteTimerStop(uint8(val))
	}
}

func (v *videoRegisters) StoreLong(addr uint32, val uint32) {
	v.StoreWord(addr, uint16(val>>16))
	v.StoreWord(addr+2, uint16(val))
}
