// Package machine is the aggregate wiring point: it owns the register
// file, memory bus, cartridge, video, RTC, system-control, and sound
// collaborators as fields of a single value, and exposes the field-step
// entry point a host frontend drives. No package-level mutable state
// exists anywhere in this module; every handler either is a method on
// *Machine or receives one explicitly.
package machine

import (
	"math/rand"

	"github.com/sekai-retro/neocore/errors"
	"github.com/sekai-retro/neocore/hardware/instance"
	"github.com/sekai-retro/neocore/hardware/m68k"
	"github.com/sekai-retro/neocore/hardware/m68k/instructions"
	"github.com/sekai-retro/neocore/hardware/memory"
	"github.com/sekai-retro/neocore/hardware/memory/cartridge"
	"github.com/sekai-retro/neocore/hardware/rtc/pd4990a"
	"github.com/sekai-retro/neocore/hardware/scheduler"
	"github.com/sekai-retro/neocore/hardware/syscontrol"
	"github.com/sekai-retro/neocore/hardware/video/lspc"
	"github.com/sekai-retro/neocore/hardware/ym2610bus"
	"github.com/sekai-retro/neocore/hardware/z80bus"
	"github.com/sekai-retro/neocore/logger"
)

// Presenter consumes the composed, fixed 352x256 RGBA back-buffer once
// per rendered field. Per-scanline band updates aren't required by this
// interface: nothing wired into this package needs finer granularity
// than a full-field present.
type Presenter interface {
	Present(frame []uint32)
}

const (
	biosSize  = 0x20000
	workSize  = 0x10000
	sramSize  = 0x10000
	sampleCap = 8192
	logCap    = 512
)

// Machine is the complete emulated Neo Geo core: every piece of
// program-observable state lives on this one value, reached by the
// field loop through the narrow collaborator interfaces
// hardware/scheduler defines. There is no package-level mutable state
// anywhere in this module.
type Machine struct {
	Log *logger.Logger

	cpu          *m68k.CPU
	bus          *memory.Bus
	cart         *cartridge.Cartridge
	sysControl   *syscontrol.Registers
	dip          syscontrol.DIPSwitches
	rtc          *pd4990a.RTC
	video        *lspc.LSPC
	z80Mailbox   *z80bus.Mailbox
	z80Backend   z80bus.Backend
	sampleRing   *ym2610bus.SampleRing
	scheduler    *scheduler.Scheduler
	presenter    Presenter

	sprites lspc.SpriteSource
	fix     lspc.FixSourceROMs

	frameBuffer [lspc.BackBufferWidth * lspc.BackBufferHeight]uint32

	memcard memCard

	p1, p2, startSelect, coinService uint8
}

// New constructs a Machine from its ROM images and collaborators.
// z80, ym, and presenter may all be nil: a Machine with no sound
// backend still runs the 68K/video core, and one with no presenter
// still composes frames into its own back-buffer. Returns an error for
// every fatal construction-time condition: a malformed cartridge image,
// a missing BIOS region, or an opcode table collision.
func New(inst *instance.Instance, roms ROMs, z80 z80bus.Backend, ym ym2610bus.Backend, presenter Presenter) (*Machine, error) {
	if inst == nil {
		inst = instance.NewInstance()
	}
	if len(roms.MainCPUBIOS) < 128 {
		return nil, errors.New(errors.Construction, errors.MissingROMRegion, "MAIN_CPU_BIOS")
	}

	var cart *cartridge.Cartridge
	var err error
	if len(roms.UnscrambleTable) > 0 {
		cart, err = cartridge.NewScrambled(roms.MainCPUCartridge, roms.UnscrambleTable, roms.BankOffsets)
	} else {
		cart, err = cartridge.New(roms.MainCPUCartridge)
	}
	if err != nil {
		return nil, err
	}

	tables, err := instructions.Build(instructions.Families())
	if err != nil {
		return nil, err
	}

	log := logger.NewLogger(logCap)
	bus := memory.NewBus(log)

	sysControl := syscontrol.NewRegisters(nil)
	dip := syscontrol.NewDIPSwitches()

	workRAM := memory.NewRAM(workSize)
	sram := memory.NewSRAM(sramSize, sysControl)
	palette := memory.NewPalette(sysControl)
	biosROM := memory.NewROM(roms.MainCPUBIOS, biosSize)
	bank0 := memory.NewBank0(cart, roms.MainCPUBIOS[:128], sysControl)
	bankedWindow := memory.NewBankedWindow(cart)

	cpu := m68k.New(bus, tables, bankAdapter{cart: cart})
	video := lspc.New(palette, pcSource{cpu: cpu})
	video.RasterMode = true
	video.LinesPerField = inst.TV.LinesPerField()
	video.SetPALMode(inst.TV == instance.PAL)

	if inst.RandomisePowerOn {
		rng := rand.New(rand.NewSource(1))
		workRAM.Randomize(rng)
		rng.Read(video.VRAM[:])
	}

	frameHz := 60
	if inst.TV == instance.PAL {
		frameHz = 50
	}
	rtc := pd4990a.New(frameHz)

	mailbox := z80bus.NewMailbox(z80)
	ring := ym2610bus.NewSampleRing(sampleCap)

	m := &Machine{
		Log:         log,
		cpu:         cpu,
		bus:         bus,
		cart:        cart,
		sysControl:  sysControl,
		dip:         dip,
		rtc:         rtc,
		video:       video,
		z80Mailbox:  mailbox,
		z80Backend:  z80,
		sampleRing:  ring,
		presenter:   presenter,
		sprites:     buildSpriteSource(roms.Sprites),
		fix:         buildFixSource(roms.FixedLayerBoard, roms.FixedLayerGame),
		p1:          0xFF,
		p2:          0xFF,
		startSelect: 0xFF,
		coinService: 0xFF,
	}

	bus.Map(0x000000, 0x100000, bank0)
	bus.Map(0x100000, 0x110000, workRAM)
	bus.Map(0x200000, 0x300000, bankedWindow)
	bus.Map(0x300000, 0x300100, memory.FuncRegion{Read: m.readController1, Write: m.writeController1})
	bus.Map(0x320000, 0x320010, memory.FuncRegion{Read: m.readZ80Port, Write: m.writeZ80Port})
	bus.Map(0x340000, 0x340010, memory.FuncRegion{Read: m.readController2})
	bus.Map(0x380000, 0x380010, memory.FuncRegion{Read: m.readController3, Write: m.writeController3})
	bus.Map(0x3A0000, 0x3A0020, memory.FuncRegion{Write: m.writeSysControl})
	bus.Map(0x3C0000, 0x3C0010, &videoRegisters{video: video, cpu: cpu})
	bus.Map(0x400000, 0x402000, palette)
	bus.Map(0x800000, 0x801000, memory.ByteRegion{BytePort: &m.memcard})
	bus.Map(0xC00000, 0xC20000, biosROM)
	bus.Map(0xD00000, 0xD10000, sram)

	m.scheduler = scheduler.New(inst.TV, cpu, z80, ym, video, rtc, m)

	m.Reset()
	return m, nil
}

// Reset performs the 68K reset exception (PC/SSP reload from whichever
// vector table is mapped at 000000, IPC cache cleared) without touching VRAM,
// palette, SRAM, or RTC state — the same CPU-only reset the watchdog
// forces, distinct from a full machine power cycle.
func (m *Machine) Reset() {
	m.cpu.Reset()
}

// StepField runs exactly one field through the scheduler: 68K/Z80/
// YM2610 interleave, raster or non-raster video timing, watchdog
// bookkeeping, and VBLANK delivery.
func (m *Machine) StepField() {
	m.scheduler.StepField()
}

// ServiceWatchdog clears the unserviced-VBLANK counter outside of the
// normal 300001 bus write path, for frontends driving the machine
// without going through a decoded CPU write (e.g. a debugger).
func (m *Machine) ServiceWatchdog() { m.scheduler.ServiceWatchdog() }

// SetRasterMode switches both the scheduler's per-line IRQ2 loop and
// the video pipeline's scanline-status formula together: the two are
// driven by the same mode bit on real hardware, so this package never
// lets them diverge.
func (m *Machine) SetRasterMode(raster bool) {
	m.scheduler.RasterMode = raster
	m.video.RasterMode = raster
}

// SetFrameSkipCap bounds how many consecutive fields may skip
// rendering; 0 (the default) renders every field.
func (m *Machine) SetFrameSkipCap(n int) { m.scheduler.FrameSkipCap = n }

// SetButtons1 and SetButtons2 set the active-low P1/P2 joystick+button
// bitmaps a frontend samples from its input devices each field.
func (m *Machine) SetButtons1(v uint8) { m.p1 = v }
func (m *Machine) SetButtons2(v uint8) { m.p2 = v }

// SetStartSelect sets the active-low start/select bitmap read back at
// 380000; bit 7 is reserved (overwritten from the configured system
// type on every read) and should be left clear by the caller.
func (m *Machine) SetStartSelect(v uint8) { m.startSelect = v }

// SetCoinService sets the active-low coin/service bitmap read back at
// 320001, XORed against the PD4990A's serial TEST/DATA_OUT lines.
func (m *Machine) SetCoinService(v uint8) { m.coinService = v }

// SetSystemType selects the MVS/AES personality exposed in the
// start/select port's top bit.
func (m *Machine) SetSystemType(t syscontrol.SystemType) { m.dip.System = t }

// SetTestSwitch drives the test-switch line sampled at 300001 bit 0.
func (m *Machine) SetTestSwitch(active bool) { m.dip.TestSwitch = active }

// FrameBuffer returns the most recently composed back-buffer, for
// callers that want to sample it directly instead of through a
// Presenter.
func (m *Machine) FrameBuffer() []uint32 { return m.frameBuffer[:] }

// Pull drains up to len(out) interleaved audio samples from the
// machine's sample ring. Nothing in this module pushes into that ring
// (ym2610bus.Backend exposes only Update), so Pull returns 0.
func (m *Machine) Pull(out []int16) int { return m.sampleRing.Pull(out) }

// Peek and Poke give a debugger or test harness direct bus access,
// decoded through the same region map the 68K core uses.
func (m *Machine) Peek(addr uint32) uint8     { return m.bus.FetchByte(addr) }
func (m *Machine) Poke(addr uint32, v uint8)  { m.bus.StoreByte(addr, v) }

// CartridgeBankBase reports the byte offset into the cartridge image
// the 200000-2FFFFF window currently maps, as last set by a write to
// the bank-selector latch.
func (m *Machine) CartridgeBankBase() uint32 { return m.cart.BankBase() }

// CPU exposes the 68K core directly, for a debugger or test harness
// that needs register state or a manual RunBlock.
func (m *Machine) CPU() *m68k.CPU { return m.cpu }

// RenderFrame implements scheduler.FrameRenderer: it composes the
// current sprite and fix-layer state into the back-buffer and, if a
// Presenter is wired, hands it off.
func (m *Machine) RenderFrame() {
	m.video.CurrentFix = lspc.FixSource(m.sysControl.FixLayerSource())
	m.video.ComposeBand(m.frameBuffer[:], 0, lspc.BackBufferHeight, m.sprites, m.fix)
	if m.presenter != nil {
		m.presenter.Present(m.frameBuffer[:])
	}
}

func (m *Machine) readController1(addr uint32) uint8 {
	switch addr & 0xFF {
	case 0x00:
		return m.p1
	case 0x01:
		if m.dip.TestSwitch {
			return 0xFE
		}
		return 0xFF
	default:
		return memory.UnmappedSentinel
	}
}

func (m *Machine) writeController1(addr uint32, _ uint8) {
	if addr&0xFF == 0x01 {
		m.scheduler.ServiceWatchdog()
	}
}

func (m *Machine) readController2(addr uint32) uint8 {
	if addr&0xFF == 0x00 {
		return m.p2
	}
	return memory.UnmappedSentinel
}

// readController3 implements the 380000 read: start/select bits with
// bit 7 forced to the configured system type. Memcard insertion and
// write-protect bits are folded into startSelect by the caller; this
// package carries no physical-media collaborator, so a card always
// reads as present and unprotected unless the frontend says otherwise.
func (m *Machine) readController3(addr uint32) uint8 {
	if addr&0xF != 0x00 {
		return memory.UnmappedSentinel
	}
	v := m.startSelect &^ 0x80
	if m.dip.System == syscontrol.MVS {
		v |= 0x80
	}
	return v
}

// writeController3 drives the PD4990A's three-wire protocol: bit 0
// DATA, bit 1 CLOCK, bit 2 STROBE.
func (m *Machine) writeController3(addr uint32, v uint8) {
	if addr&0xF != 0x00 {
		return
	}
	m.rtc.Write(v&0x1 != 0, v&0x2 != 0, v&0x4 != 0)
}

func (m *Machine) readZ80Port(addr uint32) uint8 {
	switch addr & 0xF {
	case 0x00:
		return m.z80Mailbox.Reply()
	case 0x01:
		dataOut, test := m.rtc.Read()
		var bits uint8
		if test {
			bits |= 1 << 6
		}
		if dataOut {
			bits |= 1 << 7
		}
		return m.coinService ^ bits
	default:
		return memory.UnmappedSentinel
	}
}

// writeZ80Port implements the 320000 command latch. Only the high byte
// of a word-wide write is honored (addr offset 0): Neo Geo software
// always writes this port with the command value replicated in both
// bytes, so treating the low byte (offset 1) as a second, redundant
// command would double-post it. The 300-cycle yield is spent
// immediately: the Z80 backend runs that many cycles synchronously so
// it observes the NMI before the write returns, guaranteeing the
// command is visible before the Z80 slice that should observe it runs.
func (m *Machine) writeZ80Port(addr uint32, v uint8) {
	if addr&0xF != 0x00 {
		return
	}
	yield := m.z80Mailbox.PostCommand(v)
	if m.z80Backend != nil {
		m.z80Backend.Run(yield)
	}
}

func (m *Machine) writeSysControl(addr uint32, _ uint8) {
	m.sysControl.Write(addr)
}
