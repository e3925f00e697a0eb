// Package scheduler drives the field loop: it interleaves 68K and Z80
// execution, runs the YM2610 update slice, schedules raster (IRQ2) and
// VBLANK (IRQ1) interrupts, renders the frame, and owns the watchdog.
// Every piece of per-field state (the M68K cycle leftover, the
// watchdog counter) lives on the Scheduler value itself, never in a
// package-level global.
package scheduler

import (
	"github.com/sekai-retro/neocore/hardware/clocks"
	"github.com/sekai-retro/neocore/hardware/instance"
)

// CPU is the minimum M68K surface the scheduler drives: run at least n
// cycles (returning the overshoot to shorten the next slice), deliver
// an auto-vectored interrupt, and force a CPU-only reset when the
// watchdog starves.
type CPU interface {
	RunBlock(minCycles int) (overshoot int)
	Interrupt(level uint8)
	Reset()
}

// Z80 is the minimum sound-CPU surface: run at least n cycles, return
// the overshoot.
type Z80 interface {
	Run(cycles int) (overshoot int)
}

// YM2610 pulls one slice's worth of audio.
type YM2610 interface {
	Update()
}

// Display is the minimum video surface the scheduler drives each
// scanline and field boundary.
type Display interface {
	SetLine(line int)
	UpdateScanline() bool
	AdvanceFrameCounter()
	ReloadAtVBlank()
}

// RTC ticks once per field, at VBLANK.
type RTC interface {
	Tick()
}

// FrameRenderer composes the current video state into whatever sink the
// caller owns (a host framebuffer, a test capture buffer). Called once
// per field unless skipping this frame: after the RTC tick in non-raster
// mode, before it in raster mode.
type FrameRenderer interface {
	RenderFrame()
}

// Scheduler is the field loop. It holds no reference to a memory bus or
// register file directly: everything it drives is reached through the
// narrow interfaces above, wired by the machine aggregate.
type Scheduler struct {
	tv instance.TVSystem

	cpu     CPU
	z80     Z80
	ym      YM2610
	display Display
	rtc     RTC
	frame   FrameRenderer

	leftover68k int
	leftoverZ80 int

	watchdog int

	// FrameSkipCap bounds how many consecutive fields may skip rendering.
	// 0 disables skipping (every field renders).
	FrameSkipCap int
	skipped      int

	// RasterMode selects the per-line IRQ2 scheduling loop over the
	// simpler per-field one. Most Neo Geo software runs in raster mode.
	RasterMode bool
}

// New creates a Scheduler wired to its collaborators. Any of z80, ym,
// rtc, or frame may be nil, for tests or machine configurations that
// don't wire a given subsystem.
func New(tv instance.TVSystem, cpu CPU, z80 Z80, ym YM2610, display Display, rtc RTC, frame FrameRenderer) *Scheduler {
	return &Scheduler{tv: tv, cpu: cpu, z80: z80, ym: ym, display: display, rtc: rtc, frame: frame, RasterMode: true}
}

// WatchdogCount reports the number of consecutive unserviced VBLANKs, for
// tests asserting the reset threshold.
func (s *Scheduler) WatchdogCount() int { return s.watchdog }

// ServiceWatchdog resets the unserviced-VBLANK counter; called on any
// byte-write to 0x300001.
func (s *Scheduler) ServiceWatchdog() { s.watchdog = 0 }

// StepField runs exactly one field: the Z80/YM2610 interleave, the
// raster or non-raster 68K/video loop, the watchdog check, and VBLANK
// (IRQ1) delivery.
func (s *Scheduler) StepField() {
	s.runSoundSlices()

	if s.RasterMode {
		s.stepFieldRaster()
	} else {
		s.stepFieldNonRaster()
	}

	s.watchdog++
	if s.watchdog > instance.WatchdogThreshold-1 {
		s.cpu.Reset()
		s.watchdog = 0
	}
	s.cpu.Interrupt(1) // VBLANK

	s.capFrameSkip()
}

func (s *Scheduler) runSoundSlices() {
	if s.z80 == nil {
		return
	}
	for i := 0; i < clocks.NBInterlace; i++ {
		s.leftoverZ80 = s.z80.Run(clocks.Z80SliceCycles - s.leftoverZ80)
		if s.ym != nil {
			s.ym.Update()
		}
	}
}

func (s *Scheduler) stepFieldRaster() {
	perLine := clocks.PerLineCycles(s.tv)
	lines := s.tv.LinesPerField()

	for line := 0; line < lines; line++ {
		if s.display != nil {
			s.display.SetLine(line)
		}
		s.leftover68k = s.cpu.RunBlock(perLine - s.leftover68k)
		if s.display != nil && s.display.UpdateScanline() {
			s.cpu.Interrupt(2) // raster IRQ2
		}
	}

	s.drawFrame()
	if s.display != nil {
		s.display.ReloadAtVBlank()
		s.display.AdvanceFrameCounter()
	}
	if s.rtc != nil {
		s.rtc.Tick()
	}
}

func (s *Scheduler) stepFieldNonRaster() {
	s.leftover68k = s.cpu.RunBlock(clocks.PerFieldCycles - s.leftover68k)

	if s.rtc != nil {
		s.rtc.Tick()
	}
	s.drawFrame()
	if s.display != nil {
		s.display.ReloadAtVBlank()
		s.display.AdvanceFrameCounter()
	}
}

func (s *Scheduler) drawFrame() {
	if s.frame == nil {
		return
	}
	if s.FrameSkipCap > 0 && s.skipped < s.FrameSkipCap {
		s.skipped++
		return
	}
	s.skipped = 0
	s.frame.RenderFrame()
}

func (s *Scheduler) capFrameSkip() {
	if s.FrameSkipCap > 0 && s.skipped > s.FrameSkipCap {
		s.skipped = s.FrameSkipCap
	}
}
