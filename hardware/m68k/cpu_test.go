package m68k_test

import (
	"testing"

	"github.com/sekai-retro/neocore/hardware/m68k"
	"github.com/sekai-retro/neocore/hardware/m68k/instructions"
	"github.com/sekai-retro/neocore/test"
)

// flatBus is a 16MB flat byte array satisfying instructions.Bus, enough
// to exercise the executor without a real memory/cartridge wiring.
type flatBus struct {
	mem [0x1000000]byte
}

func (b *flatBus) FetchByte(addr uint32) uint8 { return b.mem[addr&0xFFFFFF] }
func (b *flatBus) FetchWord(addr uint32) uint16 {
	a := addr & 0xFFFFFF
	return uint16(b.mem[a])<<8 | uint16(b.mem[a+1])
}
func (b *flatBus) FetchLong(addr uint32) uint32 {
	return uint32(b.FetchWord(addr))<<16 | uint32(b.FetchWord(addr+2))
}
func (b *flatBus) StoreByte(addr uint32, v uint8) { b.mem[addr&0xFFFFFF] = v }
func (b *flatBus) StoreWord(addr uint32, v uint16) {
	a := addr & 0xFFFFFF
	b.mem[a] = byte(v >> 8)
	b.mem[a+1] = byte(v)
}
func (b *flatBus) StoreLong(addr uint32, v uint32) {
	b.StoreWord(addr, uint16(v>>16))
	b.StoreWord(addr+2, uint16(v))
}

func (b *flatBus) setLong(addr uint32, v uint32) { b.StoreLong(addr, v) }
func (b *flatBus) setWord(addr uint32, v uint16) { b.StoreWord(addr, v) }

func newTestCPU(t *testing.T, bus *flatBus) *m68k.CPU {
	t.Helper()
	tables, err := instructions.Build(instructions.Families())
	if err != nil {
		t.Fatalf("building decode tables: %v", err)
	}
	return m68k.New(bus, tables, nil)
}

func TestResetBootstrap(t *testing.T) {
	bus := &flatBus{}
	bus.setLong(0x000000, 0x00100000) // reset SSP
	bus.setLong(0x000004, 0x00C00000) // reset PC

	cpu := newTestCPU(t, bus)
	cpu.Reset()

	test.Equate(t, cpu.Registers().PC.Value(), uint32(0x00C00000))
	test.Equate(t, cpu.Registers().A[7], uint32(0x00100000))
	test.ExpectSuccess(t, cpu.Registers().SR.S)
	test.Equate(t, cpu.Registers().SR.I, uint8(7))
	test.ExpectFailure(t, cpu.Registers().Stop)
}

func TestRunBlockAdvancesPCSequentially(t *testing.T) {
	bus := &flatBus{}
	bus.setLong(0x000000, 0x00100000)
	bus.setLong(0x000004, 0x00C00000)

	// MOVE D0,D1 ; MOVE D0,D2 ; BRA *-0 (self, ends the block)
	bus.setWord(0x00C00000, 0x3200) // MOVE.W D0,D1  (src Dreg bits 0, dst Dreg bits 9)
	bus.setWord(0x00C00002, 0x3400) // MOVE.W D0,D2
	bus.setWord(0x00C00004, 0x60FE) // BRA -2 (branch to self)

	cpu := newTestCPU(t, bus)
	cpu.Reset()
	cpu.Registers().D[0] = 0x1234

	overshoot := cpu.RunBlock(1)
	test.ExpectSuccess(t, overshoot >= 0)
	test.Equate(t, cpu.Registers().D[1]&0xFFFF, uint32(0x1234))
	test.Equate(t, cpu.Registers().D[2]&0xFFFF, uint32(0x1234))
	// the branch is always taken (cond true) and targets its own address
	test.Equate(t, cpu.Registers().PC.Value(), uint32(0x00C00004))
}

func TestRunBlockFastForwardsNoRepeatSpinLoop(t *testing.T) {
	bus := &flatBus{}
	bus.setLong(0x000000, 0x00100000)
	bus.setLong(0x000004, 0x00C00000)

	// CMP.L D0,D1 ; BRA *-4 (self): the degenerate tight-loop shape
	// ipc.detectNoRepeat recognizes.
	bus.setWord(0x00C00000, 0xB200) // CMP.L D0,D1
	bus.setWord(0x00C00002, 0x60FC) // Bcc cond-true, disp -4, targets 0x00C00000

	cpu := newTestCPU(t, bus)
	cpu.Reset()

	overshoot := cpu.RunBlock(100)

	// the block's per-iteration cost is 4 (CMP) + 10 (Bcc) = 14 cycles;
	// fast-forwarding charges whole iterations, so 100 rounds up to 112.
	test.Equate(t, overshoot, 12)
	test.Equate(t, cpu.Registers().PC.Value(), uint32(0x00C00000))
}

func TestInterruptEntersSupervisorAndVectorsPC(t *testing.T) {
	bus := &flatBus{}
	bus.setLong(0x000000, 0x00100000)
	bus.setLong(0x000004, 0x00C00000)
	bus.setLong(uint32(25)*4, 0x00C10000) // autovector 1 handler

	cpu := newTestCPU(t, bus)
	cpu.Reset()
	cpu.Registers().A[7] = 0x00100000
	cpu.Registers().SR.I = 0 // reset leaves I=7; lower the mask so level 1 can get through

	cpu.Interrupt(1)

	test.Equate(t, cpu.Registers().PC.Value(), uint32(0x00C10000))
	test.ExpectSuccess(t, cpu.Registers().SR.S)
	test.Equate(t, cpu.Registers().SR.I, uint8(1))
	// SR is pushed last, so it sits at A7 and the return PC at A7+2.
	test.Equate(t, bus.FetchLong(cpu.Registers().A[7]+2), uint32(0x00C00000))
}

func TestInterruptAtOrBelowCurrentMaskIsIgnored(t *testing.T) {
	bus := &flatBus{}
	bus.setLong(0x000000, 0x00100000)
	bus.setLong(0x000004, 0x00C00000)
	bus.setLong(uint32(25)*4, 0x00C10000) // autovector 1 handler, must not be taken

	cpu := newTestCPU(t, bus)
	cpu.Reset() // power-on leaves SR.I == 7, masking every level but NMI
	cpu.Registers().A[7] = 0x00100000

	cpu.Interrupt(1)

	test.Equate(t, cpu.Registers().PC.Value(), uint32(0x00C00000))
	// reset already left supervisor mode set; a masked request changes neither S nor I.
	test.ExpectSuccess(t, cpu.Registers().SR.S)
	test.Equate(t, cpu.Registers().SR.I, uint8(7))
}

func TestLevelSevenInterruptIsNeverMasked(t *testing.T) {
	bus := &flatBus{}
	bus.setLong(0x000000, 0x00100000)
	bus.setLong(0x000004, 0x00C00000)
	bus.setLong(uint32(31)*4, 0x00C20000) // autovector 7 handler

	cpu := newTestCPU(t, bus)
	cpu.Reset()
	cpu.Registers().A[7] = 0x00100000

	cpu.Interrupt(7)

	test.Equate(t, cpu.Registers().PC.Value(), uint32(0x00C20000))
	test.Equate(t, cpu.Registers().SR.I, uint8(7))
}

func TestStopHaltsExecutionUntilInterrupt(t *testing.T) {
	bus := &flatBus{}
	bus.setLong(0x000000, 0x00100000)
	bus.setLong(0x000004, 0x00C00000)
	bus.setWord(0x00C00000, 0x4E72) // STOP
	bus.setWord(0x00C00002, 0x2700) // SR immediate operand, leaves I==7
	bus.setLong(uint32(31)*4, 0x00C10000)

	cpu := newTestCPU(t, bus)
	cpu.Reset()

	cpu.RunBlock(1)
	test.ExpectSuccess(t, cpu.Registers().Stop)

	// STOP's operand masks every level but NMI; only level 7 can wake it.
	cpu.Interrupt(7)
	test.ExpectFailure(t, cpu.Registers().Stop)
	test.Equate(t, cpu.Registers().PC.Value(), uint32(0x00C10000))
}
