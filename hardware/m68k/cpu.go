// Package m68k wires the register file, decode tables, and pre-decode
// cache into a block-stepping executor: RunBlock runs whole IPC blocks
// until a cycle budget is met, and Interrupt delivers auto-vectored
// interrupts between blocks.
package m68k

import (
	"github.com/sekai-retro/neocore/hardware/m68k/instructions"
	"github.com/sekai-retro/neocore/hardware/m68k/ipc"
	"github.com/sekai-retro/neocore/hardware/m68k/registers"
)

// BankSource reports the cartridge bank register, so the IPC cache can
// key banked-window blocks correctly.
type BankSource interface {
	CurrentBank() uint32
}

// CPU is the 68K core: register file, memory bus, decode tables, and
// its own IPC cache.
type CPU struct {
	Regs   registers.File
	bus    instructions.Bus
	tables *instructions.Tables
	cache  *ipc.Table
	banks  BankSource

	totalCycles int64
}

// New creates a CPU. tables is the shared, immutable decode table built
// once at startup; bus is the memory bus; banks reports the active
// cartridge bank for IPC cache keying (may be nil for a fixed-bank-only
// machine).
func New(bus instructions.Bus, tables *instructions.Tables, banks BankSource) *CPU {
	return &CPU{bus: bus, tables: tables, cache: ipc.NewTable(), banks: banks}
}

// Bus implements instructions.Context.
func (c *CPU) Bus() instructions.Bus { return c.bus }

// Registers implements instructions.Context.
func (c *CPU) Registers() *registers.File { return &c.Regs }

const bankedWindowStart = 0x200000
const bankedWindowEnd = 0x2FFFFF

func inBankedWindow(addr uint32) bool {
	a := addr & 0x00FFFFFF
	return a >= bankedWindowStart && a <= bankedWindowEnd
}

func (c *CPU) currentBank() uint32 {
	if c.banks == nil {
		return 0
	}
	return c.banks.CurrentBank()
}

// ClearCache invalidates every cached IPC block. Reset empties the cache
// itself; a bank switch invalidates nothing, since the bank is part of
// the cache key.
func (c *CPU) ClearCache() { c.cache.Clear() }

// Reset implements the 68K reset exception: PC from the long at
// 0x000004, A7 from the long at 0x000000, SR to 0x2700, Stop cleared,
// and the IPC cache emptied.
func (c *CPU) Reset() {
	c.Regs.A[7] = c.bus.FetchLong(0x000000)
	c.Regs.SSP = c.Regs.A[7]
	c.Regs.PC.Set(c.bus.FetchLong(0x000004))
	c.Regs.SR.Unpack(registers.ResetSR)
	c.Regs.Stop = false
	c.cache.Clear()
	c.totalCycles = 0
}

// RunBlock executes whole IPC blocks until at least minCycles have
// elapsed, returning the overshoot so the caller can shorten the next
// slice accordingly.
func (c *CPU) RunBlock(minCycles int) int {
	cycles := 0
	for cycles < minCycles {
		if c.Regs.Stop {
			c.totalCycles += int64(cycles)
			return 0
		}
		pc := c.Regs.PC.Value()
		bank := c.currentBank()

		list := c.cache.Lookup(pc, bank)
		if list == nil {
			list = ipc.DecodeBlock(c.bus, c.tables, pc, bank, inBankedWindow)
			c.cache.Insert(list)
		}
		if list.NoRepeat {
			cycles += c.runNoRepeat(list, minCycles-cycles)
			continue
		}
		cycles += c.execList(list)
	}
	c.totalCycles += int64(cycles)
	return cycles - minCycles
}

// runNoRepeat fast-forwards a degenerate compare-and-branch-to-self
// spin loop (ipc.List.NoRepeat): since the loop's own compare can't
// observe anything the loop itself changes, repeating it only burns
// cycles until an interrupt breaks it between blocks, so the
// remaining budget is charged in one shot instead of re-dispatching
// the same two instructions over and over. PC is left at the loop's
// entry, exactly where it would sit mid-spin on real hardware.
func (c *CPU) runNoRepeat(list *ipc.List, remaining int) int {
	if list.Clocks <= 0 {
		return c.execList(list)
	}
	iterations := (remaining + list.Clocks - 1) / list.Clocks
	if iterations < 1 {
		iterations = 1
	}
	c.Regs.PC.Set(list.PC)
	return iterations * list.Clocks
}

// TotalCycles reports the cumulative cycle count executed since the
// last Reset, for collaborators (the video scanline-status register)
// that approximate "where are we in the field" from elapsed cycles
// rather than a per-line counter.
func (c *CPU) TotalCycles() int64 { return c.totalCycles }

// execList runs every instruction in a decoded block in order. Every
// block produced by ipc.DecodeBlock ends with exactly one control-flow,
// trap, or illegal instruction as its last entry, so no instruction
// before the last one ever redirects the PC; the default fallthrough
// set ahead of each call is what branchHandler/jmpHandler/etc. overwrite
// when a transfer is actually taken.
func (c *CPU) execList(list *ipc.List) int {
	pc := list.PC

	for i := range list.Instructions {
		ins := &list.Instructions[i]
		next := pc + uint32(ins.WordLen)*2
		c.Regs.PC.Set(next)

		if ins.IIB == nil {
			c.raiseException(vectorIllegalInstruction)
			break
		}

		args := instructions.Args{
			Opcode: ins.Opcode,
			Src:    ins.Src,
			Dst:    ins.Dst,
			Size:   ins.IIB.Size,
			Cond:   ins.IIB.Condition,
		}
		ins.Function(c, args)

		if ins.IIB.Mnemonic == instructions.TRAP {
			c.raiseException(vectorTrapBase + int(ins.Src))
			break
		}
		pc = next
	}
	return list.Clocks
}

const (
	vectorIllegalInstruction = 4
	vectorTrapBase           = 32 // TRAP #0 -> vector 32 (0x80)
)

// Interrupt delivers an auto-vectored interrupt at level (1..7) if it is
// not masked by the current interrupt priority mask: level 7 (NMI) is
// never maskable, and any other level must exceed SR.I. A masked level
// is silently dropped, leaving SR.I, Stop and the PC untouched. When
// delivered, it pushes SR and PC onto the supervisor stack, enters
// supervisor mode, raises the interrupt mask to level, clears Stop (per
// the 68K CPU state machine's {Running, Stopped} transition rule), and
// loads PC from the auto-vector table.
func (c *CPU) Interrupt(level uint8) {
	level &= 7
	if level != 7 && level <= c.Regs.SR.I {
		return
	}
	c.Regs.Stop = false
	c.raiseException(24 + int(level))
	c.Regs.SR.I = level
}

func (c *CPU) raiseException(vector int) {
	c.Regs.EnterSupervisor()
	c.Regs.A[7] -= 4
	c.bus.StoreLong(c.Regs.A[7], c.Regs.PC.Value())
	c.Regs.A[7] -= 2
	c.bus.StoreWord(c.Regs.A[7], c.Regs.SR.Pack())
	c.Regs.PC.Set(c.bus.FetchLong(uint32(vector) * 4))
}
