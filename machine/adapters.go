package machine

import (
	"github.com/sekai-retro/neocore/hardware/m68k"
	"github.com/sekai-retro/neocore/hardware/memory/cartridge"
)

// bankAdapter satisfies m68k.BankSource by forwarding to the
// cartridge's own bank-base accessor, so the IPC cache keys blocks
// decoded from the banked window by the bank that was active when they
// were decoded.
type bankAdapter struct {
	cart *cartridge.Cartridge
}

func (b bankAdapter) CurrentBank() uint32 { return b.cart.BankBase() }

// pcSource satisfies lspc.ProgramSource, letting the video register
// window reproduce the 3C0000 PC-refetch quirk by re-reading whatever
// word the 68K core is currently fetching.
type pcSource struct {
	cpu *m68k.CPU
}

func (p pcSource) CurrentPC() uint32 { return p.cpu.Registers().PC.Value() }

func (p pcSource) FetchWord(addr uint32) uint16 { return p.cpu.Bus().FetchWord(addr) }
