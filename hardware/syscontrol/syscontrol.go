// Package syscontrol models the byte-write toggle registers at
// 3A0000-3A001F: vector overlay, fix-layer source, SRAM lock, and
// palette bank selection.
package syscontrol

// VectorSwap overlays the first 128 bytes of the cartridge bank-0
// window with another image (the BIOS vector table) and restores it.
type VectorSwap interface {
	SwapToBIOSVectors()
	SwapToGameVectors()
}

// Registers holds the four independent toggle states driven by the
// system control register window, plus the side-effecting vector-swap
// collaborator.
type Registers struct {
	sramLocked  bool
	vectorSwap  bool // true: BIOS vectors active
	fixLayer    FixLayer
	paletteBank int

	swap VectorSwap
}

// FixLayer selects which ROM supplies the 8x8 character overlay plane.
type FixLayer int

const (
	BoardFix FixLayer = iota
	GameFix
)

// NewRegisters creates a Registers bank in its power-on state: vector
// table sourced from BIOS, SRAM unlocked, palette bank 0, board fix
// layer.
func NewRegisters(swap VectorSwap) *Registers {
	return &Registers{vectorSwap: true, swap: swap}
}

// SRAMLocked implements memory.LockSource.
func (r *Registers) SRAMLocked() bool { return r.sramLocked }

// VectorSwapActive implements memory.VectorSource.
func (r *Registers) VectorSwapActive() bool { return r.vectorSwap }

// PaletteBank implements memory.BankSource.
func (r *Registers) PaletteBank() int { return r.paletteBank }

// FixLayerSource reports which ROM currently feeds the fix layer.
func (r *Registers) FixLayerSource() FixLayer { return r.fixLayer }

// Write handles a byte write to one of the 3A000x/3A001x addresses.
// addr is the full bus address; only the low 5 bits are examined.
func (r *Registers) Write(addr uint32) {
	switch addr & 0x1F {
	case 0x01: // REG_NOSHADOW
	case 0x11: // REG_SHADOW
	case 0x03: // REG_SWPBIOS
		r.vectorSwap = true
		if r.swap != nil {
			r.swap.SwapToBIOSVectors()
		}
	case 0x13: // REG_SWPROM
		r.vectorSwap = false
		if r.swap != nil {
			r.swap.SwapToGameVectors()
		}
	case 0x05, 0x15, 0x07, 0x17, 0x09, 0x19: // memcard lock/register-select, ignored
	case 0x0B: // REG_BRDFIX
		r.fixLayer = BoardFix
	case 0x1B: // REG_CRTFIX
		r.fixLayer = GameFix
	case 0x0D: // REG_SRAMLOCK
		r.sramLocked = true
	case 0x1D: // REG_SRAMUNLOCK
		r.sramLocked = false
	case 0x0F: // REG_PALBANK1
		r.paletteBank = 1
	case 0x1F: // REG_PALBANK0
		r.paletteBank = 0
	}
}
