package memory_test

import (
	"testing"

	"github.com/sekai-retro/neocore/hardware/memory"
	"github.com/sekai-retro/neocore/test"
)

type fixedBank int

func (f fixedBank) PaletteBank() int { return int(f) }

func TestPalettePenZeroIsMagenta(t *testing.T) {
	p := memory.NewPalette(fixedBank(0))
	p.StoreWord(0x0000, 0x7FFF)
	test.Equate(t, p.Host(0, 0), uint32(memory.MagentaSentinel))
}

func TestPaletteConvertsAllZeroEntry(t *testing.T) {
	p := memory.NewPalette(fixedBank(0))
	// all channel bits and the dark bit clear: the dark flag still
	// folds an extra LSB into every channel, so this is NOT black.
	p.StoreWord(0x0002, 0x0000) // entry 1
	test.Equate(t, p.Host(0, 1), uint32(0xFF040404))
}

func TestPaletteConvertsNonTrivialEntry(t *testing.T) {
	p := memory.NewPalette(fixedBank(0))
	// bit 15 set -> dark flag clear (not folded in); bits 14/13/12 set
	// select each channel's own extra LSB; the high nibbles pick out
	// the rest of each 4-bit field.
	p.StoreWord(0x0002, 0xFFFF) // entry 1, every bit set
	test.Equate(t, p.Host(0, 1), uint32(0xFFF8F8F8))
}

func TestPaletteBankIsolation(t *testing.T) {
	p := memory.NewPalette(fixedBank(1))
	p.StoreWord(0x0002, 0xFFFF)
	test.ExpectInequality(t, p.Host(1, 1), p.Host(0, 1))
}
