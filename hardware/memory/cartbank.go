package memory

import "github.com/sekai-retro/neocore/hardware/memory/cartridge"

// VectorSource reports whether the BIOS vector overlay (REG_SWPBIOS /
// REG_SWPROM) is currently active.
type VectorSource interface {
	VectorSwapActive() bool
}

// Bank0 is the fixed 000000-0FFFFF cartridge window. When the vector
// swap is active, its first 128 bytes (the reset/exception vector
// table) are served from the BIOS image instead of the cartridge.
type Bank0 struct {
	cart    *cartridge.Cartridge
	vectors [128]byte
	swap    VectorSource
}

// NewBank0 wraps a cartridge for the fixed bank-0 window. biosVectors
// must hold at least 128 bytes; only the first 128 are retained.
func NewBank0(cart *cartridge.Cartridge, biosVectors []byte, swap VectorSource) *Bank0 {
	b := &Bank0{cart: cart, swap: swap}
	copy(b.vectors[:], biosVectors)
	return b
}

func (b *Bank0) FetchByte(addr uint32) uint8 {
	off := addr & 0xFFFFF
	if off < 128 && b.swap != nil && b.swap.VectorSwapActive() {
		return b.vectors[off]
	}
	return b.cart.ReadBank0(addr)
}

func (b *Bank0) FetchWord(addr uint32) uint16 {
	return uint16(b.FetchByte(addr))<<8 | uint16(b.FetchByte(addr+1))
}
func (b *Bank0) FetchLong(addr uint32) uint32 {
	return uint32(b.FetchWord(addr))<<16 | uint32(b.FetchWord(addr+2))
}
func (b *Bank0) StoreByte(addr uint32, v uint8)  {}
func (b *Bank0) StoreWord(addr uint32, v uint16) {}
func (b *Bank0) StoreLong(addr uint32, v uint32) {}

// BankedWindow is the 200000-2FFFFF banked cartridge window. Reads
// resolve against the cartridge's current bank base; writes anywhere in
// the window are interpreted as bank-selector writes (a plain cartridge
// uses only the data; a scrambled one also compares the low byte of the
// address, but the full range is routed here since games vary in which
// exact offset they write).
type BankedWindow struct {
	cart *cartridge.Cartridge
}

// NewBankedWindow wraps a cartridge for the 200000-2FFFFF window.
func NewBankedWindow(cart *cartridge.Cartridge) *BankedWindow {
	return &BankedWindow{cart: cart}
}

func (w *BankedWindow) FetchByte(addr uint32) uint8 { return w.cart.ReadBanked(addr) }
func (w *BankedWindow) FetchWord(addr uint32) uint16 {
	return uint16(w.FetchByte(addr))<<8 | uint16(w.FetchByte(addr+1))
}
func (w *BankedWindow) FetchLong(addr uint32) uint32 {
	return uint32(w.FetchWord(addr))<<16 | uint32(w.FetchWord(addr+2))
}

func (w *BankedWindow) StoreByte(addr uint32, v uint8) {
	w.cart.WriteBankSelector(addr, uint16(v))
}
func (w *BankedWindow) StoreWord(addr uint32, v uint16) {
	w.cart.WriteBankSelector(addr, v)
}
func (w *BankedWindow) StoreLong(addr uint32, v uint32) {
	w.cart.WriteBankSelector(addr, uint16(v>>16))
}
