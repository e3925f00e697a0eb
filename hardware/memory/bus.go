package memory

import (
	"github.com/sekai-retro/neocore/logger"
)

// pageSize and pageCount partition the 24-bit address space into 4096
// pages of 4 KiB each.
const (
	pageBits  = 12
	pageSize  = 1 << pageBits
	pageCount = 1 << (24 - pageBits)
	pageMask  = pageSize - 1
)

// Bus is the 24-bit address bus: a page table of Regions plus the
// logging sink for unmapped-access warnings.
type Bus struct {
	pages [pageCount]Region
	log   *logger.Logger
}

// NewBus creates a Bus with every page defaulting to the unmapped
// sentinel region.
func NewBus(log *logger.Logger) *Bus {
	b := &Bus{log: log}
	u := unmapped{}
	for i := range b.pages {
		b.pages[i] = u
	}
	return b
}

// Map installs region for every page in [start, end) (end exclusive),
// both masked to 24 bits and rounded to page boundaries.
func (b *Bus) Map(start, end uint32, region Region) {
	first := (start & 0x00FFFFFF) >> pageBits
	last := ((end - 1) & 0x00FFFFFF) >> pageBits
	for p := first; p <= last; p++ {
		b.pages[p] = region
	}
}

func (b *Bus) page(addr uint32) Region {
	return b.pages[(addr&0x00FFFFFF)>>pageBits]
}

func (b *Bus) FetchByte(addr uint32) uint8 { return b.page(addr).FetchByte(addr) }
func (b *Bus) FetchWord(addr uint32) uint16 { return b.page(addr).FetchWord(addr) }
func (b *Bus) FetchLong(addr uint32) uint32 { return b.page(addr).FetchLong(addr) }

func (b *Bus) StoreByte(addr uint32, v uint8) {
	if b.log != nil && isUnmapped(b.page(addr)) {
		b.log.Logf(logger.Allow, "bus", "write to unmapped address %#06x", addr&0x00FFFFFF)
	}
	b.page(addr).StoreByte(addr, v)
}

func (b *Bus) StoreWord(addr uint32, v uint16) {
	if b.log != nil && isUnmapped(b.page(addr)) {
		b.log.Logf(logger.Allow, "bus", "write to unmapped address %#06x", addr&0x00FFFFFF)
	}
	b.page(addr).StoreWord(addr, v)
}

func (b *Bus) StoreLong(addr uint32, v uint32) {
	if b.log != nil && isUnmapped(b.page(addr)) {
		b.log.Logf(logger.Allow, "bus", "write to unmapped address %#06x", addr&0x00FFFFFF)
	}
	b.page(addr).StoreLong(addr, v)
}

func isUnmapped(r Region) bool {
	_, ok := r.(unmapped)
	return ok
}
