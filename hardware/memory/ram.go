package memory

import "math/rand"

// RAM is a power-of-two-sized, fully read/write region, used for work
// RAM. size must be a power of two; accesses outside it wrap (mirror).
type RAM struct {
	bytes []byte
	mask  uint32
}

// NewRAM allocates a RAM region of the given size, mirrored across any
// wider window it is mapped into.
func NewRAM(size uint32) *RAM {
	return &RAM{bytes: make([]byte, size), mask: size - 1}
}

// Randomize fills the region with rng output, for instances that model
// real hardware's undefined power-on RAM contents instead of zeroing it.
func (r *RAM) Randomize(rng *rand.Rand) {
	rng.Read(r.bytes)
}

func (r *RAM) ReadByte(addr uint32) uint8     { return r.bytes[addr&r.mask] }
func (r *RAM) WriteByte(addr uint32, v uint8) { r.bytes[addr&r.mask] = v }

func (r *RAM) FetchByte(addr uint32) uint8 { return r.ReadByte(addr) }
func (r *RAM) FetchWord(addr uint32) uint16 {
	return uint16(r.ReadByte(addr))<<8 | uint16(r.ReadByte(addr+1))
}
func (r *RAM) FetchLong(addr uint32) uint32 {
	return uint32(r.FetchWord(addr))<<16 | uint32(r.FetchWord(addr+2))
}

func (r *RAM) StoreByte(addr uint32, v uint8) { r.WriteByte(addr, v) }
func (r *RAM) StoreWord(addr uint32, v uint16) {
	r.WriteByte(addr, uint8(v>>8))
	r.WriteByte(addr+1, uint8(v))
}
func (r *RAM) StoreLong(addr uint32, v uint32) {
	r.StoreWord(addr, uint16(v>>16))
	r.StoreWord(addr+2, uint16(v))
}
