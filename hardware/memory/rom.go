package memory

// ROM is a read-only, mirrored region, used for the BIOS image and any
// other fixed program ROM. Writes are silently dropped; the bus is
// responsible for flagging writes to regions that should never see one.
type ROM struct {
	bytes []byte
	mask  uint32
}

// NewROM wraps a ROM image. size must be a power of two.
func NewROM(image []byte, size uint32) *ROM {
	r := &ROM{bytes: make([]byte, size), mask: size - 1}
	copy(r.bytes, image)
	return r
}

func (r *ROM) FetchByte(addr uint32) uint8 { return r.bytes[addr&r.mask] }
func (r *ROM) FetchWord(addr uint32) uint16 {
	return uint16(r.FetchByte(addr))<<8 | uint16(r.FetchByte(addr+1))
}
func (r *ROM) FetchLong(addr uint32) uint32 {
	return uint32(r.FetchWord(addr))<<16 | uint32(r.FetchWord(addr+2))
}
func (r *ROM) StoreByte(addr uint32, v uint8)  {}
func (r *ROM) StoreWord(addr uint32, v uint16) {}
func (r *ROM) StoreLong(addr uint32, v uint32) {}
