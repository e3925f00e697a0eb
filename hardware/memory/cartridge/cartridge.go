// Package cartridge implements the main-CPU cartridge mapper: the
// plain bank-switching scheme and the SMA scrambled-bank variant.
package cartridge

import (
	"github.com/sekai-retro/neocore/errors"
)

const bankSize = 0x100000

// Cartridge is the banked cartridge mapper. ROM is the raw, big-endian
// byte image as loaded; it is never mutated after construction.
type Cartridge struct {
	rom      []byte
	bankBase uint32

	scramble *scramble
}

type scramble struct {
	unscramble [7]byte // index 0: target low byte of the write address; 1..6: bit positions
	offsets    []uint32
	rng        uint16
	sigAddr    uint32
}

// New creates a plain bank-switching cartridge mapper.
func New(rom []byte) (*Cartridge, error) {
	if len(rom)%bankSize != 0 {
		return nil, errors.New(errors.Cartridge, errors.CartridgeSize, "cartridge rom", len(rom), bankSize)
	}
	return &Cartridge{rom: rom}, nil
}

// NewScrambled creates an SMA scrambled-bank cartridge mapper. unscramble
// must have exactly 7 entries (index 0 is the target write-address low
// byte, 1..6 are bit positions within the written word).
func NewScrambled(rom []byte, unscramble []byte, offsets []uint32) (*Cartridge, error) {
	c, err := New(rom)
	if err != nil {
		return nil, err
	}
	if len(unscramble) != 7 {
		return nil, errors.New(errors.Cartridge, errors.UnscrambleTableSize, len(unscramble))
	}
	s := &scramble{offsets: offsets, rng: 0x0001, sigAddr: 0xFE446}
	copy(s.unscramble[:], unscramble)
	c.scramble = s
	return c, nil
}

// Size returns the cartridge ROM size in bytes.
func (c *Cartridge) Size() int {
	return len(c.rom)
}

// BankBase returns the current banked-window base offset into rom.
func (c *Cartridge) BankBase() uint32 {
	return c.bankBase
}

// ReadBank0 reads a byte from the fixed bank-0 window (000000-0FFFFF).
func (c *Cartridge) ReadBank0(addr uint32) uint8 {
	offset := addr & 0xFFFFF
	if int(offset) >= len(c.rom) {
		return 0
	}
	return c.rom[offset]
}

// ReadBanked reads a byte from the banked window (200000-2FFFFF),
// resolving against the current bank base. If the cartridge carries SMA
// scrambling, the two bytes of the identification signature are
// synthesized here instead of read from the ROM. The SMA RNG is not
// mapped into this window: every other address, including any RNG
// address, reads the ROM; the RNG is reachable only through ReadRNG.
func (c *Cartridge) ReadBanked(addr uint32) uint8 {
	offset := addr & 0xFFFFF

	if c.scramble != nil {
		full := c.bankBase + offset
		if full == c.scramble.sigAddr {
			return byte(0x9A37 >> 8)
		}
		if full == c.scramble.sigAddr+1 {
			return byte(0x9A37 & 0xFF)
		}
	}

	target := c.bankBase + offset
	if int(target) >= len(c.rom) {
		return 0
	}
	return c.rom[target]
}

// rngAdvance steps the 16-bit LFSR with taps {15,12,11,7,6,5,3,2},
// returning the pre-advance value (the RNG "takes the old value, then
// advances by one bit").
func (s *scramble) rngAdvance() uint16 {
	old := s.rng
	bit := ((s.rng >> 15) ^ (s.rng >> 12) ^ (s.rng >> 11) ^ (s.rng >> 7) ^
		(s.rng >> 6) ^ (s.rng >> 5) ^ (s.rng >> 3) ^ (s.rng >> 2)) & 1
	s.rng = (s.rng << 1) | bit
	return old
}

// ReadRNG returns the next synthesized random byte for cartridges
// exposing the SMA hardware RNG, and 0 for a plain cartridge. It takes
// no address: nothing in the bus routes reads to it.
func (c *Cartridge) ReadRNG() uint8 {
	if c.scramble == nil {
		return 0
	}
	return uint8(c.scramble.rngAdvance())
}

// WriteBankSelector handles a word write within the 2FFFF0-2FFFFF bank
// selector window. If the cartridge carries no scramble table, the low
// 3 bits of the write select the bank directly;
// otherwise the scramble logic reassembles the selector from permuted
// bits and the cartridge's own offset table resolves it to an absolute
// offset.
func (c *Cartridge) WriteBankSelector(addr uint32, data uint16) {
	if c.scramble != nil && uint8(addr) == c.scramble.unscramble[0] {
		u := c.scramble.unscramble
		selector := bit(data, u[1])<<0 | bit(data, u[2])<<1 | bit(data, u[3])<<2 |
			bit(data, u[4])<<3 | bit(data, u[5])<<4 | bit(data, u[6])<<5
		if int(selector) < len(c.scramble.offsets) {
			c.bankBase = bankSize + c.scramble.offsets[selector]
		}
		return
	}

	selector := uint32(data&0x7) + 1
	base := selector * bankSize
	if int(base) > len(c.rom) {
		base = bankSize
	}
	c.bankBase = base
}

func bit(v uint16, pos byte) uint32 {
	if v&(1<<pos) != 0 {
		return 1
	}
	return 0
}
