package instructions

import (
	"github.com/sekai-retro/neocore/errors"
)

// Tables is the pair of 65,536-entry decode structures built once at
// machine construction time: the Opcode Decode Table and the Handler
// Table, plus the precomputed lowest-bit-set lookup used by MOVEM.
type Tables struct {
	Opcodes  [65536]*IIB
	Handlers [65536]HandlerPair

	// LowestBitSet maps a byte to the index of its least significant
	// set bit, or 8 if the byte is zero.
	LowestBitSet [256]uint8
}

// HandlerPair is the flag-eliding/flag-producing function pointer pair
// installed for a single opcode.
type HandlerPair struct {
	NoFlags   HandlerFunc
	WithFlags HandlerFunc
}

// fieldMask returns the bits of the 16-bit opcode a given
// addressing mode claims as operand-variable bits.
func fieldMask(mode AddressingMode, bitpos uint8) uint16 {
	switch mode {
	case Dreg, Areg, Aind, Ainc, Adec, Adis, Aidx:
		return 0x7 << bitpos
	case Imm3:
		return 0x7 << bitpos
	case Imm4:
		return 0xF << bitpos
	case Imm8, Imm8s:
		return 0xFF << bitpos
	case ImmV:
		return 0x0FFF
	default:
		return 0
	}
}

func operandBits(mode AddressingMode) int {
	return mode.registerBits()
}

// Build constructs the Opcode Decode Table and Handler Table from an
// ordered slice of IIBs covering every implemented instruction family.
// For each IIB it enumerates every concrete opcode matching its base
// bits, mask, and addressing-mode fields, installing the IIB and its
// handler pair at each one and failing on any collision.
func Build(iibs []IIB) (*Tables, error) {
	t := &Tables{}

	for i := range t.LowestBitSet {
		if i == 0 {
			t.LowestBitSet[i] = 8
			continue
		}
		var bit uint8
		for b := 0; b < 8; b++ {
			if i&(1<<b) != 0 {
				bit = uint8(b)
				break
			}
		}
		t.LowestBitSet[i] = bit
	}

	for idx := range iibs {
		iib := &iibs[idx]

		bitmap := iib.Mask
		bitmap ^= fieldMask(iib.SType, iib.SBitPos)
		bitmap ^= fieldMask(iib.DType, iib.DBitPos)

		if bitmap != 0xFFFF {
			return nil, errors.New(errors.Construction, errors.DecodeMaskMismatch, describe(iib), bitmap)
		}

		sbits := operandBits(iib.SType)
		dbits := operandBits(iib.DType)
		sN := 1 << sbits
		dN := 1 << dbits

		for sbit := 0; sbit < sN; sbit++ {
			if iib.Flags.ImmNotZero && sbit == 0 {
				continue
			}
			for dbit := 0; dbit < dN; dbit++ {
				word := iib.BaseBits | uint16(sbit)<<iib.SBitPos | uint16(dbit)<<iib.DBitPos

				if t.Opcodes[word] != nil {
					return nil, errors.New(errors.Construction, errors.DecodeCollision, word, describe(t.Opcodes[word]), describe(iib))
				}

				t.Opcodes[word] = iib
				t.Handlers[word] = HandlerPair{
					NoFlags:   iib.NoFlags,
					WithFlags: iib.WithFlags,
				}
			}
		}
	}

	return t, nil
}

func describe(iib *IIB) string {
	return iib.Mnemonic.String() + "." + iib.Size.String()
}

func (op Operator) String() string {
	names := [...]string{
		"NOP", "MOVE", "LEA", "ADD", "SUB", "AND", "OR", "EOR", "CMP",
		"BTST", "BCHG", "BCLR", "BSET", "LSL", "LSR", "ASL", "ASR",
		"ROL", "ROR", "ROXL", "ROXR", "Bcc", "BSR", "DBcc", "JMP",
		"JSR", "RTS", "RTE", "MOVEM", "TRAP", "STOP", "RESET",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

func (s OperandSize) String() string {
	switch s {
	case Byte:
		return "b"
	case Word:
		return "w"
	case Long:
		return "l"
	default:
		return "-"
	}
}
