package instructions

import "github.com/sekai-retro/neocore/hardware/m68k/registers"

// Flags describes which condition codes (X N Z V C, packed as in
// registers.StatusRegister.CCR) an instruction family consumes and
// produces, plus the two predicates the decode-table builder needs.
type Flags struct {
	Used uint8 // 5-bit mask of condition codes this instruction reads
	Set  uint8 // 5-bit mask of condition codes this instruction writes

	// EndBlk is true if this instruction terminates a basic block:
	// branches, jumps, returns, traps.
	EndBlk bool

	// ImmNotZero excludes the immediate-0 encoding of the source operand
	// from the decode table; used for shift/rotate counts, where a zero
	// count is encoded differently (or not at all).
	ImmNotZero bool
}

// Args carries the decoded operand values a handler needs, independent
// of how the pre-decoder stored them. Src and Dst are sign-extended
// where the addressing mode calls for it.
type Args struct {
	Opcode uint16
	Src    int64
	Dst    int64
	Size   OperandSize
	Cond   Condition
}

// HandlerFunc performs the effective-address computation, the
// operation, and any flag update for one decoded instruction.
type HandlerFunc func(ctx Context, args Args) error

// Bus is the minimal memory surface a handler needs: byte/word/long
// fetch and store at a 24-bit address.
type Bus interface {
	FetchByte(addr uint32) uint8
	FetchWord(addr uint32) uint16
	FetchLong(addr uint32) uint32
	StoreByte(addr uint32, v uint8)
	StoreWord(addr uint32, v uint16)
	StoreLong(addr uint32, v uint32)
}

// Context is the executor state a handler operates against.
type Context interface {
	Bus() Bus
	Registers() *registers.File
}

// IIB ("Instruction Information Block") is the static descriptor of one
// 68K instruction family.
type IIB struct {
	Mnemonic  Operator
	Condition Condition // meaningful only for conditional families
	Size      OperandSize

	BaseBits uint16 // 16-bit template
	Mask     uint16 // bits fixed in this family

	SType, DType     AddressingMode
	SBitPos, DBitPos uint8

	Flags Flags

	// ImmValue is the canonical immediate for ImmS encodings (quick
	// immediates embedded directly in the opcode template, e.g. ADDQ).
	ImmValue uint16

	Clocks int

	NoFlags   HandlerFunc
	WithFlags HandlerFunc
}

func (m AddressingMode) String() string {
	names := [...]string{
		"Ill", "Dreg", "Areg", "Aind", "Ainc", "Adec", "Adis", "Aidx",
		"AbsW", "AbsL", "Pdis", "Pidx", "ImmB", "ImmW", "ImmL", "ImmS",
		"Imm3", "Imm4", "Imm8", "Imm8s", "ImmV",
	}
	if int(m) < len(names) {
		return names[m]
	}
	return "?"
}
