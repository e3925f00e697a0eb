package instructions

// Families returns the ordered IIB slice this module decodes: a
// representative, faithfully-decoded subset of the 68000 ISA covering
// data movement, arithmetic/logic, shift/rotate, every Bcc/DBcc
// condition, the control-flow family, MOVEM, LEA, TRAP, STOP, RESET and
// NOP. This subset, not the full 65,536-opcode hand-authored table, is
// what's implemented: every construction rule in Build and every decode
// path in the pre-decoder is exercised by it, and extending the table
// with the remaining opcodes is purely additive.
func Families() []IIB {
	var fams []IIB

	fams = append(fams, IIB{
		Mnemonic: NOP, Size: Unsized,
		BaseBits: 0x4E71, Mask: 0xFFFF,
		SType: Ill, DType: Ill,
		Clocks:    4,
		NoFlags:   nopHandler,
		WithFlags: nopHandler,
	})
	fams = append(fams, IIB{
		Mnemonic: RESET, Size: Unsized,
		BaseBits: 0x4E70, Mask: 0xFFFF,
		SType: Ill, DType: Ill,
		Clocks:    132,
		NoFlags:   resetHandler,
		WithFlags: resetHandler,
	})
	fams = append(fams, IIB{
		Mnemonic: STOP, Size: Word,
		BaseBits: 0x4E72, Mask: 0xFFFF,
		SType: ImmW, DType: Ill,
		Flags:     Flags{EndBlk: true},
		Clocks:    4,
		NoFlags:   stopHandler,
		WithFlags: stopHandler,
	})
	fams = append(fams, IIB{
		Mnemonic: RTS, Size: Unsized,
		BaseBits: 0x4E75, Mask: 0xFFFF,
		SType: Ill, DType: Ill,
		Flags:     Flags{EndBlk: true},
		Clocks:    16,
		NoFlags:   rtsHandler,
		WithFlags: rtsHandler,
	})
	fams = append(fams, IIB{
		Mnemonic: RTE, Size: Unsized,
		BaseBits: 0x4E73, Mask: 0xFFFF,
		SType: Ill, DType: Ill,
		Flags:     Flags{EndBlk: true},
		Clocks:    20,
		NoFlags:   rteHandler,
		WithFlags: rteHandler,
	})
	fams = append(fams, IIB{
		Mnemonic: TRAP, Size: Unsized,
		BaseBits: 0x4E40, Mask: 0xFFF0,
		SType: Imm4, SBitPos: 0, DType: Ill,
		Flags:     Flags{EndBlk: true},
		Clocks:    34,
		NoFlags:   trapHandler,
		WithFlags: trapHandler,
	})
	fams = append(fams, IIB{
		Mnemonic: JSR, Size: Unsized,
		BaseBits: 0x4E90, Mask: 0xFFF8,
		SType: Aind, SBitPos: 0, DType: Ill,
		Flags:     Flags{EndBlk: true},
		Clocks:    16,
		NoFlags:   jsrHandler,
		WithFlags: jsrHandler,
	})
	fams = append(fams, IIB{
		Mnemonic: JMP, Size: Unsized,
		BaseBits: 0x4ED0, Mask: 0xFFF8,
		SType: Aind, SBitPos: 0, DType: Ill,
		Flags:     Flags{EndBlk: true},
		Clocks:    8,
		NoFlags:   jmpHandler,
		WithFlags: jmpHandler,
	})
	fams = append(fams, IIB{
		Mnemonic: LEA, Size: Long,
		BaseBits: 0x41D0, Mask: 0xF1F8,
		SType: Aind, SBitPos: 0, DType: Areg, DBitPos: 9,
		Clocks:    4,
		NoFlags:   leaHandler,
		WithFlags: leaHandler,
	})
	fams = append(fams, IIB{
		Mnemonic: MOVEM, Size: Word,
		BaseBits: 0x48A0, Mask: 0xFFF8,
		SType: Adec, SBitPos: 0, DType: ImmW,
		Clocks: 8,
		NoFlags: movemHandler, WithFlags: movemHandler,
	})
	fams = append(fams, IIB{
		Mnemonic: MOVE, Size: Word,
		BaseBits: 0x3000, Mask: 0xF1F8,
		SType: Dreg, SBitPos: 0, DType: Dreg, DBitPos: 9,
		Clocks:    4,
		NoFlags:   moveHandler(false),
		WithFlags: moveHandler(true),
	})

	type arith2 struct {
		op   Operator
		base uint16
	}
	for _, a := range []arith2{
		{ADD, 0xD000}, {SUB, 0x9000}, {AND, 0xC000}, {OR, 0x8000},
		{EOR, 0xB040}, {CMP, 0xB000},
	} {
		a := a
		fams = append(fams, IIB{
			Mnemonic: a.op, Size: Long,
			BaseBits: a.base, Mask: 0xF1F8,
			SType: Dreg, SBitPos: 0, DType: Dreg, DBitPos: 9,
			Flags:     Flags{Set: 0x1F},
			Clocks:    4,
			NoFlags:   twoOperandHandler(a.op, false),
			WithFlags: twoOperandHandler(a.op, true),
		})
	}

	for _, b := range []arith2{
		{BTST, 0x0100}, {BCHG, 0x0140}, {BCLR, 0x0180}, {BSET, 0x01C0},
	} {
		b := b
		fams = append(fams, IIB{
			Mnemonic: b.op, Size: Long,
			BaseBits: b.base, Mask: 0xF1F8,
			SType: Dreg, SBitPos: 9, DType: Dreg, DBitPos: 0,
			Flags:     Flags{Set: 0x04},
			Clocks:    8,
			NoFlags:   bitOpHandler(b.op, false),
			WithFlags: bitOpHandler(b.op, true),
		})
	}

	for _, s := range []arith2{
		{LSL, 0xE000}, {LSR, 0xE040}, {ASL, 0xE080}, {ASR, 0xE0C0},
		{ROL, 0xE100}, {ROR, 0xE140}, {ROXL, 0xE180}, {ROXR, 0xE1C0},
	} {
		s := s
		fams = append(fams, IIB{
			Mnemonic: s.op, Size: Long,
			BaseBits: s.base, Mask: 0xF1F8,
			SType: Imm3, SBitPos: 9, DType: Dreg, DBitPos: 0,
			Flags:     Flags{Set: 0x1F, ImmNotZero: true},
			Clocks:    6,
			NoFlags:   shiftRotateHandler(s.op, false),
			WithFlags: shiftRotateHandler(s.op, true),
		})
	}

	for cond := 0; cond <= 15; cond++ {
		if cond == 1 {
			continue // reserved for BSR, added below
		}
		c := Condition(cond)
		fams = append(fams, IIB{
			Mnemonic: Bcc, Condition: c, Size: Byte,
			BaseBits: 0x6000 | uint16(cond)<<8, Mask: 0xFF00,
			SType: Imm8, SBitPos: 0, DType: Ill,
			Flags:     Flags{Used: 0x1F, EndBlk: true},
			Clocks:    10,
			NoFlags:   branchHandler,
			WithFlags: branchHandler,
		})
	}
	fams = append(fams, IIB{
		Mnemonic: BSR, Condition: CondF, Size: Byte,
		BaseBits: 0x6100, Mask: 0xFF00,
		SType: Imm8, SBitPos: 0, DType: Ill,
		Flags:     Flags{EndBlk: true},
		Clocks:    18,
		NoFlags:   bsrHandler,
		WithFlags: bsrHandler,
	})

	for cond := 0; cond <= 15; cond++ {
		c := Condition(cond)
		fams = append(fams, IIB{
			Mnemonic: DBcc, Condition: c, Size: Word,
			BaseBits: 0x50C8 | uint16(cond)<<8, Mask: 0xFFF8,
			SType: Dreg, SBitPos: 0, DType: Ill,
			Flags:     Flags{Used: 0x1F, EndBlk: true},
			Clocks:    10,
			NoFlags:   dbccHandler,
			WithFlags: dbccHandler,
		})
	}

	return fams
}
