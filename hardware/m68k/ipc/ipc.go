// Package ipc implements the pre-decoded instruction cache: given a
// program counter and the active cartridge bank, it produces a block of
// already-decoded instructions ready for direct dispatch.
package ipc

import (
	"github.com/sekai-retro/neocore/hardware/m68k/instructions"
)

// IPC ("Intermediate Pre-decoded Code") is one decoded 68K instruction
// within a cached block.
type IPC struct {
	Opcode  uint16
	WordLen int // length in words, including extension words

	Src, Dst int64 // already-extracted operand values; meaning is family-specific

	Used, Set uint8 // condition-code masks, copied from the IIB then liveness-trimmed

	IIB      *instructions.IIB
	Function instructions.HandlerFunc // resolved at decode/liveness time
}

// List is a decoded basic block: every instruction from its entry PC up
// to and including the one that ends the block.
type List struct {
	PC    uint32 // entry PC of the block
	Bank  uint32 // cartridge bank active when this block was decoded
	Clocks int   // sum of per-instruction baseline clocks

	// NoRepeat marks a degenerate two-instruction busy loop (a
	// test-or-compare followed by a taken conditional branch back to
	// itself) that the executor can fast-forward.
	NoRepeat bool

	Instructions []IPC
}

// EndPC returns the address immediately after the block's last
// instruction.
func (l *List) EndPC() uint32 {
	pc := l.PC
	for i := range l.Instructions {
		pc += uint32(l.Instructions[i].WordLen) * 2
	}
	return pc
}

// Reader is the minimal fetch surface the decoder needs: word-at-a-time
// access to program memory, oblivious to which region backs it.
type Reader interface {
	FetchWord(addr uint32) uint16
}

// decodeOne decodes the single instruction at addr, returning the
// decoded IPC and the address immediately following it.
func decodeOne(r Reader, tables *instructions.Tables, addr uint32) (IPC, uint32) {
	opcode := r.FetchWord(addr)
	iib := tables.Opcodes[opcode]

	if iib == nil {
		return IPC{Opcode: opcode, WordLen: 1}, addr + 2
	}

	out := IPC{
		Opcode: opcode,
		IIB:    iib,
		Used:   iib.Flags.Used,
		Set:    iib.Flags.Set,
	}

	next := addr + 2

	switch iib.Mnemonic {
	case instructions.Bcc, instructions.BSR:
		disp := int32(int8(opcode))
		wordlen := 1
		if disp == 0 {
			disp = int32(int16(r.FetchWord(next)))
			next += 2
			wordlen = 2
		}
		out.Src = int64(uint32(int32(addr+2) + disp))
		out.WordLen = wordlen
		out.Function = pick(iib, out.Set)
		return out, next

	case instructions.DBcc:
		disp := int32(int16(r.FetchWord(next)))
		next += 2
		out.Dst = int64(opcode & 0x7)
		out.Src = int64(uint32(int32(addr+2) + disp))
		out.WordLen = 2
		out.Function = pick(iib, out.Set)
		return out, next
	}

	sWords, sVal := decodeOperand(r, iib.SType, opcode, iib.SBitPos, next)
	next += sWords * 2
	dWords, dVal := decodeOperand(r, iib.DType, opcode, iib.DBitPos, next)
	next += dWords * 2

	out.Src = sVal
	out.Dst = dVal
	out.WordLen = int((next - addr) / 2)
	out.Function = pick(iib, out.Set)

	return out, next
}

func pick(iib *instructions.IIB, set uint8) instructions.HandlerFunc {
	if set != 0 {
		return iib.WithFlags
	}
	return iib.NoFlags
}

// decodeOperand extracts one operand's value and reports how many
// extension words it consumed.
func decodeOperand(r Reader, mode instructions.AddressingMode, opcode uint16, bitpos uint8, at uint32) (uint32, int64) {
	switch mode {
	case instructions.Dreg, instructions.Areg:
		return 0, int64((opcode >> bitpos) & 0x7)
	case instructions.Imm3:
		return 0, int64((opcode >> bitpos) & 0x7)
	case instructions.Imm4:
		return 0, int64((opcode >> bitpos) & 0xF)
	case instructions.Imm8, instructions.Imm8s:
		return 0, int64((opcode >> bitpos) & 0xFF)
	case instructions.ImmV:
		return 0, int64(opcode & 0x0FFF)
	case instructions.Aind, instructions.Ainc, instructions.Adec:
		return 0, int64((opcode >> bitpos) & 0x7)
	case instructions.Adis:
		return 1, int64(int32(int16(r.FetchWord(at))))
	case instructions.Aidx:
		w := r.FetchWord(at)
		disp := uint32(int32(int8(w))) // sign-extended displacement
		return 1, int64(int32((disp & 0xFFFF00FF) | uint32(w>>8)<<24)) // index byte in the top byte
	case instructions.AbsW:
		return 1, int64(int32(int16(r.FetchWord(at))))
	case instructions.AbsL, instructions.ImmL:
		hi := uint32(r.FetchWord(at))
		lo := uint32(r.FetchWord(at + 2))
		return 2, int64((hi << 16) | lo)
	case instructions.Pdis:
		disp := int32(int16(r.FetchWord(at)))
		return 1, int64(uint32(int32(at) + disp))
	case instructions.Pidx:
		w := r.FetchWord(at)
		disp := int32(int8(w))
		return 1, int64(uint32(int32(at) + disp))
	case instructions.ImmB:
		return 1, int64(uint8(r.FetchWord(at)))
	case instructions.ImmW:
		return 1, int64(r.FetchWord(at))
	default:
		return 0, 0
	}
}

// DecodeBlock decodes instructions starting at pc until one with
// Flags.EndBlk is reached, producing a complete List. bank is the
// cartridge bank register snapshot at decode time; it is only
// meaningful (and only stored) for blocks living in the banked window.
func DecodeBlock(r Reader, tables *instructions.Tables, pc uint32, bank uint32, bankedWindow func(uint32) bool) *List {
	list := &List{PC: pc}
	if bankedWindow != nil && bankedWindow(pc) {
		list.Bank = bank
	}

	addr := pc
	for {
		i, next := decodeOne(r, tables, addr)
		list.Clocks += clocksOf(i.IIB)
		list.Instructions = append(list.Instructions, i)
		addr = next
		if i.IIB == nil || i.IIB.Flags.EndBlk {
			break
		}
	}

	backPass(list)
	detectNoRepeat(list)
	return list
}

func clocksOf(iib *instructions.IIB) int {
	if iib == nil {
		return 4
	}
	return iib.Clocks
}

// backPass implements the flag-liveness algorithm: a reverse pass
// trimming each instruction's Set mask to only the bits still required
// downstream, and re-resolving Function to the cheaper flag-eliding
// handler wherever the full result turns out to be dead.
func backPass(list *List) {
	const allFlags = 0x1F
	required := uint8(allFlags)
	for i := len(list.Instructions) - 1; i >= 0; i-- {
		ins := &list.Instructions[i]
		ins.Set &= required
		required = (required &^ ins.Set) | ins.Used
		if ins.IIB != nil {
			ins.Function = pick(ins.IIB, ins.Set)
		}
	}
}

// detectNoRepeat implements the two-instruction tight-loop optimisation:
// a block of exactly {test-or-compare, taken-conditional-branch-to-self}
// whose compare operand has no side-effecting addressing mode. Only the
// source mode is checked; see DESIGN.md for why the asymmetry is kept.
func detectNoRepeat(list *List) {
	if len(list.Instructions) != 2 {
		return
	}
	cmp := list.Instructions[0]
	branch := list.Instructions[1]
	if cmp.IIB == nil || branch.IIB == nil {
		return
	}
	if cmp.IIB.Mnemonic != instructions.CMP {
		return
	}
	if branch.IIB.Mnemonic != instructions.Bcc {
		return
	}
	if branch.Src != int64(list.PC) {
		return
	}
	switch cmp.IIB.SType {
	case instructions.Ainc, instructions.Adec:
		return
	}
	list.NoRepeat = true
}
