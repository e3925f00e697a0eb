package ipc_test

import (
	"testing"

	"github.com/sekai-retro/neocore/hardware/m68k/instructions"
	"github.com/sekai-retro/neocore/hardware/m68k/ipc"
	"github.com/sekai-retro/neocore/test"
)

type romReader struct {
	words map[uint32]uint16
}

func (r romReader) FetchWord(addr uint32) uint16 {
	return r.words[addr]
}

func mustTables(t *testing.T) *instructions.Tables {
	t.Helper()
	tables, err := instructions.Build(instructions.Families())
	test.ExpectSuccess(t, err)
	return tables
}

func TestDecodeBlockWordLenInvariant(t *testing.T) {
	tables := mustTables(t)

	r := romReader{words: map[uint32]uint16{
		0x1000: 0x3001, // MOVE.W D1,D0
		0x1002: 0x4E75, // RTS
	}}

	list := ipc.DecodeBlock(r, tables, 0x1000, 0, nil)

	test.ExpectSuccess(t, len(list.Instructions) == 2)

	sum := 0
	for i := range list.Instructions {
		sum += list.Instructions[i].WordLen
	}
	test.Equate(t, uint32(sum*2), list.EndPC()-list.PC)
}

func TestDecodeBlockFlagLiveness(t *testing.T) {
	tables := mustTables(t)

	r := romReader{words: map[uint32]uint16{
		0x2000: 0xD001, // ADD.L D1,D0
		0x2002: 0x4E75, // RTS
	}}

	list := ipc.DecodeBlock(r, tables, 0x2000, 0, nil)
	last := list.Instructions[len(list.Instructions)-1]
	test.Equate(t, last.Set&0x1F, last.Set)
}

func TestDecodeBlockIllegalOpcode(t *testing.T) {
	tables := mustTables(t)

	r := romReader{words: map[uint32]uint16{
		0x3000: 0xFFFF, // unmapped
	}}

	list := ipc.DecodeBlock(r, tables, 0x3000, 0, nil)
	test.ExpectSuccess(t, len(list.Instructions) == 1)
	test.Equate(t, list.Instructions[0].WordLen, 1)
}

func TestTableKeyedByBank(t *testing.T) {
	table := ipc.NewTable()

	a := &ipc.List{PC: 0x200000, Bank: 0}
	b := &ipc.List{PC: 0x200000, Bank: 1}
	table.Insert(a)
	table.Insert(b)

	test.Equate(t, table.Lookup(0x200000, 0), a)
	test.Equate(t, table.Lookup(0x200000, 1), b)
	test.Equate(t, table.Lookup(0x200000, 2) == nil, true)

	test.Equate(t, table.Len(), 2)
	table.Clear()
	test.Equate(t, table.Len(), 0)
}
