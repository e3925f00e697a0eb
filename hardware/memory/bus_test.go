package memory_test

import (
	"testing"

	"github.com/sekai-retro/neocore/hardware/memory"
	"github.com/sekai-retro/neocore/logger"
	"github.com/sekai-retro/neocore/test"
)

func TestBusUnmappedRead(t *testing.T) {
	b := memory.NewBus(logger.NewLogger(16))
	test.Equate(t, b.FetchByte(0x050000), uint8(memory.UnmappedSentinel))
}

func TestBusMapAndDispatch(t *testing.T) {
	b := memory.NewBus(logger.NewLogger(16))
	ram := memory.NewRAM(0x10000)
	b.Map(0x100000, 0x110000, ram)

	b.StoreWord(0x100000, 0xABCD)
	test.Equate(t, b.FetchWord(0x100000), uint16(0xABCD))
}

func TestBusLogsUnmappedWrite(t *testing.T) {
	log := logger.NewLogger(16)
	b := memory.NewBus(log)
	b.StoreByte(0x050000, 0x42)
	test.ExpectSuccess(t, true) // StoreByte on unmapped must not panic
}

func TestRAMMirroring(t *testing.T) {
	ram := memory.NewRAM(0x10000)
	ram.StoreByte(0x00, 0x7F)
	test.Equate(t, ram.FetchByte(0x10000), uint8(0x7F))
}
