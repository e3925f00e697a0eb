package machine_test

import (
	"testing"

	"github.com/sekai-retro/neocore/hardware/instance"
	"github.com/sekai-retro/neocore/hardware/syscontrol"
	"github.com/sekai-retro/neocore/machine"
	"github.com/sekai-retro/neocore/test"
)

type fakeZ80 struct {
	runs, nmis, resets int
}

func (f *fakeZ80) Run(cycles int) int { f.runs++; return 0 }
func (f *fakeZ80) NMI()               { f.nmis++ }
func (f *fakeZ80) Reset()             { f.resets++ }

type fakeYM struct{ updates int }

func (f *fakeYM) Update() { f.updates++ }

func putWord(b []byte, off int, v uint16) {
	b[off] = byte(v >> 8)
	b[off+1] = byte(v)
}

func minimalROMs(cartMiB int) machine.ROMs {
	cart := make([]byte, cartMiB*0x100000)
	bios := make([]byte, 0x20000)
	return machine.ROMs{
		MainCPUCartridge: cart,
		MainCPUBIOS:      bios,
	}
}

func TestResetBootstrapReadsActiveVectorTable(t *testing.T) {
	roms := minimalROMs(1)
	// power-on state maps the BIOS vector table, not the cartridge's:
	// stamp the expected SSP/PC pair into the BIOS image.
	putWord(roms.MainCPUBIOS, 0, 0x0010)
	putWord(roms.MainCPUBIOS, 2, 0x0000)
	putWord(roms.MainCPUBIOS, 4, 0x00C0)
	putWord(roms.MainCPUBIOS, 6, 0x0000)

	m, err := machine.New(instance.NewInstance(), roms, nil, nil, nil)
	test.ExpectSuccess(t, err)

	regs := m.CPU().Registers()
	test.Equate(t, regs.A[7], uint32(0x00100000))
	test.Equate(t, regs.PC.Value(), uint32(0x00C00000))
}

func TestResetAfterVectorSwapReadsCartridge(t *testing.T) {
	roms := minimalROMs(1)
	putWord(roms.MainCPUCartridge, 0, 0x0020)
	putWord(roms.MainCPUCartridge, 2, 0x0000)
	putWord(roms.MainCPUCartridge, 4, 0x00D0)
	putWord(roms.MainCPUCartridge, 6, 0x0000)

	m, err := machine.New(instance.NewInstance(), roms, nil, nil, nil)
	test.ExpectSuccess(t, err)

	m.Poke(0x3A0013, 0) // REG_SWPROM: stop overlaying BIOS vectors
	m.Reset()

	regs := m.CPU().Registers()
	test.Equate(t, regs.A[7], uint32(0x00200000))
	test.Equate(t, regs.PC.Value(), uint32(0x00D00000))
}

func TestBankSwitchThroughTheFullBus(t *testing.T) {
	roms := minimalROMs(5)
	roms.MainCPUCartridge[0x400000] = 0xAB

	m, err := machine.New(instance.NewInstance(), roms, nil, nil, nil)
	test.ExpectSuccess(t, err)

	m.Poke(0x2FFFF0, 3)

	test.Equate(t, m.CartridgeBankBase(), uint32(0x400000))
	test.Equate(t, m.Peek(0x200000), uint8(0xAB))
}

func TestWatchdogForcesCPUResetAfterEightUnservicedFields(t *testing.T) {
	roms := minimalROMs(1)
	// reset vector (read through the default BIOS-overlay state)
	putWord(roms.MainCPUBIOS, 0, 0x0010)
	putWord(roms.MainCPUBIOS, 2, 0x0000)
	putWord(roms.MainCPUBIOS, 4, 0x00C0)
	putWord(roms.MainCPUBIOS, 6, 0x0000)

	m, err := machine.New(instance.NewInstance(), roms, nil, nil, nil)
	test.ExpectSuccess(t, err)
	m.SetRasterMode(false)

	for i := 0; i < instance.WatchdogThreshold; i++ {
		m.StepField()
	}

	regs := m.CPU().Registers()
	test.Equate(t, regs.PC.Value(), uint32(0x00C00000))
}

func TestControllerAndSystemTypeBits(t *testing.T) {
	roms := minimalROMs(1)
	m, err := machine.New(instance.NewInstance(), roms, nil, nil, nil)
	test.ExpectSuccess(t, err)

	m.SetSystemType(syscontrol.MVS)
	m.SetStartSelect(0x3F)
	test.Equate(t, m.Peek(0x380000), uint8(0xBF))

	m.SetSystemType(syscontrol.AES)
	test.Equate(t, m.Peek(0x380000), uint8(0x3F))
}

func TestZ80MailboxRoundTripThroughCommandPort(t *testing.T) {
	roms := minimalROMs(1)
	z80 := &fakeZ80{}
	m, err := machine.New(instance.NewInstance(), roms, z80, nil, nil)
	test.ExpectSuccess(t, err)

	m.Poke(0x320000, 0x42)

	test.Equate(t, z80.nmis, 1)
	test.Equate(t, z80.runs, 1)
}

func TestCoinServiceXORsRTCSerialOutput(t *testing.T) {
	roms := minimalROMs(1)
	m, err := machine.New(instance.NewInstance(), roms, nil, nil, nil)
	test.ExpectSuccess(t, err)

	m.SetCoinService(0xFF)
	// with the RTC freshly reset and idle, its DATA_OUT/TEST lines are
	// both low, so the port should read back the bitmap unchanged.
	test.Equate(t, m.Peek(0x320001), uint8(0xFF))
}

func TestMemcardOnlyCarriesOddByteLanes(t *testing.T) {
	roms := minimalROMs(1)
	m, err := machine.New(instance.NewInstance(), roms, nil, nil, nil)
	test.ExpectSuccess(t, err)

	m.Poke(0x800000, 0x11)
	m.Poke(0x800001, 0x22)

	test.Equate(t, m.Peek(0x800000), uint8(0))
	test.Equate(t, m.Peek(0x800001), uint8(0x22))
}
