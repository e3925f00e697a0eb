package pd4990a_test

import (
	"testing"

	"github.com/sekai-retro/neocore/hardware/rtc/pd4990a"
	"github.com/sekai-retro/neocore/test"
)

func preload(r *pd4990a.RTC, days, month, year uint8) {
	r.Days = days
	r.Month = month
	r.Year = year
}

func TestLeapYearFebruaryRollover(t *testing.T) {
	r := pd4990a.New(60)
	preload(r, 0x28, 2, 0x00) // Feb 28, year 2000 (leap)

	for i := 0; i < 60*60*60*24; i++ {
		r.Tick()
	}
	test.Equate(t, r.Days, uint8(0x29))
	test.Equate(t, r.Month, uint8(2))

	for i := 0; i < 60*60*60*24; i++ {
		r.Tick()
	}
	test.Equate(t, r.Days, uint8(0x01))
	test.Equate(t, r.Month, uint8(3))
}

func TestNonLeapYearFebruarySkipsThe29th(t *testing.T) {
	r := pd4990a.New(60)
	preload(r, 0x28, 2, 0x01) // Feb 28, year 2001 (not leap)

	for i := 0; i < 60*60*60*24; i++ {
		r.Tick()
	}
	test.Equate(t, r.Days, uint8(0x01))
	test.Equate(t, r.Month, uint8(3))
}

func TestThreeWireProtocolDoesNotPanic(t *testing.T) {
	r := pd4990a.New(60)
	// clock a handful of bits through with strobe held, then release it
	r.Write(false, false, true)
	for i := 0; i < 16; i++ {
		r.Write(i%2 == 0, false, true)
		r.Write(i%2 == 0, true, true)
	}
	r.Write(false, false, false)

	d, tst := r.Read()
	test.ExpectSuccess(t, d == d && tst == tst)
}
