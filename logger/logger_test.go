package logger_test

import (
	"strings"
	"testing"

	"github.com/sekai-retro/neocore/logger"
	"github.com/sekai-retro/neocore/test"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "bus", "read from unmapped address")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "bus: read from unmapped address\n")

	w.Reset()

	log.Log(logger.Allow, "rtc", "unrecognised command")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "bus: read from unmapped address\nrtc: unrecognised command\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "bus: read from unmapped address\nrtc: unrecognised command\n")

	// asking for exactly the correct number of entries is okay
	w.Reset()
	log.Tail(w, 2)
	test.ExpectEquality(t, w.String(), "bus: read from unmapped address\nrtc: unrecognised command\n")

	// asking for fewer entries is okay too
	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "rtc: unrecognised command\n")

	// and no entries
	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestLoggerCapacity(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", 1)
	log.Log(logger.Allow, "b", 2)
	log.Log(logger.Allow, "c", 3)

	log.Write(w)
	test.ExpectEquality(t, w.String(), "b: 2\nc: 3\n")
}
