package errors

// Category groups curated errors the way this module groups
// failures: Construction and IllegalInstruction are FATAL categories
// (abort machine construction, or deliver a 68K exception, respectively);
// Bus, Cartridge, RTC and Scheduler are RECOVERABLE — logged and handled
// in place.
type Category string

// Categories of curated error. See doc.go for the FATAL/RECOVERABLE split.
const (
	// Construction errors unwind to machine.New's caller: opcode table
	// collisions, mask mismatches, missing ROM regions.
	Construction Category = "construction"

	// IllegalInstruction is raised when the IPC decoder meets an opcode
	// with no IIB. It is not fatal to the host process: the executor
	// turns it into a 68K auto-vector 4 exception.
	IllegalInstruction Category = "illegal instruction"

	// Bus errors cover unmapped reads/writes and SRAM writes while locked.
	// Always recoverable: reads return a sentinel, writes are dropped.
	Bus Category = "bus"

	// Cartridge errors cover malformed ROM images and bank-switch
	// construction problems (e.g. a size that isn't bank-aligned).
	Cartridge Category = "cartridge"

	// RTC errors cover malformed PD4990A command sequences.
	RTC Category = "rtc"

	// Scheduler errors cover watchdog expiry and field-loop bookkeeping.
	// Watchdog expiry is recoverable (forces a CPU reset, not a crash).
	Scheduler Category = "scheduler"
)
