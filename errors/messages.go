package errors

// error message patterns, grouped by the category that raises them. each
// is passed to New as the pattern argument.
const (
	// construction (fatal)
	DecodeCollision      = "construction error: opcode %#04x already claimed by %s, cannot install %s"
	DecodeMaskMismatch   = "construction error: iib %s leaves bitmap %#04x unresolved after operand bits"
	MissingROMRegion     = "construction error: missing rom region %s"
	IPCAllocationFailure = "construction error: could not allocate ipc list for pc %#06x"

	// illegal instruction (fatal to decode, recoverable to execution)
	IllegalOpcode = "illegal instruction: opcode %#04x at %#06x has no definition"

	// bus (recoverable)
	UnmappedRead  = "bus error: read from unmapped address %#06x"
	UnmappedWrite = "bus error: write to unmapped address %#06x"
	SRAMLocked    = "bus error: write to sram at %#06x while locked"

	// cartridge (fatal at load, recoverable at bank-switch time)
	CartridgeSize       = "cartridge error: %s: size %d is not a multiple of %#x"
	CartridgeBankOOB    = "cartridge error: bank base %#x exceeds cartridge size %#x"
	CartridgeSignature  = "cartridge error: sma identification signature mismatch at %#06x"
	UnscrambleTableSize = "cartridge error: bksw_unscramble table must have 7 entries, got %d"

	// rtc (recoverable)
	RTCCommand = "rtc error: unrecognised command %#x in shift register"

	// scheduler (recoverable)
	WatchdogExpired = "scheduler: watchdog expired after %d unserviced vblanks, forcing cpu reset"
)
