// Package z80bus declares the contract between the field scheduler and
// a Z80 sound-CPU backend. The backend's own instruction interpreter is
// out of scope here; only the collaborator surface and the command
// mailbox it's driven through are modeled.
package z80bus

// Backend is implemented by whatever Z80 core is plugged into a
// machine. Run executes at least the given number of cycles and
// returns the overshoot, mirroring the M68K core's leftover contract.
type Backend interface {
	Run(cycles int) (overshoot int)
	NMI()
	Reset()
}

// Mailbox is the 320000-32000F command/reply latch the 68K and Z80
// sides exchange through. A command write must be visible to the Z80
// slice that runs after it within the same field; the field scheduler
// enforces that ordering, not Mailbox itself.
type Mailbox struct {
	command uint8
	reply   uint8
	backend Backend
}

// NewMailbox wires a Mailbox to the Z80 backend it signals.
func NewMailbox(backend Backend) *Mailbox {
	return &Mailbox{backend: backend}
}

// PostCommand latches a command from the 68K side and raises the Z80
// NMI line. Returns the Z80-cycle yield the caller should charge against
// the current slice.
func (m *Mailbox) PostCommand(cmd uint8) int {
	m.command = cmd
	if m.backend != nil {
		m.backend.NMI()
	}
	return 300
}

// Command returns the most recently posted command, for the Z80-side
// handler to consume after observing the NMI.
func (m *Mailbox) Command() uint8 { return m.command }

// PostReply is how the Z80-side handler publishes its answer.
func (m *Mailbox) PostReply(v uint8) { m.reply = v }

// Reply returns the latched reply byte, read by the 68K side at 320000.
func (m *Mailbox) Reply() uint8 { return m.reply }
