// Package logger provides a small, tagged, capacity-bounded log used by
// the rest of this module in place of panics or stderr writes. Within
// this module the memory bus records its unmapped-write warnings here
// rather than propagating them as errors across a block-execution
// boundary; watchdog resets and cartridge bank switches are not logged.
package logger

import (
	"fmt"
	"io"
	"strings"
)

// Permission lets a caller gate whether a log entry is actually recorded.
// This is useful for components that want to log verbosely only when a
// debug flag is set, without threading that flag through every call site.
type Permission interface {
	AllowLogging() bool
}

type allowAll struct{}

func (allowAll) AllowLogging() bool { return true }

// Allow is a Permission that always allows logging.
var Allow Permission = allowAll{}

type entry struct {
	tag    string
	detail string
}

// Logger is a fixed-capacity, tagged log. The oldest entry is discarded
// once capacity is exceeded.
type Logger struct {
	capacity int
	entries  []entry
}

// NewLogger creates a Logger holding at most capacity entries.
func NewLogger(capacity int) *Logger {
	return &Logger{capacity: capacity}
}

func formatDetail(detail interface{}) string {
	switch d := detail.(type) {
	case error:
		return d.Error()
	case fmt.Stringer:
		return d.String()
	default:
		return fmt.Sprintf("%v", d)
	}
}

// Log records a tagged entry if permission allows it. detail is rendered
// via Error() for error values, String() for fmt.Stringer values, and
// %v otherwise.
func (l *Logger) Log(p Permission, tag string, detail interface{}) {
	if !p.AllowLogging() {
		return
	}
	l.append(tag, formatDetail(detail))
}

// Logf records a tagged entry built with fmt.Sprintf, if permission allows it.
func (l *Logger) Logf(p Permission, tag string, format string, args ...interface{}) {
	if !p.AllowLogging() {
		return
	}
	l.append(tag, fmt.Sprintf(format, args...))
}

func (l *Logger) append(tag, detail string) {
	l.entries = append(l.entries, entry{tag: tag, detail: detail})
	if l.capacity > 0 && len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Clear discards all recorded entries.
func (l *Logger) Clear() {
	l.entries = l.entries[:0]
}

func writeEntries(w io.Writer, entries []entry) {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.tag)
		b.WriteString(": ")
		b.WriteString(e.detail)
		b.WriteString("\n")
	}
	io.WriteString(w, b.String())
}

// Write renders every recorded entry, oldest first.
func (l *Logger) Write(w io.Writer) {
	writeEntries(w, l.entries)
}

// Tail renders at most n of the most recently recorded entries, oldest
// first within that window. Asking for more entries than exist, or for
// zero, are both well-defined: the former renders everything, the
// latter renders nothing.
func (l *Logger) Tail(w io.Writer, n int) {
	if n <= 0 {
		return
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	writeEntries(w, l.entries[len(l.entries)-n:])
}
