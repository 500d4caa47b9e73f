package cpu

import (
	"fmt"
	"io"
)

// Entry is a single executed instruction.
type Entry struct {
	PC          uint16
	Opcode      uint8
	Prefixed    bool
	Instruction Instruction
	Step        uint64
}

func (e Entry) String() string {
	opcode := fmt.Sprintf("%02X", e.Opcode)
	if e.Prefixed {
		opcode = fmt.Sprintf("%02X %02X", Prefix, e.Opcode)
	}
	return fmt.Sprintf("%8d  0x%04X  %-5s  %s", e.Step, e.PC, opcode, e.Instruction)
}

// History is a ring buffer of the most recently executed
// instructions, dumped when execution fails.
type History struct {
	entries []Entry
	next    int
	full    bool
}

// NewHistory returns a History holding the last size entries.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{entries: make([]Entry, size)}
}

// Add records an entry, overwriting the oldest once full.
func (h *History) Add(e Entry) {
	h.entries[h.next] = e
	h.next++
	if h.next == len(h.entries) {
		h.next = 0
		h.full = true
	}
}

// Entries returns the recorded entries, oldest first.
func (h *History) Entries() []Entry {
	if !h.full {
		return append([]Entry(nil), h.entries[:h.next]...)
	}
	out := make([]Entry, 0, len(h.entries))
	out = append(out, h.entries[h.next:]...)
	return append(out, h.entries[:h.next]...)
}

// WriteTo writes the entries to w, one per line, oldest first.
func (h *History) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range h.Entries() {
		n, err := fmt.Fprintln(w, e)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
