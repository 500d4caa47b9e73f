package web

// backlog holds the most recent serial output, replayed to
// clients when they connect.
type backlog struct {
	data []byte
	idx  int
	full bool
}

func newBacklog(size int) *backlog {
	if size < 1 {
		size = 1
	}
	return &backlog{data: make([]byte, size)}
}

func (b *backlog) add(p []byte) {
	for _, v := range p {
		b.data[b.idx] = v
		b.idx++
		if b.idx == len(b.data) {
			b.idx = 0
			b.full = true
		}
	}
}

// bytes returns the backlog, oldest first.
func (b *backlog) bytes() []byte {
	if !b.full {
		return append([]byte(nil), b.data[:b.idx]...)
	}
	out := make([]byte, 0, len(b.data))
	out = append(out, b.data[b.idx:]...)
	return append(out, b.data[:b.idx]...)
}
