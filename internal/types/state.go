package types

import (
	"io"
)

// State represents the emulator state. This is used to
// save and load states between runs.
//
// Reads past the end of the state do not panic, instead
// they return zero values and Err reports io.ErrUnexpectedEOF.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
	err          error
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0),
	}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// ResetPosition resets the read position, allowing the
// state to be read from the beginning.
func (s *State) ResetPosition() {
	s.readPosition = 0
	s.err = nil
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) Write64(value uint64) {
	for i := 0; i < 8; i++ {
		s.raw = append(s.raw, byte(value>>(8*i)))
	}
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

// take returns the next n bytes of the state, or nil if
// fewer than n bytes remain.
func (s *State) take(n int) []byte {
	if s.err != nil {
		return nil
	}
	if s.readPosition+n > len(s.raw) {
		s.err = io.ErrUnexpectedEOF
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	b := s.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *State) Read16() uint16 {
	b := s.take(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (s *State) Read64() uint64 {
	b := s.take(8)
	if b == nil {
		return 0
	}
	var value uint64
	for i := 7; i >= 0; i-- {
		value = value<<8 | uint64(b[i])
	}
	return value
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	if b := s.take(len(p)); b != nil {
		copy(p, b)
	}
}

// Err returns the first error encountered while reading.
func (s *State) Err() error {
	return s.err
}

// Remaining returns the number of unread bytes.
func (s *State) Remaining() int {
	return len(s.raw) - s.readPosition
}

func (s *State) Bytes() []byte {
	return s.raw
}
