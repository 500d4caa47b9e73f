// Package mmu provides the address space of the Game Boy. The whole
// 16-bit range is backed by a single flat array, with the echo RAM
// mirror and the DIV write reset handled on write.
package mmu

import (
	"errors"
	"fmt"
	"io"

	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// Size is the size of the address space in bytes.
	Size = 0x10000

	// 0xC000 - 0xDDFF - Work RAM mirrored by echo RAM
	workRAMStart uint16 = 0xC000
	workRAMEnd   uint16 = 0xDDFF
	// 0xE000 - 0xFDFF - Echo RAM
	echoRAMStart uint16 = 0xE000
	echoRAMEnd   uint16 = 0xFDFF

	echoOffset uint16 = echoRAMStart - workRAMStart
)

var (
	// ErrROMTooLarge is returned by New when the image does
	// not fit in the address space.
	ErrROMTooLarge = errors.New("mmu: rom image exceeds address space")
	// ErrROMEmpty is returned by New when the image is empty.
	ErrROMEmpty = errors.New("mmu: rom image is empty")
)

// Bus is the interface the other components use to
// access the address space.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// MMU is the memory management unit. It owns the 64kB of
// memory that every other component reads and writes.
type MMU struct {
	data [Size]uint8
}

var _ Bus = (*MMU)(nil)

// New creates a new MMU with the given ROM image placed at
// address 0x0000. The rest of the address space is zeroed.
func New(rom []byte) (*MMU, error) {
	if len(rom) == 0 {
		return nil, ErrROMEmpty
	}
	if len(rom) > Size {
		return nil, fmt.Errorf("%w: %d bytes", ErrROMTooLarge, len(rom))
	}

	m := &MMU{}
	copy(m.data[:], rom)
	return m, nil
}

// Read returns the byte at the given address.
func (m *MMU) Read(address uint16) uint8 {
	return m.data[address]
}

// Write writes the given value to the given address.
//
//   - Writing to types.DIV stores 0, regardless of value.
//   - Writing to 0xC000 - 0xDDFF also writes 0x2000 above.
//   - Writing to 0xE000 - 0xFDFF also writes 0x2000 below.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address == types.DIV:
		m.data[address] = 0
	case address >= workRAMStart && address <= workRAMEnd:
		m.data[address] = value
		m.data[address+echoOffset] = value
	case address >= echoRAMStart && address <= echoRAMEnd:
		m.data[address] = value
		m.data[address-echoOffset] = value
	default:
		m.data[address] = value
	}
}

// Set stores value at address without any of the write
// side effects. It is used by hardware that owns a register,
// such as the timer incrementing types.DIV.
func (m *MMU) Set(address uint16, value uint8) {
	m.data[address] = value
}

// Dump writes length bytes starting at start to w as space
// separated hex, wrapping at the end of the address space.
func (m *MMU) Dump(w io.Writer, start uint16, length int) error {
	if _, err := fmt.Fprintf(w, "%04X:", start); err != nil {
		return err
	}
	for i := 0; i < length; i++ {
		if _, err := fmt.Fprintf(w, " %02X", m.data[start+uint16(i)]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

var _ types.Stater = (*MMU)(nil)

// Load implements the types.Stater interface.
func (m *MMU) Load(s *types.State) {
	s.ReadData(m.data[:])
}

// Save implements the types.Stater interface.
func (m *MMU) Save(s *types.State) {
	s.WriteData(m.data[:])
}
