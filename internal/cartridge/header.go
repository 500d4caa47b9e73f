// Package cartridge parses the header found at 0x0100-0x014F of
// every ROM image.
package cartridge

import (
	"errors"
	"fmt"
	"strings"
)

const (
	headerStart = 0x0100
	headerEnd   = 0x0150
)

// ErrNoHeader is returned by ParseHeader when the image is too
// small to hold a header.
var ErrNoHeader = errors.New("cartridge: image too small for header")

// Type is the memory bank controller and extra hardware the
// cartridge declares at 0x0147.
type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
	ROMRAM      Type = 0x08
	ROMRAMBATT  Type = 0x09
	MBC3        Type = 0x11
	MBC5        Type = 0x19
)

var typeNames = map[Type]string{
	ROM:         "ROM",
	MBC1:        "MBC1",
	MBC1RAM:     "MBC1+RAM",
	MBC1RAMBATT: "MBC1+RAM+BATTERY",
	MBC2:        "MBC2",
	MBC2BATT:    "MBC2+BATTERY",
	ROMRAM:      "ROM+RAM",
	ROMRAMBATT:  "ROM+RAM+BATTERY",
	MBC3:        "MBC3",
	MBC5:        "MBC5",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(0x%02X)", uint8(t))
}

// Banked returns true if the cartridge needs a memory bank
// controller, which the flat address space does not provide.
func (t Type) Banked() bool {
	return t != ROM && t != ROMRAM && t != ROMRAMBATT
}

var ramSizes = map[uint8]uint{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header represents the header of a cartridge, located at the
// address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string
	// 0x0143 - set when the cartridge supports the Colour Game Boy,
	// in which case the title is one byte shorter.
	GameboyColor  bool
	CartridgeType Type
	ROMSize       uint
	RAMSize       uint

	HeaderChecksum uint8
	// ComputedChecksum is the checksum of 0x0134-0x014C, which the
	// boot ROM compares against HeaderChecksum.
	ComputedChecksum uint8
}

// ParseHeader parses the header of the given ROM image.
func ParseHeader(rom []byte) (Header, error) {
	var h Header
	if len(rom) < headerEnd {
		return h, fmt.Errorf("%w: %d bytes", ErrNoHeader, len(rom))
	}
	header := rom[headerStart:headerEnd]

	h.GameboyColor = header[0x43]&0x80 != 0
	title := header[0x34:0x44]
	if h.GameboyColor {
		title = header[0x34:0x43]
	}
	h.Title = strings.TrimRight(string(title), "\x00 ")

	h.CartridgeType = Type(header[0x47])
	// calculated by 32kB x (1 << n)
	h.ROMSize = (32 * 1024) << (header[0x48] & 0x0F)
	h.RAMSize = ramSizes[header[0x49]]
	h.HeaderChecksum = header[0x4D]

	for _, b := range header[0x34:0x4D] {
		h.ComputedChecksum = h.ComputedChecksum - b - 1
	}

	return h, nil
}

// Valid returns true if the header checksum matches.
func (h Header) Valid() bool {
	return h.HeaderChecksum == h.ComputedChecksum
}

func (h Header) String() string {
	hardware := "DMG"
	if h.GameboyColor {
		hardware = "CGB"
	}
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB",
		h.Title, hardware, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
