package cheats

import (
	"fmt"
	"strconv"
)

// A GameSharkCode consists of eight-digit hex numbers, formatted
// as ABCDEFGH. Where AB represents the external RAM bank, CD is
// the new data, and GHEF is the memory address.
type GameSharkCode struct {
	ExternalRAMBank uint8
	Address         uint16
	NewData         uint8

	Name string
}

func parseGameSharkCode(code string) (GameSharkCode, error) {
	var c GameSharkCode
	if len(code) != 8 {
		return c, fmt.Errorf("invalid code length: %v", len(code))
	}

	ab, err := strconv.ParseUint(code[0:2], 16, 8)
	if err != nil {
		return c, err
	}
	c.ExternalRAMBank = uint8(ab)

	cd, err := strconv.ParseUint(code[2:4], 16, 8)
	if err != nil {
		return c, err
	}
	c.NewData = uint8(cd)

	// reorganize GHEF to EFGH
	efgh, err := strconv.ParseUint(code[6:8]+code[4:6], 16, 16)
	if err != nil {
		return c, err
	}
	c.Address = uint16(efgh)

	return c, nil
}
