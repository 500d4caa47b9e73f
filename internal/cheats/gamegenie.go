package cheats

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// A GameGenieCode consists of nine-digit hex numbers, formatted as
// ABC-DEF-GHI. AB is the new data, FCDE is the memory address XORed
// by 0xF000, GI is the old data XORed by 0xBA and rotated left by 2,
// and H is unknown (possibly a checksum). The six-digit form ABC-DEF
// patches the address unconditionally.
type GameGenieCode struct {
	NewData uint8
	Address uint16
	OldData uint8
	Compare bool

	Name string
}

func parseGameGenieCode(code string) (GameGenieCode, error) {
	var c GameGenieCode
	if len(code) != 7 && len(code) != 11 {
		return c, fmt.Errorf("invalid code length: %v", len(code))
	}

	// remove the hyphens, and interpret the code
	code = strings.ReplaceAll(code, "-", "")
	if len(code) != 6 && len(code) != 9 {
		return c, fmt.Errorf("invalid code: %s", code)
	}

	ab, err := strconv.ParseUint(code[0:2], 16, 8)
	if err != nil {
		return c, err
	}
	c.NewData = uint8(ab)

	// reorganize CDEF to FCDE
	fcde, err := strconv.ParseUint(code[5:6]+code[2:5], 16, 16)
	if err != nil {
		return c, err
	}
	c.Address = uint16(fcde) ^ 0xF000

	if len(code) == 9 {
		gi, err := strconv.ParseUint(code[6:7]+code[8:9], 16, 8)
		if err != nil {
			return c, err
		}
		c.OldData = bits.RotateLeft8(uint8(gi), -2) ^ 0xBA
		c.Compare = true
	}

	return c, nil
}
