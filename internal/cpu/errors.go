package cpu

import (
	"errors"
	"fmt"
)

// ErrSentinel is returned by Step when Sentinels is enabled and
// PC has run into the top of the address space or SP has
// wrapped to zero.
var ErrSentinel = errors.New("cpu: sentinel reached")

// UndefinedOpcodeError is returned by Step when it fetches an
// opcode that does not decode to an instruction.
type UndefinedOpcodeError struct {
	Opcode   uint8
	Prefixed bool
	PC       uint16 // address of the opcode (or its prefix)
}

func (e *UndefinedOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("cpu: undefined opcode 0x%02X 0x%02X at 0x%04X", Prefix, e.Opcode, e.PC)
	}
	return fmt.Sprintf("cpu: undefined opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}
