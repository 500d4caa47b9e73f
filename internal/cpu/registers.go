package cpu

import "fmt"

// Reg selects one of the 8-bit general purpose registers.
type Reg uint8

const (
	RegA Reg = iota
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
)

func (r Reg) String() string {
	if int(r) < len(regNames) {
		return regNames[r]
	}
	return fmt.Sprintf("Reg(%d)", uint8(r))
}

var regNames = [...]string{"A", "B", "C", "D", "E", "H", "L"}

// Pair selects one of the 16-bit register pairs.
type Pair uint8

const (
	PairAF Pair = iota
	PairBC
	PairDE
	PairHL
)

func (p Pair) String() string {
	if int(p) < len(pairNames) {
		return pairNames[p]
	}
	return fmt.Sprintf("Pair(%d)", uint8(p))
}

var pairNames = [...]string{"AF", "BC", "DE", "HL"}

// Registers holds the 8-bit registers. B/C, D/E, H/L and A/F
// are read and written as 16-bit pairs through the pair
// accessors.
type Registers struct {
	A uint8
	B uint8
	C uint8
	D uint8
	E uint8
	H uint8
	L uint8
	// F holds the flags. Its byte form is only produced
	// when AF is read as a pair.
	F Flags
}

// BC returns the B and C registers as a 16-bit value.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// SetBC sets the B and C registers from a 16-bit value.
func (r *Registers) SetBC(v uint16) { r.B, r.C = uint8(v>>8), uint8(v) }

// DE returns the D and E registers as a 16-bit value.
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// SetDE sets the D and E registers from a 16-bit value.
func (r *Registers) SetDE(v uint16) { r.D, r.E = uint8(v>>8), uint8(v) }

// HL returns the H and L registers as a 16-bit value.
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetHL sets the H and L registers from a 16-bit value.
func (r *Registers) SetHL(v uint16) { r.H, r.L = uint8(v>>8), uint8(v) }

// AF returns the A register and the packed flags as a
// 16-bit value. The low nibble is always zero.
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F.Byte()) }

// SetAF sets the A register and the flags from a 16-bit
// value, discarding the low nibble.
func (r *Registers) SetAF(v uint16) { r.A, r.F = uint8(v>>8), FlagsFromByte(uint8(v)) }

// Pair returns the value of the given register pair.
func (r *Registers) Pair(p Pair) uint16 {
	switch p {
	case PairAF:
		return r.AF()
	case PairBC:
		return r.BC()
	case PairDE:
		return r.DE()
	case PairHL:
		return r.HL()
	}
	panic(fmt.Sprintf("cpu: invalid register pair %d", p))
}

// SetPair sets the value of the given register pair.
func (r *Registers) SetPair(p Pair, v uint16) {
	switch p {
	case PairAF:
		r.SetAF(v)
	case PairBC:
		r.SetBC(v)
	case PairDE:
		r.SetDE(v)
	case PairHL:
		r.SetHL(v)
	default:
		panic(fmt.Sprintf("cpu: invalid register pair %d", p))
	}
}

// register returns a pointer to the given 8-bit register.
func (r *Registers) register(reg Reg) *uint8 {
	switch reg {
	case RegA:
		return &r.A
	case RegB:
		return &r.B
	case RegC:
		return &r.C
	case RegD:
		return &r.D
	case RegE:
		return &r.E
	case RegH:
		return &r.H
	case RegL:
		return &r.L
	}
	panic(fmt.Sprintf("cpu: invalid register %d", reg))
}
