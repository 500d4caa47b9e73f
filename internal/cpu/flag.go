package cpu

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Flags holds the four condition flags.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// Byte packs the flags into the layout of the F register.
// The low nibble is always zero.
func (f Flags) Byte() uint8 {
	var b uint8
	if f.Zero {
		b |= 1 << FlagZero
	}
	if f.Subtract {
		b |= 1 << FlagSubtract
	}
	if f.HalfCarry {
		b |= 1 << FlagHalfCarry
	}
	if f.Carry {
		b |= 1 << FlagCarry
	}
	return b
}

// FlagsFromByte unpacks the flags from the layout of the
// F register. The low nibble is ignored.
func FlagsFromByte(b uint8) Flags {
	return Flags{
		Zero:      b&(1<<FlagZero) != 0,
		Subtract:  b&(1<<FlagSubtract) != 0,
		HalfCarry: b&(1<<FlagHalfCarry) != 0,
		Carry:     b&(1<<FlagCarry) != 0,
	}
}

// setFlags sets all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = Flags{Zero: zero, Subtract: subtract, HalfCarry: halfCarry, Carry: carry}
}

// condition reports whether the given branch condition holds.
func (c *CPU) condition(cond Cond) bool {
	switch cond {
	case CondZ:
		return c.F.Zero
	case CondNZ:
		return !c.F.Zero
	case CondC:
		return c.F.Carry
	case CondNC:
		return !c.F.Carry
	}
	return true
}
