package cpu

// add returns a + b, plus the carry flag if shouldCarry is set.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(a, b uint8, shouldCarry bool) uint8 {
	var carry uint16
	if shouldCarry && c.F.Carry {
		carry = 1
	}
	sum := uint16(a) + uint16(b) + carry
	half := uint16(a&0x0F) + uint16(b&0x0F) + carry
	result := uint8(sum)

	c.setFlags(result == 0, false, half > 0x0F, sum > 0xFF)
	return result
}

// sub returns a - b, minus the carry flag if shouldCarry is set.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(a, b uint8, shouldCarry bool) uint8 {
	var carry int16
	if shouldCarry && c.F.Carry {
		carry = 1
	}
	diff := int16(a) - int16(b) - carry
	half := int16(a&0x0F) - int16(b&0x0F) - carry
	result := uint8(diff)

	c.setFlags(result == 0, true, half < 0, diff < 0)
	return result
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// increment returns n + 1, leaving the carry flag untouched.
func (c *CPU) increment(n uint8) uint8 {
	carry := c.F.Carry
	n = c.add(n, 1, false)
	c.F.Carry = carry
	return n
}

// decrement returns n - 1, leaving the carry flag untouched.
func (c *CPU) decrement(n uint8) uint8 {
	carry := c.F.Carry
	n = c.sub(n, 1, false)
	c.F.Carry = carry
	return n
}

// addHL adds the given value to HL as two chained 8-bit
// additions. The zero flag is left untouched.
//
//	ADD HL, n
//	n = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	zero := c.F.Zero
	c.L = c.add(c.L, uint8(n), false)
	c.H = c.add(c.H, uint8(n>>8), true)
	c.F.Zero = zero
}

// addSPSigned returns SP plus the signed offset e. The carry
// flags come from adding e to the low byte of SP.
//
//	ADD SP, e
//	LD HL, SP + e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(e uint8) uint16 {
	c.add(uint8(c.SP), e, false)
	c.F.Zero = false
	c.F.Subtract = false
	return uint16(int32(c.SP) + int32(int8(e)))
}

// daa adjusts the A register so that it holds the binary coded
// decimal result of the previous addition or subtraction.
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) daa() {
	if !c.F.Subtract {
		if c.F.Carry || c.A > 0x99 {
			c.A += 0x60
			c.F.Carry = true
		}
		if c.F.HalfCarry || c.A&0x0F > 0x09 {
			c.A += 0x06
		}
	} else {
		if c.F.Carry {
			c.A -= 0x60
		}
		if c.F.HalfCarry {
			c.A -= 0x06
		}
	}
	c.F.Zero = c.A == 0
	c.F.HalfCarry = false
}
