package types

const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

// TestBit returns true if bit n of value is set.
func TestBit(value uint8, n uint8) bool {
	return value&(1<<n) != 0
}

// SetBit returns value with bit n set.
func SetBit(value uint8, n uint8) uint8 {
	return value | 1<<n
}

// ResetBit returns value with bit n cleared.
func ResetBit(value uint8, n uint8) uint8 {
	return value &^ (1 << n)
}
