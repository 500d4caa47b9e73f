package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// SB is the address of the SB hardware register. The SB
	// hardware register holds the byte being transferred over
	// the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. The SC
	// hardware register is used to control the serial port. A
	// value of SerialTransferRequest starts a transfer of SB.
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. The DIV
	// hardware register is incremented every 64 M-cycles. Writing
	// any value to it resets it to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. The TIMA
	// hardware register is incremented at a rate specified by the TAC
	// hardware register. When TIMA overflows, it is reset to the value
	// specified by the TMA hardware register, and a timer interrupt is
	// requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register. The TAC
	// hardware register is used to control the timer.
	//
	//  Bit 2: Timer Enable
	//  Bits 1-0: Input Clock Select
	//    00: every 256 M-cycles
	//    01: every 4 M-cycles
	//    10: every 16 M-cycles
	//    11: every 64 M-cycles
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// IE is the address of the IE hardware register. The IE
	// hardware register uses the same bit layout as IF, and
	// masks which requested interrupts may be serviced.
	IE HardwareAddress = 0xFFFF
)

// SerialTransferRequest is the value written to SC to
// signal that SB holds a byte ready to be sent.
const SerialTransferRequest uint8 = 0x81
