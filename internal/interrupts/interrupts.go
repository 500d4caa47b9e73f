package interrupts

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register when certain
	// conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when a joypad button is pressed.
	JoypadFlag = types.Bit4
)

// DispatchCycles is the number of M-cycles taken to
// dispatch an interrupt.
const DispatchCycles = 5

// Kind is an interrupt source. Kinds are ordered by
// priority, VBlank being the highest.
type Kind uint8

const (
	VBlank Kind = iota
	LCDSTAT
	Timer
	Serial
	Joypad
	None
)

var kindNames = [...]string{"VBlank", "LCDSTAT", "Timer", "Serial", "Joypad", "None"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Mask returns the bit of the kind in types.IF and types.IE,
// or 0 for None.
func (k Kind) Mask() uint8 {
	if k >= None {
		return 0
	}
	return 1 << k
}

// Vector returns the address the kind is dispatched to.
//
//	VBlank  - 0x0040
//	LCDSTAT - 0x0048
//	Timer   - 0x0050
//	Serial  - 0x0058
//	Joypad  - 0x0060
func (k Kind) Vector() uint16 {
	if k >= None {
		panic(fmt.Sprintf("interrupts: no vector for %s", k))
	}
	return 0x0040 + uint16(k)*8
}

// Resolve returns the highest priority kind set in pending,
// which is usually types.IF & types.IE.
func Resolve(pending uint8) Kind {
	for k := VBlank; k < None; k++ {
		if pending&k.Mask() != 0 {
			return k
		}
	}
	return None
}

// Processor is the part of the CPU the Service dispatches
// interrupts through.
type Processor interface {
	// InterruptsEnabled returns the interrupt master enable.
	InterruptsEnabled() bool
	// DisableInterrupts clears the interrupt master enable.
	DisableInterrupts()
	// Call pushes PC and jumps to the given address.
	Call(address uint16)
}

// Service is the interrupt service, used to request
// interrupts and to dispatch them to the CPU.
//
// When an interrupt is requested, the corresponding bit
// in types.IF is set. When an interrupt is enabled, the
// corresponding bit in types.IE is set. When an interrupt
// is requested and enabled, and the IME is set, the CPU
// will call the interrupt vector, clearing the IME and
// the corresponding bit in types.IF.
//
// The IME is set by the EI and RETI instructions, and
// cleared by DI and by dispatching an interrupt.
type Service struct {
	mem mmu.Bus
	cpu Processor
}

// NewService returns a new Service.
func NewService(mem mmu.Bus, cpu Processor) *Service {
	return &Service{mem: mem, cpu: cpu}
}

// Request requests the given interrupt, by setting the
// corresponding bit in types.IF.
func (s *Service) Request(k Kind) {
	s.mem.Write(types.IF, s.mem.Read(types.IF)|k.Mask())
}

// Pending returns the highest priority interrupt that is
// both requested and enabled, regardless of the IME.
func (s *Service) Pending() Kind {
	return Resolve(s.mem.Read(types.IF) & s.mem.Read(types.IE))
}

// Dispatch services the highest priority pending interrupt
// if the IME is set, returning the number of M-cycles it
// took, or 0 if nothing was dispatched.
func (s *Service) Dispatch() int {
	if !s.cpu.InterruptsEnabled() {
		return 0
	}
	k := s.Pending()
	if k == None {
		return 0
	}

	s.cpu.DisableInterrupts()
	s.cpu.Call(k.Vector())
	s.mem.Write(types.IF, s.mem.Read(types.IF)&^k.Mask())
	return DispatchCycles
}
