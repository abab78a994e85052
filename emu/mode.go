// Package emu provides the processor-state core of an ARM7TDMI
// emulator: the banked register file and the program status register.
package emu

import (
	"errors"
	"fmt"
)

// Mode represents an ARM7TDMI processor mode. The value of each
// constant is the 5-bit mode code held in CPSR bits [4:0].
type Mode uint8

// ARM7TDMI processor modes.
const (
	ModeUser   Mode = 0b10000 // User: normal, unprivileged execution
	ModeFiq    Mode = 0b10001 // FIQ: fast interrupt handling
	ModeIrq    Mode = 0b10010 // IRQ: normal interrupt handling
	ModeSvc    Mode = 0b10011 // Supervisor: software interrupts, reset
	ModeAbt    Mode = 0b10111 // Abort: memory access violations
	ModeUnd    Mode = 0b11011 // Undefined: undefined instruction traps
	ModeSystem Mode = 0b11111 // System: privileged, shares User registers
)

// ErrInvalidMode reports a 5-bit pattern that is not one of the seven
// ARM7TDMI mode codes.
var ErrInvalidMode = errors.New("invalid processor mode")

// DecodeMode extracts and validates the mode code held in the low five
// bits of a status-register word.
func DecodeMode(bits uint32) (Mode, error) {
	m := Mode(bits & modeMask)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: 0b%05b", ErrInvalidMode, uint8(m))
	}
	return m, nil
}

// Valid reports whether m is one of the seven ARM7TDMI modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeUser, ModeFiq, ModeIrq, ModeSvc, ModeAbt, ModeUnd, ModeSystem:
		return true
	}
	return false
}

// Privileged reports whether m may access privileged state. Every mode
// except User is privileged.
func (m Mode) Privileged() bool {
	return m != ModeUser
}

// String returns the conventional name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeUser:
		return "User"
	case ModeFiq:
		return "FIQ"
	case ModeIrq:
		return "IRQ"
	case ModeSvc:
		return "Supervisor"
	case ModeAbt:
		return "Abort"
	case ModeUnd:
		return "Undefined"
	case ModeSystem:
		return "System"
	}
	return fmt.Sprintf("Mode(0b%05b)", uint8(m))
}
