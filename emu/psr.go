package emu

import (
	"errors"
	"fmt"
)

// Bit positions within the status-register word.
const (
	bitThumb      = 5  // T: THUMB instruction state
	bitFIQDisable = 6  // F: FIQ interrupts disabled
	bitIRQDisable = 7  // I: IRQ interrupts disabled
	bitOverflow   = 28 // V
	bitCarry      = 29 // C
	bitZero       = 30 // Z
	bitNegative   = 31 // N

	modeMask = 0x1F // CPSR bits [4:0]
)

// ErrNoSPSR reports an SPSR access in a mode that has no SPSR
// (User and System).
var ErrNoSPSR = errors.New("current mode has no SPSR")

// PSR is a typed view over the status register of a RegFile. It holds
// no state of its own, only a reference; every accessor reads and
// writes the live CPSR word, so the view must not outlive its file.
type PSR struct {
	file *RegFile
}

// Raw returns the full status-register word.
func (p *PSR) Raw() uint32 {
	return p.file.words[RegCPSR]
}

// SetRaw replaces the full status-register word. The low five bits
// must still decode to a valid mode before the register file is used
// again; storing garbage there corrupts the processor state.
func (p *PSR) SetRaw(value uint32) {
	p.file.words[RegCPSR] = value
}

// Mode returns the current processor mode. A status word whose mode
// bits decode to no known mode means the raw word was corrupted, which
// is a programming error in the caller and panics.
func (p *PSR) Mode() Mode {
	m, err := DecodeMode(p.Raw())
	if err != nil {
		panic(err)
	}
	return m
}

// SetMode switches the processor to a new mode. Entering a mode that
// owns an SPSR first saves the full pre-transition status word,
// including the old mode bits, into that mode's SPSR slot so the
// caller's status can be restored on return. User and System own no
// SPSR and save nothing. Bits outside the mode field are untouched.
func (p *PSR) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: 0b%05b", ErrInvalidMode, uint8(m))
	}
	old := p.Raw()
	if slot, ok := spsrSlot(m); ok {
		p.file.words[slot] = old
	}
	p.SetRaw(old&^uint32(modeMask) | uint32(m))
	return nil
}

// SPSR returns the saved status word belonging to the current mode.
func (p *PSR) SPSR() (uint32, error) {
	slot, ok := spsrSlot(p.Mode())
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNoSPSR, p.Mode())
	}
	return p.file.words[slot], nil
}

// SetSPSR replaces the saved status word belonging to the current mode.
func (p *PSR) SetSPSR(value uint32) error {
	slot, ok := spsrSlot(p.Mode())
	if !ok {
		return fmt.Errorf("%w: %v", ErrNoSPSR, p.Mode())
	}
	p.file.words[slot] = value
	return nil
}

// Thumb reports whether the T bit is set (THUMB instruction state).
func (p *PSR) Thumb() bool { return p.bit(bitThumb) }

// SetThumb sets or clears the T bit.
func (p *PSR) SetThumb(set bool) { p.setBit(bitThumb, set) }

// FIQDisabled reports whether the F bit is set (FIQ masked).
func (p *PSR) FIQDisabled() bool { return p.bit(bitFIQDisable) }

// SetFIQDisabled sets or clears the F bit.
func (p *PSR) SetFIQDisabled(set bool) { p.setBit(bitFIQDisable, set) }

// IRQDisabled reports whether the I bit is set (IRQ masked).
func (p *PSR) IRQDisabled() bool { return p.bit(bitIRQDisable) }

// SetIRQDisabled sets or clears the I bit.
func (p *PSR) SetIRQDisabled(set bool) { p.setBit(bitIRQDisable, set) }

// Negative reports the N condition flag.
func (p *PSR) Negative() bool { return p.bit(bitNegative) }

// SetNegative sets or clears the N condition flag.
func (p *PSR) SetNegative(set bool) { p.setBit(bitNegative, set) }

// Zero reports the Z condition flag.
func (p *PSR) Zero() bool { return p.bit(bitZero) }

// SetZero sets or clears the Z condition flag.
func (p *PSR) SetZero(set bool) { p.setBit(bitZero, set) }

// Carry reports the C condition flag.
func (p *PSR) Carry() bool { return p.bit(bitCarry) }

// SetCarry sets or clears the C condition flag.
func (p *PSR) SetCarry(set bool) { p.setBit(bitCarry, set) }

// Overflow reports the V condition flag.
func (p *PSR) Overflow() bool { return p.bit(bitOverflow) }

// SetOverflow sets or clears the V condition flag.
func (p *PSR) SetOverflow(set bool) { p.setBit(bitOverflow, set) }

func (p *PSR) bit(n uint) bool {
	return p.Raw()>>n&1 == 1
}

func (p *PSR) setBit(n uint, set bool) {
	if set {
		p.SetRaw(p.Raw() | 1<<n)
	} else {
		p.SetRaw(p.Raw() &^ (1 << n))
	}
}

// spsrSlot returns the physical slot of the SPSR owned by a mode.
// User and System own none.
func spsrSlot(m Mode) (int, bool) {
	switch m {
	case ModeFiq:
		return slotSPSRFiq, true
	case ModeSvc:
		return slotSPSRSvc, true
	case ModeAbt:
		return slotSPSRAbt, true
	case ModeIrq:
		return slotSPSRIrq, true
	case ModeUnd:
		return slotSPSRUnd, true
	}
	return 0, false
}
