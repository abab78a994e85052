package emu

import (
	"errors"
	"fmt"
)

// Logical register indices accepted by Read and Write.
const (
	RegSP   = 13 // stack pointer
	RegLR   = 14 // link register
	RegPC   = 15 // program counter
	RegCPSR = 16 // current program status register

	// NumRegs is the number of logical registers addressable through
	// Read and Write.
	NumRegs = 17

	// SnapshotLen is the number of words in a register-file snapshot:
	// 16 general registers, CPSR, and 20 words of banked storage.
	SnapshotLen = 37
)

// Physical layout of the banked storage area behind the 17 logical
// slots. FIQ banks r8-r14 plus an SPSR; SVC, ABT, IRQ and UND each
// bank r13-r14 plus an SPSR.
//
//	17-23  r8_fiq .. r14_fiq
//	24     SPSR_fiq
//	25-26  r13_svc, r14_svc
//	27     SPSR_svc
//	28-29  r13_abt, r14_abt
//	30     SPSR_abt
//	31-32  r13_irq, r14_irq
//	33     SPSR_irq
//	34-35  r13_und, r14_und
//	36     SPSR_und
const (
	fiqBankOffset = 9  // r8..r14 -> slots 17..23
	svcBankOffset = 12 // r13..r14 -> slots 25..26
	abtBankOffset = 15 // r13..r14 -> slots 28..29
	irqBankOffset = 18 // r13..r14 -> slots 31..32
	undBankOffset = 21 // r13..r14 -> slots 34..35

	slotSPSRFiq = 24
	slotSPSRSvc = 27
	slotSPSRAbt = 30
	slotSPSRIrq = 33
	slotSPSRUnd = 36
)

// ErrRegisterIndex reports a logical register index outside 0..16.
var ErrRegisterIndex = errors.New("register index out of range")

// ErrSnapshotSize reports a register-file snapshot whose length is not
// exactly SnapshotLen words.
var ErrSnapshotSize = errors.New("bad register snapshot size")

// RegFile represents the ARM7TDMI register file. Callers address it
// through logical indices 0..16 (r0-r12, SP, LR, PC, CPSR); every
// access is redirected to the physical storage banked for the mode
// currently held in the status register, so the same logical index can
// reach different physical registers as the mode changes.
type RegFile struct {
	// words holds every physical register in a single fixed block so
	// the whole file can be exported and restored positionally.
	words [SnapshotLen]uint32
}

// NewRegFile creates a register file in the reset state: all registers
// zero and the processor in User mode.
func NewRegFile() *RegFile {
	r := &RegFile{}
	r.words[RegCPSR] = uint32(ModeUser)
	return r
}

// NewRegFileFromSnapshot creates a register file from a previously
// exported snapshot. The snapshot is copied, never aliased. It must
// hold exactly SnapshotLen words; otherwise nothing is applied and
// ErrSnapshotSize is returned.
func NewRegFileFromSnapshot(words []uint32) (*RegFile, error) {
	if len(words) != SnapshotLen {
		return nil, fmt.Errorf("%w: got %d words, expected %d",
			ErrSnapshotSize, len(words), SnapshotLen)
	}
	r := &RegFile{}
	copy(r.words[:], words)
	return r, nil
}

// Read returns the value of a logical register under the current mode.
func (r *RegFile) Read(index int) (uint32, error) {
	if index < 0 || index >= NumRegs {
		return 0, fmt.Errorf("%w: %d", ErrRegisterIndex, index)
	}
	return r.words[physicalSlot(index, r.mode())], nil
}

// Write sets the value of a logical register under the current mode.
func (r *RegFile) Write(index int, value uint32) error {
	if index < 0 || index >= NumRegs {
		return fmt.Errorf("%w: %d", ErrRegisterIndex, index)
	}
	r.words[physicalSlot(index, r.mode())] = value
	return nil
}

// Snapshot returns a copy of the full physical register block in its
// fixed positional layout, for save states. Mutating the returned
// slice does not affect the register file.
func (r *RegFile) Snapshot() []uint32 {
	words := make([]uint32, SnapshotLen)
	copy(words, r.words[:])
	return words
}

// PSR returns the typed status-register view bound to this file.
func (r *RegFile) PSR() *PSR {
	return &PSR{file: r}
}

// mode returns the live mode from CPSR bits [4:0]. The file's own API
// never stores an unknown mode code, so a failed decode here means the
// raw status word was corrupted by the caller.
func (r *RegFile) mode() Mode {
	m, err := DecodeMode(r.words[RegCPSR])
	if err != nil {
		panic(err)
	}
	return m
}

// physicalSlot resolves a logical register index to the physical slot
// backing it under the given mode. r0-r7, PC and CPSR are never
// banked; r8-r12 are banked only for FIQ; SP and LR are banked for
// every mode except User and System.
func physicalSlot(index int, mode Mode) int {
	switch {
	case index <= 7 || index == RegPC || index == RegCPSR:
		return index
	case index <= 12:
		if mode == ModeFiq {
			return index + fiqBankOffset
		}
		return index
	}

	switch mode {
	case ModeUser, ModeSystem:
		return index
	case ModeFiq:
		return index + fiqBankOffset
	case ModeSvc:
		return index + svcBankOffset
	case ModeAbt:
		return index + abtBankOffset
	case ModeIrq:
		return index + irqBankOffset
	case ModeUnd:
		return index + undBankOffset
	}
	panic(fmt.Sprintf("register banking: unknown mode 0b%05b", uint8(mode)))
}
