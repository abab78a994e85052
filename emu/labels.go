package emu

import (
	"fmt"
	"strings"
)

// RegisterName returns the conventional name of the physical register
// that a logical index resolves to under the given mode, e.g. "r3",
// "r8_fiq", "SP_svc", "PC". It follows the same banking rules as the
// register file itself and is purely a diagnostic aid.
func RegisterName(index int, mode Mode) string {
	switch {
	case index < 0 || index >= NumRegs:
		return fmt.Sprintf("r%d?", index)
	case index <= 7:
		return fmt.Sprintf("r%d", index)
	case index <= 12:
		if mode == ModeFiq {
			return fmt.Sprintf("r%d_fiq", index)
		}
		return fmt.Sprintf("r%d", index)
	case index == RegPC:
		return "PC"
	case index == RegCPSR:
		return "CPSR"
	}

	base := "SP"
	if index == RegLR {
		base = "LR"
	}
	switch mode {
	case ModeFiq:
		return base + "_fiq"
	case ModeSvc:
		return base + "_svc"
	case ModeAbt:
		return base + "_abt"
	case ModeIrq:
		return base + "_irq"
	case ModeUnd:
		return base + "_und"
	}
	return base // User and System share the unbanked SP and LR
}

// String formats the current-mode view of the register file for
// debugging: four registers per row, then the status word with mode
// and flags spelled out.
func (r *RegFile) String() string {
	mode := r.mode()
	psr := r.PSR()

	var b strings.Builder
	for i := 0; i < NumRegs-1; i++ {
		fmt.Fprintf(&b, "%-7s=%08X", RegisterName(i, mode),
			r.words[physicalSlot(i, mode)])
		if i%4 == 3 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	fmt.Fprintf(&b, "CPSR   =%08X [%v", psr.Raw(), mode)
	if psr.Thumb() {
		b.WriteString(" THUMB")
	} else {
		b.WriteString(" ARM")
	}
	fmt.Fprintf(&b, " N:%t Z:%t C:%t V:%t I:%t F:%t]",
		psr.Negative(), psr.Zero(), psr.Carry(), psr.Overflow(),
		psr.IRQDisabled(), psr.FIQDisabled())
	return b.String()
}
