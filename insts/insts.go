// Package insts provides THUMB instruction-format definitions and
// classification.
package insts

// Format represents one of the 19 THUMB instruction-encoding formats.
type Format uint8

// THUMB instruction formats.
const (
	FormatUnknown Format = iota
	FormatMoveShiftedRegister             // LSL/LSR/ASR by immediate
	FormatAddSubtract                     // ADD/SUB register or 3-bit immediate
	FormatMoveCompareAddSubtractImmediate // MOV/CMP/ADD/SUB with 8-bit immediate
	FormatALUOperations                   // register-to-register ALU operations
	FormatHiRegisterBranchExchange        // hi-register ADD/CMP/MOV and BX
	FormatPCRelativeLoad                  // LDR from the literal pool
	FormatLoadStoreRegisterOffset         // LDR/STR with register offset
	FormatLoadStoreSignExtended           // LDRH/STRH/LDSB/LDSH
	FormatLoadStoreImmediateOffset        // LDR/STR with 5-bit offset
	FormatLoadStoreHalfword               // LDRH/STRH with immediate offset
	FormatSPRelativeLoadStore             // LDR/STR relative to SP
	FormatLoadAddress                     // ADD Rd, PC/SP, #imm
	FormatAddOffsetToStackPointer         // ADD SP, #imm
	FormatPushPopRegisters                // PUSH/POP register lists
	FormatMultipleLoadStore               // LDMIA/STMIA
	FormatConditionalBranch               // Bcc with 8-bit offset
	FormatSoftwareInterrupt               // SWI
	FormatUnconditionalBranch             // B with 11-bit offset
	FormatLongBranchWithLink              // BL, split across two halfwords
)

// formatDesc pairs a format with its required-ones mask and name.
type formatDesc struct {
	format Format
	mask   uint16
	name   string
}

// matchOrder lists every format from most to least constrained
// encoding. Each mask names the bits that must be 1 for a word to
// belong to the format; several masks are nested (every software
// interrupt satisfies the conditional-branch mask, every BL half
// satisfies both branch masks), so a word has to be tested against
// the more constrained mask first. The final, unconstrained entry
// makes classification total.
var matchOrder = [...]formatDesc{
	{FormatLongBranchWithLink, 0xF000, "long branch with link"},
	{FormatUnconditionalBranch, 0xE000, "unconditional branch"},
	{FormatSoftwareInterrupt, 0xDF00, "software interrupt"},
	{FormatConditionalBranch, 0xD000, "conditional branch"},
	{FormatMultipleLoadStore, 0xC000, "multiple load/store"},
	{FormatPushPopRegisters, 0xB400, "push/pop registers"},
	{FormatAddOffsetToStackPointer, 0xB000, "add offset to stack pointer"},
	{FormatLoadAddress, 0xA000, "load address"},
	{FormatSPRelativeLoadStore, 0x9000, "SP-relative load/store"},
	{FormatLoadStoreHalfword, 0x8000, "load/store halfword"},
	{FormatLoadStoreImmediateOffset, 0x6000, "load/store with immediate offset"},
	{FormatLoadStoreSignExtended, 0x5200, "load/store sign-extended byte/halfword"},
	{FormatLoadStoreRegisterOffset, 0x5000, "load/store with register offset"},
	{FormatPCRelativeLoad, 0x4800, "PC-relative load"},
	{FormatHiRegisterBranchExchange, 0x4400, "hi register operations/branch exchange"},
	{FormatALUOperations, 0x4000, "ALU operations"},
	{FormatMoveCompareAddSubtractImmediate, 0x2000, "move/compare/add/subtract immediate"},
	{FormatAddSubtract, 0x1800, "add/subtract"},
	{FormatMoveShiftedRegister, 0x0000, "move shifted register"},
}

// Mask returns the required-ones mask of the format, or 0 for
// FormatUnknown.
func (f Format) Mask() uint16 {
	for _, d := range matchOrder {
		if d.format == f {
			return d.mask
		}
	}
	return 0
}

// String returns the human-readable name of the format.
func (f Format) String() string {
	for _, d := range matchOrder {
		if d.format == f {
			return d.name
		}
	}
	return "unknown"
}
