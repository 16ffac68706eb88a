package insts

// Op identifies one of the sixteen LC-3 opcodes, selected by bits 15..12 of
// the instruction word.
type Op uint8

// LC-3 opcodes, in their bit-pattern order (0000 through 1111).
const (
	OpBR   Op = iota // 0000 conditional branch
	OpADD            // 0001 add
	OpLD             // 0010 load (PC-relative)
	OpST             // 0011 store (PC-relative)
	OpJSR            // 0100 jump to subroutine / JSRR
	OpAND            // 0101 bitwise and
	OpLDR            // 0110 load (base + offset)
	OpSTR            // 0111 store (base + offset)
	OpRTI            // 1000 return from interrupt (unimplemented, illegal here)
	OpNOT            // 1001 bitwise not
	OpLDI            // 1010 load indirect
	OpSTI            // 1011 store indirect
	OpJMP            // 1100 jump / RET
	OpRES            // 1101 reserved (illegal)
	OpLEA            // 1110 load effective address
	OpTRAP           // 1111 system trap
)

// String names an opcode for diagnostics.
func (op Op) String() string {
	names := [...]string{
		"BR", "ADD", "LD", "ST", "JSR", "AND", "LDR", "STR",
		"RTI", "NOT", "LDI", "STI", "JMP", "RES", "LEA", "TRAP",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return "???"
}

// Instruction is a single decoded LC-3 word. Every field is populated on
// every decode regardless of opcode; handlers read only the fields their
// opcode's format defines. This keeps decoding a single, branch-free pass
// over the bit layout described in the ISA table rather than one decode path
// per opcode.
type Instruction struct {
	Raw uint16
	Op  Op

	// Reg1 is bits 11..9: DR for most formats, SR for the store family, and
	// the n/z/p condition bits for BR (the encodings share the position).
	Reg1 uint8
	// Reg2 is bits 8..6: SR1 for ADD/AND, BaseR for LDR/STR/JMP/JSRR.
	Reg2 uint8
	// Reg3 is bits 2..0: SR2 for the register form of ADD/AND.
	Reg3 uint8

	// ImmMode is bit 5, selecting the immediate form of ADD/AND.
	ImmMode bool
	// Imm5 is the sign-extended 5-bit immediate for ADD/AND.
	Imm5 uint16

	// Offset6 is the sign-extended 6-bit offset for LDR/STR.
	Offset6 uint16
	// Offset9 is the sign-extended 9-bit PC-relative offset for
	// BR/LD/ST/LDI/STI/LEA.
	Offset9 uint16
	// Offset11 is the sign-extended 11-bit PC-relative offset for the
	// immediate form of JSR.
	Offset11 uint16

	// JSRImmediate is bit 11 of a JSR/JSRR word: set selects the PC-relative
	// form, clear selects the BaseR (JSRR) form.
	JSRImmediate bool

	// TrapVector is bits 7..0, the trap service routine selector.
	TrapVector uint8
}

// Decode decodes a single 16-bit instruction word.
func Decode(word uint16) Instruction {
	return Instruction{
		Raw:          word,
		Op:           Op(word >> 12),
		Reg1:         uint8((word >> 9) & 0x7),
		Reg2:         uint8((word >> 6) & 0x7),
		Reg3:         uint8(word & 0x7),
		ImmMode:      (word>>5)&0x1 != 0,
		Imm5:         SignExtend(word&0x1F, 5),
		Offset6:      SignExtend(word&0x3F, 6),
		Offset9:      SignExtend(word&0x1FF, 9),
		Offset11:     SignExtend(word&0x7FF, 11),
		JSRImmediate: (word>>11)&0x1 != 0,
		TrapVector:   uint8(word & 0xFF),
	}
}
