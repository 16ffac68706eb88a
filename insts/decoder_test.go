package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lc3vm/insts"
)

var _ = Describe("Decode", func() {
	It("decodes ADD in register mode", func() {
		// ADD R0, R1, R2 -> 0001 000 001 0 00 010
		in := insts.Decode(0x1042)
		Expect(in.Op).To(Equal(insts.OpADD))
		Expect(in.Reg1).To(Equal(uint8(0)))
		Expect(in.Reg2).To(Equal(uint8(1)))
		Expect(in.ImmMode).To(BeFalse())
		Expect(in.Reg3).To(Equal(uint8(2)))
	})

	It("decodes ADD in immediate mode with a negative immediate", func() {
		// ADD R0, R1, #-1 -> 0001 000 001 1 11111
		in := insts.Decode(0x107F)
		Expect(in.Op).To(Equal(insts.OpADD))
		Expect(in.ImmMode).To(BeTrue())
		Expect(in.Imm5).To(Equal(uint16(0xFFFF)))
	})

	It("decodes BR with the n/z/p bits sharing the Reg1 field", func() {
		// BRz #3 -> 0000 010 000000011
		in := insts.Decode(0x0403)
		Expect(in.Op).To(Equal(insts.OpBR))
		Expect(in.Reg1).To(Equal(uint8(0b010)))
		Expect(in.Offset9).To(Equal(uint16(3)))
	})

	It("decodes LDI with a positive 9-bit offset", func() {
		in := insts.Decode(0xA001) // LDI R0, #1
		Expect(in.Op).To(Equal(insts.OpLDI))
		Expect(in.Reg1).To(Equal(uint8(0)))
		Expect(in.Offset9).To(Equal(uint16(1)))
	})

	It("decodes the immediate form of JSR with its 11-bit offset", func() {
		in := insts.Decode(0x4800) // JSR #0
		Expect(in.Op).To(Equal(insts.OpJSR))
		Expect(in.JSRImmediate).To(BeTrue())
		Expect(in.Offset11).To(Equal(uint16(0)))
	})

	It("decodes the register form of JSR (JSRR)", func() {
		in := insts.Decode(0x41C0) // JSRR R7
		Expect(in.Op).To(Equal(insts.OpJSR))
		Expect(in.JSRImmediate).To(BeFalse())
		Expect(in.Reg2).To(Equal(uint8(7)))
	})

	It("decodes TRAP's low 8 bits as the vector", func() {
		in := insts.Decode(0xF025) // TRAP HALT
		Expect(in.Op).To(Equal(insts.OpTRAP))
		Expect(in.TrapVector).To(Equal(uint8(0x25)))
	})

	It("decodes LDR/STR's 6-bit offset", func() {
		in := insts.Decode(0x6043) // LDR R0, R1, #3
		Expect(in.Op).To(Equal(insts.OpLDR))
		Expect(in.Reg2).To(Equal(uint8(1)))
		Expect(in.Offset6).To(Equal(uint16(3)))
	})

	It("names opcodes for diagnostics", func() {
		Expect(insts.OpADD.String()).To(Equal("ADD"))
		Expect(insts.OpTRAP.String()).To(Equal("TRAP"))
	})
})
