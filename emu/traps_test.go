package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lc3vm/emu"
)

var _ = Describe("DefaultTrapHandler", func() {
	It("reads one character into R0 via GETC", func() {
		con := newFakeConsole("X")
		vm := emu.New(emu.WithConsole(con))
		halted, err := vm.Traps.Dispatch(vm, emu.TrapGETC)
		Expect(err).NotTo(HaveOccurred())
		Expect(halted).To(BeFalse())
		Expect(vm.Regs.R[0]).To(Equal(uint16('X')))
	})

	It("sets R0 to the EOF sentinel when GETC runs out of input", func() {
		con := newFakeConsole("")
		vm := emu.New(emu.WithConsole(con))
		vm.Traps.Dispatch(vm, emu.TrapGETC)
		Expect(vm.Regs.R[0]).To(Equal(uint16(0xFFFF)))
	})

	It("writes R0's low byte via OUT", func() {
		con := newFakeConsole("")
		vm := emu.New(emu.WithConsole(con))
		vm.Regs.R[0] = uint16('!')
		vm.Traps.Dispatch(vm, emu.TrapOUT)
		Expect(con.Output()).To(Equal("!"))
	})

	It("writes a null-terminated string, one char per word, via PUTS", func() {
		con := newFakeConsole("")
		vm := emu.New(emu.WithConsole(con))
		vm.Mem.LoadWords(0x4000, []uint16{'h', 'i', 0})
		vm.Regs.R[0] = 0x4000
		vm.Traps.Dispatch(vm, emu.TrapPUTS)
		Expect(con.Output()).To(Equal("hi"))
	})

	It("prompts, echoes, and reads one character via IN", func() {
		con := newFakeConsole("Q")
		vm := emu.New(emu.WithConsole(con))
		vm.Traps.Dispatch(vm, emu.TrapIN)
		Expect(vm.Regs.R[0]).To(Equal(uint16('Q')))
		Expect(con.Output()).To(Equal("Enter a character: Q"))
	})

	It("writes a null-terminated string packed two chars per word via PUTSP", func() {
		con := newFakeConsole("")
		vm := emu.New(emu.WithConsole(con))
		// "ab" packed low-then-high, followed by a terminating zero word.
		vm.Mem.LoadWords(0x4000, []uint16{uint16('a') | uint16('b')<<8, 0})
		vm.Regs.R[0] = 0x4000
		vm.Traps.Dispatch(vm, emu.TrapPUTSP)
		Expect(con.Output()).To(Equal("ab"))
	})

	It("stops PUTSP mid-word when the high byte is the terminator", func() {
		con := newFakeConsole("")
		vm := emu.New(emu.WithConsole(con))
		vm.Mem.LoadWords(0x4000, []uint16{uint16('c')})
		vm.Regs.R[0] = 0x4000
		vm.Traps.Dispatch(vm, emu.TrapPUTSP)
		Expect(con.Output()).To(Equal("c"))
	})

	It("halts on TrapHALT and writes the HALT banner", func() {
		con := newFakeConsole("")
		vm := emu.New(emu.WithConsole(con))
		halted, err := vm.Traps.Dispatch(vm, emu.TrapHALT)
		Expect(err).NotTo(HaveOccurred())
		Expect(halted).To(BeTrue())
		Expect(con.Output()).To(Equal("HALT\n"))
	})

	It("reports an unknown vector as ErrIllegalTrap", func() {
		con := newFakeConsole("")
		vm := emu.New(emu.WithConsole(con))
		_, err := vm.Traps.Dispatch(vm, 0x50)
		Expect(err).To(MatchError(emu.ErrIllegalTrap))
	})
})
