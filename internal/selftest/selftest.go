// Package selftest implements the emulator's built-in "--test" mode: a
// runtime check of the concrete scenarios and invariants the instruction
// handlers are expected to satisfy, distinct from the package-level test
// suites run by `go test`.
package selftest

import (
	"bytes"
	"fmt"
	"io"

	"lc3vm/emu"
	"lc3vm/insts"
	"lc3vm/loader"
)

type check struct {
	name string
	run  func() error
}

// Run executes every check and reports pass/fail lines to w. It returns 0 if
// every check passed, 1 otherwise.
func Run(w io.Writer) int {
	checks := []check{
		{"sign extension round-trips through the low N bits", checkSignExtend},
		{"swap16 is its own inverse", checkSwap16},
		{"ADD reg sets R0=3, COND=P", checkADDReg},
		{"ADD imm sets R0=3, COND=P", checkADDImm},
		{"AND reg sets R0=0xF0, COND=P", checkANDReg},
		{"NOT sets R0=0xFFF0, COND=N", checkNOT},
		{"LDI indirection loads 0xBEEF, COND=N", checkLDI},
		{"BR taken on COND=Z advances PC by the offset", checkBRTaken},
		{"TRAP HALT halts and prints the HALT banner", checkTrapHalt},
		{"PC overflow halts cleanly within the remaining address range", checkPCOverflow},
		{"loading an image round-trips into memory", checkImageRoundTrip},
	}

	failed := 0
	for _, c := range checks {
		if err := c.run(); err != nil {
			fmt.Fprintf(w, "FAIL  %s: %v\n", c.name, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "PASS  %s\n", c.name)
	}

	if failed > 0 {
		fmt.Fprintf(w, "%d/%d checks failed\n", failed, len(checks))
		return 1
	}
	fmt.Fprintf(w, "all %d checks passed\n", len(checks))
	return 0
}

func want(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return fmt.Errorf(format, args...)
}

func checkSignExtend() error {
	cases := []struct {
		value uint16
		width uint
		want  uint16
	}{
		{0x0001, 5, 0x0001},   // positive 5-bit passes through
		{0x001F, 5, 0xFFFF},   // -1 in 5 bits
		{0x0100, 9, 0xFF00},   // -256 in 9 bits
		{0x00FF, 9, 0x00FF},   // positive 9-bit passes through
		{0xBEEF, 16, 0xBEEF},  // full width is a no-op
	}
	for _, c := range cases {
		if got := insts.SignExtend(c.value, c.width); got != c.want {
			return fmt.Errorf("SignExtend(0x%X, %d) = 0x%X, want 0x%X", c.value, c.width, got, c.want)
		}
	}
	return nil
}

func checkSwap16() error {
	for _, w := range []uint16{0x0000, 0xFFFF, 0x1234, 0xBEEF, 0x8001} {
		if got := insts.Swap16(insts.Swap16(w)); got != w {
			return fmt.Errorf("Swap16(Swap16(0x%04X)) = 0x%04X", w, got)
		}
	}
	return nil
}

func checkADDReg() error {
	vm := emu.New(emu.WithConsole(silentConsole{}))
	vm.Regs.R[1], vm.Regs.R[2] = 1, 2
	vm.Mem.Write(vm.Regs.PC, 0x1042) // ADD R0, R1, R2
	vm.Step()
	if err := want(vm.Regs.R[0] == 3, "R0 = %d, want 3", vm.Regs.R[0]); err != nil {
		return err
	}
	return want(vm.Regs.COND == emu.FlagP, "COND = %v, want P", vm.Regs.COND)
}

func checkADDImm() error {
	vm := emu.New(emu.WithConsole(silentConsole{}))
	vm.Regs.R[1] = 1
	vm.Mem.Write(vm.Regs.PC, 0x1062) // ADD R0, R1, #2
	vm.Step()
	if err := want(vm.Regs.R[0] == 3, "R0 = %d, want 3", vm.Regs.R[0]); err != nil {
		return err
	}
	return want(vm.Regs.COND == emu.FlagP, "COND = %v, want P", vm.Regs.COND)
}

func checkANDReg() error {
	vm := emu.New(emu.WithConsole(silentConsole{}))
	vm.Regs.R[1], vm.Regs.R[2] = 0xFF, 0xF0
	vm.Mem.Write(vm.Regs.PC, 0x5042) // AND R0, R1, R2
	vm.Step()
	if err := want(vm.Regs.R[0] == 0xF0, "R0 = 0x%X, want 0xF0", vm.Regs.R[0]); err != nil {
		return err
	}
	return want(vm.Regs.COND == emu.FlagP, "COND = %v, want P", vm.Regs.COND)
}

func checkNOT() error {
	vm := emu.New(emu.WithConsole(silentConsole{}))
	vm.Regs.R[1] = 0x000F
	vm.Mem.Write(vm.Regs.PC, 0x903F) // NOT R0, R1
	vm.Step()
	if err := want(vm.Regs.R[0] == 0xFFF0, "R0 = 0x%X, want 0xFFF0", vm.Regs.R[0]); err != nil {
		return err
	}
	return want(vm.Regs.COND == emu.FlagN, "COND = %v, want N", vm.Regs.COND)
}

func checkLDI() error {
	vm := emu.New(emu.WithConsole(silentConsole{}))
	vm.Mem.Write(0x3000, 0xA001) // LDI R0, #1
	vm.Mem.Write(0x3002, 0x4000)
	vm.Mem.Write(0x4000, 0xBEEF)
	vm.Step()
	if err := want(vm.Regs.R[0] == 0xBEEF, "R0 = 0x%X, want 0xBEEF", vm.Regs.R[0]); err != nil {
		return err
	}
	return want(vm.Regs.COND == emu.FlagN, "COND = %v, want N", vm.Regs.COND)
}

func checkBRTaken() error {
	vm := emu.New(emu.WithConsole(silentConsole{}))
	vm.Regs.COND = emu.FlagZ
	vm.Mem.Write(0x3000, 0x0403) // BRz +3
	vm.Step()
	return want(vm.Regs.PC == 0x3004, "PC = 0x%04X, want 0x3004", vm.Regs.PC)
}

func checkTrapHalt() error {
	out := &bytes.Buffer{}
	con := &capturingConsole{out: out}
	vm := emu.New(emu.WithConsole(con))
	vm.Mem.Write(0x3000, 0xF025) // TRAP HALT
	result := vm.Step()
	if err := want(result.Halted, "Halted = false, want true"); err != nil {
		return err
	}
	return want(out.String() == "HALT\n", "stdout = %q, want %q", out.String(), "HALT\n")
}

func checkPCOverflow() error {
	vm := emu.New(emu.WithConsole(silentConsole{}), emu.WithPC(0xFFFF))
	vm.Mem.Write(0xFFFF, 0x1021) // ADD R0, R0, #1, does not touch PC
	result := vm.Step()
	if err := want(result.Err == nil, "Err = %v, want nil", result.Err); err != nil {
		return err
	}
	return want(result.Halted && result.Overflow, "Halted=%v Overflow=%v, want both true", result.Halted, result.Overflow)
}

func checkImageRoundTrip() error {
	raw := []byte{0x30, 0x00, 0x12, 0x34, 0xBE, 0xEF}
	img, err := loader.Load(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	vm := emu.New(emu.WithConsole(silentConsole{}))
	vm.LoadImage(img.Origin, img.Words)
	if err := want(vm.Mem.Read(0x3000) == 0x1234, "mem[0x3000] = 0x%X, want 0x1234", vm.Mem.Read(0x3000)); err != nil {
		return err
	}
	return want(vm.Mem.Read(0x3001) == 0xBEEF, "mem[0x3001] = 0x%X, want 0xBEEF", vm.Mem.Read(0x3001))
}

// silentConsole never has input waiting and discards all output; it stands
// in for the host terminal in checks that don't exercise I/O.
type silentConsole struct{}

func (silentConsole) Poll() (byte, bool)        { return 0, false }
func (silentConsole) ReadByte() (byte, bool)    { return 0, false }
func (silentConsole) WriteByte(byte) error      { return nil }
func (silentConsole) WriteString(string) error  { return nil }

// capturingConsole records everything written to it, for checks that need
// to assert on VM output.
type capturingConsole struct {
	out *bytes.Buffer
}

func (c *capturingConsole) Poll() (byte, bool)     { return 0, false }
func (c *capturingConsole) ReadByte() (byte, bool) { return 0, false }
func (c *capturingConsole) WriteByte(b byte) error {
	return c.out.WriteByte(b)
}
func (c *capturingConsole) WriteString(s string) error {
	_, err := c.out.WriteString(s)
	return err
}
