// Package emu implements the LC-3 fetch-decode-execute core: registers,
// memory, the memory-mapped keyboard, and the six built-in trap routines.
package emu

import (
	"fmt"
	"io"
	"os"

	"lc3vm/insts"
)

// StepResult reports the outcome of a single Step.
type StepResult struct {
	// Halted is true if execution should stop cleanly (TRAP HALT, or the PC
	// wrapping past 0xFFFF with no jump in flight).
	Halted bool
	// Overflow is true when Halted was caused by PC wraparound rather than an
	// explicit HALT.
	Overflow bool
	// Err is set on an illegal opcode, an illegal trap vector, or when the
	// WithMaxInstructions limit has been reached.
	Err error
}

// VM is one LC-3 machine: register file, memory, attached console, and the
// trap dispatcher.
type VM struct {
	Regs  *RegFile
	Mem   *Memory
	Con   Console
	Traps TrapHandler

	stdout io.Writer
	stderr io.Writer

	pcModified       bool
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// Option is a functional option for configuring a VM.
type Option func(*VM)

// WithConsole attaches the keyboard/display device backing KBSR/KBDR and the
// character trap routines. The default is a StdConsole reading os.Stdin and
// writing to the WithStdout writer (os.Stdout unless overridden).
func WithConsole(c Console) Option {
	return func(v *VM) {
		v.Con = c
	}
}

// WithTrapHandler overrides the trap dispatcher. The default is
// DefaultTrapHandler driven by the VM's console.
func WithTrapHandler(h TrapHandler) Option {
	return func(v *VM) {
		v.Traps = h
	}
}

// WithPC sets the initial program counter, overriding the conventional
// 0x3000 user origin.
func WithPC(pc uint16) Option {
	return func(v *VM) {
		v.Regs.PC = pc
	}
}

// WithStdout sets the writer the default StdConsole sends program output to.
// It has no effect when WithConsole supplies the console.
func WithStdout(w io.Writer) Option {
	return func(v *VM) {
		v.stdout = w
	}
}

// WithStderr sets a custom diagnostic stderr writer.
func WithStderr(w io.Writer) Option {
	return func(v *VM) {
		v.stderr = w
	}
}

// WithMaxInstructions bounds execution, chiefly for tests that must not hang
// on a runaway program. 0 (the default) means no limit.
func WithMaxInstructions(max uint64) Option {
	return func(v *VM) {
		v.maxInstructions = max
	}
}

// New builds a VM in its deterministic boot state and applies opts.
func New(opts ...Option) *VM {
	regs := NewRegFile()
	v := &VM{
		Regs:   regs,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.Con == nil {
		v.Con = NewStdConsole(os.Stdin, v.stdout)
	}
	if v.Mem == nil {
		v.Mem = NewMemory(v.Con)
	} else {
		v.Mem.SetConsole(v.Con)
	}
	if v.Traps == nil {
		v.Traps = NewDefaultTrapHandler(v.Con)
	}

	return v
}

// LoadImage places an already-read object image into memory at its origin.
// Loading a second image after the first overwrites any overlapping words;
// later loads win.
func (v *VM) LoadImage(origin uint16, words []uint16) {
	v.Mem.LoadWords(origin, words)
}

// InstructionCount returns the number of instructions Step has executed.
func (v *VM) InstructionCount() uint64 {
	return v.instructionCount
}

// Step fetches, decodes, and executes one instruction.
func (v *VM) Step() StepResult {
	if v.maxInstructions > 0 && v.instructionCount >= v.maxInstructions {
		return StepResult{Err: fmt.Errorf("emu: instruction limit of %d reached", v.maxInstructions)}
	}

	pcBefore := v.Regs.PC
	word := v.Mem.Read(pcBefore)
	v.Regs.PC = pcBefore + 1 // uint16 wraparound is the address-space wrap

	in := insts.Decode(word)
	v.pcModified = false

	halted, err := v.execute(in)
	v.instructionCount++

	if err != nil {
		return StepResult{Err: err}
	}
	if halted {
		return StepResult{Halted: true}
	}
	// Overflow: the PC we just advanced past was the last address (0xFFFF),
	// and nothing in this instruction redirected control flow, so the next
	// fetch would silently wrap back to address 0.
	if !v.pcModified && pcBefore == 0xFFFF {
		return StepResult{Halted: true, Overflow: true}
	}
	return StepResult{}
}

// Run steps the VM until it halts or errors, reporting diagnostics to the
// configured stderr.
func (v *VM) Run() error {
	for {
		result := v.Step()
		if result.Err != nil {
			fmt.Fprintf(v.stderr, "lc3: %v at PC=0x%04X\n", result.Err, v.Regs.PC-1)
			return result.Err
		}
		if result.Halted {
			if result.Overflow {
				fmt.Fprintln(v.stderr, "Program counter overflow!")
			}
			return nil
		}
	}
}
