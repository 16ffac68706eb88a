package emu

import (
	"errors"
	"fmt"

	"lc3vm/insts"
)

// ErrIllegalOpcode is returned when the fetched instruction is RTI or RES,
// neither of which this emulator implements. Use errors.Is to detect it;
// the concrete error also carries the offending word for diagnostics.
var ErrIllegalOpcode = errors.New("emu: illegal opcode")

// ErrIllegalTrap is returned when a TRAP names a vector this emulator has no
// handler for.
var ErrIllegalTrap = errors.New("emu: illegal trap vector")

type illegalOpcodeError struct {
	op  insts.Op
	raw uint16
}

func (e *illegalOpcodeError) Error() string {
	return fmt.Sprintf("%v: %s (0x%04X)", ErrIllegalOpcode, e.op, e.raw)
}

func (e *illegalOpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}

type illegalTrapError struct {
	vector uint8
}

func (e *illegalTrapError) Error() string {
	return fmt.Sprintf("%v: 0x%02X", ErrIllegalTrap, e.vector)
}

func (e *illegalTrapError) Unwrap() error {
	return ErrIllegalTrap
}
