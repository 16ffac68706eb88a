package emu

import "lc3vm/insts"

// execute dispatches a decoded instruction and runs it against v. It returns
// halted=true only for TRAP HALT; every other opcode returns normally or
// with an error.
func (v *VM) execute(in insts.Instruction) (halted bool, err error) {
	switch in.Op {
	case insts.OpBR:
		v.execBR(in)
	case insts.OpADD:
		v.execADD(in)
	case insts.OpLD:
		v.execLD(in)
	case insts.OpST:
		v.execST(in)
	case insts.OpJSR:
		v.execJSR(in)
	case insts.OpAND:
		v.execAND(in)
	case insts.OpLDR:
		v.execLDR(in)
	case insts.OpSTR:
		v.execSTR(in)
	case insts.OpNOT:
		v.execNOT(in)
	case insts.OpLDI:
		v.execLDI(in)
	case insts.OpSTI:
		v.execSTI(in)
	case insts.OpJMP:
		v.execJMP(in)
	case insts.OpLEA:
		v.execLEA(in)
	case insts.OpTRAP:
		return v.execTRAP(in)
	case insts.OpRTI, insts.OpRES:
		return false, errIllegalOp(in)
	default:
		return false, errIllegalOp(in)
	}
	return false, nil
}

func errIllegalOp(in insts.Instruction) error {
	return &illegalOpcodeError{op: in.Op, raw: in.Raw}
}

// execBR takes the branch when any requested condition bit is set in COND.
// The n/z/p selector shares its bit position with Reg1, so it reads
// naturally as a Flag mask.
func (v *VM) execBR(in insts.Instruction) {
	want := Flag(in.Reg1)
	if v.Regs.COND&want != 0 {
		v.Regs.PC += in.Offset9
		v.pcModified = true
	}
}

func (v *VM) execADD(in insts.Instruction) {
	a := v.Regs.R[in.Reg2]
	var b uint16
	if in.ImmMode {
		b = in.Imm5
	} else {
		b = v.Regs.R[in.Reg3]
	}
	result := a + b
	v.Regs.R[in.Reg1] = result
	v.Regs.SetFlags(result)
}

func (v *VM) execAND(in insts.Instruction) {
	a := v.Regs.R[in.Reg2]
	var b uint16
	if in.ImmMode {
		b = in.Imm5
	} else {
		b = v.Regs.R[in.Reg3]
	}
	result := a & b
	v.Regs.R[in.Reg1] = result
	v.Regs.SetFlags(result)
}

func (v *VM) execNOT(in insts.Instruction) {
	result := ^v.Regs.R[in.Reg2]
	v.Regs.R[in.Reg1] = result
	v.Regs.SetFlags(result)
}

func (v *VM) execLD(in insts.Instruction) {
	addr := v.Regs.PC + in.Offset9
	value := v.Mem.Read(addr)
	v.Regs.R[in.Reg1] = value
	v.Regs.SetFlags(value)
}

func (v *VM) execLDI(in insts.Instruction) {
	ptr := v.Regs.PC + in.Offset9
	addr := v.Mem.Read(ptr)
	value := v.Mem.Read(addr)
	v.Regs.R[in.Reg1] = value
	v.Regs.SetFlags(value)
}

func (v *VM) execLDR(in insts.Instruction) {
	addr := v.Regs.R[in.Reg2] + in.Offset6
	value := v.Mem.Read(addr)
	v.Regs.R[in.Reg1] = value
	v.Regs.SetFlags(value)
}

func (v *VM) execLEA(in insts.Instruction) {
	addr := v.Regs.PC + in.Offset9
	v.Regs.R[in.Reg1] = addr
	v.Regs.SetFlags(addr)
}

func (v *VM) execST(in insts.Instruction) {
	addr := v.Regs.PC + in.Offset9
	v.Mem.Write(addr, v.Regs.R[in.Reg1])
}

func (v *VM) execSTI(in insts.Instruction) {
	ptr := v.Regs.PC + in.Offset9
	addr := v.Mem.Read(ptr)
	v.Mem.Write(addr, v.Regs.R[in.Reg1])
}

func (v *VM) execSTR(in insts.Instruction) {
	addr := v.Regs.R[in.Reg2] + in.Offset6
	v.Mem.Write(addr, v.Regs.R[in.Reg1])
}

func (v *VM) execJSR(in insts.Instruction) {
	v.Regs.R[7] = v.Regs.PC
	if in.JSRImmediate {
		v.Regs.PC += in.Offset11
	} else {
		v.Regs.PC = v.Regs.R[in.Reg2]
	}
	v.pcModified = true
}

func (v *VM) execJMP(in insts.Instruction) {
	v.Regs.PC = v.Regs.R[in.Reg2]
	v.pcModified = true
}

func (v *VM) execTRAP(in insts.Instruction) (halted bool, err error) {
	v.Regs.R[7] = v.Regs.PC
	return v.Traps.Dispatch(v, in.TrapVector)
}
