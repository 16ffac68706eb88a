package emu

// LC-3 built-in trap vectors.
const (
	TrapGETC  uint8 = 0x20 // read one character, no echo, into R0
	TrapOUT   uint8 = 0x21 // write the character in R0's low byte
	TrapPUTS  uint8 = 0x22 // write a null-terminated string of one char per word, from R0
	TrapIN    uint8 = 0x23 // prompt, echo, and read one character into R0
	TrapPUTSP uint8 = 0x24 // write a null-terminated string packed two chars per word, from R0
	TrapHALT  uint8 = 0x25 // stop execution
)

// eofSentinel is placed in R0 when GETC/IN reach end of input, per the
// host-defined convention noted alongside the trap table.
const eofSentinel uint16 = 0xFFFF

// TrapHandler dispatches a TRAP instruction's service vector. Dispatch
// returns halted=true only for HALT.
type TrapHandler interface {
	Dispatch(v *VM, vector uint8) (halted bool, err error)
}

// DefaultTrapHandler implements the six built-in LC-3 trap routines against
// an attached Console.
type DefaultTrapHandler struct {
	con Console
}

// NewDefaultTrapHandler returns a DefaultTrapHandler driven by con.
func NewDefaultTrapHandler(con Console) *DefaultTrapHandler {
	return &DefaultTrapHandler{con: con}
}

// Dispatch implements TrapHandler.
func (h *DefaultTrapHandler) Dispatch(v *VM, vector uint8) (bool, error) {
	switch vector {
	case TrapGETC:
		h.getc(v)
	case TrapOUT:
		h.out(v)
	case TrapPUTS:
		h.puts(v)
	case TrapIN:
		h.in(v)
	case TrapPUTSP:
		h.putsp(v)
	case TrapHALT:
		_ = h.con.WriteString("HALT\n")
		return true, nil
	default:
		return false, &illegalTrapError{vector: vector}
	}
	return false, nil
}

func (h *DefaultTrapHandler) getc(v *VM) {
	b, ok := h.con.ReadByte()
	if !ok {
		v.Regs.R[0] = eofSentinel
		return
	}
	v.Regs.R[0] = uint16(b)
}

func (h *DefaultTrapHandler) out(v *VM) {
	_ = h.con.WriteByte(byte(v.Regs.R[0]))
}

func (h *DefaultTrapHandler) puts(v *VM) {
	addr := v.Regs.R[0]
	for {
		word := v.Mem.Read(addr)
		if word == 0 {
			break
		}
		_ = h.con.WriteByte(byte(word))
		addr++
	}
}

func (h *DefaultTrapHandler) in(v *VM) {
	_ = h.con.WriteString("Enter a character: ")
	b, ok := h.con.ReadByte()
	if !ok {
		v.Regs.R[0] = eofSentinel
		return
	}
	_ = h.con.WriteByte(b)
	v.Regs.R[0] = uint16(b)
}

// putsp writes a null-terminated string packed two characters per word: the
// low byte first, then the high byte, stopping at either a zero byte.
func (h *DefaultTrapHandler) putsp(v *VM) {
	addr := v.Regs.R[0]
	for {
		word := v.Mem.Read(addr)
		lo := byte(word & 0xFF)
		if lo == 0 {
			break
		}
		_ = h.con.WriteByte(lo)
		hi := byte(word >> 8)
		if hi == 0 {
			break
		}
		_ = h.con.WriteByte(hi)
		addr++
	}
}
