package emu

// AddressSpace is the number of addressable 16-bit words in the LC-3's flat
// memory: the entire range 0x0000-0xFFFF.
const AddressSpace = 1 << 16

// Memory-mapped keyboard registers.
const (
	// KBSRAddr is the keyboard status register: bit 15 set iff a key is
	// waiting.
	KBSRAddr uint16 = 0xFE00
	// KBDRAddr is the keyboard data register: the ASCII code of the waiting
	// key, valid only while KBSR's bit 15 is set.
	KBDRAddr uint16 = 0xFE02
)

const kbsrReady uint16 = 1 << 15

// Memory is the LC-3's flat 16-bit address space. Reads of KBSRAddr have the
// side effect of polling the attached Console; everything else is plain
// storage.
type Memory struct {
	cell [AddressSpace]uint16
	kbd  Console
}

// NewMemory returns a zeroed Memory. kbd may be nil, in which case KBSR
// always reads 0 (no key ever waiting).
func NewMemory(kbd Console) *Memory {
	return &Memory{kbd: kbd}
}

// SetConsole attaches (or replaces) the keyboard device backing KBSR/KBDR.
func (m *Memory) SetConsole(kbd Console) {
	m.kbd = kbd
}

// Read returns the word at addr. Reading KBSRAddr polls the keyboard device
// first and updates KBSR/KBDR to reflect the result, so each Read of KBSRAddr
// is an independent, fresh poll.
func (m *Memory) Read(addr uint16) uint16 {
	if addr == KBSRAddr {
		m.pollKeyboard()
	}
	return m.cell[addr]
}

// Write stores val at addr. Writes to KBSR/KBDR are accepted but
// observationally meaningless: the next Read of KBSRAddr re-derives both
// registers from the live keyboard poll.
func (m *Memory) Write(addr, val uint16) {
	m.cell[addr] = val
}

func (m *Memory) pollKeyboard() {
	if m.kbd == nil {
		m.cell[KBSRAddr] = 0
		return
	}
	if b, ready := m.kbd.Poll(); ready {
		m.cell[KBDRAddr] = uint16(b)
		m.cell[KBSRAddr] = kbsrReady
	} else {
		m.cell[KBSRAddr] = 0
	}
}

// LoadWords places words contiguously in memory starting at origin, wrapping
// modulo the address space. Used by the image loader and directly by tests
// that want to seed memory without going through an object file.
func (m *Memory) LoadWords(origin uint16, words []uint16) {
	addr := origin
	for _, w := range words {
		m.cell[addr] = w
		addr++
	}
}
