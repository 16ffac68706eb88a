package emu

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Console is the keyboard and display device attached to the VM. It backs
// both the memory-mapped keyboard registers (KBSR/KBDR) and the character
// TRAP routines.
type Console interface {
	// Poll reports, without blocking, whether an input byte is waiting and
	// consumes it if so. Each call is an independent poll of the underlying
	// source: two calls in a row may observe different results if input
	// arrives between them.
	Poll() (b byte, ready bool)
	// ReadByte blocks until one byte is available or the input stream ends.
	// ok is false at end of stream.
	ReadByte() (b byte, ok bool)
	// WriteByte writes one byte of output and flushes it immediately.
	WriteByte(b byte) error
	// WriteString writes a string and flushes it immediately.
	WriteString(s string) error
}

// StdConsole is the default Console, backed by a real input file descriptor
// (typically os.Stdin) for input and a buffered writer for output. Poll uses
// a zero-timeout select on the input descriptor so it never blocks the
// fetch-execute loop.
type StdConsole struct {
	in   *os.File
	inFd int
	out  *bufio.Writer
}

// NewStdConsole builds a Console reading from in and writing to out. in may
// be nil, in which case Poll and ReadByte always report no data available.
func NewStdConsole(in *os.File, out io.Writer) *StdConsole {
	c := &StdConsole{out: bufio.NewWriter(out)}
	if in != nil {
		c.in = in
		c.inFd = int(in.Fd())
	} else {
		c.inFd = -1
	}
	return c
}

// Poll implements Console.
func (c *StdConsole) Poll() (byte, bool) {
	if c.in == nil {
		return 0, false
	}
	ready, err := selectReadable(c.inFd)
	if err != nil || !ready {
		return 0, false
	}
	var buf [1]byte
	n, err := c.in.Read(buf[:])
	if err != nil || n == 0 {
		return 0, false
	}
	return buf[0], true
}

// ReadByte implements Console. It blocks in the underlying Read call.
func (c *StdConsole) ReadByte() (byte, bool) {
	if c.in == nil {
		return 0, false
	}
	var buf [1]byte
	n, err := c.in.Read(buf[:])
	if err != nil || n == 0 {
		return 0, false
	}
	return buf[0], true
}

// WriteByte implements Console.
func (c *StdConsole) WriteByte(b byte) error {
	if err := c.out.WriteByte(b); err != nil {
		return err
	}
	return c.out.Flush()
}

// WriteString implements Console.
func (c *StdConsole) WriteString(s string) error {
	if _, err := c.out.WriteString(s); err != nil {
		return err
	}
	return c.out.Flush()
}

// selectReadable performs a zero-timeout select(2) on fd, reporting whether
// a read would return immediately. This is the non-blocking poll the LC-3's
// KBSR read is specified to perform.
func selectReadable(fd int) (bool, error) {
	var set unix.FdSet
	word := fd / 64
	bit := uint(fd) % 64
	set.Bits[word] |= 1 << bit

	timeout := unix.Timeval{Sec: 0, Usec: 0}
	n, err := unix.Select(fd+1, &set, nil, nil, &timeout)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
