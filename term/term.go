// Package term puts the controlling terminal into raw mode for the
// duration of a run and restores it on the way out, mirroring the
// enter-raw-then-deferred-restore shape of a typical line-editing terminal
// driver.
package term

import (
	"os"

	xterm "golang.org/x/term"
)

// Raw holds the terminal state captured before entering raw mode, so it can
// be restored exactly.
type Raw struct {
	fd    int
	state *xterm.State
}

// EnterRaw puts f (normally os.Stdin) into raw mode if it is a terminal.
// If f is not a terminal (piped input, a test harness), EnterRaw is a no-op
// and Restore on the result does nothing either; callers don't need to
// special-case that themselves.
func EnterRaw(f *os.File) (*Raw, error) {
	fd := int(f.Fd())
	if !xterm.IsTerminal(fd) {
		return &Raw{fd: -1}, nil
	}
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Raw{fd: fd, state: state}, nil
}

// Restore returns the terminal to the state it was in before EnterRaw.
func (r *Raw) Restore() error {
	if r == nil || r.state == nil {
		return nil
	}
	return xterm.Restore(r.fd, r.state)
}
