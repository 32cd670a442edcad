// Package shell spawns an interactive command in a PTY and streams its
// output, backing the demo's main content pane.
package shell

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size is the PTY dimensions in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Runner spawns and resizes a PTY. Implementations can be swapped (the
// real creack/pty one, or a mock for tests).
type Runner interface {
	Start(cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// CreackPTY implements Runner using github.com/creack/pty.
type CreackPTY struct{}

var _ Runner = (*CreackPTY)(nil)

// Start implements Runner.
func (CreackPTY) Start(cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	ws := &pty.Winsize{Rows: size.Rows, Cols: size.Cols}
	return pty.StartWithSize(cmd, ws)
}

// Resize implements Runner. The rwc must be the *os.File returned by
// Start; other types are a no-op.
func (CreackPTY) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

// Session is a running PTY command with a buffered output stream.
type Session struct {
	runner Runner
	ptmx   io.ReadWriteCloser
	out    chan []byte
}

// Start spawns command (looked up on PATH) in dir with the given size and
// begins streaming its output. dir may be empty for the current directory.
func Start(runner Runner, command, dir string, size Size) (*Session, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("shell: lookup %q: %w", command, err)
	}
	cmd := exec.Command(path)
	cmd.Dir = dir

	ptmx, err := runner.Start(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("shell: start %q: %w", command, err)
	}
	s := &Session{runner: runner, ptmx: ptmx, out: make(chan []byte, 64)}
	go s.readLoop()
	return s, nil
}

// readLoop copies PTY output into the channel, dropping chunks when the
// consumer falls behind rather than blocking the read.
func (s *Session) readLoop() {
	buf := make([]byte, 1024)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			select {
			case s.out <- cp:
			default:
			}
		}
		if err != nil {
			close(s.out)
			return
		}
	}
}

// Output returns the stream of PTY output chunks. The channel closes when
// the command exits or the session is closed.
func (s *Session) Output() <-chan []byte { return s.out }

// Write forwards input (keystrokes) to the PTY.
func (s *Session) Write(p []byte) (int, error) { return s.ptmx.Write(p) }

// Resize adjusts the PTY to the given dimensions.
func (s *Session) Resize(size Size) error { return s.runner.Resize(s.ptmx, size) }

// Close terminates the PTY; the read loop drains and closes Output.
func (s *Session) Close() error { return s.ptmx.Close() }
