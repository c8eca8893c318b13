//go:build !tinygo

package hal

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// hostSerial connects the simulated UART to the host terminal: stdin feeds
// the RX line and TX bytes are written to stdout one line at a time.
type hostSerial struct {
	mu      sync.Mutex
	w       io.Writer
	pending []byte

	eof atomic.Bool
}

func newHostSerial(w io.Writer) *hostSerial {
	return &hostSerial{w: w}
}

func (s *hostSerial) RX(b byte) {}

func (s *hostSerial) TX(b byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, b)
	if b == '\n' {
		s.flushLocked()
	}
}

// Flush writes any partial line.
func (s *hostSerial) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

func (s *hostSerial) flushLocked() {
	if len(s.pending) == 0 || s.w == nil {
		return
	}
	_, _ = s.w.Write(s.pending)
	s.pending = s.pending[:0]
}

// EOF reports whether the input side has been closed.
func (s *hostSerial) EOF() bool { return s.eof.Load() }

// pumpStdin feeds os.Stdin into u until EOF. Terminals get line editing;
// pipes are copied verbatim so CR bytes and partial lines reach the
// firmware unchanged.
func (s *hostSerial) pumpStdin(u *simUART) {
	defer s.eof.Store(true)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		if err := s.pumpReadline(u); err == nil {
			return
		}
	}

	buf := make([]byte, 256)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			u.Inject(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func (s *hostSerial) pumpReadline(u *simUART) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	s.mu.Lock()
	s.w = rl.Stdout()
	s.mu.Unlock()

	for {
		line, err := rl.Readline()
		if err != nil {
			// Ctrl-C and Ctrl-D both close the input side; the raw
			// terminal never delivers SIGINT.
			return nil
		}
		u.Inject(append([]byte(line), '\n'))
	}
}
