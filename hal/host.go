//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	board  *Board
	gpio   GPIO
	uart   *simUART
	leds   *ledState
}

// New returns a host HAL backed by simulated peripherals. Logs go to stderr;
// stdout is reserved for UART traffic.
func New() HAL {
	return newHost(os.Stderr)
}

// NewWithLog is New with log lines written to w.
func NewWithLog(w io.Writer) HAL {
	return newHost(w)
}

func newHost(logw io.Writer) *hostHAL {
	logger := &hostLogger{w: logw}
	uart := newSimUART()
	leds := &ledState{}
	_, board := newSimBoard(uart, leds.update)
	return &hostHAL{
		logger: logger,
		board:  board,
		gpio:   newPinGPIO(ledPins(board)),
		uart:   uart,
		leds:   leds,
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) Board() *Board  { return h.board }
func (h *hostHAL) GPIO() GPIO     { return h.gpio }

// Inject queues bytes on the simulated RX line of h, which must come from New.
func Inject(h HAL, p []byte) error {
	hh, ok := h.(*hostHAL)
	if !ok {
		return ErrNotImplemented
	}
	hh.uart.Inject(p)
	return nil
}

// Attach registers a traffic observer on the simulated UART of h.
func Attach(h HAL, t ByteTap) error {
	hh, ok := h.(*hostHAL)
	if !ok {
		return ErrNotImplemented
	}
	hh.uart.Attach(t)
	return nil
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// ledState mirrors the LED output latches for the window.
type ledState struct {
	mu sync.Mutex
	pa uint32
	pc uint32
}

func (s *ledState) update(port string, _, v uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch port {
	case "PA":
		s.pa = v
	case "PC":
		s.pc = v
	}
}

// lit reports the on/off state of the red, green and blue LEDs. The
// cathodes are on the pins, so a low latch bit is a lit LED.
func (s *ledState) lit() (red, green, blue bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pc&(1<<redPin) == 0, s.pa&(1<<greenPin) == 0, s.pa&(1<<bluePin) == 0
}
