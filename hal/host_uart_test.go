//go:build !tinygo

package hal

import (
	"bytes"
	"sync"
	"testing"
)

type recordTap struct {
	mu sync.Mutex
	rx bytes.Buffer
	tx bytes.Buffer
}

func (r *recordTap) RX(b byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rx.WriteByte(b)
}

func (r *recordTap) TX(b byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tx.WriteByte(b)
}

func TestSimUARTSilentBeforeBringUp(t *testing.T) {
	h := newHost(&bytes.Buffer{})
	u := h.board.UART0

	h.uart.Inject([]byte("x"))
	if s := u.STAT.Get(); s != 0 {
		t.Fatalf("STAT=%#x before bring-up, want 0", s)
	}

	tap := &recordTap{}
	h.uart.Attach(tap)
	u.DATA.Set('a')
	if tap.tx.Len() != 0 {
		t.Fatal("expected no TX before bring-up")
	}
}

func TestSimUARTAfterBringUp(t *testing.T) {
	h := newHost(&bytes.Buffer{})
	BringUp(h.board)
	u := h.board.UART0
	tap := &recordTap{}
	h.uart.Attach(tap)

	if s := u.STAT.Get(); s&StatTBE == 0 || s&StatRBNE != 0 {
		t.Fatalf("STAT=%#x, want TBE set and RBNE clear", s)
	}

	h.uart.Inject([]byte("hi"))
	if s := u.STAT.Get(); s&StatRBNE == 0 {
		t.Fatalf("STAT=%#x, want RBNE", s)
	}
	if b := u.DATA.Get(); b != 'h' {
		t.Fatalf("DATA=%q", rune(b))
	}
	if b := u.DATA.Get(); b != 'i' {
		t.Fatalf("DATA=%q", rune(b))
	}
	if s := u.STAT.Get(); s&StatRBNE != 0 {
		t.Fatalf("STAT=%#x, want RBNE clear after drain", s)
	}

	u.DATA.Set('o')
	u.DATA.Set('k')
	if got := tap.tx.String(); got != "ok" {
		t.Fatalf("TX=%q", got)
	}
	if got := tap.rx.String(); got != "hi" {
		t.Fatalf("RX=%q", got)
	}
}

func TestSimUARTIdle(t *testing.T) {
	h := newHost(&bytes.Buffer{})
	BringUp(h.board)
	if h.uart.Idle() {
		t.Fatal("fresh UART reported idle")
	}
	for i := 0; i <= spinsBeforeSleep; i++ {
		h.board.UART0.STAT.Get()
	}
	if !h.uart.Idle() {
		t.Fatal("expected idle after polling an empty receiver")
	}
	h.uart.Inject([]byte{'\n'})
	if h.uart.Idle() {
		t.Fatal("expected not idle with pending input")
	}
}

func TestHostLEDState(t *testing.T) {
	h := newHost(&bytes.Buffer{})
	InitLEDs(h.board)

	red, green, blue := h.leds.lit()
	if red || green || blue {
		t.Fatalf("LEDs lit after init: %v %v %v", red, green, blue)
	}

	if err := h.gpio.Pin(PinRed).Write(false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	red, green, blue = h.leds.lit()
	if !red || green || blue {
		t.Fatalf("unexpected LED state %v %v %v", red, green, blue)
	}
	level, err := h.gpio.Pin(PinRed).Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if level {
		t.Fatal("expected red pin to read back low")
	}
}

func TestHostSerialFlushesLines(t *testing.T) {
	var out bytes.Buffer
	s := newHostSerial(&out)
	for _, b := range []byte("ab\ncd") {
		s.TX(b)
	}
	if got := out.String(); got != "ab\n" {
		t.Fatalf("out=%q before flush", got)
	}
	s.Flush()
	if got := out.String(); got != "ab\ncd" {
		t.Fatalf("out=%q after flush", got)
	}
}
