//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// spinsBeforeSleep is the number of consecutive STAT reads with an empty
// receive buffer after which each further read sleeps briefly. A polling
// receive loop then yields the CPU while the transmit path, which resets the
// counter on every DATA access, keeps running at full speed.
const spinsBeforeSleep = 64

// ByteTap observes bytes crossing the simulated UART.
type ByteTap interface {
	RX(b byte) // firmware read b from DATA
	TX(b byte) // firmware wrote b to DATA
}

// simUART models the USART0 status and data registers with an unbounded
// receive queue standing in for the host side of the wire.
type simUART struct {
	ctl0 memRegister

	mu    sync.Mutex
	rx    []byte
	last  uint32
	spins int
	kick  chan struct{}
	taps  []ByteTap
}

func newSimUART() *simUART {
	return &simUART{kick: make(chan struct{}, 1)}
}

func (u *simUART) enabled(bits uint32) bool {
	return u.ctl0.Get()&(Ctl0UEN|bits) == Ctl0UEN|bits
}

func (u *simUART) stat() uint32 {
	var s uint32
	if u.enabled(Ctl0TEN) {
		s |= StatTBE | StatTC
	}

	u.mu.Lock()
	if u.enabled(Ctl0REN) && len(u.rx) > 0 {
		s |= StatRBNE
		u.spins = 0
	} else {
		u.spins++
	}
	idle := u.spins > spinsBeforeSleep
	u.mu.Unlock()

	if idle {
		select {
		case <-u.kick:
		case <-time.After(time.Millisecond):
		}
	}
	return s
}

func (u *simUART) readData() uint32 {
	u.mu.Lock()
	u.spins = 0
	if len(u.rx) == 0 {
		// Hardware returns the stale holding register.
		v := u.last
		u.mu.Unlock()
		return v
	}
	b := u.rx[0]
	u.rx = u.rx[1:]
	u.last = uint32(b)
	taps := u.taps
	u.mu.Unlock()

	for _, t := range taps {
		t.RX(b)
	}
	return uint32(b)
}

func (u *simUART) writeData(v uint32) {
	if !u.enabled(Ctl0TEN) {
		return
	}
	u.mu.Lock()
	u.spins = 0
	taps := u.taps
	u.mu.Unlock()

	for _, t := range taps {
		t.TX(byte(v))
	}
}

// Inject queues bytes as if they arrived on the RX line.
func (u *simUART) Inject(p []byte) {
	if len(p) == 0 {
		return
	}
	u.mu.Lock()
	u.rx = append(u.rx, p...)
	u.mu.Unlock()

	select {
	case u.kick <- struct{}{}:
	default:
	}
}

// Attach adds a traffic observer.
func (u *simUART) Attach(t ByteTap) {
	if t == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.taps = append(append([]ByteTap(nil), u.taps...), t)
}

// Idle reports whether the receive queue is empty and the firmware has been
// polling for input for a while.
func (u *simUART) Idle() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.rx) == 0 && u.spins > spinsBeforeSleep
}
