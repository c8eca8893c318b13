// Package uart sends and receives single bytes by polling the USART status
// register.
//
// There is no software buffering: a write waits for the transmit holding
// register to empty and a read waits for one byte to arrive. By default both
// waits are unbounded and the methods never return an error.
package uart

import (
	"errors"
	"fmt"

	"longan/hal"
)

// ErrTimeout is returned when a bounded poll gives up.
var ErrTimeout = errors.New("uart: timed out waiting for hardware")

// Transceiver drives one USART register block.
type Transceiver struct {
	port  *hal.UART
	limit uint32
}

// Option configures a Transceiver.
type Option func(*Transceiver)

// WithPollLimit bounds every status poll to n reads of STAT. Zero keeps the
// unbounded default.
func WithPollLimit(n uint32) Option {
	return func(t *Transceiver) { t.limit = n }
}

// New returns a Transceiver for port. The port must already be brought up.
func New(port *hal.UART, opts ...Option) *Transceiver {
	t := &Transceiver{port: port}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// wait polls STAT until flag is set.
func (t *Transceiver) wait(flag uint32, name string) error {
	if t.limit == 0 {
		for t.port.STAT.Get()&flag == 0 {
		}
		return nil
	}
	for i := uint32(0); i < t.limit; i++ {
		if t.port.STAT.Get()&flag != 0 {
			return nil
		}
	}
	return fmt.Errorf("%w (%s)", ErrTimeout, name)
}

// WriteByte transmits b once the transmit buffer is empty.
func (t *Transceiver) WriteByte(b byte) error {
	if err := t.wait(hal.StatTBE, "TBE"); err != nil {
		return err
	}
	t.port.DATA.Set(uint32(b))
	return nil
}

// Write transmits p in order.
func (t *Transceiver) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := t.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteString transmits s in order.
func (t *Transceiver) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if err := t.WriteByte(s[i]); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

// ReadByte returns the next received byte.
func (t *Transceiver) ReadByte() (byte, error) {
	if err := t.wait(hal.StatRBNE, "RBNE"); err != nil {
		return 0, err
	}
	return byte(t.port.DATA.Get()), nil
}
