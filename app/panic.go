package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"longan/hal"
)

// PanicError is returned by Run when the firmware panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("app: firmware panic: %v", e.Value)
}

// recoverFault turns a panic in Run into a PanicError. The panic is logged
// line by line and all three LEDs are lit. The toggle variant can reach the
// same steady state, so callers that stop after a fault should follow with
// FaultBlink.
func recoverFault(h hal.HAL, err *error) {
	r := recover()
	if r == nil {
		return
	}
	pe := &PanicError{Value: r, Stack: debug.Stack()}

	if l := h.Logger(); l != nil {
		l.WriteLineString(pe.Error())
		for _, line := range strings.Split(string(pe.Stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	setLEDs(h, true)
	*err = pe
}

// FaultBlink flashes all three LEDs together, calling pause between each
// change. A toggle command flips one LED at a time, so the pattern cannot
// come from normal operation. It blinks n times, or forever when n <= 0,
// and leaves the LEDs lit.
func FaultBlink(h hal.HAL, n int, pause func()) {
	for i := 0; n <= 0 || i < n; i++ {
		setLEDs(h, false)
		pause()
		setLEDs(h, true)
		pause()
	}
}

// setLEDs drives the active-low LED pins.
func setLEDs(h hal.HAL, lit bool) {
	g := h.GPIO()
	if g == nil {
		return
	}
	for _, id := range []int{hal.PinRed, hal.PinGreen, hal.PinBlue} {
		if p := g.Pin(id); p != nil {
			_ = p.Write(!lit)
		}
	}
}
