// Package toggle is the LED-toggle command set: lines starting with 1, 2 or
// 3 flip the red, green or blue LED.
package toggle

import (
	"longan/firmware/command"
	"longan/hal"
)

// Banner is sent once at startup.
const Banner = "LED TOGGLE\nInput one of the following numbers:\n1 = Toggle RED led\n2 = Toggle GREEN led\n3 = Toggle BLUE led\n\n"

// LED names one of the three LEDs.
type LED uint8

const (
	Red LED = iota
	Green
	Blue
	numLEDs
)

func (l LED) String() string {
	switch l {
	case Red:
		return "RED"
	case Green:
		return "GREEN"
	case Blue:
		return "BLUE"
	default:
		return "?"
	}
}

// Command is the closed set of toggle commands.
type Command uint8

const (
	CmdReject Command = iota
	CmdRed
	CmdGreen
	CmdBlue
)

// Decode maps a line to its command using only the first byte.
func Decode(line []byte) Command {
	if len(line) == 0 {
		return CmdReject
	}
	switch line[0] {
	case '1':
		return CmdRed
	case '2':
		return CmdGreen
	case '3':
		return CmdBlue
	default:
		return CmdReject
	}
}

// Pin is the output a LED is wired to. A failed write is logged and the
// LED state still flips, so the reply to the host does not change.
type Pin interface {
	Write(level bool) error
}

// Action holds the on/off state of the three LEDs. The LEDs are active low:
// a lit LED has its pin driven low.
type Action struct {
	pins [numLEDs]Pin
	on   [numLEDs]bool
	last Command
	log  hal.Logger
}

type Option func(*Action)

// WithLogger reports pin write failures to l.
func WithLogger(l hal.Logger) Option {
	return func(a *Action) { a.log = l }
}

// New returns an Action driving red, green and blue. All LEDs start off.
func New(red, green, blue Pin, opts ...Option) *Action {
	a := &Action{pins: [numLEDs]Pin{red, green, blue}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FromGPIO builds an Action from the board LED pins.
func FromGPIO(g hal.GPIO, opts ...Option) *Action {
	return New(g.Pin(hal.PinRed), g.Pin(hal.PinGreen), g.Pin(hal.PinBlue), opts...)
}

var _ command.Action = (*Action)(nil)

func (a *Action) Banner() string { return Banner }

// On reports whether led is lit.
func (a *Action) On(led LED) bool {
	if led >= numLEDs {
		return false
	}
	return a.on[led]
}

func (a *Action) Dispatch(line []byte) {
	a.last = Decode(line)
	switch a.last {
	case CmdRed:
		a.flip(Red)
	case CmdGreen:
		a.flip(Green)
	case CmdBlue:
		a.flip(Blue)
	case CmdReject:
	}
}

// flip toggles led and drives its pin to the complementary level: low to
// light it, high to turn it off.
func (a *Action) flip(led LED) {
	a.on[led] = !a.on[led]
	p := a.pins[led]
	if p == nil {
		return
	}
	if err := p.Write(!a.on[led]); err != nil && a.log != nil {
		a.log.WriteLineString("toggle: " + led.String() + " pin: " + err.Error())
	}
}

func (a *Action) Respond(w command.Responder) error {
	var msg string
	switch a.last {
	case CmdRed:
		msg = "Toggling RED...\n"
	case CmdGreen:
		msg = "Toggling GREEN...\n"
	case CmdBlue:
		msg = "Toggling BLUE...\n"
	case CmdReject:
		msg = "Wrong input.\n"
	}
	_, err := w.WriteString(msg)
	return err
}
