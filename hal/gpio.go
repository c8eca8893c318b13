package hal

import (
	"fmt"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIO provides access to general-purpose IO pins.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

type nullGPIO struct{}

func (nullGPIO) PinCount() int      { return 0 }
func (nullGPIO) Pin(id int) GPIOPin { return nil }

type pinGPIO struct {
	pins []GPIOPin
}

func newPinGPIO(pins []GPIOPin) GPIO {
	if len(pins) == 0 {
		return nullGPIO{}
	}
	return &pinGPIO{pins: pins}
}

func (g *pinGPIO) PinCount() int {
	if g == nil {
		return 0
	}
	return len(g.pins)
}

func (g *pinGPIO) Pin(id int) GPIOPin {
	if g == nil || id < 0 || id >= len(g.pins) {
		return nil
	}
	return g.pins[id]
}

// Mode/config nibble values for CTL0/CTL1.
const (
	cfgInputFloating = 0x4 // MODE=00 CTL=01
	cfgInputPull     = 0x8 // MODE=00 CTL=10, OCTL selects up/down
	cfgOutput2MHz    = 0x2 // MODE=10 CTL=00 push-pull
)

// portPin is one pin of a GPIO port, driven through the port registers.
//
// Writes are read-modify-write on OCTL without atomicity; callers serialize
// access.
type portPin struct {
	name string
	port *GPIOPort
	pin  uint8
}

func newPortPin(name string, port *GPIOPort, pin uint8) *portPin {
	return &portPin{name: name, port: port, pin: pin}
}

func (p *portPin) Name() string { return fmt.Sprintf("%s (%s%d)", p.name, p.port.Name, p.pin) }

func (p *portPin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *portPin) ctl() Register {
	if p.pin < 8 {
		return p.port.CTL0
	}
	return p.port.CTL1
}

func (p *portPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if p.pin > 15 {
		return fmt.Errorf("gpio: pin %s: invalid pin number", p.name)
	}

	var cfg uint32
	switch mode {
	case GPIOModeOutput:
		if pull != GPIOPullNone {
			return fmt.Errorf("gpio: pin %s: pull unsupported in output mode", p.name)
		}
		cfg = cfgOutput2MHz
	case GPIOModeInput:
		switch pull {
		case GPIOPullNone:
			cfg = cfgInputFloating
		case GPIOPullUp, GPIOPullDown:
			cfg = cfgInputPull
		default:
			return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}

	ctl := p.ctl()
	shift := pinCfgShift(p.pin)
	ctl.Set(ctl.Get()&^pinCfgMask(p.pin) | cfg<<shift)

	switch pull {
	case GPIOPullUp:
		setBits(p.port.OCTL, 1<<p.pin)
	case GPIOPullDown:
		clearBits(p.port.OCTL, 1<<p.pin)
	}
	return nil
}

func (p *portPin) Read() (bool, error) {
	if p.pin > 15 {
		return false, fmt.Errorf("gpio: pin %s: invalid pin number", p.name)
	}
	return p.port.ISTAT.Get()&(1<<p.pin) != 0, nil
}

// Write drives the output latch. level is the electrical level, not the
// logical state of the load.
func (p *portPin) Write(level bool) error {
	if p.pin > 15 {
		return fmt.Errorf("gpio: pin %s: invalid pin number", p.name)
	}
	if level {
		setBits(p.port.OCTL, 1<<p.pin)
	} else {
		clearBits(p.port.OCTL, 1<<p.pin)
	}
	return nil
}
