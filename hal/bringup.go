package hal

// Clock and UART settings written by BringUp.
const (
	// CoreClockHz is the core clock after BringUp (HXTAL 8 MHz through the PLL).
	CoreClockHz = 108_000_000
	// BaudRate is the UART0 line rate for uartBaudDiv at CoreClockHz.
	BaudRate = 115200

	uartBaudDiv = 0x3a9
)

// Pin assignment of the on-board RGB LED (cathodes, active low).
const (
	redPin   = 13 // PC13
	greenPin = 1  // PA1
	bluePin  = 2  // PA2
)

// BringUp runs the one-shot clock, peripheral clock and pin-mode sequence
// followed by UART0 enable. The order of writes matters. There is no status:
// a wrong sequence leaves the UART flags clear and the Transceiver waits
// forever.
func BringUp(b *Board) {
	b.RCU.CFG0.Set(0x20280000)
	b.RCU.CTL.Set(0x01006883)
	b.RCU.CFG0.Set(0x20280002)
	b.RCU.APB2RST.Set(0x00004005)
	b.RCU.APB2RST.Set(0x0)
	b.RCU.APB2EN.Set(0x0000501d)
	// PA9 alternate push-pull (TX), PA10 floating input (RX).
	b.GPIOA.CTL1.Set(0x888444b4)

	b.UART0.CTL0.Set(0x0)
	b.UART0.BAUD.Set(uartBaudDiv)
	b.UART0.CTL0.Set(Ctl0UEN | Ctl0TEN | Ctl0REN)
}

// InitLEDs configures PA1, PA2 and PC13 as 2 MHz push-pull outputs and
// turns all three LEDs off.
func InitLEDs(b *Board) {
	const (
		apb2PAEN = 1 << 2
		apb2PCEN = 1 << 4
		mode2MHz = 0x2
	)
	setBits(b.RCU.APB2EN, apb2PAEN|apb2PCEN)

	clearBits(b.GPIOA.CTL0, pinCfgMask(greenPin)|pinCfgMask(bluePin))
	setBits(b.GPIOA.CTL0, mode2MHz<<pinCfgShift(greenPin)|mode2MHz<<pinCfgShift(bluePin))
	clearBits(b.GPIOC.CTL1, pinCfgMask(redPin))
	setBits(b.GPIOC.CTL1, mode2MHz<<pinCfgShift(redPin))

	setBits(b.GPIOA.OCTL, 1<<greenPin|1<<bluePin)
	setBits(b.GPIOC.OCTL, 1<<redPin)
}

// pinCfgShift is the bit offset of a pin's MODE/CTL nibble inside CTL0 or CTL1.
func pinCfgShift(pin uint8) uint32 { return uint32(pin%8) * 4 }

func pinCfgMask(pin uint8) uint32 { return 0xF << pinCfgShift(pin) }

// ledPins returns the board LED pins in PinRed, PinGreen, PinBlue order.
func ledPins(b *Board) []GPIOPin {
	return []GPIOPin{
		newPortPin("RED", &b.GPIOC, redPin),
		newPortPin("GREEN", &b.GPIOA, greenPin),
		newPortPin("BLUE", &b.GPIOA, bluePin),
	}
}
