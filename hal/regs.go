package hal

// Register is a single 32-bit peripheral register.
//
// Every Get and Set is a side effect on the peripheral; callers must not
// cache values across calls.
type Register interface {
	Get() uint32
	Set(v uint32)
}

// GD32VF103 peripheral base addresses.
const (
	RCUBase   uintptr = 0x40021000
	GPIOABase uintptr = 0x40010800
	GPIOCBase uintptr = 0x40011000
	UART0Base uintptr = 0x40013800
)

// RCU register offsets.
const (
	rcuCTL     = 0x00
	rcuCFG0    = 0x04
	rcuAPB2RST = 0x0C
	rcuAPB2EN  = 0x18
)

// GPIO register offsets.
const (
	gpioCTL0  = 0x00
	gpioCTL1  = 0x04
	gpioISTAT = 0x08
	gpioOCTL  = 0x0C
)

// UART register offsets.
const (
	uartSTAT = 0x00
	uartDATA = 0x04
	uartBAUD = 0x08
	uartCTL0 = 0x0C
	uartCTL1 = 0x10
	uartCTL2 = 0x14
	uartGP   = 0x18
)

// UART STAT flags.
const (
	StatRBNE uint32 = 1 << 5 // receive buffer not empty
	StatTC   uint32 = 1 << 6 // transmission complete
	StatTBE  uint32 = 1 << 7 // transmit buffer empty
)

// UART CTL0 bits.
const (
	Ctl0REN uint32 = 1 << 2
	Ctl0TEN uint32 = 1 << 3
	Ctl0UEN uint32 = 1 << 13
)

// RCU is the reset and clock unit.
type RCU struct {
	CTL     Register
	CFG0    Register
	APB2RST Register
	APB2EN  Register
}

// GPIOPort is one GPIO port register block.
type GPIOPort struct {
	Name  string
	CTL0  Register // pins 0-7 mode/config
	CTL1  Register // pins 8-15 mode/config
	ISTAT Register
	OCTL  Register
}

// UART is one USART register block.
type UART struct {
	STAT Register
	DATA Register
	BAUD Register
	CTL0 Register
	CTL1 Register
	CTL2 Register
	GP   Register
}

// Board is the register map used by the firmware.
type Board struct {
	RCU   RCU
	GPIOA GPIOPort
	GPIOC GPIOPort
	UART0 UART
}

// newBoard builds the register map by resolving every register address
// through reg.
func newBoard(reg func(addr uintptr) Register) *Board {
	gpio := func(name string, base uintptr) GPIOPort {
		return GPIOPort{
			Name:  name,
			CTL0:  reg(base + gpioCTL0),
			CTL1:  reg(base + gpioCTL1),
			ISTAT: reg(base + gpioISTAT),
			OCTL:  reg(base + gpioOCTL),
		}
	}
	return &Board{
		RCU: RCU{
			CTL:     reg(RCUBase + rcuCTL),
			CFG0:    reg(RCUBase + rcuCFG0),
			APB2RST: reg(RCUBase + rcuAPB2RST),
			APB2EN:  reg(RCUBase + rcuAPB2EN),
		},
		GPIOA: gpio("PA", GPIOABase),
		GPIOC: gpio("PC", GPIOCBase),
		UART0: UART{
			STAT: reg(UART0Base + uartSTAT),
			DATA: reg(UART0Base + uartDATA),
			BAUD: reg(UART0Base + uartBAUD),
			CTL0: reg(UART0Base + uartCTL0),
			CTL1: reg(UART0Base + uartCTL1),
			CTL2: reg(UART0Base + uartCTL2),
			GP:   reg(UART0Base + uartGP),
		},
	}
}

func setBits(r Register, mask uint32)   { r.Set(r.Get() | mask) }
func clearBits(r Register, mask uint32) { r.Set(r.Get() &^ mask) }
