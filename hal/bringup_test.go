package hal

import "testing"

type regWrite struct {
	addr uintptr
	v    uint32
}

type recRegister struct {
	addr uintptr
	v    uint32
	log  *[]regWrite
}

func (r *recRegister) Get() uint32 { return r.v }

func (r *recRegister) Set(v uint32) {
	r.v = v
	*r.log = append(*r.log, regWrite{addr: r.addr, v: v})
}

func recordingBoard() (*Board, *[]regWrite) {
	var log []regWrite
	b := newBoard(func(addr uintptr) Register {
		return &recRegister{addr: addr, log: &log}
	})
	return b, &log
}

func TestBringUpWriteOrder(t *testing.T) {
	b, log := recordingBoard()
	BringUp(b)

	want := []regWrite{
		{RCUBase + rcuCFG0, 0x20280000},
		{RCUBase + rcuCTL, 0x01006883},
		{RCUBase + rcuCFG0, 0x20280002},
		{RCUBase + rcuAPB2RST, 0x00004005},
		{RCUBase + rcuAPB2RST, 0x0},
		{RCUBase + rcuAPB2EN, 0x0000501d},
		{GPIOABase + gpioCTL1, 0x888444b4},
		{UART0Base + uartCTL0, 0x0},
		{UART0Base + uartBAUD, 0x3a9},
		{UART0Base + uartCTL0, 0x200c},
	}
	if len(*log) != len(want) {
		t.Fatalf("expected %d writes, got %d: %#v", len(want), len(*log), *log)
	}
	for i, w := range want {
		if got := (*log)[i]; got != w {
			t.Fatalf("write %d: got %#x=%#x, want %#x=%#x", i, got.addr, got.v, w.addr, w.v)
		}
	}
}

func TestBaudDivisor(t *testing.T) {
	got := CoreClockHz / uartBaudDiv
	if diff := got - BaudRate; diff < -BaudRate/50 || diff > BaudRate/50 {
		t.Fatalf("divisor gives %d baud, want about %d", got, BaudRate)
	}
}

func TestInitLEDsTurnsLEDsOff(t *testing.T) {
	b, _ := recordingBoard()
	b.GPIOA.CTL0.Set(0x44444444)
	b.GPIOC.CTL1.Set(0x44444444)
	InitLEDs(b)

	if got := b.GPIOA.CTL0.Get(); got != 0x44444224 {
		t.Fatalf("GPIOA CTL0=%#x, want %#x", got, 0x44444224)
	}
	if got := b.GPIOC.CTL1.Get(); got != 0x44244444 {
		t.Fatalf("GPIOC CTL1=%#x, want %#x", got, 0x44244444)
	}
	if got := b.GPIOA.OCTL.Get(); got != 1<<1|1<<2 {
		t.Fatalf("GPIOA OCTL=%#x", got)
	}
	if got := b.GPIOC.OCTL.Get(); got != 1<<13 {
		t.Fatalf("GPIOC OCTL=%#x", got)
	}
	if got := b.RCU.APB2EN.Get(); got&(1<<2|1<<4) != 1<<2|1<<4 {
		t.Fatalf("APB2EN=%#x, GPIOA/GPIOC clocks not enabled", got)
	}
}

func TestPortPinWrite(t *testing.T) {
	b, _ := recordingBoard()
	pins := ledPins(b)
	if len(pins) != 3 {
		t.Fatalf("expected 3 LED pins, got %d", len(pins))
	}
	b.GPIOA.OCTL.Set(0xFFFF)

	green := pins[PinGreen]
	if err := green.Write(false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := b.GPIOA.OCTL.Get(); got != 0xFFFD {
		t.Fatalf("OCTL=%#x after low write", got)
	}
	if err := green.Write(true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := b.GPIOA.OCTL.Get(); got != 0xFFFF {
		t.Fatalf("OCTL=%#x after high write", got)
	}
	if name := pins[PinRed].Name(); name != "RED (PC13)" {
		t.Fatalf("unexpected name %q", name)
	}
}

func TestPortPinConfigure(t *testing.T) {
	b, _ := recordingBoard()
	b.GPIOC.CTL1.Set(0x44444444)
	p := newPortPin("P", &b.GPIOC, 13)

	if err := p.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got := b.GPIOC.CTL1.Get(); got != 0x44244444 {
		t.Fatalf("CTL1=%#x", got)
	}
	if err := p.Configure(GPIOModeOutput, GPIOPullUp); err == nil {
		t.Fatal("expected error for pull in output mode")
	}
	if err := p.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got := b.GPIOC.CTL1.Get(); got != 0x44844444 {
		t.Fatalf("CTL1=%#x", got)
	}
	if got := b.GPIOC.OCTL.Get(); got&(1<<13) == 0 {
		t.Fatal("expected pull-up to set OCTL bit")
	}
}

func TestPinGPIOBounds(t *testing.T) {
	b, _ := recordingBoard()
	g := newPinGPIO(ledPins(b))
	if g.PinCount() != 3 {
		t.Fatalf("PinCount=%d", g.PinCount())
	}
	if g.Pin(-1) != nil || g.Pin(3) != nil {
		t.Fatal("expected nil for out of range pin")
	}
	if newPinGPIO(nil).PinCount() != 0 {
		t.Fatal("expected empty GPIO")
	}
}
