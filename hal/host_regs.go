//go:build !tinygo

package hal

import "sync/atomic"

// memRegister is a plain simulated register. onSet, if set, observes every
// write with the previous value.
type memRegister struct {
	v     atomic.Uint32
	onSet func(old, v uint32)
}

func (r *memRegister) Get() uint32 { return r.v.Load() }

func (r *memRegister) Set(v uint32) {
	old := r.v.Swap(v)
	if r.onSet != nil {
		r.onSet(old, v)
	}
}

// funcRegister forwards accesses to a peripheral model.
type funcRegister struct {
	get func() uint32
	set func(v uint32)
}

func (r funcRegister) Get() uint32 {
	if r.get == nil {
		return 0
	}
	return r.get()
}

func (r funcRegister) Set(v uint32) {
	if r.set != nil {
		r.set(v)
	}
}

// simBoard resolves register addresses to simulated registers. Unknown
// addresses get plain memory registers so bring-up writes always land.
type simBoard struct {
	regs map[uintptr]Register
}

func newSimBoard(uart *simUART, onOutput func(port string, old, v uint32)) (*simBoard, *Board) {
	sb := &simBoard{regs: make(map[uintptr]Register)}

	sb.regs[UART0Base+uartSTAT] = funcRegister{get: uart.stat}
	sb.regs[UART0Base+uartDATA] = funcRegister{get: uart.readData, set: uart.writeData}
	sb.regs[UART0Base+uartCTL0] = &uart.ctl0

	watch := func(port string) *memRegister {
		r := &memRegister{}
		if onOutput != nil {
			r.onSet = func(old, v uint32) { onOutput(port, old, v) }
		}
		return r
	}
	// Output pins read back their latch.
	for _, p := range []struct {
		name string
		base uintptr
	}{{"PA", GPIOABase}, {"PC", GPIOCBase}} {
		octl := watch(p.name)
		sb.regs[p.base+gpioOCTL] = octl
		sb.regs[p.base+gpioISTAT] = funcRegister{get: octl.Get}
	}

	b := newBoard(sb.reg)
	return sb, b
}

func (sb *simBoard) reg(addr uintptr) Register {
	if r, ok := sb.regs[addr]; ok {
		return r
	}
	r := &memRegister{}
	sb.regs[addr] = r
	return r
}
