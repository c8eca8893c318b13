//go:build tinygo && gd32vf103

package hal

import (
	"runtime/volatile"
	"unsafe"
)

type deviceHAL struct {
	board *Board
	gpio  GPIO
}

// New returns the GD32VF103 HAL. Registers are bound to their fixed
// addresses; nothing is written until BringUp.
//
// UART0: PA9 (TX) / PA10 (RX), 115200 8N1 after BringUp.
func New() HAL {
	b := newBoard(func(addr uintptr) Register {
		return (*volatile.Register32)(unsafe.Pointer(addr))
	})
	return &deviceHAL{board: b, gpio: newPinGPIO(ledPins(b))}
}

// The only UART belongs to the command protocol, so device logs are dropped.
func (h *deviceHAL) Logger() Logger { return nopLogger{} }
func (h *deviceHAL) Board() *Board  { return h.board }
func (h *deviceHAL) GPIO() GPIO     { return h.gpio }
