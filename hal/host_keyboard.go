//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard turns window key presses into bytes on the UART RX line, as
// a terminal program in LF mode would send them.
type hostKeyboard struct {
	uart *simUART
	buf  []byte
}

func newHostKeyboard(uart *simUART) *hostKeyboard {
	return &hostKeyboard{uart: uart}
}

func (k *hostKeyboard) poll() {
	k.buf = k.buf[:0]
	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 0x80 {
			k.buf = append(k.buf, byte(r))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		k.buf = append(k.buf, '\n')
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		k.buf = append(k.buf, 0x08)
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyM) {
		k.buf = append(k.buf, '\r')
	}
	k.uart.Inject(k.buf)
}
