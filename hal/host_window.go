//go:build !tinygo && cgo

package hal

import (
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"longan/internal/buildinfo"
)

const (
	consoleWidth  = 240
	consoleHeight = 120
	ledStripH     = 24
	windowScale   = 3
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	// Taps observe UART traffic in addition to the console and stdout.
	Taps []ByteTap
	// Echo shows typed bytes on the console.
	Echo bool
}

// RunWindow starts a desktop window showing the board LEDs and a serial
// console. Typed keys go to the UART RX line. It blocks until the window
// closes or run returns an error.
func RunWindow(run func(HAL) error, cfg WindowConfig) error {
	h := newHost(os.Stderr)
	con := newConsole(consoleWidth, consoleHeight, cfg.Echo)
	serial := newHostSerial(os.Stdout)
	h.uart.Attach(con)
	h.uart.Attach(serial)
	for _, t := range cfg.Taps {
		h.uart.Attach(t)
	}

	g := &hostGame{
		h:    h,
		con:  con,
		ser:  serial,
		kbd:  newHostKeyboard(h.uart),
		done: make(chan error, 1),
	}
	go func() { g.done <- run(h) }()

	ebiten.SetWindowTitle("Longan (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(consoleWidth*windowScale, (consoleHeight+ledStripH)*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h    *hostHAL
	con  *console
	ser  *hostSerial
	kbd  *hostKeyboard
	done chan error

	pix    []byte
	conImg *ebiten.Image
}

func (g *hostGame) Update() error {
	g.kbd.poll()
	g.ser.Flush()
	select {
	case err := <-g.done:
		if err != nil {
			return err
		}
		g.done = nil
	default:
	}
	return nil
}

var (
	ledOff   = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xFF}
	ledRed   = color.RGBA{R: 0xFF, G: 0x20, B: 0x20, A: 0xFF}
	ledGreen = color.RGBA{R: 0x20, G: 0xFF, B: 0x20, A: 0xFF}
	ledBlue  = color.RGBA{R: 0x30, G: 0x60, B: 0xFF, A: 0xFF}
)

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.conImg == nil {
		g.pix = make([]byte, consoleWidth*consoleHeight*4)
		g.conImg = ebiten.NewImage(consoleWidth, consoleHeight)
	}
	if g.con.snapshot(g.pix) {
		g.conImg.WritePixels(g.pix)
	}

	red, green, blue := g.h.leds.lit()
	for i, led := range []struct {
		on bool
		c  color.RGBA
	}{{red, ledRed}, {green, ledGreen}, {blue, ledBlue}} {
		c := ledOff
		if led.on {
			c = led.c
		}
		cx := float32(ledStripH/2 + i*ledStripH)
		vector.DrawFilledCircle(screen, cx, ledStripH/2, ledStripH/3, c, true)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, ledStripH)
	screen.DrawImage(g.conImg, op)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return consoleWidth, consoleHeight + ledStripH
}
