//go:build tinygo && gd32vf103

package main

import (
	"errors"
	"time"

	"longan/app"
	"longan/hal"
)

// variant is chosen at build time with -ldflags "-X main.variant=fibonacci".
var variant = "toggle"

func main() {
	v, err := app.ParseVariant(variant)
	if err != nil {
		v = app.VariantToggle
	}
	h := hal.New()
	var pe *app.PanicError
	if err := app.Run(h, app.Config{Variant: v}); errors.As(err, &pe) {
		app.FaultBlink(h, 0, func() { time.Sleep(250 * time.Millisecond) })
	}
	select {}
}
