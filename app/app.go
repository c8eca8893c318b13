// Package app brings the board up and runs one firmware variant on the
// on-board UART.
package app

import (
	"fmt"

	"longan/firmware/command"
	"longan/firmware/fibonacci"
	"longan/firmware/toggle"
	"longan/firmware/uart"
	"longan/hal"
	"longan/internal/buildinfo"
)

// Variant selects the firmware image.
type Variant string

const (
	VariantToggle    Variant = "toggle"
	VariantFibonacci Variant = "fibonacci"
	VariantHello     Variant = "hello"
)

// HelloMessage is the only output of VariantHello.
const HelloMessage = "Hello UART "

// ParseVariant accepts the names used on the command line and in config files.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantToggle, VariantFibonacci, VariantHello:
		return v, nil
	default:
		return "", fmt.Errorf("app: unknown variant %q", s)
	}
}

type Config struct {
	Variant Variant
	// PollLimit bounds every UART status wait. Zero waits forever.
	PollLimit uint32
	// RejectNegative and StrictParse tune the fibonacci variant.
	RejectNegative bool
	StrictParse    bool
	// Trace logs every command loop state transition.
	Trace bool
}

// Run brings the board up and runs the selected variant. The toggle and
// fibonacci variants only return when a bounded UART wait expires. The hello
// variant returns after its message is sent; the caller decides how to idle.
func Run(h hal.HAL, cfg Config) (err error) {
	defer recoverFault(h, &err)

	if cfg.Variant == "" {
		cfg.Variant = VariantToggle
	}
	log := h.Logger()
	b := h.Board()

	log.WriteLineString("longan " + buildinfo.Short() + ": variant " + string(cfg.Variant))
	hal.BringUp(b)

	var opts []uart.Option
	if cfg.PollLimit > 0 {
		opts = append(opts, uart.WithPollLimit(cfg.PollLimit))
	}
	t := uart.New(&b.UART0, opts...)

	var a command.Action
	switch cfg.Variant {
	case VariantHello:
		if _, err = t.WriteString(HelloMessage); err != nil {
			return fmt.Errorf("app: hello: %w", err)
		}
		log.WriteLineString("app: hello sent")
		return nil
	case VariantToggle:
		hal.InitLEDs(b)
		a = toggle.FromGPIO(h.GPIO(), toggle.WithLogger(log))
	case VariantFibonacci:
		var fo []fibonacci.Option
		if cfg.RejectNegative {
			fo = append(fo, fibonacci.WithRejectNegative())
		}
		if cfg.StrictParse {
			fo = append(fo, fibonacci.WithStrictParse())
		}
		a = fibonacci.New(fo...)
	default:
		return fmt.Errorf("app: unknown variant %q", cfg.Variant)
	}
	log.WriteLineString("app: bring-up done")

	var lo []command.Option
	if cfg.Trace {
		lo = append(lo, command.WithObserver(func(s command.State) {
			log.WriteLineString("loop: " + s.String())
		}))
	}
	if err = command.New(t, a, lo...).Run(); err != nil {
		return fmt.Errorf("app: command loop: %w", err)
	}
	return nil
}
