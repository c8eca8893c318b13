//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"longan/app"
	"longan/hal"
	"longan/internal/buildinfo"
	"longan/internal/capture"
	"longan/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath   = flag.String("config", "", "YAML settings file; flags override it.")
		variant   = flag.String("variant", "toggle", "Firmware variant: toggle, fibonacci or hello.")
		headless  = flag.Bool("headless", false, "Run on stdin/stdout without a window.")
		hz        = flag.Int("hz", 100, "Idle check rate in headless mode.")
		stay      = flag.Bool("stay", false, "Keep running in headless mode after stdin closes.")
		echo      = flag.Bool("echo", true, "Show typed input on the window console.")
		pollLimit = flag.Uint("poll-limit", 0, "Give up a UART wait after N status polls (0 = wait forever).")
		capPath   = flag.String("capture", "", "Append UART traffic to this CBOR capture file.")
		rejectNeg = flag.Bool("reject-negative", false, "fibonacci: reject negative input.")
		strict    = flag.Bool("strict-parse", false, "fibonacci: reject input outside the int32 range.")
		trace     = flag.Bool("trace", false, "Log command loop state transitions.")
	)
	version := flag.Bool("version", false, "Print the build stamp and exit.")
	flag.Parse()
	if *version {
		fmt.Println(buildinfo.String())
		return nil
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "variant":
			cfg.Variant = *variant
		case "headless":
			cfg.Headless = *headless
		case "poll-limit":
			cfg.PollLimit = uint32(*pollLimit)
		case "capture":
			cfg.Capture = *capPath
		case "reject-negative":
			cfg.RejectNegative = *rejectNeg
		case "strict-parse":
			cfg.StrictParse = *strict
		case "trace":
			cfg.Trace = *trace
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	var taps []hal.ByteTap
	if cfg.Capture != "" {
		rec, err := capture.Create(cfg.Capture)
		if err != nil {
			return err
		}
		defer rec.Close()
		fmt.Fprintln(os.Stderr, "capture: session", rec.Session())
		taps = append(taps, rec)
	}

	firmware := func(h hal.HAL) error { return app.Run(h, cfg.App()) }

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, firmware, hal.HeadlessConfig{Hz: *hz, Taps: taps, StayOnEOF: *stay})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return hal.RunWindow(firmware, hal.WindowConfig{Taps: taps, Echo: *echo})
}
