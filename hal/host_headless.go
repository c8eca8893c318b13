//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	// Hz is the rate at which the runner checks for idle firmware.
	Hz int
	// Taps observe UART traffic in addition to the terminal.
	Taps []ByteTap
	// StayOnEOF keeps the runner alive after stdin closes.
	StayOnEOF bool
}

// RunHeadless runs firmware against the terminal without opening a window.
// It returns when ctx is done, when run returns, or once stdin is closed and
// the firmware is idle waiting for input.
func RunHeadless(ctx context.Context, run func(HAL) error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 100
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(os.Stderr)
	serial := newHostSerial(os.Stdout)
	h.uart.Attach(serial)
	for _, t := range cfg.Taps {
		h.uart.Attach(t)
	}
	go serial.pumpStdin(h.uart)

	done := make(chan error, 1)
	go func() { done <- run(h) }()

	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			serial.Flush()
			return ctx.Err()
		case err := <-done:
			serial.Flush()
			return err
		case <-t.C:
			serial.Flush()
			if !cfg.StayOnEOF && serial.EOF() && h.uart.Idle() {
				return nil
			}
		}
	}
}
