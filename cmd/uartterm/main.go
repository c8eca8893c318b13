//go:build linux || darwin

// Command uartterm is a line-oriented terminal for the board's UART over a
// USB serial adapter.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"longan/internal/buildinfo"
	"longan/internal/capture"
	"longan/internal/config"
	"longan/internal/serialport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "uartterm:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath = flag.String("config", "", "YAML settings file; flags override it.")
		device  = flag.String("device", "", "Serial device, for example /dev/ttyUSB0.")
		baud    = flag.Int("baud", serialport.DefaultBaudRate, "Baud rate.")
		capPath = flag.String("capture", "", "Append traffic to this CBOR capture file.")
		list    = flag.Bool("list", false, "List serial devices and exit.")
	)
	version := flag.Bool("version", false, "Print the build stamp and exit.")
	flag.Parse()
	if *version {
		fmt.Println(buildinfo.String())
		return nil
	}

	if *list {
		ports, err := serialport.ListPorts()
		if err != nil {
			return err
		}
		for _, p := range ports {
			fmt.Println(p)
		}
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
		case "device":
			cfg.Serial.Device = *device
		case "baud":
			cfg.Serial.Baud = *baud
		case "capture":
			cfg.Capture = *capPath
		}
	})
	if cfg.Serial.Device == "" {
		return errors.New("no device; pass -device or set serial.device")
	}

	port, err := serialport.Open(serialport.Config{Device: cfg.Serial.Device, BaudRate: cfg.Serial.Baud})
	if err != nil {
		return err
	}
	defer port.Close()

	var rec *capture.Recorder
	if cfg.Capture != "" {
		if rec, err = capture.Create(cfg.Capture); err != nil {
			return err
		}
		defer rec.Close()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stderr(), "uartterm %s: %s at %d baud\n", buildinfo.Short(), port.Device(), cfg.Serial.Baud)

	done := make(chan struct{})
	readErr := make(chan error, 1)
	go func() { readErr <- receive(port, rl.Stdout(), rec, done) }()

	sendErr := prompt(rl, port, rec)
	close(done)
	if err := <-readErr; err != nil {
		return err
	}
	return sendErr
}

// prompt sends every entered line with a LF until the user quits.
func prompt(rl *readline.Instance, w io.Writer, rec *capture.Recorder) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := send(w, line, rec); err != nil {
			return err
		}
	}
}
