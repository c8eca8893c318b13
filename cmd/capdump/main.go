// Command capdump prints capture files, one line per event.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"longan/internal/capture"
)

func main() {
	session := flag.String("session", "", "Only print events from this session ID.")
	dir := flag.String("dir", "", "Only print RX or TX events.")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: capdump [flags] file.cbor...")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	filter := capture.Filter{Session: *session}
	switch *dir {
	case "":
	case "RX", "rx":
		d := capture.DirRX
		filter.Dir = &d
	case "TX", "tx":
		d := capture.DirTX
		filter.Dir = &d
	default:
		fmt.Fprintf(os.Stderr, "capdump: unknown direction %q\n", *dir)
		os.Exit(2)
	}

	for _, path := range flag.Args() {
		if err := dumpFile(os.Stdout, path, filter); err != nil {
			fmt.Fprintln(os.Stderr, "capdump:", err)
			os.Exit(1)
		}
	}
}

func dumpFile(w io.Writer, path string, filter capture.Filter) error {
	r, err := capture.Open(path, filter)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := dump(w, r); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func dump(w io.Writer, r *capture.Reader) error {
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s %s %s %q\n", ev.Time.Format(time.RFC3339Nano), ev.Dir, ev.Session, ev.Data); err != nil {
			return err
		}
	}
}
