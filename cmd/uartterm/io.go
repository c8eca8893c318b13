//go:build linux || darwin

package main

import (
	"errors"
	"io"

	"longan/internal/capture"
	"longan/internal/serialport"
)

// send writes one input line. The firmware only reacts to LF.
func send(w io.Writer, line string, rec *capture.Recorder) error {
	data := append([]byte(line), '\n')
	if _, err := w.Write(data); err != nil {
		return err
	}
	if rec != nil {
		rec.Record(capture.DirRX, data)
	}
	return nil
}

// receive copies device output to out until done is closed or the device
// goes away. Read timeouts only serve to notice done.
func receive(r io.Reader, out io.Writer, rec *capture.Recorder, done <-chan struct{}) error {
	buf := make([]byte, 256)
	for {
		select {
		case <-done:
			return nil
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return werr
			}
			if rec != nil {
				rec.Record(capture.DirTX, buf[:n])
			}
		}
		switch {
		case err == nil, errors.Is(err, serialport.ErrTimeout):
		case errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}
	}
}
