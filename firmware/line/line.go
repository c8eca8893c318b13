// Package line assembles received bytes into LF-terminated lines in a fixed
// buffer.
package line

import "io"

// Capacity is the size of the line buffer, terminator included.
const Capacity = 255

// LF ends a line. A preceding CR is kept as content.
const LF = 0x0A

// Assembler owns one line buffer. ReadLine results alias the buffer and are
// valid until the next call; only one call may be outstanding.
type Assembler struct {
	buf       [Capacity]byte
	n         int
	truncated bool
}

// ReadLine reads bytes from r until LF or until Capacity-1 bytes are stored,
// and returns the stored bytes. The LF, when received, is part of the result.
// The buffer is null-terminated right after the returned bytes.
//
// On overflow the line is cut at Capacity-1 bytes and Truncated reports
// true; the rest of the input line is returned by the following calls.
//
// A read error discards the partial line.
func (a *Assembler) ReadLine(r io.ByteReader) ([]byte, error) {
	a.n = 0
	a.truncated = false
	a.buf[0] = 0

	for {
		b, err := r.ReadByte()
		if err != nil {
			a.n = 0
			a.buf[0] = 0
			return nil, err
		}
		a.buf[a.n] = b
		a.n++

		if b == LF {
			a.buf[a.n] = 0
			return a.buf[:a.n], nil
		}
		if a.n == Capacity-1 {
			a.buf[a.n] = 0
			a.truncated = true
			return a.buf[:a.n], nil
		}
	}
}

// Truncated reports whether the last line hit the buffer limit before LF.
func (a *Assembler) Truncated() bool { return a.truncated }

// Raw returns the whole buffer, including the terminator and stale bytes
// past it.
func (a *Assembler) Raw() []byte { return a.buf[:] }
