package capture

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects events. Zero fields match everything.
type Filter struct {
	Session string
	Dir     *Direction
}

func (f Filter) matches(ev Event) bool {
	if f.Session != "" && ev.Session != f.Session {
		return false
	}
	if f.Dir != nil && ev.Dir != *f.Dir {
		return false
	}
	return true
}

// Reader streams events from a capture.
type Reader struct {
	dec    *cbor.Decoder
	closer io.Closer
	filter Filter
}

// NewReader reads events from r.
func NewReader(r io.Reader, filter Filter) *Reader {
	return &Reader{dec: decMode.NewDecoder(r), filter: filter}
}

// Open reads events from the file at path.
func Open(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	r := NewReader(f, filter)
	r.closer = f
	return r, nil
}

// Next returns the next matching event, or io.EOF at the end of the stream.
func (r *Reader) Next() (Event, error) {
	for {
		var ev Event
		if err := r.dec.Decode(&ev); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, fmt.Errorf("capture: decode: %w", err)
		}
		if r.filter.matches(ev) {
			return ev, nil
		}
	}
}

// Close closes the file opened by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
