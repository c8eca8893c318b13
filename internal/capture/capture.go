// Package capture records UART traffic as a stream of CBOR events, one event
// per line in each direction.
package capture

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Direction is seen from the board.
type Direction uint8

const (
	// DirRX is traffic the board received.
	DirRX Direction = 0
	// DirTX is traffic the board sent.
	DirTX Direction = 1
)

func (d Direction) String() string {
	switch d {
	case DirRX:
		return "RX"
	case DirTX:
		return "TX"
	default:
		return "UNKNOWN"
	}
}

// Event is one captured line. Data keeps the terminating LF when there is
// one; partial lines are written when the recorder is flushed or closed.
type Event struct {
	Time    time.Time `cbor:"1,keyasint"`
	Session string    `cbor:"2,keyasint"`
	Dir     Direction `cbor:"3,keyasint"`
	Data    []byte    `cbor:"4,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("capture: cbor encoder mode: %v", err))
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyQuiet,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("capture: cbor decoder mode: %v", err))
	}
}

// maxPending bounds a single event when the peer never sends LF.
const maxPending = 1024

// Recorder collects bytes per direction into line events. It is safe for
// concurrent use and satisfies the simulator's byte tap contract.
type Recorder struct {
	mu      sync.Mutex
	enc     *cbor.Encoder
	closer  io.Closer
	session string
	now     func() time.Time
	pending [2][]byte
	err     error
	closed  bool
}

// NewRecorder writes events to w under a fresh session ID.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{
		enc:     encMode.NewEncoder(w),
		session: uuid.New().String(),
		now:     time.Now,
	}
}

// Create appends events to the file at path, creating it if needed.
func Create(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	r := NewRecorder(f)
	r.closer = f
	return r, nil
}

// Session returns the ID stamped on every event of this recorder.
func (r *Recorder) Session() string { return r.session }

func (r *Recorder) RX(b byte) { r.Record(DirRX, []byte{b}) }
func (r *Recorder) TX(b byte) { r.Record(DirTX, []byte{b}) }

// Record appends p to the pending line for dir and emits an event for
// every LF it completes.
func (r *Recorder) Record(dir Direction, p []byte) {
	if dir > DirTX {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	for _, b := range p {
		r.pending[dir] = append(r.pending[dir], b)
		if b == '\n' || len(r.pending[dir]) >= maxPending {
			r.emitLocked(dir)
		}
	}
}

func (r *Recorder) emitLocked(dir Direction) {
	data := r.pending[dir]
	if len(data) == 0 {
		return
	}
	r.pending[dir] = nil
	ev := Event{Time: r.now(), Session: r.session, Dir: dir, Data: data}
	if err := r.enc.Encode(ev); err != nil && r.err == nil {
		r.err = err
	}
}

// Flush writes partial lines as events.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emitLocked(DirRX)
	r.emitLocked(DirTX)
	return r.err
}

// Err returns the first encoding error.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close flushes and closes the underlying file if the recorder owns one.
// Later records are dropped.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.emitLocked(DirRX)
	r.emitLocked(DirTX)
	r.closed = true
	err := r.err
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
