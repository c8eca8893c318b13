package uart

import (
	"errors"
	"testing"

	"longan/hal"
)

type reg struct {
	get func() uint32
	set func(uint32)
}

func (r reg) Get() uint32 {
	if r.get == nil {
		return 0
	}
	return r.get()
}

func (r reg) Set(v uint32) {
	if r.set != nil {
		r.set(v)
	}
}

// fakePort is a USART whose transmit side becomes ready after txDelay
// status reads and whose receive side serves rx.
type fakePort struct {
	txDelay   int
	statReads int
	rx        []byte
	tx        []byte
	dataReads int
}

func (f *fakePort) uart() *hal.UART {
	return &hal.UART{
		STAT: reg{get: func() uint32 {
			f.statReads++
			var s uint32
			if f.statReads > f.txDelay {
				s |= hal.StatTBE
			}
			if len(f.rx) > 0 {
				s |= hal.StatRBNE
			}
			return s
		}},
		DATA: reg{
			get: func() uint32 {
				f.dataReads++
				if len(f.rx) == 0 {
					return 0
				}
				b := f.rx[0]
				f.rx = f.rx[1:]
				return uint32(b)
			},
			set: func(v uint32) { f.tx = append(f.tx, byte(v)) },
		},
	}
}

func TestWriteWaitsForTBE(t *testing.T) {
	f := &fakePort{txDelay: 10}
	tr := New(f.uart())

	if err := tr.WriteByte('A'); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if string(f.tx) != "A" {
		t.Fatalf("tx=%q", f.tx)
	}
	if f.statReads != 11 {
		t.Fatalf("expected 11 status reads, got %d", f.statReads)
	}
}

func TestWriteStringInOrder(t *testing.T) {
	f := &fakePort{}
	tr := New(f.uart())

	n, err := tr.WriteString("Toggling RED...\n")
	if err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if n != 16 || string(f.tx) != "Toggling RED...\n" {
		t.Fatalf("n=%d tx=%q", n, f.tx)
	}

	n, err = tr.Write([]byte{0, 0xFF})
	if err != nil || n != 2 {
		t.Fatalf("Write: n=%d err=%v", n, err)
	}
}

func TestReadByte(t *testing.T) {
	f := &fakePort{rx: []byte("5\n")}
	tr := New(f.uart())

	for _, want := range []byte("5\n") {
		got, err := tr.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte: %v", err)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestPollLimitTimesOut(t *testing.T) {
	f := &fakePort{txDelay: 100}
	tr := New(f.uart(), WithPollLimit(5))

	err := tr.WriteByte('x')
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if len(f.tx) != 0 {
		t.Fatal("expected no DATA write after timeout")
	}
	if f.statReads != 5 {
		t.Fatalf("expected 5 status reads, got %d", f.statReads)
	}

	_, err = tr.ReadByte()
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout on read, got %v", err)
	}
	if f.dataReads != 0 {
		t.Fatal("expected no DATA read after timeout")
	}
}

func TestWriteStringStopsAtTimeout(t *testing.T) {
	f := &fakePort{txDelay: 1 << 30}
	tr := New(f.uart(), WithPollLimit(3))

	n, err := tr.WriteString("abc")
	if n != 0 || !errors.Is(err, ErrTimeout) {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestPollLimitWithinBound(t *testing.T) {
	f := &fakePort{txDelay: 4, rx: []byte{'q'}}
	tr := New(f.uart(), WithPollLimit(5))

	if err := tr.WriteByte('x'); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	b, err := tr.ReadByte()
	if err != nil || b != 'q' {
		t.Fatalf("ReadByte: %q %v", b, err)
	}
}
