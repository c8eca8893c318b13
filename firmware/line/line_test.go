package line

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadLineStopsAtLF(t *testing.T) {
	var a Assembler
	r := bytes.NewReader([]byte("12\nrest"))

	got, err := a.ReadLine(r)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if string(got) != "12\n" {
		t.Fatalf("got %q", got)
	}
	if a.Raw()[3] != 0 {
		t.Fatal("expected terminator after LF")
	}
	if a.Truncated() {
		t.Fatal("unexpected truncation")
	}
	if r.Len() != 4 {
		t.Fatalf("expected 4 unread bytes, got %d", r.Len())
	}
}

func TestReadLineKeepsCR(t *testing.T) {
	var a Assembler
	got, err := a.ReadLine(bytes.NewReader([]byte("1\r\n")))
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if string(got) != "1\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestReadLineTruncates(t *testing.T) {
	for _, n := range []int{Capacity - 1, Capacity, Capacity + 1, 3 * Capacity} {
		var a Assembler
		in := bytes.Repeat([]byte{'7'}, n)
		r := bytes.NewReader(in)

		got, err := a.ReadLine(r)
		if err != nil {
			t.Fatalf("n=%d: ReadLine: %v", n, err)
		}
		if len(got) != Capacity-1 {
			t.Fatalf("n=%d: length %d, want %d", n, len(got), Capacity-1)
		}
		if raw := a.Raw(); raw[Capacity-1] != 0 {
			t.Fatalf("n=%d: buffer not terminated at %d", n, Capacity-1)
		}
		if !a.Truncated() {
			t.Fatalf("n=%d: expected truncation", n)
		}
		if r.Len() != n-(Capacity-1) {
			t.Fatalf("n=%d: %d bytes left, want %d", n, r.Len(), n-(Capacity-1))
		}
	}
}

func TestReadLineLFAtLastSlot(t *testing.T) {
	var a Assembler
	in := append(bytes.Repeat([]byte{'a'}, Capacity-2), LF)

	got, err := a.ReadLine(bytes.NewReader(in))
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if len(got) != Capacity-1 || got[len(got)-1] != LF {
		t.Fatalf("unexpected line of length %d", len(got))
	}
	if a.Truncated() {
		t.Fatal("LF in the last slot is not a truncation")
	}
	if a.Raw()[Capacity-1] != 0 {
		t.Fatal("expected terminator in last slot")
	}
}

func TestReadLineRemainderIsNextLine(t *testing.T) {
	var a Assembler
	in := append(bytes.Repeat([]byte{'x'}, Capacity+2), LF)
	r := bytes.NewReader(in)

	if _, err := a.ReadLine(r); err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	got, err := a.ReadLine(r)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if string(got) != "xxx\n" {
		t.Fatalf("got %q", got)
	}
	if a.Truncated() {
		t.Fatal("second line is complete")
	}
}

func TestReadLineBufferReused(t *testing.T) {
	var a Assembler
	r := bytes.NewReader([]byte("first\n2\n"))

	first, _ := a.ReadLine(r)
	second, _ := a.ReadLine(r)
	if &first[0] != &second[0] {
		t.Fatal("expected both lines in the same buffer")
	}
	if string(second) != "2\n" {
		t.Fatalf("got %q", second)
	}
}

func TestReadLineError(t *testing.T) {
	var a Assembler
	boom := errors.New("boom")
	r := &failingReader{data: []byte("12"), err: boom}

	got, err := a.ReadLine(r)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil line, got %q", got)
	}
}

type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) ReadByte() (byte, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	b := r.data[0]
	r.data = r.data[1:]
	return b, nil
}
