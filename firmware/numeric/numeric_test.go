package numeric

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestParseInt(t *testing.T) {
	cases := []struct {
		in   string
		want int32
	}{
		{"0", 0},
		{"5", 5},
		{"+42", 42},
		{"-7", -7},
		{"-7\n", -7},
		{"12abc", 12},
		{"12 34", 12},
		{"\r\n", 0},
		{"", 0},
		{"-", 0},
		{"+", 0},
		{"abc", 0},
		{" 5", 0},
		{"--5", 0},
		{"007", 7},
		{"2147483647", math.MaxInt32},
		{"-2147483648", math.MinInt32},
		{"2147483648", 0},
		{"-2147483649", 0},
		{"99999999999999999999", 0},
	}
	for _, tc := range cases {
		if got := ParseInt([]byte(tc.in)); got != tc.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseIntChecked(t *testing.T) {
	for _, in := range []string{"2147483648", "-2147483649", "+99999999999"} {
		if _, err := ParseIntChecked([]byte(in)); !errors.Is(err, ErrOverflow) {
			t.Errorf("ParseIntChecked(%q): expected ErrOverflow, got %v", in, err)
		}
	}
	n, err := ParseIntChecked([]byte("0"))
	if err != nil || n != 0 {
		t.Fatalf("ParseIntChecked(0) = %d, %v", n, err)
	}
	n, err = ParseIntChecked([]byte("-2147483648"))
	if err != nil || n != math.MinInt32 {
		t.Fatalf("ParseIntChecked(min) = %d, %v", n, err)
	}
}

func TestFormat(t *testing.T) {
	var f Formatter
	for _, n := range []int32{0, 1, -1, 9, 10, -10, 55, 1234567, math.MaxInt32, math.MinInt32} {
		if got, want := string(f.Format(n)), strconv.FormatInt(int64(n), 10); got != want {
			t.Errorf("Format(%d) = %q, want %q", n, got, want)
		}
	}
	if got := FormatInt(0); got != "0" {
		t.Fatalf("FormatInt(0) = %q", got)
	}
}

func TestFormatReusesScratch(t *testing.T) {
	var f Formatter
	a := f.Format(123)
	b := f.Format(-9)
	if &a[0] != &b[0] {
		t.Fatal("expected results to share the scratch buffer")
	}
	if string(b) != "-9" || string(a[:2]) != "-9" {
		t.Fatalf("got %q, earlier result now %q", b, a)
	}
}

func TestRoundTrip(t *testing.T) {
	var f Formatter
	values := []int32{math.MinInt32, math.MinInt32 + 1, -1000000, -1, 0, 1, 7, 1 << 20, math.MaxInt32 - 1, math.MaxInt32}
	for n := int32(-2000); n <= 2000; n += 7 {
		values = append(values, n)
	}
	for _, n := range values {
		if got := ParseInt(f.Format(n)); got != n {
			t.Fatalf("ParseInt(Format(%d)) = %d", n, got)
		}
	}
}
