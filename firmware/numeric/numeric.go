// Package numeric converts between ASCII decimal text and int32 without
// allocating.
package numeric

import (
	"errors"
	"math"
)

// ErrOverflow is returned by ParseIntChecked when the value does not fit in
// an int32.
var ErrOverflow = errors.New("numeric: value out of int32 range")

// ParseInt parses an optional sign followed by decimal digits. Scanning stops
// at the first non-digit. Input with no digits is 0, and so is input whose
// magnitude overflows int32.
func ParseInt(s []byte) int32 {
	n, err := ParseIntChecked(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseIntChecked is ParseInt with overflow reported as ErrOverflow instead
// of collapsing to 0.
func ParseIntChecked(s []byte) (int32, error) {
	neg := false
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}

	// The total is accumulated negated so that math.MinInt32 is reachable.
	var sum int64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		sum = sum*10 - int64(s[i]-'0')
		if sum < math.MinInt32 || (!neg && -sum > math.MaxInt32) {
			return 0, ErrOverflow
		}
	}
	if !neg {
		sum = -sum
	}
	return int32(sum), nil
}

// MaxDigits is the longest Format output, "-2147483648".
const MaxDigits = 11

// Formatter renders integers into its own scratch buffer.
type Formatter struct {
	buf [MaxDigits]byte
}

// Format writes n in decimal. The result aliases the scratch buffer and is
// overwritten by the next call.
func (f *Formatter) Format(n int32) []byte {
	if n == 0 {
		f.buf[0] = '0'
		return f.buf[:1]
	}

	neg := n < 0
	// Magnitude in uint32 so that -math.MinInt32 does not overflow.
	u := uint32(n)
	if neg {
		u = -u
	}

	i := 0
	for u != 0 {
		f.buf[i] = byte(u%10) + '0'
		u /= 10
		i++
	}
	if neg {
		f.buf[i] = '-'
		i++
	}

	for l, r := 0, i-1; l < r; l, r = l+1, r-1 {
		f.buf[l], f.buf[r] = f.buf[r], f.buf[l]
	}
	return f.buf[:i]
}

// FormatInt is Format into a fresh string.
func FormatInt(n int32) string {
	var f Formatter
	return string(f.Format(n))
}
