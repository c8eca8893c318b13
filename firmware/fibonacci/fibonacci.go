// Package fibonacci is the compute command set: each line is parsed as a
// signed integer n and answered with "F(n) = result".
package fibonacci

import (
	"errors"

	"longan/firmware/command"
	"longan/firmware/numeric"
)

// Banner is sent once at startup.
const Banner = "FIBONACCI NUMBER GENERATOR\nPlease enter a number...\n"

// Fib advances the accumulators n times from F(0)=0, F(1)=1. A count of zero
// or less performs no iterations, so Fib returns 0 for n <= 0. Results past
// F(46) wrap around in int32.
func Fib(n int32) int32 {
	var a, b, c int32 = 0, 1, 0
	for i := int32(0); i < n; i++ {
		a = b + c
		b = c
		c = a
	}
	return a
}

type outcome uint8

const (
	outcomeResult outcome = iota
	outcomeNegative
	outcomeOutOfRange
)

// Action computes Fibonacci numbers for typed input.
type Action struct {
	rejectNegative bool
	strict         bool

	f       numeric.Formatter
	n       int32
	result  int32
	outcome outcome
}

// Option configures an Action.
type Option func(*Action)

// WithRejectNegative answers negative input with a rejection instead of
// F(n) = 0.
func WithRejectNegative() Option {
	return func(a *Action) { a.rejectNegative = true }
}

// WithStrictParse answers input outside the int32 range with a rejection
// instead of treating it as 0.
func WithStrictParse() Option {
	return func(a *Action) { a.strict = true }
}

// New returns an Action.
func New(opts ...Option) *Action {
	a := &Action{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var _ command.Action = (*Action)(nil)

func (a *Action) Banner() string { return Banner }

func (a *Action) Dispatch(line []byte) {
	a.outcome = outcomeResult
	if a.strict {
		n, err := numeric.ParseIntChecked(line)
		if errors.Is(err, numeric.ErrOverflow) {
			a.outcome = outcomeOutOfRange
			return
		}
		a.n = n
	} else {
		a.n = numeric.ParseInt(line)
	}
	if a.rejectNegative && a.n < 0 {
		a.outcome = outcomeNegative
		return
	}
	a.result = Fib(a.n)
}

// Respond writes "F(n) = result\n". Each number is formatted into the
// scratch buffer and sent before the next one overwrites it.
func (a *Action) Respond(w command.Responder) error {
	switch a.outcome {
	case outcomeNegative:
		_, err := w.WriteString("Negative input rejected.\n")
		return err
	case outcomeOutOfRange:
		_, err := w.WriteString("Number out of range.\n")
		return err
	}

	if _, err := w.WriteString("F("); err != nil {
		return err
	}
	if _, err := w.Write(a.f.Format(a.n)); err != nil {
		return err
	}
	if _, err := w.WriteString(") = "); err != nil {
		return err
	}
	if _, err := w.Write(a.f.Format(a.result)); err != nil {
		return err
	}
	_, err := w.WriteString("\n")
	return err
}
