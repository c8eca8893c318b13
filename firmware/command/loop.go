// Package command runs the read-line, dispatch, respond cycle that turns
// serial input lines into actions and textual responses.
package command

import (
	"io"

	"longan/firmware/line"
)

// State is a CommandLoop state.
type State uint8

const (
	StateWaitingForLine State = iota
	StateDispatch
	StateRespond
)

func (s State) String() string {
	switch s {
	case StateWaitingForLine:
		return "waiting-for-line"
	case StateDispatch:
		return "dispatch"
	case StateRespond:
		return "respond"
	default:
		return "unknown"
	}
}

// Responder receives response text.
type Responder interface {
	io.Writer
	io.StringWriter
}

// Transceiver is the byte-level serial link.
type Transceiver interface {
	io.ByteReader
	Responder
}

// Action interprets lines. Dispatch decides and applies the effect of a
// line; Respond emits the text for the last dispatched line.
type Action interface {
	Banner() string
	Dispatch(line []byte)
	Respond(w Responder) error
}

// Loop is the command state machine. It is not safe for concurrent use.
type Loop struct {
	t       Transceiver
	a       Action
	asm     line.Assembler
	state   State
	line    []byte
	observe func(State)
}

// Option configures a Loop.
type Option func(*Loop)

// WithObserver calls fn on every state transition.
func WithObserver(fn func(State)) Option {
	return func(l *Loop) { l.observe = fn }
}

// New returns a Loop in StateWaitingForLine.
func New(t Transceiver, a Action, opts ...Option) *Loop {
	l := &Loop{t: t, a: a}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Truncated reports whether the last line overflowed the line buffer.
func (l *Loop) Truncated() bool { return l.asm.Truncated() }

func (l *Loop) enter(s State) {
	l.state = s
	if l.observe != nil {
		l.observe(s)
	}
}

// Banner sends the action's startup banner.
func (l *Loop) Banner() error {
	_, err := l.t.WriteString(l.a.Banner())
	return err
}

// Step runs one full cycle: wait for a line, dispatch it and send the
// response. It always ends in StateWaitingForLine. Errors only come from a
// Transceiver with bounded waits.
func (l *Loop) Step() error {
	for {
		switch l.state {
		case StateWaitingForLine:
			ln, err := l.asm.ReadLine(l.t)
			if err != nil {
				return err
			}
			l.line = ln
			l.enter(StateDispatch)
		case StateDispatch:
			l.a.Dispatch(l.line)
			l.enter(StateRespond)
		case StateRespond:
			err := l.a.Respond(l.t)
			l.line = nil
			l.enter(StateWaitingForLine)
			return err
		default:
			l.enter(StateWaitingForLine)
		}
	}
}

// Run sends the banner and cycles forever. It returns only on a Transceiver
// error.
func (l *Loop) Run() error {
	if err := l.Banner(); err != nil {
		return err
	}
	for {
		if err := l.Step(); err != nil {
			return err
		}
	}
}
