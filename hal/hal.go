package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// LED pin indices in the GPIO returned by HAL.GPIO.
const (
	PinRed = iota
	PinGreen
	PinBlue
)

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	Board() *Board
	GPIO() GPIO
}

type nopLogger struct{}

func (nopLogger) WriteLineString(string) {}
func (nopLogger) WriteLineBytes([]byte)  {}
