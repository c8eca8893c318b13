//go:build linux || darwin

// Package serialport opens a host serial device in raw 8N1 mode for talking
// to the board's UART.
package serialport

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

var (
	ErrTimeout = errors.New("serialport: read timed out")
	ErrClosed  = errors.New("serialport: port closed")
)

// DefaultBaudRate matches the firmware's UART divisor.
const DefaultBaudRate = 115200

type Config struct {
	// Device path, for example /dev/ttyUSB0.
	Device string
	// BaudRate defaults to DefaultBaudRate.
	BaudRate int
	// ReadTimeout bounds a single Read. Zero means 100ms.
	ReadTimeout time.Duration
}

// Port is an open serial device. Read and Write may run on different
// goroutines.
type Port struct {
	mu      sync.Mutex
	fd      int
	device  string
	timeout time.Duration
	closed  bool
	saved   *unix.Termios
}

// ListPorts returns the USB serial devices present on this host.
func ListPorts() ([]string, error) {
	var patterns []string
	switch runtime.GOOS {
	case "linux":
		patterns = []string{"/dev/ttyUSB*", "/dev/ttyACM*"}
	case "darwin":
		patterns = []string{"/dev/cu.usbserial*", "/dev/cu.usbmodem*"}
	default:
		return nil, fmt.Errorf("serialport: unsupported platform %s", runtime.GOOS)
	}

	seen := map[string]bool{}
	var ports []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				ports = append(ports, m)
			}
		}
	}
	sort.Strings(ports)
	return ports, nil
}

// Open opens cfg.Device in raw mode: no echo, no line discipline, no
// CR/LF translation, 8 data bits, no parity, one stop bit.
func Open(cfg Config) (*Port, error) {
	if cfg.Device == "" {
		return nil, errors.New("serialport: device path required")
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 100 * time.Millisecond
	}
	speed, err := baudRateToSpeed(cfg.BaudRate)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Open(cfg.Device, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", cfg.Device, err)
	}

	saved, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("serialport: get termios: %w", err)
	}

	t := *saved
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON | unix.IXOFF | unix.IXANY
	t.Oflag &^= unix.OPOST
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.PARODD | unix.CSTOPB
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	setSpeed(&t, speed)
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &t); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("serialport: set termios: %w", err)
	}
	if err := unix.SetNonblock(fd, false); err != nil {
		unix.IoctlSetTermios(fd, ioctlSetTermios, saved)
		unix.Close(fd)
		return nil, fmt.Errorf("serialport: set blocking: %w", err)
	}

	return &Port{
		fd:      fd,
		device:  cfg.Device,
		timeout: cfg.ReadTimeout,
		saved:   saved,
	}, nil
}

// Read waits up to the read timeout for data. It returns ErrTimeout when
// nothing arrived and io.EOF once the device hangs up.
func (p *Port) Read(buf []byte) (int, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return 0, ErrClosed
	}
	fd, timeout := p.fd, p.timeout
	p.mu.Unlock()

	pfd := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(pfd, int(timeout.Milliseconds()))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, fmt.Errorf("serialport: poll: %w", err)
	}
	if n == 0 {
		return 0, ErrTimeout
	}
	if pfd[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
		return 0, io.EOF
	}

	n, err = unix.Read(fd, buf)
	if err != nil {
		return 0, fmt.Errorf("serialport: read: %w", err)
	}
	return n, nil
}

func (p *Port) Write(buf []byte) (int, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return 0, ErrClosed
	}
	fd := p.fd
	p.mu.Unlock()

	n, err := unix.Write(fd, buf)
	if err != nil {
		return n, fmt.Errorf("serialport: write: %w", err)
	}
	return n, nil
}

// Flush discards unread input and unsent output.
func (p *Port) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return unix.IoctlSetInt(p.fd, ioctlTCFlush, unix.TCIOFLUSH)
}

// Close restores the saved terminal settings and closes the device. It is
// safe to call more than once.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.saved != nil {
		_ = unix.IoctlSetTermios(p.fd, ioctlSetTermios, p.saved)
	}
	return unix.Close(p.fd)
}

func (p *Port) Device() string { return p.device }

// baudRateToSpeed maps the standard rates to termios speed constants.
func baudRateToSpeed(baud int) (uint32, error) {
	speeds := map[int]uint32{
		1200:   unix.B1200,
		2400:   unix.B2400,
		4800:   unix.B4800,
		9600:   unix.B9600,
		19200:  unix.B19200,
		38400:  unix.B38400,
		57600:  unix.B57600,
		115200: unix.B115200,
		230400: unix.B230400,
	}
	if s, ok := speeds[baud]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("serialport: unsupported baud rate %d", baud)
}
