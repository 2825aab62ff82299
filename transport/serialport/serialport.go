// Package serialport implements dxl.Transport and dxl.Clock over a real OS
// serial port, using go.bug.st/serial in place of the raw termios/ioctl
// plumbing a platform-specific implementation would otherwise need.
package serialport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// pollTimeout is the read deadline handed to the underlying library on
// every poll. It is short enough that ReadBytes behaves like the
// dxl.Transport non-blocking contract requires: callers get control back
// quickly even with nothing buffered, instead of blocking for the whole
// packet timeout on one read call.
const pollTimeout = 2 * time.Millisecond

var supportedBaudRates = map[int]bool{
	9600: true, 19200: true, 38400: true, 57600: true,
	115200: true, 576000: true, 1000000: true,
	2000000: true, 3000000: true, 4000000: true,
}

// Port is a dxl.Transport/dxl.Clock pair backed by one open serial device.
type Port struct {
	port  serial.Port
	start time.Time
}

// Open opens portName at baudRate in 8N1 raw mode and arms a short poll
// timeout so Read calls return promptly with zero bytes when the bus is
// idle. baudRate must be one of the rates the X-series firmware accepts;
// an unsupported rate is rejected before touching the OS.
func Open(portName string, baudRate int) (*Port, error) {
	if !supportedBaudRates[baudRate] {
		return nil, fmt.Errorf("serialport: unsupported baud rate %d", baudRate)
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", portName, err)
	}
	if err := p.SetReadTimeout(pollTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("serialport: set read timeout: %w", err)
	}

	return &Port{port: p, start: time.Now()}, nil
}

// Close releases the underlying OS handle.
func (p *Port) Close() error { return p.port.Close() }

// WriteByte sends a single byte. Errors are swallowed per the
// dxl.Transport base contract (infallible write); a dead port surfaces as
// a receive timeout on the next transaction instead.
func (p *Port) WriteByte(b byte) { p.port.Write([]byte{b}) }

// WriteBytes sends every byte of data in one call.
func (p *Port) WriteBytes(data []byte) { p.port.Write(data) }

// ReadByte returns the next byte off the wire, if one arrives within the
// poll timeout.
func (p *Port) ReadByte() (byte, bool) {
	var b [1]byte
	n, err := p.port.Read(b[:])
	if err != nil || n == 0 {
		return 0, false
	}
	return b[0], true
}

// ReadBytes fills as much of buf as arrives within the poll timeout.
func (p *Port) ReadBytes(buf []byte) int {
	n, err := p.port.Read(buf)
	if err != nil {
		return 0
	}
	return n
}

// ClearReadBuf discards anything buffered in the OS driver, used before
// every transmit since a half-duplex RS-485 adapter echoes the host's own
// bytes back into its own receive queue.
func (p *Port) ClearReadBuf() { p.port.ResetInputBuffer() }

// Now implements dxl.Clock via the monotonic clock reading Go's time
// package keeps internally; no ecosystem monotonic-clock library is
// exercised anywhere in the retrieved corpus.
func (p *Port) Now() time.Duration { return time.Since(p.start) }
