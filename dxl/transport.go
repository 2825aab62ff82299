package dxl

import "time"

// Transport is the minimal byte-oriented serial interface the driver
// requires from its host environment. Implementations are expected to be
// non-blocking on read: ReadByte/ReadBytes return immediately with
// (_, false) / 0 when nothing is buffered, rather than blocking
// until a byte arrives. See transport/serialport for a concrete
// implementation over a real OS serial port.
type Transport interface {
	// WriteByte sends a single byte. The base contract treats this as
	// infallible; transports that can fail should still return promptly.
	WriteByte(b byte)

	// WriteBytes sends every byte of p, in order. Equivalent to calling
	// WriteByte for each byte, batched for transports that benefit from it.
	WriteBytes(p []byte)

	// ReadByte returns the next buffered byte, if any. ok is false when no
	// byte is currently available; callers must not block waiting for one.
	ReadByte() (b byte, ok bool)

	// ReadBytes fills as much of p as is currently available and returns
	// the count. It never blocks.
	ReadBytes(p []byte) (n int)

	// ClearReadBuf discards any bytes currently buffered for reading. The
	// transaction engine calls this before every transmit, since a
	// half-duplex bus often echoes the host's own transmission into its own
	// receive queue.
	ClearReadBuf()
}

// Clock is a read-only monotonic time source. The driver only ever compares
// two readings against each other to detect timeout elapse, so resolution
// at or above one millisecond is sufficient.
type Clock interface {
	Now() time.Duration
}

// SystemClock is the default Clock, backed by the Go runtime's monotonic
// clock. No third-party monotonic-clock library is exercised anywhere in
// the retrieved reference corpus, so this one seam stays on the standard
// library (see DESIGN.md).
type SystemClock struct{ start time.Time }

// NewSystemClock returns a Clock whose Now() is relative to the moment it
// was constructed.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// Logger receives low-volume, debug-level visibility into the transaction
// engine's state machine. It is optional: a nil Logger is never invoked, so
// attaching one costs nothing on the hot path until enabled.
type Logger interface {
	Debugw(msg string, keyvals ...interface{})
	Warnw(msg string, keyvals ...interface{})
}
