package dxl

import (
	"runtime"
	"time"
)

const (
	// initialWaitLength is the minimum possible status frame length:
	// header(4)+id(1)+length(2)+inst(1)+error(1)+crc(2).
	initialWaitLength = 11
	// latencyClockMicros pads the timeout budget for bus/servo turnaround,
	// applied twice (once for the host's own latency, once for the
	// servo's), per the vendor SDK's timeout derivation.
	latencyClockMicros = 1000
	// fixedTimeoutMicros is the flat component of the timeout budget on
	// top of transmit duration and latency padding.
	fixedTimeoutMicros = 2000
)

// Driver is the transaction engine: it owns a Transport and a Clock and
// drives the send/receive state machine described in the packet-handler
// design. A Driver instance services exactly one transaction at a time; see
// is_using handling in enter/leave below.
type Driver struct {
	transport Transport
	clock     Clock
	logger    Logger

	baudRate      int
	txTimePerByte time.Duration

	packetStart   time.Duration
	packetTimeout time.Duration
	isUsing       bool

	stuffing bool

	buildBuf Buffer
}

// NewDriver constructs a Driver over transport, clocked by clock, for a bus
// running at baudRate bits per second. baudRate only affects the timeout
// budget computed per transaction; it does not configure the transport
// itself (that is the transport implementation's job).
func NewDriver(transport Transport, clock Clock, baudRate int) *Driver {
	return &Driver{
		transport:     transport,
		clock:         clock,
		baudRate:      baudRate,
		txTimePerByte: txTimePerByte(baudRate),
	}
}

// txTimePerByte derives the microsecond transmit duration of a single byte
// at baudRate, rounding up, per ⌈(1_000_000·8 + baudrate−1)/baudrate⌉.
func txTimePerByte(baudRate int) time.Duration {
	if baudRate <= 0 {
		return 0
	}
	micros := (1_000_000*8 + baudRate - 1) / baudRate
	return time.Duration(micros) * time.Microsecond
}

// SetLogger attaches an optional structured logger for transaction-engine
// visibility. Passing nil disables logging; it is the zero value, so this
// is only needed to turn logging on.
func (d *Driver) SetLogger(l Logger) { d.logger = l }

// EnableStuffing turns on Protocol 2.0 byte stuffing for outgoing payloads
// and destuffing for incoming ones. Off by default: the X-series
// control-table ranges this driver targets never produce the reserved
// 0xFF 0xFF 0xFD sequence in practice.
func (d *Driver) EnableStuffing(enable bool) { d.stuffing = enable }

func (d *Driver) logDebug(msg string, kv ...interface{}) {
	if d.logger != nil {
		d.logger.Debugw(msg, kv...)
	}
}

func (d *Driver) logWarn(msg string, kv ...interface{}) {
	if d.logger != nil {
		d.logger.Warnw(msg, kv...)
	}
}

// enter latches is_using for the duration of one transaction. It returns
// ErrPortBusy if a transaction is already in progress — the spec leaves
// re-entry rejection as an open question; this driver rejects it, since
// the cost of one bool check is zero next to the cost of interleaving two
// half-duplex transactions on the same wire.
func (d *Driver) enter() *CommError {
	if d.isUsing {
		return ErrPortBusy
	}
	d.isUsing = true
	return nil
}

func (d *Driver) leave() { d.isUsing = false }

// sendPacket stuffs buf's parameters when stuffing is enabled (rebuilding
// the length field and CRC), flushes stale echo bytes, writes buf to the
// transport, and arms the receive deadline for a response of up to the
// transmitted byte count. It does not itself fail: the base Transport
// contract is write-infallible (see Transport.WriteBytes).
func (d *Driver) sendPacket(buf *Buffer) {
	if d.stuffing {
		b := buf.Bytes()
		BuildFrame(buf, b[4], Instruction(b[7]), StuffPayload(b[8:len(b)-2]))
	}
	d.transport.ClearReadBuf()
	d.transport.WriteBytes(buf.Bytes())

	n := buf.Len()
	d.packetStart = d.clock.Now()
	d.packetTimeout = d.txTimePerByte*time.Duration(n) + 2*latencyClockMicros*time.Microsecond + fixedTimeoutMicros*time.Microsecond
	d.logDebug("tx", "bytes", n, "timeout", d.packetTimeout)
}

func findHeader3(buf []byte) int {
	for i := 0; i+2 < len(buf); i++ {
		if buf[i] == header0 && buf[i+1] == header1 && buf[i+2] == header2 {
			return i
		}
	}
	return -1
}

// receivePacket runs the resumable receive state machine until it produces
// a validated Status, a CRC error, or a timeout/corruption error at the
// deadline. Callers that invoke it multiple times within one transaction
// (sync-read) are responsible for the surrounding is_using latch; see
// enter/leave.
func (d *Driver) receivePacket() (Status, *CommError) {
	var buf Buffer
	waitLength := initialWaitLength
	one := make([]byte, 1)

	for {
		for buf.Len() < waitLength {
			n := d.transport.ReadBytes(one)
			if n == 0 {
				runtime.Gosched()
				break
			}
			buf.PutByte(one[0])
		}

		if buf.Len() < waitLength {
			if d.clock.Now() > d.packetStart+d.packetTimeout {
				if buf.Len() == 0 {
					return Status{}, ErrRxTimeout
				}
				d.logWarn("rx corrupt at deadline", "buffered", buf.Len())
				return Status{}, ErrRxCorrupt
			}
			continue
		}

		idx := findHeader3(buf.Bytes())
		if idx != 0 {
			if idx < 0 {
				idx = buf.Len() - 3
				if idx < 0 {
					idx = 0
				}
			}
			shiftLeft(&buf, idx)
			continue
		}

		b := buf.Bytes()
		length := uint16(b[5]) | uint16(b[6])<<8
		if b[3] != reserved || b[4] > 0xFC || length > MaxPacketLen || Instruction(b[7]) != InstStatus {
			shiftLeft(&buf, 1)
			continue
		}

		wantWait := int(length) + 7
		if waitLength != wantWait {
			waitLength = wantWait
			continue
		}

		if buf.Len() < waitLength {
			continue
		}

		status, err := ParseStatus(buf.Bytes())
		if err != nil {
			d.logWarn("rx crc error", "code", err.Code)
			return Status{}, err
		}
		if d.stuffing {
			status.Params = UnstuffPayload(status.Params)
		}
		d.logDebug("rx", "id", status.ID, "error", status.Error)
		return status, nil
	}
}

// shiftLeft drops the first n bytes of buf, compacting the remainder to the
// front. It is the in-place equivalent of the spec's "shift buffer left to
// drop preamble garbage" step.
func shiftLeft(buf *Buffer, n int) {
	if n <= 0 {
		return
	}
	b := buf.Bytes()
	if n >= len(b) {
		buf.Reset()
		return
	}
	copy(buf.data[:], b[n:])
	buf.n -= n
}
