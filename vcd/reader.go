package vcd

import (
	"io"
	"strconv"
)

// Mode selects the value-section scanning strategy.
type Mode uint8

const (
	// ModeAuto starts on the fast scanner and drops to the fallback
	// scanner permanently on the first FastPathViolation, re-scanning
	// the offending line. This is the default.
	ModeAuto Mode = iota

	// ModeFast uses only the fast scanner. Violations are surfaced to
	// the caller, who may call UseFallback and retry.
	ModeFast

	// ModeFallback uses only the tolerant fallback scanner.
	ModeFallback
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeFast:
		return "fast"
	case ModeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// readerState tracks where the Reader is in the stream.
type readerState uint8

const (
	stateHeader readerState = iota // declarations not yet consumed
	stateValues                    // inside the value-change section
	stateDone                      // clean end of stream
	stateFailed                    // terminal error recorded
)

const defaultBufferSize = 1 << 20

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMode selects the scanning mode (default ModeAuto).
func WithMode(m Mode) ReaderOption {
	return func(r *Reader) { r.mode = m }
}

// WithIDOrder selects the identifier byte order (default OrderNatural).
func WithIDOrder(o IDOrder) ReaderOption {
	return func(r *Reader) { r.order = o }
}

// WithBufferSize sets the read buffer size in bytes (default 1 MiB).
func WithBufferSize(n int) ReaderOption {
	return func(r *Reader) { r.bufSize = n }
}

// WithStrictTime makes a decreasing timestamp a terminal error instead
// of being passed through.
func WithStrictTime() ReaderOption {
	return func(r *Reader) { r.strictTime = true }
}

// Reader is a lazy, finite, non-restartable sequence of Events parsed
// from a VCD byte stream. It is single-threaded and pull-based: each
// Next call performs exactly the I/O needed for one Event. A Reader
// must not be shared across goroutines.
type Reader struct {
	t          *tokenizer
	mode       Mode
	order      IDOrder
	bufSize    int
	strictTime bool

	header     *Header
	headerErr  error
	headerDone bool

	state   readerState
	err     error // sticky terminal error
	useFast bool

	time    uint64
	hasTime bool
	dumpCmd SimCommand
	inDump  bool
}

// NewReader creates a Reader over r. The header is parsed lazily on the
// first Header or Next call.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	rd := &Reader{
		mode:    ModeAuto,
		order:   OrderNatural,
		bufSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(rd)
	}
	if rd.bufSize < 16 {
		rd.bufSize = 16
	}
	rd.t = newTokenizer(r, rd.bufSize)
	rd.useFast = rd.mode != ModeFallback
	return rd
}

// Header parses the declarations section if it has not been consumed
// yet and returns it. The returned Header is read-only.
func (r *Reader) Header() (*Header, error) {
	if !r.headerDone {
		r.headerDone = true
		r.header, r.headerErr = parseHeader(r.t, r.order)
		if r.headerErr != nil {
			r.state = stateFailed
			r.err = r.headerErr
		} else {
			// Leave the feed on a line boundary for the fast scanner.
			r.t.skipLineRemainder()
			r.state = stateValues
		}
	}
	return r.header, r.headerErr
}

// Mode returns the currently active scanning mode. In ModeAuto this
// reflects whether the fast scanner is still engaged.
func (r *Reader) Mode() Mode {
	if r.mode == ModeAuto {
		if r.useFast {
			return ModeFast
		}
		return ModeFallback
	}
	return r.mode
}

// UseFallback switches the Reader to the fallback scanner. After a
// FastPathViolation in ModeFast, the rejected line is still unconsumed
// and the next call to Next re-scans it tolerantly.
func (r *Reader) UseFallback() {
	r.mode = ModeFallback
	r.useFast = false
}

// Next returns the next Event. It returns io.EOF at a clean end of
// stream. All errors except *FastPathViolationError are terminal: once
// one is returned, every subsequent call returns it again.
func (r *Reader) Next() (Event, error) {
	if r.err != nil {
		return Event{}, r.err
	}
	if r.state == stateDone {
		return Event{}, io.EOF
	}
	if !r.headerDone {
		if _, err := r.Header(); err != nil {
			return Event{}, err
		}
	}

	var ev Event
	var err error
	if r.useFast {
		ev, err = r.fastNext()
		if IsFastPathViolation(err) {
			if r.mode != ModeAuto {
				// Not sticky: the rejected line stays pending so the
				// caller can switch scanners and retry.
				return Event{}, err
			}
			r.useFast = false
			ev, err = r.fallbackNext()
		}
	} else {
		ev, err = r.fallbackNext()
	}
	if err != nil {
		if err == io.EOF {
			r.state = stateDone
			return Event{}, io.EOF
		}
		r.state = stateFailed
		r.err = err
		return Event{}, err
	}
	return ev, nil
}

// fastNext pulls one line and runs the strict scanner over it. On a
// violation the line is pushed back so the fallback scanner (or a
// retried fast scan) sees the identical bytes.
func (r *Reader) fastNext() (Event, error) {
	line, hadNL, err := r.t.readLine()
	if err == io.EOF {
		return Event{}, io.EOF
	}
	if err != nil {
		return Event{}, err
	}
	ev, err := fastScanLine(line, hadNL, r.order)
	if err != nil {
		r.t.pushBack(line, hadNL)
		return Event{}, err
	}
	return r.dispatch(ev)
}

// dispatch applies the stream-level invariants shared by both scanners:
// identifier existence, vector width, timestamp monotonicity, and
// dump-section bookkeeping.
func (r *Reader) dispatch(ev Event) (Event, error) {
	switch ev.Kind {
	case EventTimestamp:
		if r.strictTime && r.hasTime && ev.Time < r.time {
			return Event{}, &SyntaxError{
				Reason: "timestamp " + strconv.FormatUint(ev.Time, 10) +
					" decreases from " + strconv.FormatUint(r.time, 10),
			}
		}
		r.time = ev.Time
		r.hasTime = true
	case EventScalar, EventReal, EventString:
		if r.header.LookupID(ev.ID) == nil {
			return Event{}, &UnknownIDError{ID: ev.ID}
		}
	case EventVector:
		v := r.header.LookupID(ev.ID)
		if v == nil {
			return Event{}, &UnknownIDError{ID: ev.ID}
		}
		if ev.Vector.Width() != v.Width {
			return Event{}, &WidthMismatchError{ID: ev.ID, Got: ev.Vector.Width(), Want: v.Width}
		}
	case EventBegin:
		r.dumpCmd = ev.Cmd
		r.inDump = true
	case EventEnd:
		ev.Cmd = r.dumpCmd
		r.inDump = false
	}
	return ev, nil
}
