package vcd

// EventKind tags an Event.
type EventKind uint8

const (
	// EventTimestamp advances simulated time; Time carries the new
	// value.
	EventTimestamp EventKind = iota

	// EventScalar is a single-bit change; ID and Scalar are set.
	EventScalar

	// EventVector is a multi-bit change; ID and Vector are set.
	EventVector

	// EventReal is a floating-point change; ID and Real are set.
	EventReal

	// EventString is a string-valued change; ID and Str are set.
	EventString

	// EventBegin marks the start of a dump-state section ($dumpvars,
	// $dumpall, $dumpoff, $dumpon); Cmd is set.
	EventBegin

	// EventEnd marks the $end of a dump-state section; Cmd is set.
	EventEnd

	// EventComment is a $comment in the value section; Str is set.
	EventComment
)

// String returns the kind name.
func (k EventKind) String() string {
	switch k {
	case EventTimestamp:
		return "timestamp"
	case EventScalar:
		return "scalar"
	case EventVector:
		return "vector"
	case EventReal:
		return "real"
	case EventString:
		return "string"
	case EventBegin:
		return "begin"
	case EventEnd:
		return "end"
	case EventComment:
		return "comment"
	default:
		return "unknown"
	}
}

// SimCommand identifies a dump-state section keyword.
type SimCommand uint8

const (
	Dumpall SimCommand = iota
	Dumpoff
	Dumpon
	Dumpvars
)

// String returns the keyword without the leading '$'.
func (c SimCommand) String() string {
	switch c {
	case Dumpall:
		return "dumpall"
	case Dumpoff:
		return "dumpoff"
	case Dumpon:
		return "dumpon"
	case Dumpvars:
		return "dumpvars"
	default:
		return "?"
	}
}

// parseSimCommand matches a '$'-prefixed keyword token.
func parseSimCommand(tok []byte) (SimCommand, bool) {
	switch string(tok) {
	case "$dumpall":
		return Dumpall, true
	case "$dumpoff":
		return Dumpoff, true
	case "$dumpon":
		return Dumpon, true
	case "$dumpvars":
		return Dumpvars, true
	default:
		return 0, false
	}
}

// Event is one element of the value-change stream. The Kind field
// selects which of the remaining fields carry data; events are plain
// values and are never retained by the Reader.
type Event struct {
	Kind   EventKind
	Time   uint64
	ID     IDCode
	Scalar Value
	Vector VecValue
	Real   float64
	Str    CompactStr
	Cmd    SimCommand
}
