package vcd

import (
	"bytes"
	"strconv"
)

// The fast scanner exploits the emission pattern of the major
// simulators: exactly one command per line, no leading or trailing
// whitespace, single ASCII-space separators, LF terminators with no
// carriage returns, and no blank lines inside the value section.
//
// It is strict by design. Any deviation from that contract, and any
// byte sequence it cannot fully decode, yields a FastPathViolationError
// instead of an attempt at recovery; the fallback scanner then decides
// whether the line is genuinely malformed. A line is either decoded
// into exactly one Event or rejected whole.

func violation(reason string) error {
	return &FastPathViolationError{Reason: reason}
}

// fastScanLine decodes one value-section line, decoding identifier
// tokens under the given byte order.
func fastScanLine(line []byte, hadNL bool, order IDOrder) (Event, error) {
	if !hadNL {
		return Event{}, violation("line without LF terminator")
	}
	if len(line) == 0 {
		return Event{}, violation("blank line")
	}
	if line[len(line)-1] == '\r' {
		return Event{}, violation("carriage return before terminator")
	}
	switch b := line[0]; {
	case b == '#':
		t, ok := parseUint64(line[1:])
		if !ok {
			return Event{}, violation("malformed timestamp")
		}
		return Event{Kind: EventTimestamp, Time: t}, nil

	case isValueByte(b):
		v, _ := parseValue(b)
		id, err := fastID(line[1:], order)
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: EventScalar, ID: id, Scalar: v}, nil

	case b == 'b' || b == 'B':
		sp := bytes.LastIndexByte(line, ' ')
		if sp < 0 {
			return Event{}, violation("vector change without separator")
		}
		bits := line[1:sp]
		if len(bits) == 0 {
			return Event{}, violation("vector change without bit symbols")
		}
		vec := NewVecValue(len(bits))
		for i, c := range bits {
			v, ok := parseValue(c)
			if !ok {
				return Event{}, violation("unexpected byte in vector bit run")
			}
			vec.setBitRaw(i, v)
		}
		id, err := fastID(line[sp+1:], order)
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: EventVector, ID: id, Vector: vec}, nil

	case b == 'r' || b == 'R':
		body, id, err := fastSplit(line[1:], order)
		if err != nil {
			return Event{}, err
		}
		f, perr := strconv.ParseFloat(string(body), 64)
		if perr != nil {
			return Event{}, violation("malformed real value")
		}
		return Event{Kind: EventReal, ID: id, Real: f}, nil

	case b == 's' || b == 'S':
		body, id, err := fastSplit(line[1:], order)
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: EventString, ID: id, Str: makeCompactStrBytes(body)}, nil

	case b == '$':
		return fastScanKeyword(line)

	default:
		return Event{}, violation("unrecognized leading byte")
	}
}

// fastID decodes an identifier token that must run to end of line with
// no embedded whitespace. Decode failures are violations here: the
// fallback scanner decides whether the token is terminally invalid.
func fastID(tok []byte, order IDOrder) (IDCode, error) {
	id, err := DecodeID(tok, order)
	if err != nil {
		return 0, violation("undecodable identifier token")
	}
	return id, nil
}

// fastSplit separates "<body> <token>" on the single permitted space.
func fastSplit(rest []byte, order IDOrder) ([]byte, IDCode, error) {
	sp := bytes.IndexByte(rest, ' ')
	if sp < 0 {
		return nil, 0, violation("change without separator")
	}
	tok := rest[sp+1:]
	if bytes.IndexByte(tok, ' ') >= 0 {
		return nil, 0, violation("multiple separators on change line")
	}
	id, err := fastID(tok, order)
	if err != nil {
		return nil, 0, err
	}
	return rest[:sp], id, nil
}

// fastScanKeyword handles the '$' commands the fast path admits:
// dump-state markers, a bare $end, and a single-line $comment.
func fastScanKeyword(line []byte) (Event, error) {
	if cmd, ok := parseSimCommand(line); ok {
		return Event{Kind: EventBegin, Cmd: cmd}, nil
	}
	if string(line) == "$end" {
		return Event{Kind: EventEnd}, nil
	}
	const prefix = "$comment "
	const suffix = " $end"
	if bytes.HasPrefix(line, []byte(prefix)) && bytes.HasSuffix(line, []byte(suffix)) {
		// Normalize interior whitespace the way the fallback
		// tokenizer does, so both scanners agree on comment text.
		body := bytes.Join(bytes.Fields(line[len(prefix):len(line)-len(suffix)]), []byte(" "))
		return Event{Kind: EventComment, Str: makeCompactStrBytes(body)}, nil
	}
	return Event{}, violation("unsupported $ command on fast path")
}

// parseUint64 parses a non-empty all-digit run with overflow checking.
func parseUint64(digits []byte) (uint64, bool) {
	if len(digits) == 0 {
		return 0, false
	}
	var n uint64
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0, false
		}
		if n > (1<<64-1)/10 {
			return 0, false
		}
		n *= 10
		add := uint64(d - '0')
		if n > 1<<64-1-add {
			return 0, false
		}
		n += add
	}
	return n, true
}
