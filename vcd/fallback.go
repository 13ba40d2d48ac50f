package vcd

import (
	"io"
	"strconv"
)

// The fallback scanner is a general whitespace-run tokenizer: it
// tolerates blank lines, carriage returns, interleaved comments, and
// any legal spacing between a vector prefix, its bit symbols, and the
// trailing identifier. Correctness over speed.

// fallbackNext produces the next Event with the tolerant scanner.
func (r *Reader) fallbackNext() (Event, error) {
	for {
		tok, err := r.t.next()
		if err == io.EOF {
			return Event{}, io.EOF
		}
		if err != nil {
			return Event{}, err
		}
		switch b := tok[0]; {
		case b == '#':
			t, ok := parseUint64(tok[1:])
			if !ok {
				return Event{}, &SyntaxError{Reason: "malformed timestamp " + strconv.Quote(string(tok))}
			}
			return r.dispatch(Event{Kind: EventTimestamp, Time: t})

		case isValueByte(b):
			if len(tok) < 2 {
				return Event{}, &SyntaxError{Reason: "scalar change without identifier"}
			}
			v, _ := parseValue(b)
			id, err := DecodeID(tok[1:], r.order)
			if err != nil {
				return Event{}, err
			}
			return r.dispatch(Event{Kind: EventScalar, ID: id, Scalar: v})

		case b == 'b' || b == 'B':
			ev, err := r.fallbackVector(tok[1:])
			if err != nil {
				return Event{}, err
			}
			return r.dispatch(ev)

		case b == 'r' || b == 'R':
			body, id, err := r.fallbackBodyAndID(tok[1:], "real change")
			if err != nil {
				return Event{}, err
			}
			f, perr := strconv.ParseFloat(string(body), 64)
			if perr != nil {
				return Event{}, &SyntaxError{Reason: "malformed real value " + strconv.Quote(string(body))}
			}
			return r.dispatch(Event{Kind: EventReal, ID: id, Real: f})

		case b == 's' || b == 'S':
			body, id, err := r.fallbackBodyAndID(tok[1:], "string change")
			if err != nil {
				return Event{}, err
			}
			return r.dispatch(Event{Kind: EventString, ID: id, Str: makeCompactStrBytes(body)})

		case b == '$':
			ev, emit, err := r.fallbackKeyword(tok)
			if err != nil {
				return Event{}, err
			}
			if emit {
				return r.dispatch(ev)
			}
			// Unknown command skipped; keep scanning.

		default:
			return Event{}, &SyntaxError{Reason: "unexpected token " + strconv.Quote(string(tok))}
		}
	}
}

// fallbackVector reads a vector change. The bit run may be part of the
// prefix token or a separate token; the identifier always follows.
func (r *Reader) fallbackVector(bits []byte) (Event, error) {
	if len(bits) == 0 {
		tok, err := r.t.next()
		if err == io.EOF {
			return Event{}, &UnexpectedEOFError{Context: "vector change"}
		}
		if err != nil {
			return Event{}, err
		}
		bits = tok
	}
	vec, err := VecValueFromBits(bits)
	if err != nil {
		return Event{}, err
	}
	idTok, err := r.t.next()
	if err == io.EOF {
		return Event{}, &UnexpectedEOFError{Context: "vector change"}
	}
	if err != nil {
		return Event{}, err
	}
	id, err := DecodeID(idTok, r.order)
	if err != nil {
		return Event{}, err
	}
	return Event{Kind: EventVector, ID: id, Vector: vec}, nil
}

// fallbackBodyAndID reads "<body> <token>" where the body is glued to
// the prefix symbol (and may be empty, as in a string change "s !").
func (r *Reader) fallbackBodyAndID(body []byte, ctx string) ([]byte, IDCode, error) {
	// The token buffer is reused by the next read; keep the body.
	body = append([]byte(nil), body...)
	idTok, err := r.t.next()
	if err == io.EOF {
		return nil, 0, &UnexpectedEOFError{Context: ctx}
	}
	if err != nil {
		return nil, 0, err
	}
	id, err := DecodeID(idTok, r.order)
	if err != nil {
		return nil, 0, err
	}
	return body, id, nil
}

// fallbackKeyword handles '$' commands in the value section. Comments
// become events; dump-state keywords become Begin markers; a bare $end
// becomes an End marker; anything else is skipped through its $end.
func (r *Reader) fallbackKeyword(tok []byte) (Event, bool, error) {
	if cmd, ok := parseSimCommand(tok); ok {
		return Event{Kind: EventBegin, Cmd: cmd}, true, nil
	}
	switch string(tok) {
	case "$end":
		return Event{Kind: EventEnd}, true, nil
	case "$comment":
		text, err := r.fallbackUntilEnd("$comment")
		if err != nil {
			return Event{}, false, err
		}
		return Event{Kind: EventComment, Str: MakeCompactStr(text)}, true, nil
	default:
		if _, err := r.fallbackUntilEnd(string(tok)); err != nil {
			return Event{}, false, err
		}
		return Event{}, false, nil
	}
}

// fallbackUntilEnd collects tokens up to $end, joined by single spaces.
func (r *Reader) fallbackUntilEnd(ctx string) (string, error) {
	var out []byte
	for {
		tok, err := r.t.next()
		if err == io.EOF {
			return "", &UnexpectedEOFError{Context: ctx}
		}
		if err != nil {
			return "", err
		}
		if string(tok) == "$end" {
			return string(out), nil
		}
		if len(out) > 0 {
			out = append(out, ' ')
		}
		out = append(out, tok...)
	}
}
