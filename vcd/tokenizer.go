package vcd

import (
	"bufio"
	"io"
)

// tokenizer is the byte feed shared by the header parser and both
// value-section scanners. It drains a pending replay buffer before the
// underlying reader, which is how a line rejected by the fast scanner
// is handed to the fallback scanner unconsumed.
type tokenizer struct {
	br      *bufio.Reader
	pending []byte
	pos     int
	fromPen bool
	tok     []byte // reusable token buffer
	lineBuf []byte // reusable line buffer for the fast path
}

func newTokenizer(r io.Reader, bufSize int) *tokenizer {
	return &tokenizer{br: bufio.NewReaderSize(r, bufSize)}
}

// pushBack arranges for line (plus its terminator, if it had one) to be
// re-read before any further input.
func (t *tokenizer) pushBack(line []byte, hadNL bool) {
	buf := append([]byte(nil), line...)
	if hadNL {
		buf = append(buf, '\n')
	}
	t.pending = buf
	t.pos = 0
}

func (t *tokenizer) hasPending() bool {
	return t.pos < len(t.pending)
}

func (t *tokenizer) readByte() (byte, error) {
	if t.pos < len(t.pending) {
		b := t.pending[t.pos]
		t.pos++
		t.fromPen = true
		return b, nil
	}
	t.fromPen = false
	return t.br.ReadByte()
}

// unreadByte undoes the last successful readByte.
func (t *tokenizer) unreadByte() {
	if t.fromPen {
		t.pos--
		return
	}
	t.br.UnreadByte()
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// next returns the next whitespace-delimited token, or io.EOF after the
// last one. The returned slice is valid until the next call.
func (t *tokenizer) next() ([]byte, error) {
	for {
		b, err := t.readByte()
		if err != nil {
			return nil, err
		}
		if !isSpaceByte(b) {
			t.tok = append(t.tok[:0], b)
			break
		}
	}
	for {
		b, err := t.readByte()
		if err == io.EOF {
			return t.tok, nil
		}
		if err != nil {
			return nil, err
		}
		if isSpaceByte(b) {
			return t.tok, nil
		}
		t.tok = append(t.tok, b)
	}
}

// skipLineRemainder consumes trailing spaces and at most one newline,
// leaving the feed at the start of the next line. Used after the header
// terminator so the fast scanner starts on a line boundary.
func (t *tokenizer) skipLineRemainder() {
	for {
		b, err := t.readByte()
		if err != nil {
			return
		}
		switch b {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return
		default:
			t.unreadByte()
			return
		}
	}
}

// readLine returns the next line without its '\n' terminator, and
// whether a terminator was present. io.EOF is returned only when no
// bytes remain at all.
func (t *tokenizer) readLine() (line []byte, hadNL bool, err error) {
	if t.hasPending() {
		start := t.pos
		for t.pos < len(t.pending) {
			if t.pending[t.pos] == '\n' {
				line = t.pending[start:t.pos]
				t.pos++
				return line, true, nil
			}
			t.pos++
		}
		// Pending ended without a newline; splice in the rest from
		// the underlying reader.
		t.lineBuf = append(t.lineBuf[:0], t.pending[start:]...)
		rest, hadNL, err := t.readLineRaw()
		if err == io.EOF {
			return t.lineBuf, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		t.lineBuf = append(t.lineBuf, rest...)
		return t.lineBuf, hadNL, nil
	}
	return t.readLineRaw()
}

// readLineRaw reads one line from the buffered reader, growing lineBuf
// only when a line straddles the buffer.
func (t *tokenizer) readLineRaw() (line []byte, hadNL bool, err error) {
	slice, err := t.br.ReadSlice('\n')
	if err == nil {
		return slice[:len(slice)-1], true, nil
	}
	if err == io.EOF {
		if len(slice) == 0 {
			return nil, false, io.EOF
		}
		return slice, false, nil
	}
	if err != bufio.ErrBufferFull {
		return nil, false, err
	}
	t.lineBuf = append(t.lineBuf[:0], slice...)
	for {
		slice, err = t.br.ReadSlice('\n')
		t.lineBuf = append(t.lineBuf, slice...)
		switch err {
		case nil:
			return t.lineBuf[:len(t.lineBuf)-1], true, nil
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			return t.lineBuf, false, nil
		default:
			return nil, false, err
		}
	}
}
