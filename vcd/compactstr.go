package vcd

// compactInline is the number of bytes a CompactStr stores without a
// heap allocation. Identifier tokens are almost always 1-3 bytes.
const compactInline = 15

// CompactStr is an immutable text holder with a small-buffer
// optimization: up to compactInline bytes live inline in the struct,
// longer text spills to a regular string.
type CompactStr struct {
	buf [compactInline]byte
	n   uint8 // length when inline, spilled when n == compactInline+1
	str string
}

const compactSpilled = compactInline + 1

// MakeCompactStr builds a CompactStr from s.
func MakeCompactStr(s string) CompactStr {
	var c CompactStr
	if len(s) <= compactInline {
		c.n = uint8(copy(c.buf[:], s))
		return c
	}
	c.n = compactSpilled
	c.str = s
	return c
}

// makeCompactStrBytes builds a CompactStr from b without retaining b.
func makeCompactStrBytes(b []byte) CompactStr {
	var c CompactStr
	if len(b) <= compactInline {
		c.n = uint8(copy(c.buf[:], b))
		return c
	}
	c.n = compactSpilled
	c.str = string(b)
	return c
}

// IsInline reports whether the text is stored inline.
func (c *CompactStr) IsInline() bool {
	return c.n != compactSpilled
}

// Len returns the text length in bytes.
func (c *CompactStr) Len() int {
	if c.n == compactSpilled {
		return len(c.str)
	}
	return int(c.n)
}

// Bytes returns the text as a byte slice. The slice must not be
// modified.
func (c *CompactStr) Bytes() []byte {
	if c.n == compactSpilled {
		return []byte(c.str)
	}
	return c.buf[:c.n]
}

// String returns the text.
func (c CompactStr) String() string {
	if c.n == compactSpilled {
		return c.str
	}
	return string(c.buf[:c.n])
}

// Equal reports whether two CompactStrs hold the same text.
func (c *CompactStr) Equal(o CompactStr) bool {
	return c.String() == o.String()
}
