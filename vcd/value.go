package vcd

// Value is a four-valued logic scalar, stored in two bits.
type Value uint8

const (
	V0 Value = 0 // logic low
	V1 Value = 1 // logic high
	VX Value = 2 // uninitialized or unknown
	VZ Value = 3 // high impedance
)

// parseValue decodes a single bit symbol. ok is false for anything
// outside 0, 1, x, X, z, Z.
func parseValue(b byte) (Value, bool) {
	switch b {
	case '0':
		return V0, true
	case '1':
		return V1, true
	case 'x', 'X':
		return VX, true
	case 'z', 'Z':
		return VZ, true
	default:
		return 0, false
	}
}

// isValueByte reports whether b is a valid bit symbol.
func isValueByte(b byte) bool {
	_, ok := parseValue(b)
	return ok
}

// byteFor returns the canonical lowercase symbol for v.
func (v Value) byteFor() byte {
	switch v & 3 {
	case V0:
		return '0'
	case V1:
		return '1'
	case VX:
		return 'x'
	default:
		return 'z'
	}
}

// String returns the canonical symbol for v.
func (v Value) String() string {
	return string(v.byteFor())
}

const symbolsPerWord = 32 // 2 bits per symbol in a uint64

// VecValue is a fixed-width vector of four-state values, bit-packed at
// two bits per symbol. Index 0 is the most significant bit, matching
// the left-to-right order of the textual form.
type VecValue struct {
	words []uint64
	width int
}

// NewVecValue returns a zero-filled vector of the given width.
func NewVecValue(width int) VecValue {
	return VecValue{
		words: make([]uint64, (width+symbolsPerWord-1)/symbolsPerWord),
		width: width,
	}
}

// RepeatValue returns a vector of the given width with every position
// set to v.
func RepeatValue(v Value, width int) VecValue {
	vec := NewVecValue(width)
	for i := 0; i < width; i++ {
		vec.SetBit(i, v)
	}
	return vec
}

// VecValueFromBits decodes a run of bit symbols. It fails with a
// *SyntaxError if any byte is not a valid symbol.
func VecValueFromBits(bits []byte) (VecValue, error) {
	vec := NewVecValue(len(bits))
	for i, b := range bits {
		v, ok := parseValue(b)
		if !ok {
			return VecValue{}, &SyntaxError{Reason: "invalid bit symbol in vector value"}
		}
		vec.setBitRaw(i, v)
	}
	return vec, nil
}

// Width returns the number of symbols in the vector.
func (v VecValue) Width() int {
	return v.width
}

// Bit returns the value at position i.
func (v VecValue) Bit(i int) Value {
	return Value(v.words[i/symbolsPerWord] >> (uint(i%symbolsPerWord) * 2) & 3)
}

// SetBit stores val at position i.
func (v VecValue) SetBit(i int, val Value) {
	if i < 0 || i >= v.width {
		panic("vcd: VecValue index out of range")
	}
	v.setBitRaw(i, val)
}

func (v VecValue) setBitRaw(i int, val Value) {
	shift := uint(i%symbolsPerWord) * 2
	w := &v.words[i/symbolsPerWord]
	*w = *w&^(3<<shift) | uint64(val&3)<<shift
}

// Values expands the vector into a slice of scalars.
func (v VecValue) Values() []Value {
	out := make([]Value, v.width)
	for i := range out {
		out[i] = v.Bit(i)
	}
	return out
}

// Equal reports whether two vectors have the same width and contents.
func (v VecValue) Equal(o VecValue) bool {
	if v.width != o.width {
		return false
	}
	for i := range v.words {
		if v.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// appendBits appends the textual bit run for v to dst.
func (v VecValue) appendBits(dst []byte) []byte {
	for i := 0; i < v.width; i++ {
		dst = append(dst, v.Bit(i).byteFor())
	}
	return dst
}

// String returns the textual bit run, e.g. "1010" or "xxxx".
func (v VecValue) String() string {
	return string(v.appendBits(make([]byte, 0, v.width)))
}
