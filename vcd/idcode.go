package vcd

import "math"

// IDCode is the dense integer index naming a declared signal. In the
// file it appears as a short token over the printable alphabet '!'..'~'.
type IDCode uint64

// IDOrder selects the byte order used when encoding an IDCode as a
// token and decoding it back.
type IDOrder uint8

const (
	// OrderNatural decodes most-significant-symbol-first, so tokens
	// assigned sequentially by a generator decode to sequential
	// integers. This is the order used when writing unless configured
	// otherwise.
	OrderNatural IDOrder = iota

	// OrderLegacy decodes least-significant-symbol-first, matching
	// producers that assign tokens that way.
	OrderLegacy
)

// String returns the order name.
func (o IDOrder) String() string {
	switch o {
	case OrderNatural:
		return "natural"
	case OrderLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

const (
	idCharMin  = '!'
	idCharMax  = '~'
	numIDChars = uint64(idCharMax - idCharMin + 1) // 94
)

// FirstIDCode is the code with the shortest token, "!".
const FirstIDCode IDCode = 0

// Next returns the code following this one in assignment order.
func (c IDCode) Next() IDCode {
	return c + 1
}

// DecodeID decodes a token into its IDCode under the given byte order.
// It fails with *InvalidIDError if the token is empty, contains a byte
// outside '!'..'~', or does not fit in 64 bits.
func DecodeID(tok []byte, order IDOrder) (IDCode, error) {
	if len(tok) == 0 {
		return 0, &InvalidIDError{Token: ""}
	}
	var result uint64
	for i := 0; i < len(tok); i++ {
		b := tok[i]
		if order == OrderLegacy {
			b = tok[len(tok)-1-i]
		}
		if b < idCharMin || b > idCharMax {
			return 0, &InvalidIDError{Token: string(tok)}
		}
		c := uint64(b-idCharMin) + 1
		if result > (math.MaxUint64-c)/numIDChars {
			return 0, &InvalidIDError{Token: string(tok)}
		}
		result = result*numIDChars + c
	}
	return IDCode(result - 1), nil
}

// AppendID appends the token for c under the given byte order to dst
// and returns the extended slice. It is the exact inverse of DecodeID.
func AppendID(dst []byte, c IDCode, order IDOrder) []byte {
	start := len(dst)
	i := uint64(c)
	for {
		dst = append(dst, byte(i%numIDChars)+idCharMin)
		if i < numIDChars {
			break
		}
		i = i/numIDChars - 1
	}
	// The loop emits least-significant-symbol-first; natural order
	// wants most-significant-first.
	if order == OrderNatural {
		for l, r := start, len(dst)-1; l < r; l, r = l+1, r-1 {
			dst[l], dst[r] = dst[r], dst[l]
		}
	}
	return dst
}

// Token returns the token for c under the given byte order.
func (c IDCode) Token(order IDOrder) string {
	return string(AppendID(nil, c, order))
}

// String returns the natural-order token.
func (c IDCode) String() string {
	return c.Token(OrderNatural)
}
