package http3

// QUIC variable-length integers (RFC 9000 section 16). The two high bits of
// the first byte select a total length of 1, 2, 4 or 8 bytes, holding 6, 14,
// 30 or 62 bits of value, big-endian.

const (
	maxVarint1 = 1<<6 - 1
	maxVarint2 = 1<<14 - 1
	maxVarint4 = 1<<30 - 1
	maxVarint8 = 1<<62 - 1
)

// ParseVarint decodes a varint from the start of b. It returns the value and
// the number of bytes the encoding occupied. n == 0 means b does not hold a
// complete varint yet; the caller should buffer more bytes and retry from the
// same offset. Non-minimal encodings are accepted.
func ParseVarint(b []byte) (v uint64, n int) {
	if len(b) == 0 {
		return 0, 0
	}
	length := 1 << (b[0] >> 6)
	if len(b) < length {
		return 0, 0
	}
	v = uint64(b[0] & 0x3f)
	for i := 1; i < length; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v, length
}

// AppendVarint appends the minimal varint encoding of v to b.
// Values of 2^62 or more cannot be encoded and panic.
func AppendVarint(b []byte, v uint64) []byte {
	switch {
	case v <= maxVarint1:
		return append(b, byte(v))
	case v <= maxVarint2:
		return append(b, 0x40|byte(v>>8), byte(v))
	case v <= maxVarint4:
		return append(b, 0x80|byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	case v <= maxVarint8:
		return append(b, 0xc0|byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
			byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	default:
		panic("http3: varint value out of range")
	}
}

// VarintLen returns the number of bytes the minimal encoding of v occupies.
func VarintLen(v uint64) int {
	switch {
	case v <= maxVarint1:
		return 1
	case v <= maxVarint2:
		return 2
	case v <= maxVarint4:
		return 4
	case v <= maxVarint8:
		return 8
	default:
		panic("http3: varint value out of range")
	}
}

// varintBytesNeeded reports the total encoded length declared by the first
// byte of a varint.
func varintBytesNeeded(first byte) int {
	return 1 << (first >> 6)
}
