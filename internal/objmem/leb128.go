package objmem

import "errors"

// ErrTruncated indicates a LEB128 value ran past the end of its buffer.
var ErrTruncated = errors.New("truncated leb128 value")

// PutUvarint appends the LEB128 encoding of v to buf, the encoding used
// "throughout for both tags and embedded sizes" so object boundaries stay
// self-describing.
func PutUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// Uvarint decodes a LEB128 unsigned integer from buf, returning the value
// and the number of bytes consumed.
func Uvarint(buf []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, b := range buf {
		if shift >= 64 {
			return 0, 0, errors.New("leb128 value overflows 64 bits")
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrTruncated
}

// SizeUvarint returns the number of bytes PutUvarint would emit for v.
func SizeUvarint(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
