package objmem

import "errors"

// ErrBadObject indicates an object's bytes could not be parsed according
// to its tag's payload rule.
var ErrBadObject = errors.New("malformed object bytes")

// ObjectSize returns the tag and total byte length (tag plus payload) of
// the object starting at buf[0], without requiring any external length
// table — every tag's payload-length rule is fixed, so size is always
// recoverable in a single pass.
func ObjectSize(buf []byte) (Tag, int, error) {
	if len(buf) == 0 {
		return 0, 0, ErrTruncated
	}
	tagVal, n, err := Uvarint(buf)
	if err != nil {
		return 0, 0, err
	}
	tag := Tag(tagVal)
	if tag >= tagCount {
		return 0, 0, ErrBadObject
	}
	rest := buf[n:]

	switch tag {
	case TagIntPos, TagIntNeg:
		_, mn, err := Uvarint(rest)
		if err != nil {
			return 0, 0, err
		}
		return tag, n + mn, nil

	case TagBigPos, TagBigNeg, TagBasedBin, TagBasedOct, TagBasedDec, TagBasedHex:
		length, ln, err := Uvarint(rest)
		if err != nil {
			return 0, 0, err
		}
		total := n + ln + int(length)
		if total > len(buf) {
			return 0, 0, ErrTruncated
		}
		return tag, total, nil

	case TagDecimal32, TagDecimal64, TagDecimal128:
		length, ln, err := Uvarint(rest)
		if err != nil {
			return 0, 0, err
		}
		total := n + ln + int(length)
		if total > len(buf) {
			return 0, 0, ErrTruncated
		}
		return tag, total, nil

	case TagSymbol, TagText:
		length, ln, err := Uvarint(rest)
		if err != nil {
			return 0, 0, err
		}
		total := n + ln + int(length)
		if total > len(buf) {
			return 0, 0, ErrTruncated
		}
		return tag, total, nil

	case TagFractionPos, TagFractionNeg, TagComplexRect, TagComplexPolar:
		_, s1, err := ObjectSize(rest)
		if err != nil {
			return 0, 0, err
		}
		_, s2, err := ObjectSize(rest[s1:])
		if err != nil {
			return 0, 0, err
		}
		return tag, n + s1 + s2, nil

	case TagList, TagArray, TagMatrix, TagProgram, TagExpression, TagFuncall, TagLoop:
		length, ln, err := Uvarint(rest)
		if err != nil {
			return 0, 0, err
		}
		total := n + ln + int(length)
		if total > len(buf) {
			return 0, 0, ErrTruncated
		}
		return tag, total, nil

	default:
		return 0, 0, ErrBadObject
	}
}

func checkLen(buf []byte, n int) error {
	if n > len(buf) {
		return ErrTruncated
	}
	return nil
}

// EncodeAtom builds a complete atom object: tag, then an explicit LEB128
// length, then the raw payload bytes. Used for bignum/based/symbol/text
// payloads, all of which share this "length then bytes" shape.
func EncodeAtom(tag Tag, payload []byte) []byte {
	out := PutUvarint(nil, uint64(tag))
	out = PutUvarint(out, uint64(len(payload)))
	return append(out, payload...)
}

// EncodeSmallInt builds a small-integer object: tag then a bare LEB128
// magnitude (no separate length prefix, since the magnitude is itself
// self-delimiting).
func EncodeSmallInt(neg bool, magnitude uint64) []byte {
	tag := TagIntPos
	if neg {
		tag = TagIntNeg
	}
	out := PutUvarint(nil, uint64(tag))
	return PutUvarint(out, magnitude)
}

// EncodeComposite builds a composite object (list/array/matrix/program/
// expression/funcall/loop) whose payload is the concatenation of
// already-encoded child object bytes, prefixed with the LEB128 total body
// length — the postfix program shape spec'd for expressions and the
// general rule for every other composite kind.
func EncodeComposite(tag Tag, children [][]byte) []byte {
	var body []byte
	for _, c := range children {
		body = append(body, c...)
	}
	out := PutUvarint(nil, uint64(tag))
	out = PutUvarint(out, uint64(len(body)))
	return append(out, body...)
}

// EncodePair builds a two-child object (fraction numerator/denominator,
// complex rectangular/polar parts) with no length prefix — each child's
// own tag makes its extent self-describing.
func EncodePair(tag Tag, a, b []byte) []byte {
	out := PutUvarint(nil, uint64(tag))
	out = append(out, a...)
	return append(out, b...)
}

// PayloadBytes returns the tag-specific payload of an atom encoded via
// EncodeAtom (bignum/based/symbol/text), stripping the tag and length
// prefix.
func PayloadBytes(obj []byte) ([]byte, error) {
	_, n, err := Uvarint(obj)
	if err != nil {
		return nil, err
	}
	length, ln, err := Uvarint(obj[n:])
	if err != nil {
		return nil, err
	}
	start := n + ln
	end := start + int(length)
	if end > len(obj) {
		return nil, ErrTruncated
	}
	return obj[start:end], nil
}

// CompositeChildren splits a composite object's body into its child object
// byte-sequences, in encounter order (first-to-last, not the evaluator's
// postfix reading order).
func CompositeChildren(obj []byte) ([][]byte, error) {
	_, n, err := Uvarint(obj)
	if err != nil {
		return nil, err
	}
	length, ln, err := Uvarint(obj[n:])
	if err != nil {
		return nil, err
	}
	start := n + ln
	end := start + int(length)
	if end > len(obj) {
		return nil, ErrTruncated
	}
	body := obj[start:end]
	var children [][]byte
	for len(body) > 0 {
		_, sz, err := ObjectSize(body)
		if err != nil {
			return nil, err
		}
		children = append(children, body[:sz])
		body = body[sz:]
	}
	return children, nil
}

// PairChildren splits a two-child object (fraction/complex) into its two
// parts.
func PairChildren(obj []byte) (a, b []byte, err error) {
	_, n, err := Uvarint(obj)
	if err != nil {
		return nil, nil, err
	}
	rest := obj[n:]
	_, s1, err := ObjectSize(rest)
	if err != nil {
		return nil, nil, err
	}
	_, s2, err := ObjectSize(rest[s1:])
	if err != nil {
		return nil, nil, err
	}
	return rest[:s1], rest[s1 : s1+s2], nil
}
