package bignum

import "errors"

// UintAnd returns the bitwise AND of a and b.
func UintAnd(a, b Uint) Uint {
	al, bl := trim(a.Mag), trim(b.Mag)
	n := len(al)
	if len(bl) < n {
		n = len(bl)
	}
	if n == 0 {
		return Uint{}
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = al[i] & bl[i]
	}
	return Uint{Mag: trim(out)}
}

// UintOr returns the bitwise OR of a and b.
func UintOr(a, b Uint) Uint {
	al, bl := trim(a.Mag), trim(b.Mag)
	n := len(al)
	if len(bl) > n {
		n = len(bl)
	}
	if n == 0 {
		return Uint{}
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		var av, bv byte
		if i < len(al) {
			av = al[i]
		}
		if i < len(bl) {
			bv = bl[i]
		}
		out[i] = av | bv
	}
	return Uint{Mag: trim(out)}
}

// UintXor returns the bitwise XOR of a and b.
func UintXor(a, b Uint) Uint {
	al, bl := trim(a.Mag), trim(b.Mag)
	n := len(al)
	if len(bl) > n {
		n = len(bl)
	}
	if n == 0 {
		return Uint{}
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		var av, bv byte
		if i < len(al) {
			av = al[i]
		}
		if i < len(bl) {
			bv = bl[i]
		}
		out[i] = av ^ bv
	}
	return Uint{Mag: trim(out)}
}

// UintNot returns the ones' complement of u truncated to nbytes bytes, the
// shape based numbers need: "bitwise complement masked to w bits".
func UintNot(u Uint, nbytes int) Uint {
	out := make([]byte, nbytes)
	m := trim(u.Mag)
	for i := 0; i < nbytes; i++ {
		var v byte
		if i < len(m) {
			v = m[i]
		}
		out[i] = ^v
	}
	return Uint{Mag: trim(out)}
}

// MaskToBytes truncates u to nbytes bytes (little-endian), the based-number
// invariant "results are masked to w bits" with w = 8*nbytes.
func MaskToBytes(u Uint, nbytes int) Uint {
	m := trim(u.Mag)
	if len(m) <= nbytes {
		return Uint{Mag: m}
	}
	return Uint{Mag: trim(m[:nbytes])}
}

// MaskToBits truncates u to the low nbits bits.
func MaskToBits(u Uint, nbits int) Uint {
	if nbits <= 0 {
		return Uint{}
	}
	m := trim(u.Mag)
	fullBytes := nbits / 8
	remBits := uint(nbits % 8)
	if fullBytes >= len(m) {
		return Uint{Mag: m}
	}
	outLen := fullBytes
	if remBits != 0 {
		outLen++
	}
	out := make([]byte, outLen)
	copy(out, m[:outLen])
	if remBits != 0 {
		out[outLen-1] &= byte(1<<remBits) - 1
	}
	return Uint{Mag: trim(out)}
}

// NegateBased computes 0 - x masked to nbytes bytes: two's-complement
// negation for based numbers.
func NegateBased(x Uint, nbytes int) Uint {
	if x.IsZero() {
		return Uint{}
	}
	full := make([]byte, nbytes)
	for i := range full {
		full[i] = 0xff
	}
	one := Uint{Mag: []byte{1}}
	notX := UintNot(x, nbytes)
	sum, _ := UintAdd(notX, one, 0)
	return MaskToBytes(sum, nbytes)
}

// IntAnd returns the bitwise AND of a and b under two's-complement
// semantics over signed (unbounded width) integers.
func IntAnd(a, b Int) (Int, error) { return intBitOp(a, b, UintAnd) }

// IntOr returns the bitwise OR of a and b under two's-complement semantics.
func IntOr(a, b Int) (Int, error) { return intBitOp(a, b, UintOr) }

// IntXor returns the bitwise XOR of a and b under two's-complement semantics.
func IntXor(a, b Int) (Int, error) { return intBitOp(a, b, UintXor) }

// IntNot returns the logical complement of a signed bignum: zero becomes
// one and every non-zero value becomes zero.
func IntNot(a Int) (Int, error) {
	if a.IsZero() {
		return IntFromInt64(1), nil
	}
	return IntZero(), nil
}

func intBitOp(a, b Int, op func(Uint, Uint) Uint) (Int, error) {
	aa := Uint{Mag: trim(a.Mag)}
	ba := Uint{Mag: trim(b.Mag)}
	if aa.IsZero() && ba.IsZero() {
		return Int{}, nil
	}
	width := maxInt(aa.BitLen(), ba.BitLen()) + 1
	pow2, err := UintShl(Uint{Mag: []byte{1}}, width)
	if err != nil {
		return Int{}, err
	}
	repA, err := twosComplement(aa, a.Neg, pow2)
	if err != nil {
		return Int{}, err
	}
	repB, err := twosComplement(ba, b.Neg, pow2)
	if err != nil {
		return Int{}, err
	}
	res := op(repA, repB)
	if !bitSet(res.Mag, width-1) {
		out := trim(res.Mag)
		if len(out) == 0 {
			return Int{}, nil
		}
		return Int{Mag: out}, nil
	}
	mag, err := UintSub(pow2, res)
	if err != nil {
		return Int{}, err
	}
	if mag.IsZero() {
		return Int{}, nil
	}
	return Int{Neg: true, Mag: mag.Mag}, nil
}

func twosComplement(mag Uint, neg bool, pow2 Uint) (Uint, error) {
	if mag.IsZero() || !neg {
		return mag, nil
	}
	return UintSub(pow2, mag)
}

// IntShl performs an arithmetic left shift on a signed bignum.
func IntShl(a Int, n int) (Int, error) {
	if n < 0 {
		return Int{}, errors.New("negative shift")
	}
	if n == 0 || a.IsZero() {
		return Int{Neg: a.Neg, Mag: trim(a.Mag)}, nil
	}
	shifted, err := UintShl(Uint{Mag: trim(a.Mag)}, n)
	if err != nil {
		return Int{}, err
	}
	if shifted.IsZero() {
		return Int{}, nil
	}
	return Int{Neg: a.Neg, Mag: shifted.Mag}, nil
}

// IntShr performs an arithmetic right shift (floor division by 2^n) on a
// signed bignum.
func IntShr(a Int, n int) (Int, error) {
	if n < 0 {
		return Int{}, errors.New("negative shift")
	}
	if n == 0 || a.IsZero() {
		return Int{Neg: a.Neg, Mag: trim(a.Mag)}, nil
	}
	mag := Uint{Mag: trim(a.Mag)}
	if !a.Neg {
		shifted, err := UintShr(mag, n)
		if err != nil {
			return Int{}, err
		}
		if shifted.IsZero() {
			return Int{}, nil
		}
		return Int{Mag: shifted.Mag}, nil
	}
	pow2, err := UintShl(Uint{Mag: []byte{1}}, n)
	if err != nil {
		return Int{}, err
	}
	pow2Minus1, err := UintSub(pow2, Uint{Mag: []byte{1}})
	if err != nil {
		return Int{}, err
	}
	sum, err := UintAdd(mag, pow2Minus1, 0)
	if err != nil {
		return Int{}, err
	}
	shifted, err := UintShr(sum, n)
	if err != nil {
		return Int{}, err
	}
	if shifted.IsZero() {
		return Int{}, nil
	}
	return Int{Neg: true, Mag: shifted.Mag}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
