package bignum

// Int is a sign-and-magnitude arbitrary-precision integer. Canonical zero
// has Neg=false and a nil/empty Mag, matching the object tag rule that "0
// is exactly the single-tag object of positive zero."
type Int struct {
	Neg bool
	Mag []byte
}

// IntZero returns the canonical zero.
func IntZero() Int { return Int{} }

// IntFromInt64 builds an Int from a machine word.
func IntFromInt64(v int64) Int {
	if v == 0 {
		return Int{}
	}
	if v > 0 {
		return Int{Mag: UintFromUint64(uint64(v)).Mag}
	}
	u := uint64(-(v + 1))
	u++
	return Int{Neg: true, Mag: UintFromUint64(u).Mag}
}

// IsZero reports whether i is zero.
func (i Int) IsZero() bool { return len(trim(i.Mag)) == 0 }

// Abs returns the magnitude as an unsigned Uint.
func (i Int) Abs() Uint { return Uint{Mag: trim(i.Mag)} }

// Negated returns -i.
func (i Int) Negated() Int {
	if i.IsZero() {
		return Int{}
	}
	return Int{Neg: !i.Neg, Mag: trim(i.Mag)}
}

// Int64 converts an Int to an int64 if it fits.
func (i Int) Int64() (int64, bool) {
	u, ok := Uint{Mag: trim(i.Mag)}.Uint64()
	if !ok || u > 1<<63 {
		return 0, false
	}
	if i.Neg {
		if u == 1<<63 {
			return -(1 << 63), true
		}
		return -int64(u), true
	}
	if u == 1<<63 {
		return 0, false
	}
	return int64(u), true
}

// Cmp compares two Int values by sign then magnitude: a negative value is
// less than any non-negative value; otherwise compare by magnitude.
func (i Int) Cmp(j Int) int {
	ia, ja := trim(i.Mag), trim(j.Mag)
	switch {
	case len(ia) == 0 && len(ja) == 0:
		return 0
	case i.Neg != j.Neg:
		if i.Neg {
			return -1
		}
		return 1
	default:
		cmp := cmpMag(ia, ja)
		if i.Neg {
			return -cmp
		}
		return cmp
	}
}

// CmpMagnitude compares two Int values by magnitude only, ignoring sign.
func (i Int) CmpMagnitude(j Int) int {
	return cmpMag(trim(i.Mag), trim(j.Mag))
}

// IntAdd adds two Int values.
func IntAdd(a, b Int, maxBits int) (Int, error) {
	aa := Uint{Mag: trim(a.Mag)}
	ba := Uint{Mag: trim(b.Mag)}

	if a.Neg == b.Neg {
		sum, err := UintAdd(aa, ba, maxBits)
		if err != nil {
			return Int{}, err
		}
		if sum.IsZero() {
			return Int{}, nil
		}
		return Int{Neg: a.Neg, Mag: sum.Mag}, nil
	}

	switch cmpMag(aa.Mag, ba.Mag) {
	case 0:
		return Int{}, nil
	case 1:
		diff, err := UintSub(aa, ba)
		if err != nil {
			return Int{}, err
		}
		if diff.IsZero() {
			return Int{}, nil
		}
		return Int{Neg: a.Neg, Mag: diff.Mag}, nil
	default:
		diff, err := UintSub(ba, aa)
		if err != nil {
			return Int{}, err
		}
		if diff.IsZero() {
			return Int{}, nil
		}
		return Int{Neg: b.Neg, Mag: diff.Mag}, nil
	}
}

// IntSub subtracts b from a.
func IntSub(a, b Int, maxBits int) (Int, error) {
	return IntAdd(a, b.Negated(), maxBits)
}

// IntMul multiplies two Int values. Zero factors always yield canonical zero.
func IntMul(a, b Int, maxBits int) (Int, error) {
	aa := Uint{Mag: trim(a.Mag)}
	ba := Uint{Mag: trim(b.Mag)}
	prod, err := UintMul(aa, ba, maxBits)
	if err != nil {
		return Int{}, err
	}
	if prod.IsZero() {
		return Int{}, nil
	}
	return Int{Neg: a.Neg != b.Neg, Mag: prod.Mag}, nil
}

// IntDivMod performs division with remainder. The remainder carries the
// sign of the dividend; the quotient carries the sign of the product of
// operand signs.
func IntDivMod(a, b Int, maxBits int) (q, r Int, err error) {
	aa := Uint{Mag: trim(a.Mag)}
	ba := Uint{Mag: trim(b.Mag)}
	if ba.IsZero() {
		return Int{}, Int{}, ErrDivByZero
	}
	if aa.IsZero() {
		return Int{}, Int{}, nil
	}
	qMag, rMag, err := UintDivMod(aa, ba, maxBits)
	if err != nil {
		return Int{}, Int{}, err
	}
	if qMag.IsZero() {
		q = Int{}
	} else {
		q = Int{Neg: a.Neg != b.Neg, Mag: qMag.Mag}
	}
	if rMag.IsZero() {
		r = Int{}
	} else {
		r = Int{Neg: a.Neg, Mag: rMag.Mag}
	}
	return q, r, nil
}

// IntPow computes base^exp via left-to-right bit-scan repeated squaring.
// exp is the unsigned exponent magnitude; callers must pre-handle negative
// exponents (e.g. by producing a fraction).
func IntPow(base Int, exp Uint, maxBits int) (Int, error) {
	if exp.IsZero() {
		return IntFromInt64(1), nil
	}
	if base.IsZero() {
		return Int{}, nil
	}
	result := IntFromInt64(1)
	bits := exp.BitLen()
	cur := base
	for i := 0; i < bits; i++ {
		if bitSet(exp.Mag, i) {
			var err error
			result, err = IntMul(result, cur, maxBits)
			if err != nil {
				return Int{}, err
			}
		}
		if i != bits-1 {
			var err error
			cur, err = IntMul(cur, cur, maxBits)
			if err != nil {
				return Int{}, err
			}
		}
	}
	return result, nil
}

func bitSet(m []byte, bit int) bool {
	byteIdx := bit / 8
	if byteIdx >= len(m) {
		return false
	}
	return m[byteIdx]&(1<<uint(bit%8)) != 0
}

// GCD returns the greatest common divisor of two non-negative magnitudes,
// used to canonicalize fractions.
func GCD(a, b Uint) Uint {
	for !b.IsZero() {
		_, r, err := UintDivMod(a, b, 0)
		if err != nil {
			return Uint{}
		}
		a, b = b, r
	}
	return a
}
