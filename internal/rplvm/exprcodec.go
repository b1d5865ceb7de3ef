package rplvm

import (
	"db48x/internal/bignum"
	"db48x/internal/decimal"
	"db48x/internal/expr"
	"db48x/internal/fraction"
	"db48x/internal/objmem"
)

// encodeExpr flattens an algebraic postfix body into an opaque byte
// payload stored inline under a KindExpression object's tag. objmem has
// no notion of an operator atom, so an expression's atoms are not
// further self-describing objects the way a Program's children are —
// the whole body is one blob, matching the evaluator rule that an
// expression "stored as data" is self-evaluating and opaque until an
// algebraic operation unwraps it.
func encodeExpr(e expr.Expr) []byte {
	buf := objmem.PutUvarint(nil, uint64(len(e.Atoms)))
	for _, a := range e.Atoms {
		buf = encodeAtom(buf, a)
	}
	return buf
}

func decodeExpr(buf []byte) (expr.Expr, error) {
	n, off, err := objmem.Uvarint(buf)
	if err != nil {
		return expr.Expr{}, err
	}
	atoms := make([]expr.Atom, 0, n)
	for i := uint64(0); i < n; i++ {
		a, adv, err := decodeAtom(buf[off:])
		if err != nil {
			return expr.Expr{}, err
		}
		atoms = append(atoms, a)
		off += adv
	}
	return expr.Expr{Atoms: atoms}, nil
}

const (
	atomInt byte = iota
	atomFraction
	atomDecimal
	atomSymbol
	atomText
	atomOp
)

func encodeAtom(buf []byte, a expr.Atom) []byte {
	switch a.Kind {
	case expr.KindInt:
		buf = append(buf, atomInt)
		buf = encodeSignedMag(buf, a.Int.Neg, a.Int.Mag)
	case expr.KindFraction:
		buf = append(buf, atomFraction)
		buf = encodeSignedMag(buf, a.Frac.Num.Neg, a.Frac.Num.Mag)
		buf = encodeBytes(buf, a.Frac.Den.Mag)
	case expr.KindDecimal:
		buf = append(buf, atomDecimal)
		buf = append(buf, byte(a.Dec.Width))
		buf = encodeSignedMag(buf, a.Dec.Neg, a.Dec.Mant.Mag)
		buf = objmem.PutUvarint(buf, zigzag(int64(a.Dec.Exp)))
	case expr.KindSymbol:
		buf = append(buf, atomSymbol)
		buf = encodeBytes(buf, []byte(a.Sym))
	case expr.KindText:
		buf = append(buf, atomText)
		buf = encodeBytes(buf, []byte(a.Text))
	case expr.KindOp:
		buf = append(buf, atomOp)
		buf = append(buf, byte(a.Op))
		buf = objmem.PutUvarint(buf, uint64(a.Arity))
		buf = encodeBytes(buf, []byte(a.Sym))
	}
	return buf
}

func decodeAtom(buf []byte) (expr.Atom, int, error) {
	if len(buf) == 0 {
		return expr.Atom{}, 0, objmem.ErrTruncated
	}
	kind := buf[0]
	off := 1
	switch kind {
	case atomInt:
		neg, mag, n, err := decodeSignedMag(buf[off:])
		if err != nil {
			return expr.Atom{}, 0, err
		}
		return expr.Atom{Kind: expr.KindInt, Int: bignum.Int{Neg: neg, Mag: mag}}, off + n, nil
	case atomFraction:
		neg, numMag, n1, err := decodeSignedMag(buf[off:])
		if err != nil {
			return expr.Atom{}, 0, err
		}
		off += n1
		denMag, n2, err := decodeBytes(buf[off:])
		if err != nil {
			return expr.Atom{}, 0, err
		}
		off += n2
		return expr.Atom{Kind: expr.KindFraction, Frac: fraction.Fraction{
			Num: bignum.Int{Neg: neg, Mag: numMag},
			Den: bignum.Uint{Mag: denMag},
		}}, off, nil
	case atomDecimal:
		if off >= len(buf) {
			return expr.Atom{}, 0, objmem.ErrTruncated
		}
		width := decimal.Width(buf[off])
		off++
		neg, mant, n1, err := decodeSignedMag(buf[off:])
		if err != nil {
			return expr.Atom{}, 0, err
		}
		off += n1
		zz, n2, err := objmem.Uvarint(buf[off:])
		if err != nil {
			return expr.Atom{}, 0, err
		}
		off += n2
		return expr.Atom{Kind: expr.KindDecimal, Dec: decimal.Decimal{
			Width: width, Neg: neg, Mant: bignum.Uint{Mag: mant}, Exp: int32(unzigzag(zz)),
		}}, off, nil
	case atomSymbol:
		s, n, err := decodeBytes(buf[off:])
		if err != nil {
			return expr.Atom{}, 0, err
		}
		return expr.Atom{Kind: expr.KindSymbol, Sym: string(s)}, off + n, nil
	case atomText:
		s, n, err := decodeBytes(buf[off:])
		if err != nil {
			return expr.Atom{}, 0, err
		}
		return expr.Atom{Kind: expr.KindText, Text: string(s)}, off + n, nil
	case atomOp:
		if off >= len(buf) {
			return expr.Atom{}, 0, objmem.ErrTruncated
		}
		op := expr.Op(buf[off])
		off++
		arity, n1, err := objmem.Uvarint(buf[off:])
		if err != nil {
			return expr.Atom{}, 0, err
		}
		off += n1
		sym, n2, err := decodeBytes(buf[off:])
		if err != nil {
			return expr.Atom{}, 0, err
		}
		off += n2
		return expr.Atom{Kind: expr.KindOp, Op: op, Arity: int(arity), Sym: string(sym)}, off, nil
	default:
		return expr.Atom{}, 0, objmem.ErrBadObject
	}
}

func encodeSignedMag(buf []byte, neg bool, mag []byte) []byte {
	var negByte byte
	if neg {
		negByte = 1
	}
	buf = append(buf, negByte)
	return encodeBytes(buf, mag)
}

func decodeSignedMag(buf []byte) (neg bool, mag []byte, n int, err error) {
	if len(buf) == 0 {
		return false, nil, 0, objmem.ErrTruncated
	}
	neg = buf[0] != 0
	m, adv, err := decodeBytes(buf[1:])
	if err != nil {
		return false, nil, 0, err
	}
	return neg, m, 1 + adv, nil
}

func encodeBytes(buf, data []byte) []byte {
	buf = objmem.PutUvarint(buf, uint64(len(data)))
	return append(buf, data...)
}

func decodeBytes(buf []byte) ([]byte, int, error) {
	length, n, err := objmem.Uvarint(buf)
	if err != nil {
		return nil, 0, err
	}
	end := n + int(length)
	if end > len(buf) {
		return nil, 0, objmem.ErrTruncated
	}
	return append([]byte(nil), buf[n:end]...), end, nil
}

func zigzag(v int64) uint64   { return uint64((v << 1) ^ (v >> 63)) }
func unzigzag(v uint64) int64 { return int64(v>>1) ^ -int64(v&1) }
