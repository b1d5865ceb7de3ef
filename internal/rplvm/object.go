package rplvm

import (
	"db48x/internal/bignum"
	"db48x/internal/decimal"
	"db48x/internal/expr"
	"db48x/internal/fraction"
	"db48x/internal/objmem"
)

// Encode serializes v as a complete tagged object, ready for
// (*objmem.Arena).Alloc. Numbers, symbols, and text use objmem's
// generic atom/small-int encoders directly; lists/arrays/matrices/
// programs recurse through EncodeComposite since the evaluator walks
// their children individually; expressions and loops wrap an opaque,
// package-private payload (encodeExpr, encodeLoop) since objmem has no
// notion of an operator or sub-program atom of its own.
func Encode(v Value) ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return encodeNumber(v.Num)
	case KindBased:
		return encodeBased(v.Based), nil
	case KindSymbol:
		return objmem.EncodeAtom(objmem.TagSymbol, []byte(v.Sym)), nil
	case KindText:
		return objmem.EncodeAtom(objmem.TagText, []byte(v.Text)), nil
	case KindComplex:
		re, err := encodeExprValue(v.Cplx.Re)
		if err != nil {
			return nil, err
		}
		im, err := encodeExprValue(v.Cplx.Im)
		if err != nil {
			return nil, err
		}
		return objmem.EncodePair(objmem.TagComplexRect, re, im), nil
	case KindList, KindArray, KindMatrix, KindProgram:
		tag := compositeTag(v.Kind)
		children := make([][]byte, 0, len(v.Items))
		for _, it := range v.Items {
			c, err := Encode(it)
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		return objmem.EncodeComposite(tag, children), nil
	case KindExpression:
		return objmem.EncodeAtom(objmem.TagExpression, encodeExpr(v.Num)), nil
	case KindLoop:
		return encodeLoop(v.Loop)
	default:
		return nil, objmem.ErrBadObject
	}
}

// encodeExprValue wraps an Expr (used for complex parts,
// which are full algebraic sub-expressions) under TagExpression so it
// round-trips through PairChildren like any other child object.
func encodeExprValue(e expr.Expr) ([]byte, error) {
	return objmem.EncodeAtom(objmem.TagExpression, encodeExpr(e)), nil
}

func compositeTag(k Kind) objmem.Tag {
	switch k {
	case KindArray:
		return objmem.TagArray
	case KindMatrix:
		return objmem.TagMatrix
	case KindProgram:
		return objmem.TagProgram
	default:
		return objmem.TagList
	}
}

// encodeNumber picks the most specific numeric tag: small integers use
// the bare-magnitude encoding, bignums and decimals use the
// length-prefixed atom encoding, and fractions use a numerator/denominator
// pair.
func encodeNumber(e expr.Expr) ([]byte, error) {
	if len(e.Atoms) != 1 {
		return objmem.EncodeAtom(objmem.TagExpression, encodeExpr(e)), nil
	}
	a := e.Atoms[0]
	switch a.Kind {
	case expr.KindInt:
		if v, ok := (bignum.Uint{Mag: a.Int.Mag}).Uint64(); ok {
			return objmem.EncodeSmallInt(a.Int.Neg, v), nil
		}
		tag := objmem.TagBigPos
		if a.Int.Neg {
			tag = objmem.TagBigNeg
		}
		return objmem.EncodeAtom(tag, a.Int.Mag), nil
	case expr.KindFraction:
		tag := objmem.TagFractionPos
		if a.Frac.Num.Neg {
			tag = objmem.TagFractionNeg
		}
		num, err := encodeNumber(expr.Int(bignum.Int{Mag: a.Frac.Num.Mag}))
		if err != nil {
			return nil, err
		}
		den, err := encodeNumber(expr.Int(bignum.Int{Mag: a.Frac.Den.Mag}))
		if err != nil {
			return nil, err
		}
		return objmem.EncodePair(tag, num, den), nil
	case expr.KindDecimal:
		tag := decimalTag(a.Dec.Width)
		return objmem.EncodeAtom(tag, decimalPayload(a.Dec)), nil
	default:
		return objmem.EncodeAtom(objmem.TagExpression, encodeExpr(e)), nil
	}
}

// decimalPayload encodes a decimal value's sign, mantissa, and exponent.
// The width is not repeated here: the object's own Tag (TagDecimal32/
// 64/128) already carries it.
func decimalPayload(d decimal.Decimal) []byte {
	buf := encodeSignedMag(nil, d.Neg, d.Mant.Mag)
	return objmem.PutUvarint(buf, zigzag(int64(d.Exp)))
}

func decodeDecimalPayload(w decimal.Width, payload []byte) (decimal.Decimal, error) {
	neg, mant, n, err := decodeSignedMag(payload)
	if err != nil {
		return decimal.Decimal{}, err
	}
	zz, _, err := objmem.Uvarint(payload[n:])
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.Decimal{Width: w, Neg: neg, Mant: bignum.Uint{Mag: mant}, Exp: int32(unzigzag(zz))}, nil
}

func widthForTag(tag objmem.Tag) decimal.Width {
	switch tag {
	case objmem.TagDecimal32:
		return decimal.Width32
	case objmem.TagDecimal128:
		return decimal.Width128
	default:
		return decimal.Width64
	}
}

func decimalTag(w decimal.Width) objmem.Tag {
	switch w {
	case decimal.Width32:
		return objmem.TagDecimal32
	case decimal.Width128:
		return objmem.TagDecimal128
	default:
		return objmem.TagDecimal64
	}
}

func encodeBased(b Based) []byte {
	var tag objmem.Tag
	switch b.Base {
	case 2:
		tag = objmem.TagBasedBin
	case 8:
		tag = objmem.TagBasedOct
	case 16:
		tag = objmem.TagBasedHex
	default:
		tag = objmem.TagBasedDec
	}
	payload := objmem.PutUvarint(nil, uint64(b.WordSize))
	payload = append(payload, b.Mag.Mag...)
	return objmem.EncodeAtom(tag, payload)
}

// Decode reconstructs a Value from a complete tagged object's bytes (as
// returned by (*objmem.Arena).Bytes).
func Decode(buf []byte) (Value, error) {
	tag, _, err := objmem.ObjectSize(buf)
	if err != nil {
		return Value{}, err
	}
	switch tag {
	case objmem.TagIntPos, objmem.TagIntNeg:
		_, tagLen, err := objmem.Uvarint(buf)
		if err != nil {
			return Value{}, err
		}
		mag, _, err := objmem.Uvarint(buf[tagLen:])
		if err != nil {
			return Value{}, err
		}
		return Number(expr.Int(bignum.Int{Neg: tag == objmem.TagIntNeg, Mag: bignum.UintFromUint64(mag).Mag})), nil
	case objmem.TagBigPos, objmem.TagBigNeg:
		payload, err := objmem.PayloadBytes(buf)
		if err != nil {
			return Value{}, err
		}
		return Number(expr.Int(bignum.Int{Neg: tag == objmem.TagBigNeg, Mag: payload})), nil
	case objmem.TagSymbol:
		payload, err := objmem.PayloadBytes(buf)
		if err != nil {
			return Value{}, err
		}
		return Symbol(string(payload)), nil
	case objmem.TagText:
		payload, err := objmem.PayloadBytes(buf)
		if err != nil {
			return Value{}, err
		}
		return Text(string(payload)), nil
	case objmem.TagDecimal32, objmem.TagDecimal64, objmem.TagDecimal128:
		payload, err := objmem.PayloadBytes(buf)
		if err != nil {
			return Value{}, err
		}
		d, err := decodeDecimalPayload(widthForTag(tag), payload)
		if err != nil {
			return Value{}, err
		}
		return Number(expr.Dec(d)), nil
	case objmem.TagFractionPos, objmem.TagFractionNeg:
		numBytes, denBytes, err := objmem.PairChildren(buf)
		if err != nil {
			return Value{}, err
		}
		numV, err := Decode(numBytes)
		if err != nil {
			return Value{}, err
		}
		denV, err := Decode(denBytes)
		if err != nil {
			return Value{}, err
		}
		neg := tag == objmem.TagFractionNeg
		num := numV.Num.Atoms[0].Int
		num.Neg = neg
		den := denV.Num.Atoms[0].Int
		return Number(expr.Frac(fraction.Fraction{Num: num, Den: bignum.Uint{Mag: den.Mag}})), nil
	case objmem.TagBasedBin, objmem.TagBasedOct, objmem.TagBasedDec, objmem.TagBasedHex:
		payload, err := objmem.PayloadBytes(buf)
		if err != nil {
			return Value{}, err
		}
		wordSize, n, err := objmem.Uvarint(payload)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindBased, Based: Based{
			Mag:      bignum.Uint{Mag: payload[n:]},
			Base:     basedBase(tag),
			WordSize: int(wordSize),
		}}, nil
	case objmem.TagComplexRect:
		reBytes, imBytes, err := objmem.PairChildren(buf)
		if err != nil {
			return Value{}, err
		}
		re, err := decodeExprFromObject(reBytes)
		if err != nil {
			return Value{}, err
		}
		im, err := decodeExprFromObject(imBytes)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindComplex, Cplx: expr.Complex{Re: re, Im: im}}, nil
	case objmem.TagExpression:
		payload, err := objmem.PayloadBytes(buf)
		if err != nil {
			return Value{}, err
		}
		e, err := decodeExpr(payload)
		if err != nil {
			return Value{}, err
		}
		if len(e.Atoms) == 1 && e.Atoms[0].Kind != expr.KindOp {
			return Number(e), nil
		}
		return Expression(e), nil
	case objmem.TagList, objmem.TagArray, objmem.TagMatrix, objmem.TagProgram:
		children, err := objmem.CompositeChildren(buf)
		if err != nil {
			return Value{}, err
		}
		items := make([]Value, 0, len(children))
		for _, c := range children {
			v, err := Decode(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Value{Kind: kindForTag(tag), Items: items}, nil
	case objmem.TagLoop:
		return decodeLoop(buf)
	default:
		return Value{}, objmem.ErrBadObject
	}
}

func decodeExprFromObject(buf []byte) (expr.Expr, error) {
	v, err := Decode(buf)
	if err != nil {
		return expr.Expr{}, err
	}
	return v.Num, nil
}

func kindForTag(tag objmem.Tag) Kind {
	switch tag {
	case objmem.TagArray:
		return KindArray
	case objmem.TagMatrix:
		return KindMatrix
	case objmem.TagProgram:
		return KindProgram
	default:
		return KindList
	}
}

func basedBase(tag objmem.Tag) int {
	switch tag {
	case objmem.TagBasedBin:
		return 2
	case objmem.TagBasedOct:
		return 8
	case objmem.TagBasedHex:
		return 16
	default:
		return 10
	}
}

// encodeLoop packs a Loop's header (kind/flags/var name) and its one or
// two sub-programs into a TagLoop composite.
func encodeLoop(l *Loop) ([]byte, error) {
	var header []byte
	header = append(header, byte(l.Kind))
	flags := byte(0)
	if l.Named {
		flags |= 1
	}
	if l.Stepped {
		flags |= 2
	}
	header = append(header, flags)
	header = objmem.PutUvarint(header, uint64(len(l.VarName)))
	header = append(header, l.VarName...)
	headerObj := objmem.EncodeAtom(objmem.TagText, header)

	bodyObj, err := Encode(l.Body)
	if err != nil {
		return nil, err
	}
	condObj, err := Encode(l.Cond)
	if err != nil {
		return nil, err
	}
	return objmem.EncodeComposite(objmem.TagLoop, [][]byte{headerObj, bodyObj, condObj}), nil
}

func decodeLoop(buf []byte) (Value, error) {
	children, err := objmem.CompositeChildren(buf)
	if err != nil {
		return Value{}, err
	}
	if len(children) != 3 {
		return Value{}, objmem.ErrBadObject
	}
	header, err := objmem.PayloadBytes(children[0])
	if err != nil {
		return Value{}, err
	}
	if len(header) < 2 {
		return Value{}, objmem.ErrBadObject
	}
	kind := LoopKind(header[0])
	flags := header[1]
	nameLen, n, err := objmem.Uvarint(header[2:])
	if err != nil {
		return Value{}, err
	}
	name := string(header[2+n : 2+n+int(nameLen)])

	body, err := Decode(children[1])
	if err != nil {
		return Value{}, err
	}
	cond, err := Decode(children[2])
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindLoop, Loop: &Loop{
		Kind:    kind,
		Named:   flags&1 != 0,
		Stepped: flags&2 != 0,
		VarName: name,
		Body:    body,
		Cond:    cond,
	}}, nil
}
