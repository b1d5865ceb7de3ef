package expr

// Complex is a complex number in rectangular form, Re + i*Im, the
// representation original_source/src/complex.cc calls "X;Y" rectangular
// form (as opposed to polar "X angle Y"). Re and Im are themselves
// algebraic expressions rather than bare numbers, so arithmetic on
// complex values stays symbolic and composes with the rest of the
// rewrite engine instead of forcing early numeric evaluation.
type Complex struct {
	Re, Im Expr
}

// Rect builds a rectangular complex value.
func Rect(re, im Expr) Complex { return Complex{Re: re, Im: im} }

// AddComplex returns a + b.
func AddComplex(a, b Complex) Complex {
	return Complex{Re: Binary(OpAdd, a.Re, b.Re), Im: Binary(OpAdd, a.Im, b.Im)}
}

// SubComplex returns a - b.
func SubComplex(a, b Complex) Complex {
	return Complex{Re: Binary(OpSub, a.Re, b.Re), Im: Binary(OpSub, a.Im, b.Im)}
}

// MulComplex returns a * b via (ac - bd) + i(ad + bc).
func MulComplex(a, b Complex) Complex {
	re := Binary(OpSub, Binary(OpMul, a.Re, b.Re), Binary(OpMul, a.Im, b.Im))
	im := Binary(OpAdd, Binary(OpMul, a.Re, b.Im), Binary(OpMul, a.Im, b.Re))
	return Complex{Re: re, Im: im}
}

// DivComplex returns a / b by multiplying through by b's conjugate:
// (a * conj(b)) / |b|^2.
func DivComplex(a, b Complex) Complex {
	conj := Conjugate(b)
	num := MulComplex(a, conj)
	denom := Binary(OpAdd,
		Binary(OpMul, b.Re, b.Re),
		Binary(OpMul, b.Im, b.Im))
	return Complex{Re: Binary(OpDiv, num.Re, denom), Im: Binary(OpDiv, num.Im, denom)}
}

// Conjugate returns Re - i*Im.
func Conjugate(a Complex) Complex {
	return Complex{Re: a.Re, Im: Unary(OpNeg, a.Im)}
}

// Modulus returns the symbolic expression sqrt(Re^2 + Im^2); left
// unevaluated since expr builds expressions, it does not evaluate them.
func (c Complex) Modulus() Expr {
	sumSquares := Binary(OpAdd,
		Binary(OpPow, c.Re, intExpr(2)),
		Binary(OpPow, c.Im, intExpr(2)))
	return Unary(OpSqrt, sumSquares)
}

// Argument returns the symbolic expression atan2(Im, Re), encoded as a
// two-argument funcall since atan2 is not one of the fixed-arity Ops.
func (c Complex) Argument() Expr {
	return Funcall("atan2", []Expr{c.Im, c.Re})
}

// ToPolar returns the (modulus, argument) pair describing c in polar
// form, per original_source's "polar representation is X angle Y".
func (c Complex) ToPolar() (modulus, argument Expr) {
	return c.Modulus(), c.Argument()
}

// FromPolar builds the rectangular Complex for modulus*cos(argument) +
// i*modulus*sin(argument).
func FromPolar(modulus, argument Expr) Complex {
	re := Binary(OpMul, modulus, Unary(OpCos, argument))
	im := Binary(OpMul, modulus, Unary(OpSin, argument))
	return Complex{Re: re, Im: im}
}
