package numeric

import (
	"github.com/joeycumines/go-bignum/bigf"
	"github.com/joeycumines/go-bignum/numerr"
)

// Add returns x + y.
func Add(x, y Value) Value {
	x, y, k := promote(x, y)
	switch k {
	case KindInt:
		return FromInt(x.Int().Add(y.Int()))
	case KindRat:
		return FromRat(x.q.Add(y.q))
	default:
		return FromFloat(x.f.Add(y.f))
	}
}

// Sub returns x - y.
func Sub(x, y Value) Value {
	x, y, k := promote(x, y)
	switch k {
	case KindInt:
		return FromInt(x.Int().Sub(y.Int()))
	case KindRat:
		return FromRat(x.q.Sub(y.q))
	default:
		return FromFloat(x.f.Sub(y.f))
	}
}

// Mul returns x * y.
func Mul(x, y Value) Value {
	x, y, k := promote(x, y)
	switch k {
	case KindInt:
		return FromInt(x.Int().Mul(y.Int()))
	case KindRat:
		return FromRat(x.q.Mul(y.q))
	default:
		return FromFloat(x.f.Mul(y.f))
	}
}

// Div returns x / y. Two integers are floor divided. Integer and rational
// division by zero fail with numerr.ErrDivisionByZero, while float division
// by zero yields an infinity or NaN.
func Div(x, y Value) (Value, error) {
	x, y, k := promote(x, y)
	switch k {
	case KindInt:
		q, err := x.Int().Div(y.Int())
		if err != nil {
			return Value{}, err
		}
		return FromInt(q), nil
	case KindRat:
		q, err := x.q.Quo(y.q)
		if err != nil {
			return Value{}, err
		}
		return FromRat(q), nil
	default:
		return FromFloat(x.f.Quo(y.f)), nil
	}
}

// Mod returns the floor modulus of two integers, which takes the sign of y.
// Other kinds fail with numerr.ErrDomain.
func Mod(x, y Value) (Value, error) {
	if x.kind != KindInt || y.kind != KindInt {
		return Value{}, numerr.New(numerr.Domain, `numeric.Mod`, `integer operands required`)
	}
	m, err := x.Int().Mod(y.Int())
	if err != nil {
		return Value{}, err
	}
	return FromInt(m), nil
}

// Pow returns x**n, where n must be an integer that fits in an int64,
// otherwise failing with numerr.ErrRange. Negative exponents are only
// supported for rationals, per bigq.Rat.Pow.
func Pow(x, n Value) (Value, error) {
	if n.kind != KindInt {
		return Value{}, numerr.New(numerr.Range, `numeric.Pow`, `exponent is not an integer`)
	}
	e, err := n.Int().Int64()
	if err != nil {
		return Value{}, err
	}
	switch x.kind {
	case KindInt:
		r, err := x.Int().Pow(e)
		if err != nil {
			return Value{}, err
		}
		return FromInt(r), nil
	case KindRat:
		r, err := x.q.Pow(e)
		if err != nil {
			return Value{}, err
		}
		return FromRat(r), nil
	default:
		r, err := x.f.Pow(e)
		if err != nil {
			return Value{}, err
		}
		return FromFloat(r), nil
	}
}

// Neg returns -x.
func Neg(x Value) Value {
	switch x.kind {
	case KindRat:
		return FromRat(x.q.Neg())
	case KindFloat:
		return FromFloat(x.f.Neg())
	default:
		return FromInt(x.Int().Neg())
	}
}

// Abs returns |x|.
func Abs(x Value) Value {
	switch x.kind {
	case KindRat:
		return FromRat(x.q.Abs())
	case KindFloat:
		return FromFloat(x.f.Abs())
	default:
		return FromInt(x.Int().Abs())
	}
}

// Cmp compares x and y exactly, returning -1, 0, or +1, and true, unless
// either is NaN, in which case it returns 0, false. Finite floats are
// compared by their exact rational value, rather than by rounding the
// other operand.
func Cmp(x, y Value) (int, bool) {
	if x.kind != KindFloat && y.kind != KindFloat {
		if x.kind == KindInt && y.kind == KindInt {
			return x.Int().Cmp(y.Int()), true
		}
		return x.toRat().Cmp(y.toRat()), true
	}
	xf, yf := x.Float(), y.Float()
	if xf != nil && yf != nil {
		return xf.CmpOK(yf)
	}
	if xf == nil {
		c, ok := cmpFloat(yf, x)
		return -c, ok
	}
	return cmpFloat(xf, y)
}

// cmpFloat compares f against the non-float y.
func cmpFloat(f *bigf.Float, y Value) (int, bool) {
	switch {
	case f.IsNaN():
		return 0, false
	case f.IsInf():
		return f.Sign(), true
	}
	r, _ := f.Rat()
	return r.Cmp(y.toRat()), true
}

// Equal reports whether x and y are numerically equal, regardless of kind.
// NaN is not equal to anything.
func Equal(x, y Value) bool {
	c, ok := Cmp(x, y)
	return ok && c == 0
}

// Normalize returns v in its lowest kind that represents it exactly, e.g.
// the rational 4/2 as the integer 2. Floats are returned unchanged.
func Normalize(v Value) Value {
	if v.kind == KindRat && v.q.IsInt() {
		return FromInt(v.q.Num())
	}
	return v
}
