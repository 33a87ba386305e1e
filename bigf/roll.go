package bigf

import (
	"github.com/joeycumines/go-bignum/internal/limb"
)

// SmallestPositive returns the smallest positive Float, 2**(MinExp-1).
//
// The precision of the returned value is 1, as is the mantissa.
//
// WARNING: Take care if attempting to format it, as conversion to decimal
// takes time proportional to the magnitude of the exponent.
func SmallestPositive() *Float {
	return &Float{prec: 1, form: finite, mant: limb.Nat{1}, exp: MinExp - 1}
}

// MaxFinite returns the largest finite Float with the given precision, or
// the default precision if prec is 0.
//
// WARNING: As per SmallestPositive, formatting the result is expensive.
func MaxFinite(prec uint) *Float {
	prec = checkPrec(`max finite`, prec)
	// (2**prec - 1) * 2**(MaxExp-prec)
	m := limb.Nat(nil).Shl(limb.Nat{1}, prec)
	m = m.SubWord(m, 1)
	return &Float{prec: prec, form: finite, mant: m, exp: MaxExp - int64(prec)}
}

// NextToward returns the next representable value after x, at the precision
// of x, in the direction of y.
//
// Special cases are:
//
//	NextToward(x, x)   = x
//	NextToward(NaN, y) = NaN
//	NextToward(x, NaN) = NaN
//	NextToward(±Inf, y) = ±MaxFinite, for finite y
func NextToward(x, y *Float) *Float {
	c, ok := x.CmpOK(y)
	switch {
	case !ok:
		return NaN(precOf(x))
	case c == 0:
		return x.Copy()
	case c < 0:
		return x.step(true)
	default:
		return x.step(false)
	}
}

// step returns the neighbour of x above it if up is set, otherwise below.
func (x *Float) step(up bool) *Float {
	prec := precOf(x)
	z := &Float{prec: prec, neg: x.neg}
	switch x.form {
	case inf:
		// same behavior as math.Nextafter (Inf -> Max)
		m := MaxFinite(prec)
		m.neg = x.neg
		return m
	case zero:
		v := SmallestPositive()
		v.prec, v.neg = prec, !up
		return v
	}

	// magnitude increases iff moving away from zero
	if up != x.neg {
		// |x| + 2**(top-prec)
		e := x.top() - int64(prec)
		m := limb.Nat(nil).Shl(x.mant, uint(x.exp-e))
		return z.setMant(m.AddWord(m, 1), e, false)
	}
	// below a power of two, the spacing halves
	e := x.top() - int64(prec)
	if len(x.mant) == 1 && x.mant[0] == 1 {
		e--
	}
	m := limb.Nat(nil).Shl(x.mant, uint(x.exp-e))
	return z.setMant(m.SubWord(m, 1), e, false)
}
