package bigf

import (
	"github.com/joeycumines/go-bignum/numerr"
)

// maxExactRoot is the largest degree computed by way of an exact integer
// root, above which Root uses exp(log(x)/n).
const maxExactRoot = 1 << 10

// RecSqrt returns 1/sqrt(x). Operands that are not strictly positive,
// including both zeros, fail with numerr.ErrDomain. RecSqrt(+Inf) is +0.
func RecSqrt(x *Float) (*Float, error) {
	prec := precOf(x)
	switch {
	case x.form == nan:
		return round(x, prec), nil
	case x.form == zero || x.neg:
		return nil, numerr.New(numerr.Domain, `bigf.RecSqrt`, `operand not strictly positive`)
	case x.form == inf:
		return &Float{prec: prec}, nil
	}
	wp := workPrec(prec)
	return quo(fromInt64(1, 64), sqrt(x, wp), prec), nil
}

// Cbrt returns the cube root of x, which is correctly rounded.
func Cbrt(x *Float) *Float {
	prec := precOf(x)
	z := &Float{prec: prec, form: x.form, neg: x.neg && x.form != nan}
	if x.form == finite {
		z.setRoot(x.mant, x.exp, 3)
	}
	return z
}

// Root returns the n'th root of x. A negative n yields the reciprocal of
// the -n'th root. An n of zero fails with numerr.ErrRange, and an even n
// with a negative x (excluding -0) fails with numerr.ErrDomain.
func Root(x *Float, n int64) (*Float, error) {
	prec := precOf(x)
	switch {
	case n == 0:
		return nil, numerr.New(numerr.Range, `bigf.Root`, `zero degree`)
	case x.neg && x.form != zero && x.form != nan && n&1 == 0:
		return nil, numerr.New(numerr.Domain, `bigf.Root`, `even root of negative operand`)
	case n < 0:
		// uint64(-n) is 1<<63 for math.MinInt64
		r, err := rootAt(x, uint64(-n), workPrec(prec))
		if err != nil {
			return nil, err
		}
		return quo(fromInt64(1, 64), r, prec), nil
	}
	return rootAt(x, uint64(n), prec)
}

func rootAt(x *Float, n uint64, prec uint) (*Float, error) {
	z := &Float{prec: prec, form: x.form, neg: x.neg && x.form != nan}
	switch {
	case x.form != finite, n == 1:
		if x.form == finite {
			z.setMant(x.mant.Clone(), x.exp, false)
		}
		return z, nil
	case n <= maxExactRoot:
		return z.setRoot(x.mant, x.exp, uint(n)), nil
	}
	// |x|**(1/n) = exp(log(|x|)/n)
	wp := workPrec(prec)
	l := logAt(x.Abs(), wp+64)
	r := expAt(quo(l, FromUint64(n, 64), wp+64), prec)
	r.neg = z.neg
	return r, nil
}

// Agm returns the arithmetic-geometric mean of x and y. A negative
// operand yields NaN.
func Agm(x, y *Float) *Float {
	prec := resultPrec(x, y)
	switch {
	case x.form == nan || y.form == nan,
		x.neg && x.form != zero, y.neg && y.form != zero:
		return &Float{prec: prec, form: nan}
	case x.form == zero || y.form == zero:
		if x.form == inf || y.form == inf {
			return &Float{prec: prec, form: nan}
		}
		return &Float{prec: prec}
	case x.form == inf || y.form == inf:
		return &Float{prec: prec, form: inf}
	}
	wp := workPrec(prec)
	a, b := round(x, wp), round(y, wp)
	for {
		d := add(a, b, wp, true)
		if d.form == zero || d.top() < a.top()-int64(wp)+2 {
			break
		}
		a, b = ldexp(add(a, b, wp, false), -1), sqrt(mul(a, b, wp), wp)
	}
	return round(a, prec)
}

// Hypot returns sqrt(x*x + y*y), without undue overflow or underflow.
// Hypot(±Inf, y) is +Inf, even if y is NaN.
func Hypot(x, y *Float) *Float {
	prec := resultPrec(x, y)
	switch {
	case x.form == inf || y.form == inf:
		return &Float{prec: prec, form: inf}
	case x.form == nan || y.form == nan:
		return &Float{prec: prec, form: nan}
	case x.form == zero:
		return round(y.Abs(), prec)
	case y.form == zero:
		return round(x.Abs(), prec)
	}
	// scale by 2**-k, where k is the larger exponent
	k := max(x.top(), y.top())
	a := &Float{prec: x.prec, form: finite, mant: x.mant, exp: x.exp - k}
	b := &Float{prec: y.prec, form: finite, mant: y.mant, exp: y.exp - k}
	wp := workPrec(prec)
	s := add(mul(a, a, wp), mul(b, b, wp), wp, false)
	return round(ldexp(sqrt(s, wp), k), prec)
}
