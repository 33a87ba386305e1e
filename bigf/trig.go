package bigf

import (
	"math"
)

// reduceHalfPi returns r and q, such that x = r + k*π/2, where |r| <= π/4
// (approximately), and q = k mod 4. The precision of r is extended as
// necessary for it to carry wp accurate bits, for finite x.
func reduceHalfPi(x *Float, wp uint) (*Float, int) {
	if x.top() < 0 {
		// |x| < 1/2
		return round(x, wp), 0
	}
	extra := int64(16)
	for {
		ext := wp + uint(x.top()+extra)
		halfPi := ldexp(constAt(constPi, ext), -1)
		qp := uint(x.top()) + 16
		k := add(quo(x, halfPi, qp), pow2(-1), qp, false).Floor()
		r := add(x, mul(k, halfPi, ext), ext, true)
		if r.form == finite && extra >= 8-r.top() {
			n, _ := k.Int()
			q := int(n.ModUint64(4))
			if n.Sign() < 0 {
				q = (4 - q) % 4
			}
			return r, q
		}
		if r.form == finite {
			extra = 16 - r.top()
		} else {
			extra *= 2
		}
	}
}

// sinCosSeries returns sin(r) and cos(r), for small |r|, at wp bits.
func sinCosSeries(r *Float, wp uint) (s, c *Float) {
	r2 := mul(r, r, wp)
	r2.neg = true
	s, c = round(r, wp), fromInt64(1, wp)
	st, ct := s, c
	for k := int64(2); ; k += 2 {
		ct = quoInt(mul(ct, r2, wp), (k-1)*k, wp)
		st = quoInt(mul(st, r2, wp), k*(k+1), wp)
		dc, ds := negligible(ct, c, wp), negligible(st, s, wp)
		if !dc {
			c = add(c, ct, wp, false)
		}
		if !ds {
			s = add(s, st, wp, false)
		}
		if dc && ds {
			return s, c
		}
	}
}

// sinCosAt returns sin(x) and cos(x), at wp bits, for finite x.
func sinCosAt(x *Float, wp uint) (s, c *Float) {
	if x.form == zero {
		return round(x, wp), fromInt64(1, wp)
	}
	r, q := reduceHalfPi(x, wp)
	s, c = sinCosSeries(r, wp)
	switch q {
	case 1:
		s, c = c, s.Neg()
	case 2:
		s, c = s.Neg(), c.Neg()
	case 3:
		s, c = c.Neg(), s
	}
	return s, c
}

// SinCos returns sin(x) and cos(x).
func SinCos(x *Float) (sin, cos *Float) {
	prec := precOf(x)
	if x.form == nan || x.form == inf {
		return &Float{prec: prec, form: nan}, &Float{prec: prec, form: nan}
	}
	s, c := sinCosAt(x, workPrec(prec))
	return round(s, prec), round(c, prec)
}

// Sin returns the sine of x, in radians.
func Sin(x *Float) *Float {
	s, _ := SinCos(x)
	return s
}

// Cos returns the cosine of x, in radians.
func Cos(x *Float) *Float {
	_, c := SinCos(x)
	return c
}

// Tan returns the tangent of x, in radians.
func Tan(x *Float) *Float {
	prec := precOf(x)
	if x.form != finite {
		s, _ := SinCos(x)
		return s
	}
	s, c := sinCosAt(x, workPrec(prec))
	return quo(s, c, prec)
}

// Cot returns the cotangent of x, 1/tan(x). Cot(±0) is ±Inf.
func Cot(x *Float) *Float {
	prec := precOf(x)
	switch x.form {
	case zero:
		return &Float{prec: prec, form: inf, neg: x.neg}
	case nan, inf:
		return &Float{prec: prec, form: nan}
	}
	s, c := sinCosAt(x, workPrec(prec))
	return quo(c, s, prec)
}

// Sec returns the secant of x, 1/cos(x).
func Sec(x *Float) *Float {
	prec := precOf(x)
	if x.form == nan || x.form == inf {
		return &Float{prec: prec, form: nan}
	}
	_, c := sinCosAt(x, workPrec(prec))
	return quo(fromInt64(1, 64), c, prec)
}

// Csc returns the cosecant of x, 1/sin(x). Csc(±0) is ±Inf.
func Csc(x *Float) *Float {
	prec := precOf(x)
	switch x.form {
	case zero:
		return &Float{prec: prec, form: inf, neg: x.neg}
	case nan, inf:
		return &Float{prec: prec, form: nan}
	}
	s, _ := sinCosAt(x, workPrec(prec))
	return quo(fromInt64(1, 64), s, prec)
}

// atanAt returns atan(x), at prec bits.
func atanAt(x *Float, prec uint) *Float {
	switch x.form {
	case nan, zero:
		return round(x, prec)
	case inf:
		r := ldexp(constAt(constPi, prec), -1)
		r.neg = x.neg
		return r
	}

	wp := workPrec(prec)
	y := x.Abs()
	inv := y.cmpAbs(fromInt64(1, 64)) > 0
	if inv {
		// atan(x) = π/2 - atan(1/x), for x > 0
		y = quo(fromInt64(1, 64), y, wp)
	}

	// s rounds of atan(y) = 2*atan(y/(1+sqrt(1+y*y))), then the series
	s := max(0, int64(math.Sqrt(float64(wp))/2)+y.top())
	wp2 := wp + 2*uint(s) + 8
	y = round(y, wp2)
	for range s {
		y = quo(y, addInt(sqrt(addInt(mul(y, y, wp2), 1, wp2), wp2), 1, wp2), wp2)
	}
	r := ldexp(atanSeries(y, wp2), s)

	if inv {
		r = add(ldexp(constAt(constPi, wp2), -1), r, wp2, true)
	}
	r.neg = x.neg
	return round(r, prec)
}

// Atan returns the arctangent of x, in radians.
func Atan(x *Float) *Float {
	return atanAt(x, precOf(x))
}

// Atan2 returns the arctangent of y/x, using the signs of the two to
// determine the quadrant, per math.Atan2.
func Atan2(y, x *Float) *Float {
	prec := resultPrec(y, x)
	signed := func(v *Float) *Float {
		v.neg = y.neg
		return v
	}
	pi := func() *Float { return constAt(constPi, prec) }
	switch {
	case y.form == nan || x.form == nan:
		return &Float{prec: prec, form: nan}
	case y.form == zero:
		if x.neg {
			return signed(pi())
		}
		return &Float{prec: prec, neg: y.neg}
	case x.form == zero:
		return signed(ldexp(pi(), -1))
	case x.form == inf && y.form == inf:
		if x.neg {
			// 3π/4
			wp := workPrec(prec)
			return signed(round(ldexp(mulInt(constAt(constPi, wp), 3, wp), -2), prec))
		}
		return signed(ldexp(pi(), -2))
	case x.form == inf:
		if x.neg {
			return signed(pi())
		}
		return &Float{prec: prec, neg: y.neg}
	case y.form == inf:
		return signed(ldexp(pi(), -1))
	}

	wp := workPrec(prec)
	q := quo(y, x, wp)
	q.neg = false
	a := atanAt(q, wp)
	if x.neg {
		a = add(constAt(constPi, wp), a, wp, true)
	}
	return signed(round(a, prec))
}

// Asin returns the arcsine of x, in radians. |x| > 1 yields NaN.
func Asin(x *Float) *Float {
	prec := precOf(x)
	switch x.form {
	case nan, zero:
		return round(x, prec)
	case inf:
		return &Float{prec: prec, form: nan}
	}
	switch c := x.cmpAbs(fromInt64(1, 64)); {
	case c > 0:
		return &Float{prec: prec, form: nan}
	case c == 0:
		r := ldexp(constAt(constPi, prec), -1)
		r.neg = x.neg
		return r
	}
	// asin(x) = atan(x/sqrt((1-x)*(1+x)))
	wp := workPrec(prec)
	a := x.Abs()
	d := mul(subFrom(1, a, wp), addInt(a, 1, wp), wp)
	return atanAt(quo(x, sqrt(d, wp), wp), prec)
}

// Acos returns the arccosine of x, in radians. |x| > 1 yields NaN.
func Acos(x *Float) *Float {
	prec := precOf(x)
	switch x.form {
	case nan:
		return round(x, prec)
	case inf:
		return &Float{prec: prec, form: nan}
	case zero:
		return ldexp(constAt(constPi, prec), -1)
	}
	switch c := x.cmpAbs(fromInt64(1, 64)); {
	case c > 0:
		return &Float{prec: prec, form: nan}
	case c == 0 && x.neg:
		return constAt(constPi, prec)
	case c == 0:
		return &Float{prec: prec}
	}
	// acos(x) = 2*atan(sqrt((1-x)/(1+x)))
	wp := workPrec(prec)
	t := sqrt(quo(subFrom(1, x, wp), addInt(x, 1, wp), wp), wp)
	return round(ldexp(atanAt(t, wp), 1), prec)
}
