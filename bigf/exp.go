package bigf

import (
	"math"

	"github.com/joeycumines/go-bignum/internal/limb"
)

func isOne(x *Float) bool {
	return x.form == finite && !x.neg && x.exp == 0 && len(x.mant) == 1 && x.mant[0] == 1
}

// expm1Small returns exp(r) - 1, for |r| < 1, at wp bits.
func expm1Small(r *Float, wp uint) *Float {
	if r.form != finite {
		return round(r, wp)
	}
	// Taylor series of r/2**s, then s rounds of expm1(2t) = expm1(t)*(expm1(t)+2)
	s := max(0, int64(math.Sqrt(float64(wp))/2)+1+r.top())
	wp += uint(s) + 8
	t := ldexp(round(r, wp), -s)
	sum, term := t, t
	for k := int64(2); ; k++ {
		term = quoInt(mul(term, t, wp), k, wp)
		if negligible(term, sum, wp) {
			break
		}
		sum = add(sum, term, wp, false)
	}
	two := fromInt64(2, 64)
	for ; s > 0; s-- {
		sum = mul(sum, add(sum, two, wp, false), wp)
	}
	return sum
}

// expAt returns exp(x), at prec bits.
func expAt(x *Float, prec uint) *Float {
	switch x.form {
	case nan:
		return &Float{prec: prec, form: nan}
	case inf:
		if x.neg {
			return &Float{prec: prec}
		}
		return &Float{prec: prec, form: inf}
	case zero:
		return fromInt64(1, prec)
	}

	switch t := x.top(); {
	case t > 32:
		// |x| >= 2**32 is well beyond MaxExp*ln(2)
		if x.neg {
			return &Float{prec: prec}
		}
		return &Float{prec: prec, form: inf}
	case t < -int64(prec)-2:
		// the x**2/2 term is negligible
		return add(fromInt64(1, 64), x, prec, false)
	}

	wp := workPrec(prec)
	r := x
	var k int64
	if x.top() > 0 {
		// exp(x) = exp(r) * 2**k, where x = r + k*ln(2)
		ext := wp + uint(x.top()) + 8
		ln2 := constAt(constLn2, ext)
		k = int64(math.Round(float64Of(quo(x, ln2, 64))))
		if x.neg {
			k = -k
		}
		r = add(x, mulInt(ln2, k, ext), ext, true)
	}
	u := expm1Small(r, wp)
	return round(ldexp(add(u, fromInt64(1, 64), wp, false), k), prec)
}

// logAt returns log(x), at prec bits.
func logAt(x *Float, prec uint) *Float {
	switch {
	case x.form == nan, x.neg && x.form != zero:
		return &Float{prec: prec, form: nan}
	case x.form == zero:
		return &Float{prec: prec, form: inf, neg: true}
	case x.form == inf:
		return &Float{prec: prec, form: inf}
	case isOne(x):
		return &Float{prec: prec}
	}

	wp := workPrec(prec)
	one := fromInt64(1, 64)

	// x = y * 2**k, where y is in [sqrt(1/2), sqrt(2))
	k := x.top()
	y := &Float{prec: x.prec, form: finite, mant: x.mant, exp: x.exp - k}
	if mul(y, y, uint(2*y.mant.BitLen())).top() < 0 {
		// y*y < 1/2
		k--
		y.exp++
	}

	// log(y) = 2*atanh((y-1)/(y+1)), after s square roots
	var ly *Float
	if d := add(y, one, wp, true); d.form != zero {
		s := max(0, int64(math.Sqrt(float64(wp))/2)+d.top())
		wp2 := wp + 2*uint(s) + 4
		yy := round(y, wp2)
		for range s {
			yy = sqrt(yy, wp2)
		}
		z := quo(add(yy, one, wp2, true), add(yy, one, wp2, false), wp2)
		ly = ldexp(atanhSeries(z, wp2), s+1)
	}

	switch {
	case k == 0:
		return round(ly, prec)
	case ly == nil:
		return mulInt(constAt(constLn2, wp+40), k, prec)
	default:
		return add(mulInt(constAt(constLn2, wp+40), k, wp), ly, prec, false)
	}
}

// log1pAt returns log(1 + x), at prec bits.
func log1pAt(x *Float, prec uint) *Float {
	switch x.form {
	case nan:
		return &Float{prec: prec, form: nan}
	case zero:
		return &Float{prec: prec, neg: x.neg}
	case inf:
		if x.neg {
			return &Float{prec: prec, form: nan}
		}
		return &Float{prec: prec, form: inf}
	}
	if x.neg {
		switch c := x.cmpAbs(fromInt64(1, 64)); {
		case c > 0:
			return &Float{prec: prec, form: nan}
		case c == 0:
			return &Float{prec: prec, form: inf, neg: true}
		}
	}
	wp := workPrec(prec)
	if x.top() < 0 {
		// |x| < 1/2, so log(1+x) = 2*atanh(x/(2+x)) avoids cancellation
		z := quo(x, addInt(x, 2, wp), wp)
		return round(ldexp(atanhSeries(z, wp), 1), prec)
	}
	return logAt(addInt(x, 1, wp), prec)
}

// Exp returns e**x.
func Exp(x *Float) *Float {
	return expAt(x, precOf(x))
}

// Expm1 returns e**x - 1, which is accurate for x near zero.
func Expm1(x *Float) *Float {
	return expm1At(x, precOf(x))
}

// expm1At returns exp(x) - 1, at prec bits.
func expm1At(x *Float, prec uint) *Float {
	switch x.form {
	case nan, zero:
		return round(x, prec)
	case inf:
		if x.neg {
			return fromInt64(-1, prec)
		}
		return round(x, prec)
	}
	if x.top() <= 0 {
		return round(expm1Small(x, workPrec(prec)), prec)
	}
	return add(expAt(x, workPrec(prec)), fromInt64(1, 64), prec, true)
}

// Exp2 returns 2**x.
func Exp2(x *Float) *Float {
	prec := precOf(x)
	if x.form != finite || x.top() > 32 {
		return expAt(x, prec)
	}
	wp := workPrec(prec)
	if x.top() <= 0 {
		return expAt(mul(x, constAt(constLn2, wp), wp), prec)
	}
	// 2**x = 2**f * 2**n, where n = floor(x), and f = x - n is exact
	n := x.Floor()
	k, _ := n.Int()
	f := add(x, n, x.prec, true)
	r := fromInt64(1, wp)
	if f.form != zero {
		r = expAt(mul(f, constAt(constLn2, wp), wp), wp)
	}
	return round(ldexp(r, k.SaturatedInt64()), prec)
}

// Exp10 returns 10**x. Whole x of moderate magnitude are correctly rounded.
func Exp10(x *Float) *Float {
	prec := precOf(x)
	if x.form != finite || x.top() > 32 {
		return expAt(x, prec)
	}
	if x.IsInt() && x.top() <= 13 {
		n, _ := x.Int()
		e := n.SaturatedInt64()
		p := limb.Nat(nil).Pow(limb.Nat{10}, uint64(max(e, -e)))
		z := &Float{prec: prec}
		if e < 0 {
			return z.setQuo(limb.Nat{1}, 0, p, 0)
		}
		return z.setMant(p, 0, false)
	}
	wp := workPrec(prec)
	ext := wp + uint(max(x.top(), 0)) + 8
	return expAt(mul(x, constAt(constLn10, ext), ext), prec)
}

// Log returns the natural logarithm of x. Negative x yields NaN, and ±0
// yields -Inf.
func Log(x *Float) *Float {
	return logAt(x, precOf(x))
}

// Log1p returns log(1 + x), which is accurate for x near zero.
func Log1p(x *Float) *Float {
	return log1pAt(x, precOf(x))
}

// Log2 returns the binary logarithm of x. Powers of two yield exact
// results.
func Log2(x *Float) *Float {
	prec := precOf(x)
	if x.form == finite && !x.neg && len(x.mant) == 1 && x.mant[0] == 1 {
		return fromInt64(x.exp, prec)
	}
	if x.form != finite || x.neg {
		return logAt(x, prec)
	}
	wp := workPrec(prec)
	return quo(logAt(x, wp), constAt(constLn2, wp), prec)
}

// Log10 returns the decimal logarithm of x. Powers of ten yield exact
// results.
func Log10(x *Float) *Float {
	prec := precOf(x)
	if x.form != finite || x.neg {
		return logAt(x, prec)
	}
	if n, ok := isPow10(x); ok {
		return fromInt64(n, prec)
	}
	wp := workPrec(prec)
	return quo(logAt(x, wp), constAt(constLn10, wp), prec)
}

// isPow10 reports whether x is 10**n, for n >= 0, returning n.
func isPow10(x *Float) (int64, bool) {
	// 10**n = 5**n * 2**n
	n := x.exp
	switch {
	case n == 0:
		return 0, isOne(x)
	case n < 0 || n > 1<<16:
		return 0, false
	case float64(x.mant.BitLen()) < float64(n)*math.Log2(5)-1:
		return 0, false
	}
	return n, limb.Nat(nil).Pow(limb.Nat{5}, uint64(n)).Cmp(x.mant) == 0
}
