package bigf

import (
	"math"
	"math/bits"

	"github.com/joeycumines/go-bignum/bigq"
	"github.com/joeycumines/go-bignum/bigz"
)

// maxGuard caps the guard bits added by withGuard, as a multiple of the
// working precision.
const maxGuard = 4

// withGuard evaluates f at increasing working precisions, until the bits f
// reports as lost to cancellation are covered, and returns the result
// rounded to prec bits.
func withGuard(prec uint, guard int64, f func(wp uint) (*Float, int64)) *Float {
	base := workPrec(prec)
	for {
		r, lost := f(base + uint(guard))
		if lost+8 <= guard || guard > maxGuard*int64(base) {
			return round(r, prec)
		}
		guard = min(max(lost+16, 2*guard), maxGuard*int64(base)+1)
	}
}

// lostBits returns the number of bits lost to cancellation, where r was
// computed from terms of at most 2**top in magnitude.
func lostBits(r *Float, top int64) int64 {
	switch r.form {
	case zero:
		return math.MaxInt32
	case finite:
		return max(0, top-r.top())
	}
	return 0
}

func maxTop(t int64, xs ...*Float) int64 {
	for _, x := range xs {
		if x.form == finite {
			t = max(t, x.top())
		}
	}
	return t
}

// Zeta returns the Riemann zeta function of x. Zeta(1) is +Inf, and
// Zeta(-Inf) is NaN.
func Zeta(x *Float) *Float {
	prec := precOf(x)
	switch {
	case x.form == nan, x.form == inf && x.neg:
		return &Float{prec: prec, form: nan}
	case x.form == inf:
		return fromInt64(1, prec)
	case x.form == zero:
		return quoInt(fromInt64(-1, 64), 2, prec)
	case isOne(x):
		return &Float{prec: prec, form: inf}
	}
	if !x.neg && x.top() > 0 {
		return zetaAt(x, prec)
	}
	if x.neg && x.IsInt() {
		if x.exp > 0 {
			// trivial zeros
			return &Float{prec: prec}
		}
		if n, _ := x.Int(); x.top() <= 8 {
			// Zeta(-n) = -B(n+1)/(n+1)
			k := int(-n.SaturatedInt64()+1) / 2
			q, _ := bernoulli(k)[k-1].Neg().Quo(bigq.FromInt64(int64(2 * k)))
			return FromRat(q, prec)
		}
	}
	if x.cmpAbs(pow2(-1)) >= 0 && !x.neg {
		return zetaAt(x, prec)
	}
	return zetaReflect(x, prec)
}

// zetaReflect returns Zeta(x), for x < 1/2, by way of the functional
// equation Zeta(x) = 2**x * π**(x-1) * sin(π*x/2) * Gamma(1-x) * Zeta(1-x),
// evaluated in logarithms.
func zetaReflect(x *Float, prec uint) *Float {
	wp := workPrec(prec)
	if x.top() < -int64(wp) {
		// Zeta(x) = -1/2 - x*log(2π)/2 + O(x**2)
		return quoInt(fromInt64(-1, 64), 2, prec)
	}
	sh := sinPi(ldexp(x, -1), wp)
	neg := sh.neg
	if x.top() > 40 {
		// overflows
		return &Float{prec: prec, form: inf, neg: neg}
	}
	y := reflect(x)
	zy := zetaAt(y, wp)
	if zy.neg {
		neg = !neg
	}
	lp := wp + 2*uint(max(y.top(), 0)) + 8
	twoPi := ldexp(constAt(constPi, lp), 1)
	l := mul(x, logAt(twoPi, lp), lp)
	l = add(l, logAt(constAt(constPi, lp), lp), lp, true)
	l = add(l, lnGammaAt(y, lp), lp, false)
	l = add(l, logAt(zy.Abs(), lp), lp, false)
	l = add(l, logAt(sh.Abs(), lp), lp, false)
	r := expAt(l, prec)
	r.neg = neg
	return r
}

// zetaAt returns Zeta(x), for finite x >= 1/2, x != 1, using the algorithm
// of Borwein, "An efficient algorithm for the Riemann zeta function".
func zetaAt(x *Float, prec uint) *Float {
	if x.top() > 62 || float64Of(x) > float64(prec)+2 {
		// Zeta(x) = 1 + 2**-x + ..., which rounds to 1
		return fromInt64(1, prec)
	}
	wp := workPrec(prec)
	// the error is about 3 / (3 + sqrt(8))**n
	n := int64(0.4*float64(wp)) + 8
	wp += uint(bits.Len64(uint64(n))) + 8
	if x.top() <= 1 {
		// the sum cancels to about (1-x) * d(n)
		wp += uint(max(0, -reflect(x).top()))
	}

	// d(k) = n * sum (n+i-1)! * 4**i / ((n-i)! * (2i)!), for i in [0, k]
	d := make([]*bigz.Int, n+1)
	e := bigz.One()
	d[0] = e
	for i := int64(0); i < n; i++ {
		e = e.Mul(bigz.FromInt64(2 * (n + i) * (n - i)))
		e, _ = e.Quo(bigz.FromInt64((i + 1) * (2*i + 1)))
		d[i+1] = d[i].Add(e)
	}

	intPow := x.IsInt()
	var p uint64
	if intPow {
		v, _ := x.Int()
		p = uint64(v.SaturatedInt64())
	}
	ep := wp + uint(max(x.top(), 0)) + 8

	sum := &Float{prec: wp}
	for k := int64(0); k < n; k++ {
		var kx *Float
		if intPow {
			kx = powInt(fromInt64(k+1, 64), p, wp)
		} else {
			kx = expAt(mul(x, logAt(fromInt64(k+1, 64), ep), ep), wp)
		}
		t := quo(FromInt(d[k].Sub(d[n]), wp), kx, wp)
		if k&1 == 1 {
			t.neg = !t.neg
		}
		sum = add(sum, t, wp, false)
	}

	// Zeta(x) = -sum / (d(n) * (1 - 2**(1-x))), where
	// 1 - 2**(1-x) = -expm1((1-x)*log(2))
	em := expm1At(mul(reflect(x), constAt(constLn2, wp), wp), wp)
	return quo(sum, mul(FromInt(d[n], wp), em, wp), prec)
}

// Erf returns the error function of x.
func Erf(x *Float) *Float {
	prec := precOf(x)
	switch x.form {
	case nan, zero:
		return round(x, prec)
	case inf:
		return fromInt64(int64(x.Sign()), prec)
	}
	if erfIsOne(x, prec) {
		return fromInt64(int64(x.Sign()), prec)
	}
	return round(erfAt(x, workPrec(prec)), prec)
}

// erfIsOne reports whether |erf(x)| rounds to 1, at prec bits, which is
// the case when erfc(|x|) < exp(-x**2) < 2**-(prec+2).
func erfIsOne(x *Float, prec uint) bool {
	if x.top() > 32 {
		return true
	}
	f := float64Of(x)
	return f*f > float64(prec+2)*math.Ln2
}

// erfAt returns erf(x), at wp bits, for finite non-zero x, using
//
//	erf(x) = 2/sqrt(π) * exp(-x**2) * sum 2**k * x**(2k+1) / (2k+1)!!
func erfAt(x *Float, wp uint) *Float {
	a := x.Abs()
	a2 := mul(a, a, uint(2*a.mant.BitLen()))
	sum := round(a, wp)
	t := sum
	for k := int64(1); ; k++ {
		t = quoInt(mul(t, ldexp(a2, 1), wp), 2*k+1, wp)
		if negligible(t, sum, wp) {
			break
		}
		sum = add(sum, t, wp, false)
	}
	ex := expAt(a2.Neg(), wp)
	r := quo(ldexp(mul(sum, ex, wp), 1), sqrt(constAt(constPi, wp), wp), wp)
	r.neg = x.neg
	return r
}

// Erfc returns the complementary error function of x, 1 - erf(x).
func Erfc(x *Float) *Float {
	prec := precOf(x)
	switch x.form {
	case nan:
		return round(x, prec)
	case zero:
		return fromInt64(1, prec)
	case inf:
		if x.neg {
			return fromInt64(2, prec)
		}
		return &Float{prec: prec}
	}
	wp := workPrec(prec)
	if x.neg {
		if erfIsOne(x, prec) {
			return fromInt64(2, prec)
		}
		return add(fromInt64(1, 64), erfAt(x.Abs(), wp), prec, false)
	}
	if x.top() > 32 {
		// exp(-x**2) underflows
		return &Float{prec: prec}
	}
	f := float64Of(x)
	if f*f >= float64(wp)*math.Ln2 {
		return round(erfcAsymptotic(x, wp), prec)
	}
	// 1 - erf(x) loses about x**2 * log2(e) bits
	g := uint(f*f*math.Log2E) + uint(max(x.top(), 0)) + 8
	return add(fromInt64(1, 64), erfAt(x, wp+g), prec, true)
}

// erfcAsymptotic returns erfc(x), at wp bits, for x**2 >= wp*log(2), using
//
//	erfc(x) = exp(-x**2) / (x*sqrt(π)) * sum (-1)**k * (2k-1)!! / (2x**2)**k
func erfcAsymptotic(x *Float, wp uint) *Float {
	x2 := mul(x, x, uint(2*x.mant.BitLen()))
	inv := quo(fromInt64(1, 64), ldexp(x2, 1), wp)
	inv.neg = true
	sum := fromInt64(1, wp)
	t := sum
	for k := int64(1); ; k++ {
		next := mul(mulInt(t, 2*k-1, wp), inv, wp)
		if negligible(next, sum, wp) || next.cmpAbs(t) >= 0 {
			break
		}
		t = next
		sum = add(sum, t, wp, false)
	}
	d := mul(x, sqrt(constAt(constPi, wp), wp), wp)
	return quo(mul(expAt(x2.Neg(), wp), sum, wp), d, wp)
}

// Eint returns the exponential integral Ei(x), which is -E1(-x) for
// negative x. Eint(±0) is -Inf.
func Eint(x *Float) *Float {
	prec := precOf(x)
	switch x.form {
	case nan:
		return round(x, prec)
	case zero:
		return &Float{prec: prec, form: inf, neg: true}
	case inf:
		if x.neg {
			return &Float{prec: prec, neg: true}
		}
		return round(x, prec)
	}
	if x.top() > 32 {
		if x.neg {
			return &Float{prec: prec, neg: true}
		}
		return &Float{prec: prec, form: inf}
	}
	f := float64Of(x)
	if f >= float64(workPrec(prec))*math.Ln2+10 {
		return round(eintAsymptotic(x, workPrec(prec)), prec)
	}
	var guard int64 = 8
	if x.neg {
		// the series alternates, with terms as large as exp(|x|)
		guard += int64(f * math.Log2E)
	}
	return withGuard(prec, guard, func(wp uint) (*Float, int64) {
		return eintSeries(x, wp)
	})
}

// eintSeries returns Ei(x) = γ + log|x| + sum x**k / (k * k!), at wp bits,
// and the bits lost to cancellation.
func eintSeries(x *Float, wp uint) (*Float, int64) {
	sum := round(x, wp)
	t := sum
	top := sum.top()
	for k := int64(2); ; k++ {
		t = quoInt(mul(t, x, wp), k, wp)
		term := quoInt(t, k, wp)
		if negligible(term, sum, wp) && term.top() < top-int64(wp) {
			break
		}
		top = maxTop(top, term)
		sum = add(sum, term, wp, false)
	}
	l := logAt(x.Abs(), wp)
	g := constAt(constEuler, wp)
	r := add(add(g, l, wp, false), sum, wp, false)
	return r, lostBits(r, maxTop(top, l, g))
}

// eintAsymptotic returns Ei(x), at wp bits, for |x| >= wp*log(2), using
//
//	Ei(x) = exp(x)/x * sum k! / x**k
func eintAsymptotic(x *Float, wp uint) *Float {
	inv := quo(fromInt64(1, 64), x, wp)
	sum := fromInt64(1, wp)
	t := sum
	for k := int64(1); ; k++ {
		next := mul(mulInt(t, k, wp), inv, wp)
		if negligible(next, sum, wp) || next.cmpAbs(t) >= 0 {
			break
		}
		t = next
		sum = add(sum, t, wp, false)
	}
	return mul(quo(expAt(x, wp), x, wp), sum, wp)
}

// Li2 returns the real part of the dilogarithm of x. Li2(±Inf) is -Inf.
func Li2(x *Float) *Float {
	prec := precOf(x)
	switch x.form {
	case nan, zero:
		return round(x, prec)
	case inf:
		return &Float{prec: prec, form: inf, neg: true}
	}
	if isOne(x) {
		// π**2/6
		wp := workPrec(prec)
		pi := constAt(constPi, wp)
		return quoInt(mul(pi, pi, wp), 6, prec)
	}
	return withGuard(prec, 8, func(wp uint) (*Float, int64) {
		return li2At(x, wp)
	})
}

// li2At returns the real part of Li2(x), at wp bits, for finite x other
// than 0 and 1, and the bits lost to cancellation.
func li2At(x *Float, wp uint) (*Float, int64) {
	one := fromInt64(1, 64)
	pi := constAt(constPi, wp)
	pi2 := mul(pi, pi, wp)
	var (
		r     *Float
		parts []*Float
	)
	switch {
	case x.neg && x.cmpAbs(one) > 0:
		// Li2(x) = -π**2/6 - log(-x)**2/2 - Li2(1/x)
		l := logAt(x.Abs(), wp)
		a := quoInt(pi2, -6, wp)
		b := ldexp(mul(l, l, wp), -1)
		c := li2Series(quo(one, x, wp), wp)
		parts = []*Float{a, b, c}
		r = add(add(a, b, wp, true), c, wp, true)
	case x.neg || x.cmpAbs(pow2(-1)) <= 0:
		return li2Series(x, wp), 0
	case x.cmpAbs(one) < 0:
		// Li2(x) = π**2/6 - log(x)*log(1-x) - Li2(1-x)
		y := subFrom(1, x, wp)
		a := quoInt(pi2, 6, wp)
		b := mul(logAt(x, wp), logAt(y, wp), wp)
		c := li2Series(y, wp)
		parts = []*Float{a, b, c}
		r = add(add(a, b, wp, true), c, wp, true)
	case x.cmpAbs(fromInt64(2, 64)) <= 0:
		// Li2(x) = π**2/6 - log(x)*log(x-1) - Li2(1-x)
		a := quoInt(pi2, 6, wp)
		b := mul(logAt(x, wp), logAt(addInt(x, -1, wp), wp), wp)
		c := li2Series(subFrom(1, x, wp), wp)
		parts = []*Float{a, b, c}
		r = add(add(a, b, wp, true), c, wp, true)
	default:
		// Li2(x) = π**2/3 - log(x)**2/2 - Li2(1/x)
		l := logAt(x, wp)
		a := quoInt(pi2, 3, wp)
		b := ldexp(mul(l, l, wp), -1)
		c := li2Series(quo(one, x, wp), wp)
		parts = []*Float{a, b, c}
		r = add(add(a, b, wp, true), c, wp, true)
	}
	return r, lostBits(r, maxTop(math.MinInt64, parts...))
}

// li2Series returns Li2(x), at wp bits, for x in [-1, 1/2], using
//
//	Li2(x) = u - u**2/4 + sum B(2k) * u**(2k+1) / (2k+1)!
//
// where u = -log(1-x).
func li2Series(x *Float, wp uint) *Float {
	if x.form == zero {
		return round(x, wp)
	}
	u := log1pAt(x.Neg(), wp).Neg()
	u2 := mul(u, u, wp)
	sum := add(u, ldexp(u2, -2), wp, true)
	p := u
	bs := bernoulli(int(wp/6) + 8)
	for k := 1; ; k++ {
		if k > len(bs) {
			bs = bernoulli(2 * k)
		}
		p = quoInt(mul(p, u2, wp), int64(2*k)*int64(2*k+1), wp)
		term := mul(FromRat(bs[k-1], wp), p, wp)
		if negligible(term, sum, wp) {
			break
		}
		sum = add(sum, term, wp, false)
	}
	return sum
}
