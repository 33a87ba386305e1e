package bigf

import (
	"math"
	"math/bits"
	"sync"

	"github.com/joeycumines/go-bignum/bigq"
	"github.com/joeycumines/go-bignum/bigz"
	"github.com/joeycumines/go-bignum/internal/limb"
)

// maxExactGamma bounds the whole arguments for which Gamma and Factorial
// are computed by way of an exact factorial.
const maxExactGamma = 1 << 12

var bernoulliTable struct {
	mu sync.Mutex
	b  []*bigq.Rat
}

// bernoulli returns at least n of the even Bernoulli numbers, where element
// k-1 is B(2k). The table is computed from the tangent numbers, which are
// integers, and grows as required.
func bernoulli(n int) []*bigq.Rat {
	bernoulliTable.mu.Lock()
	defer bernoulliTable.mu.Unlock()
	if len(bernoulliTable.b) >= n {
		return bernoulliTable.b
	}
	n = max(n, 2*len(bernoulliTable.b), 32)

	t := make([]*bigz.Int, n+1)
	t[0], t[1] = bigz.Zero(), bigz.One()
	for k := 2; k <= n; k++ {
		t[k] = t[k-1].Mul(bigz.FromInt64(int64(k - 1)))
	}
	for k := 2; k <= n; k++ {
		for j := k; j <= n; j++ {
			t[j] = t[j-1].Mul(bigz.FromInt64(int64(j - k))).Add(t[j].Mul(bigz.FromInt64(int64(j - k + 2))))
		}
	}

	// B(2k) = (-1)**(k-1) * 2k * T(k) / (4**k * (4**k - 1))
	b := make([]*bigq.Rat, n)
	for k := 1; k <= n; k++ {
		num := t[k].Mul(bigz.FromInt64(int64(2 * k)))
		if k&1 == 0 {
			num.NegAssign()
		}
		p, _ := bigz.One().Lsh(int64(2 * k))
		den := p.Mul(p.Sub(bigz.One()))
		b[k-1], _ = bigq.FromFrac(num, den)
	}
	bernoulliTable.b = b
	return b
}

// mod2 returns x mod 2, in [0, 2), which is exact, for finite x.
func mod2(x *Float) *Float {
	if x.exp >= 1 {
		return &Float{prec: 1}
	}
	k := uint(1 - x.exp)
	low := limb.Nat(nil).Shl(limb.Nat(nil).Shr(x.mant, k), k)
	low = low.Sub(x.mant, low)
	r := &Float{prec: k + 2}
	r.setMant(low, x.exp, false)
	if x.neg && r.form != zero {
		r = subFrom(2, r, k+2)
	}
	return r
}

// sinPi returns sin(π*x), at wp bits, for finite x. The argument is reduced
// exactly, so whole x yield exact zeros.
func sinPi(x *Float, wp uint) *Float {
	r := mod2(x)
	p := r.prec
	neg := false
	if r.cmpAbs(fromInt64(1, 64)) > 0 {
		// sin(π*r) = -sin(π*(r-1))
		r, neg = addInt(r, -1, p), true
	}
	if r.cmpAbs(pow2(-1)) > 0 {
		r = subFrom(1, r, p)
	}
	if r.form == zero {
		return &Float{prec: wp}
	}
	s, _ := sinCosAt(mul(constAt(constPi, wp), r, wp), wp)
	s.neg = neg
	return s
}

// stirlingMin returns the smallest argument for which the Stirling series
// converges to wp bits.
func stirlingMin(wp uint) int64 {
	// the smallest term is about exp(-2π*z)
	return int64(0.12*float64(wp)) + 10
}

// lnGammaStirling returns log(Gamma(z)), computed at sp bits, for
// z >= stirlingMin(wp). The series is truncated once the terms fall below
// 2**-wp.
func lnGammaStirling(z *Float, wp, sp uint) *Float {
	// (z - 1/2)*log(z) - z + log(2π)/2
	l := mul(add(z, pow2(-1), sp, true), logAt(z, sp), sp)
	l = add(l, z, sp, true)
	l = add(l, ldexp(logAt(ldexp(constAt(constPi, sp), 1), sp), -1), sp, false)

	// + sum B(2k) / (2k*(2k-1)*z**(2k-1))
	zinv := quo(fromInt64(1, 64), z, sp)
	zinv2 := mul(zinv, zinv, sp)
	p := zinv
	bs := bernoulli(64)
	for k := 1; ; k++ {
		if k > len(bs) {
			bs = bernoulli(2 * k)
		}
		term := mul(FromRat(bs[k-1], sp), p, sp)
		term = quoInt(term, int64(2*k)*int64(2*k-1), sp)
		if term.form == zero || term.top() < -int64(wp)-8 {
			break
		}
		l = add(l, term, sp, false)
		p = mul(p, zinv2, sp)
	}
	return l
}

// gammaShift returns z = x + m, exactly, and m, where z >= stirlingMin(wp),
// for finite x >= 1/2.
func gammaShift(x *Float, wp uint) (*Float, int64) {
	zmin := stirlingMin(wp)
	if x.top() > 62 || float64Of(x) >= float64(zmin) {
		return x, 0
	}
	m := int64(math.Ceil(float64(zmin) - float64Of(x)))
	return add(x, fromInt64(m, 64), uint(64-min(x.exp, 0))+2, false), m
}

// risingFactorial returns x*(x+1)*...*(x+m-1), at wp bits.
func risingFactorial(x *Float, m int64, wp uint) *Float {
	wp += uint(bits.Len64(uint64(m))) + 4
	p := fromInt64(1, wp)
	for i := int64(0); i < m; i++ {
		p = mul(p, add(x, fromInt64(i, 64), wp, false), wp)
	}
	return p
}

// gammaAt returns Gamma(x), at prec bits.
func gammaAt(x *Float, prec uint) *Float {
	switch {
	case x.form == nan, x.form == inf && x.neg:
		return &Float{prec: prec, form: nan}
	case x.form == inf:
		return &Float{prec: prec, form: inf}
	case x.form == zero:
		return &Float{prec: prec, form: inf, neg: x.neg}
	case x.IsInt() && x.neg:
		return &Float{prec: prec, form: nan}
	case x.IsInt() && x.top() <= 12:
		n, _ := x.Int()
		return FromInt(bigz.Factorial(uint64(n.SaturatedInt64()-1)), prec)
	case !x.neg && x.top() > 40:
		return &Float{prec: prec, form: inf}
	}

	wp := workPrec(prec)

	if x.top() < -int64(wp) {
		// Gamma(x) = 1/x - γ + O(x)
		return add(quo(fromInt64(1, 64), x, wp), constAt(constEuler, wp), prec, true)
	}

	if x.neg || x.top() < 0 {
		// x < 1/2, so Gamma(x) = π / (sin(π*x) * Gamma(1-x))
		y := reflect(x)
		if y.top() > 40 {
			// Gamma(1-x) overflows
			return &Float{prec: prec, neg: sinPi(x, 64).neg}
		}
		d := mul(sinPi(x, wp), gammaAt(y, wp), wp)
		return quo(constAt(constPi, wp), d, prec)
	}

	z, m := gammaShift(x, wp)
	sp := wp + uint(z.top()) + uint(bits.Len64(uint64(z.top()))) + 16
	g := expAt(lnGammaStirling(z, wp, sp), wp)
	if m != 0 {
		g = quo(g, risingFactorial(x, m, wp), wp)
	}
	return round(g, prec)
}

// Gamma returns the gamma function of x. Gamma(±0) is ±Inf, while negative
// whole numbers and -Inf yield NaN.
func Gamma(x *Float) *Float {
	return gammaAt(x, precOf(x))
}

// LnGamma returns the natural logarithm and sign of Gamma(x), per
// math.Lgamma. Non-positive whole numbers, ±0, and ±Inf yield +Inf.
func LnGamma(x *Float) (lgamma *Float, sign int) {
	prec := precOf(x)
	switch {
	case x.form == nan:
		return &Float{prec: prec, form: nan}, 1
	case x.form == inf:
		return &Float{prec: prec, form: inf}, 1
	case x.form == zero:
		if x.neg {
			return &Float{prec: prec, form: inf}, -1
		}
		return &Float{prec: prec, form: inf}, 1
	case x.IsInt() && x.neg:
		return &Float{prec: prec, form: inf}, 1
	}

	wp := workPrec(prec)

	sign = 1
	if x.neg {
		sign = -1
	}
	if x.top() < -int64(wp) {
		// log|Gamma(x)| = -log|x| - γ*x + O(x**2)
		return logAt(x.Abs(), prec).Neg(), sign
	}

	if x.neg || x.top() < 0 {
		// log|Gamma(x)| = log(π) - log|sin(π*x)| - log(Gamma(1-x))
		s := sinPi(x, wp)
		sign = 1
		if s.neg {
			sign = -1
		}
		l := add(logAt(constAt(constPi, wp), wp), logAt(s.Abs(), wp), wp, true)
		return add(l, lnGammaAt(reflect(x), wp), prec, true), sign
	}
	return round(lnGammaAt(x, wp), prec), 1
}

// reflect returns 1 - x, exactly, for finite x with |x| >= 2**-wp.
func reflect(x *Float) *Float {
	return subFrom(1, x, uint(max(x.top(), 1)-min(x.exp, 0))+2)
}

// lnGammaAt returns log(Gamma(x)), for finite x >= 1/2, at wp bits.
func lnGammaAt(x *Float, wp uint) *Float {
	if isOne(x) || (x.form == finite && !x.neg && x.exp == 1 && len(x.mant) == 1 && x.mant[0] == 1) {
		// Gamma(1) == Gamma(2) == 1
		return &Float{prec: wp}
	}
	if x.top() <= 62 && float64Of(x) < float64(stirlingMin(wp)) {
		// avoids cancellation between the shifted series and the product
		return logAt(gammaAt(x, wp+32), wp)
	}
	return round(lnGammaStirling(x, wp, wp+16), wp)
}

// Factorial returns n!, rounded to prec bits, or the default precision if
// prec is 0.
func Factorial(n uint64, prec uint) *Float {
	prec = checkPrec(`factorial`, prec)
	if n <= maxExactGamma {
		return FromInt(bigz.Factorial(n), prec)
	}
	return gammaAt(add(FromUint64(n, 64), fromInt64(1, 64), 65, false), prec)
}
