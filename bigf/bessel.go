package bigf

import (
	"math"
)

// J0 returns the order-zero Bessel function of the first kind.
func J0(x *Float) *Float {
	return Jn(0, x)
}

// J1 returns the order-one Bessel function of the first kind.
func J1(x *Float) *Float {
	return Jn(1, x)
}

// Y0 returns the order-zero Bessel function of the second kind. Negative x
// yields NaN, and Y0(±0) is -Inf.
func Y0(x *Float) *Float {
	return Yn(0, x)
}

// Y1 returns the order-one Bessel function of the second kind. Negative x
// yields NaN, and Y1(±0) is -Inf.
func Y1(x *Float) *Float {
	return Yn(1, x)
}

// Jn returns the order-n Bessel function of the first kind.
func Jn(n int64, x *Float) *Float {
	prec := precOf(x)
	// J(-n, x) = (-1)**n * J(n, x), and J(n, -x) = (-1)**n * J(n, x)
	odd := n&1 != 0
	neg := odd && (n < 0) != x.neg
	m := uint64(n)
	if n < 0 {
		m = -m
	}
	switch x.form {
	case nan:
		return round(x, prec)
	case inf:
		return &Float{prec: prec}
	case zero:
		if m == 0 {
			return fromInt64(1, prec)
		}
		return &Float{prec: prec, neg: neg}
	}
	a := x.Abs()
	var r *Float
	if besselAsymptotic(m, a, workPrec(prec)) {
		r = withGuard(prec, 8, func(wp uint) (*Float, int64) {
			j, _, lost := hankel(m, a, wp, true)
			return j, lost
		})
	} else {
		r = withGuard(prec, besselGuard(a), func(wp uint) (*Float, int64) {
			j, top := besselJSeries(m, a, wp)
			return j, lostBits(j, top)
		})
	}
	if neg {
		r.neg = !r.neg
	}
	return r
}

// Yn returns the order-n Bessel function of the second kind. Negative x
// yields NaN, and Yn(n, ±0) is -Inf, or +Inf for negative odd n.
func Yn(n int64, x *Float) *Float {
	prec := precOf(x)
	// Y(-n, x) = (-1)**n * Y(n, x)
	neg := n < 0 && n&1 != 0
	m := uint64(n)
	if n < 0 {
		m = -m
	}
	switch {
	case x.form == nan, x.neg && x.form != zero:
		return &Float{prec: prec, form: nan}
	case x.form == inf:
		return &Float{prec: prec}
	case x.form == zero:
		return &Float{prec: prec, form: inf, neg: !neg}
	}
	var r *Float
	if besselAsymptotic(m, x, workPrec(prec)) {
		r = withGuard(prec, 8, func(wp uint) (*Float, int64) {
			_, y, lost := hankel(m, x, wp, false)
			return y, lost
		})
	} else {
		r = withGuard(prec, besselGuard(x), func(wp uint) (*Float, int64) {
			return besselYSeries(m, x, wp)
		})
	}
	if neg {
		r.neg = !r.neg
	}
	return r
}

// besselGuard returns the initial guard bits for the power series, which
// alternate, with terms as large as about exp(x).
func besselGuard(x *Float) int64 {
	return int64(float64Of(x)*math.Log2E) + 8
}

// besselAsymptotic reports whether the Hankel expansion converges to wp
// bits, for order n and x > 0.
func besselAsymptotic(n uint64, x *Float, wp uint) bool {
	if x.top() > 62 {
		return true
	}
	f := float64Of(x)
	nf := float64(n)
	return f > 0.35*float64(wp)+16 && f > nf*nf/2+nf+1
}

// besselJSeries returns J(n, x), at wp bits, for x > 0, using
//
//	J(n, x) = (x/2)**n * sum (-x**2/4)**k / (k! * (n+k)!)
//
// and the magnitude of the largest term.
func besselJSeries(n uint64, x *Float, wp uint) (*Float, int64) {
	t := besselLead(n, x, wp)
	q := ldexp(mul(x, x, wp), -2)
	q.neg = true
	sum, top := t, t.top()
	for k := uint64(1); ; k++ {
		t = quo(mul(t, q, wp), FromUint64(k*(n+k), 64), wp)
		if negligible(t, sum, wp) && t.top() < top-int64(wp) {
			break
		}
		top = maxTop(top, t)
		sum = add(sum, t, wp, false)
	}
	return sum, top
}

// besselLead returns (x/2)**n / n!, at wp bits.
func besselLead(n uint64, x *Float, wp uint) *Float {
	h := ldexp(x, -1)
	if n <= maxExactGamma {
		return quo(powInt(h, n, wp), Factorial(n, wp), wp)
	}
	// exp(n*log(x/2) - log(n!)), which avoids spurious overflow
	lp := wp + 72
	fn := FromUint64(n, 64)
	l := mul(fn, logAt(h, lp), lp)
	l = add(l, lnGammaAt(addInt(fn, 1, 65), lp), lp, true)
	return expAt(l, wp)
}

// besselYSeries returns Y(n, x), at wp bits, for x > 0, using
//
//	Y(n, x) = 2/π * J(n, x) * (log(x/2) + γ)
//	        - 1/π * sum (n-k-1)!/k! * (x/2)**(2k-n), for k in [0, n)
//	        - 1/π * sum (H(k) + H(n+k)) * (-x**2/4)**k * (x/2)**n / (k! * (n+k)!)
//
// where H(k) is the k'th harmonic number, and the bits lost to
// cancellation.
func besselYSeries(n uint64, x *Float, wp uint) (*Float, int64) {
	j, top := besselJSeries(n, x, wp)
	h := ldexp(x, -1)

	a := add(logAt(h, wp), constAt(constEuler, wp), wp, false)
	a = ldexp(mul(j, a, wp), 1)

	// the finite sum, where the first term is (n-1)! * (x/2)**-n
	fin := &Float{prec: wp}
	if n > 0 {
		h2 := mul(h, h, wp)
		t := quo(Factorial(n-1, wp), powInt(h, n, wp), wp)
		fin = t
		for k := uint64(1); k < n; k++ {
			// t(k) = t(k-1) * (x/2)**2 / (k * (n-k))
			t = quo(mul(t, h2, wp), FromUint64(k*(n-k), 64), wp)
			fin = add(fin, t, wp, false)
		}
	}

	// harmonic sum, with H(0) + H(n) in the first term
	hk := &Float{prec: wp}
	hnk := &Float{prec: wp}
	for i := uint64(1); i <= n; i++ {
		hnk = add(hnk, quo(fromInt64(1, 64), FromUint64(i, 64), wp), wp, false)
	}
	t := besselLead(n, x, wp)
	q := ldexp(mul(x, x, wp), -2)
	q.neg = true
	hs := mul(hnk, t, wp)
	htop := maxTop(math.MinInt64, hs)
	for k := uint64(1); ; k++ {
		t = quo(mul(t, q, wp), FromUint64(k*(n+k), 64), wp)
		hk = add(hk, quo(fromInt64(1, 64), FromUint64(k, 64), wp), wp, false)
		hnk = add(hnk, quo(fromInt64(1, 64), FromUint64(n+k, 64), wp), wp, false)
		term := mul(add(hk, hnk, wp, false), t, wp)
		if negligible(term, hs, wp) && term.top() < htop-int64(wp) {
			break
		}
		htop = maxTop(htop, term)
		hs = add(hs, term, wp, false)
	}

	r := add(add(a, fin, wp, true), hs, wp, true)
	r = quo(r, constAt(constPi, wp), wp)
	top = maxTop(max(top, htop), a, fin)
	return r, lostBits(r, top-1)
}

// hankel returns J(n, x) or Y(n, x), depending on first, at wp bits, for
// large x > 0, using the Hankel expansion
//
//	J(n, x) = sqrt(2/(π*x)) * (P*cos(χ) - Q*sin(χ))
//	Y(n, x) = sqrt(2/(π*x)) * (P*sin(χ) + Q*cos(χ))
//
// where χ = x - (2n+1)*π/4, and the bits lost to cancellation.
func hankel(n uint64, x *Float, wp uint, first bool) (j, y *Float, lost int64) {
	// a(k) = (4n**2 - 1**2) * (4n**2 - 3**2) * ... * (4n**2 - (2k-1)**2) / (k! * 8**k)
	mu := mul(FromUint64(n, 64), FromUint64(n, 64), 128)
	mu = ldexp(mu, 2)
	inv := quo(fromInt64(1, 64), ldexp(x, 3), wp)
	p := fromInt64(1, wp)
	q := &Float{prec: wp}
	t := p
	for k := int64(1); ; k++ {
		// t(k) = t(k-1) * (4n**2 - (2k-1)**2) / (k * 8x)
		f := add(mu, fromInt64((2*k-1)*(2*k-1), 64), wp, true)
		next := quoInt(mul(mul(t, f, wp), inv, wp), k, wp)
		if next.form == zero || negligible(next, p, wp) || (k > int64(n) && next.cmpAbs(t) > 0) {
			break
		}
		t = next
		switch k & 3 {
		case 0:
			p = add(p, t, wp, false)
		case 1:
			q = add(q, t, wp, false)
		case 2:
			p = add(p, t, wp, true)
		case 3:
			q = add(q, t, wp, true)
		}
	}

	// with φ = (2n+1)*π/4, |cos(φ)| = |sin(φ)| = sqrt(2)/2, so that
	// cos(χ) = (±cos(x) ± sin(x)) * sqrt(2)/2, and likewise for sin(χ)
	sx, cx := sinCosAt(x, wp)
	m := (2*n + 1) & 7
	cneg, sneg := m == 3 || m == 5, m == 5 || m == 7
	cosChi := add(flip(cx, cneg), flip(sx, sneg), wp, false)
	sinChi := add(flip(sx, cneg), flip(cx, sneg), wp, true)

	scale := sqrt(quo(fromInt64(1, 64), mul(constAt(constPi, wp), x, wp), wp), wp)
	var r, u, v *Float
	if first {
		u, v = mul(p, cosChi, wp), mul(q, sinChi, wp)
		r = add(u, v, wp, true)
	} else {
		u, v = mul(p, sinChi, wp), mul(q, cosChi, wp)
		r = add(u, v, wp, false)
	}
	lost = lostBits(r, maxTop(maxTop(math.MinInt64, u, v), sx, cx))
	r = mul(r, scale, wp)
	if first {
		return r, nil, lost
	}
	return nil, r, lost
}

func flip(x *Float, neg bool) *Float {
	if neg {
		return x.Neg()
	}
	return x
}
