package bigf

import (
	"math/bits"

	"github.com/joeycumines/go-bignum/internal/limb"
	"github.com/joeycumines/go-bignum/numerr"
)

// add returns x + y (or x - y if sub is set), rounded to prec bits.
func add(x, y *Float, prec uint, sub bool) *Float {
	z := &Float{prec: prec}
	xneg, yneg := x.neg, y.neg != sub

	switch {
	case x.form == nan || y.form == nan:
		z.form = nan
		return z
	case x.form == inf && y.form == inf:
		if xneg != yneg {
			z.form = nan
			return z
		}
		z.form, z.neg = inf, xneg
		return z
	case x.form == inf:
		z.form, z.neg = inf, xneg
		return z
	case y.form == inf:
		z.form, z.neg = inf, yneg
		return z
	case x.form == zero && y.form == zero:
		// -0 + -0 == -0, otherwise +0
		z.form, z.neg = zero, xneg && yneg
		return z
	case x.form == zero:
		z.neg = yneg
		return z.setMant(y.mant.Clone(), y.exp, false)
	case y.form == zero:
		z.neg = xneg
		return z.setMant(x.mant.Clone(), x.exp, false)
	}

	mx, ex, my, ey := x.mant, x.exp, y.mant, y.exp
	if ey+int64(my.BitLen()) > ex+int64(mx.BitLen()) {
		mx, ex, xneg, my, ey, yneg = my, ey, yneg, mx, ex, xneg
	}

	// |y| < 2**e means y only contributes to the sticky bit
	s := max(0, int64(prec)+3-int64(mx.BitLen()))
	if e := ex - s; ey+int64(my.BitLen()) <= e {
		m := limb.Nat(nil).Shl(mx, uint(s))
		if xneg != yneg {
			m = m.SubWord(m, 1)
		}
		z.neg = xneg
		return z.setMant(m, e, true)
	}

	e := min(ex, ey)
	a := limb.Nat(nil).Shl(mx, uint(ex-e))
	b := limb.Nat(nil).Shl(my, uint(ey-e))
	if xneg == yneg {
		z.neg = xneg
		return z.setMant(a.Add(a, b), e, false)
	}
	switch a.Cmp(b) {
	case 1:
		z.neg = xneg
		return z.setMant(a.Sub(a, b), e, false)
	case -1:
		z.neg = yneg
		return z.setMant(b.Sub(b, a), e, false)
	}
	z.form = zero
	return z
}

// mul returns x * y, rounded to prec bits.
func mul(x, y *Float, prec uint) *Float {
	z := &Float{prec: prec, neg: x.neg != y.neg}
	switch {
	case x.form == nan || y.form == nan,
		x.form == inf && y.form == zero,
		x.form == zero && y.form == inf:
		z.form, z.neg = nan, false
	case x.form == inf || y.form == inf:
		z.form = inf
	case x.form == zero || y.form == zero:
		z.form = zero
	default:
		z.setMant(limb.Nat(nil).Mul(x.mant, y.mant), x.exp+y.exp, false)
	}
	return z
}

// quo returns x / y, rounded to prec bits.
func quo(x, y *Float, prec uint) *Float {
	z := &Float{prec: prec, neg: x.neg != y.neg}
	switch {
	case x.form == nan || y.form == nan,
		x.form == inf && y.form == inf,
		x.form == zero && y.form == zero:
		z.form, z.neg = nan, false
	case x.form == inf, y.form == zero:
		z.form = inf
	case x.form == zero, y.form == inf:
		z.form = zero
	default:
		z.setQuo(x.mant, x.exp, y.mant, y.exp)
	}
	return z
}

// sqrt returns the square root of |x|, rounded to prec bits, preserving the
// sign of zero.
func sqrt(x *Float, prec uint) *Float {
	z := &Float{prec: prec, form: x.form}
	switch x.form {
	case zero:
		z.neg = x.neg
	case finite:
		z.setRoot(x.mant, x.exp, 2)
	}
	return z
}

// setRoot sets z to the n'th root of m * 2**e, correctly rounded.
func (z *Float) setRoot(m limb.Nat, e int64, n uint) *Float {
	nn := int64(n)
	s := max(0, nn*(int64(z.prec)+3)-int64(m.BitLen()))
	// e - s must be a multiple of n
	if r := (e - s) % nn; r != 0 {
		if r < 0 {
			r += nn
		}
		s += r
	}
	a := limb.Nat(nil).Shl(m, uint(s))
	var r limb.Nat
	if n == 2 {
		r = r.Sqrt(a)
	} else {
		r = r.Root(a, n)
	}
	exact := limb.Nat(nil).Pow(r, uint64(n)).Cmp(a) == 0
	return z.setMant(r, (e-s)/nn, !exact)
}

// powInt returns x**n, for n >= 0, rounded to prec bits.
func powInt(x *Float, n uint64, prec uint) *Float {
	switch {
	case n == 0:
		return fromInt64(1, prec)
	case x.form != finite:
		z := &Float{prec: prec, form: x.form, neg: x.neg && n&1 == 1}
		if x.form == nan {
			z.neg = false
		}
		return z
	}
	z := &Float{prec: prec, neg: x.neg && n&1 == 1}
	hi, lo := bits.Mul64(uint64(x.mant.BitLen()), n)
	if hi == 0 && lo <= 4*uint64(prec)+256 {
		// small enough to compute exactly
		e, overflow := mulExp(x.exp, n)
		if !overflow {
			return z.setMant(limb.Nat(nil).Pow(x.mant, n), e, false)
		}
	}
	// exponentiation by squaring, with enough guard bits to absorb the
	// accumulated error
	wp := prec + 2*uint(bits.Len64(n)) + 16
	r := fromInt64(1, wp)
	b := &Float{prec: wp, form: finite, mant: x.mant, exp: x.exp}
	for {
		if n&1 != 0 {
			r = mul(r, b, wp)
		}
		n >>= 1
		if n == 0 {
			break
		}
		b = mul(b, b, wp)
	}
	r.neg = z.neg
	return round(r, prec)
}

func mulExp(e int64, n uint64) (int64, bool) {
	if n > 1<<62 {
		return 0, true
	}
	v := e * int64(n)
	if e != 0 && v/e != int64(n) {
		return 0, true
	}
	return v, false
}

// round returns x rounded to prec bits.
func round(x *Float, prec uint) *Float {
	z := &Float{prec: prec, form: x.form, neg: x.neg}
	if x.form == finite {
		z.setMant(x.mant.Clone(), x.exp, false)
	}
	return z
}

// Add returns x + y.
func (x *Float) Add(y *Float) *Float {
	return add(x, y, resultPrec(x, y), false)
}

// Sub returns x - y.
func (x *Float) Sub(y *Float) *Float {
	return add(x, y, resultPrec(x, y), true)
}

// Mul returns x * y.
func (x *Float) Mul(y *Float) *Float {
	return mul(x, y, resultPrec(x, y))
}

// Quo returns x / y. Division of a non-zero value by zero yields an
// infinity, while 0/0 and Inf/Inf yield NaN.
func (x *Float) Quo(y *Float) *Float {
	return quo(x, y, resultPrec(x, y))
}

// Neg returns -x.
func (x *Float) Neg() *Float {
	z := x.Copy()
	z.neg = !z.neg
	return z
}

// Abs returns |x|.
func (x *Float) Abs() *Float {
	z := x.Copy()
	z.neg = false
	return z
}

// Sqrt returns the square root of x. Negative values (excluding -0) fail
// with numerr.ErrDomain. Sqrt(-0) == -0.
func (x *Float) Sqrt() (*Float, error) {
	if x.neg && x.form != zero && x.form != nan {
		return nil, numerr.New(numerr.Domain, `bigf.Sqrt`, `negative operand`)
	}
	return sqrt(x, precOf(x)), nil
}

// Pow returns x**n. A negative exponent fails with numerr.ErrRange.
// x**0 == 1 for all x, including NaN.
func (x *Float) Pow(n int64) (*Float, error) {
	if n < 0 {
		return nil, numerr.New(numerr.Range, `bigf.Pow`, `negative exponent`)
	}
	return powInt(x, uint64(n), precOf(x)), nil
}

// AddAssign sets x to x + y, rounded to the precision of x.
func (x *Float) AddAssign(y *Float) {
	*x = *add(x, y, precOf(x), false)
}

// SubAssign sets x to x - y, rounded to the precision of x.
func (x *Float) SubAssign(y *Float) {
	*x = *add(x, y, precOf(x), true)
}

// MulAssign sets x to x * y, rounded to the precision of x.
func (x *Float) MulAssign(y *Float) {
	*x = *mul(x, y, precOf(x))
}

// QuoAssign sets x to x / y, rounded to the precision of x.
func (x *Float) QuoAssign(y *Float) {
	*x = *quo(x, y, precOf(x))
}

// NegAssign sets x to -x.
func (x *Float) NegAssign() {
	x.neg = !x.neg
}

// AbsAssign sets x to |x|.
func (x *Float) AbsAssign() {
	x.neg = false
}
