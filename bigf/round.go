package bigf

import (
	"github.com/joeycumines/go-bignum/internal/limb"
)

// integral returns x rounded to a whole number, towards zero, or away from
// zero if away is set. The sign of zero results is preserved.
func (x *Float) integral(away bool) *Float {
	if x.form != finite || x.exp >= 0 {
		return x.Copy()
	}
	z := &Float{prec: x.prec, neg: x.neg}
	n := uint(-x.exp)
	m := limb.Nat(nil).Shr(x.mant, n)
	// x is not whole, as mant is odd
	if away {
		m = m.AddWord(m, 1)
	}
	return z.setMant(m, 0, false)
}

// Trunc returns x rounded towards zero, as a whole-valued Float.
func (x *Float) Trunc() *Float {
	return x.integral(false)
}

// Floor returns the greatest whole-valued Float not greater than x.
func (x *Float) Floor() *Float {
	return x.integral(x.neg)
}

// Ceil returns the least whole-valued Float not less than x.
func (x *Float) Ceil() *Float {
	return x.integral(!x.neg)
}

// RelDiff returns |x - y| / x. The result has the sign of x. If x is zero
// the result is 0 when y is also zero, and 1 otherwise.
func (x *Float) RelDiff(y *Float) *Float {
	prec := resultPrec(x, y)
	if x.form == zero && y.form != nan {
		if y.form == zero {
			return NewPrec(0, prec)
		}
		return NewPrec(1, prec)
	}
	d := add(x, y, prec+2, true)
	d.neg = false
	return quo(d, x, prec)
}
