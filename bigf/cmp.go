package bigf

import (
	"github.com/joeycumines/go-bignum/internal/limb"
)

// ord classifies x as -2 (-Inf), -1 (negative), 0 (zero), 1 (positive), or
// 2 (+Inf). x must not be NaN.
func (x *Float) ord() int {
	var o int
	switch x.form {
	case zero:
		return 0
	case finite:
		o = 1
	case inf:
		o = 2
	}
	if x.neg {
		return -o
	}
	return o
}

// cmpAbs compares |x| and |y|, both finite.
func (x *Float) cmpAbs(y *Float) int {
	tx, ty := x.top(), y.top()
	switch {
	case tx < ty:
		return -1
	case tx > ty:
		return 1
	case x.exp > y.exp:
		return limb.Nat(nil).Shl(x.mant, uint(x.exp-y.exp)).Cmp(y.mant)
	default:
		return x.mant.Cmp(limb.Nat(nil).Shl(y.mant, uint(y.exp-x.exp)))
	}
}

// CmpOK compares x and y, returning -1, 0, or +1, as x is less than, equal
// to, or greater than y, and true. If either is NaN, it returns 0, false.
// The two zeros compare equal.
func (x *Float) CmpOK(y *Float) (int, bool) {
	if x.form == nan || y.form == nan {
		return 0, false
	}
	ox, oy := x.ord(), y.ord()
	switch {
	case ox < oy:
		return -1, true
	case ox > oy:
		return 1, true
	case ox == 1:
		return x.cmpAbs(y), true
	case ox == -1:
		return y.cmpAbs(x), true
	default:
		return 0, true
	}
}

// Cmp is like CmpOK, but imposes a total order, in which NaN is less than
// every other value, and equal to itself.
func (x *Float) Cmp(y *Float) int {
	switch xn, yn := x.form == nan, y.form == nan; {
	case xn && yn:
		return 0
	case xn:
		return -1
	case yn:
		return 1
	}
	c, _ := x.CmpOK(y)
	return c
}

// CmpFloat64 compares x and y, per Cmp.
func (x *Float) CmpFloat64(y float64) int {
	return x.Cmp(NewPrec(y, 53))
}

// Eq reports x == y, false if either is NaN.
func (x *Float) Eq(y *Float) bool {
	c, ok := x.CmpOK(y)
	return ok && c == 0
}

// Lt reports x < y, false if either is NaN.
func (x *Float) Lt(y *Float) bool {
	c, ok := x.CmpOK(y)
	return ok && c < 0
}

// Gt reports x > y, false if either is NaN.
func (x *Float) Gt(y *Float) bool {
	c, ok := x.CmpOK(y)
	return ok && c > 0
}

// Le reports x <= y, false if either is NaN.
func (x *Float) Le(y *Float) bool {
	c, ok := x.CmpOK(y)
	return ok && c <= 0
}

// Ge reports x >= y, false if either is NaN.
func (x *Float) Ge(y *Float) bool {
	c, ok := x.CmpOK(y)
	return ok && c >= 0
}
