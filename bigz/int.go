// Package bigz implements arbitrary-precision signed integers.
//
// Methods without an Assign suffix (or SetBit/Swap) never modify their
// receiver or arguments, and return freshly allocated results. The Assign
// family mutates the receiver in place, and only returns an error, if the
// operation can fail.
//
// Division and modulus use floor semantics: the remainder takes the sign of
// the divisor. The truncating variants are Quo, Rem and QuoRem.
package bigz

import (
	"github.com/joeycumines/go-bignum/internal/limb"
	"golang.org/x/exp/constraints"
)

// Int is an arbitrary-precision integer. The zero value is 0.
//
// Copying an Int by value shares storage; use Copy.
type Int struct {
	abs limb.Nat
	neg bool
}

var natOne = limb.Nat{1}

// New returns a new Int with the value of v.
func New[T constraints.Integer](v T) *Int {
	if v < 0 {
		return FromInt64(int64(v))
	}
	return FromUint64(uint64(v))
}

// FromInt64 returns a new Int with the value of v.
func FromInt64(v int64) *Int {
	z := new(Int)
	u := uint64(v)
	if v < 0 {
		u = -u
		z.neg = true
	}
	z.abs = z.abs.SetUint64(u)
	return z
}

// FromUint64 returns a new Int with the value of v.
func FromUint64(v uint64) *Int {
	return &Int{abs: limb.Nat(nil).SetUint64(v)}
}

// Zero returns a new Int with the value 0.
func Zero() *Int {
	return new(Int)
}

// One returns a new Int with the value 1.
func One() *Int {
	return FromUint64(1)
}

// FromNat returns a new Int with the value of abs, negated if neg is set.
// Ownership of abs is transferred.
func FromNat(abs limb.Nat, neg bool) *Int {
	abs = abs.Norm()
	return &Int{abs: abs, neg: neg && len(abs) > 0}
}

// Nat returns a copy of the magnitude of x.
func (x *Int) Nat() limb.Nat {
	return x.abs.Clone()
}

// Copy returns a deep copy of x.
func (x *Int) Copy() *Int {
	return &Int{abs: x.abs.Clone(), neg: x.neg}
}

// Set assigns the value of y to x.
func (x *Int) Set(y *Int) {
	if x != y {
		x.abs = x.abs.Set(y.abs)
		x.neg = y.neg
	}
}

// Swap exchanges the values of x and y.
func (x *Int) Swap(y *Int) {
	*x, *y = *y, *x
}

// Sign returns -1, 0, or +1.
func (x *Int) Sign() int {
	if len(x.abs) == 0 {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool {
	return len(x.abs) == 0
}

// IsNonZero reports whether x != 0.
func (x *Int) IsNonZero() bool {
	return len(x.abs) != 0
}

// IsEven reports whether x is even.
func (x *Int) IsEven() bool {
	return len(x.abs) == 0 || x.abs[0]&1 == 0
}

// IsOdd reports whether x is odd.
func (x *Int) IsOdd() bool {
	return !x.IsEven()
}

// Cmp returns -1, 0, or +1, as x is less than, equal to, or greater than y.
func (x *Int) Cmp(y *Int) (r int) {
	switch {
	case x == y:
	case x.neg == y.neg:
		r = x.abs.Cmp(y.abs)
		if x.neg {
			r = -r
		}
	case x.neg:
		r = -1
	default:
		r = 1
	}
	return
}

// CmpAbs compares the absolute values of x and y.
func (x *Int) CmpAbs(y *Int) int {
	return x.abs.Cmp(y.abs)
}

// CmpInt64 compares x against a native integer.
func (x *Int) CmpInt64(y int64) int {
	var t Int
	t.setInt64(y)
	return x.Cmp(&t)
}

func (x *Int) Eq(y *Int) bool { return x.Cmp(y) == 0 }
func (x *Int) Lt(y *Int) bool { return x.Cmp(y) < 0 }
func (x *Int) Gt(y *Int) bool { return x.Cmp(y) > 0 }
func (x *Int) Le(y *Int) bool { return x.Cmp(y) <= 0 }
func (x *Int) Ge(y *Int) bool { return x.Cmp(y) >= 0 }

func (z *Int) setInt64(v int64) *Int {
	u := uint64(v)
	z.neg = v < 0
	if z.neg {
		u = -u
	}
	z.abs = z.abs.SetUint64(u)
	return z
}

func (z *Int) add(x, y *Int) *Int {
	neg := x.neg
	if x.neg == y.neg {
		// x + y == x + y
		// (-x) + (-y) == -(x + y)
		z.abs = z.abs.Add(x.abs, y.abs)
	} else {
		// x + (-y) == x - y == -(y - x)
		// (-x) + y == y - x == -(x - y)
		if x.abs.Cmp(y.abs) >= 0 {
			z.abs = z.abs.Sub(x.abs, y.abs)
		} else {
			neg = !neg
			z.abs = z.abs.Sub(y.abs, x.abs)
		}
	}
	z.neg = len(z.abs) > 0 && neg
	return z
}

func (z *Int) sub(x, y *Int) *Int {
	neg := x.neg
	if x.neg != y.neg {
		// x - (-y) == x + y
		// (-x) - y == -(x + y)
		z.abs = z.abs.Add(x.abs, y.abs)
	} else {
		// x - y == x - y == -(y - x)
		// (-x) - (-y) == y - x == -(x - y)
		if x.abs.Cmp(y.abs) >= 0 {
			z.abs = z.abs.Sub(x.abs, y.abs)
		} else {
			neg = !neg
			z.abs = z.abs.Sub(y.abs, x.abs)
		}
	}
	z.neg = len(z.abs) > 0 && neg
	return z
}

func (z *Int) mul(x, y *Int) *Int {
	z.abs = z.abs.Mul(x.abs, y.abs)
	z.neg = len(z.abs) > 0 && x.neg != y.neg
	return z
}

// Add returns x + y.
func (x *Int) Add(y *Int) *Int {
	return new(Int).add(x, y)
}

// Sub returns x - y.
func (x *Int) Sub(y *Int) *Int {
	return new(Int).sub(x, y)
}

// Mul returns x * y.
func (x *Int) Mul(y *Int) *Int {
	return new(Int).mul(x, y)
}

// Neg returns -x.
func (x *Int) Neg() *Int {
	z := x.Copy()
	z.neg = len(z.abs) > 0 && !z.neg
	return z
}

// Abs returns |x|.
func (x *Int) Abs() *Int {
	return &Int{abs: x.abs.Clone()}
}

// Succ returns x + 1.
func (x *Int) Succ() *Int {
	return new(Int).add(x, &Int{abs: natOne})
}

// AddAssign sets x to x + y.
func (x *Int) AddAssign(y *Int) {
	x.add(x, y)
}

// SubAssign sets x to x - y.
func (x *Int) SubAssign(y *Int) {
	x.sub(x, y)
}

// MulAssign sets x to x * y.
func (x *Int) MulAssign(y *Int) {
	x.mul(x, y)
}

// NegAssign sets x to -x.
func (x *Int) NegAssign() {
	x.neg = len(x.abs) > 0 && !x.neg
}

// AbsAssign sets x to |x|.
func (x *Int) AbsAssign() {
	x.neg = false
}
