// Package bigq implements arbitrary-precision rational numbers, on top of
// bigz.
//
// A Rat is always canonical: the denominator is positive, and shares no
// factor with the numerator. The sign is carried by the numerator. As with
// bigz, methods without an Assign suffix return new values, and never modify
// their receiver or arguments.
package bigq

import (
	"math"

	"github.com/joeycumines/go-bignum/bigz"
	"github.com/joeycumines/go-bignum/internal/limb"
	"github.com/joeycumines/go-bignum/numerr"
)

// Rat is an arbitrary-precision rational number. The zero value is 0/1.
type Rat struct {
	num bigz.Int
	// den is the magnitude of the denominator, empty meaning 1
	den limb.Nat
}

var natOne = limb.Nat{1}

// frac returns num/den in canonical form, taking ownership of both. den must
// be non-zero.
func frac(num, den *bigz.Int) *Rat {
	if den.Sign() < 0 {
		num, den = num.Neg(), den.Neg()
	}
	if g := num.GCD(den); g.CmpInt64(1) != 0 {
		// den is non-zero, therefore so is g
		num, _ = num.Quo(g)
		den, _ = den.Quo(g)
	}
	z := &Rat{num: *num}
	if den.CmpInt64(1) != 0 {
		z.den = den.Nat()
	}
	return z
}

func errZeroDenominator(op string) error {
	return numerr.New(numerr.DivisionByZero, op, `zero denominator`)
}

// New returns num/den, failing with numerr.ErrDivisionByZero if den is zero.
func New(num, den int64) (*Rat, error) {
	if den == 0 {
		return nil, errZeroDenominator(`bigq.New`)
	}
	return frac(bigz.FromInt64(num), bigz.FromInt64(den)), nil
}

// FromInt returns x as a Rat.
func FromInt(x *bigz.Int) *Rat {
	return &Rat{num: *x.Copy()}
}

// FromInt64 returns v as a Rat.
func FromInt64(v int64) *Rat {
	return &Rat{num: *bigz.FromInt64(v)}
}

// FromFrac returns num/den, failing with numerr.ErrDivisionByZero if den is
// zero.
func FromFrac(num, den *bigz.Int) (*Rat, error) {
	if den.IsZero() {
		return nil, errZeroDenominator(`bigq.FromFrac`)
	}
	return frac(num.Copy(), den.Copy()), nil
}

// FromFloat64 returns the exact value of f. NaN and infinities fail with
// numerr.ErrDomain.
func FromFloat64(f float64) (*Rat, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, numerr.New(numerr.Domain, `bigq.FromFloat64`, `not a finite value`)
	}
	if f == 0 {
		return new(Rat), nil
	}
	fr, exp := math.Frexp(f)
	// f == mant * 2**(exp-53), exactly
	mant := bigz.FromInt64(int64(math.Ldexp(fr, 53)))
	exp -= 53
	if exp >= 0 {
		n, _ := mant.Lsh(int64(exp))
		return FromInt(n), nil
	}
	den, _ := bigz.One().Lsh(int64(-exp))
	return frac(mant, den), nil
}

// Zero returns a new Rat with the value 0.
func Zero() *Rat {
	return new(Rat)
}

func (x *Rat) denom() limb.Nat {
	if len(x.den) == 0 {
		return natOne
	}
	return x.den
}

// Num returns a copy of the numerator of x, which may be negative.
func (x *Rat) Num() *bigz.Int {
	return x.num.Copy()
}

// Denom returns a copy of the denominator of x, which is always positive.
func (x *Rat) Denom() *bigz.Int {
	return bigz.FromNat(x.denom().Clone(), false)
}

// Copy returns a deep copy of x.
func (x *Rat) Copy() *Rat {
	return &Rat{num: *x.num.Copy(), den: x.den.Clone()}
}

// Set assigns the value of y to x.
func (x *Rat) Set(y *Rat) {
	if x != y {
		x.num.Set(&y.num)
		x.den = x.den.Set(y.den)
	}
}

// Swap exchanges the values of x and y.
func (x *Rat) Swap(y *Rat) {
	*x, *y = *y, *x
}

// Sign returns -1, 0, or +1.
func (x *Rat) Sign() int {
	return x.num.Sign()
}

// IsZero reports whether x == 0.
func (x *Rat) IsZero() bool {
	return x.num.IsZero()
}

// IsInt reports whether the denominator of x is 1.
func (x *Rat) IsInt() bool {
	return len(x.den) == 0 || x.den.Cmp(natOne) == 0
}

// Cmp returns -1, 0, or +1, as x is less than, equal to, or greater than y.
func (x *Rat) Cmp(y *Rat) int {
	if x.IsInt() && y.IsInt() {
		return x.num.Cmp(&y.num)
	}
	return x.num.Mul(y.Denom()).Cmp(y.num.Mul(x.Denom()))
}

func (x *Rat) Eq(y *Rat) bool { return x.Cmp(y) == 0 }
func (x *Rat) Lt(y *Rat) bool { return x.Cmp(y) < 0 }
func (x *Rat) Gt(y *Rat) bool { return x.Cmp(y) > 0 }
func (x *Rat) Le(y *Rat) bool { return x.Cmp(y) <= 0 }
func (x *Rat) Ge(y *Rat) bool { return x.Cmp(y) >= 0 }

// Add returns x + y.
func (x *Rat) Add(y *Rat) *Rat {
	if x.IsInt() && y.IsInt() {
		return &Rat{num: *x.num.Add(&y.num)}
	}
	xd, yd := x.Denom(), y.Denom()
	return frac(x.num.Mul(yd).Add(y.num.Mul(xd)), xd.Mul(yd))
}

// Sub returns x - y.
func (x *Rat) Sub(y *Rat) *Rat {
	return x.Add(y.Neg())
}

// Mul returns x * y.
func (x *Rat) Mul(y *Rat) *Rat {
	if x.IsInt() && y.IsInt() {
		return &Rat{num: *x.num.Mul(&y.num)}
	}
	return frac(x.num.Mul(&y.num), x.Denom().Mul(y.Denom()))
}

// Quo returns x / y, failing with numerr.ErrDivisionByZero if y is zero.
func (x *Rat) Quo(y *Rat) (*Rat, error) {
	if y.IsZero() {
		return nil, numerr.New(numerr.DivisionByZero, `bigq.Quo`, `divisor is zero`)
	}
	return frac(x.num.Mul(y.Denom()), x.Denom().Mul(&y.num)), nil
}

// Inv returns 1 / x, failing with numerr.ErrDivisionByZero if x is zero.
func (x *Rat) Inv() (*Rat, error) {
	if x.IsZero() {
		return nil, numerr.New(numerr.DivisionByZero, `bigq.Inv`, `reciprocal of zero`)
	}
	return frac(x.Denom(), x.num.Copy()), nil
}

// Neg returns -x.
func (x *Rat) Neg() *Rat {
	return &Rat{num: *x.num.Neg(), den: x.den.Clone()}
}

// Abs returns |x|.
func (x *Rat) Abs() *Rat {
	return &Rat{num: *x.num.Abs(), den: x.den.Clone()}
}

// Pow returns x**e. A negative exponent inverts x first, so that 0 raised to
// a negative power fails with numerr.ErrDivisionByZero. 0**0 == 1.
func (x *Rat) Pow(e int64) (*Rat, error) {
	base := x
	if e < 0 {
		inv, err := x.Inv()
		if err != nil {
			return nil, err
		}
		base = inv
	}
	n := uint64(e)
	if e < 0 {
		n = -n
	}
	// numerator and denominator stay coprime
	num := bigz.FromNat(limb.Nat(nil).Pow(base.num.Nat(), n), base.num.Sign() < 0 && n&1 == 1)
	den := limb.Nat(nil).Pow(base.denom(), n)
	z := &Rat{num: *num}
	if den.Cmp(natOne) != 0 {
		z.den = den
	}
	return z, nil
}

// Floor returns the greatest integer less than or equal to x.
func (x *Rat) Floor() *bigz.Int {
	q, _ := x.num.Div(x.Denom())
	return q
}

// Ceil returns the least integer greater than or equal to x.
func (x *Rat) Ceil() *bigz.Int {
	q, _ := x.num.Neg().Div(x.Denom())
	return q.Neg()
}

// Trunc returns the integer part of x, rounding towards zero.
func (x *Rat) Trunc() *bigz.Int {
	q, _ := x.num.Quo(x.Denom())
	return q
}

// AddAssign sets x to x + y.
func (x *Rat) AddAssign(y *Rat) {
	*x = *x.Add(y)
}

// SubAssign sets x to x - y.
func (x *Rat) SubAssign(y *Rat) {
	*x = *x.Sub(y)
}

// MulAssign sets x to x * y.
func (x *Rat) MulAssign(y *Rat) {
	*x = *x.Mul(y)
}

// QuoAssign sets x to x / y. On error x is unchanged.
func (x *Rat) QuoAssign(y *Rat) error {
	v, err := x.Quo(y)
	if err != nil {
		return err
	}
	*x = *v
	return nil
}

// NegAssign sets x to -x.
func (x *Rat) NegAssign() {
	x.num.NegAssign()
}

// AbsAssign sets x to |x|.
func (x *Rat) AbsAssign() {
	x.num.AbsAssign()
}

// InvAssign sets x to 1 / x. On error x is unchanged.
func (x *Rat) InvAssign() error {
	v, err := x.Inv()
	if err != nil {
		return err
	}
	*x = *v
	return nil
}
