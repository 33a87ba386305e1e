// Package bigf implements arbitrary-precision binary floating point numbers,
// with a fixed round-to-nearest-even rounding mode, and a set of
// transcendental functions.
//
// A Float is either zero (signed), finite, infinite (signed), or NaN. Finite
// values are stored as mant * 2**exp, where mant is an odd integer of at most
// prec bits. Results are rounded to the maximum precision of their operands,
// unless noted otherwise. The Assign family of methods round to the
// precision of the receiver, instead.
//
// Values constructed without an explicit precision (or with precision 0) use
// DefaultPrecision, as it was at the time of construction.
package bigf

import (
	"math"

	"github.com/joeycumines/go-bignum/bigq"
	"github.com/joeycumines/go-bignum/bigz"
	"github.com/joeycumines/go-bignum/internal/limb"
	"github.com/joeycumines/go-bignum/numerr"
)

const (
	// MinPrec is the minimum precision, in bits.
	MinPrec = 1
	// MaxPrec is the maximum precision, in bits.
	MaxPrec = math.MaxUint32
	// MaxExp is the largest e such that a finite Float may be >= 2**(e-1).
	MaxExp = math.MaxInt32
	// MinExp is the smallest e such that a non-zero Float may be < 2**e.
	MinExp = math.MinInt32
)

type form uint8

const (
	zero form = iota
	finite
	inf
	nan
)

// Float is an arbitrary-precision binary floating point number. The zero
// value is +0, with a precision of 0, meaning DefaultPrecision is used where
// it determines the precision of a result.
type Float struct {
	// mant is odd, and non-empty iff form is finite
	mant limb.Nat
	exp  int64
	prec uint
	form form
	neg  bool
}

func checkPrec(op string, prec uint) uint {
	if prec == 0 {
		return DefaultPrecision()
	}
	if prec > MaxPrec {
		panic(`bigf: ` + op + `: precision exceeds maximum`)
	}
	return prec
}

// precOf returns the precision of a result derived from x.
func precOf(x *Float) uint {
	if x.prec == 0 {
		return DefaultPrecision()
	}
	return x.prec
}

// resultPrec returns the precision of a result derived from x and y.
func resultPrec(x, y *Float) uint {
	if p := max(x.prec, y.prec); p != 0 {
		return p
	}
	return DefaultPrecision()
}

// New returns x at the default precision.
func New(x float64) *Float {
	return NewPrec(x, 0)
}

// NewPrec returns x rounded to prec bits. A prec of 0 selects the default
// precision.
func NewPrec(x float64, prec uint) *Float {
	z := &Float{prec: checkPrec(`new`, prec)}
	return z.setFloat64(x)
}

// FromInt returns x rounded to prec bits, or the default precision if prec
// is 0.
func FromInt(x *bigz.Int, prec uint) *Float {
	z := &Float{prec: checkPrec(`from int`, prec), neg: x.Sign() < 0}
	return z.setMant(x.Nat(), 0, false)
}

// FromRat returns x rounded to prec bits, or the default precision if prec
// is 0.
func FromRat(x *bigq.Rat, prec uint) *Float {
	z := &Float{prec: checkPrec(`from rat`, prec), neg: x.Sign() < 0}
	return z.setQuo(x.Num().Nat(), 0, x.Denom().Nat(), 0)
}

// FromUint64 returns x rounded to prec bits, or the default precision if
// prec is 0.
func FromUint64(x uint64, prec uint) *Float {
	z := &Float{prec: checkPrec(`from uint64`, prec)}
	return z.setMant(limb.Nat(nil).SetUint64(x), 0, false)
}

// NaN returns a NaN with the given precision.
func NaN(prec uint) *Float {
	return &Float{prec: checkPrec(`nan`, prec), form: nan}
}

// Inf returns +Inf if sign >= 0, otherwise -Inf.
func Inf(sign int, prec uint) *Float {
	return &Float{prec: checkPrec(`inf`, prec), form: inf, neg: sign < 0}
}

func fromInt64(v int64, prec uint) *Float {
	z := &Float{prec: prec, neg: v < 0}
	u := uint64(v)
	if v < 0 {
		u = -u
	}
	return z.setMant(limb.Nat(nil).SetUint64(u), 0, false)
}

func (z *Float) setFloat64(x float64) *Float {
	switch {
	case math.IsNaN(x):
		z.form = nan
	case math.IsInf(x, 0):
		z.form, z.neg = inf, x < 0
	case x == 0:
		z.form, z.neg = zero, math.Signbit(x)
	default:
		z.neg = x < 0
		fr, e := math.Frexp(math.Abs(x))
		z.setMant(limb.Nat(nil).SetUint64(uint64(math.Ldexp(fr, 53))), int64(e-53), false)
	}
	return z
}

// setMant sets z to ±(m + d) * 2**e, rounded to z.prec bits, ties to even,
// where d is in (0, 1) if sticky is set, and otherwise zero. The sign is
// unchanged. If sticky is set, m must have at least z.prec+2 bits. The
// storage of m is taken over by z.
func (z *Float) setMant(m limb.Nat, e int64, sticky bool) *Float {
	m = m.Norm()
	if len(m) == 0 {
		z.mant, z.exp, z.form = nil, 0, zero
		return z
	}
	if bl := uint(m.BitLen()); bl > z.prec {
		shift := bl - z.prec
		half := m.Bit(shift-1) != 0
		sticky = sticky || m.Sticky(shift-1) != 0
		m = m.Shr(m, shift)
		e += int64(shift)
		if half && (sticky || m[0]&1 != 0) {
			m = m.AddWord(m, 1)
			if uint(m.BitLen()) > z.prec {
				m = m.Shr(m, 1)
				e++
			}
		}
	}
	if tz := m.TrailingZeroBits(); tz != 0 {
		m = m.Shr(m, tz)
		e += int64(tz)
	}
	z.mant, z.exp, z.form = m, e, finite
	switch t := e + int64(m.BitLen()); {
	case t > MaxExp:
		z.mant, z.exp, z.form = nil, 0, inf
	case t < MinExp:
		z.mant, z.exp, z.form = nil, 0, zero
	}
	return z
}

// setQuo sets the magnitude of z to (a * 2**ea) / (b * 2**eb), correctly
// rounded. a and b must be non-zero, and are not modified.
func (z *Float) setQuo(a limb.Nat, ea int64, b limb.Nat, eb int64) *Float {
	if len(a) == 0 {
		z.mant, z.exp, z.form = nil, 0, zero
		return z
	}
	s := int64(z.prec) + 3 + int64(b.BitLen()) - int64(a.BitLen())
	if s < 0 {
		s = 0
	}
	q, r := limb.Nat(nil).Div(nil, limb.Nat(nil).Shl(a, uint(s)), b)
	return z.setMant(q, ea-eb-s, len(r) != 0)
}

// top returns t such that 2**(t-1) <= |x| < 2**t, for finite x.
func (x *Float) top() int64 {
	return x.exp + int64(x.mant.BitLen())
}

// Prec returns the precision of x, in bits.
func (x *Float) Prec() uint {
	return x.prec
}

// SetPrecAssign sets the precision of x, rounding its value if necessary.
// A prec of 0 selects the default precision.
func (x *Float) SetPrecAssign(prec uint) {
	x.prec = checkPrec(`set prec`, prec)
	if x.form == finite {
		x.setMant(x.mant, x.exp, false)
	}
}

// Copy returns a deep copy of x.
func (x *Float) Copy() *Float {
	z := *x
	z.mant = x.mant.Clone()
	return &z
}

// Swap exchanges the values of x and y, including their precisions.
func (x *Float) Swap(y *Float) {
	*x, *y = *y, *x
}

// Sign returns -1, 0, or +1. NaN and both zeros return 0.
func (x *Float) Sign() int {
	switch {
	case x.form == zero || x.form == nan:
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// Signbit reports whether x is negative or negative zero.
func (x *Float) Signbit() bool {
	return x.neg && x.form != nan
}

// IsNaN reports whether x is NaN.
func (x *Float) IsNaN() bool {
	return x.form == nan
}

// IsInf reports whether x is +Inf or -Inf.
func (x *Float) IsInf() bool {
	return x.form == inf
}

// IsNumber reports whether x is neither NaN nor infinite.
func (x *Float) IsNumber() bool {
	return x.form == zero || x.form == finite
}

// IsZero reports whether x is +0 or -0.
func (x *Float) IsZero() bool {
	return x.form == zero
}

// IsInt reports whether x is a whole number.
func (x *Float) IsInt() bool {
	return x.form == zero || (x.form == finite && x.exp >= 0)
}

func errNotFinite(op string) error {
	return numerr.New(numerr.Domain, op, `not a finite value`)
}

// MantExp returns m and e such that x == m * 2**e, with m odd (or zero).
// Infinities and NaN fail with numerr.ErrDomain.
func (x *Float) MantExp() (*bigz.Int, int64, error) {
	switch x.form {
	case zero:
		return bigz.Zero(), 0, nil
	case finite:
		return bigz.FromNat(x.mant.Clone(), x.neg), x.exp, nil
	default:
		return nil, 0, errNotFinite(`bigf.MantExp`)
	}
}

// Float64 returns the float64 nearest to x, and whether it is exact.
func (x *Float) Float64() (float64, bool) {
	var f float64
	exact := true
	switch x.form {
	case nan:
		return math.NaN(), false
	case inf:
		f = math.Inf(1)
	case finite:
		switch t := x.top(); {
		case t > 1025:
			f, exact = math.Inf(1), false
		case t < -1080:
			f, exact = 0, false
		case x.exp >= 0:
			f, exact = limb.Quo64(limb.Nat(nil).Shl(x.mant, uint(x.exp)), limb.Nat{1})
		default:
			f, exact = limb.Quo64(x.mant, limb.Nat(nil).Shl(limb.Nat{1}, uint(-x.exp)))
		}
	}
	if x.neg {
		f = -f
	}
	return f, exact
}

// Int returns x truncated towards zero. Infinities and NaN fail with
// numerr.ErrDomain.
func (x *Float) Int() (*bigz.Int, error) {
	switch x.form {
	case zero:
		return bigz.Zero(), nil
	case finite:
		if x.exp >= 0 {
			return bigz.FromNat(limb.Nat(nil).Shl(x.mant, uint(x.exp)), x.neg), nil
		}
		return bigz.FromNat(limb.Nat(nil).Shr(x.mant, uint(-x.exp)), x.neg), nil
	default:
		return nil, errNotFinite(`bigf.Int`)
	}
}

// Rat returns the exact value of x. Infinities and NaN fail with
// numerr.ErrDomain.
func (x *Float) Rat() (*bigq.Rat, error) {
	switch x.form {
	case zero:
		return bigq.Zero(), nil
	case finite:
		m := bigz.FromNat(x.mant.Clone(), x.neg)
		if x.exp >= 0 {
			m, _ = m.Lsh(x.exp)
			return bigq.FromInt(m), nil
		}
		d, _ := bigz.One().Lsh(-x.exp)
		return bigq.FromFrac(m, d)
	default:
		return nil, errNotFinite(`bigf.Rat`)
	}
}
