package bigf

import (
	"math"
	"math/bits"

	"github.com/joeycumines/go-bignum/internal/limb"
)

// workPrec returns the working precision used to compute a result of prec
// bits, with guard bits to absorb accumulated rounding errors.
func workPrec(prec uint) uint {
	return prec + 24 + uint(bits.Len(prec))
}

// ldexp returns x * 2**k, which is exact, unless it overflows or underflows.
func ldexp(x *Float, k int64) *Float {
	z := x.Copy()
	if z.form == finite {
		z.setMant(z.mant, z.exp+k, false)
	}
	return z
}

// pow2 returns 2**k, for k in [MinExp, MaxExp).
func pow2(k int64) *Float {
	return &Float{prec: 1, form: finite, mant: limb.Nat{1}, exp: k}
}

func mulInt(x *Float, n int64, prec uint) *Float {
	return mul(x, fromInt64(n, 64), prec)
}

func quoInt(x *Float, n int64, prec uint) *Float {
	return quo(x, fromInt64(n, 64), prec)
}

func addInt(x *Float, n int64, prec uint) *Float {
	return add(x, fromInt64(n, 64), prec, false)
}

// subFrom returns n - x.
func subFrom(n int64, x *Float, prec uint) *Float {
	return add(fromInt64(n, 64), x, prec, true)
}

// float64Of returns an approximation of |x|, for finite x, which may be
// infinite or zero if out of range.
func float64Of(x *Float) float64 {
	f, _ := x.Float64()
	return math.Abs(f)
}

// negligible reports whether term is too small to affect sum, at prec bits.
func negligible(term, sum *Float, prec uint) bool {
	return term.form == zero ||
		(sum.form == finite && term.form == finite && term.top() < sum.top()-int64(prec)-2)
}

// atanhSeries returns atanh(z) = z + z**3/3 + z**5/5 + ..., for |z| < 1,
// converging quickly for small z.
func atanhSeries(z *Float, wp uint) *Float {
	return oddSeries(z, wp, false)
}

// atanSeries returns atan(z) = z - z**3/3 + z**5/5 - ..., for |z| <= 1.
func atanSeries(z *Float, wp uint) *Float {
	return oddSeries(z, wp, true)
}

func oddSeries(z *Float, wp uint, alternate bool) *Float {
	if z.form != finite {
		return round(z, wp)
	}
	z2 := mul(z, z, wp)
	if alternate {
		z2.neg = true
	}
	sum := round(z, wp)
	term := sum
	for k := int64(3); ; k += 2 {
		term = mul(term, z2, wp)
		t := quoInt(term, k, wp)
		if negligible(t, sum, wp) {
			break
		}
		sum = add(sum, t, wp, false)
	}
	return sum
}
