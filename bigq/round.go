package bigq

import (
	"slices"

	"github.com/joeycumines/go-bignum/bigz"
	"github.com/joeycumines/go-bignum/internal/limb"
)

func pow10(n uint64) *bigz.Int {
	return bigz.FromNat(limb.Nat(nil).Pow(limb.Nat{10}, n), false)
}

// roundHalfEven returns num/den rounded to the nearest integer, ties to even.
// den must be positive.
func roundHalfEven(num, den *bigz.Int) *bigz.Int {
	q, r, _ := num.QuoRem(den)
	if r.IsZero() {
		return q
	}
	r, _ = r.Abs().Lsh(1)
	if cmp := r.Cmp(den); cmp > 0 || (cmp == 0 && q.IsOdd()) {
		if num.Sign() < 0 {
			return q.Sub(bigz.One())
		}
		return q.Add(bigz.One())
	}
	return q
}

// Round returns x rounded to the given number of decimal places, using
// half-to-even rounding. Negative values for decimals are allowed, and
// indicate the number of places to the left of the decimal point.
func (x *Rat) Round(decimals int) *Rat {
	if x.IsZero() || (decimals >= 0 && x.IsInt()) {
		return x.Copy()
	}
	if decimals >= 0 {
		scl := pow10(uint64(decimals))
		return frac(roundHalfEven(x.num.Mul(scl), x.Denom()), scl)
	}
	scl := pow10(uint64(-int64(decimals)))
	return FromInt(roundHalfEven(&x.num, x.Denom().Mul(scl)).Mul(scl))
}

// FloatString returns x in decimal notation, with exactly decimals digits
// after the decimal point (none if decimals <= 0), rounding half-to-even. No
// sign is written for values that round to zero.
func (x *Rat) FloatString(decimals int) string {
	return string(x.AppendFloat(nil, decimals))
}

// AppendFloat is the append variant of FloatString.
func (x *Rat) AppendFloat(b []byte, decimals int) []byte {
	if decimals <= 0 {
		v := x.Round(decimals).Trunc()
		b, _ = v.Append(b, 10)
		return b
	}
	// scaled is x * 10**decimals, rounded, as an integer
	scaled := roundHalfEven(x.num.Mul(pow10(uint64(decimals))), x.Denom())
	if scaled.Sign() < 0 {
		b = append(b, '-')
	}
	b = scaled.Nat().AppendPadded(b, decimals+1)
	return slices.Insert(b, len(b)-decimals, '.')
}
