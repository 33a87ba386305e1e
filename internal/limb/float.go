package limb

import (
	"math"
)

// Quo64 returns the float64 nearest to a/b (ties to even), and whether the
// result is exact. b must be non-zero.
func Quo64(a, b Nat) (f float64, exact bool) {
	const (
		msize  = 52
		msize1 = msize + 1 // incl. implicit 1
		msize2 = msize1 + 1
		ebias  = 1023
		emin   = 1 - ebias
	)

	alen := a.BitLen()
	if alen == 0 {
		return 0, true
	}
	blen := b.BitLen()
	if blen == 0 {
		panic(`limb: quo64: division by zero`)
	}

	// scale so that a2/b2 lies in [2**msize1, 2**(msize2+1)), leaving room
	// for a rounding bit
	exp := alen - blen
	var a2, b2 Nat
	a2 = a2.Set(a)
	b2 = b2.Set(b)
	if shift := msize2 - exp; shift > 0 {
		a2 = a2.Shl(a2, uint(shift))
	} else if shift < 0 {
		b2 = b2.Shl(b2, uint(-shift))
	}

	q, r := Nat(nil).Div(nil, a2, b2)
	mantissa := q.Uint64()
	haveRem := len(r) > 0

	if mantissa>>msize2 == 1 {
		if mantissa&1 == 1 {
			haveRem = true
		}
		mantissa >>= 1
		exp++
	}
	if mantissa>>msize1 != 1 {
		panic(`limb: quo64: unexpected mantissa bits`)
	}

	// denormal
	if emin-msize <= exp && exp <= emin {
		shift := uint(emin - (exp - 1))
		lostbits := mantissa & (1<<shift - 1)
		haveRem = haveRem || lostbits != 0
		mantissa >>= shift
		exp = 2 - ebias
	}

	// round half to even
	exact = !haveRem
	if mantissa&1 != 0 {
		exact = false
		if haveRem || mantissa&2 != 0 {
			if mantissa++; mantissa >= 1<<msize2 {
				// rounded up to the next power of two
				mantissa >>= 1
				exp++
			}
		}
	}
	mantissa >>= 1

	f = math.Ldexp(float64(mantissa), exp-msize1)
	if f == 0 || math.IsInf(f, 0) {
		exact = false
	}
	return
}
