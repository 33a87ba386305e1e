package bigz

import (
	"github.com/joeycumines/go-bignum/internal/limb"
	"github.com/joeycumines/go-bignum/numerr"
)

func gcdNat(a, b limb.Nat) limb.Nat {
	a, b = a.Clone(), b.Clone()
	var q limb.Nat
	for len(b) > 0 {
		var r limb.Nat
		q, r = q.Div(r, a, b)
		a, b = b, r
	}
	return a
}

// GCD returns the greatest common divisor of |x| and |y|. GCD(0, 0) == 0.
func (x *Int) GCD(y *Int) *Int {
	return &Int{abs: gcdNat(x.abs, y.abs)}
}

// LCM returns the least common multiple of |x| and |y|, zero if either is.
func (x *Int) LCM(y *Int) *Int {
	if len(x.abs) == 0 || len(y.abs) == 0 {
		return new(Int)
	}
	g := gcdNat(x.abs, y.abs)
	t := limb.Nat(nil).Quo(x.abs, g)
	return &Int{abs: t.Mul(t, y.abs)}
}

// ExtendedGCD returns g == gcd(a, b) along with Bézout coefficients s and t,
// such that g == a*s + b*t.
func ExtendedGCD(a, b *Int) (g, s, t *Int) {
	// extended Euclid over |a|, |b|, tracking the coefficient of |a|
	r0, r1 := a.Abs(), b.Abs()
	s0, s1 := One(), Zero()
	for len(r1.abs) > 0 {
		q, r := new(Int).quoRem(r0, r1, new(Int))
		r0, r1 = r1, r
		s0, s1 = s1, s0.Sub(q.Mul(s1))
	}
	g = r0
	s = s0
	if a.neg {
		s.NegAssign()
	}
	// t = (g - a*s) / b
	if len(b.abs) == 0 {
		t = new(Int)
		if len(a.abs) == 0 {
			s = new(Int)
		}
		return
	}
	t, _ = g.Sub(a.Mul(s)).Quo(b)
	return
}

// Invert returns the inverse of x modulo |m|, in [0, |m|). It fails with
// numerr.ErrNotInvertible if gcd(x, m) != 1, or m is zero.
func (x *Int) Invert(m *Int) (*Int, error) {
	if len(m.abs) == 0 {
		return nil, numerr.New(numerr.NotInvertible, `bigz.Invert`, `zero modulus`)
	}
	mabs := &Int{abs: m.abs}
	if len(m.abs) == 1 && m.abs[0] == 1 {
		// everything is congruent mod 1
		return new(Int), nil
	}
	g, s, _ := ExtendedGCD(x, mabs)
	if len(g.abs) != 1 || g.abs[0] != 1 {
		return nil, numerr.New(numerr.NotInvertible, `bigz.Invert`, `operand and modulus are not coprime`)
	}
	_, r := new(Int).divMod(s, mabs, new(Int))
	return r, nil
}

// InvertAssign sets x to its inverse modulo m, per Invert.
func (x *Int) InvertAssign(m *Int) error {
	v, err := x.Invert(m)
	if err != nil {
		return err
	}
	*x = *v
	return nil
}

// Jacobi returns the Jacobi symbol (a/b). b must be odd, otherwise it fails
// with numerr.ErrDomain.
func Jacobi(a, b *Int) (int, error) {
	if len(b.abs) == 0 || b.abs[0]&1 == 0 {
		return 0, numerr.New(numerr.Domain, `bigz.Jacobi`, `denominator must be odd`)
	}
	return jacobi(a, b), nil
}

// Legendre returns the Legendre symbol (a/p), for an odd prime p. Primality
// of p is not verified. A p that is not odd and positive fails with
// numerr.ErrDomain.
func Legendre(a, p *Int) (int, error) {
	if p.neg || len(p.abs) == 0 || p.abs[0]&1 == 0 {
		return 0, numerr.New(numerr.Domain, `bigz.Legendre`, `modulus must be an odd positive prime`)
	}
	return jacobi(a, p), nil
}

// Kronecker returns the Kronecker symbol (a/b), which extends the Jacobi
// symbol to all b.
func Kronecker(a, b *Int) int {
	if len(b.abs) == 0 {
		if len(a.abs) == 1 && a.abs[0] == 1 {
			return 1
		}
		return 0
	}
	if b.abs[0]&1 != 0 {
		return jacobi(a, b)
	}
	if len(a.abs) == 0 || a.abs[0]&1 == 0 {
		// both even
		return 0
	}
	j := 1
	if b.neg && a.neg {
		j = -1
	}
	// (a/2) is 1 for a == ±1 mod 8, -1 for a == ±3 mod 8
	v := b.abs.TrailingZeroBits()
	if v&1 != 0 {
		// symmetric under negation, so |a| suffices
		if r := a.ModUint64(8); r == 3 || r == 5 {
			j = -j
		}
	}
	odd := &Int{abs: limb.Nat(nil).Shr(b.abs, v)}
	return j * jacobi(a, odd)
}

// jacobi requires b odd.
func jacobi(x, y *Int) int {
	var a, b, c Int
	a.Set(x)
	b.Set(y)
	j := 1

	if b.neg {
		if a.neg {
			j = -1
		}
		b.neg = false
	}

	for {
		if b.abs.Cmp(natOne) == 0 {
			return j
		}
		if len(a.abs) == 0 {
			return 0
		}
		_, m := new(Int).divMod(&a, &b, new(Int))
		a.Set(m)
		if len(a.abs) == 0 {
			return 0
		}
		// a > 0

		// handle factors of 2 in a
		s := a.abs.TrailingZeroBits()
		if s&1 != 0 {
			bmod8 := b.abs[0] & 7
			if bmod8 == 3 || bmod8 == 5 {
				j = -j
			}
		}
		c.rsh(&a, s)

		// swap numerator and denominator
		if b.abs[0]&3 == 3 && c.abs[0]&3 == 3 {
			j = -j
		}
		a.Set(&b)
		b.Set(&c)
	}
}

// RemoveFactor divides out every factor f from x, returning the result and
// the multiplicity. An f of 1 or less fails with numerr.ErrRange.
func (x *Int) RemoveFactor(f *Int) (*Int, uint64, error) {
	if f.neg || len(f.abs) == 0 || (len(f.abs) == 1 && f.abs[0] == 1) {
		return nil, 0, numerr.New(numerr.Range, `bigz.RemoveFactor`, `factor must be greater than one`)
	}
	z := x.Copy()
	if len(z.abs) == 0 {
		return z, 0, nil
	}
	var (
		count uint64
		q, r  limb.Nat
	)
	if f.abs.IsPow2() {
		count = uint64(z.abs.TrailingZeroBits()) / uint64(f.abs.TrailingZeroBits())
		z.abs = z.abs.Shr(z.abs, uint(count)*f.abs.TrailingZeroBits())
		return z, count, nil
	}
	for {
		q, r = q.Div(r, z.abs, f.abs)
		if len(r) != 0 {
			break
		}
		z.abs, q = q, z.abs
		count++
	}
	return z, count, nil
}
