package bigz

import (
	"fmt"

	"github.com/joeycumines/go-bignum/internal/limb"
	"github.com/joeycumines/go-bignum/numerr"
)

// Pow returns x**e. A negative exponent fails with numerr.ErrRange.
// By convention 0**0 == 1.
func (x *Int) Pow(e int64) (*Int, error) {
	if e < 0 {
		return nil, numerr.New(numerr.Range, `bigz.Pow`, `negative exponent`)
	}
	return x.pow(uint64(e)), nil
}

func (x *Int) pow(e uint64) *Int {
	z := &Int{abs: limb.Nat(nil).Pow(x.abs, e)}
	z.neg = x.neg && e&1 == 1 && len(z.abs) > 0
	return z
}

// Exp returns x**e mod |m|, in the range [0, |m|). A negative exponent is
// permitted if x is invertible modulo m.
func (x *Int) Exp(e, m *Int) (*Int, error) {
	if len(m.abs) == 0 {
		return nil, errDivByZero(`bigz.Exp`)
	}
	mabs := &Int{abs: m.abs}
	_, base := new(Int).divMod(x, mabs, new(Int))
	base.neg = false
	if e.neg {
		inv, err := base.Invert(mabs)
		if err != nil {
			return nil, err
		}
		base = inv
	}
	return &Int{abs: limb.Nat(nil).ExpMod(base.abs, e.abs, m.abs)}, nil
}

// Sqrt returns floor(sqrt(x)). A negative x fails with numerr.ErrDomain.
func (x *Int) Sqrt() (*Int, error) {
	if x.neg {
		return nil, numerr.New(numerr.Domain, `bigz.Sqrt`, `negative operand`)
	}
	return &Int{abs: limb.Nat(nil).Sqrt(x.abs)}, nil
}

// SqrtRem returns floor(sqrt(x)) and x - s*s.
func (x *Int) SqrtRem() (s, r *Int, err error) {
	if s, err = x.Sqrt(); err != nil {
		return nil, nil, err
	}
	r = x.Sub(s.Mul(s))
	return s, r, nil
}

// SqrtAssign sets x to floor(sqrt(x)).
func (x *Int) SqrtAssign() error {
	if x.neg {
		return numerr.New(numerr.Domain, `bigz.SqrtAssign`, `negative operand`)
	}
	x.abs = x.abs.Sqrt(x.abs)
	return nil
}

func checkRoot(op string, x *Int, n int64) error {
	if n <= 0 {
		return numerr.New(numerr.Range, op, fmt.Sprintf(`degree %d must be positive`, n))
	}
	if x.neg && n&1 == 0 {
		return numerr.New(numerr.Domain, op, `even degree root of negative operand`)
	}
	return nil
}

// Root returns the integer n'th root of x, truncated towards zero.
// A degree of zero or less fails with numerr.ErrRange, and an even degree of
// a negative x fails with numerr.ErrDomain.
func (x *Int) Root(n int64) (*Int, error) {
	if err := checkRoot(`bigz.Root`, x, n); err != nil {
		return nil, err
	}
	z := &Int{abs: limb.Nat(nil).Root(x.abs, uint(n))}
	z.neg = x.neg && len(z.abs) > 0
	return z, nil
}

// RootRem returns the truncated n'th root of x, and x - root**n.
func (x *Int) RootRem(n int64) (root, rem *Int, err error) {
	if root, err = x.Root(n); err != nil {
		return nil, nil, err
	}
	return root, x.Sub(root.pow(uint64(n))), nil
}

// RootAssign sets x to its truncated n'th root, per Root.
func (x *Int) RootAssign(n int64) error {
	if err := checkRoot(`bigz.RootAssign`, x, n); err != nil {
		return err
	}
	x.abs = x.abs.Root(x.abs, uint(n))
	x.neg = x.neg && len(x.abs) > 0
	return nil
}

// IsPerfectSquare reports whether x == y*y for some integer y.
func (x *Int) IsPerfectSquare() bool {
	return !x.neg && x.abs.IsSquare()
}

// IsPerfectPower reports whether x == y**k for some integers y and k > 1.
// Zero and one are perfect powers, and -1 == (-1)**3.
func (x *Int) IsPerfectPower() bool {
	if len(x.abs) == 0 || (len(x.abs) == 1 && x.abs[0] == 1) {
		return true
	}
	if !x.neg && x.abs.IsSquare() {
		return true
	}
	n := x.abs.BitLen()
	var r, t limb.Nat
	for k := uint(3); k < uint(n)+1; k += 2 {
		if !isSmallPrime(k) {
			continue
		}
		r = r.Root(x.abs, k)
		if len(r) == 1 && r[0] == 1 {
			// roots only shrink from here
			break
		}
		t = t.Pow(r, uint64(k))
		if t.Cmp(x.abs) == 0 {
			return true
		}
	}
	// negative values only have odd exponents, all of which have an odd
	// prime factor
	return false
}

func isSmallPrime(k uint) bool {
	if k < 2 {
		return false
	}
	for d := uint(2); d*d <= k; d++ {
		if k%d == 0 {
			return false
		}
	}
	return true
}
