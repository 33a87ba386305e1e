package bigz

import (
	"github.com/joeycumines/go-bignum/internal/limb"
	"github.com/joeycumines/go-bignum/numerr"
)

func errDivByZero(op string) error {
	return numerr.New(numerr.DivisionByZero, op, `divisor is zero`)
}

// quoRem sets z to the truncated quotient x/y and r to x - y*z.
// y must be non-zero.
func (z *Int) quoRem(x, y, r *Int) (*Int, *Int) {
	xneg, yneg := x.neg, y.neg
	z.abs, r.abs = z.abs.Div(r.abs, x.abs, y.abs)
	z.neg, r.neg = len(z.abs) > 0 && xneg != yneg, len(r.abs) > 0 && xneg
	return z, r
}

// divMod sets z to the floor quotient and m to the matching modulus.
func (z *Int) divMod(x, y, m *Int) (*Int, *Int) {
	y0 := y
	if z == y || m == y {
		y0 = y.Copy()
	}
	z.quoRem(x, y0, m)
	if len(m.abs) > 0 && m.neg != y0.neg {
		z.sub(z, &Int{abs: natOne})
		m.add(m, y0)
	}
	return z, m
}

// DivMod returns the floor quotient and modulus of x and y, such that
// x == y*q + m, with m zero or of the same sign as y.
func (x *Int) DivMod(y *Int) (q, m *Int, err error) {
	if len(y.abs) == 0 {
		return nil, nil, errDivByZero(`bigz.DivMod`)
	}
	q, m = new(Int).divMod(x, y, new(Int))
	return q, m, nil
}

// Div returns the floor quotient of x and y.
func (x *Int) Div(y *Int) (*Int, error) {
	if len(y.abs) == 0 {
		return nil, errDivByZero(`bigz.Div`)
	}
	q, _ := new(Int).divMod(x, y, new(Int))
	return q, nil
}

// Mod returns the floor modulus of x and y, having the sign of y.
func (x *Int) Mod(y *Int) (*Int, error) {
	if len(y.abs) == 0 {
		return nil, errDivByZero(`bigz.Mod`)
	}
	_, m := new(Int).divMod(x, y, new(Int))
	return m, nil
}

// QuoRem returns the quotient truncated towards zero, and the remainder,
// having the sign of x.
func (x *Int) QuoRem(y *Int) (q, r *Int, err error) {
	if len(y.abs) == 0 {
		return nil, nil, errDivByZero(`bigz.QuoRem`)
	}
	q, r = new(Int).quoRem(x, y, new(Int))
	return q, r, nil
}

// Quo returns the quotient of x and y, truncated towards zero.
func (x *Int) Quo(y *Int) (*Int, error) {
	if len(y.abs) == 0 {
		return nil, errDivByZero(`bigz.Quo`)
	}
	q, _ := new(Int).quoRem(x, y, new(Int))
	return q, nil
}

// Rem returns the remainder of truncated division, having the sign of x.
func (x *Int) Rem(y *Int) (*Int, error) {
	if len(y.abs) == 0 {
		return nil, errDivByZero(`bigz.Rem`)
	}
	_, r := new(Int).quoRem(x, y, new(Int))
	return r, nil
}

// DivisibleBy reports whether d divides x. Only zero is divisible by zero.
func (x *Int) DivisibleBy(d *Int) bool {
	if len(d.abs) == 0 {
		return len(x.abs) == 0
	}
	if len(d.abs) == 1 {
		return x.abs.ModW(d.abs[0]) == 0
	}
	return len(limb.Nat(nil).Mod(x.abs, d.abs)) == 0
}

// ModUint64 returns |x| mod y, y > 0.
func (x *Int) ModUint64(y uint64) uint64 {
	if y == 0 {
		panic(`bigz: mod uint64: division by zero`)
	}
	var t Int
	t.abs = t.abs.SetUint64(y)
	if len(t.abs) == 1 {
		return uint64(x.abs.ModW(t.abs[0]))
	}
	return t.abs.Mod(x.abs, t.abs).Uint64()
}
