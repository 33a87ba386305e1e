package bigz

import (
	"github.com/joeycumines/go-bignum/internal/limb"
	"github.com/joeycumines/go-bignum/numerr"
)

// Bitwise operations use two's complement semantics, with negative values
// conceptually sign-extended infinitely to the left.

func errNegativeIndex(op string) error {
	return numerr.New(numerr.Range, op, `negative bit index`)
}

// Lsh returns x * 2**n. A negative n fails with numerr.ErrRange.
func (x *Int) Lsh(n int64) (*Int, error) {
	if n < 0 {
		return nil, numerr.New(numerr.Range, `bigz.Lsh`, `negative shift`)
	}
	return &Int{abs: limb.Nat(nil).Shl(x.abs, uint(n)), neg: x.neg}, nil
}

// Rsh returns floor(x / 2**n). A negative n fails with numerr.ErrRange.
func (x *Int) Rsh(n int64) (*Int, error) {
	if n < 0 {
		return nil, numerr.New(numerr.Range, `bigz.Rsh`, `negative shift`)
	}
	return new(Int).rsh(x, uint(n)), nil
}

func (z *Int) rsh(x *Int, n uint) *Int {
	if x.neg {
		// (-x) >> s == ^(x-1) >> s == ^((x-1) >> s) == -(((x-1) >> s) + 1)
		t := z.abs.Sub(x.abs, natOne)
		t = t.Shr(t, n)
		z.abs = t.Add(t, natOne)
		z.neg = true
		return z
	}
	z.abs = z.abs.Shr(x.abs, n)
	z.neg = false
	return z
}

// BitLen returns the length of |x| in bits.
func (x *Int) BitLen() int {
	return x.abs.BitLen()
}

// TrailingZeroBits returns the number of consecutive least significant zero
// bits of |x|.
func (x *Int) TrailingZeroBits() uint {
	return x.abs.TrailingZeroBits()
}

// PopCount returns the number of set bits in |x|.
func (x *Int) PopCount() int {
	return x.abs.PopCount()
}

// TestBit returns the value (0 or 1) of bit i of x, in two's complement.
func (x *Int) TestBit(i int64) (uint, error) {
	if i < 0 {
		return 0, errNegativeIndex(`bigz.TestBit`)
	}
	return x.bit(uint(i)), nil
}

func (x *Int) bit(i uint) uint {
	if x.neg {
		t := limb.Nat(nil).Sub(x.abs, natOne)
		return t.Bit(i) ^ 1
	}
	return x.abs.Bit(i)
}

// SetBit sets bit i of x to b, in two's complement. A negative index, or a
// bit value other than 0 or 1, fails with numerr.ErrRange.
func (x *Int) SetBit(i int64, b uint) error {
	if i < 0 {
		return errNegativeIndex(`bigz.SetBit`)
	}
	if b > 1 {
		return numerr.New(numerr.Range, `bigz.SetBit`, `bit value must be 0 or 1`)
	}
	if x.neg {
		t := x.abs.Sub(x.abs, natOne)
		t = t.SetBit(t, uint(i), b^1)
		x.abs = t.Add(t, natOne)
		x.neg = len(x.abs) > 0
		return nil
	}
	x.abs = x.abs.SetBit(x.abs, uint(i), b)
	return nil
}

// WithBit returns a copy of x with bit i set to b, per SetBit.
func (x *Int) WithBit(i int64, b uint) (*Int, error) {
	z := x.Copy()
	if err := z.SetBit(i, b); err != nil {
		return nil, err
	}
	return z, nil
}

// And returns x & y.
func (x *Int) And(y *Int) *Int {
	z := new(Int)
	if x.neg == y.neg {
		if x.neg {
			// (-x) & (-y) == ^(x-1) & ^(y-1) == ^((x-1) | (y-1)) == -(((x-1) | (y-1)) + 1)
			x1 := limb.Nat(nil).Sub(x.abs, natOne)
			y1 := limb.Nat(nil).Sub(y.abs, natOne)
			z.abs = z.abs.Add(z.abs.Or(x1, y1), natOne)
			z.neg = true
			return z
		}
		z.abs = z.abs.And(x.abs, y.abs)
		return z
	}
	if x.neg {
		x, y = y, x
	}
	// x & (-y) == x & ^(y-1) == x &^ (y-1)
	y1 := limb.Nat(nil).Sub(y.abs, natOne)
	z.abs = z.abs.AndNot(x.abs, y1)
	return z
}

// AndNot returns x &^ y.
func (x *Int) AndNot(y *Int) *Int {
	z := new(Int)
	if x.neg == y.neg {
		if x.neg {
			// (-x) &^ (-y) == ^(x-1) &^ ^(y-1) == ^(x-1) & (y-1) == (y-1) &^ (x-1)
			x1 := limb.Nat(nil).Sub(x.abs, natOne)
			y1 := limb.Nat(nil).Sub(y.abs, natOne)
			z.abs = z.abs.AndNot(y1, x1)
			return z
		}
		z.abs = z.abs.AndNot(x.abs, y.abs)
		return z
	}
	if x.neg {
		// (-x) &^ y == ^(x-1) &^ y == ^(x-1) & ^y == ^((x-1) | y) == -(((x-1) | y) + 1)
		x1 := limb.Nat(nil).Sub(x.abs, natOne)
		z.abs = z.abs.Add(z.abs.Or(x1, y.abs), natOne)
		z.neg = true
		return z
	}
	// x &^ (-y) == x &^ ^(y-1) == x & (y-1)
	y1 := limb.Nat(nil).Sub(y.abs, natOne)
	z.abs = z.abs.And(x.abs, y1)
	return z
}

// Or returns x | y.
func (x *Int) Or(y *Int) *Int {
	z := new(Int)
	if x.neg == y.neg {
		if x.neg {
			// (-x) | (-y) == ^(x-1) | ^(y-1) == ^((x-1) & (y-1)) == -(((x-1) & (y-1)) + 1)
			x1 := limb.Nat(nil).Sub(x.abs, natOne)
			y1 := limb.Nat(nil).Sub(y.abs, natOne)
			z.abs = z.abs.Add(z.abs.And(x1, y1), natOne)
			z.neg = true
			return z
		}
		z.abs = z.abs.Or(x.abs, y.abs)
		return z
	}
	if x.neg {
		x, y = y, x
	}
	// x | (-y) == x | ^(y-1) == ^((y-1) &^ x) == -(^((y-1) &^ x) + 1)
	y1 := limb.Nat(nil).Sub(y.abs, natOne)
	z.abs = z.abs.Add(z.abs.AndNot(y1, x.abs), natOne)
	z.neg = true
	return z
}

// Xor returns x ^ y.
func (x *Int) Xor(y *Int) *Int {
	z := new(Int)
	if x.neg == y.neg {
		if x.neg {
			// (-x) ^ (-y) == ^(x-1) ^ ^(y-1) == (x-1) ^ (y-1)
			x1 := limb.Nat(nil).Sub(x.abs, natOne)
			y1 := limb.Nat(nil).Sub(y.abs, natOne)
			z.abs = z.abs.Xor(x1, y1)
			return z
		}
		z.abs = z.abs.Xor(x.abs, y.abs)
		return z
	}
	if x.neg {
		x, y = y, x
	}
	// x ^ (-y) == x ^ ^(y-1) == ^(x ^ (y-1)) == -((x ^ (y-1)) + 1)
	y1 := limb.Nat(nil).Sub(y.abs, natOne)
	z.abs = z.abs.Add(z.abs.Xor(x.abs, y1), natOne)
	z.neg = true
	return z
}

// Not returns ^x == -x - 1.
func (x *Int) Not() *Int {
	z := new(Int)
	if x.neg {
		// ^(-x) == ^(^(x-1)) == x-1
		z.abs = z.abs.Sub(x.abs, natOne)
		return z
	}
	// ^x == -x-1 == -(x+1)
	z.abs = z.abs.Add(x.abs, natOne)
	z.neg = true
	return z
}
