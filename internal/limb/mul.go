package limb

import (
	"math/big"
	"unsafe"

	"github.com/remyoudompheng/bigfft"
)

// Operand sizes, in words, at which multiplication switches algorithm.
// Variables, for testing.
var (
	karatsubaThreshold = 40
	fftThreshold       = 1800
)

// MulAddWW sets z to x * y + r.
func (z Nat) MulAddWW(x Nat, y, r Word) Nat {
	m := len(x)
	if m == 0 || y == 0 {
		return z.SetWord(r)
	}
	z = z.Make(m + 1)
	z[m] = mulAddVWW(z[0:m], x, y, r)
	return z.Norm()
}

// Mul sets z to x * y.
func (z Nat) Mul(x, y Nat) Nat {
	m, n := len(x), len(y)
	switch {
	case m < n:
		return z.Mul(y, x)
	case m == 0 || n == 0:
		return z[:0]
	case n == 1:
		return z.MulAddWW(x, y[0], 0)
	}
	// m >= n > 1

	if alias(z, x) || alias(z, y) {
		z = nil
	}

	if n >= fftThreshold {
		return z.Set(mulFFT(x, y))
	}

	if n < karatsubaThreshold {
		z = z.Make(m + n)
		basicMul(z, x, y)
		return z.Norm()
	}

	return z.Set(karatsuba(x, y))
}

// Sqr sets z to x * x.
func (z Nat) Sqr(x Nat) Nat {
	return z.Mul(x, x)
}

// basicMul sets z = x * y, len(z) == len(x) + len(y).
func basicMul(z, x, y Nat) {
	clear(z)
	for i, d := range y {
		if d != 0 {
			z[len(x)+i] = addMulVVW(z[i:i+len(x)], x, d)
		}
	}
}

// karatsuba returns x * y, len(x) >= len(y) >= karatsubaThreshold.
func karatsuba(x, y Nat) Nat {
	n := len(y)
	z := make(Nat, len(x)+len(y)+1)

	if len(x) >= 2*n {
		// unbalanced: multiply y by n-word slices of x
		var t Nat
		for i := 0; i < len(x); i += n {
			t = t.Mul(x[i:min(i+n, len(x))].Norm(), y)
			addAt(z, t, i)
		}
		return z.Norm()
	}

	// x = x1*b + x0, y = y1*b + y0, b = 2**(W*k)
	k := n / 2
	x0, x1 := x[:k].Norm(), x[k:]
	y0, y1 := y[:k].Norm(), y[k:]

	z0 := Nat(nil).Mul(x0, y0)
	z2 := Nat(nil).Mul(x1, y1)

	// z1 = (x0 + x1)(y0 + y1) - z0 - z2
	sx := Nat(nil).Add(x0, x1)
	sy := Nat(nil).Add(y0, y1)
	z1 := Nat(nil).Mul(sx, sy)
	z1 = z1.Sub(z1, z0)
	z1 = z1.Sub(z1, z2)

	copy(z, z0)
	addAt(z, z1, k)
	addAt(z, z2, 2*k)
	return z.Norm()
}

// addAt implements z += x << (W*i), where z is long enough to absorb any
// carry.
func addAt(z, x Nat, i int) {
	if n := len(x); n > 0 {
		if c := addVV(z[i:i+n], z[i:], x); c != 0 {
			j := i + n
			if j < len(z) {
				addVW(z[j:], z[j:], c)
			}
		}
	}
}

// mulFFT multiplies via Schönhage-Strassen, bridging through math/big.Int,
// which shares the word representation.
func mulFFT(x, y Nat) Nat {
	var bx, by big.Int
	bx.SetBits(toBigWords(x))
	by.SetBits(toBigWords(y))
	return fromBigWords(bigfft.Mul(&bx, &by).Bits())
}

func toBigWords(x Nat) []big.Word {
	if len(x) == 0 {
		return nil
	}
	return unsafe.Slice((*big.Word)(unsafe.Pointer(unsafe.SliceData(x))), len(x))
}

func fromBigWords(x []big.Word) Nat {
	if len(x) == 0 {
		return nil
	}
	return Nat(unsafe.Slice((*Word)(unsafe.Pointer(unsafe.SliceData(x))), len(x))).Norm()
}

// Pow sets z to x**n.
func (z Nat) Pow(x Nat, n uint64) Nat {
	switch {
	case n == 0:
		return z.SetWord(1)
	case len(x) == 0:
		return z[:0]
	case n == 1:
		return z.Set(x)
	}
	if x.IsPow2() {
		// 2**(k*n)
		k := uint64(x.TrailingZeroBits())
		return z.Shl(natOne, uint(k*n))
	}
	if alias(z, x) {
		z = nil
	}
	base := Nat(nil).Set(x)
	z = z.SetWord(1)
	var t Nat
	for {
		if n&1 != 0 {
			t = t.Mul(z, base)
			z, t = t, z
		}
		n >>= 1
		if n == 0 {
			break
		}
		t = t.Sqr(base)
		base, t = t, base
	}
	return z
}

// ExpMod sets z to x**y mod m, m > 0. A modulus of one yields zero.
func (z Nat) ExpMod(x, y, m Nat) Nat {
	if len(m) == 0 {
		panic(`limb: exp mod: zero modulus`)
	}
	if len(m) == 1 && m[0] == 1 {
		return z[:0]
	}
	if len(y) == 0 {
		return z.SetWord(1)
	}
	if alias(z, x) || alias(z, y) || alias(z, m) {
		z = nil
	}
	var (
		base, t, q Nat
	)
	_, base = q.Div(nil, x, m)
	z = z.SetWord(1)
	for i := y.BitLen() - 1; i >= 0; i-- {
		t = t.Sqr(z)
		q, z = q.Div(z, t, m)
		if y.Bit(uint(i)) != 0 {
			t = t.Mul(z, base)
			q, z = q.Div(z, t, m)
		}
	}
	return z
}
