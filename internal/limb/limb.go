// Package limb implements unsigned magnitudes as little-endian sequences of
// machine words ("limbs"), and the arithmetic primitives every numeric type
// is built on.
//
// Values of type Nat are always normalized: the most-significant word, if
// any, is non-zero, and zero is the empty slice. Operations follow the
// z = z.Op(x, y) convention, reusing the storage of z where possible, and
// returning the (possibly reallocated) result.
package limb

import (
	"math/bits"
)

// Word is a single limb.
type Word uint

// Nat is an unsigned magnitude.
type Nat []Word

const (
	// W is the size of a Word in bits.
	W = bits.UintSize

	maxWord = ^Word(0)
)

var natOne = Nat{1}

// Norm trims any most-significant zero words.
func (z Nat) Norm() Nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[0:i]
}

// Make returns a slice of length n, reusing z if it has the capacity.
// The contents are unspecified.
func (z Nat) Make(n int) Nat {
	if n <= cap(z) {
		return z[:n]
	}
	if n == 1 {
		return make(Nat, 1)
	}
	// a little headroom, for carries
	const e = 4
	return make(Nat, n, n+e)
}

// SetWord sets z to x.
func (z Nat) SetWord(x Word) Nat {
	if x == 0 {
		return z[:0]
	}
	z = z.Make(1)
	z[0] = x
	return z
}

// SetUint64 sets z to x.
func (z Nat) SetUint64(x uint64) Nat {
	if w := Word(x); uint64(w) == x {
		return z.SetWord(w)
	}
	// 32-bit words
	z = z.Make(2)
	z[1] = Word(x >> 32)
	z[0] = Word(x)
	return z
}

// Uint64 returns the low 64 bits of x.
func (x Nat) Uint64() uint64 {
	if len(x) == 0 {
		return 0
	}
	v := uint64(x[0])
	if W == 32 && len(x) > 1 {
		v |= uint64(x[1]) << 32
	}
	return v
}

// IsUint64 reports whether x fits in a uint64.
func (x Nat) IsUint64() bool {
	return x.BitLen() <= 64
}

// Set sets z to a copy of x.
func (z Nat) Set(x Nat) Nat {
	z = z.Make(len(x))
	copy(z, x)
	return z
}

// Clone returns a copy of x that shares no storage with it.
func (x Nat) Clone() Nat {
	if len(x) == 0 {
		return nil
	}
	return Nat(nil).Set(x)
}

// IsZero reports whether x == 0.
func (x Nat) IsZero() bool {
	return len(x) == 0
}

// Cmp returns -1, 0, or +1, as x is less than, equal to, or greater than y.
func (x Nat) Cmp(y Nat) (r int) {
	m, n := len(x), len(y)
	if m != n || m == 0 {
		switch {
		case m < n:
			r = -1
		case m > n:
			r = 1
		}
		return
	}
	i := m - 1
	for i > 0 && x[i] == y[i] {
		i--
	}
	switch {
	case x[i] < y[i]:
		r = -1
	case x[i] > y[i]:
		r = 1
	}
	return
}

// BitLen returns the length of x in bits.
func (x Nat) BitLen() int {
	if i := len(x) - 1; i >= 0 {
		return i*W + bits.Len(uint(x[i]))
	}
	return 0
}

// TrailingZeroBits returns the number of consecutive least significant zero
// bits of x.
func (x Nat) TrailingZeroBits() uint {
	for i, w := range x {
		if w != 0 {
			return uint(i)*W + uint(bits.TrailingZeros(uint(w)))
		}
	}
	return 0
}

// IsPow2 reports whether x is a power of two.
func (x Nat) IsPow2() bool {
	if len(x) == 0 {
		return false
	}
	return x.TrailingZeroBits() == uint(x.BitLen()-1)
}

// alias reports whether x and y share the same base array.
func alias(x, y Nat) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}

// Add sets z to x + y.
func (z Nat) Add(x, y Nat) Nat {
	m, n := len(x), len(y)
	switch {
	case m < n:
		return z.Add(y, x)
	case m == 0:
		return z[:0]
	case n == 0:
		return z.Set(x)
	}
	z = z.Make(m + 1)
	c := addVV(z[0:n], x, y)
	if m > n {
		c = addVW(z[n:m], x[n:], c)
	}
	z[m] = c
	return z.Norm()
}

// Sub sets z to x - y. It panics if x < y.
func (z Nat) Sub(x, y Nat) Nat {
	m, n := len(x), len(y)
	switch {
	case m < n:
		panic(`limb: sub: underflow`)
	case m == 0:
		return z[:0]
	case n == 0:
		return z.Set(x)
	}
	z = z.Make(m)
	c := subVV(z[0:n], x, y)
	if m > n {
		c = subVW(z[n:], x[n:], c)
	}
	if c != 0 {
		panic(`limb: sub: underflow`)
	}
	return z.Norm()
}

// AddWord sets z to x + y.
func (z Nat) AddWord(x Nat, y Word) Nat {
	m := len(x)
	if m == 0 {
		return z.SetWord(y)
	}
	z = z.Make(m + 1)
	z[m] = addVW(z[0:m], x, y)
	return z.Norm()
}

// SubWord sets z to x - y. It panics if x < y.
func (z Nat) SubWord(x Nat, y Word) Nat {
	m := len(x)
	if m == 0 {
		if y != 0 {
			panic(`limb: sub: underflow`)
		}
		return z[:0]
	}
	z = z.Make(m)
	if subVW(z, x, y) != 0 {
		panic(`limb: sub: underflow`)
	}
	return z.Norm()
}
