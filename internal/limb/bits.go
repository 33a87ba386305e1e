package limb

import (
	"math/bits"
)

// Shl sets z to x << s.
func (z Nat) Shl(x Nat, s uint) Nat {
	if s == 0 {
		if same(z, x) {
			return z
		}
		if !alias(z, x) {
			return z.Set(x)
		}
	}

	m := len(x)
	if m == 0 {
		return z[:0]
	}
	// m > 0

	n := m + int(s/W)
	z = z.Make(n + 1)
	z[n] = shlVU(z[n-m:n], x, s%W)
	clear(z[0 : n-m])

	return z.Norm()
}

// Shr sets z to x >> s.
func (z Nat) Shr(x Nat, s uint) Nat {
	if s == 0 {
		if same(z, x) {
			return z
		}
		if !alias(z, x) {
			return z.Set(x)
		}
	}

	m := len(x)
	n := m - int(s/W)
	if n <= 0 {
		return z[:0]
	}
	// n > 0

	z = z.Make(n)
	shrVU(z, x[m-n:], s%W)

	return z.Norm()
}

func same(x, y Nat) bool {
	return len(x) == len(y) && len(x) > 0 && &x[0] == &y[0]
}

// Bit returns the value of the i'th bit of x.
func (x Nat) Bit(i uint) uint {
	j := i / W
	if j >= uint(len(x)) {
		return 0
	}
	return uint(x[j]>>(i%W)) & 1
}

// Sticky returns 1 if any of the bits below position i are set, else 0.
func (x Nat) Sticky(i uint) uint {
	j := i / W
	if j >= uint(len(x)) {
		if len(x) == 0 {
			return 0
		}
		return 1
	}
	for _, w := range x[:j] {
		if w != 0 {
			return 1
		}
	}
	if x[j]<<(W-i%W) != 0 {
		return 1
	}
	return 0
}

// SetBit sets z to x, with the i'th bit set to b (0 or 1).
func (z Nat) SetBit(x Nat, i uint, b uint) Nat {
	j := int(i / W)
	m := Word(1) << (i % W)
	n := len(x)
	switch b {
	case 0:
		z = z.Make(n)
		copy(z, x)
		if j >= n {
			return z
		}
		z[j] &^= m
		return z.Norm()
	case 1:
		if j >= n {
			z = z.Make(j + 1)
			clear(z[n:])
		} else {
			z = z.Make(n)
		}
		copy(z, x)
		z[j] |= m
		return z
	}
	panic(`limb: set bit: bit value not 0 or 1`)
}

// And sets z to x & y.
func (z Nat) And(x, y Nat) Nat {
	m, n := len(x), len(y)
	if m > n {
		m = n
	}
	z = z.Make(m)
	for i := 0; i < m; i++ {
		z[i] = x[i] & y[i]
	}
	return z.Norm()
}

// AndNot sets z to x &^ y.
func (z Nat) AndNot(x, y Nat) Nat {
	m, n := len(x), len(y)
	if n > m {
		n = m
	}
	z = z.Make(m)
	for i := 0; i < n; i++ {
		z[i] = x[i] &^ y[i]
	}
	copy(z[n:m], x[n:m])
	return z.Norm()
}

// Or sets z to x | y.
func (z Nat) Or(x, y Nat) Nat {
	m, n := len(x), len(y)
	s := x
	if m < n {
		n, m = m, n
		s = y
	}
	z = z.Make(m)
	for i := 0; i < n; i++ {
		z[i] = x[i] | y[i]
	}
	copy(z[n:m], s[n:m])
	return z.Norm()
}

// Xor sets z to x ^ y.
func (z Nat) Xor(x, y Nat) Nat {
	m, n := len(x), len(y)
	s := x
	if m < n {
		n, m = m, n
		s = y
	}
	z = z.Make(m)
	for i := 0; i < n; i++ {
		z[i] = x[i] ^ y[i]
	}
	copy(z[n:m], s[n:m])
	return z.Norm()
}

// PopCount returns the number of set bits in x.
func (x Nat) PopCount() int {
	var n int
	for _, w := range x {
		n += bits.OnesCount(uint(w))
	}
	return n
}
