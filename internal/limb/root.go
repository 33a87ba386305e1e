package limb

// Sqrt sets z to floor(sqrt(x)).
func (z Nat) Sqrt(x Nat) Nat {
	if x.Cmp(natOne) <= 0 {
		return z.Set(x)
	}
	if alias(z, x) {
		z = nil
	}

	// Newton's method, from an initial guess of 2**ceil(bitlen/2) >= sqrt(x),
	// stopping once the sequence stops decreasing.
	var z1, z2, r Nat
	z1 = z1.Shl(natOne, uint(x.BitLen()+1)/2)
	for {
		z2, r = z2.Div(r, x, z1)
		z2 = z2.Add(z2, z1)
		z2 = z2.Shr(z2, 1)
		if z2.Cmp(z1) >= 0 {
			return z.Set(z1)
		}
		z1, z2 = z2, z1
	}
}

// Root sets z to floor(x**(1/n)), n > 0.
func (z Nat) Root(x Nat, n uint) Nat {
	switch {
	case n == 0:
		panic(`limb: root: zero degree`)
	case n == 1 || x.Cmp(natOne) <= 0:
		return z.Set(x)
	case n == 2:
		return z.Sqrt(x)
	}
	if uint(x.BitLen()) <= n {
		// 1 <= x < 2**n
		return z.SetWord(1)
	}
	if alias(z, x) {
		z = nil
	}

	// Newton: r' = ((n-1)*r + x / r**(n-1)) / n, from an overestimate.
	var (
		r, t, q, u, rem Nat
	)
	r = r.Shl(natOne, (uint(x.BitLen())+n-1)/n)
	for {
		t = t.Pow(r, uint64(n-1))
		q, rem = q.Div(rem, x, t)
		u = u.MulAddWW(r, Word(n-1), 0)
		u = u.Add(u, q)
		u, _ = u.DivW(u, Word(n))
		if u.Cmp(r) >= 0 {
			return z.Set(r)
		}
		r, u = u, r
	}
}

// IsSquare reports whether x is a perfect square.
func (x Nat) IsSquare() bool {
	if len(x) == 0 {
		return true
	}
	// quadratic residues mod 16 are 0, 1, 4, 9
	switch x[0] & 15 {
	case 0, 1, 4, 9:
	default:
		return false
	}
	s := Nat(nil).Sqrt(x)
	return Nat(nil).Sqr(s).Cmp(x) == 0
}
