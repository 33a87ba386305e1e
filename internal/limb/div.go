package limb

import (
	"math/bits"
)

// DivW sets z to x / y, returning the remainder. It panics if y is zero.
func (z Nat) DivW(x Nat, y Word) (q Nat, r Word) {
	m := len(x)
	switch {
	case y == 0:
		panic(`limb: division by zero`)
	case y == 1:
		q = z.Set(x)
		return
	case m == 0:
		q = z[:0]
		return
	}
	z = z.Make(m)
	r = divWVW(z, 0, x, y)
	q = z.Norm()
	return
}

// ModW returns x mod y. It panics if y is zero.
func (x Nat) ModW(y Word) Word {
	if y == 0 {
		panic(`limb: division by zero`)
	}
	return modWVW(x, y)
}

// Div sets z to u / v and z2 to u mod v, returning both.
// It panics if v is zero.
func (z Nat) Div(z2, u, v Nat) (q, r Nat) {
	if len(v) == 0 {
		panic(`limb: division by zero`)
	}

	if u.Cmp(v) < 0 {
		if alias(z2, v) {
			z2 = nil
		}
		q = z[:0]
		r = z2.Set(u)
		return
	}

	if alias(z2, z) {
		z2 = nil
	}

	if len(v) == 1 {
		var r2 Word
		q, r2 = z.DivW(u, v[0])
		r = z2.SetWord(r2)
		return
	}

	if alias(z, u) || alias(z, v) || alias(z, z2) {
		z = nil
	}
	if alias(z2, u) || alias(z2, v) {
		z2 = nil
	}
	q, r = z.divLarge(z2, u, v)
	return
}

// divLarge implements Knuth, TAOCP Vol. 2, Section 4.3.1, Algorithm D.
// len(v) >= 2, u >= v, and z, z2 must not alias u or v.
func (z Nat) divLarge(z2, uIn, vIn Nat) (q, r Nat) {
	n := len(vIn)
	m := len(uIn) - n

	// D1: normalize, so the top bit of v is set
	shift := uint(bits.LeadingZeros(uint(vIn[n-1])))
	v := make(Nat, n)
	shlVU(v, vIn, shift)

	u := z2.Make(len(uIn) + 1)
	u[len(uIn)] = shlVU(u[0:len(uIn)], uIn, shift)

	q = z.Make(m + 1)
	qhatv := make(Nat, n+1)

	vn1 := v[n-1]
	vn2 := v[n-2]

	// D2
	for j := m; j >= 0; j-- {
		// D3: estimate qhat, correcting by at most two
		qhat := maxWord
		if ujn := u[j+n]; ujn != vn1 {
			var rhat Word
			qhat, rhat = divWW(ujn, u[j+n-1], vn1)

			x1, x2 := mulWW(qhat, vn2)
			ujn2 := u[j+n-2]
			for greaterThan(x1, x2, rhat, ujn2) {
				qhat--
				prev := rhat
				rhat += vn1
				if rhat < prev {
					// rhat overflowed, so the test can no longer hold
					break
				}
				x1, x2 = mulWW(qhat, vn2)
			}
		}

		// D4: u[j:j+n+1] -= qhat*v
		qhatv[n] = mulAddVWW(qhatv[0:n], v, qhat, 0)
		if c := subVV(u[j:j+len(qhatv)], u[j:], qhatv); c != 0 {
			// D6: add back
			c := addVV(u[j:j+n], u[j:], v)
			u[j+n] += c
			qhat--
		}

		q[j] = qhat
	}

	q = q.Norm()
	// D8: unnormalize
	shrVU(u, u, shift)
	r = u.Norm()
	return
}

// greaterThan reports whether (x1<<W + x2) > (y1<<W + y2).
func greaterThan(x1, x2, y1, y2 Word) bool {
	return x1 > y1 || x1 == y1 && x2 > y2
}

// Mod sets z to x mod y.
func (z Nat) Mod(x, y Nat) Nat {
	_, r := Nat(nil).Div(z, x, y)
	return r
}

// Quo sets z to x / y, discarding the remainder.
func (z Nat) Quo(x, y Nat) Nat {
	q, _ := z.Div(nil, x, y)
	return q
}
