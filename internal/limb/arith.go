package limb

import (
	"math/bits"
)

// Vector primitives. The length of z determines the number of words
// processed; x and y must be at least as long.

func mulWW(x, y Word) (z1, z0 Word) {
	hi, lo := bits.Mul(uint(x), uint(y))
	return Word(hi), Word(lo)
}

// mulAddWWW returns x*y + c, as a double word.
func mulAddWWW(x, y, c Word) (z1, z0 Word) {
	hi, lo := bits.Mul(uint(x), uint(y))
	var cc uint
	lo, cc = bits.Add(lo, uint(c), 0)
	return Word(hi + cc), Word(lo)
}

// divWW returns the quotient and remainder of (x1<<W | x0) / y, x1 < y.
func divWW(x1, x0, y Word) (q, r Word) {
	qq, rr := bits.Div(uint(x1), uint(x0), uint(y))
	return Word(qq), Word(rr)
}

func addVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Add(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

func subVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Sub(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

func addVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		zi, cc := bits.Add(uint(x[i]), uint(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

func subVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		zi, cc := bits.Sub(uint(x[i]), uint(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// shlVU sets z = x << s, 0 <= s < W, returning the bits shifted out.
// Processes from the top, so z may overlap x at a higher offset.
func shlVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return
	}
	if len(z) == 0 {
		return
	}
	s &= W - 1
	ŝ := (W - s) & (W - 1)
	c = x[len(z)-1] >> ŝ
	for i := len(z) - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>ŝ
	}
	z[0] = x[0] << s
	return
}

// shrVU sets z = x >> s, 0 <= s < W, returning the bits shifted out (in the
// most-significant positions of c).
// Processes from the bottom, so z may overlap x at a lower offset.
func shrVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return
	}
	if len(z) == 0 {
		return
	}
	s &= W - 1
	ŝ := (W - s) & (W - 1)
	c = x[0] << ŝ
	for i := 0; i < len(z)-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<ŝ
	}
	z[len(z)-1] = x[len(z)-1] >> s
	return
}

func mulAddVWW(z, x []Word, y, r Word) (c Word) {
	c = r
	for i := range z {
		c, z[i] = mulAddWWW(x[i], y, c)
	}
	return
}

// addMulVVW sets z += x*y, returning the carry.
func addMulVVW(z, x []Word, y Word) (c Word) {
	for i := range z {
		z1, z0 := mulAddWWW(x[i], y, z[i])
		lo, cc := bits.Add(uint(z0), uint(c), 0)
		c, z[i] = Word(cc)+z1, Word(lo)
	}
	return
}

// divWVW sets z = (xn<<(W*len(x)) | x) / y, returning the remainder.
// Requires xn < y.
func divWVW(z []Word, xn Word, x []Word, y Word) (r Word) {
	r = xn
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = divWW(r, x[i], y)
	}
	return
}

// modWVW is divWVW without the quotient.
func modWVW(x []Word, y Word) (r Word) {
	for i := len(x) - 1; i >= 0; i-- {
		_, r = divWW(r, x[i], y)
	}
	return
}
