package bigz

import (
	"github.com/joeycumines/go-bignum/internal/limb"
)

// mulRange returns the product of all integers in [a, b], or 1 if a > b.
func mulRange(a, b uint64) limb.Nat {
	switch {
	case a > b:
		return limb.Nat{1}
	case a == b:
		return limb.Nat(nil).SetUint64(a)
	case a+1 == b:
		return limb.Nat(nil).Mul(limb.Nat(nil).SetUint64(a), limb.Nat(nil).SetUint64(b))
	}
	m := a + (b-a)/2
	return limb.Nat(nil).Mul(mulRange(a, m), mulRange(m+1, b))
}

// Factorial returns n!.
func Factorial(n uint64) *Int {
	if n < 2 {
		return One()
	}
	return &Int{abs: mulRange(2, n)}
}

// fib returns F(n) and F(n+1), by fast doubling:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k)**2 + F(k+1)**2
func fib(n uint64) (a, b limb.Nat) {
	b = limb.Nat{1}
	if n == 0 {
		return
	}
	var t, u limb.Nat
	for i := 63; i >= 0; i-- {
		// (a, b) = (F(k), F(k+1)) -> (F(2k), F(2k+1))
		t = t.Shl(b, 1)
		t = t.Sub(t, a)
		t = t.Mul(t, a)
		u = u.Sqr(a)
		a = a.Sqr(b)
		a = a.Add(a, u)
		a, b = t, a
		t = nil
		if n>>uint(i)&1 != 0 {
			// (F(m), F(m+1)) -> (F(m+1), F(m+2))
			t = t.Add(a, b)
			a, b = b, t
			t = nil
		}
	}
	return
}

// Fibonacci returns F(n), with F(0) == 0 and F(1) == 1.
func Fibonacci(n uint64) *Int {
	f, _ := fib(n)
	return &Int{abs: f}
}

// FibonacciPair returns F(n) and F(n-1), where F(-1) == 1.
func FibonacciPair(n uint64) (fn, fn1 *Int) {
	a, b := fib(n)
	// F(n-1) = F(n+1) - F(n)
	return &Int{abs: a}, &Int{abs: limb.Nat(nil).Sub(b, a)}
}

// Lucas returns L(n), with L(0) == 2 and L(1) == 1.
func Lucas(n uint64) *Int {
	l, _ := LucasPair(n)
	return l
}

// LucasPair returns L(n) and L(n-1), where L(-1) == -1.
func LucasPair(n uint64) (ln, ln1 *Int) {
	fn, fn1 := FibonacciPair(n)
	// L(n) = 2*F(n-1) + F(n), L(n-1) = 2*F(n) - F(n-1)
	two := FromUint64(2)
	ln = two.Mul(fn1).Add(fn)
	ln1 = two.Mul(fn).Sub(fn1)
	return
}

// Binomial returns the binomial coefficient C(n, k). Negative n is supported,
// via C(n, k) == (-1)**k * C(-n+k-1, k).
func Binomial(n *Int, k uint64) *Int {
	if n.neg {
		m := n.Neg().Add(FromUint64(k)).Sub(One())
		z := Binomial(m, k)
		if k&1 != 0 {
			z.NegAssign()
		}
		return z
	}
	kk := FromUint64(k)
	if kk.Cmp(n) > 0 {
		return Zero()
	}
	// C(n, k) == C(n, n-k)
	if nk := n.Sub(kk); nk.Cmp(kk) < 0 {
		k = nk.abs.Uint64()
	}
	if k == 0 {
		return One()
	}
	if n.abs.IsUint64() {
		// (n-k+1)...n / k!
		nn := n.abs.Uint64()
		num := mulRange(nn-k+1, nn)
		return &Int{abs: num.Quo(num, mulRange(2, k))}
	}
	// r = r * (n-k+i) / i, exact at every step
	base := n.Sub(FromUint64(k))
	r := limb.Nat{1}
	var t limb.Nat
	for i := uint64(1); i <= k; i++ {
		t = t.Add(base.abs, limb.Nat(nil).SetUint64(i))
		r = r.Mul(r, t)
		r = r.Quo(r, limb.Nat(nil).SetUint64(i))
	}
	return &Int{abs: r}
}
