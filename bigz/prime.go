package bigz

import (
	"math/rand/v2"

	"github.com/joeycumines/go-bignum/internal/limb"
	"modernc.org/mathutil"
)

// Primality is the result of a probabilistic primality test.
type Primality int

const (
	// Composite means the value is definitely composite (or less than 2).
	Composite Primality = iota
	// ProbablyPrime means the value passed every test applied, without
	// certainty.
	ProbablyPrime
	// Prime means the value is definitely prime.
	Prime
)

func (p Primality) String() string {
	switch p {
	case Composite:
		return `composite`
	case ProbablyPrime:
		return `probably prime`
	case Prime:
		return `prime`
	default:
		return `unknown`
	}
}

var smallPrimes = [...]uint8{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
}

// ProbablyPrime tests |x| for primality.
//
// Values below 2**64 are classified definitively. Larger values are
// trial-divided, then subjected to reps rounds of Miller-Rabin with
// pseudo-random bases, plus a Baillie-PSW test (a base 2 Miller-Rabin round
// and a strong Lucas test), and are at best ProbablyPrime. No composite
// below 2**64 passes Baillie-PSW. A reps of zero or less is treated as one.
func (x *Int) ProbablyPrime(reps int) Primality {
	n := x.abs
	if n.IsUint64() {
		if mathutil.IsPrimeUint64(n.Uint64()) {
			return Prime
		}
		return Composite
	}
	if n[0]&1 == 0 {
		return Composite
	}
	for _, p := range smallPrimes {
		if n.ModW(limb.Word(p)) == 0 {
			return Composite
		}
	}
	if reps < 1 {
		reps = 1
	}
	if !millerRabin(n, reps, true) || !lucasStrong(n) {
		return Composite
	}
	return ProbablyPrime
}

// NextPrime returns the smallest prime (or probable prime) greater than x.
func (x *Int) NextPrime() *Int {
	if x.neg || x.abs.Cmp(limb.Nat{2}) < 0 {
		return FromUint64(2)
	}
	z := &Int{abs: limb.Nat(nil).AddWord(x.abs, 1)}
	if z.abs[0]&1 == 0 {
		if len(z.abs) == 1 && z.abs[0] == 2 {
			return z
		}
		z.abs = z.abs.AddWord(z.abs, 1)
	}
	for z.ProbablyPrime(25) == Composite {
		z.abs = z.abs.AddWord(z.abs, 2)
	}
	return z
}

// NextPrimeAssign sets x to x.NextPrime().
func (x *Int) NextPrimeAssign() {
	*x = *x.NextPrime()
}

// millerRabin performs reps rounds of Miller-Rabin, with pseudo-random bases
// derived from n, the last being 2 if force2 is set. n must be odd and > 3.
func millerRabin(n limb.Nat, reps int, force2 bool) bool {
	nm1 := limb.Nat(nil).SubWord(n, 1)
	k := nm1.TrailingZeroBits()
	q := limb.Nat(nil).Shr(nm1, k)
	nm3 := limb.Nat(nil).SubWord(nm1, 2)

	rng := rand.New(rand.NewPCG(uint64(n[0]), uint64(len(n))))
	var x, y, quotient limb.Nat

NextRandom:
	for i := range reps {
		if i == reps-1 && force2 {
			x = x.SetWord(2)
		} else {
			x = randomBelow(x, rng, nm3)
			x = x.AddWord(x, 2)
		}
		y = y.ExpMod(x, q, n)
		if y.Cmp(natOne) == 0 || y.Cmp(nm1) == 0 {
			continue
		}
		for j := uint(1); j < k; j++ {
			y = y.Sqr(y)
			quotient, y = quotient.Div(y, y, n)
			if y.Cmp(nm1) == 0 {
				continue NextRandom
			}
			if y.Cmp(natOne) == 0 {
				return false
			}
		}
		return false
	}
	return true
}

// randomBelow sets z to a pseudo-random value in [0, limit), limit > 0.
func randomBelow(z limb.Nat, rng *rand.Rand, limit limb.Nat) limb.Nat {
	z = z.Make(len(limit) + 1)
	for i := range z {
		z[i] = limb.Word(rng.Uint64())
	}
	return z.Norm().Mod(z.Norm(), limit)
}

// lucasStrong implements the strong Lucas probable prime test, with
// parameters selected per Baillie-OEIS "method C". n must be odd and > 3.
func lucasStrong(n limb.Nat) bool {
	var (
		p      = limb.Word(3)
		d      = &Int{abs: limb.Nat{1}}
		intN   = &Int{abs: n}
		t1     limb.Nat
		natP   limb.Nat
		natTwo = limb.Nat{2}
	)
	for ; ; p++ {
		if p > 10000 {
			panic(`bigz: lucas: cannot find (D/n) = -1`)
		}
		d.abs[0] = p*p - 4
		j := jacobi(d, intN)
		if j == -1 {
			break
		}
		if j == 0 {
			// p*p - 4 = (p-2)(p+2) shares a factor with n
			return len(n) == 1 && n[0] == p+2
		}
		if p == 40 {
			// perfect squares never reach (D/n) = -1
			if n.IsSquare() {
				return false
			}
		}
	}

	// n+1 = s * 2**r, s odd
	s := limb.Nat(nil).AddWord(n, 1)
	r := int(s.TrailingZeroBits())
	s = s.Shr(s, uint(r))
	nm2 := limb.Nat(nil).SubWord(n, 2)

	// Lucas sequence V with P = p, Q = 1, V(0) = 2, V(1) = P
	natP = natP.SetWord(p)
	vk := limb.Nat(nil).SetWord(2)
	vk1 := limb.Nat(nil).SetWord(p)
	var t2 limb.Nat
	for i := s.BitLen(); i >= 0; i-- {
		if s.Bit(uint(i)) != 0 {
			// V(2k+1) = V(k) V(k+1) - P
			t1 = t1.Mul(vk, vk1)
			t1 = t1.Add(t1, n)
			t1 = t1.Sub(t1, natP)
			t2, vk = t2.Div(vk, t1, n)
			// V(2k+2) = V(k+1)**2 - 2
			t1 = t1.Sqr(vk1)
			t1 = t1.Add(t1, nm2)
			t2, vk1 = t2.Div(vk1, t1, n)
		} else {
			// V(2k+1) = V(k) V(k+1) - P
			t1 = t1.Mul(vk, vk1)
			t1 = t1.Add(t1, n)
			t1 = t1.Sub(t1, natP)
			t2, vk1 = t2.Div(vk1, t1, n)
			// V(2k) = V(k)**2 - 2
			t1 = t1.Sqr(vk)
			t1 = t1.Add(t1, nm2)
			t2, vk = t2.Div(vk, t1, n)
		}
	}

	// V(s) == ±2 (mod n), check U(s) == 0 via 2 V(s+1) == P V(s) (mod n)
	if vk.Cmp(natTwo) == 0 || vk.Cmp(nm2) == 0 {
		a := limb.Nat(nil).Mul(vk, natP)
		b := limb.Nat(nil).Shl(vk1, 1)
		if a.Cmp(b) < 0 {
			a, b = b, a
		}
		a = a.Sub(a, b)
		if len(limb.Nat(nil).Mod(a, n)) == 0 {
			return true
		}
	}

	// V(2**t s) == 0 (mod n) for some 0 <= t < r-1
	for range r - 1 {
		if len(vk) == 0 {
			return true
		}
		if len(vk) == 1 && vk[0] == 2 {
			// fixed point of V(2k) = V(k)**2 - 2
			return false
		}
		t1 = t1.Sqr(vk)
		t1 = t1.Add(t1, nm2)
		t2, vk = t2.Div(vk, t1, n)
	}
	return false
}
