package bigf

import (
	"math"
	"strconv"
	"sync"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/joeycumines/go-bignum/bigz"
	"github.com/joeycumines/go-bignum/internal/limb"
	"golang.org/x/sync/singleflight"
)

// DefaultConstantCacheSize is the initial capacity of the constant cache.
const DefaultConstantCacheSize = 64

type constant uint8

const (
	constPi constant = iota
	constLn2
	constLn10
	constEuler
	constE
)

var constNames = [...]string{
	constPi:    `pi`,
	constLn2:   `ln2`,
	constLn10:  `ln10`,
	constEuler: `euler`,
	constE:     `e`,
}

type constKey struct {
	c    constant
	bits uint
}

// constCache memoises constants as fixed point values, with bits fractional
// bits, where bits is a multiple of 64.
var constCache = struct {
	mu    sync.RWMutex
	lru   *lru.Cache[constKey, limb.Nat]
	group singleflight.Group
}{lru: mustConstLRU(DefaultConstantCacheSize)}

func mustConstLRU(size int) *lru.Cache[constKey, limb.Nat] {
	c, err := lru.New[constKey, limb.Nat](size)
	if err != nil {
		panic(err)
	}
	return c
}

// SetConstantCacheSize sets the number of computed constants (per constant,
// per precision) retained for reuse, evicting the least recently used. A
// size of 0 or less disables caching.
func SetConstantCacheSize(size int) {
	constCache.mu.Lock()
	defer constCache.mu.Unlock()
	if size <= 0 {
		constCache.lru = nil
		return
	}
	if constCache.lru == nil {
		constCache.lru = mustConstLRU(size)
		return
	}
	constCache.lru.Resize(size)
}

// ConstantCacheLen returns the number of cached constants.
func ConstantCacheLen() int {
	constCache.mu.RLock()
	defer constCache.mu.RUnlock()
	if constCache.lru == nil {
		return 0
	}
	return constCache.lru.Len()
}

func cachedConst(key constKey) (limb.Nat, bool) {
	constCache.mu.RLock()
	defer constCache.mu.RUnlock()
	if constCache.lru == nil {
		return nil, false
	}
	return constCache.lru.Get(key)
}

func storeConst(key constKey, v limb.Nat) {
	constCache.mu.RLock()
	defer constCache.mu.RUnlock()
	if constCache.lru != nil {
		constCache.lru.Add(key, v)
	}
}

// constAt returns c rounded to prec bits.
func constAt(c constant, prec uint) *Float {
	// 64 guard bits, at a granularity that keeps the number of distinct
	// cache entries small
	key := constKey{c: c, bits: (prec+63)/64*64 + 64}
	v, ok := cachedConst(key)
	if !ok {
		r, _, _ := constCache.group.Do(constNames[c]+`/`+strconv.FormatUint(uint64(key.bits), 10), func() (any, error) {
			if v, ok := cachedConst(key); ok {
				return v, nil
			}
			v := computeConst(c, key.bits)
			storeConst(key, v)
			return v, nil
		})
		v = r.(limb.Nat)
	}
	// v is truncated, and shared
	return (&Float{prec: prec}).setMant(v.Clone(), -int64(key.bits), true)
}

func computeConst(c constant, w uint) limb.Nat {
	switch c {
	case constPi:
		return fixedPi(w)
	case constLn2:
		return fixedLn2(w)
	case constLn10:
		return fixedLn10(w)
	case constEuler:
		return fixedEuler(w)
	case constE:
		return fixedE(w)
	default:
		panic(`bigf: unknown constant`)
	}
}

// Pi returns π, rounded to prec bits (or the default precision, if prec is
// 0).
func Pi(prec uint) *Float {
	return constAt(constPi, checkPrec(`pi`, prec))
}

// Ln2 returns the natural logarithm of 2.
func Ln2(prec uint) *Float {
	return constAt(constLn2, checkPrec(`ln2`, prec))
}

// Ln10 returns the natural logarithm of 10.
func Ln10(prec uint) *Float {
	return constAt(constLn10, checkPrec(`ln10`, prec))
}

// Euler returns the Euler-Mascheroni constant, γ.
func Euler(prec uint) *Float {
	return constAt(constEuler, checkPrec(`euler`, prec))
}

// E returns Euler's number, e.
func E(prec uint) *Float {
	return constAt(constE, checkPrec(`e`, prec))
}

// atanInv returns atan(1/n), or atanh(1/n) if hyperbolic, scaled by 2**w.
// The error is at most a few units in the last place.
func atanInv(n limb.Word, w uint, hyperbolic bool) limb.Nat {
	var pos, neg limb.Nat
	term := limb.Nat(nil).Shl(limb.Nat{1}, w)
	term, _ = term.DivW(term, n)
	for k := limb.Word(1); len(term) != 0; k += 2 {
		t, _ := limb.Nat(nil).DivW(term, k)
		if hyperbolic || k&2 == 0 {
			pos = pos.Add(pos, t)
		} else {
			neg = neg.Add(neg, t)
		}
		term, _ = term.DivW(term, n*n)
	}
	return pos.Sub(pos, neg)
}

// fixedPi uses Machin's formula, π = 16*atan(1/5) - 4*atan(1/239).
func fixedPi(w uint) limb.Nat {
	a := atanInv(5, w, false)
	b := atanInv(239, w, false)
	a = a.Shl(a, 4)
	b = b.Shl(b, 2)
	return a.Sub(a, b)
}

// fixedLn2 uses ln(2) = 2*atanh(1/3).
func fixedLn2(w uint) limb.Nat {
	a := atanInv(3, w, true)
	return a.Shl(a, 1)
}

// fixedLn10 uses ln(10) = 3*ln(2) + ln(5/4) = 6*atanh(1/3) + 2*atanh(1/9).
func fixedLn10(w uint) limb.Nat {
	a := atanInv(3, w, true)
	a = a.MulAddWW(a, 6, 0)
	b := atanInv(9, w, true)
	b = b.Shl(b, 1)
	return a.Add(a, b)
}

// fixedE sums 1/k!.
func fixedE(w uint) limb.Nat {
	term := limb.Nat(nil).Shl(limb.Nat{1}, w)
	sum := term.Clone()
	for k := limb.Word(1); len(term) != 0; k++ {
		term, _ = term.DivW(term, k)
		sum = sum.Add(sum, term)
	}
	return sum
}

// fixedEuler uses the Brent-McMillan algorithm (B1), with error of order
// exp(-4n).
func fixedEuler(w uint) limb.Nat {
	n := uint64(float64(w)*math.Ln2/4) + 2
	n2 := bigz.FromUint64(n * n)

	// the guard bits absorb the truncation of each term
	g := w + 32
	one, _ := bigz.One().Lsh(int64(g))

	a := toFixed(logAt(fromInt64(int64(n), g), g), g).Neg()
	b := one
	u, v := a.Copy(), b.Copy()
	for k := uint64(1); ; k++ {
		kk := bigz.FromUint64(k)
		b, _ = b.Mul(n2).Quo(bigz.FromUint64(k * k))
		a, _ = a.Mul(n2).Quo(kk)
		a, _ = a.Add(b).Quo(kk)
		if a.IsZero() && b.IsZero() {
			break
		}
		u.AddAssign(a)
		v.AddAssign(b)
	}

	q, _ := u.Lsh(int64(w))
	q, _ = q.Quo(v)
	return q.Nat()
}

// toFixed returns x scaled by 2**w, truncated.
func toFixed(x *Float, w uint) *bigz.Int {
	if x.form != finite {
		return bigz.Zero()
	}
	m := bigz.FromNat(x.mant.Clone(), x.neg)
	if e := x.exp + int64(w); e >= 0 {
		m, _ = m.Lsh(e)
	} else {
		d, _ := bigz.One().Lsh(-e)
		m, _ = m.Quo(d)
	}
	return m
}
