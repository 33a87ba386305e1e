package bigz

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/joeycumines/go-bignum/numerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toBig(x *Int) *big.Int {
	b, ok := new(big.Int).SetString(x.String(), 10)
	if !ok {
		panic(`unexpected`)
	}
	return b
}

func randInt(r *rand.Rand, maxBits int) *Int {
	n := r.IntN(maxBits + 1)
	b := new(big.Int)
	for range n/63 + 1 {
		b.Lsh(b, 63)
		b.Or(b, big.NewInt(r.Int64()))
	}
	b.Rsh(b, uint(max(0, b.BitLen()-n)))
	if r.IntN(2) == 0 {
		b.Neg(b)
	}
	return MustParse(b.String())
}

func TestInt_scenarios(t *testing.T) {
	x := MustParse(`123456789012345678901234567890`)
	require.Equal(t, `123456789012345678901234567891`, x.Add(New(1)).String())

	p, err := New(17).Pow(0)
	require.NoError(t, err)
	require.True(t, p.Eq(New(1)))
	p, err = New(2).Pow(10)
	require.NoError(t, err)
	require.True(t, p.Eq(New(1024)))

	q, err := New(10).Div(New(-3))
	require.NoError(t, err)
	require.Equal(t, int64(-4), q.SaturatedInt64())
	m, err := New(10).Mod(New(-3))
	require.NoError(t, err)
	require.Equal(t, int64(-2), m.SaturatedInt64())

	require.Equal(t, `55`, Fibonacci(10).String())
	require.Equal(t, `120`, Factorial(5).String())
}

func TestInt_againstBig(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 43))
	for range 300 {
		x, y := randInt(r, 400), randInt(r, 300)
		bx, by := toBig(x), toBig(y)

		assert.Equal(t, new(big.Int).Add(bx, by).String(), x.Add(y).String())
		assert.Equal(t, new(big.Int).Sub(bx, by).String(), x.Sub(y).String())
		assert.Equal(t, new(big.Int).Mul(bx, by).String(), x.Mul(y).String())
		assert.Equal(t, bx.Cmp(by), x.Cmp(y))
		assert.Equal(t, new(big.Int).And(bx, by).String(), x.And(y).String())
		assert.Equal(t, new(big.Int).Or(bx, by).String(), x.Or(y).String())
		assert.Equal(t, new(big.Int).Xor(bx, by).String(), x.Xor(y).String())
		assert.Equal(t, new(big.Int).AndNot(bx, by).String(), x.AndNot(y).String())
		assert.Equal(t, new(big.Int).Not(bx).String(), x.Not().String())
		assert.Equal(t, new(big.Int).GCD(nil, nil, new(big.Int).Abs(bx), new(big.Int).Abs(by)).String(), x.GCD(y).String())

		s := uint(r.IntN(130))
		lsh, err := x.Lsh(int64(s))
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Lsh(bx, s).String(), lsh.String())
		rsh, err := x.Rsh(int64(s))
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Rsh(bx, s).String(), rsh.String())

		bit, err := x.TestBit(int64(s))
		require.NoError(t, err)
		assert.Equal(t, bx.Bit(int(s)), bit)

		if y.Sign() != 0 {
			// x == y*q + m, with m zero or having the sign of y, |m| < |y|
			q, m, err := x.DivMod(y)
			require.NoError(t, err)
			assert.True(t, y.Mul(q).Add(m).Eq(x))
			assert.True(t, m.Sign() == 0 || m.Sign() == y.Sign())
			assert.Equal(t, -1, m.CmpAbs(y))

			tq, tr, err := x.QuoRem(y)
			require.NoError(t, err)
			wq, wr := new(big.Int).QuoRem(bx, by, new(big.Int))
			assert.Equal(t, wq.String(), tq.String())
			assert.Equal(t, wr.String(), tr.String())
		}
	}
}

func TestInt_divisionByZero(t *testing.T) {
	x := New(7)
	_, err := x.Div(Zero())
	require.ErrorIs(t, err, numerr.ErrDivisionByZero)
	_, err = x.Mod(Zero())
	require.ErrorIs(t, err, numerr.ErrDivisionByZero)
	_, _, err = x.DivMod(Zero())
	require.ErrorIs(t, err, numerr.ErrDivisionByZero)
	_, err = x.Quo(Zero())
	require.ErrorIs(t, err, numerr.ErrDivisionByZero)
	_, err = x.Rem(Zero())
	require.ErrorIs(t, err, numerr.ErrDivisionByZero)
	_, err = x.Exp(New(2), Zero())
	require.ErrorIs(t, err, numerr.ErrDivisionByZero)
}

func TestInt_rangeErrors(t *testing.T) {
	x := New(7)
	_, err := x.Pow(-1)
	require.ErrorIs(t, err, numerr.ErrRange)
	_, err = x.Lsh(-1)
	require.ErrorIs(t, err, numerr.ErrRange)
	_, err = x.Rsh(-1)
	require.ErrorIs(t, err, numerr.ErrRange)
	_, err = x.TestBit(-1)
	require.ErrorIs(t, err, numerr.ErrRange)
	require.ErrorIs(t, x.SetBit(-1, 1), numerr.ErrRange)
	require.ErrorIs(t, x.SetBit(0, 2), numerr.ErrRange)
	_, _, err = x.RemoveFactor(New(1))
	require.ErrorIs(t, err, numerr.ErrRange)
	_, _, err = x.RemoveFactor(New(-3))
	require.ErrorIs(t, err, numerr.ErrRange)
	_, err = x.Root(0)
	require.ErrorIs(t, err, numerr.ErrRange)
	require.ErrorIs(t, x.RootAssign(-2), numerr.ErrRange)
	require.Equal(t, `7`, x.String())
}

func TestInt_SetBit(t *testing.T) {
	for _, v := range [...]int64{0, 1, 5, -1, -6, -1 << 40} {
		for _, i := range [...]int64{0, 1, 3, 70} {
			for _, b := range [...]uint{0, 1} {
				x := New(v)
				require.NoError(t, x.SetBit(i, b))
				want := new(big.Int).SetBit(big.NewInt(v), int(i), b)
				assert.Equal(t, want.String(), x.String(), `%d bit %d = %d`, v, i, b)
			}
		}
	}
}

func TestInt_mutators(t *testing.T) {
	x := New(10)
	x.AddAssign(New(5))
	x.SubAssign(New(20))
	x.MulAssign(New(3))
	require.Equal(t, `-15`, x.String())
	x.NegAssign()
	require.Equal(t, `15`, x.String())
	x.NegAssign()
	x.AbsAssign()
	require.Equal(t, `15`, x.String())

	require.ErrorIs(t, New(-4).SqrtAssign(), numerr.ErrDomain)
	y := New(99)
	require.NoError(t, y.SqrtAssign())
	require.Equal(t, `9`, y.String())

	z := New(-28)
	require.NoError(t, z.RootAssign(3))
	require.Equal(t, `-3`, z.String())
	require.ErrorIs(t, New(-16).RootAssign(4), numerr.ErrDomain)

	a, b := New(1), New(2)
	a.Swap(b)
	require.Equal(t, `2 1`, a.String()+` `+b.String())

	w := New(3)
	require.NoError(t, w.InvertAssign(New(7)))
	require.Equal(t, `5`, w.String())
	require.ErrorIs(t, New(2).InvertAssign(New(4)), numerr.ErrNotInvertible)

	p := New(13)
	p.NextPrimeAssign()
	require.Equal(t, `17`, p.String())

	// pure methods do not mutate
	c := New(5)
	_ = c.Add(New(1))
	_ = c.Neg()
	_, _ = c.Sqrt()
	require.Equal(t, `5`, c.String())
}

func TestInt_Invert(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	for range 200 {
		a, m := randInt(r, 100), randInt(r, 80)
		if m.CmpAbs(One()) <= 0 {
			continue
		}
		inv, err := a.Invert(m)
		coprime := a.GCD(m).Eq(One())
		if !coprime {
			require.ErrorIs(t, err, numerr.ErrNotInvertible)
			continue
		}
		require.NoError(t, err)
		prod, err := a.Mul(inv).Mod(m.Abs())
		require.NoError(t, err)
		require.True(t, prod.Eq(One()), `%s * %s mod %s`, a, inv, m)
		require.True(t, inv.Sign() >= 0 && inv.CmpAbs(m) < 0)
	}
	_, err := New(3).Invert(Zero())
	require.ErrorIs(t, err, numerr.ErrNotInvertible)
}

func TestExtendedGCD(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 10))
	cases := [][2]*Int{{Zero(), Zero()}, {Zero(), New(-5)}, {New(12), Zero()}, {New(240), New(46)}, {New(-240), New(46)}}
	for range 100 {
		cases = append(cases, [2]*Int{randInt(r, 200), randInt(r, 150)})
	}
	for _, c := range cases {
		a, b := c[0], c[1]
		g, s, tt := ExtendedGCD(a, b)
		require.True(t, g.Eq(a.GCD(b)), `gcd(%s, %s)`, a, b)
		require.True(t, a.Mul(s).Add(b.Mul(tt)).Eq(g), `bezout(%s, %s) = %s, %s`, a, b, s, tt)
	}
}

func TestInt_Exp(t *testing.T) {
	v, err := New(4).Exp(New(13), New(497))
	require.NoError(t, err)
	require.Equal(t, `445`, v.String())

	v, err = New(-4).Exp(New(3), New(-7))
	require.NoError(t, err)
	require.Equal(t, `6`, v.String()) // -64 mod 7

	v, err = New(3).Exp(New(-1), New(7))
	require.NoError(t, err)
	require.Equal(t, `5`, v.String())

	_, err = New(2).Exp(New(-1), New(4))
	require.ErrorIs(t, err, numerr.ErrNotInvertible)
}

func TestInt_ExpAgainstBig(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for range 300 {
		x, e, m := randInt(r, 300), randInt(r, 120), randInt(r, 200)
		if m.Sign() == 0 {
			continue
		}
		want := new(big.Int).Exp(toBig(x), toBig(e), toBig(m))
		got, err := x.Exp(e, m)
		if want == nil {
			require.ErrorIs(t, err, numerr.ErrNotInvertible, `exp(%s, %s, %s)`, x, e, m)
			continue
		}
		require.NoError(t, err, `exp(%s, %s, %s)`, x, e, m)
		assert.Equal(t, want.String(), got.String(), `exp(%s, %s, %s)`, x, e, m)
	}
}

func TestInt_symbols(t *testing.T) {
	for a := int64(-20); a <= 20; a++ {
		for b := int64(-21); b <= 21; b += 2 {
			j, err := Jacobi(New(a), New(b))
			require.NoError(t, err)
			assert.Equal(t, big.Jacobi(big.NewInt(a), big.NewInt(b)), j, `(%d/%d)`, a, b)
			assert.Equal(t, j, Kronecker(New(a), New(b)))
		}
	}
	_, err := Jacobi(New(3), New(4))
	require.ErrorIs(t, err, numerr.ErrDomain)
	_, err = Legendre(New(3), New(-7))
	require.ErrorIs(t, err, numerr.ErrDomain)
	l, err := Legendre(New(2), New(7))
	require.NoError(t, err)
	require.Equal(t, 1, l)

	// even denominators
	for _, tt := range [...]struct {
		a, b int64
		want int
	}{
		{1, 0, 1}, {-1, 0, 1}, {2, 0, 0},
		{2, 4, 0}, {3, 2, -1}, {5, 2, -1}, {7, 2, 1}, {1, 2, 1},
		{-3, 2, -1}, {-1, 2, 1}, {3, 4, 1}, {3, 8, -1},
		{-1, -2, -1}, {5, 12, -1}, {11, -6, 1},
	} {
		assert.Equal(t, tt.want, Kronecker(New(tt.a), New(tt.b)), `(%d/%d)`, tt.a, tt.b)
	}
}

func TestInt_primes(t *testing.T) {
	require.Equal(t, Prime, New(2).ProbablyPrime(10))
	require.Equal(t, Prime, New(-7).ProbablyPrime(10))
	require.Equal(t, Composite, New(1).ProbablyPrime(10))
	require.Equal(t, Composite, New(0).ProbablyPrime(10))
	require.Equal(t, Composite, New(561).ProbablyPrime(10))
	require.Equal(t, Prime, New(uint64(18446744073709551557)).ProbablyPrime(10))

	m127, err := New(2).Pow(127)
	require.NoError(t, err)
	m127 = m127.Sub(One())
	require.Equal(t, ProbablyPrime, m127.ProbablyPrime(20))
	require.Equal(t, Composite, m127.Mul(New(3)).ProbablyPrime(20))
	require.Equal(t, Composite, m127.Mul(m127).ProbablyPrime(20))

	// product of the Mersenne primes M127 and M89
	p := MustParse(`170141183460469231731687303715884105727`)
	q := MustParse(`618970019642690137449562111`)
	require.Equal(t, Composite, p.Mul(q).ProbablyPrime(5))

	require.Equal(t, `2`, New(-10).NextPrime().String())
	require.Equal(t, `3`, New(2).NextPrime().String())
	require.Equal(t, `101`, New(97).NextPrime().String())
	require.Equal(t, `18446744073709551629`, New(uint64(18446744073709551557)).NextPrime().String())

	require.Equal(t, `composite`, Composite.String())
	require.Equal(t, `probably prime`, ProbablyPrime.String())
}

func TestInt_powers(t *testing.T) {
	for _, tt := range [...]struct {
		v             int64
		square, power bool
	}{
		{0, true, true}, {1, true, true}, {-1, false, true}, {4, true, true},
		{8, false, true}, {-8, false, true}, {-4, false, false}, {12, false, false},
		{1 << 40, true, true}, {3 * 3 * 3 * 3 * 3, false, true}, {-243, false, true},
		{36, true, true}, {72, false, false},
	} {
		assert.Equal(t, tt.square, New(tt.v).IsPerfectSquare(), `%d square`, tt.v)
		assert.Equal(t, tt.power, New(tt.v).IsPerfectPower(), `%d power`, tt.v)
	}
	require.True(t, New(7).IsOdd())
	require.True(t, New(-8).IsEven())
	require.True(t, New(0).IsEven())

	s, r, err := New(27).SqrtRem()
	require.NoError(t, err)
	require.Equal(t, `5 2`, s.String()+` `+r.String())
	root, rem, err := New(-30).RootRem(3)
	require.NoError(t, err)
	require.Equal(t, `-3 -3`, root.String()+` `+rem.String())
	_, err = New(-1).Sqrt()
	require.ErrorIs(t, err, numerr.ErrDomain)
}

func TestInt_combinatorics(t *testing.T) {
	fibs := []string{`0`, `1`, `1`, `2`, `3`, `5`, `8`, `13`, `21`, `34`, `55`}
	lucas := []string{`2`, `1`, `3`, `4`, `7`, `11`, `18`, `29`, `47`, `76`, `123`}
	for n := range uint64(len(fibs)) {
		assert.Equal(t, fibs[n], Fibonacci(n).String())
		assert.Equal(t, lucas[n], Lucas(n).String())
		fn, fn1 := FibonacciPair(n)
		ln, ln1 := LucasPair(n)
		assert.Equal(t, fibs[n], fn.String())
		assert.Equal(t, lucas[n], ln.String())
		if n == 0 {
			assert.Equal(t, `1`, fn1.String())
			assert.Equal(t, `-1`, ln1.String())
		} else {
			assert.Equal(t, fibs[n-1], fn1.String())
			assert.Equal(t, lucas[n-1], ln1.String())
		}
	}
	assert.Equal(t, `354224848179261915075`, Fibonacci(100).String())

	want := new(big.Int).MulRange(1, 300)
	assert.Equal(t, want.String(), Factorial(300).String())
	assert.Equal(t, `1`, Factorial(0).String())

	for _, tt := range [...]struct {
		n    int64
		k    uint64
		want string
	}{
		{5, 2, `10`}, {5, 0, `1`}, {5, 5, `1`}, {5, 6, `0`}, {0, 0, `1`},
		{-5, 2, `15`}, {-5, 3, `-35`}, {-1, 4, `1`}, {60, 30, `118264581564861424`},
	} {
		assert.Equal(t, tt.want, Binomial(New(tt.n), tt.k).String(), `C(%d, %d)`, tt.n, tt.k)
	}
	huge := MustParse(`100000000000000000000000`)
	wantHuge := new(big.Int).Div(new(big.Int).Mul(toBig(huge), new(big.Int).Sub(toBig(huge), big.NewInt(1))), big.NewInt(2))
	assert.Equal(t, wantHuge.String(), Binomial(huge, 2).String())
}

func TestInt_RemoveFactor(t *testing.T) {
	for _, tt := range [...]struct {
		x, f  int64
		want  string
		count uint64
	}{
		{0, 3, `0`, 0},
		{7, 3, `7`, 0},
		{-54, 3, `-2`, 3},
		{48, 4, `3`, 2},
		{96, 4, `6`, 2},
		{1000, 10, `1`, 3},
	} {
		r, n, err := New(tt.x).RemoveFactor(New(tt.f))
		require.NoError(t, err)
		assert.Equal(t, tt.want, r.String())
		assert.Equal(t, tt.count, n)
	}
}

func TestInt_textRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	for range 40 {
		x := randInt(r, 300)
		for base := 2; base <= 62; base++ {
			for _, b := range []int{base, -base} {
				if b < -36 {
					continue
				}
				s, err := x.Text(b)
				require.NoError(t, err)
				pb := b
				if pb < 0 {
					pb = -pb
				}
				y, err := ParseBase(s, pb)
				require.NoError(t, err)
				require.True(t, x.Eq(y), `base %d: %s`, b, s)
			}
		}
	}
	for _, base := range [...]int{-37, -1, 0, 1, 63} {
		_, err := New(10).Text(base)
		require.ErrorIs(t, err, numerr.ErrInvalidBase, `base %d`, base)
	}
	_, err := ParseBase(`1`, 63)
	require.ErrorIs(t, err, numerr.ErrInvalidBase)
	_, err = Parse(`12x`)
	require.ErrorIs(t, err, numerr.ErrParse)
	_, err = Parse(``)
	require.ErrorIs(t, err, numerr.ErrParse)
	_, err = Parse(`--1`)
	require.ErrorIs(t, err, numerr.ErrParse)

	v, err := ParseBase(`-0x1F`, 0)
	require.NoError(t, err)
	require.Equal(t, `-31`, v.String())
	s, err := New(-255).Text(-16)
	require.NoError(t, err)
	require.Equal(t, `-FF`, s)
	n, err := New(-255).SizeInBase(16)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	_, err = New(1).SizeInBase(-16)
	require.ErrorIs(t, err, numerr.ErrInvalidBase)
}

func TestInt_conversions(t *testing.T) {
	v, err := New(int64(math.MinInt64)).Int64()
	require.NoError(t, err)
	require.Equal(t, int64(math.MinInt64), v)

	big1 := New(uint64(math.MaxInt64)).Add(One())
	_, err = big1.Int64()
	require.ErrorIs(t, err, numerr.ErrRange)
	require.Equal(t, int64(math.MaxInt64), big1.SaturatedInt64())
	require.Equal(t, int64(math.MinInt64), big1.Neg().Sub(One()).SaturatedInt64())
	u, err := big1.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(1<<63), u)
	_, err = New(-1).Uint64()
	require.ErrorIs(t, err, numerr.ErrRange)

	f, exact := MustParse(`9007199254740993`).Float64()
	require.Equal(t, 9007199254740992.0, f)
	require.False(t, exact)
	f, exact = New(-12345).Float64()
	require.Equal(t, -12345.0, f)
	require.True(t, exact)

	z, err := FromFloat64(-1e20)
	require.NoError(t, err)
	require.Equal(t, `-100000000000000000000`, z.String())
	z, err = FromFloat64(3.99)
	require.NoError(t, err)
	require.Equal(t, `3`, z.String())
	z, err = FromFloat64(-0.5)
	require.NoError(t, err)
	require.Equal(t, `0`, z.String())
	_, err = FromFloat64(math.NaN())
	require.ErrorIs(t, err, numerr.ErrDomain)

	require.Equal(t, []uint{5}, New(5).Bits())
	require.Equal(t, `0`, Zero().String())
}

func TestInt_Format(t *testing.T) {
	x := New(-255)
	for _, tt := range [...]struct {
		format string
		want   string
	}{
		{`%d`, `-255`},
		{`%x`, `-ff`},
		{`%X`, `-FF`},
		{`%#x`, `-0xff`},
		{`%b`, `-11111111`},
		{`%o`, `-377`},
		{`%O`, `-0o377`},
		{`%8d`, `    -255`},
		{`%-8d|`, `-255    |`},
		{`%08d`, `-0000255`},
		{`%v`, `-255`},
		{`%s`, `-255`},
	} {
		assert.Equal(t, tt.want, fmt.Sprintf(tt.format, x), tt.format)
	}
	assert.Equal(t, `+7`, fmt.Sprintf(`%+d`, New(7)))
}

func TestInt_JSON(t *testing.T) {
	type doc struct {
		V *Int `json:"v"`
	}
	b, err := json.Marshal(doc{V: MustParse(`-123456789012345678901234567890`)})
	require.NoError(t, err)
	require.Equal(t, `{"v":"-123456789012345678901234567890"}`, string(b))

	var d doc
	require.NoError(t, json.Unmarshal(b, &d))
	require.Equal(t, `-123456789012345678901234567890`, d.V.String())

	require.NoError(t, json.Unmarshal([]byte(`{"v":12345678901234567890123}`), &d))
	require.Equal(t, `12345678901234567890123`, d.V.String())

	require.Error(t, json.Unmarshal([]byte(`{"v":1.5}`), &d))

	require.NoError(t, json.Unmarshal([]byte(`{"v":"010"}`), &d))
	require.Equal(t, `10`, d.V.String())
	require.ErrorIs(t, json.Unmarshal([]byte(`{"v":"0x10"}`), &d), numerr.ErrParse)

	b, err = json.Marshal(doc{})
	require.NoError(t, err)
	require.Equal(t, `{"v":null}`, string(b))
}
