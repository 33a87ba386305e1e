package limb

import (
	"errors"
	"math"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/joeycumines/go-bignum/numerr"
)

func toBig(x Nat) *big.Int {
	return new(big.Int).SetBits(append([]big.Word(nil), toBigWords(x)...))
}

func fromBig(x *big.Int) Nat {
	return Nat(nil).Set(fromBigWords(x.Bits()))
}

func randNat(r *rand.Rand, words int) Nat {
	z := make(Nat, words)
	for i := range z {
		z[i] = Word(r.Uint64())
	}
	return z.Norm()
}

func assertEqualBig(t *testing.T, op string, got Nat, want *big.Int) {
	t.Helper()
	if len(got) > 0 && got[len(got)-1] == 0 {
		t.Fatalf(`%s: result not normalized: %v`, op, got)
	}
	if toBig(got).Cmp(want) != 0 {
		t.Fatalf(`%s: got %s, want %s`, op, toBig(got), want)
	}
}

func TestNat_arithmeticAgainstBig(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	sizes := [...]int{0, 1, 2, 3, 7, 39, 40, 41, 97, 130}
	for _, m := range sizes {
		for _, n := range sizes {
			x, y := randNat(r, m), randNat(r, n)
			bx, by := toBig(x), toBig(y)

			assertEqualBig(t, `add`, Nat(nil).Add(x, y), new(big.Int).Add(bx, by))
			assertEqualBig(t, `mul`, Nat(nil).Mul(x, y), new(big.Int).Mul(bx, by))
			if x.Cmp(y) >= 0 {
				assertEqualBig(t, `sub`, Nat(nil).Sub(x, y), new(big.Int).Sub(bx, by))
			}
			if len(y) > 0 {
				q, rem := Nat(nil).Div(nil, x, y)
				wq, wr := new(big.Int).QuoRem(bx, by, new(big.Int))
				assertEqualBig(t, `div quo`, q, wq)
				assertEqualBig(t, `div rem`, rem, wr)
			}
			assertEqualBig(t, `and`, Nat(nil).And(x, y), new(big.Int).And(bx, by))
			assertEqualBig(t, `or`, Nat(nil).Or(x, y), new(big.Int).Or(bx, by))
			assertEqualBig(t, `xor`, Nat(nil).Xor(x, y), new(big.Int).Xor(bx, by))
			assertEqualBig(t, `andnot`, Nat(nil).AndNot(x, y), new(big.Int).AndNot(bx, by))
			if got, want := x.Cmp(y), bx.Cmp(by); got != want {
				t.Fatalf(`cmp: got %d, want %d`, got, want)
			}
		}
	}
}

func TestNat_mulFFT(t *testing.T) {
	old := fftThreshold
	defer func() { fftThreshold = old }()
	fftThreshold = 60

	r := rand.New(rand.NewPCG(3, 4))
	x, y := randNat(r, 300), randNat(r, 90)
	assertEqualBig(t, `mul fft`, Nat(nil).Mul(x, y), new(big.Int).Mul(toBig(x), toBig(y)))
}

func TestNat_aliasing(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	x := randNat(r, 50)
	y := randNat(r, 45)
	want := new(big.Int).Mul(toBig(x), toBig(y))
	x = x.Mul(x, y)
	assertEqualBig(t, `mul aliased`, x, want)

	z := randNat(r, 20)
	want = new(big.Int).Add(toBig(z), toBig(z))
	z = z.Add(z, z)
	assertEqualBig(t, `add aliased`, z, want)

	q := randNat(r, 30)
	d := randNat(r, 4)
	wq, wr := new(big.Int).QuoRem(toBig(q), toBig(d), new(big.Int))
	q, d = q.Div(d, q, d)
	assertEqualBig(t, `div aliased quo`, q, wq)
	assertEqualBig(t, `div aliased rem`, d, wr)
}

func TestNat_shifts(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	for _, s := range [...]uint{0, 1, 13, W - 1, W, W + 1, 3*W + 5} {
		x := randNat(r, 5)
		assertEqualBig(t, `shl`, Nat(nil).Shl(x, s), new(big.Int).Lsh(toBig(x), s))
		assertEqualBig(t, `shr`, Nat(nil).Shr(x, s), new(big.Int).Rsh(toBig(x), s))
		y := x.Clone()
		assertEqualBig(t, `shl in place`, y.Shl(y, s), new(big.Int).Lsh(toBig(x), s))
	}
}

func TestNat_bits(t *testing.T) {
	x := Nat(nil).SetUint64(0b1011_0000)
	if x.Bit(4) != 1 || x.Bit(6) != 0 || x.Bit(500) != 0 {
		t.Error(`unexpected bit values`)
	}
	if x.TrailingZeroBits() != 4 {
		t.Error(x.TrailingZeroBits())
	}
	if x.Sticky(4) != 0 || x.Sticky(5) != 1 || x.Sticky(1000) != 1 || Nat(nil).Sticky(3) != 0 {
		t.Error(`unexpected sticky values`)
	}
	y := Nat(nil).SetBit(x, 200, 1)
	if y.BitLen() != 201 {
		t.Error(y.BitLen())
	}
	y = y.SetBit(y, 200, 0)
	if y.Cmp(x) != 0 {
		t.Error(y)
	}
	if x.PopCount() != 3 {
		t.Error(x.PopCount())
	}
	if !Nat(nil).SetWord(64).IsPow2() || x.IsPow2() || Nat(nil).IsPow2() {
		t.Error(`unexpected pow2`)
	}
}

func TestNat_roots(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 10))
	for i := range 50 {
		x := randNat(r, 1+i%9)
		want := new(big.Int).Sqrt(toBig(x))
		assertEqualBig(t, `sqrt`, Nat(nil).Sqrt(x), want)

		for _, n := range [...]uint{3, 5, 7} {
			root := Nat(nil).Root(x, n)
			// root**n <= x < (root+1)**n
			lo := Nat(nil).Pow(root, uint64(n))
			hi := Nat(nil).Pow(Nat(nil).AddWord(root, 1), uint64(n))
			if lo.Cmp(x) > 0 || hi.Cmp(x) <= 0 {
				t.Fatalf(`root %d of %s: got %s`, n, x, root)
			}
		}
	}
	if !Nat(nil).SetWord(144).IsSquare() || Nat(nil).SetWord(145).IsSquare() {
		t.Error(`unexpected square`)
	}
}

func TestNat_expMod(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	for range 20 {
		x, y, m := randNat(r, 4), randNat(r, 2), randNat(r, 3)
		if len(m) == 0 {
			continue
		}
		want := new(big.Int).Exp(toBig(x), toBig(y), toBig(m))
		assertEqualBig(t, `expmod`, Nat(nil).ExpMod(x, y, m), want)
	}
	assertEqualBig(t, `pow`, Nat(nil).Pow(Nat{3}, 100), new(big.Int).Exp(big.NewInt(3), big.NewInt(100), nil))
	assertEqualBig(t, `pow2`, Nat(nil).Pow(Nat{8}, 30), new(big.Int).Lsh(big.NewInt(1), 90))
}

func TestNat_textRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(13, 14))
	for _, words := range [...]int{0, 1, 2, 9} {
		x := randNat(r, words)
		for base := 2; base <= MaxBase; base++ {
			s, err := x.Text(base)
			if err != nil {
				t.Fatal(err)
			}
			if base <= 36 {
				if want := toBig(x).Text(base); s != want {
					t.Fatalf(`base %d: got %s, want %s`, base, s, want)
				}
			}
			y, err := Nat(nil).SetString(s, base)
			if err != nil {
				t.Fatal(err)
			}
			if y.Cmp(x) != 0 {
				t.Fatalf(`base %d: round trip %s != %s`, base, y, x)
			}
			if n, err := x.SizeInBase(base); err != nil || n != len(s) {
				t.Fatalf(`base %d: size %d, %v, want %d`, base, n, err, len(s))
			}
		}
	}
}

func TestNat_textUpper(t *testing.T) {
	s, err := Nat(nil).SetWord(0xbeef).Text(-16)
	if err != nil || s != `BEEF` {
		t.Fatal(s, err)
	}
	s, err = Nat(nil).SetWord(61).Text(62)
	if err != nil || s != `z` {
		t.Fatal(s, err)
	}
	s, err = Nat(nil).SetWord(35).Text(62)
	if err != nil || s != `Z` {
		t.Fatal(s, err)
	}
}

func TestNat_invalidBase(t *testing.T) {
	for _, base := range [...]int{-37, -1, 0, 1, 63} {
		if _, err := Nat(nil).SetWord(5).Text(base); !errors.Is(err, numerr.ErrInvalidBase) {
			t.Errorf(`base %d: %v`, base, err)
		}
	}
	for _, base := range [...]int{-2, 1, 63} {
		if _, err := Nat(nil).SetString(`1`, base); !errors.Is(err, numerr.ErrInvalidBase) {
			t.Errorf(`base %d: %v`, base, err)
		}
	}
}

func TestNat_SetString(t *testing.T) {
	for _, tt := range [...]struct {
		s    string
		base int
		want uint64
		err  error
	}{
		{`123`, 10, 123, nil},
		{` 1 2 3 `, 10, 123, nil},
		{`ff`, 16, 255, nil},
		{`FF`, 16, 255, nil},
		{`0xff`, 0, 255, nil},
		{`0b101`, 0, 5, nil},
		{`0o17`, 0, 15, nil},
		{`017`, 0, 15, nil},
		{`0`, 0, 0, nil},
		{`  0 `, 0, 0, nil},
		{`17`, 0, 17, nil},
		{`a`, 62, 36, nil},
		{`A`, 62, 10, nil},
		{``, 10, 0, numerr.ErrParse},
		{`   `, 10, 0, numerr.ErrParse},
		{`0x`, 0, 0, numerr.ErrParse},
		{`12a`, 10, 0, numerr.ErrParse},
		{`-1`, 10, 0, numerr.ErrParse},
		{`1_000`, 10, 0, numerr.ErrParse},
	} {
		got, err := Nat(nil).SetString(tt.s, tt.base)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Errorf(`%q base %d: got err %v, want %v`, tt.s, tt.base, err, tt.err)
			}
			continue
		}
		if err != nil || got.Uint64() != tt.want || !got.IsUint64() {
			t.Errorf(`%q base %d: got %v, %v, want %d`, tt.s, tt.base, got, err, tt.want)
		}
	}
}

func TestQuo64(t *testing.T) {
	r := rand.New(rand.NewPCG(15, 16))
	for range 200 {
		a, b := randNat(r, 1+r.IntN(4)), randNat(r, 1+r.IntN(4))
		if len(b) == 0 {
			continue
		}
		got, exact := Quo64(a, b)
		want, acc := new(big.Rat).SetFrac(toBig(a), toBig(b)).Float64()
		if got != want || exact != acc {
			t.Fatalf(`%s/%s: got %g %v, want %g %v`, a, b, got, exact, want, acc)
		}
	}
	if f, exact := Quo64(Nat{1}, Nat{3}); f != 1.0/3 || exact {
		t.Error(f, exact)
	}
	huge := Nat(nil).Shl(natOne, 2000)
	if f, _ := Quo64(huge, natOne); !math.IsInf(f, 1) {
		t.Error(f)
	}
	if f, exact := Quo64(natOne, huge); f != 0 || exact {
		t.Error(f, exact)
	}
}

func TestNat_AppendPadded(t *testing.T) {
	if got := string(Nat(nil).SetWord(42).AppendPadded([]byte(`x`), 5)); got != `x00042` {
		t.Error(got)
	}
	if got := string(Nat(nil).SetWord(123456).AppendPadded(nil, 3)); got != `123456` {
		t.Error(got)
	}
}
