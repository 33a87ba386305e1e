package numeric

import (
	"math"
	"testing"

	"github.com/joeycumines/go-bignum/bigz"
	"github.com/joeycumines/go-bignum/numerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBase(t *testing.T) {
	for _, tc := range [...]struct {
		s    string
		base int
		kind Kind
		want string
	}{
		{`42`, 10, KindInt, `42`},
		{` -17 `, 10, KindInt, `-17`},
		{`-7/14`, 10, KindRat, `-1/2`},
		{`6/3`, 10, KindRat, `2/1`},
		{`1.5`, 10, KindFloat, `1.5`},
		{`1e3`, 10, KindFloat, `1000`},
		{`-.25`, 10, KindFloat, `-0.25`},
		{`inf`, 10, KindFloat, `+Inf`},
		{`-Infinity`, 10, KindFloat, `-Inf`},
		{`nan`, 10, KindFloat, `NaN`},
		{`0x1f`, 0, KindInt, `31`},
		{`0b101`, 0, KindInt, `5`},
		{`ff`, 16, KindInt, `255`},
		{`e`, 16, KindInt, `14`},
		{`a/c`, 16, KindRat, `5/6`},
	} {
		t.Run(tc.s, func(t *testing.T) {
			v, err := ParseBase(tc.s, tc.base, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, v.Kind())
			assert.Equal(t, tc.want, v.String())
		})
	}
}

func TestParseBase_errors(t *testing.T) {
	for _, tc := range [...]struct {
		s    string
		base int
		err  error
	}{
		{``, 10, numerr.ErrParse},
		{`abc`, 10, numerr.ErrParse},
		{`1e`, 10, numerr.ErrParse},
		{`1.2.3`, 10, numerr.ErrParse},
		{`1/`, 10, numerr.ErrParse},
		{`1/0`, 10, numerr.ErrDivisionByZero},
		{`12`, 1, numerr.ErrInvalidBase},
		{`g`, 16, numerr.ErrParse},
	} {
		_, err := ParseBase(tc.s, tc.base, 0)
		assert.ErrorIs(t, err, tc.err, tc.s)
	}
	require.Panics(t, func() { MustParse(`x`) })
}

func TestParse_precision(t *testing.T) {
	v, err := Parse(`0.1`, 24)
	require.NoError(t, err)
	require.Equal(t, uint(24), v.Prec())
	require.Equal(t, `0.1`, v.String())
	require.Equal(t, uint(0), MustParse(`1/3`).Prec())
	require.Equal(t, uint(0), Int(1).Prec())
}

func TestValue_zero(t *testing.T) {
	var v Value
	require.Equal(t, KindInt, v.Kind())
	require.Equal(t, `0`, v.String())
	require.Equal(t, 0, v.Sign())
	require.True(t, Equal(v, Int(0)))
	require.Nil(t, v.Rat())
	require.Nil(t, v.Float())
	require.Equal(t, `1`, Add(v, Int(1)).String())
}

func TestValue_constructors(t *testing.T) {
	require.Equal(t, `-5`, Int(int8(-5)).String())
	require.Equal(t, `18446744073709551615`, Int(uint64(math.MaxUint64)).String())
	require.Equal(t, `0.5`, Float(float32(0.5)).String())
	require.Equal(t, `Z Q F ?`, KindInt.String()+` `+KindRat.String()+` `+KindFloat.String()+` `+Kind(9).String())
	require.Panics(t, func() { FromInt(nil) })
	require.Panics(t, func() { FromRat(nil) })
	require.Panics(t, func() { FromFloat(nil) })
	z := bigz.New(3)
	require.Same(t, z, FromInt(z).Int())
}

func TestValue_Text(t *testing.T) {
	s, err := Int(255).Text(16)
	require.NoError(t, err)
	require.Equal(t, `ff`, s)
	s, err = MustParse(`1/2`).Text(2)
	require.NoError(t, err)
	require.Equal(t, `1/10`, s)
	s, err = Float(1.5).Text(16)
	require.NoError(t, err)
	require.Equal(t, `0x.cp+1`, s)
	s, err = Float(1.5).Text(2)
	require.NoError(t, err)
	require.Equal(t, `1.5`, s)
	_, err = Int(1).Text(99)
	require.ErrorIs(t, err, numerr.ErrInvalidBase)
}

func TestValue_Promote(t *testing.T) {
	v := Int(3).Promote(KindRat, 0)
	require.Equal(t, KindRat, v.Kind())
	require.Equal(t, `3/1`, v.String())
	v = Int(3).Promote(KindFloat, 10)
	require.Equal(t, KindFloat, v.Kind())
	require.Equal(t, uint(10), v.Prec())
	v = MustParse(`1/3`).Promote(KindFloat, 24)
	require.Equal(t, `0.33333334`, v.String())
	// never demotes
	v = Float(2.0).Promote(KindInt, 0)
	require.Equal(t, KindFloat, v.Kind())
}

func TestArith_promotion(t *testing.T) {
	for _, tc := range [...]struct {
		name string
		v    Value
		kind Kind
		want string
	}{
		{`int add`, Add(Int(2), Int(3)), KindInt, `5`},
		{`int rat add`, Add(Int(1), MustParse(`1/2`)), KindRat, `3/2`},
		{`rat int sub`, Sub(MustParse(`1/2`), Int(1)), KindRat, `-1/2`},
		{`int float add`, Add(Int(1), Float(0.5)), KindFloat, `1.5`},
		{`rat float mul`, Mul(MustParse(`1/4`), Float(2.0)), KindFloat, `0.5`},
		{`rat mul`, Mul(MustParse(`2/3`), Int(3)), KindRat, `2/1`},
		{`neg`, Neg(MustParse(`2/3`)), KindRat, `-2/3`},
		{`abs`, Abs(Float(-2.5)), KindFloat, `2.5`},
		{`abs int`, Abs(Int(-9)), KindInt, `9`},
		{`neg float`, Neg(Float(0.0)), KindFloat, `-0`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.v.Kind())
			assert.Equal(t, tc.want, tc.v.String())
		})
	}
}

func TestArith_floatPrecision(t *testing.T) {
	x, err := Parse(`1.5`, 100)
	require.NoError(t, err)
	y, err := Parse(`2`, 24)
	require.NoError(t, err)
	require.Equal(t, KindInt, y.Kind())
	require.Equal(t, uint(100), Add(x, y).Prec())
	y, err = Parse(`2.0`, 200)
	require.NoError(t, err)
	require.Equal(t, uint(200), Mul(x, y).Prec())
	require.Equal(t, uint(100), Mul(x, MustParse(`1/3`)).Prec())
}

func TestDiv(t *testing.T) {
	v, err := Div(Int(7), Int(-2))
	require.NoError(t, err)
	require.Equal(t, `-4`, v.String())
	v, err = Div(Int(1), Int(3))
	require.NoError(t, err)
	require.Equal(t, `0`, v.String())
	v, err = Div(MustParse(`1/2`), Int(3))
	require.NoError(t, err)
	require.Equal(t, `1/6`, v.String())
	v, err = Div(Float(1.0), Int(0))
	require.NoError(t, err)
	require.Equal(t, `+Inf`, v.String())
	v, err = Div(Float(0.0), Int(0))
	require.NoError(t, err)
	require.Equal(t, `NaN`, v.String())
	_, err = Div(Int(1), Int(0))
	require.ErrorIs(t, err, numerr.ErrDivisionByZero)
	_, err = Div(MustParse(`1/2`), Int(0))
	require.ErrorIs(t, err, numerr.ErrDivisionByZero)
}

func TestMod(t *testing.T) {
	v, err := Mod(Int(-7), Int(2))
	require.NoError(t, err)
	require.Equal(t, `1`, v.String())
	v, err = Mod(Int(7), Int(-2))
	require.NoError(t, err)
	require.Equal(t, `-1`, v.String())
	_, err = Mod(Int(7), Int(0))
	require.ErrorIs(t, err, numerr.ErrDivisionByZero)
	_, err = Mod(Float(7.0), Int(2))
	require.ErrorIs(t, err, numerr.ErrDomain)
	_, err = Mod(Int(7), MustParse(`1/2`))
	require.ErrorIs(t, err, numerr.ErrDomain)
}

func TestPow(t *testing.T) {
	v, err := Pow(Int(2), Int(100))
	require.NoError(t, err)
	require.Equal(t, `1267650600228229401496703205376`, v.String())
	v, err = Pow(MustParse(`2/3`), Int(-2))
	require.NoError(t, err)
	require.Equal(t, `9/4`, v.String())
	v, err = Pow(Float(1.5), Int(2))
	require.NoError(t, err)
	require.Equal(t, `2.25`, v.String())
	_, err = Pow(Int(2), Int(-1))
	require.ErrorIs(t, err, numerr.ErrRange)
	_, err = Pow(Int(2), Float(2.0))
	require.ErrorIs(t, err, numerr.ErrRange)
	_, err = Pow(Int(2), MustParse(`1/2`))
	require.ErrorIs(t, err, numerr.ErrRange)
	_, err = Pow(Int(2), MustParse(`100000000000000000000`))
	require.ErrorIs(t, err, numerr.ErrRange)
	_, err = Pow(MustParse(`0/1`), Int(-1))
	require.ErrorIs(t, err, numerr.ErrDivisionByZero)
}

func TestCmp(t *testing.T) {
	for _, tc := range [...]struct {
		x, y string
		want int
		ok   bool
	}{
		{`1`, `2`, -1, true},
		{`1`, `1/2`, 1, true},
		{`1/3`, `2/6`, 0, true},
		{`1/2`, `0.5`, 0, true},
		// 0.1 rounds up, at 64 bits
		{`0.1`, `1/10`, 1, true},
		{`1/10`, `0.1`, -1, true},
		{`inf`, `1000000000000000000000000000000`, 1, true},
		{`-7`, `-inf`, 1, true},
		{`nan`, `1`, 0, false},
		{`1`, `nan`, 0, false},
		{`nan`, `nan`, 0, false},
		{`2.5`, `2.5`, 0, true},
		{`-0.0`, `0`, 0, true},
	} {
		c, ok := Cmp(MustParse(tc.x), MustParse(tc.y))
		assert.Equal(t, tc.want, c, `%s <=> %s`, tc.x, tc.y)
		assert.Equal(t, tc.ok, ok, `%s <=> %s`, tc.x, tc.y)
	}
	require.True(t, Equal(Int(2), MustParse(`4/2`)))
	require.True(t, Equal(Float(0.5), MustParse(`1/2`)))
	require.False(t, Equal(MustParse(`nan`), MustParse(`nan`)))
}

func TestNormalize(t *testing.T) {
	v := Normalize(MustParse(`4/2`))
	require.Equal(t, KindInt, v.Kind())
	require.Equal(t, `2`, v.String())
	v = Normalize(MustParse(`3/2`))
	require.Equal(t, KindRat, v.Kind())
	v = Normalize(Float(2.0))
	require.Equal(t, KindFloat, v.Kind())
}

func TestValue_Sign(t *testing.T) {
	require.Equal(t, -1, Int(-3).Sign())
	require.Equal(t, 1, MustParse(`1/9`).Sign())
	require.Equal(t, 0, MustParse(`0.0`).Sign())
	require.Equal(t, 0, MustParse(`nan`).Sign())
	require.Equal(t, -1, MustParse(`-inf`).Sign())
}
