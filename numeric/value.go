// Package numeric provides Value, a tagged union over the three numeric
// types, with the promotion rules Z < Q < F, and a registry of named
// operations over them.
//
// Binary operations promote both operands to the higher of their kinds
// before dispatch. Integers promote exactly to rationals, while either
// promotes to a float at the precision of the float operand.
package numeric

import (
	"strings"

	"github.com/joeycumines/go-bignum/bigf"
	"github.com/joeycumines/go-bignum/bigq"
	"github.com/joeycumines/go-bignum/bigz"
	"golang.org/x/exp/constraints"
)

// Kind identifies the active member of a Value.
type Kind uint8

const (
	// KindInt is an arbitrary-precision integer, Z.
	KindInt Kind = iota
	// KindRat is an arbitrary-precision rational, Q.
	KindRat
	// KindFloat is an arbitrary-precision binary float, F.
	KindFloat
)

// String returns the short name of the kind, e.g. "Z".
func (k Kind) String() string {
	switch k {
	case KindInt:
		return `Z`
	case KindRat:
		return `Q`
	case KindFloat:
		return `F`
	default:
		return `?`
	}
}

// Value holds exactly one of an integer, a rational, or a float. The zero
// value is the integer 0. Values are immutable, and may be shared.
type Value struct {
	z    *bigz.Int
	q    *bigq.Rat
	f    *bigf.Float
	kind Kind
}

// Int returns v as a Value.
func Int[T constraints.Integer](v T) Value {
	return Value{kind: KindInt, z: bigz.New(v)}
}

// Float returns v as a Value, at the default precision.
func Float[T constraints.Float](v T) Value {
	return Value{kind: KindFloat, f: bigf.New(float64(v))}
}

// FromInt wraps x, which must not be modified afterwards.
func FromInt(x *bigz.Int) Value {
	if x == nil {
		panic(`numeric: from int: nil operand`)
	}
	return Value{kind: KindInt, z: x}
}

// FromRat wraps x, which must not be modified afterwards.
func FromRat(x *bigq.Rat) Value {
	if x == nil {
		panic(`numeric: from rat: nil operand`)
	}
	return Value{kind: KindRat, q: x}
}

// FromFloat wraps x, which must not be modified afterwards.
func FromFloat(x *bigf.Float) Value {
	if x == nil {
		panic(`numeric: from float: nil operand`)
	}
	return Value{kind: KindFloat, f: x}
}

// Parse parses s, per ParseBase, in base 10.
func Parse(s string, prec uint) (Value, error) {
	return ParseBase(s, 10, prec)
}

// ParseBase parses s as a rational if it contains a '/', as a float if it
// looks like one (a '.', an exponent, inf or nan, in base 10 only), and
// otherwise as an integer in the given base. Floats are parsed at prec
// bits, or the default precision if prec is 0.
func ParseBase(s string, base int, prec uint) (Value, error) {
	t := strings.TrimSpace(s)
	switch {
	case strings.IndexByte(t, '/') >= 0:
		q, err := bigq.ParseBase(t, base)
		if err != nil {
			return Value{}, err
		}
		return FromRat(q), nil
	case (base == 10 || base == 0) && looksFloat(t):
		f, err := bigf.ParsePrec(t, prec)
		if err != nil {
			return Value{}, err
		}
		return FromFloat(f), nil
	}
	z, err := bigz.ParseBase(t, base)
	if err != nil {
		return Value{}, err
	}
	return FromInt(z), nil
}

func looksFloat(s string) bool {
	s = strings.ToLower(strings.TrimLeft(s, `+-`))
	switch {
	case len(s) >= 2 && s[0] == '0' && strings.IndexByte(`xbo`, s[1]) >= 0:
		return false
	case s == `inf`, s == `infinity`, s == `nan`:
		return true
	}
	return strings.ContainsAny(s, `.e`)
}

// MustParse is like Parse, at the default precision, but panics on error.
func MustParse(s string) Value {
	v, err := Parse(s, 0)
	if err != nil {
		panic(err)
	}
	return v
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Int returns the integer held by v, or nil if v is not an integer.
func (v Value) Int() *bigz.Int {
	if v.kind != KindInt {
		return nil
	}
	if v.z == nil {
		return bigz.Zero()
	}
	return v.z
}

// Rat returns the rational held by v, or nil if v is not a rational.
func (v Value) Rat() *bigq.Rat {
	if v.kind != KindRat {
		return nil
	}
	return v.q
}

// Float returns the float held by v, or nil if v is not a float.
func (v Value) Float() *bigf.Float {
	if v.kind != KindFloat {
		return nil
	}
	return v.f
}

// Prec returns the precision of a float, or 0 for the other kinds.
func (v Value) Prec() uint {
	if v.kind != KindFloat {
		return 0
	}
	return v.f.Prec()
}

// Sign returns -1, 0, or +1, per the sign of v. NaN yields 0.
func (v Value) Sign() int {
	switch v.kind {
	case KindRat:
		return v.q.Sign()
	case KindFloat:
		return v.f.Sign()
	default:
		return v.Int().Sign()
	}
}

// String formats v in base 10: integers as digits, rationals as "num/den",
// and floats in their shortest form.
func (v Value) String() string {
	s, _ := v.Text(10)
	return s
}

// Text formats v in the given base, per bigz.Int.Text and bigq.Rat.Text.
// Floats are always formatted in base 10, unless base is 16, which selects
// the 'p' format.
func (v Value) Text(base int) (string, error) {
	switch v.kind {
	case KindRat:
		return v.q.Text(base)
	case KindFloat:
		if base == 16 {
			return v.f.Text('p', 0), nil
		}
		return v.f.String(), nil
	default:
		return v.Int().Text(base)
	}
}

// toRat returns v as a rational, for integer or rational v.
func (v Value) toRat() *bigq.Rat {
	if v.kind == KindRat {
		return v.q
	}
	return bigq.FromInt(v.Int())
}

// toFloat returns v as a float, rounded to prec bits, unless it already is
// one.
func (v Value) toFloat(prec uint) *bigf.Float {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindRat:
		return bigf.FromRat(v.q, prec)
	default:
		return bigf.FromInt(v.Int(), prec)
	}
}

// Promote returns v converted to kind k, which must not be lower than the
// kind of v. Floats are created at prec bits, or the default precision, if
// prec is 0.
func (v Value) Promote(k Kind, prec uint) Value {
	switch {
	case k <= v.kind:
		return v
	case k == KindRat:
		return FromRat(v.toRat())
	default:
		return FromFloat(v.toFloat(prec))
	}
}

// promote converts x and y to their common kind.
func promote(x, y Value) (Value, Value, Kind) {
	k := max(x.kind, y.kind)
	prec := max(x.Prec(), y.Prec())
	return x.Promote(k, prec), y.Promote(k, prec), k
}
