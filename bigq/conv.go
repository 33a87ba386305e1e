package bigq

import (
	"strconv"
	"strings"

	"github.com/joeycumines/go-bignum/bigz"
	"github.com/joeycumines/go-bignum/internal/limb"
	"github.com/joeycumines/go-bignum/numerr"
	"github.com/joeycumines/go-utilpkg/jsonenc"
	"github.com/pkg/errors"
)

// Parse parses a base 10 fraction of the form "num/den". The numerator may
// carry a leading '-', as may the denominator.
func Parse(s string) (*Rat, error) {
	return ParseBase(s, 10)
}

// ParseBase is like Parse, for integers in the given base, 0 or [2, 62], per
// bigz.ParseBase. A zero denominator fails with numerr.ErrDivisionByZero.
func ParseBase(s string, base int) (*Rat, error) {
	z, err := parse(s, base)
	if err != nil {
		return nil, errors.Wrapf(err, `bigq: parse %q`, s)
	}
	return z, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Rat {
	z, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return z
}

func parse(s string, base int) (*Rat, error) {
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return nil, numerr.New(numerr.Parse, `bigq.Parse`, `missing '/'`)
	}
	num, err := bigz.ParseBase(s[:i], base)
	if err != nil {
		return nil, err
	}
	den, err := bigz.ParseBase(s[i+1:], base)
	if err != nil {
		return nil, err
	}
	if den.IsZero() {
		return nil, errZeroDenominator(`bigq.Parse`)
	}
	return frac(num, den), nil
}

// Append appends "num/den" in the given base to buf, per bigz.Int.Append.
func (x *Rat) Append(buf []byte, base int) ([]byte, error) {
	buf, err := x.num.Append(buf, base)
	if err != nil {
		return buf, err
	}
	buf = append(buf, '/')
	return x.denom().Append(buf, base)
}

// Text returns "num/den" in the given base. The denominator is always
// present, so that the result re-parses.
func (x *Rat) Text(base int) (string, error) {
	b, err := x.Append(nil, base)
	if err != nil {
		return ``, err
	}
	return string(b), nil
}

// String returns x as a base 10 "num/den".
func (x *Rat) String() string {
	if x == nil {
		return `<nil>`
	}
	b, _ := x.Append(nil, 10)
	return string(b)
}

// RatString is like String, but omits the denominator if it is 1.
func (x *Rat) RatString() string {
	if x.IsInt() {
		return x.num.String()
	}
	return x.String()
}

// Float64 returns the float64 nearest to x, and whether it is exact.
func (x *Rat) Float64() (float64, bool) {
	f, exact := limb.Quo64(x.num.Nat(), x.denom())
	if x.num.Sign() < 0 {
		f = -f
	}
	return f, exact
}

// MarshalText implements encoding.TextMarshaler.
func (x *Rat) MarshalText() ([]byte, error) {
	if x == nil {
		return []byte(`<nil>`), nil
	}
	return x.Append(nil, 10)
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting decimal
// "num/den", or a bare integer.
func (x *Rat) UnmarshalText(text []byte) error {
	s := string(text)
	if !strings.Contains(s, `/`) {
		s += `/1`
	}
	v, err := ParseBase(s, 10)
	if err != nil {
		return err
	}
	*x = *v
	return nil
}

// MarshalJSON encodes x as a "num/den" JSON string.
func (x *Rat) MarshalJSON() ([]byte, error) {
	if x == nil {
		return []byte(`null`), nil
	}
	return jsonenc.AppendString(nil, x.String()), nil
}

// UnmarshalJSON decodes a JSON string, per UnmarshalText. A null is a no-op.
func (x *Rat) UnmarshalJSON(b []byte) error {
	if string(b) == `null` {
		return nil
	}
	// note: >=3 because empty string is invalid
	if len(b) >= 3 && b[0] == '"' && b[len(b)-1] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return numerr.Wrap(err, numerr.Parse, `bigq.UnmarshalJSON`, `invalid string`)
		}
		return x.UnmarshalText([]byte(s))
	}
	return numerr.New(numerr.Parse, `bigq.UnmarshalJSON`, `invalid value: `+string(b))
}
