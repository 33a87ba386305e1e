package bigz

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joeycumines/go-bignum/internal/limb"
	"github.com/joeycumines/go-bignum/numerr"
	"github.com/joeycumines/go-utilpkg/jsonenc"
	"github.com/pkg/errors"
)

// Parse parses a base 10 integer, with an optional leading '-'.
func Parse(s string) (*Int, error) {
	return ParseBase(s, 10)
}

// ParseBase parses an integer in the given base, 0 or [2, 62], with an
// optional leading '-'. A base of 0 selects the base from the prefix, per
// limb.DetectBase. ASCII whitespace is ignored, as with GMP.
func ParseBase(s string, base int) (*Int, error) {
	z := new(Int)
	if err := z.setString(s, base); err != nil {
		return nil, errors.Wrapf(err, `bigz: parse %q`, s)
	}
	return z, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Int {
	z, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return z
}

func (z *Int) setString(s string, base int) error {
	t := strings.TrimLeft(s, " \t\n\v\f\r")
	neg := false
	if len(t) > 0 && t[0] == '-' {
		neg = true
		t = t[1:]
	}
	abs, err := z.abs.SetString(t, base)
	if err != nil {
		return err
	}
	z.abs = abs
	z.neg = neg && len(abs) > 0
	return nil
}

// Append appends the representation of x in the given base to buf. Bases
// [2, 62] are supported, and [-36, -2] for upper case digits.
func (x *Int) Append(buf []byte, base int) ([]byte, error) {
	if err := limb.CheckBase(base); err != nil {
		return buf, errors.Wrap(err, `bigz: append`)
	}
	if x.neg {
		buf = append(buf, '-')
	}
	return x.abs.Append(buf, base)
}

// Text returns the representation of x in the given base, per Append.
func (x *Int) Text(base int) (string, error) {
	b, err := x.Append(nil, base)
	if err != nil {
		return ``, err
	}
	return string(b), nil
}

// String returns the base 10 representation of x.
func (x *Int) String() string {
	if x == nil {
		return `<nil>`
	}
	b, _ := x.Append(nil, 10)
	return string(b)
}

// SizeInBase returns the number of digits of |x| in the given base, [2, 62],
// excluding any sign.
func (x *Int) SizeInBase(base int) (int, error) {
	n, err := x.abs.SizeInBase(base)
	if err != nil {
		return 0, errors.Wrap(err, `bigz: size in base`)
	}
	return n, nil
}

// IsInt64 reports whether x can be represented as an int64.
func (x *Int) IsInt64() bool {
	if len(x.abs) <= 64/limb.W {
		w := int64(x.abs.Uint64())
		return w >= 0 || x.neg && w == -w
	}
	return false
}

// IsUint64 reports whether x can be represented as a uint64.
func (x *Int) IsUint64() bool {
	return !x.neg && x.abs.IsUint64()
}

// Int64 returns x as an int64, failing with numerr.ErrRange if it does not
// fit. See also SaturatedInt64.
func (x *Int) Int64() (int64, error) {
	if !x.IsInt64() {
		return 0, numerr.New(numerr.Range, `bigz.Int64`, `value out of range`)
	}
	v := int64(x.abs.Uint64())
	if x.neg {
		v = -v
	}
	return v, nil
}

// Uint64 returns x as a uint64, failing with numerr.ErrRange if it does not
// fit.
func (x *Int) Uint64() (uint64, error) {
	if !x.IsUint64() {
		return 0, numerr.New(numerr.Range, `bigz.Uint64`, `value out of range`)
	}
	return x.abs.Uint64(), nil
}

// SaturatedInt64 returns x clamped to [math.MinInt64, math.MaxInt64].
func (x *Int) SaturatedInt64() int64 {
	v, err := x.Int64()
	if err != nil {
		if x.neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return v
}

// Float64 returns the float64 nearest to x, and whether it is exact.
// Magnitudes too large for a float64 yield ±Inf.
func (x *Int) Float64() (float64, bool) {
	f, exact := limb.Quo64(x.abs, natOne)
	if x.neg {
		f = -f
	}
	return f, exact
}

// FromFloat64 returns the integer part of f, truncated towards zero.
// NaN and infinities fail with numerr.ErrDomain.
func FromFloat64(f float64) (*Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, numerr.New(numerr.Domain, `bigz.FromFloat64`, `not a finite value`)
	}
	f = math.Trunc(f)
	neg := f < 0
	if neg {
		f = -f
	}
	frac, exp := math.Frexp(f)
	if exp <= 0 {
		return new(Int), nil
	}
	// f == mant * 2**(exp-53)
	mant := uint64(math.Ldexp(frac, 53))
	z := &Int{abs: limb.Nat(nil).SetUint64(mant)}
	if exp > 53 {
		z.abs = z.abs.Shl(z.abs, uint(exp-53))
	} else {
		z.abs = z.abs.Shr(z.abs, uint(53-exp))
	}
	z.neg = neg && len(z.abs) > 0
	return z, nil
}

// Bits returns a copy of the little-endian words of |x|.
func (x *Int) Bits() []uint {
	b := make([]uint, len(x.abs))
	for i, w := range x.abs {
		b[i] = uint(w)
	}
	return b
}

// Format implements fmt.Formatter, supporting the verbs b, o, O, d, x, X,
// s and v, and the flags +, space, #, - and 0, and width.
func (x *Int) Format(s fmt.State, ch rune) {
	var base int
	switch ch {
	case 'b':
		base = 2
	case 'o', 'O':
		base = 8
	case 'd', 's', 'v':
		base = 10
	case 'x':
		base = 16
	case 'X':
		base = -16
	default:
		_, _ = fmt.Fprintf(s, `%%!%c(bigz.Int=%s)`, ch, x.String())
		return
	}
	if x == nil {
		_, _ = fmt.Fprint(s, `<nil>`)
		return
	}

	var sign string
	switch {
	case x.neg:
		sign = `-`
	case s.Flag('+'):
		sign = `+`
	case s.Flag(' '):
		sign = ` `
	}

	var prefix string
	if s.Flag('#') || ch == 'O' {
		switch ch {
		case 'b':
			prefix = `0b`
		case 'o':
			prefix = `0`
		case 'O':
			prefix = `0o`
		case 'x':
			prefix = `0x`
		case 'X':
			prefix = `0X`
		}
	}

	digits, _ := x.abs.Append(nil, base)

	var pad int
	if width, ok := s.Width(); ok {
		pad = width - len(sign) - len(prefix) - len(digits)
	}
	var buf bytes.Buffer
	switch {
	case pad <= 0:
		buf.WriteString(sign)
		buf.WriteString(prefix)
		buf.Write(digits)
	case s.Flag('-'):
		buf.WriteString(sign)
		buf.WriteString(prefix)
		buf.Write(digits)
		buf.Write(bytes.Repeat([]byte{' '}, pad))
	case s.Flag('0'):
		buf.WriteString(sign)
		buf.WriteString(prefix)
		buf.Write(bytes.Repeat([]byte{'0'}, pad))
		buf.Write(digits)
	default:
		buf.Write(bytes.Repeat([]byte{' '}, pad))
		buf.WriteString(sign)
		buf.WriteString(prefix)
		buf.Write(digits)
	}
	_, _ = s.Write(buf.Bytes())
}

// MarshalText implements encoding.TextMarshaler.
func (x *Int) MarshalText() ([]byte, error) {
	if x == nil {
		return []byte(`<nil>`), nil
	}
	return x.Append(nil, 10)
}

// UnmarshalText implements encoding.TextUnmarshaler. The text is decimal,
// as written by MarshalText.
func (x *Int) UnmarshalText(text []byte) error {
	if err := x.setString(string(text), 10); err != nil {
		return errors.Wrapf(err, `bigz: unmarshal %q`, text)
	}
	return nil
}

// MarshalJSON encodes x as a JSON string of decimal digits, to avoid loss of
// precision in consumers that decode numbers as doubles.
func (x *Int) MarshalJSON() ([]byte, error) {
	if x == nil {
		return []byte(`null`), nil
	}
	return jsonenc.AppendString(nil, x.String()), nil
}

// UnmarshalJSON accepts either a JSON string or a JSON number, the latter
// only if it is integral. A null is a no-op.
func (x *Int) UnmarshalJSON(b []byte) error {
	if string(b) == `null` {
		return nil
	}
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return numerr.Wrap(err, numerr.Parse, `bigz.UnmarshalJSON`, `invalid string`)
		}
		return x.UnmarshalText([]byte(s))
	}
	if err := x.setString(string(b), 10); err != nil {
		return errors.Wrapf(err, `bigz: unmarshal json %s`, b)
	}
	return nil
}
