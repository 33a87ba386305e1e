package bigf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joeycumines/go-bignum/internal/limb"
	"github.com/joeycumines/go-bignum/numerr"
	"github.com/joeycumines/go-utilpkg/jsonenc"
	"github.com/pkg/errors"
)

const (
	strPosInf = `Infinity`
	strNegInf = `-Infinity`
	strNaN    = `NaN`

	// maxDecimalPoint bounds the position of the decimal point, beyond which
	// a parsed value is certain to overflow (or underflow), as it exceeds
	// MaxExp * log10(2).
	maxDecimalPoint = 646456995

	// maxExactDecimalExp is the largest decimal exponent magnitude that is
	// parsed by way of an exact integer power of ten.
	maxExactDecimalExp = 1 << 12

	log10_2 = 0.30102999566398119521373889472449302676818988146210854131 // https://oeis.org/A007524
)

// atMostSignificantDecimals returns the number of significant decimal digits
// that suffice to represent any value of the given binary precision, i.e.
// ceil(1 + bits*log10(2)). For example, 17 for float64.
func atMostSignificantDecimals(bits uint) uint {
	return uint(math.Ceil(1 + (float64(bits) * log10_2)))
}

// Parse parses s at the default precision, per ParsePrec.
func Parse(s string) (*Float, error) {
	return ParsePrec(s, 0)
}

// ParsePrec parses s as a decimal floating point number, correctly rounded
// to prec bits (or the default precision, if prec is 0). The accepted forms
// are an optional sign, followed by either a decimal mantissa with an
// optional e or E exponent, or one of inf, infinity, or nan (case
// insensitive). Surrounding whitespace is ignored. Malformed input fails
// with numerr.ErrParse.
func ParsePrec(s string, prec uint) (*Float, error) {
	z := &Float{prec: checkPrec(`parse`, prec)}
	if err := z.parse(strings.TrimSpace(s)); err != nil {
		return nil, errors.Wrapf(err, `bigf: parse %q`, s)
	}
	return z, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Float {
	z, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return z
}

func errSyntax(detail string) error {
	return numerr.New(numerr.Parse, `bigf.Parse`, detail)
}

func (z *Float) parse(s string) error {
	if s != `` && (s[0] == '+' || s[0] == '-') {
		z.neg = s[0] == '-'
		s = s[1:]
	}

	switch strings.ToLower(s) {
	case `inf`, `infinity`:
		z.form = inf
		return nil
	case `nan`:
		z.form, z.neg = nan, false
		return nil
	}

	var (
		digits   []byte
		dexp     int64
		seenDot  bool
		seenDigs bool
		i        int
	)
loop:
	for ; i < len(s); i++ {
		switch c := s[i]; {
		case '0' <= c && c <= '9':
			seenDigs = true
			if seenDot {
				dexp--
			}
			if c == '0' && len(digits) == 0 {
				continue
			}
			digits = append(digits, c)
		case c == '.' && !seenDot:
			seenDot = true
		default:
			break loop
		}
	}
	if !seenDigs {
		return errSyntax(`no digits`)
	}

	if i < len(s) {
		if s[i] != 'e' && s[i] != 'E' {
			return errSyntax(fmt.Sprintf(`invalid character %q`, s[i]))
		}
		e, err := strconv.ParseInt(s[i+1:], 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return errSyntax(`invalid exponent`)
		}
		// out of range exponents are saturated, and will overflow or underflow
		dexp += min(max(e, -1<<40), 1<<40)
	}

	if len(digits) == 0 {
		z.form = zero
		return nil
	}

	// 10**(point-1) <= |value| < 10**point
	switch point := dexp + int64(len(digits)); {
	case point > maxDecimalPoint:
		z.form = inf
		return nil
	case point < -maxDecimalPoint:
		z.form = zero
		return nil
	}

	m, err := limb.Nat(nil).SetString(string(digits), 10)
	if err != nil {
		return err
	}

	if dexp >= -maxExactDecimalExp && dexp <= maxExactDecimalExp {
		p := limb.Nat(nil).Pow(limb.Nat{10}, uint64(max(dexp, -dexp)))
		if dexp >= 0 {
			z.setMant(m.Mul(m, p), 0, false)
		} else {
			z.setQuo(m, 0, p, 0)
		}
		return nil
	}

	// large exponents use a power of ten that is rounded, rather than exact
	wp := z.prec + 64
	f := (&Float{prec: wp}).setMant(m, 0, false)
	p := pow10(uint64(max(dexp, -dexp)), wp)
	if dexp >= 0 {
		f = mul(f, p, z.prec)
	} else {
		f = quo(f, p, z.prec)
	}
	z.mant, z.exp, z.form = f.mant, f.exp, f.form
	return nil
}

// pow10 returns 10**n, rounded to prec bits.
func pow10(n uint64, prec uint) *Float {
	return powInt(fromInt64(10, prec), n, prec)
}

// String formats x like Text('g', -1), or returns "<nil>".
func (x *Float) String() string {
	if x == nil {
		return `<nil>`
	}
	return x.Text('g', -1)
}

// Text converts x to a string, per Append.
func (x *Float) Text(format byte, digits int) string {
	return string(x.Append(make([]byte, 0, 32), format, digits))
}

// Append appends the string form of x to buf, according to the format,
// which is one of:
//
//	'e'	-d.dddde±dd, decimal exponent, at least two exponent digits
//	'E'	-d.ddddE±dd, decimal exponent, at least two exponent digits
//	'f'	-ddddd.dddd, no exponent
//	'g'	like 'e' for large exponents, like 'f' otherwise
//	'G'	like 'g', but with 'E' instead of 'e'
//	'p'	-0x.dddp±dd, hexadecimal mantissa, binary exponent
//
// For 'e', 'E' and 'f', digits is the number of digits after the decimal
// point. For 'g' and 'G' it is the number of significant digits. A negative
// digits selects the fewest decimal digits that parse back to x, at the
// precision of x. The digits argument is ignored by 'p'.
//
// Infinities are formatted as "+Inf" and "-Inf", and NaN as "NaN".
func (x *Float) Append(buf []byte, format byte, digits int) []byte {
	if x.neg && x.form != nan {
		buf = append(buf, '-')
	}

	switch x.form {
	case inf:
		if !x.neg {
			buf = append(buf, '+')
		}
		return append(buf, `Inf`...)
	case nan:
		return append(buf, `NaN`...)
	}

	switch format {
	case 'p':
		return x.appendP(buf)
	case 'e', 'E', 'f', 'g', 'G':
	default:
		if x.neg {
			buf = buf[:len(buf)-1]
		}
		return append(buf, '%', format)
	}

	var d decimal
	d.init(x.mant, x.exp)

	shortest := digits < 0
	if shortest {
		roundShortest(&d, x)
		switch format {
		case 'e', 'E':
			digits = len(d.mant) - 1
		case 'f':
			digits = max(len(d.mant)-d.exp, 0)
		case 'g', 'G':
			digits = len(d.mant)
		}
	} else {
		switch format {
		case 'e', 'E':
			d.round(1 + digits)
		case 'f':
			d.round(d.exp + digits)
		case 'g', 'G':
			if digits == 0 {
				digits = 1
			}
			d.round(digits)
		}
	}

	switch format {
	case 'e', 'E':
		return fmtE(buf, format, digits, &d)
	case 'f':
		return fmtF(buf, digits, &d)
	}

	// %e is used if the exponent from the conversion is less than -4 or
	// greater than or equal to the precision. If digits was the shortest
	// possible, use an exponent precision of 6 for this decision.
	eprec := digits
	if eprec > len(d.mant) && len(d.mant) >= d.exp {
		eprec = len(d.mant)
	}
	if shortest {
		eprec = 6
	}
	if exp := d.exp - 1; exp < -4 || exp >= eprec {
		if digits > len(d.mant) {
			digits = len(d.mant)
		}
		return fmtE(buf, format+'e'-'g', digits-1, &d)
	}
	if digits > d.exp {
		digits = len(d.mant)
	}
	return fmtF(buf, max(digits-d.exp, 0), &d)
}

// roundShortest rounds d (the decimal form of x) to the fewest digits that
// still round to x, at the precision of x.
func roundShortest(d *decimal, x *Float) {
	if len(d.mant) == 0 {
		return
	}

	// x = mant * 2**exp, where the lsb of mant is 1/2 ulp
	prec := precOf(x)
	exp := x.top() - int64(prec) - 1
	mant := limb.Nat(nil).Shl(x.mant, uint(x.exp-exp))

	var lower, upper decimal
	if len(x.mant) == 1 && x.mant[0] == 1 {
		// the spacing below a power of two is half that above it
		lower.init(limb.Nat(nil).SubWord(limb.Nat(nil).Shl(mant, 1), 1), exp-1)
	} else {
		lower.init(limb.Nat(nil).SubWord(mant, 1), exp)
	}
	upper.init(limb.Nat(nil).AddWord(mant, 1), exp)

	// The bounds are only possible outputs if the prec bit mantissa is
	// even, as ties round to even.
	inclusive := mant[0]&2 == 0

	for i, m := range d.mant {
		l := lower.at(i)
		u := upper.at(i)

		// Okay to round down (truncate) if lower has a different digit
		// or if lower is inclusive and is exactly the result of rounding
		// down (i.e., and we have reached the final digit of lower).
		okdown := l != m || inclusive && i+1 == len(lower.mant)

		// Okay to round up if upper has a different digit and either upper
		// is inclusive or upper is bigger than the result of rounding up.
		okup := m != u && (inclusive || m+1 < u || i+1 < len(upper.mant))

		switch {
		case okdown && okup:
			d.round(i + 1)
			return
		case okdown:
			d.roundDown(i + 1)
			return
		case okup:
			d.roundUp(i + 1)
			return
		}
	}
}

// appendP appends the magnitude of x as "0x.dddp±dd".
func (x *Float) appendP(buf []byte) []byte {
	if x.form == zero {
		return append(buf, '0')
	}
	// align the mantissa to a whole number of hex digits
	m := limb.Nat(nil).Shl(x.mant, uint((4-x.mant.BitLen()%4)%4))
	buf = append(buf, `0x.`...)
	buf, _ = m.Append(buf, 16)
	buf = append(buf, 'p')
	t := x.top()
	if t >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendInt(buf, t, 10)
}

// Format implements fmt.Formatter, supporting the verbs e, E, f, F, g, G,
// s, v and p, the flags +, space, - and 0, width, and precision.
func (x *Float) Format(s fmt.State, verb rune) {
	digits, ok := s.Precision()
	if !ok {
		digits = 6 // default precision for 'e', 'f'
	}

	switch verb {
	case 'e', 'E', 'f', 'g', 'G':
	case 'F':
		verb = 'f'
	case 'v', 's':
		verb = 'g'
	case 'p':
	default:
		_, _ = fmt.Fprintf(s, `%%!%c(*bigf.Float=%s)`, verb, x.String())
		return
	}
	if (verb == 'g' || verb == 'G') && !ok {
		digits = -1
	}
	if x == nil {
		_, _ = fmt.Fprint(s, `<nil>`)
		return
	}

	var buf []byte
	buf = x.Append(buf, byte(verb), digits)
	var sign string
	switch {
	case buf[0] == '-':
		sign = `-`
		buf = buf[1:]
	case buf[0] == '+':
		// +Inf
		sign = `+`
		buf = buf[1:]
	case s.Flag('+'):
		sign = `+`
	case s.Flag(' '):
		sign = ` `
	}

	var pad int
	if width, ok := s.Width(); ok {
		pad = width - len(sign) - len(buf)
	}
	var out bytes.Buffer
	switch {
	case pad <= 0:
		out.WriteString(sign)
		out.Write(buf)
	case s.Flag('-'):
		out.WriteString(sign)
		out.Write(buf)
		out.Write(bytes.Repeat([]byte{' '}, pad))
	case s.Flag('0') && x.IsNumber():
		out.WriteString(sign)
		out.Write(bytes.Repeat([]byte{'0'}, pad))
		out.Write(buf)
	default:
		out.Write(bytes.Repeat([]byte{' '}, pad))
		out.WriteString(sign)
		out.Write(buf)
	}
	_, _ = s.Write(out.Bytes())
}

// MarshalText implements encoding.TextMarshaler, per String. The precision
// is not retained.
func (x *Float) MarshalText() ([]byte, error) {
	if x == nil {
		return []byte(`<nil>`), nil
	}
	return x.Append(nil, 'g', -1), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, per ParsePrec, at the
// precision of x.
func (x *Float) UnmarshalText(text []byte) error {
	v, err := ParsePrec(string(text), x.prec)
	if err != nil {
		return err
	}
	*x = *v
	return nil
}

// MarshalJSON encodes x as an object with the value as a string, and the
// precision, e.g. {"value":"1.5","prec":64}. Infinities are encoded as
// "Infinity" and "-Infinity".
func (x *Float) MarshalJSON() ([]byte, error) {
	if x == nil {
		return []byte(`null`), nil
	}
	b := append(make([]byte, 0, 32), `{"value":`...)
	switch {
	case x.form == inf && x.neg:
		b = jsonenc.AppendString(b, strNegInf)
	case x.form == inf:
		b = jsonenc.AppendString(b, strPosInf)
	case x.form == nan:
		b = jsonenc.AppendString(b, strNaN)
	default:
		b = jsonenc.AppendString(b, x.Text('g', -1))
	}
	b = append(b, `,"prec":`...)
	b = strconv.AppendUint(b, uint64(x.prec), 10)
	b = append(b, '}')
	return b, nil
}

// UnmarshalJSON decodes the format of MarshalJSON. A prec of 0 (or absent)
// selects the default precision. A null is a no-op.
func (x *Float) UnmarshalJSON(b []byte) error {
	if string(b) == `null` {
		return nil
	}
	var v struct {
		Value *string `json:"value"`
		Prec  uint64  `json:"prec"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return numerr.Wrap(err, numerr.Parse, `bigf.UnmarshalJSON`, `invalid value`)
	}
	if v.Value == nil {
		return numerr.New(numerr.Parse, `bigf.UnmarshalJSON`, `missing value`)
	}
	if v.Prec > MaxPrec {
		return numerr.New(numerr.Range, `bigf.UnmarshalJSON`, `precision exceeds maximum`)
	}
	f, err := ParsePrec(*v.Value, uint(v.Prec))
	if err != nil {
		return err
	}
	*x = *f
	return nil
}
