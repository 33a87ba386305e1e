package limb

import (
	"fmt"
	"math"
	"math/bits"
	"slices"

	"github.com/joeycumines/go-bignum/numerr"
)

const (
	lowerDigits = "0123456789abcdefghijklmnopqrstuvwxyz"
	upperDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// bases 37 through 62
	mixedDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// MaxBase is the largest supported radix.
	MaxBase = len(mixedDigits)
)

// CheckBase validates a radix for output: [2, 62], or [-36, -2] meaning
// upper case digits.
func CheckBase(base int) error {
	if (base >= 2 && base <= MaxBase) || (base >= -36 && base <= -2) {
		return nil
	}
	return numerr.New(numerr.InvalidBase, ``, fmt.Sprintf(`base %d out of range`, base))
}

func digitSet(base int) (string, Word) {
	switch {
	case base < 0:
		return upperDigits, Word(-base)
	case base > 36:
		return mixedDigits, Word(base)
	default:
		return lowerDigits, Word(base)
	}
}

// maxPow returns the largest power of b that fits in a Word, and its
// exponent.
func maxPow(b Word) (p Word, n int) {
	p, n = b, 1
	for m := maxWord / b; p <= m; {
		p *= b
		n++
	}
	return
}

// DigitCount returns an upper bound for the number of base b digits of x.
func (x Nat) DigitCount(b int) int {
	if len(x) == 0 {
		return 1
	}
	return int(float64(x.BitLen())/math.Log2(float64(b))) + 2
}

// Append appends the digits of x in the given base, as validated by
// CheckBase, to buf.
func (x Nat) Append(buf []byte, base int) ([]byte, error) {
	if err := CheckBase(base); err != nil {
		return buf, err
	}
	if len(x) == 0 {
		return append(buf, '0'), nil
	}

	digits, b := digitSet(base)

	s := make([]byte, x.DigitCount(int(b)))
	i := len(s)

	if b&(b-1) == 0 {
		// power of two: extract the bits of each digit directly
		bitsPer := uint(bits.TrailingZeros(uint(b)))
		mask := b - 1
		for p := uint(0); p < uint(x.BitLen()); p += bitsPer {
			j, o := p/W, p%W
			d := x[j] >> o
			if o+bitsPer > W && j+1 < uint(len(x)) {
				d |= x[j+1] << (W - o)
			}
			i--
			s[i] = digits[d&mask]
		}
	} else {
		bb, ndigits := maxPow(b)
		q := x.Clone()
		for len(q) > 0 {
			var r Word
			q, r = q.DivW(q, bb)
			for j := 0; j < ndigits && (len(q) > 0 || r != 0); j++ {
				i--
				s[i] = digits[r%b]
				r /= b
			}
		}
	}

	// strip leading zeros
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return append(buf, s[i:]...), nil
}

// Text returns the digits of x in the given base, per Append.
func (x Nat) Text(base int) (string, error) {
	b, err := x.Append(nil, base)
	if err != nil {
		return ``, err
	}
	return string(b), nil
}

// String implements fmt.Stringer, formatting in base 10.
func (x Nat) String() string {
	b, _ := x.Append(nil, 10)
	return string(b)
}

// SizeInBase returns the exact number of digits of x in the given base, which
// must be in [2, 62]. Zero has one digit.
func (x Nat) SizeInBase(base int) (int, error) {
	if base < 2 || base > MaxBase {
		return 0, numerr.New(numerr.InvalidBase, ``, fmt.Sprintf(`base %d out of range`, base))
	}
	if b := Word(base); b&(b-1) == 0 && len(x) > 0 {
		bitsPer := bits.TrailingZeros(uint(b))
		return (x.BitLen() + bitsPer - 1) / bitsPer, nil
	}
	s, err := x.Append(nil, base)
	return len(s), err
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// digitValue returns the value of c as a digit in base, or -1.
func digitValue(c byte, base int) int {
	var d int
	switch {
	case '0' <= c && c <= '9':
		d = int(c - '0')
	case 'A' <= c && c <= 'Z':
		d = int(c-'A') + 10
	case 'a' <= c && c <= 'z':
		d = int(c - 'a')
		if base > 36 {
			d += 36
		} else {
			d += 10
		}
	default:
		return -1
	}
	if d >= base {
		return -1
	}
	return d
}

// DetectBase resolves a base 0 prefix: "0x" (16), "0b" (2), "0o" or a
// leading "0" (8), otherwise 10. It returns the base and the input with any
// alphabetic prefix removed. Non-zero bases are returned unchanged.
func DetectBase(s string, base int) (int, string) {
	if base != 0 {
		return base, s
	}
	if len(s) >= 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			return 16, s[2:]
		case 'b', 'B':
			return 2, s[2:]
		case 'o', 'O':
			return 8, s[2:]
		}
		return 8, s
	}
	return 10, s
}

// SetString sets z to the unsigned value of s, in the given base, which must
// be 0 or in [2, 62]. Bases up to 36 are case-insensitive; above that,
// upper case letters precede lower case. ASCII whitespace is ignored.
func (z Nat) SetString(s string, base int) (Nat, error) {
	if base != 0 && (base < 2 || base > MaxBase) {
		return z, numerr.New(numerr.InvalidBase, ``, fmt.Sprintf(`base %d out of range`, base))
	}
	if base == 0 {
		// leading whitespace would hide the prefix
		start := 0
		for start < len(s) && isSpace(s[start]) {
			start++
		}
		base, s = DetectBase(s[start:], 0)
	}

	bb, ndigits := maxPow(Word(base))
	b := Word(base)

	z = z[:0]
	var (
		chunk Word
		n     int
		seen  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSpace(c) {
			continue
		}
		d := digitValue(c, base)
		if d < 0 {
			return z[:0], numerr.New(numerr.Parse, ``, fmt.Sprintf(`invalid digit %q for base %d`, c, base))
		}
		seen = true
		chunk = chunk*b + Word(d)
		n++
		if n == ndigits {
			z = z.MulAddWW(z, bb, chunk)
			chunk, n = 0, 0
		}
	}
	if !seen {
		return z[:0], numerr.New(numerr.Parse, ``, `no digits`)
	}
	if n > 0 {
		p := Word(1)
		for range n {
			p *= b
		}
		z = z.MulAddWW(z, p, chunk)
	}
	return z.Norm(), nil
}

// AppendPadded appends the base 10 digits of x to buf, left-padded with
// zeros to at least width digits.
func (x Nat) AppendPadded(buf []byte, width int) []byte {
	start := len(buf)
	buf, _ = x.Append(buf, 10)
	if n := len(buf) - start; n < width {
		buf = slices.Insert(buf, start, make([]byte, width-n)...)
		for i := start; i < start+width-n; i++ {
			buf[i] = '0'
		}
	}
	return buf
}
