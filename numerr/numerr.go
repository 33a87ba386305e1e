// Package numerr defines the closed set of error kinds surfaced by the
// numeric packages.
//
// Every error returned by bigz, bigq, bigf, and numeric satisfies
// errors.Is against exactly one of the sentinels declared here.
package numerr

import (
	"strings"
)

// Kind identifies the category of a numeric failure.
type Kind uint8

const (
	// Parse indicates a malformed numeric string.
	Parse Kind = iota + 1
	// InvalidBase indicates a radix outside the supported range.
	InvalidBase
	// DivisionByZero indicates an integer or rational division, modulus, or
	// reciprocal with a zero divisor, including zero denominators.
	DivisionByZero
	// Domain indicates an operand outside the domain of a real-valued
	// function, e.g. the square root of a negative number.
	Domain
	// NotInvertible indicates that no modular inverse exists.
	NotInvertible
	// Range indicates an argument outside its permitted range, e.g. a
	// negative exponent, bit index, or shift.
	Range
)

var (
	ErrParse          error = sentinel(Parse)
	ErrInvalidBase    error = sentinel(InvalidBase)
	ErrDivisionByZero error = sentinel(DivisionByZero)
	ErrDomain         error = sentinel(Domain)
	ErrNotInvertible  error = sentinel(NotInvertible)
	ErrRange          error = sentinel(Range)
)

// String returns the name of the kind, e.g. "DivisionByZero".
func (k Kind) String() string {
	switch k {
	case Parse:
		return `ParseError`
	case InvalidBase:
		return `InvalidBase`
	case DivisionByZero:
		return `DivisionByZero`
	case Domain:
		return `DomainError`
	case NotInvertible:
		return `NotInvertible`
	case Range:
		return `RangeError`
	default:
		return `Unknown`
	}
}

// Sentinel returns the sentinel error for k, or nil if k is not valid.
func (k Kind) Sentinel() error {
	switch k {
	case Parse:
		return ErrParse
	case InvalidBase:
		return ErrInvalidBase
	case DivisionByZero:
		return ErrDivisionByZero
	case Domain:
		return ErrDomain
	case NotInvertible:
		return ErrNotInvertible
	case Range:
		return ErrRange
	default:
		return nil
	}
}

type sentinel Kind

func (s sentinel) Error() string {
	return Kind(s).String()
}

// Error is the concrete error type. Op names the failing operation (e.g.
// "bigz.Div") and Detail is a short human-readable description. Err, if set,
// is the underlying cause.
type Error struct {
	Err    error
	Op     string
	Detail string
	Kind   Kind
}

// New returns an *Error of the given kind.
func New(kind Kind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// Wrap is like New but records err as the cause.
func Wrap(err error, kind Kind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != `` {
		b.WriteString(e.Op)
		b.WriteString(`: `)
	}
	b.WriteString(e.Kind.String())
	if e.Detail != `` {
		b.WriteString(`: `)
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(`: `)
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches the sentinel of the same kind, and any *Error of the same kind.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case sentinel:
		return Kind(t) == e.Kind
	case *Error:
		return t.Kind == e.Kind
	}
	return false
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first numeric error in err's chain, or zero.
func KindOf(err error) Kind {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Kind
		case sentinel:
			return Kind(e)
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0
		}
		err = u.Unwrap()
	}
	return 0
}
