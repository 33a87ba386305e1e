package bigf

import (
	"sync/atomic"

	"github.com/joeycumines/go-bignum/bigq"
	"github.com/joeycumines/go-bignum/bigz"
)

// defaultPrec is the default precision, where 0 means 64
var defaultPrec atomic.Uint64

// DefaultPrecision returns the process-wide default precision, which is 64
// unless changed via SetDefaultPrecision.
func DefaultPrecision() uint {
	if p := defaultPrec.Load(); p != 0 {
		return uint(p)
	}
	return 64
}

// SetDefaultPrecision sets the process-wide default precision. It only
// affects values constructed afterwards. A prec of 0 restores the initial
// default of 64. It panics if prec exceeds MaxPrec.
func SetDefaultPrecision(prec uint) {
	if prec > MaxPrec {
		panic(`bigf: set default precision: precision exceeds maximum`)
	}
	defaultPrec.Store(uint64(prec))
}

// Context carries an explicit precision, for callers that would rather not
// depend on the process-wide default. The zero value uses the default
// precision.
type Context struct {
	// Prec is the precision of constructed values, in bits.
	Prec uint
}

func (c Context) prec() uint {
	return checkPrec(`context`, c.Prec)
}

// New returns x at the context precision.
func (c Context) New(x float64) *Float {
	return NewPrec(x, c.prec())
}

// Parse parses s at the context precision, per ParsePrec.
func (c Context) Parse(s string) (*Float, error) {
	return ParsePrec(s, c.prec())
}

// FromInt returns x at the context precision.
func (c Context) FromInt(x *bigz.Int) *Float {
	return FromInt(x, c.prec())
}

// FromRat returns x at the context precision.
func (c Context) FromRat(x *bigq.Rat) *Float {
	return FromRat(x, c.prec())
}

// Pi returns π at the context precision.
func (c Context) Pi() *Float {
	return Pi(c.prec())
}
