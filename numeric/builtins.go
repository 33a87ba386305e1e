package numeric

import (
	"github.com/joeycumines/go-bignum/bigf"
	"github.com/joeycumines/go-bignum/bigq"
	"github.com/joeycumines/go-bignum/bigz"
	"github.com/joeycumines/go-bignum/numerr"
)

func one(v Value) []Value {
	return []Value{v}
}

// toF converts v to a float, at the context precision if it isn't one.
func toF(ctx bigf.Context, v Value) *bigf.Float {
	return v.toFloat(ctx.Prec)
}

func intArg(op string, v Value) (*bigz.Int, error) {
	if z := v.Int(); z != nil {
		return z, nil
	}
	return nil, numerr.New(numerr.Domain, op, `integer operand required, got `+v.kind.String())
}

func int64Arg(op string, v Value) (int64, error) {
	z, err := intArg(op, v)
	if err != nil {
		return 0, err
	}
	return z.Int64()
}

func uint64Arg(op string, v Value) (uint64, error) {
	z, err := intArg(op, v)
	if err != nil {
		return 0, err
	}
	return z.Uint64()
}

func unaryF(name, summary string, fn func(*bigf.Float) *bigf.Float) Op {
	return Op{Name: name, Args: `x`, Summary: summary, MinArgs: 1, MaxArgs: 1,
		Fn: func(ctx bigf.Context, args []Value) ([]Value, error) {
			return one(FromFloat(fn(toF(ctx, args[0])))), nil
		}}
}

func pairF(name, summary string, fn func(*bigf.Float) (*bigf.Float, *bigf.Float)) Op {
	return Op{Name: name, Args: `x`, Summary: summary, MinArgs: 1, MaxArgs: 1,
		Fn: func(ctx bigf.Context, args []Value) ([]Value, error) {
			a, b := fn(toF(ctx, args[0]))
			return []Value{FromFloat(a), FromFloat(b)}, nil
		}}
}

func binaryF(name, summary string, fn func(x, y *bigf.Float) *bigf.Float) Op {
	return Op{Name: name, Args: `x y`, Summary: summary, MinArgs: 2, MaxArgs: 2,
		Fn: func(ctx bigf.Context, args []Value) ([]Value, error) {
			return one(FromFloat(fn(toF(ctx, args[0]), toF(ctx, args[1])))), nil
		}}
}

func besselF(name, summary string, fn func(int64, *bigf.Float) *bigf.Float) Op {
	return Op{Name: name, Args: `n x`, Summary: summary, MinArgs: 2, MaxArgs: 2,
		Fn: func(ctx bigf.Context, args []Value) ([]Value, error) {
			n, err := int64Arg(`numeric.`+name, args[0])
			if err != nil {
				return nil, err
			}
			return one(FromFloat(fn(n, toF(ctx, args[1])))), nil
		}}
}

func constF(name, summary string, fn func(uint) *bigf.Float) Op {
	return Op{Name: name, Summary: summary,
		Fn: func(ctx bigf.Context, _ []Value) ([]Value, error) {
			return one(FromFloat(fn(ctx.Prec))), nil
		}}
}

func binaryZ(name, summary string, fn func(x, y *bigz.Int) (*bigz.Int, error)) Op {
	return Op{Name: name, Args: `x y`, Summary: summary, MinArgs: 2, MaxArgs: 2,
		Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			x, err := intArg(`numeric.`+name, args[0])
			if err != nil {
				return nil, err
			}
			y, err := intArg(`numeric.`+name, args[1])
			if err != nil {
				return nil, err
			}
			z, err := fn(x, y)
			if err != nil {
				return nil, err
			}
			return one(FromInt(z)), nil
		}}
}

func symbolZ(name, summary string, fn func(a, b *bigz.Int) (int, error)) Op {
	return binaryZ(name, summary, func(x, y *bigz.Int) (*bigz.Int, error) {
		s, err := fn(x, y)
		if err != nil {
			return nil, err
		}
		return bigz.New(s), nil
	})
}

func sequenceZ(name, summary string, fn func(uint64) *bigz.Int) Op {
	return Op{Name: name, Args: `n`, Summary: summary, MinArgs: 1, MaxArgs: 1,
		Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			n, err := uint64Arg(`numeric.`+name, args[0])
			if err != nil {
				return nil, err
			}
			return one(FromInt(fn(n))), nil
		}}
}

func arith(name, summary string, fn func(x, y Value) Value) Op {
	return Op{Name: name, Args: `x y`, Summary: summary, MinArgs: 2, MaxArgs: 2,
		Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			return one(fn(args[0], args[1])), nil
		}}
}

func arithErr(name, summary string, fn func(x, y Value) (Value, error)) Op {
	return Op{Name: name, Args: `x y`, Summary: summary, MinArgs: 2, MaxArgs: 2,
		Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			v, err := fn(args[0], args[1])
			if err != nil {
				return nil, err
			}
			return one(v), nil
		}}
}

func unary(name, summary string, fn func(Value) (Value, error)) Op {
	return Op{Name: name, Args: `x`, Summary: summary, MinArgs: 1, MaxArgs: 1,
		Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			v, err := fn(args[0])
			if err != nil {
				return nil, err
			}
			return one(v), nil
		}}
}

// rounding applies a whole-number rounding, per kind.
func rounding(name, summary string, q func(*bigq.Rat) *bigz.Int, f func(*bigf.Float) *bigf.Float) Op {
	return unary(name, summary, func(x Value) (Value, error) {
		switch x.kind {
		case KindRat:
			return FromInt(q(x.q)), nil
		case KindFloat:
			return FromFloat(f(x.f)), nil
		default:
			return x, nil
		}
	})
}

func (op Op) withArgs(args string) Op {
	op.Args = args
	return op
}

func builtins() []Op {
	return []Op{
		// arithmetic, over every kind
		arith(`add`, `x + y`, Add),
		arith(`sub`, `x - y`, Sub),
		arith(`mul`, `x * y`, Mul),
		arithErr(`div`, `x / y, floor division for integers`, Div),
		arithErr(`mod`, `floor modulus of integers`, Mod),
		arithErr(`pow`, `x ** n, for an integer n`, Pow),
		{Name: `neg`, Args: `x`, Summary: `-x`, MinArgs: 1, MaxArgs: 1, Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			return one(Neg(args[0])), nil
		}},
		{Name: `abs`, Args: `x`, Summary: `|x|`, MinArgs: 1, MaxArgs: 1, Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			return one(Abs(args[0])), nil
		}},
		arithErr(`cmp`, `-1, 0, or +1, as x < y, x == y, or x > y`, func(x, y Value) (Value, error) {
			c, ok := Cmp(x, y)
			if !ok {
				return Value{}, numerr.New(numerr.Domain, `numeric.cmp`, `NaN operand`)
			}
			return Int(c), nil
		}),
		{Name: `sqrt`, Args: `x`, Summary: `square root, the floor for integers`, MinArgs: 1, MaxArgs: 1, Fn: func(ctx bigf.Context, args []Value) ([]Value, error) {
			if z := args[0].Int(); z != nil {
				r, err := z.Sqrt()
				if err != nil {
					return nil, err
				}
				return one(FromInt(r)), nil
			}
			r, err := toF(ctx, args[0]).Sqrt()
			if err != nil {
				return nil, err
			}
			return one(FromFloat(r)), nil
		}},
		{Name: `root`, Args: `x n`, Summary: `n'th root, truncated for integers`, MinArgs: 2, MaxArgs: 2, Fn: func(ctx bigf.Context, args []Value) ([]Value, error) {
			n, err := int64Arg(`numeric.root`, args[1])
			if err != nil {
				return nil, err
			}
			if z := args[0].Int(); z != nil {
				r, err := z.Root(n)
				if err != nil {
					return nil, err
				}
				return one(FromInt(r)), nil
			}
			r, err := bigf.Root(toF(ctx, args[0]), n)
			if err != nil {
				return nil, err
			}
			return one(FromFloat(r)), nil
		}},
		rounding(`floor`, `greatest whole number <= x`, (*bigq.Rat).Floor, (*bigf.Float).Floor),
		rounding(`ceil`, `least whole number >= x`, (*bigq.Rat).Ceil, (*bigf.Float).Ceil),
		rounding(`trunc`, `x rounded towards zero`, (*bigq.Rat).Trunc, (*bigf.Float).Trunc),

		// conversions
		unary(`int`, `x truncated to an integer`, func(x Value) (Value, error) {
			switch x.kind {
			case KindRat:
				return FromInt(x.q.Trunc()), nil
			case KindFloat:
				z, err := x.f.Int()
				if err != nil {
					return Value{}, err
				}
				return FromInt(z), nil
			default:
				return x, nil
			}
		}),
		unary(`rat`, `the exact rational value of x`, func(x Value) (Value, error) {
			if x.kind == KindFloat {
				q, err := x.f.Rat()
				if err != nil {
					return Value{}, err
				}
				return FromRat(q), nil
			}
			return FromRat(x.toRat()), nil
		}),
		{Name: `float`, Args: `x`, Summary: `x rounded to the working precision`, MinArgs: 1, MaxArgs: 1, Fn: func(ctx bigf.Context, args []Value) ([]Value, error) {
			if f := args[0].Float(); f != nil {
				g := f.Copy()
				g.SetPrecAssign(ctx.Prec)
				return one(FromFloat(g)), nil
			}
			return one(FromFloat(toF(ctx, args[0]))), nil
		}},
		unary(`num`, `numerator`, func(x Value) (Value, error) {
			if x.kind == KindFloat {
				return Value{}, numerr.New(numerr.Domain, `numeric.num`, `float operand`)
			}
			return FromInt(x.toRat().Num()), nil
		}),
		unary(`den`, `denominator`, func(x Value) (Value, error) {
			if x.kind == KindFloat {
				return Value{}, numerr.New(numerr.Domain, `numeric.den`, `float operand`)
			}
			return FromInt(x.toRat().Denom()), nil
		}),

		// integer
		binaryZ(`gcd`, `greatest common divisor`, func(x, y *bigz.Int) (*bigz.Int, error) { return x.GCD(y), nil }),
		binaryZ(`lcm`, `least common multiple`, func(x, y *bigz.Int) (*bigz.Int, error) { return x.LCM(y), nil }),
		{Name: `gcdext`, Args: `a b`, Summary: `g, s, t, where g = gcd(a, b) = a*s + b*t`, MinArgs: 2, MaxArgs: 2, Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			a, err := intArg(`numeric.gcdext`, args[0])
			if err != nil {
				return nil, err
			}
			b, err := intArg(`numeric.gcdext`, args[1])
			if err != nil {
				return nil, err
			}
			g, s, t := bigz.ExtendedGCD(a, b)
			return []Value{FromInt(g), FromInt(s), FromInt(t)}, nil
		}},
		binaryZ(`invert`, `inverse of x modulo m`, (*bigz.Int).Invert),
		{Name: `powm`, Args: `x e m`, Summary: `x**e mod m`, MinArgs: 3, MaxArgs: 3, Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			var z [3]*bigz.Int
			for i := range z {
				v, err := intArg(`numeric.powm`, args[i])
				if err != nil {
					return nil, err
				}
				z[i] = v
			}
			r, err := z[0].Exp(z[1], z[2])
			if err != nil {
				return nil, err
			}
			return one(FromInt(r)), nil
		}},
		symbolZ(`jacobi`, `Jacobi symbol (a/b), for odd b`, bigz.Jacobi),
		symbolZ(`legendre`, `Legendre symbol (a/p), for an odd prime p`, bigz.Legendre),
		symbolZ(`kronecker`, `Kronecker symbol (a/b)`, func(a, b *bigz.Int) (int, error) { return bigz.Kronecker(a, b), nil }),
		{Name: `remove`, Args: `x f`, Summary: `x with every factor f removed, and the count`, MinArgs: 2, MaxArgs: 2, Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			x, err := intArg(`numeric.remove`, args[0])
			if err != nil {
				return nil, err
			}
			f, err := intArg(`numeric.remove`, args[1])
			if err != nil {
				return nil, err
			}
			r, n, err := x.RemoveFactor(f)
			if err != nil {
				return nil, err
			}
			return []Value{FromInt(r), Int(n)}, nil
		}},
		{Name: `sqrtrem`, Args: `x`, Summary: `floor square root and remainder`, MinArgs: 1, MaxArgs: 1, Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			x, err := intArg(`numeric.sqrtrem`, args[0])
			if err != nil {
				return nil, err
			}
			s, r, err := x.SqrtRem()
			if err != nil {
				return nil, err
			}
			return []Value{FromInt(s), FromInt(r)}, nil
		}},
		{Name: `isprime`, Args: `x [reps]`, Summary: `0 if composite, 1 if probably prime, 2 if prime`, MinArgs: 1, MaxArgs: 2, Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			x, err := intArg(`numeric.isprime`, args[0])
			if err != nil {
				return nil, err
			}
			reps := int64(25)
			if len(args) > 1 {
				if reps, err = int64Arg(`numeric.isprime`, args[1]); err != nil {
					return nil, err
				}
			}
			return one(Int(x.ProbablyPrime(int(min(reps, 1<<16))))), nil
		}},
		{Name: `nextprime`, Args: `x`, Summary: `least prime > x`, MinArgs: 1, MaxArgs: 1, Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			x, err := intArg(`numeric.nextprime`, args[0])
			if err != nil {
				return nil, err
			}
			return one(FromInt(x.NextPrime())), nil
		}},
		sequenceZ(`fac`, `n!`, bigz.Factorial),
		sequenceZ(`fib`, `n'th Fibonacci number`, bigz.Fibonacci),
		sequenceZ(`lucas`, `n'th Lucas number`, bigz.Lucas),
		{Name: `binomial`, Args: `n k`, Summary: `binomial coefficient`, MinArgs: 2, MaxArgs: 2, Fn: func(_ bigf.Context, args []Value) ([]Value, error) {
			n, err := intArg(`numeric.binomial`, args[0])
			if err != nil {
				return nil, err
			}
			k, err := uint64Arg(`numeric.binomial`, args[1])
			if err != nil {
				return nil, err
			}
			return one(FromInt(bigz.Binomial(n, k))), nil
		}},

		// float constants
		constF(`pi`, `π`, bigf.Pi),
		constF(`e`, `Euler's number`, bigf.E),
		constF(`ln2`, `natural logarithm of 2`, bigf.Ln2),
		constF(`ln10`, `natural logarithm of 10`, bigf.Ln10),
		constF(`euler`, `Euler-Mascheroni constant`, bigf.Euler),

		// float functions
		unaryF(`exp`, `e**x`, bigf.Exp),
		unaryF(`expm1`, `e**x - 1`, bigf.Expm1),
		unaryF(`exp2`, `2**x`, bigf.Exp2),
		unaryF(`exp10`, `10**x`, bigf.Exp10),
		unaryF(`log`, `natural logarithm`, bigf.Log),
		unaryF(`log1p`, `log(1 + x)`, bigf.Log1p),
		unaryF(`log2`, `binary logarithm`, bigf.Log2),
		unaryF(`log10`, `decimal logarithm`, bigf.Log10),
		unaryF(`sin`, `sine`, bigf.Sin),
		unaryF(`cos`, `cosine`, bigf.Cos),
		unaryF(`tan`, `tangent`, bigf.Tan),
		unaryF(`cot`, `cotangent`, bigf.Cot),
		unaryF(`sec`, `secant`, bigf.Sec),
		unaryF(`csc`, `cosecant`, bigf.Csc),
		pairF(`sincos`, `sine and cosine`, bigf.SinCos),
		unaryF(`asin`, `arcsine`, bigf.Asin),
		unaryF(`acos`, `arccosine`, bigf.Acos),
		unaryF(`atan`, `arctangent`, bigf.Atan),
		binaryF(`atan2`, `arctangent of y/x, using the signs of both`, bigf.Atan2).withArgs(`y x`),
		unaryF(`sinh`, `hyperbolic sine`, bigf.Sinh),
		unaryF(`cosh`, `hyperbolic cosine`, bigf.Cosh),
		unaryF(`tanh`, `hyperbolic tangent`, bigf.Tanh),
		unaryF(`coth`, `hyperbolic cotangent`, bigf.Coth),
		unaryF(`sech`, `hyperbolic secant`, bigf.Sech),
		unaryF(`csch`, `hyperbolic cosecant`, bigf.Csch),
		pairF(`sinhcosh`, `hyperbolic sine and cosine`, bigf.SinhCosh),
		unaryF(`asinh`, `inverse hyperbolic sine`, bigf.Asinh),
		unaryF(`acosh`, `inverse hyperbolic cosine`, bigf.Acosh),
		unaryF(`atanh`, `inverse hyperbolic tangent`, bigf.Atanh),
		unaryF(`cbrt`, `cube root`, bigf.Cbrt),
		{Name: `recsqrt`, Args: `x`, Summary: `1/sqrt(x)`, MinArgs: 1, MaxArgs: 1, Fn: func(ctx bigf.Context, args []Value) ([]Value, error) {
			r, err := bigf.RecSqrt(toF(ctx, args[0]))
			if err != nil {
				return nil, err
			}
			return one(FromFloat(r)), nil
		}},
		binaryF(`agm`, `arithmetic-geometric mean`, bigf.Agm),
		binaryF(`hypot`, `sqrt(x*x + y*y)`, bigf.Hypot),
		unaryF(`gamma`, `gamma function`, bigf.Gamma),
		{Name: `lngamma`, Args: `x`, Summary: `log|gamma(x)|, and the sign of gamma(x)`, MinArgs: 1, MaxArgs: 1, Fn: func(ctx bigf.Context, args []Value) ([]Value, error) {
			l, sign := bigf.LnGamma(toF(ctx, args[0]))
			return []Value{FromFloat(l), Int(sign)}, nil
		}},
		{Name: `factorial`, Args: `n`, Summary: `n!, as a float`, MinArgs: 1, MaxArgs: 1, Fn: func(ctx bigf.Context, args []Value) ([]Value, error) {
			n, err := uint64Arg(`numeric.factorial`, args[0])
			if err != nil {
				return nil, err
			}
			return one(FromFloat(bigf.Factorial(n, ctx.Prec))), nil
		}},
		unaryF(`zeta`, `Riemann zeta function`, bigf.Zeta),
		unaryF(`erf`, `error function`, bigf.Erf),
		unaryF(`erfc`, `complementary error function`, bigf.Erfc),
		unaryF(`eint`, `exponential integral`, bigf.Eint),
		unaryF(`li2`, `real part of the dilogarithm`, bigf.Li2),
		unaryF(`j0`, `Bessel function of the first kind, order 0`, bigf.J0),
		unaryF(`j1`, `Bessel function of the first kind, order 1`, bigf.J1),
		besselF(`jn`, `Bessel function of the first kind, order n`, bigf.Jn),
		unaryF(`y0`, `Bessel function of the second kind, order 0`, bigf.Y0),
		unaryF(`y1`, `Bessel function of the second kind, order 1`, bigf.Y1),
		besselF(`yn`, `Bessel function of the second kind, order n`, bigf.Yn),
	}
}
