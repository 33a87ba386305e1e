package bigf

// sinhCoshAt returns sinh(x) and cosh(x), at wp bits.
func sinhCoshAt(x *Float, wp uint) (sinh, cosh *Float) {
	switch x.form {
	case nan:
		return &Float{prec: wp, form: nan}, &Float{prec: wp, form: nan}
	case inf:
		return round(x, wp), &Float{prec: wp, form: inf}
	case zero:
		return round(x, wp), fromInt64(1, wp)
	}
	// with u = exp(|x|) - 1:
	// sinh(|x|) = (u + u/(u+1)) / 2
	// cosh(x) = ((u+1) + 1/(u+1)) / 2
	u := expm1At(x.Abs(), wp)
	if u.form == inf {
		return x.Copy().setInf(), &Float{prec: wp, form: inf}
	}
	e := addInt(u, 1, wp)
	s := ldexp(add(u, quo(u, e, wp), wp, false), -1)
	c := ldexp(add(e, quo(fromInt64(1, 64), e, wp), wp, false), -1)
	s.neg = x.neg
	return s, c
}

// SinhCosh returns sinh(x) and cosh(x).
func SinhCosh(x *Float) (sinh, cosh *Float) {
	prec := precOf(x)
	s, c := sinhCoshAt(x, workPrec(prec))
	return round(s, prec), round(c, prec)
}

// setInf sets x to an infinity of the same sign.
func (x *Float) setInf() *Float {
	x.mant, x.exp, x.form = nil, 0, inf
	return x
}

// Sinh returns the hyperbolic sine of x.
func Sinh(x *Float) *Float {
	s, _ := SinhCosh(x)
	return s
}

// Cosh returns the hyperbolic cosine of x.
func Cosh(x *Float) *Float {
	_, c := SinhCosh(x)
	return c
}

// tanhAt returns tanh(x), at prec bits.
func tanhAt(x *Float, prec uint) *Float {
	switch x.form {
	case nan, zero:
		return round(x, prec)
	case inf:
		return fromInt64(int64(x.Sign()), prec)
	}
	wp := workPrec(prec)
	// tanh(|x|) = u/(u+2), where u = exp(2|x|) - 1
	u := expm1At(ldexp(x.Abs(), 1), wp)
	var t *Float
	if u.form == inf {
		t = fromInt64(1, wp)
	} else {
		t = quo(u, addInt(u, 2, wp), wp)
	}
	t.neg = x.neg
	return round(t, prec)
}

// Tanh returns the hyperbolic tangent of x.
func Tanh(x *Float) *Float {
	return tanhAt(x, precOf(x))
}

// Coth returns the hyperbolic cotangent of x, 1/tanh(x). Coth(±0) is ±Inf.
func Coth(x *Float) *Float {
	prec := precOf(x)
	switch x.form {
	case nan:
		return round(x, prec)
	case zero:
		return &Float{prec: prec, form: inf, neg: x.neg}
	}
	return quo(fromInt64(1, 64), tanhAt(x, workPrec(prec)), prec)
}

// Sech returns the hyperbolic secant of x, 1/cosh(x).
func Sech(x *Float) *Float {
	prec := precOf(x)
	if x.form == nan {
		return round(x, prec)
	}
	_, c := sinhCoshAt(x, workPrec(prec))
	return quo(fromInt64(1, 64), c, prec)
}

// Csch returns the hyperbolic cosecant of x, 1/sinh(x). Csch(±0) is ±Inf.
func Csch(x *Float) *Float {
	prec := precOf(x)
	switch x.form {
	case nan:
		return round(x, prec)
	case zero:
		return &Float{prec: prec, form: inf, neg: x.neg}
	}
	s, _ := sinhCoshAt(x, workPrec(prec))
	return quo(fromInt64(1, 64), s, prec)
}

// Asinh returns the inverse hyperbolic sine of x.
func Asinh(x *Float) *Float {
	prec := precOf(x)
	if x.form != finite {
		return round(x, prec)
	}
	wp := workPrec(prec)
	a := x.Abs()
	var r *Float
	if a.top() > int64(wp/2)+1 {
		// asinh(a) = log(2a) + O(1/a**2)
		r = add(logAt(a, wp), constAt(constLn2, wp), wp, false)
	} else {
		// asinh(a) = log1p(a + a**2/(1+sqrt(1+a**2)))
		a2 := mul(a, a, wp)
		r = log1pAt(add(a, quo(a2, addInt(sqrt(addInt(a2, 1, wp), wp), 1, wp), wp), wp, false), wp)
	}
	r.neg = x.neg
	return round(r, prec)
}

// Acosh returns the inverse hyperbolic cosine of x. x < 1 yields NaN.
func Acosh(x *Float) *Float {
	prec := precOf(x)
	switch {
	case x.form == nan:
		return round(x, prec)
	case x.form == zero, x.neg:
		return &Float{prec: prec, form: nan}
	case x.form == inf:
		return round(x, prec)
	case x.cmpAbs(fromInt64(1, 64)) < 0:
		return &Float{prec: prec, form: nan}
	}
	wp := workPrec(prec)
	if x.top() > int64(wp/2)+1 {
		// acosh(x) = log(2x) + O(1/x**2)
		return add(logAt(x, wp), constAt(constLn2, wp), prec, false)
	}
	// acosh(x) = log1p(t + sqrt(2t + t**2)), where t = x - 1
	t := addInt(x, -1, wp)
	return log1pAt(add(t, sqrt(mul(t, addInt(t, 2, wp), wp), wp), wp, false), prec)
}

// Atanh returns the inverse hyperbolic tangent of x. |x| > 1 yields NaN,
// and Atanh(±1) is ±Inf.
func Atanh(x *Float) *Float {
	prec := precOf(x)
	switch x.form {
	case nan, zero:
		return round(x, prec)
	case inf:
		return &Float{prec: prec, form: nan}
	}
	switch c := x.cmpAbs(fromInt64(1, 64)); {
	case c > 0:
		return &Float{prec: prec, form: nan}
	case c == 0:
		return &Float{prec: prec, form: inf, neg: x.neg}
	}
	wp := workPrec(prec)
	a := x.Abs()
	var r *Float
	if a.top() < -1 {
		// |x| < 1/4
		r = atanhSeries(a, wp)
	} else {
		// atanh(a) = log1p(2a/(1-a)) / 2
		r = ldexp(log1pAt(quo(ldexp(a, 1), subFrom(1, a, wp), wp), wp), -1)
	}
	r.neg = x.neg
	return round(r, prec)
}
