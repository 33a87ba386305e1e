package bigz_test

import (
	"errors"
	"fmt"

	"github.com/joeycumines/go-bignum/bigz"
	"github.com/joeycumines/go-bignum/numerr"
)

func ExampleInt_DivMod() {
	q, m, _ := bigz.New(10).DivMod(bigz.New(-3))
	fmt.Println(q, m)
	q, r, _ := bigz.New(10).QuoRem(bigz.New(-3))
	fmt.Println(q, r)
	_, err := bigz.New(10).Div(bigz.Zero())
	fmt.Println(errors.Is(err, numerr.ErrDivisionByZero))
	//output:
	//-4 -2
	//-3 1
	//true
}

func ExampleInt_Text() {
	x := bigz.MustParse(`-123456789012345678901234567890`)
	for _, base := range []int{2, 16, -16, 36, 62} {
		s, _ := x.Text(base)
		fmt.Println(base, s)
	}
	//output:
	//2 -1100011101110100100001111111101101100001101110011111000001110111001001110001111110000101011010010
	//16 -18ee90ff6c373e0ee4e3f0ad2
	//-16 -18EE90FF6C373E0EE4E3F0AD2
	//36 -byw97um9s91dlz68tsi
	//62 -2aYls9bkamJJSwhr0
}

func ExampleExtendedGCD() {
	g, s, t := bigz.ExtendedGCD(bigz.New(240), bigz.New(46))
	fmt.Println(g, s, t)
	//output:
	//2 -9 47
}

func ExampleFibonacci() {
	fmt.Println(bigz.Fibonacci(10), bigz.Lucas(10), bigz.Factorial(20))
	//output:
	//55 123 2432902008176640000
}
