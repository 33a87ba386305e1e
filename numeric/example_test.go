package numeric_test

import (
	"fmt"

	"github.com/joeycumines/go-bignum/bigf"
	"github.com/joeycumines/go-bignum/numeric"
)

func ExampleAdd() {
	a := numeric.MustParse(`1/3`)
	fmt.Println(numeric.Add(a, numeric.Int(1)))
	fmt.Println(numeric.Add(a, numeric.MustParse(`2/3`)).Kind())
	fmt.Println(numeric.Normalize(numeric.Add(a, numeric.MustParse(`2/3`))))
	fmt.Println(numeric.Add(numeric.Int(2), numeric.MustParse(`0.5`)))
	//output:
	//4/3
	//Q
	//1
	//2.5
}

func ExampleRegistry_Eval() {
	r := numeric.DefaultRegistry()
	ctx := bigf.Context{Prec: 64}
	for _, expr := range [...][]string{
		{`gcdext`, `240`, `46`},
		{`sqrtrem`, `1000`},
		{`pi`},
	} {
		res, err := r.Eval(ctx, 10, expr[0], expr[1:]...)
		if err != nil {
			panic(err)
		}
		fmt.Println(expr[0], res)
	}
	_, err := r.Eval(ctx, 10, `div`, `1`, `0`)
	fmt.Println(err)
	//output:
	//gcdext [2 -9 47]
	//sqrtrem [31 39]
	//pi [3.1415926535897932385]
	//bigz.Div: DivisionByZero: divisor is zero
}
