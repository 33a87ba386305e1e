// Command bignum is an arbitrary precision calculator, exposing the
// operations of the numeric package.
package main

import (
	"fmt"
	"os"

	"github.com/joeycumines/go-bignum/cmd/bignum/internal/cli"
)

func main() {
	if err := cli.NewCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
