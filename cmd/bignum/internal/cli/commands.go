package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/joeycumines/go-bignum/numeric"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var constants = []string{`pi`, `e`, `ln2`, `ln10`, `euler`}

func (a *app) evalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `eval <op> [args...]`,
		Short: `Evaluate one operation`,
		Example: `  bignum eval add 1/3 2/3
  bignum eval gcdext 240 46
  bignum -p 256 eval zeta 3
  bignum eval div -7 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.evalLine(cmd.OutOrStdout(), args[0], args[1:])
		},
		ValidArgsFunction: a.completeOp,
	}
	// negative operands must not be parsed as flags
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) completeOp(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, op := range a.reg.Ops() {
		if strings.HasPrefix(op.Name, strings.ToLower(toComplete)) {
			names = append(names, op.Name+"\t"+op.Summary)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func (a *app) constCommand() *cobra.Command {
	var digits int
	cmd := &cobra.Command{
		Use:       `const <` + strings.Join(constants, `|`) + `>`,
		Short:     `Print a constant, at the working precision`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: constants,
		RunE: func(cmd *cobra.Command, args []string) error {
			if digits < 0 {
				return errors.Errorf(`negative digits %d`, digits)
			}
			res, err := a.eval(args[0], nil)
			if err != nil {
				return err
			}
			f := res[0].Float()
			if f == nil {
				return errors.Errorf(`%s: not a float constant`, args[0])
			}
			if digits == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), f.String())
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), f.Text('g', digits))
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&digits, `digits`, `d`, 0, `significant decimal digits, or 0 for the shortest exact form`)
	return cmd
}

func (a *app) opsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   `ops [prefix]`,
		Short: `List the available operations`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prefix string
			if len(args) != 0 {
				prefix = strings.ToLower(args[0])
			}
			return writeOps(cmd.OutOrStdout(), a.reg.Ops(), prefix)
		},
	}
}

func writeOps(w io.Writer, ops []*numeric.Op, prefix string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	ops = slices.DeleteFunc(slices.Clone(ops), func(op *numeric.Op) bool {
		return !strings.HasPrefix(op.Name, prefix)
	})
	for _, op := range ops {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", op.Usage(), op.Summary); err != nil {
			return err
		}
	}
	return tw.Flush()
}
