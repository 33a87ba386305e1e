package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joeycumines/go-bignum/bigf"
	prompt "github.com/joeycumines/go-prompt"
	pstrings "github.com/joeycumines/go-prompt/strings"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const replHelp = `enter "<op> [args...]", e.g. "add 1/3 0.5", or one of:
  ops [prefix]  list operations
  prec [bits]   show or set the working precision
  exit          leave
`

func (a *app) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   `repl`,
		Short: `Evaluate operations interactively`,
		Long: `Starts an interactive session, reading one operation per line, with
completion of operation names. If stdin is not a terminal, lines are read
until EOF, without prompting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				a.runPrompt(cmd.OutOrStdout())
				return nil
			}
			return a.runLines(in, cmd.OutOrStdout())
		},
	}
}

func (a *app) runPrompt(w io.Writer) {
	p := prompt.New(
		func(line string) { a.execLine(w, line) },
		prompt.WithPrefix(`bignum> `),
		prompt.WithTitle(`bignum`),
		prompt.WithCompleter(a.complete),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return breakline && isExit(in)
		}),
	)
	p.RunNoExit()
}

func (a *app) runLines(r io.Reader, w io.Writer) error {
	s := bufio.NewScanner(r)
	s.Buffer(nil, 1<<24)
	for s.Scan() {
		if a.execLine(w, s.Text()) {
			return nil
		}
	}
	return s.Err()
}

func isExit(line string) bool {
	switch strings.TrimSpace(line) {
	case `exit`, `quit`:
		return true
	}
	return false
}

// execLine evaluates one line of input, reporting whether to stop. Errors
// are written to w, rather than ending the session.
func (a *app) execLine(w io.Writer, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case `exit`, `quit`:
		return true
	case `help`, `?`:
		_, _ = io.WriteString(w, replHelp)
		return false
	case `ops`:
		var prefix string
		if len(fields) > 1 {
			prefix = strings.ToLower(fields[1])
		}
		if err := writeOps(w, a.reg.Ops(), prefix); err != nil {
			_, _ = fmt.Fprintf(w, "error: %v\n", err)
		}
		return false
	case `prec`:
		if len(fields) > 1 {
			prec, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil || prec == 0 || prec > bigf.MaxPrec {
				_, _ = fmt.Fprintf(w, "error: invalid precision %q\n", fields[1])
				return false
			}
			a.ctx.Prec = uint(prec)
		}
		_, _ = fmt.Fprintln(w, a.ctx.Prec)
		return false
	}
	if err := a.evalLine(w, fields[0], fields[1:]); err != nil {
		_, _ = fmt.Fprintf(w, "error: %v\n", err)
	}
	return false
}

func (a *app) complete(d prompt.Document) ([]prompt.Suggest, pstrings.RuneNumber, pstrings.RuneNumber) {
	end := d.CurrentRuneIndex()
	word := d.GetWordBeforeCursor()
	start := end - pstrings.RuneCountInString(word)
	if strings.ContainsRune(strings.TrimLeft(d.CurrentLineBeforeCursor(), ` `), ' ') {
		// only the operation name is completed
		return nil, start, end
	}
	return prompt.FilterHasPrefix(a.suggestions(), word, true), start, end
}

func (a *app) suggestions() []prompt.Suggest {
	ops := a.reg.Ops()
	s := make([]prompt.Suggest, 0, len(ops)+4)
	for _, op := range ops {
		s = append(s, prompt.Suggest{Text: op.Name, Description: op.Summary})
	}
	return append(s,
		prompt.Suggest{Text: `help`, Description: `show help`},
		prompt.Suggest{Text: `ops`, Description: `list operations`},
		prompt.Suggest{Text: `prec`, Description: `show or set the working precision`},
		prompt.Suggest{Text: `exit`, Description: `leave`},
	)
}
