// Package cli implements the bignum command tree.
package cli

import (
	"io"
	"strings"
	"time"

	"github.com/joeycumines/go-bignum/bigf"
	"github.com/joeycumines/go-bignum/cmd/bignum/internal/config"
	"github.com/joeycumines/go-bignum/cmd/bignum/internal/logging"
	"github.com/joeycumines/go-bignum/numeric"
	"github.com/joeycumines/go-bignum/numerr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is reported by --version.
var Version = `0.1.0-dev`

type app struct {
	v      *viper.Viper
	cfg    *config.Config
	log    *logging.Logger
	reg    *numeric.Registry
	ctx    bigf.Context
	logOpt []logging.Option
}

// Option configures NewCommand.
type Option func(a *app)

// WithLogOptions passes options through to logging.New.
func WithLogOptions(opts ...logging.Option) Option {
	return func(a *app) { a.logOpt = append(a.logOpt, opts...) }
}

// WithRegistry replaces the default operation registry.
func WithRegistry(r *numeric.Registry) Option {
	return func(a *app) { a.reg = r }
}

// NewCommand returns the root command. Output is written to the command's
// out stream, and logs to its err stream.
func NewCommand(opts ...Option) *cobra.Command {
	a := &app{v: config.New()}
	for _, o := range opts {
		o(a)
	}
	if a.reg == nil {
		a.reg = numeric.DefaultRegistry()
	}

	cmd := &cobra.Command{
		Use:   `bignum`,
		Short: `Arbitrary precision integer, rational, and float calculator`,
		Long: `bignum evaluates named operations over arbitrary precision integers (Z),
rationals (Q), and binary floats (F). Operands are parsed as rationals if they
contain a '/', as floats if they contain a '.' or an exponent, and otherwise as
integers. Mixed operands are promoted Z < Q < F.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	config.AddFlags(cmd.PersistentFlags())
	if err := config.BindFlags(a.v, cmd.PersistentFlags()); err != nil {
		panic(err)
	}

	cmd.AddCommand(
		a.evalCommand(),
		a.replCommand(),
		a.constCommand(),
		a.opsCommand(),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	file, err := cmd.Flags().GetString(`config`)
	if err != nil {
		return err
	}
	cfg, err := config.Load(a.v, file)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	cfg.Apply()
	a.cfg = cfg
	a.ctx = cfg.Context()
	a.log = logging.New(cmd.ErrOrStderr(), level, a.logOpt...)
	a.log.Debug().
		Uint64(`precision`, uint64(cfg.Precision)).
		Int(`base`, cfg.Base).
		Int(`const_cache_size`, cfg.ConstCacheSize).
		Log(`configured`)
	return nil
}

// eval evaluates one operation, logging the outcome.
func (a *app) eval(name string, args []string) ([]numeric.Value, error) {
	start := time.Now()
	res, err := a.reg.Eval(a.ctx, a.cfg.Base, name, args...)
	if err != nil {
		b := a.log.Err().
			Err(err).
			Str(`op`, name).
			Int(`args`, len(args))
		if kind := numerr.KindOf(err); kind != 0 {
			b = b.Str(`kind`, kind.String())
		}
		b.Log(`evaluation failed`)
		return nil, err
	}
	a.log.Debug().
		Str(`op`, name).
		Int(`args`, len(args)).
		Int(`results`, len(res)).
		Dur(`took`, time.Since(start)).
		Log(`evaluated`)
	return res, nil
}

// format renders results on one line, separated by spaces. Whole
// rationals are printed as integers.
func (a *app) format(res []numeric.Value) (string, error) {
	var b strings.Builder
	for i, v := range res {
		s, err := numeric.Normalize(v).Text(a.cfg.OutputBase())
		if err != nil {
			return ``, err
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func (a *app) evalLine(w io.Writer, name string, args []string) error {
	res, err := a.eval(name, args)
	if err != nil {
		return err
	}
	s, err := a.format(res)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s+"\n")
	return errors.WithStack(err)
}
