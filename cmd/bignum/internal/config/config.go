// Package config loads the bignum command configuration, from defaults, an
// optional config file, BIGNUM_* environment variables, and flags, in
// increasing order of priority.
package config

import (
	"strings"

	"github.com/joeycumines/go-bignum/bigf"
	"github.com/joeycumines/go-bignum/cmd/bignum/internal/logging"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of environment variables, e.g.
	// BIGNUM_PRECISION.
	EnvPrefix = `BIGNUM`

	KeyPrecision      = `precision`
	KeyBase           = `base`
	KeyLogLevel       = `log_level`
	KeyConstCacheSize = `const_cache_size`
)

// Config is the resolved configuration.
type Config struct {
	// LogLevel is one of the logging.ParseLevel names.
	LogLevel string `mapstructure:"log_level"`
	// Precision is the working precision of floats, in bits.
	Precision uint `mapstructure:"precision"`
	// Base is the radix of integer and rational operands and results. Base 0
	// detects the radix of operands from their prefix, and formats in base
	// 10.
	Base int `mapstructure:"base"`
	// ConstCacheSize bounds the bigf constant cache, 0 disabling it.
	ConstCacheSize int `mapstructure:"const_cache_size"`
}

// New returns a viper instance with the defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPrecision, 64)
	v.SetDefault(KeyBase, 10)
	v.SetDefault(KeyLogLevel, `info`)
	v.SetDefault(KeyConstCacheSize, bigf.DefaultConstantCacheSize)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(`-`, `_`, `.`, `_`))
	v.AutomaticEnv()
	return v
}

// AddFlags registers the flags that override config keys.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(`config`, ``, `config file (json, yaml, or toml)`)
	fs.UintP(KeyPrecision, `p`, 64, `working precision of floats, in bits`)
	fs.IntP(KeyBase, `b`, 10, `radix of integers and rationals, 2-62, or 0 to detect prefixes`)
	fs.String(`log-level`, `info`, `one of `+strings.Join(logging.LevelNames(), `, `))
}

// BindFlags binds the flags registered by AddFlags, such that they
// override other sources only when set.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range map[string]string{
		KeyPrecision: KeyPrecision,
		KeyBase:      KeyBase,
		KeyLogLevel:  `log-level`,
	} {
		f := fs.Lookup(name)
		if f == nil {
			return errors.Errorf(`config: missing flag %q`, name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, `config: bind flag %q`, name)
		}
	}
	return nil
}

// Load reads file, if it is non-empty, then resolves and validates the
// configuration.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != `` {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, `config: read %s`, file)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, `config: unmarshal`)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every field is in range.
func (c *Config) Validate() error {
	switch {
	case c.Precision == 0 || c.Precision > bigf.MaxPrec:
		return errors.Errorf(`config: precision %d out of range [1, %d]`, c.Precision, uint64(bigf.MaxPrec))
	case c.Base != 0 && (c.Base < 2 || c.Base > 62):
		return errors.Errorf(`config: base %d out of range [2, 62]`, c.Base)
	case c.ConstCacheSize < 0:
		return errors.Errorf(`config: negative const_cache_size %d`, c.ConstCacheSize)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, `config`)
	}
	return nil
}

// Apply sets the process-wide bigf state from c.
func (c *Config) Apply() {
	bigf.SetDefaultPrecision(c.Precision)
	bigf.SetConstantCacheSize(c.ConstCacheSize)
}

// Context returns the float context for c.
func (c *Config) Context() bigf.Context {
	return bigf.Context{Prec: c.Precision}
}

// OutputBase returns the radix results are formatted in.
func (c *Config) OutputBase() int {
	if c.Base == 0 {
		return 10
	}
	return c.Base
}
