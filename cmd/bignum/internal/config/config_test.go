package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joeycumines/go-bignum/bigf"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	c, err := Load(New(), ``)
	require.NoError(t, err)
	require.Equal(t, Config{
		LogLevel:       `info`,
		Precision:      64,
		Base:           10,
		ConstCacheSize: bigf.DefaultConstantCacheSize,
	}, *c)
	require.Equal(t, bigf.Context{Prec: 64}, c.Context())
	require.Equal(t, 10, c.OutputBase())
}

func TestLoad_precedence(t *testing.T) {
	file := filepath.Join(t.TempDir(), `bignum.json`)
	require.NoError(t, os.WriteFile(file, []byte(`{"precision": 100, "base": 0, "const_cache_size": 3}`), 0o600))
	t.Setenv(`BIGNUM_PRECISION`, `200`)
	t.Setenv(`BIGNUM_LOG_LEVEL`, `debug`)

	v := New()
	fs := pflag.NewFlagSet(`test`, pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, BindFlags(v, fs))

	c, err := Load(v, file)
	require.NoError(t, err)
	assert.Equal(t, uint(200), c.Precision)
	assert.Equal(t, 0, c.Base)
	assert.Equal(t, 10, c.OutputBase())
	assert.Equal(t, 3, c.ConstCacheSize)
	assert.Equal(t, `debug`, c.LogLevel)

	require.NoError(t, fs.Parse([]string{`--precision`, `300`, `--log-level`, `err`}))
	c, err = Load(v, ``)
	require.NoError(t, err)
	assert.Equal(t, uint(300), c.Precision)
	assert.Equal(t, `err`, c.LogLevel)
}

func TestBindFlags_missing(t *testing.T) {
	require.Error(t, BindFlags(New(), pflag.NewFlagSet(`empty`, pflag.ContinueOnError)))
}

func TestLoad_errors(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), `missing.yaml`))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), `bad.yaml`)
	require.NoError(t, os.WriteFile(bad, []byte("precision: [1\n"), 0o600))
	_, err = Load(New(), bad)
	require.Error(t, err)

	v := New()
	v.Set(KeyPrecision, `many`)
	_, err = Load(v, ``)
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{LogLevel: `info`, Precision: 64, Base: 10}
	require.NoError(t, valid.Validate())
	for name, mutate := range map[string]func(c *Config){
		`zero precision`: func(c *Config) { c.Precision = 0 },
		`huge precision`: func(c *Config) { c.Precision = bigf.MaxPrec + 1 },
		`base 1`:         func(c *Config) { c.Base = 1 },
		`base 63`:        func(c *Config) { c.Base = 63 },
		`negative base`:  func(c *Config) { c.Base = -16 },
		`negative cache`: func(c *Config) { c.ConstCacheSize = -1 },
		`log level`:      func(c *Config) { c.LogLevel = `verbose` },
	} {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
	c := valid
	c.Base = 0
	require.NoError(t, c.Validate())
	c.Base = 62
	require.NoError(t, c.Validate())
}

func TestConfig_Apply(t *testing.T) {
	t.Cleanup(func() {
		bigf.SetDefaultPrecision(0)
		bigf.SetConstantCacheSize(bigf.DefaultConstantCacheSize)
	})
	c := Config{LogLevel: `info`, Precision: 100, ConstCacheSize: 0}
	c.Apply()
	require.Equal(t, uint(100), bigf.DefaultPrecision())
	require.Equal(t, uint(100), bigf.Pi(0).Prec())
	require.Equal(t, 0, bigf.ConstantCacheLen())
}
