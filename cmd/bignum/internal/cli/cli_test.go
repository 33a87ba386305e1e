package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeycumines/go-bignum/bigf"
	"github.com/joeycumines/go-bignum/cmd/bignum/internal/logging"
	"github.com/joeycumines/go-bignum/numeric"
	"github.com/joeycumines/go-bignum/numerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Cleanup(func() {
		bigf.SetDefaultPrecision(0)
		bigf.SetConstantCacheSize(bigf.DefaultConstantCacheSize)
	})
	var stdout, stderr bytes.Buffer
	cmd := NewCommand(WithLogOptions(logging.WithTimeField(``)))
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// logLines decodes each JSON line written to stderr.
func logLines(t *testing.T, s string) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line == `` {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		lines = append(lines, m)
	}
	return lines
}

func TestEval(t *testing.T) {
	for _, tc := range [...]struct {
		name string
		args []string
		want string
	}{
		{`rationals`, []string{`eval`, `add`, `1/3`, `2/3`}, "1\n"},
		{`negative operand`, []string{`eval`, `div`, `-7`, `2`}, "-4\n"},
		{`multiple results`, []string{`eval`, `gcdext`, `240`, `46`}, "2 -9 47\n"},
		{`precision flag`, []string{`-p`, `128`, `eval`, `sqrt`, `2.0`}, "1.41421356237309504880168872420969807857\n"},
		{`precision after subcommand`, []string{`eval`, `--precision`, `24`, `float`, `1/3`}, "0.33333334\n"},
		{`base 16`, []string{`--base`, `16`, `eval`, `add`, `ff`, `1`}, "100\n"},
		{`base 16 rational`, []string{`-b`, `16`, `eval`, `mul`, `1/a`, `5`}, "1/2\n"},
		{`detect base`, []string{`--base`, `0`, `eval`, `mul`, `0x10`, `3`}, "48\n"},
		{`float`, []string{`eval`, `hypot`, `3`, `4`}, "5\n"},
		{`constant`, []string{`eval`, `euler`}, "0.5772156649015328606\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := run(t, ``, tc.args...)
			require.NoError(t, r.err)
			assert.Equal(t, tc.want, r.stdout)
			assert.Empty(t, r.stderr)
		})
	}
}

func TestEval_errors(t *testing.T) {
	r := run(t, ``, `eval`, `div`, `1`, `0`)
	require.ErrorIs(t, r.err, numerr.ErrDivisionByZero)
	assert.Empty(t, r.stdout)
	lines := logLines(t, r.stderr)
	require.Len(t, lines, 1)
	assert.Equal(t, `err`, lines[0][`lvl`])
	assert.Equal(t, `evaluation failed`, lines[0][`msg`])
	assert.Equal(t, `div`, lines[0][`op`])
	assert.Equal(t, `DivisionByZero`, lines[0][`kind`])
	assert.Contains(t, lines[0][`err`], `divisor is zero`)

	r = run(t, ``, `eval`, `nope`, `1`)
	require.ErrorIs(t, r.err, numeric.ErrUnknownOp)
	lines = logLines(t, r.stderr)
	require.Len(t, lines, 1)
	assert.Equal(t, `nope`, lines[0][`op`])
	assert.NotContains(t, lines[0], `kind`)

	r = run(t, ``, `eval`)
	require.Error(t, r.err)

	r = run(t, ``, `--log-level`, `disabled`, `eval`, `gcd`, `x`, `1`)
	require.ErrorIs(t, r.err, numerr.ErrParse)
	assert.Empty(t, r.stderr)
}

func TestEval_debugLogging(t *testing.T) {
	r := run(t, ``, `--log-level`, `debug`, `eval`, `sqrtrem`, `10`)
	require.NoError(t, r.err)
	require.Equal(t, "3 1\n", r.stdout)
	lines := logLines(t, r.stderr)
	require.Len(t, lines, 2)
	assert.Equal(t, `configured`, lines[0][`msg`])
	assert.Equal(t, `debug`, lines[1][`lvl`])
	assert.Equal(t, `evaluated`, lines[1][`msg`])
	assert.Equal(t, `sqrtrem`, lines[1][`op`])
	assert.Contains(t, lines[1], `took`)
}

func TestConfig_sources(t *testing.T) {
	t.Run(`env`, func(t *testing.T) {
		t.Setenv(`BIGNUM_PRECISION`, `24`)
		r := run(t, ``, `eval`, `float`, `1/3`)
		require.NoError(t, r.err)
		require.Equal(t, "0.33333334\n", r.stdout)
	})
	t.Run(`flag overrides env`, func(t *testing.T) {
		t.Setenv(`BIGNUM_PRECISION`, `24`)
		r := run(t, ``, `-p`, `53`, `eval`, `float`, `1/3`)
		require.NoError(t, r.err)
		require.Equal(t, "0.3333333333333333\n", r.stdout)
	})
	t.Run(`file`, func(t *testing.T) {
		file := filepath.Join(t.TempDir(), `bignum.yaml`)
		require.NoError(t, os.WriteFile(file, []byte("precision: 24\nbase: 16\nlog_level: debug\n"), 0o600))
		r := run(t, ``, `--config`, file, `eval`, `add`, `a`, `1`)
		require.NoError(t, r.err)
		require.Equal(t, "b\n", r.stdout)
		require.Len(t, logLines(t, r.stderr), 2)
	})
	t.Run(`missing file`, func(t *testing.T) {
		r := run(t, ``, `--config`, filepath.Join(t.TempDir(), `nope.yaml`), `eval`, `add`, `1`, `1`)
		require.Error(t, r.err)
	})
	for _, args := range [...][]string{
		{`-p`, `0`, `eval`, `pi`},
		{`--base`, `1`, `eval`, `pi`},
		{`--base`, `63`, `eval`, `pi`},
		{`--log-level`, `loud`, `eval`, `pi`},
	} {
		t.Run(strings.Join(args, ` `), func(t *testing.T) {
			r := run(t, ``, args...)
			require.Error(t, r.err)
			require.Empty(t, r.stdout)
		})
	}
}

func TestConst(t *testing.T) {
	r := run(t, ``, `-p`, `128`, `const`, `pi`, `-d`, `30`)
	require.NoError(t, r.err)
	require.Equal(t, "3.14159265358979323846264338328\n", r.stdout)

	r = run(t, ``, `const`, `euler`)
	require.NoError(t, r.err)
	require.Equal(t, "0.5772156649015328606\n", r.stdout)

	r = run(t, ``, `const`, `add`)
	require.Error(t, r.err)
	r = run(t, ``, `const`)
	require.Error(t, r.err)
	r = run(t, ``, `const`, `e`, `-d`, `-1`)
	require.Error(t, r.err)
}

func TestOps(t *testing.T) {
	r := run(t, ``, `ops`)
	require.NoError(t, r.err)
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, len(numeric.DefaultRegistry().Names()))
	assert.Regexp(t, `^atan2 y x +arctangent`, r.stdout[strings.Index(r.stdout, `atan2 `):])

	r = run(t, ``, `ops`, `GCD`)
	require.NoError(t, r.err)
	lines = strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], `gcd x y `), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `gcdext a b `), lines[1])
}

func TestRepl_lines(t *testing.T) {
	r := run(t, "add 1 2\n\n  prec 24\nfloat 1/3\nprec 0\nbad 1\nops lcm\nhelp\nexit\nadd 5 5\n", `repl`)
	require.NoError(t, r.err)
	lines := strings.Split(r.stdout, "\n")
	require.Equal(t, `3`, lines[0])
	require.Equal(t, `24`, lines[1])
	require.Equal(t, `0.33333334`, lines[2])
	require.Equal(t, `error: invalid precision "0"`, lines[3])
	require.True(t, strings.HasPrefix(lines[4], `error: `), lines[4])
	require.True(t, strings.HasPrefix(lines[5], `lcm x y `), lines[5])
	require.Contains(t, r.stdout, `show or set the working precision`)
	require.NotContains(t, r.stdout, "10\n")
	// the failed line is logged
	require.Len(t, logLines(t, r.stderr), 1)
}

func TestRepl_suggestions(t *testing.T) {
	a := &app{reg: numeric.DefaultRegistry()}
	s := a.suggestions()
	require.Len(t, s, len(a.reg.Names())+4)
	var found bool
	for _, v := range s {
		if v.Text == `zeta` {
			found = true
			assert.Equal(t, `Riemann zeta function`, v.Description)
		}
	}
	require.True(t, found)
}

func TestIsExit(t *testing.T) {
	require.True(t, isExit(` exit `))
	require.True(t, isExit(`quit`))
	require.False(t, isExit(`exit now`))
	require.False(t, isExit(``))
}
