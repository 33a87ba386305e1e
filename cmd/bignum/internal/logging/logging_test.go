package logging

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]logiface.Level{
		`info`:     logiface.LevelInformational,
		` DEBUG `:  logiface.LevelDebug,
		`err`:      logiface.LevelError,
		`error`:    logiface.LevelError,
		`warn`:     logiface.LevelWarning,
		`warning`:  logiface.LevelWarning,
		`trace`:    logiface.LevelTrace,
		`disabled`: logiface.LevelDisabled,
		`emerg`:    logiface.LevelEmergency,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel(`loud`)
	require.Error(t, err)
}

func TestLevelNames(t *testing.T) {
	names := LevelNames()
	require.Equal(t, `disabled`, names[0])
	require.Equal(t, `trace`, names[len(names)-1])
	for _, name := range names {
		_, err := ParseLevel(name)
		require.NoError(t, err, name)
	}
}

func TestNew_level(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, logiface.LevelInformational, WithTimeField(``))
	l.Debug().Str(`op`, `add`).Log(`hidden`)
	l.Info().Str(`op`, `add`).Log(`shown`)
	l.Err().Err(errors.New(`boom`)).Log(`failed`)
	require.Equal(t, `{"lvl":"info","op":"add","msg":"shown"}
{"lvl":"err","err":"boom","msg":"failed"}
`, buf.String())
}

func TestNew_timeField(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, logiface.LevelDebug).Debug().Log(`x`)
	require.Regexp(t, `^\{"time":"[^"]+","lvl":"debug","msg":"x"\}\n$`, buf.String())
}

func ExampleNew() {
	l := New(os.Stdout, logiface.LevelDebug, WithTimeField(``))
	l.Debug().
		Str(`op`, `gcd`).
		Int(`args`, 2).
		Log(`evaluated`)
	l.Err().
		Err(fmt.Errorf(`bigz.Div: DivisionByZero: divisor is zero`)).
		Str(`kind`, `DivisionByZero`).
		Log(`evaluation failed`)
	//output:
	//{"lvl":"debug","op":"gcd","args":2,"msg":"evaluated"}
	//{"lvl":"err","err":"bigz.Div: DivisionByZero: divisor is zero","kind":"DivisionByZero","msg":"evaluation failed"}
}
