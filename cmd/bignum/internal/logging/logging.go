// Package logging constructs the structured logger used by the bignum
// command, which writes JSON lines via stumpy.
package logging

import (
	"io"
	"strings"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/pkg/errors"
)

// Logger is the generic logger type passed around the command.
type Logger = logiface.Logger[logiface.Event]

var levels = [...]logiface.Level{
	logiface.LevelDisabled,
	logiface.LevelEmergency,
	logiface.LevelAlert,
	logiface.LevelCritical,
	logiface.LevelError,
	logiface.LevelWarning,
	logiface.LevelNotice,
	logiface.LevelInformational,
	logiface.LevelDebug,
	logiface.LevelTrace,
}

// LevelNames returns the accepted level names, most severe first.
func LevelNames() []string {
	names := make([]string, len(levels))
	for i, level := range levels {
		names[i] = level.String()
	}
	return names
}

// ParseLevel parses the short syslog keyword of a level (e.g. "info" or
// "err"), case-insensitively. The long forms "error" and "warn" are also
// accepted.
func ParseLevel(s string) (logiface.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case `error`:
		return logiface.LevelError, nil
	case `warn`:
		return logiface.LevelWarning, nil
	}
	for _, level := range levels {
		if level.String() == s {
			return level, nil
		}
	}
	return logiface.LevelDisabled, errors.Errorf(`logging: unknown level %q`, s)
}

// Option configures New.
type Option func(c *options)

type options struct {
	timeField string
}

// WithTimeField sets the key of the timestamp field, or disables it, if
// key is empty.
func WithTimeField(key string) Option {
	return func(c *options) { c.timeField = key }
}

// New returns a logger writing JSON lines to w, at the given level.
func New(w io.Writer, level logiface.Level, opts ...Option) *Logger {
	c := options{timeField: `time`}
	for _, o := range opts {
		o(&c)
	}
	return stumpy.L.New(
		stumpy.L.WithStumpy(
			stumpy.WithWriter(w),
			stumpy.WithTimeField(c.timeField),
		),
		stumpy.L.WithLevel(level),
	).Logger()
}
