package options

import (
	"github.com/mongodb/grip/level"
	"github.com/pkg/errors"
)

const (
	DefaultLoggerName  = "tes3conv"
	DefaultLoggerLevel = "warning"
)

type Logger struct {
	Name string `toml:"-"`
	// Level is the grip priority threshold, e.g. "debug", "info" or
	// "warning". Successful conversions log nothing above info.
	Level string `toml:"level"`
}

func (o *Logger) Validate() error {
	if o.Name == "" {
		o.Name = DefaultLoggerName
	}
	if o.Level == "" {
		o.Level = DefaultLoggerLevel
	}

	if !o.Priority().IsValid() {
		return errors.Errorf("unrecognized log level '%s'", o.Level)
	}

	return nil
}

// Priority returns the grip priority named by Level.
func (o Logger) Priority() level.Priority { return level.FromString(o.Level) }
