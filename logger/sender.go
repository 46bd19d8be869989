// Package logger configures grip for command line use.
package logger

import (
	"github.com/julianedwards/tes3conv/options"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/logging"
	"github.com/mongodb/grip/send"
	"github.com/pkg/errors"
)

// NewSender returns a sender that writes to standard error, dropping
// messages below the level in opts.
func NewSender(opts options.Logger) (send.Sender, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid logger options")
	}

	s, err := send.NewErrorLogger(opts.Name, send.LevelInfo{
		Default:   level.Info,
		Threshold: opts.Priority(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating standard error sender")
	}

	return s, nil
}

// NewJournaler returns a journaler that sends to a sender built from opts.
func NewJournaler(opts options.Logger) (grip.Journaler, error) {
	s, err := NewSender(opts)
	if err != nil {
		return nil, err
	}

	return logging.MakeGrip(s), nil
}

// Default returns a journaler writing warnings and above to standard error.
func Default() grip.Journaler {
	s, err := NewSender(options.Logger{})
	if err != nil {
		s = send.MakeErrorLogger()
	}

	return logging.MakeGrip(s)
}
