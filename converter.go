// Package tes3conv converts TES3 plugins between the binary format and a
// diff friendly JSON form.
package tes3conv

import (
	"context"
	"io"
	"os"

	"github.com/julianedwards/tes3conv/encode"
	"github.com/julianedwards/tes3conv/encoding"
	"github.com/julianedwards/tes3conv/internal"
	"github.com/julianedwards/tes3conv/logger"
	"github.com/julianedwards/tes3conv/options"
	"github.com/julianedwards/tes3conv/tes3"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// Converter runs conversions. Each call to Convert is independent. The
// zero value reads standard input, writes standard output and logs
// warnings to standard error.
type Converter struct {
	Stdin  io.Reader
	Stdout io.Writer
	Logger grip.Journaler

	registry encoding.EncodingRegistry
	session  *BucketSession
}

// NewConverter returns a converter using the global encoding registry and
// local backup buckets.
func NewConverter() *Converter {
	return &Converter{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Logger:   logger.Default(),
		registry: encode.GetGlobalRegistry(),
		session:  NewLocalBucketSession(),
	}
}

func (c *Converter) withDefaults() *Converter {
	out := *c
	if out.Stdin == nil {
		out.Stdin = os.Stdin
	}
	if out.Stdout == nil {
		out.Stdout = os.Stdout
	}
	if out.Logger == nil {
		out.Logger = logger.Default()
	}
	if out.registry == nil {
		out.registry = encode.GetGlobalRegistry()
	}
	if out.session == nil {
		out.session = NewLocalBucketSession()
	}

	return &out
}

// Convert reads the input, decodes it in whichever format it is in, sorts
// the records, backs up an existing destination unless told to overwrite
// it, and writes the result in the format the destination's extension
// asks for. Nothing is read or written when the options are invalid, and
// the destination is left alone when any step before the write fails.
func (c *Converter) Convert(ctx context.Context, opts options.Convert) error {
	c = c.withDefaults()
	if err := opts.Validate(); err != nil {
		return errors.Wrap(err, "invalid conversion options")
	}

	data, err := c.read(opts.Input)
	if err != nil {
		return err
	}

	plugin, err := c.decode(opts.Input, data)
	if err != nil {
		return err
	}
	plugin.Sort()

	if !opts.Output.IsStdout() && !opts.Output.Overwrite {
		if _, err = os.Stat(opts.Output.Path); err == nil {
			if _, err = NewBackupManager(opts.Backup, c.session, c.Logger).Backup(ctx, opts.Output.Path); err != nil {
				return errors.Wrap(err, "backing up output")
			}
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, "checking output '%s'", opts.Output.Path)
		}
	}

	out := c.registry.ForOutput(opts.Output.Path)
	encoded, err := out.Marshal(plugin, opts.Output.Compact)
	if err != nil {
		return errors.Wrapf(err, "encoding as %s", out)
	}
	c.Logger.Debug(message.Fields{
		"message": "encoded plugin",
		"format":  out.String(),
		"compact": opts.Output.Compact,
		"bytes":   len(encoded),
	})

	return c.write(opts.Output, encoded)
}

func (c *Converter) read(opts options.Read) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if opts.IsStdin() {
		data, err = io.ReadAll(c.Stdin)
	} else {
		data, err = os.ReadFile(opts.Path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", displayPath(opts.Path))
	}

	c.Logger.Debug(message.Fields{
		"message": "read input",
		"input":   displayPath(opts.Path),
		"bytes":   len(data),
	})

	return data, nil
}

func (c *Converter) decode(opts options.Read, data []byte) (*tes3.Plugin, error) {
	in, err := c.registry.Sniff(data)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", displayPath(opts.Path))
	}

	plugin, err := in.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s as %s", displayPath(opts.Path), in)
	}

	c.Logger.Debug(message.Fields{
		"message": "decoded plugin",
		"input":   displayPath(opts.Path),
		"format":  in.String(),
		"records": len(plugin.Records),
	})

	return plugin, nil
}

func (c *Converter) write(opts options.Write, data []byte) error {
	if opts.IsStdout() {
		_, err := c.Stdout.Write(data)
		return errors.Wrap(err, "writing to stdout")
	}

	if err := internal.WriteFile(opts.Path, data); err != nil {
		return err
	}

	c.Logger.Debug(message.Fields{
		"message": "wrote output",
		"output":  opts.Path,
		"bytes":   len(data),
	})

	return nil
}

func displayPath(path string) string {
	if path == options.StdinPath {
		return "<stdin>"
	}

	return "'" + path + "'"
}
