package options

import (
	"os"

	"github.com/julianedwards/tes3conv/encode"
	"github.com/pkg/errors"
)

// StdinPath is the input path that reads the plugin from standard input.
const StdinPath = "-"

const (
	reasonMissing     = "file does not exist"
	reasonInvalidType = "invalid file type"
)

// PathError reports an input or output path rejected before any I/O.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string { return "\"" + e.Path + "\" (" + e.Reason + ")" }

type Read struct {
	Path string
}

// IsStdin reports whether the plugin is read from standard input.
func (o Read) IsStdin() bool { return o.Path == StdinPath }

// Validate accepts StdinPath as is; any other path must have a recognized
// extension and name an existing file.
func (o Read) Validate() error {
	if o.IsStdin() {
		return nil
	}

	if !encode.GetGlobalRegistry().Recognized(o.Path) {
		return &PathError{Path: o.Path, Reason: reasonInvalidType}
	}

	if _, err := os.Stat(o.Path); err != nil {
		if os.IsNotExist(err) {
			return &PathError{Path: o.Path, Reason: reasonMissing}
		}
		return errors.Wrapf(err, "checking input '%s'", o.Path)
	}

	return nil
}
