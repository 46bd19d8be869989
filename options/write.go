package options

import "github.com/julianedwards/tes3conv/encode"

type Write struct {
	// Path is the destination file; empty writes to standard output.
	Path string
	// Compact drops indentation from text output.
	Compact bool
	// Overwrite replaces an existing destination without backing it up.
	Overwrite bool
}

// IsStdout reports whether the converted plugin goes to standard output.
func (o Write) IsStdout() bool { return o.Path == "" }

func (o Write) Validate() error {
	if o.IsStdout() {
		return nil
	}

	if !encode.GetGlobalRegistry().Recognized(o.Path) {
		return &PathError{Path: o.Path, Reason: reasonInvalidType}
	}

	return nil
}
