package options

import "github.com/mongodb/grip"

// Convert describes a single conversion run.
type Convert struct {
	Input  Read
	Output Write
	Backup Backup
}

// Validate checks every path and option without reading or writing
// anything, and reports all problems at once.
func (o *Convert) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.Add(o.Input.Validate())
	catcher.Add(o.Output.Validate())
	catcher.Add(o.Backup.Validate())

	return catcher.Resolve()
}
