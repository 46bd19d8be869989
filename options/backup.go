package options

import (
	"github.com/mongodb/grip"
)

const (
	// DefaultBackupLimit is the number of numbered backup slots, 000-999.
	DefaultBackupLimit = 1000
	maxBackupLimit     = DefaultBackupLimit
)

type Backup struct {
	// Dir holds the backups. Empty means next to the file being replaced.
	Dir string `toml:"dir"`
	// Limit is the number of slots tried before giving up. Zero selects
	// DefaultBackupLimit.
	Limit int `toml:"limit"`
}

func (o *Backup) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.ErrorfWhen(o.Limit < 0, "backup limit %d must not be negative", o.Limit)
	catcher.ErrorfWhen(o.Limit > maxBackupLimit, "backup limit %d exceeds %d", o.Limit, maxBackupLimit)

	if o.Limit == 0 {
		o.Limit = DefaultBackupLimit
	}

	return catcher.Resolve()
}
