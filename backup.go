package tes3conv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianedwards/tes3conv/logger"
	"github.com/julianedwards/tes3conv/options"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// ErrBackupExhausted is returned when every numbered backup slot for a
// file is taken.
var ErrBackupExhausted = errors.New("no free backup slot")

// BackupManager copies a file aside before it is overwritten.
type BackupManager struct {
	opts    options.Backup
	session *BucketSession
	journal grip.Journaler
}

// NewBackupManager returns a manager that copies through buckets from
// session, or local directory buckets when session is nil. A nil journal
// logs warnings to standard error.
func NewBackupManager(opts options.Backup, session *BucketSession, journal grip.Journaler) *BackupManager {
	if session == nil {
		session = NewLocalBucketSession()
	}
	if journal == nil {
		journal = logger.Default()
	}
	if opts.Limit <= 0 {
		opts.Limit = options.DefaultBackupLimit
	}

	return &BackupManager{opts: opts, session: session, journal: journal}
}

// Backup copies path to the lowest numbered free slot, e.g. data.json to
// data.002.json when data.000.json and data.001.json exist, and returns
// the path of the copy.
func (m *BackupManager) Backup(ctx context.Context, path string) (string, error) {
	dir := m.opts.Dir
	if dir == "" {
		dir = filepath.Dir(path)
	}

	for n := 0; n < m.opts.Limit; n++ {
		slot := BackupPath(filepath.Base(path), n)
		candidate := filepath.Join(dir, slot)

		if _, err := os.Lstat(candidate); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return "", errors.Wrapf(err, "checking backup slot '%s'", candidate)
		}

		bucket, err := m.session.Create(ctx, dir)
		if err != nil {
			return "", errors.Wrap(err, "opening backup directory")
		}
		if err = bucket.Upload(ctx, slot, path); err != nil {
			return "", errors.Wrapf(err, "copying '%s' to '%s'", path, candidate)
		}

		m.journal.Info(message.Fields{
			"message": "created backup",
			"path":    path,
			"backup":  candidate,
		})

		return candidate, nil
	}

	return "", errors.Wrapf(ErrBackupExhausted, "'%s' already has %d backups", path, m.opts.Limit)
}

// BackupPath splices a three digit slot number in front of the extension
// of path.
func BackupPath(path string, n int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s.%03d%s", strings.TrimSuffix(path, ext), n, ext)
}
