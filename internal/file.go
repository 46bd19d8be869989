package internal

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DefaultFileMode is used for output files that did not exist before.
const DefaultFileMode os.FileMode = 0o644

// WriteFile replaces path with data. The data goes to a temporary file in
// the same directory that is renamed over path once complete, so readers
// see either the old contents or the new ones. An existing file keeps its
// permission bits. When path is a symlink the file it points at is replaced
// and the link is kept.
func WriteFile(path string, data []byte) (err error) {
	if resolved, evalErr := filepath.EvalSymlinks(path); evalErr == nil {
		path = resolved
	}

	mode := DefaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "creating temporary file for '%s'", path)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing '%s'", tmp.Name())
	}
	if err = tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "setting mode of '%s'", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing '%s'", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replacing '%s'", path)
	}

	return nil
}
