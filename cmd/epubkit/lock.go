package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// withDirLock runs fn while holding an exclusive lock on dir. The lock file
// sits next to dir rather than inside it so it never ends up in an archive.
// When the parent of dir does not exist there is nothing to guard and fn runs
// unlocked, reporting its own error.
func (c *commandContext) withDirLock(dir string, fn func() error) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	if _, err := os.Stat(filepath.Dir(abs)); err != nil {
		return fn()
	}

	lockPath := filepath.Clean(abs) + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return fmt.Errorf("working directory %s is in use by another epubkit process", abs)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.logger.Warn("failed to release working directory lock", "lock", lockPath, "error", err)
			return
		}
		if err := os.Remove(lockPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("failed to remove lock file", "lock", lockPath, "error", err)
		}
	}()

	return fn()
}
