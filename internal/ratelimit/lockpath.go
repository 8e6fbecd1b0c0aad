package ratelimit

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const (
	lockFileName       = "genius-rate.lock"
	homeLockFileName   = ".genius-rate.lock"
	maxTimestampLength = 64
)

// DefaultLockPath returns genius-rate.lock in the working directory when that
// directory is writable, otherwise ~/.genius-rate.lock.
func DefaultLockPath() string {
	if cwd, err := os.Getwd(); err == nil && unix.Access(cwd, unix.W_OK) == nil {
		return filepath.Join(cwd, lockFileName)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, homeLockFileName)
	}
	return lockFileName
}
