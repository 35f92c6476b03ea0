package task

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// locksDirName is the subdirectory next to the data file holding lock files.
const locksDirName = ".locks"

// LockTimeout is the timeout for acquiring the data file lock.
const LockTimeout = 2 * time.Second

// Lock errors.
var (
	errLockTimeout  = errors.New("lock timeout")
	errLockFileOpen = errors.New("failed to open lock file")
)

// WithLock runs handler while holding an exclusive advisory lock for path.
// Two processes working on the same data file run their load, command and
// save steps one after the other.
func WithLock(path string, handler func() error) error {
	return WithLockTimeout(path, LockTimeout, handler)
}

// WithLockTimeout is WithLock with an explicit acquisition timeout.
func WithLockTimeout(path string, timeout time.Duration, handler func() error) error {
	lock, lockErr := acquireLock(path, timeout)
	if lockErr != nil {
		return fmt.Errorf("acquiring lock: %w", lockErr)
	}

	defer lock.release()

	return handler()
}

type fileLock struct {
	path string
	file *os.File
}

// release removes the lock file while still holding the lock, then unlocks.
func (l *fileLock) release() {
	if l.file != nil {
		_ = os.Remove(l.path)
		_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
		_ = l.file.Close()
		l.file = nil
	}
}

// acquireLock polls a non-blocking flock until it succeeds or timeout passes.
// After locking, the inode at the lock path is compared with the open file so
// a lock file removed by a releasing holder is not mistaken for ours.
func acquireLock(path string, timeout time.Duration) (*fileLock, error) {
	locksDir := filepath.Join(filepath.Dir(path), locksDirName)
	lockPath := filepath.Join(locksDir, filepath.Base(path)+".lock")

	deadline := time.Now().Add(timeout)

	for {
		mkdirErr := os.MkdirAll(locksDir, dirPerms)
		if mkdirErr != nil {
			return nil, fmt.Errorf("creating locks dir: %w", mkdirErr)
		}

		file, openErr := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, filePerms)
		if openErr != nil {
			return nil, fmt.Errorf("%w: %w", errLockFileOpen, openErr)
		}

		fd := int(file.Fd())

		err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			var openStat, pathStat unix.Stat_t

			fstatErr := unix.Fstat(fd, &openStat)
			statErr := unix.Stat(lockPath, &pathStat)

			if fstatErr == nil && statErr == nil && openStat.Ino == pathStat.Ino {
				return &fileLock{path: lockPath, file: file}, nil
			}

			// Lock file was replaced while we were acquiring it.
			_ = unix.Flock(fd, unix.LOCK_UN)
			_ = file.Close()

			continue
		}

		_ = file.Close()

		if !errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("flock: %w", err)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", errLockTimeout, path)
		}

		time.Sleep(10 * time.Millisecond)
	}
}
