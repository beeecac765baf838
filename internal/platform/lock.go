package platform

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"
)

const (
	defaultLockTimeout = 10 * time.Second
	defaultStaleAfter  = 5 * time.Minute
	lockRetryDelay     = 25 * time.Millisecond
	lockRetryJitter    = 25 * time.Millisecond
)

// ErrLockTimeout is returned when a lock could not be acquired in time.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// LockOptions tunes lock acquisition. Zero values select the defaults.
type LockOptions struct {
	Timeout time.Duration
	// StaleAfter is the age after which an abandoned lock file (left by a
	// crashed process) is broken.
	StaleAfter time.Duration
}

// FileLock is an advisory lock represented by an exclusively created file.
type FileLock struct {
	path string
	file *os.File
}

// AcquireLock creates path exclusively, retrying with jitter until the
// timeout elapses. The owning PID is written into the file for debugging.
func AcquireLock(path string, opts LockOptions) (*FileLock, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultLockTimeout
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = defaultStaleAfter
	}

	start := time.Now()
	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
			return &FileLock{path: path, file: f}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("creating lock file %s: %w", path, err)
		}

		if info, statErr := os.Stat(path); statErr == nil && time.Since(info.ModTime()) > opts.StaleAfter {
			breakStale(path, info)
			continue
		}

		if time.Since(start) > opts.Timeout {
			return nil, fmt.Errorf("%s: %w", path, ErrLockTimeout)
		}
		time.Sleep(lockRetryDelay + time.Duration(rand.Int63n(int64(lockRetryJitter))))
	}
}

// breakStale removes the lock file at path if it is still the file described
// by stale. The file is renamed aside first; when another process replaced
// the stale lock in the meantime, its fresh lock is linked back into place.
func breakStale(path string, stale os.FileInfo) {
	aside := fmt.Sprintf("%s.stale.%d.%d", path, os.Getpid(), rand.Int63())
	if err := os.Rename(path, aside); err != nil {
		return
	}
	if moved, err := os.Stat(aside); err == nil && !os.SameFile(stale, moved) {
		_ = os.Link(aside, path)
	}
	_ = os.Remove(aside)
}

// Release closes and removes the lock file. It is safe to call twice.
func (l *FileLock) Release() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	if l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// WithLock runs fn while holding the lock at path.
func WithLock(path string, opts LockOptions, fn func() error) error {
	lock, err := AcquireLock(path, opts)
	if err != nil {
		return err
	}
	defer lock.Release()
	return fn()
}
