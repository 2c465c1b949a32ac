package freshness

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock is the cross-process lock held by a background refresh while it runs.
type Lock struct {
	fl *flock.Flock
}

// NewLock returns a Lock backed by the file at path.
func NewLock(path string) *Lock {
	return &Lock{fl: flock.New(path)}
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// TryLock acquires the lock without waiting. It returns false when another process
// holds it.
func (l *Lock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0o755); err != nil {
		return false, fmt.Errorf("cannot create lock dir: %w", err)
	}
	locked, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("cannot acquire refresh lock: %w", err)
	}
	return locked, nil
}

// Unlock releases the lock.
func (l *Lock) Unlock() error {
	return l.fl.Unlock()
}
