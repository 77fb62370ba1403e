package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// LockFileName is the advisory lock taken around writes.
const LockFileName = ".tickler.lock"

const lockRetryDelay = 25 * time.Millisecond

// withLock runs fn while holding the directory lock, if locking is enabled.
func (s *Store) withLock(fn func() error) error {
	if !s.locking {
		return fn()
	}

	lockPath := filepath.Join(s.dir, LockFileName)
	lock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return ioError("lock", lockPath, err)
	}
	if !locked {
		return ioError("lock", lockPath, fmt.Errorf("another tickler process is writing to %s", s.dir))
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("Failed to release lock", "path", lockPath, "error", err)
		}
	}()

	return fn()
}
