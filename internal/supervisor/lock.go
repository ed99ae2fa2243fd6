package supervisor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"

	"github.com/wagiedev/rigctld-sdk-go/internal/errors"
)

// PortLock is an advisory per-port lock shared by cooperating processes.
type PortLock struct {
	port int
	lock *flock.Flock
}

// LockPort takes the lock for port in the system temp directory.
// Returns errors.ErrPortLocked if another lifecycle holds it.
func LockPort(port int) (*PortLock, error) {
	return LockPortIn(os.TempDir(), port)
}

// LockPortIn takes the lock for port using a lock file under dir.
func LockPortIn(dir string, port int) (*PortLock, error) {
	path := filepath.Join(dir, "rigctld-"+strconv.Itoa(port)+".lock")
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire port lock %s: %w", path, err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: port %d (%s)", errors.ErrPortLocked, port, path)
	}

	return &PortLock{port: port, lock: lock}, nil
}

// Port returns the locked port.
func (l *PortLock) Port() int {
	return l.port
}

// Path returns the lock file path.
func (l *PortLock) Path() string {
	return l.lock.Path()
}

// Unlock releases the lock. Safe to call multiple times.
func (l *PortLock) Unlock() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release port lock %s: %w", l.lock.Path(), err)
	}

	return nil
}
