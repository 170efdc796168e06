package scratch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"trajview/internal/services"
)

const cleanupStage = "cleanup"

// Dir is one run's scratch directory. The run tracks exactly the artifact
// paths it created and deletes precisely that set; cleanup never scans the
// directory, so repeated or interrupted runs cannot destroy another run's
// files.
type Dir struct {
	path     string
	lock     *flock.Flock
	lockPath string

	mu      sync.Mutex
	tracked []string
	cleaned bool
}

// New creates a unique run directory under stagingDir and acquires the
// staging lock so two runs cannot interleave their scratch bookkeeping.
func New(stagingDir string) (*Dir, error) {
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, cleanupStage, "prepare staging", stagingDir, err)
	}

	lockPath := filepath.Join(stagingDir, "trajview.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, cleanupStage, "acquire staging lock", lockPath, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, cleanupStage, "acquire staging lock",
			fmt.Sprintf("another trajview run holds %s", lockPath), nil)
	}

	runDir := filepath.Join(stagingDir, "run-"+uuid.NewString())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		_ = lock.Unlock()
		return nil, services.Wrap(services.ErrConfiguration, cleanupStage, "create run directory", runDir, err)
	}

	return &Dir{path: runDir, lock: lock, lockPath: lockPath}, nil
}

// Path returns the run directory.
func (d *Dir) Path() string {
	return d.path
}

// Track records an artifact path this run created so Cleanup can remove
// exactly that set. Safe for concurrent workers.
func (d *Dir) Track(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tracked = append(d.tracked, path)
}

// Tracked returns a copy of the recorded artifact paths in creation order.
func (d *Dir) Tracked() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.tracked))
	copy(out, d.tracked)
	return out
}

// Cleanup deletes every tracked artifact and the run directory, then releases
// the staging lock. It is idempotent and tolerates partial prior cleanup:
// already-missing files are skipped rather than failed.
func (d *Dir) Cleanup() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cleaned {
		return nil
	}

	var firstErr error
	for _, path := range d.tracked {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if firstErr == nil {
				firstErr = services.Wrap(services.ErrExternalTool, cleanupStage, "remove artifact", path, err)
			}
		}
	}
	if err := os.Remove(d.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		if firstErr == nil {
			firstErr = services.Wrap(services.ErrExternalTool, cleanupStage, "remove run directory", d.path, err)
		}
	}
	if firstErr != nil {
		return firstErr
	}

	d.cleaned = true
	return d.unlockLocked()
}

// Release frees the staging lock without deleting anything. Used on assembly
// failure so the artifacts stay in place for inspection.
func (d *Dir) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unlockLocked()
}

func (d *Dir) unlockLocked() error {
	if d.lock == nil {
		return nil
	}
	err := d.lock.Unlock()
	d.lock = nil
	if err != nil {
		return services.Wrap(services.ErrExternalTool, cleanupStage, "release staging lock", d.lockPath, err)
	}
	return nil
}
