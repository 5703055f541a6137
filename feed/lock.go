package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
)

// acquireFileLock takes a cross-process lock keyed by the manager's cache
// variable, so test binaries running in parallel processes cannot interleave
// their environment overrides either. The in-process openMu handles the
// single-process case; this handles everything else.
func acquireFileLock(ctx context.Context, mgr Manager) (*flock.Flock, error) {
	lockDir := filepath.Join(xdg.CacheHome, "packsmith", "locks")
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		lockDir = os.TempDir()
	}
	lockFile := filepath.Join(lockDir, fmt.Sprintf("feed-%x.lock", hashString(mgr.CacheEnv())))

	lock := flock.New(lockFile)
	locked, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquiring feed lock %s: %w", lockFile, err)
	}
	if !locked {
		return nil, fmt.Errorf("feed lock %s is held elsewhere", lockFile)
	}
	return lock, nil
}

// hashString creates a simple hash of a string for use in filenames
func hashString(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * 16777619
	}
	return h
}
