package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/packsmith/packsmith/invoke"
	"github.com/packsmith/packsmith/workspace"
)

// ErrWorkspaceUnavailable means the workspace path cannot be written to.
var ErrWorkspaceUnavailable = errors.New("workspace is not writable")

// openMu serializes contexts within the process. The cache-variable override
// is process-global state: two overlapping contexts would corrupt each
// other's environment snapshot, so the second Open blocks until the first
// context closes.
var openMu chan struct{} = make(chan struct{}, 1)

// Context is an isolated package-resolution environment bound to a
// workspace. While it is open, the manager's config points only at the given
// feeds and its global cache is redirected into the workspace. Close restores
// the prior environment exactly, including the was-unset case.
//
// A Context must never outlive its workspace: open it inside workspace.With
// and close it (defer works) before the workspace body returns.
type Context struct {
	mgr        Manager
	ws         *workspace.Workspace
	feeds      []string
	configPath string
	cacheDir   string

	savedCache string
	hadCache   bool

	fileLock *flock.Flock
	held     bool
	closed   bool
}

// Open builds the isolated environment inside ws. Opens are serialized
// process-wide and across processes; Open blocks until any other context for
// the same manager closes, or ctx is cancelled.
func Open(ctx context.Context, ws *workspace.Workspace, mgr Manager, feeds []string) (*Context, error) {
	if err := probeWritable(ws.Path()); err != nil {
		return nil, err
	}

	select {
	case openMu <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	c := &Context{
		mgr:      mgr,
		ws:       ws,
		feeds:    append([]string(nil), feeds...),
		cacheDir: ws.CacheDir(),
		held:     true,
	}
	ok := false
	defer func() {
		if !ok {
			c.release()
		}
	}()

	lock, err := acquireFileLock(ctx, mgr)
	if err != nil {
		return nil, err
	}
	c.fileLock = lock

	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceUnavailable, err)
	}
	configPath, err := mgr.WriteConfig(ws.Path(), c.feeds, c.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("writing %s config: %w", mgr.Name(), err)
	}
	c.configPath = configPath

	// Snapshot then redirect the global cache for the lifetime of the context.
	c.savedCache, c.hadCache = os.LookupEnv(mgr.CacheEnv())
	if err := os.Setenv(mgr.CacheEnv(), c.cacheDir); err != nil {
		return nil, err
	}

	ok = true
	return c, nil
}

// Close restores the environment captured at Open and releases the
// serialization locks. It is idempotent: the second and later calls are
// no-ops. Close succeeds (restoring the environment) regardless of whether
// the operations run inside the context did.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var restoreErr error
	if c.hadCache {
		restoreErr = os.Setenv(c.mgr.CacheEnv(), c.savedCache)
	} else {
		restoreErr = os.Unsetenv(c.mgr.CacheEnv())
	}
	c.release()
	return restoreErr
}

func (c *Context) release() {
	if c.fileLock != nil {
		if err := c.fileLock.Unlock(); err != nil {
			slog.Warn("releasing feed lock failed", "error", err)
		}
		c.fileLock = nil
	}
	if c.held {
		c.held = false
		<-openMu
	}
}

// Manager returns the descriptor the context was opened with.
func (c *Context) Manager() Manager {
	return c.mgr
}

// ConfigPath is the generated configuration file inside the workspace.
func (c *Context) ConfigPath() string {
	return c.configPath
}

// CacheDir is the redirected package cache inside the workspace.
func (c *Context) CacheDir() string {
	return c.cacheDir
}

// Feeds returns the ordered source list the config was built from.
func (c *Context) Feeds() []string {
	return append([]string(nil), c.feeds...)
}

// BinDir is where installed executables land.
func (c *Context) BinDir() string {
	return c.ws.BinDir()
}

// Install runs the manager's install command for req inside the context. A
// non-zero exit code is data in the Result, not an error; the caller decides
// whether it fails the test.
func (c *Context) Install(ctx context.Context, req InstallRequest) (*invoke.Result, error) {
	if c.closed {
		return nil, errors.New("feed context is closed")
	}
	req.WorkspaceDir = c.ws.Path()
	req.ConfigPath = c.configPath
	req.CacheDir = c.cacheDir
	name, args := c.mgr.InstallCommand(req)
	return invoke.Run(ctx, c.ws.Path(), name, args...)
}

func probeWritable(dir string) error {
	probe := filepath.Join(dir, ".packsmith-probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("%w: %s", ErrWorkspaceUnavailable, dir)
	}
	return os.Remove(probe)
}
