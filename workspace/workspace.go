// Package workspace allocates scratch directories scoped to a single test
// execution. A workspace is created empty, owned exclusively by one test, and
// recursively deleted on every exit path.
package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	petname "github.com/dustinkirkland/golang-petname"
)

// Workspace is an ephemeral directory used as the install target, build
// output root, and config location for one test.
type Workspace struct {
	path string
}

// Path returns the workspace root directory.
func (w *Workspace) Path() string {
	return w.path
}

// Join resolves elem relative to the workspace root.
func (w *Workspace) Join(elem ...string) string {
	return filepath.Join(append([]string{w.path}, elem...)...)
}

// BinDir is where installed executables land. It must be prepended to PATH
// before invoking a freshly installed tool.
func (w *Workspace) BinDir() string {
	return w.Join("bin")
}

// CacheDir is the package cache location the global cache gets redirected to.
func (w *Workspace) CacheDir() string {
	return w.Join("cache")
}

// With runs fn with a fresh workspace and deletes it afterwards, on every
// exit path including panics. Deletion failures (e.g. a file still held open
// by a spawned process) are logged as warnings; fn's result always wins.
func With(fn func(*Workspace) error) error {
	ws, err := create()
	if err != nil {
		return err
	}
	defer ws.remove()
	return fn(ws)
}

func create() (*Workspace, error) {
	for range 10 {
		name := fmt.Sprintf("packsmith-%s-%04d", petname.Generate(2, "-"), rand.Intn(10000))
		path := filepath.Join(os.TempDir(), name)
		err := os.Mkdir(path, 0o755)
		if err == nil {
			ws := &Workspace{path: path}
			if err := os.MkdirAll(ws.BinDir(), 0o755); err != nil {
				ws.remove()
				return nil, err
			}
			return ws, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("creating workspace: %w", err)
		}
	}
	return nil, errors.New("could not allocate a unique workspace directory")
}

func (w *Workspace) remove() {
	if err := os.RemoveAll(w.path); err != nil {
		slog.Warn("workspace cleanup failed", "path", w.path, "error", err)
	}
}
