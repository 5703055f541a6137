// Package feed builds ephemeral package-resolution environments: a generated
// config whose source list is exactly the local feeds, a cache redirected
// into the workspace, and an environment snapshot restored on close.
package feed

import "fmt"

// InstallRequest describes a single package installation. WorkspaceDir,
// ConfigPath and CacheDir are filled in by Context.Install; callers provide
// the package identity.
type InstallRequest struct {
	Package    string
	Version    string
	Prerelease bool
	// ArtifactPath is the package file itself, for managers that install
	// straight from a file instead of resolving through feeds.
	ArtifactPath string

	WorkspaceDir string
	ConfigPath   string
	CacheDir     string
}

// Manager describes one package manager CLI well enough for the harness to
// isolate it. The config schema is the manager's own; this interface is a
// pass-through, not an abstraction over resolution semantics.
type Manager interface {
	Name() string
	// CacheEnv is the environment variable the manager consults for its
	// global cache location.
	CacheEnv() string
	// GlobalCacheDir is where the manager would cache packages if left alone.
	GlobalCacheDir() (string, error)
	// WriteConfig renders the manager's configuration into dir with the given
	// ordered feeds (first is highest precedence) and cache directory, and
	// returns the config file path.
	WriteConfig(dir string, feeds []string, cacheDir string) (string, error)
	// InstallCommand returns the executable and arguments that install req.
	InstallCommand(req InstallRequest) (name string, args []string)
}

// ManagerByName resolves a manager from its configuration name. An empty
// name selects NuGet, the primary target.
func ManagerByName(name string) (Manager, error) {
	switch name {
	case "", "nuget":
		return NuGet{}, nil
	case "npm":
		return NPM{}, nil
	}
	return nil, fmt.Errorf("unknown package manager %q", name)
}
