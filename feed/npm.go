package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// NPM installs packed tarballs with the npm CLI. npm has no notion of a
// directory feed, so installs go straight from the packed .tgz (via
// InstallRequest.ArtifactPath); the generated .npmrc pins the cache and
// prefix inside the workspace and records the feed directories for humans
// reading the workspace afterwards.
type NPM struct{}

func (NPM) Name() string {
	return "npm"
}

func (NPM) CacheEnv() string {
	return "npm_config_cache"
}

func (NPM) GlobalCacheDir() (string, error) {
	return homedir.Expand(filepath.Join("~", ".npm"))
}

func (NPM) WriteConfig(dir string, feeds []string, cacheDir string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "cache=%s\n", cacheDir)
	fmt.Fprintf(&b, "prefix=%s\n", dir)
	b.WriteString("update-notifier=false\n")
	b.WriteString("audit=false\n")
	b.WriteString("fund=false\n")
	for _, feedDir := range feeds {
		fmt.Fprintf(&b, "; feed %s\n", feedDir)
	}

	path := filepath.Join(dir, ".npmrc")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (NPM) InstallCommand(req InstallRequest) (string, []string) {
	pkg := req.ArtifactPath
	if pkg == "" {
		pkg = req.Package
		if req.Version != "" {
			pkg += "@" + req.Version
		}
	}
	// prefix puts executables in <workspace>/bin, matching the tool-path
	// layout the scenario prepends to PATH.
	args := []string{
		"install", "--global",
		"--prefix", req.WorkspaceDir,
		"--cache", req.CacheDir,
		"--userconfig", req.ConfigPath,
		pkg,
	}
	return "npm", args
}
