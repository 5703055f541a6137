package artifact

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// extensions are the package file types the locator recognizes.
var extensions = map[string]bool{
	".nupkg": true,
	".tgz":   true,
}

// Artifact is a built, installable package file on disk. Name and Version are
// derived from the filename, which follows the {name}.{version}.{ext}
// convention shared by nupkg and packed-tarball outputs.
type Artifact struct {
	Name    string
	Version string
	Path    string
	Size    int64
	ModTime time.Time
}

// Dir returns the directory containing the package file. Every distinct
// directory becomes one feed.
func (a Artifact) Dir() string {
	return filepath.Dir(a.Path)
}

// SemVer parses the artifact version as strict semver. Version strings are
// not required to be semver (four-part nupkg versions are common), so callers
// that only want ordering should prefer ModTime.
func (a Artifact) SemVer() (*semver.Version, error) {
	return semver.NewVersion(a.Version)
}

// parseFilename splits a package filename into name and version. The version
// starts at the first dot-separated segment that begins with a digit, so
// dotted package names ("Sample.Tool.2.1.0-beta.1.nupkg") parse correctly.
// Filenames that don't fit the convention report ok=false and are skipped.
func parseFilename(filename string) (name, version string, ok bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extensions[ext] {
		return "", "", false
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	segments := strings.Split(base, ".")
	for i, seg := range segments {
		if seg == "" {
			return "", "", false
		}
		if seg[0] >= '0' && seg[0] <= '9' {
			if i == 0 {
				// A version with no name prefix is not an artifact.
				return "", "", false
			}
			return strings.Join(segments[:i], "."), strings.Join(segments[i:], "."), true
		}
	}
	return "", "", false
}
