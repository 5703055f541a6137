package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoArtifacts means the recursive search found no package files at all.
	ErrNoArtifacts = errors.New("no package artifacts found")
	// ErrUnknownArtifact means no located artifact matched the requested name.
	ErrUnknownArtifact = errors.New("artifact not found")
)

// Set is the result of one discovery pass. It is immutable once built, so a
// single Set can back any number of lookups during a test run.
type Set struct {
	artifacts []Artifact
}

// Locate recursively discovers package artifacts under the given roots.
// Filenames that don't parse into name+version are skipped, never errors, so
// unrelated package files in the same tree are tolerated. The result is
// deterministic for identical filesystem state: artifacts are sorted by path.
func Locate(roots ...string) (*Set, error) {
	var (
		mu  sync.Mutex
		all []Artifact
	)
	g := new(errgroup.Group)
	for _, root := range roots {
		g.Go(func() error {
			found, err := scan(root)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoArtifacts, strings.Join(roots, ", "))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Path < all[j].Path
	})
	return &Set{artifacts: all}, nil
}

func scan(root string) ([]Artifact, error) {
	var found []Artifact
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name, version, ok := parseFilename(d.Name())
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		found = append(found, Artifact{
			Name:    name,
			Version: version,
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return found, nil
}

// All returns every located artifact.
func (s *Set) All() []Artifact {
	return append([]Artifact(nil), s.artifacts...)
}

// FeedDirs returns the distinct directories containing artifacts, one feed
// per directory, de-duplicated and sorted.
func (s *Set) FeedDirs() []string {
	seen := map[string]bool{}
	var dirs []string
	for _, a := range s.artifacts {
		dir := a.Dir()
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

// LatestByName returns the artifact with the given name that was modified
// most recently. Modification time is the documented tie-break between
// versions of the same package: version strings are not guaranteed to order
// lexicographically ("10.0.0" < "2.0.0" as strings), while the most recent
// build is always the one under test.
func (s *Set) LatestByName(name string) (Artifact, error) {
	var (
		best  Artifact
		found bool
	)
	for _, a := range s.artifacts {
		if a.Name != name {
			continue
		}
		if !found || a.ModTime.After(best.ModTime) {
			best = a
			found = true
		}
	}
	if !found {
		return Artifact{}, fmt.Errorf("%w: %s", ErrUnknownArtifact, name)
	}
	return best, nil
}
