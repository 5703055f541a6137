// Package harness composes artifact discovery, workspaces, feed contexts and
// process invocation into full install-and-exercise test scenarios.
package harness

import (
	"context"
	"fmt"

	"github.com/packsmith/packsmith/artifact"
	"github.com/packsmith/packsmith/feed"
	"github.com/packsmith/packsmith/invoke"
	"github.com/packsmith/packsmith/workspace"
)

// Scenario installs one locally built package into a fresh isolated
// workspace and hands control to an exercise callback. Resources nest
// workspace-outer, feed-context-inner and unwind in reverse on every exit
// path, so an exercise that fails, panics or is cancelled still leaves no
// trace behind.
type Scenario struct {
	Manager       feed.Manager
	ArtifactRoots []string
	Package       string
	// Version pins an exact version; empty selects the most recently
	// modified artifact with the package's name.
	Version    string
	Prerelease bool
}

// Env is the live state handed to the exercise callback. Everything in it is
// torn down when Run returns; don't retain it.
type Env struct {
	Workspace *workspace.Workspace
	Feed      *feed.Context
	Artifact  artifact.Artifact
	Install   *invoke.Result
}

// Tool runs the installed tool (resolved via PATH, which Run has already
// prepended the workspace bin dir to) and returns its captured result.
func (e *Env) Tool(ctx context.Context, args ...string) (*invoke.Result, error) {
	return invoke.Run(ctx, "", e.Artifact.Name, args...)
}

// Run walks the scenario end to end: locate the artifact, open a workspace,
// open a feed context over every discovered feed directory, install, prepend
// the workspace bin dir to PATH, then call exercise. The scenario treats a
// non-zero install exit as a failure; exercise decides everything after that.
func (s *Scenario) Run(ctx context.Context, exercise func(context.Context, *Env) error) error {
	set, err := artifact.Locate(s.ArtifactRoots...)
	if err != nil {
		return err
	}
	art, err := set.LatestByName(s.Package)
	if err != nil {
		return err
	}

	return workspace.With(func(ws *workspace.Workspace) error {
		fc, err := feed.Open(ctx, ws, s.Manager, set.FeedDirs())
		if err != nil {
			return err
		}
		defer fc.Close()

		version := s.Version
		if version == "" {
			version = art.Version
		}
		res, err := fc.Install(ctx, feed.InstallRequest{
			Package:      s.Package,
			Version:      version,
			Prerelease:   s.Prerelease,
			ArtifactPath: art.Path,
		})
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return fmt.Errorf("installing %s %s: exit code %d\nstdout: %s\nstderr: %s",
				s.Package, version, res.ExitCode, res.Stdout, res.Stderr)
		}

		if err := invoke.PrependPath(ws.BinDir()); err != nil {
			return err
		}

		return exercise(ctx, &Env{
			Workspace: ws,
			Feed:      fc,
			Artifact:  art,
			Install:   res,
		})
	})
}
