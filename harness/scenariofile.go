package harness

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/packsmith/packsmith/feed"
	"github.com/packsmith/packsmith/invoke"
)

// ScenarioFile is a declarative scenario: install a package into an isolated
// workspace, run a command, and compare the observed output.
type ScenarioFile struct {
	Manager    string `yaml:"manager"`
	Package    string `yaml:"package"`
	Version    string `yaml:"version"`
	Prerelease bool   `yaml:"prerelease"`
	// Command defaults to the package name.
	Command      string   `yaml:"command"`
	Args         []string `yaml:"args"`
	WantExitCode int      `yaml:"want_exit_code"`
	// WantStdout is a substring match against captured standard output.
	WantStdout string `yaml:"want_stdout"`
}

// LoadScenarioFile reads and validates a YAML scenario.
func LoadScenarioFile(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf ScenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if sf.Package == "" {
		return nil, fmt.Errorf("scenario %s: package is required", path)
	}
	return &sf, nil
}

// Verify runs the scenario end to end against the given artifact roots.
func (sf *ScenarioFile) Verify(ctx context.Context, roots []string) error {
	mgr, err := feed.ManagerByName(sf.Manager)
	if err != nil {
		return err
	}
	s := &Scenario{
		Manager:       mgr,
		ArtifactRoots: roots,
		Package:       sf.Package,
		Version:       sf.Version,
		Prerelease:    sf.Prerelease,
	}
	return s.Run(ctx, func(ctx context.Context, env *Env) error {
		command := sf.Command
		if command == "" {
			command = sf.Package
		}
		res, err := invoke.Run(ctx, "", command, sf.Args...)
		if err != nil {
			return err
		}
		if res.ExitCode != sf.WantExitCode {
			return fmt.Errorf("%s exited %d, want %d\nstderr: %s",
				command, res.ExitCode, sf.WantExitCode, res.Stderr)
		}
		if sf.WantStdout != "" && !strings.Contains(res.Stdout, sf.WantStdout) {
			return fmt.Errorf("%s stdout %q does not contain %q", command, res.Stdout, sf.WantStdout)
		}
		return nil
	})
}
