package feed

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// NuGet drives the dotnet CLI. Isolation relies on two mechanisms working
// together: a nuget.config whose source list is exactly the local feeds with
// the defaults cleared, and the NUGET_PACKAGES variable redirected so no
// install touches the user's real global cache.
type NuGet struct{}

type nugetConfig struct {
	XMLName        xml.Name     `xml:"configuration"`
	Config         nugetSection `xml:"config"`
	PackageSources nugetSources `xml:"packageSources"`
}

type nugetSection struct {
	Add []nugetAdd `xml:"add"`
}

type nugetSources struct {
	Clear struct{}   `xml:"clear"`
	Add   []nugetAdd `xml:"add"`
}

type nugetAdd struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

func (NuGet) Name() string {
	return "nuget"
}

func (NuGet) CacheEnv() string {
	return "NUGET_PACKAGES"
}

func (NuGet) GlobalCacheDir() (string, error) {
	return homedir.Expand(filepath.Join("~", ".nuget", "packages"))
}

func (NuGet) WriteConfig(dir string, feeds []string, cacheDir string) (string, error) {
	cfg := nugetConfig{
		Config: nugetSection{
			Add: []nugetAdd{{Key: "globalPackagesFolder", Value: cacheDir}},
		},
	}
	for i, feedDir := range feeds {
		cfg.PackageSources.Add = append(cfg.PackageSources.Add, nugetAdd{
			Key:   fmt.Sprintf("local-%d", i),
			Value: feedDir,
		})
	}

	data, err := xml.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "nuget.config")
	if err := os.WriteFile(path, append([]byte(xml.Header), data...), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (NuGet) InstallCommand(req InstallRequest) (string, []string) {
	args := []string{
		"tool", "install", req.Package,
		"--tool-path", filepath.Join(req.WorkspaceDir, "bin"),
		"--configfile", req.ConfigPath,
	}
	if req.Version != "" {
		args = append(args, "--version", req.Version)
	}
	if req.Prerelease {
		args = append(args, "--prerelease")
	}
	return "dotnet", args
}
