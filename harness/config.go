package harness

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const configFile = "packsmith.toml"

// Config is the optional repo-level harness configuration.
type Config struct {
	ArtifactRoot string `toml:"artifact_root"`
	Manager      string `toml:"manager"`
	Prerelease   bool   `toml:"prerelease"`
}

// DefaultConfig returns the configuration used when no packsmith.toml exists.
func DefaultConfig() *Config {
	return &Config{
		Manager: "nuget",
	}
}

// Load overlays c with packsmith.toml from dir. A missing file is not an
// error; the defaults stand.
func (c *Config) Load(dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return toml.Unmarshal(data, c)
}
