package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad(t *testing.T) {
	t.Run("missing_file_keeps_defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Load(t.TempDir()))
		assert.Equal(t, "nuget", cfg.Manager)
		assert.Empty(t, cfg.ArtifactRoot)
	})

	t.Run("overlays_file_values", func(t *testing.T) {
		dir := t.TempDir()
		content := "artifact_root = \"/builds/artifacts\"\nmanager = \"npm\"\nprerelease = true\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "packsmith.toml"), []byte(content), 0o644))

		cfg := DefaultConfig()
		require.NoError(t, cfg.Load(dir))
		assert.Equal(t, "/builds/artifacts", cfg.ArtifactRoot)
		assert.Equal(t, "npm", cfg.Manager)
		assert.True(t, cfg.Prerelease)
	})

	t.Run("malformed_file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "packsmith.toml"), []byte("not toml ["), 0o644))

		cfg := DefaultConfig()
		assert.Error(t, cfg.Load(dir))
	})
}
