package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNuGetWriteConfig(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")

	path, err := NuGet{}.WriteConfig(dir, []string{"/feeds/tool", "/feeds/task"}, cacheDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nuget.config"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	t.Run("clears_default_sources", func(t *testing.T) {
		assert.Contains(t, content, "<clear>", "defaults must be cleared so only the local feeds resolve")
	})

	t.Run("sources_in_order", func(t *testing.T) {
		assert.Contains(t, content, `key="local-0" value="/feeds/tool"`)
		assert.Contains(t, content, `key="local-1" value="/feeds/task"`)
		assert.Less(t, strings.Index(content, "/feeds/tool"), strings.Index(content, "/feeds/task"))
	})

	t.Run("cache_redirected", func(t *testing.T) {
		assert.Contains(t, content, `key="globalPackagesFolder"`)
		assert.Contains(t, content, cacheDir)
	})
}

func TestNuGetInstallCommand(t *testing.T) {
	name, args := NuGet{}.InstallCommand(InstallRequest{
		Package:      "sample-tool",
		Version:      "1.0.0",
		WorkspaceDir: "/ws",
		ConfigPath:   "/ws/nuget.config",
	})
	assert.Equal(t, "dotnet", name)
	assert.Equal(t, []string{
		"tool", "install", "sample-tool",
		"--tool-path", filepath.Join("/ws", "bin"),
		"--configfile", "/ws/nuget.config",
		"--version", "1.0.0",
	}, args)

	t.Run("prerelease_flag", func(t *testing.T) {
		_, args := NuGet{}.InstallCommand(InstallRequest{
			Package:      "sample-tool",
			Prerelease:   true,
			WorkspaceDir: "/ws",
			ConfigPath:   "/ws/nuget.config",
		})
		assert.Contains(t, args, "--prerelease")
		assert.NotContains(t, args, "--version")
	})
}

func TestNuGetCacheEnv(t *testing.T) {
	assert.Equal(t, "NUGET_PACKAGES", NuGet{}.CacheEnv())

	dir, err := NuGet{}.GlobalCacheDir()
	require.NoError(t, err)
	assert.Contains(t, dir, filepath.Join(".nuget", "packages"))
}
