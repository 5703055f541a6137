package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPMWriteConfig(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")

	path, err := NPM{}.WriteConfig(dir, []string{"/feeds/cli"}, cacheDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".npmrc"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "cache="+cacheDir)
	assert.Contains(t, content, "prefix="+dir)
	assert.Contains(t, content, "; feed /feeds/cli")
}

func TestNPMInstallCommand(t *testing.T) {
	t.Run("installs_from_the_packed_tarball", func(t *testing.T) {
		name, args := NPM{}.InstallCommand(InstallRequest{
			Package:      "sample-cli",
			Version:      "3.2.1",
			ArtifactPath: "/feeds/cli/sample-cli.3.2.1.tgz",
			WorkspaceDir: "/ws",
			ConfigPath:   "/ws/.npmrc",
			CacheDir:     "/ws/cache",
		})
		assert.Equal(t, "npm", name)
		assert.Equal(t, []string{
			"install", "--global",
			"--prefix", "/ws",
			"--cache", "/ws/cache",
			"--userconfig", "/ws/.npmrc",
			"/feeds/cli/sample-cli.3.2.1.tgz",
		}, args)
	})

	t.Run("falls_back_to_name_at_version", func(t *testing.T) {
		_, args := NPM{}.InstallCommand(InstallRequest{
			Package:      "sample-cli",
			Version:      "3.2.1",
			WorkspaceDir: "/ws",
		})
		assert.Contains(t, args, "sample-cli@3.2.1")
	})
}

func TestManagerByName(t *testing.T) {
	cases := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "nuget", false},
		{"nuget", "nuget", false},
		{"npm", "npm", false},
		{"cargo", "", true},
	}
	for _, tc := range cases {
		mgr, err := ManagerByName(tc.name)
		if tc.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, mgr.Name())
	}
}
