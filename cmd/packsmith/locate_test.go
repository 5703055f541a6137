package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoots(t *testing.T) {
	t.Run("arguments_win", func(t *testing.T) {
		roots, err := resolveRoots([]string{"/a", "/b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"/a", "/b"}, roots)
	})

	t.Run("config_file_next", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "packsmith.toml"),
			[]byte("artifact_root = \"/from/config\"\n"), 0o644))
		t.Chdir(dir)
		t.Setenv("PACKSMITH_ARTIFACT_ROOT", "/from/env")

		roots, err := resolveRoots(nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/from/config"}, roots)
	})

	t.Run("build_metadata_last", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("PACKSMITH_ARTIFACT_ROOT", "/from/env")

		roots, err := resolveRoots(nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/from/env"}, roots)
	})

	t.Run("nothing_configured", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("PACKSMITH_ARTIFACT_ROOT", "")

		_, err := resolveRoots(nil)
		assert.ErrorContains(t, err, "no artifact root")
	})
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}
