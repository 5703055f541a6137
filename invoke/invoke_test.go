package invoke

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("captures_stdout", func(t *testing.T) {
		res, err := Run(ctx, "", "sh", "-c", "echo hello")
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
		assert.Equal(t, "hello\n", res.Stdout)
		assert.Empty(t, res.Stderr)
	})

	t.Run("captures_stderr", func(t *testing.T) {
		res, err := Run(ctx, "", "sh", "-c", "echo oops >&2")
		require.NoError(t, err)
		assert.Equal(t, "oops\n", res.Stderr)
		assert.Empty(t, res.Stdout)
	})

	t.Run("nonzero_exit_is_data_not_error", func(t *testing.T) {
		res, err := Run(ctx, "", "sh", "-c", "exit 3")
		require.NoError(t, err)
		assert.Equal(t, 3, res.ExitCode)
	})

	t.Run("missing_executable_is_launch_error", func(t *testing.T) {
		_, err := Run(ctx, "", "definitely-not-a-real-binary-7f3a")
		assert.ErrorIs(t, err, ErrLaunch)
	})

	t.Run("working_directory", func(t *testing.T) {
		dir := t.TempDir()
		res, err := Run(ctx, dir, "pwd")
		require.NoError(t, err)
		assert.Contains(t, res.Stdout, filepath.Base(dir))
	})

	t.Run("cancellation_kills_the_child", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := Run(ctx, "", "sleep", "10")
		assert.Error(t, err)
	})
}

func TestPrependPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "packsmith-fake-tool")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\necho from-fake-tool\n"), 0o755))

	t.Setenv("PATH", os.Getenv("PATH"))
	require.NoError(t, PrependPath(dir))

	res, err := Run(context.Background(), "", "packsmith-fake-tool")
	require.NoError(t, err)
	assert.Equal(t, "from-fake-tool\n", res.Stdout)
}
