package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/taskboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	t.Run("fresh initialization", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, Initialize(dir, false))

		cfg, err := config.Load(filepath.Join(dir, ConfigFile))
		require.NoError(t, err)
		assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
		assert.Equal(t, "default", cfg.Instance)

		info, err := os.Stat(filepath.Join(dir, StateDir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		gitignore, err := os.ReadFile(filepath.Join(dir, StateDir, ".gitignore"))
		require.NoError(t, err)
		assert.Equal(t, "*\n", string(gitignore))
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("old content"), 0644))

		err := Initialize(dir, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already initialized")

		content, err := os.ReadFile(filepath.Join(dir, ConfigFile))
		require.NoError(t, err)
		assert.Equal(t, "old content", string(content))
	})

	t.Run("force replaces config and keeps state", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("old content"), 0644))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, StateDir), 0755))
		statePath := filepath.Join(dir, StateDir, "state.db")
		require.NoError(t, os.WriteFile(statePath, []byte("saved"), 0644))

		require.NoError(t, Initialize(dir, true))

		_, err := config.Load(filepath.Join(dir, ConfigFile))
		require.NoError(t, err)

		saved, err := os.ReadFile(statePath)
		require.NoError(t, err)
		assert.Equal(t, "saved", string(saved))
	})
}

func TestCheckExisting(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, CheckExisting(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("x"), 0644))
	err := CheckExisting(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "taskboard init --force")
}

func TestPrintSuccess(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf)
	assert.Contains(t, buf.String(), "Successfully initialized taskboard")
	assert.Contains(t, buf.String(), "taskboard.yml")
}
