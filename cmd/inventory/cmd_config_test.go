package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/shoe-inventory/internal/config"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		configPath, filePath, backend, verbose, forceConfig = "", "", "", false, false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigInit_WritesEffectiveConfig(t *testing.T) {
	t.Setenv("INVENTORY_FILE", "")
	t.Setenv("INVENTORY_BACKEND", "")
	path := filepath.Join(t.TempDir(), "inventory.yaml")

	out, err := executeRoot(t, "config", "init", "--config", path, "--file", "stock.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "stock.txt", loaded.Storage.FilePath)
}

func TestConfigInit_KeepsExistingWithoutForce(t *testing.T) {
	t.Setenv("INVENTORY_FILE", "")
	t.Setenv("INVENTORY_BACKEND", "")
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	original := []byte("storage:\n  file_path: mine.txt\n")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	_, err := executeRoot(t, "config", "init", "--config", path, "--file", "other.txt")
	assert.ErrorIs(t, err, config.ErrConfigExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestConfigShow(t *testing.T) {
	t.Setenv("INVENTORY_FILE", "")
	t.Setenv("INVENTORY_BACKEND", "")

	out, err := executeRoot(t, "config", "show", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "file_path: inventory.txt")
}
