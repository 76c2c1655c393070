package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"INVENTORY_BACKEND", "INVENTORY_FILE", "MYSQL_DSN", "SQLITE_PATH",
		"REDIS_ADDR", "INVENTORY_HTTP_ADDR", "INVENTORY_GRPC_ADDR", "INVENTORY_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "inventory.txt", cfg.Storage.FilePath)
	assert.Equal(t, ":50051", cfg.Server.GRPCAddr)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "inventory.yaml")

	cfg := DefaultConfig()
	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.SQLitePath = "/var/lib/shoes.db"
	cfg.Logging.Level = "debug"
	require.NoError(t, cfg.Save(path, false))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_SaveRefusesExisting(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  file_path: keep.txt\n"), 0o644))

	err := DefaultConfig().Save(path, false)
	assert.ErrorIs(t, err, ErrConfigExists)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "keep.txt", loaded.Storage.FilePath)

	require.NoError(t, DefaultConfig().Save(path, true))
	loaded, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "inventory.txt", loaded.Storage.FilePath)
}

func TestConfig_Encode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultConfig().Encode(&buf))

	out := buf.String()
	assert.Contains(t, out, "storage:\n  backend: file\n")
	assert.Contains(t, out, "\n  shutdown_timeout: 5s\n")
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  file_path: stock.txt\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "stock.txt", cfg.Storage.FilePath)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("INVENTORY_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("INVENTORY_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "cache:6380", cfg.Storage.RedisAddr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Storage.Backend = "postgres"
		assert.Error(t, cfg.Validate())
	})

	t.Run("backend is normalised", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Storage.Backend = "MySQL"
		require.NoError(t, cfg.Validate())
		assert.Equal(t, BackendMySQL, cfg.Storage.Backend)
	})

	t.Run("file backend needs a path", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Storage.FilePath = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad shutdown timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Server.ShutdownTimeout = "soon"
		assert.Error(t, cfg.Validate())
	})
}

func TestGetShutdownTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.ShutdownTimeout = "250ms"

	d, err := cfg.GetShutdownTimeout()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
}
