package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendMySQL  = "mysql"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

var ErrConfigExists = errors.New("config file already exists")

// Config holds all inventory manager configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and configures the backing store.
type StorageConfig struct {
	Backend    string `yaml:"backend"` // file, mysql, sqlite, redis
	FilePath   string `yaml:"file_path"`
	MySQLDSN   string `yaml:"mysql_dsn"`
	SQLitePath string `yaml:"sqlite_path"`
	RedisAddr  string `yaml:"redis_addr"`
	RedisKey   string `yaml:"redis_key"`
}

// ServerConfig configures the network surfaces started by `serve`.
type ServerConfig struct {
	HTTPAddr        string `yaml:"http_addr"`
	GRPCAddr        string `yaml:"grpc_addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	Output string `yaml:"output"` // stderr, stdout or a file path
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:    BackendFile,
			FilePath:   "inventory.txt",
			MySQLDSN:   "root:root@tcp(localhost:3306)/shoes?parseTime=true",
			SQLitePath: "inventory.db",
			RedisAddr:  "localhost:6379",
			RedisKey:   "inventory:shoes",
		},
		Server: ServerConfig{
			HTTPAddr:        ":8080",
			GRPCAddr:        ":50051",
			ShutdownTimeout: "5s",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
			Output: "stderr",
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults
// when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Encode writes the configuration as two-space indented YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

// Save writes the configuration to path. An existing file is only replaced
// when overwrite is set.
func (c *Config) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("INVENTORY_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("INVENTORY_FILE"); v != "" {
		c.Storage.FilePath = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		c.Storage.MySQLDSN = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Storage.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Storage.RedisAddr = v
	}

	if v := os.Getenv("INVENTORY_HTTP_ADDR"); v != "" {
		c.Server.HTTPAddr = v
	}
	if v := os.Getenv("INVENTORY_GRPC_ADDR"); v != "" {
		c.Server.GRPCAddr = v
	}

	if v := os.Getenv("INVENTORY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	backend := strings.ToLower(c.Storage.Backend)
	switch backend {
	case BackendFile:
		if c.Storage.FilePath == "" {
			return fmt.Errorf("storage.file_path is required for the file backend")
		}
	case BackendMySQL:
		if c.Storage.MySQLDSN == "" {
			return fmt.Errorf("storage.mysql_dsn is required for the mysql backend")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	c.Storage.Backend = backend

	if _, err := c.GetShutdownTimeout(); err != nil {
		return err
	}
	return nil
}
