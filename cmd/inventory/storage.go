package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/rl1809/shoe-inventory/internal/adapter/storage"
	"github.com/rl1809/shoe-inventory/internal/config"
	"github.com/rl1809/shoe-inventory/internal/port"
)

// openRepository connects the configured backend. The returned func
// releases its connections.
func openRepository(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (port.InventoryRepository, func(), error) {
	logger = logger.With(zap.String("backend", cfg.Backend))

	switch cfg.Backend {
	case config.BackendFile:
		logger.Debug("using inventory file", zap.String("path", cfg.FilePath))
		return storage.NewFileAdapter(cfg.FilePath, logger), func() {}, nil

	case config.BackendMySQL, config.BackendSQLite:
		db, err := openSQL(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		adapter := storage.NewSQLAdapter(db, logger)
		if err := adapter.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Debug("connected to database")
		return adapter, func() { db.Close() }, nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		logger.Debug("connected to redis", zap.String("addr", cfg.RedisAddr))
		return storage.NewRedisAdapter(rdb, cfg.RedisKey), func() { rdb.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func openSQL(ctx context.Context, cfg config.StorageConfig) (*sql.DB, error) {
	driver, dsn := "mysql", cfg.MySQLDSN
	if cfg.Backend == config.BackendSQLite {
		driver, dsn = "sqlite", cfg.SQLitePath
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// one writer at a time avoids SQLITE_BUSY on the shared file
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}
	return db, nil
}
