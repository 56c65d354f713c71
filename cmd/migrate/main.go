package main

import (
	"fmt"

	"go.uber.org/zap"

	"promarch/backend/internal/config"
	"promarch/backend/internal/logger"
	"promarch/backend/internal/storage/postgres"
	sqlstore "promarch/backend/internal/storage/sql"
)

// main 对配置的数据库执行 schema 迁移后退出。
//
// API 服务启动时也会迁移（CREATE TABLE IF NOT EXISTS 语义），
// 这个命令用于部署流水线里提前建表，或用只有 DDL 权限的账号
// 单独跑迁移。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if cfg.Database.Type == "" {
		log.Fatal("nothing to migrate: database.type is empty (in-memory storage needs no schema)")
	}

	log.Info("running schema migration",
		zap.String("driver", cfg.Database.Type),
	)

	switch cfg.Database.Type {
	case "mysql", "postgres":
		store, err := sqlstore.NewStore(
			cfg.Database.Type,
			cfg.Database.DSN,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
			cfg.Database.ConnMaxLifetime,
		)
		if err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
		defer store.Close()

	case "pgx":
		store, err := postgres.NewStore(&cfg.Database)
		if err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
		defer store.Close()

	default:
		log.Fatal("unsupported database type", zap.String("type", cfg.Database.Type))
	}

	log.Info("schema migration completed")
}
