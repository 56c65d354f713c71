package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"promarch/backend/internal/config"
	"promarch/backend/internal/domain"
)

// 建表语句与线上 MySQL 表结构对齐，IF NOT EXISTS 保证幂等。
const createTableSQL = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(50) NOT NULL,
	email VARCHAR(50) NOT NULL,
	subject VARCHAR(100),
	message TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Store 基于 pgx 连接池的 PostgreSQL 存储实现。
//
// 与 GORM 实现等价，面向只跑 PostgreSQL 的部署，
// 不需要拖进 ORM。
type Store struct {
	pool *pgxpool.Pool
}

// NewStore 创建 PostgreSQL 存储并确保 schema 存在
func NewStore(cfg *config.DatabaseConfig) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// 测试连接
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{pool: pool}

	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate 确保 contact_messages 表存在（幂等）
func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, createTableSQL)
	return err
}

// SaveMessage 保存一条询盘，数据库分配自增 ID。
func (s *Store) SaveMessage(message *domain.ContactMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	row := s.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, subject, message, created_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 RETURNING id, created_at`,
		message.Name, message.Email, message.Subject, message.Message,
	)

	if err := row.Scan(&message.ID, &message.CreatedAt); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// ListMessages 返回全部询盘，按 ID 倒序。
func (s *Store) ListMessages() ([]domain.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, subject, message, created_at
		 FROM contact_messages
		 ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.ContactMessage, 0)
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	return messages, nil
}

// DeleteMessage 删除指定询盘；受影响行数为 0 不算错误。
func (s *Store) DeleteMessage(id uint) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// Close 关闭数据库连接池
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Health 检查数据库健康状态
func (s *Store) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
