package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"promarch/backend/internal/config"
)

// RedisStore 基于 Redis 的会话存储，适用于多实例部署。
//
// 过期完全交给 Redis 的 TTL，无需清扫协程。
type RedisStore struct {
	rdb *goredis.Client
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 测试连接
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Save 写入会话
func (s *RedisStore) Save(session *Session, ttl time.Duration) error {
	session.ExpiresAt = time.Now().Add(ttl)

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return s.rdb.Set(ctx, sessionKey(session.ID), data, ttl).Err()
}

// Get 读取会话；不存在或已过期返回 (nil, nil)
func (s *RedisStore) Get(id string) (*Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := s.rdb.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// Delete 删除会话；不存在视为成功
func (s *RedisStore) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return s.rdb.Del(ctx, sessionKey(id)).Err()
}

// Close 关闭 Redis 连接
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
