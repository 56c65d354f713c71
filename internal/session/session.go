package session

import (
	"time"

	"github.com/google/uuid"
)

// Session 表示一个管理会话。
//
// 会话只有一个业务标志位：是否已通过管理密钥认证。
// 过期的会话等同于不存在。
type Session struct {
	ID            string    `json:"id"`
	Authenticated bool      `json:"authenticated"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Expired 判断会话是否已过期
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store 定义会话存取操作。
//
// 实现有两种：单实例部署用内存实现，
// 水平扩展部署用 Redis 实现（TTL 由 Redis 原生管理）。
type Store interface {
	// Save 写入会话，ttl 到期后自动失效
	Save(session *Session, ttl time.Duration) error
	// Get 读取会话；不存在或已过期返回 (nil, nil)
	Get(id string) (*Session, error)
	// Delete 删除会话；不存在视为成功
	Delete(id string) error
	// Close 释放底层资源
	Close() error
}

// NewID 生成不可猜测的会话标识
func NewID() string {
	return uuid.NewString()
}
