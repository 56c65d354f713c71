package session

import (
	"sync"
	"time"
)

// 过期会话的后台清扫间隔
const sweepInterval = 10 * time.Minute

// MemoryStore 基于内存的会话存储，适用于单实例部署。
//
// Get 对过期会话按不存在处理；后台协程定期清扫，
// 避免长期运行后过期条目堆积。
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	done     chan struct{}
	once     sync.Once
}

// NewMemoryStore 创建内存会话存储并启动清扫协程
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}

	go store.sweep()

	return store
}

// Save 写入会话
func (s *MemoryStore) Save(session *Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *session
	stored.ExpiresAt = time.Now().Add(ttl)
	s.sessions[stored.ID] = &stored
	return nil
}

// Get 读取会话；不存在或已过期返回 (nil, nil)
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if session.Expired() {
		// 顺手删除，无需等待清扫
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, nil
	}

	copied := *session
	return &copied, nil
}

// Delete 删除会话；不存在视为成功
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Close 停止清扫协程
func (s *MemoryStore) Close() error {
	s.once.Do(func() {
		close(s.done)
	})
	return nil
}

// sweep 定期清理过期会话
func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, session := range s.sessions {
				if now.After(session.ExpiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
