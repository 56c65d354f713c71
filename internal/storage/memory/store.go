package memory

import (
	"sort"
	"sync"
	"time"

	"promarch/backend/internal/domain"
)

// Store 使用内存保存询盘数据，主要用于开发与测试。
//
// ID 单调递增且不复用：删除最大 ID 的记录后，
// 下一次插入仍然取更大的值。
type Store struct {
	mu       sync.RWMutex
	messages map[uint]*domain.ContactMessage
	nextID   uint
}

// NewStore 创建内存存储
func NewStore() *Store {
	return &Store{
		messages: make(map[uint]*domain.ContactMessage),
		nextID:   1,
	}
}

// SaveMessage 保存一条询盘，分配 ID 与 CreatedAt。
func (s *Store) SaveMessage(message *domain.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message.ID = s.nextID
	s.nextID++
	message.CreatedAt = time.Now().UTC()

	stored := *message
	s.messages[stored.ID] = &stored
	return nil
}

// ListMessages 返回全部询盘，按 ID 倒序。
func (s *Store) ListMessages() ([]domain.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ContactMessage, 0, len(s.messages))
	for _, message := range s.messages {
		result = append(result, *message)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// DeleteMessage 删除指定询盘；ID 不存在视为成功。
func (s *Store) DeleteMessage(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, id)
	return nil
}

// Close 关闭存储（内存实现为空操作）
func (s *Store) Close() error {
	return nil
}

// Health 检查存储健康状态（内存实现恒为健康）
func (s *Store) Health() error {
	return nil
}
