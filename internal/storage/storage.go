package storage

import (
	"promarch/backend/internal/domain"
)

// MessageRepository 定义询盘数据存取操作。
//
// 约定：
//   - SaveMessage 由存储端分配 ID 与 CreatedAt，并回填到入参
//   - ListMessages 按 ID 倒序（最新在前）；无数据返回空切片而非错误
//   - DeleteMessage 幂等，删除不存在的 ID 视为成功
type MessageRepository interface {
	SaveMessage(message *domain.ContactMessage) error
	ListMessages() ([]domain.ContactMessage, error)
	DeleteMessage(id uint) error
}

// Store 是完整的存储接口，含生命周期管理。
type Store interface {
	MessageRepository

	Close() error
	Health() error
}
