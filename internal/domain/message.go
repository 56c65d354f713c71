package domain

import "time"

// ContactMessage 表示一条来自网站联系表单的询盘。
//
// ID 由存储层单调分配，永不复用；CreatedAt 取存储端时钟，
// 插入后不再变更。没有更新操作：记录要么存在，要么被管理员删除。
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(50);not null"`
	Email     string    `json:"email" gorm:"type:varchar(50);not null"`
	Subject   string    `json:"subject" gorm:"type:varchar(100)"`
	Message   string    `json:"message" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定 GORM 表名，沿用线上已有的表
func (ContactMessage) TableName() string {
	return "contact_messages"
}
