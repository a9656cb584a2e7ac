package model

import (
	"errors"
	"time"
)

// HistoryEntryModel 请求状态变更历史数据模型
// 仅追加,按创建时间排序,同一请求的记录构成连续状态链
type HistoryEntryModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	RequestID string    `gorm:"type:varchar(64);not null;index" json:"request_id"`
	OldStatus *string   `gorm:"type:varchar(32)" json:"old_status"` // 创建记录时为 null
	NewStatus string    `gorm:"type:varchar(32);not null" json:"new_status"`
	ActorID   *string   `gorm:"type:varchar(64)" json:"actor_id,omitempty"` // 系统产生的记录为 null
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName 指定表名
func (HistoryEntryModel) TableName() string {
	return "request_history"
}

// Validate 验证历史记录模型
func (hem *HistoryEntryModel) Validate() error {
	if hem.ID == "" {
		return errors.New("history ID is required")
	}
	if hem.RequestID == "" {
		return errors.New("request ID is required")
	}
	if hem.NewStatus == "" {
		return errors.New("new status is required")
	}
	return nil
}
