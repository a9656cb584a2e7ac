package repository

import (
	"github.com/mautops/headcount-gin/internal/model"
	"gorm.io/gorm"
)

// HistoryRepository 状态历史仓储接口
// 仅追加,不暴露更新或删除
type HistoryRepository interface {
	Create(entry *model.HistoryEntryModel) error
	FindByRequestID(requestID string) ([]*model.HistoryEntryModel, error)
}

// historyRepository 状态历史仓储实现
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository 创建状态历史仓储
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Create 追加状态历史
func (r *historyRepository) Create(entry *model.HistoryEntryModel) error {
	return r.db.Create(entry).Error
}

// FindByRequestID 根据请求 ID 查找状态历史
// 按创建时间升序,时间相同时按插入顺序(主键)排序
func (r *historyRepository) FindByRequestID(requestID string) ([]*model.HistoryEntryModel, error) {
	var entries []*model.HistoryEntryModel
	err := r.db.Where("request_id = ?", requestID).Order("created_at ASC, id ASC").Find(&entries).Error
	return entries, err
}
