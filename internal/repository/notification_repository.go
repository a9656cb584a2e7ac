package repository

import (
	"github.com/mautops/headcount-gin/internal/model"
	"gorm.io/gorm"
)

// NotificationRepository 通知发件箱仓储接口
type NotificationRepository interface {
	Save(notification *model.NotificationModel) error
	FindByRequestID(requestID string) ([]*model.NotificationModel, error)
	FindByStatus(status string) ([]*model.NotificationModel, error)
}

// notificationRepository 通知发件箱仓储实现
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知发件箱仓储
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Save 保存通知
func (r *notificationRepository) Save(notification *model.NotificationModel) error {
	return r.db.Save(notification).Error
}

// FindByRequestID 根据请求 ID 查找通知
func (r *notificationRepository) FindByRequestID(requestID string) ([]*model.NotificationModel, error) {
	var notifications []*model.NotificationModel
	err := r.db.Where("request_id = ?", requestID).Order("created_at ASC").Find(&notifications).Error
	return notifications, err
}

// FindByStatus 根据状态查找通知
func (r *notificationRepository) FindByStatus(status string) ([]*model.NotificationModel, error) {
	var notifications []*model.NotificationModel
	err := r.db.Where("status = ?", status).Order("created_at ASC").Find(&notifications).Error
	return notifications, err
}
