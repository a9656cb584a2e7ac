package model

import (
	"errors"
	"time"
)

// 通知状态常量
const (
	NotificationStatusPending = "pending"
	NotificationStatusSuccess = "success"
	NotificationStatusFailed  = "failed"
)

// 通知类型常量
const (
	NotificationTypeSubmitted = "request.submitted"
	NotificationTypeApproved  = "request.approved"
	NotificationTypeRejected  = "request.rejected"
)

// NotificationModel 通知发件箱数据模型
// 状态转换提交后写入,由后台 worker 尽力投递,投递失败不影响业务
type NotificationModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)"`
	RequestID  string    `gorm:"type:varchar(64);not null;index"`
	Type       string    `gorm:"type:varchar(32);not null;index"`
	Payload    []byte    `gorm:"type:jsonb;not null"`
	Status     string    `gorm:"type:varchar(32);not null;default:'pending';index"`
	RetryCount int       `gorm:"type:int;default:0"`
	CreatedAt  time.Time `gorm:"not null;index"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName 指定表名
func (NotificationModel) TableName() string {
	return "notifications"
}

// Validate 验证通知模型
func (nm *NotificationModel) Validate() error {
	if nm.ID == "" {
		return errors.New("notification ID is required")
	}
	if nm.RequestID == "" {
		return errors.New("request ID is required")
	}
	if nm.Type == "" {
		return errors.New("notification type is required")
	}
	if len(nm.Payload) == 0 {
		return errors.New("notification payload is required")
	}
	if nm.Status == "" {
		nm.Status = NotificationStatusPending
	}
	return nil
}
