package model

import (
	"errors"
	"strings"
	"time"
)

// 请求状态常量
const (
	RequestStatusPending  = "pending"  // 待审批
	RequestStatusApproved = "approved" // 已批准(终态)
	RequestStatusRejected = "rejected" // 已拒绝(终态)
)

// ChangeRequestModel 编制变更请求数据模型
type ChangeRequestModel struct {
	ID               string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	PositionID       string     `gorm:"type:varchar(64);not null;index" json:"position_id"`
	RequesterID      string     `gorm:"type:varchar(64);not null;index" json:"requester_id"`
	CurrentValue     int        `gorm:"type:int;not null" json:"current_value"`   // 创建时的编制快照
	RequestedValue   int        `gorm:"type:int;not null" json:"requested_value"` // 申请的编制数
	Reason           string     `gorm:"type:text;not null" json:"reason"`
	Status           string     `gorm:"type:varchar(32);not null;index" json:"status"`
	GovernanceBodyID string     `gorm:"type:varchar(64);index" json:"governance_body_id,omitempty"`
	ReviewedBy       *string    `gorm:"type:varchar(64)" json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes      string     `gorm:"type:text" json:"review_notes,omitempty"`
	CreatedAt        time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;index" json:"updated_at"`
}

// TableName 指定表名
func (ChangeRequestModel) TableName() string {
	return "change_requests"
}

// Validate 验证变更请求模型
func (crm *ChangeRequestModel) Validate() error {
	if crm.ID == "" {
		return errors.New("request ID is required")
	}
	if crm.PositionID == "" {
		return errors.New("position ID is required")
	}
	if crm.RequesterID == "" {
		return errors.New("requester ID is required")
	}
	if strings.TrimSpace(crm.Reason) == "" {
		return errors.New("reason is required")
	}
	if crm.RequestedValue < 0 {
		return errors.New("requested value must be non-negative")
	}
	if crm.Status == "" {
		return errors.New("request status is required")
	}
	return nil
}

// IsTerminal 判断请求是否处于终态
func (crm *ChangeRequestModel) IsTerminal() bool {
	return crm.Status == RequestStatusApproved || crm.Status == RequestStatusRejected
}
