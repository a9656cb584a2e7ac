package model

import (
	"errors"
	"time"
)

// GovernanceBodyModel 审批机构数据模型
// 审批机构是在某组织范围内持有审批授权的命名群体
type GovernanceBodyModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	OrgUnitID  string    `gorm:"type:varchar(64);not null;index" json:"org_unit_id"`
	CanApprove bool      `gorm:"not null" json:"can_approve"`
	Active     bool      `gorm:"not null;index" json:"active"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (GovernanceBodyModel) TableName() string {
	return "governance_bodies"
}

// Validate 验证审批机构模型
func (gbm *GovernanceBodyModel) Validate() error {
	if gbm.ID == "" {
		return errors.New("governance body ID is required")
	}
	if gbm.Name == "" {
		return errors.New("governance body name is required")
	}
	if gbm.OrgUnitID == "" {
		return errors.New("org unit ID is required")
	}
	return nil
}

// GovernanceMembershipModel 审批机构成员数据模型
type GovernanceMembershipModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	BodyID    string    `gorm:"type:varchar(64);not null;index" json:"body_id"`
	UserID    string    `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName 指定表名
func (GovernanceMembershipModel) TableName() string {
	return "governance_memberships"
}

// Validate 验证成员模型
func (gmm *GovernanceMembershipModel) Validate() error {
	if gmm.ID == "" {
		return errors.New("membership ID is required")
	}
	if gmm.BodyID == "" {
		return errors.New("body ID is required")
	}
	if gmm.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}
