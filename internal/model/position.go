package model

import (
	"errors"
	"time"
)

// PositionModel 岗位数据模型
// AuthorizedHeadcount 只能在请求批准时被引擎写入
type PositionModel struct {
	ID                  string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title               string    `gorm:"type:varchar(255);not null" json:"title"`
	OrgUnitID           string    `gorm:"type:varchar(64);not null;index" json:"org_unit_id"`
	AuthorizedHeadcount int       `gorm:"type:int;not null;default:0" json:"authorized_headcount"`
	Active              bool      `gorm:"not null;index" json:"active"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (PositionModel) TableName() string {
	return "positions"
}

// Validate 验证岗位模型
func (pm *PositionModel) Validate() error {
	if pm.ID == "" {
		return errors.New("position ID is required")
	}
	if pm.Title == "" {
		return errors.New("position title is required")
	}
	if pm.OrgUnitID == "" {
		return errors.New("org unit ID is required")
	}
	if pm.AuthorizedHeadcount < 0 {
		return errors.New("authorized headcount must be non-negative")
	}
	return nil
}
