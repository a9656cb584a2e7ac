package model

import (
	"errors"
	"time"
)

// LookupValueModel 字典值数据模型
// 按类别组织的可配置枚举项(如变更原因),启动时加载到内存目录
type LookupValueModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Category  string    `gorm:"type:varchar(64);not null;index" json:"category"`
	Value     string    `gorm:"type:varchar(64);not null" json:"value"`
	Label     string    `gorm:"type:varchar(255);not null" json:"label"`
	SortOrder int       `gorm:"type:int;not null;default:0" json:"sort_order"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName 指定表名
func (LookupValueModel) TableName() string {
	return "lookup_values"
}

// Validate 验证字典值模型
func (lvm *LookupValueModel) Validate() error {
	if lvm.ID == "" {
		return errors.New("lookup value ID is required")
	}
	if lvm.Category == "" {
		return errors.New("lookup category is required")
	}
	if lvm.Value == "" {
		return errors.New("lookup value is required")
	}
	if lvm.Label == "" {
		return errors.New("lookup label is required")
	}
	return nil
}
