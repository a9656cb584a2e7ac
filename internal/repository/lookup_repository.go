package repository

import (
	"github.com/mautops/headcount-gin/internal/model"
	"gorm.io/gorm"
)

// LookupRepository 字典值仓储接口
type LookupRepository interface {
	Save(value *model.LookupValueModel) error
	FindByCategory(category string) ([]*model.LookupValueModel, error)
	FindAllActive() ([]*model.LookupValueModel, error)
}

// lookupRepository 字典值仓储实现
type lookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository 创建字典值仓储
func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

// Save 保存字典值
func (r *lookupRepository) Save(value *model.LookupValueModel) error {
	return r.db.Save(value).Error
}

// FindByCategory 根据类别查找有效字典值,按排序号排序
func (r *lookupRepository) FindByCategory(category string) ([]*model.LookupValueModel, error) {
	var values []*model.LookupValueModel
	err := r.db.Where("category = ? AND active = ?", category, true).
		Order("sort_order ASC").
		Find(&values).Error
	return values, err
}

// FindAllActive 查找所有有效字典值
func (r *lookupRepository) FindAllActive() ([]*model.LookupValueModel, error) {
	var values []*model.LookupValueModel
	err := r.db.Where("active = ?", true).
		Order("category ASC, sort_order ASC").
		Find(&values).Error
	return values, err
}
