package repository

import (
	"github.com/mautops/headcount-gin/internal/model"
	"gorm.io/gorm"
)

// PositionRepository 岗位仓储接口
type PositionRepository interface {
	Save(position *model.PositionModel) error
	FindByID(id string) (*model.PositionModel, error)
	FindByOrgUnit(orgUnitID string) ([]*model.PositionModel, error)
	FindAll() ([]*model.PositionModel, error)
}

// positionRepository 岗位仓储实现
type positionRepository struct {
	db *gorm.DB
}

// NewPositionRepository 创建岗位仓储
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

// Save 保存岗位
func (r *positionRepository) Save(position *model.PositionModel) error {
	return r.db.Save(position).Error
}

// FindByID 根据 ID 查找岗位
func (r *positionRepository) FindByID(id string) (*model.PositionModel, error) {
	var position model.PositionModel
	if err := r.db.Where("id = ?", id).First(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

// FindByOrgUnit 根据组织单元查找岗位
func (r *positionRepository) FindByOrgUnit(orgUnitID string) ([]*model.PositionModel, error) {
	var positions []*model.PositionModel
	err := r.db.Where("org_unit_id = ? AND active = ?", orgUnitID, true).
		Order("title ASC").
		Find(&positions).Error
	return positions, err
}

// FindAll 查找所有在用岗位
func (r *positionRepository) FindAll() ([]*model.PositionModel, error) {
	var positions []*model.PositionModel
	err := r.db.Where("active = ?", true).Order("title ASC").Find(&positions).Error
	return positions, err
}
