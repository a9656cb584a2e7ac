package repository

import (
	"time"

	"github.com/mautops/headcount-gin/internal/model"
	"gorm.io/gorm"
)

// ChangeRequestRepository 变更请求仓储接口
type ChangeRequestRepository interface {
	Create(request *model.ChangeRequestModel) error
	Save(request *model.ChangeRequestModel) error
	FindByID(id string) (*model.ChangeRequestModel, error)
	FindAll() ([]*model.ChangeRequestModel, error)
	FindByFilter(filter *ChangeRequestFilter) ([]*model.ChangeRequestModel, error)
}

// ChangeRequestFilter 变更请求查询过滤器
type ChangeRequestFilter struct {
	Status           *string
	PositionID       *string
	RequesterID      *string
	GovernanceBodyID *string
	StartTime        *string
	EndTime          *string
}

// changeRequestRepository 变更请求仓储实现
type changeRequestRepository struct {
	db *gorm.DB
}

// NewChangeRequestRepository 创建变更请求仓储
func NewChangeRequestRepository(db *gorm.DB) ChangeRequestRepository {
	return &changeRequestRepository{db: db}
}

// Create 新建变更请求
func (r *changeRequestRepository) Create(request *model.ChangeRequestModel) error {
	return r.db.Create(request).Error
}

// Save 保存变更请求
func (r *changeRequestRepository) Save(request *model.ChangeRequestModel) error {
	return r.db.Save(request).Error
}

// FindByID 根据 ID 查找变更请求
func (r *changeRequestRepository) FindByID(id string) (*model.ChangeRequestModel, error) {
	var request model.ChangeRequestModel
	if err := r.db.Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// FindAll 查找所有变更请求
func (r *changeRequestRepository) FindAll() ([]*model.ChangeRequestModel, error) {
	var requests []*model.ChangeRequestModel
	err := r.db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// FindByFilter 根据过滤器查找变更请求
func (r *changeRequestRepository) FindByFilter(filter *ChangeRequestFilter) ([]*model.ChangeRequestModel, error) {
	var requests []*model.ChangeRequestModel
	query := r.db.Model(&model.ChangeRequestModel{})

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.PositionID != nil {
			query = query.Where("position_id = ?", *filter.PositionID)
		}
		if filter.RequesterID != nil {
			query = query.Where("requester_id = ?", *filter.RequesterID)
		}
		if filter.GovernanceBodyID != nil {
			query = query.Where("governance_body_id = ?", *filter.GovernanceBodyID)
		}
		if filter.StartTime != nil {
			query = query.Where("created_at >= ?", *filter.StartTime)
		}
		if filter.EndTime != nil {
			query = query.Where("created_at <= ?", *filter.EndTime)
		}
	}

	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// ResolvePending 对 pending 状态的请求执行条件更新
// 返回受影响的行数: 0 表示请求不存在或已处于终态
// 必须在调用方的事务内使用,这是并发裁决去重的关键
func ResolvePending(tx *gorm.DB, id string, status string, reviewedBy string, reviewedAt time.Time, notes string) (int64, error) {
	result := tx.Model(&model.ChangeRequestModel{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"reviewed_by":  reviewedBy,
			"reviewed_at":  reviewedAt,
			"review_notes": notes,
			"updated_at":   reviewedAt,
		})
	return result.RowsAffected, result.Error
}
