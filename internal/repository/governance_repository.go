package repository

import (
	"github.com/mautops/headcount-gin/internal/model"
	"gorm.io/gorm"
)

// GovernanceRepository 审批机构仓储接口
type GovernanceRepository interface {
	SaveBody(body *model.GovernanceBodyModel) error
	SaveMembership(membership *model.GovernanceMembershipModel) error
	FindBodyByID(id string) (*model.GovernanceBodyModel, error)
	FindBodiesByOrgUnit(orgUnitID string) ([]*model.GovernanceBodyModel, error)
	FindActiveMembershipsByUser(userID string) ([]*model.GovernanceMembershipModel, error)
	// FindApprovingBodiesForUser 查找用户在给定组织范围内持有审批授权的机构
	// 仅包含 active 的成员关系和 active 且 can_approve 的机构
	FindApprovingBodiesForUser(userID string, orgUnitID string) ([]*model.GovernanceBodyModel, error)
}

// governanceRepository 审批机构仓储实现
type governanceRepository struct {
	db *gorm.DB
}

// NewGovernanceRepository 创建审批机构仓储
func NewGovernanceRepository(db *gorm.DB) GovernanceRepository {
	return &governanceRepository{db: db}
}

// SaveBody 保存审批机构
func (r *governanceRepository) SaveBody(body *model.GovernanceBodyModel) error {
	return r.db.Save(body).Error
}

// SaveMembership 保存成员关系
func (r *governanceRepository) SaveMembership(membership *model.GovernanceMembershipModel) error {
	return r.db.Save(membership).Error
}

// FindBodyByID 根据 ID 查找审批机构
func (r *governanceRepository) FindBodyByID(id string) (*model.GovernanceBodyModel, error) {
	var body model.GovernanceBodyModel
	if err := r.db.Where("id = ?", id).First(&body).Error; err != nil {
		return nil, err
	}
	return &body, nil
}

// FindBodiesByOrgUnit 根据组织单元查找审批机构
func (r *governanceRepository) FindBodiesByOrgUnit(orgUnitID string) ([]*model.GovernanceBodyModel, error) {
	var bodies []*model.GovernanceBodyModel
	err := r.db.Where("org_unit_id = ? AND active = ?", orgUnitID, true).
		Order("name ASC").
		Find(&bodies).Error
	return bodies, err
}

// FindActiveMembershipsByUser 查找用户的所有有效成员关系
func (r *governanceRepository) FindActiveMembershipsByUser(userID string) ([]*model.GovernanceMembershipModel, error) {
	var memberships []*model.GovernanceMembershipModel
	err := r.db.Where("user_id = ? AND active = ?", userID, true).Find(&memberships).Error
	return memberships, err
}

// FindApprovingBodiesForUser 查找用户在给定组织范围内持有审批授权的机构
func (r *governanceRepository) FindApprovingBodiesForUser(userID string, orgUnitID string) ([]*model.GovernanceBodyModel, error) {
	var bodies []*model.GovernanceBodyModel
	err := r.db.Model(&model.GovernanceBodyModel{}).
		Joins("JOIN governance_memberships ON governance_memberships.body_id = governance_bodies.id").
		Where("governance_memberships.user_id = ? AND governance_memberships.active = ?", userID, true).
		Where("governance_bodies.org_unit_id = ? AND governance_bodies.active = ? AND governance_bodies.can_approve = ?", orgUnitID, true, true).
		Find(&bodies).Error
	return bodies, err
}
