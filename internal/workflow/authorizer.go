package workflow

import (
	"github.com/mautops/headcount-gin/internal/repository"
	"gorm.io/gorm"
)

// Authorizer 审批授权检查接口
type Authorizer interface {
	// CanApprove 判断操作人在给定组织范围内是否持有审批授权
	// 纯查询,无成员关系时返回 false 而不是错误
	CanApprove(actorID string, scopeID string) (bool, error)
}

// governanceAuthorizer 基于审批机构成员关系的授权检查实现
type governanceAuthorizer struct {
	governanceRepo repository.GovernanceRepository
}

// NewGovernanceAuthorizer 创建授权检查器
func NewGovernanceAuthorizer(db *gorm.DB) Authorizer {
	return &governanceAuthorizer{
		governanceRepo: repository.NewGovernanceRepository(db),
	}
}

// CanApprove 判断操作人在给定组织范围内是否持有审批授权
func (a *governanceAuthorizer) CanApprove(actorID string, scopeID string) (bool, error) {
	if actorID == "" || scopeID == "" {
		return false, nil
	}

	bodies, err := a.governanceRepo.FindApprovingBodiesForUser(actorID, scopeID)
	if err != nil {
		return false, err
	}

	return len(bodies) > 0, nil
}
