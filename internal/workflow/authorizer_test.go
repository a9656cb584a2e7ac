package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mautops/headcount-gin/internal/model"
	"github.com/mautops/headcount-gin/internal/workflow"
)

func seedGovernance(t *testing.T, db *gorm.DB, body *model.GovernanceBodyModel, membership *model.GovernanceMembershipModel) {
	now := time.Now().UTC()
	body.CreatedAt = now
	body.UpdatedAt = now
	require.NoError(t, db.Create(body).Error)
	if membership != nil {
		membership.CreatedAt = now
		require.NoError(t, db.Create(membership).Error)
	}
}

// TestAuthorizerCanApprove 测试审批授权判定
func TestAuthorizerCanApprove(t *testing.T) {
	db := setupTestDB(t)
	seedGovernance(t, db,
		&model.GovernanceBodyModel{ID: "gov-001", Name: "编制委员会", OrgUnitID: "org-001", CanApprove: true, Active: true},
		&model.GovernanceMembershipModel{ID: "mem-001", BodyID: "gov-001", UserID: "approver-001", Active: true},
	)
	authorizer := workflow.NewGovernanceAuthorizer(db)

	// 活跃审批机构的活跃成员
	allowed, err := authorizer.CanApprove("approver-001", "org-001")
	require.NoError(t, err)
	assert.True(t, allowed)

	// 非成员
	allowed, err = authorizer.CanApprove("outsider-001", "org-001")
	require.NoError(t, err)
	assert.False(t, allowed)

	// 成员但组织范围不匹配
	allowed, err = authorizer.CanApprove("approver-001", "org-002")
	require.NoError(t, err)
	assert.False(t, allowed)

	// 空参数直接拒绝,不访问数据库
	allowed, err = authorizer.CanApprove("", "org-001")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = authorizer.CanApprove("approver-001", "")
	require.NoError(t, err)
	assert.False(t, allowed)
}

// TestAuthorizerInactiveBody 测试停用的审批机构不授予权限
func TestAuthorizerInactiveBody(t *testing.T) {
	db := setupTestDB(t)
	seedGovernance(t, db,
		&model.GovernanceBodyModel{ID: "gov-001", Name: "已停用委员会", OrgUnitID: "org-001", CanApprove: true, Active: false},
		&model.GovernanceMembershipModel{ID: "mem-001", BodyID: "gov-001", UserID: "approver-001", Active: true},
	)
	authorizer := workflow.NewGovernanceAuthorizer(db)

	allowed, err := authorizer.CanApprove("approver-001", "org-001")
	require.NoError(t, err)
	assert.False(t, allowed)
}

// TestAuthorizerBodyWithoutApprovalRight 测试无审批权的机构
func TestAuthorizerBodyWithoutApprovalRight(t *testing.T) {
	db := setupTestDB(t)
	seedGovernance(t, db,
		&model.GovernanceBodyModel{ID: "gov-001", Name: "咨询委员会", OrgUnitID: "org-001", CanApprove: false, Active: true},
		&model.GovernanceMembershipModel{ID: "mem-001", BodyID: "gov-001", UserID: "approver-001", Active: true},
	)
	authorizer := workflow.NewGovernanceAuthorizer(db)

	allowed, err := authorizer.CanApprove("approver-001", "org-001")
	require.NoError(t, err)
	assert.False(t, allowed)
}

// TestAuthorizerInactiveMembership 测试失效的成员关系
func TestAuthorizerInactiveMembership(t *testing.T) {
	db := setupTestDB(t)
	seedGovernance(t, db,
		&model.GovernanceBodyModel{ID: "gov-001", Name: "编制委员会", OrgUnitID: "org-001", CanApprove: true, Active: true},
		&model.GovernanceMembershipModel{ID: "mem-001", BodyID: "gov-001", UserID: "approver-001", Active: false},
	)
	authorizer := workflow.NewGovernanceAuthorizer(db)

	allowed, err := authorizer.CanApprove("approver-001", "org-001")
	require.NoError(t, err)
	assert.False(t, allowed)
}
