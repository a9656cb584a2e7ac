package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mautops/headcount-gin/internal/model"
	"github.com/mautops/headcount-gin/internal/repository"
)

// TestGovernancePersistInactiveBody 测试停用机构的落库
// active 字段必须原样持久化,false 不能被列默认值覆盖成 true
func TestGovernancePersistInactiveBody(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGovernanceRepository(db)

	now := time.Now().UTC()
	require.NoError(t, repo.SaveBody(&model.GovernanceBodyModel{
		ID:         "gov-001",
		Name:       "已停用委员会",
		OrgUnitID:  "org-001",
		CanApprove: true,
		Active:     false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}))

	body, err := repo.FindBodyByID("gov-001")
	require.NoError(t, err)
	assert.False(t, body.Active)

	// 停用机构不出现在组织单元列表里
	bodies, err := repo.FindBodiesByOrgUnit("org-001")
	require.NoError(t, err)
	assert.Empty(t, bodies)
}

// TestGovernancePersistInactiveMembership 测试失效成员关系的落库
func TestGovernancePersistInactiveMembership(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGovernanceRepository(db)

	now := time.Now().UTC()
	require.NoError(t, repo.SaveBody(&model.GovernanceBodyModel{
		ID:         "gov-001",
		Name:       "编制委员会",
		OrgUnitID:  "org-001",
		CanApprove: true,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}))
	require.NoError(t, repo.SaveMembership(&model.GovernanceMembershipModel{
		ID:        "mem-001",
		BodyID:    "gov-001",
		UserID:    "user-001",
		Active:    false,
		CreatedAt: now,
	}))

	var membership model.GovernanceMembershipModel
	require.NoError(t, db.Where("id = ?", "mem-001").First(&membership).Error)
	assert.False(t, membership.Active)

	memberships, err := repo.FindActiveMembershipsByUser("user-001")
	require.NoError(t, err)
	assert.Empty(t, memberships)

	bodies, err := repo.FindApprovingBodiesForUser("user-001", "org-001")
	require.NoError(t, err)
	assert.Empty(t, bodies)
}

// TestFindApprovingBodiesForUser 测试审批授权联查
func TestFindApprovingBodiesForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGovernanceRepository(db)

	now := time.Now().UTC()
	require.NoError(t, repo.SaveBody(&model.GovernanceBodyModel{
		ID:         "gov-001",
		Name:       "编制委员会",
		OrgUnitID:  "org-001",
		CanApprove: true,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}))
	require.NoError(t, repo.SaveMembership(&model.GovernanceMembershipModel{
		ID:        "mem-001",
		BodyID:    "gov-001",
		UserID:    "user-001",
		Active:    true,
		CreatedAt: now,
	}))

	bodies, err := repo.FindApprovingBodiesForUser("user-001", "org-001")
	require.NoError(t, err)
	require.Len(t, bodies, 1)
	assert.Equal(t, "gov-001", bodies[0].ID)

	// 范围不匹配
	bodies, err = repo.FindApprovingBodiesForUser("user-001", "org-002")
	require.NoError(t, err)
	assert.Empty(t, bodies)
}
