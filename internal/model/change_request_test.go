package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mautops/headcount-gin/internal/model"
)

func validRequest() *model.ChangeRequestModel {
	return &model.ChangeRequestModel{
		ID:             "req-001",
		PositionID:     "pos-001",
		RequesterID:    "user-001",
		CurrentValue:   5,
		RequestedValue: 8,
		Reason:         "业务扩张需要扩编",
		Status:         model.RequestStatusPending,
	}
}

// TestChangeRequestValidate 测试变更请求验证
func TestChangeRequestValidate(t *testing.T) {
	assert.NoError(t, validRequest().Validate())

	request := validRequest()
	request.ID = ""
	assert.Error(t, request.Validate())

	request = validRequest()
	request.PositionID = ""
	assert.Error(t, request.Validate())

	request = validRequest()
	request.RequesterID = ""
	assert.Error(t, request.Validate())

	request = validRequest()
	request.Reason = "   "
	assert.Error(t, request.Validate())

	request = validRequest()
	request.RequestedValue = -1
	assert.Error(t, request.Validate())

	// 申请编制数为零合法(岗位裁撤)
	request = validRequest()
	request.RequestedValue = 0
	assert.NoError(t, request.Validate())

	request = validRequest()
	request.Status = ""
	assert.Error(t, request.Validate())
}

// TestChangeRequestIsTerminal 测试终态判断
func TestChangeRequestIsTerminal(t *testing.T) {
	request := validRequest()
	assert.False(t, request.IsTerminal())

	request.Status = model.RequestStatusApproved
	assert.True(t, request.IsTerminal())

	request.Status = model.RequestStatusRejected
	assert.True(t, request.IsTerminal())
}

// TestChangeRequestTableName 测试表名
func TestChangeRequestTableName(t *testing.T) {
	assert.Equal(t, "change_requests", model.ChangeRequestModel{}.TableName())
}
