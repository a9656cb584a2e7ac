package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mautops/headcount-gin/internal/utils"
)

// TestValidateRequestID 测试请求 ID 校验
func TestValidateRequestID(t *testing.T) {
	assert.NoError(t, utils.ValidateRequestID("req-001"))
	assert.NoError(t, utils.ValidateRequestID("req_abc_123"))

	assert.ErrorIs(t, utils.ValidateRequestID(""), utils.ErrEmptyID)
	assert.ErrorIs(t, utils.ValidateRequestID("req 001"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateRequestID("req/001"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateRequestID("req';--"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateRequestID(strings.Repeat("a", 65)), utils.ErrIDTooLong)
}

// TestValidateReason 测试变更理由校验
func TestValidateReason(t *testing.T) {
	assert.NoError(t, utils.ValidateReason("业务扩张需要扩编"))

	assert.ErrorIs(t, utils.ValidateReason("   "), utils.ErrEmptyString)
	assert.ErrorIs(t, utils.ValidateReason(strings.Repeat("a", 2001)), utils.ErrStringTooLong)
	assert.ErrorIs(t, utils.ValidateReason("<script>alert(1)</script>"), utils.ErrDangerousChars)
	assert.ErrorIs(t, utils.ValidateReason("x'; DROP TABLE change_requests"), utils.ErrDangerousChars)
}

// TestSanitizeString 测试字符串清理
func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", utils.SanitizeString("<b>bold</b>"))
	// 控制字符被移除,换行和制表符保留
	assert.Equal(t, "a\nb\tc", utils.SanitizeString("a\nb\tc\x00"))
}

// TestTrimAndValidate 测试清理验证组合
func TestTrimAndValidate(t *testing.T) {
	result, err := utils.TrimAndValidate("  hello  ", 10)
	assert.NoError(t, err)
	assert.Equal(t, "hello", result)

	_, err = utils.TrimAndValidate("   ", 10)
	assert.ErrorIs(t, err, utils.ErrEmptyString)

	_, err = utils.TrimAndValidate("too long string", 5)
	assert.ErrorIs(t, err, utils.ErrStringTooLong)
}
