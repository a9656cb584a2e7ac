package utils

import (
	"errors"
	"strings"
)

// 允许排序的字段白名单，按查询对象划分
var allowedSortFields = map[string]bool{
	"id":           true,
	"position_id":  true,
	"requester_id": true,
	"status":       true,
	"created_at":   true,
	"updated_at":   true,
	"reviewed_at":  true,
	"title":        true,
	"org_unit_id":  true,
	"sort_order":   true,
}

// ValidateSortField 验证排序字段，防止 SQL 注入
func ValidateSortField(field string) error {
	if field == "" {
		return errors.New("sort field cannot be empty")
	}

	// 白名单校验，拼入 ORDER BY 的字段只能来自这里
	if !allowedSortFields[strings.ToLower(field)] {
		return errors.New("invalid sort field")
	}

	return nil
}

// ValidateSortOrder 验证排序方向
func ValidateSortOrder(order string) error {
	upperOrder := strings.ToUpper(strings.TrimSpace(order))
	if upperOrder != "ASC" && upperOrder != "DESC" {
		return errors.New("sort order must be ASC or DESC")
	}
	return nil
}

// SanitizeSortField 清理排序字段，非法时回退到创建时间
func SanitizeSortField(field string) string {
	lower := strings.ToLower(strings.TrimSpace(field))
	if allowedSortFields[lower] {
		return lower
	}
	return "created_at"
}

// SanitizeSortOrder 清理排序方向
func SanitizeSortOrder(order string) string {
	upperOrder := strings.ToUpper(strings.TrimSpace(order))
	if upperOrder == "ASC" || upperOrder == "DESC" {
		return upperOrder
	}
	return "DESC" // 默认降序
}
