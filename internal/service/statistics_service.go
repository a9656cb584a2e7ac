package service

import (
	"fmt"

	"github.com/mautops/headcount-gin/internal/model"
	"gorm.io/gorm"
)

// StatisticsService 统计服务接口
type StatisticsService interface {
	GetRequestStatisticsByStatus() ([]*RequestStatisticsByStatus, error)
	GetResolutionStatistics() (*ResolutionStatistics, error)
}

// RequestStatisticsByStatus 按状态统计
type RequestStatisticsByStatus struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ResolutionStatistics 裁决统计
type ResolutionStatistics struct {
	TotalResolved int64   `json:"total_resolved"`
	ApprovedCount int64   `json:"approved_count"`
	RejectedCount int64   `json:"rejected_count"`
	ApprovalRate  float64 `json:"approval_rate"`
}

// statisticsService 统计服务实现
type statisticsService struct {
	db *gorm.DB
}

// NewStatisticsService 创建统计服务
func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetRequestStatisticsByStatus 按状态统计变更请求
func (s *statisticsService) GetRequestStatisticsByStatus() ([]*RequestStatisticsByStatus, error) {
	var results []struct {
		Status string
		Count  int64
	}

	err := s.db.Model(&model.ChangeRequestModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get request statistics by status: %w", err)
	}

	stats := make([]*RequestStatisticsByStatus, 0, len(results))
	for _, r := range results {
		stats = append(stats, &RequestStatisticsByStatus{
			Status: r.Status,
			Count:  r.Count,
		})
	}

	return stats, nil
}

// GetResolutionStatistics 获取裁决统计
func (s *statisticsService) GetResolutionStatistics() (*ResolutionStatistics, error) {
	var approved int64
	if err := s.db.Model(&model.ChangeRequestModel{}).
		Where("status = ?", model.RequestStatusApproved).
		Count(&approved).Error; err != nil {
		return nil, fmt.Errorf("failed to count approved requests: %w", err)
	}

	var rejected int64
	if err := s.db.Model(&model.ChangeRequestModel{}).
		Where("status = ?", model.RequestStatusRejected).
		Count(&rejected).Error; err != nil {
		return nil, fmt.Errorf("failed to count rejected requests: %w", err)
	}

	total := approved + rejected
	rate := 0.0
	if total > 0 {
		rate = float64(approved) / float64(total)
	}

	return &ResolutionStatistics{
		TotalResolved: total,
		ApprovedCount: approved,
		RejectedCount: rejected,
		ApprovalRate:  rate,
	}, nil
}
