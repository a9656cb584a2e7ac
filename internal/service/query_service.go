package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mautops/headcount-gin/internal/model"
	"github.com/mautops/headcount-gin/internal/repository"
	"github.com/mautops/headcount-gin/internal/utils"
	"github.com/mautops/headcount-gin/internal/workflow"
	"gorm.io/gorm"
)

// QueryService 查询服务接口
type QueryService interface {
	ListRequests(filter *ListRequestsFilter) ([]*model.ChangeRequestModel, int64, error)
	GetHistory(requestID string) ([]*HistoryEntry, error)
	GetSignatures(requestID string) ([]*Signature, error)
	ListPositions(orgUnitID string) ([]*model.PositionModel, error)
	GetPosition(id string) (*model.PositionModel, error)
}

// ListRequestsFilter 请求列表查询过滤器
type ListRequestsFilter struct {
	Status      *string
	PositionID  *string
	RequesterID *string
	StartTime   *string
	EndTime     *string
	Page        int
	PageSize    int
	SortBy      string
	Order       string
}

// HistoryEntry 状态历史(对外表示)
type HistoryEntry struct {
	ID        string  `json:"id"`
	RequestID string  `json:"request_id"`
	OldStatus *string `json:"old_status"`
	NewStatus string  `json:"new_status"`
	ActorID   *string `json:"actor_id,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// Signature 签名(对外表示)
type Signature struct {
	ID               string `json:"id"`
	RequestID        string `json:"request_id"`
	SignerID         string `json:"signer_id"`
	GovernanceBodyID string `json:"governance_body_id,omitempty"`
	SignatureType    string `json:"signature_type"`
	SignatureHash    string `json:"signature_hash"`
	SignedAt         string `json:"signed_at"`
}

// queryService 查询服务实现
type queryService struct {
	db            *gorm.DB
	historyRepo   repository.HistoryRepository
	signatureRepo repository.SignatureRepository
	positionRepo  repository.PositionRepository
}

// NewQueryService 创建查询服务
func NewQueryService(db *gorm.DB) QueryService {
	return &queryService{
		db:            db,
		historyRepo:   repository.NewHistoryRepository(db),
		signatureRepo: repository.NewSignatureRepository(db),
		positionRepo:  repository.NewPositionRepository(db),
	}
}

// ListRequests 列出变更请求
func (s *queryService) ListRequests(filter *ListRequestsFilter) ([]*model.ChangeRequestModel, int64, error) {
	query := s.db.Model(&model.ChangeRequestModel{})

	// 应用过滤条件
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PositionID != nil {
		query = query.Where("position_id = ?", *filter.PositionID)
	}
	if filter.RequesterID != nil {
		query = query.Where("requester_id = ?", *filter.RequesterID)
	}
	if filter.StartTime != nil {
		query = query.Where("created_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("created_at <= ?", *filter.EndTime)
	}

	// 获取总数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	// 应用排序(验证排序字段,防止 SQL 注入)
	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	if err := utils.ValidateSortField(sortBy); err != nil {
		return nil, 0, fmt.Errorf("invalid sort field: %w", err)
	}

	order := filter.Order
	if order == "" {
		order = "desc"
	}
	if err := utils.ValidateSortOrder(order); err != nil {
		return nil, 0, fmt.Errorf("invalid sort order: %w", err)
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, strings.ToUpper(order)))

	// 应用分页
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	query = query.Offset((page - 1) * pageSize).Limit(pageSize)

	var requests []*model.ChangeRequestModel
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query requests: %w", err)
	}

	return requests, total, nil
}

// GetHistory 获取状态历史
func (s *queryService) GetHistory(requestID string) ([]*HistoryEntry, error) {
	models, err := s.historyRepo.FindByRequestID(requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	entries := make([]*HistoryEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, &HistoryEntry{
			ID:        m.ID,
			RequestID: m.RequestID,
			OldStatus: m.OldStatus,
			NewStatus: m.NewStatus,
			ActorID:   m.ActorID,
			Notes:     m.Notes,
			CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return entries, nil
}

// GetSignatures 获取签名记录
func (s *queryService) GetSignatures(requestID string) ([]*Signature, error) {
	models, err := s.signatureRepo.FindByRequestID(requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get signatures: %w", err)
	}

	signatures := make([]*Signature, 0, len(models))
	for _, m := range models {
		signatures = append(signatures, &Signature{
			ID:               m.ID,
			RequestID:        m.RequestID,
			SignerID:         m.SignerID,
			GovernanceBodyID: m.GovernanceBodyID,
			SignatureType:    m.SignatureType,
			SignatureHash:    m.SignatureHash,
			SignedAt:         m.SignedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return signatures, nil
}

// ListPositions 列出岗位
func (s *queryService) ListPositions(orgUnitID string) ([]*model.PositionModel, error) {
	if orgUnitID != "" {
		return s.positionRepo.FindByOrgUnit(orgUnitID)
	}
	return s.positionRepo.FindAll()
}

// GetPosition 获取岗位详情
func (s *queryService) GetPosition(id string) (*model.PositionModel, error) {
	position, err := s.positionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &workflow.NotFoundError{Resource: "position", ID: id}
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	return position, nil
}
