package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mautops/headcount-gin/internal/metrics"
	"github.com/mautops/headcount-gin/internal/model"
	"github.com/mautops/headcount-gin/internal/websocket"
	"github.com/mautops/headcount-gin/internal/workflow"
)

// RequestService 变更请求服务接口
type RequestService interface {
	Create(ctx context.Context, req *CreateRequestRequest) (*model.ChangeRequestModel, error)
	Get(id string) (*model.ChangeRequestModel, error)
	Approve(ctx context.Context, id string, req *ResolveRequestRequest) (*model.ChangeRequestModel, error)
	Reject(ctx context.Context, id string, req *ResolveRequestRequest) (*model.ChangeRequestModel, error)
}

// CreateRequestRequest 创建变更请求的请求参数
// @Description 创建编制变更请求的请求参数
type CreateRequestRequest struct {
	PositionID       string `json:"position_id" example:"pos-001" binding:"required"`      // 岗位 ID
	RequestedValue   *int   `json:"requested_value" example:"8" binding:"required"`        // 申请编制数
	Reason           string `json:"reason" example:"业务扩张" binding:"required"`              // 申请理由
	GovernanceBodyID string `json:"governance_body_id,omitempty" example:"gov-001"`        // 路由的审批机构 ID(可选)
}

// ResolveRequestRequest 裁决变更请求的请求参数
// @Description 批准或拒绝编制变更请求的请求参数
type ResolveRequestRequest struct {
	Notes string `json:"notes" example:"同意扩编"` // 审批意见
	// Acknowledged 签署确认,必须为 true 才能裁决
	Acknowledged bool `json:"acknowledged" example:"true"`
}

// requestService 变更请求服务实现
type requestService struct {
	engine      *workflow.Engine
	requestRepo RequestReader
	auditLogSvc AuditLogService
	hub         *websocket.Hub
}

// RequestReader 请求读取接口(查询部分由仓储满足)
type RequestReader interface {
	FindByID(id string) (*model.ChangeRequestModel, error)
}

// NewRequestService 创建变更请求服务
func NewRequestService(engine *workflow.Engine, requestRepo RequestReader, auditLogSvc AuditLogService, hub *websocket.Hub) RequestService {
	return &requestService{
		engine:      engine,
		requestRepo: requestRepo,
		auditLogSvc: auditLogSvc,
		hub:         hub,
	}
}

// Create 创建变更请求
func (s *requestService) Create(ctx context.Context, req *CreateRequestRequest) (*model.ChangeRequestModel, error) {
	userID := getUserIDFromContext(ctx)
	if userID == "" {
		return nil, &workflow.ValidationError{Message: "requester identity is required"}
	}

	request, err := s.engine.Create(ctx, &workflow.CreateInput{
		PositionID:       req.PositionID,
		RequesterID:      userID,
		RequestedValue:   req.RequestedValue,
		Reason:           req.Reason,
		GovernanceBodyID: req.GovernanceBodyID,
	})
	if err != nil {
		return nil, err
	}

	// 记录业务指标
	metrics.RecordRequestCreated()

	// 记录审计日志
	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"request_id":"%s","position_id":"%s","requested_value":%d}`,
			request.ID, request.PositionID, request.RequestedValue)
		_ = s.auditLogSvc.RecordAction(ctx, userID, "create", "request", request.ID, details)
	}

	s.broadcast(request)

	return request, nil
}

// Get 获取变更请求详情
func (s *requestService) Get(id string) (*model.ChangeRequestModel, error) {
	request, err := s.requestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &workflow.NotFoundError{Resource: "request", ID: id}
		}
		return nil, err
	}
	return request, nil
}

// Approve 批准变更请求
func (s *requestService) Approve(ctx context.Context, id string, req *ResolveRequestRequest) (*model.ChangeRequestModel, error) {
	return s.resolve(ctx, id, workflow.DecisionApprove, req)
}

// Reject 拒绝变更请求
func (s *requestService) Reject(ctx context.Context, id string, req *ResolveRequestRequest) (*model.ChangeRequestModel, error) {
	return s.resolve(ctx, id, workflow.DecisionReject, req)
}

// resolve 裁决变更请求
func (s *requestService) resolve(ctx context.Context, id string, decision string, req *ResolveRequestRequest) (*model.ChangeRequestModel, error) {
	userID := getUserIDFromContext(ctx)

	request, err := s.engine.Resolve(ctx, id, &workflow.ResolveInput{
		ActorID:      userID,
		Decision:     decision,
		Notes:        req.Notes,
		Acknowledged: req.Acknowledged,
	})
	if err != nil {
		return nil, err
	}

	// 记录业务指标
	metrics.RecordResolution(decision)

	// 记录审计日志
	if s.auditLogSvc != nil && userID != "" {
		details := fmt.Sprintf(`{"request_id":"%s","decision":"%s","notes":"%s"}`, id, decision, req.Notes)
		_ = s.auditLogSvc.RecordAction(ctx, userID, decision, "request", id, details)
	}

	s.broadcast(request)

	return request, nil
}

// broadcast 向订阅该请求的客户端推送状态更新
func (s *requestService) broadcast(request *model.ChangeRequestModel) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastRequestUpdate(request.ID, map[string]interface{}{
		"request_id": request.ID,
		"status":     request.Status,
		"updated_at": request.UpdatedAt,
	})
}

// getUserIDFromContext 从 context 中获取用户 ID(由认证中间件设置)
func getUserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value("user_id").(string); ok {
		return userID
	}
	return ""
}
