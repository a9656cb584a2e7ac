package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mautops/headcount-gin/internal/model"
	"github.com/mautops/headcount-gin/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 裁决决定常量
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// CreateInput 创建变更请求的输入
type CreateInput struct {
	PositionID       string
	RequesterID      string
	RequestedValue   *int
	Reason           string
	GovernanceBodyID string
}

// ResolveInput 裁决变更请求的输入
type ResolveInput struct {
	ActorID  string
	Decision string // approve/reject
	Notes    string
	// Acknowledged 签署确认标志
	// 引擎强制要求,不依赖前端的勾选框
	Acknowledged bool
}

// Engine 请求生命周期引擎
// 管理变更请求从创建到终态的完整状态机,包括数字签名步骤
type Engine struct {
	db         *gorm.DB
	authorizer Authorizer
	dispatcher Dispatcher
	logger     *logrus.Logger
}

// NewEngine 创建请求生命周期引擎
// authorizer 或 dispatcher 传 nil 时使用默认实现
func NewEngine(db *gorm.DB, authorizer Authorizer, dispatcher Dispatcher, logger *logrus.Logger) *Engine {
	if authorizer == nil {
		authorizer = NewGovernanceAuthorizer(db)
	}
	if dispatcher == nil {
		dispatcher = NopDispatcher{}
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		db:         db,
		authorizer: authorizer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// generateRequestID 生成请求 ID
func generateRequestID() string {
	return "req-" + uuid.New().String()
}

// generateSignatureID 生成签名 ID
func generateSignatureID() string {
	return "sig-" + uuid.New().String()
}

// generateHistoryID 生成历史记录 ID
func generateHistoryID() string {
	return "hist-" + uuid.New().String()
}

// Create 创建变更请求
// 请求以 pending 状态写入,同一事务内追加首条历史记录(old_status 为 null),
// 当前编制在创建时刻快照到 current_value
func (e *Engine) Create(ctx context.Context, input *CreateInput) (*model.ChangeRequestModel, error) {
	if input == nil {
		return nil, &ValidationError{Message: "create input is required"}
	}
	if input.PositionID == "" {
		return nil, &ValidationError{Message: "position ID is required"}
	}
	if input.RequesterID == "" {
		return nil, &ValidationError{Message: "requester ID is required"}
	}
	if input.RequestedValue == nil {
		return nil, &ValidationError{Message: "requested value is required"}
	}
	if *input.RequestedValue < 0 {
		return nil, &ValidationError{Message: "requested value must be non-negative"}
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, &ValidationError{Message: "reason is required"}
	}

	db := e.db.WithContext(ctx)

	// 1. 解析岗位,快照当前编制
	var position model.PositionModel
	if err := db.Where("id = ?", input.PositionID).First(&position).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "position", ID: input.PositionID}
		}
		return nil, &DependencyError{Op: "failed to load position", Err: err}
	}

	// 2. 校验路由的审批机构(如指定)
	if input.GovernanceBodyID != "" {
		var body model.GovernanceBodyModel
		if err := db.Where("id = ?", input.GovernanceBodyID).First(&body).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Resource: "governance body", ID: input.GovernanceBodyID}
			}
			return nil, &DependencyError{Op: "failed to load governance body", Err: err}
		}
	}

	now := time.Now().UTC()
	request := &model.ChangeRequestModel{
		ID:               generateRequestID(),
		PositionID:       position.ID,
		RequesterID:      input.RequesterID,
		CurrentValue:     position.AuthorizedHeadcount,
		RequestedValue:   *input.RequestedValue,
		Reason:           strings.TrimSpace(input.Reason),
		Status:           model.RequestStatusPending,
		GovernanceBodyID: input.GovernanceBodyID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// 3. 请求与首条历史记录在同一事务内写入
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		entry := &model.HistoryEntryModel{
			ID:        generateHistoryID(),
			RequestID: request.ID,
			OldStatus: nil,
			NewStatus: model.RequestStatusPending,
			ActorID:   &request.RequesterID,
			Notes:     "request created",
			CreatedAt: now,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create history entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, &DependencyError{Op: "failed to create request", Err: err}
	}

	e.logger.WithFields(logrus.Fields{
		"request_id":  request.ID,
		"position_id": request.PositionID,
		"requester":   request.RequesterID,
	}).Info("change request created")

	// 4. 尽力而为的提交通知
	e.dispatcher.Dispatch(&Event{
		Type:      model.NotificationTypeSubmitted,
		RequestID: request.ID,
		Payload: map[string]interface{}{
			"position_id":     request.PositionID,
			"requester_id":    request.RequesterID,
			"current_value":   request.CurrentValue,
			"requested_value": request.RequestedValue,
		},
	})

	return request, nil
}

// Resolve 裁决变更请求(批准或拒绝)
// 签名写入、请求更新、历史追加、岗位编制更新作为一个事务按固定顺序执行;
// 条件更新以 pending 状态为前提,并发裁决只会有一个成功,
// 对已终态请求的重复裁决返回 InvalidStateError 且不产生任何副作用
func (e *Engine) Resolve(ctx context.Context, requestID string, input *ResolveInput) (*model.ChangeRequestModel, error) {
	if input == nil {
		return nil, &ValidationError{Message: "resolve input is required"}
	}
	decision := strings.ToLower(strings.TrimSpace(input.Decision))
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, &ValidationError{Message: fmt.Sprintf("decision must be %q or %q", DecisionApprove, DecisionReject)}
	}
	if !input.Acknowledged {
		return nil, &ValidationError{Message: "signing acknowledgment is required"}
	}
	if input.ActorID == "" {
		return nil, &ValidationError{Message: "actor ID is required"}
	}

	db := e.db.WithContext(ctx)

	// 1. 加载请求
	var request model.ChangeRequestModel
	if err := db.Where("id = ?", requestID).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "request", ID: requestID}
		}
		return nil, &DependencyError{Op: "failed to load request", Err: err}
	}
	if request.Status != model.RequestStatusPending {
		return nil, &InvalidStateError{RequestID: requestID, Status: request.Status}
	}

	// 2. 加载岗位,岗位的组织单元即授权范围
	var position model.PositionModel
	if err := db.Where("id = ?", request.PositionID).First(&position).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "position", ID: request.PositionID}
		}
		return nil, &DependencyError{Op: "failed to load position", Err: err}
	}

	// 3. 授权检查
	authorized, err := e.authorizer.CanApprove(input.ActorID, position.OrgUnitID)
	if err != nil {
		return nil, &DependencyError{Op: "failed to check approval authority", Err: err}
	}
	if !authorized {
		return nil, &AuthorizationError{ActorID: input.ActorID, ScopeID: position.OrgUnitID}
	}

	// 4. 计算裁决时间戳与签名摘要
	now := time.Now().UTC()
	newStatus := model.RequestStatusApproved
	signatureType := model.SignatureTypeApproval
	if decision == DecisionReject {
		newStatus = model.RequestStatusRejected
		signatureType = model.SignatureTypeRejection
	}
	hash := ComputeSignatureHash(input.ActorID, requestID, now)

	err = db.Transaction(func(tx *gorm.DB) error {
		// 4.1 条件更新: 只有仍处于 pending 的请求会被更新
		// 受影响行数为 0 说明请求已被并发裁决,放弃本次裁决
		rows, err := repository.ResolvePending(tx, requestID, newStatus, input.ActorID, now, input.Notes)
		if err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}
		if rows == 0 {
			var current model.ChangeRequestModel
			if err := tx.Where("id = ?", requestID).First(&current).Error; err != nil {
				return fmt.Errorf("failed to reload request: %w", err)
			}
			return &InvalidStateError{RequestID: requestID, Status: current.Status}
		}

		// 4.2 创建签名,signed_at 与裁决时间戳一致
		signature := &model.SignatureModel{
			ID:               generateSignatureID(),
			RequestID:        requestID,
			SignerID:         input.ActorID,
			GovernanceBodyID: request.GovernanceBodyID,
			SignatureType:    signatureType,
			SignatureHash:    hash,
			SignedAt:         now,
		}
		if err := tx.Create(signature).Error; err != nil {
			return fmt.Errorf("failed to create signature: %w", err)
		}

		// 4.3 追加状态历史
		oldStatus := model.RequestStatusPending
		entry := &model.HistoryEntryModel{
			ID:        generateHistoryID(),
			RequestID: requestID,
			OldStatus: &oldStatus,
			NewStatus: newStatus,
			ActorID:   &input.ActorID,
			Notes:     input.Notes,
			CreatedAt: now,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create history entry: %w", err)
		}

		// 4.4 批准时更新岗位编制为申请值,拒绝时岗位不变
		if newStatus == model.RequestStatusApproved {
			if err := tx.Model(&model.PositionModel{}).
				Where("id = ?", position.ID).
				Updates(map[string]interface{}{
					"authorized_headcount": request.RequestedValue,
					"updated_at":           now,
				}).Error; err != nil {
				return fmt.Errorf("failed to update position headcount: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		var stateErr *InvalidStateError
		if errors.As(err, &stateErr) {
			return nil, stateErr
		}
		return nil, &DependencyError{Op: "failed to resolve request", Err: err}
	}

	// 5. 回读终态请求
	var resolved model.ChangeRequestModel
	if err := db.Where("id = ?", requestID).First(&resolved).Error; err != nil {
		return nil, &DependencyError{Op: "failed to reload request", Err: err}
	}

	e.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"decision":   decision,
		"reviewer":   input.ActorID,
	}).Info("change request resolved")

	// 6. 尽力而为的裁决通知
	eventType := model.NotificationTypeApproved
	if newStatus == model.RequestStatusRejected {
		eventType = model.NotificationTypeRejected
	}
	e.dispatcher.Dispatch(&Event{
		Type:      eventType,
		RequestID: requestID,
		Payload: map[string]interface{}{
			"decision":        decision,
			"reviewed_by":     input.ActorID,
			"position_id":     resolved.PositionID,
			"requested_value": resolved.RequestedValue,
		},
	})

	return &resolved, nil
}
