package workflow

import "fmt"

// ValidationError 输入缺失或格式错误
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError 引用的实体不存在
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// AuthorizationError 操作人缺少审批授权
type AuthorizationError struct {
	ActorID string
	ScopeID string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("user %q has no approval authority in scope %q", e.ActorID, e.ScopeID)
}

// InvalidStateError 请求状态不允许该操作(如对终态请求重复裁决)
type InvalidStateError struct {
	RequestID string
	Status    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("request %q is not pending (status %q)", e.RequestID, e.Status)
}

// DependencyError 存储或外部依赖失败
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
