package model

import (
	"errors"
	"time"
)

// 签名类型常量
const (
	SignatureTypeApproval  = "approval"  // 批准签名
	SignatureTypeRejection = "rejection" // 拒绝签名
)

// SignatureModel 数字签名数据模型
// 签名记录一经创建不可修改,仅追加
type SignatureModel struct {
	ID               string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	RequestID        string    `gorm:"type:varchar(64);not null;index" json:"request_id"`
	SignerID         string    `gorm:"type:varchar(64);not null;index" json:"signer_id"`
	GovernanceBodyID string    `gorm:"type:varchar(64)" json:"governance_body_id,omitempty"`
	SignatureType    string    `gorm:"type:varchar(32);not null" json:"signature_type"`
	SignatureHash    string    `gorm:"type:varchar(64);not null" json:"signature_hash"`
	SignedAt         time.Time `gorm:"not null;index" json:"signed_at"`
}

// TableName 指定表名
func (SignatureModel) TableName() string {
	return "signatures"
}

// Validate 验证签名模型
func (sm *SignatureModel) Validate() error {
	if sm.ID == "" {
		return errors.New("signature ID is required")
	}
	if sm.RequestID == "" {
		return errors.New("request ID is required")
	}
	if sm.SignerID == "" {
		return errors.New("signer ID is required")
	}
	if sm.SignatureType != SignatureTypeApproval && sm.SignatureType != SignatureTypeRejection {
		return errors.New("signature type must be approval or rejection")
	}
	if sm.SignatureHash == "" {
		return errors.New("signature hash is required")
	}
	return nil
}
