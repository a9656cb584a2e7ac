package repository

import (
	"github.com/mautops/headcount-gin/internal/model"
	"gorm.io/gorm"
)

// SignatureRepository 签名仓储接口
// 只暴露新建与查询,签名记录不可更新或删除
type SignatureRepository interface {
	Create(signature *model.SignatureModel) error
	FindByRequestID(requestID string) ([]*model.SignatureModel, error)
	FindBySigner(signerID string) ([]*model.SignatureModel, error)
}

// signatureRepository 签名仓储实现
type signatureRepository struct {
	db *gorm.DB
}

// NewSignatureRepository 创建签名仓储
func NewSignatureRepository(db *gorm.DB) SignatureRepository {
	return &signatureRepository{db: db}
}

// Create 新建签名
func (r *signatureRepository) Create(signature *model.SignatureModel) error {
	return r.db.Create(signature).Error
}

// FindByRequestID 根据请求 ID 查找签名
func (r *signatureRepository) FindByRequestID(requestID string) ([]*model.SignatureModel, error) {
	var signatures []*model.SignatureModel
	err := r.db.Where("request_id = ?", requestID).Order("signed_at ASC").Find(&signatures).Error
	return signatures, err
}

// FindBySigner 根据签名人查找签名
func (r *signatureRepository) FindBySigner(signerID string) ([]*model.SignatureModel, error) {
	var signatures []*model.SignatureModel
	err := r.db.Where("signer_id = ?", signerID).Order("signed_at DESC").Find(&signatures).Error
	return signatures, err
}
