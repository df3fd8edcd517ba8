package repository

import (
	"github.com/mautops/takeout-gin/internal/model"
	"gorm.io/gorm"
)

// ApprovalHistoryRepository 审批历史仓储接口
// 账本只追加:没有更新和删除操作
type ApprovalHistoryRepository interface {
	Save(entry *model.ApprovalHistoryModel) error
	FindBySubject(responseID, questionID string) ([]*model.ApprovalHistoryModel, error)
}

// approvalHistoryRepository 审批历史仓储实现
type approvalHistoryRepository struct {
	db *gorm.DB
}

// NewApprovalHistoryRepository 创建审批历史仓储
func NewApprovalHistoryRepository(db *gorm.DB) ApprovalHistoryRepository {
	return &approvalHistoryRepository{db: db}
}

// Save 追加一条审批历史
func (r *approvalHistoryRepository) Save(entry *model.ApprovalHistoryModel) error {
	return r.db.Create(entry).Error
}

// FindBySubject 查找指定问题回答的全部历史,按时间正序
func (r *approvalHistoryRepository) FindBySubject(responseID, questionID string) ([]*model.ApprovalHistoryModel, error) {
	var entries []*model.ApprovalHistoryModel
	err := r.db.Where("response_id = ? AND question_id = ?", responseID, questionID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
