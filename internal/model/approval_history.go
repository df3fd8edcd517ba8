package model

import (
	"errors"
	"time"
)

// ApprovalHistoryModel 剔除审批历史数据模型
// 只追加,不更新不删除;问题回答的当前状态必须等于其最新一条历史的 to_status
type ApprovalHistoryModel struct {
	ID         string        `gorm:"primaryKey;type:varchar(64)"`
	ResponseID string        `gorm:"type:varchar(64);not null;index"`
	QuestionID string        `gorm:"type:varchar(64);not null;index"`
	FromStatus TakeoutStatus `gorm:"type:varchar(32);not null"`
	ToStatus   TakeoutStatus `gorm:"type:varchar(32);not null"`
	Action     TakeoutAction `gorm:"type:varchar(32);not null"` // propose/approve/reject/cancel
	Reason     string        `gorm:"type:text"`
	ActorID    string        `gorm:"type:varchar(64);not null;index"`
	ActorRole  string        `gorm:"type:varchar(64);not null"`
	CreatedAt  time.Time     `gorm:"not null;index"`
}

// TableName 指定表名
func (ApprovalHistoryModel) TableName() string {
	return "approval_history"
}

// Validate 验证审批历史模型
func (ahm *ApprovalHistoryModel) Validate() error {
	if ahm.ID == "" {
		return errors.New("history ID is required")
	}
	if ahm.ResponseID == "" {
		return errors.New("response ID is required")
	}
	if ahm.QuestionID == "" {
		return errors.New("question ID is required")
	}
	if !ahm.ToStatus.Valid() {
		return errors.New("to status is invalid")
	}
	if !ahm.Action.Valid() {
		return errors.New("action is invalid")
	}
	if ahm.ActorID == "" {
		return errors.New("actor ID is required")
	}
	return nil
}
