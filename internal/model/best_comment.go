package model

import (
	"errors"
	"time"
)

// BestCommentModel 最佳评论数据模型
// 与剔除状态完全正交:已剔除回答的评论仍可被评为最佳评论
type BestCommentModel struct {
	ID                 string     `gorm:"primaryKey;type:varchar(64)"`
	QuestionResponseID string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	ResponseID         string     `gorm:"type:varchar(64);not null;index"`
	QuestionID         string     `gorm:"type:varchar(64);not null;index"`
	SurveyID           string     `gorm:"type:varchar(64);not null;index"`
	CuratorID          string     `gorm:"type:varchar(64);not null"`
	CuratedAt          time.Time  `gorm:"not null"`
	FeedbackText       string     `gorm:"type:text"`
	FeedbackBy         string     `gorm:"type:varchar(64)"`
	FeedbackAt         *time.Time `gorm:""`
	CreatedAt          time.Time  `gorm:"not null"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

// TableName 指定表名
func (BestCommentModel) TableName() string {
	return "best_comments"
}

// Validate 验证最佳评论模型
func (bcm *BestCommentModel) Validate() error {
	if bcm.ID == "" {
		return errors.New("best comment ID is required")
	}
	if bcm.QuestionResponseID == "" {
		return errors.New("question response ID is required")
	}
	if bcm.CuratorID == "" {
		return errors.New("curator ID is required")
	}
	return nil
}
