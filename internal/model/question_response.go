package model

import (
	"errors"
	"time"
)

// QuestionResponseModel 单个问题回答数据模型
// (response_id, question_id) 组合唯一;剔除通过状态表达,记录不做物理删除
type QuestionResponseModel struct {
	ID            string        `gorm:"primaryKey;type:varchar(64)"`
	ResponseID    string        `gorm:"type:varchar(64);not null;index"`
	QuestionID    string        `gorm:"type:varchar(64);not null;index"`
	SurveyID      string        `gorm:"type:varchar(64);not null;index"`
	ApplicationID string        `gorm:"type:varchar(64);index"` // 应用系统 ID
	FunctionID    string        `gorm:"type:varchar(64);index"` // 职能 ID,报表按职能过滤
	DepartmentID  string        `gorm:"type:varchar(64);index"`
	QuestionType  QuestionType  `gorm:"type:varchar(32);not null"`
	TextValue     string        `gorm:"type:text"`              // 文本/日期/签名引用
	NumericValue  *float64      `gorm:"type:numeric"`           // 评分值,非评分题为 NULL
	OptionValues  []byte        `gorm:"type:jsonb"`             // 选项/矩阵取值
	TakeoutStatus TakeoutStatus `gorm:"type:varchar(32);not null;index"`
	CreatedAt     time.Time     `gorm:"not null;index"`
	UpdatedAt     time.Time     `gorm:"not null"`
}

// TableName 指定表名
func (QuestionResponseModel) TableName() string {
	return "question_responses"
}

// Validate 验证问题回答模型
func (qrm *QuestionResponseModel) Validate() error {
	if qrm.ID == "" {
		return errors.New("question response ID is required")
	}
	if qrm.ResponseID == "" {
		return errors.New("response ID is required")
	}
	if qrm.QuestionID == "" {
		return errors.New("question ID is required")
	}
	if !qrm.QuestionType.Valid() {
		return errors.New("question type is invalid")
	}
	if !qrm.TakeoutStatus.Valid() {
		return errors.New("takeout status is invalid")
	}
	return nil
}
