package model

import (
	"errors"
	"time"
)

// ResponseModel 问卷回复数据模型
// 一次提交对应一条回复,覆盖一个或多个应用系统
type ResponseModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)"`
	SurveyID        string    `gorm:"type:varchar(64);not null;index"`
	RespondentEmail string    `gorm:"type:varchar(255);not null"`           // 原始邮箱
	NormalizedEmail string    `gorm:"type:varchar(255);not null;index"`     // 去空格小写后的邮箱,用于查重
	DepartmentID    string    `gorm:"type:varchar(64);index"`               // 所属部门 ID
	SubmittedAt     time.Time `gorm:"not null;index"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName 指定表名
func (ResponseModel) TableName() string {
	return "responses"
}

// Validate 验证回复模型
func (rm *ResponseModel) Validate() error {
	if rm.ID == "" {
		return errors.New("response ID is required")
	}
	if rm.SurveyID == "" {
		return errors.New("survey ID is required")
	}
	if rm.NormalizedEmail == "" {
		return errors.New("respondent email is required")
	}
	return nil
}

// ResponseApplicationModel 回复与应用系统的关联
// survey_id 与 normalized_email 冗余存储,以便用唯一索引
// (survey_id, normalized_email, application_id) 作为查重的最终约束
type ResponseApplicationModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)"`
	ResponseID      string    `gorm:"type:varchar(64);not null;index"`
	SurveyID        string    `gorm:"type:varchar(64);not null"`
	NormalizedEmail string    `gorm:"type:varchar(255);not null"`
	ApplicationID   string    `gorm:"type:varchar(64);not null;index"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName 指定表名
func (ResponseApplicationModel) TableName() string {
	return "response_applications"
}

// Validate 验证关联模型
func (ram *ResponseApplicationModel) Validate() error {
	if ram.ID == "" {
		return errors.New("record ID is required")
	}
	if ram.ResponseID == "" {
		return errors.New("response ID is required")
	}
	if ram.SurveyID == "" {
		return errors.New("survey ID is required")
	}
	if ram.ApplicationID == "" {
		return errors.New("application ID is required")
	}
	return nil
}
