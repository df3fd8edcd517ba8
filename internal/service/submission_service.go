package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mautops/takeout-gin/internal/metrics"
	"github.com/mautops/takeout-gin/internal/model"
	"github.com/mautops/takeout-gin/internal/repository"
	"github.com/mautops/takeout-gin/internal/utils"
	"gorm.io/gorm"
)

// SubmissionService 问卷提交服务接口
// 提交前执行查重;查重自身失败时拒绝提交,而不是静默放行
type SubmissionService interface {
	CheckDuplicate(ctx context.Context, surveyID, respondentEmail string, applicationIDs []string) (*DuplicateCheckResult, error)
	Submit(ctx context.Context, req *SubmitResponseRequest) (*model.ResponseModel, error)
}

// DuplicateCheckResult 查重结果
// @Description 重复提交检查的结果
type DuplicateCheckResult struct {
	IsDuplicate        bool     `json:"is_duplicate"`         // 是否重复
	MatchedResponseIDs []string `json:"matched_response_ids"` // 匹配到的既有回复 ID
}

// AnswerInput 单个问题的回答
// @Description 提交回复时的单个问题回答
type AnswerInput struct {
	QuestionID    string             `json:"question_id" example:"q-001" binding:"required"` // 问题 ID
	ApplicationID string             `json:"application_id" example:"app-001"`               // 应用系统 ID
	FunctionID    string             `json:"function_id" example:"fn-001"`                   // 职能 ID
	QuestionType  model.QuestionType `json:"question_type" example:"score" binding:"required"` // 问题类型
	TextValue     string             `json:"text_value,omitempty"`                           // 文本/日期/签名引用
	NumericValue  *float64           `json:"numeric_value,omitempty" example:"8"`            // 评分值
	OptionValues  json.RawMessage    `json:"option_values,omitempty" swaggertype:"object"`   // 选项/矩阵取值
}

// SubmitResponseRequest 提交回复请求
// @Description 提交问卷回复的请求参数
type SubmitResponseRequest struct {
	SurveyID        string        `json:"survey_id" example:"survey-001" binding:"required"`       // 问卷 ID
	RespondentEmail string        `json:"respondent_email" example:"user@corp.com" binding:"required"` // 回复人邮箱
	DepartmentID    string        `json:"department_id" example:"dept-001"`                        // 部门 ID
	ApplicationIDs  []string      `json:"application_ids" binding:"required"`                      // 覆盖的应用系统 ID 列表
	Answers         []AnswerInput `json:"answers" binding:"required"`                              // 问题回答列表
}

// submissionService 问卷提交服务实现
// 提交事务直接操作 *gorm.DB,查重走仓储
type submissionService struct {
	db           *gorm.DB
	responseRepo repository.ResponseRepository
	auditLogSvc  AuditLogService
}

// NewSubmissionService 创建问卷提交服务
func NewSubmissionService(db *gorm.DB, responseRepo repository.ResponseRepository, auditLogSvc AuditLogService) SubmissionService {
	return &submissionService{
		db:           db,
		responseRepo: responseRepo,
		auditLogSvc:  auditLogSvc,
	}
}

// CheckDuplicate 检查重复提交
// 同一问卷+同一回复人(邮箱归一化后)覆盖任一相同应用即视为重复,
// 与既有回复的问题是否已被剔除无关。此检查是快速路径,
// (survey_id, normalized_email, application_id) 唯一索引才是最终约束
func (s *submissionService) CheckDuplicate(ctx context.Context, surveyID, respondentEmail string, applicationIDs []string) (*DuplicateCheckResult, error) {
	if surveyID == "" || len(applicationIDs) == 0 {
		return nil, errors.New("survey ID and application IDs are required")
	}
	normalized := utils.NormalizeEmail(respondentEmail)
	if normalized == "" {
		return nil, errors.New("respondent email is required")
	}

	matches, err := s.responseRepo.FindApplicationMatches(surveyID, normalized, applicationIDs)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %v: %w", err, ErrPersistence)
	}

	result := &DuplicateCheckResult{MatchedResponseIDs: make([]string, 0, len(matches))}
	seen := make(map[string]bool)
	for _, m := range matches {
		if !seen[m.ResponseID] {
			seen[m.ResponseID] = true
			result.MatchedResponseIDs = append(result.MatchedResponseIDs, m.ResponseID)
		}
	}
	result.IsDuplicate = len(result.MatchedResponseIDs) > 0
	return result, nil
}

// Submit 提交问卷回复
// 回复、应用关联与问题回答在同一事务内落库,问题回答初始状态为 active
func (s *submissionService) Submit(ctx context.Context, req *SubmitResponseRequest) (*model.ResponseModel, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}
	if len(req.Answers) == 0 {
		return nil, errors.New("at least one answer is required")
	}
	for _, a := range req.Answers {
		if !a.QuestionType.Valid() {
			return nil, fmt.Errorf("invalid question type %q for question %s", a.QuestionType, a.QuestionID)
		}
	}

	// 查重失败必须拒绝提交,静默放行会无声地污染重复统计
	check, err := s.CheckDuplicate(ctx, req.SurveyID, req.RespondentEmail, req.ApplicationIDs)
	if err != nil {
		return nil, err
	}
	if check.IsDuplicate {
		metrics.RecordDuplicateRejected()
		return nil, fmt.Errorf("respondent already answered survey %s: %w", req.SurveyID, ErrDuplicateSubmission)
	}

	normalized := utils.NormalizeEmail(req.RespondentEmail)
	now := time.Now()
	response := &model.ResponseModel{
		ID:              uuid.New().String(),
		SurveyID:        req.SurveyID,
		RespondentEmail: req.RespondentEmail,
		NormalizedEmail: normalized,
		DepartmentID:    req.DepartmentID,
		SubmittedAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return err
		}

		for _, appID := range req.ApplicationIDs {
			ra := &model.ResponseApplicationModel{
				ID:              uuid.New().String(),
				ResponseID:      response.ID,
				SurveyID:        req.SurveyID,
				NormalizedEmail: normalized,
				ApplicationID:   appID,
				CreatedAt:       now,
			}
			if err := tx.Create(ra).Error; err != nil {
				return err
			}
		}

		for _, a := range req.Answers {
			// 非数值题型带入的数值不落库,题型枚举是数值资格的唯一判据,
			// 否则会混入平均分计算
			numericValue := a.NumericValue
			if !a.QuestionType.Numeric() {
				numericValue = nil
			}
			qr := &model.QuestionResponseModel{
				ID:            uuid.New().String(),
				ResponseID:    response.ID,
				QuestionID:    a.QuestionID,
				SurveyID:      req.SurveyID,
				ApplicationID: a.ApplicationID,
				FunctionID:    a.FunctionID,
				DepartmentID:  req.DepartmentID,
				QuestionType:  a.QuestionType,
				TextValue:     a.TextValue,
				NumericValue:  numericValue,
				OptionValues:  a.OptionValues,
				TakeoutStatus: model.TakeoutStatusActive,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := tx.Create(qr).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		// 两个近乎同时的提交由唯一索引仲裁:事务失败后复查,
		// 若此刻已存在匹配记录则按重复提交报告
		if recheck, checkErr := s.CheckDuplicate(ctx, req.SurveyID, req.RespondentEmail, req.ApplicationIDs); checkErr == nil && recheck.IsDuplicate {
			metrics.RecordDuplicateRejected()
			return nil, fmt.Errorf("respondent already answered survey %s: %w", req.SurveyID, ErrDuplicateSubmission)
		}
		return nil, fmt.Errorf("persist submission: %v: %w", err, ErrPersistence)
	}

	metrics.RecordSubmission()

	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"response_id":"%s","survey_id":"%s","answers":%d}`,
			response.ID, req.SurveyID, len(req.Answers))
		_ = s.auditLogSvc.RecordAction(ctx, normalized, "submit", "response", response.ID, details)
	}

	return response, nil
}
