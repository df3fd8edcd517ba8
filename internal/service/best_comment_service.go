package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mautops/takeout-gin/internal/model"
	"github.com/mautops/takeout-gin/internal/repository"
	"gorm.io/gorm"
)

// BestCommentService 最佳评论服务接口
// 与剔除流程共用操作者模型,但没有可逆状态机;
// 评选与剔除状态正交:已剔除回答的评论仍可评选
type BestCommentService interface {
	MarkBest(ctx context.Context, responseID, questionID string, actor Actor) (*model.BestCommentModel, error)
	Unmark(ctx context.Context, questionResponseID string, actor Actor) error
	SubmitFeedback(ctx context.Context, questionResponseID, feedbackText string, actor Actor) (*model.BestCommentModel, error)
	List(ctx context.Context, surveyID string) ([]*model.BestCommentModel, error)
}

// bestCommentService 最佳评论服务实现
type bestCommentService struct {
	qrRepo      repository.QuestionResponseRepository
	bcRepo      repository.BestCommentRepository
	auditLogSvc AuditLogService
}

// NewBestCommentService 创建最佳评论服务
func NewBestCommentService(
	qrRepo repository.QuestionResponseRepository,
	bcRepo repository.BestCommentRepository,
	auditLogSvc AuditLogService,
) BestCommentService {
	return &bestCommentService{
		qrRepo:      qrRepo,
		bcRepo:      bcRepo,
		auditLogSvc: auditLogSvc,
	}
}

// MarkBest 将问题回答的评论标记为最佳评论
// 仅自由文本回答可评选;重复标记返回既有记录
func (s *bestCommentService) MarkBest(ctx context.Context, responseID, questionID string, actor Actor) (*model.BestCommentModel, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	qr, err := s.qrRepo.FindByPair(responseID, questionID)
	if err != nil {
		return nil, wrapStoreErr(err, fmt.Sprintf("question response (%s, %s)", responseID, questionID))
	}
	if !qr.QuestionType.FreeText() || strings.TrimSpace(qr.TextValue) == "" {
		return nil, fmt.Errorf("question response (%s, %s) has no comment answer: %w",
			responseID, questionID, ErrNotFound)
	}

	if existing, err := s.bcRepo.FindByQuestionResponseID(qr.ID); err == nil {
		return existing, nil
	} else if !isNotFound(err) {
		return nil, wrapStoreErr(err, "load best comment")
	}

	now := time.Now()
	bc := &model.BestCommentModel{
		ID:                 uuid.New().String(),
		QuestionResponseID: qr.ID,
		ResponseID:         responseID,
		QuestionID:         questionID,
		SurveyID:           qr.SurveyID,
		CuratorID:          actor.ID,
		CuratedAt:          now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.bcRepo.Save(bc); err != nil {
		return nil, fmt.Errorf("save best comment: %v: %w", err, ErrPersistence)
	}

	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"response_id":"%s","question_id":"%s"}`, responseID, questionID)
		_ = s.auditLogSvc.RecordAction(ctx, actor.ID, "mark_best", "best_comment", bc.ID, details)
	}

	return bc, nil
}

// Unmark 取消最佳评论标记
// 只删除评选记录,底层问题回答保持不变
func (s *bestCommentService) Unmark(ctx context.Context, questionResponseID string, actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	bc, err := s.bcRepo.FindByQuestionResponseID(questionResponseID)
	if err != nil {
		return wrapStoreErr(err, fmt.Sprintf("best comment for question response %s", questionResponseID))
	}

	if err := s.bcRepo.Delete(bc.ID); err != nil {
		return fmt.Errorf("delete best comment: %v: %w", err, ErrPersistence)
	}

	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"question_response_id":"%s"}`, questionResponseID)
		_ = s.auditLogSvc.RecordAction(ctx, actor.ID, "unmark_best", "best_comment", bc.ID, details)
	}

	return nil
}

// SubmitFeedback 为最佳评论附加审阅反馈
// 反馈只能附加在已评选的记录上
func (s *bestCommentService) SubmitFeedback(ctx context.Context, questionResponseID, feedbackText string, actor Actor) (*model.BestCommentModel, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	feedbackText = strings.TrimSpace(feedbackText)
	if feedbackText == "" {
		return nil, fmt.Errorf("feedback text: %w", ErrMissingReason)
	}

	bc, err := s.bcRepo.FindByQuestionResponseID(questionResponseID)
	if err != nil {
		return nil, wrapStoreErr(err, fmt.Sprintf("best comment for question response %s", questionResponseID))
	}

	now := time.Now()
	bc.FeedbackText = feedbackText
	bc.FeedbackBy = actor.ID
	bc.FeedbackAt = &now
	bc.UpdatedAt = now
	if err := s.bcRepo.Save(bc); err != nil {
		return nil, fmt.Errorf("save feedback: %v: %w", err, ErrPersistence)
	}

	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"question_response_id":"%s"}`, questionResponseID)
		_ = s.auditLogSvc.RecordAction(ctx, actor.ID, "submit_feedback", "best_comment", bc.ID, details)
	}

	return bc, nil
}

// List 列出问卷下的最佳评论
func (s *bestCommentService) List(ctx context.Context, surveyID string) ([]*model.BestCommentModel, error) {
	if surveyID == "" {
		return nil, fmt.Errorf("survey ID is required")
	}
	bcs, err := s.bcRepo.FindBySurvey(surveyID)
	if err != nil {
		return nil, fmt.Errorf("list best comments: %v: %w", err, ErrPersistence)
	}
	return bcs, nil
}

// isNotFound 判断是否为记录不存在错误
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
