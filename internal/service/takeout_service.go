package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mautops/takeout-gin/internal/metrics"
	"github.com/mautops/takeout-gin/internal/model"
	"github.com/mautops/takeout-gin/internal/repository"
	"gorm.io/gorm"
)

// TakeoutService 剔除流程服务接口
// 状态机: active → proposed_takeout → {taken_out | rejected};
// rejected 可重新提议。每次成功转换与其历史记录在同一事务内落库
type TakeoutService interface {
	Propose(ctx context.Context, responseID, questionID, reason string, actor Actor) (*model.ApprovalHistoryModel, error)
	Approve(ctx context.Context, responseID, questionID, reason string, actor Actor) (*model.ApprovalHistoryModel, error)
	Reject(ctx context.Context, responseID, questionID, reason string, actor Actor) (*model.ApprovalHistoryModel, error)
	CancelProposal(ctx context.Context, responseID, questionID string, actor Actor) (*model.ApprovalHistoryModel, error)
	History(ctx context.Context, responseID, questionID string) ([]*model.ApprovalHistoryModel, error)
	ListPending(ctx context.Context, surveyID string) ([]*model.QuestionResponseModel, error)
}

// takeoutService 剔除流程服务实现
// 状态转换与历史追加必须同事务,因此转换路径直接操作 *gorm.DB;
// 只读的历史查询走仓储
type takeoutService struct {
	db          *gorm.DB
	historyRepo repository.ApprovalHistoryRepository
	auditLogSvc AuditLogService
}

// NewTakeoutService 创建剔除流程服务
func NewTakeoutService(db *gorm.DB, historyRepo repository.ApprovalHistoryRepository, auditLogSvc AuditLogService) TakeoutService {
	return &takeoutService{
		db:          db,
		historyRepo: historyRepo,
		auditLogSvc: auditLogSvc,
	}
}

// Propose 提议剔除
// 只能从 active 发起,或从 rejected 重新提议;理由必填
func (s *takeoutService) Propose(ctx context.Context, responseID, questionID, reason string, actor Actor) (*model.ApprovalHistoryModel, error) {
	return s.transition(ctx, responseID, questionID, model.TakeoutActionPropose, reason, actor)
}

// Approve 批准剔除
// 只能从 proposed_takeout 发起;理由可选,操作者身份始终记录
func (s *takeoutService) Approve(ctx context.Context, responseID, questionID, reason string, actor Actor) (*model.ApprovalHistoryModel, error) {
	return s.transition(ctx, responseID, questionID, model.TakeoutActionApprove, reason, actor)
}

// Reject 拒绝剔除
// 只能从 proposed_takeout 发起;理由必填
func (s *takeoutService) Reject(ctx context.Context, responseID, questionID, reason string, actor Actor) (*model.ApprovalHistoryModel, error) {
	return s.transition(ctx, responseID, questionID, model.TakeoutActionReject, reason, actor)
}

// CancelProposal 撤销提议
// 状态回到 active,历史记录以 cancel 动作区分,账本不会被误读为审批结论
func (s *takeoutService) CancelProposal(ctx context.Context, responseID, questionID string, actor Actor) (*model.ApprovalHistoryModel, error) {
	return s.transition(ctx, responseID, questionID, model.TakeoutActionCancel, "", actor)
}

// transition 执行一次状态转换
// 条件 UPDATE 充当每个 (response_id, question_id) 的原子守卫:
// 并发操作同一条目时恰好一个成功,另一个观察到 AlreadyResolved
func (s *takeoutService) transition(
	ctx context.Context,
	responseID, questionID string,
	action model.TakeoutAction,
	reason string,
	actor Actor,
) (*model.ApprovalHistoryModel, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if action.RequiresReason() && reason == "" {
		return nil, fmt.Errorf("%s requires a reason: %w", action, ErrMissingReason)
	}

	var entry *model.ApprovalHistoryModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 读取当前状态
		var qr model.QuestionResponseModel
		if err := tx.Where("response_id = ? AND question_id = ?", responseID, questionID).
			First(&qr).Error; err != nil {
			return wrapStoreErr(err, fmt.Sprintf("question response (%s, %s)", responseID, questionID))
		}

		from := qr.TakeoutStatus
		if !action.AllowedFrom(from) {
			return classifyTransitionError(action, from)
		}

		// 2. 条件更新状态,from 不匹配说明被并发操作者抢先
		now := time.Now()
		result := tx.Model(&model.QuestionResponseModel{}).
			Where("id = ? AND takeout_status = ?", qr.ID, from).
			Updates(map[string]interface{}{
				"takeout_status": action.Target(),
				"updated_at":     now,
			})
		if result.Error != nil {
			return fmt.Errorf("update takeout status: %v: %w", result.Error, ErrPersistence)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%s on (%s, %s) lost to a concurrent actor: %w",
				action, responseID, questionID, ErrAlreadyResolved)
		}

		// 3. 同一事务内追加历史,状态与账本不可分离
		entry = &model.ApprovalHistoryModel{
			ID:         uuid.New().String(),
			ResponseID: responseID,
			QuestionID: questionID,
			FromStatus: from,
			ToStatus:   action.Target(),
			Action:     action,
			Reason:     reason,
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			CreatedAt:  now,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("append approval history: %v: %w", err, ErrPersistence)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 记录业务指标
	metrics.RecordTakeoutOperation(string(action))

	// 记录审计日志
	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"response_id":"%s","question_id":"%s","action":"%s","reason":"%s"}`,
			responseID, questionID, action, reason)
		_ = s.auditLogSvc.RecordAction(ctx, actor.ID, string(action), "question_response", qrSubject(responseID, questionID), details)
	}

	return entry, nil
}

// classifyTransitionError 区分"状态机不允许"与"已被他人处理"
// 审批类操作(approve/reject/cancel)遇到已决状态说明并发操作者已给出结论,
// 返回 AlreadyResolved;其余情况是调用方对状态机的误用
func classifyTransitionError(action model.TakeoutAction, from model.TakeoutStatus) error {
	if action != model.TakeoutActionPropose && from.Resolved() {
		return fmt.Errorf("%s not possible, item is already %s: %w", action, from, ErrAlreadyResolved)
	}
	return fmt.Errorf("cannot %s from status %s: %w", action, from, ErrInvalidTransition)
}

// History 查询指定问题回答的审批历史,按时间正序
func (s *takeoutService) History(ctx context.Context, responseID, questionID string) ([]*model.ApprovalHistoryModel, error) {
	// 先确认目标存在,区分"无历史"与"目标不存在"
	var qr model.QuestionResponseModel
	if err := s.db.WithContext(ctx).
		Where("response_id = ? AND question_id = ?", responseID, questionID).
		First(&qr).Error; err != nil {
		return nil, wrapStoreErr(err, fmt.Sprintf("question response (%s, %s)", responseID, questionID))
	}

	entries, err := s.historyRepo.FindBySubject(responseID, questionID)
	if err != nil {
		return nil, fmt.Errorf("load approval history: %v: %w", err, ErrPersistence)
	}
	return entries, nil
}

// ListPending 列出问卷下等待审批的剔除提议
func (s *takeoutService) ListPending(ctx context.Context, surveyID string) ([]*model.QuestionResponseModel, error) {
	if surveyID == "" {
		return nil, errors.New("survey ID is required")
	}

	var qrs []*model.QuestionResponseModel
	if err := s.db.WithContext(ctx).
		Where("survey_id = ? AND takeout_status = ?", surveyID, model.TakeoutStatusProposed).
		Order("updated_at ASC").
		Find(&qrs).Error; err != nil {
		return nil, fmt.Errorf("list pending proposals: %v: %w", err, ErrPersistence)
	}
	return qrs, nil
}

// qrSubject 审计日志中问题回答的资源标识
func qrSubject(responseID, questionID string) string {
	return responseID + ":" + questionID
}
