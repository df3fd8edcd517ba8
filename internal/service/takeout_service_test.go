package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mautops/takeout-gin/internal/database"
	"github.com/mautops/takeout-gin/internal/model"
	"github.com/mautops/takeout-gin/internal/repository"
	"github.com/mautops/takeout-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	proposer = service.Actor{ID: "user-proposer", Role: "department_head"}
	approver = service.Actor{ID: "user-approver", Role: "survey_admin"}
)

// setupTakeoutTestDB 创建剔除流程测试数据库
func setupTakeoutTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.Migrate(db)
	require.NoError(t, err)

	return db
}

// newTakeoutService 构造带真实历史仓储的剔除服务
func newTakeoutService(db *gorm.DB) service.TakeoutService {
	return service.NewTakeoutService(db, repository.NewApprovalHistoryRepository(db), nil)
}

// seedQuestionResponse 写入一条测试问题回答
func seedQuestionResponse(t *testing.T, db *gorm.DB, responseID, questionID string, status model.TakeoutStatus) *model.QuestionResponseModel {
	score := 8.0
	now := time.Now()
	qr := &model.QuestionResponseModel{
		ID:            uuid.New().String(),
		ResponseID:    responseID,
		QuestionID:    questionID,
		SurveyID:      "survey-001",
		ApplicationID: "app-001",
		FunctionID:    "fn-001",
		QuestionType:  model.QuestionTypeScore,
		NumericValue:  &score,
		TakeoutStatus: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(qr).Error)
	return qr
}

// loadStatus 读取问题回答当前状态
func loadStatus(t *testing.T, db *gorm.DB, responseID, questionID string) model.TakeoutStatus {
	var qr model.QuestionResponseModel
	require.NoError(t, db.Where("response_id = ? AND question_id = ?", responseID, questionID).First(&qr).Error)
	return qr.TakeoutStatus
}

// TestTakeoutService_FullLifecycle 测试完整生命周期
// 提议 → 拒绝 → 重新提议 → 批准,历史保留全部 4 条记录
func TestTakeoutService_FullLifecycle(t *testing.T) {
	db := setupTakeoutTestDB(t)
	svc := newTakeoutService(db)
	ctx := context.Background()

	seedQuestionResponse(t, db, "resp-001", "q-001", model.TakeoutStatusActive)

	_, err := svc.Propose(ctx, "resp-001", "q-001", "answered the wrong system", proposer)
	require.NoError(t, err)
	assert.Equal(t, model.TakeoutStatusProposed, loadStatus(t, db, "resp-001", "q-001"))

	_, err = svc.Reject(ctx, "resp-001", "q-001", "answer looks legitimate", approver)
	require.NoError(t, err)
	assert.Equal(t, model.TakeoutStatusRejected, loadStatus(t, db, "resp-001", "q-001"))

	// rejected 可以重新提议
	_, err = svc.Propose(ctx, "resp-001", "q-001", "confirmed with the respondent", proposer)
	require.NoError(t, err)

	entry, err := svc.Approve(ctx, "resp-001", "q-001", "", approver)
	require.NoError(t, err)
	assert.Equal(t, model.TakeoutStatusTakenOut, loadStatus(t, db, "resp-001", "q-001"))
	assert.Equal(t, model.TakeoutActionApprove, entry.Action)
	assert.Equal(t, approver.ID, entry.ActorID)

	// 历史按时间正序,from/to 状态首尾相接
	history, err := svc.History(ctx, "resp-001", "q-001")
	require.NoError(t, err)
	require.Len(t, history, 4)

	assert.Equal(t, model.TakeoutActionPropose, history[0].Action)
	assert.Equal(t, model.TakeoutActionReject, history[1].Action)
	assert.Equal(t, model.TakeoutActionPropose, history[2].Action)
	assert.Equal(t, model.TakeoutActionApprove, history[3].Action)

	assert.Equal(t, model.TakeoutStatusActive, history[0].FromStatus)
	for i := 1; i < len(history); i++ {
		assert.Equal(t, history[i-1].ToStatus, history[i].FromStatus)
	}
	assert.Equal(t, model.TakeoutStatusTakenOut, history[3].ToStatus)
	assert.Equal(t, "confirmed with the respondent", history[2].Reason)
}

// TestTakeoutService_MissingReason 测试理由必填
// 提议和拒绝缺少理由时直接失败,状态与历史都不变
func TestTakeoutService_MissingReason(t *testing.T) {
	db := setupTakeoutTestDB(t)
	svc := newTakeoutService(db)
	ctx := context.Background()

	seedQuestionResponse(t, db, "resp-001", "q-001", model.TakeoutStatusActive)

	_, err := svc.Propose(ctx, "resp-001", "q-001", "   ", proposer)
	assert.ErrorIs(t, err, service.ErrMissingReason)
	assert.Equal(t, model.TakeoutStatusActive, loadStatus(t, db, "resp-001", "q-001"))

	history, err := svc.History(ctx, "resp-001", "q-001")
	require.NoError(t, err)
	assert.Empty(t, history)

	// 拒绝同样必须带理由
	_, err = svc.Propose(ctx, "resp-001", "q-001", "suspicious score", proposer)
	require.NoError(t, err)
	_, err = svc.Reject(ctx, "resp-001", "q-001", "", approver)
	assert.ErrorIs(t, err, service.ErrMissingReason)
	assert.Equal(t, model.TakeoutStatusProposed, loadStatus(t, db, "resp-001", "q-001"))
}

// TestTakeoutService_InvalidTransition 测试非法转换
func TestTakeoutService_InvalidTransition(t *testing.T) {
	db := setupTakeoutTestDB(t)
	svc := newTakeoutService(db)
	ctx := context.Background()

	seedQuestionResponse(t, db, "resp-001", "q-001", model.TakeoutStatusActive)

	// active 状态不能直接批准
	_, err := svc.Approve(ctx, "resp-001", "q-001", "", approver)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	// 已提议状态不能重复提议
	_, err = svc.Propose(ctx, "resp-001", "q-001", "reason", proposer)
	require.NoError(t, err)
	_, err = svc.Propose(ctx, "resp-001", "q-001", "another reason", proposer)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

// TestTakeoutService_AlreadyResolved 测试重复审批
// 第二次批准返回 AlreadyResolved,不追加历史
func TestTakeoutService_AlreadyResolved(t *testing.T) {
	db := setupTakeoutTestDB(t)
	svc := newTakeoutService(db)
	ctx := context.Background()

	seedQuestionResponse(t, db, "resp-001", "q-001", model.TakeoutStatusActive)

	_, err := svc.Propose(ctx, "resp-001", "q-001", "dup answer", proposer)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, "resp-001", "q-001", "", approver)
	require.NoError(t, err)

	second := service.Actor{ID: "user-other", Role: "survey_admin"}
	_, err = svc.Approve(ctx, "resp-001", "q-001", "", second)
	assert.ErrorIs(t, err, service.ErrAlreadyResolved)
	assert.NotErrorIs(t, err, service.ErrInvalidTransition)

	// 拒绝一个已剔除的条目同样是 AlreadyResolved
	_, err = svc.Reject(ctx, "resp-001", "q-001", "too late", second)
	assert.ErrorIs(t, err, service.ErrAlreadyResolved)

	history, err := svc.History(ctx, "resp-001", "q-001")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

// TestTakeoutService_CancelProposal 测试撤销提议
// 状态回到 active,历史记录为 cancel 动作而不是审批结论
func TestTakeoutService_CancelProposal(t *testing.T) {
	db := setupTakeoutTestDB(t)
	svc := newTakeoutService(db)
	ctx := context.Background()

	seedQuestionResponse(t, db, "resp-001", "q-001", model.TakeoutStatusActive)

	_, err := svc.Propose(ctx, "resp-001", "q-001", "fat finger", proposer)
	require.NoError(t, err)

	entry, err := svc.CancelProposal(ctx, "resp-001", "q-001", proposer)
	require.NoError(t, err)
	assert.Equal(t, model.TakeoutActionCancel, entry.Action)
	assert.Equal(t, model.TakeoutStatusActive, entry.ToStatus)
	assert.Equal(t, model.TakeoutStatusActive, loadStatus(t, db, "resp-001", "q-001"))

	// 撤销后可以再次提议
	_, err = svc.Propose(ctx, "resp-001", "q-001", "real reason this time", proposer)
	require.NoError(t, err)
}

// TestTakeoutService_NotFound 测试目标不存在
func TestTakeoutService_NotFound(t *testing.T) {
	db := setupTakeoutTestDB(t)
	svc := newTakeoutService(db)
	ctx := context.Background()

	_, err := svc.Propose(ctx, "resp-missing", "q-missing", "reason", proposer)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.History(ctx, "resp-missing", "q-missing")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

// TestTakeoutService_ActorRequired 测试操作者必填
func TestTakeoutService_ActorRequired(t *testing.T) {
	db := setupTakeoutTestDB(t)
	svc := newTakeoutService(db)
	ctx := context.Background()

	seedQuestionResponse(t, db, "resp-001", "q-001", model.TakeoutStatusActive)

	_, err := svc.Propose(ctx, "resp-001", "q-001", "reason", service.Actor{})
	assert.Error(t, err)
	assert.Equal(t, model.TakeoutStatusActive, loadStatus(t, db, "resp-001", "q-001"))
}

// TestTakeoutService_ListPending 测试待审批列表
func TestTakeoutService_ListPending(t *testing.T) {
	db := setupTakeoutTestDB(t)
	svc := newTakeoutService(db)
	ctx := context.Background()

	seedQuestionResponse(t, db, "resp-001", "q-001", model.TakeoutStatusActive)
	seedQuestionResponse(t, db, "resp-001", "q-002", model.TakeoutStatusActive)
	seedQuestionResponse(t, db, "resp-002", "q-001", model.TakeoutStatusActive)

	_, err := svc.Propose(ctx, "resp-001", "q-001", "reason a", proposer)
	require.NoError(t, err)
	_, err = svc.Propose(ctx, "resp-002", "q-001", "reason b", proposer)
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx, "survey-001")
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	for _, qr := range pending {
		assert.Equal(t, model.TakeoutStatusProposed, qr.TakeoutStatus)
	}

	pending, err = svc.ListPending(ctx, "survey-other")
	require.NoError(t, err)
	assert.Empty(t, pending)
}
