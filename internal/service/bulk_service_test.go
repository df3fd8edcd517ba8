package service_test

import (
	"context"
	"testing"

	"github.com/mautops/takeout-gin/internal/model"
	"github.com/mautops/takeout-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBulkService_MixedOutcome 测试批量操作的逐条结果
// 单个条目失败不影响其余条目,每个输入条目恰好出现一次
func TestBulkService_MixedOutcome(t *testing.T) {
	db := setupTakeoutTestDB(t)
	takeoutSvc := newTakeoutService(db)
	bulkSvc := service.NewBulkService(takeoutSvc, 4)
	ctx := context.Background()

	seedQuestionResponse(t, db, "resp-001", "q-001", model.TakeoutStatusActive)
	seedQuestionResponse(t, db, "resp-001", "q-002", model.TakeoutStatusActive)
	// q-003 已处于提议状态,批量提议会失败
	seedQuestionResponse(t, db, "resp-001", "q-003", model.TakeoutStatusProposed)

	items := []service.BulkOperationItem{
		{ResponseID: "resp-001", QuestionID: "q-001"},
		{ResponseID: "resp-001", QuestionID: "q-002"},
		{ResponseID: "resp-001", QuestionID: "q-003"},
		{ResponseID: "resp-001", QuestionID: "q-missing"},
	}

	result, err := bulkSvc.ApplyBulk(ctx, model.TakeoutActionPropose, items, "bulk cleanup", proposer)
	require.NoError(t, err)

	assert.Len(t, result.Succeeded, 2)
	assert.Len(t, result.Failed, 2)
	assert.Equal(t, len(items), len(result.Succeeded)+len(result.Failed))

	// 失败条目携带错误类别,可逐行对账
	kinds := make(map[string]string)
	for _, f := range result.Failed {
		kinds[f.Item.QuestionID] = f.ErrorKind
	}
	assert.Equal(t, service.KindInvalidTransition, kinds["q-003"])
	assert.Equal(t, service.KindNotFound, kinds["q-missing"])

	// 成功条目确实落库
	assert.Equal(t, model.TakeoutStatusProposed, loadStatus(t, db, "resp-001", "q-001"))
	assert.Equal(t, model.TakeoutStatusProposed, loadStatus(t, db, "resp-001", "q-002"))
}

// TestBulkService_ReasonValidatedOnce 测试批次理由的前置校验
// 理由在分发前校验,任何条目都不会被部分处理
func TestBulkService_ReasonValidatedOnce(t *testing.T) {
	db := setupTakeoutTestDB(t)
	takeoutSvc := newTakeoutService(db)
	bulkSvc := service.NewBulkService(takeoutSvc, 4)
	ctx := context.Background()

	seedQuestionResponse(t, db, "resp-001", "q-001", model.TakeoutStatusActive)
	seedQuestionResponse(t, db, "resp-001", "q-002", model.TakeoutStatusActive)

	items := []service.BulkOperationItem{
		{ResponseID: "resp-001", QuestionID: "q-001"},
		{ResponseID: "resp-001", QuestionID: "q-002"},
	}

	_, err := bulkSvc.ApplyBulk(ctx, model.TakeoutActionPropose, items, "  ", proposer)
	assert.ErrorIs(t, err, service.ErrMissingReason)

	assert.Equal(t, model.TakeoutStatusActive, loadStatus(t, db, "resp-001", "q-001"))
	assert.Equal(t, model.TakeoutStatusActive, loadStatus(t, db, "resp-001", "q-002"))
}

// TestBulkService_BatchApprove 测试批量批准
func TestBulkService_BatchApprove(t *testing.T) {
	db := setupTakeoutTestDB(t)
	takeoutSvc := newTakeoutService(db)
	bulkSvc := service.NewBulkService(takeoutSvc, 2)
	ctx := context.Background()

	seedQuestionResponse(t, db, "resp-001", "q-001", model.TakeoutStatusProposed)
	seedQuestionResponse(t, db, "resp-001", "q-002", model.TakeoutStatusProposed)
	seedQuestionResponse(t, db, "resp-001", "q-003", model.TakeoutStatusTakenOut)

	items := []service.BulkOperationItem{
		{ResponseID: "resp-001", QuestionID: "q-001"},
		{ResponseID: "resp-001", QuestionID: "q-002"},
		{ResponseID: "resp-001", QuestionID: "q-003"},
	}

	result, err := bulkSvc.ApplyBulk(ctx, model.TakeoutActionApprove, items, "", approver)
	require.NoError(t, err)

	assert.Len(t, result.Succeeded, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "q-003", result.Failed[0].Item.QuestionID)
	assert.Equal(t, service.KindAlreadyResolved, result.Failed[0].ErrorKind)
}

// TestBulkService_UnsupportedAction 测试不支持的批量操作
// 撤销是提议人针对单个条目的操作,不提供批量入口
func TestBulkService_UnsupportedAction(t *testing.T) {
	db := setupTakeoutTestDB(t)
	takeoutSvc := newTakeoutService(db)
	bulkSvc := service.NewBulkService(takeoutSvc, 4)
	ctx := context.Background()

	items := []service.BulkOperationItem{{ResponseID: "resp-001", QuestionID: "q-001"}}

	_, err := bulkSvc.ApplyBulk(ctx, model.TakeoutActionCancel, items, "", proposer)
	assert.Error(t, err)

	_, err = bulkSvc.ApplyBulk(ctx, model.TakeoutAction("purge"), items, "", proposer)
	assert.Error(t, err)
}
