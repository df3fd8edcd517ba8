package model_test

import (
	"testing"

	"github.com/mautops/takeout-gin/internal/model"
	"github.com/stretchr/testify/assert"
)

// TestTakeoutStatus_Valid 测试剔除状态有效性
func TestTakeoutStatus_Valid(t *testing.T) {
	valid := []model.TakeoutStatus{
		model.TakeoutStatusActive,
		model.TakeoutStatusProposed,
		model.TakeoutStatusTakenOut,
		model.TakeoutStatusRejected,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "status %s should be valid", s)
	}

	assert.False(t, model.TakeoutStatus("").Valid())
	assert.False(t, model.TakeoutStatus("deleted").Valid())
}

// TestTakeoutStatus_Resolved 测试已决状态判断
func TestTakeoutStatus_Resolved(t *testing.T) {
	assert.False(t, model.TakeoutStatusActive.Resolved())
	assert.False(t, model.TakeoutStatusProposed.Resolved())
	assert.True(t, model.TakeoutStatusTakenOut.Resolved())
	assert.True(t, model.TakeoutStatusRejected.Resolved())
}

// TestTakeoutAction_RequiresReason 测试理由必填规则
func TestTakeoutAction_RequiresReason(t *testing.T) {
	assert.True(t, model.TakeoutActionPropose.RequiresReason())
	assert.True(t, model.TakeoutActionReject.RequiresReason())
	assert.False(t, model.TakeoutActionApprove.RequiresReason())
	assert.False(t, model.TakeoutActionCancel.RequiresReason())
}

// TestTakeoutAction_AllowedFrom 测试状态机转换规则
func TestTakeoutAction_AllowedFrom(t *testing.T) {
	// 提议: 仅 active 和 rejected
	assert.True(t, model.TakeoutActionPropose.AllowedFrom(model.TakeoutStatusActive))
	assert.True(t, model.TakeoutActionPropose.AllowedFrom(model.TakeoutStatusRejected))
	assert.False(t, model.TakeoutActionPropose.AllowedFrom(model.TakeoutStatusProposed))
	assert.False(t, model.TakeoutActionPropose.AllowedFrom(model.TakeoutStatusTakenOut))

	// 审批类操作: 仅 proposed_takeout
	for _, a := range []model.TakeoutAction{
		model.TakeoutActionApprove,
		model.TakeoutActionReject,
		model.TakeoutActionCancel,
	} {
		assert.True(t, a.AllowedFrom(model.TakeoutStatusProposed), "action %s", a)
		assert.False(t, a.AllowedFrom(model.TakeoutStatusActive), "action %s", a)
		assert.False(t, a.AllowedFrom(model.TakeoutStatusTakenOut), "action %s", a)
		assert.False(t, a.AllowedFrom(model.TakeoutStatusRejected), "action %s", a)
	}
}

// TestTakeoutAction_Target 测试转换目标状态
func TestTakeoutAction_Target(t *testing.T) {
	assert.Equal(t, model.TakeoutStatusProposed, model.TakeoutActionPropose.Target())
	assert.Equal(t, model.TakeoutStatusTakenOut, model.TakeoutActionApprove.Target())
	assert.Equal(t, model.TakeoutStatusRejected, model.TakeoutActionReject.Target())
	assert.Equal(t, model.TakeoutStatusActive, model.TakeoutActionCancel.Target())
}

// TestQuestionType_Classification 测试问题类型分类
func TestQuestionType_Classification(t *testing.T) {
	assert.True(t, model.QuestionTypeScore.Numeric())
	assert.False(t, model.QuestionTypeText.Numeric())
	assert.False(t, model.QuestionTypeMatrix.Numeric())

	assert.True(t, model.QuestionTypeText.FreeText())
	assert.False(t, model.QuestionTypeScore.FreeText())
	assert.False(t, model.QuestionTypeSignature.FreeText())

	assert.False(t, model.QuestionType("essay").Valid())
}

// TestQuestionResponseModel_Validate 测试问题回答模型验证
func TestQuestionResponseModel_Validate(t *testing.T) {
	qr := &model.QuestionResponseModel{
		ID:            "qr-001",
		ResponseID:    "resp-001",
		QuestionID:    "q-001",
		QuestionType:  model.QuestionTypeScore,
		TakeoutStatus: model.TakeoutStatusActive,
	}
	assert.NoError(t, qr.Validate())

	qr.TakeoutStatus = "unknown"
	assert.Error(t, qr.Validate())

	qr.TakeoutStatus = model.TakeoutStatusActive
	qr.ResponseID = ""
	assert.Error(t, qr.Validate())
}
