package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mautops/takeout-gin/internal/database"
	"github.com/mautops/takeout-gin/internal/model"
	"github.com/mautops/takeout-gin/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupRepoTestDB 创建仓储测试数据库
func setupRepoTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.Migrate(db)
	require.NoError(t, err)

	return db
}

// newQuestionResponse 构造一条问题回答
func newQuestionResponse(surveyID, responseID, questionID, functionID string, status model.TakeoutStatus) *model.QuestionResponseModel {
	now := time.Now()
	return &model.QuestionResponseModel{
		ID:            uuid.New().String(),
		ResponseID:    responseID,
		QuestionID:    questionID,
		SurveyID:      surveyID,
		FunctionID:    functionID,
		QuestionType:  model.QuestionTypeScore,
		TakeoutStatus: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// TestQuestionResponseRepository_FindByPair 测试按组合键查找
func TestQuestionResponseRepository_FindByPair(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewQuestionResponseRepository(db)

	qr := newQuestionResponse("survey-001", "resp-001", "q-001", "fn-001", model.TakeoutStatusActive)
	require.NoError(t, repo.Save(qr))

	found, err := repo.FindByPair("resp-001", "q-001")
	require.NoError(t, err)
	assert.Equal(t, qr.ID, found.ID)
	assert.Equal(t, model.TakeoutStatusActive, found.TakeoutStatus)

	_, err = repo.FindByPair("resp-001", "q-missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestQuestionResponseRepository_FindByFilter 测试过滤查询
func TestQuestionResponseRepository_FindByFilter(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewQuestionResponseRepository(db)

	require.NoError(t, repo.Save(newQuestionResponse("survey-001", "resp-001", "q-001", "fn-ops", model.TakeoutStatusActive)))
	require.NoError(t, repo.Save(newQuestionResponse("survey-001", "resp-002", "q-001", "fn-ops", model.TakeoutStatusProposed)))
	require.NoError(t, repo.Save(newQuestionResponse("survey-001", "resp-003", "q-002", "fn-dev", model.TakeoutStatusActive)))
	require.NoError(t, repo.Save(newQuestionResponse("survey-002", "resp-004", "q-001", "fn-ops", model.TakeoutStatusActive)))

	surveyID := "survey-001"
	qrs, err := repo.FindByFilter(&repository.QuestionResponseFilter{SurveyID: &surveyID})
	require.NoError(t, err)
	assert.Len(t, qrs, 3)

	status := model.TakeoutStatusProposed
	qrs, err = repo.FindByFilter(&repository.QuestionResponseFilter{SurveyID: &surveyID, TakeoutStatus: &status})
	require.NoError(t, err)
	require.Len(t, qrs, 1)
	assert.Equal(t, "resp-002", qrs[0].ResponseID)

	functionID := "fn-dev"
	qrs, err = repo.FindByFilter(&repository.QuestionResponseFilter{SurveyID: &surveyID, FunctionID: &functionID})
	require.NoError(t, err)
	require.Len(t, qrs, 1)
	assert.Equal(t, "q-002", qrs[0].QuestionID)

	// 空过滤器返回全部
	qrs, err = repo.FindByFilter(nil)
	require.NoError(t, err)
	assert.Len(t, qrs, 4)
}

// TestApprovalHistoryRepository_AppendOnly 测试历史账本的追加与正序读取
func TestApprovalHistoryRepository_AppendOnly(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewApprovalHistoryRepository(db)

	base := time.Now()
	actions := []model.TakeoutAction{
		model.TakeoutActionPropose,
		model.TakeoutActionReject,
		model.TakeoutActionPropose,
		model.TakeoutActionApprove,
	}
	// 逆序写入,读取时仍按时间正序
	for i := len(actions) - 1; i >= 0; i-- {
		entry := &model.ApprovalHistoryModel{
			ID:         uuid.New().String(),
			ResponseID: "resp-001",
			QuestionID: "q-001",
			FromStatus: model.TakeoutStatusActive,
			ToStatus:   actions[i].Target(),
			Action:     actions[i],
			Reason:     "reason",
			ActorID:    "user-001",
			ActorRole:  "survey_admin",
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Save(entry))
	}

	entries, err := repo.FindBySubject("resp-001", "q-001")
	require.NoError(t, err)
	require.Len(t, entries, 4)
	for i, entry := range entries {
		assert.Equal(t, actions[i], entry.Action)
	}

	entries, err = repo.FindBySubject("resp-001", "q-other")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestBestCommentRepository_UniquePerQuestionResponse 测试最佳评论唯一约束
func TestBestCommentRepository_UniquePerQuestionResponse(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewBestCommentRepository(db)

	now := time.Now()
	bc := &model.BestCommentModel{
		ID:                 uuid.New().String(),
		QuestionResponseID: "qr-001",
		ResponseID:         "resp-001",
		QuestionID:         "q-002",
		SurveyID:           "survey-001",
		CuratorID:          "user-curator",
		CuratedAt:          now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	require.NoError(t, repo.Save(bc))

	found, err := repo.FindByQuestionResponseID("qr-001")
	require.NoError(t, err)
	assert.Equal(t, bc.ID, found.ID)

	// 同一问题回答的第二条评选记录违反唯一索引
	dup := &model.BestCommentModel{
		ID:                 uuid.New().String(),
		QuestionResponseID: "qr-001",
		ResponseID:         "resp-001",
		QuestionID:         "q-002",
		SurveyID:           "survey-001",
		CuratorID:          "user-other",
		CuratedAt:          now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	assert.Error(t, db.Create(dup).Error)

	require.NoError(t, repo.Delete(bc.ID))
	_, err = repo.FindByQuestionResponseID("qr-001")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
