package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mautops/takeout-gin/internal/model"
	"github.com/mautops/takeout-gin/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestResponseRepository_SaveAndFind 测试回复保存与查找
func TestResponseRepository_SaveAndFind(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewResponseRepository(db)

	now := time.Now()
	response := &model.ResponseModel{
		ID:              uuid.New().String(),
		SurveyID:        "survey-001",
		RespondentEmail: "User@Corp.com",
		NormalizedEmail: "user@corp.com",
		DepartmentID:    "dept-001",
		SubmittedAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, repo.Save(response))

	found, err := repo.FindByID(response.ID)
	require.NoError(t, err)
	assert.Equal(t, "user@corp.com", found.NormalizedEmail)

	_, err = repo.FindByID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestResponseRepository_FindApplicationMatches 测试查重关联查询
// 匹配条件: 同一问卷 + 归一化邮箱 + 覆盖任一指定应用
func TestResponseRepository_FindApplicationMatches(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewResponseRepository(db)

	now := time.Now()
	seed := func(responseID, surveyID, email, appID string) {
		require.NoError(t, db.Create(&model.ResponseApplicationModel{
			ID:              uuid.New().String(),
			ResponseID:      responseID,
			SurveyID:        surveyID,
			NormalizedEmail: email,
			ApplicationID:   appID,
			CreatedAt:       now,
		}).Error)
	}
	seed("resp-001", "survey-001", "user@corp.com", "app-001")
	seed("resp-001", "survey-001", "user@corp.com", "app-002")
	seed("resp-002", "survey-001", "other@corp.com", "app-001")
	seed("resp-003", "survey-002", "user@corp.com", "app-001")

	matches, err := repo.FindApplicationMatches("survey-001", "user@corp.com", []string{"app-002", "app-003"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "resp-001", matches[0].ResponseID)

	// 不重叠的应用集合 → 无匹配
	matches, err = repo.FindApplicationMatches("survey-001", "user@corp.com", []string{"app-009"})
	require.NoError(t, err)
	assert.Empty(t, matches)

	// 其他问卷不受影响
	matches, err = repo.FindApplicationMatches("survey-002", "user@corp.com", []string{"app-001"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
