package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mautops/takeout-gin/internal/api"
	"github.com/mautops/takeout-gin/internal/database"
	"github.com/mautops/takeout-gin/internal/model"
	"github.com/mautops/takeout-gin/internal/repository"
	"github.com/mautops/takeout-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestRouter 构造带测试身份的路由
// 用一个注入固定身份的中间件替代 Keycloak 认证
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	takeoutSvc := service.NewTakeoutService(db, repository.NewApprovalHistoryRepository(db), nil)
	bulkSvc := service.NewBulkService(takeoutSvc, 2)
	submissionSvc := service.NewSubmissionService(db, repository.NewResponseRepository(db), nil)
	scoreSvc := service.NewScoreService(db)
	bestCommentSvc := service.NewBestCommentService(
		repository.NewQuestionResponseRepository(db),
		repository.NewBestCommentRepository(db),
		nil,
	)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "user-test")
		c.Set("roles", []string{"survey_admin"})
		c.Next()
	})

	responseCtrl := api.NewResponseController(submissionSvc)
	takeoutCtrl := api.NewTakeoutController(takeoutSvc, bulkSvc)
	reportCtrl := api.NewReportController(scoreSvc)
	bestCommentCtrl := api.NewBestCommentController(bestCommentSvc)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/responses", responseCtrl.Submit)
		v1.POST("/responses/check-duplicate", responseCtrl.CheckDuplicate)
		v1.GET("/takeouts/pending", takeoutCtrl.ListPending)
		v1.POST("/takeouts/propose", takeoutCtrl.Propose)
		v1.POST("/takeouts/approve", takeoutCtrl.Approve)
		v1.POST("/takeouts/reject", takeoutCtrl.Reject)
		v1.POST("/takeouts/cancel", takeoutCtrl.Cancel)
		v1.POST("/takeouts/batch/propose", takeoutCtrl.BatchPropose)
		v1.GET("/takeouts/:responseId/:questionId/history", takeoutCtrl.History)
		v1.GET("/reports/comparison", reportCtrl.Comparison)
		v1.POST("/best-comments", bestCommentCtrl.Mark)
	}

	return router, db
}

// seedAnswer 写入一条测试问题回答
func seedAnswer(t *testing.T, db *gorm.DB, responseID, questionID string, status model.TakeoutStatus) {
	now := time.Now()
	score := 8.0
	qr := &model.QuestionResponseModel{
		ID:            uuid.New().String(),
		ResponseID:    responseID,
		QuestionID:    questionID,
		SurveyID:      "survey-001",
		QuestionType:  model.QuestionTypeScore,
		NumericValue:  &score,
		TakeoutStatus: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(qr).Error)
}

// doJSON 发送 JSON 请求
func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestTakeoutController_ErrorMapping 测试错误类别到 HTTP 状态码的映射
func TestTakeoutController_ErrorMapping(t *testing.T) {
	router, db := setupTestRouter(t)

	seedAnswer(t, db, "resp-001", "q-001", model.TakeoutStatusActive)

	// 缺理由 → 400
	w := doJSON(router, http.MethodPost, "/api/v1/takeouts/propose", api.TakeoutRequest{
		ResponseID: "resp-001", QuestionID: "q-001",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 目标不存在 → 404
	w = doJSON(router, http.MethodPost, "/api/v1/takeouts/propose", api.TakeoutRequest{
		ResponseID: "resp-missing", QuestionID: "q-001", Reason: "cleanup",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// active 状态不能批准 → 422
	w = doJSON(router, http.MethodPost, "/api/v1/takeouts/approve", api.TakeoutRequest{
		ResponseID: "resp-001", QuestionID: "q-001",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// 正常提议 + 批准
	w = doJSON(router, http.MethodPost, "/api/v1/takeouts/propose", api.TakeoutRequest{
		ResponseID: "resp-001", QuestionID: "q-001", Reason: "wrong system",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodPost, "/api/v1/takeouts/approve", api.TakeoutRequest{
		ResponseID: "resp-001", QuestionID: "q-001",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// 重复批准 → 409,响应带错误类别
	w = doJSON(router, http.MethodPost, "/api/v1/takeouts/approve", api.TakeoutRequest{
		ResponseID: "resp-001", QuestionID: "q-001",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var errResp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "already_resolved", errResp.Kind)
}

// TestTakeoutController_HistoryAndPending 测试历史与待审批查询
func TestTakeoutController_HistoryAndPending(t *testing.T) {
	router, db := setupTestRouter(t)

	seedAnswer(t, db, "resp-001", "q-001", model.TakeoutStatusActive)

	w := doJSON(router, http.MethodPost, "/api/v1/takeouts/propose", api.TakeoutRequest{
		ResponseID: "resp-001", QuestionID: "q-001", Reason: "suspect",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/takeouts/pending?survey_id=survey-001", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 1)

	w = doJSON(router, http.MethodGet, "/api/v1/takeouts/resp-001/q-001/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 1)

	w = doJSON(router, http.MethodGet, "/api/v1/takeouts/resp-x/q-x/history", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 缺少 survey_id → 400
	w = doJSON(router, http.MethodGet, "/api/v1/takeouts/pending", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestTakeoutController_Batch 测试批量接口
func TestTakeoutController_Batch(t *testing.T) {
	router, db := setupTestRouter(t)

	seedAnswer(t, db, "resp-001", "q-001", model.TakeoutStatusActive)
	seedAnswer(t, db, "resp-001", "q-002", model.TakeoutStatusActive)

	w := doJSON(router, http.MethodPost, "/api/v1/takeouts/batch/propose", api.BulkTakeoutRequest{
		Items: []service.BulkOperationItem{
			{ResponseID: "resp-001", QuestionID: "q-001"},
			{ResponseID: "resp-001", QuestionID: "q-002"},
			{ResponseID: "resp-001", QuestionID: "q-missing"},
		},
		Reason: "bulk cleanup",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data service.BulkResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Succeeded, 2)
	assert.Len(t, resp.Data.Failed, 1)

	// 空批次 → 400
	w = doJSON(router, http.MethodPost, "/api/v1/takeouts/batch/propose", api.BulkTakeoutRequest{
		Items: []service.BulkOperationItem{}, Reason: "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestResponseController_SubmitAndDuplicate 测试提交与重复提交
func TestResponseController_SubmitAndDuplicate(t *testing.T) {
	router, _ := setupTestRouter(t)

	score := 9.0
	body := service.SubmitResponseRequest{
		SurveyID:        "survey-001",
		RespondentEmail: "user@corp.com",
		ApplicationIDs:  []string{"app-001"},
		Answers: []service.AnswerInput{
			{QuestionID: "q-001", QuestionType: model.QuestionTypeScore, NumericValue: &score},
		},
	}

	w := doJSON(router, http.MethodPost, "/api/v1/responses", body)
	assert.Equal(t, http.StatusOK, w.Code)

	// 重复提交 → 409
	body.RespondentEmail = " USER@corp.com "
	w = doJSON(router, http.MethodPost, "/api/v1/responses", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 查重接口
	w = doJSON(router, http.MethodPost, "/api/v1/responses/check-duplicate", api.CheckDuplicateRequest{
		SurveyID:        "survey-001",
		RespondentEmail: "user@corp.com",
		ApplicationIDs:  []string{"app-001"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var checkResp struct {
		Data service.DuplicateCheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkResp))
	assert.True(t, checkResp.Data.IsDuplicate)
}

// TestReportController_Comparison 测试报表接口
func TestReportController_Comparison(t *testing.T) {
	router, db := setupTestRouter(t)

	seedAnswer(t, db, "resp-001", "q-001", model.TakeoutStatusActive)

	w := doJSON(router, http.MethodGet, "/api/v1/reports/comparison?survey_id=survey-001", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/reports/comparison?survey_id=survey-missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/reports/comparison", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestBestCommentController_Mark 测试评选接口
func TestBestCommentController_Mark(t *testing.T) {
	router, db := setupTestRouter(t)

	now := time.Now()
	qr := &model.QuestionResponseModel{
		ID:            uuid.New().String(),
		ResponseID:    "resp-001",
		QuestionID:    "q-002",
		SurveyID:      "survey-001",
		QuestionType:  model.QuestionTypeText,
		TextValue:     "thoughtful comment",
		TakeoutStatus: model.TakeoutStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(qr).Error)

	w := doJSON(router, http.MethodPost, "/api/v1/best-comments", api.MarkBestRequest{
		ResponseID: "resp-001", QuestionID: "q-002",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// 评分题没有可评选评论 → 404
	seedAnswer(t, db, "resp-001", "q-001", model.TakeoutStatusActive)
	w = doJSON(router, http.MethodPost, "/api/v1/best-comments", api.MarkBestRequest{
		ResponseID: "resp-001", QuestionID: "q-001",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
