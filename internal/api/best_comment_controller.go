package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mautops/takeout-gin/internal/service"
)

// BestCommentController 最佳评论控制器
type BestCommentController struct {
	bestCommentService service.BestCommentService
}

// NewBestCommentController 创建最佳评论控制器
func NewBestCommentController(bestCommentService service.BestCommentService) *BestCommentController {
	return &BestCommentController{
		bestCommentService: bestCommentService,
	}
}

// MarkBestRequest 评选最佳评论请求
// @Description 将某个问题回答的评论标记为最佳评论
type MarkBestRequest struct {
	ResponseID string `json:"response_id" example:"resp-001" binding:"required"` // 回复 ID
	QuestionID string `json:"question_id" example:"q-001" binding:"required"`    // 问题 ID
}

// FeedbackRequest 评论反馈请求
// @Description 为最佳评论附加审阅反馈
type FeedbackRequest struct {
	FeedbackText string `json:"feedback_text" example:"great insight" binding:"required"` // 反馈内容
}

// Mark 评选最佳评论
// @Summary      评选最佳评论
// @Description  将自由文本回答的评论标记为最佳评论,重复标记返回既有记录
// @Tags         最佳评论
// @Accept       json
// @Produce      json
// @Param        request body MarkBestRequest true "评选参数"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /best-comments [post]
// @Security     BearerAuth
func (c *BestCommentController) Mark(ctx *gin.Context) {
	var req MarkBestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	bc, err := c.bestCommentService.MarkBest(ctx.Request.Context(), req.ResponseID, req.QuestionID, actorFromContext(ctx))
	if err != nil {
		serviceError(ctx, err)
		return
	}

	Success(ctx, bc)
}

// Unmark 取消最佳评论标记
// @Summary      取消最佳评论标记
// @Description  取消评选,底层问题回答保持不变
// @Tags         最佳评论
// @Accept       json
// @Produce      json
// @Param        id path string true "问题回答 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /best-comments/{id} [delete]
// @Security     BearerAuth
func (c *BestCommentController) Unmark(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.bestCommentService.Unmark(ctx.Request.Context(), id, actorFromContext(ctx)); err != nil {
		serviceError(ctx, err)
		return
	}

	Success(ctx, nil)
}

// Feedback 提交评论反馈
// @Summary      提交评论反馈
// @Description  为已评选的最佳评论附加审阅反馈
// @Tags         最佳评论
// @Accept       json
// @Produce      json
// @Param        id path string true "问题回答 ID"
// @Param        request body FeedbackRequest true "反馈内容"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /best-comments/{id}/feedback [post]
// @Security     BearerAuth
func (c *BestCommentController) Feedback(ctx *gin.Context) {
	id := ctx.Param("id")

	var req FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	bc, err := c.bestCommentService.SubmitFeedback(ctx.Request.Context(), id, req.FeedbackText, actorFromContext(ctx))
	if err != nil {
		serviceError(ctx, err)
		return
	}

	Success(ctx, bc)
}

// List 列出最佳评论
// @Summary      列出最佳评论
// @Description  列出问卷下所有已评选的最佳评论
// @Tags         最佳评论
// @Accept       json
// @Produce      json
// @Param        survey_id query string true "问卷 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /best-comments [get]
// @Security     BearerAuth
func (c *BestCommentController) List(ctx *gin.Context) {
	surveyID := ctx.Query("survey_id")
	if surveyID == "" {
		Error(ctx, http.StatusBadRequest, "invalid request", "survey_id is required")
		return
	}

	bcs, err := c.bestCommentService.List(ctx.Request.Context(), surveyID)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	Success(ctx, bcs)
}
