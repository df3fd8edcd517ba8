package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mautops/takeout-gin/internal/service"
	"github.com/mautops/takeout-gin/internal/utils"
)

// ResponseController 问卷回复控制器
type ResponseController struct {
	submissionService service.SubmissionService
}

// NewResponseController 创建问卷回复控制器
func NewResponseController(submissionService service.SubmissionService) *ResponseController {
	return &ResponseController{
		submissionService: submissionService,
	}
}

// CheckDuplicateRequest 查重请求
// @Description 重复提交检查的请求参数
type CheckDuplicateRequest struct {
	SurveyID        string   `json:"survey_id" example:"survey-001" binding:"required"`           // 问卷 ID
	RespondentEmail string   `json:"respondent_email" example:"user@corp.com" binding:"required"` // 回复人邮箱
	ApplicationIDs  []string `json:"application_ids" binding:"required"`                          // 应用系统 ID 列表
}

// Submit 提交问卷回复
// @Summary      提交问卷回复
// @Description  提交问卷回复,重复提交会被拒绝
// @Tags         回复管理
// @Accept       json
// @Produce      json
// @Param        request body service.SubmitResponseRequest true "回复内容"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /responses [post]
// @Security     BearerAuth
func (c *ResponseController) Submit(ctx *gin.Context) {
	var req service.SubmitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := utils.ValidateEmail(req.RespondentEmail); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid respondent email", err.Error())
		return
	}

	response, err := c.submissionService.Submit(ctx.Request.Context(), &req)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	Success(ctx, response)
}

// CheckDuplicate 检查重复提交
// @Summary      检查重复提交
// @Description  提交前的查重快速路径,最终约束由唯一索引保证
// @Tags         回复管理
// @Accept       json
// @Produce      json
// @Param        request body CheckDuplicateRequest true "查重参数"
// @Success      200  {object}  Response{data=service.DuplicateCheckResult}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /responses/check-duplicate [post]
// @Security     BearerAuth
func (c *ResponseController) CheckDuplicate(ctx *gin.Context) {
	var req CheckDuplicateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := c.submissionService.CheckDuplicate(ctx.Request.Context(), req.SurveyID, req.RespondentEmail, req.ApplicationIDs)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	Success(ctx, result)
}
