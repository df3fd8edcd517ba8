package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mautops/takeout-gin/internal/model"
	"github.com/mautops/takeout-gin/internal/service"
)

// TakeoutController 剔除流程控制器
type TakeoutController struct {
	takeoutService service.TakeoutService
	bulkService    service.BulkService
}

// NewTakeoutController 创建剔除流程控制器
func NewTakeoutController(takeoutService service.TakeoutService, bulkService service.BulkService) *TakeoutController {
	return &TakeoutController{
		takeoutService: takeoutService,
		bulkService:    bulkService,
	}
}

// TakeoutRequest 单条剔除操作请求
// @Description 针对单个问题回答的剔除操作参数
type TakeoutRequest struct {
	ResponseID string `json:"response_id" example:"resp-001" binding:"required"` // 回复 ID
	QuestionID string `json:"question_id" example:"q-001" binding:"required"`    // 问题 ID
	Reason     string `json:"reason" example:"answered the wrong system"`        // 操作理由
}

// BulkTakeoutRequest 批量剔除操作请求
// @Description 批量剔除操作的参数,理由对整个批次生效
type BulkTakeoutRequest struct {
	Items  []service.BulkOperationItem `json:"items" binding:"required"`           // 操作条目
	Reason string                      `json:"reason" example:"duplicate answers"` // 操作理由
}

// Propose 提议剔除
// @Summary      提议剔除
// @Description  对问题回答发起剔除提议,理由必填
// @Tags         剔除流程
// @Accept       json
// @Produce      json
// @Param        request body TakeoutRequest true "提议参数"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /takeouts/propose [post]
// @Security     BearerAuth
func (c *TakeoutController) Propose(ctx *gin.Context) {
	c.single(ctx, model.TakeoutActionPropose)
}

// Approve 批准剔除
// @Summary      批准剔除
// @Description  批准剔除提议,回答进入 taken_out 状态
// @Tags         剔除流程
// @Accept       json
// @Produce      json
// @Param        request body TakeoutRequest true "批准参数"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /takeouts/approve [post]
// @Security     BearerAuth
func (c *TakeoutController) Approve(ctx *gin.Context) {
	c.single(ctx, model.TakeoutActionApprove)
}

// Reject 拒绝剔除
// @Summary      拒绝剔除
// @Description  拒绝剔除提议,理由必填,回答可被重新提议
// @Tags         剔除流程
// @Accept       json
// @Produce      json
// @Param        request body TakeoutRequest true "拒绝参数"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /takeouts/reject [post]
// @Security     BearerAuth
func (c *TakeoutController) Reject(ctx *gin.Context) {
	c.single(ctx, model.TakeoutActionReject)
}

// Cancel 撤销提议
// @Summary      撤销剔除提议
// @Description  提议人撤回提议,回答回到 active 状态
// @Tags         剔除流程
// @Accept       json
// @Produce      json
// @Param        request body TakeoutRequest true "撤销参数"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /takeouts/cancel [post]
// @Security     BearerAuth
func (c *TakeoutController) Cancel(ctx *gin.Context) {
	c.single(ctx, model.TakeoutActionCancel)
}

// single 执行单条剔除操作
func (c *TakeoutController) single(ctx *gin.Context, action model.TakeoutAction) {
	var req TakeoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	actor := actorFromContext(ctx)
	var entry interface{}
	var err error
	switch action {
	case model.TakeoutActionPropose:
		entry, err = c.takeoutService.Propose(ctx.Request.Context(), req.ResponseID, req.QuestionID, req.Reason, actor)
	case model.TakeoutActionApprove:
		entry, err = c.takeoutService.Approve(ctx.Request.Context(), req.ResponseID, req.QuestionID, req.Reason, actor)
	case model.TakeoutActionReject:
		entry, err = c.takeoutService.Reject(ctx.Request.Context(), req.ResponseID, req.QuestionID, req.Reason, actor)
	case model.TakeoutActionCancel:
		entry, err = c.takeoutService.CancelProposal(ctx.Request.Context(), req.ResponseID, req.QuestionID, actor)
	}
	if err != nil {
		serviceError(ctx, err)
		return
	}

	Success(ctx, entry)
}

// BatchPropose 批量提议剔除
// @Summary      批量提议剔除
// @Description  对多个问题回答批量发起剔除提议
// @Tags         剔除流程
// @Accept       json
// @Produce      json
// @Param        request body BulkTakeoutRequest true "批量提议参数"
// @Success      200  {object}  Response{data=service.BulkResult}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /takeouts/batch/propose [post]
// @Security     BearerAuth
func (c *TakeoutController) BatchPropose(ctx *gin.Context) {
	c.batch(ctx, model.TakeoutActionPropose)
}

// BatchApprove 批量批准剔除
// @Summary      批量批准剔除
// @Description  批量批准多个剔除提议,单个失败不影响其余条目
// @Tags         剔除流程
// @Accept       json
// @Produce      json
// @Param        request body BulkTakeoutRequest true "批量批准参数"
// @Success      200  {object}  Response{data=service.BulkResult}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /takeouts/batch/approve [post]
// @Security     BearerAuth
func (c *TakeoutController) BatchApprove(ctx *gin.Context) {
	c.batch(ctx, model.TakeoutActionApprove)
}

// BatchReject 批量拒绝剔除
// @Summary      批量拒绝剔除
// @Description  批量拒绝多个剔除提议,理由必填
// @Tags         剔除流程
// @Accept       json
// @Produce      json
// @Param        request body BulkTakeoutRequest true "批量拒绝参数"
// @Success      200  {object}  Response{data=service.BulkResult}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /takeouts/batch/reject [post]
// @Security     BearerAuth
func (c *TakeoutController) BatchReject(ctx *gin.Context) {
	c.batch(ctx, model.TakeoutActionReject)
}

// batch 执行批量剔除操作
func (c *TakeoutController) batch(ctx *gin.Context, action model.TakeoutAction) {
	var req BulkTakeoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if len(req.Items) == 0 {
		Error(ctx, http.StatusBadRequest, "invalid request", "items must not be empty")
		return
	}

	result, err := c.bulkService.ApplyBulk(ctx.Request.Context(), action, req.Items, req.Reason, actorFromContext(ctx))
	if err != nil {
		serviceError(ctx, err)
		return
	}

	Success(ctx, result)
}

// History 查询审批历史
// @Summary      查询审批历史
// @Description  按时间正序返回指定问题回答的完整审批账本
// @Tags         剔除流程
// @Accept       json
// @Produce      json
// @Param        responseId path string true "回复 ID"
// @Param        questionId path string true "问题 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /takeouts/{responseId}/{questionId}/history [get]
// @Security     BearerAuth
func (c *TakeoutController) History(ctx *gin.Context) {
	responseID := ctx.Param("responseId")
	questionID := ctx.Param("questionId")

	entries, err := c.takeoutService.History(ctx.Request.Context(), responseID, questionID)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	Success(ctx, entries)
}

// ListPending 列出待审批提议
// @Summary      列出待审批提议
// @Description  列出问卷下所有等待审批的剔除提议
// @Tags         剔除流程
// @Accept       json
// @Produce      json
// @Param        survey_id query string true "问卷 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /takeouts/pending [get]
// @Security     BearerAuth
func (c *TakeoutController) ListPending(ctx *gin.Context) {
	surveyID := ctx.Query("survey_id")
	if surveyID == "" {
		Error(ctx, http.StatusBadRequest, "invalid request", "survey_id is required")
		return
	}

	pending, err := c.takeoutService.ListPending(ctx.Request.Context(), surveyID)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	Success(ctx, pending)
}
