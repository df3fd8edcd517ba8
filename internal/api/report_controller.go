package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mautops/takeout-gin/internal/service"
)

// ReportController 分数报表控制器
type ReportController struct {
	scoreService service.ScoreService
}

// NewReportController 创建分数报表控制器
func NewReportController(scoreService service.ScoreService) *ReportController {
	return &ReportController{
		scoreService: scoreService,
	}
}

// Comparison 剔除前后分数对比
// @Summary      剔除前后分数对比
// @Description  按问题返回剔除前后的平均分与剔除理由汇总
// @Tags         报表
// @Accept       json
// @Produce      json
// @Param        survey_id query string true "问卷 ID"
// @Param        function_id query string false "职能 ID 过滤"
// @Success      200  {object}  Response{data=service.ComparisonReport}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/comparison [get]
// @Security     BearerAuth
func (c *ReportController) Comparison(ctx *gin.Context) {
	surveyID := ctx.Query("survey_id")
	if surveyID == "" {
		Error(ctx, http.StatusBadRequest, "invalid request", "survey_id is required")
		return
	}

	var functionID *string
	if v := ctx.Query("function_id"); v != "" {
		functionID = &v
	}

	report, err := c.scoreService.ComputeComparison(ctx.Request.Context(), surveyID, functionID)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	Success(ctx, report)
}
