package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/mautops/takeout-gin/docs" // 导入生成的 docs 包
	"github.com/mautops/takeout-gin/internal/auth"
	"github.com/mautops/takeout-gin/internal/config"
)

// Controllers 路由所需的全部控制器
type Controllers struct {
	Response    *ResponseController
	Takeout     *TakeoutController
	Report      *ReportController
	BestComment *BestCommentController
}

// SetupRoutes 配置路由
func SetupRoutes(cfg *config.Config, validator *auth.KeycloakTokenValidator, db *gorm.DB, fgaClient *auth.OpenFGAClient, ctrls Controllers) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(ErrorHandlerMiddleware())
	if cfg != nil {
		router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))
		if cfg.RateLimit.RPS > 0 {
			router.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// 健康检查
	healthController := NewHealthController(db, fgaClient)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// Swagger UI 路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("http://localhost:8080/swagger/doc.json"), // Swagger JSON URL
	))

	// API v1 路由组
	v1 := router.Group("/api/v1")
	if validator != nil {
		v1.Use(auth.KeycloakAuthMiddleware(validator))
	}

	// 问卷级权限检查,仅在配置了 OpenFGA 时启用
	surveyPerm := func(relation string) gin.HandlerFunc {
		if fgaClient == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return auth.SurveyPermissionMiddleware(fgaClient, relation)
	}
	{
		// 回复管理路由
		if ctrls.Response != nil {
			responses := v1.Group("/responses")
			{
				responses.POST("", ctrls.Response.Submit)
				responses.POST("/check-duplicate", ctrls.Response.CheckDuplicate)
			}
		}

		// 剔除流程路由
		if ctrls.Takeout != nil {
			takeouts := v1.Group("/takeouts")
			{
				takeouts.GET("/pending", surveyPerm("approver"), ctrls.Takeout.ListPending)
				takeouts.POST("/propose", ctrls.Takeout.Propose)
				takeouts.POST("/approve", ctrls.Takeout.Approve)
				takeouts.POST("/reject", ctrls.Takeout.Reject)
				takeouts.POST("/cancel", ctrls.Takeout.Cancel)
				takeouts.POST("/batch/propose", ctrls.Takeout.BatchPropose)
				takeouts.POST("/batch/approve", ctrls.Takeout.BatchApprove)
				takeouts.POST("/batch/reject", ctrls.Takeout.BatchReject)
				takeouts.GET("/:responseId/:questionId/history", ctrls.Takeout.History)
			}
		}

		// 报表路由
		if ctrls.Report != nil {
			reports := v1.Group("/reports")
			{
				reports.GET("/comparison", surveyPerm("viewer"), ctrls.Report.Comparison)
			}
		}

		// 最佳评论路由
		if ctrls.BestComment != nil {
			bestComments := v1.Group("/best-comments")
			{
				bestComments.POST("", ctrls.BestComment.Mark)
				bestComments.GET("", surveyPerm("curator"), ctrls.BestComment.List)
				bestComments.DELETE("/:id", ctrls.BestComment.Unmark)
				bestComments.POST("/:id/feedback", ctrls.BestComment.Feedback)
			}
		}
	}

	return router
}
