/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mautops/takeout-gin/internal/api"
	"github.com/mautops/takeout-gin/internal/config"
	"github.com/mautops/takeout-gin/internal/container"
	"github.com/mautops/takeout-gin/internal/repository"
	"github.com/mautops/takeout-gin/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the Takeout Gin API server.
The server will listen on the configured host and port,
and provide REST API interfaces for survey submission,
takeout approval workflow and score reporting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. 初始化日志
		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// 配置文件变更时热更新日志级别
		if configPath != "" {
			watcher := config.NewConfigWatcher(cfg, configPath)
			watcher.OnConfigChange(func(newCfg *config.Config) {
				if level, err := logrus.ParseLevel(newCfg.Log.Level); err == nil {
					logger.SetLevel(level)
					api.SetLoggerLevel(level)
				}
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("config watcher disabled")
			} else {
				defer watcher.Stop()
			}
		}

		// 3. 初始化容器
		ctr, err := container.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		// 4. 初始化服务
		auditLogSvc := service.NewAuditLogService(repository.NewAuditLogRepository(ctr.DB()))
		takeoutSvc := service.NewTakeoutService(ctr.DB(), repository.NewApprovalHistoryRepository(ctr.DB()), auditLogSvc)
		bulkSvc := service.NewBulkService(takeoutSvc, cfg.Takeout.BulkWorkers)
		submissionSvc := service.NewSubmissionService(ctr.DB(), repository.NewResponseRepository(ctr.DB()), auditLogSvc)
		scoreSvc := service.NewScoreService(ctr.DB())
		bestCommentSvc := service.NewBestCommentService(
			repository.NewQuestionResponseRepository(ctr.DB()),
			repository.NewBestCommentRepository(ctr.DB()),
			auditLogSvc,
		)

		// 5. 初始化控制器
		ctrls := api.Controllers{
			Response:    api.NewResponseController(submissionSvc),
			Takeout:     api.NewTakeoutController(takeoutSvc, bulkSvc),
			Report:      api.NewReportController(scoreSvc),
			BestComment: api.NewBestCommentController(bestCommentSvc),
		}

		// 6. 设置路由
		router := api.SetupRoutes(cfg, ctr.KeycloakValidator(), ctr.DB(), ctr.OpenFGAClient(), ctrls)

		// 自定义 NoRoute 处理器,返回 JSON 格式的 404
		router.NoRoute(func(c *gin.Context) {
			api.Error(c, http.StatusNotFound, "route not found", "the requested route does not exist")
		})

		// 7. 启动服务器
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		// 启动服务器（在 goroutine 中）
		go func() {
			log.Printf("Server starting on %s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}

		log.Println("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// 服务器配置标志
	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}

// LoadConfig 加载配置
func LoadConfig(configPath string) (*config.Config, error) {
	return config.Load(configPath)
}
