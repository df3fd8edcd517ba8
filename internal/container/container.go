package container

import (
	"fmt"
	"time"

	"github.com/mautops/takeout-gin/internal/auth"
	"github.com/mautops/takeout-gin/internal/config"
	"github.com/mautops/takeout-gin/internal/database"
	"github.com/mautops/takeout-gin/internal/metrics"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 管理所有应用依赖,包括数据库、认证客户端和后台指标收集器
type Container struct {
	db                *gorm.DB
	fgaClient         *auth.OpenFGAClient
	keycloakValidator *auth.KeycloakTokenValidator
	metricsCollector  *metrics.Collector
}

// NewContainer 创建依赖注入容器
// 根据配置初始化所有依赖组件
func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. 初始化数据库（带重试机制）
	// 默认重试 3 次，初始间隔 1 秒，指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 执行数据库迁移
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 2. 初始化 OpenFGA 客户端（带重试机制）
	// 未配置 store 时跳过,权限检查中间件不会被挂载
	var fgaClient *auth.OpenFGAClient
	if cfg.OpenFGA.StoreID != "" {
		fgaClient, err = auth.NewOpenFGAClientWithRetry(cfg.OpenFGA.APIURL, cfg.OpenFGA.StoreID, cfg.OpenFGA.ModelID, 3, time.Second)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenFGA client: %w", err)
		}
	}

	// 3. 初始化 Keycloak Token 验证器
	// 未配置 issuer 时跳过,API 以无认证模式运行(仅限开发环境)
	var keycloakValidator *auth.KeycloakTokenValidator
	if cfg.Keycloak.Issuer != "" {
		keycloakValidator = auth.NewKeycloakTokenValidator(cfg.Keycloak.Issuer)
	}

	// 4. 初始化后台指标收集器
	metrics.Register()
	metricsCollector := metrics.NewCollector(db, 15*time.Second)
	metricsCollector.Start()

	return &Container{
		db:                db,
		fgaClient:         fgaClient,
		keycloakValidator: keycloakValidator,
		metricsCollector:  metricsCollector,
	}, nil
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// OpenFGAClient 获取 OpenFGA 客户端
func (c *Container) OpenFGAClient() *auth.OpenFGAClient {
	return c.fgaClient
}

// KeycloakValidator 获取 Keycloak Token 验证器
func (c *Container) KeycloakValidator() *auth.KeycloakTokenValidator {
	return c.keycloakValidator
}

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	if c.metricsCollector != nil {
		c.metricsCollector.Stop()
	}

	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	return nil
}
