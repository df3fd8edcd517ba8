package database

import (
	"context"
	"fmt"
	"time"

	"github.com/mautops/takeout-gin/internal/config"
	"github.com/mautops/takeout-gin/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PoolConfig 连接池配置
type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // 秒
	ConnMaxIdleTime int // 秒
}

// BuildDSN 构建 PostgreSQL DSN
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// GetPoolConfig 获取连接池配置
func GetPoolConfig() *PoolConfig {
	return &PoolConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: 3600, // 1 小时
		ConnMaxIdleTime: 600,  // 10 分钟
	}
}

// GetProductionPoolConfig 获取生产环境连接池配置
func GetProductionPoolConfig() *PoolConfig {
	return &PoolConfig{
		MaxIdleConns:    20,   // 生产环境增加空闲连接数
		MaxOpenConns:    200,  // 生产环境增加最大连接数
		ConnMaxLifetime: 3600, // 1 小时
		ConnMaxIdleTime: 300,  // 5 分钟（生产环境缩短空闲时间）
	}
}

// Connect 连接数据库
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// 从配置中读取连接池参数，如果没有配置则使用默认值
	var poolConfig *PoolConfig
	if cfg.MaxIdleConns > 0 || cfg.MaxOpenConns > 0 {
		poolConfig = &PoolConfig{
			MaxIdleConns:    cfg.MaxIdleConns,
			MaxOpenConns:    cfg.MaxOpenConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		}
		// 如果某些值未设置，使用默认值
		if poolConfig.MaxIdleConns == 0 {
			poolConfig.MaxIdleConns = 10
		}
		if poolConfig.MaxOpenConns == 0 {
			poolConfig.MaxOpenConns = 100
		}
		if poolConfig.ConnMaxLifetime == 0 {
			poolConfig.ConnMaxLifetime = 3600
		}
		if poolConfig.ConnMaxIdleTime == 0 {
			poolConfig.ConnMaxIdleTime = 600
		}
	} else {
		poolConfig = GetPoolConfig()
	}

	sqlDB.SetMaxIdleConns(poolConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(poolConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(poolConfig.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(poolConfig.ConnMaxIdleTime) * time.Second)

	return db, nil
}

// Migrate 执行数据库迁移
func Migrate(db *gorm.DB) error {
	// 检测数据库类型
	dialector := db.Dialector.Name()

	// SQLite 不支持 jsonb，需要手动创建表
	// GORM SQLite dialector 的名称可能是 "sqlite" 或 "sqlite3"
	if dialector == "sqlite" || dialector == "sqlite3" {
		if err := createSQLiteTables(db); err != nil {
			return fmt.Errorf("failed to create SQLite tables: %w", err)
		}
	} else {
		// PostgreSQL 等其他数据库使用 AutoMigrate
		if err := db.AutoMigrate(
			&model.ResponseModel{},
			&model.ResponseApplicationModel{},
			&model.QuestionResponseModel{},
			&model.ApprovalHistoryModel{},
			&model.BestCommentModel{},
			&model.AuditLogModel{},
		); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	// 创建索引
	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createSQLiteTables 为 SQLite 手动创建表（使用 TEXT 替代 jsonb）
func createSQLiteTables(db *gorm.DB) error {
	// 创建 responses 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS responses (
			id VARCHAR(64) PRIMARY KEY,
			survey_id VARCHAR(64) NOT NULL,
			respondent_email VARCHAR(255) NOT NULL,
			normalized_email VARCHAR(255) NOT NULL,
			department_id VARCHAR(64),
			submitted_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create responses table: %w", err)
	}

	// 创建 response_applications 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS response_applications (
			id VARCHAR(64) PRIMARY KEY,
			response_id VARCHAR(64) NOT NULL,
			survey_id VARCHAR(64) NOT NULL,
			normalized_email VARCHAR(255) NOT NULL,
			application_id VARCHAR(64) NOT NULL,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create response_applications table: %w", err)
	}

	// 创建 question_responses 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS question_responses (
			id VARCHAR(64) PRIMARY KEY,
			response_id VARCHAR(64) NOT NULL,
			question_id VARCHAR(64) NOT NULL,
			survey_id VARCHAR(64) NOT NULL,
			application_id VARCHAR(64),
			function_id VARCHAR(64),
			department_id VARCHAR(64),
			question_type VARCHAR(32) NOT NULL,
			text_value TEXT,
			numeric_value NUMERIC,
			option_values TEXT,
			takeout_status VARCHAR(32) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create question_responses table: %w", err)
	}

	// 创建 approval_history 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS approval_history (
			id VARCHAR(64) PRIMARY KEY,
			response_id VARCHAR(64) NOT NULL,
			question_id VARCHAR(64) NOT NULL,
			from_status VARCHAR(32) NOT NULL,
			to_status VARCHAR(32) NOT NULL,
			action VARCHAR(32) NOT NULL,
			reason TEXT,
			actor_id VARCHAR(64) NOT NULL,
			actor_role VARCHAR(64) NOT NULL,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create approval_history table: %w", err)
	}

	// 创建 best_comments 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS best_comments (
			id VARCHAR(64) PRIMARY KEY,
			question_response_id VARCHAR(64) NOT NULL,
			response_id VARCHAR(64) NOT NULL,
			question_id VARCHAR(64) NOT NULL,
			survey_id VARCHAR(64) NOT NULL,
			curator_id VARCHAR(64) NOT NULL,
			curated_at DATETIME NOT NULL,
			feedback_text TEXT,
			feedback_by VARCHAR(64),
			feedback_at DATETIME,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create best_comments table: %w", err)
	}

	// 创建 audit_logs 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_logs (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			action VARCHAR(64) NOT NULL,
			resource_type VARCHAR(32) NOT NULL,
			resource_id VARCHAR(64) NOT NULL,
			request_id VARCHAR(64),
			ip VARCHAR(45),
			user_agent TEXT,
			details TEXT,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create audit_logs table: %w", err)
	}

	return nil
}

// CreateIndexes 创建数据库索引
func CreateIndexes(db *gorm.DB) error {
	// responses 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_responses_survey ON responses(survey_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_responses_survey: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_responses_email ON responses(survey_id, normalized_email)").Error; err != nil {
		return fmt.Errorf("failed to create idx_responses_email: %w", err)
	}

	// response_applications 表索引
	// 唯一索引是查重的最终约束,advisory 检查只是快速路径
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS uq_response_app_guard ON response_applications(survey_id, normalized_email, application_id)").Error; err != nil {
		return fmt.Errorf("failed to create uq_response_app_guard: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_response_apps_response ON response_applications(response_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_response_apps_response: %w", err)
	}

	// question_responses 表索引
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS uq_question_response_pair ON question_responses(response_id, question_id)").Error; err != nil {
		return fmt.Errorf("failed to create uq_question_response_pair: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_question_responses_scope ON question_responses(survey_id, function_id, question_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_question_responses_scope: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_question_responses_status ON question_responses(takeout_status)").Error; err != nil {
		return fmt.Errorf("failed to create idx_question_responses_status: %w", err)
	}

	// approval_history 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_history_subject ON approval_history(response_id, question_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_history_subject: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_history_created_at ON approval_history(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_history_created_at: %w", err)
	}

	// best_comments 表索引
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS uq_best_comment_qr ON best_comments(question_response_id)").Error; err != nil {
		return fmt.Errorf("failed to create uq_best_comment_qr: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_best_comments_survey ON best_comments(survey_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_best_comments_survey: %w", err)
	}

	// audit_logs 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_resource ON audit_logs(resource_type, resource_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_audit_resource: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_user_id ON audit_logs(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_audit_user_id: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_created_at ON audit_logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_audit_created_at: %w", err)
	}

	// PostgreSQL 特定的 GIN 索引
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_question_responses_options_gin ON question_responses USING GIN (option_values)").Error; err != nil {
			return fmt.Errorf("failed to create idx_question_responses_options_gin: %w", err)
		}
	}

	return nil
}

// ConnectWithRetry 带重试的数据库连接
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}

		// 如果不是最后一次重试，等待后重试
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2 // 指数退避
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// CheckHealth 检查数据库连接健康状态
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return false
	}

	return true
}

// Reconnect 重新连接数据库
func Reconnect(cfg config.DatabaseConfig, oldDB *gorm.DB) (*gorm.DB, error) {
	// 关闭旧连接
	if oldDB != nil {
		if sqlDB, err := oldDB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return Connect(cfg)
}
