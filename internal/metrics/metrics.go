package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 问卷提交数
	submissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "survey_submissions_total",
			Help: "Total number of survey submissions accepted",
		},
	)

	// 重复提交拒绝数
	duplicatesRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "survey_duplicates_rejected_total",
			Help: "Total number of submissions rejected as duplicates",
		},
	)

	// 剔除操作数
	takeoutOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "takeout_operations_total",
			Help: "Total number of takeout workflow transitions",
		},
		[]string{"action"}, // propose, approve, reject, cancel
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	registerOnce sync.Once
)

// Register 注册所有指标
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			apiRequestsTotal,
			apiRequestDuration,
			submissionsTotal,
			duplicatesRejectedTotal,
			takeoutOperationsTotal,
			databaseConnectionsActive,
			databaseConnectionsIdle,
		)
	})
}

// Handler 返回 Prometheus 指标处理器
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

// RecordAPIRequest 记录一次 API 请求
func RecordAPIRequest(method, path string, status int, seconds float64) {
	apiRequestsTotal.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordSubmission 记录一次被接受的问卷提交
func RecordSubmission() {
	submissionsTotal.Inc()
}

// RecordDuplicateRejected 记录一次被拒绝的重复提交
func RecordDuplicateRejected() {
	duplicatesRejectedTotal.Inc()
}

// RecordTakeoutOperation 记录一次剔除流程转换
func RecordTakeoutOperation(action string) {
	takeoutOperationsTotal.WithLabelValues(action).Inc()
}

// UpdateDatabaseConnections 更新数据库连接数指标
func UpdateDatabaseConnections(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.InUse))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	return nil
}
