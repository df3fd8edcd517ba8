package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mautops/takeout-gin/internal/model"
	"gorm.io/gorm"
)

// ScoreService 满意度分数聚合服务接口
// 每次计算直接读取最新已提交状态,不做缓存:
// 审批结论直接改变下游部门报表依赖的分数
type ScoreService interface {
	ComputeComparison(ctx context.Context, surveyID string, functionID *string) (*ComparisonReport, error)
}

// QuestionComparison 单个问题的剔除前后对比
// @Description 单个问题的剔除前后分数对比
type QuestionComparison struct {
	QuestionID     string   `json:"question_id"`              // 问题 ID
	TotalResponses int64    `json:"total_responses"`          // 回答总数(含非数值题型)
	TakeoutCount   int64    `json:"takeout_count"`            // 已剔除数量
	AvgBefore      *float64 `json:"avg_before"`               // 剔除前平均分,无可计算回答时为 null
	AvgAfter       *float64 `json:"avg_after"`                // 剔除后平均分,无可计算回答时为 null
	TakeoutReason  string   `json:"takeout_reason,omitempty"` // 已剔除回答的提议理由汇总
}

// ComparisonReport 剔除前后对比报表
// @Description 问卷范围内的剔除前后分数对比
type ComparisonReport struct {
	SurveyID         string                `json:"survey_id"`          // 问卷 ID
	FunctionID       *string               `json:"function_id"`        // 职能过滤,可选
	PerQuestion      []*QuestionComparison `json:"per_question"`       // 按问题对比
	OverallAvgBefore *float64              `json:"overall_avg_before"` // 全部数值回答的剔除前平均
	OverallAvgAfter  *float64              `json:"overall_avg_after"`  // 全部数值回答的剔除后平均
}

// scoreService 分数聚合服务实现
type scoreService struct {
	db *gorm.DB
}

// NewScoreService 创建分数聚合服务
func NewScoreService(db *gorm.DB) ScoreService {
	return &scoreService{db: db}
}

// scoreRow 按问题聚合的中间结果
type scoreRow struct {
	QuestionID     string
	TotalResponses int64
	TakeoutCount   int64
	NumericCount   int64
	NumericSum     float64
	AfterCount     int64
	AfterSum       float64
}

// ComputeComparison 计算剔除前后的分数对比
// "前"平均包含全部带数值的回答(不论剔除状态),
// "后"平均排除当前处于 taken_out 的回答;
// 非数值题型不参与平均,但计入回答总数
func (s *scoreService) ComputeComparison(ctx context.Context, surveyID string, functionID *string) (*ComparisonReport, error) {
	if surveyID == "" {
		return nil, errors.New("survey ID is required")
	}

	// 数值资格由题型枚举决定:历史数据里非数值题型即使带有数值也不参与平均
	numericTypes := model.NumericQuestionTypes()
	query := s.db.WithContext(ctx).Model(&model.QuestionResponseModel{}).
		Select(`question_id,
			COUNT(*) AS total_responses,
			SUM(CASE WHEN takeout_status = ? THEN 1 ELSE 0 END) AS takeout_count,
			COUNT(CASE WHEN question_type IN ? THEN numeric_value END) AS numeric_count,
			COALESCE(SUM(CASE WHEN question_type IN ? THEN numeric_value END), 0) AS numeric_sum,
			COUNT(CASE WHEN question_type IN ? AND takeout_status <> ? THEN numeric_value END) AS after_count,
			COALESCE(SUM(CASE WHEN question_type IN ? AND takeout_status <> ? THEN numeric_value END), 0) AS after_sum`,
			model.TakeoutStatusTakenOut,
			numericTypes, numericTypes,
			numericTypes, model.TakeoutStatusTakenOut,
			numericTypes, model.TakeoutStatusTakenOut).
		Where("survey_id = ?", surveyID)
	if functionID != nil && *functionID != "" {
		query = query.Where("function_id = ?", *functionID)
	}

	var rows []scoreRow
	if err := query.Group("question_id").Order("question_id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate scores: %v: %w", err, ErrPersistence)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("survey %s has no responses in scope: %w", surveyID, ErrNotFound)
	}

	reasons, err := s.takeoutReasons(ctx, surveyID, functionID)
	if err != nil {
		return nil, err
	}

	report := &ComparisonReport{
		SurveyID:    surveyID,
		FunctionID:  functionID,
		PerQuestion: make([]*QuestionComparison, 0, len(rows)),
	}
	var overallBeforeSum, overallAfterSum float64
	var overallBeforeCount, overallAfterCount int64
	for _, row := range rows {
		qc := &QuestionComparison{
			QuestionID:     row.QuestionID,
			TotalResponses: row.TotalResponses,
			TakeoutCount:   row.TakeoutCount,
			TakeoutReason:  reasons[row.QuestionID],
		}
		// 无可计算回答时平均为 null,调用方必须与真实的 0 分区分展示
		if row.NumericCount > 0 {
			avg := row.NumericSum / float64(row.NumericCount)
			qc.AvgBefore = &avg
		}
		if row.AfterCount > 0 {
			avg := row.AfterSum / float64(row.AfterCount)
			qc.AvgAfter = &avg
		}
		report.PerQuestion = append(report.PerQuestion, qc)

		overallBeforeSum += row.NumericSum
		overallBeforeCount += row.NumericCount
		overallAfterSum += row.AfterSum
		overallAfterCount += row.AfterCount
	}

	if overallBeforeCount > 0 {
		avg := overallBeforeSum / float64(overallBeforeCount)
		report.OverallAvgBefore = &avg
	}
	if overallAfterCount > 0 {
		avg := overallAfterSum / float64(overallAfterCount)
		report.OverallAvgAfter = &avg
	}

	return report, nil
}

// reasonRow 提议理由查询的中间结果
type reasonRow struct {
	QuestionID string
	ResponseID string
	Reason     string
	CreatedAt  time.Time
}

// takeoutReasons 汇总当前已剔除回答的提议理由
// 账本是权威记录:取每个已剔除回答最近一次提议的理由,
// 同一问题下去重后按出现顺序拼接
func (s *scoreService) takeoutReasons(ctx context.Context, surveyID string, functionID *string) (map[string]string, error) {
	query := s.db.WithContext(ctx).Table("approval_history AS h").
		Select("h.question_id AS question_id, h.response_id AS response_id, h.reason AS reason, h.created_at AS created_at").
		Joins("JOIN question_responses qr ON qr.response_id = h.response_id AND qr.question_id = h.question_id").
		Where("qr.survey_id = ? AND qr.takeout_status = ? AND h.action = ?",
			surveyID, model.TakeoutStatusTakenOut, model.TakeoutActionPropose)
	if functionID != nil && *functionID != "" {
		query = query.Where("qr.function_id = ?", *functionID)
	}

	var rows []reasonRow
	if err := query.Order("h.created_at ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load takeout reasons: %v: %w", err, ErrPersistence)
	}

	// 每个 (response_id, question_id) 保留最近一次提议的理由
	latest := make(map[string]string)
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		key := row.ResponseID + ":" + row.QuestionID
		if _, ok := latest[key]; !ok {
			order = append(order, key)
		}
		latest[key] = row.Reason
	}

	// 按问题去重汇总
	perQuestion := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, key := range order {
		questionID := key[strings.Index(key, ":")+1:]
		reason := latest[key]
		if reason == "" {
			continue
		}
		if seen[questionID] == nil {
			seen[questionID] = make(map[string]bool)
		}
		if seen[questionID][reason] {
			continue
		}
		seen[questionID][reason] = true
		perQuestion[questionID] = append(perQuestion[questionID], reason)
	}

	result := make(map[string]string, len(perQuestion))
	for questionID, list := range perQuestion {
		result[questionID] = strings.Join(list, "; ")
	}
	return result, nil
}
