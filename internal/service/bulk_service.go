package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mautops/takeout-gin/internal/model"
	"golang.org/x/sync/errgroup"
)

// BulkService 批量剔除操作服务接口
type BulkService interface {
	ApplyBulk(ctx context.Context, action model.TakeoutAction, items []BulkOperationItem, reason string, actor Actor) (*BulkResult, error)
}

// BulkOperationItem 批量操作条目
// @Description 批量操作的单个目标
type BulkOperationItem struct {
	ResponseID string `json:"response_id" example:"resp-001" binding:"required"` // 回复 ID
	QuestionID string `json:"question_id" example:"q-001" binding:"required"`    // 问题 ID
}

// BulkFailure 批量操作失败条目
// @Description 批量操作中失败的条目及错误类别
type BulkFailure struct {
	Item      BulkOperationItem `json:"item"`             // 失败条目
	ErrorKind string            `json:"error_kind"`       // 错误类别
	Detail    string            `json:"detail,omitempty"` // 错误详情
}

// BulkResult 批量操作结果
// 每个输入条目恰好出现一次,调用方可以与原始勾选逐行对账
type BulkResult struct {
	Succeeded []BulkOperationItem `json:"succeeded"` // 成功条目
	Failed    []BulkFailure       `json:"failed"`    // 失败条目
}

// bulkService 批量剔除操作服务实现
type bulkService struct {
	takeoutSvc TakeoutService
	workers    int
}

// NewBulkService 创建批量剔除操作服务
func NewBulkService(takeoutSvc TakeoutService, workers int) BulkService {
	if workers < 1 {
		workers = 1
	}
	return &bulkService{
		takeoutSvc: takeoutSvc,
		workers:    workers,
	}
}

// ApplyBulk 对一批条目执行同一剔除操作
// 理由在分发前校验一次,避免批次中只有部分条目带理由;
// 条目相互独立处理,单个失败不会中断其余条目
func (s *bulkService) ApplyBulk(
	ctx context.Context,
	action model.TakeoutAction,
	items []BulkOperationItem,
	reason string,
	actor Actor,
) (*BulkResult, error) {
	if !action.Valid() || action == model.TakeoutActionCancel {
		return nil, fmt.Errorf("unsupported bulk action: %s", action)
	}
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if action.RequiresReason() && strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("bulk %s requires a reason: %w", action, ErrMissingReason)
	}

	// 不同条目可以并发,同一条目的竞争由状态机的原子守卫仲裁
	itemErrs := make([]error, len(items))
	g := &errgroup.Group{}
	g.SetLimit(s.workers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			itemErrs[i] = s.applyOne(ctx, action, item, reason, actor)
			return nil
		})
	}
	_ = g.Wait()

	result := &BulkResult{
		Succeeded: make([]BulkOperationItem, 0, len(items)),
		Failed:    make([]BulkFailure, 0),
	}
	for i, item := range items {
		if itemErrs[i] == nil {
			result.Succeeded = append(result.Succeeded, item)
			continue
		}
		result.Failed = append(result.Failed, BulkFailure{
			Item:      item,
			ErrorKind: ErrorKind(itemErrs[i]),
			Detail:    itemErrs[i].Error(),
		})
	}
	return result, nil
}

// applyOne 处理单个条目
func (s *bulkService) applyOne(ctx context.Context, action model.TakeoutAction, item BulkOperationItem, reason string, actor Actor) error {
	var err error
	switch action {
	case model.TakeoutActionPropose:
		_, err = s.takeoutSvc.Propose(ctx, item.ResponseID, item.QuestionID, reason, actor)
	case model.TakeoutActionApprove:
		_, err = s.takeoutSvc.Approve(ctx, item.ResponseID, item.QuestionID, reason, actor)
	case model.TakeoutActionReject:
		_, err = s.takeoutSvc.Reject(ctx, item.ResponseID, item.QuestionID, reason, actor)
	default:
		err = fmt.Errorf("unsupported bulk action: %s", action)
	}
	return err
}
