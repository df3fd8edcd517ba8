package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// 剔除流程的错误类别
// 调用方通过 errors.Is 区分,前端据此展示不同的纠正提示
var (
	// ErrInvalidTransition 当前状态不允许该操作
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrAlreadyResolved 并发操作者已完成了该转换,与 ErrInvalidTransition
	// 区分开,调用方可以展示"已被他人处理"而不是笼统的失败
	ErrAlreadyResolved = errors.New("already resolved")
	// ErrMissingReason 该操作必须附带非空理由
	ErrMissingReason = errors.New("reason is required")
	// ErrNotFound 目标问题回答、最佳评论或问卷范围不存在
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicateSubmission 同一回复人对同一问卷+应用的重复提交
	ErrDuplicateSubmission = errors.New("duplicate submission")
	// ErrPersistence 底层存储不可用,总是上抛,不在本层静默重试
	ErrPersistence = errors.New("persistence failure")
)

// 批量操作结果中的错误类别标识
const (
	KindInvalidTransition = "invalid_transition"
	KindAlreadyResolved   = "already_resolved"
	KindMissingReason     = "missing_reason"
	KindNotFound          = "not_found"
	KindPersistence       = "persistence_failure"
	KindUnknown           = "unknown"
)

// ErrorKind 返回错误对应的类别标识
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyResolved):
		return KindAlreadyResolved
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrMissingReason):
		return KindMissingReason
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	}
	return KindUnknown
}

// wrapStoreErr 将 gorm 错误翻译为本层的错误类别
func wrapStoreErr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	return fmt.Errorf("%s: %v: %w", msg, err, ErrPersistence)
}
