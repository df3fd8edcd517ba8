package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// ValidationError 验证错误
type ValidationError struct {
	Code    string
	Message string
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrEmptyID      = &ValidationError{Code: "EMPTY_ID", Message: "ID cannot be empty"}
	ErrIDTooLong    = &ValidationError{Code: "ID_TOO_LONG", Message: "ID exceeds maximum length"}
	ErrInvalidID    = &ValidationError{Code: "INVALID_ID", Message: "ID contains invalid characters"}
	ErrInvalidEmail = &ValidationError{Code: "INVALID_EMAIL", Message: "email address is invalid"}
)

// idPattern 合法 ID: 字母、数字、连字符、下划线
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// emailPattern 宽松的邮箱格式检查,严格校验交给上游身份系统
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SanitizeString 清理字符串，移除或转义危险字符
func SanitizeString(input string) string {
	// 1. HTML 转义，防止 XSS
	sanitized := html.EscapeString(input)

	// 2. 移除控制字符（除了换行符和制表符）
	var result strings.Builder
	for _, r := range sanitized {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// ValidateID 验证资源 ID
func ValidateID(id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ErrEmptyID
	}
	if len(trimmed) > 64 {
		return ErrIDTooLong
	}
	if !idPattern.MatchString(trimmed) {
		return ErrInvalidID
	}
	return nil
}

// NormalizeEmail 归一化邮箱:去空格、转小写
// 查重以归一化后的值为准
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail 验证邮箱格式
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(NormalizeEmail(email)) {
		return ErrInvalidEmail
	}
	return nil
}
