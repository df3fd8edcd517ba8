package service

import "errors"

// Actor 操作者身份
// 由外部认证协作方提供,每个核心操作都显式传入,不从全局状态读取
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Validate 验证操作者身份
func (a Actor) Validate() error {
	if a.ID == "" {
		return errors.New("actor ID is required")
	}
	if a.Role == "" {
		return errors.New("actor role is required")
	}
	return nil
}
