package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mautops/takeout-gin/internal/service"
)

// actorFromContext 从请求上下文构造操作者
// 认证中间件把身份放进上下文,这里显式取出传给服务层,
// 核心操作不读取任何隐式全局状态
func actorFromContext(c *gin.Context) service.Actor {
	actor := service.Actor{
		ID: c.GetString("user_id"),
	}
	if roles, ok := c.Get("roles"); ok {
		if list, ok := roles.([]string); ok && len(list) > 0 {
			actor.Role = list[0]
		}
	}
	return actor
}
