package admin

import "github.com/silkloom/storefront/internal/provider"

// Handler 管理后台接口，路由层已完成管理员与 RBAC 校验
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
