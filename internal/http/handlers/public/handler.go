package public

import "github.com/silkloom/storefront/internal/provider"

// Handler 店铺前台接口，游客与登录顾客共用
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
