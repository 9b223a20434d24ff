package shared

import (
	"strconv"
	"strings"

	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetUserID 会话用户 ID，未登录时已写出 401
func GetUserID(c *gin.Context) (uint, bool) {
	id := c.GetUint(constants.ContextKeyUserID)
	if id == 0 {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	return id, true
}

// OptionalUserID 游客返回 nil
func OptionalUserID(c *gin.Context) *uint {
	if id := c.GetUint(constants.ContextKeyUserID); id > 0 {
		return &id
	}
	return nil
}

// ParseIDParam 路径参数须为正整数，否则写出 400
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, ok := parsePositiveID(c.Param(name))
	if !ok {
		RespondError(c, response.CodeBadRequest, "error.id_invalid", nil)
	}
	return id, ok
}

// ParseOptionalUintQuery 参数缺省时返回 nil, true
func ParseOptionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	id, ok := parsePositiveID(raw)
	if !ok {
		return nil, false
	}
	return &id, true
}

func parsePositiveID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
