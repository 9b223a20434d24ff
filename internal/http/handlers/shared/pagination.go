package shared

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePagination page 从 1 开始，pageSize 限制在 1 到 100
func NormalizePagination(page, pageSize int) (int, int) {
	page = max(page, 1)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return page, min(pageSize, maxPageSize)
}

// ReadPagination 读取 page 与 page_size（兼容 pageSize），非法值按默认处理
func ReadPagination(c *gin.Context) (int, int) {
	page := queryInt(c, "page")
	size := queryInt(c, "page_size")
	if size == 0 {
		size = queryInt(c, "pageSize")
	}
	return NormalizePagination(page, size)
}

func queryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return 0
	}
	return value
}
