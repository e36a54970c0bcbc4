package shared

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParsePageNumber 读取 pageNumber 查询参数（兼容 page），非法值按第 1 页处理。
func ParsePageNumber(c *gin.Context) int {
	raw := strings.TrimSpace(c.Query("pageNumber"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("page"))
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
