package util

import (
	"Mingle/internal/pkg/consts"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePageParams 解析分页参数，page 从 0 开始
func ParsePageParams(c *gin.Context) (page int, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(consts.DefaultPageSize)))
	if err != nil || limit <= 0 {
		limit = consts.DefaultPageSize
	}
	if limit > consts.MaxPageSize {
		limit = consts.MaxPageSize
	}
	return page, limit
}
