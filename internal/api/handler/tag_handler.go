package handler

import (
	"Mingle/internal/pkg/consts"
	"Mingle/internal/pkg/response"
	"Mingle/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagSvc service.TagService
}

func NewTagHandler(tagSvc service.TagService) *TagHandler {
	return &TagHandler{tagSvc: tagSvc}
}

// GetPopularTags 按使用次数倒序返回热门标签
func (s *TagHandler) GetPopularTags(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(consts.DefaultPageSize)))
	if err != nil || limit <= 0 {
		limit = consts.DefaultPageSize
	}
	if limit > consts.MaxPageSize {
		limit = consts.MaxPageSize
	}

	tags, err := s.tagSvc.GetPopularTags(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tags)
}
