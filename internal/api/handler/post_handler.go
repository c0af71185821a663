package handler

import (
	"Mingle/internal/api/dto"
	"Mingle/internal/pkg/response"
	"Mingle/internal/pkg/util"
	"Mingle/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// GetFeed 拉取帖子流，type 可选 recommended / following
func (s *PostHandler) GetFeed(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	feedType := c.DefaultQuery("type", "recommended")
	tag := c.Query("tag")
	page, limit := util.ParsePageParams(c)

	feed, err := s.postSvc.GetFeed(c.Request.Context(), viewerID, feedType, tag, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := s.postSvc.GetPostByID(c.Request.Context(), viewerID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// GetUserPosts 获取指定用户的帖子列表
func (s *PostHandler) GetUserPosts(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, limit := util.ParsePageParams(c)

	posts, err := s.postSvc.GetUserPosts(c.Request.Context(), viewerID, userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
