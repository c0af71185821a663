package handler

import (
	"Mingle/internal/pkg/response"
	"Mingle/internal/service"
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	actionSvc service.PostActionService
}

func NewPostActionHandler(actionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{
		actionSvc: actionSvc,
	}
}

func (s *PostActionHandler) LikePost(c *gin.Context) {
	s.doPostAction(c, s.actionSvc.LikePost)
}

func (s *PostActionHandler) UnlikePost(c *gin.Context) {
	s.doPostAction(c, s.actionSvc.UnlikePost)
}

func (s *PostActionHandler) FavoritePost(c *gin.Context) {
	s.doPostAction(c, s.actionSvc.FavoritePost)
}

func (s *PostActionHandler) UnfavoritePost(c *gin.Context) {
	s.doPostAction(c, s.actionSvc.UnfavoritePost)
}

func (s *PostActionHandler) LikeComment(c *gin.Context) {
	s.doCommentAction(c, s.actionSvc.LikeComment)
}

func (s *PostActionHandler) UnlikeComment(c *gin.Context) {
	s.doCommentAction(c, s.actionSvc.UnlikeComment)
}

func (s *PostActionHandler) doPostAction(c *gin.Context, action func(ctx context.Context, userID, postID uint64) error) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = action(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostActionHandler) doCommentAction(c *gin.Context, action func(ctx context.Context, userID, commentID uint64) error) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = action(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
