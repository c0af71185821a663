package handler

import (
	"Mingle/internal/pkg/response"
	"Mingle/internal/pkg/util"
	"Mingle/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	userFollowSvc service.UserFollowService
}

func NewUserFollowHandler(userFollowSvc service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{userFollowSvc: userFollowSvc}
}

func (s *UserFollowHandler) Follow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	followingID, err := strconv.ParseUint(c.Param("following_id"), 10, 64)
	if err != nil || followingID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.userFollowSvc.FollowUser(c.Request.Context(), userID, followingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	followingID, err := strconv.ParseUint(c.Param("following_id"), 10, 64)
	if err != nil || followingID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.userFollowSvc.UnfollowUser(c.Request.Context(), userID, followingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetFollowers 获取指定用户的粉丝列表
func (s *UserFollowHandler) GetFollowers(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, limit := util.ParsePageParams(c)

	followers, err := s.userFollowSvc.GetFollowers(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followers)
}

// GetFollowing 获取指定用户的关注列表
func (s *UserFollowHandler) GetFollowing(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, limit := util.ParsePageParams(c)

	following, err := s.userFollowSvc.GetFollowing(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, following)
}
