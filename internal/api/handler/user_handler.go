package handler

import (
	"Mingle/internal/api/dto"
	"Mingle/internal/pkg/response"
	"Mingle/internal/pkg/util"
	"Mingle/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
	smsSvc  service.SmsService
}

func NewUserHandler(userSvc service.UserService, smsSvc service.SmsService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
		smsSvc:  smsSvc,
	}
}

// SendSmsCode 发送登录验证码
func (s *UserHandler) SendSmsCode(c *gin.Context) {
	var req dto.SendSmsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.smsSvc.SendSms(c.Request.Context(), req.Phone); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// LoginByPhone 验证码登录，未注册手机号自动注册
func (s *UserHandler) LoginByPhone(c *gin.Context) {
	var req dto.LoginByPhoneDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.userSvc.LoginByPhone(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserHandler) Logout(c *gin.Context) {
	token := c.GetString("token")
	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetMyProfile 获取当前登录用户资料
func (s *UserHandler) GetMyProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")
	profile, err := s.userSvc.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// GetUserProfile 获取指定用户资料
func (s *UserHandler) GetUserProfile(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	profile, err := s.userSvc.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	profile, err := s.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// SearchUser 按昵称模糊搜索用户
func (s *UserHandler) SearchUser(c *gin.Context) {
	keyword := c.Query("keyword")
	page, limit := util.ParsePageParams(c)

	result, err := s.userSvc.SearchUsers(c.Request.Context(), keyword, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
