package dto

// UserDTO 用户摘要
type UserDTO struct {
	UserID         uint64  `json:"user_id"`
	Phone          *string `json:"phone,omitempty"`
	Nickname       string  `json:"nickname"`
	AvatarURL      string  `json:"avatar_url"`
	Bio            *string `json:"bio,omitempty"`
	PostsCount     int     `json:"posts_count"`
	FollowersCount int     `json:"followers_count"`
	FollowingCount int     `json:"following_count"`
}

// SendSmsDTO 发送验证码请求
type SendSmsDTO struct {
	Phone string `json:"phone" binding:"required"`
}

// LoginByPhoneDTO 手机号+验证码登录请求
type LoginByPhoneDTO struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required,len=6"`
}

// LoginResultDTO 登录结果
type LoginResultDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UpdateProfileDTO 修改个人资料请求，nil 字段表示不修改
type UpdateProfileDTO struct {
	Nickname  *string `json:"nickname" binding:"omitempty,min=1,max=50"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio" binding:"omitempty,max=200"`
}
