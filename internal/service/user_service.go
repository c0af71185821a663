package service

import (
	"Mingle/internal/api/dto"
	"Mingle/internal/model"
	"Mingle/internal/pkg/consts"
	"Mingle/internal/pkg/redis"
	"Mingle/internal/pkg/security"
	"Mingle/internal/pkg/util"
	"Mingle/internal/repository"
	"context"
	"strings"
	"time"
)

type UserService interface {
	LoginByPhone(ctx context.Context, loginDTO *dto.LoginByPhoneDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserProfile(ctx context.Context, id uint64) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, id uint64, updateDTO *dto.UpdateProfileDTO) (*dto.UserDTO, error)
	SearchUsers(ctx context.Context, keyword string, page, limit int) (*dto.PageDTO[*dto.UserDTO], error)
}

type UserServiceImpl struct {
	userRepo   repository.UserRepo
	smsService SmsService
}

func NewUserService(userRepo repository.UserRepo, smsService SmsService) UserService {
	return &UserServiceImpl{
		userRepo:   userRepo,
		smsService: smsService,
	}
}

// LoginByPhone 验证码登录，手机号未注册时自动创建账号
func (s *UserServiceImpl) LoginByPhone(ctx context.Context, loginDTO *dto.LoginByPhoneDTO) (*dto.LoginResultDTO, error) {
	if !util.ValidPhone(loginDTO.Phone) {
		return nil, ErrPhoneInvalid
	}
	if err := s.smsService.CheckCode(ctx, loginDTO.Phone, loginDTO.Code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByPhone(ctx, loginDTO.Phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		phone := loginDTO.Phone
		user = &model.User{
			Phone:     &phone,
			Nickname:  "用户" + util.GenerateCode(8),
			AvatarURL: consts.DefaultAvatarURL,
		}
		err = s.userRepo.CreateUser(ctx, user)
		if err != nil {
			// 并发注册同一手机号时回查胜者
			if isDuplicateError(err) {
				user, err = s.userRepo.GetUserByPhone(ctx, loginDTO.Phone)
				if err != nil {
					return nil, err
				}
				if user == nil {
					return nil, UnExpectedError
				}
			} else {
				return nil, err
			}
		}
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResultDTO{
		Token: token,
		User:  toUserDTO(user),
	}, nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	err = redis.SetWithExpiration(ctx, signature, true, time.Hour*24)
	if err != nil {
		return err
	}
	return nil
}

func (s *UserServiceImpl) GetUserProfile(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user), nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint64, updateDTO *dto.UpdateProfileDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if updateDTO.Nickname != nil {
		nickname := strings.TrimSpace(*updateDTO.Nickname)
		if nickname == "" {
			return nil, ErrParamInvalid
		}
		user.Nickname = nickname
	}
	if updateDTO.AvatarURL != nil {
		user.AvatarURL = *updateDTO.AvatarURL
	}
	if updateDTO.Bio != nil {
		user.Bio = updateDTO.Bio
	}

	err = s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func (s *UserServiceImpl) SearchUsers(ctx context.Context, keyword string, page, limit int) (*dto.PageDTO[*dto.UserDTO], error) {
	keyword = strings.TrimSpace(keyword)
	if len([]rune(keyword)) < 2 {
		return nil, ErrParamInvalid
	}

	users, total, err := s.userRepo.SearchUsersByNickname(ctx, keyword, limit, page*limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		items = append(items, toUserDTO(user))
	}
	return dto.NewPageDTO(items, page, limit, total), nil
}
