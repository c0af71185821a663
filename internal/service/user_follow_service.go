package service

import (
	"Mingle/internal/api/dto"
	"Mingle/internal/model"
	"Mingle/internal/repository"
	"context"

	"gorm.io/gorm"
)

type UserFollowService interface {
	FollowUser(ctx context.Context, followerID, followingID uint64) error
	UnfollowUser(ctx context.Context, followerID, followingID uint64) error
	GetFollowers(ctx context.Context, userID uint64, page, limit int) (*dto.PageDTO[*dto.UserDTO], error)
	GetFollowing(ctx context.Context, userID uint64, page, limit int) (*dto.PageDTO[*dto.UserDTO], error)
}

type UserFollowServiceImpl struct {
	db         *gorm.DB
	followRepo repository.UserFollowRepo
	userRepo   repository.UserRepo
}

func NewUserFollowService(db *gorm.DB, followRepo repository.UserFollowRepo, userRepo repository.UserRepo) UserFollowService {
	return &UserFollowServiceImpl{
		db:         db,
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// FollowUser 关注：关系行、双方计数、通知在同一事务内落库
func (s *UserFollowServiceImpl) FollowUser(ctx context.Context, followerID, followingID uint64) error {
	if followerID == followingID {
		return ErrUserFollowSelf
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		followRepo := repository.NewUserFollowRepo(tx)
		userRepo := repository.NewUserRepo(tx)
		notificationRepo := repository.NewNotificationRepo(tx)

		target, err := userRepo.GetUserById(ctx, followingID)
		if err != nil {
			return err
		}
		if target == nil {
			return ErrUserNotFound
		}

		err = followRepo.CreateUserFollow(ctx, &model.UserFollow{
			FollowerID:  followerID,
			FollowingID: followingID,
		})
		if err != nil {
			if isDuplicateError(err) {
				return ErrUserFollowExist
			}
			return err
		}

		if err = userRepo.IncrFollowingCount(ctx, followerID, 1); err != nil {
			return err
		}
		if err = userRepo.IncrFollowersCount(ctx, followingID, 1); err != nil {
			return err
		}

		return notificationRepo.CreateNotification(ctx, &model.Notification{
			UserID:  followingID,
			Type:    model.NotificationTypeFollow,
			ActorID: followerID,
			Content: "关注了你",
		})
	})
	if err != nil {
		return err
	}
	markUserDirty(ctx, followerID)
	markUserDirty(ctx, followingID)
	invalidateUnreadCount(ctx, followingID)
	return nil
}

func (s *UserFollowServiceImpl) UnfollowUser(ctx context.Context, followerID, followingID uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		followRepo := repository.NewUserFollowRepo(tx)
		userRepo := repository.NewUserRepo(tx)

		rows, err := followRepo.DeleteUserFollow(ctx, followerID, followingID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrUserFollowNotExist
		}

		if err = userRepo.IncrFollowingCount(ctx, followerID, -1); err != nil {
			return err
		}
		return userRepo.IncrFollowersCount(ctx, followingID, -1)
	})
	if err != nil {
		return err
	}
	markUserDirty(ctx, followerID)
	markUserDirty(ctx, followingID)
	return nil
}

func (s *UserFollowServiceImpl) GetFollowers(ctx context.Context, userID uint64, page, limit int) (*dto.PageDTO[*dto.UserDTO], error) {
	follows, total, err := s.followRepo.GetUserFollowers(ctx, userID, limit, page*limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(follows))
	for _, follow := range follows {
		ids = append(ids, follow.FollowerID)
	}
	items, err := s.userSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.NewPageDTO(items, page, limit, total), nil
}

func (s *UserFollowServiceImpl) GetFollowing(ctx context.Context, userID uint64, page, limit int) (*dto.PageDTO[*dto.UserDTO], error) {
	follows, total, err := s.followRepo.GetUserFollowing(ctx, userID, limit, page*limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(follows))
	for _, follow := range follows {
		ids = append(ids, follow.FollowingID)
	}
	items, err := s.userSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.NewPageDTO(items, page, limit, total), nil
}

// userSummaries 按原始顺序返回用户摘要
func (s *UserFollowServiceImpl) userSummaries(ctx context.Context, ids []uint64) ([]*dto.UserDTO, error) {
	users, err := s.userRepo.GetUserByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	mp := toUserDTOMap(users)
	items := make([]*dto.UserDTO, 0, len(ids))
	for _, id := range ids {
		if mp[id] != nil {
			items = append(items, mp[id])
		}
	}
	return items, nil
}
