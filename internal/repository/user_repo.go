package repository

import (
	"Mingle/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	SearchUsersByNickname(ctx context.Context, keyword string, limit, offset int) ([]*model.User, int64, error)
	IncrPostsCount(ctx context.Context, id uint64, delta int) error
	IncrFollowersCount(ctx context.Context, id uint64, delta int) error
	IncrFollowingCount(ctx context.Context, id uint64, delta int) error
	SetFollowCounts(ctx context.Context, id uint64, followersCount, followingCount int64) error
	SetPostsCount(ctx context.Context, id uint64, postsCount int64) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error) {
	users := make([]*model.User, 0)
	if len(ids) == 0 {
		return users, nil
	}
	result := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepoImpl) UpdateUser(ctx context.Context, user *model.User) error {
	result := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", user.ID).Updates(user)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (s *UserRepoImpl) SearchUsersByNickname(ctx context.Context, keyword string, limit, offset int) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64

	query := s.db.WithContext(ctx).Model(&model.User{}).
		Where("nickname LIKE ?", "%"+keyword+"%")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("id ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// IncrPostsCount 原子增减发帖数，负增量在 0 处截断
func (s *UserRepoImpl) IncrPostsCount(ctx context.Context, id uint64, delta int) error {
	return incrUserColumn(s.db.WithContext(ctx), id, "posts_count", delta)
}

func (s *UserRepoImpl) IncrFollowersCount(ctx context.Context, id uint64, delta int) error {
	return incrUserColumn(s.db.WithContext(ctx), id, "followers_count", delta)
}

func (s *UserRepoImpl) IncrFollowingCount(ctx context.Context, id uint64, delta int) error {
	return incrUserColumn(s.db.WithContext(ctx), id, "following_count", delta)
}

func incrUserColumn(db *gorm.DB, id uint64, column string, delta int) error {
	query := db.Model(&model.User{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where(column+" > 0")
	}
	return query.UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// SetFollowCounts 对账任务用，直接覆盖计数
func (s *UserRepoImpl) SetFollowCounts(ctx context.Context, id uint64, followersCount, followingCount int64) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"followers_count": followersCount,
		"following_count": followingCount,
	}).Error
}

func (s *UserRepoImpl) SetPostsCount(ctx context.Context, id uint64, postsCount int64) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		UpdateColumn("posts_count", postsCount).Error
}
