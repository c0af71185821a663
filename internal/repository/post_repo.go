package repository

import (
	"Mingle/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error)
	GetPosts(ctx context.Context, limit, offset int) ([]*model.Post, int64, error)
	GetPostsByAuthors(ctx context.Context, authorIDs []uint64, limit, offset int) ([]*model.Post, int64, error)
	GetPostsByTag(ctx context.Context, tagID uint64, limit, offset int) ([]*model.Post, int64, error)
	GetPostsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, int64, error)
	IncrLikesCount(ctx context.Context, id uint64, delta int) error
	IncrCommentsCount(ctx context.Context, id uint64, delta int) error
	IncrFavoritesCount(ctx context.Context, id uint64, delta int) error
	SetCounters(ctx context.Context, id uint64, likes, comments, favorites int64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPostByID(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	result := s.db.WithContext(ctx).
		Preload("User").
		First(post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return post, nil
}

func (s *PostRepoImpl) GetPostByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	if len(ids) == 0 {
		return posts, nil
	}
	result := s.db.WithContext(ctx).
		Preload("User").
		Where("id IN ?", ids).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// GetPosts 按时间倒序拉取全量帖子流
func (s *PostRepoImpl) GetPosts(ctx context.Context, limit, offset int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	if err := s.db.WithContext(ctx).Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetPostsByAuthors 关注流，作者集合为空时由上层短路
func (s *PostRepoImpl) GetPostsByAuthors(ctx context.Context, authorIDs []uint64, limit, offset int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("user_id IN ?", authorIDs)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := s.db.WithContext(ctx).
		Preload("User").
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostRepoImpl) GetPostsByTag(ctx context.Context, tagID uint64, limit, offset int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	countQuery := s.db.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := s.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostRepoImpl) GetPostsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := s.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// IncrLikesCount 原子增减点赞数，负增量在 0 处截断
func (s *PostRepoImpl) IncrLikesCount(ctx context.Context, id uint64, delta int) error {
	return incrPostColumn(s.db.WithContext(ctx), id, "likes_count", delta)
}

func (s *PostRepoImpl) IncrCommentsCount(ctx context.Context, id uint64, delta int) error {
	return incrPostColumn(s.db.WithContext(ctx), id, "comments_count", delta)
}

func (s *PostRepoImpl) IncrFavoritesCount(ctx context.Context, id uint64, delta int) error {
	return incrPostColumn(s.db.WithContext(ctx), id, "favorites_count", delta)
}

func incrPostColumn(db *gorm.DB, id uint64, column string, delta int) error {
	query := db.Model(&model.Post{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where(column + " > 0")
	}
	return query.UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// SetCounters 对账任务用，直接覆盖计数
func (s *PostRepoImpl) SetCounters(ctx context.Context, id uint64, likes, comments, favorites int64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"likes_count":     likes,
		"comments_count":  comments,
		"favorites_count": favorites,
	}).Error
}
