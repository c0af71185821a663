package repository

import (
	"Mingle/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error)
	GetRootCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, int64, error)
	GetRepliesByRootIDs(ctx context.Context, rootIDs []uint64) ([]*model.Comment, error)
	DeleteComment(ctx context.Context, id uint64) error
	CountCommentsByPostID(ctx context.Context, postID uint64) (int64, error)
	IncrLikesCount(ctx context.Context, id uint64, delta int) error
	SetLikesCount(ctx context.Context, id uint64, count int64) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	result := s.db.WithContext(ctx).First(comment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return comment, nil
}

// GetRootCommentsByPostID 分页获取帖子的一级评论，按时间正序
func (s *CommentRepoImpl) GetRootCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, int64, error) {
	var comments []*model.Comment
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ? AND root_id = ?", postID, 0)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := s.db.WithContext(ctx).
		Where("post_id = ? AND root_id = ?", postID, 0).
		Order("created_at ASC, id ASC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// GetRepliesByRootIDs 批量获取一级评论下的全部回复，按时间正序
func (s *CommentRepoImpl) GetRepliesByRootIDs(ctx context.Context, rootIDs []uint64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	if len(rootIDs) == 0 {
		return comments, nil
	}
	err := s.db.WithContext(ctx).
		Where("root_id IN ?", rootIDs).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) DeleteComment(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}

func (s *CommentRepoImpl) CountCommentsByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// IncrLikesCount 原子增减评论点赞数，负增量在 0 处截断
func (s *CommentRepoImpl) IncrLikesCount(ctx context.Context, id uint64, delta int) error {
	query := s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("likes_count > 0")
	}
	return query.UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
}

func (s *CommentRepoImpl) SetLikesCount(ctx context.Context, id uint64, count int64) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).
		UpdateColumn("likes_count", count).Error
}
