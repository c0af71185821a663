package repository

import (
	"Mingle/internal/model"
	"context"

	"gorm.io/gorm"
)

type PostActionRepo interface {
	CreateLike(ctx context.Context, like *model.PostLike) error
	DeleteLike(ctx context.Context, userID, postID uint64) (int64, error)
	CheckLikeExistsBatch(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error)
	GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error)

	CreateFavorite(ctx context.Context, favorite *model.PostFavorite) error
	DeleteFavorite(ctx context.Context, userID, postID uint64) (int64, error)
	CheckFavoriteExistsBatch(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error)
	GetFavoriteCountByPostID(ctx context.Context, postID uint64) (int64, error)

	CreateCommentLike(ctx context.Context, cl *model.CommentLike) error
	DeleteCommentLike(ctx context.Context, userID, commentID uint64) (int64, error)
	CheckCommentLikeExistsBatch(ctx context.Context, userID uint64, commentIDs []uint64) (map[uint64]bool, error)
	GetCommentLikeCount(ctx context.Context, commentID uint64) (int64, error)
	DeleteCommentLikesByCommentID(ctx context.Context, commentID uint64) error

	CreateMentions(ctx context.Context, mentions []*model.CommentMention) error
	GetMentionsByCommentIDs(ctx context.Context, commentIDs []uint64) ([]*model.CommentMention, error)
	DeleteMentionsByCommentID(ctx context.Context, commentID uint64) error
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db}
}

func (s *PostActionRepoImpl) CreateLike(ctx context.Context, like *model.PostLike) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *PostActionRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.PostLike{})
	return result.RowsAffected, result.Error
}

func (s *PostActionRepoImpl) CheckLikeExistsBatch(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (s *PostActionRepoImpl) GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) CreateFavorite(ctx context.Context, favorite *model.PostFavorite) error {
	return s.db.WithContext(ctx).Create(favorite).Error
}

func (s *PostActionRepoImpl) DeleteFavorite(ctx context.Context, userID, postID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.PostFavorite{})
	return result.RowsAffected, result.Error
}

func (s *PostActionRepoImpl) CheckFavoriteExistsBatch(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error) {
	favorited := make(map[uint64]bool, len(postIDs))
	if len(postIDs) == 0 {
		return favorited, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.PostFavorite{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		favorited[id] = true
	}
	return favorited, nil
}

func (s *PostActionRepoImpl) GetFavoriteCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostFavorite{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) CreateCommentLike(ctx context.Context, cl *model.CommentLike) error {
	return s.db.WithContext(ctx).Create(cl).Error
}

func (s *PostActionRepoImpl) DeleteCommentLike(ctx context.Context, userID, commentID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&model.CommentLike{})
	return result.RowsAffected, result.Error
}

func (s *PostActionRepoImpl) CheckCommentLikeExistsBatch(ctx context.Context, userID uint64, commentIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool, len(commentIDs))
	if len(commentIDs) == 0 {
		return liked, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (s *PostActionRepoImpl) GetCommentLikeCount(ctx context.Context, commentID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) DeleteCommentLikesByCommentID(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Delete(&model.CommentLike{}).Error
}

func (s *PostActionRepoImpl) CreateMentions(ctx context.Context, mentions []*model.CommentMention) error {
	if len(mentions) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(mentions).Error
}

func (s *PostActionRepoImpl) GetMentionsByCommentIDs(ctx context.Context, commentIDs []uint64) ([]*model.CommentMention, error) {
	mentions := make([]*model.CommentMention, 0)
	if len(commentIDs) == 0 {
		return mentions, nil
	}
	err := s.db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Find(&mentions).Error
	return mentions, err
}

func (s *PostActionRepoImpl) DeleteMentionsByCommentID(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Delete(&model.CommentMention{}).Error
}
