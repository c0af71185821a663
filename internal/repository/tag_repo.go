package repository

import (
	"Mingle/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo interface {
	GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, error)
	GetTagByName(ctx context.Context, name string) (*model.Tag, error)
	GetTagsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64][]string, error)
	GetPopularTags(ctx context.Context, limit int) ([]*model.Tag, error)
	CreatePostTags(ctx context.Context, postTags []*model.PostTag) error
	IncrUsageCount(ctx context.Context, id uint64, delta int) error
}

type tagRepoImpl struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) TagRepo {
	return &tagRepoImpl{
		db: db,
	}
}

// GetOrCreateTags 创建所有标签，使用 OnConflict DoNothing 避免重复创建
func (s *tagRepoImpl) GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, error) {
	if len(tagNames) == 0 {
		return nil, nil
	}
	for _, tagName := range tagNames {
		tag := model.Tag{
			Name: tagName,
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error
		if err != nil {
			return nil, err
		}
	}

	// 记录可能已存在，统一回查拿完整数据
	var tags []*model.Tag
	err := s.db.WithContext(ctx).Where("name IN ?", tagNames).Find(&tags).Error
	if err != nil {
		return nil, err
	}

	return tags, nil
}

func (s *tagRepoImpl) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	tag := &model.Tag{}
	result := s.db.WithContext(ctx).Where("name = ?", name).First(tag)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return tag, nil
}

// GetTagsByPostIDs 批量查帖子的标签名
func (s *tagRepoImpl) GetTagsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64][]string, error) {
	tagsByPost := make(map[uint64][]string, len(postIDs))
	if len(postIDs) == 0 {
		return tagsByPost, nil
	}

	type row struct {
		PostID uint64
		Name   string
	}
	var rows []row
	err := s.db.WithContext(ctx).Table("post_tags").
		Select("post_tags.post_id", "tags.name").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("post_tags.post_id IN ?", postIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		tagsByPost[r.PostID] = append(tagsByPost[r.PostID], r.Name)
	}
	return tagsByPost, nil
}

// GetPopularTags 按使用次数倒序取热门标签
func (s *tagRepoImpl) GetPopularTags(ctx context.Context, limit int) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := s.db.WithContext(ctx).
		Order("usage_count DESC, id ASC").
		Limit(limit).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *tagRepoImpl) CreatePostTags(ctx context.Context, postTags []*model.PostTag) error {
	if len(postTags) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(postTags).Error
}

func (s *tagRepoImpl) IncrUsageCount(ctx context.Context, id uint64, delta int) error {
	query := s.db.WithContext(ctx).Model(&model.Tag{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("usage_count > 0")
	}
	return query.UpdateColumn("usage_count", gorm.Expr("usage_count + ?", delta)).Error
}
