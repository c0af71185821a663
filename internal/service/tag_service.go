package service

import (
	"Mingle/internal/api/dto"
	"Mingle/internal/repository"
	"context"
)

type TagService interface {
	GetPopularTags(ctx context.Context, limit int) ([]*dto.TagDTO, error)
}

type TagServiceImpl struct {
	tagRepo repository.TagRepo
}

func NewTagService(tagRepo repository.TagRepo) TagService {
	return &TagServiceImpl{
		tagRepo: tagRepo,
	}
}

func (s *TagServiceImpl) GetPopularTags(ctx context.Context, limit int) ([]*dto.TagDTO, error) {
	tags, err := s.tagRepo.GetPopularTags(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TagDTO, 0, len(tags))
	for _, tag := range tags {
		items = append(items, &dto.TagDTO{
			ID:         tag.ID,
			Name:       tag.Name,
			UsageCount: tag.UsageCount,
		})
	}
	return items, nil
}
