package service

import (
	"Mingle/internal/api/dto"
	"Mingle/internal/model"
	"Mingle/internal/pkg/consts"
	"Mingle/internal/pkg/util"
	"Mingle/internal/repository"
	"context"
	"strings"

	"gorm.io/gorm"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, createDTO *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetFeed(ctx context.Context, viewerID uint64, feedType string, tag string, page, limit int) (*dto.PageDTO[*dto.PostDTO], error)
	GetPostByID(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error)
	GetUserPosts(ctx context.Context, viewerID, userID uint64, page, limit int) (*dto.PageDTO[*dto.PostDTO], error)
}

type PostServiceImpl struct {
	db         *gorm.DB
	postRepo   repository.PostRepo
	userRepo   repository.UserRepo
	actionRepo repository.PostActionRepo
	followRepo repository.UserFollowRepo
	tagRepo    repository.TagRepo
}

func NewPostService(
	db *gorm.DB,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	actionRepo repository.PostActionRepo,
	followRepo repository.UserFollowRepo,
	tagRepo repository.TagRepo,
) PostService {
	return &PostServiceImpl{
		db:         db,
		postRepo:   postRepo,
		userRepo:   userRepo,
		actionRepo: actionRepo,
		followRepo: followRepo,
		tagRepo:    tagRepo,
	}
}

// CreatePost 发帖：帖子、标签、作者发帖数在同一事务内落库
func (s *PostServiceImpl) CreatePost(ctx context.Context, userID uint64, createDTO *dto.PostCreateDTO) (*dto.PostDTO, error) {
	title := strings.TrimSpace(createDTO.Title)
	if title == "" {
		return nil, ErrPostTitleEmpty
	}
	content := strings.TrimSpace(createDTO.Content)
	if content == "" {
		return nil, ErrPostContentEmpty
	}

	var post *model.Post
	var tagNames []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postRepo := repository.NewPostRepo(tx)
		userRepo := repository.NewUserRepo(tx)
		tagRepo := repository.NewTagRepo(tx)

		author, err := userRepo.GetUserById(ctx, userID)
		if err != nil {
			return err
		}
		if author == nil {
			return ErrUserNotFound
		}

		post = &model.Post{
			UserID:    userID,
			Title:     title,
			Content:   content,
			MediaType: createDTO.MediaType,
			MediaURLs: createDTO.MediaURLs,
		}
		if err = postRepo.CreatePost(ctx, post); err != nil {
			return err
		}
		post.User = *author

		tags, err := tagRepo.GetOrCreateTags(ctx, util.MergeTags(createDTO.Tags, content))
		if err != nil {
			return err
		}
		postTags := make([]*model.PostTag, 0, len(tags))
		for _, tag := range tags {
			postTags = append(postTags, &model.PostTag{PostID: post.ID, TagID: tag.ID})
			tagNames = append(tagNames, tag.Name)
			if err = tagRepo.IncrUsageCount(ctx, tag.ID, 1); err != nil {
				return err
			}
		}
		if err = tagRepo.CreatePostTags(ctx, postTags); err != nil {
			return err
		}

		return userRepo.IncrPostsCount(ctx, userID, 1)
	})
	if err != nil {
		return nil, err
	}
	markUserDirty(ctx, userID)

	return toPostDTO(post, tagNames, false, false), nil
}

// GetFeed 拉取帖子流，按时间倒序。关注流在关注集合为空时直接返回空页
func (s *PostServiceImpl) GetFeed(ctx context.Context, viewerID uint64, feedType string, tag string, page, limit int) (*dto.PageDTO[*dto.PostDTO], error) {
	var posts []*model.Post
	var total int64
	var err error

	switch feedType {
	case consts.FeedTypeFollowing:
		if viewerID == 0 {
			return nil, UnauthorizedError
		}
		var followingIDs []uint64
		followingIDs, err = s.followRepo.GetFollowingIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		if len(followingIDs) == 0 {
			return dto.NewPageDTO([]*dto.PostDTO{}, page, limit, 0), nil
		}
		posts, total, err = s.postRepo.GetPostsByAuthors(ctx, followingIDs, limit, page*limit)
	case consts.FeedTypeRecommended, "":
		if tag != "" {
			tagModel, tagErr := s.tagRepo.GetTagByName(ctx, tag)
			if tagErr != nil {
				return nil, tagErr
			}
			if tagModel == nil {
				return dto.NewPageDTO([]*dto.PostDTO{}, page, limit, 0), nil
			}
			posts, total, err = s.postRepo.GetPostsByTag(ctx, tagModel.ID, limit, page*limit)
		} else {
			posts, total, err = s.postRepo.GetPosts(ctx, limit, page*limit)
		}
	default:
		return nil, ErrParamInvalid
	}
	if err != nil {
		return nil, err
	}

	items, err := s.assemblePostDTOs(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}
	return dto.NewPageDTO(items, page, limit, total), nil
}

func (s *PostServiceImpl) GetPostByID(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	items, err := s.assemblePostDTOs(ctx, viewerID, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

func (s *PostServiceImpl) GetUserPosts(ctx context.Context, viewerID, userID uint64, page, limit int) (*dto.PageDTO[*dto.PostDTO], error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	posts, total, err := s.postRepo.GetPostsByUser(ctx, userID, limit, page*limit)
	if err != nil {
		return nil, err
	}

	items, err := s.assemblePostDTOs(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}
	return dto.NewPageDTO(items, page, limit, total), nil
}

// assemblePostDTOs 批量补齐标签与浏览者的点赞收藏状态
func (s *PostServiceImpl) assemblePostDTOs(ctx context.Context, viewerID uint64, posts []*model.Post) ([]*dto.PostDTO, error) {
	postIDs := make([]uint64, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}

	tagsByPost, err := s.tagRepo.GetTagsByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	likedMap := make(map[uint64]bool)
	favoritedMap := make(map[uint64]bool)
	if viewerID != 0 {
		likedMap, err = s.actionRepo.CheckLikeExistsBatch(ctx, viewerID, postIDs)
		if err != nil {
			return nil, err
		}
		favoritedMap, err = s.actionRepo.CheckFavoriteExistsBatch(ctx, viewerID, postIDs)
		if err != nil {
			return nil, err
		}
	}

	items := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostDTO(post, tagsByPost[post.ID], likedMap[post.ID], favoritedMap[post.ID]))
	}
	return items, nil
}

func toPostDTO(post *model.Post, tags []string, isLiked, isFavorited bool) *dto.PostDTO {
	if tags == nil {
		tags = []string{}
	}
	mediaURLs := post.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}
	var author *dto.UserDTO
	if post.User.ID != 0 {
		author = toUserDTO(&post.User)
	}
	return &dto.PostDTO{
		ID:             post.ID,
		Author:         author,
		Title:          post.Title,
		Content:        post.Content,
		MediaType:      post.MediaType,
		MediaURLs:      mediaURLs,
		Tags:           tags,
		LikesCount:     post.LikesCount,
		CommentsCount:  post.CommentsCount,
		FavoritesCount: post.FavoritesCount,
		IsLiked:        isLiked,
		IsFavorited:    isFavorited,
		CreatedAt:      post.CreatedAt.Format(timeLayout),
		UpdatedAt:      post.UpdatedAt.Format(timeLayout),
	}
}
