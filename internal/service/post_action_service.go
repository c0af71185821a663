package service

import (
	"Mingle/internal/model"
	"Mingle/internal/pkg/consts"
	"Mingle/internal/pkg/redis"
	"Mingle/internal/repository"
	"context"
	log "log/slog"
	"strconv"

	"gorm.io/gorm"
)

type PostActionService interface {
	LikePost(ctx context.Context, userID, postID uint64) error
	UnlikePost(ctx context.Context, userID, postID uint64) error
	FavoritePost(ctx context.Context, userID, postID uint64) error
	UnfavoritePost(ctx context.Context, userID, postID uint64) error
	LikeComment(ctx context.Context, userID, commentID uint64) error
	UnlikeComment(ctx context.Context, userID, commentID uint64) error
}

type postActionServiceImpl struct {
	db *gorm.DB
}

func NewPostActionService(db *gorm.DB) PostActionService {
	return &postActionServiceImpl{db: db}
}

// LikePost 点赞帖子：事实行、计数、通知在同一事务内落库
func (s *postActionServiceImpl) LikePost(ctx context.Context, userID, postID uint64) error {
	var authorID uint64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postRepo := repository.NewPostRepo(tx)
		actionRepo := repository.NewPostActionRepo(tx)

		post, err := postRepo.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}
		authorID = post.UserID

		if err = actionRepo.CreateLike(ctx, &model.PostLike{UserID: userID, PostID: postID}); err != nil {
			if isDuplicateError(err) {
				return ErrActionDuplicate
			}
			return err
		}
		if err = postRepo.IncrLikesCount(ctx, postID, 1); err != nil {
			return err
		}

		if post.UserID != userID {
			return createNotification(ctx, tx, &model.Notification{
				UserID:    post.UserID,
				Type:      model.NotificationTypeLike,
				ActorID:   userID,
				RelatedID: postID,
				Content:   "赞了你的帖子",
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	markPostDirty(ctx, postID)
	if authorID != userID {
		invalidateUnreadCount(ctx, authorID)
	}
	return nil
}

func (s *postActionServiceImpl) UnlikePost(ctx context.Context, userID, postID uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postRepo := repository.NewPostRepo(tx)
		actionRepo := repository.NewPostActionRepo(tx)

		post, err := postRepo.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}

		rows, err := actionRepo.DeleteLike(ctx, userID, postID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrActionNotExist
		}
		return postRepo.IncrLikesCount(ctx, postID, -1)
	})
	if err != nil {
		return err
	}
	markPostDirty(ctx, postID)
	return nil
}

func (s *postActionServiceImpl) FavoritePost(ctx context.Context, userID, postID uint64) error {
	var authorID uint64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postRepo := repository.NewPostRepo(tx)
		actionRepo := repository.NewPostActionRepo(tx)

		post, err := postRepo.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}
		authorID = post.UserID

		if err = actionRepo.CreateFavorite(ctx, &model.PostFavorite{UserID: userID, PostID: postID}); err != nil {
			if isDuplicateError(err) {
				return ErrActionDuplicate
			}
			return err
		}
		if err = postRepo.IncrFavoritesCount(ctx, postID, 1); err != nil {
			return err
		}

		if post.UserID != userID {
			return createNotification(ctx, tx, &model.Notification{
				UserID:    post.UserID,
				Type:      model.NotificationTypeLike,
				ActorID:   userID,
				RelatedID: postID,
				Content:   "收藏了你的帖子",
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	markPostDirty(ctx, postID)
	if authorID != userID {
		invalidateUnreadCount(ctx, authorID)
	}
	return nil
}

func (s *postActionServiceImpl) UnfavoritePost(ctx context.Context, userID, postID uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postRepo := repository.NewPostRepo(tx)
		actionRepo := repository.NewPostActionRepo(tx)

		post, err := postRepo.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}

		rows, err := actionRepo.DeleteFavorite(ctx, userID, postID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrActionNotExist
		}
		return postRepo.IncrFavoritesCount(ctx, postID, -1)
	})
	if err != nil {
		return err
	}
	markPostDirty(ctx, postID)
	return nil
}

func (s *postActionServiceImpl) LikeComment(ctx context.Context, userID, commentID uint64) error {
	var authorID uint64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentRepo := repository.NewCommentRepo(tx)
		actionRepo := repository.NewPostActionRepo(tx)

		comment, err := commentRepo.GetCommentByID(ctx, commentID)
		if err != nil {
			return err
		}
		if comment == nil {
			return ErrCommentNotFound
		}
		authorID = comment.UserID

		if err = actionRepo.CreateCommentLike(ctx, &model.CommentLike{UserID: userID, CommentID: commentID}); err != nil {
			if isDuplicateError(err) {
				return ErrActionDuplicate
			}
			return err
		}
		if err = commentRepo.IncrLikesCount(ctx, commentID, 1); err != nil {
			return err
		}

		if comment.UserID != userID {
			return createNotification(ctx, tx, &model.Notification{
				UserID:    comment.UserID,
				Type:      model.NotificationTypeLike,
				ActorID:   userID,
				RelatedID: commentID,
				Content:   "赞了你的评论",
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	markCommentDirty(ctx, commentID)
	if authorID != userID {
		invalidateUnreadCount(ctx, authorID)
	}
	return nil
}

func (s *postActionServiceImpl) UnlikeComment(ctx context.Context, userID, commentID uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentRepo := repository.NewCommentRepo(tx)
		actionRepo := repository.NewPostActionRepo(tx)

		comment, err := commentRepo.GetCommentByID(ctx, commentID)
		if err != nil {
			return err
		}
		if comment == nil {
			return ErrCommentNotFound
		}

		rows, err := actionRepo.DeleteCommentLike(ctx, userID, commentID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrActionNotExist
		}
		return commentRepo.IncrLikesCount(ctx, commentID, -1)
	})
	if err != nil {
		return err
	}
	markCommentDirty(ctx, commentID)
	return nil
}

func createNotification(ctx context.Context, tx *gorm.DB, notification *model.Notification) error {
	return repository.NewNotificationRepo(tx).CreateNotification(ctx, notification)
}

// markPostDirty 提交后把帖子 id 丢进待对账集合，失败只记日志
func markPostDirty(ctx context.Context, postID uint64) {
	if err := redis.SAdd(ctx, consts.PostCounterDirtyKey, strconv.FormatUint(postID, 10)); err != nil {
		log.Warn("标记帖子待对账失败", "postID", postID, "err", err)
	}
}

func markUserDirty(ctx context.Context, userID uint64) {
	if err := redis.SAdd(ctx, consts.UserCounterDirtyKey, strconv.FormatUint(userID, 10)); err != nil {
		log.Warn("标记用户待对账失败", "userID", userID, "err", err)
	}
}

func markCommentDirty(ctx context.Context, commentID uint64) {
	if err := redis.SAdd(ctx, consts.CommentCounterDirtyKey, strconv.FormatUint(commentID, 10)); err != nil {
		log.Warn("标记评论待对账失败", "commentID", commentID, "err", err)
	}
}

// invalidateUnreadCount 通知写入后失效未读数缓存
func invalidateUnreadCount(ctx context.Context, userID uint64) {
	if err := redis.DeleteKey(ctx, consts.NotificationUnreadKey+strconv.FormatUint(userID, 10)); err != nil {
		log.Warn("失效未读数缓存失败", "userID", userID, "err", err)
	}
}
