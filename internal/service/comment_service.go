package service

import (
	"Mingle/internal/api/dto"
	"Mingle/internal/model"
	"Mingle/internal/repository"
	"context"
	"strings"

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID, postID uint64, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	GetCommentsByPost(ctx context.Context, viewerID, postID uint64, page, limit int) (*dto.PageDTO[*dto.CommentDTO], error)
	DeleteComment(ctx context.Context, userID, commentID uint64) error
}

type CommentServiceImpl struct {
	db          *gorm.DB
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	actionRepo  repository.PostActionRepo
	userRepo    repository.UserRepo
}

func NewCommentService(
	db *gorm.DB,
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	actionRepo repository.PostActionRepo,
	userRepo repository.UserRepo,
) CommentService {
	return &CommentServiceImpl{
		db:          db,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		actionRepo:  actionRepo,
		userRepo:    userRepo,
	}
}

// CreateComment 发表评论：评论行、提及、计数、通知在同一事务内落库。
// 一级评论的 root_id 为 0；回复的 root_id 指向所在一级评论，父评论自身
// 是回复时继承其 root_id。
func (s *CommentServiceImpl) CreateComment(ctx context.Context, userID, postID uint64, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	content := strings.TrimSpace(createDTO.Content)
	if content == "" {
		return nil, ErrCommentContentEmpty
	}

	var comment *model.Comment
	var mentionedUsers []*model.User
	recipients := make(map[uint64]bool)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postRepo := repository.NewPostRepo(tx)
		commentRepo := repository.NewCommentRepo(tx)
		actionRepo := repository.NewPostActionRepo(tx)
		userRepo := repository.NewUserRepo(tx)
		notificationRepo := repository.NewNotificationRepo(tx)

		post, err := postRepo.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}

		var rootID uint64
		var parent *model.Comment
		if createDTO.ParentID != 0 {
			parent, err = commentRepo.GetCommentByID(ctx, createDTO.ParentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return ErrCommentParentNotFound
			}
			if parent.PostID != postID {
				return ErrCommentParentMismatch
			}
			if parent.RootID == 0 {
				rootID = parent.ID
			} else {
				rootID = parent.RootID
			}
		}

		// 提及去重并过滤不存在的用户
		mentionIDs := make([]uint64, 0, len(createDTO.Mentions))
		seen := make(map[uint64]bool)
		for _, id := range createDTO.Mentions {
			if id != 0 && !seen[id] {
				seen[id] = true
				mentionIDs = append(mentionIDs, id)
			}
		}
		mentionedUsers, err = userRepo.GetUserByIds(ctx, mentionIDs)
		if err != nil {
			return err
		}

		comment = &model.Comment{
			PostID:   postID,
			UserID:   userID,
			ParentID: createDTO.ParentID,
			RootID:   rootID,
			Content:  content,
		}
		if err = commentRepo.CreateComment(ctx, comment); err != nil {
			return err
		}

		mentions := make([]*model.CommentMention, 0, len(mentionedUsers))
		for _, user := range mentionedUsers {
			mentions = append(mentions, &model.CommentMention{CommentID: comment.ID, UserID: user.ID})
		}
		if err = actionRepo.CreateMentions(ctx, mentions); err != nil {
			return err
		}

		if err = postRepo.IncrCommentsCount(ctx, postID, 1); err != nil {
			return err
		}

		// 一级评论通知帖子作者，回复通知父评论作者，自己不通知自己
		var replyTarget uint64
		if parent == nil {
			replyTarget = post.UserID
		} else {
			replyTarget = parent.UserID
		}
		if replyTarget != userID {
			notificationType := model.NotificationTypeComment
			notificationContent := "评论了你的帖子"
			if parent != nil {
				notificationContent = "回复了你的评论"
			}
			err = notificationRepo.CreateNotification(ctx, &model.Notification{
				UserID:    replyTarget,
				Type:      notificationType,
				ActorID:   userID,
				RelatedID: comment.ID,
				Content:   notificationContent,
			})
			if err != nil {
				return err
			}
			recipients[replyTarget] = true
		}

		// 被提及者即使已收到评论通知也再收一条提及通知，只跳过评论者本人
		for _, user := range mentionedUsers {
			if user.ID == userID {
				continue
			}
			err = notificationRepo.CreateNotification(ctx, &model.Notification{
				UserID:    user.ID,
				Type:      model.NotificationTypeMention,
				ActorID:   userID,
				RelatedID: comment.ID,
				Content:   "在评论中提到了你",
			})
			if err != nil {
				return err
			}
			recipients[user.ID] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	markPostDirty(ctx, postID)
	for recipient := range recipients {
		invalidateUnreadCount(ctx, recipient)
	}

	author, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	commentDTO := toCommentDTO(comment, toUserDTO(author), nil, false)
	for _, user := range mentionedUsers {
		commentDTO.Mentions = append(commentDTO.Mentions, toUserDTO(user))
	}
	return commentDTO, nil
}

// GetCommentsByPost 分页拉取一级评论，每条带上其全部回复，楼层一层展开
func (s *CommentServiceImpl) GetCommentsByPost(ctx context.Context, viewerID, postID uint64, page, limit int) (*dto.PageDTO[*dto.CommentDTO], error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	roots, total, err := s.commentRepo.GetRootCommentsByPostID(ctx, postID, limit, page*limit)
	if err != nil {
		return nil, err
	}

	rootIDs := make([]uint64, 0, len(roots))
	for _, root := range roots {
		rootIDs = append(rootIDs, root.ID)
	}
	replies, err := s.commentRepo.GetRepliesByRootIDs(ctx, rootIDs)
	if err != nil {
		return nil, err
	}

	all := make([]*model.Comment, 0, len(roots)+len(replies))
	all = append(all, roots...)
	all = append(all, replies...)

	commentIDs := make([]uint64, 0, len(all))
	for _, c := range all {
		commentIDs = append(commentIDs, c.ID)
	}

	mentions, err := s.actionRepo.GetMentionsByCommentIDs(ctx, commentIDs)
	if err != nil {
		return nil, err
	}

	userIDSet := make(map[uint64]bool)
	for _, c := range all {
		userIDSet[c.UserID] = true
	}
	for _, m := range mentions {
		userIDSet[m.UserID] = true
	}
	userIDs := make([]uint64, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}
	users, err := s.userRepo.GetUserByIds(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	userMap := toUserDTOMap(users)

	likedMap := make(map[uint64]bool)
	if viewerID != 0 {
		likedMap, err = s.actionRepo.CheckCommentLikeExistsBatch(ctx, viewerID, commentIDs)
		if err != nil {
			return nil, err
		}
	}

	mentionsByComment := make(map[uint64][]*dto.UserDTO)
	for _, m := range mentions {
		if userDTO := userMap[m.UserID]; userDTO != nil {
			mentionsByComment[m.CommentID] = append(mentionsByComment[m.CommentID], userDTO)
		}
	}

	items := make([]*dto.CommentDTO, 0, len(roots))
	dtoByRoot := make(map[uint64]*dto.CommentDTO, len(roots))
	for _, root := range roots {
		item := toCommentDTO(root, userMap[root.UserID], mentionsByComment[root.ID], likedMap[root.ID])
		items = append(items, item)
		dtoByRoot[root.ID] = item
	}
	for _, reply := range replies {
		parent := dtoByRoot[reply.RootID]
		if parent == nil {
			continue
		}
		parent.Replies = append(parent.Replies, toCommentDTO(reply, userMap[reply.UserID], mentionsByComment[reply.ID], likedMap[reply.ID]))
	}

	return dto.NewPageDTO(items, page, limit, total), nil
}

// DeleteComment 仅作者可删，回复保留原地
func (s *CommentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	var postID uint64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentRepo := repository.NewCommentRepo(tx)
		actionRepo := repository.NewPostActionRepo(tx)
		postRepo := repository.NewPostRepo(tx)

		comment, err := commentRepo.GetCommentByID(ctx, commentID)
		if err != nil {
			return err
		}
		if comment == nil {
			return ErrCommentNotFound
		}
		if comment.UserID != userID {
			return UnauthorizedError
		}
		postID = comment.PostID

		if err = actionRepo.DeleteCommentLikesByCommentID(ctx, commentID); err != nil {
			return err
		}
		if err = actionRepo.DeleteMentionsByCommentID(ctx, commentID); err != nil {
			return err
		}
		if err = commentRepo.DeleteComment(ctx, commentID); err != nil {
			return err
		}
		return postRepo.IncrCommentsCount(ctx, postID, -1)
	})
	if err != nil {
		return err
	}
	markPostDirty(ctx, postID)
	return nil
}

func toCommentDTO(comment *model.Comment, author *dto.UserDTO, mentions []*dto.UserDTO, isLiked bool) *dto.CommentDTO {
	if mentions == nil {
		mentions = []*dto.UserDTO{}
	}
	return &dto.CommentDTO{
		ID:         comment.ID,
		PostID:     comment.PostID,
		Author:     author,
		ParentID:   comment.ParentID,
		Content:    comment.Content,
		Mentions:   mentions,
		LikesCount: comment.LikesCount,
		IsLiked:    isLiked,
		CreatedAt:  comment.CreatedAt.Format(timeLayout),
	}
}
