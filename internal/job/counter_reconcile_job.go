package job

import (
	"Mingle/internal/pkg/consts"
	"Mingle/internal/pkg/logger"
	"Mingle/internal/pkg/redis"
	"Mingle/internal/pkg/util"
	"Mingle/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"github.com/google/uuid"
)

// CounterReconcileJob 根据事实表回算冗余计数，修复增量更新的漂移
type CounterReconcileJob struct {
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
	actionRepo  repository.PostActionRepo
	userRepo    repository.UserRepo
	followRepo  repository.UserFollowRepo
}

func NewCounterReconcileJob(
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	actionRepo repository.PostActionRepo,
	userRepo repository.UserRepo,
	followRepo repository.UserFollowRepo,
) *CounterReconcileJob {
	return &CounterReconcileJob{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		actionRepo:  actionRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
	}
}

func (s *CounterReconcileJob) Run() {
	traceID := "job-counter-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	s.reconcilePosts(ctx)
	s.reconcileComments(ctx)
	s.reconcileUsers(ctx)
}

// drainDirtySet 用 RENAME 原子接管待对账集合，集合不存在时返回空
func drainDirtySet(ctx context.Context, key string) ([]uint64, error) {
	processingKey := key + ":processing"
	if err := redis.Rename(ctx, key, processingKey); err != nil {
		return nil, nil
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		return nil, err
	}
	ids, err := util.StrSliceToUInt64Slice(members)
	if err != nil {
		return nil, err
	}
	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.WarnContext(ctx, "删除对账临时集合失败", "key", processingKey, "err", err)
	}
	return ids, nil
}

func (s *CounterReconcileJob) reconcilePosts(ctx context.Context) {
	postIDs, err := drainDirtySet(ctx, consts.PostCounterDirtyKey)
	if err != nil {
		log.ErrorContext(ctx, "读取帖子待对账集合失败", "err", err)
		return
	}
	if len(postIDs) == 0 {
		return
	}

	log.InfoContext(ctx, "开始对账帖子计数", "count", len(postIDs))
	successCount := 0
	for _, postID := range postIDs {
		if err := s.reconcilePost(ctx, postID); err != nil {
			log.ErrorContext(ctx, "帖子计数对账失败", "postID", postID, "err", err)
			continue
		}
		successCount++
	}
	log.InfoContext(ctx, "帖子计数对账完成", "total", len(postIDs), "success", successCount)
}

func (s *CounterReconcileJob) reconcilePost(ctx context.Context, postID uint64) error {
	likes, err := s.actionRepo.GetLikeCountByPostID(ctx, postID)
	if err != nil {
		return err
	}
	comments, err := s.commentRepo.CountCommentsByPostID(ctx, postID)
	if err != nil {
		return err
	}
	favorites, err := s.actionRepo.GetFavoriteCountByPostID(ctx, postID)
	if err != nil {
		return err
	}
	return s.postRepo.SetCounters(ctx, postID, likes, comments, favorites)
}

func (s *CounterReconcileJob) reconcileComments(ctx context.Context) {
	commentIDs, err := drainDirtySet(ctx, consts.CommentCounterDirtyKey)
	if err != nil {
		log.ErrorContext(ctx, "读取评论待对账集合失败", "err", err)
		return
	}
	if len(commentIDs) == 0 {
		return
	}

	log.InfoContext(ctx, "开始对账评论计数", "count", len(commentIDs))
	successCount := 0
	for _, commentID := range commentIDs {
		count, err := s.actionRepo.GetCommentLikeCount(ctx, commentID)
		if err != nil {
			log.ErrorContext(ctx, "查询评论点赞数失败", "commentID", commentID, "err", err)
			continue
		}
		if err = s.commentRepo.SetLikesCount(ctx, commentID, count); err != nil {
			log.ErrorContext(ctx, "回写评论点赞数失败", "commentID", commentID, "err", err)
			continue
		}
		successCount++
	}
	log.InfoContext(ctx, "评论计数对账完成", "total", len(commentIDs), "success", successCount)
}

func (s *CounterReconcileJob) reconcileUsers(ctx context.Context) {
	userIDs, err := drainDirtySet(ctx, consts.UserCounterDirtyKey)
	if err != nil {
		log.ErrorContext(ctx, "读取用户待对账集合失败", "err", err)
		return
	}
	if len(userIDs) == 0 {
		return
	}

	log.InfoContext(ctx, "开始对账用户计数", "count", len(userIDs))
	successCount := 0
	for _, userID := range userIDs {
		if err := s.reconcileUser(ctx, userID); err != nil {
			log.ErrorContext(ctx, "用户计数对账失败", "userID", userID, "err", err)
			continue
		}
		successCount++
	}
	log.InfoContext(ctx, "用户计数对账完成", "total", len(userIDs), "success", successCount)
}

func (s *CounterReconcileJob) reconcileUser(ctx context.Context, userID uint64) error {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("用户不存在")
	}

	followers, err := s.followRepo.GetUserFollowerCount(ctx, userID)
	if err != nil {
		return err
	}
	following, err := s.followRepo.GetUserFollowingCount(ctx, userID)
	if err != nil {
		return err
	}
	if err = s.userRepo.SetFollowCounts(ctx, userID, followers, following); err != nil {
		return err
	}

	_, postTotal, err := s.postRepo.GetPostsByUser(ctx, userID, 1, 0)
	if err != nil {
		return err
	}
	return s.userRepo.SetPostsCount(ctx, userID, postTotal)
}
