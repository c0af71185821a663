package service

import (
	"Mingle/internal/model"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePost(t *testing.T) {
	db := newTestEnv(t)
	svc := NewPostActionService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	liker := createTestUser(t, db, "点赞者")
	post := createTestPost(t, db, author.ID, "第一帖")

	require.NoError(t, svc.LikePost(ctx, liker.ID, post.ID))

	assert.Equal(t, 1, reloadPost(t, db, post.ID).LikesCount)
	assert.EqualValues(t, 1, countRows(t, db, &model.PostLike{}, "user_id = ? AND post_id = ?", liker.ID, post.ID))

	// 作者收到一条点赞通知
	var n model.Notification
	require.NoError(t, db.Where("user_id = ?", author.ID).First(&n).Error)
	assert.Equal(t, model.NotificationTypeLike, n.Type)
	assert.Equal(t, liker.ID, n.ActorID)
	assert.Equal(t, post.ID, n.RelatedID)
}

func TestLikePostDuplicate(t *testing.T) {
	db := newTestEnv(t)
	svc := NewPostActionService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	liker := createTestUser(t, db, "点赞者")
	post := createTestPost(t, db, author.ID, "第一帖")

	require.NoError(t, svc.LikePost(ctx, liker.ID, post.ID))
	err := svc.LikePost(ctx, liker.ID, post.ID)
	assert.ErrorIs(t, err, ErrActionDuplicate)

	// 重复点赞不改变计数，也不重复通知
	assert.Equal(t, 1, reloadPost(t, db, post.ID).LikesCount)
	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{}, "user_id = ?", author.ID))
}

func TestLikePostSelfNoNotification(t *testing.T) {
	db := newTestEnv(t)
	svc := NewPostActionService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	post := createTestPost(t, db, author.ID, "自己的帖子")

	require.NoError(t, svc.LikePost(ctx, author.ID, post.ID))

	assert.Equal(t, 1, reloadPost(t, db, post.ID).LikesCount)
	assert.EqualValues(t, 0, countRows(t, db, &model.Notification{}, "1 = 1"))
}

func TestLikePostNotFound(t *testing.T) {
	db := newTestEnv(t)
	svc := NewPostActionService(db)

	liker := createTestUser(t, db, "点赞者")
	err := svc.LikePost(context.Background(), liker.ID, 9999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUnlikePost(t *testing.T) {
	db := newTestEnv(t)
	svc := NewPostActionService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	liker := createTestUser(t, db, "点赞者")
	post := createTestPost(t, db, author.ID, "第一帖")

	require.NoError(t, svc.LikePost(ctx, liker.ID, post.ID))
	require.NoError(t, svc.UnlikePost(ctx, liker.ID, post.ID))

	assert.Equal(t, 0, reloadPost(t, db, post.ID).LikesCount)
	assert.EqualValues(t, 0, countRows(t, db, &model.PostLike{}, "post_id = ?", post.ID))

	// 未点赞状态下取消点赞报错，计数不会变成负数
	err := svc.UnlikePost(ctx, liker.ID, post.ID)
	assert.ErrorIs(t, err, ErrActionNotExist)
	assert.Equal(t, 0, reloadPost(t, db, post.ID).LikesCount)
}

func TestLikeUnlikeRoundTrips(t *testing.T) {
	db := newTestEnv(t)
	svc := NewPostActionService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	liker := createTestUser(t, db, "点赞者")
	post := createTestPost(t, db, author.ID, "第一帖")

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.LikePost(ctx, liker.ID, post.ID))
		require.NoError(t, svc.UnlikePost(ctx, liker.ID, post.ID))
	}

	assert.Equal(t, 0, reloadPost(t, db, post.ID).LikesCount)
	assert.EqualValues(t, 0, countRows(t, db, &model.PostLike{}, "post_id = ?", post.ID))
}

func TestFavoritePost(t *testing.T) {
	db := newTestEnv(t)
	svc := NewPostActionService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	u := createTestUser(t, db, "收藏者")
	post := createTestPost(t, db, author.ID, "第一帖")

	require.NoError(t, svc.FavoritePost(ctx, u.ID, post.ID))
	assert.Equal(t, 1, reloadPost(t, db, post.ID).FavoritesCount)

	assert.ErrorIs(t, svc.FavoritePost(ctx, u.ID, post.ID), ErrActionDuplicate)

	require.NoError(t, svc.UnfavoritePost(ctx, u.ID, post.ID))
	assert.Equal(t, 0, reloadPost(t, db, post.ID).FavoritesCount)
	assert.ErrorIs(t, svc.UnfavoritePost(ctx, u.ID, post.ID), ErrActionNotExist)

	// 点赞和收藏互不影响
	require.NoError(t, svc.LikePost(ctx, u.ID, post.ID))
	require.NoError(t, svc.FavoritePost(ctx, u.ID, post.ID))
	p := reloadPost(t, db, post.ID)
	assert.Equal(t, 1, p.LikesCount)
	assert.Equal(t, 1, p.FavoritesCount)
}

func TestLikeComment(t *testing.T) {
	db := newTestEnv(t)
	svc := NewPostActionService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	commenter := createTestUser(t, db, "评论者")
	liker := createTestUser(t, db, "点赞者")
	post := createTestPost(t, db, author.ID, "第一帖")

	comment := &model.Comment{PostID: post.ID, UserID: commenter.ID, Content: "不错"}
	require.NoError(t, db.Create(comment).Error)

	require.NoError(t, svc.LikeComment(ctx, liker.ID, comment.ID))

	var reloaded model.Comment
	require.NoError(t, db.First(&reloaded, comment.ID).Error)
	assert.Equal(t, 1, reloaded.LikesCount)

	var n model.Notification
	require.NoError(t, db.Where("user_id = ?", commenter.ID).First(&n).Error)
	assert.Equal(t, model.NotificationTypeLike, n.Type)
	assert.Equal(t, comment.ID, n.RelatedID)

	assert.ErrorIs(t, svc.LikeComment(ctx, liker.ID, comment.ID), ErrActionDuplicate)

	require.NoError(t, svc.UnlikeComment(ctx, liker.ID, comment.ID))
	require.NoError(t, db.First(&reloaded, comment.ID).Error)
	assert.Equal(t, 0, reloaded.LikesCount)
	assert.ErrorIs(t, svc.UnlikeComment(ctx, liker.ID, comment.ID), ErrActionNotExist)
}

func TestLikeCommentNotFound(t *testing.T) {
	db := newTestEnv(t)
	svc := NewPostActionService(db)

	liker := createTestUser(t, db, "点赞者")
	assert.ErrorIs(t, svc.LikeComment(context.Background(), liker.ID, 9999), ErrCommentNotFound)
}

// 同一用户并发点赞同一帖子，恰好一次成功，计数与事实行数一致
func TestConcurrentSameActorLike(t *testing.T) {
	db := newTestEnv(t)
	svc := NewPostActionService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	liker := createTestUser(t, db, "点赞者")
	post := createTestPost(t, db, author.ID, "热帖")

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs[idx] = svc.LikePost(ctx, liker.ID, post.ID)
		}(i)
	}
	wg.Wait()

	successCount := 0
	for _, err := range errs {
		if err == nil {
			successCount++
		} else {
			assert.ErrorIs(t, err, ErrActionDuplicate)
		}
	}
	assert.Equal(t, 1, successCount)
	assert.Equal(t, 1, reloadPost(t, db, post.ID).LikesCount)
	assert.EqualValues(t, 1, countRows(t, db, &model.PostLike{}, "post_id = ?", post.ID))
	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{}, "user_id = ?", author.ID))
}

// 多个用户点赞同一帖子后计数与事实行数一致
func TestLikeCountMatchesFactRows(t *testing.T) {
	db := newTestEnv(t)
	svc := NewPostActionService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	post := createTestPost(t, db, author.ID, "热帖")

	for i := 0; i < 5; i++ {
		u := createTestUser(t, db, "用户")
		require.NoError(t, svc.LikePost(ctx, u.ID, post.ID))
	}

	assert.Equal(t, 5, reloadPost(t, db, post.ID).LikesCount)
	assert.EqualValues(t, 5, countRows(t, db, &model.PostLike{}, "post_id = ?", post.ID))
	assert.EqualValues(t, 5, countRows(t, db, &model.Notification{}, "user_id = ?", author.ID))
}
