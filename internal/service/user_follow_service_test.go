package service

import (
	"Mingle/internal/model"
	"Mingle/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFollowService(db *gorm.DB) UserFollowService {
	return NewUserFollowService(db, repository.NewUserFollowRepo(db), repository.NewUserRepo(db))
}

func TestFollowUser(t *testing.T) {
	db := newTestEnv(t)
	svc := newFollowService(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "粉丝")
	target := createTestUser(t, db, "博主")

	require.NoError(t, svc.FollowUser(ctx, follower.ID, target.ID))

	assert.Equal(t, 1, reloadUser(t, db, follower.ID).FollowingCount)
	assert.Equal(t, 1, reloadUser(t, db, target.ID).FollowersCount)
	assert.EqualValues(t, 1, countRows(t, db, &model.UserFollow{}, "follower_id = ? AND following_id = ?", follower.ID, target.ID))

	var n model.Notification
	require.NoError(t, db.Where("user_id = ?", target.ID).First(&n).Error)
	assert.Equal(t, model.NotificationTypeFollow, n.Type)
	assert.Equal(t, follower.ID, n.ActorID)
}

func TestFollowUserGuards(t *testing.T) {
	db := newTestEnv(t)
	svc := newFollowService(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "粉丝")
	target := createTestUser(t, db, "博主")

	assert.ErrorIs(t, svc.FollowUser(ctx, follower.ID, follower.ID), ErrUserFollowSelf)
	assert.ErrorIs(t, svc.FollowUser(ctx, follower.ID, 9999), ErrUserNotFound)

	require.NoError(t, svc.FollowUser(ctx, follower.ID, target.ID))
	assert.ErrorIs(t, svc.FollowUser(ctx, follower.ID, target.ID), ErrUserFollowExist)

	// 重复关注不重复计数、不重复通知
	assert.Equal(t, 1, reloadUser(t, db, target.ID).FollowersCount)
	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{}, "user_id = ?", target.ID))
}

func TestUnfollowUser(t *testing.T) {
	db := newTestEnv(t)
	svc := newFollowService(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "粉丝")
	target := createTestUser(t, db, "博主")

	require.NoError(t, svc.FollowUser(ctx, follower.ID, target.ID))
	require.NoError(t, svc.UnfollowUser(ctx, follower.ID, target.ID))

	assert.Equal(t, 0, reloadUser(t, db, follower.ID).FollowingCount)
	assert.Equal(t, 0, reloadUser(t, db, target.ID).FollowersCount)

	// 未关注状态下取消关注报错，计数不会变成负数
	assert.ErrorIs(t, svc.UnfollowUser(ctx, follower.ID, target.ID), ErrUserFollowNotExist)
	assert.Equal(t, 0, reloadUser(t, db, target.ID).FollowersCount)
}

func TestGetFollowersAndFollowing(t *testing.T) {
	db := newTestEnv(t)
	svc := newFollowService(db)
	ctx := context.Background()

	target := createTestUser(t, db, "博主")
	f1 := createTestUser(t, db, "粉丝一")
	f2 := createTestUser(t, db, "粉丝二")

	require.NoError(t, svc.FollowUser(ctx, f1.ID, target.ID))
	require.NoError(t, svc.FollowUser(ctx, f2.ID, target.ID))
	require.NoError(t, svc.FollowUser(ctx, target.ID, f1.ID))

	followers, err := svc.GetFollowers(ctx, target.ID, 0, 20)
	require.NoError(t, err)
	assert.Len(t, followers.Items, 2)
	assert.EqualValues(t, 2, followers.TotalCount)

	following, err := svc.GetFollowing(ctx, target.ID, 0, 20)
	require.NoError(t, err)
	require.Len(t, following.Items, 1)
	assert.Equal(t, f1.ID, following.Items[0].UserID)
}
