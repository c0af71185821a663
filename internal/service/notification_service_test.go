package service

import (
	"Mingle/internal/model"
	"Mingle/internal/pkg/consts"
	"Mingle/internal/pkg/redis"
	"Mingle/internal/repository"
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(db *gorm.DB) NotificationService {
	return NewNotificationService(repository.NewNotificationRepo(db), repository.NewUserRepo(db))
}

func seedNotification(t *testing.T, db *gorm.DB, userID, actorID uint64, read bool) *model.Notification {
	t.Helper()
	n := &model.Notification{
		UserID:  userID,
		ActorID: actorID,
		Type:    model.NotificationTypeLike,
		Content: "赞了你的帖子",
		IsRead:  read,
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestGetNotifications(t *testing.T) {
	db := newTestEnv(t)
	svc := newNotificationService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "收信人")
	actor := createTestUser(t, db, "点赞的人")
	seedNotification(t, db, user.ID, actor.ID, false)
	seedNotification(t, db, user.ID, actor.ID, true)

	page, err := svc.GetNotifications(ctx, user.ID, 0, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.EqualValues(t, 2, page.TotalCount)
	assert.Equal(t, model.NotificationTypeLike, page.Items[0].Type)
	require.NotNil(t, page.Items[0].Actor)
	assert.Equal(t, actor.ID, page.Items[0].Actor.UserID)
}

func TestGetUnreadCountCache(t *testing.T) {
	db := newTestEnv(t)
	svc := newNotificationService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "收信人")
	actor := createTestUser(t, db, "点赞的人")
	seedNotification(t, db, user.ID, actor.ID, false)
	seedNotification(t, db, user.ID, actor.ID, false)

	count, err := svc.GetUnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// 回源后应回填缓存
	key := consts.NotificationUnreadKey + strconv.FormatUint(user.ID, 10)
	cached, err := redis.GetValue(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "2", cached)

	// 带缓存时不回源：直接改库，读数仍旧是缓存值
	seedNotification(t, db, user.ID, actor.ID, false)
	count, err = svc.GetUnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestMarkRead(t *testing.T) {
	db := newTestEnv(t)
	svc := newNotificationService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "收信人")
	actor := createTestUser(t, db, "点赞的人")
	other := createTestUser(t, db, "路人")
	n := seedNotification(t, db, user.ID, actor.ID, false)

	// 预热缓存
	_, err := svc.GetUnreadCount(ctx, user.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.MarkRead(ctx, user.ID, 9999), ErrNotificationNotFound)
	assert.ErrorIs(t, svc.MarkRead(ctx, other.ID, n.ID), UnauthorizedError)

	require.NoError(t, svc.MarkRead(ctx, user.ID, n.ID))

	var stored model.Notification
	require.NoError(t, db.First(&stored, n.ID).Error)
	assert.True(t, stored.IsRead)

	// 标记已读后缓存失效，未读数回源为 0
	count, err := svc.GetUnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// 重复标记幂等
	require.NoError(t, svc.MarkRead(ctx, user.ID, n.ID))
}

func TestMarkAllRead(t *testing.T) {
	db := newTestEnv(t)
	svc := newNotificationService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "收信人")
	actor := createTestUser(t, db, "点赞的人")
	seedNotification(t, db, user.ID, actor.ID, false)
	seedNotification(t, db, user.ID, actor.ID, false)
	seedNotification(t, db, user.ID, actor.ID, true)

	require.NoError(t, svc.MarkAllRead(ctx, user.ID))

	assert.EqualValues(t, 3, countRows(t, db, &model.Notification{}, "user_id = ? AND is_read = ?", user.ID, true))

	count, err := svc.GetUnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
