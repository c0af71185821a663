package service

import (
	"Mingle/internal/api/config"
	"Mingle/internal/model"
	"Mingle/internal/pkg/redis"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 建一个内存库，单连接保证并发测试共享同一份数据
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.PostFavorite{},
		&model.CommentLike{},
		&model.CommentMention{},
		&model.UserFollow{},
		&model.Notification{},
		&model.Tag{},
		&model.PostTag{},
	)
	require.NoError(t, err)
	return db
}

// newTestEnv 额外拉起 miniredis 并填充全局配置
func newTestEnv(t *testing.T) *gorm.DB {
	t.Helper()

	mr := miniredis.RunT(t)
	require.NoError(t, redis.InitRedis(config.RedisConfig{Addr: mr.Addr()}))

	config.Cfg = &config.Config{
		SMS: config.SMSConfig{MockSend: true},
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 24},
	}
	return newTestDB(t)
}

func createTestUser(t *testing.T, db *gorm.DB, nickname string) *model.User {
	t.Helper()
	user := &model.User{Nickname: nickname, AvatarURL: "default_avatar.png"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint64, title string) *model.Post {
	t.Helper()
	post := &model.Post{UserID: userID, Title: title, Content: "内容 " + title}
	require.NoError(t, db.Create(post).Error)
	return post
}

func countRows(t *testing.T, db *gorm.DB, m interface{}, conds ...interface{}) int64 {
	t.Helper()
	var count int64
	tx := db.Model(m)
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	require.NoError(t, tx.Count(&count).Error)
	return count
}

func reloadPost(t *testing.T, db *gorm.DB, id uint64) *model.Post {
	t.Helper()
	post := &model.Post{}
	require.NoError(t, db.First(post, id).Error)
	return post
}

func reloadUser(t *testing.T, db *gorm.DB, id uint64) *model.User {
	t.Helper()
	user := &model.User{}
	require.NoError(t, db.First(user, id).Error)
	return user
}
