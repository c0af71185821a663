package service

import (
	"Mingle/internal/api/dto"
	"Mingle/internal/model"
	"Mingle/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentService(db *gorm.DB) CommentService {
	return NewCommentService(
		db,
		repository.NewCommentRepo(db),
		repository.NewPostRepo(db),
		repository.NewPostActionRepo(db),
		repository.NewUserRepo(db),
	)
}

func TestCreateComment(t *testing.T) {
	db := newTestEnv(t)
	svc := newCommentService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	commenter := createTestUser(t, db, "评论者")
	post := createTestPost(t, db, author.ID, "第一帖")

	comment, err := svc.CreateComment(ctx, commenter.ID, post.ID, &dto.CommentCreateDTO{Content: "写得好"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, comment.ParentID)
	assert.Equal(t, "写得好", comment.Content)

	assert.Equal(t, 1, reloadPost(t, db, post.ID).CommentsCount)

	// 帖子作者收到评论通知
	var n model.Notification
	require.NoError(t, db.Where("user_id = ?", author.ID).First(&n).Error)
	assert.Equal(t, model.NotificationTypeComment, n.Type)
	assert.Equal(t, commenter.ID, n.ActorID)
}

func TestCreateCommentEdgeCases(t *testing.T) {
	db := newTestEnv(t)
	svc := newCommentService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	post := createTestPost(t, db, author.ID, "第一帖")

	_, err := svc.CreateComment(ctx, author.ID, post.ID, &dto.CommentCreateDTO{Content: "   "})
	assert.ErrorIs(t, err, ErrCommentContentEmpty)

	_, err = svc.CreateComment(ctx, author.ID, 9999, &dto.CommentCreateDTO{Content: "哪个帖子"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.CreateComment(ctx, author.ID, post.ID, &dto.CommentCreateDTO{Content: "回复谁", ParentID: 8888})
	assert.ErrorIs(t, err, ErrCommentParentNotFound)

	// 作者自评不产生通知
	_, err = svc.CreateComment(ctx, author.ID, post.ID, &dto.CommentCreateDTO{Content: "自评"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, countRows(t, db, &model.Notification{}, "1 = 1"))
}

func TestCreateCommentCrossPostParent(t *testing.T) {
	db := newTestEnv(t)
	svc := newCommentService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	postA := createTestPost(t, db, author.ID, "A")
	postB := createTestPost(t, db, author.ID, "B")

	parent, err := svc.CreateComment(ctx, author.ID, postA.ID, &dto.CommentCreateDTO{Content: "A 楼主"})
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, author.ID, postB.ID, &dto.CommentCreateDTO{Content: "串帖回复", ParentID: parent.ID})
	assert.ErrorIs(t, err, ErrCommentParentMismatch)
	assert.Equal(t, 0, reloadPost(t, db, postB.ID).CommentsCount)
}

// 对回复再回复时 root_id 继承一级评论，整条链渲染在同一楼内
func TestThreadContainment(t *testing.T) {
	db := newTestEnv(t)
	svc := newCommentService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	u1 := createTestUser(t, db, "甲")
	u2 := createTestUser(t, db, "乙")
	post := createTestPost(t, db, author.ID, "讨论帖")

	root, err := svc.CreateComment(ctx, u1.ID, post.ID, &dto.CommentCreateDTO{Content: "一楼"})
	require.NoError(t, err)
	reply, err := svc.CreateComment(ctx, u2.ID, post.ID, &dto.CommentCreateDTO{Content: "回一楼", ParentID: root.ID})
	require.NoError(t, err)
	subReply, err := svc.CreateComment(ctx, u1.ID, post.ID, &dto.CommentCreateDTO{Content: "回回复", ParentID: reply.ID})
	require.NoError(t, err)

	var stored model.Comment
	require.NoError(t, db.First(&stored, subReply.ID).Error)
	assert.Equal(t, root.ID, stored.RootID)
	assert.Equal(t, reply.ID, stored.ParentID)

	page, err := svc.GetCommentsByPost(ctx, 0, post.ID, 0, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Len(t, page.Items[0].Replies, 2)
	assert.Equal(t, reply.ID, page.Items[0].Replies[0].ID)
	assert.Equal(t, subReply.ID, page.Items[0].Replies[1].ID)

	// 回复通知发给父评论作者
	var n model.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", u2.ID, model.NotificationTypeComment).First(&n).Error)
	assert.Equal(t, u1.ID, n.ActorID)
}

func TestCommentMentions(t *testing.T) {
	db := newTestEnv(t)
	svc := newCommentService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	commenter := createTestUser(t, db, "评论者")
	mentioned := createTestUser(t, db, "被提及者")
	post := createTestPost(t, db, author.ID, "第一帖")

	// 不存在的用户 id 被静默丢弃，重复 id 去重
	comment, err := svc.CreateComment(ctx, commenter.ID, post.ID, &dto.CommentCreateDTO{
		Content:  "@一下",
		Mentions: []uint64{mentioned.ID, mentioned.ID, 9999},
	})
	require.NoError(t, err)
	require.Len(t, comment.Mentions, 1)
	assert.Equal(t, mentioned.ID, comment.Mentions[0].UserID)

	assert.EqualValues(t, 1, countRows(t, db, &model.CommentMention{}, "comment_id = ?", comment.ID))

	var n model.Notification
	require.NoError(t, db.Where("user_id = ?", mentioned.ID).First(&n).Error)
	assert.Equal(t, model.NotificationTypeMention, n.Type)
}

// 被提及者同时是父评论作者时，回复通知和提及通知各收一条
func TestCommentFanOutMentionedAuthor(t *testing.T) {
	db := newTestEnv(t)
	svc := newCommentService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	replier := createTestUser(t, db, "回复者")
	post := createTestPost(t, db, author.ID, "第一帖")

	root, err := svc.CreateComment(ctx, author.ID, post.ID, &dto.CommentCreateDTO{Content: "一楼"})
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, replier.ID, post.ID, &dto.CommentCreateDTO{
		Content:  "回楼主并@楼主",
		ParentID: root.ID,
		Mentions: []uint64{author.ID},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{},
		"user_id = ? AND actor_id = ? AND type = ?", author.ID, replier.ID, model.NotificationTypeComment))
	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{},
		"user_id = ? AND actor_id = ? AND type = ?", author.ID, replier.ID, model.NotificationTypeMention))

	// 提及自己不产生通知
	_, err = svc.CreateComment(ctx, replier.ID, post.ID, &dto.CommentCreateDTO{
		Content:  "@自己",
		Mentions: []uint64{replier.ID},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, countRows(t, db, &model.Notification{}, "user_id = ?", replier.ID))
}

func TestGetCommentsByPostPagination(t *testing.T) {
	db := newTestEnv(t)
	svc := newCommentService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	post := createTestPost(t, db, author.ID, "长楼")

	for i := 0; i < 5; i++ {
		_, err := svc.CreateComment(ctx, author.ID, post.ID, &dto.CommentCreateDTO{Content: "一级评论"})
		require.NoError(t, err)
	}

	page, err := svc.GetCommentsByPost(ctx, 0, post.ID, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 5, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)

	last, err := svc.GetCommentsByPost(ctx, 0, post.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)
}

func TestDeleteComment(t *testing.T) {
	db := newTestEnv(t)
	svc := newCommentService(db)
	actionSvc := NewPostActionService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "作者")
	commenter := createTestUser(t, db, "评论者")
	other := createTestUser(t, db, "路人")
	post := createTestPost(t, db, author.ID, "第一帖")

	comment, err := svc.CreateComment(ctx, commenter.ID, post.ID, &dto.CommentCreateDTO{
		Content:  "会被删掉",
		Mentions: []uint64{other.ID},
	})
	require.NoError(t, err)
	reply, err := svc.CreateComment(ctx, other.ID, post.ID, &dto.CommentCreateDTO{Content: "回复它", ParentID: comment.ID})
	require.NoError(t, err)
	require.NoError(t, actionSvc.LikeComment(ctx, other.ID, comment.ID))

	// 非作者无权删除
	assert.ErrorIs(t, svc.DeleteComment(ctx, other.ID, comment.ID), UnauthorizedError)

	require.NoError(t, svc.DeleteComment(ctx, commenter.ID, comment.ID))

	assert.EqualValues(t, 0, countRows(t, db, &model.Comment{}, "id = ?", comment.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.CommentLike{}, "comment_id = ?", comment.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.CommentMention{}, "comment_id = ?", comment.ID))
	// 回复保留原地
	assert.EqualValues(t, 1, countRows(t, db, &model.Comment{}, "id = ?", reply.ID))
	assert.Equal(t, 1, reloadPost(t, db, post.ID).CommentsCount)

	assert.ErrorIs(t, svc.DeleteComment(ctx, commenter.ID, comment.ID), ErrCommentNotFound)
}
