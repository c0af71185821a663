package model

import (
	"time"
)

type Comment struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	PostID     uint64    `gorm:"not null;index:idx_comment_post_id" json:"postId"`
	UserID     uint64    `gorm:"not null" json:"userId"`
	ParentID   uint64    `gorm:"not null;default:0" json:"parentId"`                         // 0表示直接评论帖子
	RootID     uint64    `gorm:"not null;default:0;index:idx_comment_root_id" json:"rootId"` // 0表示这是一级评论
	Content    string    `gorm:"type:varchar(1000);not null" json:"content"`
	LikesCount int       `gorm:"not null;default:0" json:"likesCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}
