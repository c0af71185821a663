package model

import (
	"time"
)

type CommentMention struct {
	CommentID uint64    `gorm:"primaryKey" json:"commentId"`
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CommentMention) TableName() string {
	return "comment_mentions"
}
