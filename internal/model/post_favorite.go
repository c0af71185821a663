package model

import (
	"time"
)

type PostFavorite struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	PostID    uint64    `gorm:"primaryKey;index:idx_post_favorite_post_id" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PostFavorite) TableName() string {
	return "post_favorites"
}
