package model

import (
	"time"
)

type Post struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	UserID         uint64    `gorm:"not null;index:idx_user_id" json:"userId"`
	Title          string    `gorm:"type:varchar(255);not null" json:"title"`
	Content        string    `gorm:"not null" json:"content"`
	MediaType      *string   `gorm:"type:varchar(20)" json:"mediaType"`
	MediaURLs      []string  `gorm:"type:json;serializer:json" json:"mediaUrls"`
	LikesCount     int       `gorm:"not null;default:0" json:"likesCount"`
	CommentsCount  int       `gorm:"not null;default:0" json:"commentsCount"`
	FavoritesCount int       `gorm:"not null;default:0" json:"favoritesCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
