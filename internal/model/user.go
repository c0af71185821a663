package model

import (
	"time"
)

type User struct {
	ID             uint64  `gorm:"primaryKey" json:"id"`
	Phone          *string `gorm:"type:varchar(30);uniqueIndex:idx_phone" json:"phone"`
	Nickname       string  `gorm:"type:varchar(50);not null" json:"nickname"`
	AvatarURL      string  `gorm:"type:varchar(512);column:avatar_url;default:'default_avatar.png'" json:"avatarUrl"`
	Bio            *string `gorm:"type:varchar(255)" json:"bio"`
	PostsCount     int     `gorm:"not null;default:0" json:"postsCount"`
	FollowersCount int     `gorm:"not null;default:0" json:"followersCount"`
	FollowingCount int     `gorm:"not null;default:0" json:"followingCount"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (User) TableName() string {
	return "users"
}
