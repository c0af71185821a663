package model

import (
	"time"
)

const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeMention = "mention"
	NotificationTypeFollow  = "follow"
)

type Notification struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_user_read" json:"userId"` // 消息接收者ID
	Type      string    `gorm:"type:varchar(20);not null" json:"type"`
	ActorID   uint64    `gorm:"not null" json:"actorId"`            // 动作发起者ID
	RelatedID uint64    `gorm:"not null;default:0" json:"relatedId"` // 关联的目标ID，0表示无
	Content   string    `gorm:"type:varchar(255);not null" json:"content"`
	IsRead    bool      `gorm:"not null;default:false;index:idx_user_read" json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
