package dto

// NotificationDTO 通知详情
type NotificationDTO struct {
	ID        uint64   `json:"id"`
	Type      string   `json:"type"`
	Actor     *UserDTO `json:"actor"`
	RelatedID uint64   `json:"related_id"`
	Content   string   `json:"content"`
	IsRead    bool     `json:"is_read"`
	CreatedAt string   `json:"created_at"`
}

// UnreadCountDTO 未读数
type UnreadCountDTO struct {
	Count int64 `json:"count"`
}
