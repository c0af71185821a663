package dto

// CommentCreateDTO 发表评论请求
type CommentCreateDTO struct {
	Content  string   `json:"content" binding:"required,max=1000"`
	ParentID uint64   `json:"parent_id"`
	Mentions []uint64 `json:"mentions" binding:"omitempty,max=5"`
}

// CommentDTO 评论详情，Replies 只在一级评论上填充
type CommentDTO struct {
	ID         uint64        `json:"id"`
	PostID     uint64        `json:"post_id"`
	Author     *UserDTO      `json:"author"`
	ParentID   uint64        `json:"parent_id"`
	Content    string        `json:"content"`
	Mentions   []*UserDTO    `json:"mentions"`
	LikesCount int           `json:"likes_count"`
	IsLiked    bool          `json:"is_liked"`
	Replies    []*CommentDTO `json:"replies,omitempty"`
	CreatedAt  string        `json:"created_at"`
}
