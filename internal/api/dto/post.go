package dto

// PostCreateDTO 发布帖子请求
type PostCreateDTO struct {
	Title     string   `json:"title" binding:"required,max=100"`
	Content   string   `json:"content" binding:"required,max=5000"`
	MediaType *string  `json:"media_type" binding:"omitempty,oneof=image video"`
	MediaURLs []string `json:"media_urls" binding:"omitempty,max=9"`
	Tags      []string `json:"tags" binding:"omitempty,max=10,dive,min=1,max=50"`
}

// PostDTO 帖子详情
type PostDTO struct {
	ID             uint64   `json:"id"`
	Author         *UserDTO `json:"author"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	MediaType      *string  `json:"media_type"`
	MediaURLs      []string `json:"media_urls"`
	Tags           []string `json:"tags"`
	LikesCount     int      `json:"likes_count"`
	CommentsCount  int      `json:"comments_count"`
	FavoritesCount int      `json:"favorites_count"`
	IsLiked        bool     `json:"is_liked"`
	IsFavorited    bool     `json:"is_favorited"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}
